package service

import (
	"context"
	"errors"
	"fmt"

	"ocms/internal/model"

	"gorm.io/gorm"
)

// In-memory repository fakes backing the service tests. Each fake stores
// copies so tests observe exactly what was written.

type fakeNoticeRepo struct {
	notices map[string]model.OffenceNotice
}

func newFakeNoticeRepo() *fakeNoticeRepo {
	return &fakeNoticeRepo{notices: make(map[string]model.OffenceNotice)}
}

func (r *fakeNoticeRepo) add(n model.OffenceNotice) {
	r.notices[n.NoticeNo] = n
}

func (r *fakeNoticeRepo) FindByNoticeNo(_ context.Context, noticeNo string) (*model.OffenceNotice, error) {
	n, ok := r.notices[noticeNo]
	if !ok {
		return nil, errors.New("record not found")
	}
	return &n, nil
}

type fakeOwnerDriverRepo struct {
	records []model.OwnerDriver
	addrs   []model.OwnerDriverAddr
	err     error
}

func (r *fakeOwnerDriverRepo) FindByNoticeNo(_ context.Context, noticeNo string) ([]model.OwnerDriver, error) {
	if r.err != nil {
		return nil, r.err
	}
	var out []model.OwnerDriver
	for _, rec := range r.records {
		if rec.NoticeNo == noticeNo {
			out = append(out, rec)
		}
	}
	return out, nil
}

func (r *fakeOwnerDriverRepo) Save(_ context.Context, record *model.OwnerDriver) error {
	for i := range r.records {
		if r.records[i].NoticeNo == record.NoticeNo && r.records[i].OwnerDriverIndicator == record.OwnerDriverIndicator && r.records[i].IDNo == record.IDNo {
			r.records[i] = *record
			return nil
		}
	}
	r.records = append(r.records, *record)
	return nil
}

func (r *fakeOwnerDriverRepo) Upsert(_ context.Context, record *model.OwnerDriver) error {
	for i := range r.records {
		if r.records[i].NoticeNo == record.NoticeNo && r.records[i].OwnerDriverIndicator == record.OwnerDriverIndicator {
			r.records[i] = *record
			return nil
		}
	}
	r.records = append(r.records, *record)
	return nil
}

func (r *fakeOwnerDriverRepo) UpsertAddr(_ context.Context, addr *model.OwnerDriverAddr) error {
	for i := range r.addrs {
		if r.addrs[i].NoticeNo == addr.NoticeNo && r.addrs[i].OwnerDriverIndicator == addr.OwnerDriverIndicator && r.addrs[i].TypeOfAddress == addr.TypeOfAddress {
			r.addrs[i] = *addr
			return nil
		}
	}
	r.addrs = append(r.addrs, *addr)
	return nil
}

type fakeApplicationRepo struct {
	apps      map[string]model.FurnishApplication
	createErr error
	updateErr error
	findErr   error
}

func newFakeApplicationRepo() *fakeApplicationRepo {
	return &fakeApplicationRepo{apps: make(map[string]model.FurnishApplication)}
}

func (r *fakeApplicationRepo) Create(_ context.Context, app *model.FurnishApplication) error {
	if r.createErr != nil {
		return r.createErr
	}
	r.apps[app.TxnNo] = *app
	return nil
}

func (r *fakeApplicationRepo) FindByTxnNo(_ context.Context, txnNo string) (*model.FurnishApplication, error) {
	if r.findErr != nil {
		return nil, r.findErr
	}
	app, ok := r.apps[txnNo]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &app, nil
}

func (r *fakeApplicationRepo) FindByNoticeNo(_ context.Context, noticeNo string) ([]model.FurnishApplication, error) {
	var out []model.FurnishApplication
	for _, app := range r.apps {
		if app.NoticeNo == noticeNo {
			out = append(out, app)
		}
	}
	return out, nil
}

func (r *fakeApplicationRepo) FindByStatusIn(_ context.Context, statuses []string) ([]model.FurnishApplication, error) {
	var out []model.FurnishApplication
	for _, app := range r.apps {
		for _, s := range statuses {
			if app.Status == s {
				out = append(out, app)
				break
			}
		}
	}
	return out, nil
}

func (r *fakeApplicationRepo) FindAll(_ context.Context) ([]model.FurnishApplication, error) {
	var out []model.FurnishApplication
	for _, app := range r.apps {
		out = append(out, app)
	}
	return out, nil
}

func (r *fakeApplicationRepo) Update(_ context.Context, app *model.FurnishApplication) error {
	if r.updateErr != nil {
		return r.updateErr
	}
	r.apps[app.TxnNo] = *app
	return nil
}

type fakeBlacklistRepo struct {
	ids map[string]bool
	err error
}

func newFakeBlacklistRepo() *fakeBlacklistRepo {
	return &fakeBlacklistRepo{ids: make(map[string]bool)}
}

func (r *fakeBlacklistRepo) Exists(_ context.Context, idNo string) (bool, error) {
	if r.err != nil {
		return false, r.err
	}
	return r.ids[idNo], nil
}

type fakeDocRepo struct {
	docs []model.FurnishApplicationDoc
}

func (r *fakeDocRepo) CreateAll(_ context.Context, docs []model.FurnishApplicationDoc) error {
	r.docs = append(r.docs, docs...)
	return nil
}

func (r *fakeDocRepo) FindByTxnNo(_ context.Context, txnNo string) ([]model.FurnishApplicationDoc, error) {
	var out []model.FurnishApplicationDoc
	for _, d := range r.docs {
		if d.TxnNo == txnNo {
			out = append(out, d)
		}
	}
	return out, nil
}

type fakeSuspensionRepo struct {
	suspensions []model.SuspendedNotice
	createErr   error
}

func (r *fakeSuspensionRepo) FindByNoticeNo(_ context.Context, noticeNo string) ([]model.SuspendedNotice, error) {
	var out []model.SuspendedNotice
	for _, s := range r.suspensions {
		if s.NoticeNo == noticeNo {
			out = append(out, s)
		}
	}
	return out, nil
}

func (r *fakeSuspensionRepo) MaxSrNo(_ context.Context, noticeNo string) (int, error) {
	max := 0
	for _, s := range r.suspensions {
		if s.NoticeNo == noticeNo && s.SrNo > max {
			max = s.SrNo
		}
	}
	return max, nil
}

func (r *fakeSuspensionRepo) Create(_ context.Context, suspension *model.SuspendedNotice) error {
	if r.createErr != nil {
		return r.createErr
	}
	r.suspensions = append(r.suspensions, *suspension)
	return nil
}

func (r *fakeSuspensionRepo) Update(_ context.Context, suspension *model.SuspendedNotice) error {
	for i := range r.suspensions {
		if r.suspensions[i].NoticeNo == suspension.NoticeNo && r.suspensions[i].SrNo == suspension.SrNo {
			r.suspensions[i] = *suspension
			return nil
		}
	}
	return errors.New("record not found")
}

type fakeAuditRepo struct {
	events []model.AuditEvent
}

func (r *fakeAuditRepo) Create(_ context.Context, event *model.AuditEvent) error {
	r.events = append(r.events, *event)
	return nil
}

func (r *fakeAuditRepo) FindByTxnNo(_ context.Context, txnNo string) ([]model.AuditEvent, error) {
	var out []model.AuditEvent
	for _, e := range r.events {
		if e.TxnNo == txnNo {
			out = append(out, e)
		}
	}
	return out, nil
}

func (r *fakeAuditRepo) List(_ context.Context, _, _ int) ([]model.AuditEvent, int64, error) {
	return r.events, int64(len(r.events)), nil
}

func (r *fakeAuditRepo) steps() []string {
	out := make([]string, 0, len(r.events))
	for _, e := range r.events {
		out = append(out, e.Step)
	}
	return out
}

type fakeNotificationRepo struct {
	emails []model.EmailNotificationRecord
	sms    []model.SmsNotificationRecord
}

func (r *fakeNotificationRepo) CreateEmailRecord(_ context.Context, record *model.EmailNotificationRecord) error {
	r.emails = append(r.emails, *record)
	return nil
}

func (r *fakeNotificationRepo) CreateSmsRecord(_ context.Context, record *model.SmsNotificationRecord) error {
	r.sms = append(r.sms, *record)
	return nil
}

// passthroughTxManager runs the function directly; the fakes have no
// transactional semantics to exercise.
type passthroughTxManager struct{}

func (passthroughTxManager) RunInTx(ctx context.Context, fn func(txCtx context.Context) error) error {
	return fn(ctx)
}

type noopBroadcaster struct{}

func (noopBroadcaster) BroadcastEvent([]byte) {}

type fakeEmailSender struct {
	sent []string // "to|subject"
	err  error
}

func (s *fakeEmailSender) SendEmail(_ context.Context, to, subject, _ string) error {
	if s.err != nil {
		return s.err
	}
	s.sent = append(s.sent, fmt.Sprintf("%s|%s", to, subject))
	return nil
}

type fakeSmsSender struct {
	sent []string
	err  error
}

func (s *fakeSmsSender) SendSms(_ context.Context, mobileCode, mobileNo, _ string) error {
	if s.err != nil {
		return s.err
	}
	s.sent = append(s.sent, mobileCode+mobileNo)
	return nil
}

type fakePortalClient struct {
	resent []string
	err    error
}

func (p *fakePortalClient) ResendNoticeToPortal(_ context.Context, noticeNo string) error {
	if p.err != nil {
		return p.err
	}
	p.resent = append(p.resent, noticeNo)
	return nil
}
