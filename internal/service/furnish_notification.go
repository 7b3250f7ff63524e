package service

import (
	"context"
	"log"
	"time"

	"ocms/internal/model"
	"ocms/internal/repository"
)

// EmailSender is the outbound email transport. Delivery infrastructure lives
// outside this service; implementations report per-message success.
type EmailSender interface {
	SendEmail(ctx context.Context, to, subject, body string) error
}

// SmsSender is the outbound SMS transport.
type SmsSender interface {
	SendSms(ctx context.Context, mobileCode, mobileNo, content string) error
}

// PortalClient signals the eService portal. ResendNoticeToPortal makes a
// notice available again for resubmission after an officer rejection.
type PortalClient interface {
	ResendNoticeToPortal(ctx context.Context, noticeNo string) error
}

// FurnishNotificationService sends email/SMS through the transport
// collaborators and records every attempt, successful or not.
type FurnishNotificationService struct {
	emailSender      EmailSender
	smsSender        SmsSender
	notificationRepo repository.NotificationRepository
}

func NewFurnishNotificationService(
	emailSender EmailSender,
	smsSender SmsSender,
	notificationRepo repository.NotificationRepository,
) *FurnishNotificationService {
	return &FurnishNotificationService{
		emailSender:      emailSender,
		smsSender:        smsSender,
		notificationRepo: notificationRepo,
	}
}

// SendAndRecordEmail sends one email and persists the delivery record.
// Returns whether the message was sent; recording failures are logged only.
func (s *FurnishNotificationService) SendAndRecordEmail(ctx context.Context, noticeNo, processingStage, emailAddr, subject, body string) bool {
	sendErr := s.emailSender.SendEmail(ctx, emailAddr, subject, body)
	sent := sendErr == nil

	record := &model.EmailNotificationRecord{
		NoticeNo:        noticeNo,
		ProcessingStage: processingStage,
		EmailAddr:       emailAddr,
		Subject:         subject,
		Content:         []byte(body),
		Status:          model.NotificationSent,
	}
	if sent {
		now := time.Now()
		record.DateSent = &now
	} else {
		record.Status = model.NotificationFailed
		record.MsgError = sendErr.Error()
	}

	if err := s.notificationRepo.CreateEmailRecord(ctx, record); err != nil {
		log.Printf("WARNING: failed to record email notification for notice %s: %v", noticeNo, err)
	}

	log.Printf("Email notification for notice %s, status %s", noticeNo, record.Status)
	return sent
}

// SendAndRecordSms sends one SMS and persists the delivery record.
func (s *FurnishNotificationService) SendAndRecordSms(ctx context.Context, noticeNo, processingStage, mobileCode, mobileNo, content string) bool {
	sendErr := s.smsSender.SendSms(ctx, mobileCode, mobileNo, content)
	sent := sendErr == nil

	record := &model.SmsNotificationRecord{
		NoticeNo:        noticeNo,
		ProcessingStage: processingStage,
		MobileCode:      mobileCode,
		MobileNo:        mobileNo,
		Content:         []byte(content),
		Status:          model.NotificationSent,
	}
	if sent {
		now := time.Now()
		record.DateSent = &now
	} else {
		record.Status = model.NotificationFailed
		record.MsgError = sendErr.Error()
	}

	if err := s.notificationRepo.CreateSmsRecord(ctx, record); err != nil {
		log.Printf("WARNING: failed to record SMS notification for notice %s: %v", noticeNo, err)
	}

	log.Printf("SMS notification for notice %s, status %s", noticeNo, record.Status)
	return sent
}
