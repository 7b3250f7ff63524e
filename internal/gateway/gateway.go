// Package gateway holds the outbound transports behind the notification and
// portal interfaces. Each transport degrades to log-only when its endpoint is
// not configured, so local environments run without the real middleware.
package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"net/smtp"
	"net/url"
	"time"
)

// EmailGateway sends notification emails over SMTP.
type EmailGateway struct {
	host string
	port string
	from string
}

func NewEmailGateway(host, port, from string) *EmailGateway {
	return &EmailGateway{host: host, port: port, from: from}
}

func (g *EmailGateway) SendEmail(ctx context.Context, to, subject, body string) error {
	if g.host == "" {
		log.Printf("SMTP not configured, email to %s dropped (subject: %s)", to, subject)
		return nil
	}

	msg := fmt.Sprintf("From: %s\r\nTo: %s\r\nSubject: %s\r\nContent-Type: text/plain; charset=utf-8\r\n\r\n%s",
		g.from, to, subject, body)

	addr := g.host + ":" + g.port
	if err := smtp.SendMail(addr, nil, g.from, []string{to}, []byte(msg)); err != nil {
		return fmt.Errorf("smtp send to %s failed: %w", to, err)
	}
	return nil
}

// SmsGateway posts SMS requests to the messaging middleware.
type SmsGateway struct {
	baseURL string
	client  *http.Client
}

func NewSmsGateway(baseURL string) *SmsGateway {
	return &SmsGateway{
		baseURL: baseURL,
		client:  &http.Client{Timeout: 10 * time.Second},
	}
}

func (g *SmsGateway) SendSms(ctx context.Context, mobileCode, mobileNo, content string) error {
	if g.baseURL == "" {
		log.Printf("SMS gateway not configured, SMS to %s%s dropped", mobileCode, mobileNo)
		return nil
	}

	payload, err := json.Marshal(map[string]string{
		"mobile_code": mobileCode,
		"mobile_no":   mobileNo,
		"content":     content,
	})
	if err != nil {
		return fmt.Errorf("failed to encode SMS payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.baseURL+"/sms", bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("failed to build SMS request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := g.client.Do(req)
	if err != nil {
		return fmt.Errorf("sms gateway call failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return fmt.Errorf("sms gateway returned status %d", resp.StatusCode)
	}
	return nil
}

// PortalGateway asks the eService portal to re-surface a notice after a
// rejection so the owner sees it again.
type PortalGateway struct {
	baseURL string
	client  *http.Client
}

func NewPortalGateway(baseURL string) *PortalGateway {
	return &PortalGateway{
		baseURL: baseURL,
		client:  &http.Client{Timeout: 10 * time.Second},
	}
}

func (g *PortalGateway) ResendNoticeToPortal(ctx context.Context, noticeNo string) error {
	if g.baseURL == "" {
		log.Printf("Portal not configured, resend of notice %s dropped", noticeNo)
		return nil
	}

	endpoint := g.baseURL + "/notices/" + url.PathEscape(noticeNo) + "/resend"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, nil)
	if err != nil {
		return fmt.Errorf("failed to build portal request: %w", err)
	}

	resp, err := g.client.Do(req)
	if err != nil {
		return fmt.Errorf("portal call failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return fmt.Errorf("portal returned status %d", resp.StatusCode)
	}
	return nil
}
