package services

import (
	"fmt"
	"log"
	"net/smtp"

	"github.com/example/campusmart/internal/config"
)

// EmailService delivers verification codes and password-reset links.
type EmailService struct {
	host     string
	port     int
	username string
	password string
	from     string
}

// NewEmailService creates an EmailService from config.
func NewEmailService(cfg *config.Config) *EmailService {
	return &EmailService{
		host:     cfg.SMTPHost,
		port:     cfg.SMTPPort,
		username: cfg.SMTPUsername,
		password: cfg.SMTPPassword,
		from:     cfg.SMTPFrom,
	}
}

// SendVerificationCode emails the 6-digit OTP to a registering user.
func (s *EmailService) SendVerificationCode(email, name, code string) error {
	subject := "Your Campus Marketplace Verification Code"
	body := fmt.Sprintf(`<html><body>
<h2>Hi %s,</h2>
<p>Your verification code is:</p>
<h1>%s</h1>
<p>It expires in 20 minutes.</p>
</body></html>`, name, code)
	return s.send(email, subject, body)
}

// SendPasswordReset emails the reset link carrying the plain token.
func (s *EmailService) SendPasswordReset(email, name, resetURL string) error {
	subject := "Reset Your Password - CampusMart"
	body := fmt.Sprintf(`<html><body>
<h2>Hi %s,</h2>
<p>Click the link below to reset your password. It expires in 10 minutes.</p>
<p><a href="%s">Reset Password</a></p>
<p>If you did not request this, ignore this email.</p>
</body></html>`, name, resetURL)
	return s.send(email, subject, body)
}

func (s *EmailService) send(to, subject, body string) error {
	if s.host == "" {
		// Dev mode: no SMTP configured, log instead of failing registration.
		log.Printf("[Email] SMTP not configured, skipping send to %s (%s)", to, subject)
		return nil
	}

	msg := []byte(fmt.Sprintf("To: %s\r\nFrom: %s\r\nSubject: %s\r\nMIME-version: 1.0\r\nContent-Type: text/html; charset=\"UTF-8\"\r\n\r\n%s\r\n", to, s.from, subject, body))

	auth := smtp.PlainAuth("", s.username, s.password, s.host)
	addr := fmt.Sprintf("%s:%d", s.host, s.port)

	if err := smtp.SendMail(addr, auth, s.from, []string{to}, msg); err != nil {
		log.Printf("[Email] Failed to send to %s: %v", to, err)
		return err
	}
	return nil
}
