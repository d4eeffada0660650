package utils

import (
	"fmt"

	"gopkg.in/gomail.v2"
)

// Mailer sends transactional mail (password-reset OTPs) over SMTP.
type Mailer struct {
	dialer *gomail.Dialer
	from   string
}

func NewMailer(config EmailConfig) *Mailer {
	return &Mailer{
		dialer: gomail.NewDialer(config.Host, config.Port, config.User, config.Password),
		from:   config.From,
	}
}

// SendOTP delivers a one-time code with its validity window in minutes.
func (m *Mailer) SendOTP(to, code string, expiryMinutes int) error {
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", "Your password reset code")
	msg.SetBody("text/plain", fmt.Sprintf(
		"Your OTP code is %s. It expires in %d minutes.", code, expiryMinutes))

	return m.dialer.DialAndSend(msg)
}
