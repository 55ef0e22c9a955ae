// Package service holds the supporting services the handlers lean on:
// mail dispatch, verification token lifecycle, Google OAuth and geo
// validation.
package service

import (
	"fmt"

	"github.com/spf13/viper"
	"go.uber.org/zap"
	"gopkg.in/gomail.v2"

	"synco/social-api/internal/model"
)

type Mailer struct {
	host     string
	port     int
	from     string
	password string
}

func NewMailer() *Mailer {
	return &Mailer{
		host:     viper.GetString("mail.host"),
		port:     viper.GetInt("mail.port"),
		from:     viper.GetString("mail.sender_address"),
		password: viper.GetString("mail.password"),
	}
}

// SendRegistrationMail sends the welcome mail. Called off the request
// path, failures are logged and swallowed since the registration itself
// already succeeded.
func (m *Mailer) SendRegistrationMail(to, firstName string) {
	subject := "Welcome to Synco"
	body := fmt.Sprintf("Hi %s, welcome to Synco! We are glad to have you joined. Visit our app here: %s",
		firstName, viper.GetString("host.frontend_url"))

	if err := m.send(to, subject, body); err != nil {
		zap.L().Error("Failed to send registration mail", zap.Error(err), zap.String("to", to))
	}
}

// SendVerificationMail sends a mail with the email verification link.
// Same fire-and-forget contract as SendRegistrationMail.
func (m *Mailer) SendVerificationMail(t *model.VerificationToken, to, firstName string, isNew bool) {
	link := fmt.Sprintf("%s/api/verify-email/%s", viper.GetString("host.backend_url"), t.Token)

	var body string
	if isNew {
		body = fmt.Sprintf("Hi %s, verify your email address by clicking <a href='%s'>this link</a>.", firstName, link)
	} else {
		body = fmt.Sprintf("Hi %s, you have changed your email address. Click <a href='%s'>this link</a> to verify it.", firstName, link)
	}

	if err := m.send(to, "Verify your email address", body); err != nil {
		zap.L().Error("Failed to send verification mail", zap.Error(err), zap.String("to", to))
	}
}

func (m *Mailer) send(to, subject, body string) error {
	if to == m.from {
		return fmt.Errorf("invalid recipient address")
	}

	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/html", body)

	d := gomail.NewDialer(m.host, m.port, m.from, m.password)

	return d.DialAndSend(msg)
}
