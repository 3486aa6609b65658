package mailer

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"net/url"

	"github.com/miservicio/auth-service/internal/core/ports"

	"github.com/wneessen/go-mail"
)

const verificationSubject = "Verify your email address"

var verificationBody = template.Must(template.New("verification").Parse(`<!DOCTYPE html>
<html>
<body style="font-family: -apple-system, 'Segoe UI', Roboto, Arial, sans-serif; background-color: #f5f5f5; padding: 40px;">
  <div style="max-width: 600px; margin: 0 auto; background: #ffffff; border-radius: 12px; padding: 40px;">
    <h2 style="color: #111827;">Welcome!</h2>
    <p style="color: #6B7280; line-height: 1.6;">
      Thanks for signing up. To complete your registration, please verify your
      email address by clicking the button below.
    </p>
    <p style="text-align: center; margin: 32px 0;">
      <a href="{{.Link}}" style="display: inline-block; padding: 14px 32px; background-color: #2563EB; color: #ffffff; text-decoration: none; border-radius: 8px; font-weight: 600;">
        Verify my email
      </a>
    </p>
    <p style="color: #9CA3AF; font-size: 14px;">
      If the button does not work, copy and paste this link into your browser:<br>
      <a href="{{.Link}}" style="color: #2563EB; word-break: break-all;">{{.Link}}</a>
    </p>
    <p style="color: #9CA3AF; font-size: 12px;">
      This link expires in 24 hours. If you did not request this email, you can ignore it.
    </p>
  </div>
</body>
</html>`))

// SMTPMailer renders and delivers the verification message over SMTP.
type SMTPMailer struct {
	host        string
	port        int
	username    string
	password    string
	from        string
	frontendURL string
	logger      ports.LoggerPort
}

func NewSMTPMailer(host string, port int, username, password, from, frontendURL string, logger ports.LoggerPort) *SMTPMailer {
	return &SMTPMailer{
		host:        host,
		port:        port,
		username:    username,
		password:    password,
		from:        from,
		frontendURL: frontendURL,
		logger:      logger,
	}
}

func (m *SMTPMailer) SendVerificationEmail(ctx context.Context, to, token string) error {
	link := fmt.Sprintf("%s/auth/verify-email?token=%s", m.frontendURL, url.QueryEscape(token))

	msg := mail.NewMsg()
	if err := msg.From(m.from); err != nil {
		return fmt.Errorf("invalid sender address: %w", err)
	}
	if err := msg.To(to); err != nil {
		return fmt.Errorf("invalid recipient address: %w", err)
	}
	msg.Subject(verificationSubject)
	msg.SetBodyString(mail.TypeTextPlain, fmt.Sprintf(
		"Verify your email address\n\nOpen the following link to verify your account:\n%s\n\nThis link expires in 24 hours.", link))

	var html bytes.Buffer
	if err := verificationBody.Execute(&html, struct{ Link string }{Link: link}); err != nil {
		return fmt.Errorf("render verification email: %w", err)
	}
	msg.AddAlternativeString(mail.TypeTextHTML, html.String())

	client, err := mail.NewClient(m.host,
		mail.WithPort(m.port),
		mail.WithSMTPAuth(mail.SMTPAuthPlain),
		mail.WithUsername(m.username),
		mail.WithPassword(m.password),
		mail.WithTLSPolicy(mail.TLSOpportunistic),
	)
	if err != nil {
		return fmt.Errorf("smtp client: %w", err)
	}

	return client.DialAndSendWithContext(ctx, msg)
}

var _ ports.VerificationMailer = (*SMTPMailer)(nil)
