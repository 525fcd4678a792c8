package email

import (
	"bytes"
	"fmt"
	"html/template"
	"mime"
	"net"
	"net/mail"
	"net/smtp"
	"strconv"
	"time"
)

// EmailConfig holds SMTP configuration
type EmailConfig struct {
	SMTPHost     string
	SMTPPort     int
	SMTPUsername string
	SMTPPassword string
	FromName     string
	FromEmail    string
	StoreName    string
}

// SendFunc matches smtp.SendMail
type SendFunc func(addr string, a smtp.Auth, from string, to []string, msg []byte) error

// EmailService handles email sending
type EmailService struct {
	config EmailConfig
	send   SendFunc
}

// NewEmailService creates a new email service
func NewEmailService(config EmailConfig) *EmailService {
	return &EmailService{config: config, send: smtp.SendMail}
}

// WithSender replaces the SMTP transport
func (s *EmailService) WithSender(send SendFunc) *EmailService {
	s.send = send
	return s
}

// Alert is one line of an operator alert email
type Alert struct {
	Reason  string
	Message string
}

// SendOperatorAlert mails a batch of stock alerts to the operator
func (s *EmailService) SendOperatorAlert(toEmail, saleRef string, alerts []Alert) error {
	if len(alerts) == 0 {
		return nil
	}
	body, err := s.renderOperatorAlert(saleRef, alerts)
	if err != nil {
		return fmt.Errorf("render operator alert: %w", err)
	}
	subject := fmt.Sprintf("[%s] %d stock alert(s)", s.config.StoreName, len(alerts))
	return s.deliver(toEmail, s.compose(toEmail, subject, body, time.Now()))
}

func (s *EmailService) deliver(to string, msg []byte) error {
	addr := net.JoinHostPort(s.config.SMTPHost, strconv.Itoa(s.config.SMTPPort))

	var auth smtp.Auth
	if s.config.SMTPUsername != "" {
		auth = smtp.PlainAuth("", s.config.SMTPUsername, s.config.SMTPPassword, s.config.SMTPHost)
	}
	if err := s.send(addr, auth, s.config.FromEmail, []string{to}, msg); err != nil {
		return fmt.Errorf("smtp %s: %w", addr, err)
	}
	return nil
}

// compose prepends RFC 5322 headers to an HTML body
func (s *EmailService) compose(to, subject, htmlBody string, at time.Time) []byte {
	var b bytes.Buffer
	from := (&mail.Address{Name: s.config.FromName, Address: s.config.FromEmail}).String()
	header := [][2]string{
		{"From", from},
		{"To", to},
		{"Subject", mime.QEncoding.Encode("utf-8", subject)},
		{"Date", at.Format(time.RFC1123Z)},
		{"MIME-Version", "1.0"},
		{"Content-Type", `text/html; charset="UTF-8"`},
	}
	for _, h := range header {
		b.WriteString(h[0] + ": " + h[1] + "\r\n")
	}
	b.WriteString("\r\n")
	b.WriteString(htmlBody)
	return b.Bytes()
}

func (s *EmailService) renderOperatorAlert(saleRef string, alerts []Alert) (string, error) {
	data := struct {
		StoreName string
		SaleRef   string
		Alerts    []Alert
	}{
		StoreName: s.config.StoreName,
		SaleRef:   saleRef,
		Alerts:    alerts,
	}

	var buf bytes.Buffer
	if err := operatorAlertTmpl.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}

var operatorAlertTmpl = template.Must(template.New("operator_alert").Parse(`
<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="UTF-8">
    <title>Stock alerts</title>
</head>
<body style="margin: 0; padding: 24px; font-family: 'Segoe UI', Tahoma, Geneva, Verdana, sans-serif; background-color: #f4f7fa;">
    <h2 style="color: #1a1a2e; margin: 0 0 12px 0;">{{.StoreName}}: stock alerts</h2>
    {{if .SaleRef}}<p style="color: #4a5568; margin: 0 0 16px 0;">Raised while finalizing sale <strong>{{.SaleRef}}</strong>.</p>{{end}}
    <table role="presentation" style="border-collapse: collapse; width: 100%; max-width: 640px; background-color: #ffffff;">
        <tr>
            <th style="text-align: left; padding: 8px; border-bottom: 1px solid #e2e8f0;">Reason</th>
            <th style="text-align: left; padding: 8px; border-bottom: 1px solid #e2e8f0;">Detail</th>
        </tr>
        {{range .Alerts}}
        <tr>
            <td style="padding: 8px; border-bottom: 1px solid #edf2f7; color: #c05621;">{{.Reason}}</td>
            <td style="padding: 8px; border-bottom: 1px solid #edf2f7; color: #4a5568;">{{.Message}}</td>
        </tr>
        {{end}}
    </table>
</body>
</html>
`))
