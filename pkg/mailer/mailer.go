// Package mailer delivers transactional email over SMTP.
package mailer

import (
	"bytes"
	"context"
	"embed"
	"errors"
	"fmt"
	"html/template"
	"time"

	gomail "github.com/wneessen/go-mail"
)

//go:embed templates/*.html
var templateFS embed.FS

var templates = template.Must(template.ParseFS(templateFS, "templates/*.html"))

var ErrNoRecipient = errors.New("mailer: recipient required")

type Message struct {
	To      string
	BCC     []string
	Subject string
	HTML    string
}

type Sender interface {
	Send(ctx context.Context, msg Message) error
}

type SMTPSender struct {
	host      string
	port      int
	username  string
	password  string
	fromEmail string
	fromName  string
	timeout   time.Duration
}

func NewSMTPSender(host string, port int, username, password, fromEmail, fromName string) *SMTPSender {
	return &SMTPSender{
		host:      host,
		port:      port,
		username:  username,
		password:  password,
		fromEmail: fromEmail,
		fromName:  fromName,
		timeout:   15 * time.Second,
	}
}

func (s *SMTPSender) Send(ctx context.Context, m Message) error {
	msg, err := buildMsg(s.fromName, s.fromEmail, m)
	if err != nil {
		return err
	}

	opts := []gomail.Option{
		gomail.WithPort(s.port),
		gomail.WithTLSPortPolicy(gomail.TLSOpportunistic),
		gomail.WithTimeout(s.timeout),
	}
	if s.username != "" {
		opts = append(opts,
			gomail.WithSMTPAuth(gomail.SMTPAuthPlain),
			gomail.WithUsername(s.username),
			gomail.WithPassword(s.password),
		)
	}

	client, err := gomail.NewClient(s.host, opts...)
	if err != nil {
		return fmt.Errorf("smtp client: %w", err)
	}

	if err := client.DialAndSendWithContext(ctx, msg); err != nil {
		return fmt.Errorf("smtp send: %w", err)
	}

	return nil
}

func buildMsg(fromName, fromEmail string, m Message) (*gomail.Msg, error) {
	if m.To == "" {
		return nil, ErrNoRecipient
	}

	msg := gomail.NewMsg()
	if err := msg.FromFormat(fromName, fromEmail); err != nil {
		return nil, fmt.Errorf("smtp from: %w", err)
	}
	if err := msg.To(m.To); err != nil {
		return nil, fmt.Errorf("smtp to: %w", err)
	}
	if len(m.BCC) > 0 {
		if err := msg.Bcc(m.BCC...); err != nil {
			return nil, fmt.Errorf("smtp bcc: %w", err)
		}
	}
	msg.Subject(m.Subject)
	msg.SetBodyString(gomail.TypeTextHTML, m.HTML)

	return msg, nil
}

type QuotationLine struct {
	Description string
	Amount      string
}

// QuotationEmail carries already translated strings so templates stay
// language neutral.
type QuotationEmail struct {
	Lang         string
	Heading      string
	Greeting     string
	Intro        string
	QuotationID  string
	Title        string
	Lines        []QuotationLine
	TotalLabel   string
	Total        string
	ValidityNote string
}

func RenderQuotation(data QuotationEmail) (string, error) {
	var buf bytes.Buffer
	if err := templates.ExecuteTemplate(&buf, "quotation.html", data); err != nil {
		return "", fmt.Errorf("render quotation email: %w", err)
	}
	return buf.String(), nil
}
