// Package email is the outbound mail capability of the server. Senders are
// injected so business code never depends on a concrete transport.
package email

import (
	"context"
	"fmt"
	"net/smtp"
	"strings"
)

// Message is a plain-text email.
type Message struct {
	From    string
	To      string
	Subject string
	Text    string
}

// Sender delivers a message. Delivery is fire-and-forget from the caller's
// perspective: a failed send never rolls back the business operation that
// triggered it.
type Sender interface {
	Send(ctx context.Context, msg Message) error
}

// SMTPSender delivers messages through a plain SMTP relay, such as the
// MailCatcher instance used in development.
type SMTPSender struct {
	addr     string
	username string
	password string
}

// NewSMTPSender builds a sender for the relay at addr (host:port).
// Empty credentials mean unauthenticated SMTP.
func NewSMTPSender(addr, username, password string) *SMTPSender {
	return &SMTPSender{addr: addr, username: username, password: password}
}

func (s *SMTPSender) Send(ctx context.Context, msg Message) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	var auth smtp.Auth
	if s.username != "" {
		host := s.addr
		if i := strings.LastIndex(host, ":"); i >= 0 {
			host = host[:i]
		}
		auth = smtp.PlainAuth("", s.username, s.password, host)
	}

	from := envelopeAddress(msg.From)
	to := envelopeAddress(msg.To)

	if err := smtp.SendMail(s.addr, auth, from, []string{to}, BuildBody(msg)); err != nil {
		return fmt.Errorf("smtp send error: %w", err)
	}
	return nil
}

// BuildBody renders the RFC 5322 payload handed to the SMTP DATA command.
func BuildBody(msg Message) []byte {
	var b strings.Builder
	fmt.Fprintf(&b, "From: %s\r\n", msg.From)
	fmt.Fprintf(&b, "To: %s\r\n", msg.To)
	fmt.Fprintf(&b, "Subject: %s\r\n", msg.Subject)
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: text/plain; charset=utf-8\r\n")
	b.WriteString("\r\n")
	b.WriteString(msg.Text)
	return []byte(b.String())
}

// envelopeAddress strips a display name ("MeuBonsai <a@b>" -> "a@b") for
// the SMTP envelope; headers keep the full form.
func envelopeAddress(addr string) string {
	if start := strings.LastIndex(addr, "<"); start >= 0 {
		if end := strings.LastIndex(addr, ">"); end > start {
			return addr[start+1 : end]
		}
	}
	return addr
}
