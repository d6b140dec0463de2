package mail

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"mime"
	"net"
	"net/smtp"
	"strings"
	"time"

	"github.com/vibast-solutions/ms-go-portfolio/config"
)

var ErrSMTPNotConfigured = errors.New("smtp host is not configured")

type Sender interface {
	Send(ctx context.Context, msg *Message) error
}

// SMTPSender delivers HTML mail. Secure selects implicit TLS (port 465);
// otherwise STARTTLS is used when the server offers it.
type SMTPSender struct {
	host     string
	port     string
	secure   bool
	username string
	password string
	from     string
	timeout  time.Duration
}

func NewSMTPSender(cfg config.SMTPConfig) *SMTPSender {
	from := cfg.From
	if from == "" {
		from = cfg.User
	}
	return &SMTPSender{
		host:     cfg.Host,
		port:     cfg.Port,
		secure:   cfg.Secure,
		username: cfg.User,
		password: cfg.Password,
		from:     from,
		timeout:  30 * time.Second,
	}
}

func (e *SMTPSender) Send(ctx context.Context, msg *Message) error {
	if e.host == "" {
		return ErrSMTPNotConfigured
	}

	serverAddr := net.JoinHostPort(e.host, e.port)
	dialer := &net.Dialer{Timeout: e.timeout}
	tlsConfig := &tls.Config{ServerName: e.host}

	var conn net.Conn
	var err error
	if e.secure {
		conn, err = tls.DialWithDialer(dialer, "tcp", serverAddr, tlsConfig)
	} else {
		conn, err = dialer.DialContext(ctx, "tcp", serverAddr)
	}
	if err != nil {
		return err
	}
	if deadline, ok := ctx.Deadline(); ok {
		_ = conn.SetDeadline(deadline)
	} else {
		_ = conn.SetDeadline(time.Now().Add(e.timeout))
	}

	client, err := smtp.NewClient(conn, e.host)
	if err != nil {
		_ = conn.Close()
		return err
	}
	defer client.Close()

	if !e.secure {
		if ok, _ := client.Extension("STARTTLS"); ok {
			if err = client.StartTLS(tlsConfig); err != nil {
				return err
			}
		}
	}

	if e.username != "" {
		auth := smtp.PlainAuth("", e.username, e.password, e.host)
		if err = client.Auth(auth); err != nil {
			return err
		}
	}

	if err = client.Mail(envelopeAddress(e.from)); err != nil {
		return err
	}
	if err = client.Rcpt(msg.To); err != nil {
		return err
	}

	w, err := client.Data()
	if err != nil {
		return err
	}
	if _, err = w.Write(BuildMIME(e.from, msg)); err != nil {
		return err
	}
	if err = w.Close(); err != nil {
		return err
	}

	return client.Quit()
}

// BuildMIME assembles the raw message bytes.
func BuildMIME(from string, msg *Message) []byte {
	var b strings.Builder
	fmt.Fprintf(&b, "From: %s\r\n", from)
	fmt.Fprintf(&b, "To: %s\r\n", msg.To)
	fmt.Fprintf(&b, "Subject: %s\r\n", mime.QEncoding.Encode("utf-8", msg.Subject))
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: text/html; charset=\"utf-8\"\r\n")
	b.WriteString("\r\n")
	b.WriteString(msg.HTML)
	return []byte(b.String())
}

// envelopeAddress strips a display name: "Name <a@b>" -> "a@b".
func envelopeAddress(from string) string {
	if start := strings.LastIndex(from, "<"); start != -1 {
		if end := strings.LastIndex(from, ">"); end > start {
			return from[start+1 : end]
		}
	}
	return from
}
