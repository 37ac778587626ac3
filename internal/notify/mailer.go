// Package notify delivers rendered client reports by e-mail.
package notify

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"mime"
	"mime/multipart"
	"mime/quotedprintable"
	"net/mail"
	"net/smtp"
	"net/textproto"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/cgfgestion/investment-simulator/internal/config"
	"github.com/cgfgestion/investment-simulator/internal/domain"
	"github.com/cgfgestion/investment-simulator/internal/output"
)

var (
	// ErrNotConfigured is returned when no SMTP host is set.
	ErrNotConfigured = errors.New("smtp host not configured")
	// ErrNoRecipient is returned when neither the client file nor the caller
	// names a recipient.
	ErrNoRecipient = errors.New("no recipient e-mail address")
)

// Attachment is a file carried by a Message.
type Attachment struct {
	Filename    string
	ContentType string
	Data        []byte
}

// Message is a plain-text e-mail with optional attachments.
type Message struct {
	From        string
	To          string
	Subject     string
	Body        string
	Attachments []Attachment
}

type sendFunc func(addr string, a smtp.Auth, from string, to []string, msg []byte) error

// Mailer sends messages through the configured SMTP relay.
type Mailer struct {
	settings config.SMTPSettings
	logger   *zap.Logger
	send     sendFunc
}

func NewMailer(settings config.SMTPSettings, logger *zap.Logger) *Mailer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Mailer{settings: settings, logger: logger, send: smtp.SendMail}
}

// Send delivers msg. smtp.SendMail upgrades to STARTTLS when the server offers it.
func (m *Mailer) Send(msg Message) error {
	if !m.settings.Configured() {
		return ErrNotConfigured
	}
	if msg.To == "" {
		return ErrNoRecipient
	}
	from, err := mail.ParseAddress(msg.From)
	if err != nil {
		return fmt.Errorf("sender %q: %w", msg.From, err)
	}
	to, err := mail.ParseAddress(msg.To)
	if err != nil {
		return fmt.Errorf("recipient %q: %w", msg.To, err)
	}

	raw, err := BuildMessage(msg)
	if err != nil {
		return err
	}

	var auth smtp.Auth
	if m.settings.Username != "" {
		auth = smtp.PlainAuth("", m.settings.Username, m.settings.Password, m.settings.Host)
	}
	addr := m.settings.Host + ":" + strconv.Itoa(m.settings.Port)
	if err := m.send(addr, auth, from.Address, []string{to.Address}, raw); err != nil {
		return fmt.Errorf("sending mail via %s: %w", addr, err)
	}
	m.logger.Info("mail sent",
		zap.String("to", to.Address),
		zap.String("subject", msg.Subject),
		zap.Int("attachments", len(msg.Attachments)),
		zap.Int("bytes", len(raw)))
	return nil
}

// BuildMessage renders msg as a MIME message: a quoted-printable text part
// followed by one base64 part per attachment.
func BuildMessage(msg Message) ([]byte, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	header := func(k, v string) { fmt.Fprintf(&buf, "%s: %s\r\n", k, v) }
	header("From", encodeAddress(msg.From))
	header("To", encodeAddress(msg.To))
	header("Subject", mime.QEncoding.Encode("utf-8", msg.Subject))
	header("MIME-Version", "1.0")
	header("Content-Type", "multipart/mixed; boundary="+w.Boundary())
	buf.WriteString("\r\n")

	text, err := w.CreatePart(textproto.MIMEHeader{
		"Content-Type":              {"text/plain; charset=utf-8"},
		"Content-Transfer-Encoding": {"quoted-printable"},
	})
	if err != nil {
		return nil, err
	}
	qp := quotedprintable.NewWriter(text)
	if _, err := qp.Write([]byte(msg.Body)); err != nil {
		return nil, err
	}
	if err := qp.Close(); err != nil {
		return nil, err
	}

	for _, a := range msg.Attachments {
		ct := a.ContentType
		if ct == "" {
			ct = "application/octet-stream"
		}
		part, err := w.CreatePart(textproto.MIMEHeader{
			"Content-Type":              {ct},
			"Content-Transfer-Encoding": {"base64"},
			"Content-Disposition":       {mime.FormatMediaType("attachment", map[string]string{"filename": a.Filename})},
		})
		if err != nil {
			return nil, err
		}
		if err := writeBase64Lines(part, a.Data); err != nil {
			return nil, err
		}
	}

	if err := w.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// encodeAddress encodes a non-ASCII display name per RFC 2047.
func encodeAddress(s string) string {
	addr, err := mail.ParseAddress(s)
	if err != nil {
		return s
	}
	return addr.String()
}

// writeBase64Lines wraps the encoding at 76 characters per RFC 2045.
func writeBase64Lines(w io.Writer, data []byte) error {
	enc := base64.StdEncoding.EncodeToString(data)
	for len(enc) > 76 {
		if _, err := w.Write([]byte(enc[:76] + "\r\n")); err != nil {
			return err
		}
		enc = enc[76:]
	}
	_, err := w.Write([]byte(enc + "\r\n"))
	return err
}

// ReportMessage addresses a rendered PDF report to the client. The sender is
// the advisor when the client file names one, otherwise fallbackFrom.
func ReportMessage(report *domain.Report, pdf []byte, to, fallbackFrom string) (Message, error) {
	if to == "" {
		to = report.Client.Email
	}
	from := report.Client.AdvisorEmail
	if from == "" {
		from = fallbackFrom
	}
	if from == "" {
		return Message{}, errors.New("no sender address: set advisor_email in the client file or smtp.from")
	}

	summary, err := output.ConsoleSummaryFormatter{}.Format(report)
	if err != nil {
		return Message{}, err
	}

	subject := "Investment simulation of " + report.GeneratedAt.Format("2 January 2006")
	if report.Company != "" {
		subject = report.Company + " - " + subject
	}

	var body strings.Builder
	body.WriteString("Hello")
	if report.Client.Name != "" {
		body.WriteString(" " + report.Client.Name)
	}
	body.WriteString(",\n\nPlease find attached your investment simulation")
	if report.Company != "" {
		body.WriteString(" prepared by " + report.Company)
	}
	body.WriteString(".\n\n")
	body.Write(summary)
	body.WriteString("\nThe attached report details the simulation parameters, the expected results and their evolution over time.\n")
	if report.Client.Advisor != "" {
		body.WriteString("\nFor any question, please contact " + report.Client.Advisor + ".\n")
	}

	return Message{
		From:    from,
		To:      to,
		Subject: subject,
		Body:    body.String(),
		Attachments: []Attachment{{
			Filename:    "simulation_" + report.GeneratedAt.Format("2006-01-02") + ".pdf",
			ContentType: "application/pdf",
			Data:        pdf,
		}},
	}, nil
}
