package notify

import (
	"bytes"
	"encoding/base64"
	"errors"
	"io"
	"mime"
	"mime/multipart"
	"mime/quotedprintable"
	"net/mail"
	"net/smtp"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/cgfgestion/investment-simulator/internal/config"
	"github.com/cgfgestion/investment-simulator/internal/domain"
)

type capturedMail struct {
	addr string
	auth smtp.Auth
	from string
	to   []string
	raw  []byte
}

func newTestMailer(t *testing.T, settings config.SMTPSettings) (*Mailer, *capturedMail, *observer.ObservedLogs) {
	t.Helper()
	core, logs := observer.New(zap.InfoLevel)
	m := NewMailer(settings, zap.New(core))
	got := &capturedMail{}
	m.send = func(addr string, a smtp.Auth, from string, to []string, msg []byte) error {
		*got = capturedMail{addr: addr, auth: a, from: from, to: to, raw: msg}
		return nil
	}
	return m, got, logs
}

var relay = config.SMTPSettings{Host: "smtp.example.com", Port: 587, Username: "reports", Password: "secret"}

type mailPart struct {
	contentType string
	filename    string
	body        []byte
}

func parseMail(t *testing.T, raw []byte) (*mail.Message, []mailPart) {
	t.Helper()
	msg, err := mail.ReadMessage(bytes.NewReader(raw))
	require.NoError(t, err)
	mediaType, params, err := mime.ParseMediaType(msg.Header.Get("Content-Type"))
	require.NoError(t, err)
	require.Equal(t, "multipart/mixed", mediaType)

	var parts []mailPart
	r := multipart.NewReader(msg.Body, params["boundary"])
	for {
		p, err := r.NextRawPart()
		if errors.Is(err, io.EOF) {
			break
		}
		require.NoError(t, err)
		var body []byte
		switch p.Header.Get("Content-Transfer-Encoding") {
		case "base64":
			enc, err := io.ReadAll(p)
			require.NoError(t, err)
			body, err = base64.StdEncoding.DecodeString(strings.ReplaceAll(string(enc), "\r\n", ""))
			require.NoError(t, err)
		case "quoted-printable":
			body, err = io.ReadAll(quotedprintable.NewReader(p))
			require.NoError(t, err)
		}
		_, dparams, _ := mime.ParseMediaType(p.Header.Get("Content-Disposition"))
		parts = append(parts, mailPart{contentType: p.Header.Get("Content-Type"), filename: dparams["filename"], body: body})
	}
	return msg, parts
}

func TestMailer_SendsAttachment(t *testing.T) {
	m, got, logs := newTestMailer(t, relay)
	pdf := bytes.Repeat([]byte("%PDF-1.3 binary\x00\xff"), 40)

	err := m.Send(Message{
		From:        "Jean Traoré <jean.traore@example.com>",
		To:          "awa.kone@example.com",
		Subject:     "Simulation d'investissement",
		Body:        "Bonjour,\nvoici votre simulation à 5,00 %.",
		Attachments: []Attachment{{Filename: "simulation.pdf", ContentType: "application/pdf", Data: pdf}},
	})
	require.NoError(t, err)

	assert.Equal(t, "smtp.example.com:587", got.addr)
	assert.NotNil(t, got.auth)
	assert.Equal(t, "jean.traore@example.com", got.from)
	assert.Equal(t, []string{"awa.kone@example.com"}, got.to)

	msg, parts := parseMail(t, got.raw)
	subject, err := new(mime.WordDecoder).DecodeHeader(msg.Header.Get("Subject"))
	require.NoError(t, err)
	assert.Equal(t, "Simulation d'investissement", subject)
	assert.Equal(t, "1.0", msg.Header.Get("MIME-Version"))
	from, err := msg.Header.AddressList("From")
	require.NoError(t, err)
	assert.Equal(t, "Jean Traoré", from[0].Name)

	require.Len(t, parts, 2)
	assert.Equal(t, "text/plain; charset=utf-8", parts[0].contentType)
	// text line breaks travel as CRLF
	assert.Equal(t, "Bonjour,\nvoici votre simulation à 5,00 %.", strings.ReplaceAll(string(parts[0].body), "\r\n", "\n"))
	assert.Equal(t, "application/pdf", parts[1].contentType)
	assert.Equal(t, "simulation.pdf", parts[1].filename)
	assert.Equal(t, pdf, parts[1].body)

	for _, line := range strings.Split(string(got.raw), "\r\n") {
		assert.LessOrEqual(t, len(line), 998)
	}

	require.Equal(t, 1, logs.FilterMessage("mail sent").Len())
	assert.Equal(t, "awa.kone@example.com", logs.All()[0].ContextMap()["to"])
}

func TestMailer_NoAuthWithoutUsername(t *testing.T) {
	m, got, _ := newTestMailer(t, config.SMTPSettings{Host: "localhost", Port: 25})
	require.NoError(t, m.Send(Message{From: "a@example.com", To: "b@example.com", Subject: "s", Body: "b"}))
	assert.Nil(t, got.auth)
	assert.Equal(t, "localhost:25", got.addr)
}

func TestMailer_Errors(t *testing.T) {
	m, _, _ := newTestMailer(t, config.SMTPSettings{})
	assert.ErrorIs(t, m.Send(Message{From: "a@example.com", To: "b@example.com"}), ErrNotConfigured)

	m, _, _ = newTestMailer(t, relay)
	assert.ErrorIs(t, m.Send(Message{From: "a@example.com"}), ErrNoRecipient)
	assert.ErrorContains(t, m.Send(Message{From: "nobody", To: "b@example.com"}), "sender")
	assert.ErrorContains(t, m.Send(Message{From: "a@example.com", To: "@@"}), "recipient")

	m.send = func(string, smtp.Auth, string, []string, []byte) error { return errors.New("535 authentication failed") }
	err := m.Send(Message{From: "a@example.com", To: "b@example.com"})
	assert.ErrorContains(t, err, "smtp.example.com:587")
	assert.ErrorContains(t, err, "535 authentication failed")
}

func testReport() *domain.Report {
	return &domain.Report{
		Company:     "CGF Gestion",
		Currency:    "FCFA",
		Client:      domain.ClientInfo{Name: "Awa Koné", Email: "awa.kone@example.com", Advisor: "Jean Traoré", AdvisorEmail: "jean.traore@example.com"},
		GeneratedAt: time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC),
		Entries: []domain.ReportEntry{{
			Name:      "Retirement",
			Result:    &domain.Result{Mode: domain.ModeFutureValue, Value: 7928814.92},
			Breakdown: domain.Breakdown{TotalInvested: 6100000, TotalInterest: 1828814.92, FinalValue: 7928814.92},
		}},
	}
}

func TestReportMessage(t *testing.T) {
	pdf := []byte("%PDF-")
	msg, err := ReportMessage(testReport(), pdf, "", "")
	require.NoError(t, err)

	assert.Equal(t, "jean.traore@example.com", msg.From)
	assert.Equal(t, "awa.kone@example.com", msg.To)
	assert.Equal(t, "CGF Gestion - Investment simulation of 1 March 2026", msg.Subject)
	assert.Contains(t, msg.Body, "Hello Awa Koné,")
	assert.Contains(t, msg.Body, "prepared by CGF Gestion")
	assert.Contains(t, msg.Body, "Retirement: Final Value = 7 928 815 FCFA")
	assert.Contains(t, msg.Body, "please contact Jean Traoré")
	require.Len(t, msg.Attachments, 1)
	assert.Equal(t, "simulation_2026-03-01.pdf", msg.Attachments[0].Filename)
	assert.Equal(t, pdf, msg.Attachments[0].Data)
}

func TestReportMessage_Addresses(t *testing.T) {
	r := testReport()
	msg, err := ReportMessage(r, nil, "other@example.com", "reports@example.com")
	require.NoError(t, err)
	assert.Equal(t, "other@example.com", msg.To)
	assert.Equal(t, "jean.traore@example.com", msg.From)

	r.Client.AdvisorEmail = ""
	msg, err = ReportMessage(r, nil, "", "reports@example.com")
	require.NoError(t, err)
	assert.Equal(t, "reports@example.com", msg.From)

	_, err = ReportMessage(r, nil, "", "")
	assert.ErrorContains(t, err, "no sender address")
}
