package notify

import (
	"fmt"
	"log"
	"net/smtp"
	"strings"
	"time"

	"github.com/rogerio-castellano/pos-tracker/internal/repo"
)

// Mailer sends an optional email copy of the daily summary. All sends are
// fire-and-forget; a misconfigured SMTP server only costs a log line.
type Mailer struct {
	From         string
	To           string
	Server       string
	Port         string
	User         string
	Password     string
	AuthDisabled bool
}

func (m *Mailer) Enabled() bool {
	return m != nil && m.Server != "" && m.To != ""
}

func (m *Mailer) SendDailySummary(totals repo.SaleTotals) {
	if !m.Enabled() {
		return
	}

	subject := "Daily Sales Summary"
	var sb strings.Builder
	sb.WriteString("<h2>Daily Sales Summary</h2>")
	sb.WriteString(fmt.Sprintf("<p>Sales: <strong>%d</strong></p>", totals.Count))
	sb.WriteString(fmt.Sprintf("<p>Revenue: <strong>%.2f</strong></p>", totals.Revenue))
	sb.WriteString(fmt.Sprintf("<p>Profit: <strong>%.2f</strong></p>", totals.Profit))
	sb.WriteString(fmt.Sprintf("<p>Date: %s</p>", time.Now().Format(time.RFC822)))

	msg := strings.Join([]string{
		"From: " + m.From,
		"To: " + m.To,
		"Subject: " + subject,
		"MIME-Version: 1.0",
		"Content-Type: text/html; charset=\"UTF-8\"",
		"",
		sb.String(),
	}, "\r\n")

	addr := fmt.Sprintf("%s:%s", m.Server, m.Port)
	auth := smtp.PlainAuth("", m.User, m.Password, m.Server)
	if m.AuthDisabled {
		auth = nil
	}

	go func() {
		if err := smtp.SendMail(addr, auth, m.From, []string{m.To}, []byte(msg)); err != nil {
			log.Printf("Failed to send daily summary email: %v", err)
		}
	}()
}
