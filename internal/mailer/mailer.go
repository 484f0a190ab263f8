package mailer

import (
	"bytes"
	"errors"
	"fmt"
	"html/template"
	"net/smtp"
	"strings"
	"time"

	jwemail "github.com/jordan-wright/email"

	"artjobs-engine/internal/config"
	"artjobs-engine/internal/secrets"
	"artjobs-engine/internal/store"
)

// Configured reports whether the SMTP block is complete enough to send.
func Configured(cfg config.Config) bool {
	s := cfg.SMTP
	return s.Enabled && s.Host != "" && s.Port > 0 && s.User != "" && s.From != ""
}

// SendDigest renders the job digest and mails it. Recipient falls back to
// the From address, which is what a personal job tracker usually wants.
// message is an optional personal note shown above the listings.
func SendDigest(cfg config.Config, to, message string, jobs []store.Job) error {
	if !Configured(cfg) {
		return errors.New("smtp is not configured")
	}
	if len(jobs) == 0 {
		return errors.New("no jobs to send")
	}
	if strings.TrimSpace(to) == "" {
		to = cfg.SMTP.From
	}

	pw, err := secrets.GetSMTPPassword(secrets.SMTPKeyringAccount(cfg))
	if err != nil {
		return err
	}

	html, err := RenderDigest(jobs, message)
	if err != nil {
		return fmt.Errorf("render digest: %w", err)
	}

	mail := jwemail.NewEmail()
	mail.From = fmt.Sprintf("ArtJobs <%s>", cfg.SMTP.From)
	mail.To = []string{to}
	mail.Subject = fmt.Sprintf("%d Character Artist Opportunities for You", len(jobs))
	mail.Text = []byte(textDigest(jobs, message))
	mail.HTML = html

	addr := fmt.Sprintf("%s:%d", cfg.SMTP.Host, cfg.SMTP.Port)
	return mail.Send(addr, smtp.PlainAuth("", cfg.SMTP.User, pw, cfg.SMTP.Host))
}

var digestTmpl = template.Must(template.New("digest").Parse(`<!DOCTYPE html>
<html>
<body style="font-family: Arial, sans-serif; color: #222;">
  <h2>Character Artist Jobs &mdash; {{.Date}}</h2>
  {{if .Message}}<p style="background: #fffbe6; border: 1px solid #eed; border-radius: 6px; padding: 10px;">{{.Message}}</p>{{end}}
  <p>{{len .Jobs}} listings, highest relevance first.</p>
  {{range .Jobs}}
  <div style="border: 1px solid #ddd; border-radius: 6px; padding: 12px; margin-bottom: 10px;">
    <a href="{{.URL}}" style="font-size: 16px; font-weight: bold;">{{.Title}}</a>
    <div style="color: #555;">{{.Company}}{{if .Location}} &middot; {{.Location}}{{end}}{{if .RemoteType}} &middot; {{.RemoteType}}{{end}}</div>
    <div style="margin-top: 4px;">
      <span style="background: #eef; border-radius: 3px; padding: 2px 6px;">relevance {{.RelevanceScore}}/10</span>
      {{if .IsEntryLevel}}<span style="background: #efe; border-radius: 3px; padding: 2px 6px;">entry level</span>{{end}}
      <span style="color: #888;">{{.Platform}}</span>
    </div>
  </div>
  {{end}}
</body>
</html>
`))

// RenderDigest produces the HTML body on its own so tests and previews do
// not need an SMTP server.
func RenderDigest(jobs []store.Job, message string) ([]byte, error) {
	var buf bytes.Buffer
	err := digestTmpl.Execute(&buf, struct {
		Date    string
		Message string
		Jobs    []store.Job
	}{
		Date:    time.Now().Format("Jan 2, 2006"),
		Message: message,
		Jobs:    jobs,
	})
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func textDigest(jobs []store.Job, message string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Character Artist Jobs Digest (%d listings)\n\n", len(jobs))
	if message != "" {
		fmt.Fprintf(&b, "%s\n\n", message)
	}
	for _, j := range jobs {
		fmt.Fprintf(&b, "[%d/10] %s - %s\n", j.RelevanceScore, j.Title, j.Company)
		if j.Location != "" {
			fmt.Fprintf(&b, "       %s\n", j.Location)
		}
		fmt.Fprintf(&b, "       %s\n\n", j.URL)
	}
	return b.String()
}
