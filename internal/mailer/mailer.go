// Package mailer sends transactional notification emails over SMTP.
//
// Delivery is strictly best-effort: every public method logs transport
// failures and returns normally, so a notification can never fail the
// operation that triggered it.
package mailer

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"civictide/internal/config"
	"civictide/internal/middleware"
	"civictide/internal/models"
	"civictide/internal/observability"

	"gopkg.in/gomail.v2"
)

// sendTimeout bounds a single SMTP dial-and-send. The send runs inline in the
// request that triggered it, so an unresponsive mail host must not stall the
// request indefinitely.
const sendTimeout = 10 * time.Second

// Dispatcher formats and sends CivicTide notification emails.
type Dispatcher struct {
	cfg    *config.Config
	dialer *gomail.Dialer
	logger *slog.Logger
}

// NewDispatcher returns a Dispatcher using the configured SMTP credentials.
func NewDispatcher(cfg *config.Config) *Dispatcher {
	dialer := gomail.NewDialer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPassword)
	// Port 465 implicit TLS
	dialer.SSL = cfg.SMTPPort == 465

	return &Dispatcher{
		cfg:    cfg,
		dialer: dialer,
		logger: middleware.Logger,
	}
}

// NotifyNewReport alerts one administrator that a citizen submitted a report.
func (d *Dispatcher) NotifyNewReport(adminEmail, title, category, reporterName string) {
	subject := fmt.Sprintf("New Report: %s", title)
	body := d.renderNewReport(title, category, reporterName)
	d.send("new_report", adminEmail, subject, body)
}

// NotifyStatusChange tells a report's author that an administrator changed
// its status. Unknown status values are rendered with their raw identifier
// and the default presentation.
func (d *Dispatcher) NotifyStatusChange(authorEmail, authorName, reportTitle string, newStatus models.ReportStatus, notes string) {
	label, _ := statusPresentation(newStatus)
	subject := fmt.Sprintf("Your Report Status Updated — %s", label)
	body := d.renderStatusUpdate(authorName, reportTitle, newStatus, notes)
	d.send("status_update", authorEmail, subject, body)
}

func (d *Dispatcher) send(kind, to, subject, htmlBody string) {
	if !d.cfg.MailEnabled() {
		d.logger.Warn("email skipped: SMTP not configured", slog.String("to", to), slog.String("subject", subject))
		observability.EmailsSent.WithLabelValues(kind, "skipped").Inc()
		return
	}

	m := gomail.NewMessage()
	m.SetHeader("From", m.FormatAddress(d.cfg.SMTPUser, d.cfg.AppName))
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", htmlBody)

	errc := make(chan error, 1)
	go func() {
		errc <- d.dialer.DialAndSend(m)
	}()

	select {
	case err := <-errc:
		if err != nil {
			d.logger.Error("email send failed",
				slog.String("to", to),
				slog.String("subject", subject),
				slog.String("error", err.Error()),
			)
			observability.EmailsSent.WithLabelValues(kind, "error").Inc()
			return
		}
		d.logger.Info("email sent", slog.String("to", to), slog.String("subject", subject))
		observability.EmailsSent.WithLabelValues(kind, "sent").Inc()
	case <-time.After(sendTimeout):
		d.logger.Error("email send timed out",
			slog.String("to", to),
			slog.String("subject", subject),
			slog.Duration("timeout", sendTimeout),
		)
		observability.EmailsSent.WithLabelValues(kind, "timeout").Inc()
	}
}

var statusColors = map[models.ReportStatus]string{
	models.StatusReported:    "#1a8fe8",
	models.StatusUnderReview: "#f39c12",
	models.StatusInProgress:  "#e67e22",
	models.StatusResolved:    "#27ae60",
	models.StatusRejected:    "#e74c3c",
}

var statusLabels = map[models.ReportStatus]string{
	models.StatusReported:    "Reported",
	models.StatusUnderReview: "Under Review",
	models.StatusInProgress:  "In Progress",
	models.StatusResolved:    "Resolved ✅",
	models.StatusRejected:    "Rejected",
}

const defaultStatusColor = "#1a8fe8"

// statusPresentation maps a status onto its display label and badge color.
// Unknown statuses pass through as their raw identifier with the default color.
func statusPresentation(status models.ReportStatus) (label, color string) {
	label, ok := statusLabels[status]
	if !ok {
		label = string(status)
	}
	color, ok = statusColors[status]
	if !ok {
		color = defaultStatusColor
	}
	return label, color
}

// humanizeCategory turns "road_damage" into "Road Damage".
func humanizeCategory(category string) string {
	words := strings.Split(category, "_")
	for i, w := range words {
		if w == "" {
			continue
		}
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}

func (d *Dispatcher) renderStatusUpdate(name, reportTitle string, status models.ReportStatus, notes string) string {
	label, color := statusPresentation(status)

	notesSection := ""
	if notes != "" {
		notesSection = fmt.Sprintf(`
        <div style="margin-top:16px;padding:16px;background:#f7fafd;border-radius:8px;border-left:4px solid %s;">
            <p style="margin:0;font-size:14px;color:#555;font-weight:600;">Resolution Notes:</p>
            <p style="margin:8px 0 0;font-size:14px;color:#333;">%s</p>
        </div>`, color, notes)
	}

	return fmt.Sprintf(`<!DOCTYPE html>
<html>
<body style="margin:0;padding:0;background:#f7fafd;font-family:'Helvetica Neue',Arial,sans-serif;">
    <div style="max-width:600px;margin:40px auto;background:white;border-radius:16px;overflow:hidden;box-shadow:0 4px 24px rgba(10,58,102,0.08);">
        <div style="background:linear-gradient(135deg,#0a3a66,#1a8fe8);padding:32px;text-align:center;">
            <h1 style="margin:0;color:white;font-size:28px;font-weight:800;">CivicTide 🌊</h1>
            <p style="margin:8px 0 0;color:rgba(255,255,255,0.8);font-size:14px;">Your Voice. Your Community. Your Change.</p>
        </div>
        <div style="padding:32px;">
            <p style="font-size:16px;color:#0a3a66;margin:0 0 16px;">Hi <strong>%s</strong>,</p>
            <p style="font-size:15px;color:#555;margin:0 0 24px;">Your report has been updated. Here's the latest status:</p>
            <div style="padding:16px;background:#f7fafd;border-radius:8px;margin-bottom:20px;">
                <p style="margin:0;font-size:12px;color:#888;text-transform:uppercase;letter-spacing:1px;">Report</p>
                <p style="margin:6px 0 0;font-size:16px;font-weight:700;color:#0a3a66;">%s</p>
            </div>
            <div style="text-align:center;margin:24px 0;">
                <span style="display:inline-block;padding:10px 28px;background:%s;color:white;border-radius:50px;font-size:16px;font-weight:700;">%s</span>
            </div>
            %s
            <div style="text-align:center;margin-top:28px;">
                <a href="%s/reports" style="display:inline-block;padding:12px 32px;background:#1a8fe8;color:white;text-decoration:none;border-radius:10px;font-weight:700;font-size:15px;">View Your Report →</a>
            </div>
        </div>
        <div style="padding:20px 32px;background:#f7fafd;text-align:center;border-top:1px solid #e8f4fd;">
            <p style="margin:0;font-size:12px;color:#aaa;">CivicTide by TechTide Stratum</p>
        </div>
    </div>
</body>
</html>`, name, reportTitle, color, label, notesSection, d.cfg.FrontendURL)
}

func (d *Dispatcher) renderNewReport(title, category, reporterName string) string {
	return fmt.Sprintf(`<!DOCTYPE html>
<html>
<body style="margin:0;padding:0;background:#f7fafd;font-family:'Helvetica Neue',Arial,sans-serif;">
    <div style="max-width:600px;margin:40px auto;background:white;border-radius:16px;overflow:hidden;box-shadow:0 4px 24px rgba(10,58,102,0.08);">
        <div style="background:linear-gradient(135deg,#0a3a66,#1a8fe8);padding:32px;text-align:center;">
            <h1 style="margin:0;color:white;font-size:28px;font-weight:800;">CivicTide 🌊</h1>
        </div>
        <div style="padding:32px;">
            <h2 style="color:#0a3a66;margin:0 0 16px;">New Report Submitted 🚨</h2>
            <p style="color:#555;font-size:15px;">A new community issue has been reported and needs your attention.</p>
            <div style="padding:16px;background:#f7fafd;border-radius:8px;margin:20px 0;">
                <p style="margin:0 0 8px;font-size:13px;color:#888;">REPORT TITLE</p>
                <p style="margin:0;font-size:16px;font-weight:700;color:#0a3a66;">%s</p>
                <p style="margin:8px 0 0;font-size:13px;color:#888;">Category: <strong>%s</strong></p>
                <p style="margin:4px 0 0;font-size:13px;color:#888;">Reported by: <strong>%s</strong></p>
            </div>
            <div style="text-align:center;margin-top:24px;">
                <a href="%s/admin" style="display:inline-block;padding:12px 32px;background:#1a8fe8;color:white;text-decoration:none;border-radius:10px;font-weight:700;">Review on Admin Dashboard →</a>
            </div>
        </div>
    </div>
</body>
</html>`, title, humanizeCategory(category), reporterName, d.cfg.FrontendURL)
}
