package mailer

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"net/smtp"

	"bus-booking/pkg/utils"

	"go.uber.org/zap"
)

// BookingDetails feeds the confirmation template.
type BookingDetails struct {
	CustomerName   string
	BookingID      string
	Route          string
	BookingDate    string
	BookingTime    string
	Seats          string
	Amount         string
	BookingLink    string
	SupportPhone   string
	SupportEmail   string
	CompanyName    string
	CompanyAddress string
}

type Mailer interface {
	SendBookingConfirmation(ctx context.Context, to string, details BookingDetails) error
}

const confirmationSubject = "Your Bus Booking Confirmation"

var confirmationTemplate = template.Must(template.New("booking_confirmation").Parse(`
<div style="font-family: Arial, sans-serif; max-width: 600px; margin: auto;">
  <h2>Booking Confirmed!</h2>
  <p>Hello {{.CustomerName}},</p>
  <p>Your bus ticket has been confirmed with the following details:</p>
  <ul>
    <li><strong>Booking ID:</strong> {{.BookingID}}</li>
    <li><strong>Route:</strong> {{.Route}}</li>
    <li><strong>Date:</strong> {{.BookingDate}}</li>
    <li><strong>Time:</strong> {{.BookingTime}}</li>
    <li><strong>Seats:</strong> {{.Seats}}</li>
    <li><strong>Total:</strong> {{.Amount}}</li>
  </ul>
  <p><a href="{{.BookingLink}}">View your ticket</a></p>
  <p>Need help? Contact support at {{.SupportPhone}} or <a href="mailto:{{.SupportEmail}}">{{.SupportEmail}}</a>.</p>
  <p>Thank you,<br>{{.CompanyName}}<br>{{.CompanyAddress}}</p>
</div>
`))

// smtpMailer sends mail over plain SMTP with AUTH.
type smtpMailer struct {
	config utils.EmailConfig
	log    *zap.Logger
}

// logMailer hanya menulis log, dipakai saat SMTP belum dikonfigurasi
type logMailer struct {
	log *zap.Logger
}

// NewMailer returns the SMTP mailer, or a log-only mailer when no SMTP host
// is configured (development).
func NewMailer(config utils.EmailConfig, log *zap.Logger) Mailer {
	if config.Host == "" {
		log.Warn("SMTP not configured, booking confirmations will only be logged")
		return &logMailer{log: log.With(zap.String("mailer", "log"))}
	}
	return &smtpMailer{
		config: config,
		log:    log.With(zap.String("mailer", "smtp")),
	}
}

func (m *smtpMailer) SendBookingConfirmation(ctx context.Context, to string, details BookingDetails) error {
	var body bytes.Buffer
	if err := confirmationTemplate.Execute(&body, details); err != nil {
		return fmt.Errorf("render confirmation template: %w", err)
	}

	msg := buildMessage(m.config.From, to, confirmationSubject, body.String())

	addr := fmt.Sprintf("%s:%d", m.config.Host, m.config.Port)
	auth := smtp.PlainAuth("", m.config.User, m.config.Password, m.config.Host)

	done := make(chan error, 1)
	go func() {
		done <- smtp.SendMail(addr, auth, m.config.From, []string{to}, msg)
	}()

	// smtp.SendMail has no context support, so honor cancellation ourselves.
	select {
	case err := <-done:
		if err != nil {
			m.log.Error("Failed to send confirmation email",
				zap.Error(err),
				zap.String("to", to),
				zap.String("booking_id", details.BookingID),
			)
			return fmt.Errorf("send confirmation email to %s: %w", to, err)
		}
	case <-ctx.Done():
		return fmt.Errorf("send confirmation email to %s: %w", to, ctx.Err())
	}

	m.log.Info("Confirmation email sent",
		zap.String("to", to),
		zap.String("booking_id", details.BookingID),
	)
	return nil
}

func (m *logMailer) SendBookingConfirmation(_ context.Context, to string, details BookingDetails) error {
	m.log.Info("Booking confirmation (not sent, SMTP disabled)",
		zap.String("to", to),
		zap.String("booking_id", details.BookingID),
		zap.String("route", details.Route),
		zap.String("seats", details.Seats),
	)
	return nil
}

func buildMessage(from, to, subject, htmlBody string) []byte {
	var msg bytes.Buffer
	msg.WriteString(fmt.Sprintf("From: %s\r\n", from))
	msg.WriteString(fmt.Sprintf("To: %s\r\n", to))
	msg.WriteString(fmt.Sprintf("Subject: %s\r\n", subject))
	msg.WriteString("MIME-Version: 1.0\r\n")
	msg.WriteString("Content-Type: text/html; charset=\"UTF-8\"\r\n")
	msg.WriteString("\r\n")
	msg.WriteString(htmlBody)
	return msg.Bytes()
}
