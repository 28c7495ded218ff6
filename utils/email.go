package utils

import (
	"crypto/tls"
	"fmt"
	"net/smtp"
	"os"
	"sync"
	"time"
)

// ======================
// SMTP Configuration
// ======================
var (
	smtpHost      = os.Getenv("SMTP_HOST")
	smtpPort      = os.Getenv("SMTP_PORT")
	smtpUsername  = os.Getenv("SMTP_USERNAME")
	smtpPassword  = os.Getenv("SMTP_PASSWORD")
	smtpFromName  = os.Getenv("SMTP_FROM_NAME")
	smtpFromEmail = os.Getenv("SMTP_FROM_EMAIL")
	frontendURL   = os.Getenv("FRONTEND_URL")
	smtpTimeout   = 10 * time.Second // Timeout for SMTP connection
)

// ======================
// Low-level sendEmail with STARTTLS
// ======================
func sendEmail(to, subject, body string) error {
	if smtpHost == "" || smtpUsername == "" || smtpPassword == "" {
		fmt.Println("⚠️ SMTP not configured. Email not sent.")
		return nil
	}

	if smtpFromEmail == "" {
		smtpFromEmail = smtpUsername
	}

	addr := fmt.Sprintf("%s:%s", smtpHost, smtpPort)

	// Dial plain first, then upgrade with StartTLS
	client, err := smtp.Dial(addr)
	if err != nil {
		fmt.Printf("❌ Failed to dial SMTP server: %v\n", err)
		return fmt.Errorf("failed to dial SMTP server: %w", err)
	}
	defer client.Close()

	tlsConfig := &tls.Config{
		InsecureSkipVerify: true,
		ServerName:         smtpHost,
	}

	if err = client.StartTLS(tlsConfig); err != nil {
		fmt.Printf("❌ TLS connection error: %v\n", err)
		return fmt.Errorf("failed to start TLS: %w", err)
	}

	auth := smtp.PlainAuth("", smtpUsername, smtpPassword, smtpHost)
	if err := client.Auth(auth); err != nil {
		fmt.Printf("❌ SMTP auth error: %v\n", err)
		return fmt.Errorf("authentication failed: %w", err)
	}

	if err := client.Mail(smtpFromEmail); err != nil {
		return fmt.Errorf("failed to set sender: %w", err)
	}

	if err := client.Rcpt(to); err != nil {
		return fmt.Errorf("failed to set recipient: %w", err)
	}

	w, err := client.Data()
	if err != nil {
		return fmt.Errorf("failed to get data writer: %w", err)
	}

	from := smtpFromName
	if from == "" {
		from = smtpFromEmail
	} else {
		from = fmt.Sprintf("%s <%s>", smtpFromName, smtpFromEmail)
	}

	msg := []byte(fmt.Sprintf("From: %s\r\n"+
		"To: %s\r\n"+
		"Subject: %s\r\n"+
		"MIME-Version: 1.0\r\n"+
		"Content-Type: text/plain; charset=UTF-8\r\n"+
		"\r\n%s", from, to, subject, body))

	if _, err = w.Write(msg); err != nil {
		w.Close()
		return fmt.Errorf("failed to write message: %w", err)
	}

	if err = w.Close(); err != nil {
		return fmt.Errorf("failed to close writer: %w", err)
	}

	if err := client.Quit(); err != nil {
		fmt.Printf("⚠️ QUIT command error (non-critical): %v\n", err)
	}

	return nil
}

// ======================
// Async bulk email sender
// ======================
func SendBulkEmailsAsync(recipients []string, subject, body string) {
	go func() {
		var wg sync.WaitGroup
		for _, email := range recipients {
			wg.Add(1)
			go func(to string) {
				defer wg.Done()
				if err := sendEmail(to, subject, body); err != nil {
					fmt.Printf("❌ Failed to send email to %s: %v\n", to, err)
				}
			}(email)
		}
		wg.Wait()
	}()
}

// ======================
// Password Reset
// ======================
func SendResetLink(toEmail string, resetToken string) error {
	baseURL := frontendURL
	if baseURL == "" {
		baseURL = "http://localhost:5173"
		fmt.Println("⚠️ FRONTEND_URL not set, using default:", baseURL)
	}

	resetURL := fmt.Sprintf("%s/reset-password?token=%s", baseURL, resetToken)
	subject := "Reset your password"
	body := fmt.Sprintf("Click here to reset your password: %s\n\nIf you did not request this password reset, please ignore this email.", resetURL)

	return sendEmail(toEmail, subject, body)
}

// ======================
// Booking Emails
// ======================
func SendBookingConfirmationEmail(toEmail, guestName, roomNumber, checkIn, checkOut string, total float64) {
	subject := "Your booking is confirmed"
	body := fmt.Sprintf("Hello %s,\n\nYour booking for room %s from %s to %s has been confirmed.\nTotal paid: $%.2f\n\nWe look forward to your stay.", guestName, roomNumber, checkIn, checkOut, total)
	if err := sendEmail(toEmail, subject, body); err != nil {
		fmt.Printf("❌ Failed to send booking confirmation to %s: %v\n", toEmail, err)
	}
}

func SendBookingCancellationEmail(toEmail, guestName, roomNumber string) {
	subject := "Your booking was cancelled"
	body := fmt.Sprintf("Hello %s,\n\nYour booking for room %s has been cancelled. If a payment was captured it will be reviewed for refund.", guestName, roomNumber)
	if err := sendEmail(toEmail, subject, body); err != nil {
		fmt.Printf("❌ Failed to send cancellation email to %s: %v\n", toEmail, err)
	}
}

// ======================
// Event Emails
// ======================
func SendEventConfirmationEmail(toEmail, fullName, eventName string) {
	subject := fmt.Sprintf("Your event \"%s\" is confirmed", eventName)
	body := fmt.Sprintf("Hello %s, your event \"%s\" is confirmed. We look forward to hosting you.", fullName, eventName)
	_ = sendEmail(toEmail, subject, body)
}

func SendEventCancellationEmail(toEmail, fullName, eventName, reason string) {
	subject := fmt.Sprintf("Your event \"%s\" was cancelled", eventName)
	body := fmt.Sprintf("Hello %s, your event \"%s\" was cancelled.\nReason: %s", fullName, eventName, reason)
	_ = sendEmail(toEmail, subject, body)
}

// ======================
// Inquiry Emails
// ======================
func SendInquiryReplyEmail(toEmail, name, subjectLine, reply string) error {
	subject := fmt.Sprintf("Re: %s", subjectLine)
	body := fmt.Sprintf("Hello %s,\n\n%s\n\nFront Desk", name, reply)
	return sendEmail(toEmail, subject, body)
}
