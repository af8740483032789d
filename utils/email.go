package utils

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"gopkg.in/gomail.v2"
)

func SendEmail(to, subject, body string) error {
	err := godotenv.Load()
	if err != nil {
		log.Println("Warning: Error loading .env file. Using environment variables directly.")
	}
	port, _ := strconv.Atoi(os.Getenv("SMTP_PORT"))

	m := gomail.NewMessage()
	m.SetHeader("From", os.Getenv("EMAIL_USER"))
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", body)

	d := gomail.NewDialer(
		os.Getenv("SMTP_HOST"),
		port,
		os.Getenv("EMAIL_USER"),
		os.Getenv("EMAIL_PASS"),
	)

	return d.DialAndSend(m)
}

// SendEmailAsync fires the email off on a goroutine. Notifications are
// best-effort: a failure is logged and never surfaces to the caller, so a
// slow or broken SMTP channel cannot affect the request that triggered it.
func SendEmailAsync(to, subject, body string) {
	go func() {
		if err := SendEmail(to, subject, body); err != nil {
			log.Printf("Failed to send email %q to %s: %v", subject, to, err)
		}
	}()
}
