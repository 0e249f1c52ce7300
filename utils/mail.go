package utils

import (
	"bytes"
	"fmt"
	"html/template"
	"net/smtp"
	"os"
	"path/filepath"

	"github.com/trottiparts/trottiparts-api/models"
)

type EmailData struct {
	Name            string
	Message         string
	VerificationURL string
	LogoURL         string
}

type OrderEmailData struct {
	Name        string
	OrderNumber string
	Items       []models.OrderItem
	Subtotal    string
	Tax         string
	DeliveryFee string
	Total       string
	LogoURL     string
}

func SendEmail(emailTo string, emailSubject string, data any, templatePath string) error {

	tmpl, err := template.ParseFiles(templatePath)
	if err != nil {
		return fmt.Errorf("template parse error: %w", err)
	}

	var body bytes.Buffer
	err = tmpl.Execute(&body, data)
	if err != nil {
		return fmt.Errorf("template execution error: %w", err)
	}

	message := fmt.Sprintf(
		"From: %s\r\nSubject: %s\r\nMIME-version: 1.0;\r\nContent-Type: text/html; charset=\"UTF-8\";\r\n\r\n%s",
		os.Getenv("FROM_EMAIL"),
		emailSubject,
		body.String(),
	)

	auth := smtp.PlainAuth(
		"",
		os.Getenv("FROM_EMAIL"),
		os.Getenv("FROM_EMAIL_PASSWORD"),
		os.Getenv("FROM_EMAIL_SMTP"),
	)

	err = smtp.SendMail(os.Getenv("SMTP_ADDRESS"), auth, os.Getenv("FROM_EMAIL"), []string{emailTo}, []byte(message))
	if err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}

	return nil
}

// OrderMailer sends order confirmation emails over SMTP.
type OrderMailer struct{}

func (OrderMailer) SendOrderConfirmation(order *models.Order, items []models.OrderItem) error {
	emailData := OrderEmailData{
		Name:        order.FirstName,
		OrderNumber: order.OrderNumber,
		Items:       items,
		Subtotal:    fmt.Sprintf("%.2f €", order.Subtotal),
		Tax:         fmt.Sprintf("%.2f €", order.TaxAmount),
		DeliveryFee: fmt.Sprintf("%.2f €", order.DeliveryFee),
		Total:       fmt.Sprintf("%.2f €", order.Total),
		LogoURL:     os.Getenv("FRONTEND_URL") + "/images/logo.png",
	}

	templatePath := filepath.Join("templates", "order_confirmation.html")
	subject := fmt.Sprintf("Confirmation de commande %s", order.OrderNumber)
	return SendEmail(order.Email, subject, emailData, templatePath)
}
