// utils/email.go
package utils

import (
	"fmt"
	"log"
	"os"

	"github.com/sendgrid/sendgrid-go"
	sgmail "github.com/sendgrid/sendgrid-go/helpers/mail"

	"go-storefront/models"
)

// EmailService sends transactional mail through Sendgrid. A nil client means
// mail is disabled (no SENDGRID_API_KEY) and Send becomes a no-op.
type EmailService struct {
	client *sendgrid.Client
	sender string
}

// NewEmailService initializes and returns a new EmailService instance
func NewEmailService() *EmailService {
	apiKey := os.Getenv("SENDGRID_API_KEY")
	if apiKey == "" {
		log.Println("SENDGRID_API_KEY not set, email notifications disabled")
		return &EmailService{}
	}
	return &EmailService{
		client: sendgrid.NewSendClient(apiKey),
		sender: os.Getenv("EMAIL_SENDER"),
	}
}

// Send sends a basic email to the specified recipient
func (es *EmailService) Send(toEmail, subject, htmlContent string) error {
	if es.client == nil {
		return nil
	}
	from := sgmail.NewEmail("Storefront", es.sender)
	to := sgmail.NewEmail("", toEmail)
	message := sgmail.NewSingleEmail(from, subject, to, htmlContent, htmlContent)
	resp, err := es.client.Send(message)
	if err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	if resp.StatusCode >= 400 {
		return fmt.Errorf("failed to send email: status %d", resp.StatusCode)
	}
	return nil
}

// SendOrderConfirmation sends an order confirmation email to the user
func (es *EmailService) SendOrderConfirmation(toEmail, name string, order models.Order) error {
	subject := "Order Confirmation"
	htmlContent := fmt.Sprintf(
		"<strong>Dear %s,</strong><br><br>Thank you for your purchase! Your order (ID: %s) has been placed successfully and will be delivered by <strong>%s</strong>.<br><br>Total Amount: <strong>$%.2f</strong><br>Payment Method: <strong>%s</strong><br><br>Thank you for shopping with us!",
		name,
		order.ID,
		order.EstimatedDelivery,
		order.Payment.GrandTotal,
		order.Payment.Method,
	)
	return es.Send(toEmail, subject, htmlContent)
}

// SendOrderStatusUpdate notifies the owner that an order's status changed.
func (es *EmailService) SendOrderStatusUpdate(toEmail, name, orderID string, status models.OrderStatus) error {
	subject := "Order Status Updated"
	htmlContent := fmt.Sprintf(
		"<strong>Dear %s,</strong><br><br>Your order (ID: %s) status has been updated to <strong>%s</strong>.<br><br>Thank you for shopping with us!",
		name, orderID, status,
	)
	return es.Send(toEmail, subject, htmlContent)
}
