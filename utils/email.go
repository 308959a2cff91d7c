package utils

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/gomail.v2"
)

// SendOrderConfirmation emails the customer after a payment is verified.
// Delivery is best effort; callers log and continue on failure.
func SendOrderConfirmation(to string, orderID uint, amount float64) error {
	host := os.Getenv("SMTP_HOST")
	port, err := strconv.Atoi(os.Getenv("SMTP_PORT"))
	if err != nil {
		port = 587
	}
	username := os.Getenv("SMTP_USERNAME")
	password := os.Getenv("SMTP_PASSWORD")
	from := os.Getenv("SMTP_FROM")
	if from == "" {
		from = username
	}

	m := gomail.NewMessage()
	m.SetHeader("From", from)
	m.SetHeader("To", to)
	m.SetHeader("Subject", fmt.Sprintf("Your DevCom Store order #%d is confirmed", orderID))

	body := fmt.Sprintf(`
		<h2>Thank you for your purchase!</h2>
		<p>We have received your payment of <b>%s%.2f</b> for order <b>#%d</b>.</p>
		<p>You can track the order from your account's orders page.</p>
	`, "₹", amount, orderID)
	m.SetBody("text/html", body)

	d := gomail.NewDialer(host, port, username, password)
	if err := d.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send email: %v", err)
	}
	return nil
}
