package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/alimikegami/apparel-store/config"
	"github.com/alimikegami/apparel-store/internal/domain"
	"github.com/alimikegami/apparel-store/pkg/utils"
	"gopkg.in/gomail.v2"
)

type EmailNotifier struct {
	sender string
	send   func(message *gomail.Message) error
}

func CreateEmailNotifier(conf config.SMTPConfig) *EmailNotifier {
	return &EmailNotifier{
		sender: conf.Sender,
		send: func(message *gomail.Message) error {
			return utils.SendEmail(conf, message)
		},
	}
}

func (n *EmailNotifier) NotifyOrderPlaced(ctx context.Context, order domain.Order) error {
	m := gomail.NewMessage()
	m.SetHeader("From", n.sender)
	m.SetHeader("To", order.Email)
	m.SetHeader("Subject", fmt.Sprintf("Order #%d received", order.OrderNo))
	m.SetBody("text/plain", orderConfirmationBody(order))

	return n.send(m)
}

func orderConfirmationBody(order domain.Order) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Hi %s,\n\n", order.CustomerName)
	fmt.Fprintf(&b, "We received your order #%d.\n\n", order.OrderNo)
	for _, item := range order.Items {
		fmt.Fprintf(&b, "- %s / %s x%d @ %.2f\n", item.Color, item.Size, item.Quantity, item.Price)
	}
	fmt.Fprintf(&b, "\nTotal: %.2f\n", order.TotalAmount)
	fmt.Fprintf(&b, "Shipping to: %s, %s, %s %s\n\n", order.Address, order.City, order.Province, order.Pincode)
	b.WriteString("Track it any time with your order number and contact number.\n")
	return b.String()
}

// NoopNotifier is used when SMTP is not configured.
type NoopNotifier struct{}

func (NoopNotifier) NotifyOrderPlaced(ctx context.Context, order domain.Order) error {
	return nil
}
