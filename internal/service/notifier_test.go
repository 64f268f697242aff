package service

import (
	"bytes"
	"context"
	"testing"

	"github.com/alimikegami/apparel-store/config"
	"github.com/alimikegami/apparel-store/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/gomail.v2"
)

func TestEmailNotifier_NotifyOrderPlaced(t *testing.T) {
	notifier := CreateEmailNotifier(config.SMTPConfig{Host: "smtp.example.com", Port: 587, Sender: "shop@example.com"})

	var sent *gomail.Message
	notifier.send = func(m *gomail.Message) error {
		sent = m
		return nil
	}

	order := domain.Order{
		OrderNo:      17,
		CustomerName: "Asha",
		Email:        "asha@example.com",
		Address:      "1 Main St",
		City:         "Pokhara",
		Province:     "Gandaki",
		Pincode:      "33700",
		TotalAmount:  45,
		Items: []domain.OrderItem{
			{Color: "Red", Size: domain.SizeM, Quantity: 2, Price: 15},
			{Color: "Blue", Size: domain.SizeL, Quantity: 1, Price: 15},
		},
	}

	require.NoError(t, notifier.NotifyOrderPlaced(context.Background(), order))
	require.NotNil(t, sent)
	assert.Equal(t, []string{"shop@example.com"}, sent.GetHeader("From"))
	assert.Equal(t, []string{"asha@example.com"}, sent.GetHeader("To"))
	assert.Equal(t, []string{"Order #17 received"}, sent.GetHeader("Subject"))

	var buf bytes.Buffer
	_, err := sent.WriteTo(&buf)
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "- Red / M x2 @ 15.00")
	assert.Contains(t, buf.String(), "Total: 45.00")
}

func TestOrderConfirmationBody(t *testing.T) {
	body := orderConfirmationBody(domain.Order{OrderNo: 3, CustomerName: "Ram", Address: "A", City: "B", Province: "C", Pincode: "D"})

	assert.Contains(t, body, "Hi Ram,")
	assert.Contains(t, body, "We received your order #3.")
	assert.Contains(t, body, "Shipping to: A, B, C D")
}

func TestNoops(t *testing.T) {
	assert.NoError(t, NoopNotifier{}.NotifyOrderPlaced(context.Background(), domain.Order{}))
	assert.NoError(t, NoopPublisher{}.Publish(context.Background(), EventOrderCreated, "1", nil))
}
