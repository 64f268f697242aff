package utils

import (
	"github.com/alimikegami/apparel-store/config"
	"gopkg.in/gomail.v2"
)

// SendEmail opens one SMTP session per message; the sender doubles as the login.
func SendEmail(conf config.SMTPConfig, message *gomail.Message) error {
	d := gomail.NewDialer(conf.Host, conf.Port, conf.Sender, conf.Password)

	return d.DialAndSend(message)
}
