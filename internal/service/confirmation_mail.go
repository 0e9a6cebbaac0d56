// Package service holds supporting infrastructure around the auth core:
// outbound mail and the periodic cleanup sweep.
package service

import (
	"errors"
	"fmt"

	"github.com/spf13/viper"
	"gopkg.in/gomail.v2"
)

// MailSender delivers confirmation mail over SMTP. It satisfies
// auth.Mailer.
type MailSender struct {
	host     string
	port     int
	sender   string
	password string
}

func NewMailSender() *MailSender {
	return &MailSender{
		host:     viper.GetString("mail.host"),
		port:     viper.GetInt("mail.port"),
		sender:   viper.GetString("mail.sender"),
		password: viper.GetString("mail.password"),
	}
}

func (s *MailSender) SendConfirmation(to, link string) error {
	if to == s.sender {
		return errors.New("invalid email address")
	}

	m := gomail.NewMessage()
	m.SetHeader("From", s.sender)
	m.SetHeader("To", to)
	m.SetHeader("Subject", "Confirm your registration")
	m.SetBody("text/html", fmt.Sprintf(
		"<div><h1>Confirm your registration</h1><p>Follow the link to confirm your account.</p><a href='%v'>Confirm registration</a></div>", link))

	d := gomail.NewDialer(s.host, s.port, s.sender, s.password)

	if err := d.DialAndSend(m); err != nil {
		return err
	}

	return nil
}
