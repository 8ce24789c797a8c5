package notify

import (
	"context"

	"github.com/pkg/errors"
	"gopkg.in/gomail.v2"

	"custody_wallet_back/models"
)

type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
}

type SMTP struct {
	dialer *gomail.Dialer
	to     Recipient
}

func NewSMTP(cfg SMTPConfig, to Recipient) *SMTP {
	return &SMTP{
		dialer: gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password),
		to:     to,
	}
}

func (s *SMTP) TransferFinished(_ context.Context, req models.TransferRequest, outcome models.TransferOutcome) error {
	return errors.Wrap(s.dialer.DialAndSend(s.message(req, outcome)), "smtp send")
}

func (s *SMTP) message(req models.TransferRequest, outcome models.TransferOutcome) *gomail.Message {
	m := gomail.NewMessage()
	m.SetAddressHeader("From", s.to.FromEmail, s.to.FromName)
	m.SetHeader("To", s.to.ToEmail)
	m.SetHeader("Subject", subject(outcome))
	m.SetBody("text/html", body(req, outcome))
	return m
}
