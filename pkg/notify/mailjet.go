package notify

import (
	"context"

	"github.com/mailjet/mailjet-apiv3-go/v4"
	"github.com/pkg/errors"

	"custody_wallet_back/models"
)

type Mailjet struct {
	client *mailjet.Client
	to     Recipient
}

func NewMailjet(apiKey, secretKey string, to Recipient, baseURL ...string) *Mailjet {
	return &Mailjet{
		client: mailjet.NewMailjetClient(apiKey, secretKey, baseURL...),
		to:     to,
	}
}

func (m *Mailjet) TransferFinished(_ context.Context, req models.TransferRequest, outcome models.TransferOutcome) error {
	messages := &mailjet.MessagesV31{Info: []mailjet.InfoMessagesV31{
		{
			From: &mailjet.RecipientV31{
				Email: m.to.FromEmail,
				Name:  m.to.FromName,
			},
			To: &mailjet.RecipientsV31{
				{Email: m.to.ToEmail},
			},
			Subject:  subject(outcome),
			HTMLPart: body(req, outcome),
		},
	}}
	_, err := m.client.SendMailV31(messages)
	return errors.Wrap(err, "mailjet send")
}
