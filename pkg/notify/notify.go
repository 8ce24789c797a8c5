package notify

import (
	"context"
	"fmt"
	"html"

	"custody_wallet_back/models"
)

// Notifier reports finished transfers. Delivery is best-effort.
type Notifier interface {
	TransferFinished(ctx context.Context, req models.TransferRequest, outcome models.TransferOutcome) error
}

type Nop struct{}

func (Nop) TransferFinished(context.Context, models.TransferRequest, models.TransferOutcome) error {
	return nil
}

type Recipient struct {
	FromEmail string
	FromName  string
	ToEmail   string
}

func subject(outcome models.TransferOutcome) string {
	return fmt.Sprintf("Transfer %s: %s", outcome.TransferID, outcome.Status)
}

func body(req models.TransferRequest, outcome models.TransferOutcome) string {
	source := req.SourceWalletID
	if req.SourceAddressID != "" {
		source += " / " + req.SourceAddressID
	}
	detail := outcome.TransactionLink
	if outcome.FailureReason != nil {
		detail = outcome.FailureReason.Error()
	}
	return fmt.Sprintf(`<body style="font-family:Arial,sans-serif;">
  <h2>Transfer %s</h2>
  <table cellpadding="4">
    <tr><td>Source:</td><td><b>%s</b></td></tr>
    <tr><td>Destination:</td><td><b>%s</b></td></tr>
    <tr><td>Amount:</td><td><b>%s %s</b></td></tr>
    <tr><td>Status:</td><td><b>%s</b></td></tr>
    <tr><td>Detail:</td><td>%s</td></tr>
  </table>
</body>`,
		html.EscapeString(outcome.TransferID),
		html.EscapeString(source),
		html.EscapeString(req.DestinationAddress),
		html.EscapeString(req.Amount),
		html.EscapeString(req.AssetID),
		html.EscapeString(string(outcome.Status)),
		html.EscapeString(detail),
	)
}
