package service

import (
	"context"
	"errors"
	"testing"

	pkgerrors "github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"custody_wallet_back/models"
)

func newOrchestratorFixture(t *testing.T) (*fakePlatform, *TransferOrchestrator) {
	t.Helper()
	key := newKey(t)
	p := newFakePlatform()
	p.addWallet("W1", "base-sepolia", "seed-1", "0xdefault", "0xsecond")

	vault := NewSeedVault(newMemorySeedStore())
	require.NoError(t, vault.Store(context.Background(), "W1", "seed-1", key))

	return p, NewTransferOrchestrator(p, NewWalletSession(p, vault, key))
}

func transferRequest() models.TransferRequest {
	return models.TransferRequest{
		SourceWalletID:     "W1",
		DestinationAddress: "0xabc",
		Amount:             "1.5",
		AssetID:            "eth",
	}
}

func TestValidateTransferRejectsBadInput(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(r *models.TransferRequest)
		field  string
	}{
		{"missing wallet", func(r *models.TransferRequest) { r.SourceWalletID = "" }, "sourceWalletId"},
		{"missing destination", func(r *models.TransferRequest) { r.DestinationAddress = " " }, "destinationAddress"},
		{"missing amount", func(r *models.TransferRequest) { r.Amount = "" }, "amount"},
		{"non numeric amount", func(r *models.TransferRequest) { r.Amount = "abc" }, "amount"},
		{"zero amount", func(r *models.TransferRequest) { r.Amount = "0" }, "amount"},
		{"negative amount", func(r *models.TransferRequest) { r.Amount = "-5" }, "amount"},
		{"missing asset", func(r *models.TransferRequest) { r.AssetID = "" }, "assetId"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, o := newOrchestratorFixture(t)
			req := transferRequest()
			tt.mutate(&req)

			outcome, err := o.Run(context.Background(), req)

			var verr *models.ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tt.field, verr.Field)
			assert.Equal(t, models.TransferFailed, outcome.Status)
			assert.Equal(t, err, outcome.FailureReason)
			assert.Equal(t, 0, p.fetchCalls)
			assert.Equal(t, 0, p.transfers())
		})
	}
}

func TestValidateTransferNormalizesAmount(t *testing.T) {
	valid, err := ValidateTransfer(models.TransferRequest{
		SourceWalletID:     "W1",
		DestinationAddress: " 0xabc ",
		Amount:             "0.000001",
		AssetID:            "usdc",
	})
	require.NoError(t, err)
	assert.Equal(t, "0xabc", valid.Destination)
	assert.Equal(t, "0.000001", valid.Amount.String())
	assert.Equal(t, "usdc", valid.AssetID)
}

func TestRunCompletes(t *testing.T) {
	p, o := newOrchestratorFixture(t)

	outcome, err := o.Run(context.Background(), transferRequest())
	require.NoError(t, err)

	assert.Equal(t, models.TransferComplete, outcome.Status)
	assert.Equal(t, "transfer-1", outcome.TransferID)
	assert.Equal(t, "https://sepolia.basescan.org/tx/0x01", outcome.TransactionLink)
	assert.Nil(t, outcome.FailureReason)

	assert.Equal(t, models.WalletLevel{WalletID: "W1"}, p.lastFrom)
	assert.Equal(t, "0xabc", p.lastTransfer.Destination)
	assert.Equal(t, "1.5", p.lastTransfer.Amount.String())
	assert.Equal(t, 1, p.transfers())
}

func TestRunAddressLevel(t *testing.T) {
	p, o := newOrchestratorFixture(t)
	req := transferRequest()
	req.SourceAddressID = "0xsecond"

	outcome, err := o.Run(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, models.TransferComplete, outcome.Status)
	assert.Equal(t, models.AddressLevel{WalletID: "W1", AddressID: "0xsecond"}, p.lastFrom)
}

func TestRunUnknownAddressNeverSubmits(t *testing.T) {
	p, o := newOrchestratorFixture(t)
	req := transferRequest()
	req.SourceAddressID = "0xnot-in-wallet"

	outcome, err := o.Run(context.Background(), req)
	require.ErrorIs(t, err, models.ErrAddressNotFound)
	assert.Equal(t, models.TransferFailed, outcome.Status)
	assert.Equal(t, 0, p.transfers())
}

func TestRunUnknownWallet(t *testing.T) {
	p, o := newOrchestratorFixture(t)
	req := transferRequest()
	req.SourceWalletID = "W404"

	outcome, err := o.Run(context.Background(), req)
	require.ErrorIs(t, err, models.ErrWalletNotFound)
	assert.Equal(t, models.TransferFailed, outcome.Status)
	assert.Equal(t, 0, p.transfers())
}

func TestRunInsufficientFunds(t *testing.T) {
	p, o := newOrchestratorFixture(t)
	p.transferErr = errors.New("Insufficient funds: 0 available, 1.5 requested")

	outcome, err := o.Run(context.Background(), transferRequest())
	require.ErrorIs(t, err, models.ErrInsufficientFunds)
	assert.False(t, errors.Is(err, models.ErrSubmission))
	assert.Equal(t, models.TransferFailed, outcome.Status)
	assert.Empty(t, outcome.TransferID)
}

func TestRunSubmissionRejected(t *testing.T) {
	p, o := newOrchestratorFixture(t)
	p.transferErr = errors.New("invalid destination address")

	outcome, err := o.Run(context.Background(), transferRequest())
	require.ErrorIs(t, err, models.ErrSubmission)
	assert.Contains(t, err.Error(), "invalid destination address")
	assert.Equal(t, models.TransferFailed, outcome.Status)
}

func TestSubmissionErrorWrapsUnclassified(t *testing.T) {
	err := submissionError(errUpstream)
	require.ErrorIs(t, err, models.ErrSubmission)

	kept := submissionError(models.ErrInsufficientFunds)
	assert.Equal(t, models.ErrInsufficientFunds, kept)
}

func TestRunTerminalFailureKeepsStatus(t *testing.T) {
	p, o := newOrchestratorFixture(t)
	p.awaitState = models.TransferState{Status: "failed"}

	outcome, err := o.Run(context.Background(), transferRequest())
	require.ErrorIs(t, err, models.ErrTransferFailed)
	assert.Contains(t, err.Error(), `"failed"`)
	assert.Equal(t, models.TransferFailed, outcome.Status)
	assert.Equal(t, "transfer-1", outcome.TransferID)
	assert.Empty(t, outcome.TransactionLink)
}

func TestRunAbandonedWaitIsPending(t *testing.T) {
	p, o := newOrchestratorFixture(t)
	p.awaitErr = context.DeadlineExceeded

	outcome, err := o.Run(context.Background(), transferRequest())
	require.ErrorIs(t, err, models.ErrOutcomeUnknown)
	assert.Equal(t, models.TransferPending, outcome.Status)
	assert.Equal(t, "transfer-1", outcome.TransferID)
	assert.Equal(t, 1, p.transfers())
}

func TestRunUnansweredSubmissionIsPending(t *testing.T) {
	p, o := newOrchestratorFixture(t)
	p.transferErr = pkgerrors.Wrap(models.ErrOutcomeUnknown, "create transfer: context deadline exceeded")

	outcome, err := o.Run(context.Background(), transferRequest())
	require.ErrorIs(t, err, models.ErrOutcomeUnknown)
	assert.NotErrorIs(t, err, models.ErrSubmission)
	assert.Equal(t, models.TransferPending, outcome.Status)
	assert.Equal(t, err, outcome.FailureReason)
	assert.Equal(t, 1, p.transfers())
}

func TestRunReportsSourceAddress(t *testing.T) {
	_, o := newOrchestratorFixture(t)

	outcome, err := o.Run(context.Background(), transferRequest())
	require.NoError(t, err)
	assert.Equal(t, "0xdefault", outcome.AddressID)
}
