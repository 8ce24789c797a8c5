package platform

import (
	"strings"

	"github.com/pkg/errors"

	"custody_wallet_back/models"
)

// insufficientFundsPhrase is how the platform words a balance shortfall, e.g.
// "Insufficient funds: 0 available, 1.5 requested". There is no structured
// code for it, so the match is best-effort.
const insufficientFundsPhrase = "insufficient funds"

// ClassifySubmissionError tags a transfer creation failure as
// models.ErrInsufficientFunds or models.ErrSubmission.
func ClassifySubmissionError(err error) error {
	if err == nil {
		return nil
	}
	if strings.Contains(strings.ToLower(err.Error()), insufficientFundsPhrase) {
		return errors.Wrap(models.ErrInsufficientFunds, err.Error())
	}
	return errors.Wrap(models.ErrSubmission, err.Error())
}
