package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"custody_wallet_back/models"
)

const insufficientFundsMessage = "Insufficient funds: Please use the faucet to get ETH before making a transfer."

func newErrorResponse(c *gin.Context, statusCode int, code, message string) {
	c.AbortWithStatusJSON(statusCode, models.ErrorResponse{Error: message, Code: code})
}

func wrapOkJSON(c *gin.Context, response map[string]interface{}) {
	c.JSON(http.StatusOK, response)
}

// respondError maps an error kind to a status code. Internal kinds get a
// generic message so nothing about keys or storage reaches the client.
func respondError(c *gin.Context, err error) {
	status, code, message := classify(err)

	entry := logrus.WithError(err).WithFields(logrus.Fields{
		"path":   c.FullPath(),
		"status": status,
	})
	if status >= http.StatusInternalServerError {
		entry.Error("request failed")
	} else {
		entry.Warn("request rejected")
	}

	newErrorResponse(c, status, code, message)
}

func classify(err error) (int, string, string) {
	var verr *models.ValidationError
	switch {
	case errors.As(err, &verr):
		return http.StatusBadRequest, "validation_error", verr.Error()
	case errors.Is(err, models.ErrInsufficientFunds):
		return http.StatusBadRequest, "insufficient_funds", insufficientFundsMessage
	case errors.Is(err, models.ErrWalletNotFound):
		return http.StatusNotFound, "wallet_not_found", "wallet not found"
	case errors.Is(err, models.ErrAddressNotFound):
		return http.StatusNotFound, "address_not_found", "address not found"
	case errors.Is(err, models.ErrNotFound):
		return http.StatusNotFound, "seed_not_found", "wallet has no stored seed"
	case errors.Is(err, models.ErrDuplicateWallet):
		return http.StatusConflict, "duplicate_wallet", "wallet already has a stored seed"
	case errors.Is(err, models.ErrSubmission):
		return http.StatusUnprocessableEntity, "submission_failed", err.Error()
	case errors.Is(err, models.ErrTransferFailed):
		return http.StatusBadGateway, "transfer_failed", err.Error()
	case errors.Is(err, models.ErrOutcomeUnknown):
		return http.StatusAccepted, "outcome_unknown", "transfer submitted, outcome not yet known"
	case errors.Is(err, models.ErrMainnetDisabled):
		return http.StatusForbidden, "mainnet_disabled", "mainnet is disabled"
	}
	return http.StatusInternalServerError, "internal_error", "internal server error"
}
