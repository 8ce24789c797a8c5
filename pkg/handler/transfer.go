package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"

	"custody_wallet_back/models"
)

func (h *Handler) WalletTransfer(c *gin.Context) {
	h.transfer(c, c.Param("walletId"), "")
}

func (h *Handler) AddressTransfer(c *gin.Context) {
	h.transfer(c, c.Param("walletId"), c.Param("addressId"))
}

func (h *Handler) transfer(c *gin.Context, walletID, addressID string) {
	var input models.TransferInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondError(c, &models.ValidationError{Field: "body", Reason: "must be a JSON object"})
		return
	}

	outcome, err := h.service.Transfer.CreateTransfer(c.Request.Context(), models.TransferRequest{
		SourceWalletID:     walletID,
		SourceAddressID:    addressID,
		DestinationAddress: input.DestinationAddress,
		Amount:             string(input.Amount),
		AssetID:            input.Asset,
	})
	if errors.Is(err, models.ErrOutcomeUnknown) {
		c.JSON(http.StatusAccepted, gin.H{
			"success":    false,
			"status":     outcome.Status,
			"transferId": outcome.TransferID,
		})
		return
	}
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success":         true,
		"transactionLink": outcome.TransactionLink,
	})
}
