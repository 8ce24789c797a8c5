package handler

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"

	"custody_wallet_back/models"
)

func (h *Handler) MainnetStatus(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"mainnetDisabled": h.service.Wallet.MainnetDisabled()})
}

func (h *Handler) ListWallets(c *gin.Context) {
	wallets, err := h.service.Wallet.ListWallets(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, wallets)
}

func (h *Handler) CreateWallet(c *gin.Context) {
	var input models.CreateWalletInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondError(c, &models.ValidationError{Field: "network_id", Reason: "is required"})
		return
	}

	w, err := h.service.Wallet.CreateWallet(c.Request.Context(), input.NetworkID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"id":             w.ID,
		"network":        models.FormatNetworkID(w.NetworkID),
		"defaultAddress": w.DefaultAddressID,
	})
}

func (h *Handler) GetWallet(c *gin.Context) {
	resp, err := h.service.Wallet.GetWallet(c.Request.Context(), c.Param("walletId"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *Handler) GetAddress(c *gin.Context) {
	resp, err := h.service.Wallet.GetAddress(c.Request.Context(), c.Param("walletId"), c.Param("addressId"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// RequestFaucet funds a testnet address. The body is optional; the platform
// picks its default asset when none is given.
func (h *Handler) RequestFaucet(c *gin.Context) {
	var input models.FaucetInput
	if err := c.ShouldBindJSON(&input); err != nil && !errors.Is(err, io.EOF) {
		respondError(c, &models.ValidationError{Field: "asset_id", Reason: "must be a string"})
		return
	}

	res, err := h.service.Wallet.RequestFaucet(c.Request.Context(), c.Param("walletId"), c.Param("addressId"), input.AssetID)
	if err != nil {
		respondError(c, err)
		return
	}
	wrapOkJSON(c, map[string]interface{}{
		"success":         true,
		"transactionHash": res.TransactionHash,
		"transactionLink": res.TransactionLink,
	})
}
