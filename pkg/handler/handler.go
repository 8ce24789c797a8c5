package handler

import (
	"custody_wallet_back/pkg/middleware"
	"custody_wallet_back/pkg/service"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

type Config struct {
	AllowOrigins []string
	// APIToken, when set, must be sent in the X-Api-Key header on /api.
	APIToken string
}

type Handler struct {
	service *service.Service
	cfg     Config
}

func NewHandler(service *service.Service, cfg Config) *Handler {
	return &Handler{
		service: service,
		cfg:     cfg,
	}
}

func (h *Handler) InitRoute() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), middleware.RequestLogger())

	origins := h.cfg.AllowOrigins
	if len(origins) == 0 {
		origins = []string{"http://localhost:3000"}
	}
	router.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Length", "Content-Type", "X-Api-Key"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
	}))

	api := router.Group("/api", middleware.APIKey(h.cfg.APIToken))
	{
		api.GET("/mainnet-status", h.MainnetStatus)

		wallets := api.Group("/wallets")
		{
			wallets.GET("", h.ListWallets)
			wallets.POST("", h.CreateWallet)
			wallets.GET("/:walletId", h.GetWallet)
			wallets.POST("/:walletId/transfers", h.WalletTransfer)

			wallets.GET("/:walletId/addresses/:addressId", h.GetAddress)
			wallets.POST("/:walletId/addresses/:addressId", h.RequestFaucet)
			wallets.POST("/:walletId/addresses/:addressId/transfers", h.AddressTransfer)
		}
	}
	return router
}
