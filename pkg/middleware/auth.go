package middleware

import (
	"crypto/subtle"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"custody_wallet_back/models"
)

const apiKeyHeader = "X-Api-Key"

// APIKey rejects requests without the configured key. An empty token turns
// the check off.
func APIKey(token string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if token == "" {
			c.Next()
			return
		}
		got := c.GetHeader(apiKeyHeader)
		if subtle.ConstantTimeCompare([]byte(got), []byte(token)) != 1 {
			logrus.WithField("path", c.Request.URL.Path).Warn("request without valid api key")
			c.AbortWithStatusJSON(http.StatusUnauthorized, models.ErrorResponse{
				Error: "a valid key is required in the 'X-Api-Key' header",
				Code:  "unauthorized",
			})
			return
		}
		c.Next()
	}
}
