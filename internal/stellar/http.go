package stellar

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	client *Client
}

func Register(rg *gin.RouterGroup, client *Client) {
	h := &Handler{client: client}
	rg.GET("/wallet/:address/balance", h.balance)
}

func (h *Handler) balance(c *gin.Context) {
	address := c.Param("address")

	balance, err := h.client.NativeBalance(c.Request.Context(), address)
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"success": false,
			"message": "failed to load balance, please try again later",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "address": address, "balance": balance})
}
