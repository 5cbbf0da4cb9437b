package http

import "github.com/gin-gonic/gin"

// Register mounts the campaign routes on the given group. The donate and
// claim routes keep the paths the frontend already calls.
func Register(rg *gin.RouterGroup, h *Handler, mutating ...gin.HandlerFunc) {
	rg.GET("", h.list)
	rg.POST("", h.create)
	rg.GET("/:id", h.get)
	rg.GET("/:id/donations", h.donations)

	donate := append(append([]gin.HandlerFunc{}, mutating...), h.donate)
	claim := append(append([]gin.HandlerFunc{}, mutating...), h.claim)
	rg.POST("/donate", donate...)
	rg.POST("/claim", claim...)
}
