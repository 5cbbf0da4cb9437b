package auth

import (
	"strings"

	"github.com/gin-gonic/gin"
)

const (
	// CtxWalletAddress is the gin context key holding the caller's wallet.
	CtxWalletAddress = "wallet_address"

	// HeaderWalletAddress carries the wallet address the frontend asserts
	// after connecting a wallet. It is trusted as-is; there is no signature
	// check on this header.
	HeaderWalletAddress = "X-Wallet-Address"
)

// WithWallet copies the asserted wallet address from the request header into
// the gin context. It never rejects: each handler decides whether a missing
// identity is a 400 or a 401.
func WithWallet() gin.HandlerFunc {
	return func(c *gin.Context) {
		if addr := strings.TrimSpace(c.GetHeader(HeaderWalletAddress)); addr != "" {
			c.Set(CtxWalletAddress, addr)
		}
		c.Next()
	}
}

// CallerWallet extracts the wallet address set by WithWallet.
func CallerWallet(c *gin.Context) string {
	return strings.TrimSpace(c.GetString(CtxWalletAddress))
}
