package auth

import (
	"strings"

	"github.com/gin-gonic/gin"
)

const (
	ClientWeb    = "WEB"
	ClientMobile = "MOBILE"
	ClientAPI    = "API"
)

// resolveClientType prefers an explicit X-Client-Type header and falls back
// to sniffing a browser user agent.
func resolveClientType(c *gin.Context) string {
	switch strings.ToUpper(strings.TrimSpace(c.GetHeader("X-Client-Type"))) {
	case ClientWeb:
		return ClientWeb
	case ClientMobile:
		return ClientMobile
	case ClientAPI:
		return ClientAPI
	}

	if strings.Contains(c.GetHeader("User-Agent"), "Mozilla/") {
		return ClientWeb
	}
	return ClientAPI
}
