package utils

import (
	"net"
	"net/netip"
	"strings"

	"github.com/gin-gonic/gin"
)

// ExtractClientIP lấy IP thật của client.
// Thứ tự: X-Forwarded-For (IP đầu tiên) → X-Real-IP → RemoteAddr → 127.0.0.1
func ExtractClientIP(c *gin.Context) string {
	if xff := c.GetHeader("X-Forwarded-For"); xff != "" {
		first, _, _ := strings.Cut(xff, ",")
		if ip, ok := parseIP(first); ok {
			return ip
		}
	}

	if ip, ok := parseIP(c.GetHeader("X-Real-IP")); ok {
		return ip
	}

	host, _, err := net.SplitHostPort(c.Request.RemoteAddr)
	if err != nil {
		host = c.Request.RemoteAddr
	}
	if ip, ok := parseIP(host); ok {
		return ip
	}

	return "127.0.0.1"
}

func parseIP(raw string) (string, bool) {
	addr, err := netip.ParseAddr(strings.TrimSpace(raw))
	if err != nil {
		return "", false
	}
	return addr.Unmap().String(), true
}

// IsPrivateIP: private ranges + loopback (log/debug, bỏ qua rate limit nội bộ)
func IsPrivateIP(ip string) bool {
	addr, err := netip.ParseAddr(ip)
	if err != nil {
		return false
	}
	return addr.IsPrivate() || addr.IsLoopback()
}
