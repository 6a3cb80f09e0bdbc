package controller

import (
	"net"
	"net/http"
	"strconv"
	"strings"

	"sgi-panel/logger"
	"sgi-panel/web/entity"

	"github.com/gin-gonic/gin"
)

// jsonError sends the {message} error body the clients surface verbatim.
// The internal error, when present, is only logged.
func jsonError(c *gin.Context, statusCode int, msg string, err error) {
	if err != nil {
		logger.Warning(msg+": ", err)
	}
	c.JSON(statusCode, entity.ErrorMsg{Message: msg})
}

func jsonObj(c *gin.Context, obj any) {
	c.JSON(http.StatusOK, obj)
}

func jsonAck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

// intQuery reads an integer query parameter, falling back on absent or
// unusable values.
func intQuery(c *gin.Context, name string, def int) int {
	value := c.Query(name)
	if value == "" {
		return def
	}
	n, err := strconv.Atoi(value)
	if err != nil || n < 1 {
		return def
	}
	return n
}

// getRemoteIp extracts the real client address from proxy headers or the
// connection itself.
func getRemoteIp(c *gin.Context) string {
	value := c.GetHeader("X-Real-IP")
	if value != "" {
		return value
	}
	value = c.GetHeader("X-Forwarded-For")
	if value != "" {
		ips := strings.Split(value, ",")
		return ips[0]
	}
	addr := c.Request.RemoteAddr
	ip, _, _ := net.SplitHostPort(addr)
	return ip
}
