package utils

import (
	"strconv"

	"github.com/gin-gonic/gin"
)

// CurrentUserID normalizes the user_id set by the auth middleware; JWT claims
// come back as float64, direct sets as uint.
func CurrentUserID(c *gin.Context) (uint, bool) {
	rawID, _ := c.Get("user_id")
	switch v := rawID.(type) {
	case uint:
		return v, true
	case int:
		return uint(v), true
	case int64:
		return uint(v), true
	case float64:
		return uint(v), true
	case string:
		if n, err := strconv.ParseUint(v, 10, 64); err == nil {
			return uint(n), true
		}
	}
	return 0, false
}
