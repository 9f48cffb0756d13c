package api

import (
	"strings"

	"github.com/gin-gonic/gin"
)

const flashCookie = "eventcal_flash"

// Flash is a one-time notification rendered on the next page. Category maps
// to a CSS class: success, danger or info.
type Flash struct {
	Category string
	Message  string
}

// setFlash stores a flash for the next rendered page. Used on redirects;
// handlers that redisplay a form in the same response pass the Flash to the
// template directly instead.
func setFlash(c *gin.Context, category, message string) {
	c.SetCookie(flashCookie, category+":"+message, 60, "/", "", false, true)
}

// popFlash returns the pending flash, if any, and clears it.
func popFlash(c *gin.Context) *Flash {
	value, err := c.Cookie(flashCookie)
	if err != nil || value == "" {
		return nil
	}
	c.SetCookie(flashCookie, "", -1, "/", "", false, true)

	category, message, ok := strings.Cut(value, ":")
	if !ok {
		return nil
	}
	return &Flash{Category: category, Message: message}
}
