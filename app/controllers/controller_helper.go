package controllers

import (
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
)

const FROM_PROTECTED string = "from_protected"

func isLoggedIn(c *fiber.Ctx) bool {
	var fromProtected bool
	if protectedValue := c.Locals(FROM_PROTECTED); protectedValue != nil {
		fromProtected = protectedValue.(bool)
	}

	return fromProtected
}

// parsePagination reads page/limit query params and returns offset + limit
func parsePagination(c *fiber.Ctx, defaultLimit, maxLimit int) (int, int) {
	page, _ := strconv.Atoi(c.Query("page", "1"))
	if page < 1 {
		page = 1
	}
	limit, _ := strconv.Atoi(c.Query("limit", strconv.Itoa(defaultLimit)))
	if limit < 1 || limit > maxLimit {
		limit = defaultLimit
	}
	return (page - 1) * limit, limit
}

// parseIDParam parses a numeric route parameter
func parseIDParam(c *fiber.Ctx, name string) (uint64, error) {
	return strconv.ParseUint(c.Params(name), 10, 64)
}

// isMobileRequest classifies the caller's device. An explicit ?device= query
// wins so clients and tests can force a class; otherwise the User-Agent
// decides.
func isMobileRequest(c *fiber.Ctx) bool {
	switch c.Query("device") {
	case "mobile":
		return true
	case "desktop":
		return false
	}
	return strings.Contains(c.Get("User-Agent"), "Mobi")
}
