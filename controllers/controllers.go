// Package controllers holds the HTTP handlers. Controllers parse and validate
// the request, call one service method and render the result; every business
// rule lives in the services package.
package controllers

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
)

// idParam reads the :id path parameter as a positive integer.
func idParam(c *fiber.Ctx) (uint, error) {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return 0, fiber.NewError(fiber.StatusBadRequest, "invalid id")
	}
	return uint(id), nil
}

// dateQuery reads an optional date query parameter, accepting YYYY-MM-DD or
// RFC 3339.
func dateQuery(c *fiber.Ctx, name string) (*time.Time, error) {
	raw := strings.TrimSpace(c.Query(name))
	if raw == "" {
		return nil, nil
	}
	if t, err := time.Parse("2006-01-02", raw); err == nil {
		return &t, nil
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return &t, nil
	}
	return nil, fiber.NewError(fiber.StatusBadRequest, "invalid "+name)
}
