package search

import (
	"github.com/gofiber/fiber/v2"
)

// GET /api/search-pdf?q=...
func SearchHandler(s *Searcher) fiber.Handler {
	return func(c *fiber.Ctx) error {
		result, err := s.Search(c.UserContext(), c.Query("q"))
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		return c.JSON(result)
	}
}
