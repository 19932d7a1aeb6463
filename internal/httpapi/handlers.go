package httpapi

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/koit3572/kostudy/internal/heatmap"
)

func (s *Server) handleSessionStart(c *fiber.Ctx) error {
	userID := c.Locals(userIDKey).(string)
	s.sessions.Start(s.baseCtx, userID)
	return c.JSON(fiber.Map{"active": true})
}

func (s *Server) handleSessionStop(c *fiber.Ctx) error {
	userID := c.Locals(userIDKey).(string)
	s.sessions.Stop(userID)
	return c.JSON(fiber.Map{"active": false})
}

// handleHeatmap returns the rendered window. Query params year and month
// set the base; the default base is the month before the current one. The
// window size is fixed configuration. An unauthenticated or failed request
// degrades to an all-zero window instead of surfacing an error.
func (s *Server) handleHeatmap(c *fiber.Ctx) error {
	baseYear, baseMonth := heatmap.DefaultBase(s.now())
	year := c.QueryInt("year", baseYear)
	month := time.Month(c.QueryInt("month", int(baseMonth)))
	count := s.heat.WindowMonths()

	if month < time.January || month > time.December {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "month must be 1..12",
		})
	}

	// Identity is optional here; without it the window renders empty.
	userID, _ := userIDFromRequest(c, s.secret)

	months, err := s.heat.BuildWindow(c.UserContext(), userID, year, month, count)
	if err != nil {
		s.log.Error("heatmap window failed", zap.Error(err), zap.String("user_id", userID))
		months = heatmap.EmptyWindow(year, month, count)
	}

	return c.JSON(fiber.Map{
		"base":   fiber.Map{"year": year, "month": int(month)},
		"months": heatmap.Render(months),
		"legend": heatmap.Legend(),
	})
}
