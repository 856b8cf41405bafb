package web

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"

	"github.com/yogalign/yogalign/pkg/hub"
	"github.com/yogalign/yogalign/pkg/poseapi"
)

// handleStatus returns the current session status.
func (s *Server) handleStatus(c *fiber.Ctx) error {
	return c.JSON(s.Status())
}

// handleRunOnce triggers a single comparison cycle.
func (s *Server) handleRunOnce(c *fiber.Ctx) error {
	if s.OnRunOnce == nil {
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
			"error": "session control not configured",
		})
	}
	if err := s.OnRunOnce(); err != nil {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"error": err.Error(),
		})
	}
	return c.JSON(s.Status())
}

// ContinuousRequest is the body for toggling continuous mode.
type ContinuousRequest struct {
	Enabled bool `json:"enabled"`
}

// handleContinuous starts or stops the continuous comparison loop.
func (s *Server) handleContinuous(c *fiber.Ctx) error {
	var req ContinuousRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid request body",
		})
	}
	if s.OnContinuousChange == nil {
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
			"error": "session control not configured",
		})
	}
	if err := s.OnContinuousChange(req.Enabled); err != nil {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"error": err.Error(),
		})
	}
	s.PushStatus()
	return c.JSON(s.Status())
}

// ParamsRequest is the body for updating session parameters.
type ParamsRequest struct {
	AsanaName           string  `json:"asana_name"`
	ReferencePoseNumber int     `json:"reference_pose_number"`
	Tolerance           float64 `json:"tolerance"`
}

// handleSetParams validates and applies new session parameters.
func (s *Server) handleSetParams(c *fiber.Ctx) error {
	var req ParamsRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid request body",
		})
	}

	params := poseapi.SessionParameters{
		AsanaName:           req.AsanaName,
		ReferencePoseNumber: req.ReferencePoseNumber,
		Tolerance:           req.Tolerance,
	}
	if err := s.engine.SetParams(params); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}
	s.PushStatus()
	return c.JSON(s.Status())
}

// handleStatusWS streams session status updates. The current status is
// sent immediately on connect.
func (s *Server) handleStatusWS(c *websocket.Conn) {
	c.WriteJSON(s.Status())
	hub.NewClient(s.statusHub, c).Run()
}

// handleOverlayWS streams binary JPEG overlay frames.
func (s *Server) handleOverlayWS(c *websocket.Conn) {
	hub.NewClient(s.overlayHub, c).Run()
}
