// Package web provides a real-time dashboard for a practice session.
// It serves a JSON status API, control endpoints, and two websocket
// streams: session status updates and rendered overlay frames.
package web

import (
	"embed"
	"fmt"
	"net/http"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/filesystem"
	"github.com/gofiber/websocket/v2"

	"github.com/yogalign/yogalign/internal/log"
	"github.com/yogalign/yogalign/pkg/engine"
	"github.com/yogalign/yogalign/pkg/hub"
)

// Dashboard assets, served from the binary so the server works from
// any working directory.
//
//go:embed static
var staticFS embed.FS

// SessionStatus is the dashboard's view of the session.
type SessionStatus struct {
	SessionID    string       `json:"session_id"`
	State        string       `json:"state"`
	Continuous   bool         `json:"continuous"`
	AsanaName    string       `json:"asana_name"`
	PoseNumber   int          `json:"pose_number"`
	Tolerance    float64      `json:"tolerance"`
	PoseAccuracy *float64     `json:"pose_accuracy,omitempty"`
	Adjustments  []Adjustment `json:"adjustments"`
	LastError    string       `json:"last_error,omitempty"`
}

// Adjustment is one correction card shown on the dashboard.
type Adjustment struct {
	JointName  string `json:"joint_name"`
	Adjustment string `json:"adjustment"`
	Difference string `json:"difference"`
}

// Server is the dashboard HTTP and websocket server.
type Server struct {
	app  *fiber.App
	port string

	engine *engine.Engine

	statusHub  *hub.Hub
	overlayHub *hub.Hub

	// OnContinuousChange is called when the dashboard toggles
	// continuous mode. Required for POST /api/session/continuous.
	OnContinuousChange func(enabled bool) error

	// OnRunOnce is called when the dashboard requests a single
	// comparison cycle.
	OnRunOnce func() error
}

// NewServer creates a dashboard server bound to a session engine.
func NewServer(port string, eng *engine.Engine) *Server {
	s := &Server{
		port:       port,
		engine:     eng,
		statusHub:  hub.New("status"),
		overlayHub: hub.New("overlay"),
	}

	app := fiber.New(fiber.Config{
		AppName:               "YogAlign Dashboard",
		DisableStartupMessage: true,
	})

	// CORS for local development
	app.Use(cors.New())

	api := app.Group("/api")
	api.Get("/status", s.handleStatus)
	api.Post("/session/run", s.handleRunOnce)
	api.Post("/session/continuous", s.handleContinuous)
	api.Post("/params", s.handleSetParams)

	app.Use("/ws", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return fiber.ErrUpgradeRequired
	})

	app.Get("/ws/status", websocket.New(s.handleStatusWS))
	app.Get("/ws/overlay", websocket.New(s.handleOverlayWS))

	// Static dashboard last so API and websocket routes win.
	app.Use("/", filesystem.New(filesystem.Config{
		Root:       http.FS(staticFS),
		PathPrefix: "static",
		Index:      "index.html",
	}))

	s.app = app
	return s
}

// Start starts the server and blocks until it shuts down.
func (s *Server) Start() error {
	log.Info("dashboard listening", "url", "http://localhost:"+s.port)

	go s.statusHub.Run()
	go s.overlayHub.Run()

	return s.app.Listen(":" + s.port)
}

// StartAsync starts the server in a goroutine.
func (s *Server) StartAsync() {
	go func() {
		if err := s.Start(); err != nil {
			log.Error("dashboard server stopped", "error", err)
		}
	}()
}

// Status assembles the current session status from the engine and its
// result store.
func (s *Server) Status() SessionStatus {
	params := s.engine.Params()
	status := SessionStatus{
		SessionID:   s.engine.ID(),
		State:       s.engine.State().String(),
		Continuous:  s.engine.Continuous(),
		AsanaName:   params.AsanaName,
		PoseNumber:  params.ReferencePoseNumber,
		Tolerance:   params.Tolerance,
		Adjustments: []Adjustment{},
		LastError:   s.engine.LastError(),
	}

	if result := s.engine.Store().Load(); result != nil {
		status.PoseAccuracy = result.PoseAccuracy
		for _, adj := range result.AdjustmentsNeeded {
			status.Adjustments = append(status.Adjustments, Adjustment{
				JointName:  adj.JointName,
				Adjustment: adj.Adjustment,
				Difference: FormatDifference(adj.Difference),
			})
		}
	}
	return status
}

// PushStatus broadcasts the current status to websocket clients. Call
// it after every state change worth showing.
func (s *Server) PushStatus() {
	s.statusHub.BroadcastJSON(s.Status())
}

// SendOverlayFrame broadcasts a rendered overlay frame to clients.
func (s *Server) SendOverlayFrame(jpegData []byte) {
	s.overlayHub.BroadcastBinary(jpegData)
}

// StatusHub returns the status hub for external use.
func (s *Server) StatusHub() *hub.Hub {
	return s.statusHub
}

// OverlayHub returns the overlay frame hub for external use.
func (s *Server) OverlayHub() *hub.Hub {
	return s.overlayHub
}

// Shutdown gracefully stops the server.
func (s *Server) Shutdown() error {
	return s.app.Shutdown()
}

// FormatDifference renders an angle delta the way the dashboard shows
// it, for example "Difference: 50.0°".
func FormatDifference(degrees float64) string {
	return fmt.Sprintf("Difference: %.1f°", degrees)
}
