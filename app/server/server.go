package server

import (
	"context"
	"fmt"
	"time"

	"rentagent/app/config"
	"rentagent/app/service/dialog"

	"github.com/gofiber/fiber/v2"
	"github.com/samber/do"
	"golang.org/x/sync/errgroup"
)

const shutdownTimeout = 5 * time.Second

type replier interface {
	Reply(ctx context.Context, sessionID, message, modelIP string) (string, string)
}

type chatRequest struct {
	Message   string `json:"message"`
	Text      string `json:"text"`
	SessionID string `json:"session_id"`
	ModelIP   string `json:"model_ip"`
}

type chatResponse struct {
	Reply     string `json:"reply"`
	SessionID string `json:"session_id"`
}

// Server exposes the dialog agent over HTTP.
type Server struct {
	cfg    *config.Config
	app    *fiber.App
	dialog replier
}

func New(di *do.Injector) (*Server, error) {
	s := &Server{
		cfg:    do.MustInvoke[*config.Config](di),
		dialog: do.MustInvoke[*dialog.Service](di),
	}
	s.setup()

	return s, nil
}

func (s *Server) setup() {
	s.app = fiber.New(fiber.Config{
		DisableStartupMessage: true,
	})

	s.app.Get("/", s.handleHealth)
	s.app.Get("/health", s.handleHealth)
	s.app.Post("/api/v1/chat", s.handleChat)
}

func (s *Server) handleHealth(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status":  "ok",
		"service": "rental-agent",
	})
}

func (s *Server) handleChat(c *fiber.Ctx) error {
	var req chatRequest
	if err := c.BodyParser(&req); err != nil {
		// malformed body is answered like an empty message
		req = chatRequest{}
	}

	message := req.Message
	if message == "" {
		message = req.Text
	}

	reply, sessionID := s.dialog.Reply(c.UserContext(), req.SessionID, message, req.ModelIP)

	return c.JSON(chatResponse{
		Reply:     reply,
		SessionID: sessionID,
	})
}

// Run serves until ctx is cancelled, then drains in-flight requests.
func (s *Server) Run(ctx context.Context) error {
	var group errgroup.Group

	group.Go(func() error {
		return s.app.Listen(fmt.Sprintf(":%d", s.cfg.Server.Port))
	})
	group.Go(func() error {
		<-ctx.Done()
		return s.app.ShutdownWithTimeout(shutdownTimeout)
	})

	return group.Wait()
}
