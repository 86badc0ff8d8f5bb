// Package rest exposes the credential and application services over a JSON
// HTTP API built on Fiber. Every response uses the envelope
// {success, message?, data?}.
package rest

import (
	"context"
	"net"
	"time"

	"github.com/dmitrijs2005/placementportal/internal/logging"
	"github.com/dmitrijs2005/placementportal/internal/server/config"
	"github.com/dmitrijs2005/placementportal/internal/server/models"
	"github.com/dmitrijs2005/placementportal/internal/server/services"
	"github.com/gofiber/fiber/v2"
)

const shutdownTimeout = 5 * time.Second

// CredentialService is the subset of services.CredentialService the API uses.
type CredentialService interface {
	Register(ctx context.Context, in services.RegisterInput) (*services.AuthResult, error)
	Login(ctx context.Context, email, password string) (*services.AuthResult, error)
	VerifyToken(ctx context.Context, token string) (*models.AccountView, error)
}

// ApplicationService is the subset of services.ApplicationService the API uses.
type ApplicationService interface {
	Create(ctx context.Context, studentID, jobID int64, coverLetter string) (*models.Application, error)
	UpdateStatus(ctx context.Context, id int64, upd models.ApplicationUpdate) error
	Delete(ctx context.Context, id int64) error
	Get(ctx context.Context, id int64) (*models.ApplicationDetails, error)
	List(ctx context.Context, filter models.ApplicationFilter) ([]models.ApplicationDetails, error)
	PlacementStats(ctx context.Context) (*models.PlacementStats, error)
}

type HTTPServer struct {
	address      string
	logger       logging.Logger
	credentials  CredentialService
	applications ApplicationService
	app          *fiber.App
}

func NewHTTPServer(cfg *config.Config, l logging.Logger, cs CredentialService, as ApplicationService) *HTTPServer {
	s := &HTTPServer{
		address:      cfg.EndpointAddrHTTP,
		logger:       l.With("module", "http_server"),
		credentials:  cs,
		applications: as,
	}
	s.app = s.newRouter(cfg)
	return s
}

// Run serves the API until ctx is cancelled, then shuts down gracefully.
func (s *HTTPServer) Run(ctx context.Context) error {

	listen, err := net.Listen("tcp", s.address)
	if err != nil {
		return err
	}

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping HTTP server...")
		if err := s.app.ShutdownWithTimeout(shutdownTimeout); err != nil {
			s.logger.Error(ctx, "HTTP shutdown error", "error", err)
		}
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", s.address)

	if err := s.app.Listener(listen); err != nil {
		return err
	}

	return nil
}
