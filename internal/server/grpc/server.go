// Package grpc publishes the standard grpc.health.v1 service for the portal.
// Serving status follows the reachability of the database.
package grpc

import (
	"context"
	"net"
	"sync"
	"time"

	"github.com/dmitrijs2005/placementportal/internal/logging"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
)

// ServiceName is the health service name reported alongside the overall ("")
// status.
const ServiceName = "placementportal.API"

// Pinger is satisfied by *sql.DB.
type Pinger interface {
	PingContext(ctx context.Context) error
}

type GRPCServer struct {
	address string
	logger  logging.Logger
	health  *health.Server

	mu      sync.Mutex
	serving bool
}

func NewGRPCServer(a string, l logging.Logger) *GRPCServer {
	s := &GRPCServer{
		address: a,
		logger:  l.With("module", "grpc_server"),
		health:  health.NewServer(),
	}
	s.publish(false)
	return s
}

// SetServing publishes the serving status and logs changes.
func (s *GRPCServer) SetServing(ctx context.Context, serving bool) {
	s.mu.Lock()
	changed := s.serving != serving
	s.serving = serving
	s.mu.Unlock()

	if changed {
		s.logger.Info(ctx, "health status changed", "serving", serving)
	}
	s.publish(serving)
}

func (s *GRPCServer) publish(serving bool) {
	st := healthpb.HealthCheckResponse_NOT_SERVING
	if serving {
		st = healthpb.HealthCheckResponse_SERVING
	}
	s.health.SetServingStatus("", st)
	s.health.SetServingStatus(ServiceName, st)
}

// MonitorDatabase pings db immediately and then every interval, publishing
// the outcome, until ctx is done.
func (s *GRPCServer) MonitorDatabase(ctx context.Context, db Pinger, interval time.Duration) {
	check := func() {
		pctx, cancel := context.WithTimeout(ctx, interval)
		defer cancel()

		err := db.PingContext(pctx)
		if err != nil && ctx.Err() == nil {
			s.logger.Warn(ctx, "database ping failed", "error", err)
		}
		s.SetServing(ctx, err == nil)
	}

	check()

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			check()
		}
	}
}

func (s *GRPCServer) Run(ctx context.Context) error {

	// announces address
	listen, err := net.Listen("tcp", s.address)
	if err != nil {
		return err
	}

	// creates gRPC-server
	srv := grpc.NewServer(grpc.ChainUnaryInterceptor(s.loggingInterceptor))

	// registers service
	healthpb.RegisterHealthServer(srv, s.health)

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping gRPC server...")
		// ends open Watch streams so GracefulStop does not wait on them
		s.health.Shutdown()
		srv.GracefulStop()
	}()

	s.logger.Info(ctx, "Starting gRPC server", "address", s.address)

	// starts accepting incoming connections
	if err := srv.Serve(listen); err != nil {
		return err
	}

	return nil
}
