package grpc

import (
	"errors"
	"fmt"
	"log/slog"
	"net"

	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
)

// ServiceName is the health-checked service name, in addition to the
// overall server status reported under "".
const ServiceName = "sms-spam-classifier"

// Server exposes the standard gRPC health service.
type Server struct {
	server *grpc.Server
	health *health.Server
}

// NewServer creates a server that reports NOT_SERVING until SetServing is called.
func NewServer() *Server {
	s := &Server{
		server: grpc.NewServer(),
		health: health.NewServer(),
	}

	healthpb.RegisterHealthServer(s.server, s.health)
	s.SetServing(false)

	return s
}

// SetServing updates the reported status.
func (s *Server) SetServing(serving bool) {
	status := healthpb.HealthCheckResponse_NOT_SERVING
	if serving {
		status = healthpb.HealthCheckResponse_SERVING
	}

	s.health.SetServingStatus("", status)
	s.health.SetServingStatus(ServiceName, status)
}

// Serve accepts connections on l until Stop is called.
func (s *Server) Serve(l net.Listener) error {
	slog.Info("gRPC server listening", "addr", l.Addr().String())

	if err := s.server.Serve(l); err != nil && !errors.Is(err, grpc.ErrServerStopped) {
		return fmt.Errorf("grpc serve: %w", err)
	}

	return nil
}

// Stop marks every service NOT_SERVING and drains in-flight calls.
func (s *Server) Stop() {
	s.health.Shutdown()
	s.server.GracefulStop()
}
