package transport

import (
	"net"

	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"

	"optab/internal/logging"
)

// Service is a gRPC service to mount on a Server. Name is reported through
// the health service.
type Service struct {
	Name     string
	Register func(grpc.ServiceRegistrar)
}

type Server struct {
	grpc   *grpc.Server
	health *health.Server
	lis    net.Listener
}

// StartServer listens on addr ("host:port", port 0 picks one) and mounts svcs.
func StartServer(addr string, svcs ...Service) (*Server, error) {
	lis, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, err
	}
	return NewServer(lis, svcs...), nil
}

// NewServer mounts svcs and the health service on an existing listener.
func NewServer(lis net.Listener, svcs ...Service) *Server {
	s := &Server{
		grpc:   grpc.NewServer(),
		health: health.NewServer(),
		lis:    lis,
	}
	healthpb.RegisterHealthServer(s.grpc, s.health)
	for _, svc := range svcs {
		svc.Register(s.grpc)
		s.health.SetServingStatus(svc.Name, healthpb.HealthCheckResponse_SERVING)
	}
	return s
}

func (s *Server) Addr() net.Addr { return s.lis.Addr() }

func (s *Server) Serve() error {
	logging.L().Info("transport: serving", "addr", s.lis.Addr().String())
	return s.grpc.Serve(s.lis)
}

func (s *Server) Stop() {
	s.health.Shutdown()
	s.grpc.GracefulStop()
}
