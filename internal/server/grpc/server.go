package grpcserver

import (
	"context"
	"net"
	"sync"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"
	"google.golang.org/grpc/status"

	"github.com/rzbill/seqid/internal/runtime"
	logpkg "github.com/rzbill/seqid/pkg/log"
)

// ServiceName is the health service key reported alongside "".
const ServiceName = "seqid"

// Server owns the gRPC server instance and runtime.
type Server struct {
	rt       *runtime.Runtime
	logger   logpkg.Logger
	grpc     *grpc.Server
	health   *health.Server
	interval time.Duration

	mu  sync.Mutex
	lis net.Listener
}

// New constructs a gRPC server with the standard health service and
// reflection registered.
func New(rt *runtime.Runtime, logger logpkg.Logger, opts ...grpc.ServerOption) *Server {
	if logger == nil {
		logger = rt.Logger()
	}
	s := &Server{
		rt:       rt,
		logger:   logger.WithComponent("grpc"),
		health:   health.NewServer(),
		interval: 5 * time.Second,
	}
	opts = append([]grpc.ServerOption{grpc.ChainUnaryInterceptor(s.recoverUnary, s.logUnary)}, opts...)
	s.grpc = grpc.NewServer(opts...)
	healthpb.RegisterHealthServer(s.grpc, s.health)
	reflection.Register(s.grpc)
	return s
}

// ListenAndServe binds to addr and serves until ctx is done.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	l, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}
	return s.Serve(ctx, l)
}

// Serve serves on l until ctx is done, refreshing health status from the
// runtime on every interval.
func (s *Server) Serve(ctx context.Context, l net.Listener) error {
	s.mu.Lock()
	s.lis = l
	s.mu.Unlock()
	s.refresh(ctx)
	s.logger.Info("listening", logpkg.Str("addr", l.Addr().String()))

	go s.watchHealth(ctx)
	errCh := make(chan error, 1)
	go func() { errCh <- s.grpc.Serve(l) }()
	select {
	case <-ctx.Done():
		s.health.Shutdown()
		s.grpc.GracefulStop()
		return nil
	case err := <-errCh:
		return err
	}
}

// Close stops the server and closes the listener.
func (s *Server) Close() {
	s.health.Shutdown()
	s.grpc.GracefulStop()
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.lis != nil {
		_ = s.lis.Close()
	}
}

func (s *Server) watchHealth(ctx context.Context) {
	t := time.NewTicker(s.interval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			s.refresh(ctx)
		}
	}
}

func (s *Server) refresh(ctx context.Context) {
	st := healthpb.HealthCheckResponse_SERVING
	if err := s.rt.CheckHealth(ctx); err != nil {
		st = healthpb.HealthCheckResponse_NOT_SERVING
		s.logger.Warn("runtime unhealthy", logpkg.Err(err))
	}
	s.health.SetServingStatus("", st)
	s.health.SetServingStatus(ServiceName, st)
}

func (s *Server) logUnary(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
	start := time.Now()
	resp, err := handler(ctx, req)
	s.logger.Debug("grpc request",
		logpkg.Str("method", info.FullMethod),
		logpkg.Str("code", status.Code(err).String()),
		logpkg.Dur("elapsed", time.Since(start)))
	return resp, err
}

func (s *Server) recoverUnary(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (resp any, err error) {
	defer func() {
		if p := recover(); p != nil {
			s.logger.Error("panic in handler", logpkg.Str("method", info.FullMethod), logpkg.F("panic", p))
			err = status.Errorf(codes.Internal, "internal error")
		}
	}()
	return handler(ctx, req)
}
