// Package grpc exposes the daybook entry and asset use cases over gRPC.
package grpc

import (
	"context"
	"net"
	"time"

	"github.com/dmitrijs2005/daybook/internal/api"
	"github.com/dmitrijs2005/daybook/internal/logging"
	"github.com/dmitrijs2005/daybook/internal/models"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
)

// EntryUseCases is implemented by services.EntryService.
type EntryUseCases interface {
	List(ctx context.Context, q models.EntryQuery) ([]models.Entry, error)
	Insert(ctx context.Context, e *models.Entry) (*models.Entry, error)
	Delete(ctx context.Context, id string) error
}

// AssetUseCases is implemented by services.AssetService.
type AssetUseCases interface {
	PresignUpload(ctx context.Context, bucket, key string, opts models.UploadOptions) (string, error)
	List(ctx context.Context, bucket, prefix string, opts models.ListOptions) ([]models.AssetInfo, error)
	Sign(ctx context.Context, bucket, key string, expiry time.Duration) (string, error)
	Remove(ctx context.Context, bucket string, keys []string) error
}

type GRPCServer struct {
	address   string
	entries   EntryUseCases
	assets    AssetUseCases
	logger    logging.Logger
	jwtSecret []byte
	health    *health.Server
}

var _ api.DiaryServer = (*GRPCServer)(nil)

func NewGRPCServer(a string, l logging.Logger, es EntryUseCases, as AssetUseCases, secretKey string) *GRPCServer {
	return &GRPCServer{
		address:   a,
		logger:    l.With("module", "grpc_server"),
		entries:   es,
		assets:    as,
		jwtSecret: []byte(secretKey),
		health:    health.NewServer(),
	}
}

func (s *GRPCServer) newServer() *grpc.Server {
	srv := grpc.NewServer(grpc.ChainUnaryInterceptor(s.metricsInterceptor, s.accessKeyInterceptor))

	api.RegisterDiaryServer(srv, s)
	healthpb.RegisterHealthServer(srv, s.health)
	s.health.SetServingStatus(api.ServiceName, healthpb.HealthCheckResponse_SERVING)

	return srv
}

// Run listens on the configured address and serves until ctx is cancelled.
func (s *GRPCServer) Run(ctx context.Context) error {
	listen, err := net.Listen("tcp", s.address)
	if err != nil {
		return err
	}
	return s.Serve(ctx, listen)
}

// Serve accepts connections on lis until ctx is cancelled, then stops gracefully.
func (s *GRPCServer) Serve(ctx context.Context, lis net.Listener) error {
	srv := s.newServer()

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping gRPC server...")
		s.health.Shutdown()
		srv.GracefulStop()
	}()

	s.logger.Info(ctx, "Starting gRPC server", "address", lis.Addr().String())

	if err := srv.Serve(lis); err != nil {
		return err
	}

	return nil
}
