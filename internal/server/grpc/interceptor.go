package grpc

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/dmitrijs2005/daybook/internal/api"
	"github.com/dmitrijs2005/daybook/internal/common"
	"github.com/dmitrijs2005/daybook/internal/server/auth"
	"github.com/dmitrijs2005/daybook/internal/server/metrics"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

type ctxKey string

const roleKey ctxKey = "role"

// RoleFromContext returns the role of the authenticated caller.
func RoleFromContext(ctx context.Context) (string, bool) {
	role, ok := ctx.Value(roleKey).(string)
	return role, ok
}

// accessKeyInterceptor guards every Diary method; other services
// (health) pass through.
func (s *GRPCServer) accessKeyInterceptor(ctx context.Context, req interface{}, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (interface{}, error) {

	if !strings.HasPrefix(info.FullMethod, "/"+api.ServiceName+"/") {
		return handler(ctx, req)
	}

	var accessKey string
	if md, ok := metadata.FromIncomingContext(ctx); ok {
		values := md.Get(common.AccessKeyHeaderName)
		if len(values) > 0 {
			accessKey = values[0]
		}
	}
	if len(accessKey) == 0 {
		return nil, status.Error(codes.Unauthenticated, "missing access key")
	}

	role, err := auth.ParseAccessKey(accessKey, s.jwtSecret)
	if err != nil {
		if errors.Is(err, common.ErrTokenExpired) {
			return nil, status.Error(codes.Unauthenticated, "access key expired")
		}
		return nil, status.Error(codes.Unauthenticated, "invalid access key")
	}

	ctx = context.WithValue(ctx, roleKey, role)

	return handler(ctx, req)
}

func (s *GRPCServer) metricsInterceptor(ctx context.Context, req interface{}, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (interface{}, error) {
	start := time.Now()

	resp, err := handler(ctx, req)

	code := status.Code(err)
	metrics.RPCRequestsTotal.WithLabelValues(info.FullMethod, code.String()).Inc()
	metrics.RPCDuration.WithLabelValues(info.FullMethod).Observe(time.Since(start).Seconds())

	if err != nil {
		s.logger.Warn(ctx, "rpc failed", "method", info.FullMethod, "code", code.String(), "error", status.Convert(err).Message())
	} else {
		s.logger.Debug(ctx, "rpc", "method", info.FullMethod, "duration", time.Since(start))
	}

	return resp, err
}
