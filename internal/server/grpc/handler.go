package grpc

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/daybook/internal/api"
	"github.com/dmitrijs2005/daybook/internal/common"
	"github.com/dmitrijs2005/daybook/internal/server/auth"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

func (s *GRPCServer) ListEntries(ctx context.Context, req *api.ListEntriesRequest) (*api.ListEntriesResponse, error) {

	items, err := s.entries.List(ctx, req.Query)
	if err != nil {
		return nil, s.toStatus(ctx, err)
	}

	return &api.ListEntriesResponse{Entries: items}, nil
}

func (s *GRPCServer) InsertEntry(ctx context.Context, req *api.InsertEntryRequest) (*api.InsertEntryResponse, error) {

	e := req.Entry
	created, err := s.entries.Insert(ctx, &e)
	if err != nil {
		return nil, s.toStatus(ctx, err)
	}

	return &api.InsertEntryResponse{Entry: *created}, nil
}

func (s *GRPCServer) DeleteEntry(ctx context.Context, req *api.DeleteEntryRequest) (*api.DeleteEntryResponse, error) {

	if err := requireRole(ctx, auth.RoleService); err != nil {
		return nil, s.toStatus(ctx, err)
	}

	if err := s.entries.Delete(ctx, req.ID); err != nil {
		return nil, s.toStatus(ctx, err)
	}

	return &api.DeleteEntryResponse{}, nil
}

func (s *GRPCServer) PresignUpload(ctx context.Context, req *api.PresignUploadRequest) (*api.PresignUploadResponse, error) {

	url, err := s.assets.PresignUpload(ctx, req.Bucket, req.Key, req.Options)
	if err != nil {
		return nil, s.toStatus(ctx, err)
	}

	return &api.PresignUploadResponse{URL: url}, nil
}

func (s *GRPCServer) ListAssets(ctx context.Context, req *api.ListAssetsRequest) (*api.ListAssetsResponse, error) {

	items, err := s.assets.List(ctx, req.Bucket, req.Prefix, req.Options)
	if err != nil {
		return nil, s.toStatus(ctx, err)
	}

	return &api.ListAssetsResponse{Assets: items}, nil
}

func (s *GRPCServer) SignAssetURL(ctx context.Context, req *api.SignAssetURLRequest) (*api.SignAssetURLResponse, error) {

	url, err := s.assets.Sign(ctx, req.Bucket, req.Key, time.Duration(req.ExpiresInSeconds)*time.Second)
	if err != nil {
		return nil, s.toStatus(ctx, err)
	}

	return &api.SignAssetURLResponse{URL: url}, nil
}

func (s *GRPCServer) RemoveAssets(ctx context.Context, req *api.RemoveAssetsRequest) (*api.RemoveAssetsResponse, error) {

	if err := requireRole(ctx, auth.RoleService); err != nil {
		return nil, s.toStatus(ctx, err)
	}

	if err := s.assets.Remove(ctx, req.Bucket, req.Keys); err != nil {
		return nil, s.toStatus(ctx, err)
	}

	return &api.RemoveAssetsResponse{}, nil
}

// requireRole fails unless the caller's key carries want. Destructive
// calls are reserved for service keys.
func requireRole(ctx context.Context, want string) error {
	role, ok := RoleFromContext(ctx)
	if !ok || role != want {
		return fmt.Errorf("%w: role %q may not call this method", common.ErrorUnauthorized, role)
	}
	return nil
}

// toStatus maps sentinel errors to gRPC codes. Unclassified errors are
// logged and reported as a bare Internal.
func (s *GRPCServer) toStatus(ctx context.Context, err error) error {
	switch {
	case errors.Is(err, common.ErrorValidation), errors.Is(err, common.ErrorInvalidBucket):
		return status.Error(codes.InvalidArgument, err.Error())
	case errors.Is(err, common.ErrorNotFound):
		return status.Error(codes.NotFound, err.Error())
	case errors.Is(err, common.ErrorAlreadyExists):
		return status.Error(codes.AlreadyExists, err.Error())
	case errors.Is(err, common.ErrorUnauthorized):
		return status.Error(codes.PermissionDenied, err.Error())
	case errors.Is(err, context.Canceled):
		return status.Error(codes.Canceled, err.Error())
	case errors.Is(err, context.DeadlineExceeded):
		return status.Error(codes.DeadlineExceeded, err.Error())
	}
	s.logger.Error(ctx, err.Error())
	return status.Error(codes.Internal, "internal error")
}
