package api

import (
	"context"

	"google.golang.org/grpc"
)

// ServiceName is the fully qualified gRPC service name.
const ServiceName = "daybook.v1.Diary"

// Method names.
const (
	MethodListEntries   = "ListEntries"
	MethodInsertEntry   = "InsertEntry"
	MethodDeleteEntry   = "DeleteEntry"
	MethodPresignUpload = "PresignUpload"
	MethodListAssets    = "ListAssets"
	MethodSignAssetURL  = "SignAssetURL"
	MethodRemoveAssets  = "RemoveAssets"
)

// FullMethod returns "/<service>/<method>".
func FullMethod(method string) string {
	return "/" + ServiceName + "/" + method
}

// DiaryServer is implemented by the daybook service.
type DiaryServer interface {
	ListEntries(context.Context, *ListEntriesRequest) (*ListEntriesResponse, error)
	InsertEntry(context.Context, *InsertEntryRequest) (*InsertEntryResponse, error)
	DeleteEntry(context.Context, *DeleteEntryRequest) (*DeleteEntryResponse, error)
	PresignUpload(context.Context, *PresignUploadRequest) (*PresignUploadResponse, error)
	ListAssets(context.Context, *ListAssetsRequest) (*ListAssetsResponse, error)
	SignAssetURL(context.Context, *SignAssetURLRequest) (*SignAssetURLResponse, error)
	RemoveAssets(context.Context, *RemoveAssetsRequest) (*RemoveAssetsResponse, error)
}

// unary adapts a typed DiaryServer method to grpc.MethodHandler.
func unary[Req, Resp any](method string, call func(DiaryServer, context.Context, *Req) (*Resp, error)) grpc.MethodDesc {
	return grpc.MethodDesc{
		MethodName: method,
		Handler: func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
			in := new(Req)
			if err := dec(in); err != nil {
				return nil, err
			}
			if interceptor == nil {
				return call(srv.(DiaryServer), ctx, in)
			}
			info := &grpc.UnaryServerInfo{Server: srv, FullMethod: FullMethod(method)}
			handler := func(ctx context.Context, req any) (any, error) {
				return call(srv.(DiaryServer), ctx, req.(*Req))
			}
			return interceptor(ctx, in, info, handler)
		},
	}
}

// ServiceDesc describes the Diary service for grpc.Server.RegisterService.
var ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*DiaryServer)(nil),
	Methods: []grpc.MethodDesc{
		unary(MethodListEntries, DiaryServer.ListEntries),
		unary(MethodInsertEntry, DiaryServer.InsertEntry),
		unary(MethodDeleteEntry, DiaryServer.DeleteEntry),
		unary(MethodPresignUpload, DiaryServer.PresignUpload),
		unary(MethodListAssets, DiaryServer.ListAssets),
		unary(MethodSignAssetURL, DiaryServer.SignAssetURL),
		unary(MethodRemoveAssets, DiaryServer.RemoveAssets),
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "daybook/v1/diary",
}

// RegisterDiaryServer registers srv on s.
func RegisterDiaryServer(s grpc.ServiceRegistrar, srv DiaryServer) {
	s.RegisterService(&ServiceDesc, srv)
}

// DiaryClient is a typed client for the Diary service.
type DiaryClient struct {
	cc grpc.ClientConnInterface
}

func NewDiaryClient(cc grpc.ClientConnInterface) *DiaryClient {
	return &DiaryClient{cc: cc}
}

func invoke[Resp any](ctx context.Context, cc grpc.ClientConnInterface, method string, in any, opts ...grpc.CallOption) (*Resp, error) {
	out := new(Resp)
	opts = append([]grpc.CallOption{grpc.CallContentSubtype(CodecName)}, opts...)
	if err := cc.Invoke(ctx, FullMethod(method), in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *DiaryClient) ListEntries(ctx context.Context, in *ListEntriesRequest, opts ...grpc.CallOption) (*ListEntriesResponse, error) {
	return invoke[ListEntriesResponse](ctx, c.cc, MethodListEntries, in, opts...)
}

func (c *DiaryClient) InsertEntry(ctx context.Context, in *InsertEntryRequest, opts ...grpc.CallOption) (*InsertEntryResponse, error) {
	return invoke[InsertEntryResponse](ctx, c.cc, MethodInsertEntry, in, opts...)
}

func (c *DiaryClient) DeleteEntry(ctx context.Context, in *DeleteEntryRequest, opts ...grpc.CallOption) (*DeleteEntryResponse, error) {
	return invoke[DeleteEntryResponse](ctx, c.cc, MethodDeleteEntry, in, opts...)
}

func (c *DiaryClient) PresignUpload(ctx context.Context, in *PresignUploadRequest, opts ...grpc.CallOption) (*PresignUploadResponse, error) {
	return invoke[PresignUploadResponse](ctx, c.cc, MethodPresignUpload, in, opts...)
}

func (c *DiaryClient) ListAssets(ctx context.Context, in *ListAssetsRequest, opts ...grpc.CallOption) (*ListAssetsResponse, error) {
	return invoke[ListAssetsResponse](ctx, c.cc, MethodListAssets, in, opts...)
}

func (c *DiaryClient) SignAssetURL(ctx context.Context, in *SignAssetURLRequest, opts ...grpc.CallOption) (*SignAssetURLResponse, error) {
	return invoke[SignAssetURLResponse](ctx, c.cc, MethodSignAssetURL, in, opts...)
}

func (c *DiaryClient) RemoveAssets(ctx context.Context, in *RemoveAssetsRequest, opts ...grpc.CallOption) (*RemoveAssetsResponse, error) {
	return invoke[RemoveAssetsResponse](ctx, c.cc, MethodRemoveAssets, in, opts...)
}
