// Package client is the daybook client's view of the backend.
//
// # Overview
//
// The package provides:
//  1. A narrow, transport-agnostic contract (see the Gateway interface):
//     list/insert/delete entry rows, upload/list/sign/remove stored assets and
//     compute public asset URLs.
//  2. A concrete gRPC implementation (see GRPCClient) that manages a
//     connection, injects the access key via an interceptor, uploads bytes
//     through presigned URLs and maps gRPC status codes to sentinel errors.
//
// # Error Handling
//
// NotFound, AlreadyExists and InvalidArgument map to common.ErrorNotFound,
// common.ErrorAlreadyExists and common.ErrorValidation, keeping the server's
// message. Transport problems surface as ErrUnavailable, key problems as
// ErrUnauthorized.
//
// All operations accept context.Context and honor cancellation/timeouts.
package client
