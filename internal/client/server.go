package client

import (
	"context"
	"errors"

	"account-transactions/internal/domain"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"
)

// LookupFunc answers a transaction lookup on the server side. Errors should be
// gRPC status errors; anything else is reported as codes.Unknown.
type LookupFunc func(ctx context.Context, req domain.LookupRequest) ([]domain.Transaction, error)

type lookupServer interface {
	GetAccountTransactions(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error)
}

type lookupHandler struct {
	lookup LookupFunc
}

func (h *lookupHandler) GetAccountTransactions(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	req, err := decodeLookupRequest(in)
	if err != nil {
		if errors.Is(err, domain.ErrUnsupportedCurrency) {
			return nil, status.Error(codes.InvalidArgument, "Unsupported account currency")
		}
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}

	txs, err := h.lookup(ctx, req)
	if err != nil {
		return nil, err
	}
	return encodeTransactions(txs), nil
}

var lookupServiceDesc = grpc.ServiceDesc{
	ServiceName: serviceName,
	HandlerType: (*lookupServer)(nil),
	Methods: []grpc.MethodDesc{
		{
			MethodName: "GetAccountTransactions",
			Handler:    getAccountTransactionsHandler,
		},
	},
	Streams: []grpc.StreamDesc{},
}

func getAccountTransactionsHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := &structpb.Struct{}
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(lookupServer).GetAccountTransactions(ctx, in)
	}
	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: getAccountTransactionsMethod,
	}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(lookupServer).GetAccountTransactions(ctx, req.(*structpb.Struct))
	}
	return interceptor(ctx, in, info, handler)
}

// RegisterLookupServer serves lookup on s under the same method the Client
// calls.
func RegisterLookupServer(s grpc.ServiceRegistrar, lookup LookupFunc) {
	s.RegisterService(&lookupServiceDesc, &lookupHandler{lookup: lookup})
}
