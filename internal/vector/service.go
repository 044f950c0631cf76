package vector

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/wrapperspb"

	"optab/internal/opcode"
	"optab/internal/transport"
)

const (
	ServiceName   = "optab.v1.VectorRewriter"
	rewriteMethod = "/" + ServiceName + "/Rewrite"
)

// Rows and results travel as google.protobuf.StringValue, so the service
// needs no generated code of its own.
var serviceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*opcode.VectorRewriter)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "Rewrite", Handler: rewriteHandler},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "optab/v1/vector.proto",
}

// Service mounts impl as the rewriter service on a transport server.
func Service(impl opcode.VectorRewriter) transport.Service {
	return transport.Service{
		Name:     ServiceName,
		Register: func(s grpc.ServiceRegistrar) { s.RegisterService(&serviceDesc, impl) },
	}
}

func rewriteHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(wrapperspb.StringValue)
	if err := dec(in); err != nil {
		return nil, err
	}
	impl := srv.(opcode.VectorRewriter)
	if interceptor == nil {
		return serveRewrite(ctx, impl, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: rewriteMethod}
	handler := func(ctx context.Context, req any) (any, error) {
		return serveRewrite(ctx, impl, req.(*wrapperspb.StringValue))
	}
	return interceptor(ctx, in, info, handler)
}

func serveRewrite(ctx context.Context, impl opcode.VectorRewriter, in *wrapperspb.StringValue) (*wrapperspb.StringValue, error) {
	if in.GetValue() == "" {
		return nil, status.Error(codes.InvalidArgument, "empty row")
	}
	out, err := impl.Rewrite(ctx, in.GetValue())
	if err != nil {
		if _, ok := status.FromError(err); ok {
			return nil, err
		}
		return nil, status.Error(codes.Internal, err.Error())
	}
	return wrapperspb.String(out), nil
}
