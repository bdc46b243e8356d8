package signrpc

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

const (
	serviceName = "xdao.rcli.signrpc.v1.TextSign"

	signMethod   = "/" + serviceName + "/Sign"
	verifyMethod = "/" + serviceName + "/Verify"
)

// TextSignServer is the server API for the TextSign gRPC service.
//
// The service uses protobuf well-known wrapper types so no protoc/codegen
// toolchain is needed. Verify reads the signature text from the request
// metadata key SignatureMetadataKey.
type TextSignServer interface {
	Sign(context.Context, *wrapperspb.BytesValue) (*wrapperspb.StringValue, error)
	Verify(context.Context, *wrapperspb.BytesValue) (*wrapperspb.BoolValue, error)
}

// UnimplementedTextSignServer can be embedded to have forward compatible implementations.
type UnimplementedTextSignServer struct{}

func (UnimplementedTextSignServer) Sign(context.Context, *wrapperspb.BytesValue) (*wrapperspb.StringValue, error) {
	return nil, status.Error(codes.Unimplemented, "method Sign not implemented")
}
func (UnimplementedTextSignServer) Verify(context.Context, *wrapperspb.BytesValue) (*wrapperspb.BoolValue, error) {
	return nil, status.Error(codes.Unimplemented, "method Verify not implemented")
}

// RegisterTextSignServer registers the TextSign service on a gRPC server.
func RegisterTextSignServer(s grpc.ServiceRegistrar, srv TextSignServer) {
	s.RegisterService(&TextSign_ServiceDesc, srv)
}

// TextSignClient is the client API for the TextSign gRPC service.
type TextSignClient interface {
	Sign(ctx context.Context, in *wrapperspb.BytesValue, opts ...grpc.CallOption) (*wrapperspb.StringValue, error)
	Verify(ctx context.Context, in *wrapperspb.BytesValue, opts ...grpc.CallOption) (*wrapperspb.BoolValue, error)
}

type textSignClient struct{ cc grpc.ClientConnInterface }

func NewTextSignClient(cc grpc.ClientConnInterface) TextSignClient { return &textSignClient{cc: cc} }

func (c *textSignClient) Sign(ctx context.Context, in *wrapperspb.BytesValue, opts ...grpc.CallOption) (*wrapperspb.StringValue, error) {
	out := new(wrapperspb.StringValue)
	if err := c.cc.Invoke(ctx, signMethod, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *textSignClient) Verify(ctx context.Context, in *wrapperspb.BytesValue, opts ...grpc.CallOption) (*wrapperspb.BoolValue, error) {
	out := new(wrapperspb.BoolValue)
	if err := c.cc.Invoke(ctx, verifyMethod, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func _TextSign_Sign_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(wrapperspb.BytesValue)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(TextSignServer).Sign(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: signMethod}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(TextSignServer).Sign(ctx, req.(*wrapperspb.BytesValue))
	}
	return interceptor(ctx, in, info, handler)
}

func _TextSign_Verify_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(wrapperspb.BytesValue)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(TextSignServer).Verify(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: verifyMethod}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(TextSignServer).Verify(ctx, req.(*wrapperspb.BytesValue))
	}
	return interceptor(ctx, in, info, handler)
}

// TextSign_ServiceDesc is the grpc.ServiceDesc for the TextSign service.
var TextSign_ServiceDesc = grpc.ServiceDesc{
	ServiceName: serviceName,
	HandlerType: (*TextSignServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "Sign", Handler: _TextSign_Sign_Handler},
		{MethodName: "Verify", Handler: _TextSign_Verify_Handler},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "textsign.proto",
}
