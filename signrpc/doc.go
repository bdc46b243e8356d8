// Package signrpc serves textsign over gRPC and provides a matching client.
//
// The service is described by a hand-written grpc.ServiceDesc over protobuf
// well-known wrapper types:
//
//	service TextSign {
//	  rpc Sign(google.protobuf.BytesValue) returns (google.protobuf.StringValue);
//	  rpc Verify(google.protobuf.BytesValue) returns (google.protobuf.BoolValue);
//	}
//
// Verify takes the signature text from the x-rcli-signature request header.
package signrpc
