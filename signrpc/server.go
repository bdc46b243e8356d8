package signrpc

import (
	"bytes"
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/wrapperspb"

	"xdao.co/rcli/textsign"
)

const (
	// SignatureMetadataKey carries the signature text of a Verify request.
	SignatureMetadataKey = "x-rcli-signature"

	kindTrailerKey = "x-rcli-error-kind"
	ruleTrailerKey = "x-rcli-rule-id"
)

// Server exposes textsign over the TextSign gRPC service.
//
// Key material is loaded on every request, so rotating the files on disk
// takes effect without a restart. An empty key path leaves the matching
// method unimplemented.
type Server struct {
	UnimplementedTextSignServer

	SignKeyPath   string
	VerifyKeyPath string
	Format        textsign.Format
}

func (s *Server) Sign(ctx context.Context, in *wrapperspb.BytesValue) (*wrapperspb.StringValue, error) {
	if s == nil || s.SignKeyPath == "" {
		return UnimplementedTextSignServer{}.Sign(ctx, in)
	}
	sig, err := textsign.SignReader(bytes.NewReader(in.GetValue()), s.SignKeyPath, s.Format)
	if err != nil {
		return nil, mapErr(ctx, err)
	}
	return wrapperspb.String(sig), nil
}

func (s *Server) Verify(ctx context.Context, in *wrapperspb.BytesValue) (*wrapperspb.BoolValue, error) {
	if s == nil || s.VerifyKeyPath == "" {
		return UnimplementedTextSignServer{}.Verify(ctx, in)
	}
	sig, ok := signatureFromContext(ctx)
	if !ok {
		return nil, status.Error(codes.InvalidArgument, "missing "+SignatureMetadataKey+" metadata")
	}
	valid, err := textsign.VerifyReader(bytes.NewReader(in.GetValue()), s.VerifyKeyPath, sig, s.Format)
	if err != nil {
		return nil, mapErr(ctx, err)
	}
	return wrapperspb.Bool(valid), nil
}

func signatureFromContext(ctx context.Context) (string, bool) {
	md, ok := metadata.FromIncomingContext(ctx)
	if !ok {
		return "", false
	}
	vals := md.Get(SignatureMetadataKey)
	if len(vals) != 1 {
		return "", false
	}
	return vals[0], true
}

// mapErr converts a textsign error into a status and attaches its Kind and
// RuleID as trailers so clients can rebuild it.
func mapErr(ctx context.Context, err error) error {
	if err == nil {
		return nil
	}
	kind := textsign.KindOf(err)
	if kind != "" {
		_ = grpc.SetTrailer(ctx, metadata.Pairs(
			kindTrailerKey, string(kind),
			ruleTrailerKey, textsign.RuleID(err),
		))
	}
	return status.Error(codeFor(kind), err.Error())
}

func codeFor(kind textsign.Kind) codes.Code {
	switch kind {
	case textsign.KindInvalidSignatureEncoding, textsign.KindMalformedInput, textsign.KindUnknownFormat:
		return codes.InvalidArgument
	case textsign.KindKeyTooShort, textsign.KindInvalidKeyEncoding, textsign.KindIO:
		// IO can only come from the key files; the payload is in memory.
		return codes.FailedPrecondition
	default:
		return codes.Internal
	}
}
