package signrpc

import (
	"errors"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"

	"xdao.co/rcli/textsign"
)

// ErrUnavailable is returned when the remote signer does not offer a method.
var ErrUnavailable = errors.New("signrpc: method not enabled on signer")

func mapRPC(err error, trailer metadata.MD) error {
	if err == nil {
		return nil
	}
	st, ok := status.FromError(err)
	if !ok {
		return err
	}
	if kinds := trailer.Get(kindTrailerKey); len(kinds) == 1 {
		rule := ""
		if rules := trailer.Get(ruleTrailerKey); len(rules) == 1 {
			rule = rules[0]
		}
		return textsign.NewError(textsign.Kind(kinds[0]), rule, st.Message())
	}

	switch st.Code() {
	case codes.Unimplemented:
		return ErrUnavailable
	case codes.InvalidArgument:
		// Only a missing signature header reaches here without trailers.
		return textsign.NewError(textsign.KindInvalidSignatureEncoding, "TEXTSIGN-SIG-001", st.Message())
	default:
		return err
	}
}
