package signrpc

import (
	"context"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/metadata"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

// Client signs and verifies through a remote TextSign service.
//
// Errors reported by the remote signer come back as *textsign.Error with
// the original Kind and RuleID.
type Client struct {
	cc     *grpc.ClientConn
	client TextSignClient

	// Timeout applies per RPC when non-zero.
	Timeout time.Duration
}

type DialOptions struct {
	// Timeout applies to the initial dial when non-zero.
	Timeout time.Duration

	// MaxMsgBytes sets both send/recv max sizes when non-zero.
	MaxMsgBytes int

	// Extra is appended to the default dial options.
	Extra []grpc.DialOption
}

func Dial(target string, opts DialOptions) (*Client, error) {
	dialOpts := []grpc.DialOption{
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	}
	if opts.MaxMsgBytes > 0 {
		dialOpts = append(dialOpts,
			grpc.WithDefaultCallOptions(
				grpc.MaxCallRecvMsgSize(opts.MaxMsgBytes),
				grpc.MaxCallSendMsgSize(opts.MaxMsgBytes),
			),
		)
	}
	dialOpts = append(dialOpts, opts.Extra...)

	ctx := context.Background()
	if opts.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, opts.Timeout)
		defer cancel()
	}

	cc, err := grpc.DialContext(ctx, target, dialOpts...)
	if err != nil {
		return nil, err
	}
	return NewClient(cc), nil
}

// NewClient wraps an existing connection. Close closes it.
func NewClient(cc *grpc.ClientConn) *Client {
	return &Client{cc: cc, client: NewTextSignClient(cc)}
}

func (c *Client) Close() error {
	if c == nil || c.cc == nil {
		return nil
	}
	return c.cc.Close()
}

// Sign returns the encoded signature of msg.
func (c *Client) Sign(ctx context.Context, msg []byte) (string, error) {
	ctx, cancel := c.ctx(ctx)
	defer cancel()

	var trailer metadata.MD
	reply, err := c.client.Sign(ctx, wrapperspb.Bytes(msg), grpc.Trailer(&trailer))
	if err != nil {
		return "", mapRPC(err, trailer)
	}
	return reply.GetValue(), nil
}

// Verify reports whether signature matches msg. A mismatch is (false, nil).
func (c *Client) Verify(ctx context.Context, msg []byte, signature string) (bool, error) {
	ctx, cancel := c.ctx(ctx)
	defer cancel()
	ctx = metadata.AppendToOutgoingContext(ctx, SignatureMetadataKey, signature)

	var trailer metadata.MD
	reply, err := c.client.Verify(ctx, wrapperspb.Bytes(msg), grpc.Trailer(&trailer))
	if err != nil {
		return false, mapRPC(err, trailer)
	}
	return reply.GetValue(), nil
}

func (c *Client) ctx(parent context.Context) (context.Context, context.CancelFunc) {
	if parent == nil {
		parent = context.Background()
	}
	if c.Timeout <= 0 {
		return context.WithCancel(parent)
	}
	return context.WithTimeout(parent, c.Timeout)
}
