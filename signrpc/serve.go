package signrpc

import (
	"context"
	"log/slog"
	"net"

	"google.golang.org/grpc"
)

// Serve runs srv on lis until ctx is done, then stops gracefully.
func Serve(ctx context.Context, lis net.Listener, srv *Server, logger *slog.Logger, opts ...grpc.ServerOption) error {
	if logger == nil {
		logger = slog.Default()
	}
	opts = append([]grpc.ServerOption{grpc.UnaryInterceptor(LoggingInterceptor(logger))}, opts...)
	s := grpc.NewServer(opts...)
	RegisterTextSignServer(s, srv)

	errCh := make(chan error, 1)
	go func() {
		errCh <- s.Serve(lis)
	}()
	logger.Info("textsign listening",
		slog.String("addr", lis.Addr().String()),
		slog.String("format", srv.Format.String()),
		slog.Bool("sign", srv.SignKeyPath != ""),
		slog.Bool("verify", srv.VerifyKeyPath != ""),
	)

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}
	s.GracefulStop()
	<-errCh
	logger.Info("textsign stopped")
	return nil
}
