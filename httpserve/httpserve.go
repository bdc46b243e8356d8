// Package httpserve serves the files of one directory over HTTP.
package httpserve

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"net"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"xdao.co/rcli/cidutil"
)

const (
	etagHeader        = "ETag"
	ifNoneMatchHeader = "If-None-Match"
	contentTypeHeader = "Content-Type"

	shutdownTimeout = 5 * time.Second
)

type Config struct {
	Directory string
	// Addr defaults to 127.0.0.1:<Port>.
	Addr string
	Port int

	Logger *slog.Logger
}

type Server struct {
	dir      string
	addr     string
	logger   *slog.Logger
	registry *prometheus.Registry
	requests *prometheus.CounterVec
	duration *prometheus.HistogramVec
	served   prometheus.Counter
}

func New(cfg Config) *Server {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	addr := cfg.Addr
	if addr == "" {
		addr = net.JoinHostPort("127.0.0.1", strconv.Itoa(cfg.Port))
	}
	dir := cfg.Directory
	if dir == "" {
		dir = "."
	}

	s := &Server{
		dir:      dir,
		addr:     addr,
		logger:   logger,
		registry: prometheus.NewRegistry(),
		requests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "rcli",
				Subsystem: "httpserve",
				Name:      "requests_total",
				Help:      "No of file requests partitioned by status code",
			},
			[]string{"code"},
		),
		duration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: "rcli",
				Subsystem: "httpserve",
				Name:      "request_duration_seconds",
				Help:      "File request latency partitioned by status code",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"code"},
		),
		served: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "rcli",
			Subsystem: "httpserve",
			Name:      "served_bytes_total",
			Help:      "Bytes of file content written",
		}),
	}
	s.registry.MustRegister(s.requests, s.duration, s.served)
	return s
}

// Registry exposes the server's private metrics registry.
func (s *Server) Registry() *prometheus.Registry { return s.registry }

func (s *Server) Addr() string { return s.addr }

func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.Handle("GET /metrics", promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{}))
	mux.HandleFunc("GET /{path...}", s.fileHandler)
	return mux
}

// ListenAndServe serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	lis, err := net.Listen("tcp", s.addr)
	if err != nil {
		return err
	}
	return s.Serve(ctx, lis)
}

func (s *Server) Serve(ctx context.Context, lis net.Listener) error {
	srv := &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Serve(lis)
	}()
	s.logger.Info("serving directory", slog.String("dir", s.dir), slog.String("addr", lis.Addr().String()))

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) fileHandler(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	rel := r.PathValue("path")
	code, n := s.serveFile(w, r, rel)

	label := strconv.Itoa(code)
	s.requests.WithLabelValues(label).Inc()
	s.duration.WithLabelValues(label).Observe(time.Since(start).Seconds())
	if code == http.StatusOK {
		s.served.Add(float64(n))
	}
	s.logger.InfoContext(r.Context(), "http request",
		slog.String("path", "/"+rel),
		slog.Int("status", code),
		slog.Int("bytes", n),
		slog.Duration("duration", time.Since(start)),
	)
}

func (s *Server) serveFile(w http.ResponseWriter, r *http.Request, rel string) (int, int) {
	full, ok := s.resolve(rel)
	if !ok {
		return writeText(w, http.StatusNotFound, fmt.Sprintf("File not found: %s", "/"+rel))
	}
	info, err := os.Stat(full)
	if err != nil || info.IsDir() {
		if err != nil && !errors.Is(err, fs.ErrNotExist) {
			s.logger.WarnContext(r.Context(), "stat failed", slog.String("path", full), slog.Any("error", err))
		}
		return writeText(w, http.StatusNotFound, fmt.Sprintf("File not found: %s", "/"+rel))
	}
	body, err := os.ReadFile(full)
	if err != nil {
		s.logger.ErrorContext(r.Context(), "read failed", slog.String("path", full), slog.Any("error", err))
		return writeText(w, http.StatusInternalServerError, fmt.Sprintf("Error reading file: %s", "/"+rel))
	}

	etag := `"` + cidutil.String(body) + `"`
	w.Header().Set(etagHeader, etag)
	if etagMatches(r.Header.Get(ifNoneMatchHeader), body) {
		w.WriteHeader(http.StatusNotModified)
		return http.StatusNotModified, 0
	}
	w.Header().Set(contentTypeHeader, http.DetectContentType(body))
	w.WriteHeader(http.StatusOK)
	n, _ := w.Write(body)
	return http.StatusOK, n
}

// resolve maps a request path to a file beneath the served directory.
func (s *Server) resolve(rel string) (string, bool) {
	cleaned := path.Clean("/" + rel)
	if cleaned == "/" {
		return "", false
	}
	full := filepath.Join(s.dir, filepath.FromSlash(cleaned))
	inside, err := filepath.Rel(s.dir, full)
	if err != nil || inside == ".." || strings.HasPrefix(inside, ".."+string(filepath.Separator)) {
		return "", false
	}
	return full, true
}

// etagMatches reports whether an If-None-Match header names body. Tags are
// compared as CIDs, so any multibase spelling of the same hash matches.
func etagMatches(header string, body []byte) bool {
	for _, candidate := range strings.Split(header, ",") {
		candidate = strings.TrimPrefix(strings.TrimSpace(candidate), "W/")
		if candidate == "*" || cidutil.Matches(body, strings.Trim(candidate, `"`)) {
			return true
		}
	}
	return false
}

func writeText(w http.ResponseWriter, code int, msg string) (int, int) {
	w.Header().Set(contentTypeHeader, "text/plain; charset=utf-8")
	w.WriteHeader(code)
	n, _ := w.Write([]byte(msg))
	return code, n
}
