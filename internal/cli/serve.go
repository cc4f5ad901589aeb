package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	charmlog "github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/spf13/cobra"

	"github.com/hungdaqq/mappymatch/pkg/errors"
	"github.com/hungdaqq/mappymatch/pkg/graph"
	"github.com/hungdaqq/mappymatch/pkg/observability"
	"github.com/hungdaqq/mappymatch/pkg/pipeline"
	"github.com/hungdaqq/mappymatch/pkg/roadnet"
)

// maxUploadBytes caps the accepted GeoJSON body size.
const maxUploadBytes = 512 << 20

// newServeCmd creates the serve command, which runs the build pipeline as
// an HTTP service.
func newServeCmd(configPath *string) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the build pipeline over HTTP",
		Long: `Serve the build pipeline as an HTTP API.

Endpoints:
  POST /v1/graphs    Build a graph from a GeoJSON body (?vintage=, ?crs=, ?skip_reduce=, ?refresh=)
  GET  /v1/vintages  List supported schema vintages
  GET  /healthz      Liveness probe`,
		RunE: func(c *cobra.Command, args []string) error {
			return runServe(c, *configPath, addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", ":8080", "listen address")

	return cmd
}

func runServe(c *cobra.Command, configPath, addr string) error {
	ctx := c.Context()
	logger := loggerFromContext(ctx)

	cfg, err := loadConfig(configPath)
	if err != nil {
		return err
	}
	cacheBackend, err := openCache(ctx, cfg, false)
	if err != nil {
		return err
	}
	runner := pipeline.NewRunner(cacheBackend, cfg.Cache.Keyer(), logger)
	defer runner.Close()

	s := &server{runner: runner, cfg: cfg, logger: logger}
	httpSrv := &http.Server{Addr: addr, Handler: s.routes()}

	errCh := make(chan error, 1)
	go func() {
		errCh <- httpSrv.ListenAndServe()
	}()

	display := addr
	if strings.HasPrefix(display, ":") {
		display = "localhost" + display
	}
	logger.Info("listening", "addr", addr)
	printInfo("Serving road graph API at %s", StyleLink.Render("http://"+display))

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		// Drain in-flight builds before returning; the main exits 130 on
		// the context error.
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := httpSrv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		<-errCh
		return ctx.Err()
	}
}

// server holds the HTTP handler state.
type server struct {
	runner *pipeline.Runner
	cfg    *pipeline.Config
	logger *charmlog.Logger
}

func (s *server) routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(s.observe)

	r.Get("/healthz", s.handleHealth)
	r.Get("/v1/vintages", s.handleVintages)
	r.Post("/v1/graphs", s.handleBuild)

	return r
}

// observe logs each request and emits HTTP hooks.
func (s *server) observe(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		observability.HTTP().OnRequest(r.Context(), r.Method, r.URL.Path)

		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		elapsed := time.Since(start)
		observability.HTTP().OnResponse(r.Context(), r.Method, r.URL.Path, ww.Status(), elapsed)
		s.logger.Debug("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"duration", elapsed.Round(time.Millisecond))
	})
}

func (s *server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *server) handleVintages(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string][]string{"vintages": roadnet.Vintages()})
}

// buildResponse is the POST /v1/graphs response body.
type buildResponse struct {
	RunID     string          `json:"run_id"`
	GraphHash string          `json:"graph_hash"`
	Cached    bool            `json:"cached"`
	Stats     pipeline.Stats  `json:"stats"`
	Graph     json.RawMessage `json:"graph"`
}

func (s *server) handleBuild(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxUploadBytes))
	if err != nil {
		writeError(w, errors.New(errors.ErrCodeInvalidInput, "read request body: %v", err))
		return
	}

	q := r.URL.Query()
	opts := pipeline.Options{
		Vintage:    q.Get("vintage"),
		CRS:        q.Get("crs"),
		SkipReduce: q.Get("skip_reduce") == "true",
		Refresh:    q.Get("refresh") == "true",
		Logger:     s.logger,
	}
	s.cfg.ApplyDefaults(&opts)

	result, err := s.runner.ExecuteFeatures(r.Context(), body, opts)
	if err != nil {
		writeError(w, err)
		return
	}

	data, err := graph.MarshalGraph(result.Graph)
	if err != nil {
		writeError(w, errors.Wrap(errors.ErrCodeInternal, err, "serialize graph"))
		return
	}

	writeJSON(w, http.StatusOK, buildResponse{
		RunID:     result.RunID,
		GraphHash: result.GraphHash,
		Cached:    result.CacheInfo.BuildHit,
		Stats:     result.Stats,
		Graph:     data,
	})
}

// errorResponse is the error body for all endpoints.
type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// writeError maps error codes to HTTP statuses: caller mistakes are 400,
// inputs that parse but cannot produce a routable graph are 422, everything
// else is 500.
func writeError(w http.ResponseWriter, err error) {
	code := errors.GetCode(err)

	status := http.StatusInternalServerError
	switch code {
	case errors.ErrCodeUnsupportedVintage, errors.ErrCodeInvalidInput, errors.ErrCodeInvalidFormat:
		status = http.StatusBadRequest
	case errors.ErrCodeSchema, errors.ErrCodeEmptyInput, errors.ErrCodeNotRoutable:
		status = http.StatusUnprocessableEntity
	case errors.ErrCodeFileNotFound:
		status = http.StatusNotFound
	}

	writeJSON(w, status, errorResponse{Code: string(code), Message: errors.UserMessage(err)})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		fmt.Fprintf(w, `{"code":"INTERNAL_ERROR","message":"encode response"}`)
	}
}
