package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	charmlog "github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/plotgram/plotgram/pkg/cache"
	ploterrors "github.com/plotgram/plotgram/pkg/errors"
	plotio "github.com/plotgram/plotgram/pkg/io"
	"github.com/plotgram/plotgram/pkg/plot"
	"github.com/plotgram/plotgram/pkg/render"
)

const serveShutdownTimeout = 10 * time.Second

// serveOpts holds the command-line flags for the serve command.
type serveOpts struct {
	addr    string // listen address
	noCache bool   // bypass the artifact cache
	redis   string // Redis address for the artifact cache
}

// newServeCmd creates the serve command exposing the build pipeline
// over HTTP.
func newServeCmd() *cobra.Command {
	opts := serveOpts{addr: ":8080"}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the plot pipeline over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context(), &opts)
		},
	}

	cmd.Flags().StringVar(&opts.addr, "addr", opts.addr, "listen address")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "bypass the artifact cache")
	cmd.Flags().StringVar(&opts.redis, "redis", "", "Redis address for the artifact cache")

	return cmd
}

func runServe(ctx context.Context, opts *serveOpts) error {
	logger := loggerFromContext(ctx)

	store, err := newCache(ctx, opts.noCache, opts.redis)
	if err != nil {
		return err
	}
	defer store.Close()

	srv := &plotServer{
		store: store,
		keyer: cache.NewDefaultKeyer(),
	}

	httpSrv := &http.Server{Addr: opts.addr, Handler: srv.routes(logger)}

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		logger.Info("listening", "addr", opts.addr)
		errCh <- httpSrv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), serveShutdownTimeout)
	defer cancel()
	return httpSrv.Shutdown(shutdownCtx)
}

// =============================================================================
// Middleware
// =============================================================================

type ctxKeyRequestID struct{}

// requestID assigns each request a UUID, exposed in the X-Request-ID
// response header and the request context.
func requestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get("X-Request-ID")
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set("X-Request-ID", id)
		ctx := context.WithValue(r.Context(), ctxKeyRequestID{}, id)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// requestLogger logs each request with its UUID, method, path, status
// and duration.
func requestLogger(logger *charmlog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r)
			id, _ := r.Context().Value(ctxKeyRequestID{}).(string)
			logger.Info("request",
				"id", id,
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.Status(),
				"bytes", ww.BytesWritten(),
				"duration", time.Since(start),
			)
		})
	}
}

// =============================================================================
// Handlers
// =============================================================================

// plotServer holds the shared state of the HTTP handlers.
type plotServer struct {
	store cache.Cache
	keyer cache.Keyer
}

// routes assembles the HTTP router.
func (s *plotServer) routes(logger *charmlog.Logger) http.Handler {
	r := chi.NewRouter()
	r.Use(requestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger(logger))
	r.Use(middleware.Recoverer)

	r.Get("/healthz", s.health)
	r.Route("/v1/plots", func(r chi.Router) {
		r.Post("/build", s.build)
		r.Post("/render", s.render)
	})
	return r
}

// plotRequest is the JSON body of the build and render endpoints. The
// spec is TOML and the data is CSV, both inline.
type plotRequest struct {
	Spec string `json:"spec"`
	Data string `json:"data"`
}

func (s *plotServer) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *plotServer) build(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	req, built, err := s.buildRequest(ctx, r)
	if err != nil {
		writeError(w, err)
		return
	}

	key := s.keyer.BuildKey(cache.Hash([]byte(req.Data)), cache.BuildKeyOpts{
		SpecHash: cache.Hash([]byte(req.Spec)),
	})
	if data, hit, _ := s.store.Get(ctx, key); hit {
		w.Header().Set("Content-Type", "application/json")
		w.Header().Set("X-Cache", "hit")
		w.WriteHeader(http.StatusOK)
		w.Write(data)
		return
	}

	var buf bytes.Buffer
	if err := plotio.WriteJSON(built, &buf); err != nil {
		writeError(w, err)
		return
	}
	_ = s.store.Set(ctx, key, buf.Bytes(), 0)

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("X-Cache", "miss")
	w.WriteHeader(http.StatusOK)
	w.Write(buf.Bytes())
}

func (s *plotServer) render(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	_, built, err := s.buildRequest(ctx, r)
	if err != nil {
		writeError(w, err)
		return
	}

	width := queryFloat(r, "width", defaultWidth)
	height := queryFloat(r, "height", defaultHeight)
	theme := render.DefaultTheme()
	if r.URL.Query().Get("theme") == themeMinimal {
		theme = render.MinimalTheme()
	}

	var svg bytes.Buffer
	renderer := render.NewSVG(&svg,
		render.WithSize(width, height),
		render.WithTheme(theme),
	)
	if err := built.Draw(renderer); err != nil {
		writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", "image/svg+xml")
	w.WriteHeader(http.StatusOK)
	w.Write(svg.Bytes())
}

// buildRequest decodes a plot request and runs the build pipeline on
// it.
func (s *plotServer) buildRequest(ctx context.Context, r *http.Request) (*plotRequest, *plot.Built, error) {
	var req plotRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return nil, nil, ploterrors.Wrap(ploterrors.ErrCodeInvalidSpec, err, "decode request body")
	}
	if req.Spec == "" {
		return nil, nil, ploterrors.New(ploterrors.ErrCodeInvalidSpec, "request has no spec")
	}

	spec, err := plotio.ReadSpec(bytes.NewReader([]byte(req.Spec)))
	if err != nil {
		return nil, nil, err
	}
	data, err := plotio.ReadCSV(bytes.NewReader([]byte(req.Data)))
	if err != nil {
		return nil, nil, err
	}

	p, err := spec.Plot(data)
	if err != nil {
		return nil, nil, err
	}
	built, err := plot.Build(ctx, p)
	if err != nil {
		return nil, nil, err
	}
	return &req, built, nil
}

// =============================================================================
// Helpers
// =============================================================================

func queryFloat(r *http.Request, name string, fallback float64) float64 {
	s := r.URL.Query().Get(name)
	if s == "" {
		return fallback
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || v <= 0 {
		return fallback
	}
	return v
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError maps pipeline error codes onto HTTP statuses. Spec and
// data problems are the client's fault, everything else is a 500.
func writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	for _, code := range []ploterrors.Code{
		ploterrors.ErrCodeInvalidSpec,
		ploterrors.ErrCodeInvalidData,
		ploterrors.ErrCodeInvalidMapping,
		ploterrors.ErrCodeInvalidFacet,
		ploterrors.ErrCodeMissingAes,
		ploterrors.ErrCodeUnknownGeom,
		ploterrors.ErrCodeUnknownStat,
		ploterrors.ErrCodeUnknownPosition,
		ploterrors.ErrCodeUnknownScale,
		ploterrors.ErrCodeUnknownCoord,
	} {
		if ploterrors.Is(err, code) {
			status = http.StatusBadRequest
			break
		}
	}
	writeJSON(w, status, map[string]string{"error": err.Error()})
}
