package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/matzehuels/topograph/pkg/buildinfo"
	"github.com/matzehuels/topograph/pkg/cache"
	pkgerrors "github.com/matzehuels/topograph/pkg/errors"
	"github.com/matzehuels/topograph/pkg/graph"
	"github.com/matzehuels/topograph/pkg/mesh"
	"github.com/matzehuels/topograph/pkg/reeb"
)

func newServeCmd(cfg *Config) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Expose Reeb graph building over HTTP",
		Long: `Expose Reeb graph building over HTTP.

Endpoints:

  POST /v1/build?field=<name>&simplify=<t>   mesh JSON in, graph JSON out
  GET  /v1/healthz                           liveness probe
  GET  /version                              build information

Each request gets its own Reeb graph instance; results are cached by mesh
content hash, in Redis when redis_addr is configured, on disk otherwise.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context(), addr, cfg)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", ":8080", "listen address")
	return cmd
}

// server carries the shared state of the HTTP surface. Reeb graph
// instances are per-request; only the cache is shared.
type server struct {
	cache cache.Cache
}

func runServe(ctx context.Context, addr string, cfg *Config) error {
	logger := loggerFromContext(ctx)

	var c cache.Cache
	if cfg.RedisAddr != "" {
		rc, err := cache.NewRedisCache(ctx, cfg.RedisAddr)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.ErrCodeInternal, err, "connect redis %s", cfg.RedisAddr)
		}
		c = cache.NewScoped(rc, appName+":")
		logger.Info("Using redis cache", "addr", cfg.RedisAddr)
	} else {
		c = openCache(cfg, false)
	}
	defer c.Close()

	s := &server{cache: c}

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(requestID)
	r.Post("/v1/build", s.handleBuild)
	r.Get("/v1/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	r.Get("/version", func(w http.ResponseWriter, _ *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]string{
			"version": buildinfo.Version,
			"commit":  buildinfo.Commit,
		})
	})

	srv := &http.Server{Addr: addr, Handler: r, ReadHeaderTimeout: 10 * time.Second}
	errCh := make(chan error, 1)
	go func() { errCh <- srv.ListenAndServe() }()
	logger.Info("Listening", "addr", addr)

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}

// requestID tags each request with a UUID for log correlation.
func requestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := uuid.NewString()
		w.Header().Set("X-Request-Id", id)
		next.ServeHTTP(w, r)
	})
}

// apiError is the JSON error envelope.
type apiError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeErr(w http.ResponseWriter, status int, err error) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(apiError{
		Code:    string(pkgerrors.GetCode(err)),
		Message: pkgerrors.UserMessage(err),
	})
}

// handleBuild streams the posted mesh and responds with the published
// graph document.
func (s *server) handleBuild(w http.ResponseWriter, r *http.Request) {
	raw, err := readBody(r)
	if err != nil {
		writeErr(w, http.StatusBadRequest, pkgerrors.Wrap(pkgerrors.ErrCodeInvalidMesh, err, "read body"))
		return
	}

	threshold := 0.0
	if v := r.URL.Query().Get("simplify"); v != "" {
		threshold, err = strconv.ParseFloat(v, 64)
		if err != nil || pkgerrors.ValidateThreshold(threshold) != nil {
			writeErr(w, http.StatusBadRequest,
				pkgerrors.New(pkgerrors.ErrCodeInvalidThreshold, "bad simplify value %q", v))
			return
		}
	}

	m, err := mesh.Read(bytes.NewReader(raw))
	if err != nil {
		writeErr(w, http.StatusBadRequest, pkgerrors.Wrap(pkgerrors.ErrCodeInvalidMesh, err, "parse mesh"))
		return
	}
	field, err := resolveField(m, r.URL.Query().Get("field"))
	if err != nil {
		writeErr(w, http.StatusBadRequest, err)
		return
	}

	key := cache.GraphKey(cache.Hash(raw), field, threshold)
	if data, hit, err := s.cache.Get(r.Context(), key); err == nil && hit {
		w.Header().Set("Content-Type", "application/json")
		w.Header().Set("X-Cache", "hit")
		_, _ = w.Write(data)
		return
	}

	g := reeb.New()
	if err := reeb.BuildByName(g, m, field); err != nil {
		writeErr(w, http.StatusUnprocessableEntity,
			pkgerrors.Wrap(pkgerrors.ErrCodeInvalidMesh, err, "build failed (code %d)", reeb.WireCode(err)))
		return
	}
	if threshold > 0 {
		if _, err := g.Simplify(threshold, nil); err != nil {
			writeErr(w, http.StatusInternalServerError,
				pkgerrors.Wrap(pkgerrors.ErrCodeInternal, err, "simplify"))
			return
		}
	}
	doc, err := g.Document()
	if err != nil {
		writeErr(w, http.StatusInternalServerError, pkgerrors.Wrap(pkgerrors.ErrCodeInternal, err, "publish"))
		return
	}
	data, err := graph.MarshalGraph(doc)
	if err != nil {
		writeErr(w, http.StatusInternalServerError, pkgerrors.Wrap(pkgerrors.ErrCodeInternal, err, "marshal"))
		return
	}
	_ = s.cache.Set(r.Context(), key, data, cacheTTL)
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write(data)
}

// readBody reads a bounded request body; mesh documents over 64 MiB are
// rejected rather than buffered.
func readBody(r *http.Request) ([]byte, error) {
	const maxBody = 64 << 20
	defer r.Body.Close()
	var buf bytes.Buffer
	if _, err := buf.ReadFrom(http.MaxBytesReader(nil, r.Body, maxBody)); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
