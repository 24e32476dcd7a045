// Package server implements the HTTP surface of the SQL query demo.
package server

import (
	"context"
	_ "embed"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"runtime/debug"
	"strings"

	"github.com/arllen133/sqldemo"
	"github.com/arllen133/sqldemo/internal/models"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

//go:embed help.html
var helpPage []byte

// Store is the data the handler serves.
type Store interface {
	ListUsers(ctx context.Context) (string, []*models.User, error)
	RunQuery(ctx context.Context, table, column, condition string) (string, []sqldemo.Record, error)
}

// Handler represents the HTTP handler of the service.
type Handler struct {
	store    Store
	logger   *slog.Logger
	registry *prometheus.Registry
	metrics  *metrics
	router   *mux.Router
	handler  http.Handler
}

// HandlerOption configures a Handler.
type HandlerOption func(*Handler)

// WithLogger sets the handler's logger.
func WithLogger(logger *slog.Logger) HandlerOption {
	return func(h *Handler) {
		h.logger = logger
	}
}

// WithRegistry registers the handler's metrics on registry instead of a
// private one.
func WithRegistry(registry *prometheus.Registry) HandlerOption {
	return func(h *Handler) {
		h.registry = registry
	}
}

// NewHandler returns a handler serving store.
func NewHandler(store Store, opts ...HandlerOption) *Handler {
	h := &Handler{
		store:  store,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(h)
	}
	if h.registry == nil {
		h.registry = prometheus.NewRegistry()
	}
	h.metrics = newMetrics(h.registry)
	h.router = newRouter(h)
	h.handler = h.withRequestLog(h.withCORS(h.router))
	return h
}

// newRouter creates a new mux http router.
func newRouter(h *Handler) *mux.Router {
	router := mux.NewRouter()
	// Paths are matched as sent: "//users" is not "/users".
	router.SkipClean(true)

	router.HandleFunc("/", h.handleGetHelp).Methods(http.MethodGet).Name("GetHelp")
	router.HandleFunc("/users", h.handleGetUsers).Methods(http.MethodGet).Name("GetUsers")
	router.HandleFunc("/query", h.handleGetQuery).Methods(http.MethodGet).Name("GetQuery")

	router.NotFoundHandler = http.HandlerFunc(h.handleNotFound)
	router.MethodNotAllowedHandler = http.HandlerFunc(h.handleNotFound)
	return router
}

// ServeHTTP handles an HTTP request.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	defer func() {
		if err := recover(); err != nil {
			h.logger.Error("handler panic",
				slog.String("url", r.URL.String()),
				slog.Any("panic", err),
				slog.String("stack", string(debug.Stack())),
			)
			writeJSON(w, http.StatusInternalServerError, errorResponse{
				Error:   "Internal server error",
				Message: fmt.Sprint(err),
			})
		}
	}()

	h.handler.ServeHTTP(w, r)
}

// MetricsHandler exposes the handler's prometheus metrics.
func (h *Handler) MetricsHandler() http.Handler {
	return promhttp.HandlerFor(h.registry, promhttp.HandlerOpts{})
}

func (h *Handler) handleGetHelp(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(helpPage)
}

func (h *Handler) handleGetUsers(w http.ResponseWriter, r *http.Request) {
	query, users, err := h.store.ListUsers(r.Context())
	if err != nil {
		h.metrics.queryFailures.WithLabelValues("users").Inc()
		writeJSON(w, http.StatusInternalServerError, errorResponse{
			Error:   "Database error",
			Message: err.Error(),
		})
		return
	}
	if users == nil {
		users = []*models.User{}
	}

	writeJSON(w, http.StatusOK, usersResponse{
		Success: true,
		Query:   query,
		Users:   users,
	})
}

func (h *Handler) handleGetQuery(w http.ResponseWriter, r *http.Request) {
	params := parseQuery(r.URL.RawQuery)
	table := queryParam(params, "table")
	column := queryParam(params, "column")
	condition := queryParam(params, "condition")

	query, results, err := h.store.RunQuery(r.Context(), table, column, condition)
	h.logger.InfoContext(r.Context(), "executed sql query", slog.String("query", query))
	if err != nil {
		h.metrics.queryFailures.WithLabelValues("query").Inc()
		writeJSON(w, http.StatusInternalServerError, errorResponse{
			Error:   "Database error",
			Message: err.Error(),
			Query:   query,
		})
		return
	}
	if results == nil {
		results = []sqldemo.Record{}
	}

	writeJSON(w, http.StatusOK, queryResponse{
		Success: true,
		Query:   query,
		Results: results,
		Count:   len(results),
	})
}

func (h *Handler) handleNotFound(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusNotFound, notFoundResponse{Error: "Endpoint not found"})
}

// queryParam returns the named parameter. Repeated parameters are joined
// with commas, so column=name&column=email selects "name,email".
func queryParam(params map[string][]string, name string) string {
	return strings.Join(params[name], ",")
}

// parseQuery splits raw on '&' only, so a ';' stays part of the value it
// appears in. Keys and values that fail to unescape are kept as sent.
func parseQuery(raw string) map[string][]string {
	params := make(map[string][]string)
	for _, pair := range strings.Split(raw, "&") {
		if pair == "" {
			continue
		}
		key, value, _ := strings.Cut(pair, "=")
		key, value = unescape(key), unescape(value)
		params[key] = append(params[key], value)
	}
	return params
}

func unescape(s string) string {
	if u, err := url.QueryUnescape(s); err == nil {
		return u
	}
	return s
}
