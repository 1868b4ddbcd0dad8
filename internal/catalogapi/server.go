package catalogapi

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/httprate"
	"github.com/google/uuid"

	"github.com/odyssey-erp/catalog-admin/internal/catalog"
	"github.com/odyssey-erp/catalog-admin/internal/platform/httpx"
	"github.com/odyssey-erp/catalog-admin/internal/products"
)

const (
	msgInvalidBody = "Request body must be a JSON product"
	msgInvalidData = "Product data is invalid"
)

// Server exposes a Repository over the catalog REST contract.
type Server struct {
	repo     Repository
	logger   *slog.Logger
	envelope bool
}

// NewServer builds the development API server.
func NewServer(repo Repository, logger *slog.Logger, envelope bool) *Server {
	return &Server{repo: repo, logger: logger, envelope: envelope}
}

// Routes returns the HTTP handler for the product collection resource.
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(requestID)
	r.Use(middleware.Recoverer)
	r.Use(httprate.LimitByIP(600, time.Minute))

	r.Get("/", s.list)
	r.Post("/", s.create)
	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		httpx.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	return r
}

func (s *Server) list(w http.ResponseWriter, r *http.Request) {
	items, err := s.repo.List(r.Context())
	if err != nil {
		s.logger.Error("list products", slog.String("request_id", w.Header().Get("X-Request-ID")), slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	if s.envelope {
		httpx.JSON(w, http.StatusOK, map[string][]catalog.Product{"results": items})
		return
	}
	httpx.JSON(w, http.StatusOK, items)
}

func (s *Server) create(w http.ResponseWriter, r *http.Request) {
	var draft catalog.Draft
	if err := httpx.DecodeJSON(r, &draft); err != nil {
		httpx.Message(w, http.StatusBadRequest, msgInvalidBody)
		return
	}
	if errs := products.ValidateDraft(draft); len(errs) > 0 {
		httpx.JSON(w, http.StatusUnprocessableEntity, httpx.ErrorBody{Message: msgInvalidData, Errors: errs})
		return
	}
	product, err := s.repo.Create(r.Context(), draft)
	if err != nil {
		s.logger.Warn("create product", slog.String("request_id", w.Header().Get("X-Request-ID")), slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	s.logger.Info("product created", slog.Int64("id", product.ID), slog.String("name", product.ProductName))
	httpx.JSON(w, http.StatusCreated, product)
}

// requestID echoes or assigns an X-Request-ID for log correlation.
func requestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get("X-Request-ID")
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set("X-Request-ID", id)
		next.ServeHTTP(w, r)
	})
}
