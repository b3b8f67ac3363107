package chi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/kailas-cloud/pokedex/internal/domain"
	domitem "github.com/kailas-cloud/pokedex/internal/domain/item"
	"github.com/kailas-cloud/pokedex/internal/domain/query"
	domsort "github.com/kailas-cloud/pokedex/internal/domain/query/sort"
	cataloguc "github.com/kailas-cloud/pokedex/internal/usecase/catalog"
	favoritesuc "github.com/kailas-cloud/pokedex/internal/usecase/favorites"
	healthuc "github.com/kailas-cloud/pokedex/internal/usecase/health"
)

// Error codes returned to clients.
const (
	codeBadRequest         = "bad_request"
	codeValidationFailed   = "validation_failed"
	codeItemNotFound       = "item_not_found"
	codeAlreadyFavorite    = "already_favorite"
	codeNotFavorite        = "not_favorite"
	codeIdentityRequired   = "identity_required"
	codeCatalogUnavailable = "catalog_unavailable"
	codeInternalError      = "internal_error"
)

// errorHandler tries to handle a domain error. Returns true if handled.
type errorHandler func(w http.ResponseWriter, err error, msg string) bool

// cacheAdmin drops all query cache entries (ISP).
type cacheAdmin interface {
	Flush(ctx context.Context) (int, error)
}

// Server routes HTTP requests to the catalog, favorites, and health services.
type Server struct {
	catalog        *cataloguc.Service
	favorites      *favoritesuc.Service
	health         *healthuc.Service
	cache          cacheAdmin
	logger         *zap.Logger
	errorHandlers  []errorHandler
	defaultPerPage int
	maxPerPage     int
}

// NewServer creates an HTTP API server.
func NewServer(
	catalog *cataloguc.Service,
	favorites *favoritesuc.Service,
	health *healthuc.Service,
	cache cacheAdmin,
	logger *zap.Logger,
) *Server {
	s := &Server{
		catalog:        catalog,
		favorites:      favorites,
		health:         health,
		cache:          cache,
		logger:         logger,
		defaultPerPage: query.DefaultPerPage,
		maxPerPage:     query.MaxPerPage,
	}
	s.errorHandlers = []errorHandler{
		sentinelHandler(domain.ErrValidation, http.StatusBadRequest, codeValidationFailed),
		sentinelHandler(domain.ErrItemNotFound, http.StatusNotFound, codeItemNotFound),
		sentinelHandler(domain.ErrAlreadyFavorite, http.StatusConflict, codeAlreadyFavorite),
		sentinelHandler(domain.ErrNotFavorite, http.StatusNotFound, codeNotFavorite),
		sentinelHandler(domain.ErrIdentityRequired, http.StatusUnauthorized, codeIdentityRequired),
		sentinelHandler(domain.ErrCatalogUnavailable, http.StatusServiceUnavailable, codeCatalogUnavailable),
	}
	return s
}

// WithPagination overrides the page size defaults. The configured max
// cannot exceed the domain hard cap.
func (s *Server) WithPagination(defaultPerPage, maxPerPage int) *Server {
	if defaultPerPage > 0 {
		s.defaultPerPage = defaultPerPage
	}
	if maxPerPage > 0 && maxPerPage <= query.MaxPerPage {
		s.maxPerPage = maxPerPage
	}
	return s
}

// Routes mounts all handlers on the given router.
func (s *Server) Routes(r chi.Router) {
	r.Get("/health", s.HealthCheck)
	r.Get("/metrics", s.Metrics)

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/items", s.ListItems)
		r.Get("/items/{id}", s.GetItem)
		r.Get("/favorites", s.ListFavorites)
		r.Post("/favorites", s.AddFavorite)
		r.Delete("/favorites/{id}", s.RemoveFavorite)
		r.Delete("/cache", s.FlushCache)
	})
}

// ListItems handles GET /api/v1/items.
func (s *Server) ListItems(w http.ResponseWriter, r *http.Request) {
	params := r.URL.Query()

	page, pageSet, ok := intParam(w, params.Get("page"), "page")
	if !ok {
		return
	}
	if pageSet && page < 1 {
		writeError(w, http.StatusBadRequest, codeValidationFailed, "page must be at least 1")
		return
	}
	perPage, perPageSet, ok := intParam(w, params.Get("per_page"), "per_page")
	if !ok {
		return
	}
	if perPageSet && perPage < 1 {
		writeError(w, http.StatusBadRequest, codeValidationFailed, "per_page must be at least 1")
		return
	}
	if !perPageSet {
		perPage = s.defaultPerPage
	}
	if perPage > s.maxPerPage {
		writeError(w, http.StatusBadRequest, codeValidationFailed,
			"per_page must be at most "+strconv.Itoa(s.maxPerPage))
		return
	}

	q, err := query.New(
		params.Get("search"),
		params.Get("type"),
		domsort.Order(params.Get("sort")),
		page,
		perPage,
		UserFromContext(r.Context()),
	)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	res, err := s.catalog.Query(r.Context(), &q)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	items := make([]itemResponse, len(res.Items))
	for i := range res.Items {
		items[i] = itemToResponse(&res.Items[i])
	}

	writeJSON(w, http.StatusOK, itemListResponse{
		Items: items,
		Pagination: paginationResponse{
			Page:    res.Page,
			PerPage: res.PerPage,
			Total:   res.Total,
			HasNext: res.HasNext,
		},
	})
}

// GetItem handles GET /api/v1/items/{id}.
func (s *Server) GetItem(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, codeValidationFailed, "id must be an integer")
		return
	}

	it, err := s.catalog.Get(r.Context(), id)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, itemToResponse(&it))
}

// ListFavorites handles GET /api/v1/favorites.
func (s *Server) ListFavorites(w http.ResponseWriter, r *http.Request) {
	items, err := s.favorites.List(r.Context(), UserFromContext(r.Context()))
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	resp := favoriteListResponse{Items: make([]itemResponse, len(items)), Count: len(items)}
	for i := range items {
		resp.Items[i] = itemToResponse(&items[i])
	}

	writeJSON(w, http.StatusOK, resp)
}

// AddFavorite handles POST /api/v1/favorites.
func (s *Server) AddFavorite(w http.ResponseWriter, r *http.Request) {
	var req addFavoriteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if req.ItemID <= 0 {
		writeError(w, http.StatusBadRequest, codeValidationFailed, "item_id must be a positive integer")
		return
	}

	if err := s.favorites.Add(r.Context(), UserFromContext(r.Context()), req.ItemID); err != nil {
		s.handleDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, favoriteResponse{ItemID: req.ItemID})
}

// RemoveFavorite handles DELETE /api/v1/favorites/{id}.
func (s *Server) RemoveFavorite(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, codeValidationFailed, "id must be an integer")
		return
	}

	if err := s.favorites.Remove(r.Context(), UserFromContext(r.Context()), id); err != nil {
		s.handleDomainError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// FlushCache handles DELETE /api/v1/cache.
func (s *Server) FlushCache(w http.ResponseWriter, r *http.Request) {
	n, err := s.cache.Flush(r.Context())
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, flushCacheResponse{Cleared: n})
}

// HealthCheck handles GET /health.
func (s *Server) HealthCheck(w http.ResponseWriter, r *http.Request) {
	report := s.health.Check(r.Context())

	httpStatus := http.StatusOK
	if report.Status != healthuc.Healthy {
		httpStatus = http.StatusServiceUnavailable
	}

	checks := make(map[string]string, len(report.Checks))
	for k, v := range report.Checks {
		checks[k] = string(v)
	}

	writeJSON(w, httpStatus, healthResponse{
		Status: string(report.Status),
		Checks: checks,
	})
}

// Metrics handles GET /metrics.
func (s *Server) Metrics(w http.ResponseWriter, r *http.Request) {
	promhttp.Handler().ServeHTTP(w, r)
}

// intParam parses an optional integer query parameter. set reports
// whether the parameter was present at all, so an explicit zero is not
// mistaken for an omitted one.
func intParam(w http.ResponseWriter, raw, name string) (value int, set, ok bool) {
	if raw == "" {
		return 0, false, true
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		writeError(w, http.StatusBadRequest, codeValidationFailed, name+" must be an integer")
		return 0, true, false
	}
	return v, true, true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, errorResponse{
		Code:    code,
		Message: message,
	})
}

// safeDomainMessage returns a sentinel error message for the client without exposing internals.
func safeDomainMessage(err error) string {
	var ve *domain.ValidationError
	if errors.As(err, &ve) {
		return ve.Error()
	}

	sentinels := []error{
		domain.ErrValidation,
		domain.ErrItemNotFound,
		domain.ErrAlreadyFavorite,
		domain.ErrNotFavorite,
		domain.ErrIdentityRequired,
		domain.ErrCatalogUnavailable,
	}
	for _, s := range sentinels {
		if errors.Is(err, s) {
			return s.Error()
		}
	}
	return "internal error"
}

// sentinelHandler returns an errorHandler that matches a single sentinel error.
func sentinelHandler(sentinel error, status int, code string) errorHandler {
	return func(w http.ResponseWriter, err error, msg string) bool {
		if !errors.Is(err, sentinel) {
			return false
		}
		writeError(w, status, code, msg)
		return true
	}
}

func (s *Server) handleDomainError(w http.ResponseWriter, err error) {
	s.logger.Warn("domain error", zap.Error(err))
	msg := safeDomainMessage(err)
	for _, h := range s.errorHandlers {
		if h(w, err, msg) {
			return
		}
	}
	s.logger.Error("internal error", zap.Error(err))
	writeError(w, http.StatusInternalServerError, codeInternalError, "internal error")
}

// --- wire types ---

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type itemResponse struct {
	ID             int            `json:"id"`
	Name           string         `json:"name"`
	Types          []string       `json:"types"`
	Height         int            `json:"height"`
	Weight         int            `json:"weight"`
	BaseExperience int            `json:"base_experience"`
	Abilities      []string       `json:"abilities,omitempty"`
	Stats          map[string]int `json:"stats,omitempty"`
	SpriteURL      string         `json:"sprite_url,omitempty"`
}

type paginationResponse struct {
	Page    int  `json:"page"`
	PerPage int  `json:"per_page"`
	Total   int  `json:"total"`
	HasNext bool `json:"has_next"`
}

type itemListResponse struct {
	Items      []itemResponse     `json:"items"`
	Pagination paginationResponse `json:"pagination"`
}

type favoriteListResponse struct {
	Items []itemResponse `json:"items"`
	Count int            `json:"count"`
}

type addFavoriteRequest struct {
	ItemID int `json:"item_id"`
}

type favoriteResponse struct {
	ItemID int `json:"item_id"`
}

type flushCacheResponse struct {
	Cleared int `json:"cleared"`
}

type healthResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks"`
}

func itemToResponse(it *domitem.Item) itemResponse {
	return itemResponse{
		ID:             it.ID(),
		Name:           it.Name(),
		Types:          it.Types(),
		Height:         it.Height(),
		Weight:         it.Weight(),
		BaseExperience: it.BaseExperience(),
		Abilities:      it.Abilities(),
		Stats:          it.Stats(),
		SpriteURL:      it.SpriteURL(),
	}
}
