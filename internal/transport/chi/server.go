package chi

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"
	"github.com/oapi-codegen/runtime"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/kailas-cloud/blogdex/internal/domain"
	domarticle "github.com/kailas-cloud/blogdex/internal/domain/article"
	"github.com/kailas-cloud/blogdex/internal/domain/tag"
	healthuc "github.com/kailas-cloud/blogdex/internal/usecase/health"
)

// errorHandler tries to handle a domain error. Returns true if handled.
type errorHandler func(w http.ResponseWriter, err error, msg string) bool

// Catalog is the read side of the article catalog served over HTTP.
type Catalog interface {
	All() ([]domarticle.Article, error)
	Latest(n int) ([]domarticle.Article, error)
	Tags(order tag.Order) ([]tag.Tag, error)
	ArticlesByTag(name string) ([]domarticle.Article, error)
	Article(id int) (domarticle.Article, error)
	Related(id, limit int) ([]domarticle.Article, error)
}

// Limits bounds the numeric query parameters.
type Limits struct {
	LatestCount         int
	DefaultRelatedLimit int
	MaxRelatedLimit     int
	DefaultPageSize     int
	MaxPageSize         int
}

// Server holds the HTTP handlers of the blog API.
type Server struct {
	catalog       Catalog
	health        *healthuc.Service
	limits        Limits
	logger        *zap.Logger
	errorHandlers []errorHandler
}

// NewServer creates an HTTP API server.
func NewServer(catalog Catalog, health *healthuc.Service, limits Limits, logger *zap.Logger) *Server {
	s := &Server{
		catalog: catalog,
		health:  health,
		limits:  limits,
		logger:  logger,
	}
	s.errorHandlers = []errorHandler{
		sentinelHandler(domain.ErrNotFound, http.StatusNotFound, ErrorCodeArticleNotFound),
		sentinelHandler(domain.ErrNotReady, http.StatusServiceUnavailable, ErrorCodeNotReady),
	}
	return s
}

// ListPosts handles GET /api/v1/posts.
func (s *Server) ListPosts(w http.ResponseWriter, r *http.Request) {
	limit, ok := s.queryLimit(w, r, s.limits.DefaultPageSize, 1, s.limits.MaxPageSize)
	if !ok {
		return
	}
	var cursor *int
	if err := runtime.BindQueryParameter("form", true, false, "cursor", r.URL.Query(), &cursor); err != nil {
		writeError(w, http.StatusBadRequest, ErrorCodeBadRequest, fmt.Sprintf("Invalid format for parameter cursor: %s", err))
		return
	}

	all, err := s.catalog.All()
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	resp, err := paginateArticles(all, cursor, limit)
	if err != nil {
		writeError(w, http.StatusBadRequest, ErrorCodeValidationFailed, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// paginateArticles slices the collection after the cursor article.
func paginateArticles(all []domarticle.Article, cursor *int, limit int) (ArticleCursorListResponse, error) {
	startIdx := 0
	if cursor != nil {
		found := false
		for i := range all {
			if all[i].ID() == *cursor {
				startIdx = i + 1
				found = true
				break
			}
		}
		if !found {
			return ArticleCursorListResponse{}, fmt.Errorf("unknown cursor %d", *cursor)
		}
	}

	end := min(startIdx+limit, len(all))
	page := all[startIdx:end]
	hasMore := end < len(all)

	resp := ArticleCursorListResponse{
		Items:   articlesToWire(page),
		HasMore: hasMore,
		Total:   len(all),
	}
	if hasMore && len(page) > 0 {
		c := page[len(page)-1].ID()
		resp.NextCursor = &c
	}
	return resp, nil
}

// LatestPosts handles GET /api/v1/posts/latest.
func (s *Server) LatestPosts(w http.ResponseWriter, r *http.Request) {
	limit, ok := s.queryLimit(w, r, s.limits.LatestCount, 0, s.limits.MaxPageSize)
	if !ok {
		return
	}

	articles, err := s.catalog.Latest(limit)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, ArticleListResponse{Items: articlesToWire(articles)})
}

// GetPost handles GET /api/v1/posts/{id}.
func (s *Server) GetPost(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	a, err := s.catalog.Article(id)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, articleToWire(&a))
}

// RelatedPosts handles GET /api/v1/posts/{id}/related.
// An unknown reference article yields an empty list.
func (s *Server) RelatedPosts(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	limit, ok := s.queryLimit(w, r, s.limits.DefaultRelatedLimit, 0, s.limits.MaxRelatedLimit)
	if !ok {
		return
	}

	articles, err := s.catalog.Related(id, limit)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, ArticleListResponse{Items: articlesToWire(articles)})
}

// ListTags handles GET /api/v1/tags.
func (s *Server) ListTags(w http.ResponseWriter, r *http.Request) {
	var sort *string
	if err := runtime.BindQueryParameter("form", true, false, "sort", r.URL.Query(), &sort); err != nil {
		writeError(w, http.StatusBadRequest, ErrorCodeBadRequest, fmt.Sprintf("Invalid format for parameter sort: %s", err))
		return
	}
	var order tag.Order
	if sort != nil {
		var err error
		if order, err = tag.ParseOrder(*sort); err != nil {
			writeError(w, http.StatusBadRequest, ErrorCodeValidationFailed, err.Error())
			return
		}
	}

	tags, err := s.catalog.Tags(order)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, TagListResponse{Items: tagsToWire(tags)})
}

// TagPosts handles GET /api/v1/tags/{tag}/posts.
// An unknown tag yields an empty list.
func (s *Server) TagPosts(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "tag")
	// chi matches on RawPath when it is set, leaving the segment escaped.
	// Otherwise the value is already decoded and must be taken verbatim.
	if r.URL.RawPath != "" {
		unescaped, err := url.PathUnescape(name)
		if err != nil {
			writeError(w, http.StatusBadRequest, ErrorCodeBadRequest, fmt.Sprintf("Invalid format for parameter tag: %s", err))
			return
		}
		name = unescaped
	}
	if name == "" {
		writeError(w, http.StatusBadRequest, ErrorCodeBadRequest, "Invalid format for parameter tag: value is required")
		return
	}

	articles, err := s.catalog.ArticlesByTag(name)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, TagArticlesResponse{Tag: name, Items: articlesToWire(articles)})
}

// HealthCheck handles GET /health.
func (s *Server) HealthCheck(w http.ResponseWriter, r *http.Request) {
	report := s.health.Check(r.Context())

	checks := make(map[string]string, len(report.Checks))
	for k, v := range report.Checks {
		checks[k] = string(v)
	}

	httpStatus := http.StatusOK
	if report.Status != healthuc.Healthy {
		httpStatus = http.StatusServiceUnavailable
	}

	writeJSON(w, httpStatus, HealthResponse{
		Status: string(report.Status),
		Checks: checks,
	})
}

// Metrics handles GET /metrics.
func (s *Server) Metrics(w http.ResponseWriter, r *http.Request) {
	promhttp.Handler().ServeHTTP(w, r)
}

// pathID binds the {id} path parameter.
func pathID(w http.ResponseWriter, r *http.Request) (int, bool) {
	var id int
	err := runtime.BindStyledParameterWithOptions("simple", "id", chi.URLParam(r, "id"), &id,
		runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Explode: false, Required: true})
	if err != nil {
		writeError(w, http.StatusBadRequest, ErrorCodeBadRequest, fmt.Sprintf("Invalid format for parameter id: %s", err))
		return 0, false
	}
	return id, true
}

// queryLimit binds the optional limit query parameter and checks it against [lo, hi].
func (s *Server) queryLimit(w http.ResponseWriter, r *http.Request, def, lo, hi int) (int, bool) {
	var limitPtr *int
	if err := runtime.BindQueryParameter("form", true, false, "limit", r.URL.Query(), &limitPtr); err != nil {
		writeError(w, http.StatusBadRequest, ErrorCodeBadRequest, fmt.Sprintf("Invalid format for parameter limit: %s", err))
		return 0, false
	}
	if limitPtr == nil {
		return def, true
	}
	if *limitPtr < lo || *limitPtr > hi {
		writeError(w, http.StatusBadRequest, ErrorCodeValidationFailed,
			fmt.Sprintf("limit must be between %d and %d", lo, hi))
		return 0, false
	}
	return *limitPtr, true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code ErrorCode, message string) {
	writeJSON(w, status, ErrorResponse{
		Code:    code,
		Message: message,
	})
}

// safeDomainMessage returns a sentinel error message for the client without exposing internals.
func safeDomainMessage(err error) string {
	sentinels := []error{
		domain.ErrNotFound,
		domain.ErrNotReady,
	}
	for _, s := range sentinels {
		if errors.Is(err, s) {
			return s.Error()
		}
	}
	return "internal error"
}

// sentinelHandler returns an errorHandler that matches a single sentinel error.
func sentinelHandler(sentinel error, status int, code ErrorCode) errorHandler {
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
	writeError(w, http.StatusInternalServerError, ErrorCodeInternalError, "internal error")
}
