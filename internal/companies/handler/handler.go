package handler

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"ayala/internal/companies/models"
	"ayala/internal/companies/service"
	dErrors "ayala/pkg/domain-errors"
	"ayala/pkg/platform/httputil"
	"ayala/pkg/requestcontext"
)

// Service defines the company operations the handler needs.
type Service interface {
	Search(ctx context.Context, f models.SearchFilter) (*models.SearchResult, error)
	Get(ctx context.Context, id uuid.UUID) (*models.Company, error)
	Localities(ctx context.Context) ([]models.LocalityCount, error)
	SupportedCities() service.SupportedCities
	TranslateCity(name string) (*service.CityTranslation, error)
}

// Handler serves direct company search.
type Handler struct {
	service Service
	logger  *slog.Logger
}

func New(svc Service, logger *slog.Logger) *Handler {
	return &Handler{service: svc, logger: logger}
}

// Register mounts company endpoints on the router.
func (h *Handler) Register(r chi.Router) {
	r.Get("/companies", h.HandleSearch)
	r.Get("/companies/locations", h.HandleLocalities)
	r.Get("/companies/translations/supported-cities", h.HandleSupportedCities)
	r.Post("/companies/translations/translate-city", h.HandleTranslateCity)
	r.Get("/companies/{id}", h.HandleGet)
}

// HandleSearch handles GET /companies?location=&name=&activity=&limit=&offset=.
// activity is a comma-separated keyword list.
func (h *Handler) HandleSearch(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	f, err := parseFilter(r)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	res, err := h.service.Search(ctx, f)
	if err != nil {
		h.logger.ErrorContext(ctx, "company search failed",
			"request_id", requestID,
			"location", f.Location,
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, res)
}

// HandleGet handles GET /companies/{id}.
func (h *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "id must be a UUID"))
		return
	}

	c, err := h.service.Get(ctx, id)
	if err != nil {
		if !dErrors.HasCode(err, dErrors.CodeNotFound) {
			h.logger.ErrorContext(ctx, "get company failed",
				"request_id", requestcontext.RequestID(ctx),
				"company_id", id,
				"error", err,
			)
		}
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, c)
}

// HandleLocalities handles GET /companies/locations.
func (h *Handler) HandleLocalities(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	locs, err := h.service.Localities(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "list localities failed",
			"request_id", requestcontext.RequestID(ctx),
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, locs)
}

// HandleSupportedCities handles GET /companies/translations/supported-cities.
func (h *Handler) HandleSupportedCities(w http.ResponseWriter, _ *http.Request) {
	httputil.WriteJSON(w, http.StatusOK, h.service.SupportedCities())
}

// HandleTranslateCity handles POST /companies/translations/translate-city?city_name=.
func (h *Handler) HandleTranslateCity(w http.ResponseWriter, r *http.Request) {
	res, err := h.service.TranslateCity(r.URL.Query().Get("city_name"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, res)
}

func parseFilter(r *http.Request) (models.SearchFilter, error) {
	q := r.URL.Query()
	f := models.SearchFilter{
		Location:    strings.TrimSpace(q.Get("location")),
		CompanyName: strings.TrimSpace(q.Get("name")),
	}
	if raw := q.Get("activity"); raw != "" {
		f.ActivityKeywords = strings.Split(raw, ",")
	}

	var err error
	if f.Limit, err = intParam(q.Get("limit"), "limit"); err != nil {
		return f, err
	}
	if f.Offset, err = intParam(q.Get("offset"), "offset"); err != nil {
		return f, err
	}
	return f, nil
}

func intParam(raw, name string) (int, error) {
	if raw == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return 0, dErrors.New(dErrors.CodeBadRequest, name+" must be a non-negative integer")
	}
	return n, nil
}
