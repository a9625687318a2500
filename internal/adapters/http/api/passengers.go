package api

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/okian/titanic/internal/adapters/repository"
	"github.com/okian/titanic/internal/domain/passenger"
	"github.com/okian/titanic/pkg/logger"
)

// PassengerHandler serves the passenger query routes.
type PassengerHandler struct {
	deps   PassengerQueries
	logger logger.Logger
}

// NewPassengerHandler creates a new passenger handler.
func NewPassengerHandler(deps PassengerQueries, l logger.Logger) *PassengerHandler {
	return &PassengerHandler{deps: deps, logger: l}
}

type listResponse struct {
	Total int                   `json:"total"`
	Page  int                   `json:"page"`
	Limit int                   `json:"limit"`
	Data  []passenger.Passenger `json:"data"`
}

type classResponse struct {
	Class string                `json:"class"`
	Count int                   `json:"count"`
	Data  []passenger.Passenger `json:"data"`
}

type survivalResponse struct {
	Status string                `json:"status"`
	Label  string                `json:"label"`
	Count  int                   `json:"count"`
	Data   []passenger.Passenger `json:"data"`
}

type searchResponse struct {
	Query string                `json:"query"`
	Count int                   `json:"count"`
	Data  []passenger.Passenger `json:"data"`
}

// HandleList handles GET {prefix}/?page=&limit=. Unparseable values fall back to defaults.
func (h *PassengerHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	page := queryInt(r, "page", 1)
	limit := queryInt(r, "limit", h.deps.DefaultPageLimit())

	p, err := h.deps.List(r.Context(), page, limit)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, listResponse{Total: p.Total, Page: p.Page, Limit: p.Limit, Data: p.Data})
}

// HandleByID handles GET {prefix}/{id}. A non-integer id is not found.
func (h *PassengerHandler) HandleByID(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		mapError(w, repository.ErrNotFound)
		return
	}
	p, err := h.deps.ByID(r.Context(), id)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

// HandleByClass handles GET {prefix}/class/{class}. A non-integer class matches nothing.
func (h *PassengerHandler) HandleByClass(w http.ResponseWriter, r *http.Request) {
	raw := chi.URLParam(r, "class")
	data := []passenger.Passenger{}
	if class, err := strconv.Atoi(raw); err == nil {
		if data, err = h.deps.ByClass(r.Context(), class); err != nil {
			h.fail(w, r, err)
			return
		}
	}
	writeJSON(w, http.StatusOK, classResponse{Class: raw, Count: len(data), Data: data})
}

// HandleBySurvival handles GET {prefix}/survived/{status}.
func (h *PassengerHandler) HandleBySurvival(w http.ResponseWriter, r *http.Request) {
	raw := chi.URLParam(r, "status")
	data := []passenger.Passenger{}
	status, err := strconv.Atoi(raw)
	if err == nil {
		if data, err = h.deps.BySurvival(r.Context(), status); err != nil {
			h.fail(w, r, err)
			return
		}
	}
	writeJSON(w, http.StatusOK, survivalResponse{
		Status: raw,
		Label:  passenger.SurvivalLabel(status),
		Count:  len(data),
		Data:   data,
	})
}

// HandleSearch handles GET {prefix}/search/{name}.
func (h *PassengerHandler) HandleSearch(w http.ResponseWriter, r *http.Request) {
	q := chi.URLParam(r, "name")
	data, err := h.deps.SearchName(r.Context(), q)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, searchResponse{Query: q, Count: len(data), Data: data})
}

// HandleSummary handles GET {prefix}/stats/summary.
func (h *PassengerHandler) HandleSummary(w http.ResponseWriter, r *http.Request) {
	s, err := h.deps.Summary(r.Context())
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, s)
}

func (h *PassengerHandler) fail(w http.ResponseWriter, r *http.Request, err error) {
	h.logger.Debug(r.Context(), "passenger query failed", logger.String("path", r.URL.Path), logger.Error(err))
	mapError(w, err)
}

func queryInt(r *http.Request, key string, def int) int {
	v, err := strconv.Atoi(r.URL.Query().Get(key))
	if err != nil {
		return def
	}
	return v
}
