package httpapi

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/ivan-chernow/ZaraHome-sub000/internal/domain"
)

const maxBodyBytes = 1 << 20

type statusRequest struct {
	Status string `json:"status"`
}

func userID(r *http.Request) string {
	p, _ := PrincipalFrom(r.Context())
	return p.UserID
}

func (s *Server) createOrder(w http.ResponseWriter, r *http.Request) {
	var payload domain.CreateOrderPayload
	if !s.decode(w, r, &payload) {
		return
	}
	o, err := s.service.CreateOrder(r.Context(), payload, userID(r))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, o)
}

func (s *Server) getUserOrders(w http.ResponseWriter, r *http.Request) {
	p, err := pageRequest(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	res, err := s.service.GetUserOrders(r.Context(), userID(r), p)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (s *Server) getActiveOrder(w http.ResponseWriter, r *http.Request) {
	o, err := s.service.GetActiveOrder(r.Context(), userID(r))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if o == nil {
		s.writeError(w, r, domain.NotFound("active order"))
		return
	}
	writeJSON(w, http.StatusOK, o)
}

func (s *Server) getOrder(w http.ResponseWriter, r *http.Request) {
	o, err := s.service.GetOrderByID(r.Context(), chi.URLParam(r, "id"), userID(r))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if o == nil {
		s.writeError(w, r, domain.NotFound("order"))
		return
	}
	writeJSON(w, http.StatusOK, o)
}

func (s *Server) updateOrder(w http.ResponseWriter, r *http.Request) {
	var patch domain.OrderPatch
	if !s.decode(w, r, &patch) {
		return
	}
	if patch.Empty() {
		s.writeError(w, r, domain.NewValidationError("", "nothing to update"))
		return
	}
	o, err := s.service.UpdateOrder(r.Context(), chi.URLParam(r, "id"), patch, userID(r))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, o)
}

func (s *Server) updateOrderStatus(w http.ResponseWriter, r *http.Request) {
	var req statusRequest
	if !s.decode(w, r, &req) {
		return
	}
	status, err := domain.ParseStatus(req.Status)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	o, err := s.service.UpdateOrderStatus(r.Context(), chi.URLParam(r, "id"), status, userID(r))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, o)
}

func (s *Server) cancelOrder(w http.ResponseWriter, r *http.Request) {
	o, err := s.service.CancelOrder(r.Context(), chi.URLParam(r, "id"), userID(r))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, o)
}

func (s *Server) getOrdersByStatus(w http.ResponseWriter, r *http.Request) {
	status, err := domain.ParseStatus(r.URL.Query().Get("status"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	p, err := pageRequest(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	res, err := s.service.GetOrdersByStatus(r.Context(), status, p)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (s *Server) searchOrders(w http.ResponseWriter, r *http.Request) {
	p, err := pageRequest(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	res, err := s.service.SearchOrders(r.Context(), r.URL.Query().Get("q"), p)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (s *Server) getOrdersStatistics(w http.ResponseWriter, r *http.Request) {
	st, err := s.service.GetOrdersStatistics(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, st)
}

func (s *Server) decode(w http.ResponseWriter, r *http.Request, v any) bool {
	ct := r.Header.Get("Content-Type")
	if !strings.HasPrefix(strings.ToLower(ct), "application/json") {
		writeJSON(w, http.StatusUnsupportedMediaType, errorBody{Error: "Content-Type must be application/json"})
		return false
	}

	decoder := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(v); err != nil {
		s.logger.Debug("Error while decoding JSON", zap.Error(err))
		writeJSON(w, http.StatusBadRequest, errorBody{Error: "bad json"})
		return false
	}
	return true
}

// pageRequest reads page, limit and sort. Missing values fall back to page 1,
// DefaultPageLimit and newest first; range checks happen in the service.
func pageRequest(r *http.Request) (domain.PageRequest, error) {
	q := r.URL.Query()
	p := domain.PageRequest{Page: 1, Limit: domain.DefaultPageLimit}

	var err error
	if p.Page, err = intParam(q.Get("page"), "page", p.Page); err != nil {
		return p, err
	}
	if p.Limit, err = intParam(q.Get("limit"), "limit", p.Limit); err != nil {
		return p, err
	}
	if p.Sort, err = domain.ParseSortOrder(q.Get("sort")); err != nil {
		return p, err
	}
	return p, nil
}

func intParam(raw, field string, def int) (int, error) {
	if raw == "" {
		return def, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, domain.NewValidationError(field, fmt.Sprintf("not a number: %q", raw))
	}
	return n, nil
}
