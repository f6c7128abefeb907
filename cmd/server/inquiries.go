package main

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/newindiatimber/timbercraft/internal/inquiry"
)

const (
	defaultContactLimit = 50
	maxContactLimit     = 500
)

func (s *server) handleBulkOrderCreate(w http.ResponseWriter, r *http.Request) {
	var in inquiry.BulkOrderInput
	if err := decodeJSON(r, &in); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	order, err := s.inquiries.CreateBulkOrder(r.Context(), in)
	if err != nil {
		s.writeStoreError(w, r, err)
		return
	}
	s.logger.Info("bulk order received", zap.String("order_number", order.OrderNumber), zap.String("product_type", order.ProductType))
	s.notifier.BulkOrder(r.Context(), order)

	writeJSON(w, http.StatusCreated, map[string]any{
		"orderNumber": order.OrderNumber,
		"status":      order.Status,
		"message":     "Thank you. Our team will contact you within 24 hours.",
	})
}

func (s *server) handleContactCreate(w http.ResponseWriter, r *http.Request) {
	var in inquiry.ContactInput
	if err := decodeJSON(r, &in); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	msg, err := s.inquiries.CreateContactMessage(r.Context(), in)
	if err != nil {
		s.writeStoreError(w, r, err)
		return
	}
	s.logger.Info("contact message received", zap.Int64("message_id", msg.ID))
	s.notifier.Contact(r.Context(), msg)

	writeJSON(w, http.StatusCreated, map[string]any{
		"id":      msg.ID,
		"message": "Thank you for contacting us.",
	})
}

func (s *server) handleAdminBulkOrders(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	status := inquiry.Status(q.Get("status"))
	if status != "" && !knownStatus(status) {
		writeError(w, http.StatusBadRequest, "unknown status "+strconv.Quote(string(status)))
		return
	}

	orders, err := s.inquiries.ListBulkOrders(r.Context(), inquiry.Filter{Status: status, Search: q.Get("q")})
	if err != nil {
		s.writeStoreError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"orders": orders})
}

func (s *server) handleAdminBulkOrderStatus(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		writeError(w, http.StatusBadRequest, "invalid bulk order id")
		return
	}

	var t inquiry.Transition
	if err := decodeJSON(r, &t); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if !knownStatus(t.Status) {
		writeError(w, http.StatusBadRequest, "unknown status "+strconv.Quote(string(t.Status)))
		return
	}
	if t.EstimatedValue != nil && *t.EstimatedValue < 0 {
		writeError(w, http.StatusBadRequest, "estimatedValue cannot be negative")
		return
	}

	order, err := s.inquiries.TransitionBulkOrder(r.Context(), id, t)
	if err != nil {
		s.writeStoreError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, order)
}

func (s *server) handleAdminContact(w http.ResponseWriter, r *http.Request) {
	limit := defaultContactLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 || n > maxContactLimit {
			writeError(w, http.StatusBadRequest, "limit must be between 1 and "+strconv.Itoa(maxContactLimit))
			return
		}
		limit = n
	}

	messages, err := s.inquiries.ListContactMessages(r.Context(), limit)
	if err != nil {
		s.writeStoreError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"messages": messages})
}

func (s *server) handleAdminDashboard(w http.ResponseWriter, r *http.Request) {
	stats, err := s.inquiries.Stats(r.Context())
	if err != nil {
		s.writeStoreError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

func knownStatus(status inquiry.Status) bool {
	for _, s := range inquiry.Statuses {
		if s == status {
			return true
		}
	}
	return false
}
