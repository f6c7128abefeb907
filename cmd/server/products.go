package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/newindiatimber/timbercraft/internal/catalog"
)

func (s *server) handleProductsList(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	products, err := s.products.List(r.Context(), catalog.Filter{
		Category:   q.Get("category"),
		Search:     q.Get("q"),
		ActiveOnly: true,
	})
	if err != nil {
		s.writeStoreError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"products": products})
}

func (s *server) handleProductDetail(w http.ResponseWriter, r *http.Request) {
	p, err := s.products.GetBySlug(r.Context(), chi.URLParam(r, "slug"))
	if err == nil && !p.Active {
		err = catalog.ErrNotFound
	}
	if err != nil {
		s.writeStoreError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (s *server) handleAdminProducts(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	products, err := s.products.List(r.Context(), catalog.Filter{
		Category: q.Get("category"),
		Search:   q.Get("q"),
	})
	if err != nil {
		s.writeStoreError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"products": products})
}

func (s *server) handleAdminProductCreate(w http.ResponseWriter, r *http.Request) {
	var in catalog.Input
	if err := decodeJSON(r, &in); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	p, err := s.products.Create(r.Context(), in)
	if err != nil {
		s.writeStoreError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, p)
}

type productUpdateRequest struct {
	catalog.Input
	Active *bool `json:"active,omitempty"`
}

func (s *server) handleAdminProductUpdate(w http.ResponseWriter, r *http.Request) {
	var req productUpdateRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	ctx := r.Context()
	p, err := s.products.Update(ctx, chi.URLParam(r, "slug"), req.Input)
	if err != nil {
		s.writeStoreError(w, r, err)
		return
	}
	if req.Active != nil && *req.Active != p.Active {
		if err := s.products.SetActive(ctx, p.Slug, *req.Active); err != nil {
			s.writeStoreError(w, r, err)
			return
		}
		p.Active = *req.Active
	}
	writeJSON(w, http.StatusOK, p)
}
