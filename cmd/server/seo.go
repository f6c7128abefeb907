package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/newindiatimber/timbercraft/internal/auth"
	"github.com/newindiatimber/timbercraft/internal/catalog"
	"github.com/newindiatimber/timbercraft/internal/seo"
)

func (s *server) handleRobots(w http.ResponseWriter, r *http.Request) {
	g, err := s.seo.GetGlobal(r.Context(), s.siteURL)
	if err != nil {
		s.writeStoreError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte(seo.RobotsTxt(g.CanonicalURL)))
}

func (s *server) handleSitemap(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	g, err := s.seo.GetGlobal(ctx, s.siteURL)
	if err != nil {
		s.writeStoreError(w, r, err)
		return
	}
	pages, err := s.seo.ListPages(ctx)
	if err != nil {
		s.writeStoreError(w, r, err)
		return
	}
	products, err := s.products.List(ctx, catalog.Filter{ActiveOnly: true})
	if err != nil {
		s.writeStoreError(w, r, err)
		return
	}

	entries := make([]seo.SitemapProduct, 0, len(products))
	for _, p := range products {
		entries = append(entries, seo.SitemapProduct{Slug: p.Slug, UpdatedAt: p.UpdatedAt})
	}

	body, err := seo.Sitemap(g.CanonicalURL, pages, entries)
	if err != nil {
		s.writeStoreError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "application/xml; charset=utf-8")
	_, _ = w.Write(body)
}

func (s *server) handlePageMeta(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	page, err := s.seo.GetPage(ctx, chi.URLParam(r, "pageID"))
	if err != nil {
		s.writeStoreError(w, r, err)
		return
	}
	g, err := s.seo.GetGlobal(ctx, s.siteURL)
	if err != nil {
		s.writeStoreError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, seo.MetaFor(g, page))
}

func (s *server) handleAdminSEOGlobal(w http.ResponseWriter, r *http.Request) {
	g, err := s.seo.GetGlobal(r.Context(), s.siteURL)
	if err != nil {
		s.writeStoreError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, g)
}

func (s *server) handleAdminSEOGlobalUpdate(w http.ResponseWriter, r *http.Request) {
	var g seo.GlobalSettings
	if err := decodeJSON(r, &g); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	updated, err := s.seo.UpdateGlobal(r.Context(), g, auth.Email(r.Context()))
	if err != nil {
		s.writeStoreError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

func (s *server) handleAdminSEOPages(w http.ResponseWriter, r *http.Request) {
	pages, err := s.seo.ListPages(r.Context())
	if err != nil {
		s.writeStoreError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"pages": pages})
}

func (s *server) handleAdminSEOPageUpdate(w http.ResponseWriter, r *http.Request) {
	var p seo.PageSettings
	if err := decodeJSON(r, &p); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	updated, err := s.seo.UpdatePage(r.Context(), chi.URLParam(r, "pageID"), p)
	if err != nil {
		s.writeStoreError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}
