package main

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/newindiatimber/timbercraft/internal/auth"
	"github.com/newindiatimber/timbercraft/internal/catalog"
	"github.com/newindiatimber/timbercraft/internal/estimator"
	"github.com/newindiatimber/timbercraft/internal/inquiry"
	"github.com/newindiatimber/timbercraft/internal/logging"
	"github.com/newindiatimber/timbercraft/internal/notify"
	"github.com/newindiatimber/timbercraft/internal/ratelimit"
	"github.com/newindiatimber/timbercraft/internal/seo"
)

type server struct {
	logger    *zap.Logger
	materials *estimator.Catalog
	products  *catalog.Store
	inquiries *inquiry.Store
	seo       *seo.Store
	auth      *auth.Service
	limiter   ratelimit.Limiter
	notifier  notify.Notifier

	siteURL       string
	secureCookies bool
	now           func() time.Time
}

func (s *server) routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(logging.Middleware(s.logger))
	r.Use(middleware.Recoverer)

	r.Get("/robots.txt", s.handleRobots)
	r.Get("/sitemap.xml", s.handleSitemap)
	r.Post("/login", s.handleLogin)
	r.Post("/logout", s.handleLogout)

	r.Route("/api", func(r chi.Router) {
		r.Get("/materials", s.handleMaterials)
		r.Get("/templates", s.handleTemplates)

		r.Post("/estimate", s.handleEstimate)
		r.Post("/estimate/item", s.handleEstimateItem)
		r.Post("/estimate/quiz", s.handleEstimateQuiz)
		r.Get("/estimate/quick-start", s.handleQuickStart)
		r.Post("/estimate/export", s.handleEstimateExport)

		r.Get("/products", s.handleProductsList)
		r.Get("/products/{slug}", s.handleProductDetail)

		r.With(s.limit("bulk-orders")).Post("/bulk-orders", s.handleBulkOrderCreate)
		r.With(s.limit("contact")).Post("/contact", s.handleContactCreate)

		r.Get("/seo/pages/{pageID}/meta", s.handlePageMeta)
	})

	r.Route("/admin", func(r chi.Router) {
		r.Use(s.auth.Require)

		r.Get("/dashboard", s.handleAdminDashboard)

		r.Get("/seo/global", s.handleAdminSEOGlobal)
		r.Put("/seo/global", s.handleAdminSEOGlobalUpdate)
		r.Get("/seo/pages", s.handleAdminSEOPages)
		r.Put("/seo/pages/{pageID}", s.handleAdminSEOPageUpdate)

		r.Get("/bulk-orders", s.handleAdminBulkOrders)
		r.Post("/bulk-orders/{id}/status", s.handleAdminBulkOrderStatus)
		r.Get("/contact", s.handleAdminContact)

		r.Get("/products", s.handleAdminProducts)
		r.Post("/products", s.handleAdminProductCreate)
		r.Put("/products/{slug}", s.handleAdminProductUpdate)
	})

	return r
}

// limit rejects a submission with 429 once the client IP has used up its window.
// Limiter failures let the request through.
func (s *server) limit(name string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ok, err := s.limiter.Allow(r.Context(), name+":"+clientIP(r))
			if err != nil {
				s.logger.Warn("rate limiter unavailable", zap.String("route", name), zap.Error(err))
			} else if !ok {
				writeError(w, http.StatusTooManyRequests, "too many submissions, try again later")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
