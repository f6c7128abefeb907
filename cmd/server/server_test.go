package main

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/newindiatimber/timbercraft/internal/auth"
	"github.com/newindiatimber/timbercraft/internal/catalog"
	"github.com/newindiatimber/timbercraft/internal/dbtest"
	"github.com/newindiatimber/timbercraft/internal/estimator"
	"github.com/newindiatimber/timbercraft/internal/inquiry"
	"github.com/newindiatimber/timbercraft/internal/seed"
	"github.com/newindiatimber/timbercraft/internal/seo"
)

const (
	testSiteURL       = "https://newindiatimber.com"
	testAdminEmail    = "admin@newindiatimber.com"
	testAdminPassword = "12345"
)

var testNow = time.Date(2026, 10, 14, 9, 30, 0, 0, time.UTC)

type fakeLimiter struct {
	mu    sync.Mutex
	allow bool
	err   error
	keys  []string
}

func (f *fakeLimiter) Allow(_ context.Context, key string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.keys = append(f.keys, key)
	return f.allow, f.err
}

type fakeNotifier struct {
	mu       sync.Mutex
	orders   []inquiry.BulkOrder
	contacts []inquiry.ContactMessage
}

func (f *fakeNotifier) BulkOrder(_ context.Context, o inquiry.BulkOrder) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.orders = append(f.orders, o)
}

func (f *fakeNotifier) Contact(_ context.Context, m inquiry.ContactMessage) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.contacts = append(f.contacts, m)
}

type testEnv struct {
	srv      *server
	handler  http.Handler
	limiter  *fakeLimiter
	notifier *fakeNotifier
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	h := dbtest.Open(t)
	_, err := seed.Run(context.Background(), h, seed.Config{
		AdminEmail:    testAdminEmail,
		AdminPassword: testAdminPassword,
		SiteURL:       testSiteURL,
	})
	require.NoError(t, err)

	materials := estimator.DefaultCatalog()
	env := &testEnv{
		limiter:  &fakeLimiter{allow: true},
		notifier: &fakeNotifier{},
	}
	env.srv = &server{
		logger:    zap.NewNop(),
		materials: materials,
		products:  catalog.NewStore(h, materials),
		inquiries: inquiry.NewStore(h),
		seo:       seo.NewStore(h),
		auth:      auth.NewService(h, "test-secret"),
		limiter:   env.limiter,
		notifier:  env.notifier,
		siteURL:   testSiteURL,
		now:       func() time.Time { return testNow },
	}
	env.handler = env.srv.routes()
	return env
}

// do sends body as JSON, or no body when it is nil. Cookies are attached as given.
func (e *testEnv) do(t *testing.T, method, path string, body any, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if raw, ok := body.(string); ok {
			buf.WriteString(raw)
		} else {
			require.NoError(t, json.NewEncoder(&buf).Encode(body))
		}
	}

	req := httptest.NewRequest(method, path, &buf)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for _, c := range cookies {
		req.AddCookie(c)
	}

	rr := httptest.NewRecorder()
	e.handler.ServeHTTP(rr, req)
	return rr
}

// login returns the session cookie of the seeded admin.
func (e *testEnv) login(t *testing.T) *http.Cookie {
	t.Helper()

	rr := e.do(t, http.MethodPost, "/login", loginRequest{Email: testAdminEmail, Password: testAdminPassword})
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

	for _, c := range rr.Result().Cookies() {
		if c.Name == auth.CookieName {
			return c
		}
	}
	t.Fatalf("login did not set %s", auth.CookieName)
	return nil
}

func decode[T any](t *testing.T, rr *httptest.ResponseRecorder) T {
	t.Helper()

	var v T
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &v), rr.Body.String())
	return v
}
