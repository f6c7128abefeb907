package main

import (
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/newindiatimber/timbercraft/internal/seo"
)

func TestHandleRobots(t *testing.T) {
	env := newTestEnv(t)

	rr := env.do(t, http.MethodGet, "/robots.txt", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "text/plain; charset=utf-8", rr.Header().Get("Content-Type"))
	assert.Equal(t, seo.RobotsTxt(testSiteURL), rr.Body.String())
	assert.Contains(t, rr.Body.String(), "Sitemap: "+testSiteURL+"/sitemap.xml")
}

func TestHandleSitemap(t *testing.T) {
	env := newTestEnv(t)
	session := env.login(t)

	draft := seo.DefaultPages()[5]
	require.Equal(t, "about", draft.PageID)
	draft.Status = "draft"
	require.Equal(t, http.StatusOK, env.do(t, http.MethodPut, "/admin/seo/pages/about", draft, session).Code)

	rr := env.do(t, http.MethodGet, "/sitemap.xml", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "application/xml; charset=utf-8", rr.Header().Get("Content-Type"))

	body := rr.Body.String()
	assert.True(t, strings.HasPrefix(body, `<?xml version="1.0" encoding="UTF-8"?>`))
	assert.Contains(t, body, "<loc>"+testSiteURL+"/</loc>")
	assert.Contains(t, body, "<loc>"+testSiteURL+"/estimator</loc>")
	assert.NotContains(t, body, "<loc>"+testSiteURL+"/about</loc>")
	assert.Contains(t, body, "<loc>"+testSiteURL+"/products/burma-teak-grade-a-timber</loc>")
	assert.Equal(t, 6+5, strings.Count(body, "<url>"))
}

func TestHandlePageMeta(t *testing.T) {
	env := newTestEnv(t)

	rr := env.do(t, http.MethodGet, "/api/seo/pages/estimator/meta", nil)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

	meta := decode[seo.Meta](t, rr)
	assert.Equal(t, "Price Estimator | New India Timber", meta.Title)
	assert.Equal(t, testSiteURL+"/estimator", meta.Canonical)
	assert.Equal(t, "index, follow", meta.Robots)
	assert.Equal(t, "New India Timber", meta.OpenGraph.SiteName)

	rr = env.do(t, http.MethodGet, "/api/seo/pages/blog/meta", nil)
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestAdminSEOGlobal(t *testing.T) {
	env := newTestEnv(t)
	session := env.login(t)

	assert.Equal(t, http.StatusUnauthorized, env.do(t, http.MethodGet, "/admin/seo/global", nil).Code)

	rr := env.do(t, http.MethodGet, "/admin/seo/global", nil, session)
	require.Equal(t, http.StatusOK, rr.Code)
	g := decode[seo.GlobalSettings](t, rr)
	assert.Equal(t, "system", g.UpdatedBy)

	g.DefaultTitle = "%page% - NIT"
	rr = env.do(t, http.MethodPut, "/admin/seo/global", g, session)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	updated := decode[seo.GlobalSettings](t, rr)
	assert.Equal(t, testAdminEmail, updated.UpdatedBy)

	meta := decode[seo.Meta](t, env.do(t, http.MethodGet, "/api/seo/pages/contact/meta", nil))
	assert.Equal(t, "Contact Us - NIT", meta.Title)

	g.SiteName = ""
	rr = env.do(t, http.MethodPut, "/admin/seo/global", g, session)
	require.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Equal(t, "siteName", decode[errorResponse](t, rr).Field)
}

func TestAdminSEOPages(t *testing.T) {
	env := newTestEnv(t)
	session := env.login(t)

	rr := env.do(t, http.MethodGet, "/admin/seo/pages", nil, session)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Len(t, decode[map[string][]seo.PageSettings](t, rr)["pages"], 7)

	page := seo.DefaultPages()[0]
	page.MetaTitle = "Timber Merchants in India"
	page.NoFollow = true
	rr = env.do(t, http.MethodPut, "/admin/seo/pages/home", page, session)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

	meta := decode[seo.Meta](t, env.do(t, http.MethodGet, "/api/seo/pages/home/meta", nil))
	assert.Equal(t, "Timber Merchants in India", meta.Title)
	assert.Equal(t, "index, nofollow", meta.Robots)

	page.MetaTitle = strings.Repeat("x", seo.MaxTitleLen+1)
	rr = env.do(t, http.MethodPut, "/admin/seo/pages/home", page, session)
	require.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Equal(t, "metaTitle", decode[errorResponse](t, rr).Field)

	rr = env.do(t, http.MethodPut, "/admin/seo/pages/blog", seo.DefaultPages()[0], session)
	assert.Equal(t, http.StatusNotFound, rr.Code)
}
