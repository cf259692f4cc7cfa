package webapi_test

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/creatorstack/storefront/internal/auth"
	"github.com/creatorstack/storefront/internal/catalog"
	"github.com/creatorstack/storefront/internal/domain"
	"github.com/creatorstack/storefront/internal/store"
	"github.com/creatorstack/storefront/internal/webapi"
)

func newCatalogHandler(stored ...domain.Product) *webapi.Handler {
	st := store.NewMemStore()
	if len(stored) > 0 {
		_ = st.Save(stored)
	}
	cat := catalog.New(st)
	return webapi.NewHandler(cat, nil, nil, nil, nil, nil, auth.New("test-secret"))
}

func doGET(t *testing.T, e *echo.Echo, path string, query url.Values) *httptest.ResponseRecorder {
	t.Helper()
	target := path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}
	req := httptest.NewRequest(http.MethodGet, target, nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func registerPublic(h *webapi.Handler) *echo.Echo {
	e := echo.New()
	h.Register(e)
	return e
}

func TestListProducts(t *testing.T) {
	h := newCatalogHandler(domain.Product{
		ID:          "prod_u_1",
		Title:       "Synthwave Sample Pack",
		Description: "Retro sounds",
		Category:    domain.CategoryEbook,
		CreatorID:   "u1",
	})
	e := registerPublic(h)

	t.Run("DefaultQueryReturnsBothTiers", func(t *testing.T) {
		rec := doGET(t, e, "/api/products", nil)
		require.Equal(t, http.StatusOK, rec.Code)

		body := rec.Body.String()
		assert.Contains(t, body, `"featured"`)
		assert.Contains(t, body, `"regular"`)
		assert.Contains(t, body, `"total":7`)
		assert.Contains(t, body, "prod_u_1")
	})

	t.Run("SearchNarrowsResult", func(t *testing.T) {
		rec := doGET(t, e, "/api/products", url.Values{"search": {"synthwave"}})
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `"total":1`)
	})

	t.Run("UnmatchedSearchYieldsEmptyArraysNotNull", func(t *testing.T) {
		rec := doGET(t, e, "/api/products", url.Values{"search": {"zzz-no-match"}})
		require.Equal(t, http.StatusOK, rec.Code)

		body := rec.Body.String()
		assert.Contains(t, body, `"featured":[]`)
		assert.Contains(t, body, `"regular":[]`)
		assert.NotContains(t, body, "null")
	})

	t.Run("CategoryFilters", func(t *testing.T) {
		rec := doGET(t, e, "/api/products", url.Values{"category": {domain.CategoryEbook}})
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "prod_u_1")
	})
}

func TestListCategories(t *testing.T) {
	e := registerPublic(newCatalogHandler())
	rec := doGET(t, e, "/api/categories", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), domain.CategoryAll)
}

func TestSuccessView(t *testing.T) {
	stored := domain.Product{
		ID:        "prod_u_9",
		Title:     "Course Bundle",
		Category:  domain.CategoryCourse,
		CreatorID: "u1",
	}
	e := registerPublic(newCatalogHandler(stored))

	t.Run("MissingSessionIsRejected", func(t *testing.T) {
		rec := doGET(t, e, "/api/success", nil)
		require.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, rec.Body.String(), "MISSING_SESSION")
	})

	t.Run("StoredProductIsRendered", func(t *testing.T) {
		rec := doGET(t, e, "/api/success", url.Values{
			"session_id": {"cs_test_123"},
			"product_id": {"prod_u_9"},
		})
		require.Equal(t, http.StatusOK, rec.Code)

		body := rec.Body.String()
		assert.Contains(t, body, `"sessionId":"cs_test_123"`)
		assert.Contains(t, body, "Course Bundle")
	})

	t.Run("SeedProductRendersGenericConfirmation", func(t *testing.T) {
		seedID := catalog.SeedProducts()[0].ID
		rec := doGET(t, e, "/api/success", url.Values{
			"session_id": {"cs_test_456"},
			"product_id": {seedID},
		})
		require.Equal(t, http.StatusOK, rec.Code)

		body := rec.Body.String()
		assert.Contains(t, body, `"paid":true`)
		assert.False(t, strings.Contains(body, `"product"`), "seed products must not resolve on the success view")
	})

	t.Run("SessionTokenIsTakenAtFaceValue", func(t *testing.T) {
		rec := doGET(t, e, "/api/success", url.Values{"session_id": {"anything-goes"}})
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `"paid":true`)
	})
}
