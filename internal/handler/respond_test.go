package handler

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/asalem/souq/internal/domain"
)

func TestRespondErrorStatusMapping(t *testing.T) {
	cases := []struct {
		err    error
		status int
	}{
		{domain.Invalid("op", "bad input"), http.StatusBadRequest},
		{domain.Unauthorized("op", "who are you"), http.StatusUnauthorized},
		{domain.Forbidden("op", "not yours"), http.StatusForbidden},
		{domain.NotFound("op", "product", "abc"), http.StatusNotFound},
		{domain.Conflict("op", "already exists"), http.StatusConflict},
		{domain.Internal(assert.AnError, "op", "boom"), http.StatusInternalServerError},
	}

	for _, tc := range cases {
		w := httptest.NewRecorder()
		r := httptest.NewRequest(http.MethodGet, "/", nil)
		respondError(w, r, tc.err)

		assert.Equal(t, tc.status, w.Code)
		assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
		assert.Contains(t, w.Body.String(), `"status":"error"`)
	}
}

func TestRespondErrorHidesInternalDetails(t *testing.T) {
	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	respondError(w, r, domain.Internal(assert.AnError, "op", "database exploded"))

	assert.NotContains(t, w.Body.String(), assert.AnError.Error())
	assert.Contains(t, w.Body.String(), "database exploded")
}

func TestDecodeJSONValidation(t *testing.T) {
	type payload struct {
		Name  string `json:"name" validate:"required,min=2"`
		Email string `json:"email" validate:"required,email"`
	}

	t.Run("valid body", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name":"ava","email":"ava@example.com"}`))
		var p payload
		require.NoError(t, decodeJSON(r, &p))
		assert.Equal(t, "ava", p.Name)
	})

	t.Run("missing required field", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name":"ava"}`))
		var p payload
		err := decodeJSON(r, &p)
		require.Error(t, err)
		assert.Equal(t, domain.EINVALID, domain.ErrorCode(err))
		assert.Contains(t, domain.ErrorMessage(err), "email")
	})

	t.Run("malformed json", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name":`))
		var p payload
		err := decodeJSON(r, &p)
		require.Error(t, err)
		assert.Equal(t, domain.EINVALID, domain.ErrorCode(err))
	})

	t.Run("empty body", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(""))
		var p payload
		err := decodeJSON(r, &p)
		require.Error(t, err)
		assert.Equal(t, domain.EINVALID, domain.ErrorCode(err))
	})

	t.Run("unknown field rejected", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name":"ava","email":"a@b.co","extra":1}`))
		var p payload
		err := decodeJSON(r, &p)
		require.Error(t, err)
		assert.Equal(t, domain.EINVALID, domain.ErrorCode(err))
	})
}

func TestListQueryParsing(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/?page=3&limit=10&sort=price_asc&fields=title,%20price", nil)
	q, err := listQuery(r)
	require.NoError(t, err)

	assert.Equal(t, uint(3), q.Page)
	assert.Equal(t, uint(10), q.Limit)
	assert.Equal(t, domain.SortPriceAsc, q.SortBy)
	assert.Equal(t, []string{"title", "price"}, q.Fields)

	r = httptest.NewRequest(http.MethodGet, "/?page=abc", nil)
	q, err = listQuery(r)
	require.NoError(t, err)
	assert.Zero(t, q.Page)
}

func TestListQueryRejectsUnknownSort(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/?sort=sideways", nil)

	_, err := listQuery(r)
	require.Error(t, err)
	assert.Equal(t, domain.EINVALID, domain.ErrorCode(err))
}

func TestPathIDRejectsGarbage(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/things/not-an-id", nil)
	r.SetPathValue("id", "not-an-id")

	_, err := pathID(r)
	require.Error(t, err)
	assert.Equal(t, domain.EINVALID, domain.ErrorCode(err))
}
