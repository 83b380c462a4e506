package server

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/goccy/go-json"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/goliatone/go-projectform/internal/config"
	"github.com/goliatone/go-projectform/internal/logging"
	"github.com/goliatone/go-projectform/pkg/orchestrator"
	"github.com/goliatone/go-projectform/pkg/renderers/jsonout"
)

func newTestServer(t *testing.T, csrf bool) *Server {
	t.Helper()

	v := viper.New()
	config.SetDefaults(v)
	v.Set("server.csrf", csrf)
	cfg, err := config.Load(v)
	require.NoError(t, err)

	orch := orchestrator.New()
	fm, err := orch.Form(context.Background(), orchestrator.Request{})
	require.NoError(t, err)

	srv, err := New(cfg, orch, fm, logging.Discard())
	require.NoError(t, err)
	return srv
}

func do(t *testing.T, srv *Server, req *http.Request) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)
	return rec
}

func postForm(values url.Values) *http.Request {
	req := httptest.NewRequest(http.MethodPost, "/projects", strings.NewReader(values.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return req
}

func snapshot(t *testing.T, srv *Server) jsonout.Snapshot {
	t.Helper()
	rec := do(t, srv, httptest.NewRequest(http.MethodGet, "/projects", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "application/json")

	var out jsonout.Snapshot
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	return out
}

func TestGetPage(t *testing.T) {
	srv := newTestServer(t, false)

	rec := do(t, srv, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/html; charset=utf-8", rec.Header().Get("Content-Type"))
	body := rec.Body.String()
	assert.Contains(t, body, `id="user-input"`)
	assert.Contains(t, body, `<ul id="active-projects-list"></ul>`)
	assert.Contains(t, body, `href="/assets/app.css"`)
	assert.NotContains(t, body, "alert(")
}

func TestPostValidProjectRedirectsAndLists(t *testing.T) {
	srv := newTestServer(t, false)

	rec := do(t, srv, postForm(url.Values{
		"title":       {"House"},
		"description": {"Build a house"},
		"people":      {"5"},
	}))
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/", rec.Header().Get("Location"))

	snap := snapshot(t, srv)
	require.Len(t, snap.Projects, 1)
	assert.Equal(t, "House", snap.Projects[0].Title)
	assert.Equal(t, "Build a house", snap.Projects[0].Description)
	assert.Equal(t, 5, snap.Projects[0].People)
	assert.NotEmpty(t, snap.Projects[0].ID)

	page := do(t, srv, httptest.NewRequest(http.MethodGet, "/", nil)).Body.String()
	assert.Contains(t, page, "<h3>5 persons assigned</h3>")
	assert.Contains(t, page, `<input id="title" name="title" type="text" value=""/>`)
}

func TestPostInvalidProjectRendersAlert(t *testing.T) {
	tests := []struct {
		name   string
		values url.Values
	}{
		{name: "empty title", values: url.Values{"title": {""}, "description": {"Build a house"}, "people": {"5"}}},
		{name: "short description", values: url.Values{"title": {"House"}, "description": {"Shrt"}, "people": {"5"}}},
		{name: "too many people", values: url.Values{"title": {"House"}, "description": {"Build a house"}, "people": {"11"}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := newTestServer(t, false)

			rec := do(t, srv, postForm(tt.values))

			assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
			assert.Contains(t, rec.Body.String(), `<script>alert("Error");</script>`)
			assert.Empty(t, snapshot(t, srv).Projects)
		})
	}
}

func TestInvalidSubmissionKeepsInputs(t *testing.T) {
	srv := newTestServer(t, false)

	rec := do(t, srv, postForm(url.Values{"title": {"House"}, "description": {"Build a house"}, "people": {"11"}}))
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Contains(t, rec.Body.String(), `value="House"`)
	assert.Contains(t, rec.Body.String(), ">Build a house</textarea>")

	// the alert is shown once, not on the next page load
	next := do(t, srv, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.NotContains(t, next.Body.String(), "alert(")
}

func TestRejectedInputStaysWithItsRequest(t *testing.T) {
	srv := newTestServer(t, false)

	rec := do(t, srv, postForm(url.Values{
		"title":       {"Secret plan"},
		"description": {"Confidential notes"},
		"people":      {"11"},
	}))
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Contains(t, rec.Body.String(), `value="Secret plan"`)

	fresh := do(t, srv, httptest.NewRequest(http.MethodGet, "/", nil)).Body.String()
	assert.NotContains(t, fresh, "Secret plan")
	assert.NotContains(t, fresh, "Confidential notes")
	assert.NotContains(t, fresh, `value="11"`)
	assert.Contains(t, fresh, `<input id="title" name="title" type="text" value=""/>`)
	assert.Contains(t, fresh, `></textarea>`)
}

func TestCSRFProtectsSubmit(t *testing.T) {
	srv := newTestServer(t, true)

	page := do(t, srv, httptest.NewRequest(http.MethodGet, "/", nil))
	require.Equal(t, http.StatusOK, page.Code)

	var token string
	for _, cookie := range page.Result().Cookies() {
		if cookie.Name == CSRFField {
			token = cookie.Value
		}
	}
	require.NotEmpty(t, token)
	assert.Contains(t, page.Body.String(), `<input type="hidden" name="_csrf" value="`+token+`"/>`)

	values := url.Values{"title": {"House"}, "description": {"Build a house"}, "people": {"5"}}

	rejected := do(t, srv, postForm(values))
	assert.Contains(t, []int{http.StatusBadRequest, http.StatusForbidden}, rejected.Code)
	assert.Empty(t, snapshot(t, srv).Projects)

	values.Set(CSRFField, token)
	req := postForm(values)
	req.AddCookie(&http.Cookie{Name: CSRFField, Value: token})
	accepted := do(t, srv, req)
	assert.Equal(t, http.StatusSeeOther, accepted.Code)
	assert.Len(t, snapshot(t, srv).Projects, 1)
}

func TestHealthzAndAssets(t *testing.T) {
	srv := newTestServer(t, false)

	assert.Equal(t, http.StatusOK, do(t, srv, httptest.NewRequest(http.MethodGet, "/healthz", nil)).Code)

	rec := do(t, srv, httptest.NewRequest(http.MethodGet, "/assets/app.css", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "#user-input")
}

func TestNewRequiresDependencies(t *testing.T) {
	orch := orchestrator.New()
	fm, err := orch.Form(context.Background(), orchestrator.Request{})
	require.NoError(t, err)

	_, err = New(nil, orch, fm, logging.Discard())
	assert.Error(t, err)
	_, err = New(&config.Config{}, nil, fm, logging.Discard())
	assert.Error(t, err)
	_, err = New(&config.Config{}, orch, fm, nil)
	assert.Error(t, err)
}
