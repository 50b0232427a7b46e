package endpoint_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bjaus/endpoint"
)

func TestGroup_prefixAppliesToRoutesAndSpec(t *testing.T) {
	t.Parallel()

	r := endpoint.New()
	r.Use(endpoint.Inject(&testEnv{greeting: "hi"}))

	v1 := r.Group("/v1")
	endpoint.Mount(v1, pathEcho{})

	req := httptest.NewRequest(http.MethodGet, "/v1/users/a/resource/b", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)

	spec := r.Spec()
	_, ok := spec.Paths["/v1/users/{id}/resource/{resID}"]
	assert.True(t, ok)
}

func TestGroup_tagsMergeIntoOperations(t *testing.T) {
	t.Parallel()

	r := endpoint.New(endpoint.WithTagDescriptions(map[string]string{"v1": "Version 1."}))
	g := r.Group("/v1", endpoint.WithGroupTags("v1"))
	endpoint.Mount(g, ping{})

	spec := r.Spec()
	op := spec.Paths["/v1/ping/{name}"]["delete"]
	assert.Contains(t, op.Tags, "v1")

	require.NotEmpty(t, spec.Tags)
	assert.Equal(t, endpoint.SpecTag{Name: "v1", Description: "Version 1."}, spec.Tags[0])
}

func TestGroup_middlewareWrapsOnlyGroupRoutes(t *testing.T) {
	t.Parallel()

	var hits int
	counting := func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			hits++
			next.ServeHTTP(w, r)
		})
	}

	r := endpoint.New()
	r.Use(endpoint.Inject(&testEnv{}))

	g := r.Group("/admin", endpoint.WithGroupMiddleware(counting))
	endpoint.Mount(g, ping{})
	endpoint.Mount(r, pathEcho{})

	// Group route passes through the middleware.
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/admin/ping/x", nil))
	assert.Equal(t, 1, hits)

	// Non-group route does not.
	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/users/a/resource/b", nil))
	assert.Equal(t, 1, hits)
}
