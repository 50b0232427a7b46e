package endpoint_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bjaus/endpoint"
)

func TestSetValue_GetValue(t *testing.T) {
	t.Parallel()

	type dep struct{ name string }

	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r = endpoint.SetValue(r, &dep{name: "db"})

	got, ok := endpoint.GetValue[*dep](r.Context())
	require.True(t, ok)
	assert.Equal(t, "db", got.name)
}

func TestGetValue_missing(t *testing.T) {
	t.Parallel()

	type dep struct{}

	r := httptest.NewRequest(http.MethodGet, "/", nil)
	_, ok := endpoint.GetValue[*dep](r.Context())
	assert.False(t, ok)
}

func TestGetValue_distinctTypesDoNotCollide(t *testing.T) {
	t.Parallel()

	type a struct{ v string }
	type b struct{ v string }

	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r = endpoint.SetValue(r, &a{v: "A"})
	r = endpoint.SetValue(r, &b{v: "B"})

	gotA, ok := endpoint.GetValue[*a](r.Context())
	require.True(t, ok)
	gotB, ok := endpoint.GetValue[*b](r.Context())
	require.True(t, ok)

	assert.Equal(t, "A", gotA.v)
	assert.Equal(t, "B", gotB.v)
}

func TestInject_makesEnvironmentAvailable(t *testing.T) {
	t.Parallel()

	env := &testEnv{greeting: "yo"}

	var seen *testEnv
	probe := http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
		seen, _ = endpoint.GetValue[*testEnv](r.Context())
	})

	h := endpoint.Inject(env)(probe)
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Same(t, env, seen)
}
