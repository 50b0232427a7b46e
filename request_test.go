package endpoint_test

import (
	"net/http"
	"net/http/httptest"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bjaus/endpoint"
)

func TestClassifyRequest(t *testing.T) {
	t.Parallel()

	type paramsOnly struct {
		ID string `path:"id"`
	}
	type mixed struct {
		ID   string `path:"id"`
		Body struct {
			Name string `json:"name"`
		}
	}
	type bodyOnly struct {
		Name string `json:"name"`
	}

	assert.Equal(t, endpoint.ShapeVoid, endpoint.ClassifyRequest(reflect.TypeFor[endpoint.Void]()))
	assert.Equal(t, endpoint.ShapeParams, endpoint.ClassifyRequest(reflect.TypeFor[paramsOnly]()))
	assert.Equal(t, endpoint.ShapeMixed, endpoint.ClassifyRequest(reflect.TypeFor[mixed]()))
	assert.Equal(t, endpoint.ShapeBodyOnly, endpoint.ClassifyRequest(reflect.TypeFor[bodyOnly]()))
}

func TestDecodeRequest_queryAndHeader(t *testing.T) {
	t.Parallel()

	type req struct {
		Page    int           `query:"page" default:"1"`
		Verbose bool          `query:"verbose"`
		Wait    time.Duration `query:"wait"`
		Trace   string        `header:"X-Trace"`
	}

	r := httptest.NewRequest(http.MethodGet, "/items?page=3&verbose=true&wait=2s", nil)
	r.Header.Set("X-Trace", "abc")

	got, err := endpoint.DecodeRequestForTest[req](r)
	require.NoError(t, err)
	assert.Equal(t, 3, got.Page)
	assert.True(t, got.Verbose)
	assert.Equal(t, 2*time.Second, got.Wait)
	assert.Equal(t, "abc", got.Trace)
}

func TestDecodeRequest_defaultsApply(t *testing.T) {
	t.Parallel()

	type req struct {
		Page int `query:"page" default:"1"`
	}

	r := httptest.NewRequest(http.MethodGet, "/items", nil)

	got, err := endpoint.DecodeRequestForTest[req](r)
	require.NoError(t, err)
	assert.Equal(t, 1, got.Page)
}

func TestDecodeRequest_uuidParam(t *testing.T) {
	t.Parallel()

	type req struct {
		ID uuid.UUID `query:"id"`
	}

	id := uuid.New()
	r := httptest.NewRequest(http.MethodGet, "/items?id="+id.String(), nil)

	got, err := endpoint.DecodeRequestForTest[req](r)
	require.NoError(t, err)
	assert.Equal(t, id, got.ID)
}

func TestDecodeRequest_badUUIDFails(t *testing.T) {
	t.Parallel()

	type req struct {
		ID uuid.UUID `query:"id"`
	}

	r := httptest.NewRequest(http.MethodGet, "/items?id=not-a-uuid", nil)

	_, err := endpoint.DecodeRequestForTest[req](r)
	require.Error(t, err)
	assert.ErrorIs(t, err, endpoint.ErrBindQuery)
}

func TestDecodeRequest_badIntFails(t *testing.T) {
	t.Parallel()

	type req struct {
		Page int `query:"page"`
	}

	r := httptest.NewRequest(http.MethodGet, "/items?page=NaN", nil)

	_, err := endpoint.DecodeRequestForTest[req](r)
	require.Error(t, err)
	assert.ErrorIs(t, err, endpoint.ErrBindQuery)
}

func TestDecodeRequest_wholeStructBody(t *testing.T) {
	t.Parallel()

	type req struct {
		Name string `json:"name"`
		Age  int    `json:"age"`
	}

	r := httptest.NewRequest(http.MethodPost, "/items", strings.NewReader(`{"name":"x","age":7}`))
	r.Header.Set("Content-Type", "application/json")

	got, err := endpoint.DecodeRequestForTest[req](r)
	require.NoError(t, err)
	assert.Equal(t, "x", got.Name)
	assert.Equal(t, 7, got.Age)
}

func TestDecodeRequest_missingBodyFails(t *testing.T) {
	t.Parallel()

	type req struct {
		Name string `json:"name"`
	}

	r := httptest.NewRequest(http.MethodPost, "/items", nil)

	_, err := endpoint.DecodeRequestForTest[req](r)
	require.Error(t, err)
	assert.ErrorIs(t, err, endpoint.ErrBindBody)
}

func TestDecodeRequest_malformedBodyFails(t *testing.T) {
	t.Parallel()

	type req struct {
		Name string `json:"name"`
	}

	r := httptest.NewRequest(http.MethodPost, "/items", strings.NewReader(`{"name"`))
	r.Header.Set("Content-Type", "application/json")

	_, err := endpoint.DecodeRequestForTest[req](r)
	require.Error(t, err)
	assert.ErrorIs(t, err, endpoint.ErrBindBody)
}

func TestTagHelpers(t *testing.T) {
	t.Parallel()

	type tagged struct {
		ID string `path:"id"`
	}
	type untagged struct {
		ID string
	}
	type withBody struct {
		Body struct{}
	}

	assert.True(t, endpoint.HasParamTags(reflect.TypeFor[tagged]()))
	assert.False(t, endpoint.HasParamTags(reflect.TypeFor[untagged]()))
	assert.True(t, endpoint.HasBodyField(reflect.TypeFor[withBody]()))
	assert.False(t, endpoint.HasBodyField(reflect.TypeFor[untagged]()))
}

func TestJSONFieldName(t *testing.T) {
	t.Parallel()

	type s struct {
		A string `json:"alpha"`
		B string `json:"beta,omitempty"`
		C string
		D string `json:",omitempty"`
	}

	st := reflect.TypeFor[s]()
	assert.Equal(t, "alpha", endpoint.JSONFieldName(st.Field(0)))
	assert.Equal(t, "beta", endpoint.JSONFieldName(st.Field(1)))
	assert.Equal(t, "C", endpoint.JSONFieldName(st.Field(2)))
	assert.Equal(t, "D", endpoint.JSONFieldName(st.Field(3)))
}
