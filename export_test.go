package endpoint

import (
	"net/http"
	"reflect"
)

// Test-only exports for internal functions.
var (
	HasParamTags  = hasParamTags
	HasBodyField  = hasBodyField
	JSONFieldName = jsonFieldName
	PathParams    = pathParams
	OperationIDOf = operationID
)

// Request shape classification, exposed for tests.
type Shape = requestShape

const (
	ShapeVoid     = shapeVoid
	ShapeBodyOnly = shapeBodyOnly
	ShapeParams   = shapeParams
	ShapeMixed    = shapeMixed
)

var ClassifyRequest = classifyRequest

// DecodeRequestForTest decodes a request with the default codecs.
func DecodeRequestForTest[Req any](r *http.Request) (*Req, error) {
	return decodeRequest[Req](r, newCodecRegistry(nil, nil))
}

// TestSchemaIndex wraps schemaIndex for external tests.
type TestSchemaIndex struct {
	idx     *schemaIndex
	Schemas map[string]JSONSchema
}

// NewTestSchemaIndex creates a TestSchemaIndex.
func NewTestSchemaIndex() *TestSchemaIndex {
	idx := newSchemaIndex()
	return &TestSchemaIndex{idx: idx, Schemas: idx.schemas}
}

// SchemaOf delegates to the internal index.
func (t *TestSchemaIndex) SchemaOf(typ reflect.Type) JSONSchema {
	return t.idx.schemaOf(typ)
}

// Define delegates to the internal index.
func (t *TestSchemaIndex) Define(name string, typ reflect.Type) JSONSchema {
	return t.idx.define(name, typ)
}

// TestCodecs wraps the codec registry for negotiation tests.
type TestCodecs struct {
	cr *codecRegistry
}

// NewTestCodecs creates a registry with the default codecs plus any extras.
func NewTestCodecs(encoders []Encoder, decoders []Decoder) TestCodecs {
	return TestCodecs{cr: newCodecRegistry(encoders, decoders)}
}

// Negotiate delegates to the internal registry.
func (c TestCodecs) Negotiate(accept string) (Encoder, bool) {
	return c.cr.negotiate(accept)
}

// DecoderFor delegates to the internal registry.
func (c TestCodecs) DecoderFor(contentType string) (Decoder, bool) {
	return c.cr.decoderFor(contentType)
}
