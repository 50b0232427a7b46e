package endpoint

import (
	"reflect"
	"time"

	"github.com/google/uuid"
)

// JSONSchema represents a JSON Schema object (subset for OpenAPI 3.1).
type JSONSchema struct {
	Type        string                `json:"type,omitempty" yaml:"type,omitempty"`
	Format      string                `json:"format,omitempty" yaml:"format,omitempty"`
	Properties  map[string]JSONSchema `json:"properties,omitempty" yaml:"properties,omitempty"`
	Items       *JSONSchema           `json:"items,omitempty" yaml:"items,omitempty"`
	Required    []string              `json:"required,omitempty" yaml:"required,omitempty"`
	Description string                `json:"description,omitempty" yaml:"description,omitempty"`
	Enum        []string              `json:"enum,omitempty" yaml:"enum,omitempty"`
	Ref         string                `json:"$ref,omitempty" yaml:"$ref,omitempty"`

	// AdditionalProperties can be true (any) or a schema.
	AdditionalProperties *JSONSchema `json:"additionalProperties,omitempty" yaml:"additionalProperties,omitempty"`
}

// schemaIndex accumulates component schemas while a document is generated.
// Named struct types it encounters are registered under their own names and
// referenced by $ref, so a type shared by several endpoints appears once.
type schemaIndex struct {
	schemas map[string]JSONSchema
}

func newSchemaIndex() *schemaIndex {
	return &schemaIndex{schemas: make(map[string]JSONSchema)}
}

// refTo returns a $ref schema pointing at a registered component.
func refTo(name string) JSONSchema {
	return JSONSchema{Ref: "#/components/schemas/" + name}
}

// define registers t's schema under an explicit component name and returns
// a reference to it. Used for the {operationID}Response / {operationID}Error
// components.
func (x *schemaIndex) define(name string, t reflect.Type) JSONSchema {
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if _, ok := x.schemas[name]; !ok {
		x.schemas[name] = JSONSchema{} // reserve, in case t references itself
		x.schemas[name] = x.build(t)
	}
	return refTo(name)
}

// schemaOf converts t to a schema, preferring $ref for named struct types
// (registering them as components on first sight).
func (x *schemaIndex) schemaOf(t reflect.Type) JSONSchema {
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}

	if s, ok := wellKnownSchema(t); ok {
		return s
	}

	if t.Kind() == reflect.Struct && t.Name() != "" {
		return x.define(t.Name(), t)
	}

	return x.build(t)
}

// build converts t without introducing a $ref for t itself. Nested named
// types still become references.
func (x *schemaIndex) build(t reflect.Type) JSONSchema {
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}

	if s, ok := wellKnownSchema(t); ok {
		return s
	}

	//exhaustive:ignore
	switch t.Kind() {
	case reflect.String:
		return JSONSchema{Type: "string"}
	case reflect.Bool:
		return JSONSchema{Type: "boolean"}
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return JSONSchema{Type: "integer"}
	case reflect.Float32, reflect.Float64:
		return JSONSchema{Type: "number"}
	case reflect.Slice:
		if t.Elem().Kind() == reflect.Uint8 {
			return JSONSchema{Type: "string", Format: "byte"}
		}
		items := x.schemaOf(t.Elem())
		return JSONSchema{Type: "array", Items: &items}
	case reflect.Array:
		items := x.schemaOf(t.Elem())
		return JSONSchema{Type: "array", Items: &items}
	case reflect.Map:
		if t.Key().Kind() != reflect.String {
			return JSONSchema{Type: "object"}
		}
		valSchema := x.schemaOf(t.Elem())
		return JSONSchema{Type: "object", AdditionalProperties: &valSchema}
	case reflect.Struct:
		return x.structSchema(t)
	case reflect.Interface:
		return JSONSchema{}
	default:
		return JSONSchema{}
	}
}

// structSchema converts a struct type to an object schema with properties.
// Parameter-bound fields are not part of the body schema.
func (x *schemaIndex) structSchema(t reflect.Type) JSONSchema {
	schema := JSONSchema{
		Type:       "object",
		Properties: make(map[string]JSONSchema),
	}

	for i := range t.NumField() {
		f := t.Field(i)
		if !f.IsExported() || isParamField(f) {
			continue
		}

		name := jsonFieldName(f)
		if name == "-" {
			continue
		}

		prop := x.schemaOf(f.Type)

		if doc := f.Tag.Get("doc"); doc != "" {
			prop.Description = doc
		}

		schema.Properties[name] = prop

		if f.Tag.Get("required") == "true" {
			schema.Required = append(schema.Required, name)
		}
	}

	return schema
}

// wellKnownSchema maps types with fixed wire representations. These must be
// checked before the kind switch: time.Time is a struct and uuid.UUID is a
// byte array.
func wellKnownSchema(t reflect.Type) (JSONSchema, bool) {
	switch t {
	case reflect.TypeFor[time.Time]():
		return JSONSchema{Type: "string", Format: "date-time"}, true
	case reflect.TypeFor[time.Duration]():
		return JSONSchema{Type: "string", Format: "duration"}, true
	case reflect.TypeFor[uuid.UUID]():
		return JSONSchema{Type: "string", Format: "uuid"}, true
	case reflect.TypeFor[Void]():
		return JSONSchema{}, true
	}
	return JSONSchema{}, false
}
