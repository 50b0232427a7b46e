package endpoint

import (
	"reflect"
	"strings"
)

// paramTags are the struct tags used for binding request parameters.
var paramTags = []string{"path", "query", "header"}

// hasParamTags reports whether the given type has any fields with
// parameter binding tags (path, query, header).
func hasParamTags(t reflect.Type) bool {
	if t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t.Kind() != reflect.Struct {
		return false
	}
	for i := range t.NumField() {
		f := t.Field(i)
		if !f.IsExported() {
			continue
		}
		if isParamField(f) {
			return true
		}
	}
	return false
}

// isParamField reports whether a struct field has parameter binding tags.
func isParamField(f reflect.StructField) bool {
	for _, tag := range paramTags {
		if f.Tag.Get(tag) != "" {
			return true
		}
	}
	return false
}

// hasBodyField reports whether the given type has an exported "Body" field.
func hasBodyField(t reflect.Type) bool {
	if t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t.Kind() != reflect.Struct {
		return false
	}
	_, ok := t.FieldByName("Body")
	return ok
}

// jsonFieldName returns the JSON field name for a struct field.
func jsonFieldName(f reflect.StructField) string {
	tag := f.Tag.Get("json")
	if tag == "" {
		return f.Name
	}
	name, _, _ := strings.Cut(tag, ",")
	if name == "" {
		return f.Name
	}
	return name
}
