package endpoint

import (
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"strconv"
	"time"

	"github.com/google/uuid"
)

// requestShape describes how a request type is decoded.
type requestShape int

const (
	shapeVoid     requestShape = iota // Void — nothing to bind
	shapeBodyOnly                     // whole struct is the body
	shapeParams                       // param tags only, no body
	shapeMixed                        // param tags plus a Body field
)

// classifyRequest determines the decoding shape of a request type.
func classifyRequest(t reflect.Type) requestShape {
	if t == reflect.TypeFor[Void]() {
		return shapeVoid
	}
	if hasBodyField(t) {
		return shapeMixed
	}
	if hasParamTags(t) {
		return shapeParams
	}
	return shapeBodyOnly
}

// decodeRequest creates a new Req value and populates it from the HTTP
// request: path/query/header tags first, then the body per content type.
func decodeRequest[Req any](r *http.Request, codecs *codecRegistry) (*Req, error) {
	req := new(Req)
	t := reflect.TypeFor[Req]()

	switch classifyRequest(t) {
	case shapeVoid:
		return req, nil

	case shapeBodyOnly:
		if err := decodeBody(r, req, codecs); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrBindBody, err)
		}

	case shapeParams:
		if err := bindParams(req, r); err != nil {
			return nil, err
		}

	case shapeMixed:
		if err := bindParams(req, r); err != nil {
			return nil, err
		}
		body := reflect.ValueOf(req).Elem().FieldByName("Body")
		if err := decodeBody(r, body.Addr().Interface(), codecs); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrBindBody, err)
		}
	}

	return req, nil
}

// bindParams binds path, query, and header values to tagged struct fields.
func bindParams(target any, r *http.Request) error {
	v := reflect.ValueOf(target)
	if v.Kind() == reflect.Pointer {
		v = v.Elem()
	}

	t := v.Type()
	for i := range t.NumField() {
		f := t.Field(i)
		if !f.IsExported() || f.Name == "Body" {
			continue
		}

		field := v.Field(i)

		if name := f.Tag.Get("path"); name != "" {
			if val := r.PathValue(name); val != "" {
				if err := setFieldValue(field, val); err != nil {
					return fmt.Errorf("%w: %s: %w", ErrBindPath, name, err)
				}
			}
		}

		if name := f.Tag.Get("query"); name != "" {
			val := r.URL.Query().Get(name)
			if val == "" {
				val = f.Tag.Get("default")
			}
			if val != "" {
				if err := setFieldValue(field, val); err != nil {
					return fmt.Errorf("%w: %s: %w", ErrBindQuery, name, err)
				}
			}
		}

		if name := f.Tag.Get("header"); name != "" {
			val := r.Header.Get(name)
			if val == "" {
				val = f.Tag.Get("default")
			}
			if val != "" {
				if err := setFieldValue(field, val); err != nil {
					return fmt.Errorf("%w: %s: %w", ErrBindHeader, name, err)
				}
			}
		}
	}

	return nil
}

// setFieldValue sets a reflect.Value from its string form, supporting the
// common parameter types.
func setFieldValue(field reflect.Value, value string) error {
	switch field.Type() {
	case reflect.TypeFor[time.Duration]():
		d, err := time.ParseDuration(value)
		if err != nil {
			return err
		}
		field.Set(reflect.ValueOf(d))
		return nil
	case reflect.TypeFor[uuid.UUID]():
		id, err := uuid.Parse(value)
		if err != nil {
			return err
		}
		field.Set(reflect.ValueOf(id))
		return nil
	}

	//exhaustive:ignore
	switch field.Kind() {
	case reflect.String:
		field.SetString(value)
	case reflect.Int, reflect.Int64:
		n, err := strconv.ParseInt(value, 10, 64)
		if err != nil {
			return err
		}
		field.SetInt(n)
	case reflect.Float64:
		n, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return err
		}
		field.SetFloat(n)
	case reflect.Bool:
		b, err := strconv.ParseBool(value)
		if err != nil {
			return err
		}
		field.SetBool(b)
	default:
		return fmt.Errorf("unsupported type: %s", field.Type())
	}
	return nil
}

// decodeBody decodes the request body into target using the decoder
// matching the Content-Type header. Request types that declare a body
// require one: an absent body is a binding error, the handler never sees a
// silently zeroed request.
func decodeBody(r *http.Request, target any, codecs *codecRegistry) error {
	if r.Body == nil || r.ContentLength == 0 {
		return errors.New("missing request body")
	}
	dec, ok := codecs.decoderFor(r.Header.Get("Content-Type"))
	if !ok {
		return fmt.Errorf("unsupported content type %q", r.Header.Get("Content-Type"))
	}
	return dec.Decode(r.Body, target)
}
