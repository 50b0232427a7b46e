package endpoint

import (
	"net/http"
	"reflect"
	"strconv"
	"strings"
)

// apiKeyScheme is the security scheme every generated document carries.
// Documented operations reference it by name.
const apiKeySchemeName = "api_key"

var apiKeyScheme = SecurityScheme{
	Type: "apiKey",
	In:   "header",
	Name: "todo_apikey",
}

// Spec generates the OpenAPI 3.1 document from the mounted endpoints. The
// document is rebuilt from scratch on every call — route metadata is the
// single source of truth and is never mutated after Mount.
func (r *Router) Spec() OpenAPISpec {
	r.mu.Lock()
	defer r.mu.Unlock()

	idx := newSchemaIndex()
	spec := OpenAPISpec{
		OpenAPI: "3.1.0",
		Info: OpenAPIInfo{
			Title:       r.title,
			Version:     r.version,
			Description: r.description,
		},
		Servers: r.servers,
		Paths:   make(map[string]PathItem),
	}

	tags := newTagList()

	for i := range r.routes {
		ri := &r.routes[i]

		op := buildOperation(ri, idx)
		tags.collect(ri, r.tagDescs)

		if spec.Paths[ri.pattern] == nil {
			spec.Paths[ri.pattern] = make(PathItem)
		}
		spec.Paths[ri.pattern][strings.ToLower(ri.method)] = op
	}

	spec.Tags = tags.list()

	schemes := map[string]SecurityScheme{apiKeySchemeName: apiKeyScheme}
	for name, s := range r.securitySchemes {
		schemes[name] = s
	}
	spec.Components = &Components{
		Schemas:         idx.schemas,
		SecuritySchemes: schemes,
	}

	return spec
}

// buildOperation projects one mounted endpoint into an Operation.
func buildOperation(ri *routeInfo, idx *schemaIndex) Operation {
	op := Operation{
		OperationID: ri.operationID,
		Tags:        ri.tags,
		Responses:   make(OperationResp),
	}

	// One required path parameter per template parameter, typed from the
	// request struct's matching path-tagged field when it has one.
	for _, name := range pathParams(ri.template) {
		op.Parameters = append(op.Parameters, Parameter{
			Name:     name,
			In:       "path",
			Required: true,
			Schema:   paramSchema(ri.reqType, "path", name, idx),
		})
	}

	if ri.reqType != nil && ri.reqType != reflect.TypeFor[Void]() {
		op.Parameters = append(op.Parameters, nonPathParameters(ri.reqType, idx)...)
		op.RequestBody = extractRequestBody(ri.reqType, ri.method, idx)
	}

	if ri.docs == nil {
		addDefaultSuccess(&op, ri, idx)
		return op
	}

	d := ri.docs
	op.Summary = d.summary
	op.Description = d.description
	op.Deprecated = d.deprecated
	op.Tags = append([]string{d.tag.Name}, ri.tags...)
	op.Security = []SecurityRequirement{{apiKeySchemeName: []string{}}}

	if len(d.successes) == 0 {
		addDefaultSuccess(&op, ri, idx)
	} else {
		ref := idx.define(ri.operationID+"Response", ri.respType)
		for _, s := range d.successes {
			op.Responses[strconv.Itoa(s.status)] = ResponseObj{
				Description: s.description,
				Content: map[string]MediaObj{
					"application/json": {Schema: &ref, Example: s.example},
				},
			}
		}
	}

	if len(d.failures) > 0 {
		ref := idx.define(ri.operationID+"Error", d.errType)
		for _, f := range d.failures {
			op.Responses[strconv.Itoa(f.status)] = ResponseObj{
				Description: f.description,
				Content: map[string]MediaObj{
					"application/json": {Schema: &ref, Example: f.example},
				},
			}
		}
	}

	return op
}

// addDefaultSuccess fills in the single success response for operations with
// no declared successes.
func addDefaultSuccess(op *Operation, ri *routeInfo, idx *schemaIndex) {
	if ri.respType == nil || ri.respType == reflect.TypeFor[Void]() {
		op.Responses[strconv.Itoa(ri.status)] = ResponseObj{Description: "No content"}
		return
	}
	schema := idx.schemaOf(ri.respType)
	op.Responses[strconv.Itoa(ri.status)] = ResponseObj{
		Description: "Successful response",
		Content: map[string]MediaObj{
			"application/json": {Schema: &schema},
		},
	}
}

// paramSchema resolves a parameter's schema from the request struct field
// carrying the matching binding tag, defaulting to string.
func paramSchema(reqType reflect.Type, tag, name string, idx *schemaIndex) JSONSchema {
	t := reqType
	if t == nil {
		return JSONSchema{Type: "string"}
	}
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t.Kind() != reflect.Struct {
		return JSONSchema{Type: "string"}
	}

	for i := range t.NumField() {
		f := t.Field(i)
		if !f.IsExported() {
			continue
		}
		if f.Tag.Get(tag) == name {
			return idx.schemaOf(f.Type)
		}
	}
	return JSONSchema{Type: "string"}
}

// nonPathParameters builds query and header parameters from tagged request
// fields. Path parameters come from the template instead.
func nonPathParameters(t reflect.Type, idx *schemaIndex) []Parameter {
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t.Kind() != reflect.Struct {
		return nil
	}

	var params []Parameter
	for i := range t.NumField() {
		f := t.Field(i)
		if !f.IsExported() {
			continue
		}

		for _, tagName := range []string{"query", "header"} {
			val := f.Tag.Get(tagName)
			if val == "" {
				continue
			}

			p := Parameter{
				Name:   val,
				In:     tagName,
				Schema: idx.schemaOf(f.Type),
			}
			if doc := f.Tag.Get("doc"); doc != "" {
				p.Description = doc
			}
			if f.Tag.Get("required") == "true" {
				p.Required = true
			}
			params = append(params, p)
		}
	}
	return params
}

// extractRequestBody builds a RequestBody when the request type carries one:
// a Body field, or the whole struct for bodied methods without param tags.
func extractRequestBody(t reflect.Type, method string, idx *schemaIndex) *RequestBody {
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t.Kind() != reflect.Struct {
		return nil
	}

	if bodyField, ok := t.FieldByName("Body"); ok {
		schema := idx.schemaOf(bodyField.Type)
		return &RequestBody{
			Required: true,
			Content: map[string]MediaObj{
				"application/json": {Schema: &schema},
			},
		}
	}

	if !hasParamTags(t) && (method == http.MethodPost || method == http.MethodPut || method == http.MethodPatch) {
		schema := idx.schemaOf(t)
		return &RequestBody{
			Required: true,
			Content: map[string]MediaObj{
				"application/json": {Schema: &schema},
			},
		}
	}

	return nil
}

// tagList accumulates distinct tags in mount order, with the default tag
// always present and last.
type tagList struct {
	order []string
	descs map[string]string
}

func newTagList() *tagList {
	return &tagList{descs: make(map[string]string)}
}

func (tl *tagList) collect(ri *routeInfo, extraDescs map[string]string) {
	if ri.docs != nil {
		tl.add(ri.docs.tag.Name, ri.docs.tag.Description)
	}
	for _, name := range ri.tags {
		tl.add(name, extraDescs[name])
	}
}

func (tl *tagList) add(name, desc string) {
	if name == "" || name == DefaultTag.Name {
		return
	}
	if _, seen := tl.descs[name]; !seen {
		tl.order = append(tl.order, name)
	}
	if desc != "" {
		tl.descs[name] = desc
	} else if _, seen := tl.descs[name]; !seen {
		tl.descs[name] = ""
	}
}

func (tl *tagList) list() []SpecTag {
	out := make([]SpecTag, 0, len(tl.order)+1)
	for _, name := range tl.order {
		out = append(out, SpecTag{Name: name, Description: tl.descs[name]})
	}
	out = append(out, SpecTag{Name: DefaultTag.Name, Description: DefaultTag.Description})
	return out
}
