package endpoint

import "strings"

// Translate converts a colon-style path template to the brace-delimited form
// shared by Go's ServeMux and OpenAPI. Segments beginning with ':' become
// "{name}", other segments pass through unchanged, empty segments are
// dropped, and order is preserved:
//
//	Translate("/users/:id/resource/:resID") == "/users/{id}/resource/{resID}"
//
// Translate("") and Translate("/") are both "".
func Translate(path string) string {
	var b strings.Builder
	for seg := range strings.SplitSeq(path, "/") {
		if seg == "" {
			continue
		}
		if seg[0] == ':' {
			b.WriteString("/{")
			b.WriteString(seg[1:])
			b.WriteByte('}')
			continue
		}
		b.WriteByte('/')
		b.WriteString(seg)
	}
	return b.String()
}

// pathParams returns the parameter names of a colon-style template in
// template order.
func pathParams(path string) []string {
	var names []string
	for seg := range strings.SplitSeq(path, "/") {
		if len(seg) > 1 && seg[0] == ':' {
			names = append(names, seg[1:])
		}
	}
	return names
}
