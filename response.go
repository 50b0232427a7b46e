package endpoint

import (
	"encoding/json"
	"errors"
	"net/http"
)

// HeaderSetter is optionally implemented by response types to set response
// headers before the body is written.
type HeaderSetter interface {
	SetHeaders(h http.Header)
}

// encodeResponse writes a success response. The encoder is negotiated from
// the Accept header; responses implementing StatusCoder override the route's
// default status, and HeaderSetter responses contribute headers.
func encodeResponse(w http.ResponseWriter, r *http.Request, resp any, defaultStatus int, codecs *codecRegistry) {
	if hs, ok := resp.(HeaderSetter); ok {
		hs.SetHeaders(w.Header())
	}

	status := defaultStatus
	if sc, ok := resp.(StatusCoder); ok {
		status = sc.StatusCode()
	}

	enc, ok := codecs.negotiate(r.Header.Get("Accept"))
	if !ok {
		writeProblem(w, Error(http.StatusNotAcceptable, "no acceptable content type"))
		return
	}

	w.Header().Set("Content-Type", enc.ContentType())
	w.WriteHeader(status)
	//nolint:errcheck,gosec // best-effort after WriteHeader
	enc.Encode(w, resp)
}

// writeProblem writes a transport-level error as an RFC 9457 problem
// details response. Used for binding failures, negotiation failures, and a
// missing shared environment — never for handler errors.
func writeProblem(w http.ResponseWriter, err error) {
	var pd *ProblemDetail
	if !errors.As(err, &pd) {
		status := ErrorStatus(err)
		pd = &ProblemDetail{
			Type:   "about:blank",
			Title:  http.StatusText(status),
			Status: status,
			Detail: err.Error(),
		}
	}

	w.Header().Set("Content-Type", "application/problem+json")
	w.WriteHeader(pd.Status)
	//nolint:errcheck,errchkjson,gosec // best-effort after WriteHeader
	json.NewEncoder(w).Encode(pd)
}

// writeHandlerError writes a handler-level error: the status comes from the
// error's declared StatusCoder conversion and the error value itself is the
// JSON body, so the wire shape matches the documented error examples.
func writeHandlerError(w http.ResponseWriter, err error) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(ErrorStatus(err))
	//nolint:errcheck,errchkjson,gosec // best-effort after WriteHeader
	json.NewEncoder(w).Encode(err)
}
