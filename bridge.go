package endpoint

import (
	"errors"
	"net/http"
	"reflect"
)

// bridge adapts an Endpoint to http.Handler. It is the one place where the
// three typed worlds (request, environment, response) meet the transport:
// decode, extract environment, validate, invoke, encode. The bridge itself
// is stateless — all fields are set at mount time and read-only afterwards,
// so one bridge value serves every concurrent request.
type bridge[C, Req, Resp any] struct {
	ep        Endpoint[C, Req, Resp]
	status    int
	validator Validator
	errH      ErrorHandler
	codecs    *codecRegistry
}

func (b *bridge[C, Req, Resp]) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	req, err := decodeRequest[Req](r, b.codecs)
	if err != nil {
		b.transportError(w, r, Error(http.StatusBadRequest, err.Error()))
		return
	}

	env, ok := GetValue[*C](r.Context())
	if !ok {
		b.transportError(w, r, Error(http.StatusInternalServerError, ErrNoEnvironment.Error()))
		return
	}

	if sv, ok := any(req).(SelfValidator); ok {
		if err := sv.Validate(); err != nil {
			b.transportError(w, r, validationError(err))
			return
		}
	}
	if b.validator != nil {
		if err := b.validator.Validate(req); err != nil {
			b.transportError(w, r, validationError(err))
			return
		}
	}

	resp, err := b.ep.Handle(r.Context(), env, req)
	if err != nil {
		writeHandlerError(w, err)
		return
	}

	if resp == nil || reflect.TypeFor[Resp]() == reflect.TypeFor[Void]() {
		w.WriteHeader(b.status)
		return
	}

	encodeResponse(w, r, resp, b.status, b.codecs)
}

// transportError routes binding, environment, and validation failures
// through the router's error handler when one is configured.
func (b *bridge[C, Req, Resp]) transportError(w http.ResponseWriter, r *http.Request, err error) {
	if b.errH != nil {
		b.errH(w, r, err)
		return
	}
	writeProblem(w, err)
}

// validationError keeps validator statuses when declared and defaults the
// rest to 422.
func validationError(err error) error {
	var sc StatusCoder
	if errors.As(err, &sc) {
		return err
	}
	return Error(http.StatusUnprocessableEntity, err.Error())
}
