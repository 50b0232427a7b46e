package endpoint

// SelfValidator is implemented by request types that validate themselves.
type SelfValidator interface {
	Validate() error
}

// Validator validates any decoded request before the handler runs.
// Plug in an ecosystem validator (e.g. go-playground/validator) via
// WithValidator.
type Validator interface {
	Validate(req any) error
}
