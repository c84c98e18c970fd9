package validator

// Validator validates incoming request payloads
type Validator struct{}

func NewValidator() *Validator {
	return &Validator{}
}
