package validator

import (
	"fmt"
	"strings"

	"github.com/personalab/chat-backend/internal/entity"
)

const minPasswordLength = 6

// ValidateSignUp validates account registration
func (v *Validator) ValidateSignUp(req *entity.SignUpRequest) error {
	if err := validateEmail(req.Email); err != nil {
		return err
	}
	if req.Password == "" {
		return fmt.Errorf("%w: password", entity.ErrMissingField)
	}
	if len(req.Password) < minPasswordLength {
		return fmt.Errorf("%w: password must be at least %d characters", entity.ErrInvalidCredentials, minPasswordLength)
	}

	return nil
}

// ValidateSignIn validates a sign-in attempt
func (v *Validator) ValidateSignIn(req *entity.SignInRequest) error {
	if err := validateEmail(req.Email); err != nil {
		return err
	}
	if req.Password == "" {
		return fmt.Errorf("%w: password", entity.ErrMissingField)
	}

	return nil
}

func validateEmail(email string) error {
	email = strings.TrimSpace(email)
	if email == "" {
		return fmt.Errorf("%w: email", entity.ErrMissingField)
	}
	if !strings.Contains(email, "@") {
		return fmt.Errorf("%w: email", entity.ErrInvalidCredentials)
	}

	return nil
}
