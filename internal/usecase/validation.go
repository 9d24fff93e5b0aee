package usecase

import (
	"fmt"
	"nenmatch/internal/domain/entity"

	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	_ = v.RegisterValidation("nen_category", func(fl validator.FieldLevel) bool {
		return entity.Category(fl.Field().String()).Valid()
	})
	return v
}

// checkPayload turns a structurally invalid model payload into a null result
// so the invoker retries it.
func checkPayload(payload any) error {
	if err := validate.Struct(payload); err != nil {
		return fmt.Errorf("%w: %v", entity.ErrNullResult, err)
	}
	return nil
}

func checkInput(in entity.DiagnosisInput) error {
	hasAnswers := len(in.Answers) > 0
	hasProfile := in.Profile != nil
	if hasAnswers == hasProfile {
		return fmt.Errorf("%w: provide either question answers or a profile", entity.ErrInvalidRequest)
	}
	if err := validate.Struct(in); err != nil {
		return fmt.Errorf("%w: %v", entity.ErrInvalidRequest, err)
	}
	return nil
}
