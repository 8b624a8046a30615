package usecase

import (
	"context"
	"errors"

	"github.com/shandysiswandi/otpgate/internal/pkg/goerror"
	"github.com/shandysiswandi/otpgate/internal/signup/entity"
)

type ValidateStepInput struct {
	Step  string `validate:"required,oneof=identifier password date_of_birth interests"`
	Draft DraftInput
}

// ValidateStep checks a single screen so the client can show the message
// before moving on.
func (s *Usecase) ValidateStep(ctx context.Context, in ValidateStepInput) error {
	ctx, span := s.startSpan(ctx, "ValidateStep")
	defer span.End()

	if err := s.validator.Validate(in); err != nil {
		return goerror.NewInvalidInput(err)
	}

	d := s.draft(in.Draft)

	var err error
	switch entity.Step(in.Step) {
	case entity.StepIdentifier:
		err = entity.ValidateIdentifier(d.Kind(), d.Identifier())
	case entity.StepPassword:
		err = entity.ValidatePassword(d.Password(), d.ConfirmPassword())
	case entity.StepBirthDate:
		err = entity.ValidateBirthDate(d.BirthDate(), s.clock.Now())
	case entity.StepInterests:
		err = entity.ValidateInterests(d.Interests(), d.Suggestions(), s.cfg.GetArray("modules.signup.interests"))
	}

	return stepError(err)
}

func stepError(err error) error {
	if err == nil {
		return nil
	}

	var se *entity.StepError
	if errors.As(err, &se) {
		return goerror.NewInvalidInput(nil, string(se.Step), se.Message)
	}
	return goerror.NewServer(err)
}
