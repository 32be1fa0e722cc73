package validator

import (
	"regexp"
	"strconv"
	"strings"

	bookingserrors "busbook/internal/bookings/errors"
	"busbook/pkg/logger"
	"busbook/pkg/model"
	"busbook/pkg/sanitizer"

	"github.com/go-playground/validator/v10"
)

// Same shape the booking form enforces: non-whitespace local part, non-
// whitespace domain, dot-separated TLD segment. Deliberately looser than RFC
// address parsing.
var emailRegex = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

const (
	minAge = 1
	maxAge = 120
)

type PassengerValidator struct {
	validate *validator.Validate
	logger   *logger.Logger
}

func NewPassengerValidator(log *logger.Logger) *PassengerValidator {
	v := validator.New()

	if err := v.RegisterValidation("emailshape", validateEmailShape); err != nil {
		log.Fatal("Failed to register 'emailshape' validator",
			"error", err,
		)
	}

	return &PassengerValidator{
		validate: v,
		logger:   log,
	}
}

func validateEmailShape(fl validator.FieldLevel) bool {
	return emailRegex.MatchString(fl.Field().String())
}

// ValidateAll checks the drafts in their given order (seat-selection order)
// and stops at the first failing rule anywhere in the list. Rule order per
// passenger: name, gender, age, mobile, email.
func (v *PassengerValidator) ValidateAll(drafts []*model.PassengerDraft) error {
	for i, draft := range drafts {
		if err := v.validateDraft(draft); err != nil {
			seat := ""
			if draft != nil {
				seat = draft.SeatID
			}
			v.logger.Warn("Passenger validation failed",
				"seat", seat,
				"passenger", i+1,
				"rule", bookingserrors.RuleName(err),
			)
			return &bookingserrors.PassengerError{
				Seat:     seat,
				Position: i + 1,
				Err:      err,
			}
		}
	}
	return nil
}

func (v *PassengerValidator) validateDraft(draft *model.PassengerDraft) error {
	if draft == nil {
		return bookingserrors.ErrEmptyName
	}

	if sanitizer.NormalizeName(draft.FullName) == "" {
		return bookingserrors.ErrEmptyName
	}

	if err := v.validate.Var(draft.Gender, "required,oneof=male female other"); err != nil {
		return bookingserrors.ErrMissingGender
	}

	age, err := strconv.Atoi(strings.TrimSpace(draft.Age))
	if err != nil || age < minAge || age > maxAge {
		return bookingserrors.ErrInvalidAge
	}

	if err := v.validate.Var(draft.Mobile, "required,len=10,number"); err != nil {
		return bookingserrors.ErrInvalidMobile
	}

	if err := v.validate.Var(draft.Email, "required,emailshape"); err != nil {
		return bookingserrors.ErrInvalidEmail
	}

	return nil
}
