package validator

import (
	"fmt"
	"time"

	"assetbook/internal/bookingform/dates"
	bookingformerrors "assetbook/internal/bookingform/errors"
	"assetbook/pkg/clock"
	"assetbook/pkg/logger"
	"assetbook/pkg/model"

	"github.com/go-playground/validator/v10"
)

type BookingValidator struct {
	validate   *validator.Validate
	clock      clock.Clock
	defaultLoc *time.Location
	logger     *logger.Logger
}

func NewBookingValidator(log *logger.Logger, clk clock.Clock, defaultLoc *time.Location) *BookingValidator {
	v := validator.New()

	tags := map[string]validator.Func{
		"custodian_json": validateCustodianJSON,
		"custodian":      validateCustodian,
		"datetime_input": validateDateTimeInput,
	}
	for tag, fn := range tags {
		if err := v.RegisterValidation(tag, fn); err != nil {
			log.Fatal("Failed to register booking validation tag",
				"tag", tag,
				"error", err,
			)
		}
	}

	if clk == nil {
		clk = clock.System()
	}
	if defaultLoc == nil {
		defaultLoc = time.UTC
	}

	log.Info("Booking form validator initialized successfully", "default_time_zone", defaultLoc.String())

	return &BookingValidator{
		validate:   v,
		clock:      clk,
		defaultLoc: defaultLoc,
		logger:     log,
	}
}

func validateDateTimeInput(fl validator.FieldLevel) bool {
	_, err := dates.ParseInput(fl.Field().String(), time.UTC)
	return err == nil
}

// SelectSchema resolves the rule set for action and status. "Now" for the
// future-start check is read from the injected clock in the hinted zone, or the
// validator's default zone when no hint is given.
func (v *BookingValidator) SelectSchema(action model.Action, status model.BookingStatus, hints model.Hints) (*Schema, error) {
	variant, err := SelectVariant(action, status)
	if err != nil {
		return nil, err
	}

	loc, err := dates.Location(hints.TimeZone, v.defaultLoc)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", bookingformerrors.ErrInvalidTimeZone, err)
	}

	return &Schema{
		variant:  variant,
		rules:    rulesFor(variant),
		now:      v.clock.Now().In(loc),
		loc:      loc,
		validate: v.validate,
	}, nil
}

// Validate selects the schema and applies it. Field problems come back as
// ValidationErrors; selection problems as the selection error.
func (v *BookingValidator) Validate(action model.Action, status model.BookingStatus, form *model.BookingForm, hints model.Hints) (*model.BookingInput, error) {
	schema, err := v.SelectSchema(action, status, hints)
	if err != nil {
		return nil, err
	}

	input, errs := schema.Validate(form)
	if len(errs) > 0 {
		v.logger.Debug("Booking form rejected",
			"action", action,
			"status", status,
			"variant", schema.Variant().String(),
			"fields", errs.ByField(),
		)
		return nil, errs
	}
	return input, nil
}
