package service

import (
	"context"
	"errors"

	"assetbook/internal/bookingform/dates"
	bookingformerrors "assetbook/internal/bookingform/errors"
	"assetbook/internal/bookingform/guards"
	"assetbook/internal/bookingform/permissions"
	"assetbook/internal/bookingform/publisher"
	"assetbook/internal/bookingform/repository"
	"assetbook/internal/bookingform/submission"
	"assetbook/internal/bookingform/validator"
	"assetbook/pkg/config"
	apperrors "assetbook/pkg/errors"
	"assetbook/pkg/middleware"
	"assetbook/pkg/model"
	"assetbook/pkg/sanitizer"

	"github.com/google/uuid"
)

type BookingFormService interface {
	Validate(ctx context.Context, action model.Action, status model.BookingStatus, form *model.BookingForm, hints model.Hints) (*model.BookingInput, error)
	Submit(ctx context.Context, intent model.Intent, form *model.BookingForm, viewer model.Viewer, hints model.Hints) (*model.Submission, error)
	AdjustEndDate(req model.EndDateAdjustment) model.EndDateResult
	Controls(ctx context.Context, bookingID string, viewer model.Viewer) (model.FormControls, error)
	NewBookingControls(viewer model.Viewer) model.FormControls
}

type bookingFormService struct {
	reader    repository.BookingReader
	validator *validator.BookingValidator
	submitter submission.Submitter
	publisher publisher.IntentPublisher
	perms     permissions.Checker
	cfg       *config.Config
	newID     func() string
}

func NewBookingFormService(
	reader repository.BookingReader,
	validator *validator.BookingValidator,
	submitter submission.Submitter,
	publisher publisher.IntentPublisher,
	perms permissions.Checker,
	cfg *config.Config,
) BookingFormService {
	if perms == nil {
		perms = permissions.DefaultRoleTable()
	}
	return &bookingFormService{
		reader:    reader,
		validator: validator,
		submitter: submitter,
		publisher: publisher,
		perms:     perms,
		cfg:       cfg,
		newID:     uuid.NewString,
	}
}

func (s *bookingFormService) Validate(ctx context.Context, action model.Action, status model.BookingStatus, form *model.BookingForm, hints model.Hints) (*model.BookingInput, error) {
	if form == nil {
		return nil, apperrors.InvalidInput("Booking form cannot be empty")
	}
	sanitizer.SanitizeForm(form)

	input, err := s.validator.Validate(action, status, form, hints)
	if err != nil {
		return nil, s.validationError(ctx, action, status, err)
	}
	return input, nil
}

// Submit runs the workflow gate for intent, validates form with the rule set
// the intent maps to and forwards the result to the submit endpoint. The intent
// event is published after a successful submit; a failed publish is logged and
// does not fail the submission.
func (s *bookingFormService) Submit(ctx context.Context, intent model.Intent, form *model.BookingForm, viewer model.Viewer, hints model.Hints) (*model.Submission, error) {
	if !intent.IsValid() {
		return nil, apperrors.InvalidInput("Unknown booking intent: " + string(intent))
	}
	if form == nil {
		return nil, apperrors.InvalidInput("Booking form cannot be empty")
	}
	sanitizer.SanitizeForm(form)

	booking, err := s.loadBooking(ctx, form.ID)
	if err != nil {
		return nil, err
	}

	gate := guards.NewGateContext(booking, viewer, s.perms)
	result, err := guards.GateFor(intent, gate)
	if err != nil {
		return nil, apperrors.InvalidInput(err.Error())
	}
	if !result.Allowed {
		s.cfg.Log.Info("Booking intent denied",
			"intent", intent,
			"booking_id", booking.ID,
			"status", booking.Status,
			"user_id", viewer.UserID,
			"reason", result.Reason,
		)
		return nil, gateError(result)
	}

	action := intent.Action()
	if booking.IsNew() && action == model.ActionSave {
		action = model.ActionNew
	}

	input, err := s.validator.Validate(action, booking.Status, form, hints)
	if err != nil {
		return nil, s.validationError(ctx, action, booking.Status, err)
	}

	nameChangeOnly := gate.NameChangeOnly()
	values, err := submission.Encode(input, intent, nameChangeOnly)
	if err != nil {
		s.cfg.Log.Error("Failed to encode booking submission", "intent", intent, "booking_id", booking.ID, "error", err)
		return nil, apperrors.Internal("Failed to encode booking submission", err)
	}

	requestID := middleware.RequestIDFrom(ctx)
	if err := s.submitter.Submit(ctx, values, requestID); err != nil {
		return nil, submitError(err)
	}

	sub := &model.Submission{
		ID:             s.newID(),
		Intent:         intent,
		BookingID:      booking.ID,
		Status:         booking.Status,
		NameChangeOnly: nameChangeOnly,
		Input:          input,
		SubmittedBy:    viewer.UserID,
		OrganizationID: viewer.OrganizationID,
	}

	if err := s.publisher.Publish(ctx, sub, requestID); err != nil {
		s.cfg.Log.Warn("Failed to publish booking intent",
			"submission_id", sub.ID,
			"intent", intent,
			"booking_id", sub.BookingID,
			"error", err,
		)
	}

	s.cfg.Log.Info("Booking intent submitted",
		"submission_id", sub.ID,
		"intent", intent,
		"booking_id", sub.BookingID,
		"name_change_only", nameChangeOnly,
	)
	return sub, nil
}

func (s *bookingFormService) AdjustEndDate(req model.EndDateAdjustment) model.EndDateResult {
	end, changed := dates.AdjustEndDate(req.StartDate, req.EndDate, req.IsNew)
	return model.EndDateResult{EndDate: end, Changed: changed}
}

func (s *bookingFormService) Controls(ctx context.Context, bookingID string, viewer model.Viewer) (model.FormControls, error) {
	if bookingID == "" {
		return model.FormControls{}, apperrors.InvalidInput("Booking ID cannot be empty")
	}
	booking, err := s.loadBooking(ctx, bookingID)
	if err != nil {
		return model.FormControls{}, err
	}
	return guards.FormControls(booking, viewer, s.perms), nil
}

func (s *bookingFormService) NewBookingControls(viewer model.Viewer) model.FormControls {
	return guards.NewBookingControls(viewer, s.perms)
}

// loadBooking returns the stored booking for id, or an empty booking when id
// is blank so that creation flows see IsNew.
func (s *bookingFormService) loadBooking(ctx context.Context, id string) (*model.Booking, error) {
	if id == "" {
		return &model.Booking{}, nil
	}

	booking, err := s.reader.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingformerrors.ErrNotFound) {
			return nil, apperrors.NotFoundWithID("booking", id)
		}
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, apperrors.Timeout("Timed out loading booking")
		}
		s.cfg.Log.Error("Failed to load booking", "booking_id", id, "error", err)
		return nil, apperrors.Internal("Failed to load booking", err)
	}
	return booking, nil
}

func (s *bookingFormService) validationError(ctx context.Context, action model.Action, status model.BookingStatus, err error) error {
	var fieldErrs validator.ValidationErrors
	switch {
	case errors.As(err, &fieldErrs):
		return apperrors.Validation("Booking form is invalid", map[string]any{
			"fields": fieldErrs.ByField(),
			"errors": []validator.ValidationError(fieldErrs),
		})
	case errors.Is(err, bookingformerrors.ErrInvalidTimeZone):
		return apperrors.InvalidInput(err.Error())
	case errors.Is(err, bookingformerrors.ErrStatusRequired):
		s.cfg.Log.Error("Save rule set requested without a booking status",
			"request_id", middleware.RequestIDFrom(ctx),
			"action", action,
			"error", err,
		)
		return apperrors.Internal("Booking status is required to validate a save", err)
	default:
		s.cfg.Log.Error("Failed to validate booking form", "action", action, "status", status, "error", err)
		return apperrors.Internal("Failed to validate booking form", err)
	}
}

func gateError(result guards.GuardResult) error {
	if result.Reason == guards.ReasonNoPermission {
		return apperrors.Forbidden(result.Reason)
	}
	return apperrors.Conflict(result.Reason)
}

func submitError(err error) error {
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return apperrors.Timeout("Submit endpoint did not answer in time")
	case errors.Is(err, bookingformerrors.ErrSubmitRejected):
		return apperrors.BadGateway("Submit endpoint rejected the booking", err)
	default:
		return apperrors.BadGateway("Submit endpoint unreachable", err)
	}
}
