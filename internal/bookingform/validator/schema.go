package validator

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"assetbook/internal/bookingform/dates"
	bookingformerrors "assetbook/internal/bookingform/errors"
	"assetbook/pkg/model"
	"assetbook/pkg/sanitizer"

	"github.com/go-playground/validator/v10"
)

const (
	FieldID          = "id"
	FieldName        = "name"
	FieldDescription = "description"
	FieldCustodian   = "custodian"
	FieldStartDate   = "startDate"
	FieldEndDate     = "endDate"
	FieldAssetIDs    = "assetIds"
)

const (
	MsgIDRequired         = "Booking id is required"
	MsgNameRequired       = "Name is required"
	MsgCustodianRequired  = "Please select a custodian"
	MsgCustodianMalformed = "Custodian could not be read"
	MsgCustodianInvalid   = "Custodian must have an id and a name"
	MsgStartRequired      = "Start date is required"
	MsgEndRequired        = "End date is required"
	MsgInvalidDate        = "Invalid date"
	MsgStartInFuture      = "Start date must be in the future"
	MsgEndBeforeStart     = "End date cannot be earlier than start date"
)

const (
	RuleFutureStart   = "future_start"
	RuleEndAfterStart = "end_after_start"
)

// Variant names one row group of the booking rule table.
type Variant int

const (
	// VariantBase is the unrefined field set: unknown actions and saves of
	// completed, cancelled or archived bookings.
	VariantBase Variant = iota
	VariantNew
	VariantReserve
	VariantDraftSave
	// VariantRestrictedSave covers saves of reserved, ongoing and overdue
	// bookings, where only name, description and custodian are editable.
	VariantRestrictedSave
)

var AllVariants = []Variant{VariantBase, VariantNew, VariantReserve, VariantDraftSave, VariantRestrictedSave}

func (v Variant) String() string {
	switch v {
	case VariantBase:
		return "base"
	case VariantNew:
		return "new"
	case VariantReserve:
		return "reserve"
	case VariantDraftSave:
		return "save-draft"
	case VariantRestrictedSave:
		return "save-restricted"
	default:
		return fmt.Sprintf("variant(%d)", int(v))
	}
}

// SelectVariant maps an action and, for saves, the booking status onto the
// rule table. An empty status on save is a caller defect and yields
// ErrStatusRequired; it never degrades to the base rules.
func SelectVariant(action model.Action, status model.BookingStatus) (Variant, error) {
	switch action {
	case model.ActionNew:
		return VariantNew, nil
	case model.ActionReserve:
		return VariantReserve, nil
	case model.ActionSave:
		switch status {
		case "":
			return VariantBase, fmt.Errorf("%w: action %q", bookingformerrors.ErrStatusRequired, action)
		case model.StatusDraft:
			return VariantDraftSave, nil
		case model.StatusReserved, model.StatusOngoing, model.StatusOverdue:
			return VariantRestrictedSave, nil
		default:
			return VariantBase, nil
		}
	default:
		return VariantBase, nil
	}
}

type fieldRule struct {
	field string
	// tag is a go-playground/validator tag chain; empty means carried unchecked.
	tag string
}

type ruleSet struct {
	fields        []fieldRule
	futureStart   bool
	endAfterStart bool
}

var (
	idPassthrough     = fieldRule{field: FieldID}
	idRequired        = fieldRule{field: FieldID, tag: "required"}
	nameRule          = fieldRule{field: FieldName, tag: "required,min=2"}
	descriptionRule   = fieldRule{field: FieldDescription}
	custodianRequired = fieldRule{field: FieldCustodian, tag: "required,custodian_json,custodian"}
	custodianOptional = fieldRule{field: FieldCustodian, tag: "omitempty,custodian_json,custodian"}
	startDateRule     = fieldRule{field: FieldStartDate, tag: "required,datetime_input"}
	endDateRule       = fieldRule{field: FieldEndDate, tag: "required,datetime_input"}
	assetIDsRule      = fieldRule{field: FieldAssetIDs}
)

func rulesFor(v Variant) ruleSet {
	switch v {
	case VariantNew:
		return ruleSet{
			fields:        []fieldRule{nameRule, descriptionRule, custodianRequired, startDateRule, endDateRule, assetIDsRule},
			futureStart:   true,
			endAfterStart: true,
		}
	case VariantReserve, VariantDraftSave:
		return ruleSet{
			fields:        []fieldRule{idRequired, nameRule, descriptionRule, custodianRequired, startDateRule, endDateRule, assetIDsRule},
			futureStart:   true,
			endAfterStart: true,
		}
	case VariantRestrictedSave:
		return ruleSet{
			fields: []fieldRule{idPassthrough, nameRule, descriptionRule, custodianOptional},
		}
	case VariantBase:
		return ruleSet{
			fields: []fieldRule{idPassthrough, nameRule, descriptionRule, custodianRequired, startDateRule, endDateRule, assetIDsRule},
		}
	default:
		panic(fmt.Sprintf("validator: no rules for %s", v))
	}
}

// Schema validates a BookingForm against one rule set. It is built per call
// with "now" already resolved, so Validate is a pure function of the form.
type Schema struct {
	variant  Variant
	rules    ruleSet
	now      time.Time
	loc      *time.Location
	validate *validator.Validate
}

func (s *Schema) Variant() Variant {
	return s.variant
}

func (s *Schema) ChecksFutureStart() bool {
	return s.rules.futureStart
}

func (s *Schema) ChecksEndAfterStart() bool {
	return s.rules.endAfterStart
}

// Validate returns the typed input, or every field error found. Fields outside
// the schema are ignored and stay zero in the result.
func (s *Schema) Validate(form *model.BookingForm) (*model.BookingInput, ValidationErrors) {
	if form == nil {
		form = &model.BookingForm{}
	}

	input := &model.BookingInput{}
	var errs ValidationErrors

	for _, rule := range s.rules.fields {
		if rule.tag != "" {
			if fieldErr := s.checkField(rule, fieldValue(form, rule.field)); fieldErr != nil {
				errs = append(errs, *fieldErr)
				continue
			}
		}
		if fieldErr := s.assign(input, form, rule.field); fieldErr != nil {
			errs = append(errs, *fieldErr)
		}
	}

	if s.rules.futureStart && input.StartDate != nil && !input.StartDate.After(s.now) {
		errs = append(errs, ValidationError{Field: FieldStartDate, Message: MsgStartInFuture, Rule: RuleFutureStart})
	}
	if s.rules.endAfterStart && input.StartDate != nil && input.EndDate != nil && !input.EndDate.After(*input.StartDate) {
		errs = append(errs, ValidationError{Field: FieldEndDate, Message: MsgEndBeforeStart, Rule: RuleEndAfterStart})
	}

	if len(errs) > 0 {
		return nil, errs
	}
	return input, nil
}

func (s *Schema) checkField(rule fieldRule, value string) *ValidationError {
	err := s.validate.Var(value, rule.tag)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
		tag := fieldErrs[0].Tag()
		return &ValidationError{Field: rule.field, Message: messageFor(rule.field, tag), Rule: tag}
	}
	return &ValidationError{Field: rule.field, Message: err.Error()}
}

func (s *Schema) assign(input *model.BookingInput, form *model.BookingForm, field string) *ValidationError {
	switch field {
	case FieldID:
		input.ID = strings.TrimSpace(form.ID)
	case FieldName:
		input.Name = form.Name
	case FieldDescription:
		input.Description = form.Description
	case FieldCustodian:
		if strings.TrimSpace(form.Custodian) == "" {
			return nil
		}
		custodian, err := ParseCustodian(form.Custodian)
		if err != nil {
			return &ValidationError{Field: FieldCustodian, Message: MsgCustodianInvalid, Rule: "custodian"}
		}
		input.Custodian = &custodian
	case FieldStartDate:
		t, err := dates.ParseInput(form.StartDate, s.loc)
		if err != nil {
			return &ValidationError{Field: FieldStartDate, Message: MsgInvalidDate, Rule: "datetime_input"}
		}
		input.StartDate = &t
	case FieldEndDate:
		t, err := dates.ParseInput(form.EndDate, s.loc)
		if err != nil {
			return &ValidationError{Field: FieldEndDate, Message: MsgInvalidDate, Rule: "datetime_input"}
		}
		input.EndDate = &t
	case FieldAssetIDs:
		if form.AssetIDs != nil {
			input.AssetIDs = sanitizer.NormalizeIDs(form.AssetIDs)
		}
	}
	return nil
}

func fieldValue(form *model.BookingForm, field string) string {
	switch field {
	case FieldID:
		return strings.TrimSpace(form.ID)
	case FieldName:
		return form.Name
	case FieldDescription:
		return form.Description
	case FieldCustodian:
		return strings.TrimSpace(form.Custodian)
	case FieldStartDate:
		return form.StartDate
	case FieldEndDate:
		return form.EndDate
	default:
		return ""
	}
}

func messageFor(field, tag string) string {
	switch field {
	case FieldID:
		return MsgIDRequired
	case FieldName:
		return MsgNameRequired
	case FieldCustodian:
		switch tag {
		case "required":
			return MsgCustodianRequired
		case "custodian_json":
			return MsgCustodianMalformed
		default:
			return MsgCustodianInvalid
		}
	case FieldStartDate:
		if tag == "required" {
			return MsgStartRequired
		}
		return MsgInvalidDate
	case FieldEndDate:
		if tag == "required" {
			return MsgEndRequired
		}
		return MsgInvalidDate
	default:
		return fmt.Sprintf("%s failed on %s", field, tag)
	}
}
