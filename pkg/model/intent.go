package model

// Action selects a validation rule set.
type Action string

const (
	ActionNew     Action = "new"
	ActionSave    Action = "save"
	ActionReserve Action = "reserve"
)

// Intent is the discriminator sent with a form submission.
type Intent string

const (
	IntentSave     Intent = "save"
	IntentReserve  Intent = "reserve"
	IntentCreate   Intent = "create"
	IntentScan     Intent = "scan"
	IntentCheckOut Intent = "checkOut"
	IntentCheckIn  Intent = "checkIn"
	IntentCancel   Intent = "cancel"
	IntentArchive  Intent = "archive"
)

var AllIntents = []Intent{
	IntentSave,
	IntentReserve,
	IntentCreate,
	IntentScan,
	IntentCheckOut,
	IntentCheckIn,
	IntentCancel,
	IntentArchive,
}

func (i Intent) IsValid() bool {
	for _, known := range AllIntents {
		if i == known {
			return true
		}
	}
	return false
}

// Action maps the intent onto the rule set its payload is validated with.
// Intents without a dedicated rule set pass through and get the default one.
func (i Intent) Action() Action {
	switch i {
	case IntentCreate:
		return ActionNew
	case IntentSave:
		return ActionSave
	case IntentReserve:
		return ActionReserve
	default:
		return Action(i)
	}
}

// Submission is what gets forwarded to the submit endpoint and announced on the
// intent stream.
type Submission struct {
	ID             string        `json:"id"`
	Intent         Intent        `json:"intent"`
	BookingID      string        `json:"bookingId,omitempty"`
	Status         BookingStatus `json:"status,omitempty"`
	NameChangeOnly bool          `json:"nameChangeOnly"`
	Input          *BookingInput `json:"input"`
	SubmittedBy    string        `json:"submittedBy,omitempty"`
	OrganizationID string        `json:"organizationId,omitempty"`
}
