package model

// CalendarExportPath is the relative download path of the booking's calendar file.
const CalendarExportPath = "cal.ics"

type ControlState struct {
	Enabled bool   `json:"enabled"`
	Reason  string `json:"reason,omitempty"`
}

// FormControls is the enablement state of every booking form control for one viewer.
type FormControls struct {
	BookingID      string        `json:"bookingId,omitempty"`
	Status         BookingStatus `json:"status,omitempty"`
	NameChangeOnly bool          `json:"nameChangeOnly"`
	InputsLocked   bool          `json:"inputsLocked"`
	ShowCustodian  bool          `json:"showCustodian"`
	CalendarHref   string        `json:"calendarHref,omitempty"`

	Save          ControlState `json:"save"`
	Reserve       ControlState `json:"reserve"`
	CheckOut      ControlState `json:"checkOut"`
	CheckIn       ControlState `json:"checkIn"`
	Cancel        ControlState `json:"cancel"`
	Archive       ControlState `json:"archive"`
	Scan          ControlState `json:"scan"`
	AddToCalendar ControlState `json:"addToCalendar"`
}
