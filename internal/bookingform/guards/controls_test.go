package guards

import (
	"testing"

	"assetbook/internal/bookingform/permissions"
	"assetbook/pkg/model"

	"github.com/stretchr/testify/assert"
)

func TestFormControls_ReservedBooking(t *testing.T) {
	b := &model.Booking{ID: "bk_1", Status: model.StatusReserved, Flags: readyFlags}

	controls := FormControls(b, model.Viewer{UserID: "usr_1", Roles: admin}, permissions.DefaultRoleTable())

	assert.Equal(t, "bk_1", controls.BookingID)
	assert.True(t, controls.NameChangeOnly)
	assert.True(t, controls.InputsLocked)
	assert.True(t, controls.ShowCustodian)
	assert.True(t, controls.Save.Enabled)
	assert.True(t, controls.CheckOut.Enabled)
	assert.False(t, controls.CheckIn.Enabled)
	assert.False(t, controls.Reserve.Enabled)
	assert.True(t, controls.AddToCalendar.Enabled)
	assert.Equal(t, model.CalendarExportPath, controls.CalendarHref)
}

func TestFormControls_DraftBooking(t *testing.T) {
	b := &model.Booking{ID: "bk_1", Status: model.StatusDraft, Flags: model.BookingFlags{HasAssets: true, HasAlreadyBookedAssets: true}}

	controls := FormControls(b, model.Viewer{Roles: base}, nil)

	assert.False(t, controls.NameChangeOnly)
	assert.False(t, controls.InputsLocked)
	assert.False(t, controls.ShowCustodian)
	assert.Equal(t, model.ControlState{Enabled: false, Reason: ReasonAlreadyBooked}, controls.Reserve)
	assert.Equal(t, model.ControlState{Enabled: false, Reason: ReasonCalendarNotReady}, controls.AddToCalendar)
	assert.Empty(t, controls.CalendarHref)
	assert.True(t, controls.Cancel.Enabled)
}

func TestFormControls_CustodianSeesThemselves(t *testing.T) {
	userID := "usr_7"
	b := &model.Booking{
		ID:        "bk_1",
		Status:    model.StatusOngoing,
		Custodian: &model.Custodian{ID: "tm_7", Name: "Sam", UserID: &userID},
	}

	assert.True(t, FormControls(b, model.Viewer{UserID: "usr_7", Roles: selfService}, nil).ShowCustodian)
	assert.False(t, FormControls(b, model.Viewer{UserID: "usr_8", Roles: selfService}, nil).ShowCustodian)
}

func TestNewBookingControls(t *testing.T) {
	controls := NewBookingControls(model.Viewer{Roles: base}, nil)

	assert.Empty(t, controls.BookingID)
	assert.False(t, controls.NameChangeOnly)
	assert.True(t, controls.Save.Enabled)
	for _, state := range []model.ControlState{controls.Reserve, controls.CheckOut, controls.CheckIn, controls.Cancel, controls.Archive, controls.Scan, controls.AddToCalendar} {
		assert.Equal(t, model.ControlState{Enabled: false, Reason: ReasonNotSaved}, state)
	}

	denied := NewBookingControls(model.Viewer{}, nil)
	assert.Equal(t, ReasonNoPermission, denied.Save.Reason)
}
