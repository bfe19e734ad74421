package guards

import (
	"assetbook/internal/bookingform/permissions"
	"assetbook/pkg/model"
)

// FormControls evaluates every control of the booking form for one viewer.
func FormControls(b *model.Booking, viewer model.Viewer, perms permissions.Checker) model.FormControls {
	ctx := NewGateContext(b, viewer, perms)

	controls := model.FormControls{
		BookingID:      ctx.BookingID,
		Status:         ctx.Status,
		NameChangeOnly: ctx.NameChangeOnly(),
		InputsLocked:   ctx.NameChangeOnly(),
		ShowCustodian:  CanSeeCustodian(ctx),

		Reserve:       CanReserve(ctx).State(),
		CheckOut:      CanCheckOut(ctx).State(),
		CheckIn:       CanCheckIn(ctx).State(),
		Cancel:        CanCancel(ctx).State(),
		Archive:       CanArchive(ctx).State(),
		Scan:          CanScan(ctx).State(),
		AddToCalendar: CanExportCalendar(ctx).State(),
	}

	if ctx.IsNew {
		controls.Save = CanCreate(ctx).State()
	} else {
		controls.Save = CanSave(ctx).State()
	}

	if controls.AddToCalendar.Enabled {
		controls.CalendarHref = model.CalendarExportPath
	}
	return controls
}

// NewBookingControls evaluates the creation form.
func NewBookingControls(viewer model.Viewer, perms permissions.Checker) model.FormControls {
	return FormControls(nil, viewer, perms)
}
