// Package guards holds the workflow gates of the booking form. Guards are pure
// functions over a GateContext; a denial carries the reason shown next to the
// disabled control.
package guards

import (
	"fmt"

	bookingformerrors "assetbook/internal/bookingform/errors"
	"assetbook/internal/bookingform/permissions"
	"assetbook/pkg/model"
)

// GuardResult represents the outcome of a guard evaluation.
type GuardResult struct {
	Allowed bool
	Reason  string
}

// Error converts the guard result to an error if not allowed.
func (r GuardResult) Error() error {
	if r.Allowed {
		return nil
	}
	return fmt.Errorf("%s", r.Reason)
}

// State renders the result as control state.
func (r GuardResult) State() model.ControlState {
	if r.Allowed {
		return model.ControlState{Enabled: true}
	}
	return model.ControlState{Enabled: false, Reason: r.Reason}
}

func allow() GuardResult {
	return GuardResult{Allowed: true}
}

func deny(reason string) GuardResult {
	return GuardResult{Allowed: false, Reason: reason}
}

const (
	ReasonNoPermission       = "You do not have permission to do this"
	ReasonNotSaved           = "Save the booking first"
	ReasonAlreadySaved       = "This booking already exists"
	ReasonArchived           = "Archived bookings cannot be changed"
	ReasonNoAssets           = "Add assets to the booking first"
	ReasonUnavailableAssets  = "Some assets in this booking are marked as unavailable. Remove them or make them available again"
	ReasonAlreadyBooked      = "Some assets are already booked for this period. Resolve the conflict before reserving"
	ReasonCheckedOutAssets   = "Some assets are checked out in another booking. Check them in first"
	ReasonAssetsInCustody    = "Some assets are in custody of a team member. Release custody first"
	ReasonCalendarNotReady   = "Only reserved or active bookings can be added to a calendar"
	reasonStatusFormat       = "Not possible for a %s booking"
	reasonCheckInStateFormat = "Only ongoing or overdue bookings can be checked in (current status: %s)"
)

// GateContext carries everything the guards read.
type GateContext struct {
	BookingID string
	IsNew     bool
	Status    model.BookingStatus
	Flags     model.BookingFlags
	// ViewerIsCustodian is true when the custodian is linked to the viewer's login.
	ViewerIsCustodian bool
	Roles             []model.Role
	Permissions       permissions.Checker
}

// NewGateContext builds the context for booking b, or for the creation form
// when b is nil. A nil checker falls back to DefaultRoleTable.
func NewGateContext(b *model.Booking, viewer model.Viewer, perms permissions.Checker) GateContext {
	if perms == nil {
		perms = permissions.DefaultRoleTable()
	}
	ctx := GateContext{
		IsNew:       b.IsNew(),
		Roles:       viewer.Roles,
		Permissions: perms,
	}
	if b == nil {
		return ctx
	}
	ctx.BookingID = b.ID
	ctx.Status = b.Status
	ctx.Flags = b.Flags
	if b.Custodian != nil {
		ctx.ViewerIsCustodian = b.Custodian.IsUser(viewer.UserID)
	}
	return ctx
}

func (c GateContext) can(action permissions.Action) bool {
	return c.Permissions != nil && c.Permissions.CanPerform(c.Roles, permissions.EntityBooking, action)
}

// NameChangeOnly reports whether a save may touch only name, description and custodian.
func (c GateContext) NameChangeOnly() bool {
	return !c.IsNew && c.Status != model.StatusDraft
}

func statusDenied(status model.BookingStatus) GuardResult {
	return deny(fmt.Sprintf(reasonStatusFormat, status))
}

// CanCreate evaluates the creation form's submit.
// Rules:
// - Booking must not exist yet
// - Viewer needs create permission
func CanCreate(ctx GateContext) GuardResult {
	if !ctx.IsNew {
		return deny(ReasonAlreadySaved)
	}
	if !ctx.can(permissions.ActionCreate) {
		return deny(ReasonNoPermission)
	}
	return allow()
}

// CanSave evaluates saving an existing booking.
// Rules:
// - Booking must exist
// - Archived bookings are read-only
// - Viewer needs update permission
func CanSave(ctx GateContext) GuardResult {
	if ctx.IsNew {
		return deny(ReasonNotSaved)
	}
	if ctx.Status == model.StatusArchived {
		return deny(ReasonArchived)
	}
	if !ctx.can(permissions.ActionUpdate) {
		return deny(ReasonNoPermission)
	}
	return allow()
}

// CanReserve evaluates DRAFT → RESERVED.
// Rules:
// - Booking must exist and be a draft
// - Viewer needs update permission
// - Booking must have assets, none unavailable or already booked
func CanReserve(ctx GateContext) GuardResult {
	if ctx.IsNew {
		return deny(ReasonNotSaved)
	}
	if ctx.Status != model.StatusDraft {
		return statusDenied(ctx.Status)
	}
	if !ctx.can(permissions.ActionUpdate) {
		return deny(ReasonNoPermission)
	}
	if !ctx.Flags.HasAssets {
		return deny(ReasonNoAssets)
	}
	if ctx.Flags.HasUnavailableAssets {
		return deny(ReasonUnavailableAssets)
	}
	if ctx.Flags.HasAlreadyBookedAssets {
		return deny(ReasonAlreadyBooked)
	}
	return allow()
}

// CanCheckOut evaluates RESERVED → ONGOING.
// Rules:
// - Booking must be reserved
// - Viewer needs checkout permission
// - Booking must have assets, none unavailable, checked out elsewhere or in custody
func CanCheckOut(ctx GateContext) GuardResult {
	if ctx.IsNew {
		return deny(ReasonNotSaved)
	}
	if ctx.Status != model.StatusReserved {
		return statusDenied(ctx.Status)
	}
	if !ctx.can(permissions.ActionCheckout) {
		return deny(ReasonNoPermission)
	}
	if !ctx.Flags.HasAssets {
		return deny(ReasonNoAssets)
	}
	if ctx.Flags.HasUnavailableAssets {
		return deny(ReasonUnavailableAssets)
	}
	if ctx.Flags.HasCheckedOutAssets {
		return deny(ReasonCheckedOutAssets)
	}
	if ctx.Flags.HasAssetsInCustody {
		return deny(ReasonAssetsInCustody)
	}
	return allow()
}

// CanCheckIn evaluates ONGOING/OVERDUE → COMPLETED.
func CanCheckIn(ctx GateContext) GuardResult {
	if ctx.IsNew {
		return deny(ReasonNotSaved)
	}
	if ctx.Status != model.StatusOngoing && ctx.Status != model.StatusOverdue {
		return deny(fmt.Sprintf(reasonCheckInStateFormat, ctx.Status))
	}
	if !ctx.can(permissions.ActionCheckin) {
		return deny(ReasonNoPermission)
	}
	return allow()
}

// CanCancel evaluates cancelling from any non-terminal state.
func CanCancel(ctx GateContext) GuardResult {
	if ctx.IsNew {
		return deny(ReasonNotSaved)
	}
	if ctx.Status.IsTerminal() || !ctx.Status.IsValid() {
		return statusDenied(ctx.Status)
	}
	if !ctx.can(permissions.ActionCancel) {
		return deny(ReasonNoPermission)
	}
	return allow()
}

// CanArchive evaluates archiving a completed or cancelled booking.
func CanArchive(ctx GateContext) GuardResult {
	if ctx.IsNew {
		return deny(ReasonNotSaved)
	}
	if ctx.Status != model.StatusCompleted && ctx.Status != model.StatusCancelled {
		return statusDenied(ctx.Status)
	}
	if !ctx.can(permissions.ActionArchive) {
		return deny(ReasonNoPermission)
	}
	return allow()
}

// CanScan evaluates adding assets by scanning. Assets are editable only while
// the booking is a draft or reserved.
func CanScan(ctx GateContext) GuardResult {
	if ctx.IsNew {
		return deny(ReasonNotSaved)
	}
	if ctx.Status != model.StatusDraft && ctx.Status != model.StatusReserved {
		return statusDenied(ctx.Status)
	}
	if !ctx.can(permissions.ActionUpdate) {
		return deny(ReasonNoPermission)
	}
	return allow()
}

// CanExportCalendar evaluates the "add to calendar" download.
func CanExportCalendar(ctx GateContext) GuardResult {
	if ctx.IsNew {
		return deny(ReasonNotSaved)
	}
	switch ctx.Status {
	case model.StatusReserved, model.StatusOngoing, model.StatusOverdue:
	default:
		return deny(ReasonCalendarNotReady)
	}
	if !ctx.can(permissions.ActionRead) {
		return deny(ReasonNoPermission)
	}
	return allow()
}

// CanSeeCustodian reports whether the viewer may see who the custodian is.
// Custodians always see themselves.
func CanSeeCustodian(ctx GateContext) bool {
	return ctx.ViewerIsCustodian || ctx.can(permissions.ActionReadCustody)
}

// GateFor picks the guard for a submission intent. A save of a booking that
// does not exist yet is a creation.
func GateFor(intent model.Intent, ctx GateContext) (GuardResult, error) {
	switch intent {
	case model.IntentCreate:
		return CanCreate(ctx), nil
	case model.IntentSave:
		if ctx.IsNew {
			return CanCreate(ctx), nil
		}
		return CanSave(ctx), nil
	case model.IntentReserve:
		return CanReserve(ctx), nil
	case model.IntentScan:
		return CanScan(ctx), nil
	case model.IntentCheckOut:
		return CanCheckOut(ctx), nil
	case model.IntentCheckIn:
		return CanCheckIn(ctx), nil
	case model.IntentCancel:
		return CanCancel(ctx), nil
	case model.IntentArchive:
		return CanArchive(ctx), nil
	default:
		return GuardResult{}, fmt.Errorf("%w: %q", bookingformerrors.ErrUnknownIntent, intent)
	}
}
