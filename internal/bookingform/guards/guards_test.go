package guards

import (
	"errors"
	"testing"

	bookingformerrors "assetbook/internal/bookingform/errors"
	"assetbook/internal/bookingform/permissions"
	"assetbook/pkg/model"
)

var (
	admin       = []model.Role{model.RoleAdmin}
	base        = []model.Role{model.RoleBase}
	selfService = []model.Role{model.RoleSelfService}

	readyFlags = model.BookingFlags{HasAssets: true}
)

func gate(status model.BookingStatus, flags model.BookingFlags, roles []model.Role) GateContext {
	return GateContext{
		BookingID:   "bk_1",
		Status:      status,
		Flags:       flags,
		Roles:       roles,
		Permissions: permissions.DefaultRoleTable(),
	}
}

type guardCase struct {
	name        string
	ctx         GateContext
	wantAllowed bool
	wantReason  string
}

func runGuardCases(t *testing.T, guard func(GateContext) GuardResult, tests []guardCase) {
	t.Helper()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := guard(tt.ctx)
			if result.Allowed != tt.wantAllowed {
				t.Errorf("Allowed = %v, want %v", result.Allowed, tt.wantAllowed)
			}
			if !tt.wantAllowed && result.Reason != tt.wantReason {
				t.Errorf("Reason = %q, want %q", result.Reason, tt.wantReason)
			}
			if tt.wantAllowed && result.Error() != nil {
				t.Errorf("Error() = %v, want nil", result.Error())
			}
		})
	}
}

func TestCanReserve(t *testing.T) {
	runGuardCases(t, CanReserve, []guardCase{
		{
			name:        "draft with assets",
			ctx:         gate(model.StatusDraft, readyFlags, admin),
			wantAllowed: true,
		},
		{
			name:       "new booking",
			ctx:        GateContext{IsNew: true, Roles: admin, Permissions: permissions.DefaultRoleTable()},
			wantReason: ReasonNotSaved,
		},
		{
			name:       "already reserved",
			ctx:        gate(model.StatusReserved, readyFlags, admin),
			wantReason: "Not possible for a RESERVED booking",
		},
		{
			name:       "no assets",
			ctx:        gate(model.StatusDraft, model.BookingFlags{}, admin),
			wantReason: ReasonNoAssets,
		},
		{
			name:       "unavailable assets",
			ctx:        gate(model.StatusDraft, model.BookingFlags{HasAssets: true, HasUnavailableAssets: true}, admin),
			wantReason: ReasonUnavailableAssets,
		},
		{
			name:       "already booked assets",
			ctx:        gate(model.StatusDraft, model.BookingFlags{HasAssets: true, HasAlreadyBookedAssets: true}, admin),
			wantReason: ReasonAlreadyBooked,
		},
		{
			name:       "no permission",
			ctx:        gate(model.StatusDraft, readyFlags, nil),
			wantReason: ReasonNoPermission,
		},
	})
}

func TestCanCheckOut(t *testing.T) {
	runGuardCases(t, CanCheckOut, []guardCase{
		{
			name:        "reserved self service",
			ctx:         gate(model.StatusReserved, readyFlags, selfService),
			wantAllowed: true,
		},
		{
			name:       "base role",
			ctx:        gate(model.StatusReserved, readyFlags, base),
			wantReason: ReasonNoPermission,
		},
		{
			name:       "draft",
			ctx:        gate(model.StatusDraft, readyFlags, admin),
			wantReason: "Not possible for a DRAFT booking",
		},
		{
			name:       "checked out elsewhere",
			ctx:        gate(model.StatusReserved, model.BookingFlags{HasAssets: true, HasCheckedOutAssets: true}, admin),
			wantReason: ReasonCheckedOutAssets,
		},
		{
			name:       "in custody",
			ctx:        gate(model.StatusReserved, model.BookingFlags{HasAssets: true, HasAssetsInCustody: true}, admin),
			wantReason: ReasonAssetsInCustody,
		},
		{
			name:       "unavailable",
			ctx:        gate(model.StatusReserved, model.BookingFlags{HasAssets: true, HasUnavailableAssets: true}, admin),
			wantReason: ReasonUnavailableAssets,
		},
		{
			name:       "empty",
			ctx:        gate(model.StatusReserved, model.BookingFlags{}, admin),
			wantReason: ReasonNoAssets,
		},
	})
}

func TestCanCheckIn(t *testing.T) {
	runGuardCases(t, CanCheckIn, []guardCase{
		{name: "ongoing", ctx: gate(model.StatusOngoing, readyFlags, admin), wantAllowed: true},
		{name: "overdue", ctx: gate(model.StatusOverdue, readyFlags, selfService), wantAllowed: true},
		{
			name:       "reserved",
			ctx:        gate(model.StatusReserved, readyFlags, admin),
			wantReason: "Only ongoing or overdue bookings can be checked in (current status: RESERVED)",
		},
		{name: "base role", ctx: gate(model.StatusOngoing, readyFlags, base), wantReason: ReasonNoPermission},
	})
}

func TestCanCancel(t *testing.T) {
	var tests []guardCase
	for _, status := range []model.BookingStatus{model.StatusDraft, model.StatusReserved, model.StatusOngoing, model.StatusOverdue} {
		tests = append(tests, guardCase{name: string(status), ctx: gate(status, readyFlags, base), wantAllowed: true})
	}
	for _, status := range []model.BookingStatus{model.StatusCompleted, model.StatusCancelled, model.StatusArchived} {
		tests = append(tests, guardCase{
			name:       string(status),
			ctx:        gate(status, readyFlags, admin),
			wantReason: "Not possible for a " + string(status) + " booking",
		})
	}
	tests = append(tests, guardCase{name: "no roles", ctx: gate(model.StatusDraft, readyFlags, nil), wantReason: ReasonNoPermission})

	runGuardCases(t, CanCancel, tests)
}

func TestCanArchive(t *testing.T) {
	runGuardCases(t, CanArchive, []guardCase{
		{name: "completed", ctx: gate(model.StatusCompleted, readyFlags, admin), wantAllowed: true},
		{name: "cancelled", ctx: gate(model.StatusCancelled, readyFlags, admin), wantAllowed: true},
		{name: "ongoing", ctx: gate(model.StatusOngoing, readyFlags, admin), wantReason: "Not possible for a ONGOING booking"},
		{name: "self service", ctx: gate(model.StatusCompleted, readyFlags, selfService), wantReason: ReasonNoPermission},
	})
}

func TestCanSave(t *testing.T) {
	runGuardCases(t, CanSave, []guardCase{
		{name: "draft", ctx: gate(model.StatusDraft, model.BookingFlags{}, base), wantAllowed: true},
		{name: "completed", ctx: gate(model.StatusCompleted, model.BookingFlags{}, base), wantAllowed: true},
		{name: "archived", ctx: gate(model.StatusArchived, model.BookingFlags{}, admin), wantReason: ReasonArchived},
		{name: "new", ctx: GateContext{IsNew: true, Roles: admin, Permissions: permissions.DefaultRoleTable()}, wantReason: ReasonNotSaved},
	})
}

func TestCanScan(t *testing.T) {
	runGuardCases(t, CanScan, []guardCase{
		{name: "draft", ctx: gate(model.StatusDraft, model.BookingFlags{}, base), wantAllowed: true},
		{name: "reserved", ctx: gate(model.StatusReserved, model.BookingFlags{}, base), wantAllowed: true},
		{name: "ongoing", ctx: gate(model.StatusOngoing, model.BookingFlags{}, base), wantReason: "Not possible for a ONGOING booking"},
	})
}

func TestCanExportCalendar(t *testing.T) {
	runGuardCases(t, CanExportCalendar, []guardCase{
		{name: "reserved", ctx: gate(model.StatusReserved, readyFlags, base), wantAllowed: true},
		{name: "overdue", ctx: gate(model.StatusOverdue, readyFlags, base), wantAllowed: true},
		{name: "draft", ctx: gate(model.StatusDraft, readyFlags, admin), wantReason: ReasonCalendarNotReady},
		{name: "cancelled", ctx: gate(model.StatusCancelled, readyFlags, admin), wantReason: ReasonCalendarNotReady},
		{name: "no roles", ctx: gate(model.StatusReserved, readyFlags, nil), wantReason: ReasonNoPermission},
	})
}

func TestGateFor(t *testing.T) {
	existing := gate(model.StatusDraft, readyFlags, admin)
	fresh := GateContext{IsNew: true, Roles: base, Permissions: permissions.DefaultRoleTable()}

	tests := []struct {
		name        string
		intent      model.Intent
		ctx         GateContext
		wantAllowed bool
	}{
		{"create", model.IntentCreate, fresh, true},
		{"save of new booking is a creation", model.IntentSave, fresh, true},
		{"save existing", model.IntentSave, existing, true},
		{"create existing", model.IntentCreate, existing, false},
		{"reserve", model.IntentReserve, existing, true},
		{"scan", model.IntentScan, existing, true},
		{"check out draft", model.IntentCheckOut, existing, false},
		{"check in draft", model.IntentCheckIn, existing, false},
		{"cancel", model.IntentCancel, existing, true},
		{"archive draft", model.IntentArchive, existing, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := GateFor(tt.intent, tt.ctx)
			if err != nil {
				t.Fatalf("GateFor() error = %v", err)
			}
			if result.Allowed != tt.wantAllowed {
				t.Errorf("Allowed = %v, want %v (reason %q)", result.Allowed, tt.wantAllowed, result.Reason)
			}
		})
	}

	_, err := GateFor(model.Intent("teleport"), existing)
	if !errors.Is(err, bookingformerrors.ErrUnknownIntent) {
		t.Errorf("GateFor(teleport) error = %v, want ErrUnknownIntent", err)
	}
}

func TestNewGateContext(t *testing.T) {
	userID := "usr_1"
	b := &model.Booking{
		ID:        "bk_9",
		Status:    model.StatusOngoing,
		Flags:     readyFlags,
		Custodian: &model.Custodian{ID: "tm_1", Name: "Jane", UserID: &userID},
	}

	ctx := NewGateContext(b, model.Viewer{UserID: "usr_1", Roles: base}, nil)
	if ctx.IsNew || ctx.BookingID != "bk_9" || ctx.Status != model.StatusOngoing {
		t.Errorf("unexpected context %+v", ctx)
	}
	if !ctx.ViewerIsCustodian {
		t.Error("ViewerIsCustodian = false, want true")
	}
	if ctx.Permissions == nil {
		t.Error("nil checker should fall back to the default role table")
	}

	fresh := NewGateContext(nil, model.Viewer{UserID: "usr_1"}, nil)
	if !fresh.IsNew || fresh.NameChangeOnly() {
		t.Errorf("unexpected creation context %+v", fresh)
	}
}
