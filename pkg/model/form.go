package model

import "time"

// BookingForm holds the raw textual values posted by the booking form.
type BookingForm struct {
	ID          string   `json:"id,omitempty"`
	Name        string   `json:"name"`
	Description string   `json:"description,omitempty"`
	Custodian   string   `json:"custodian"`
	StartDate   string   `json:"startDate"`
	EndDate     string   `json:"endDate"`
	AssetIDs    []string `json:"assetIds,omitempty"`
}

// BookingInput is a BookingForm after a schema accepted it. Fields outside the
// schema's rule set keep their zero value.
type BookingInput struct {
	ID          string     `json:"id,omitempty"`
	Name        string     `json:"name"`
	Description string     `json:"description,omitempty"`
	Custodian   *Custodian `json:"custodian,omitempty"`
	StartDate   *time.Time `json:"startDate,omitempty"`
	EndDate     *time.Time `json:"endDate,omitempty"`
	AssetIDs    []string   `json:"assetIds,omitempty"`
}

// Hints carries caller-side context used when interpreting form values.
type Hints struct {
	TimeZone string `json:"timeZone,omitempty"`
}

// Viewer is the authenticated user looking at or submitting the form.
type Viewer struct {
	UserID         string `json:"userId"`
	OrganizationID string `json:"organizationId"`
	Roles          []Role `json:"roles"`
}

type Role string

const (
	RoleOwner       Role = "OWNER"
	RoleAdmin       Role = "ADMIN"
	RoleBase        Role = "BASE"
	RoleSelfService Role = "SELF_SERVICE"
)

type EndDateAdjustment struct {
	StartDate string `json:"startDate"`
	EndDate   string `json:"endDate"`
	IsNew     bool   `json:"isNew"`
}

type EndDateResult struct {
	EndDate string `json:"endDate"`
	Changed bool   `json:"changed"`
}
