package model

import (
	"encoding/json"
	"time"
)

type BookingStatus string

const (
	StatusDraft     BookingStatus = "DRAFT"
	StatusReserved  BookingStatus = "RESERVED"
	StatusOngoing   BookingStatus = "ONGOING"
	StatusOverdue   BookingStatus = "OVERDUE"
	StatusCompleted BookingStatus = "COMPLETED"
	StatusCancelled BookingStatus = "CANCELLED"
	StatusArchived  BookingStatus = "ARCHIVED"
)

var AllStatuses = []BookingStatus{
	StatusDraft,
	StatusReserved,
	StatusOngoing,
	StatusOverdue,
	StatusCompleted,
	StatusCancelled,
	StatusArchived,
}

func (s BookingStatus) IsValid() bool {
	for _, known := range AllStatuses {
		if s == known {
			return true
		}
	}
	return false
}

// IsTerminal reports whether no further lifecycle transition other than archiving applies.
func (s BookingStatus) IsTerminal() bool {
	return s == StatusCompleted || s == StatusCancelled || s == StatusArchived
}

// IsInProgress covers the reserved-or-later states where only name, description
// and custodian may still change.
func (s BookingStatus) IsInProgress() bool {
	return s == StatusReserved || s == StatusOngoing || s == StatusOverdue
}

// BookingFlags describe the asset set's fitness for lifecycle transitions.
// They are computed by the owning system and stored alongside the booking.
type BookingFlags struct {
	HasAssets              bool `json:"hasAssets" bson:"has_assets"`
	HasUnavailableAssets   bool `json:"hasUnavailableAssets" bson:"has_unavailable_assets"`
	HasCheckedOutAssets    bool `json:"hasCheckedOutAssets" bson:"has_checked_out_assets"`
	HasAlreadyBookedAssets bool `json:"hasAlreadyBookedAssets" bson:"has_already_booked_assets"`
	HasAssetsInCustody     bool `json:"hasAssetsInCustody" bson:"has_assets_in_custody"`
}

type Booking struct {
	ID          string        `json:"id,omitempty" bson:"_id,omitempty"`
	Name        string        `json:"name" bson:"name"`
	Description string        `json:"description,omitempty" bson:"description,omitempty"`
	Custodian   *Custodian    `json:"custodian,omitempty" bson:"custodian,omitempty"`
	StartDate   time.Time     `json:"startDate" bson:"start_date"`
	EndDate     time.Time     `json:"endDate" bson:"end_date"`
	Status      BookingStatus `json:"status" bson:"status"`
	AssetIDs    []string      `json:"assetIds,omitempty" bson:"asset_ids,omitempty"`
	Flags       BookingFlags  `json:"bookingFlags" bson:"flags"`
}

func (b *Booking) IsNew() bool {
	return b == nil || b.ID == ""
}

// Custodian references the person responsible for the booked assets. ID is the
// team member record; UserID is set only when that member has a login account.
type Custodian struct {
	ID     string  `json:"id" bson:"id"`
	Name   string  `json:"name" bson:"name"`
	UserID *string `json:"userId,omitempty" bson:"user_id,omitempty"`
}

// MarshalString renders the custodian the way the outgoing form field carries it.
func (c Custodian) MarshalString() (string, error) {
	data, err := json.Marshal(c)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// IsUser reports whether the custodian is linked to the given login account.
func (c Custodian) IsUser(userID string) bool {
	return userID != "" && c.UserID != nil && *c.UserID == userID
}

type TeamMember struct {
	ID     string  `json:"id" bson:"_id"`
	Name   string  `json:"name" bson:"name"`
	UserID *string `json:"userId,omitempty" bson:"user_id,omitempty"`
}

func (m TeamMember) Custodian() Custodian {
	return Custodian{ID: m.ID, Name: m.Name, UserID: m.UserID}
}
