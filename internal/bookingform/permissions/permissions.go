// Package permissions answers whether a set of roles may perform an action on
// an entity. Policy definitions live with the caller; DefaultRoleTable is the
// fallback used when none is configured.
package permissions

import (
	"strings"

	"assetbook/pkg/model"
)

type Entity string

const (
	EntityBooking Entity = "booking"
)

type Action string

const (
	ActionRead     Action = "read"
	ActionCreate   Action = "create"
	ActionUpdate   Action = "update"
	ActionCheckout Action = "checkout"
	ActionCheckin  Action = "checkin"
	ActionCancel   Action = "cancel"
	ActionArchive  Action = "archive"
	// ActionReadCustody covers seeing who holds a booking's assets.
	ActionReadCustody Action = "read-custody"
)

type Checker interface {
	CanPerform(roles []model.Role, entity Entity, action Action) bool
}

// CheckerFunc adapts a plain predicate to Checker.
type CheckerFunc func(roles []model.Role, entity Entity, action Action) bool

func (f CheckerFunc) CanPerform(roles []model.Role, entity Entity, action Action) bool {
	return f(roles, entity, action)
}

// RoleTable grants actions per role and entity. A role set may perform an
// action when any one of its roles is granted it.
type RoleTable map[model.Role]map[Entity][]Action

func (t RoleTable) CanPerform(roles []model.Role, entity Entity, action Action) bool {
	for _, role := range roles {
		for _, granted := range t[role][entity] {
			if granted == action {
				return true
			}
		}
	}
	return false
}

func DefaultRoleTable() RoleTable {
	everything := []Action{
		ActionRead,
		ActionCreate,
		ActionUpdate,
		ActionCheckout,
		ActionCheckin,
		ActionCancel,
		ActionArchive,
		ActionReadCustody,
	}

	return RoleTable{
		model.RoleOwner: {EntityBooking: everything},
		model.RoleAdmin: {EntityBooking: everything},
		model.RoleBase: {EntityBooking: {
			ActionRead,
			ActionCreate,
			ActionUpdate,
			ActionCancel,
		}},
		model.RoleSelfService: {EntityBooking: {
			ActionRead,
			ActionCreate,
			ActionUpdate,
			ActionCheckout,
			ActionCheckin,
			ActionCancel,
		}},
	}
}

// ParseRoles turns header values into roles, dropping blanks and unknown names.
// Names are matched case-insensitively.
func ParseRoles(values []string) []model.Role {
	var roles []model.Role
	for _, v := range values {
		role := model.Role(strings.ToUpper(strings.TrimSpace(v)))
		switch role {
		case model.RoleOwner, model.RoleAdmin, model.RoleBase, model.RoleSelfService:
			roles = append(roles, role)
		}
	}
	return roles
}
