package model

import "go.mongodb.org/mongo-driver/bson/primitive"

// Actor is the resolved identity of the caller. It is supplied per request
// by the transport layer and never persisted here.
type Actor struct {
	ID                 string
	Role               string
	BranchID           primitive.ObjectID
	DepartmentID       primitive.ObjectID
	ManagedDepartments []primitive.ObjectID
	// Department is the legacy free-text department field carried by
	// accounts that predate department ids.
	Department        string
	CustomPermissions []CustomPermission
}

// CustomPermission is a per-user override on top of role defaults.
// A nil action pointer inherits the role default.
type CustomPermission struct {
	Resource string            `json:"resource" bson:"resource"`
	Actions  PermissionActions `json:"actions" bson:"actions"`
}

type PermissionActions struct {
	View   *bool `json:"view,omitempty" bson:"view,omitempty"`
	Create *bool `json:"create,omitempty" bson:"create,omitempty"`
	Edit   *bool `json:"edit,omitempty" bson:"edit,omitempty"`
	Delete *bool `json:"delete,omitempty" bson:"delete,omitempty"`
}

// DepartmentIDs returns the actor's own department plus managed departments,
// deduplicated, zero ids skipped.
func (a *Actor) DepartmentIDs() []primitive.ObjectID {
	seen := make(map[primitive.ObjectID]bool)
	var ids []primitive.ObjectID
	if !a.DepartmentID.IsZero() {
		seen[a.DepartmentID] = true
		ids = append(ids, a.DepartmentID)
	}
	for _, id := range a.ManagedDepartments {
		if id.IsZero() || seen[id] {
			continue
		}
		seen[id] = true
		ids = append(ids, id)
	}
	return ids
}

// OwnsDepartment reports whether the given department falls under the actor's
// own or managed departments, or matches the legacy department string.
func (a *Actor) OwnsDepartment(departmentID primitive.ObjectID, legacyName string) bool {
	for _, id := range a.DepartmentIDs() {
		if !departmentID.IsZero() && id == departmentID {
			return true
		}
	}
	if a.DepartmentID.IsZero() && a.Department != "" && legacyName != "" {
		return a.Department == legacyName
	}
	return false
}
