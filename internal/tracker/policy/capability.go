package policy

import "assettrack/internal/tracker/model"

// Capability is a fixed permission unit, resource kind dot action.
type Capability string

const (
	CapAssetView   Capability = "asset.view"
	CapAssetCreate Capability = "asset.create"
	CapAssetEdit   Capability = "asset.edit"
	CapAssetDelete Capability = "asset.delete"

	CapAssignmentView   Capability = "assignment.view"
	CapAssignmentCreate Capability = "assignment.create"
	CapAssignmentEdit   Capability = "assignment.edit"
	CapAssignmentDelete Capability = "assignment.delete"

	CapTicketView   Capability = "ticket.view"
	CapTicketCreate Capability = "ticket.create"
	CapTicketEdit   Capability = "ticket.edit"
	CapTicketDelete Capability = "ticket.delete"

	CapTransferView   Capability = "transfer.view"
	CapTransferCreate Capability = "transfer.create"
	CapTransferEdit   Capability = "transfer.edit"
	CapTransferDelete Capability = "transfer.delete"
)

// CapabilitySet is resolved once per request from role defaults plus the
// actor's per-user overrides, then checked in O(1).
type CapabilitySet map[Capability]bool

func (s CapabilitySet) Has(c Capability) bool {
	return s[c]
}

var allCapabilities = []Capability{
	CapAssetView, CapAssetCreate, CapAssetEdit, CapAssetDelete,
	CapAssignmentView, CapAssignmentCreate, CapAssignmentEdit, CapAssignmentDelete,
	CapTicketView, CapTicketCreate, CapTicketEdit, CapTicketDelete,
	CapTransferView, CapTransferCreate, CapTransferEdit, CapTransferDelete,
}

var viewCapabilities = []Capability{
	CapAssetView, CapAssignmentView, CapTicketView, CapTransferView,
}

var roleDefaults = map[string][]Capability{
	model.RoleSuperuser:   allCapabilities,
	model.RoleSystemAdmin: allCapabilities,
	model.RoleAdmin:       allCapabilities,
	model.RoleManager: {
		CapAssetView, CapAssetCreate, CapAssetEdit,
		CapAssignmentView, CapAssignmentCreate, CapAssignmentEdit, CapAssignmentDelete,
		CapTicketView, CapTicketCreate, CapTicketEdit, CapTicketDelete,
		CapTransferView, CapTransferCreate, CapTransferEdit, CapTransferDelete,
	},
	model.RoleSupervisor: {
		CapAssetView, CapAssetCreate, CapAssetEdit,
		CapAssignmentView, CapAssignmentCreate, CapAssignmentEdit, CapAssignmentDelete,
		CapTicketView, CapTicketCreate, CapTicketEdit, CapTicketDelete,
		CapTransferView, CapTransferCreate, CapTransferEdit, CapTransferDelete,
	},
	model.RoleDeptAdmin: {
		CapAssetView, CapAssetCreate, CapAssetEdit,
		CapAssignmentView, CapAssignmentCreate, CapAssignmentEdit, CapAssignmentDelete,
		CapTicketView, CapTicketCreate, CapTicketEdit, CapTicketDelete,
		CapTransferView, CapTransferCreate, CapTransferEdit, CapTransferDelete,
	},
	model.RoleTechnician: {
		CapAssetView, CapAssetEdit,
		CapAssignmentView, CapAssignmentCreate, CapAssignmentEdit,
		CapTicketView, CapTicketCreate, CapTicketEdit,
		CapTransferView,
	},
	model.RoleUser: {
		CapAssetView,
		CapAssignmentView, CapAssignmentCreate, CapAssignmentEdit,
		CapTicketView, CapTicketCreate, CapTicketEdit,
		CapTransferView, CapTransferCreate, CapTransferEdit,
	},
	model.RoleAuditor: viewCapabilities,
}

// ResolveCapabilities computes the actor's effective capability set: role
// defaults first, then explicit per-user grants and revocations on top.
func ResolveCapabilities(actor *model.Actor) CapabilitySet {
	set := make(CapabilitySet)
	if actor == nil {
		return set
	}
	for _, c := range roleDefaults[actor.Role] {
		set[c] = true
	}
	for _, p := range actor.CustomPermissions {
		applyOverride(set, p.Resource, "view", p.Actions.View)
		applyOverride(set, p.Resource, "create", p.Actions.Create)
		applyOverride(set, p.Resource, "edit", p.Actions.Edit)
		applyOverride(set, p.Resource, "delete", p.Actions.Delete)
	}
	return set
}

func applyOverride(set CapabilitySet, resource, action string, v *bool) {
	if v == nil {
		return
	}
	c := Capability(resource + "." + action)
	if *v {
		set[c] = true
	} else {
		delete(set, c)
	}
}
