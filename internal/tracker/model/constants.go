package model

// Roles
const (
	RoleSuperuser   = "superuser"
	RoleSystemAdmin = "system_admin"
	RoleAdmin       = "admin"
	RoleManager     = "manager"
	RoleTechnician  = "technician"
	RoleUser        = "user"
	RoleAuditor     = "auditor"

	// Legacy roles still present on older accounts.
	RoleSupervisor = "supervisor"
	RoleDeptAdmin  = "dept_admin"
)

// PrivilegedAssignRoles may assign assets outside their own department.
var PrivilegedAssignRoles = map[string]bool{
	RoleSuperuser:  true,
	RoleAdmin:      true,
	RoleManager:    true,
	RoleTechnician: true,
	RoleSupervisor: true,
	RoleDeptAdmin:  true,
}

// Asset statuses. The two spaced values are legacy wire strings and must
// stay exactly as persisted by the previous system.
const (
	AssetStatusActive          = "active"
	AssetStatusStorage         = "storage"
	AssetStatusInUse           = "in_use"
	AssetStatusAssigned        = "assigned"
	AssetStatusMaintenance     = "maintenance"
	AssetStatusRequestMaint    = "request maintenance"
	AssetStatusExternalService = "external service"
	AssetStatusRetired         = "retired"
	AssetStatusDisposed        = "disposed"
)

// ProtectedAssetStatuses must never be overwritten by location-driven logic.
var ProtectedAssetStatuses = map[string]bool{
	AssetStatusAssigned:     true,
	AssetStatusMaintenance:  true,
	AssetStatusRequestMaint: true,
	AssetStatusRetired:      true,
	AssetStatusDisposed:     true,
}

// AvailableAssetStatuses indicate an asset is not actually in anyone's hands;
// an "active" assignment row against one of these is stale.
var AvailableAssetStatuses = map[string]bool{
	AssetStatusActive:  true,
	AssetStatusStorage: true,
	"available":        true, // legacy value
}

// Assignment statuses
const (
	AssignmentStatusAssigned    = "assigned"
	AssignmentStatusMaintenance = "maintenance"
	AssignmentStatusReturned    = "returned"
)

// ActiveAssignmentStatuses count toward the one-active-assignment-per-asset rule.
var ActiveAssignmentStatuses = []string{AssignmentStatusAssigned, AssignmentStatusMaintenance}

// Maintenance ticket statuses
const (
	TicketStatusDraft           = "Draft"
	TicketStatusSent            = "Sent"
	TicketStatusAccepted        = "Accepted"
	TicketStatusInProgress      = "In Progress"
	TicketStatusPending         = "Pending"
	TicketStatusExternalService = "External Service"
	TicketStatusDone            = "Done"
	TicketStatusClosed          = "Closed"
	TicketStatusRejected        = "Rejected"
)

// Transfer statuses
const (
	TransferStatusPending         = "Pending"
	TransferStatusWaitingApproval = "WaitingApproval"
	TransferStatusInTransit       = "InTransit"
	TransferStatusCompleted       = "Completed"
	TransferStatusRejected        = "Rejected"
)

// Resource kinds for scope resolution and audit records
const (
	ResourceAsset      = "asset"
	ResourceAssignment = "assignment"
	ResourceTicket     = "ticket"
	ResourceTransfer   = "transfer"
)

// Activity log / audit actions
const (
	ActionCreate          = "create"
	ActionUpdate          = "update"
	ActionDelete          = "delete"
	ActionInstall         = "install"
	ActionDismantle       = "dismantle"
	ActionAssign          = "assign"
	ActionReturn          = "return"
	ActionAutoClose       = "auto_close"
	ActionStatusChange    = "status_change"
	ActionTransferSend    = "transfer_send"
	ActionTransferApprove = "transfer_approve"
	ActionTransferAccept  = "transfer_accept"
	ActionTransferReject  = "transfer_reject"
)

// MaxContainmentDepth bounds the ancestor walk when installing an asset
// into a parent. A chain deeper than this is treated as a cycle.
const MaxContainmentDepth = 16

// TicketNumberMaxRetries bounds the retry loop that absorbs duplicate-key
// races on day-scoped ticket numbers.
const TicketNumberMaxRetries = 5
