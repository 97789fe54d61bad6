package model

import (
	"strings"
	"time"
)

type CreateAssignmentReq struct {
	AssetID string `json:"asset_id" validate:"required,len=24,hexadecimal"`
	// At least one of UserID / AssignedTo must be present. Both is allowed
	// (an account plus a display name), neither is not.
	UserID     string `json:"user_id" validate:"omitempty,len=24,hexadecimal"`
	AssignedTo string `json:"assigned_to" validate:"omitempty,max=200"`
	LocationID string `json:"location_id" validate:"omitempty,len=24,hexadecimal"`
	Notes      string `json:"notes" validate:"omitempty,max=500"`
}

func (r *CreateAssignmentReq) Validate() error {
	r.AssignedTo = strings.TrimSpace(r.AssignedTo)
	r.Notes = strings.TrimSpace(r.Notes)

	if err := GetValidator().Struct(r); err != nil {
		return FormatValidationError(err)
	}
	if r.UserID == "" && r.AssignedTo == "" {
		return &ErrorDetail{Code: "bad_request", Message: "either user_id or assigned_to is required"}
	}
	return nil
}

type ReturnAssignmentReq struct {
	ReturnedDate *time.Time `json:"returned_date"`
	Notes        string     `json:"notes" validate:"omitempty,max=500"`
}

func (r *ReturnAssignmentReq) Validate() error {
	r.Notes = strings.TrimSpace(r.Notes)
	if err := GetValidator().Struct(r); err != nil {
		return FormatValidationError(err)
	}
	return nil
}

type BulkUpdateRecipientReq struct {
	AssignedTo    string `json:"assigned_to" validate:"required,min=1,max=200"`
	NewAssignedTo string `json:"new_assigned_to" validate:"required,min=1,max=200"`
}

func (r *BulkUpdateRecipientReq) Validate() error {
	r.AssignedTo = strings.TrimSpace(r.AssignedTo)
	r.NewAssignedTo = strings.TrimSpace(r.NewAssignedTo)
	if err := GetValidator().Struct(r); err != nil {
		return FormatValidationError(err)
	}
	return nil
}

type BulkDeleteRecipientReq struct {
	AssignedTo string `json:"assigned_to" validate:"required,min=1,max=200"`
}

func (r *BulkDeleteRecipientReq) Validate() error {
	r.AssignedTo = strings.TrimSpace(r.AssignedTo)
	if err := GetValidator().Struct(r); err != nil {
		return FormatValidationError(err)
	}
	return nil
}
