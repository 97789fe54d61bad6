package model

import "strings"

type CreateTransferReq struct {
	AssetID        string `json:"asset_id" validate:"required,len=24,hexadecimal"`
	ToDepartmentID string `json:"to_department_id" validate:"omitempty,len=24,hexadecimal"`
	// ToBranchID defaults to the origin branch (intra-branch transfer).
	ToBranchID string `json:"to_branch_id" validate:"omitempty,len=24,hexadecimal"`
	Reason     string `json:"reason" validate:"omitempty,max=500"`
}

func (r *CreateTransferReq) Validate() error {
	r.Reason = strings.TrimSpace(r.Reason)
	if err := GetValidator().Struct(r); err != nil {
		return FormatValidationError(err)
	}
	return nil
}

// UpdateTransferReq edits a transfer while it is still Pending.
type UpdateTransferReq struct {
	ToDepartmentID string `json:"to_department_id" validate:"omitempty,len=24,hexadecimal"`
	ToBranchID     string `json:"to_branch_id" validate:"omitempty,len=24,hexadecimal"`
	Reason         string `json:"reason" validate:"omitempty,max=500"`
}

func (r *UpdateTransferReq) Validate() error {
	r.Reason = strings.TrimSpace(r.Reason)
	if err := GetValidator().Struct(r); err != nil {
		return FormatValidationError(err)
	}
	return nil
}

type RejectTransferReq struct {
	Reason string `json:"reason" validate:"required,min=1,max=500"`
}

func (r *RejectTransferReq) Validate() error {
	r.Reason = strings.TrimSpace(r.Reason)
	if err := GetValidator().Struct(r); err != nil {
		return FormatValidationError(err)
	}
	return nil
}
