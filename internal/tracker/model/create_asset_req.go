package model

import "strings"

type CreateAssetReq struct {
	Name         string `json:"name" validate:"required,min=1,max=200"`
	Serial       string `json:"serial" validate:"required,min=1,max=100"`
	DepartmentID string `json:"department_id" validate:"omitempty,len=24,hexadecimal"`
	Department   string `json:"department" validate:"omitempty,max=200"`
	BranchID     string `json:"branch_id" validate:"omitempty,len=24,hexadecimal"`
	LocationID   string `json:"location_id" validate:"omitempty,len=24,hexadecimal"`
	Status       string `json:"status" validate:"omitempty,max=50"`
}

func (r *CreateAssetReq) Validate() error {
	r.Name = strings.TrimSpace(r.Name)
	r.Serial = strings.TrimSpace(r.Serial)
	r.Department = strings.TrimSpace(r.Department)
	r.Status = strings.TrimSpace(r.Status)

	if err := GetValidator().Struct(r); err != nil {
		return FormatValidationError(err)
	}

	if r.Status == "" {
		r.Status = AssetStatusActive
	}
	if !validAssetStatus(r.Status) {
		return &ErrorDetail{Code: "bad_request", Message: "invalid asset status: " + r.Status}
	}
	return nil
}

func validAssetStatus(s string) bool {
	switch s {
	case AssetStatusActive, AssetStatusStorage, AssetStatusInUse, AssetStatusAssigned,
		AssetStatusMaintenance, AssetStatusRequestMaint, AssetStatusExternalService,
		AssetStatusRetired, AssetStatusDisposed:
		return true
	}
	return false
}
