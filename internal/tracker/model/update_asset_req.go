package model

import "strings"

// UpdateAssetReq carries optional field updates; empty strings are ignored.
type UpdateAssetReq struct {
	Name         string `json:"name" validate:"omitempty,min=1,max=200"`
	Serial       string `json:"serial" validate:"omitempty,min=1,max=100"`
	DepartmentID string `json:"department_id" validate:"omitempty,len=24,hexadecimal"`
	Department   string `json:"department" validate:"omitempty,max=200"`
	LocationID   string `json:"location_id" validate:"omitempty,len=24,hexadecimal"`
	Status       string `json:"status" validate:"omitempty,max=50"`
}

func (r *UpdateAssetReq) Validate() error {
	r.Name = strings.TrimSpace(r.Name)
	r.Serial = strings.TrimSpace(r.Serial)
	r.Department = strings.TrimSpace(r.Department)
	r.Status = strings.TrimSpace(r.Status)

	if err := GetValidator().Struct(r); err != nil {
		return FormatValidationError(err)
	}
	if r.Status != "" && !validAssetStatus(r.Status) {
		return &ErrorDetail{Code: "bad_request", Message: "invalid asset status: " + r.Status}
	}
	return nil
}

// InstallAssetReq installs an asset into a parent and/or location. Both are
// optional; with neither given the asset is relocated to its department
// warehouse.
type InstallAssetReq struct {
	ParentAssetID string `json:"parent_asset_id" validate:"omitempty,len=24,hexadecimal"`
	LocationID    string `json:"location_id" validate:"omitempty,len=24,hexadecimal"`
	Details       string `json:"details" validate:"omitempty,max=500"`
}

func (r *InstallAssetReq) Validate() error {
	r.Details = strings.TrimSpace(r.Details)
	if err := GetValidator().Struct(r); err != nil {
		return FormatValidationError(err)
	}
	return nil
}
