package model

import "strings"

type CreateTicketReq struct {
	AssetID     string `json:"asset_id" validate:"required,len=24,hexadecimal"`
	Description string `json:"description" validate:"omitempty,max=1000"`
	// Send submits the ticket immediately instead of leaving it in Draft.
	Send bool `json:"send"`
}

func (r *CreateTicketReq) Validate() error {
	r.Description = strings.TrimSpace(r.Description)
	if err := GetValidator().Struct(r); err != nil {
		return FormatValidationError(err)
	}
	return nil
}

type AcceptTicketReq struct {
	Technician string `json:"technician" validate:"required,min=1,max=100"`
	Type       string `json:"type" validate:"required,min=1,max=100"`
}

func (r *AcceptTicketReq) Validate() error {
	r.Technician = strings.TrimSpace(r.Technician)
	r.Type = strings.TrimSpace(r.Type)
	if err := GetValidator().Struct(r); err != nil {
		return FormatValidationError(err)
	}
	return nil
}

type RejectTicketReq struct {
	Reason string `json:"reason" validate:"required,min=1,max=500"`
}

func (r *RejectTicketReq) Validate() error {
	r.Reason = strings.TrimSpace(r.Reason)
	if err := GetValidator().Struct(r); err != nil {
		return FormatValidationError(err)
	}
	return nil
}

// UpdateWorkReq moves an In Progress ticket to Pending, External Service or
// Done. Pending requires a reason; Done requires confirmation.
type UpdateWorkReq struct {
	Status       string        `json:"status" validate:"required"`
	Reason       string        `json:"reason" validate:"omitempty,max=500"`
	Confirmed    bool          `json:"confirmed"`
	SuppliesUsed []SupplyUsage `json:"supplies_used" validate:"omitempty,dive"`
	AfterPhotos  []string      `json:"after_photos" validate:"omitempty,dive,max=500"`
}

func (r *UpdateWorkReq) Validate() error {
	r.Status = strings.TrimSpace(r.Status)
	r.Reason = strings.TrimSpace(r.Reason)
	if err := GetValidator().Struct(r); err != nil {
		return FormatValidationError(err)
	}
	switch r.Status {
	case TicketStatusPending:
		if r.Reason == "" {
			return &ErrorDetail{Code: "bad_request", Message: "reason is required when moving a ticket to Pending"}
		}
	case TicketStatusExternalService:
	case TicketStatusDone:
		if !r.Confirmed {
			return &ErrorDetail{Code: "bad_request", Message: "completion must be confirmed"}
		}
	default:
		return &ErrorDetail{Code: "bad_request", Message: "status must be one of Pending, External Service, Done"}
	}
	return nil
}

type AddNoteReq struct {
	Text string `json:"text" validate:"required,min=1,max=1000"`
}

func (r *AddNoteReq) Validate() error {
	r.Text = strings.TrimSpace(r.Text)
	if err := GetValidator().Struct(r); err != nil {
		return FormatValidationError(err)
	}
	return nil
}
