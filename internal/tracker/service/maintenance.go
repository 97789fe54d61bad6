package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"assettrack/internal/tracker/model"
	"assettrack/internal/tracker/policy"
	"assettrack/internal/tracker/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Ticket status graph:
//
//	Draft/Sent            -> Accepted (manager assigns technician+type) | Rejected (reason)
//	Accepted/Pending/
//	Draft/Sent            -> In Progress (admin, assigned technician, or any technician if unassigned)
//	In Progress           -> Pending (reason) | External Service | Done (confirmed)
//	Done                  -> Closed (admin, manager, or the requester)
//
// Every transition appends to History; the history is the audit trail of
// record for tickets.

func (s *Service) CreateTicket(ctx context.Context, actor *model.Actor, req *model.CreateTicketReq) (*model.MaintenanceRecord, error) {
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrValidation, err.Error())
	}

	assetID, err := parseID(req.AssetID)
	if err != nil {
		return nil, err
	}
	asset, err := s.Store.GetAsset(ctx, assetID)
	if err != nil {
		return nil, err
	}
	if asset == nil {
		return nil, fmt.Errorf("%w: asset %s", ErrNotFound, assetID.Hex())
	}

	scope := policy.ResolveScope(actor, model.ResourceAsset, primitive.NilObjectID)
	if !scope.Allows(asset.BranchID, asset.DepartmentID, asset.Department) {
		return nil, fmt.Errorf("%w: asset is outside your branch or department", ErrForbidden)
	}

	status := model.TicketStatusDraft
	if req.Send {
		status = model.TicketStatusSent
	}
	ticket := &model.MaintenanceRecord{
		AssetID:            assetID,
		RequestedBy:        actor.ID,
		Description:        req.Description,
		Status:             status,
		AssignedDepartment: asset.DepartmentID,
		BranchID:           asset.BranchID,
	}
	appendTicketHistory(ticket, status, actor.ID, "ticket created")

	if err := s.createTicketWithNumber(ctx, ticket); err != nil {
		return nil, err
	}

	s.audit(ctx, actor, model.ActionCreate, model.ResourceTicket, ticket.ID, ticket.TicketNumber, req.Description, ticket.BranchID, ticket.AssignedDepartment)
	return ticket, nil
}

// createTicketWithNumber generates MT-YYYYMMDD-NNN from today's ticket count
// and inserts. The counter is optimistic: a concurrent create can land on
// the same number, the unique index rejects it, and we recount and retry a
// bounded number of times before giving up.
func (s *Service) createTicketWithNumber(ctx context.Context, ticket *model.MaintenanceRecord) error {
	now := time.Now().UTC()
	var lastErr error
	for attempt := 0; attempt < model.TicketNumberMaxRetries; attempt++ {
		count, err := s.Store.CountTicketsForDay(ctx, now)
		if err != nil {
			return err
		}
		ticket.TicketNumber = fmt.Sprintf("MT-%s-%03d", now.Format("20060102"), count+1)

		err = s.Store.CreateTicket(ctx, ticket)
		if err == nil {
			return nil
		}
		if !errors.Is(err, repository.ErrDuplicate) {
			return err
		}
		lastErr = err
		s.logger.Warn("ticket number collision, retrying",
			"ticket_number", ticket.TicketNumber,
			"attempt", attempt+1,
		)
	}
	return fmt.Errorf("%w: could not allocate a unique ticket number: %v", ErrConflict, lastErr)
}

func (s *Service) GetTicket(ctx context.Context, actor *model.Actor, id primitive.ObjectID) (*model.MaintenanceRecord, error) {
	ticket, err := s.Store.GetTicket(ctx, id)
	if err != nil {
		return nil, err
	}
	if ticket == nil {
		return nil, fmt.Errorf("%w: ticket %s", ErrNotFound, id.Hex())
	}
	scope := policy.ResolveScope(actor, model.ResourceTicket, primitive.NilObjectID)
	if !scope.Allows(ticket.BranchID, ticket.AssignedDepartment, "") {
		return nil, fmt.Errorf("%w: ticket is outside your branch or department", ErrForbidden)
	}
	return ticket, nil
}

func (s *Service) ListTickets(ctx context.Context, actor *model.Actor, explicitBranch primitive.ObjectID, filter model.TicketFilter) ([]*model.MaintenanceRecord, error) {
	scope := policy.ResolveScope(actor, model.ResourceTicket, explicitBranch)
	if scope.Empty {
		return []*model.MaintenanceRecord{}, nil
	}
	return s.Store.FindTickets(ctx, scope.Filter(), filter)
}

// AcceptTicket assigns a technician and type. Manager/admin only.
func (s *Service) AcceptTicket(ctx context.Context, actor *model.Actor, id primitive.ObjectID, req *model.AcceptTicketReq) (*model.MaintenanceRecord, error) {
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrValidation, err.Error())
	}
	ticket, err := s.GetTicket(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	if !isManagerialRole(actor.Role) {
		return nil, fmt.Errorf("%w: only a manager or admin may accept a ticket", ErrForbidden)
	}
	if ticket.Status != model.TicketStatusDraft && ticket.Status != model.TicketStatusSent {
		return nil, fmt.Errorf("%w: ticket in status %q cannot be accepted", ErrConflict, ticket.Status)
	}

	ticket.Status = model.TicketStatusAccepted
	ticket.Technician = req.Technician
	ticket.Type = req.Type
	appendTicketHistory(ticket, model.TicketStatusAccepted, actor.ID, "technician "+req.Technician+" assigned")

	if err := s.Store.UpdateTicket(ctx, ticket); err != nil {
		return nil, err
	}
	s.audit(ctx, actor, model.ActionUpdate, model.ResourceTicket, ticket.ID, ticket.TicketNumber, "accepted", ticket.BranchID, ticket.AssignedDepartment)
	return ticket, nil
}

// RejectTicket refuses a Draft/Sent ticket. Reason is mandatory.
func (s *Service) RejectTicket(ctx context.Context, actor *model.Actor, id primitive.ObjectID, req *model.RejectTicketReq) (*model.MaintenanceRecord, error) {
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrValidation, err.Error())
	}
	ticket, err := s.GetTicket(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	if !isManagerialRole(actor.Role) {
		return nil, fmt.Errorf("%w: only a manager or admin may reject a ticket", ErrForbidden)
	}
	if ticket.Status != model.TicketStatusDraft && ticket.Status != model.TicketStatusSent {
		return nil, fmt.Errorf("%w: ticket in status %q cannot be rejected", ErrConflict, ticket.Status)
	}

	ticket.Status = model.TicketStatusRejected
	appendTicketHistory(ticket, model.TicketStatusRejected, actor.ID, req.Reason)

	if err := s.Store.UpdateTicket(ctx, ticket); err != nil {
		return nil, err
	}
	s.audit(ctx, actor, model.ActionUpdate, model.ResourceTicket, ticket.ID, ticket.TicketNumber, "rejected: "+req.Reason, ticket.BranchID, ticket.AssignedDepartment)
	return ticket, nil
}

// StartTicket moves a ticket into In Progress. Admins always may; a
// technician only when the ticket is theirs or not yet assigned. Starting an
// unassigned ticket claims it.
func (s *Service) StartTicket(ctx context.Context, actor *model.Actor, id primitive.ObjectID) (*model.MaintenanceRecord, error) {
	ticket, err := s.GetTicket(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	if !s.canWorkTicket(actor, ticket) {
		return nil, fmt.Errorf("%w: ticket is assigned to another technician", ErrForbidden)
	}
	switch ticket.Status {
	case model.TicketStatusAccepted, model.TicketStatusPending, model.TicketStatusDraft, model.TicketStatusSent:
	default:
		return nil, fmt.Errorf("%w: ticket in status %q cannot be started", ErrConflict, ticket.Status)
	}

	if ticket.Technician == "" && actor.Role == model.RoleTechnician {
		ticket.Technician = actor.ID
	}
	ticket.Status = model.TicketStatusInProgress
	appendTicketHistory(ticket, model.TicketStatusInProgress, actor.ID, "work started")

	if err := s.Store.UpdateTicket(ctx, ticket); err != nil {
		return nil, err
	}
	s.audit(ctx, actor, model.ActionUpdate, model.ResourceTicket, ticket.ID, ticket.TicketNumber, "started", ticket.BranchID, ticket.AssignedDepartment)
	return ticket, nil
}

// UpdateWork moves an In Progress ticket to Pending, External Service or
// Done. A Done ticket with no after-photos is allowed but logged.
func (s *Service) UpdateWork(ctx context.Context, actor *model.Actor, id primitive.ObjectID, req *model.UpdateWorkReq) (*model.MaintenanceRecord, error) {
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrValidation, err.Error())
	}
	ticket, err := s.GetTicket(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	if !s.canWorkTicket(actor, ticket) {
		return nil, fmt.Errorf("%w: ticket is assigned to another technician", ErrForbidden)
	}
	if ticket.Status != model.TicketStatusInProgress {
		return nil, fmt.Errorf("%w: ticket in status %q is not in progress", ErrConflict, ticket.Status)
	}

	if len(req.SuppliesUsed) > 0 {
		ticket.SuppliesUsed = append(ticket.SuppliesUsed, req.SuppliesUsed...)
	}
	if len(req.AfterPhotos) > 0 {
		ticket.AfterPhotos = append(ticket.AfterPhotos, req.AfterPhotos...)
	}
	if req.Status == model.TicketStatusDone && len(ticket.AfterPhotos) == 0 {
		s.logger.Warn("ticket completed without after-photos",
			"ticket_number", ticket.TicketNumber,
			"actor", actor.ID,
		)
	}

	ticket.Status = req.Status
	appendTicketHistory(ticket, req.Status, actor.ID, req.Reason)

	if err := s.Store.UpdateTicket(ctx, ticket); err != nil {
		return nil, err
	}
	s.audit(ctx, actor, model.ActionUpdate, model.ResourceTicket, ticket.ID, ticket.TicketNumber, "work update: "+req.Status, ticket.BranchID, ticket.AssignedDepartment)
	return ticket, nil
}

// AddTicketNote appends a free-form note. Open to the requester, the
// assigned technician, and managers.
func (s *Service) AddTicketNote(ctx context.Context, actor *model.Actor, id primitive.ObjectID, req *model.AddNoteReq) (*model.MaintenanceRecord, error) {
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrValidation, err.Error())
	}
	ticket, err := s.GetTicket(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	if !s.canWorkTicket(actor, ticket) && ticket.RequestedBy != actor.ID {
		return nil, fmt.Errorf("%w: not a participant of this ticket", ErrForbidden)
	}

	ticket.Notes = append(ticket.Notes, model.TicketNote{
		Author:    actor.ID,
		Text:      req.Text,
		CreatedAt: time.Now(),
	})
	if err := s.Store.UpdateTicket(ctx, ticket); err != nil {
		return nil, err
	}
	return ticket, nil
}

// CloseTicket archives a Done ticket. Admin, manager, or the original
// requester.
func (s *Service) CloseTicket(ctx context.Context, actor *model.Actor, id primitive.ObjectID) (*model.MaintenanceRecord, error) {
	ticket, err := s.GetTicket(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	if !isManagerialRole(actor.Role) && ticket.RequestedBy != actor.ID {
		return nil, fmt.Errorf("%w: only a manager, admin or the requester may close a ticket", ErrForbidden)
	}
	if ticket.Status != model.TicketStatusDone {
		return nil, fmt.Errorf("%w: ticket in status %q cannot be closed", ErrConflict, ticket.Status)
	}

	ticket.Status = model.TicketStatusClosed
	appendTicketHistory(ticket, model.TicketStatusClosed, actor.ID, "")

	if err := s.Store.UpdateTicket(ctx, ticket); err != nil {
		return nil, err
	}
	s.audit(ctx, actor, model.ActionUpdate, model.ResourceTicket, ticket.ID, ticket.TicketNumber, "closed", ticket.BranchID, ticket.AssignedDepartment)
	return ticket, nil
}

// canWorkTicket is the technician gate: managers and admins always pass,
// a technician passes when the ticket is unassigned or assigned to them.
func (s *Service) canWorkTicket(actor *model.Actor, t *model.MaintenanceRecord) bool {
	if isManagerialRole(actor.Role) {
		return true
	}
	if actor.Role != model.RoleTechnician {
		return false
	}
	return t.Technician == "" || t.Technician == actor.ID
}

func appendTicketHistory(t *model.MaintenanceRecord, status, actor, note string) {
	t.History = append(t.History, model.TicketHistoryEntry{
		Status:    status,
		Actor:     actor,
		Timestamp: time.Now(),
		Note:      note,
	})
}
