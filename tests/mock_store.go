package tests

import (
	"context"
	"time"

	"assettrack/internal/tracker/model"

	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MockStore is a shared mock implementation of service.Store plus the audit
// sink, for testing the workflows without a database.
type MockStore struct {
	mock.Mock
}

// Assets

func (m *MockStore) CreateAsset(ctx context.Context, asset *model.Asset) error {
	args := m.Called(ctx, asset)
	return args.Error(0)
}

func (m *MockStore) GetAsset(ctx context.Context, id primitive.ObjectID) (*model.Asset, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Asset), args.Error(1)
}

func (m *MockStore) FindAssets(ctx context.Context, scope bson.M, filter model.AssetFilter) ([]*model.Asset, error) {
	args := m.Called(ctx, scope, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.Asset), args.Error(1)
}

func (m *MockStore) UpdateAsset(ctx context.Context, asset *model.Asset) error {
	args := m.Called(ctx, asset)
	return args.Error(0)
}

func (m *MockStore) DeleteAsset(ctx context.Context, id primitive.ObjectID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// Assignments

func (m *MockStore) CreateAssignment(ctx context.Context, a *model.Assignment) error {
	args := m.Called(ctx, a)
	return args.Error(0)
}

func (m *MockStore) GetAssignment(ctx context.Context, id primitive.ObjectID) (*model.Assignment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Assignment), args.Error(1)
}

func (m *MockStore) FindAssignments(ctx context.Context, scope bson.M, filter model.AssignmentFilter) ([]*model.Assignment, error) {
	args := m.Called(ctx, scope, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.Assignment), args.Error(1)
}

func (m *MockStore) FindActiveAssignment(ctx context.Context, assetID primitive.ObjectID) (*model.Assignment, error) {
	args := m.Called(ctx, assetID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Assignment), args.Error(1)
}

func (m *MockStore) UpdateAssignment(ctx context.Context, a *model.Assignment) error {
	args := m.Called(ctx, a)
	return args.Error(0)
}

func (m *MockStore) SoftDeleteAssignment(ctx context.Context, id primitive.ObjectID, deletedBy string) error {
	args := m.Called(ctx, id, deletedBy)
	return args.Error(0)
}

func (m *MockStore) FindByRecipient(ctx context.Context, assignedTo string) ([]*model.Assignment, error) {
	args := m.Called(ctx, assignedTo)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.Assignment), args.Error(1)
}

// Maintenance tickets

func (m *MockStore) CreateTicket(ctx context.Context, t *model.MaintenanceRecord) error {
	args := m.Called(ctx, t)
	return args.Error(0)
}

func (m *MockStore) GetTicket(ctx context.Context, id primitive.ObjectID) (*model.MaintenanceRecord, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.MaintenanceRecord), args.Error(1)
}

func (m *MockStore) FindTickets(ctx context.Context, scope bson.M, filter model.TicketFilter) ([]*model.MaintenanceRecord, error) {
	args := m.Called(ctx, scope, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.MaintenanceRecord), args.Error(1)
}

func (m *MockStore) UpdateTicket(ctx context.Context, t *model.MaintenanceRecord) error {
	args := m.Called(ctx, t)
	return args.Error(0)
}

func (m *MockStore) CountTicketsForDay(ctx context.Context, day time.Time) (int64, error) {
	args := m.Called(ctx, day)
	return args.Get(0).(int64), args.Error(1)
}

// Transfers

func (m *MockStore) CreateTransfer(ctx context.Context, t *model.Transfer) error {
	args := m.Called(ctx, t)
	return args.Error(0)
}

func (m *MockStore) GetTransfer(ctx context.Context, id primitive.ObjectID) (*model.Transfer, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Transfer), args.Error(1)
}

func (m *MockStore) FindTransfers(ctx context.Context, scope bson.M, filter model.TransferFilter) ([]*model.Transfer, error) {
	args := m.Called(ctx, scope, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.Transfer), args.Error(1)
}

func (m *MockStore) AdvanceTransfer(ctx context.Context, id primitive.ObjectID, fromStatus string, set bson.M) (bool, error) {
	args := m.Called(ctx, id, fromStatus, set)
	return args.Bool(0), args.Error(1)
}

func (m *MockStore) DeleteTransfer(ctx context.Context, id primitive.ObjectID, fromStatus string) (bool, error) {
	args := m.Called(ctx, id, fromStatus)
	return args.Bool(0), args.Error(1)
}

// Locations and organisation

func (m *MockStore) GetLocation(ctx context.Context, id primitive.ObjectID) (*model.Location, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Location), args.Error(1)
}

func (m *MockStore) FindWarehouse(ctx context.Context, departmentID, branchID primitive.ObjectID) (*model.Location, error) {
	args := m.Called(ctx, departmentID, branchID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Location), args.Error(1)
}

func (m *MockStore) FindAnyWarehouse(ctx context.Context, branchID primitive.ObjectID) (*model.Location, error) {
	args := m.Called(ctx, branchID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Location), args.Error(1)
}

func (m *MockStore) GetBranch(ctx context.Context, id primitive.ObjectID) (*model.Branch, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Branch), args.Error(1)
}

func (m *MockStore) FindHeadOfficeBranch(ctx context.Context) (*model.Branch, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Branch), args.Error(1)
}

func (m *MockStore) FindAnyBranch(ctx context.Context) (*model.Branch, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Branch), args.Error(1)
}

func (m *MockStore) GetDepartment(ctx context.Context, id primitive.ObjectID) (*model.Department, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Department), args.Error(1)
}

// Audit sink

func (m *MockStore) Record(ctx context.Context, entry *model.AuditEntry) error {
	// Audit writes are fire-and-forget; don't fail tests that did not set
	// an explicit expectation on them.
	for _, call := range m.ExpectedCalls {
		if call.Method == "Record" {
			args := m.Called(ctx, entry)
			return args.Error(0)
		}
	}
	return nil
}
