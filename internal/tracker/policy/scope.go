package policy

import (
	"assettrack/internal/tracker/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Scope is the query predicate derived from an actor's identity. It is the
// only thing the read path knows about RBAC: repositories compose Filter()
// into their queries, write paths use the point checks.
//
// Resolution never fails. An actor that cannot be scoped yields an empty
// scope whose filter matches nothing; callers render that as an empty
// result, not an error.
type Scope struct {
	Kind         string
	Unrestricted bool
	// Empty means the actor could not be scoped at all. Fail closed.
	Empty            bool
	BranchID         primitive.ObjectID
	DepartmentIDs    []primitive.ObjectID
	LegacyDepartment string
}

// ResolveScope turns an actor into a Scope for the given resource kind.
// explicitBranch is an optional caller-requested branch filter; only a
// superuser may use it, every other role is pinned to its own branch.
//
// Rules, in order:
//  1. superuser: no branch restriction; honors explicitBranch when set.
//  2. everyone else: branch forced to the actor's branch. No branch at
//     all means nothing is visible.
//  3. admin / system_admin: branch-wide.
//  4. remaining roles: department-id set when the actor has one; legacy
//     accounts with only a free-text department match on string equality;
//     an actor with a branch but no department data sees the whole branch.
func ResolveScope(actor *model.Actor, kind string, explicitBranch primitive.ObjectID) Scope {
	s := Scope{Kind: kind}

	if actor == nil || actor.ID == "" {
		s.Empty = true
		return s
	}

	if actor.Role == model.RoleSuperuser {
		if !explicitBranch.IsZero() {
			s.BranchID = explicitBranch
			return s
		}
		s.Unrestricted = true
		return s
	}

	if actor.BranchID.IsZero() {
		s.Empty = true
		return s
	}
	s.BranchID = actor.BranchID

	if actor.Role == model.RoleAdmin || actor.Role == model.RoleSystemAdmin {
		return s
	}

	if ids := actor.DepartmentIDs(); len(ids) > 0 {
		s.DepartmentIDs = ids
		return s
	}
	if actor.Department != "" {
		s.LegacyDepartment = actor.Department
		return s
	}
	return s
}

// Filter renders the scope as a mongo predicate over the documents of the
// scope's resource kind.
func (s Scope) Filter() bson.M {
	if s.Empty {
		// Always-false predicate: every stored document has an _id.
		return bson.M{"_id": bson.M{"$exists": false}}
	}
	if s.Unrestricted {
		return bson.M{}
	}

	if s.Kind == model.ResourceTransfer {
		return s.transferFilter()
	}

	deptField := "department_id"
	if s.Kind == model.ResourceTicket {
		deptField = "assigned_department"
	}

	f := bson.M{"branch_id": s.BranchID}
	if len(s.DepartmentIDs) > 0 {
		f[deptField] = bson.M{"$in": s.DepartmentIDs}
	} else if s.LegacyDepartment != "" && s.Kind != model.ResourceTicket {
		// Tickets carry no legacy department name; legacy actors see the
		// whole branch there.
		f["department"] = s.LegacyDepartment
	}
	return f
}

// transferFilter matches transfers the actor touches on either side of the
// chain: origin or destination.
func (s Scope) transferFilter() bson.M {
	origin := bson.M{"from_branch_id": s.BranchID}
	dest := bson.M{"to_branch_id": s.BranchID}
	if len(s.DepartmentIDs) > 0 {
		origin["from_department_id"] = bson.M{"$in": s.DepartmentIDs}
		dest["to_department_id"] = bson.M{"$in": s.DepartmentIDs}
	}
	return bson.M{"$or": bson.A{origin, dest}}
}

// Allows is the point-check twin of Filter for a single document's
// branch/department coordinates. A zero target field matches anything,
// you cannot mismatch what is unset.
func (s Scope) Allows(branchID, departmentID primitive.ObjectID, legacyDepartment string) bool {
	if s.Empty {
		return false
	}
	if s.Unrestricted {
		return true
	}
	if !branchID.IsZero() && branchID != s.BranchID {
		return false
	}
	if len(s.DepartmentIDs) > 0 {
		if departmentID.IsZero() {
			return true
		}
		for _, id := range s.DepartmentIDs {
			if id == departmentID {
				return true
			}
		}
		return false
	}
	if s.LegacyDepartment != "" && legacyDepartment != "" {
		return s.LegacyDepartment == legacyDepartment
	}
	return true
}
