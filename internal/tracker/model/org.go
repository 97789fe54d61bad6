package model

import "go.mongodb.org/mongo-driver/bson/primitive"

// Branch is the top-level organizational unit. Name and Code are unique.
type Branch struct {
	ID           primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Name         string             `json:"name" bson:"name"`
	Code         string             `json:"code" bson:"code"`
	IsHeadOffice bool               `json:"is_head_office" bson:"is_head_office"`
}

type Department struct {
	ID       primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Name     string             `json:"name" bson:"name"`
	BranchID primitive.ObjectID `json:"branch_id" bson:"branch_id"`
}

// Location is a physical place an asset can sit. Warehouses are the default
// holding area for idle assets.
type Location struct {
	ID           primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Name         string             `json:"name" bson:"name"`
	BranchID     primitive.ObjectID `json:"branch_id" bson:"branch_id"`
	DepartmentID primitive.ObjectID `json:"department_id,omitempty" bson:"department_id,omitempty"`
	IsWarehouse  bool               `json:"is_warehouse" bson:"is_warehouse"`
}
