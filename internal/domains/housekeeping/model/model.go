package model

import (
	"bunkhouse/shared/model"
)

const (
	TableName  = "housekeepers"
	EntityName = "housekeeper"

	FieldID        = "id"
	FieldStaffID   = "staff_id"
	FieldStaffName = "staff_name"
	FieldShift     = "shift"
	FieldStatus    = "status"
)

type Housekeeper struct {
	ID        string `db:"id"`
	StaffID   string `db:"staff_id"`
	StaffName string `db:"staff_name"`
	Shift     string `db:"shift"`
	Status    string `db:"status"`
	model.Metadata
}
