package model

import (
	"time"

	"bunkhouse/shared/model"
)

const (
	TaskTableName  = "housekeeping_tasks"
	TaskEntityName = "housekeeping_task"

	FieldTaskID             = "id"
	FieldTaskHousekeeperID  = "housekeeper_id"
	FieldTaskRoomNumber     = "room_number"
	FieldTaskBedNumber      = "bed_number"
	FieldTaskDescription    = "task"
	FieldTaskStatus         = "task_status"
	FieldTaskAssignedDate   = "assigned_date"
	FieldTaskCompletionDate = "completion_date"
)

type Task struct {
	ID             string     `db:"id"`
	HousekeeperID  string     `db:"housekeeper_id"`
	RoomNumber     string     `db:"room_number"`
	BedNumber      *string    `db:"bed_number"`
	Task           string     `db:"task"`
	TaskStatus     string     `db:"task_status"`
	AssignedDate   time.Time  `db:"assigned_date"`
	CompletionDate *time.Time `db:"completion_date"`
	model.Metadata
}
