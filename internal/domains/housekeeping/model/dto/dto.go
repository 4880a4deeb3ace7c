package dto

import (
	"time"

	"github.com/google/uuid"

	"bunkhouse/internal/domains/housekeeping/model"
	"bunkhouse/shared/constant"
	gModel "bunkhouse/shared/model"
	"bunkhouse/shared/timezone"
)

type TaskRequest struct {
	RoomNumber string `json:"room_number" validate:"required,max=20"`
	BedNumber  string `json:"bed_number" validate:"omitempty,max=20"`
	Task       string `json:"task" validate:"required,max=200"`
}

type CreateTasksRequest struct {
	StaffID string        `json:"staff_id" validate:"required"`
	Shift   string        `json:"shift" validate:"omitempty,oneof=morning evening night"`
	Tasks   []TaskRequest `json:"tasks" validate:"required,min=1,dive"`
}

// ToHousekeeperModel builds the assignment record created the first time a
// staff member receives tasks. The shift defaults to morning when omitted.
func (c *CreateTasksRequest) ToHousekeeperModel(staffName, creator string) model.Housekeeper {
	shift := c.Shift
	if shift == constant.Empty {
		shift = constant.ShiftMorning
	}

	return model.Housekeeper{
		ID:        uuid.NewString(),
		StaffID:   c.StaffID,
		StaffName: staffName,
		Shift:     shift,
		Status:    constant.HousekeeperStatusActive,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  creator,
			ModifiedBy: creator,
		},
	}
}

func (c *CreateTasksRequest) ToTaskModels(housekeeperID, creator string) []model.Task {
	tasks := make([]model.Task, len(c.Tasks))

	for i, task := range c.Tasks {
		var bedNumber *string
		if task.BedNumber != constant.Empty {
			bedNumber = &task.BedNumber
		}

		tasks[i] = model.Task{
			ID:            uuid.NewString(),
			HousekeeperID: housekeeperID,
			RoomNumber:    task.RoomNumber,
			BedNumber:     bedNumber,
			Task:          task.Task,
			TaskStatus:    constant.TaskStatusPending,
			AssignedDate:  timezone.Now(),
			Metadata: gModel.Metadata{
				CreatedAt:  timezone.Now(),
				ModifiedAt: timezone.Now(),
				CreatedBy:  creator,
				ModifiedBy: creator,
			},
		}
	}

	return tasks
}

type UpdateTaskRequest struct {
	Task       string `db:"task" json:"task" validate:"omitempty,max=200"`
	TaskStatus string `db:"task_status" json:"task_status" validate:"omitempty,oneof=pending in-progress completed"`
}

type TaskResponse struct {
	ID             string     `json:"id"`
	RoomNumber     string     `json:"room_number"`
	BedNumber      *string    `json:"bed_number,omitempty"`
	Task           string     `json:"task"`
	TaskStatus     string     `json:"task_status"`
	AssignedDate   time.Time  `json:"assigned_date"`
	CompletionDate *time.Time `json:"completion_date,omitempty"`
}

func (r *TaskResponse) FromModel(task model.Task) {
	r.ID = task.ID
	r.RoomNumber = task.RoomNumber
	r.BedNumber = task.BedNumber
	r.Task = task.Task
	r.TaskStatus = task.TaskStatus
	r.AssignedDate = task.AssignedDate
	r.CompletionDate = task.CompletionDate
}

type GetTasksResponse struct {
	StaffID   string         `json:"staff_id"`
	StaffName string         `json:"staff_name"`
	Shift     string         `json:"shift"`
	Tasks     []TaskResponse `json:"tasks"`
}

func (r *GetTasksResponse) FromModels(housekeeper model.Housekeeper, tasks []model.Task) {
	r.StaffID = housekeeper.StaffID
	r.StaffName = housekeeper.StaffName
	r.Shift = housekeeper.Shift

	r.Tasks = make([]TaskResponse, len(tasks))
	for i, task := range tasks {
		r.Tasks[i].FromModel(task)
	}
}
