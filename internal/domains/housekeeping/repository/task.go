package repository

//go:generate go run go.uber.org/mock/mockgen -source=./task.go -destination=../mocks/task_mock.go -package=mocks

import (
	"context"

	"bunkhouse/infras/otel"
	"bunkhouse/infras/postgres"
	"bunkhouse/internal/domains/housekeeping/model"
	gDto "bunkhouse/shared/dto"
	gRepo "bunkhouse/shared/repository"
)

type Task interface {
	Insert(ctx context.Context, model model.Task) error
	InsertBulk(ctx context.Context, models []model.Task) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Task, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Task, error)
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	Update(ctx context.Context, req map[string]any, filter gDto.FilterGroup) error
	Delete(ctx context.Context, filter gDto.FilterGroup) error
}

type taskRepositoryImpl struct {
	gRepo.Repository[model.Task]
	db   *postgres.Connection
	otel otel.Otel
}

func NewTask(db *postgres.Connection, otel otel.Otel) Task {
	return &taskRepositoryImpl{
		Repository: gRepo.NewRepository[model.Task](model.TaskEntityName, model.TaskTableName, model.FieldTaskID, db, otel),
		db:         db,
		otel:       otel,
	}
}
