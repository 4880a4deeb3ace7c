package repository

//go:generate go run go.uber.org/mock/mockgen -source=./bed.go -destination=../mocks/bed_mock.go -package=mocks

import (
	"context"

	"github.com/jmoiron/sqlx"

	"bunkhouse/infras/otel"
	"bunkhouse/infras/postgres"
	"bunkhouse/internal/domains/room/model"
	gDto "bunkhouse/shared/dto"
	gRepo "bunkhouse/shared/repository"
)

type Bed interface {
	Insert(ctx context.Context, model model.Bed) error
	InsertBulkTx(ctx context.Context, sqltx *sqlx.Tx, models []model.Bed) error
	InsertBulkIgnoreConflict(ctx context.Context, models []model.Bed, conflictColumns string) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Bed, error)
	GetForUpdateTx(ctx context.Context, sqltx *sqlx.Tx, filter gDto.FilterGroup) (model.Bed, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Bed, error)
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	Update(ctx context.Context, req map[string]any, filter gDto.FilterGroup) error
	UpdateTx(ctx context.Context, sqltx *sqlx.Tx, req map[string]any, filter gDto.FilterGroup) error
	Delete(ctx context.Context, filter gDto.FilterGroup) error
	BeginTx(ctx context.Context) (*sqlx.Tx, error)
}

type bedRepositoryImpl struct {
	gRepo.Repository[model.Bed]
	db   *postgres.Connection
	otel otel.Otel
}

func NewBed(db *postgres.Connection, otel otel.Otel) Bed {
	return &bedRepositoryImpl{
		Repository: gRepo.NewRepository[model.Bed](model.BedEntityName, model.BedTableName, model.FieldBedID, db, otel),
		db:         db,
		otel:       otel,
	}
}
