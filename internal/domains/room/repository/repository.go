package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"

	"hotelos/infras/otel"
	"hotelos/infras/postgres"
	"hotelos/internal/domains/room/model"
	gDto "hotelos/shared/dto"
	gRepo "hotelos/shared/repository"

	"github.com/jmoiron/sqlx"
)

type Room interface {
	Insert(ctx context.Context, room model.Room) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Room, error)
	GetTx(ctx context.Context, tx *sqlx.Tx, filter gDto.FilterGroup, lock string, columns ...string) (model.Room, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Room, error)
	GetAllTx(ctx context.Context, tx *sqlx.Tx, params gDto.QueryParams, filter gDto.FilterGroup, lock string, columns ...string) ([]model.Room, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	Update(ctx context.Context, req map[string]any, filter gDto.FilterGroup) error
	UpdateTx(ctx context.Context, tx *sqlx.Tx, req map[string]any, filter gDto.FilterGroup) error
}

type ServiceLog interface {
	InsertTx(ctx context.Context, tx *sqlx.Tx, log model.ServiceLog) error
	InsertBulkTx(ctx context.Context, tx *sqlx.Tx, logs []model.ServiceLog) error
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.ServiceLog, error)
}

type repositoryImpl struct {
	gRepo.Repository[model.Room]
}

func New(db *postgres.Connection, otel otel.Otel) Room {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.Room](model.EntityName, model.TableName, model.FieldID, db, otel),
	}
}

type serviceLogRepositoryImpl struct {
	gRepo.Repository[model.ServiceLog]
}

func NewServiceLog(db *postgres.Connection, otel otel.Otel) ServiceLog {
	return &serviceLogRepositoryImpl{
		Repository: gRepo.NewRepository[model.ServiceLog](model.ServiceLogEntityName, model.ServiceLogTableName, model.FieldID, db, otel),
	}
}
