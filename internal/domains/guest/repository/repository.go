package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"

	"hotelos/infras/otel"
	"hotelos/infras/postgres"
	"hotelos/internal/domains/guest/model"
	gDto "hotelos/shared/dto"
	gRepo "hotelos/shared/repository"

	"github.com/jmoiron/sqlx"
)

type Guest interface {
	Insert(ctx context.Context, guest model.Guest) error
	InsertTx(ctx context.Context, tx *sqlx.Tx, guest model.Guest) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Guest, error)
	GetTx(ctx context.Context, tx *sqlx.Tx, filter gDto.FilterGroup, lock string, columns ...string) (model.Guest, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Guest, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	Update(ctx context.Context, req map[string]any, filter gDto.FilterGroup) error
	UpdateTx(ctx context.Context, tx *sqlx.Tx, req map[string]any, filter gDto.FilterGroup) error
}

type repositoryImpl struct {
	gRepo.Repository[model.Guest]
}

func New(db *postgres.Connection, otel otel.Otel) Guest {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.Guest](model.EntityName, model.TableName, model.FieldID, db, otel),
	}
}
