package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"

	"hotelos/infras/otel"
	"hotelos/infras/postgres"
	"hotelos/internal/domains/ledger/model"
	gDto "hotelos/shared/dto"
	gRepo "hotelos/shared/repository"

	"github.com/jmoiron/sqlx"
)

type Charge interface {
	InsertTx(ctx context.Context, tx *sqlx.Tx, charge model.Charge) error
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Charge, error)
	GetAllTx(ctx context.Context, tx *sqlx.Tx, params gDto.QueryParams, filter gDto.FilterGroup, lock string, columns ...string) ([]model.Charge, error)
}

type Payment interface {
	InsertTx(ctx context.Context, tx *sqlx.Tx, payment model.Payment) error
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Payment, error)
	GetAllTx(ctx context.Context, tx *sqlx.Tx, params gDto.QueryParams, filter gDto.FilterGroup, lock string, columns ...string) ([]model.Payment, error)
}

type chargeRepositoryImpl struct {
	gRepo.Repository[model.Charge]
}

func NewCharge(db *postgres.Connection, otel otel.Otel) Charge {
	return &chargeRepositoryImpl{
		Repository: gRepo.NewRepository[model.Charge](model.ChargeEntityName, model.ChargeTableName, model.FieldID, db, otel),
	}
}

type paymentRepositoryImpl struct {
	gRepo.Repository[model.Payment]
}

func NewPayment(db *postgres.Connection, otel otel.Otel) Payment {
	return &paymentRepositoryImpl{
		Repository: gRepo.NewRepository[model.Payment](model.PaymentEntityName, model.PaymentTableName, model.FieldID, db, otel),
	}
}
