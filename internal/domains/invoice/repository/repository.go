package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"fmt"

	"hotelos/infras/otel"
	"hotelos/infras/postgres"
	"hotelos/internal/domains/invoice/model"
	"hotelos/shared/constant"
	gDto "hotelos/shared/dto"
	"hotelos/shared/logger"
	gRepo "hotelos/shared/repository"

	"github.com/jmoiron/sqlx"
)

type Invoice interface {
	InsertTx(ctx context.Context, tx *sqlx.Tx, invoice model.Invoice) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Invoice, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Invoice, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	Update(ctx context.Context, req map[string]any, filter gDto.FilterGroup) error
}

type Item interface {
	InsertBulkTx(ctx context.Context, tx *sqlx.Tx, items []model.Item) error
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Item, error)
}

// Sequence hands out invoice numbers per year.
type Sequence interface {
	NextTx(ctx context.Context, tx *sqlx.Tx, year int) (int64, error)
}

type repositoryImpl struct {
	gRepo.Repository[model.Invoice]
}

func New(db *postgres.Connection, otel otel.Otel) Invoice {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.Invoice](model.EntityName, model.TableName, model.FieldID, db, otel),
	}
}

type itemRepositoryImpl struct {
	gRepo.Repository[model.Item]
}

func NewItem(db *postgres.Connection, otel otel.Otel) Item {
	return &itemRepositoryImpl{
		Repository: gRepo.NewRepository[model.Item](model.ItemEntityName, model.ItemTableName, model.FieldID, db, otel),
	}
}

type sequenceImpl struct {
	otel otel.Otel
}

func NewSequence(otel otel.Otel) Sequence {
	return &sequenceImpl{otel: otel}
}

// The upsert row-locks the year's counter until the transaction ends, so
// concurrent checkouts take numbers one after another and a rollback gives
// its number back.
const nextSequenceQuery = `INSERT INTO invoice_sequences (year, last_value) VALUES ($1, 1)
ON CONFLICT (year) DO UPDATE SET last_value = invoice_sequences.last_value + 1
RETURNING last_value`

func (s *sequenceImpl) NextTx(ctx context.Context, tx *sqlx.Tx, year int) (value int64, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".invoice_sequence.NextTx")
	defer scope.End()
	defer scope.TraceIfError(err)

	scope.SetAttribute(constant.OtelQueryAttributeKey, nextSequenceQuery)

	if err = tx.GetContext(ctx, &value, nextSequenceQuery, year); err != nil {
		logger.ErrorWithStack(err)

		return 0, fmt.Errorf("failed to allocate invoice number: %w", err)
	}

	return value, nil
}
