package model

import (
	"hotelos/shared/model"

	"github.com/shopspring/decimal"
)

const (
	TableName  = "guests"
	EntityName = "guest"

	FieldID          = "id"
	FieldFullName    = "full_name"
	FieldEmail       = "email"
	FieldPhone       = "phone"
	FieldTotalVisits = "total_visits"
	FieldTotalSpent  = "total_spent"
)

const (
	CacheGet    = "guest:get"
	CacheGetAll = "guest:gets"
	CacheCount  = "guest:count"
)

// Guest totals are aggregates owned by checkout. Nothing else writes them.
type Guest struct {
	ID          string          `db:"id"`
	FullName    string          `db:"full_name"`
	Email       *string         `db:"email"`
	Phone       *string         `db:"phone"`
	Address     *string         `db:"address"`
	IDType      *string         `db:"id_type"`
	IDNumber    *string         `db:"id_number"`
	Nationality *string         `db:"nationality"`
	Notes       *string         `db:"notes"`
	TotalVisits int             `db:"total_visits"`
	TotalSpent  decimal.Decimal `db:"total_spent"`
	model.Metadata
}
