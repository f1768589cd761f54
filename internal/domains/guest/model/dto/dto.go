package dto

import (
	"hotelos/internal/domains/guest/model"
	"hotelos/shared"
	gDto "hotelos/shared/dto"
	gModel "hotelos/shared/model"
	"hotelos/shared/timezone"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type CreateGuestRequest struct {
	FullName    string  `json:"full_name"   validate:"required,max=100"`
	Email       *string `json:"email"       validate:"omitempty,email,max=255"`
	Phone       *string `json:"phone"       validate:"omitempty,max=20"`
	Address     *string `json:"address"     validate:"omitempty,max=255"`
	IDType      *string `json:"id_type"     validate:"omitempty,max=50"`
	IDNumber    *string `json:"id_number"   validate:"omitempty,max=50"`
	Nationality *string `json:"nationality" validate:"omitempty,max=50"`
	Notes       *string `json:"notes"       validate:"omitempty,max=500"`
}

func (c *CreateGuestRequest) ToModel(user string) model.Guest {
	return model.Guest{
		ID:          uuid.NewString(),
		FullName:    c.FullName,
		Email:       c.Email,
		Phone:       c.Phone,
		Address:     c.Address,
		IDType:      c.IDType,
		IDNumber:    c.IDNumber,
		Nationality: c.Nationality,
		Notes:       c.Notes,
		TotalVisits: 0,
		TotalSpent:  decimal.Zero,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  user,
			ModifiedBy: user,
		},
	}
}

// UpdateGuestRequest covers contact fields only.
type UpdateGuestRequest struct {
	FullName    *string `db:"full_name"   json:"full_name"   validate:"omitempty,max=100"`
	Email       *string `db:"email"       json:"email"       validate:"omitempty,email,max=255"`
	Phone       *string `db:"phone"       json:"phone"       validate:"omitempty,max=20"`
	Address     *string `db:"address"     json:"address"     validate:"omitempty,max=255"`
	IDType      *string `db:"id_type"     json:"id_type"     validate:"omitempty,max=50"`
	IDNumber    *string `db:"id_number"   json:"id_number"   validate:"omitempty,max=50"`
	Nationality *string `db:"nationality" json:"nationality" validate:"omitempty,max=50"`
	Notes       *string `db:"notes"       json:"notes"       validate:"omitempty,max=500"`
}

// TotalsUpdate is written by checkout when a stay is settled.
type TotalsUpdate struct {
	TotalVisits int             `db:"total_visits"`
	TotalSpent  decimal.Decimal `db:"total_spent"`
}

type GuestResponse struct {
	ID          string          `json:"id"`
	FullName    string          `json:"full_name"`
	Email       *string         `json:"email,omitempty"`
	Phone       *string         `json:"phone,omitempty"`
	Address     *string         `json:"address,omitempty"`
	IDType      *string         `json:"id_type,omitempty"`
	IDNumber    *string         `json:"id_number,omitempty"`
	Nationality *string         `json:"nationality,omitempty"`
	Notes       *string         `json:"notes,omitempty"`
	TotalVisits int             `json:"total_visits"`
	TotalSpent  decimal.Decimal `json:"total_spent"  swaggertype:"string"`
	gDto.Metadata
}

func (r *GuestResponse) FromModel(model model.Guest) {
	r.ID = model.ID
	r.FullName = model.FullName
	r.Email = model.Email
	r.Phone = model.Phone
	r.Address = model.Address
	r.IDType = model.IDType
	r.IDNumber = model.IDNumber
	r.Nationality = model.Nationality
	r.Notes = model.Notes
	r.TotalVisits = model.TotalVisits
	r.TotalSpent = model.TotalSpent
	r.Metadata.FromModel(model.Metadata)
}

type GetGuestsResponse struct {
	Guests    []GuestResponse `json:"guests"`
	TotalPage int             `json:"total_page"`
	TotalData int             `json:"total_data"`
}

func (r *GetGuestsResponse) FromModels(models []model.Guest, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Guests = make([]GuestResponse, len(models))
	for i, mod := range models {
		r.Guests[i].FromModel(mod)
	}
}
