package dto

import (
	"hotelos/shared/constant"
	"hotelos/shared/model"
	"hotelos/shared/timezone"
)

// Metadata is the audit block shown on rooms, guests, bookings and invoices.
// Times are rendered in the hotel's timezone; the actor is a staff user ID.
type Metadata struct {
	CreatedAt  string `json:"created_at"`
	ModifiedAt string `json:"modified_at"`
	CreatedBy  string `json:"created_by,omitempty"`
	ModifiedBy string `json:"modified_by,omitempty"`
}

func NewMetadata(source model.Metadata) Metadata {
	metadata := Metadata{
		CreatedAt:  timezone.Format(source.CreatedAt, constant.DateFormat),
		CreatedBy:  source.CreatedBy,
		ModifiedBy: source.ModifiedBy,
	}

	if !source.ModifiedAt.IsZero() {
		metadata.ModifiedAt = timezone.Format(source.ModifiedAt, constant.DateFormat)
	}

	return metadata
}

func (m *Metadata) FromModel(source model.Metadata) {
	*m = NewMetadata(source)
}
