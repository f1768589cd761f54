package dto

import (
	"hotelos/internal/domains/availability"
	"hotelos/internal/domains/booking/model"
	guestDto "hotelos/internal/domains/guest/model/dto"
	roomDto "hotelos/internal/domains/room/model/dto"
	"hotelos/shared"
	gDto "hotelos/shared/dto"
	gModel "hotelos/shared/model"
	"hotelos/shared/timezone"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CreateBookingRequest takes either an existing guest_id or an inline guest
// that is created in the same transaction as the booking.
type CreateBookingRequest struct {
	GuestID  string                       `json:"guest_id"  validate:"omitempty,uuid"`
	Guest    *guestDto.CreateGuestRequest `json:"guest"     validate:"omitempty"`
	RoomID   string                       `json:"room_id"   validate:"required,uuid"`
	CheckIn  string                       `json:"check_in"  validate:"required,date"`
	CheckOut string                       `json:"check_out" validate:"required,date"`
	Notes    *string                      `json:"notes"     validate:"omitempty,max=500"`
}

func (c *CreateBookingRequest) ToModel(guestID string, stay availability.Stay, total decimal.Decimal, user string) model.Booking {
	return model.Booking{
		ID:          uuid.NewString(),
		GuestID:     guestID,
		RoomID:      c.RoomID,
		CheckIn:     stay.CheckIn,
		CheckOut:    stay.CheckOut,
		Status:      model.StatusConfirmed,
		TotalAmount: total,
		Notes:       c.Notes,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  user,
			ModifiedBy: user,
		},
	}
}

type StatusUpdate struct {
	Status string `db:"status"`
}

type BookingResponse struct {
	ID          string          `json:"id"`
	GuestID     string          `json:"guest_id"`
	RoomID      string          `json:"room_id"`
	CheckIn     string          `json:"check_in"`
	CheckOut    string          `json:"check_out"`
	Nights      int             `json:"nights"`
	Status      string          `json:"status"`
	TotalAmount decimal.Decimal `json:"total_amount" swaggertype:"string"`
	Notes       *string         `json:"notes,omitempty"`
	gDto.Metadata
}

func (r *BookingResponse) FromModel(model model.Booking) {
	r.ID = model.ID
	r.GuestID = model.GuestID
	r.RoomID = model.RoomID
	r.CheckIn = timezone.FormatDate(model.CheckIn)
	r.CheckOut = timezone.FormatDate(model.CheckOut)
	r.Nights = timezone.Nights(model.CheckIn, model.CheckOut)
	r.Status = model.Status
	r.TotalAmount = model.TotalAmount
	r.Notes = model.Notes
	r.Metadata.FromModel(model.Metadata)
}

type GetBookingsResponse struct {
	Bookings  []BookingResponse `json:"bookings"`
	TotalPage int               `json:"total_page"`
	TotalData int               `json:"total_data"`
}

func (r *GetBookingsResponse) FromModels(models []model.Booking, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Bookings = make([]BookingResponse, len(models))
	for i, mod := range models {
		r.Bookings[i].FromModel(mod)
	}
}

// CheckInResponse returns both sides of the coupled status change.
type CheckInResponse struct {
	Booking BookingResponse      `json:"booking"`
	Room    roomDto.RoomResponse `json:"room"`
}
