package dto

import (
	"hotelos/internal/domains/room/model"
	"hotelos/shared"
	"hotelos/shared/constant"
	gDto "hotelos/shared/dto"
	gModel "hotelos/shared/model"
	"hotelos/shared/timezone"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
)

const defaultMaxOccupancy = 2

type CreateRoomRequest struct {
	RoomNumber   string          `json:"room_number"    validate:"required,max=10"`
	RoomType     string          `json:"room_type"      validate:"required,oneof=standard deluxe suite presidential"`
	RatePerNight decimal.Decimal `json:"rate_per_night" validate:"gte=0"`
	Floor        int             `json:"floor"          validate:"gte=0"`
	MaxOccupancy int             `json:"max_occupancy"  validate:"omitempty,min=1,max=20"`
	Amenities    []string        `json:"amenities"      validate:"omitempty,dive,max=50"`
	Notes        *string         `json:"notes"          validate:"omitempty,max=500"`
}

func (c *CreateRoomRequest) ToModel(user string) model.Room {
	maxOccupancy := c.MaxOccupancy
	if maxOccupancy == 0 {
		maxOccupancy = defaultMaxOccupancy
	}

	amenities := pq.StringArray{}
	if c.Amenities != nil {
		amenities = c.Amenities
	}

	return model.Room{
		ID:           uuid.NewString(),
		RoomNumber:   c.RoomNumber,
		RoomType:     c.RoomType,
		RatePerNight: c.RatePerNight,
		Floor:        c.Floor,
		MaxOccupancy: maxOccupancy,
		Amenities:    amenities,
		Notes:        c.Notes,
		Status:       model.StatusAvailable,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  user,
			ModifiedBy: user,
		},
	}
}

// UpdateRoomRequest never touches status. Rate changes apply to new bookings only.
type UpdateRoomRequest struct {
	RoomType     *string          `db:"room_type"      json:"room_type"      validate:"omitempty,oneof=standard deluxe suite presidential"`
	RatePerNight *decimal.Decimal `db:"rate_per_night" json:"rate_per_night" validate:"omitempty,gte=0"`
	Floor        *int             `db:"floor"          json:"floor"          validate:"omitempty,gte=0"`
	MaxOccupancy *int             `db:"max_occupancy"  json:"max_occupancy"  validate:"omitempty,min=1,max=20"`
	Amenities    *pq.StringArray  `db:"amenities"      json:"amenities"      validate:"omitempty"`
	Notes        *string          `db:"notes"          json:"notes"          validate:"omitempty,max=500"`
}

// StatusUpdate is the update map source for any room status change.
type StatusUpdate struct {
	Status string `db:"status"`
}

type UpdateRoomStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=available reserved occupied needs_service under_cleaning"`
	Note   string `json:"note"   validate:"omitempty,max=500"`
}

type RoomResponse struct {
	ID           string          `json:"id"`
	RoomNumber   string          `json:"room_number"`
	RoomType     string          `json:"room_type"`
	RatePerNight decimal.Decimal `json:"rate_per_night" swaggertype:"string"`
	Floor        int             `json:"floor"`
	MaxOccupancy int             `json:"max_occupancy"`
	Amenities    []string        `json:"amenities"`
	Notes        *string         `json:"notes,omitempty"`
	Status       string          `json:"status"`
	gDto.Metadata
}

func (r *RoomResponse) FromModel(model model.Room) {
	r.ID = model.ID
	r.RoomNumber = model.RoomNumber
	r.RoomType = model.RoomType
	r.RatePerNight = model.RatePerNight
	r.Floor = model.Floor
	r.MaxOccupancy = model.MaxOccupancy
	r.Amenities = []string(model.Amenities)
	r.Notes = model.Notes
	r.Status = model.Status
	r.Metadata.FromModel(model.Metadata)

	if r.Amenities == nil {
		r.Amenities = []string{}
	}
}

type GetRoomsResponse struct {
	Rooms     []RoomResponse `json:"rooms"`
	TotalPage int            `json:"total_page"`
	TotalData int            `json:"total_data"`
}

func (r *GetRoomsResponse) FromModels(models []model.Room, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Rooms = make([]RoomResponse, len(models))
	for i, mod := range models {
		r.Rooms[i].FromModel(mod)
	}
}

type ServiceLogResponse struct {
	ID          string  `json:"id"`
	RoomID      string  `json:"room_id"`
	BookingID   *string `json:"booking_id,omitempty"`
	ServiceType string  `json:"service_type"`
	Description string  `json:"description"`
	PerformedBy string  `json:"performed_by"`
	CreatedAt   string  `json:"created_at"`
}

func (r *ServiceLogResponse) FromModel(model model.ServiceLog) {
	r.ID = model.ID
	r.RoomID = model.RoomID
	r.BookingID = model.BookingID
	r.ServiceType = model.ServiceType
	r.Description = model.Description
	r.PerformedBy = model.PerformedBy
	r.CreatedAt = timezone.Format(model.CreatedAt, constant.DateFormat)
}

type GetServiceLogsResponse struct {
	ServiceLogs []ServiceLogResponse `json:"service_logs"`
}

func (r *GetServiceLogsResponse) FromModels(models []model.ServiceLog) {
	r.ServiceLogs = make([]ServiceLogResponse, len(models))
	for i, mod := range models {
		r.ServiceLogs[i].FromModel(mod)
	}
}

// NewServiceLog builds a log row for room; bookingID may be empty.
func NewServiceLog(roomID, bookingID, serviceType, description, user string) model.ServiceLog {
	var booking *string
	if bookingID != constant.Empty {
		booking = &bookingID
	}

	return model.ServiceLog{
		ID:          uuid.NewString(),
		RoomID:      roomID,
		BookingID:   booking,
		ServiceType: serviceType,
		Description: description,
		PerformedBy: user,
		CreatedAt:   timezone.Now(),
	}
}
