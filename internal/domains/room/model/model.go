package model

import (
	"time"

	"hotelos/shared/model"

	"github.com/lib/pq"
	"github.com/shopspring/decimal"
)

const (
	TableName  = "rooms"
	EntityName = "room"

	FieldID           = "id"
	FieldRoomNumber   = "room_number"
	FieldRoomType     = "room_type"
	FieldRatePerNight = "rate_per_night"
	FieldFloor        = "floor"
	FieldMaxOccupancy = "max_occupancy"
	FieldAmenities    = "amenities"
	FieldNotes        = "notes"
	FieldStatus       = "status"
)

const (
	TypeStandard     = "standard"
	TypeDeluxe       = "deluxe"
	TypeSuite        = "suite"
	TypePresidential = "presidential"
)

// Room status is an operational flag. Availability is derived from bookings.
const (
	StatusAvailable     = "available"
	StatusReserved      = "reserved"
	StatusOccupied      = "occupied"
	StatusNeedsService  = "needs_service"
	StatusUnderCleaning = "under_cleaning"
)

const (
	CacheGet    = "room:get"
	CacheGetAll = "room:gets"
	CacheCount  = "room:count"
)

type Room struct {
	ID           string          `db:"id"`
	RoomNumber   string          `db:"room_number"`
	RoomType     string          `db:"room_type"`
	RatePerNight decimal.Decimal `db:"rate_per_night"`
	Floor        int             `db:"floor"`
	MaxOccupancy int             `db:"max_occupancy"`
	Amenities    pq.StringArray  `db:"amenities"`
	Notes        *string         `db:"notes"`
	Status       string          `db:"status"`
	model.Metadata
}

// manualTransitions lists the status changes housekeeping may make directly.
// occupied is entered by check-in and left by checkout only.
var manualTransitions = map[string][]string{
	StatusAvailable:     {StatusReserved, StatusNeedsService, StatusUnderCleaning},
	StatusReserved:      {StatusAvailable},
	StatusNeedsService:  {StatusUnderCleaning, StatusAvailable},
	StatusUnderCleaning: {StatusAvailable, StatusNeedsService},
}

func CanTransition(from, to string) bool {
	for _, next := range manualTransitions[from] {
		if next == to {
			return true
		}
	}

	return false
}

const (
	ServiceLogTableName  = "service_logs"
	ServiceLogEntityName = "service_log"

	FieldServiceLogRoomID    = "room_id"
	FieldServiceLogCreatedAt = "created_at"
)

const (
	ServiceTypeStatusChange = "status_change"
	ServiceTypeCheckIn      = "check_in"
	ServiceTypeCheckout     = "checkout"
)

// ServiceLog records a housekeeping event on a room. Rows are never updated.
type ServiceLog struct {
	ID          string    `db:"id"`
	RoomID      string    `db:"room_id"`
	BookingID   *string   `db:"booking_id"`
	ServiceType string    `db:"service_type"`
	Description string    `db:"description"`
	PerformedBy string    `db:"performed_by"`
	CreatedAt   time.Time `db:"created_at"`
}
