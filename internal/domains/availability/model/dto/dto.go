package dto

import (
	"hotelos/internal/domains/availability"
	roomModel "hotelos/internal/domains/room/model"
	roomDto "hotelos/internal/domains/room/model/dto"
	"hotelos/shared/timezone"
)

type CheckAvailabilityRequest struct {
	RoomID           string `json:"room_id"            validate:"required,uuid"`
	CheckIn          string `json:"check_in"           validate:"required,date"`
	CheckOut         string `json:"check_out"          validate:"required,date"`
	ExcludeBookingID string `json:"exclude_booking_id" validate:"omitempty,uuid"`
}

type ListAvailableRoomsRequest struct {
	CheckIn  string `json:"check_in"  validate:"required,date"`
	CheckOut string `json:"check_out" validate:"required,date"`
}

type AvailabilityResponse struct {
	RoomID    string `json:"room_id"`
	CheckIn   string `json:"check_in"`
	CheckOut  string `json:"check_out"`
	Nights    int    `json:"nights"`
	Available bool   `json:"available"`
}

func (r *AvailabilityResponse) FromStay(roomID string, stay availability.Stay, available bool) {
	r.RoomID = roomID
	r.CheckIn = timezone.FormatDate(stay.CheckIn)
	r.CheckOut = timezone.FormatDate(stay.CheckOut)
	r.Nights = stay.Nights
	r.Available = available
}

type AvailableRoomsResponse struct {
	CheckIn  string                 `json:"check_in"`
	CheckOut string                 `json:"check_out"`
	Nights   int                    `json:"nights"`
	Rooms    []roomDto.RoomResponse `json:"rooms"`
}

func (r *AvailableRoomsResponse) FromModels(stay availability.Stay, rooms []roomModel.Room) {
	r.CheckIn = timezone.FormatDate(stay.CheckIn)
	r.CheckOut = timezone.FormatDate(stay.CheckOut)
	r.Nights = stay.Nights

	r.Rooms = make([]roomDto.RoomResponse, len(rooms))
	for i, mod := range rooms {
		r.Rooms[i].FromModel(mod)
	}
}
