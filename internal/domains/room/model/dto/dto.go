package dto

import (
	"github.com/google/uuid"
	"github.com/lib/pq"

	"bunkhouse/internal/domains/room/model"
	"bunkhouse/shared"
	"bunkhouse/shared/constant"
	gDto "bunkhouse/shared/dto"
	gModel "bunkhouse/shared/model"
	"bunkhouse/shared/timezone"
)

type BedRequest struct {
	BedNumber   string  `json:"bed_number" validate:"required,max=20"`
	PricePerBed float64 `json:"price_per_bed" validate:"required,gte=0"`
	Status      string  `json:"status" validate:"omitempty,oneof=available occupied maintenance"`
}

// ToModel builds a bed row, falling back to defaultStatus when the request
// leaves the status empty.
func (b *BedRequest) ToModel(roomID, defaultStatus, user string) model.Bed {
	status := b.Status
	if status == "" {
		status = defaultStatus
	}

	return model.Bed{
		ID:          uuid.NewString(),
		RoomID:      roomID,
		BedNumber:   b.BedNumber,
		Status:      status,
		PricePerBed: b.PricePerBed,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  user,
			ModifiedBy: user,
		},
	}
}

type CreateRoomRequest struct {
	RoomNumber string       `json:"room_number" validate:"required,max=20"`
	Type       string       `json:"type" validate:"required,max=50"`
	Features   []string     `json:"features" validate:"omitempty,dive,max=50"`
	Beds       []BedRequest `json:"beds" validate:"omitempty,dive"`
}

func (c *CreateRoomRequest) ToModel(user string) model.Room {
	return model.Room{
		ID:         uuid.NewString(),
		RoomNumber: c.RoomNumber,
		Type:       c.Type,
		Features:   pq.StringArray(c.Features),
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  user,
			ModifiedBy: user,
		},
	}
}

func (c *CreateRoomRequest) ToBedModels(roomID, user string) []model.Bed {
	beds := make([]model.Bed, 0, len(c.Beds))
	for _, bed := range c.Beds {
		beds = append(beds, bed.ToModel(roomID, constant.BedStatusAvailable, user))
	}

	return beds
}

type UpdateRoomRequest struct {
	Type     string         `db:"type" json:"type" validate:"omitempty,max=50"`
	Features pq.StringArray `db:"features" json:"features" validate:"omitempty,dive,max=50"`
}

type AddBedsRequest struct {
	Beds []BedRequest `json:"beds" validate:"required,min=1,dive"`
}

// ToBedModels converts the request into bed rows with the add-beds default
// status (maintenance) and drops in-request duplicates, keeping the
// first-seen bed number.
func (a *AddBedsRequest) ToBedModels(roomID, user string) []model.Bed {
	seen := make(map[string]struct{}, len(a.Beds))
	beds := make([]model.Bed, 0, len(a.Beds))

	for _, bed := range a.Beds {
		if _, dup := seen[bed.BedNumber]; dup {
			continue
		}

		seen[bed.BedNumber] = struct{}{}
		beds = append(beds, bed.ToModel(roomID, constant.BedStatusMaintenance, user))
	}

	return beds
}

type UpdateBedRequest struct {
	Status      string   `db:"status" json:"status" validate:"omitempty,oneof=available occupied maintenance"`
	PricePerBed *float64 `db:"price_per_bed" json:"price_per_bed" validate:"omitempty,gte=0"`
}

type BedResponse struct {
	ID          string  `json:"id"`
	BedNumber   string  `json:"bed_number"`
	Status      string  `json:"status"`
	PricePerBed float64 `json:"price_per_bed"`
}

func (r *BedResponse) FromModel(bed model.Bed) {
	r.ID = bed.ID
	r.BedNumber = bed.BedNumber
	r.Status = bed.Status
	r.PricePerBed = bed.PricePerBed
}

type RoomResponse struct {
	ID         string        `json:"id"`
	RoomNumber string        `json:"room_number"`
	Type       string        `json:"type"`
	Features   []string      `json:"features"`
	Beds       []BedResponse `json:"beds"`
	gDto.Metadata
}

func (r *RoomResponse) FromModel(room model.Room, beds []model.Bed) {
	r.ID = room.ID
	r.RoomNumber = room.RoomNumber
	r.Type = room.Type
	r.Features = room.Features

	r.Beds = make([]BedResponse, len(beds))
	for i, bed := range beds {
		r.Beds[i].FromModel(bed)
	}

	r.Metadata.FromModel(room.Metadata)
}

type GetRoomsResponse struct {
	Rooms     []RoomResponse `json:"rooms"`
	TotalPage int            `json:"total_page"`
	TotalData int            `json:"total_data"`
}

func (r *GetRoomsResponse) FromModels(rooms []model.Room, bedsByRoom map[string][]model.Bed, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Rooms = make([]RoomResponse, len(rooms))
	for i, room := range rooms {
		r.Rooms[i].FromModel(room, bedsByRoom[room.ID])
	}
}

type AvailableBedsResponse struct {
	Rooms []RoomResponse `json:"rooms"`
	Total int            `json:"total"`
}

func (r *AvailableBedsResponse) FromModels(rooms []model.Room, bedsByRoom map[string][]model.Bed) {
	r.Rooms = make([]RoomResponse, 0, len(rooms))

	for _, room := range rooms {
		beds := bedsByRoom[room.ID]
		if len(beds) == 0 {
			continue
		}

		var res RoomResponse
		res.FromModel(room, beds)
		r.Rooms = append(r.Rooms, res)
		r.Total += len(beds)
	}
}
