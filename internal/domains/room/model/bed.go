package model

import "bunkhouse/shared/model"

const (
	BedTableName  = "beds"
	BedEntityName = "bed"

	FieldBedID       = "id"
	FieldBedRoomID   = "room_id"
	FieldBedNumber   = "bed_number"
	FieldBedStatus   = "status"
	FieldPricePerBed = "price_per_bed"

	// Conflict target of the beds unique constraint, used to keep the
	// first-seen entry when duplicate bed numbers are submitted.
	BedConflictColumns = FieldBedRoomID + ", " + FieldBedNumber
)

type Bed struct {
	ID          string  `db:"id"`
	RoomID      string  `db:"room_id"`
	BedNumber   string  `db:"bed_number"`
	Status      string  `db:"status"`
	PricePerBed float64 `db:"price_per_bed"`
	model.Metadata
}
