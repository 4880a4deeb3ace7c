package model

import (
	"github.com/lib/pq"

	"bunkhouse/shared/model"
)

const (
	TableName  = "rooms"
	EntityName = "room"

	FieldID         = "id"
	FieldRoomNumber = "room_number"
	FieldType       = "type"
	FieldFeatures   = "features"

	// ExprBedCount counts a room's beds inline, so the bed-count listing
	// filter runs through the same named-query path as column filters.
	ExprBedCount = "(SELECT COUNT(*) FROM " + BedTableName +
		" WHERE " + BedTableName + "." + FieldBedRoomID + " = " + TableName + "." + FieldID + ")"
)

type Room struct {
	ID         string         `db:"id"`
	RoomNumber string         `db:"room_number"`
	Type       string         `db:"type"`
	Features   pq.StringArray `db:"features"`
	model.Metadata
}
