package model

import (
	"time"

	"bunkhouse/shared/model"
)

const (
	TableName  = "bookings"
	EntityName = "booking"

	FieldID            = "id"
	FieldUserID        = "user_id"
	FieldGuestName     = "guest_name"
	FieldGuestEmail    = "guest_email"
	FieldGuestPhone    = "guest_phone"
	FieldRoomID        = "room_id"
	FieldBedNumber     = "bed_number"
	FieldPricePerBed   = "price_per_bed"
	FieldBookingDate   = "booking_date"
	FieldCheckinDate   = "checkin_date"
	FieldCheckoutDate  = "checkout_date"
	FieldStatus        = "status"
	FieldPaymentStatus = "payment_status"
	FieldPaymentDate   = "payment_date"
	FieldPaymentMethod = "payment_method"
	FieldTransactionID = "transaction_id"
	FieldCreatedBy     = "created_by"
)

type Booking struct {
	ID            string     `db:"id"`
	UserID        *string    `db:"user_id"`
	GuestName     *string    `db:"guest_name"`
	GuestEmail    *string    `db:"guest_email"`
	GuestPhone    *string    `db:"guest_phone"`
	RoomID        string     `db:"room_id"`
	BedNumber     string     `db:"bed_number"`
	PricePerBed   float64    `db:"price_per_bed"`
	BookingDate   time.Time  `db:"booking_date"`
	CheckinDate   time.Time  `db:"checkin_date"`
	CheckoutDate  time.Time  `db:"checkout_date"`
	Status        string     `db:"status"`
	PaymentStatus string     `db:"payment_status"`
	PaymentDate   *time.Time `db:"payment_date"`
	PaymentMethod *string    `db:"payment_method"`
	TransactionID *string    `db:"transaction_id"`
	model.Metadata

	RoomNumber string  `db:"room_number" table:"rooms"`
	Username   *string `db:"username" table:"users"`
}

func (Booking) GetJoinQuery() string {
	return "LEFT JOIN rooms ON rooms.id = bookings.room_id LEFT JOIN users ON users.id = bookings.user_id"
}
