package dto

import (
	"time"

	"github.com/google/uuid"

	"bunkhouse/internal/domains/booking/model"
	"bunkhouse/shared"
	"bunkhouse/shared/constant"
	gDto "bunkhouse/shared/dto"
	"bunkhouse/shared/failure"
	gModel "bunkhouse/shared/model"
	"bunkhouse/shared/timezone"
)

type StayRequest struct {
	RoomNumber   string `json:"room_number" validate:"required,max=20"`
	BedNumber    string `json:"bed_number" validate:"required,max=20"`
	CheckinDate  string `json:"checkin_date" validate:"required"`
	CheckoutDate string `json:"checkout_date" validate:"required"`
}

// ParseDates parses the stay window and rejects a checkout on or before the
// checkin. Dates use the YYYY-MM-DD wire format.
func (s *StayRequest) ParseDates() (checkin, checkout time.Time, err error) {
	checkin, err = timezone.Parse(constant.DateOnlyFormat, s.CheckinDate)
	if err != nil {
		return checkin, checkout, failure.BadRequestFromString("invalid checkin_date format, expected YYYY-MM-DD") // nolint:wrapcheck
	}

	checkout, err = timezone.Parse(constant.DateOnlyFormat, s.CheckoutDate)
	if err != nil {
		return checkin, checkout, failure.BadRequestFromString("invalid checkout_date format, expected YYYY-MM-DD") // nolint:wrapcheck
	}

	if !checkout.After(checkin) {
		return checkin, checkout, failure.BadRequestFromString("checkout_date must be after checkin_date") // nolint:wrapcheck
	}

	return checkin, checkout, nil
}

type CreateBookingRequest struct {
	StayRequest
}

func (c *CreateBookingRequest) ToModel(userID, roomID string, pricePerBed float64, checkin, checkout time.Time) model.Booking {
	return model.Booking{
		ID:            uuid.NewString(),
		UserID:        &userID,
		RoomID:        roomID,
		BedNumber:     c.BedNumber,
		PricePerBed:   pricePerBed,
		BookingDate:   timezone.Now(),
		CheckinDate:   checkin,
		CheckoutDate:  checkout,
		Status:        constant.BookingStatusPending,
		PaymentStatus: constant.PaymentStatusPending,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  userID,
			ModifiedBy: userID,
		},
	}
}

type CreateAnonymousBookingRequest struct {
	StayRequest
	GuestName  string `json:"guest_name" validate:"required,max=100"`
	GuestEmail string `json:"guest_email" validate:"required,email"`
	GuestPhone string `json:"guest_phone" validate:"required,max=20"`
}

// ToModel builds a walk-in booking. It carries guest contact details instead
// of a user reference and starts out confirmed.
func (c *CreateAnonymousBookingRequest) ToModel(creator, roomID string, pricePerBed float64, checkin, checkout time.Time) model.Booking {
	return model.Booking{
		ID:            uuid.NewString(),
		GuestName:     &c.GuestName,
		GuestEmail:    &c.GuestEmail,
		GuestPhone:    &c.GuestPhone,
		RoomID:        roomID,
		BedNumber:     c.BedNumber,
		PricePerBed:   pricePerBed,
		BookingDate:   timezone.Now(),
		CheckinDate:   checkin,
		CheckoutDate:  checkout,
		Status:        constant.BookingStatusConfirmed,
		PaymentStatus: constant.PaymentStatusPending,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  creator,
			ModifiedBy: creator,
		},
	}
}

type UpdateBookingStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=pending confirmed canceled"`
}

type UpdatePaymentRequest struct {
	PaymentStatus string `db:"payment_status" json:"payment_status" validate:"required,oneof=pending completed failed"`
	PaymentMethod string `db:"payment_method" json:"payment_method" validate:"omitempty,oneof=cash online"`
	TransactionID string `db:"transaction_id" json:"transaction_id" validate:"omitempty,max=100"`
}

type BookingResponse struct {
	ID            string     `json:"id"`
	UserID        *string    `json:"user_id,omitempty"`
	Username      *string    `json:"username,omitempty"`
	GuestName     *string    `json:"guest_name,omitempty"`
	GuestEmail    *string    `json:"guest_email,omitempty"`
	GuestPhone    *string    `json:"guest_phone,omitempty"`
	RoomNumber    string     `json:"room_number"`
	BedNumber     string     `json:"bed_number"`
	PricePerBed   float64    `json:"price_per_bed"`
	BookingDate   time.Time  `json:"booking_date"`
	CheckinDate   time.Time  `json:"checkin_date"`
	CheckoutDate  time.Time  `json:"checkout_date"`
	Status        string     `json:"status"`
	PaymentStatus string     `json:"payment_status"`
	PaymentDate   *time.Time `json:"payment_date,omitempty"`
	PaymentMethod *string    `json:"payment_method,omitempty"`
	TransactionID *string    `json:"transaction_id,omitempty"`
	gDto.Metadata
}

func (r *BookingResponse) FromModel(booking model.Booking) {
	r.ID = booking.ID
	r.UserID = booking.UserID
	r.Username = booking.Username
	r.GuestName = booking.GuestName
	r.GuestEmail = booking.GuestEmail
	r.GuestPhone = booking.GuestPhone
	r.RoomNumber = booking.RoomNumber
	r.BedNumber = booking.BedNumber
	r.PricePerBed = booking.PricePerBed
	r.BookingDate = booking.BookingDate
	r.CheckinDate = booking.CheckinDate
	r.CheckoutDate = booking.CheckoutDate
	r.Status = booking.Status
	r.PaymentStatus = booking.PaymentStatus
	r.PaymentDate = booking.PaymentDate
	r.PaymentMethod = booking.PaymentMethod
	r.TransactionID = booking.TransactionID
	r.Metadata.FromModel(booking.Metadata)
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

type ReceiptResponse struct {
	BookingID     string     `json:"booking_id"`
	GuestName     string     `json:"guest_name"`
	RoomNumber    string     `json:"room_number"`
	BedNumber     string     `json:"bed_number"`
	CheckinDate   time.Time  `json:"checkin_date"`
	CheckoutDate  time.Time  `json:"checkout_date"`
	Days          int        `json:"days"`
	PricePerBed   float64    `json:"price_per_bed"`
	TotalPrice    float64    `json:"total_price"`
	PaymentStatus string     `json:"payment_status"`
	PaymentMethod *string    `json:"payment_method,omitempty"`
	TransactionID *string    `json:"transaction_id,omitempty"`
	IssuedAt      time.Time  `json:"issued_at"`
	PaymentDate   *time.Time `json:"payment_date,omitempty"`
}

func (r *ReceiptResponse) FromModel(booking model.Booking) {
	days := shared.StayDays(booking.CheckinDate, booking.CheckoutDate)

	guestName := constant.ContextGuest
	switch {
	case booking.GuestName != nil:
		guestName = *booking.GuestName
	case booking.Username != nil:
		guestName = *booking.Username
	}

	r.BookingID = booking.ID
	r.GuestName = guestName
	r.RoomNumber = booking.RoomNumber
	r.BedNumber = booking.BedNumber
	r.CheckinDate = booking.CheckinDate
	r.CheckoutDate = booking.CheckoutDate
	r.Days = days
	r.PricePerBed = booking.PricePerBed
	r.TotalPrice = float64(days) * booking.PricePerBed
	r.PaymentStatus = booking.PaymentStatus
	r.PaymentMethod = booking.PaymentMethod
	r.TransactionID = booking.TransactionID
	r.IssuedAt = timezone.Now()
	r.PaymentDate = booking.PaymentDate
}
