package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"bunkhouse/config"
	"bunkhouse/infras/kafka"
	"bunkhouse/infras/otel"
	"bunkhouse/internal/domains/booking/model"
	"bunkhouse/internal/domains/booking/model/dto"
	"bunkhouse/internal/domains/booking/repository"
	roomModel "bunkhouse/internal/domains/room/model"
	roomRepository "bunkhouse/internal/domains/room/repository"
	"bunkhouse/shared"
	"bunkhouse/shared/cache"
	"bunkhouse/shared/constant"
	gDto "bunkhouse/shared/dto"
	"bunkhouse/shared/failure"
	"bunkhouse/shared/timezone"
)

const (
	cacheGetBooking    = "booking:get"
	cacheGetAllBooking = "booking:gets"
	cacheCountBooking  = "booking:count"

	// Owned by the room service, invalidated here because booking a bed
	// changes bed availability.
	cacheAvailableBeds = "room:available_beds"
	cacheGetRoom       = "room:get"
)

const (
	eventBookingCreated        = "booking.created"
	eventBookingStatusChanged  = "booking.status_changed"
	eventBookingPaymentUpdated = "booking.payment_updated"
)

// bookingEvent is the payload published to the booking events topic so
// downstream consumers (reporting, notifications) can react to changes.
type bookingEvent struct {
	Event     string `json:"event"`
	BookingID string `json:"booking_id"`
	Status    string `json:"status,omitempty"`
}

type Booking interface {
	Create(ctx context.Context, req dto.CreateBookingRequest) (dto.BookingResponse, error)
	CreateAnonymous(ctx context.Context, req dto.CreateAnonymousBookingRequest) (dto.BookingResponse, error)
	GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (dto.GetBookingsResponse, error)
	Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (int, error)
	Get(ctx context.Context, id string) (dto.BookingResponse, error)
	UpdateStatus(ctx context.Context, req dto.UpdateBookingStatusRequest, id string) error
	UpdatePayment(ctx context.Context, req dto.UpdatePaymentRequest, id string) error
	Receipt(ctx context.Context, id string) (dto.ReceiptResponse, error)
}

type serviceImpl struct {
	repo     repository.Booking
	roomRepo roomRepository.Room
	bedRepo  roomRepository.Bed
	cfg      *config.Config
	cache    cache.RedisCache
	otel     otel.Otel
	kafka    kafka.Client
}

func New(repo repository.Booking, roomRepo roomRepository.Room, bedRepo roomRepository.Bed, cfg *config.Config, cache cache.RedisCache, otel otel.Otel, kafka kafka.Client) Booking {
	return &serviceImpl{
		repo:     repo,
		roomRepo: roomRepo,
		bedRepo:  bedRepo,
		cfg:      cfg,
		cache:    cache,
		otel:     otel,
		kafka:    kafka,
	}
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreateBookingRequest) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Create")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	booking, err := s.bookBed(ctx, req.StayRequest, func(roomID string, pricePerBed float64, checkin, checkout time.Time) model.Booking {
		return req.ToModel(user, roomID, pricePerBed, checkin, checkout)
	})
	if err != nil {
		return res, err
	}

	s.publishBookingEvent(ctx, eventBookingCreated, booking.ID, booking.Status)

	res.FromModel(booking)

	return res, nil
}

func (s *serviceImpl) CreateAnonymous(ctx context.Context, req dto.CreateAnonymousBookingRequest) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".CreateAnonymous")
	defer scope.End()
	defer scope.TraceIfError(err)

	creator, _ := ctx.Value(constant.ContextKeyUserID).(string)
	if creator == constant.Empty {
		creator = constant.ContextGuest
	}

	booking, err := s.bookBed(ctx, req.StayRequest, func(roomID string, pricePerBed float64, checkin, checkout time.Time) model.Booking {
		return req.ToModel(creator, roomID, pricePerBed, checkin, checkout)
	})
	if err != nil {
		return res, err
	}

	s.publishBookingEvent(ctx, eventBookingCreated, booking.ID, booking.Status)

	res.FromModel(booking)

	return res, nil
}

// bookBed runs the whole reservation inside one transaction: the bed row is
// locked first, so concurrent requests for the same bed serialize and the
// overlap check cannot race.
func (s *serviceImpl) bookBed(ctx context.Context, stay dto.StayRequest, build func(roomID string, pricePerBed float64, checkin, checkout time.Time) model.Booking) (booking model.Booking, err error) {
	checkin, checkout, err := stay.ParseDates()
	if err != nil {
		return booking, err
	}

	room, err := s.roomRepo.Get(ctx, s.roomNumberFilter(stay.RoomNumber))
	if err != nil {
		log.Error().Err(err).Msg("failed to get room")

		return booking, fmt.Errorf("failed to get room: %w", err)
	}

	if room.ID == constant.Empty {
		return booking, failure.NotFound("room not found") // nolint:wrapcheck
	}

	tx, err := s.repo.BeginTx(ctx)
	if err != nil {
		return booking, fmt.Errorf("failed to begin transaction: %w", err)
	}

	defer func() {
		if err != nil {
			if rbErr := tx.Rollback(); rbErr != nil {
				log.Error().Err(rbErr).Msg("failed to rollback booking")
			}
		}
	}()

	bed, err := s.bedRepo.GetForUpdateTx(ctx, tx, s.bedFilter(room.ID, stay.BedNumber))
	if err != nil {
		log.Error().Err(err).Msg("failed to lock bed")

		return booking, fmt.Errorf("failed to lock bed: %w", err)
	}

	if bed.ID == constant.Empty {
		return booking, failure.NotFound("bed not found") // nolint:wrapcheck
	}

	if bed.Status == constant.BedStatusMaintenance {
		return booking, failure.Conflict("bed is under maintenance") // nolint:wrapcheck
	}

	overlap, err := s.repo.ExistTx(ctx, tx, s.overlapFilter(room.ID, stay.BedNumber, checkin, checkout))
	if err != nil {
		log.Error().Err(err).Msg("failed to check overlapping bookings")

		return booking, fmt.Errorf("failed to check overlapping bookings: %w", err)
	}

	if overlap {
		return booking, failure.Conflict("bed is already booked for the selected dates") // nolint:wrapcheck
	}

	booking = build(room.ID, bed.PricePerBed, checkin, checkout)

	if err = s.repo.InsertTx(ctx, tx, booking); err != nil {
		log.Error().Err(err).Msg("failed to create booking")

		return booking, fmt.Errorf("failed to create booking: %w", err)
	}

	bedUpdate := map[string]any{
		roomModel.FieldBedStatus: constant.BedStatusOccupied,
		constant.FieldModifiedAt: timezone.Now(),
		constant.FieldModifiedBy: booking.CreatedBy,
	}

	if err = s.bedRepo.UpdateTx(ctx, tx, bedUpdate, s.bedFilter(room.ID, stay.BedNumber)); err != nil {
		log.Error().Err(err).Msg("failed to update bed status")

		return booking, fmt.Errorf("failed to update bed status: %w", err)
	}

	if err = tx.Commit(); err != nil {
		log.Error().Err(err).Msg("failed to commit booking")

		return booking, fmt.Errorf("failed to commit booking: %w", err)
	}

	booking.RoomNumber = room.RoomNumber

	s.invalidateBookingCaches(ctx, booking.ID, room.ID)

	return booking, nil
}

func (s *serviceImpl) GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetBookingsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAll")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKeyWithQuery(cacheGetAllBooking, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for bookings")

		return res, nil
	}

	total, err := s.Count(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count bookings")

		return res, fmt.Errorf("failed to count bookings: %w", err)
	}

	bookings, err := s.repo.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get bookings")

		return res, fmt.Errorf("failed to get bookings: %w", err)
	}

	res.FromModels(bookings, total, req.Limit)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save bookings to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res int, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Count")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKeyWithQuery(cacheCountBooking, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for booking count")

		return res, nil
	}

	res, err = s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count bookings")

		return res, fmt.Errorf("failed to count bookings: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save booking count to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKey(cacheGetBooking, id)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for booking")

		return res, nil
	}

	booking, err := s.getBooking(ctx, id)
	if err != nil {
		return res, err
	}

	res.FromModel(booking)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save booking to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) UpdateStatus(ctx context.Context, req dto.UpdateBookingStatusRequest, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".UpdateStatus")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	booking, err := s.getBooking(ctx, id)
	if err != nil {
		return err
	}

	update := map[string]any{
		model.FieldStatus:        req.Status,
		constant.FieldModifiedAt: timezone.Now(),
		constant.FieldModifiedBy: user,
	}

	if err = s.repo.Update(ctx, update, shared.FilterByID(id, model.FieldID, model.TableName)); err != nil {
		log.Error().Err(err).Msg("failed to update booking status")

		return fmt.Errorf("failed to update booking status: %w", err)
	}

	// A canceled booking releases the bed back to the pool.
	if req.Status == constant.BookingStatusCanceled && booking.Status != constant.BookingStatusCanceled {
		bedUpdate := map[string]any{
			roomModel.FieldBedStatus: constant.BedStatusAvailable,
			constant.FieldModifiedAt: timezone.Now(),
			constant.FieldModifiedBy: user,
		}

		if err = s.bedRepo.Update(ctx, bedUpdate, s.bedFilter(booking.RoomID, booking.BedNumber)); err != nil {
			log.Error().Err(err).Msg("failed to release bed")

			return fmt.Errorf("failed to release bed: %w", err)
		}
	}

	s.publishBookingEvent(ctx, eventBookingStatusChanged, id, req.Status)

	s.invalidateBookingCaches(ctx, id, booking.RoomID)

	return nil
}

func (s *serviceImpl) UpdatePayment(ctx context.Context, req dto.UpdatePaymentRequest, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".UpdatePayment")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	booking, err := s.getBooking(ctx, id)
	if err != nil {
		return err
	}

	updatedFields := shared.TransformFields(req, user)
	if req.PaymentStatus == constant.PaymentStatusCompleted {
		updatedFields[model.FieldPaymentDate] = timezone.Now()
	}

	if err = s.repo.Update(ctx, updatedFields, shared.FilterByID(id, model.FieldID, model.TableName)); err != nil {
		log.Error().Err(err).Msg("failed to update booking payment")

		return fmt.Errorf("failed to update booking payment: %w", err)
	}

	s.publishBookingEvent(ctx, eventBookingPaymentUpdated, id, req.PaymentStatus)

	s.invalidateBookingCaches(ctx, id, booking.RoomID)

	return nil
}

func (s *serviceImpl) Receipt(ctx context.Context, id string) (res dto.ReceiptResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Receipt")
	defer scope.End()
	defer scope.TraceIfError(err)

	booking, err := s.getBooking(ctx, id)
	if err != nil {
		return res, err
	}

	res.FromModel(booking)

	return res, nil
}

func (s *serviceImpl) getBooking(ctx context.Context, id string) (model.Booking, error) {
	booking, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get booking")

		return booking, fmt.Errorf("failed to get booking: %w", err)
	}

	if booking.ID == constant.Empty {
		return booking, failure.NotFound("booking not found") // nolint:wrapcheck
	}

	return booking, nil
}

func (s *serviceImpl) roomNumberFilter(roomNumber string) gDto.FilterGroup {
	return gDto.FilterGroup{
		Filters: []any{
			gDto.Filter{
				Field:    roomModel.FieldRoomNumber,
				Operator: gDto.FilterOperatorEq,
				Value:    roomNumber,
				Table:    roomModel.TableName,
			},
		},
	}
}

func (s *serviceImpl) bedFilter(roomID, bedNumber string) gDto.FilterGroup {
	return gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{
				Field:    roomModel.FieldBedRoomID,
				Operator: gDto.FilterOperatorEq,
				Value:    roomID,
				Table:    roomModel.BedTableName,
			},
			gDto.Filter{
				Field:    roomModel.FieldBedNumber,
				Operator: gDto.FilterOperatorEq,
				Value:    bedNumber,
				Table:    roomModel.BedTableName,
			},
		},
	}
}

// overlapFilter matches live bookings whose stay truly intersects the
// requested window: an existing stay overlaps when it starts before the new
// checkout and ends after the new checkin. Back-to-back stays sharing a
// boundary date do not collide.
func (s *serviceImpl) overlapFilter(roomID, bedNumber string, checkin, checkout time.Time) gDto.FilterGroup {
	return gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{
				Field:    model.FieldRoomID,
				Operator: gDto.FilterOperatorEq,
				Value:    roomID,
				Table:    model.TableName,
			},
			gDto.Filter{
				Field:    model.FieldBedNumber,
				Operator: gDto.FilterOperatorEq,
				Value:    bedNumber,
				Table:    model.TableName,
			},
			gDto.Filter{
				Field:    model.FieldStatus,
				Operator: gDto.FilterOperatorIn,
				Value:    []string{constant.BookingStatusPending, constant.BookingStatusConfirmed},
				Table:    model.TableName,
			},
			gDto.Filter{
				ArgName:  "overlap_checkout",
				Field:    model.FieldCheckinDate,
				Operator: gDto.FilterOperatorLess,
				Value:    checkout,
				Table:    model.TableName,
			},
			gDto.Filter{
				ArgName:  "overlap_checkin",
				Field:    model.FieldCheckoutDate,
				Operator: gDto.FilterOperatorGreater,
				Value:    checkin,
				Table:    model.TableName,
			},
		},
	}
}

// publishBookingEvent is best effort: the booking is already committed, so a
// broker outage must not fail the request.
func (s *serviceImpl) publishBookingEvent(ctx context.Context, event, bookingID, status string) {
	go func() {
		c := context.WithoutCancel(ctx)

		msg := kafka.Message{
			Key: bookingID,
			Value: bookingEvent{
				Event:     event,
				BookingID: bookingID,
				Status:    status,
			},
		}

		if err := s.kafka.SendMessages(c, s.cfg.Kafka.Topic.BookingEvents, msg); err != nil {
			log.Error().Err(err).Str("event", event).Msg("failed to publish booking event")
		}
	}()
}

func (s *serviceImpl) invalidateBookingCaches(ctx context.Context, bookingID, roomID string) {
	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Delete(c, shared.BuildCacheKey(cacheGetBooking, bookingID)); err != nil {
			log.Error().Err(err).Msg("failed to delete booking from cache")
		}

		if err := s.cache.Delete(c, shared.BuildCacheKey(cacheGetRoom, roomID)); err != nil {
			log.Error().Err(err).Msg("failed to delete room from cache")
		}

		shared.InvalidateCaches(c, s.cache, cacheGetAllBooking)
		shared.InvalidateCaches(c, s.cache, cacheCountBooking)
		shared.InvalidateCaches(c, s.cache, cacheAvailableBeds)
	}()
}
