package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"bunkhouse/config"
	"bunkhouse/infras/otel"
	"bunkhouse/internal/domains/room/model"
	"bunkhouse/internal/domains/room/model/dto"
	"bunkhouse/internal/domains/room/repository"
	"bunkhouse/shared"
	"bunkhouse/shared/cache"
	"bunkhouse/shared/constant"
	gDto "bunkhouse/shared/dto"
	"bunkhouse/shared/failure"
)

const (
	cacheGetRoom       = "room:get"
	cacheGetAllRoom    = "room:gets"
	cacheCountRoom     = "room:count"
	cacheAvailableBeds = "room:available_beds"
)

type Room interface {
	Create(ctx context.Context, req dto.CreateRoomRequest) error
	GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (dto.GetRoomsResponse, error)
	Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (int, error)
	Get(ctx context.Context, id string) (dto.RoomResponse, error)
	Update(ctx context.Context, req dto.UpdateRoomRequest, id string) error
	Delete(ctx context.Context, id string) error
	AddBeds(ctx context.Context, req dto.AddBedsRequest, roomNumber string) error
	UpdateBed(ctx context.Context, req dto.UpdateBedRequest, roomNumber, bedNumber string) error
	AvailableBeds(ctx context.Context) (dto.AvailableBedsResponse, error)
}

type serviceImpl struct {
	repo    repository.Room
	bedRepo repository.Bed
	cfg     *config.Config
	cache   cache.RedisCache
	otel    otel.Otel
}

func New(repo repository.Room, bedRepo repository.Bed, cfg *config.Config, cache cache.RedisCache, otel otel.Otel) Room {
	return &serviceImpl{
		repo:    repo,
		bedRepo: bedRepo,
		cfg:     cfg,
		cache:   cache,
		otel:    otel,
	}
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreateRoomRequest) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Create")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	exists, err := s.repo.Exist(ctx, s.roomNumberFilter(req.RoomNumber))
	if err != nil {
		log.Error().Err(err).Msg("failed to check if room exists")

		return fmt.Errorf("failed to check if room exists: %w", err)
	}

	if exists {
		return failure.Conflict("room number already exists") // nolint:wrapcheck
	}

	room := req.ToModel(user)
	beds := req.ToBedModels(room.ID, user)

	tx, err := s.repo.BeginTx(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	defer func() {
		if err != nil {
			if rbErr := tx.Rollback(); rbErr != nil {
				log.Error().Err(rbErr).Msg("failed to rollback room creation")
			}
		}
	}()

	if err = s.repo.InsertTx(ctx, tx, room); err != nil {
		log.Error().Err(err).Msg("failed to create room")

		return fmt.Errorf("failed to create room: %w", err)
	}

	if len(beds) > 0 {
		if err = s.bedRepo.InsertBulkTx(ctx, tx, beds); err != nil {
			log.Error().Err(err).Msg("failed to create beds")

			return fmt.Errorf("failed to create beds: %w", err)
		}
	}

	if err = tx.Commit(); err != nil {
		log.Error().Err(err).Msg("failed to commit room creation")

		return fmt.Errorf("failed to commit room creation: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		shared.InvalidateCaches(c, s.cache, cacheGetAllRoom)
		shared.InvalidateCaches(c, s.cache, cacheCountRoom)
		shared.InvalidateCaches(c, s.cache, cacheAvailableBeds)
	}()

	return nil
}

func (s *serviceImpl) GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetRoomsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAll")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKeyWithQuery(cacheGetAllRoom, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for rooms")

		return res, nil
	}

	total, err := s.Count(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count rooms")

		return res, fmt.Errorf("failed to count rooms: %w", err)
	}

	rooms, err := s.repo.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get rooms")

		return res, fmt.Errorf("failed to get rooms: %w", err)
	}

	bedsByRoom, err := s.bedsByRooms(ctx, rooms, gDto.FilterGroup{})
	if err != nil {
		return res, err
	}

	res.FromModels(rooms, bedsByRoom, total, req.Limit)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save rooms to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res int, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Count")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKeyWithQuery(cacheCountRoom, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for room count")

		return res, nil
	}

	res, err = s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count rooms")

		return res, fmt.Errorf("failed to count rooms: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save room count to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.RoomResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKey(cacheGetRoom, id)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for room")

		return res, nil
	}

	room, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get room")

		return res, fmt.Errorf("failed to get room: %w", err)
	}

	if room.ID == constant.Empty {
		return res, failure.NotFound("room not found") // nolint:wrapcheck
	}

	beds, err := s.bedRepo.GetAll(ctx, gDto.QueryParams{}, shared.FilterByID(room.ID, model.FieldBedRoomID, model.BedTableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get beds")

		return res, fmt.Errorf("failed to get beds: %w", err)
	}

	res.FromModel(room, beds)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save room to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Update(ctx context.Context, req dto.UpdateRoomRequest, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Update")
	defer scope.End()
	defer scope.TraceIfError(err)

	if req.Type == constant.Empty && len(req.Features) == 0 {
		return failure.BadRequestFromString("update request cannot be empty") // nolint:wrapcheck
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	exist, err := s.repo.Exist(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to check if room exists")

		return fmt.Errorf("failed to check if room exists: %w", err)
	}

	if !exist {
		log.Error().Msg("room not found")

		return failure.NotFound("room not found") // nolint:wrapcheck
	}

	updatedFields := shared.TransformFields(req, user)
	if err := s.repo.Update(ctx, updatedFields, filter); err != nil {
		log.Error().Err(err).Msg("failed to update room")

		return fmt.Errorf("failed to update room: %w", err)
	}

	s.invalidateRoomCaches(ctx, id)

	return nil
}

func (s *serviceImpl) Delete(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Delete")
	defer scope.End()
	defer scope.TraceIfError(err)

	exist, err := s.repo.Exist(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to check if room exists")

		return fmt.Errorf("failed to check if room exists: %w", err)
	}

	if !exist {
		log.Error().Msg("room not found")

		return failure.NotFound("room not found") // nolint:wrapcheck
	}

	// Beds are removed by the FK cascade.
	if err := s.repo.Delete(ctx, shared.FilterByID(id, model.FieldID, model.TableName)); err != nil {
		log.Error().Err(err).Msg("failed to delete room")

		return fmt.Errorf("failed to delete room: %w", err)
	}

	s.invalidateRoomCaches(ctx, id)

	return nil
}

func (s *serviceImpl) AddBeds(ctx context.Context, req dto.AddBedsRequest, roomNumber string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".AddBeds")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	room, err := s.repo.Get(ctx, s.roomNumberFilter(roomNumber))
	if err != nil {
		log.Error().Err(err).Msg("failed to get room")

		return fmt.Errorf("failed to get room: %w", err)
	}

	if room.ID == constant.Empty {
		return failure.NotFound("room not found") // nolint:wrapcheck
	}

	beds := req.ToBedModels(room.ID, user)

	// ON CONFLICT DO NOTHING keeps the already-stored bed when a submitted
	// bed number collides with an existing one.
	if err = s.bedRepo.InsertBulkIgnoreConflict(ctx, beds, model.BedConflictColumns); err != nil {
		log.Error().Err(err).Msg("failed to add beds")

		return fmt.Errorf("failed to add beds: %w", err)
	}

	s.invalidateRoomCaches(ctx, room.ID)

	return nil
}

func (s *serviceImpl) UpdateBed(ctx context.Context, req dto.UpdateBedRequest, roomNumber, bedNumber string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".UpdateBed")
	defer scope.End()
	defer scope.TraceIfError(err)

	if req == (dto.UpdateBedRequest{}) {
		return failure.BadRequestFromString("update request cannot be empty") // nolint:wrapcheck
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	room, err := s.repo.Get(ctx, s.roomNumberFilter(roomNumber))
	if err != nil {
		log.Error().Err(err).Msg("failed to get room")

		return fmt.Errorf("failed to get room: %w", err)
	}

	if room.ID == constant.Empty {
		return failure.NotFound("room not found") // nolint:wrapcheck
	}

	bedFilter := s.bedFilter(room.ID, bedNumber)

	exist, err := s.bedRepo.Exist(ctx, bedFilter)
	if err != nil {
		log.Error().Err(err).Msg("failed to check if bed exists")

		return fmt.Errorf("failed to check if bed exists: %w", err)
	}

	if !exist {
		return failure.NotFound("bed not found") // nolint:wrapcheck
	}

	updatedFields := shared.TransformFields(req, user)
	if err = s.bedRepo.Update(ctx, updatedFields, bedFilter); err != nil {
		log.Error().Err(err).Msg("failed to update bed")

		return fmt.Errorf("failed to update bed: %w", err)
	}

	s.invalidateRoomCaches(ctx, room.ID)

	return nil
}

func (s *serviceImpl) AvailableBeds(ctx context.Context) (res dto.AvailableBedsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".AvailableBeds")
	defer scope.End()
	defer scope.TraceIfError(err)

	err = s.cache.Get(ctx, cacheAvailableBeds, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheAvailableBeds).Msg("cache hit for available beds")

		return res, nil
	}

	availableFilter := gDto.FilterGroup{
		Filters: []any{
			gDto.Filter{
				Field:    model.FieldBedStatus,
				Operator: gDto.FilterOperatorEq,
				Value:    constant.BedStatusAvailable,
				Table:    model.BedTableName,
			},
		},
	}

	rooms, err := s.repo.GetAll(ctx, gDto.QueryParams{}, gDto.FilterGroup{})
	if err != nil {
		log.Error().Err(err).Msg("failed to get rooms")

		return res, fmt.Errorf("failed to get rooms: %w", err)
	}

	bedsByRoom, err := s.bedsByRooms(ctx, rooms, availableFilter)
	if err != nil {
		return res, err
	}

	res.FromModels(rooms, bedsByRoom)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheAvailableBeds, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save available beds to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) bedsByRooms(ctx context.Context, rooms []model.Room, extraFilter gDto.FilterGroup) (map[string][]model.Bed, error) {
	bedsByRoom := make(map[string][]model.Bed, len(rooms))

	if len(rooms) == 0 {
		return bedsByRoom, nil
	}

	roomIDs := make([]string, len(rooms))
	for i, room := range rooms {
		roomIDs[i] = room.ID
	}

	filter := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{
				Field:    model.FieldBedRoomID,
				Operator: gDto.FilterOperatorIn,
				Value:    roomIDs,
				Table:    model.BedTableName,
			},
		},
	}

	if len(extraFilter.Filters) > 0 {
		filter.Filters = append(filter.Filters, extraFilter)
	}

	beds, err := s.bedRepo.GetAll(ctx, gDto.QueryParams{}, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get beds")

		return nil, fmt.Errorf("failed to get beds: %w", err)
	}

	for _, bed := range beds {
		bedsByRoom[bed.RoomID] = append(bedsByRoom[bed.RoomID], bed)
	}

	return bedsByRoom, nil
}

func (s *serviceImpl) roomNumberFilter(roomNumber string) gDto.FilterGroup {
	return gDto.FilterGroup{
		Filters: []any{
			gDto.Filter{
				Field:    model.FieldRoomNumber,
				Operator: gDto.FilterOperatorEq,
				Value:    roomNumber,
				Table:    model.TableName,
			},
		},
	}
}

func (s *serviceImpl) bedFilter(roomID, bedNumber string) gDto.FilterGroup {
	return gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{
				Field:    model.FieldBedRoomID,
				Operator: gDto.FilterOperatorEq,
				Value:    roomID,
				Table:    model.BedTableName,
			},
			gDto.Filter{
				Field:    model.FieldBedNumber,
				Operator: gDto.FilterOperatorEq,
				Value:    bedNumber,
				Table:    model.BedTableName,
			},
		},
	}
}

func (s *serviceImpl) invalidateRoomCaches(ctx context.Context, roomID string) {
	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Delete(c, shared.BuildCacheKey(cacheGetRoom, roomID)); err != nil {
			log.Error().Err(err).Msg("failed to delete room from cache")
		}

		shared.InvalidateCaches(c, s.cache, cacheGetAllRoom)
		shared.InvalidateCaches(c, s.cache, cacheCountRoom)
		shared.InvalidateCaches(c, s.cache, cacheAvailableBeds)
	}()
}
