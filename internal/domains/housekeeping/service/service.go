package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"bunkhouse/config"
	"bunkhouse/infras/otel"
	"bunkhouse/internal/domains/housekeeping/model"
	"bunkhouse/internal/domains/housekeeping/model/dto"
	"bunkhouse/internal/domains/housekeeping/repository"
	userModel "bunkhouse/internal/domains/user/model"
	userRepository "bunkhouse/internal/domains/user/repository"
	"bunkhouse/shared"
	"bunkhouse/shared/cache"
	"bunkhouse/shared/constant"
	gDto "bunkhouse/shared/dto"
	"bunkhouse/shared/failure"
	"bunkhouse/shared/timezone"
)

const (
	cacheGetTasks = "housekeeping:tasks"
)

type Housekeeping interface {
	CreateTasks(ctx context.Context, req dto.CreateTasksRequest) error
	GetTasks(ctx context.Context, staffID, taskStatus string) (dto.GetTasksResponse, error)
	UpdateTask(ctx context.Context, req dto.UpdateTaskRequest, taskID string) error
}

type serviceImpl struct {
	repo     repository.Housekeeper
	taskRepo repository.Task
	userRepo userRepository.User
	cfg      *config.Config
	cache    cache.RedisCache
	otel     otel.Otel
}

func New(repo repository.Housekeeper, taskRepo repository.Task, userRepo userRepository.User, cfg *config.Config, cache cache.RedisCache, otel otel.Otel) Housekeeping {
	return &serviceImpl{
		repo:     repo,
		taskRepo: taskRepo,
		userRepo: userRepo,
		cfg:      cfg,
		cache:    cache,
		otel:     otel,
	}
}

func (s *serviceImpl) CreateTasks(ctx context.Context, req dto.CreateTasksRequest) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".CreateTasks")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	staff, err := s.userRepo.Get(ctx, shared.FilterByID(req.StaffID, userModel.FieldID, userModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get staff")

		return fmt.Errorf("failed to get staff: %w", err)
	}

	if staff.ID == constant.Empty || staff.Role != constant.RoleStaff {
		return failure.NotFound("staff not found") // nolint:wrapcheck
	}

	housekeeper, err := s.repo.Get(ctx, s.staffFilter(req.StaffID))
	if err != nil {
		log.Error().Err(err).Msg("failed to get housekeeper")

		return fmt.Errorf("failed to get housekeeper: %w", err)
	}

	if housekeeper.ID == constant.Empty {
		staffName := staff.Username
		if staff.FullName != nil {
			staffName = *staff.FullName
		}

		housekeeper = req.ToHousekeeperModel(staffName, user)
		if err = s.repo.Insert(ctx, housekeeper); err != nil {
			log.Error().Err(err).Msg("failed to create housekeeper")

			return fmt.Errorf("failed to create housekeeper: %w", err)
		}
	} else if req.Shift != constant.Empty && req.Shift != housekeeper.Shift {
		update := map[string]any{
			model.FieldShift:         req.Shift,
			constant.FieldModifiedAt: timezone.Now(),
			constant.FieldModifiedBy: user,
		}

		if err = s.repo.Update(ctx, update, s.staffFilter(req.StaffID)); err != nil {
			log.Error().Err(err).Msg("failed to update housekeeper shift")

			return fmt.Errorf("failed to update housekeeper shift: %w", err)
		}
	}

	tasks := req.ToTaskModels(housekeeper.ID, user)

	if err = s.taskRepo.InsertBulk(ctx, tasks); err != nil {
		log.Error().Err(err).Msg("failed to create housekeeping tasks")

		return fmt.Errorf("failed to create housekeeping tasks: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		shared.InvalidateCaches(c, s.cache, cacheGetTasks)
	}()

	return nil
}

func (s *serviceImpl) GetTasks(ctx context.Context, staffID, taskStatus string) (res dto.GetTasksResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetTasks")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKey(cacheGetTasks, staffID, taskStatus)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for housekeeping tasks")

		return res, nil
	}

	housekeeper, err := s.repo.Get(ctx, s.staffFilter(staffID))
	if err != nil {
		log.Error().Err(err).Msg("failed to get housekeeper")

		return res, fmt.Errorf("failed to get housekeeper: %w", err)
	}

	if housekeeper.ID == constant.Empty {
		return res, failure.NotFound("housekeeper not found") // nolint:wrapcheck
	}

	tasks, err := s.taskRepo.GetAll(ctx, gDto.QueryParams{}, s.taskFilter(housekeeper.ID, taskStatus))
	if err != nil {
		log.Error().Err(err).Msg("failed to get housekeeping tasks")

		return res, fmt.Errorf("failed to get housekeeping tasks: %w", err)
	}

	if len(tasks) == 0 {
		return res, failure.NotFound("no tasks found") // nolint:wrapcheck
	}

	res.FromModels(housekeeper, tasks)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save housekeeping tasks to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) UpdateTask(ctx context.Context, req dto.UpdateTaskRequest, taskID string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".UpdateTask")
	defer scope.End()
	defer scope.TraceIfError(err)

	if req == (dto.UpdateTaskRequest{}) {
		return failure.BadRequestFromString("update request cannot be empty") // nolint:wrapcheck
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	filter := shared.FilterByID(taskID, model.FieldTaskID, model.TaskTableName)

	exist, err := s.taskRepo.Exist(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to check if task exists")

		return fmt.Errorf("failed to check if task exists: %w", err)
	}

	if !exist {
		return failure.NotFound("task not found") // nolint:wrapcheck
	}

	updatedFields := shared.TransformFields(req, user)
	if req.TaskStatus == constant.TaskStatusCompleted {
		updatedFields[model.FieldTaskCompletionDate] = timezone.Now()
	}

	if err = s.taskRepo.Update(ctx, updatedFields, filter); err != nil {
		log.Error().Err(err).Msg("failed to update housekeeping task")

		return fmt.Errorf("failed to update housekeeping task: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		shared.InvalidateCaches(c, s.cache, cacheGetTasks)
	}()

	return nil
}

func (s *serviceImpl) staffFilter(staffID string) gDto.FilterGroup {
	return gDto.FilterGroup{
		Filters: []any{
			gDto.Filter{
				Field:    model.FieldStaffID,
				Operator: gDto.FilterOperatorEq,
				Value:    staffID,
				Table:    model.TableName,
			},
		},
	}
}

func (s *serviceImpl) taskFilter(housekeeperID, taskStatus string) gDto.FilterGroup {
	filter := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{
				Field:    model.FieldTaskHousekeeperID,
				Operator: gDto.FilterOperatorEq,
				Value:    housekeeperID,
				Table:    model.TaskTableName,
			},
		},
	}

	if taskStatus != constant.Empty {
		filter.Filters = append(filter.Filters, gDto.Filter{
			Field:    model.FieldTaskStatus,
			Operator: gDto.FilterOperatorEq,
			Value:    taskStatus,
			Table:    model.TaskTableName,
		})
	}

	return filter
}
