package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"bunkhouse/config"
	"bunkhouse/infras/otel/mocks"
	housekeepingMocks "bunkhouse/internal/domains/housekeeping/mocks"
	"bunkhouse/internal/domains/housekeeping/model"
	"bunkhouse/internal/domains/housekeeping/model/dto"
	"bunkhouse/internal/domains/housekeeping/service"
	userMocks "bunkhouse/internal/domains/user/mocks"
	userModel "bunkhouse/internal/domains/user/model"
	cacheMocks "bunkhouse/shared/cache/mocks"
	"bunkhouse/shared/constant"
	gDto "bunkhouse/shared/dto"
	"bunkhouse/shared/timezone"
)

func TestHousekeepingService_CreateTasks(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := housekeepingMocks.NewMockHousekeeper(ctrl)
	mockTaskRepo := housekeepingMocks.NewMockTask(ctrl)
	mockUserRepo := userMocks.NewMockUser(ctrl)
	mockCache := cacheMocks.NewMockRedisCache(ctrl)
	mockOtel := mocks.NewOtel()

	cfg := &config.Config{}
	cfg.Cache.TTL = 3600

	svc := service.New(mockRepo, mockTaskRepo, mockUserRepo, cfg, mockCache, mockOtel)

	fullName := "Jane Cleaner"
	staff := userModel.User{
		ID:       "staff-1",
		Username: "jane",
		FullName: &fullName,
		Role:     constant.RoleStaff,
	}

	housekeeper := model.Housekeeper{
		ID:        "housekeeper-1",
		StaffID:   "staff-1",
		StaffName: "Jane Cleaner",
		Shift:     constant.ShiftMorning,
		Status:    constant.HousekeeperStatusActive,
	}

	req := dto.CreateTasksRequest{
		StaffID: "staff-1",
		Tasks: []dto.TaskRequest{
			{RoomNumber: "101", Task: "Change bed linen"},
		},
	}

	tests := []struct {
		name      string
		req       dto.CreateTasksRequest
		setupMock func()
		wantErr   bool
	}{
		{
			name: "first assignment registers the housekeeper",
			req:  req,
			setupMock: func() {
				mockUserRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(staff, nil)

				mockRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(model.Housekeeper{}, nil)

				mockRepo.EXPECT().
					Insert(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, hk model.Housekeeper) error {
						assert.Equal(t, "Jane Cleaner", hk.StaffName)
						assert.Equal(t, constant.ShiftMorning, hk.Shift)
						assert.Equal(t, constant.HousekeeperStatusActive, hk.Status)

						return nil
					})

				mockTaskRepo.EXPECT().
					InsertBulk(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, tasks []model.Task) error {
						assert.Len(t, tasks, 1)
						assert.Equal(t, constant.TaskStatusPending, tasks[0].TaskStatus)

						return nil
					})

				mockCache.EXPECT().
					Clear(gomock.Any(), gomock.Any()).
					Return(nil).
					AnyTimes()
			},
			wantErr: false,
		},
		{
			name: "existing housekeeper gets a shift update",
			req: dto.CreateTasksRequest{
				StaffID: "staff-1",
				Shift:   constant.ShiftEvening,
				Tasks: []dto.TaskRequest{
					{RoomNumber: "101", Task: "Mop the floor"},
				},
			},
			setupMock: func() {
				mockUserRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(staff, nil)

				mockRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(housekeeper, nil)

				mockRepo.EXPECT().
					Update(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(nil)

				mockTaskRepo.EXPECT().
					InsertBulk(gomock.Any(), gomock.Any()).
					Return(nil)

				mockCache.EXPECT().
					Clear(gomock.Any(), gomock.Any()).
					Return(nil).
					AnyTimes()
			},
			wantErr: false,
		},
		{
			name: "staff not found",
			req:  req,
			setupMock: func() {
				mockUserRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(userModel.User{}, nil)
			},
			wantErr: true,
		},
		{
			name: "user without staff role is rejected",
			req:  req,
			setupMock: func() {
				guest := staff
				guest.Role = constant.RoleUser

				mockUserRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(guest, nil)
			},
			wantErr: true,
		},
		{
			name: "task insert error",
			req:  req,
			setupMock: func() {
				mockUserRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(staff, nil)

				mockRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(housekeeper, nil)

				mockTaskRepo.EXPECT().
					InsertBulk(gomock.Any(), gomock.Any()).
					Return(errors.New("insert error"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			ctx := context.WithValue(context.Background(), constant.ContextKeyUserID, "admin-user-id")
			err := svc.CreateTasks(ctx, tt.req)

			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestHousekeepingService_GetTasks(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := housekeepingMocks.NewMockHousekeeper(ctrl)
	mockTaskRepo := housekeepingMocks.NewMockTask(ctrl)
	mockUserRepo := userMocks.NewMockUser(ctrl)
	mockCache := cacheMocks.NewMockRedisCache(ctrl)
	mockOtel := mocks.NewOtel()

	cfg := &config.Config{}
	cfg.Cache.TTL = 3600

	svc := service.New(mockRepo, mockTaskRepo, mockUserRepo, cfg, mockCache, mockOtel)

	housekeeper := model.Housekeeper{
		ID:        "housekeeper-1",
		StaffID:   "staff-1",
		StaffName: "Jane Cleaner",
		Shift:     constant.ShiftMorning,
		Status:    constant.HousekeeperStatusActive,
	}

	tasks := []model.Task{
		{
			ID:            "task-1",
			HousekeeperID: "housekeeper-1",
			RoomNumber:    "101",
			Task:          "Change bed linen",
			TaskStatus:    constant.TaskStatusPending,
			AssignedDate:  timezone.Now(),
		},
	}

	tests := []struct {
		name       string
		staffID    string
		taskStatus string
		setupMock  func()
		wantErr    bool
		wantTasks  int
	}{
		{
			name:    "cache hit",
			staffID: "staff-1",
			setupMock: func() {
				mockCache.EXPECT().
					Get(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(nil)
			},
			wantErr: false,
		},
		{
			name:       "cache miss, tasks filtered by status",
			staffID:    "staff-1",
			taskStatus: constant.TaskStatusPending,
			setupMock: func() {
				mockCache.EXPECT().
					Get(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(errors.New("cache miss"))

				mockRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(housekeeper, nil)

				mockTaskRepo.EXPECT().
					GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(tasks, nil)

				mockCache.EXPECT().
					Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
					Return(nil).
					AnyTimes()
			},
			wantErr:   false,
			wantTasks: 1,
		},
		{
			name:    "housekeeper not found",
			staffID: "nonexistent-id",
			setupMock: func() {
				mockCache.EXPECT().
					Get(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(errors.New("cache miss"))

				mockRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(model.Housekeeper{}, nil)
			},
			wantErr: true,
		},
		{
			name:    "no tasks assigned",
			staffID: "staff-1",
			setupMock: func() {
				mockCache.EXPECT().
					Get(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(errors.New("cache miss"))

				mockRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(housekeeper, nil)

				mockTaskRepo.EXPECT().
					GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
					Return([]model.Task{}, nil)
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			result, err := svc.GetTasks(context.Background(), tt.staffID, tt.taskStatus)

			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
				if tt.wantTasks > 0 {
					assert.Len(t, result.Tasks, tt.wantTasks)
					assert.Equal(t, "Jane Cleaner", result.StaffName)
				}
			}
		})
	}
}

func TestHousekeepingService_UpdateTask(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := housekeepingMocks.NewMockHousekeeper(ctrl)
	mockTaskRepo := housekeepingMocks.NewMockTask(ctrl)
	mockUserRepo := userMocks.NewMockUser(ctrl)
	mockCache := cacheMocks.NewMockRedisCache(ctrl)
	mockOtel := mocks.NewOtel()

	cfg := &config.Config{}
	cfg.Cache.TTL = 3600

	svc := service.New(mockRepo, mockTaskRepo, mockUserRepo, cfg, mockCache, mockOtel)

	tests := []struct {
		name      string
		req       dto.UpdateTaskRequest
		id        string
		setupMock func()
		wantErr   bool
	}{
		{
			name: "completing a task stamps the completion date",
			req:  dto.UpdateTaskRequest{TaskStatus: constant.TaskStatusCompleted},
			id:   "task-1",
			setupMock: func() {
				mockTaskRepo.EXPECT().
					Exist(gomock.Any(), gomock.Any()).
					Return(true, nil)

				mockTaskRepo.EXPECT().
					Update(gomock.Any(), gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, req map[string]any, _ gDto.FilterGroup) error {
						assert.Contains(t, req, model.FieldTaskCompletionDate)

						return nil
					})

				mockCache.EXPECT().
					Clear(gomock.Any(), gomock.Any()).
					Return(nil).
					AnyTimes()
			},
			wantErr: false,
		},
		{
			name:      "empty update request",
			req:       dto.UpdateTaskRequest{},
			id:        "task-1",
			setupMock: func() {},
			wantErr:   true,
		},
		{
			name: "task not found",
			req:  dto.UpdateTaskRequest{TaskStatus: constant.TaskStatusInProgress},
			id:   "nonexistent-id",
			setupMock: func() {
				mockTaskRepo.EXPECT().
					Exist(gomock.Any(), gomock.Any()).
					Return(false, nil)
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			ctx := context.WithValue(context.Background(), constant.ContextKeyUserID, "admin-user-id")
			err := svc.UpdateTask(ctx, tt.req, tt.id)

			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
