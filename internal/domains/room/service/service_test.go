package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"bunkhouse/config"
	"bunkhouse/infras/otel/mocks"
	roomMocks "bunkhouse/internal/domains/room/mocks"
	"bunkhouse/internal/domains/room/model"
	"bunkhouse/internal/domains/room/model/dto"
	"bunkhouse/internal/domains/room/service"
	cacheMocks "bunkhouse/shared/cache/mocks"
	"bunkhouse/shared/constant"
)

func newTx(t *testing.T) *sqlx.Tx {
	t.Helper()

	db, mock, err := sqlmock.New()
	assert.NoError(t, err)

	mock.MatchExpectationsInOrder(false)
	mock.ExpectBegin()
	mock.ExpectCommit()
	mock.ExpectRollback()

	sqlxDB := sqlx.NewDb(db, "sqlmock")

	tx, err := sqlxDB.Beginx()
	assert.NoError(t, err)

	return tx
}

func TestRoomService_Create(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := roomMocks.NewMockRoom(ctrl)
	mockBedRepo := roomMocks.NewMockBed(ctrl)
	mockCache := cacheMocks.NewMockRedisCache(ctrl)
	mockOtel := mocks.NewOtel()

	cfg := &config.Config{}
	cfg.Cache.TTL = 3600

	svc := service.New(mockRepo, mockBedRepo, cfg, mockCache, mockOtel)

	req := dto.CreateRoomRequest{
		RoomNumber: "101",
		Type:       "mixed",
		Features:   []string{"wifi", "locker"},
		Beds: []dto.BedRequest{
			{BedNumber: "B1", PricePerBed: 20},
			{BedNumber: "B2", PricePerBed: 20},
		},
	}

	tests := []struct {
		name      string
		req       dto.CreateRoomRequest
		setupMock func()
		wantErr   bool
	}{
		{
			name: "successful creation with beds",
			req:  req,
			setupMock: func() {
				mockRepo.EXPECT().
					Exist(gomock.Any(), gomock.Any()).
					Return(false, nil)

				mockRepo.EXPECT().
					BeginTx(gomock.Any()).
					Return(newTx(t), nil)

				mockRepo.EXPECT().
					InsertTx(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(nil)

				mockBedRepo.EXPECT().
					InsertBulkTx(gomock.Any(), gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, _ *sqlx.Tx, beds []model.Bed) error {
						assert.Len(t, beds, 2)
						assert.Equal(t, constant.BedStatusAvailable, beds[0].Status)

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
			name: "room number already exists",
			req:  req,
			setupMock: func() {
				mockRepo.EXPECT().
					Exist(gomock.Any(), gomock.Any()).
					Return(true, nil)
			},
			wantErr: true,
		},
		{
			name: "exist check error",
			req:  req,
			setupMock: func() {
				mockRepo.EXPECT().
					Exist(gomock.Any(), gomock.Any()).
					Return(false, errors.New("database error"))
			},
			wantErr: true,
		},
		{
			name: "insert error",
			req:  req,
			setupMock: func() {
				mockRepo.EXPECT().
					Exist(gomock.Any(), gomock.Any()).
					Return(false, nil)

				mockRepo.EXPECT().
					BeginTx(gomock.Any()).
					Return(newTx(t), nil)

				mockRepo.EXPECT().
					InsertTx(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(errors.New("insert error"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			ctx := context.WithValue(context.Background(), constant.ContextKeyUserID, "test-user-id")
			err := svc.Create(ctx, tt.req)

			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestRoomService_Get(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := roomMocks.NewMockRoom(ctrl)
	mockBedRepo := roomMocks.NewMockBed(ctrl)
	mockCache := cacheMocks.NewMockRedisCache(ctrl)
	mockOtel := mocks.NewOtel()

	cfg := &config.Config{}
	cfg.Cache.TTL = 3600

	svc := service.New(mockRepo, mockBedRepo, cfg, mockCache, mockOtel)

	room := model.Room{
		ID:         "room-1",
		RoomNumber: "101",
		Type:       "mixed",
	}

	beds := []model.Bed{
		{ID: "bed-1", RoomID: "room-1", BedNumber: "B1", Status: constant.BedStatusAvailable, PricePerBed: 20},
	}

	tests := []struct {
		name      string
		id        string
		setupMock func()
		wantErr   bool
		wantBeds  int
	}{
		{
			name: "cache hit",
			id:   "room-1",
			setupMock: func() {
				mockCache.EXPECT().
					Get(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(nil)
			},
			wantErr: false,
		},
		{
			name: "cache miss, successful get with beds",
			id:   "room-1",
			setupMock: func() {
				mockCache.EXPECT().
					Get(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(errors.New("cache miss"))

				mockRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(room, nil)

				mockBedRepo.EXPECT().
					GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(beds, nil)

				mockCache.EXPECT().
					Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
					Return(nil).
					AnyTimes()
			},
			wantErr:  false,
			wantBeds: 1,
		},
		{
			name: "room not found",
			id:   "nonexistent-id",
			setupMock: func() {
				mockCache.EXPECT().
					Get(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(errors.New("cache miss"))

				mockRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(model.Room{}, nil)
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			result, err := svc.Get(context.Background(), tt.id)

			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
				if tt.wantBeds > 0 {
					assert.Len(t, result.Beds, tt.wantBeds)
				}
			}
		})
	}
}

func TestRoomService_Update(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := roomMocks.NewMockRoom(ctrl)
	mockBedRepo := roomMocks.NewMockBed(ctrl)
	mockCache := cacheMocks.NewMockRedisCache(ctrl)
	mockOtel := mocks.NewOtel()

	cfg := &config.Config{}
	cfg.Cache.TTL = 3600

	svc := service.New(mockRepo, mockBedRepo, cfg, mockCache, mockOtel)

	tests := []struct {
		name      string
		req       dto.UpdateRoomRequest
		id        string
		setupMock func()
		wantErr   bool
	}{
		{
			name: "successful update",
			req:  dto.UpdateRoomRequest{Type: "female-only"},
			id:   "room-1",
			setupMock: func() {
				mockRepo.EXPECT().
					Exist(gomock.Any(), gomock.Any()).
					Return(true, nil)

				mockRepo.EXPECT().
					Update(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(nil)

				mockCache.EXPECT().
					Delete(gomock.Any(), gomock.Any()).
					Return(nil).
					AnyTimes()

				mockCache.EXPECT().
					Clear(gomock.Any(), gomock.Any()).
					Return(nil).
					AnyTimes()
			},
			wantErr: false,
		},
		{
			name:      "empty update request",
			req:       dto.UpdateRoomRequest{},
			id:        "room-1",
			setupMock: func() {},
			wantErr:   true,
		},
		{
			name: "room not found",
			req:  dto.UpdateRoomRequest{Type: "female-only"},
			id:   "nonexistent-id",
			setupMock: func() {
				mockRepo.EXPECT().
					Exist(gomock.Any(), gomock.Any()).
					Return(false, nil)
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			ctx := context.WithValue(context.Background(), constant.ContextKeyUserID, "test-user-id")
			err := svc.Update(ctx, tt.req, tt.id)

			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestRoomService_AddBeds(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := roomMocks.NewMockRoom(ctrl)
	mockBedRepo := roomMocks.NewMockBed(ctrl)
	mockCache := cacheMocks.NewMockRedisCache(ctrl)
	mockOtel := mocks.NewOtel()

	cfg := &config.Config{}
	cfg.Cache.TTL = 3600

	svc := service.New(mockRepo, mockBedRepo, cfg, mockCache, mockOtel)

	room := model.Room{ID: "room-1", RoomNumber: "101"}

	tests := []struct {
		name      string
		req       dto.AddBedsRequest
		setupMock func()
		wantErr   bool
	}{
		{
			name: "new beds start in maintenance",
			req: dto.AddBedsRequest{
				Beds: []dto.BedRequest{
					{BedNumber: "B3", PricePerBed: 25},
				},
			},
			setupMock: func() {
				mockRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(room, nil)

				mockBedRepo.EXPECT().
					InsertBulkIgnoreConflict(gomock.Any(), gomock.Any(), model.BedConflictColumns).
					DoAndReturn(func(_ context.Context, beds []model.Bed, _ string) error {
						assert.Len(t, beds, 1)
						assert.Equal(t, constant.BedStatusMaintenance, beds[0].Status)

						return nil
					})

				mockCache.EXPECT().
					Delete(gomock.Any(), gomock.Any()).
					Return(nil).
					AnyTimes()

				mockCache.EXPECT().
					Clear(gomock.Any(), gomock.Any()).
					Return(nil).
					AnyTimes()
			},
			wantErr: false,
		},
		{
			name: "duplicate bed numbers in request are collapsed",
			req: dto.AddBedsRequest{
				Beds: []dto.BedRequest{
					{BedNumber: "B3", PricePerBed: 25},
					{BedNumber: "B3", PricePerBed: 30},
					{BedNumber: "B4", PricePerBed: 25},
				},
			},
			setupMock: func() {
				mockRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(room, nil)

				mockBedRepo.EXPECT().
					InsertBulkIgnoreConflict(gomock.Any(), gomock.Any(), model.BedConflictColumns).
					DoAndReturn(func(_ context.Context, beds []model.Bed, _ string) error {
						assert.Len(t, beds, 2)
						assert.Equal(t, float64(25), beds[0].PricePerBed)

						return nil
					})

				mockCache.EXPECT().
					Delete(gomock.Any(), gomock.Any()).
					Return(nil).
					AnyTimes()

				mockCache.EXPECT().
					Clear(gomock.Any(), gomock.Any()).
					Return(nil).
					AnyTimes()
			},
			wantErr: false,
		},
		{
			name: "room not found",
			req: dto.AddBedsRequest{
				Beds: []dto.BedRequest{
					{BedNumber: "B3", PricePerBed: 25},
				},
			},
			setupMock: func() {
				mockRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(model.Room{}, nil)
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			ctx := context.WithValue(context.Background(), constant.ContextKeyUserID, "test-user-id")
			err := svc.AddBeds(ctx, tt.req, "101")

			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestRoomService_UpdateBed(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := roomMocks.NewMockRoom(ctrl)
	mockBedRepo := roomMocks.NewMockBed(ctrl)
	mockCache := cacheMocks.NewMockRedisCache(ctrl)
	mockOtel := mocks.NewOtel()

	cfg := &config.Config{}
	cfg.Cache.TTL = 3600

	svc := service.New(mockRepo, mockBedRepo, cfg, mockCache, mockOtel)

	room := model.Room{ID: "room-1", RoomNumber: "101"}

	tests := []struct {
		name      string
		req       dto.UpdateBedRequest
		setupMock func()
		wantErr   bool
	}{
		{
			name: "successful status update",
			req:  dto.UpdateBedRequest{Status: constant.BedStatusAvailable},
			setupMock: func() {
				mockRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(room, nil)

				mockBedRepo.EXPECT().
					Exist(gomock.Any(), gomock.Any()).
					Return(true, nil)

				mockBedRepo.EXPECT().
					Update(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(nil)

				mockCache.EXPECT().
					Delete(gomock.Any(), gomock.Any()).
					Return(nil).
					AnyTimes()

				mockCache.EXPECT().
					Clear(gomock.Any(), gomock.Any()).
					Return(nil).
					AnyTimes()
			},
			wantErr: false,
		},
		{
			name:      "empty update request",
			req:       dto.UpdateBedRequest{},
			setupMock: func() {},
			wantErr:   true,
		},
		{
			name: "bed not found",
			req:  dto.UpdateBedRequest{Status: constant.BedStatusAvailable},
			setupMock: func() {
				mockRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(room, nil)

				mockBedRepo.EXPECT().
					Exist(gomock.Any(), gomock.Any()).
					Return(false, nil)
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			ctx := context.WithValue(context.Background(), constant.ContextKeyUserID, "test-user-id")
			err := svc.UpdateBed(ctx, tt.req, "101", "B1")

			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestRoomService_AvailableBeds(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := roomMocks.NewMockRoom(ctrl)
	mockBedRepo := roomMocks.NewMockBed(ctrl)
	mockCache := cacheMocks.NewMockRedisCache(ctrl)
	mockOtel := mocks.NewOtel()

	cfg := &config.Config{}
	cfg.Cache.TTL = 3600

	svc := service.New(mockRepo, mockBedRepo, cfg, mockCache, mockOtel)

	rooms := []model.Room{
		{ID: "room-1", RoomNumber: "101"},
		{ID: "room-2", RoomNumber: "102"},
	}

	// Only room-1 has free beds, so room-2 must not appear in the response.
	beds := []model.Bed{
		{ID: "bed-1", RoomID: "room-1", BedNumber: "B1", Status: constant.BedStatusAvailable, PricePerBed: 20},
		{ID: "bed-2", RoomID: "room-1", BedNumber: "B2", Status: constant.BedStatusAvailable, PricePerBed: 20},
	}

	mockCache.EXPECT().
		Get(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(errors.New("cache miss"))

	mockRepo.EXPECT().
		GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(rooms, nil)

	mockBedRepo.EXPECT().
		GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(beds, nil)

	mockCache.EXPECT().
		Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		Return(nil).
		AnyTimes()

	result, err := svc.AvailableBeds(context.Background())

	assert.NoError(t, err)
	assert.Len(t, result.Rooms, 1)
	assert.Equal(t, "101", result.Rooms[0].RoomNumber)
	assert.Equal(t, 2, result.Total)
}

func TestRoomService_Delete(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := roomMocks.NewMockRoom(ctrl)
	mockBedRepo := roomMocks.NewMockBed(ctrl)
	mockCache := cacheMocks.NewMockRedisCache(ctrl)
	mockOtel := mocks.NewOtel()

	cfg := &config.Config{}
	cfg.Cache.TTL = 3600

	svc := service.New(mockRepo, mockBedRepo, cfg, mockCache, mockOtel)

	tests := []struct {
		name      string
		id        string
		setupMock func()
		wantErr   bool
	}{
		{
			name: "successful deletion",
			id:   "room-1",
			setupMock: func() {
				mockRepo.EXPECT().
					Exist(gomock.Any(), gomock.Any()).
					Return(true, nil)

				mockRepo.EXPECT().
					Delete(gomock.Any(), gomock.Any()).
					Return(nil)

				mockCache.EXPECT().
					Delete(gomock.Any(), gomock.Any()).
					Return(nil).
					AnyTimes()

				mockCache.EXPECT().
					Clear(gomock.Any(), gomock.Any()).
					Return(nil).
					AnyTimes()
			},
			wantErr: false,
		},
		{
			name: "room not found",
			id:   "nonexistent-id",
			setupMock: func() {
				mockRepo.EXPECT().
					Exist(gomock.Any(), gomock.Any()).
					Return(false, nil)
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			err := svc.Delete(context.Background(), tt.id)

			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
