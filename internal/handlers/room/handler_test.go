package room_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"bunkhouse/infras/otel/mocks"
	"bunkhouse/internal/domains/room/model"
	"bunkhouse/internal/domains/room/model/dto"
	serviceMocks "bunkhouse/internal/domains/room/service/mocks"
	"bunkhouse/internal/handlers/room"
	gDto "bunkhouse/shared/dto"
)

func TestRoomHandler_GetRooms(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockService := serviceMocks.NewMockRoom(ctrl)
	handler := room.New(mockService, mocks.NewOtel())

	tests := []struct {
		name       string
		target     string
		setupMock  func()
		wantStatus int
	}{
		{
			name:   "bed count becomes a subquery filter",
			target: "/v1/rooms?type=mixed&beds=4",
			setupMock: func() {
				mockService.EXPECT().
					GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, _ gDto.QueryParams, filter gDto.FilterGroup) (dto.GetRoomsResponse, error) {
						assert.Len(t, filter.Filters, 2)

						bedFilter, ok := filter.Filters[1].(gDto.Filter)
						assert.True(t, ok)
						assert.Equal(t, model.ExprBedCount, bedFilter.Field)
						assert.Equal(t, 4, bedFilter.Value)

						where, args := bedFilter.GetWhereClause()
						assert.Contains(t, where, "SELECT COUNT(*) FROM beds")
						assert.Contains(t, where, ":bed_count")
						assert.Equal(t, 4, args["bed_count"])

						return dto.GetRoomsResponse{}, nil
					})
			},
			wantStatus: http.StatusOK,
		},
		{
			name:   "no bed count leaves the filter out",
			target: "/v1/rooms",
			setupMock: func() {
				mockService.EXPECT().
					GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, _ gDto.QueryParams, filter gDto.FilterGroup) (dto.GetRoomsResponse, error) {
						assert.Empty(t, filter.Filters)

						return dto.GetRoomsResponse{}, nil
					})
			},
			wantStatus: http.StatusOK,
		},
		{
			name:       "non-numeric bed count is rejected",
			target:     "/v1/rooms?beds=four",
			setupMock:  func() {},
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "negative bed count is rejected",
			target:     "/v1/rooms?beds=-1",
			setupMock:  func() {},
			wantStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			request := httptest.NewRequest(http.MethodGet, tt.target, nil)
			recorder := httptest.NewRecorder()

			handler.GetRooms(recorder, request)

			assert.Equal(t, tt.wantStatus, recorder.Code)
		})
	}
}
