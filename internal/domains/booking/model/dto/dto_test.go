package dto_test

import (
	"testing"

	"bunkhouse/internal/domains/booking/model/dto"
)

func TestStayRequest_ParseDates(t *testing.T) {
	tests := []struct {
		name         string
		checkinDate  string
		checkoutDate string
		expectError  bool
		expectedDays float64
	}{
		{
			name:         "valid stay window",
			checkinDate:  "2026-09-01",
			checkoutDate: "2026-09-04",
			expectError:  false,
			expectedDays: 3,
		},
		{
			name:         "single night",
			checkinDate:  "2026-09-01",
			checkoutDate: "2026-09-02",
			expectError:  false,
			expectedDays: 1,
		},
		{
			name:         "checkout equal to checkin",
			checkinDate:  "2026-09-01",
			checkoutDate: "2026-09-01",
			expectError:  true,
		},
		{
			name:         "checkout before checkin",
			checkinDate:  "2026-09-04",
			checkoutDate: "2026-09-01",
			expectError:  true,
		},
		{
			name:         "invalid checkin format",
			checkinDate:  "01-09-2026",
			checkoutDate: "2026-09-04",
			expectError:  true,
		},
		{
			name:         "invalid checkout format",
			checkinDate:  "2026-09-01",
			checkoutDate: "not-a-date",
			expectError:  true,
		},
		{
			name:         "empty dates",
			checkinDate:  "",
			checkoutDate: "",
			expectError:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := dto.StayRequest{
				RoomNumber:   "101",
				BedNumber:    "B1",
				CheckinDate:  tt.checkinDate,
				CheckoutDate: tt.checkoutDate,
			}

			checkin, checkout, err := req.ParseDates()

			if tt.expectError {
				if err == nil {
					t.Error("expected error, got nil")
				}

				return
			}

			if err != nil {
				t.Fatalf("expected no error, got: %v", err)
			}

			days := checkout.Sub(checkin).Hours() / 24
			if days != tt.expectedDays {
				t.Errorf("expected stay of %v days, got %v", tt.expectedDays, days)
			}
		})
	}
}
