package service_test

import (
	"testing"
	"time"

	"doneUI/internal/service"
	"doneUI/internal/textcodec"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateAdd(t *testing.T) {
	now := time.Date(2026, time.October, 12, 15, 0, 0, 0, time.UTC)

	tests := []struct {
		name      string
		in        service.AddInput
		now       time.Time
		wantErr   string
		wantEst   int
		wantMonth string
		wantDay   string
		wantYear  string
	}{
		{
			name:    "defaults",
			in:      service.AddInput{Text: "write"},
			wantEst: 3600, wantMonth: "0", wantDay: "0", wantYear: "0",
		},
		{
			name:    "upper bounds accepted",
			in:      service.AddInput{Text: "write", Days: "31", Hours: "23", Minutes: "59"},
			wantEst: 31*8*3600 + 23*3600 + 59*60, wantMonth: "0", wantDay: "0", wantYear: "0",
		},
		{name: "days 32", in: service.AddInput{Text: "write", Days: "32"}, wantErr: "days"},
		{name: "hours 24", in: service.AddInput{Text: "write", Hours: "24"}, wantErr: "hours"},
		{name: "minutes 60", in: service.AddInput{Text: "write", Minutes: "60"}, wantErr: "minutes"},
		{name: "negative", in: service.AddInput{Text: "write", Minutes: "-1"}, wantErr: "minutes"},
		{name: "not a number", in: service.AddInput{Text: "write", Days: "two"}, wantErr: "days"},
		{name: "empty text", in: service.AddInput{}, wantErr: "text"},
		{name: "month 13", in: service.AddInput{Text: "write", Month: "13"}, wantErr: "month"},
		{name: "day 32", in: service.AddInput{Text: "write", Day: "32"}, wantErr: "day"},
		{
			name:    "placeholders mean no deadline",
			in:      service.AddInput{Text: "write", Month: "MM", Day: "DD", Year: "YYYY"},
			wantEst: 3600, wantMonth: "0", wantDay: "0", wantYear: "0",
		},
		{
			name:    "day later this month",
			in:      service.AddInput{Text: "write", Day: "20"},
			wantEst: 3600, wantMonth: "10", wantDay: "20", wantYear: "2026",
		},
		{
			name:    "passed day moves to next month",
			in:      service.AddInput{Text: "write", Day: "5"},
			wantEst: 3600, wantMonth: "11", wantDay: "5", wantYear: "2026",
		},
		{
			name:    "passed day in december moves to january",
			in:      service.AddInput{Text: "write", Day: "5"},
			now:     time.Date(2026, time.December, 20, 0, 0, 0, 0, time.UTC),
			wantEst: 3600, wantMonth: "1", wantDay: "5", wantYear: "2027",
		},
		{
			name:    "future month starts on the first",
			in:      service.AddInput{Text: "write", Month: "12"},
			wantEst: 3600, wantMonth: "12", wantDay: "1", wantYear: "2026",
		},
		{
			name:    "past month moves to next year",
			in:      service.AddInput{Text: "write", Month: "3"},
			wantEst: 3600, wantMonth: "3", wantDay: "1", wantYear: "2027",
		},
		{
			name:    "current month keeps today",
			in:      service.AddInput{Text: "write", Month: "10"},
			wantEst: 3600, wantMonth: "10", wantDay: "12", wantYear: "2026",
		},
		{
			name:    "current month late in the month moves to next year",
			in:      service.AddInput{Text: "write", Month: "10"},
			now:     time.Date(2026, time.October, 29, 0, 0, 0, 0, time.UTC),
			wantEst: 3600, wantMonth: "10", wantDay: "1", wantYear: "2027",
		},
		{
			name:    "year only takes today's month and day",
			in:      service.AddInput{Text: "write", Year: "2027"},
			wantEst: 3600, wantMonth: "10", wantDay: "12", wantYear: "2027",
		},
		{
			name:    "impossible date becomes tomorrow",
			in:      service.AddInput{Text: "write", Month: "2", Day: "30", Year: "2027"},
			wantEst: 3600, wantMonth: "10", wantDay: "13", wantYear: "2026",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			at := now
			if !tt.now.IsZero() {
				at = tt.now
			}

			got, err := service.ValidateAdd(tt.in, at)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.True(t, service.IsCode(err, service.CodeValidation))

				var be *service.BusinessError
				require.ErrorAs(t, err, &be)
				assert.Equal(t, tt.wantErr, be.Details["field"])
				assert.Equal(t, service.FormAlert, be.Message)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, textcodec.Encode(tt.in.Text), got.EncodedBody)
			assert.Equal(t, tt.wantEst, got.EstimationSeconds)
			assert.Equal(t, tt.wantMonth, got.Month)
			assert.Equal(t, tt.wantDay, got.Day)
			assert.Equal(t, tt.wantYear, got.Year)
		})
	}
}
