package dates

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func TestAdjustEndDate(t *testing.T) {
	tests := []struct {
		name        string
		newStart    string
		currentEnd  string
		isNew       bool
		wantEnd     string
		wantChanged bool
	}{
		{
			name:        "start moves past end",
			newStart:    "2024-01-12T09:00",
			currentEnd:  "2024-01-10T10:00",
			isNew:       true,
			wantEnd:     "2024-01-12T18:00",
			wantChanged: true,
		},
		{
			name:        "start stays before end",
			newStart:    "2024-01-09T09:00",
			currentEnd:  "2024-01-10T10:00",
			isNew:       true,
			wantEnd:     "2024-01-10T10:00",
			wantChanged: false,
		},
		{
			name:        "start equal to end",
			newStart:    "2024-01-10T10:00",
			currentEnd:  "2024-01-10T10:00",
			isNew:       true,
			wantEnd:     "2024-01-10T10:00",
			wantChanged: false,
		},
		{
			name:        "existing booking is never adjusted",
			newStart:    "2024-01-12T09:00",
			currentEnd:  "2024-01-10T10:00",
			isNew:       false,
			wantEnd:     "2024-01-10T10:00",
			wantChanged: false,
		},
		{
			name:        "no end value yet",
			newStart:    "2024-01-12T09:00",
			currentEnd:  "",
			isNew:       true,
			wantEnd:     "",
			wantChanged: false,
		},
		{
			name:        "start with seconds still yields minute precision",
			newStart:    "2024-03-01T20:30:15",
			currentEnd:  "2024-02-28T10:00",
			isNew:       true,
			wantEnd:     "2024-03-01T18:00",
			wantChanged: true,
		},
		{
			name:        "unparseable start leaves end alone",
			newStart:    "soon",
			currentEnd:  "2024-01-10T10:00",
			isNew:       true,
			wantEnd:     "2024-01-10T10:00",
			wantChanged: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gotEnd, gotChanged := AdjustEndDate(tt.newStart, tt.currentEnd, tt.isNew)
			assert.Equal(t, tt.wantEnd, gotEnd)
			assert.Equal(t, tt.wantChanged, gotChanged)
		})
	}
}

func TestAdjustEndDate_Properties(t *testing.T) {
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	rapid.Check(t, func(t *rapid.T) {
		start := base.Add(time.Duration(rapid.IntRange(0, 60*24*365).Draw(t, "startMin")) * time.Minute)
		end := base.Add(time.Duration(rapid.IntRange(0, 60*24*365).Draw(t, "endMin")) * time.Minute)

		got, changed := AdjustEndDate(FormatInput(start), FormatInput(end), true)

		if !start.After(end) {
			if changed || got != FormatInput(end) {
				t.Fatalf("end must stay %s when start %s is not after it, got %s", FormatInput(end), FormatInput(start), got)
			}
			return
		}
		want := time.Date(start.Year(), start.Month(), start.Day(), DefaultEndHour, 0, 0, 0, time.UTC)
		if !changed || got != FormatInput(want) {
			t.Fatalf("expected end %s for start %s, got %s (changed=%v)", FormatInput(want), FormatInput(start), got, changed)
		}
		if len(got) != len(InputLayout) {
			t.Fatalf("expected minute precision, got %q", got)
		}
	})
}

func TestParseInput(t *testing.T) {
	loc, err := time.LoadLocation("America/New_York")
	require.NoError(t, err)

	tests := []struct {
		name    string
		value   string
		want    time.Time
		wantErr bool
	}{
		{"minute precision", "2024-01-12T09:00", time.Date(2024, 1, 12, 9, 0, 0, 0, loc), false},
		{"second precision", "2024-01-12T09:00:30", time.Date(2024, 1, 12, 9, 0, 30, 0, loc), false},
		{"explicit offset wins", "2024-01-12T09:00:00Z", time.Date(2024, 1, 12, 9, 0, 0, 0, time.UTC), false},
		{"surrounding spaces", "  2024-01-12T09:00 ", time.Date(2024, 1, 12, 9, 0, 0, 0, loc), false},
		{"empty", "", time.Time{}, true},
		{"garbage", "next tuesday", time.Time{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseInput(tt.value, loc)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.True(t, tt.want.Equal(got), "got %s want %s", got, tt.want)
		})
	}
}

func TestLocation(t *testing.T) {
	fallback := time.FixedZone("fallback", 3600)

	got, err := Location("", fallback)
	require.NoError(t, err)
	assert.Equal(t, fallback, got)

	got, err = Location("", nil)
	require.NoError(t, err)
	assert.Equal(t, time.UTC, got)

	got, err = Location("Europe/Sofia", fallback)
	require.NoError(t, err)
	assert.Equal(t, "Europe/Sofia", got.String())

	_, err = Location("Mars/Olympus_Mons", fallback)
	assert.Error(t, err)
}
