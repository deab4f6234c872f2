package adfilter

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestQuietHours_Active(t *testing.T) {
	shanghai := time.FixedZone("CST", 8*3600)

	tests := []struct {
		name   string
		q      QuietHours
		now    time.Time
		active bool
	}{
		{
			name:   "wrapping interval, late evening",
			q:      QuietHours{Start: 23, End: 7, Location: shanghai},
			now:    time.Date(2024, 6, 1, 23, 30, 0, 0, shanghai),
			active: true,
		},
		{
			name:   "wrapping interval, early morning",
			q:      QuietHours{Start: 23, End: 7, Location: shanghai},
			now:    time.Date(2024, 6, 1, 6, 59, 0, 0, shanghai),
			active: true,
		},
		{
			name:   "wrapping interval, end hour excluded",
			q:      QuietHours{Start: 23, End: 7, Location: shanghai},
			now:    time.Date(2024, 6, 1, 7, 0, 0, 0, shanghai),
			active: false,
		},
		{
			name:   "wrapping interval, daytime",
			q:      QuietHours{Start: 23, End: 7, Location: shanghai},
			now:    time.Date(2024, 6, 1, 12, 0, 0, 0, shanghai),
			active: false,
		},
		{
			name:   "start hour included",
			q:      QuietHours{Start: 23, End: 7, Location: shanghai},
			now:    time.Date(2024, 6, 1, 23, 0, 0, 0, shanghai),
			active: true,
		},
		{
			name:   "non-wrapping interval",
			q:      QuietHours{Start: 1, End: 5},
			now:    time.Date(2024, 6, 1, 3, 0, 0, 0, time.UTC),
			active: true,
		},
		{
			name:   "non-wrapping interval, outside",
			q:      QuietHours{Start: 1, End: 5},
			now:    time.Date(2024, 6, 1, 5, 0, 0, 0, time.UTC),
			active: false,
		},
		{
			name:   "zero-length interval never active",
			q:      QuietHours{Start: 9, End: 9},
			now:    time.Date(2024, 6, 1, 9, 30, 0, 0, time.UTC),
			active: false,
		},
		{
			name: "instant converted to configured zone",
			q:    QuietHours{Start: 23, End: 7, Location: shanghai},
			// 16:00 UTC is 00:00 next day in Shanghai
			now:    time.Date(2024, 6, 1, 16, 0, 0, 0, time.UTC),
			active: true,
		},
		{
			name:   "nil location defaults to UTC",
			q:      QuietHours{Start: 23, End: 7},
			now:    time.Date(2024, 6, 1, 23, 30, 0, 0, time.UTC),
			active: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.active, tt.q.active(tt.now))
		})
	}
}

func TestQuietHours_Validate(t *testing.T) {
	assert.NoError(t, QuietHours{Start: 23, End: 7}.Validate())
	assert.NoError(t, QuietHours{Start: 0, End: 0}.Validate())
	assert.Error(t, QuietHours{Start: 24, End: 7}.Validate())
	assert.Error(t, QuietHours{Start: 23, End: -1}.Validate())
}

func TestQuietHours_String(t *testing.T) {
	shanghai := time.FixedZone("CST", 8*3600)
	assert.Equal(t, "23:00-07:00 CST", QuietHours{Start: 23, End: 7, Location: shanghai}.String())
	assert.Equal(t, "01:00-05:00 UTC", QuietHours{Start: 1, End: 5}.String())
}
