package dbx

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTimestamp_Scan(t *testing.T) {
	want := time.Date(2024, 5, 1, 10, 20, 30, 123456000, time.UTC)

	tests := []struct {
		name string
		src  any
		want time.Time
	}{
		{"time", want.In(time.FixedZone("X", 3600)), want},
		{"sqlite text", "2024-05-01 10:20:30.123456+00:00", want},
		{"time.String", "2024-05-01 10:20:30.123456 +0000 UTC", want},
		{"rfc3339", "2024-05-01T10:20:30.123456Z", want},
		{"bytes", []byte("2024-05-01 10:20:30.123456"), want},
		{"unix", int64(1714558830), want.Truncate(time.Second)},
		{"null", nil, time.Time{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got time.Time
			require.NoError(t, TimeDest(&got).Scan(tt.src))
			assert.True(t, tt.want.Equal(got), "want %v got %v", tt.want, got)
		})
	}
}

func TestTimestamp_ScanErrors(t *testing.T) {
	var got time.Time
	assert.Error(t, TimeDest(&got).Scan("yesterday"))
	assert.Error(t, TimeDest(&got).Scan(3.14))
}
