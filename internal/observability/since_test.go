package observability

import (
	"testing"
	"time"
)

func TestParseSince(t *testing.T) {
	now := time.Date(2025, 6, 10, 12, 0, 0, 0, time.UTC)
	tests := []struct {
		in      string
		want    time.Time
		wantErr bool
	}{
		{in: "7d", want: now.AddDate(0, 0, -7)},
		{in: "24h", want: now.Add(-24 * time.Hour)},
		{in: "0d", want: now},
		{in: "d", wantErr: true},
		{in: "7w", wantErr: true},
		{in: "xd", wantErr: true},
		{in: "-1d", wantErr: true},
	}
	for _, tt := range tests {
		got, err := ParseSince(tt.in, now)
		if tt.wantErr {
			if err == nil {
				t.Errorf("ParseSince(%q) expected error", tt.in)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseSince(%q): %v", tt.in, err)
			continue
		}
		if !got.Equal(tt.want) {
			t.Errorf("ParseSince(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
