package schedule

import "testing"

func TestNormalizeDate(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{in: "2026-06-15", want: "2026-06-15"},
		{in: "2026-06-15T10:00:00Z", want: "2026-06-15"},
		{in: "2026-06-15 10:00", want: "2026-06-15"},
		{in: "2026-06-15 10:00:00", want: "2026-06-15"},
		{in: "15/06/2026", wantErr: true},
		{in: "", wantErr: true},
	}

	for _, tt := range tests {
		got, err := NormalizeDate(tt.in)
		if tt.wantErr {
			if err == nil {
				t.Fatalf("NormalizeDate(%q) expected error, got %q", tt.in, got)
			}
			continue
		}
		if err != nil {
			t.Fatalf("NormalizeDate(%q) unexpected error: %v", tt.in, err)
		}
		if got != tt.want {
			t.Fatalf("NormalizeDate(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestNormalizeTime(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{in: "14:30", want: "14:30"},
		{in: "14:30:00", want: "14:30"},
		{in: "2:30 PM", want: "14:30"},
		{in: "", want: ""},
		{in: "half past two", wantErr: true},
	}

	for _, tt := range tests {
		got, err := NormalizeTime(tt.in)
		if tt.wantErr {
			if err == nil {
				t.Fatalf("NormalizeTime(%q) expected error, got %q", tt.in, got)
			}
			continue
		}
		if err != nil {
			t.Fatalf("NormalizeTime(%q) unexpected error: %v", tt.in, err)
		}
		if got != tt.want {
			t.Fatalf("NormalizeTime(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestSlotConflicts(t *testing.T) {
	tests := []struct {
		name string
		a, b Slot
		want bool
	}{
		{name: "same date and time", a: Slot{"2026-06-15", "14:30"}, b: Slot{"2026-06-15", "14:30"}, want: true},
		{name: "same date different time", a: Slot{"2026-06-15", "14:30"}, b: Slot{"2026-06-15", "18:00"}, want: false},
		{name: "different dates", a: Slot{"2026-06-15", "14:30"}, b: Slot{"2026-06-16", "14:30"}, want: false},
		{name: "all-day blocks timed slot", a: Slot{"2026-06-15", ""}, b: Slot{"2026-06-15", "14:30"}, want: true},
		{name: "timed slot blocks all-day", a: Slot{"2026-06-15", "14:30"}, b: Slot{"2026-06-15", ""}, want: true},
	}

	for _, tt := range tests {
		if got := tt.a.Conflicts(tt.b); got != tt.want {
			t.Fatalf("%s: Conflicts = %v, want %v", tt.name, got, tt.want)
		}
	}
}
