package timeline_test

import (
	"testing"

	"gym-portal/internal/timeline"
)

func TestMapWeekday(t *testing.T) {
	tests := []struct {
		label  string
		want   int
		wantOK bool
	}{
		{label: "lunes", want: 1, wantOK: true},
		{label: "Martes", want: 2, wantOK: true},
		{label: "MIÉRCOLES", want: 3, wantOK: true},
		{label: "miercoles", want: 3, wantOK: true},
		{label: "Miércoles", want: 3, wantOK: true},
		{label: "jueves", want: 4, wantOK: true},
		{label: " Viernes ", want: 5, wantOK: true},
		{label: "sábado", want: 6, wantOK: true},
		{label: "SABADO", want: 6, wantOK: true},
		{label: "Dom.", want: 7, wantOK: true},
		{label: "mié", want: 3, wantOK: true},
		{label: "Thursday", want: 4, wantOK: true},
		{label: "sun", want: 7, wantOK: true},
		{label: "funday", wantOK: false},
		{label: "", wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.label, func(t *testing.T) {
			got, ok := timeline.MapWeekday(tt.label)
			if ok != tt.wantOK || got != tt.want {
				t.Errorf("MapWeekday(%q) = %d, %v; want %d, %v", tt.label, got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestMapWeekday_AccentInsensitive(t *testing.T) {
	a, okA := timeline.MapWeekday("MIÉRCOLES")
	b, okB := timeline.MapWeekday("miercoles")
	if !okA || !okB || a != b || a != 3 {
		t.Errorf("MIÉRCOLES=%d(%v) miercoles=%d(%v), want both 3", a, okA, b, okB)
	}
}
