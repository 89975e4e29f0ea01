package rate

import "testing"

func TestResolve(t *testing.T) {
	tests := []struct {
		name      string
		songRate  int
		supported []int
		want      int
	}{
		{"exact match", 44100, []int{44100, 48000, 96000}, 44100},
		{"smallest integer multiple", 44100, []int{176400, 88200, 48000}, 88200},
		{"no multiple falls back to highest", 44100, []int{48000, 96000}, 96000},
		{"single supported rate", 96000, []int{48000}, 48000},
		{"nothing supported", 44100, nil, 0},
		{"unknown song rate", 0, []int{44100}, 0},
		{"negative entries ignored", 44100, []int{-1, 0, 88200}, 88200},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Resolve(tt.songRate, tt.supported); got != tt.want {
				t.Errorf("Resolve(%d, %v) = %d, want %d", tt.songRate, tt.supported, got, tt.want)
			}
		})
	}
}
