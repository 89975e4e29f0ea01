package rate

// Control adjusts the sample rate of the system audio output.
type Control interface {
	// SupportedRates lists the rates the output may be switched to.
	SupportedRates() ([]int, error)
	// SetRate forces the output to the given rate in Hz.
	SetRate(hz int) error
	// Reset releases any forced rate back to the system default.
	Reset() error
}

// Resolve picks the output rate for a song from the rates the output
// supports: the song's own rate when supported, else the smallest
// supported integer multiple of it so resampling stays transparent, else
// the highest supported rate. Returns 0 when no usable rate exists.
func Resolve(songRate int, supported []int) int {
	if songRate <= 0 {
		return 0
	}
	multiple := 0
	highest := 0
	for _, hz := range supported {
		if hz <= 0 {
			continue
		}
		if hz == songRate {
			return hz
		}
		if hz%songRate == 0 && (multiple == 0 || hz < multiple) {
			multiple = hz
		}
		if hz > highest {
			highest = hz
		}
	}
	if multiple != 0 {
		return multiple
	}
	return highest
}
