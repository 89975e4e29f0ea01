//go:build !linux

package rate

// Detect reports no rate control on platforms without PipeWire.
func Detect() (Control, bool) {
	return nil, false
}
