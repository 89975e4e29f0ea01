//go:build linux

package rate

import (
	"errors"
	"fmt"
	"os/exec"
	"strconv"
	"strings"
)

// PipeWire adjusts the output rate through the pw-metadata tool: the
// graph clock is forced to the song's rate while playing and released
// afterwards. Switching needs clock.allowed-rates configured; without it
// the graph is left alone.
type PipeWire struct {
	run func(args ...string) (string, error)
}

var _ Control = (*PipeWire)(nil)

func newPipeWire() *PipeWire {
	return &PipeWire{run: runPWMetadata}
}

func runPWMetadata(args ...string) (string, error) {
	out, err := exec.Command("pw-metadata", args...).CombinedOutput()
	if err != nil {
		return "", fmt.Errorf("pw-metadata %s: %w", strings.Join(args, " "), err)
	}
	return string(out), nil
}

func (p *PipeWire) SupportedRates() ([]int, error) {
	out, err := p.run("-n", "settings", "0", "clock.allowed-rates")
	if err != nil {
		return nil, err
	}
	rates := parseAllowedRates(out)
	if len(rates) == 0 {
		return nil, errors.New("clock.allowed-rates not configured")
	}
	return rates, nil
}

func (p *PipeWire) SetRate(hz int) error {
	_, err := p.run("-n", "settings", "0", "clock.force-rate", strconv.Itoa(hz))
	return err
}

// Reset forces rate 0, which releases the clock to the graph default.
func (p *PipeWire) Reset() error {
	_, err := p.run("-n", "settings", "0", "clock.force-rate", "0")
	return err
}

// parseAllowedRates pulls the rate list out of pw-metadata output, which
// looks like:
//
//	update: id:0 key:'clock.allowed-rates' value:'[ 44100, 48000 ]' type:''
func parseAllowedRates(out string) []int {
	idx := strings.Index(out, "clock.allowed-rates")
	if idx < 0 {
		return nil
	}
	rest := out[idx:]
	start := strings.Index(rest, "value:'")
	if start < 0 {
		return nil
	}
	rest = rest[start+len("value:'"):]
	end := strings.IndexByte(rest, '\'')
	if end < 0 {
		return nil
	}
	list := strings.Trim(rest[:end], "[] ")
	var rates []int
	for _, field := range strings.FieldsFunc(list, func(r rune) bool {
		return r == ',' || r == ' '
	}) {
		if hz, err := strconv.Atoi(field); err == nil && hz > 0 {
			rates = append(rates, hz)
		}
	}
	return rates
}

// Detect reports the platform's rate control when one is usable.
func Detect() (Control, bool) {
	if _, err := exec.LookPath("pw-metadata"); err != nil {
		return nil, false
	}
	return newPipeWire(), true
}
