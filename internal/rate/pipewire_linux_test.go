//go:build linux

package rate

import (
	"errors"
	"reflect"
	"strings"
	"testing"
)

func TestParseAllowedRates(t *testing.T) {
	tests := []struct {
		name string
		out  string
		want []int
	}{
		{
			"typical output",
			"Found \"settings\" metadata 30\n" +
				"update: id:0 key:'clock.allowed-rates' value:'[ 44100, 48000, 96000 ]' type:''\n",
			[]int{44100, 48000, 96000},
		},
		{
			"space separated",
			"update: id:0 key:'clock.allowed-rates' value:'[ 44100 48000 ]' type:''",
			[]int{44100, 48000},
		},
		{
			"unset list",
			"update: id:0 key:'clock.allowed-rates' value:'[ ]' type:''",
			nil,
		},
		{"key absent", "Found \"settings\" metadata 30\n", nil},
		{"empty output", "", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := parseAllowedRates(tt.out); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("parseAllowedRates() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestPipeWireCommands(t *testing.T) {
	var got [][]string
	p := &PipeWire{run: func(args ...string) (string, error) {
		got = append(got, args)
		return "update: id:0 key:'clock.allowed-rates' value:'[ 44100 ]' type:''", nil
	}}

	if _, err := p.SupportedRates(); err != nil {
		t.Fatalf("SupportedRates() error = %v", err)
	}
	if err := p.SetRate(96000); err != nil {
		t.Fatalf("SetRate() error = %v", err)
	}
	if err := p.Reset(); err != nil {
		t.Fatalf("Reset() error = %v", err)
	}

	want := [][]string{
		{"-n", "settings", "0", "clock.allowed-rates"},
		{"-n", "settings", "0", "clock.force-rate", "96000"},
		{"-n", "settings", "0", "clock.force-rate", "0"},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("pw-metadata invocations = %v, want %v", got, want)
	}
}

func TestSupportedRatesUnconfigured(t *testing.T) {
	p := &PipeWire{run: func(...string) (string, error) {
		return "Found \"settings\" metadata 30\n", nil
	}}
	if _, err := p.SupportedRates(); err == nil {
		t.Error("SupportedRates() error = nil for unconfigured rates, want error")
	}
}

func TestSupportedRatesCommandFailure(t *testing.T) {
	cmdErr := errors.New("exit status 1")
	p := &PipeWire{run: func(...string) (string, error) {
		return "", cmdErr
	}}
	if _, err := p.SupportedRates(); !errors.Is(err, cmdErr) {
		t.Errorf("SupportedRates() error = %v, want %v", err, cmdErr)
	}
}

func TestParseAllowedRatesIgnoresOtherKeys(t *testing.T) {
	out := strings.Join([]string{
		"update: id:0 key:'clock.force-rate' value:'48000' type:''",
		"update: id:0 key:'clock.allowed-rates' value:'[ 88200 ]' type:''",
	}, "\n")
	if got := parseAllowedRates(out); !reflect.DeepEqual(got, []int{88200}) {
		t.Errorf("parseAllowedRates() = %v, want [88200]", got)
	}
}
