package mpd

import "testing"

func TestResolveAddress(t *testing.T) {
	tests := []struct {
		name        string
		addr        string
		host, port  string
		wantNetwork string
		wantAddress string
	}{
		{
			name:        "host and port pass through",
			addr:        "music.local:6601",
			wantNetwork: "tcp",
			wantAddress: "music.local:6601",
		},
		{
			name:        "bare host gains default port",
			addr:        "music.local",
			wantNetwork: "tcp",
			wantAddress: "music.local:6600",
		},
		{
			name:        "bare ipv6 host is bracketed",
			addr:        "::1",
			wantNetwork: "tcp",
			wantAddress: "[::1]:6600",
		},
		{
			name:        "unix socket path",
			addr:        "/run/mpd/socket",
			wantNetwork: "unix",
			wantAddress: "/run/mpd/socket",
		},
		{
			name:        "empty falls back to default",
			wantNetwork: "tcp",
			wantAddress: DefaultAddress,
		},
		{
			name:        "environment host",
			host:        "jukebox",
			wantNetwork: "tcp",
			wantAddress: "jukebox:6600",
		},
		{
			name:        "environment host and port",
			host:        "jukebox",
			port:        "6700",
			wantNetwork: "tcp",
			wantAddress: "jukebox:6700",
		},
		{
			name:        "environment unix socket",
			host:        "/run/user/1000/mpd.sock",
			wantNetwork: "unix",
			wantAddress: "/run/user/1000/mpd.sock",
		},
		{
			name:        "explicit address beats environment",
			addr:        "music.local",
			host:        "jukebox",
			wantNetwork: "tcp",
			wantAddress: "music.local:6600",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("MPD_HOST", tt.host)
			t.Setenv("MPD_PORT", tt.port)
			network, address := ResolveAddress(tt.addr)
			if network != tt.wantNetwork || address != tt.wantAddress {
				t.Errorf("ResolveAddress(%q) = (%q, %q), want (%q, %q)",
					tt.addr, network, address, tt.wantNetwork, tt.wantAddress)
			}
		})
	}
}

func TestNewClientDoesNotDial(t *testing.T) {
	// Construction must be lazy: this address has no listener.
	c := NewClient("127.0.0.1:1")
	if c.Address() != "tcp://127.0.0.1:1" {
		t.Errorf("Address() = %q, want tcp://127.0.0.1:1", c.Address())
	}
	if err := c.Close(); err != nil {
		t.Errorf("Close() on undialed client = %v, want nil", err)
	}
}
