package mpd

import (
	"context"
	"fmt"
	"net"
	"os"
	"strings"
	"sync"
	"time"

	gompd "github.com/fhs/gompd/v2/mpd"

	"github.com/sphene/coda/internal/cover"
	"github.com/sphene/coda/internal/library"
)

const (
	// DefaultPort is the daemon's standard TCP port.
	DefaultPort = "6600"
	// DefaultAddress is used when neither flag, config, nor environment
	// name a daemon.
	DefaultAddress = "127.0.0.1:6600"

	// artBinaryLimit is requested on art connections so picture reads
	// take fewer round trips than the daemon's small default chunk.
	artBinaryLimit = 512 * 1024
)

// Client talks to one MPD daemon. Commands share a persistent connection
// behind a mutex and redial once when it has gone stale; cover art reads
// use short-lived connections of their own so multi-megabyte transfers
// never hold up playback commands.
type Client struct {
	network string
	addr    string

	mu   sync.Mutex
	conn *gompd.Client
}

var (
	_ library.Source = (*Client)(nil)
	_ cover.Fetcher  = (*Client)(nil)
)

// ResolveAddress normalizes a daemon address into a dial network and
// address. An empty addr falls back to the MPD_HOST/MPD_PORT environment,
// then to DefaultAddress. Addresses beginning with / are unix sockets;
// bare hosts get the default port.
func ResolveAddress(addr string) (network, address string) {
	if addr == "" {
		addr = addrFromEnv()
	}
	if addr == "" {
		return "tcp", DefaultAddress
	}
	if strings.HasPrefix(addr, "/") {
		return "unix", addr
	}
	if _, _, err := net.SplitHostPort(addr); err != nil {
		addr = net.JoinHostPort(addr, DefaultPort)
	}
	return "tcp", addr
}

func addrFromEnv() string {
	host := os.Getenv("MPD_HOST")
	if host == "" {
		return ""
	}
	if strings.HasPrefix(host, "/") {
		return host
	}
	port := os.Getenv("MPD_PORT")
	if port == "" {
		port = DefaultPort
	}
	return net.JoinHostPort(host, port)
}

// NewClient returns a client for the daemon at addr. Nothing is dialed
// until the first call.
func NewClient(addr string) *Client {
	network, address := ResolveAddress(addr)
	return &Client{network: network, addr: address}
}

// Address reports the resolved dial target, for logging.
func (c *Client) Address() string {
	return c.network + "://" + c.addr
}

// Close drops the persistent connection.
func (c *Client) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.conn == nil {
		return nil
	}
	err := c.conn.Close()
	c.conn = nil
	return err
}

// withConn runs fn against the persistent command connection, dialing on
// first use. A failed command drops the connection and retries once on a
// fresh dial, so a restarted daemon heals on the next call.
func (c *Client) withConn(fn func(conn *gompd.Client) error) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.conn == nil {
		conn, err := gompd.Dial(c.network, c.addr)
		if err != nil {
			return fmt.Errorf("dial %s %s: %w", c.network, c.addr, err)
		}
		c.conn = conn
	}
	err := fn(c.conn)
	if err == nil {
		return nil
	}
	c.conn.Close()
	c.conn = nil
	conn, derr := gompd.Dial(c.network, c.addr)
	if derr != nil {
		return err
	}
	c.conn = conn
	return fn(c.conn)
}

// Ping probes the daemon.
func (c *Client) Ping(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return c.withConn(func(conn *gompd.Client) error {
		if err := conn.Ping(); err != nil {
			return fmt.Errorf("ping: %w", err)
		}
		return nil
	})
}

// Status fetches and parses the player status.
func (c *Client) Status(ctx context.Context) (PlayerStatus, error) {
	if err := ctx.Err(); err != nil {
		return PlayerStatus{}, err
	}
	var status PlayerStatus
	err := c.withConn(func(conn *gompd.Client) error {
		attrs, err := conn.Status()
		if err != nil {
			return fmt.Errorf("status: %w", err)
		}
		status = statusFromAttrs(attrs)
		return nil
	})
	return status, err
}

// CurrentSong fetches the playing song, nil when nothing is playing.
func (c *Client) CurrentSong(ctx context.Context) (*library.Track, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	var current *library.Track
	err := c.withConn(func(conn *gompd.Client) error {
		attrs, err := conn.CurrentSong()
		if err != nil {
			return fmt.Errorf("current song: %w", err)
		}
		if attrs["file"] == "" {
			return nil
		}
		track := trackFromAttrs(attrs)
		current = &track
		return nil
	})
	return current, err
}

// Queue fetches the play queue in order.
func (c *Client) Queue(ctx context.Context) ([]library.Track, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	var queue []library.Track
	err := c.withConn(func(conn *gompd.Client) error {
		attrs, err := conn.PlaylistInfo(-1, -1)
		if err != nil {
			return fmt.Errorf("playlist info: %w", err)
		}
		queue = tracksFromAttrs(attrs)
		return nil
	})
	return queue, err
}

// AllTracks fetches the entire song catalog.
func (c *Client) AllTracks(ctx context.Context) ([]library.Track, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	var tracks []library.Track
	err := c.withConn(func(conn *gompd.Client) error {
		attrs, err := conn.ListAllInfo("/")
		if err != nil {
			return fmt.Errorf("list all info: %w", err)
		}
		tracks = tracksFromAttrs(attrs)
		return nil
	})
	return tracks, err
}

// AlbumArtists lists the distinct album-artist tag values.
func (c *Client) AlbumArtists(ctx context.Context) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	var names []string
	err := c.withConn(func(conn *gompd.Client) error {
		list, err := conn.List("albumartist")
		if err != nil {
			return fmt.Errorf("list albumartist: %w", err)
		}
		names = list
		return nil
	})
	return names, err
}

// TracksByAlbumArtist fetches every track filed under the given album
// artist.
func (c *Client) TracksByAlbumArtist(ctx context.Context, name string) ([]library.Track, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	var tracks []library.Track
	err := c.withConn(func(conn *gompd.Client) error {
		attrs, err := conn.Find("albumartist", name)
		if err != nil {
			return fmt.Errorf("find albumartist %q: %w", name, err)
		}
		tracks = tracksFromAttrs(attrs)
		return nil
	})
	return tracks, err
}

// CoverArt fetches the cover for key on a connection of its own, trying
// the embedded picture first and the directory cover second. A missing
// cover is (nil, nil), not an error.
func (c *Client) CoverArt(ctx context.Context, key string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	conn, err := gompd.Dial(c.network, c.addr)
	if err != nil {
		return nil, fmt.Errorf("dial %s %s: %w", c.network, c.addr, err)
	}
	defer conn.Close()

	// Best effort: daemons before 0.22.4 reject binarylimit.
	_ = conn.Command("binarylimit %d", artBinaryLimit).OK()

	if data, err := conn.ReadPicture(key); err == nil && len(data) > 0 {
		return data, nil
	}
	data, err := conn.AlbumArt(key)
	if err != nil {
		// Both picture commands refused: the daemon has no art here.
		return nil, nil
	}
	return data, nil
}

// Play starts playback at the given queue position, -1 resuming wherever
// the daemon stopped.
func (c *Client) Play(ctx context.Context, pos int) error {
	return c.command(ctx, "play", func(conn *gompd.Client) error {
		return conn.Play(pos)
	})
}

// Pause pauses or resumes playback.
func (c *Client) Pause(ctx context.Context, on bool) error {
	return c.command(ctx, "pause", func(conn *gompd.Client) error {
		return conn.Pause(on)
	})
}

// Stop halts playback.
func (c *Client) Stop(ctx context.Context) error {
	return c.command(ctx, "stop", func(conn *gompd.Client) error {
		return conn.Stop()
	})
}

// Next skips to the next queue entry.
func (c *Client) Next(ctx context.Context) error {
	return c.command(ctx, "next", func(conn *gompd.Client) error {
		return conn.Next()
	})
}

// Previous steps back to the previous queue entry.
func (c *Client) Previous(ctx context.Context) error {
	return c.command(ctx, "previous", func(conn *gompd.Client) error {
		return conn.Previous()
	})
}

// Seek jumps to an offset within the song at the given queue position.
func (c *Client) Seek(ctx context.Context, pos int, to time.Duration) error {
	if to < 0 {
		to = 0
	}
	return c.command(ctx, "seek", func(conn *gompd.Client) error {
		return conn.Seek(pos, int(to.Seconds()))
	})
}

// SetVolume sets the mixer volume, clamped to 0-100.
func (c *Client) SetVolume(ctx context.Context, volume int) error {
	if volume < 0 {
		volume = 0
	}
	if volume > 100 {
		volume = 100
	}
	return c.command(ctx, "setvol", func(conn *gompd.Client) error {
		return conn.SetVolume(volume)
	})
}

// SetRepeat toggles repeat mode.
func (c *Client) SetRepeat(ctx context.Context, on bool) error {
	return c.command(ctx, "repeat", func(conn *gompd.Client) error {
		return conn.Repeat(on)
	})
}

// SetRandom toggles random mode.
func (c *Client) SetRandom(ctx context.Context, on bool) error {
	return c.command(ctx, "random", func(conn *gompd.Client) error {
		return conn.Random(on)
	})
}

// SetSingle toggles single mode.
func (c *Client) SetSingle(ctx context.Context, on bool) error {
	return c.command(ctx, "single", func(conn *gompd.Client) error {
		return conn.Single(on)
	})
}

// SetConsume toggles consume mode.
func (c *Client) SetConsume(ctx context.Context, on bool) error {
	return c.command(ctx, "consume", func(conn *gompd.Client) error {
		return conn.Consume(on)
	})
}

// ClearQueue empties the play queue.
func (c *Client) ClearQueue(ctx context.Context) error {
	return c.command(ctx, "clear", func(conn *gompd.Client) error {
		return conn.Clear()
	})
}

// RemoveFromQueue deletes the entry at the given queue position.
func (c *Client) RemoveFromQueue(ctx context.Context, pos int) error {
	return c.command(ctx, "delete", func(conn *gompd.Client) error {
		return conn.Delete(pos, -1)
	})
}

// MoveInQueue moves the entry at from to position to.
func (c *Client) MoveInQueue(ctx context.Context, from, to int) error {
	return c.command(ctx, "move", func(conn *gompd.Client) error {
		return conn.Move(from, -1, to)
	})
}

// Add appends the song or directory at uri to the queue.
func (c *Client) Add(ctx context.Context, uri string) error {
	return c.command(ctx, "add", func(conn *gompd.Client) error {
		return conn.Add(uri)
	})
}

// Update asks the daemon to rescan its music directory.
func (c *Client) Update(ctx context.Context) error {
	return c.command(ctx, "update", func(conn *gompd.Client) error {
		_, err := conn.Update("")
		return err
	})
}

func (c *Client) command(ctx context.Context, name string, fn func(conn *gompd.Client) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return c.withConn(func(conn *gompd.Client) error {
		if err := fn(conn); err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
		return nil
	})
}
