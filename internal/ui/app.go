package ui

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/sphene/coda/internal/config"
	"github.com/sphene/coda/internal/cover"
	"github.com/sphene/coda/internal/library"
	"github.com/sphene/coda/internal/lrc"
	"github.com/sphene/coda/internal/mpd"
	"github.com/sphene/coda/internal/prefs"
	"github.com/sphene/coda/internal/reactor"
	"github.com/sphene/coda/internal/state"
)

// MenuMode selects the main content view.
type MenuMode int

const (
	ModeQueue MenuMode = iota
	ModeLibrary
)

// PanelFocus selects the focused panel in library mode.
type PanelFocus int

const (
	FocusArtists PanelFocus = iota
	FocusAlbums
)

const (
	defaultPollTick = time.Second
	seekStep        = 5 * time.Second
	volumeStep      = 5
)

// Options configures the UI.
type Options struct {
	Context     context.Context
	Client      *mpd.Client
	Store       *state.Store
	Covers      *cover.Loader
	RateReactor *reactor.RateSwitch // nil disables output rate switching
	Config      config.Config
	ThemeName   string
	PrefsPath   string
	PollTick    time.Duration
	Logger      *slog.Logger
}

// Model is the root application state for Bubble Tea.
type Model struct {
	// Wiring
	ctx         context.Context
	client      *mpd.Client
	store       *state.Store
	covers      *cover.Loader
	source      library.Source
	songReactor *reactor.SongChange
	rateReactor *reactor.RateSwitch
	cfg         config.Config
	prefsPath   string
	pollTick    time.Duration
	logger      *slog.Logger

	// UI state
	theme  Theme
	mode   MenuMode
	width  int
	height int
	ready  bool
	keys   keyMap

	// Data state
	snapshot state.Snapshot

	// Queue view
	queueCursor int

	// Library view
	lib          *library.LazyLibrary
	libErr       error
	panel        PanelFocus
	artistCursor int
	albumCursor  int
	expanded     map[string]bool
	searching    bool
	searchInput  textinput.Model
	filtered     []int // artist indices matching the filter, nil when inactive

	// Now playing
	artKey  string
	artData []byte
	art     string
	lyrics    lrc.Lyrics
	lyricsKey string

	// Volume memory for mute
	muted     bool
	mutedFrom int

	showHelp bool
}

// New creates a new Bubble Tea model.
func New(opts Options) Model {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}

	pollTick := opts.PollTick
	if pollTick == 0 {
		pollTick = defaultPollTick
	}

	themeName := opts.ThemeName
	if themeName == "" {
		themeName = prefs.DefaultTheme()
	}

	prefsPath := opts.PrefsPath
	if prefsPath == "" {
		prefsPath = prefs.DefaultPath()
	}

	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	m := Model{
		ctx:       ctx,
		client:    opts.Client,
		store:     opts.Store,
		covers:    opts.Covers,
		cfg:       opts.Config,
		prefsPath: prefsPath,
		pollTick:  pollTick,
		logger:    logger,
		theme:     GetTheme(themeName),
		mode:      ModeQueue,
		keys:      DefaultKeyMap(),
		expanded:  make(map[string]bool),
	}
	if opts.Client != nil {
		m.source = opts.Client
	}
	if opts.Covers != nil {
		m.songReactor = reactor.NewSongChange(opts.Covers)
	}
	m.rateReactor = opts.RateReactor

	input := textinput.New()
	input.Prompt = "/"
	input.CharLimit = 64
	m.searchInput = input

	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{
		tea.EnterAltScreen,
		tickCmd(m.pollTick),
	}
	if m.store != nil {
		cmds = append(cmds, fetchSnapshotCmd(m.store))
	}
	if m.source != nil {
		cmds = append(cmds, m.loadLibraryCmd())
	}
	if cmd := m.waitCoverCmd(); cmd != nil {
		cmds = append(cmds, cmd)
	}
	return tea.Batch(cmds...)
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		m.refreshArt()
		return m, nil

	case tickMsg:
		return m.handleTick()

	case snapshotMsg:
		return m.handleSnapshot(state.Snapshot(msg))

	case coverMsg:
		return m.handleCover(cover.Result(msg))

	case libraryMsg:
		m.lib = msg.lib
		m.libErr = msg.err
		m.panel = FocusArtists
		m.artistCursor = 0
		m.albumCursor = 0
		m.filtered = nil
		m.searching = false
		m.searchInput.SetValue("")
		m.expanded = make(map[string]bool)
		if msg.err != nil {
			m.logger.Warn("library load failed", "error", msg.err)
		}
		return m, nil

	case artistAlbumsMsg:
		m.applyArtistAlbums(msg)
		return m, nil

	case lyricsMsg:
		if cur := m.snapshot.Current; cur != nil && cur.Key == msg.key {
			m.lyrics = msg.lyrics
			m.lyricsKey = msg.key
		}
		return m, nil
	}

	return m, nil
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}

	if m.showHelp {
		return m.renderHelp()
	}

	var b strings.Builder
	b.WriteString(m.renderHeader())
	b.WriteString("\n")
	b.WriteString(m.renderCommandBar())
	b.WriteString("\n")

	switch m.mode {
	case ModeLibrary:
		b.WriteString(m.renderLibraryMode())
	default:
		b.WriteString(m.renderQueueMode())
	}

	return b.String()
}

// handleSnapshot folds a fresh snapshot in and runs the reactors on it.
func (m Model) handleSnapshot(snap state.Snapshot) (tea.Model, tea.Cmd) {
	prevQueue := m.snapshot.Queue
	m.snapshot = snap

	var cmds []tea.Cmd
	if m.songReactor != nil {
		outcome := m.songReactor.Observe(m.ctx, snap.Current, snap.Queue)
		if outcome.ClearArt {
			m.artKey, m.artData, m.art = "", nil, ""
			m.lyrics, m.lyricsKey = lrc.Lyrics{}, ""
		}
		if outcome.Changed && snap.Current != nil {
			key := snap.Current.Key
			path := lrc.SidecarPath(m.cfg.MusicDir, key)
			cmds = append(cmds, loadLyricsCmd(path, key, m.logger))
		}
	}

	if m.rateReactor != nil {
		rate, ok := songRate(snap)
		m.rateReactor.Observe(snap.Status.State, rate, ok)
	}

	m.syncQueueCursor(prevQueue)
	return m, tea.Batch(cmds...)
}

// songRate reports the playing song's sample rate, preferring the track
// tags and falling back to the decoder status.
func songRate(snap state.Snapshot) (int, bool) {
	if snap.Current != nil {
		if rate, ok := snap.Current.SampleRate(); ok {
			return rate, true
		}
	}
	return snap.Status.SampleRate()
}

// handleCover folds a delivered cover in, dropping results for songs no
// longer playing, and re-arms the channel wait.
func (m Model) handleCover(res cover.Result) (tea.Model, tea.Cmd) {
	cmds := []tea.Cmd{}
	if cmd := m.waitCoverCmd(); cmd != nil {
		cmds = append(cmds, cmd)
	}
	if cur := m.snapshot.Current; cur != nil && cur.Key == res.Key {
		m.artKey = res.Key
		m.artData = res.Data
		m.refreshArt()
	}
	return m, tea.Batch(cmds...)
}

// handleTick refreshes the snapshot and schedules the next tick.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd
	if m.store != nil {
		cmds = append(cmds, fetchSnapshotCmd(m.store))
	}
	cmds = append(cmds, tickCmd(m.pollTick))
	return m, tea.Batch(cmds...)
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.showHelp {
		// Any key closes help
		m.showHelp = false
		return m, nil
	}

	if m.searching {
		return m.handleSearchKey(msg)
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.showHelp = true
		return m, nil

	case key.Matches(msg, m.keys.CycleTheme):
		m.theme = GetTheme(NextTheme(m.theme.Name))
		if m.prefsPath != "" {
			_ = prefs.Save(m.prefsPath, prefs.Prefs{Theme: m.theme.Name})
		}
		return m, nil

	case key.Matches(msg, m.keys.TogglePlay):
		return m, m.togglePlayCmd()

	case key.Matches(msg, m.keys.Next):
		return m, m.actionCmd("next", m.client.Next)

	case key.Matches(msg, m.keys.Previous):
		return m, m.actionCmd("previous", m.client.Previous)

	case key.Matches(msg, m.keys.SeekForward):
		return m, m.seekCmd(seekStep)

	case key.Matches(msg, m.keys.SeekBackward):
		return m, m.seekCmd(-seekStep)

	case key.Matches(msg, m.keys.VolumeUp):
		return m.adjustVolume(volumeStep)

	case key.Matches(msg, m.keys.VolumeDown):
		return m.adjustVolume(-volumeStep)

	case key.Matches(msg, m.keys.Mute):
		return m.toggleMute()

	case key.Matches(msg, m.keys.Repeat):
		on := !m.snapshot.Status.Repeat
		return m, m.actionCmd("repeat", func(ctx context.Context) error {
			return m.client.SetRepeat(ctx, on)
		})

	case key.Matches(msg, m.keys.Random):
		on := !m.snapshot.Status.Random
		return m, m.actionCmd("random", func(ctx context.Context) error {
			return m.client.SetRandom(ctx, on)
		})

	case key.Matches(msg, m.keys.Single):
		on := !m.snapshot.Status.Single
		return m, m.actionCmd("single", func(ctx context.Context) error {
			return m.client.SetSingle(ctx, on)
		})

	case key.Matches(msg, m.keys.Consume):
		on := !m.snapshot.Status.Consume
		return m, m.actionCmd("consume", func(ctx context.Context) error {
			return m.client.SetConsume(ctx, on)
		})

	case key.Matches(msg, m.keys.ClearQueue):
		return m, m.actionCmd("clear queue", m.client.ClearQueue)

	case key.Matches(msg, m.keys.Reload):
		return m, tea.Batch(
			m.actionCmd("update database", m.client.Update),
			m.loadLibraryCmd(),
		)

	case key.Matches(msg, m.keys.QueueMode):
		m.mode = ModeQueue
		return m, nil

	case key.Matches(msg, m.keys.LibraryMode):
		m.mode = ModeLibrary
		return m, nil

	case key.Matches(msg, m.keys.CycleModeNext), key.Matches(msg, m.keys.CycleModePrev):
		// Two modes, so both directions toggle.
		if m.mode == ModeQueue {
			m.mode = ModeLibrary
		} else {
			m.mode = ModeQueue
		}
		return m, nil
	}

	switch m.mode {
	case ModeLibrary:
		return m.handleLibraryKey(msg)
	default:
		return m.handleQueueKey(msg)
	}
}

// togglePlayCmd pauses when playing, resumes when paused, and starts the
// queue from wherever the daemon stopped otherwise.
func (m Model) togglePlayCmd() tea.Cmd {
	switch m.snapshot.Status.State {
	case mpd.StatePlay:
		return m.actionCmd("pause", func(ctx context.Context) error {
			return m.client.Pause(ctx, true)
		})
	case mpd.StatePause:
		return m.actionCmd("resume", func(ctx context.Context) error {
			return m.client.Pause(ctx, false)
		})
	default:
		return m.actionCmd("play", func(ctx context.Context) error {
			return m.client.Play(ctx, -1)
		})
	}
}

// seekCmd seeks within the playing song by delta.
func (m Model) seekCmd(delta time.Duration) tea.Cmd {
	pos := m.snapshot.Status.Song
	if pos < 0 {
		return nil
	}
	to := m.snapshot.Status.Elapsed + delta
	return m.actionCmd("seek", func(ctx context.Context) error {
		return m.client.Seek(ctx, pos, to)
	})
}

// adjustVolume nudges the mixer volume, leaving mute state behind.
func (m Model) adjustVolume(delta int) (tea.Model, tea.Cmd) {
	vol := m.snapshot.Status.Volume
	if vol < 0 {
		return m, nil
	}
	m.muted = false
	target := vol + delta
	return m, m.actionCmd("set volume", func(ctx context.Context) error {
		return m.client.SetVolume(ctx, target)
	})
}

// toggleMute drops the volume to zero and back, restoring the level it
// had before muting.
func (m Model) toggleMute() (tea.Model, tea.Cmd) {
	vol := m.snapshot.Status.Volume
	if vol < 0 {
		return m, nil
	}
	if m.muted {
		m.muted = false
		restore := m.mutedFrom
		return m, m.actionCmd("unmute", func(ctx context.Context) error {
			return m.client.SetVolume(ctx, restore)
		})
	}
	m.muted = true
	m.mutedFrom = vol
	return m, m.actionCmd("mute", func(ctx context.Context) error {
		return m.client.SetVolume(ctx, 0)
	})
}

// Messages

type tickMsg time.Time

type snapshotMsg state.Snapshot

type coverMsg cover.Result

type libraryMsg struct {
	lib *library.LazyLibrary
	err error
}

type artistAlbumsMsg struct {
	index  int
	name   string
	albums []library.Album
	err    error
}

type lyricsMsg struct {
	key    string
	lyrics lrc.Lyrics
}

// Commands

func tickCmd(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func fetchSnapshotCmd(store *state.Store) tea.Cmd {
	return func() tea.Msg {
		return snapshotMsg(store.Snapshot())
	}
}

// waitCoverCmd blocks on the loader's result channel and resolves to a
// coverMsg; re-armed after every delivery.
func (m Model) waitCoverCmd() tea.Cmd {
	if m.covers == nil {
		return nil
	}
	ch := m.covers.Results()
	return func() tea.Msg {
		res, ok := <-ch
		if !ok {
			return nil
		}
		return coverMsg(res)
	}
}

// loadLibraryCmd builds a fresh library handle: a full eager load when
// configured, otherwise the artist-name seed that loads on demand.
func (m Model) loadLibraryCmd() tea.Cmd {
	if m.source == nil {
		return nil
	}
	ctx, src, eager, logger := m.ctx, m.source, m.cfg.EagerLibrary, m.logger
	return func() tea.Msg {
		if eager {
			lib, err := library.LoadEager(ctx, src, library.WithLogger(logger))
			if err != nil {
				return libraryMsg{err: err}
			}
			return libraryMsg{lib: library.Preloaded(lib)}
		}
		lazy, err := library.NewLazy(ctx, src)
		if err != nil {
			return libraryMsg{err: err}
		}
		return libraryMsg{lib: lazy}
	}
}

// loadArtistCmd fetches one artist's albums off the update loop. The
// result is applied back on the loop, keyed by name so a reloaded
// library never receives a stale batch.
func (m Model) loadArtistCmd(i int) tea.Cmd {
	if m.lib == nil || m.source == nil {
		return nil
	}
	artist, err := m.lib.Artist(i)
	if err != nil || artist.IsLoaded() {
		return nil
	}
	lib, src, ctx, name := m.lib, m.source, m.ctx, artist.Name
	return func() tea.Msg {
		albums, err := lib.FetchArtistAlbums(ctx, src, i)
		return artistAlbumsMsg{index: i, name: name, albums: albums, err: err}
	}
}

// applyArtistAlbums folds a fetched album batch into the library.
func (m *Model) applyArtistAlbums(msg artistAlbumsMsg) {
	if msg.err != nil {
		m.logger.Warn("artist load failed", "artist", msg.name, "error", msg.err)
		return
	}
	if m.lib == nil {
		return
	}
	artist, err := m.lib.Artist(msg.index)
	if err != nil || artist.Name != msg.name {
		return
	}
	if err := m.lib.SetArtistAlbums(msg.index, msg.albums); err != nil {
		m.logger.Warn("artist apply failed", "artist", msg.name, "error", err)
	}
}

func loadLyricsCmd(path, key string, logger *slog.Logger) tea.Cmd {
	return func() tea.Msg {
		lyrics, err := lrc.Load(path)
		if err != nil {
			logger.Debug("load lyrics", "path", path, "error", err)
		}
		return lyricsMsg{key: key, lyrics: lyrics}
	}
}

// actionCmd runs one player command off the update loop. Failures are
// logged, not surfaced; the next poll shows the daemon's real state.
func (m Model) actionCmd(name string, fn func(context.Context) error) tea.Cmd {
	if m.client == nil {
		return nil
	}
	ctx, logger := m.ctx, m.logger
	return func() tea.Msg {
		if err := fn(ctx); err != nil {
			logger.Warn("player command failed", "command", name, "error", err)
		}
		return nil
	}
}

// Run starts the Bubble Tea program and blocks until quit. Cancelling
// opts.Context shuts the program down along with the commands it issued.
func Run(opts Options, programOpts ...tea.ProgramOption) error {
	m := New(opts)
	teaOpts := []tea.ProgramOption{tea.WithAltScreen()}
	if opts.Context != nil {
		teaOpts = append(teaOpts, tea.WithContext(opts.Context))
	}
	teaOpts = append(teaOpts, programOpts...)
	p := tea.NewProgram(m, teaOpts...)
	_, err := p.Run()
	if errors.Is(err, tea.ErrProgramKilled) && opts.Context != nil && opts.Context.Err() != nil {
		// Killed by the signal context, not a crash.
		return nil
	}
	return err
}
