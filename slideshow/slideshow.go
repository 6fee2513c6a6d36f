// Package slideshow drives a figure drawing session: a shuffled queue of
// image paths consumed once per pass, a bounded navigation history, and a
// per-image countdown advanced by an external one second tick.
package slideshow

import (
	"errors"
	"fmt"
	"log/slog"
	"math/rand"
	"os"

	"github.com/acarlisle/figuredraw/scan"
)

const (
	// DefaultIntervalSeconds replaces a configured interval at or below
	// zero when a session starts.
	DefaultIntervalSeconds = 60

	// DefaultHistoryLimit caps the navigation trail unless configured
	// otherwise.
	DefaultHistoryLimit = 50
)

var (
	ErrInvalidDirectory = errors.New("invalid image directory")
	ErrNoImagesFound    = errors.New("no images found")
	ErrSessionActive    = errors.New("session already active")
)

// Config is the source and timing configuration of a session.
type Config struct {
	// Directory is the image source folder.
	Directory string
	// Recursive includes subfolders in the scan.
	Recursive bool
	// IntervalSeconds is the per-image display time. Values at or below
	// zero are coerced to DefaultIntervalSeconds at Start.
	IntervalSeconds int
	// HistoryLimit caps the navigation trail; zero means
	// DefaultHistoryLimit.
	HistoryLimit int
}

// Controller owns the image queue, navigation history, session state and
// countdown. It is not reentrant: callers serialize access, and the emit
// sink runs synchronously inside operations.
type Controller struct {
	cfg Config

	state     State
	queue     []string
	nextIdx   int
	hist      *history
	interval  int
	remaining int
	elapsed   int

	emit func(Event)
}

// New returns an idle controller delivering events to emit. A nil emit
// discards events.
func New(emit func(Event)) *Controller {
	if emit == nil {
		emit = func(Event) {}
	}
	return &Controller{
		state: StateIdle,
		hist:  newHistory(DefaultHistoryLimit),
		emit:  emit,
	}
}

// Configure validates and stores the session configuration without
// scanning. Changing the directory or the recursion flag drops any retained
// queue so the next Start rescans. Only valid while idle.
func (c *Controller) Configure(cfg Config) error {
	if c.state != StateIdle {
		return ErrSessionActive
	}

	if err := validateDirectory(cfg.Directory); err != nil {
		c.emit(SessionError{Kind: ErrorInvalidDirectory, Message: err.Error()})
		return err
	}

	if cfg.HistoryLimit <= 0 {
		cfg.HistoryLimit = DefaultHistoryLimit
	}

	if cfg.Directory != c.cfg.Directory || cfg.Recursive != c.cfg.Recursive {
		c.clearQueue()
	}

	c.cfg = cfg
	c.hist.limit = cfg.HistoryLimit
	return nil
}

func validateDirectory(dir string) error {
	if dir == "" {
		return fmt.Errorf("%w: no directory set", ErrInvalidDirectory)
	}
	info, err := os.Stat(dir)
	if err != nil {
		return fmt.Errorf("%w: %s", ErrInvalidDirectory, dir)
	}
	if !info.IsDir() {
		return fmt.Errorf("%w: %s is not a directory", ErrInvalidDirectory, dir)
	}
	return nil
}

// Start begins or resumes a session. A queue retained across Stop is
// consumed further; otherwise the directory is scanned and shuffled, which
// fails with ErrNoImagesFound when nothing matches. On success the state is
// running, the countdown is armed at the full interval and the first image
// is shown.
func (c *Controller) Start() error {
	if c.state != StateIdle {
		return ErrSessionActive
	}

	if err := validateDirectory(c.cfg.Directory); err != nil {
		c.emit(SessionError{Kind: ErrorInvalidDirectory, Message: err.Error()})
		return err
	}

	if len(c.queue) == 0 {
		paths, err := scan.Images(c.cfg.Directory, c.cfg.Recursive)
		if err != nil {
			err = fmt.Errorf("%w: %v", ErrInvalidDirectory, err)
			c.emit(SessionError{Kind: ErrorInvalidDirectory, Message: err.Error()})
			return err
		}
		if len(paths) == 0 {
			err := fmt.Errorf("%w in %s", ErrNoImagesFound, c.cfg.Directory)
			c.emit(SessionError{Kind: ErrorNoImagesFound, Message: err.Error()})
			return err
		}
		rand.Shuffle(len(paths), func(i, j int) {
			paths[i], paths[j] = paths[j], paths[i]
		})
		c.queue = paths
		c.nextIdx = 0
		c.hist.reset()
	}

	c.interval = c.cfg.IntervalSeconds
	if c.interval <= 0 {
		c.interval = DefaultIntervalSeconds
	}

	c.state = StateRunning
	c.remaining = c.interval
	c.elapsed = 0
	c.emit(StateChanged{State: StateRunning})

	slog.Info("session started",
		"dir", c.cfg.Directory,
		"recursive", c.cfg.Recursive,
		"images", len(c.queue),
		"interval", c.interval)

	c.advance()
	if c.state == StateRunning {
		c.emit(CountdownUpdate{Remaining: c.remaining, Interval: c.interval})
	}
	return nil
}

// Stop halts the countdown and returns to idle. The queue, its position and
// the history are retained, so Start without reconfiguring resumes the same
// pass. Ignored when idle.
func (c *Controller) Stop() {
	if c.state == StateIdle {
		return
	}
	c.stopInternal()
	slog.Info("session stopped", "shown", c.nextIdx, "total", len(c.queue))
}

func (c *Controller) stopInternal() {
	c.state = StateIdle
	c.emit(StateChanged{State: StateIdle})
}

// Restart fully resets the controller from any state: queue, history,
// countdown and elapsed time are cleared and the next Start rescans and
// reshuffles.
func (c *Controller) Restart() {
	c.clearQueue()
	c.interval = 0
	c.remaining = 0
	c.elapsed = 0
	if c.state != StateIdle {
		c.state = StateIdle
		c.emit(StateChanged{State: StateIdle})
	}
	c.emit(CountdownUpdate{Remaining: 0, Interval: 0})
}

func (c *Controller) clearQueue() {
	c.queue = nil
	c.nextIdx = 0
	c.hist.reset()
}

// Pause freezes the countdown at its current value. Ignored unless running.
func (c *Controller) Pause() {
	if c.state != StateRunning {
		return
	}
	c.state = StatePaused
	c.emit(StateChanged{State: StatePaused})
}

// Resume continues the countdown from its frozen value, not from the full
// interval. Ignored unless paused.
func (c *Controller) Resume() {
	if c.state != StatePaused {
		return
	}
	c.state = StateRunning
	c.emit(StateChanged{State: StateRunning})
	c.emit(CountdownUpdate{Remaining: c.remaining, Interval: c.interval})
}

// Tick is the one second heartbeat from the host. While running it counts
// the countdown toward zero; the tick after zero advances to the next image
// and rearms the countdown at the full interval.
func (c *Controller) Tick() {
	if c.state != StateRunning {
		return
	}
	c.elapsed++
	c.remaining--
	if c.remaining < 0 {
		c.advance()
		if c.state != StateRunning {
			return
		}
		c.remaining = c.interval
	}
	c.emit(CountdownUpdate{Remaining: c.remaining, Interval: c.interval})
}

// Next is the manual skip: the same motion as the timer advance, but the
// countdown rearms immediately instead of waiting out the interval. Ignored
// when idle.
func (c *Controller) Next() {
	if c.state == StateIdle {
		return
	}
	c.advance()
	if c.state == StateIdle {
		return
	}
	c.remaining = c.interval
	c.emit(CountdownUpdate{Remaining: c.remaining, Interval: c.interval})
}

// Previous steps back through history, re-displays that image and resets
// the countdown to the full interval. The queue is not consumed. Ignored
// when idle or already at the oldest retained entry.
func (c *Controller) Previous() {
	if c.state == StateIdle {
		return
	}
	entry, ok := c.hist.back()
	if !ok {
		return
	}
	c.emit(ImageChanged{Path: entry.path, Position: entry.seq, Total: len(c.queue)})
	c.remaining = c.interval
	c.emit(CountdownUpdate{Remaining: c.remaining, Interval: c.interval})
}

// advance shows the next image: first by walking forward through history
// after Previous, then by consuming the queue. Exhausting the queue stops
// the session and signals completion rather than looping.
func (c *Controller) advance() {
	if entry, ok := c.hist.forward(); ok {
		c.emit(ImageChanged{Path: entry.path, Position: entry.seq, Total: len(c.queue)})
		return
	}

	if c.nextIdx >= len(c.queue) {
		slog.Info("pass complete", "images", len(c.queue))
		c.remaining = 0
		c.stopInternal()
		c.emit(SessionComplete{})
		return
	}

	path := c.queue[c.nextIdx]
	c.nextIdx++
	c.hist.push(path, c.nextIdx)
	c.emit(ImageChanged{Path: path, Position: c.nextIdx, Total: len(c.queue)})
}

// State returns the current session state.
func (c *Controller) State() State {
	return c.state
}

// Remaining returns the seconds left for the current image.
func (c *Controller) Remaining() int {
	return c.remaining
}

// Interval returns the effective per-image interval, zero before the first
// Start of a session.
func (c *Controller) Interval() int {
	return c.interval
}

// Elapsed returns the seconds this session has spent running.
func (c *Controller) Elapsed() int {
	return c.elapsed
}

// QueueSize returns the number of images in the current pass.
func (c *Controller) QueueSize() int {
	return len(c.queue)
}

// Shown returns how many queue entries were consumed this pass.
func (c *Controller) Shown() int {
	return c.nextIdx
}

// Current returns the displayed image with its pass position, or ok false
// when nothing is displayed.
func (c *Controller) Current() (path string, position, total int, ok bool) {
	entry, ok := c.hist.current()
	if !ok {
		return "", 0, 0, false
	}
	return entry.path, entry.seq, len(c.queue), true
}

// Directory returns the configured source directory.
func (c *Controller) Directory() string {
	return c.cfg.Directory
}
