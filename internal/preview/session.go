package preview

import (
	"time"

	"github.com/glimpse-tui/glimpse/internal/host"
)

// State is the coordinator's position in its small lifecycle machine.
type State int

const (
	// StateIdle has no panel and no armed timer.
	StateIdle State = iota

	// StatePending has a debounce timer armed.
	StatePending

	// StateDisplayed has an artifact on the panel.
	StateDisplayed
)

// String returns the state's name.
func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StatePending:
		return "pending"
	case StateDisplayed:
		return "displayed"
	default:
		return "unknown"
	}
}

// SelectionEvent is one navigation event from the browser, tagged with
// the command that produced it.
type SelectionEvent struct {
	Path    string
	Command string
	Time    time.Time
}

// Context is what the coordinator needs to know about the surrounding
// browser: where the cursor is and whether a path is already showing in
// some other pane.
type Context interface {
	CurrentSelectionPath() (string, bool)
	VisibleElsewhere(path string) bool
}

// DirectiveKind tells the UI loop what to do next.
type DirectiveKind int

const (
	// DirectiveNone requires no action.
	DirectiveNone DirectiveKind = iota

	// DirectiveArm asks for a debounce timer carrying Gen; when it
	// fires, hand Gen back to OnTimerFired.
	DirectiveArm

	// DirectiveRender asks for Path to be rendered and displayed now.
	DirectiveRender

	// DirectiveClose asks for the system panel to be removed.
	DirectiveClose
)

// Directive is the coordinator's instruction to the UI loop. The
// coordinator itself never touches the panel or the timer machinery;
// it only does cache bookkeeping and hands these out.
type Directive struct {
	Kind  DirectiveKind
	Path  string
	Gen   int
	Delay time.Duration
}

// SessionOptions configure a Session.
type SessionOptions struct {
	// Delay is the debounce delay between a navigation event and the
	// render it settles into.
	Delay time.Duration

	// TriggerCommands are the command identifiers that drive
	// previewing.
	TriggerCommands []string
}

// Session coordinates debounced previewing for one browsing context.
// It owns the idle/pending/displayed state machine, the one-shot
// first-render latch and the generation counter that cancels stale
// timers. Sessions are constructed explicitly per context; there is no
// process-wide instance, so two contexts never share a cache or panel.
//
// Everything here runs synchronously on the UI loop. The only
// suspension point is the debounce timer, which the UI arms on a
// DirectiveArm and reports back via OnTimerFired. A newly arriving
// event always bumps the generation before a new timer is armed, so the
// path rendered is always the last one settled (last-write-wins).
type Session struct {
	ctx        Context
	host       host.Host
	cache      *Cache
	classifier *Classifier

	delay    time.Duration
	triggers map[string]bool

	state     State
	gen       int
	displayed string

	// first is the one-shot latch: the first eligible selection after
	// the session (re)activates renders with zero delay, exactly once.
	first bool

	// active tracks whether the browsing context currently has the
	// host's focus. An inactive session ignores navigation entirely.
	active bool
}

// NewSession creates an inactive session; call Activate when the
// browsing context gains focus.
func NewSession(ctx Context, h host.Host, cache *Cache, classifier *Classifier, opts SessionOptions) *Session {
	triggers := make(map[string]bool, len(opts.TriggerCommands))
	for _, cmd := range opts.TriggerCommands {
		triggers[cmd] = true
	}
	return &Session{
		ctx:        ctx,
		host:       h,
		cache:      cache,
		classifier: classifier,
		delay:      opts.Delay,
		triggers:   triggers,
		first:      true,
	}
}

// State returns the current lifecycle state.
func (s *Session) State() State { return s.state }

// Displayed returns the path currently on the panel, if any.
func (s *Session) Displayed() string { return s.displayed }

// Active reports whether the session reacts to navigation.
func (s *Session) Active() bool { return s.active }

// Activate arms the session when its browsing context becomes the
// host's active context. The one-shot latch resets, so the next
// eligible selection renders without delay.
func (s *Session) Activate() {
	s.active = true
	s.first = true
}

// Deactivate fully tears the session down the instant its context
// loses relevance: the timer is cancelled, caches are reclaimed, and
// the session disarms until Activate. The returned directive closes
// the panel.
func (s *Session) Deactivate() Directive {
	s.active = false
	return s.teardown()
}

// Teardown cancels, evicts and returns to idle without disarming the
// session. Used when the user toggles previewing off inside an active
// context.
func (s *Session) Teardown() Directive {
	return s.teardown()
}

// OnNavigate consumes one navigation event. Any pending timer is
// cancelled first, then the directive depends on the current
// selection's eligibility and the one-shot latch.
func (s *Session) OnNavigate(ev SelectionEvent) Directive {
	if !s.active {
		return Directive{Kind: DirectiveNone}
	}

	s.gen++ // cancel any pending timer before anything else

	path, ok := s.ctx.CurrentSelectionPath()
	if !ok || !s.eligible(path) {
		if s.triggers[ev.Command] {
			return s.closeDirective()
		}
		return Directive{Kind: DirectiveNone}
	}

	if s.first {
		s.first = false
		return Directive{Kind: DirectiveRender, Path: path}
	}

	s.state = StatePending
	return Directive{Kind: DirectiveArm, Gen: s.gen, Delay: s.delay}
}

// OnTimerFired handles a debounce timer carrying gen. Stale
// generations are the cancelled timers; they do nothing. A current
// generation renders whatever path is selected at firing time, with
// eligibility re-derived rather than assumed stable.
func (s *Session) OnTimerFired(gen int) Directive {
	if !s.active || gen != s.gen || s.state != StatePending {
		return Directive{Kind: DirectiveNone}
	}

	path, ok := s.ctx.CurrentSelectionPath()
	if !ok || !s.eligible(path) {
		s.state = StateIdle
		return Directive{Kind: DirectiveNone}
	}
	return Directive{Kind: DirectiveRender, Path: path}
}

// Render executes a render directive: it runs the closed-preview
// eviction pass when the panel is about to show a different path, then
// renders through the cache. A nil artifact means nothing is shown (the
// path was ignored or unreadable); the session falls back to idle.
func (s *Session) Render(path string) (*Artifact, error) {
	if s.displayed != "" && s.displayed != path {
		// The old preview closes the moment a new one displays.
		s.cache.EvictOne(path)
	}

	a, err := s.cache.GetOrRender(path)
	if err != nil || a == nil {
		s.state = StateIdle
		s.displayed = ""
		return nil, err
	}

	s.state = StateDisplayed
	s.displayed = path
	return a, nil
}

// eligible reports whether path can be previewed right now: readable,
// a regular file or directory, and not already showing in another
// pane. Kind filtering happens later, at classification, so an ignored
// path still produces its informational notice.
func (s *Session) eligible(path string) bool {
	meta, err := s.host.Stat(path)
	if err != nil || !meta.Readable {
		return false
	}
	if !meta.IsRegular && !meta.IsDir {
		return false
	}
	return !s.ctx.VisibleElsewhere(path)
}

// closeDirective closes the current preview: one eviction pass, then
// the partial store goes in full. Partial artifacts never outlive the
// preview they were cut for.
func (s *Session) closeDirective() Directive {
	s.state = StateIdle
	s.displayed = ""
	s.cache.EvictOne("")
	s.cache.WipePartial()
	return Directive{Kind: DirectiveClose}
}

// teardown is the full close: cancel the timer, run the eviction pass,
// wipe the partial store, drop to idle.
func (s *Session) teardown() Directive {
	s.gen++ // cancel any pending timer
	s.state = StateIdle
	s.displayed = ""
	s.cache.EvictOne("")
	s.cache.WipePartial()
	return Directive{Kind: DirectiveClose}
}
