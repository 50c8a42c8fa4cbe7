package spin

import (
	"context"
	"errors"
	"math/rand/v2"
	"sync"
	"time"

	"ginraidee/logging"
	"ginraidee/spin-cli/internal/domain"
)

var ErrSpinInProgress = errors.New("spin already in progress")

type State int

const (
	StateIdle State = iota
	StateShuffling
	StateResult
)

func (s State) String() string {
	switch s {
	case StateShuffling:
		return "shuffling"
	case StateResult:
		return "result"
	default:
		return "idle"
	}
}

type Picker interface {
	Random(ctx context.Context, filter domain.Filter, exclude []int, userID string) (domain.MenuItem, error)
}

type SelectionRecorder interface {
	Select(ctx context.Context, userID string, foodID int) error
}

type Config struct {
	// MinDuration is the shortest time a spin stays in shuffling.
	MinDuration time.Duration
	// Tick is the interval between displayed candidates while shuffling.
	Tick time.Duration
	// Timeout bounds the pick request.
	Timeout time.Duration
}

func DefaultConfig() Config {
	return Config{
		MinDuration: 2000 * time.Millisecond,
		Tick:        80 * time.Millisecond,
		Timeout:     10 * time.Second,
	}
}

// Snapshot is what a renderer needs to draw the current frame.
type Snapshot struct {
	State      State
	Displayed  *domain.MenuItem
	Result     *domain.MenuItem
	Message    string
	Generation uint64
}

// Sequencer runs the idle -> shuffling -> result state machine. Each spin
// carries a generation number; timers and responses from an older
// generation never touch state.
type Sequencer struct {
	api        Picker
	selections SelectionRecorder
	exclude    *ExclusionSet
	cfg        Config
	intN       func(n int) int

	mu        sync.Mutex
	state     State
	displayed *domain.MenuItem
	result    *domain.MenuItem
	message   string
	gen       uint64
	cancel    context.CancelFunc
	catalog   []domain.MenuItem
	filter    domain.Filter
	onChange  func(Snapshot)
}

func NewSequencer(api Picker, selections SelectionRecorder, exclude *ExclusionSet, cfg Config) *Sequencer {
	def := DefaultConfig()
	if cfg.MinDuration <= 0 {
		cfg.MinDuration = def.MinDuration
	}
	if cfg.Tick <= 0 {
		cfg.Tick = def.Tick
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = def.Timeout
	}
	return &Sequencer{
		api:        api,
		selections: selections,
		exclude:    exclude,
		cfg:        cfg,
		intN:       rand.IntN,
	}
}

// WithRand replaces the index source used for the shuffle animation.
func (s *Sequencer) WithRand(intN func(n int) int) *Sequencer {
	s.intN = intN
	return s
}

// OnChange registers fn to receive every state change. fn runs outside the
// sequencer's lock and may call Snapshot.
func (s *Sequencer) OnChange(fn func(Snapshot)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onChange = fn
}

// SetCatalog replaces the locally held catalog the animation draws from.
func (s *Sequencer) SetCatalog(items []domain.MenuItem) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.catalog = items
}

func (s *Sequencer) SetFilter(f domain.Filter) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.filter = f
}

func (s *Sequencer) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

func (s *Sequencer) snapshotLocked() Snapshot {
	return Snapshot{
		State:      s.state,
		Displayed:  s.displayed,
		Result:     s.result,
		Message:    s.message,
		Generation: s.gen,
	}
}

// Spin starts a new spin from idle or result. The returned channel closes
// once this spin has settled, whether it reached a result, failed, or was
// cancelled.
func (s *Sequencer) Spin(ctx context.Context, userID string) (<-chan struct{}, error) {
	s.mu.Lock()
	if s.state == StateShuffling {
		s.mu.Unlock()
		return nil, ErrSpinInProgress
	}

	s.gen++
	gen := s.gen
	spinCtx, cancel := context.WithTimeout(ctx, s.cfg.Timeout)
	s.cancel = cancel
	s.state = StateShuffling
	s.result = nil
	s.message = ""

	exclude := s.exclude.IDs()
	filter := s.filter
	candidates := filter.Apply(s.catalog, exclude)
	snap, notify := s.snapshotLocked(), s.onChange
	s.mu.Unlock()

	emit(notify, snap)

	done := make(chan struct{})
	go s.run(spinCtx, cancel, gen, filter, exclude, userID, candidates, done)
	return done, nil
}

// Cancel abandons an in-flight spin and returns to idle.
func (s *Sequencer) Cancel() {
	s.mu.Lock()
	if s.state != StateShuffling {
		s.mu.Unlock()
		return
	}
	s.gen++
	s.cancel()
	s.state = StateIdle
	s.displayed = nil
	s.message = ""
	snap, notify := s.snapshotLocked(), s.onChange
	s.mu.Unlock()

	emit(notify, snap)
}

type pickOutcome struct {
	item domain.MenuItem
	err  error
}

func (s *Sequencer) run(ctx context.Context, cancel context.CancelFunc, gen uint64, filter domain.Filter, exclude []int, userID string, candidates []domain.MenuItem, done chan<- struct{}) {
	defer close(done)
	defer cancel()

	picked := make(chan pickOutcome, 1)
	go func() {
		item, err := s.api.Random(ctx, filter, exclude, userID)
		picked <- pickOutcome{item: item, err: err}
	}()

	minTimer := time.NewTimer(s.cfg.MinDuration)
	defer minTimer.Stop()
	ticker := time.NewTicker(s.cfg.Tick)
	defer ticker.Stop()

	var outcome *pickOutcome
	minElapsed := false
	for outcome == nil || !minElapsed {
		select {
		case <-ctx.Done():
			s.finish(gen, userID, pickOutcome{err: ctx.Err()})
			return
		case o := <-picked:
			outcome = &o
		case <-minTimer.C:
			minElapsed = true
		case <-ticker.C:
			s.tick(gen, candidates)
		}
	}
	s.finish(gen, userID, *outcome)
}

func (s *Sequencer) tick(gen uint64, candidates []domain.MenuItem) {
	if len(candidates) == 0 {
		return
	}
	s.mu.Lock()
	if gen != s.gen || s.state != StateShuffling {
		s.mu.Unlock()
		return
	}
	item := candidates[s.intN(len(candidates))]
	s.displayed = &item
	snap, notify := s.snapshotLocked(), s.onChange
	s.mu.Unlock()

	emit(notify, snap)
}

func (s *Sequencer) finish(gen uint64, userID string, o pickOutcome) {
	s.mu.Lock()
	if gen != s.gen || s.state != StateShuffling {
		s.mu.Unlock()
		return
	}

	switch {
	case o.err == nil:
		item := o.item
		s.state = StateResult
		s.result = &item
		s.displayed = &item
		go s.recordSelection(userID, item.ID)
	case errors.Is(o.err, domain.ErrNoCandidates):
		s.state = StateIdle
		s.displayed = nil
		s.message = domain.ErrNoCandidates.Error()
	case errors.Is(o.err, context.Canceled):
		s.state = StateIdle
		s.displayed = nil
	case errors.Is(o.err, context.DeadlineExceeded):
		s.state = StateIdle
		s.displayed = nil
		s.message = "the server took too long to answer, try again"
	default:
		logging.Warn().Err(o.err).Msg("spin request failed")
		s.state = StateIdle
		s.displayed = nil
		s.message = "could not reach the server, try again"
	}
	snap, notify := s.snapshotLocked(), s.onChange
	s.mu.Unlock()

	emit(notify, snap)
}

func (s *Sequencer) recordSelection(userID string, foodID int) {
	if s.selections == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), s.cfg.Timeout)
	defer cancel()
	if err := s.selections.Select(ctx, userID, foodID); err != nil {
		logging.Warn().Err(err).Int("food_id", foodID).Msg("selection not recorded")
	}
}

func emit(fn func(Snapshot), snap Snapshot) {
	if fn != nil {
		fn(snap)
	}
}
