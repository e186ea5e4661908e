package subscribe

import (
	"fmt"
	"time"

	multierror "github.com/hashicorp/go-multierror"

	"github.com/zackaryw/eaglecore/internal/logging"
)

const defaultInterval = 500 * time.Millisecond

type subscriber struct {
	id              uint64
	interval        time.Duration
	maxEqualLookups int
	callback        Callback
}

// poller is the generic shape behind all five pollers. Its internal
// state (subs, previous/hasPrevious) is touched exclusively by its own
// dispatch goroutine; every external call — Subscribe, Unsubscribe,
// CascadeReset — is a closure sent over commands and executed there, so
// no mutex guards poller state. This is the Go expression of the spec's
// "single-threaded cooperative scheduling; callbacks must not be
// reentrant" requirement.
type poller struct {
	name string

	// fetch performs one observation. idsOf, when non-nil, extracts the
	// comparable id sequence from a fetch result (selection pollers);
	// when nil, equal is used directly on the fetch result (identity and
	// mtime pollers).
	fetch func() (any, error)
	idsOf func(any) []string
	equal func(prev, curr any) bool

	// fixedInterval, when non-zero, overrides every subscriber's
	// requested interval — only the library-identity poller uses this.
	fixedInterval time.Duration

	// onChange is invoked synchronously right after a tick fires its
	// subscribers, only when the poller's own baseline comparator (not
	// any one subscriber's maxEqualLookups) reports a change. Only the
	// library-identity poller sets this, to drive cascade-reset.
	onChange func(prev, curr any)

	commands chan func()
	stop     chan struct{}

	subs        map[uint64]*subscriber
	nextID      uint64
	previous    any
	hasPrevious bool
}

// newPoller starts the dispatch goroutine immediately: it is cheap and
// idle (blocked on commands/stop) until the first Subscribe call gives it
// a non-zero effective interval, which is the Go expression of "lazily
// started on first subscription" — what actually starts lazily is the
// ticker, not the goroutine serializing access to poller state.
func newPoller(name string, fetch func() (any, error)) *poller {
	p := &poller{
		name:     name,
		fetch:    fetch,
		commands: make(chan func(), 8),
		stop:     make(chan struct{}),
		subs:     make(map[uint64]*subscriber),
	}
	go p.run()
	return p
}

func (p *poller) run() {
	var ticker *time.Ticker
	var tickC <-chan time.Time
	currentInterval := time.Duration(0)

	setInterval := func(d time.Duration) {
		if d == currentInterval {
			return
		}
		if ticker != nil {
			ticker.Stop()
			ticker = nil
			tickC = nil
		}
		if d > 0 {
			ticker = time.NewTicker(d)
			tickC = ticker.C
		}
		currentInterval = d
	}

	for {
		select {
		case cmd, ok := <-p.commands:
			if !ok {
				return
			}
			cmd()
			setInterval(p.effectiveInterval())
		case <-tickC:
			p.tick()
		case <-p.stop:
			if ticker != nil {
				ticker.Stop()
			}
			return
		}
	}
}

func (p *poller) effectiveInterval() time.Duration {
	if len(p.subs) == 0 {
		return 0
	}
	if p.fixedInterval > 0 {
		return p.fixedInterval
	}
	min := time.Duration(0)
	for _, s := range p.subs {
		if min == 0 || s.interval < min {
			min = s.interval
		}
	}
	return min
}

// primeBaseline performs one fetch and sets it as the baseline without
// firing any subscriber — the "immediate first tick that populates
// previous without firing" step of the lifecycle.
func (p *poller) primeBaseline() {
	current, err := p.fetch()
	if err != nil {
		logging.Component(p.name).Warnw("initial poll failed", "err", err)
		return
	}
	p.previous = current
	p.hasPrevious = true
}

func (p *poller) tick() {
	if len(p.subs) == 0 {
		return
	}
	current, err := p.fetch()
	if err != nil {
		logging.Component(p.name).Warnw("poll failed", "err", err)
		return
	}
	if !p.hasPrevious {
		p.previous = current
		p.hasPrevious = true
		return
	}

	prev := p.previous
	p.previous = current

	var errs *multierror.Error
	for _, sub := range p.subs {
		if !p.changedFor(prev, current, sub.maxEqualLookups) {
			continue
		}
		p.invoke(sub, prev, current, &errs)
	}
	if errs != nil {
		logging.Component(p.name).Errorw("subscriber callback failures", "err", errs)
	}

	if p.onChange != nil && p.changedFor(prev, current, -1) {
		p.onChange(prev, current)
	}
}

func (p *poller) invoke(sub *subscriber, prev, current any, errs **multierror.Error) {
	defer func() {
		if r := recover(); r != nil {
			*errs = multierror.Append(*errs, fmt.Errorf("subscriber %d panicked: %v", sub.id, r))
		}
	}()
	sub.callback(ChangeEvent{Previous: prev, Current: current, Timestamp: time.Now().UnixMilli()})
}

// changedFor reports whether prev->current counts as a change for a
// subscriber whose own maxEqualLookups is n (only meaningful for
// selection pollers; n is ignored when idsOf is nil).
func (p *poller) changedFor(prev, current any, n int) bool {
	if p.idsOf != nil {
		return !sequencesEqual(p.idsOf(prev), p.idsOf(current), n)
	}
	return !p.equal(prev, current)
}

func sequencesEqual(prev, curr []string, maxEqualLookups int) bool {
	if len(prev) != len(curr) {
		return false
	}
	limit := len(prev)
	if maxEqualLookups >= 0 && maxEqualLookups < limit {
		limit = maxEqualLookups
	}
	for i := 0; i < limit; i++ {
		if prev[i] != curr[i] {
			return false
		}
	}
	return true
}

// Subscribe registers cb and returns its teardown handle. The first
// subscription on a poller primes its baseline and, by giving it a
// non-zero effective interval, starts its ticker (the dispatch goroutine
// is already running since newPoller); later subscribers only ever lower
// the effective interval.
func (p *poller) Subscribe(cb Callback, opts Options) Unsubscribe {
	interval := defaultInterval
	if opts.Interval > 0 {
		interval = time.Duration(opts.Interval) * time.Millisecond
	}
	maxEqualLookups := -1
	if opts.MaxEqualLookups != 0 {
		maxEqualLookups = opts.MaxEqualLookups
	}

	idCh := make(chan uint64, 1)
	p.commands <- func() {
		wasEmpty := len(p.subs) == 0
		id := p.nextID
		p.nextID++
		p.subs[id] = &subscriber{id: id, interval: interval, maxEqualLookups: maxEqualLookups, callback: cb}
		if wasEmpty {
			p.primeBaseline()
		}
		idCh <- id
	}
	id := <-idCh

	return func() {
		p.commands <- func() {
			delete(p.subs, id)
			if len(p.subs) == 0 {
				p.previous = nil
				p.hasPrevious = false
			}
		}
	}
}

// CascadeReset clears the poller's baseline without firing any
// subscriber, so its next tick re-establishes "previous" from the
// current observation instead of comparing across a library switch.
func (p *poller) CascadeReset() {
	p.commands <- func() {
		p.previous = nil
		p.hasPrevious = false
	}
}

// Close stops the dispatch goroutine permanently. Used only at process
// or test teardown — pollers otherwise stop themselves at zero
// subscribers while staying ready to restart on the next Subscribe.
func (p *poller) Close() {
	close(p.stop)
}
