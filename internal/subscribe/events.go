// Package subscribe implements the change subscription manager: a
// single process-wide coordinator running five independent pollers over
// the host, since the host offers no push events and every change a
// subscriber cares about is only detectable periodically.
package subscribe

// ChangeEvent is delivered to a subscriber's callback whenever its
// poller declares a change. Previous/Current hold the poller's own
// snapshot shape (a LibraryIdentitySnapshot for the identity poller, a
// []ItemSnapshot/[]FolderSnapshot for the selection pollers, an int64
// mtime for the on-disk pollers).
type ChangeEvent struct {
	Previous  any
	Current   any
	Timestamp int64
}

// Callback is invoked synchronously, on the poller's own dispatch
// goroutine, for every change. It must not block for long. Calling an
// Unsubscribe from within a callback is fine: it only queues a command
// for the dispatch loop. Subscribing from within a callback is not:
// Subscribe waits for the target poller's dispatch goroutine to register
// the subscriber, so a Subscribe on the poller running the callback
// blocks forever — and since every Manager.Subscribe* call also
// subscribes on the library-identity poller, no Subscribe* call may be
// made from a library-identity callback.
type Callback func(ChangeEvent)

// Options holds per-subscription tuning. The zero value requests the
// poller's defaults: 500ms interval (ignored by the library-identity
// poller, which is always 1000ms) and maxEqualLookups -1 ("compare the
// entire sequence").
type Options struct {
	Interval        int // milliseconds; <= 0 means "use the 500ms default"
	MaxEqualLookups int // selection pollers only; 0 means "use the -1 default"
}

// Unsubscribe tears down one subscription. It is idempotent-safe to call
// more than once.
type Unsubscribe func()
