// Package syncer keeps the displayed batch record current.
//
// A Controller is bound to at most one identifier. It fetches through an
// injected batch.Fetcher on bind, on identifier change, on Refresh and on
// every tick of a periodic timer (DefaultInterval, five minutes), and writes
// the outcome to a state.Store:
//
//	remote ok                    -> Ready(record, remote)
//	remote fails, offline copy   -> Ready(record, fallback)
//	remote fails, no copy        -> Failed(ErrNoFallbackAvailable wrapping the cause)
//	blank identifier             -> Failed(ident.ErrMissingIdentifier)
//
// At most one fetch is outstanding. Triggers that arrive while the current
// identifier is loading are coalesced. Every bind and Stop bumps a generation
// counter; a result from an older generation is dropped on arrival, so a
// late response for a previous identifier can never overwrite the current
// one.
//
// Stop cancels the outstanding fetch and waits for its goroutine. When the
// context passed to Start ends without Stop, the timer stops, an outstanding
// fetch is abandoned with the state moved to failed, and later triggers are
// ignored.
//
// The Clock interface replaces time.NewTicker so tests can drive ticks by
// hand. The offline fallback is any Lookup, normally *fallback.Store.
package syncer
