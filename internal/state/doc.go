// Package state provides thread-safe state management for batchview.
//
// # Overview
//
// The Store holds the sync state of one bound batch identifier. The sync
// controller writes it; the UI and any other reader take snapshots.
//
//	Producer (syncer.Controller):      Consumer (UI):
//	┌──────────────────────┐          ┌──────────────────┐
//	│ SetLoading(id)       │          │                  │
//	│ FetchRecord(...)     │          │                  │
//	│ SetReady / SetFailed │─────────→│ store.Snapshot() │
//	│      ↓               │ (mutex)  │      ↓           │
//	│  next trigger...     │          │  render          │
//	└──────────────────────┘          └──────────────────┘
//
// # Phases
//
//	PhaseIdle     nothing bound yet
//	PhaseLoading  a fetch for Identifier is outstanding
//	PhaseReady    Record is current; Source says remote or fallback
//	PhaseFailed   remote failed and no offline copy exists, or no id was given
//
// Exactly one phase holds at a time. Loading and Failed keep the record most
// recently shown for the same identifier so a refresh never blanks the
// screen; switching identifiers clears it.
//
// # Timestamps
//
// FetchedAt is the time of the most recent completed attempt, successful or
// not. LastUpdated only moves on a transition into PhaseReady and is what the
// UI shows as "Last updated".
//
// # Concurrency Model
//
// A sync.RWMutex guards the snapshot. Snapshot returns a value copy with the
// record and error cloned, so callers may hold or mutate it freely.
package state
