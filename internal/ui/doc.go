// Package ui provides the terminal viewer for a single batch record.
//
// # Architecture Overview
//
// The viewer is a Bubble Tea program. It never fetches anything itself: it
// reads snapshots from the sync controller once per PollTick and forwards the
// user's intent (refresh, open another batch) back to it. All network work,
// fallback selection and stale-result handling live in the syncer package.
//
// # Layout
//
//   - Header: program name, the bound identifier and a sync badge
//     (LIVE, OFFLINE COPY, LOADING or ERROR)
//   - Card: name, description, class, subject, teacher, dates, status,
//     students, rating, price and a lecture progress bar
//   - Activity pane (optional): the last sync log lines read with logtail
//   - Footer: "Last updated" and the key help line
//
// The list price is struck through only when the discounted price is lower.
// Dates use the long "2 January 2006" form; values that cannot be parsed are
// shown as received.
//
// # Keys
//
//	r        refresh now
//	/ or b   open another batch (an id, /batch/<id> or ?batch_id=<id>)
//	a        toggle the activity pane
//	T        cycle theme
//	q        quit
//
// # Themes
//
// Two palettes are available, Dracula (default) and Slate. Theme.Styles
// builds the lipgloss styles once per render.
package ui
