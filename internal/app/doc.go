// Package app provides the orchestration layer for the batchview application.
//
// # Overview
//
// This package wires together configuration, logging, the record client, the
// offline dataset, the sync controller and the UI. It is the composition root
// where all dependencies are initialized and connected.
//
// # Startup
//
//  1. Load ~/.config/batchview/config.toml (plus .env and BATCHVIEW_* overrides)
//  2. Open <log_dir>/batchview.log as JSON lines; nothing is written to the
//     terminal while the UI owns it
//  3. Build the HTTP record client for base_url
//  4. Load the embedded offline dataset unless fallback = false
//  5. Resolve the identifier from the location and flags, bind it and start
//     the sync controller
//  6. Run the TUI and block until the user quits
//
// # Data Flow
//
//	┌──────────────┐
//	│   Run()      │
//	└──────┬───────┘
//	       │
//	       ├─────> config.Load()        Read settings
//	       ├─────> logging.Init()       Open the log file
//	       ├─────> batch.NewClient()    HTTP record client
//	       ├─────> fallback.Default()   Embedded offline copies
//	       ├─────> syncer.New()         Bind + Start
//	       └─────> ui.Run()             Start TUI (blocks)
//
//	Sync loop (inside syncer):
//	┌─────────────────────────────────────────┐
//	│ bind / refresh / timer tick             │
//	│  ├─> FetchRecord()                      │
//	│  ├─> offline copy on failure            │
//	│  └─> state.Store  (single writer)       │
//	│      └─> UI reads Snapshot() each tick  │
//	└─────────────────────────────────────────┘
//
// # Identifier Resolution
//
// The location may be "/batch/<id>", "/?batch_id=<id>", a full URL or a bare
// id. The -batch and -query flags replace the path and query values parsed
// from it. The path value wins over the query value. With neither, the
// controller is bound to a blank identifier and the UI shows the
// missing-identifier error until the user opens a batch.
//
// # Shutdown
//
// When the UI exits, the controller is stopped (any in-flight fetch is
// abandoned and its result discarded) and the log file is closed.
package app
