// Package logtail reads the tail of the batchview log for the activity pane.
//
// # Reading
//
// Read uses a ring buffer to keep the last maxLines lines of the file in a
// single sequential pass, so memory is O(maxLines) regardless of file size.
// Lines longer than 1 MiB fail the scan.
//
//	entries, err := logtail.Read(cfg.LogPath(), 50)
//	if err != nil {
//		return err
//	}
//	for _, e := range entries {
//		fmt.Println(e.String())
//	}
//
// # Parsing
//
// The log is written by zerolog as JSON lines. Each line is decoded into an
// Entry using zerolog's field names (time, level, message, error) plus the
// sync fields the controller attaches: identifier, kind and source. Lines
// that are not JSON are kept verbatim as the Message so nothing is lost.
//
// A missing log file is not an error; it simply yields no entries, which is
// the normal state before the first sync.
package logtail
