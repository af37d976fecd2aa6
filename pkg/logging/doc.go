// Package logging provides a leveled console and file logger with
// startup rotation for gooselib.
//
// A Logger writes every message to stdout and appends it to <dir>/log0.txt,
// syncing the file after each call. Creating a Logger shifts the previous
// run's files up by one index (log0.txt becomes log1.txt and so on) and
// deletes the oldest, so at most MaxLogs files remain.
//
//	l, err := logging.New(logging.DefaultConfig())
//	if err != nil {
//		return err
//	}
//	defer l.Close()
//	l.Info("server started")
//
// Only Critical terminates the process. Write failures are reported on
// stderr and never returned to the caller.
package logging
