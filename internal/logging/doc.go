// Package logging provides structured logging for stepthrough.
//
// A Logger fans each record out to a JSON debug log (rotated by size) and,
// optionally, a human-readable stream on stderr:
//
//	logger, err := logging.New(logging.Options{
//		Dir:    cfg.Logging.Dir,
//		Level:  cfg.Logging.Level,
//		Stderr: cfg.Logging.Stderr,
//	})
//	if err != nil {
//		return err
//	}
//	defer logger.Close()
//
//	logger.WithLesson("pokemon").Info("walkthrough started", "trace_entries", 11)
//
// Child loggers created with WithLesson, WithSession and With share the
// underlying writers; only the root logger needs to be closed.
package logging
