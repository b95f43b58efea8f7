// Package stopwatch measures wall-clock durations with named laps, logging
// results through the flo logger and recording them on OpenTelemetry spans.
//
//	sw := stopwatch.Start("index-build")
//	... load ...
//	sw.Lap("load")
//	... index ...
//	sw.Lap("index")
//	sw.Stop()
package stopwatch
