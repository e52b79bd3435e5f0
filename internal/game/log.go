package game

import "log"

// Verbose enables per-event debug logging.
var Verbose bool

func debugf(format string, args ...any) {
	if Verbose {
		log.Printf("debug: "+format, args...)
	}
}
