package engine

import "fmt"

// Verbose gates debug-level logging.
var Verbose = false

func logf(format string, args ...interface{}) {
	fmt.Printf("[chaosrig] "+format+"\n", args...)
}

func debugf(format string, args ...interface{}) {
	if !Verbose {
		return
	}
	fmt.Printf("[chaosrig:debug] "+format+"\n", args...)
}
