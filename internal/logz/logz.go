/*Package logz contains the module's fatal-error reporting helpers. It
generalizes guppy's lib.ExternalErrorf/lib.InternalErrorf: a condition that a
caller could reasonably fix (bad configuration, a failed collective) is
reported with Fatalf, while a condition that indicates a bug in this module is
reported with the stack trace in BugFatalf. Both exit the process, matching
the spec's "failures in collective operations abort the process group."*/
package logz

import (
	"fmt"
	"log"
	"os"
	"runtime/debug"
)

// Fatalf logs a message to stderr and exits the process with status 1. It is
// used for conditions that are fatal to the whole process group, such as a
// failed collective operation or a load() dimension mismatch.
func Fatalf(format string, a ...interface{}) {
	log.Printf("slabgrid: fatal: "+format, a...)
	os.Exit(1)
}

// BugFatalf logs a message and a stack trace to stderr and exits the process
// with status 1. It is used for conditions that indicate a bug in this
// module rather than a caller error.
func BugFatalf(format string, a ...interface{}) {
	log.Println("slabgrid: internal error:")
	fmt.Fprintf(os.Stderr, format, a...)
	fmt.Fprintf(os.Stderr, "\n\n")
	debug.PrintStack()
	os.Exit(1)
}

// Warnf logs a non-fatal warning. It is used for save() IoFailures, which are
// logged and returned to the caller rather than treated as fatal.
func Warnf(format string, a ...interface{}) {
	log.Printf("slabgrid: warning: "+format, a...)
}
