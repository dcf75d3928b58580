package internal

import (
	"log"
	"os"
)

// Logger is the package-wide diagnostic sink. It defaults to stderr and can
// be redirected or swapped by a host application.
var Logger = log.New(os.Stderr, "", log.LstdFlags)

// DebugEnabled gates debugf output. Off by default, same as the teacher's
// debugMode switch. Nothing in the package calls debugf at present;
// write-to-readonly and other reports go through ErrorHandler, whose
// default logs them regardless of this flag.
var DebugEnabled = false

func debugf(format string, args ...any) {
	if DebugEnabled {
		Logger.Printf(format, args...)
	}
}
