package vellum

import (
	"fmt"
	"io"
	"sync"
)

var debugLog struct {
	mu sync.Mutex
	w  io.Writer
}

// SetDebugLog directs internal frame diagnostics to w. Logging is off by
// default; pass nil to disable it again. Typically wired to a file, since
// stdout belongs to the renderer.
func SetDebugLog(w io.Writer) {
	debugLog.mu.Lock()
	debugLog.w = w
	debugLog.mu.Unlock()
}

func debugf(format string, args ...any) {
	debugLog.mu.Lock()
	w := debugLog.w
	debugLog.mu.Unlock()
	if w == nil {
		return
	}
	fmt.Fprintf(w, format+"\n", args...)
}
