package app

import (
	"fmt"
	"runtime/debug"
	"strings"
)

// recoverPanic logs a producer panic with its stack and marks the message
// done so host runners can exit. The transmitter keeps ticking.
func (a *App) recoverPanic() {
	v := recover()
	if v == nil {
		return
	}
	a.mu.Lock()
	a.err = fmt.Errorf("app: producer panic: %v", v)
	a.mu.Unlock()
	a.done.Store(true)

	if a.log == nil {
		return
	}
	a.log.WriteLineString(fmt.Sprintf("Beacon Panic: %v", v))
	for _, line := range strings.Split(string(debug.Stack()), "\n") {
		if line == "" {
			continue
		}
		a.log.WriteLineString(line)
	}
}
