package exception

import (
	"runtime/debug"

	"github.com/mezonai/blackball/logx"
	"github.com/mezonai/blackball/monitoring"
)

// SafeGo runs fn in a goroutine and logs a panic instead of crashing.
func SafeGo(name string, fn func()) {
	go func() {
		defer func() {
			if r := recover(); r != nil {
				monitoring.IncreasePanicCount()
				logx.Error("PANIC", "Panic in: ", name, " ", r, "\n", string(debug.Stack()))
			}
		}()
		fn()
	}()
}
