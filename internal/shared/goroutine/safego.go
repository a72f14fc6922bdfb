// Package goroutine provides helpers for launching background goroutines
// that must not take the process down on panic.
package goroutine

import (
	"runtime/debug"

	"servonix/internal/shared/logger"
)

// SafeGo runs fn in a new goroutine, converting a panic into an error log
// with the goroutine's name and stack trace.
func SafeGo(log logger.Interface, name string, fn func()) {
	go func() {
		defer func() {
			if r := recover(); r != nil {
				log.Errorw("recovered from goroutine panic",
					"goroutine", name,
					"panic", r,
					"stack", string(debug.Stack()),
				)
			}
		}()
		fn()
	}()
}
