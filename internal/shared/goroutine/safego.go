// Package goroutine provides utilities for safely launching goroutines with panic recovery.
package goroutine

import (
	"fmt"
	"runtime/debug"

	"helpdesk/internal/shared/logger"
)

// SafeGo launches a goroutine with panic recovery. If the goroutine panics,
// the panic is caught and logged with stack trace instead of crashing the process.
func SafeGo(log logger.Interface, name string, fn func()) {
	go func() {
		defer func() {
			if r := recover(); r != nil {
				log.Errorw("goroutine panicked",
					"goroutine", name,
					"panic", fmt.Sprintf("%v", r),
					"stack", string(debug.Stack()),
				)
			}
		}()
		fn()
	}()
}

// Detach runs fn as a fire-and-forget task. The caller never waits on it:
// a returned error is logged on the task's own error channel and dropped,
// so a failing side effect cannot roll back or block the primary operation.
func Detach(log logger.Interface, name string, fn func() error) {
	SafeGo(log, name, func() {
		if err := fn(); err != nil {
			log.Errorw("detached task failed",
				"task", name,
				"error", err,
			)
		}
	})
}
