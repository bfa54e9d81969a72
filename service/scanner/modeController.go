package scannersvc

import (
	"context"
	"sync"
)

// EngineMode is the engine-local interpretation of the next scan. It is
// distinct from the reader's own mode register, which only biases capture
// on the device side.
type EngineMode string

const (
	ModeDispatch    EngineMode = "dispatch"
	ModeCaptureUser EngineMode = "capture_user"
	ModeCaptureBook EngineMode = "capture_book"
	ModeReturnOnly  EngineMode = "return_only"
)

// ModeController serializes mode ownership: at most one non-Dispatch mode
// is active, and entering a new one first cancels whichever session still
// holds the previous mode.
type ModeController struct {
	mu     sync.Mutex
	mode   EngineMode
	sess   context.Context
	cancel context.CancelFunc
}

func NewModeController() *ModeController {
	return &ModeController{mode: ModeDispatch}
}

func (m *ModeController) Current() EngineMode {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.mode
}

// Enter activates mode and returns the context the session must honor.
// A still-active previous session is cancelled here, never left armed.
func (m *ModeController) Enter(parent context.Context, mode EngineMode) context.Context {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.cancel != nil {
		m.cancel()
		m.cancel = nil
	}
	ctx, cancel := context.WithCancel(parent)
	m.mode = mode
	m.sess = ctx
	m.cancel = cancel
	return ctx
}

// Exit reverts to Dispatch if mode is still the active one. Used for
// external cancellation, where whichever session holds the mode is the
// one being cancelled.
func (m *ModeController) Exit(mode EngineMode) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.mode != mode {
		return
	}
	m.reset()
}

// ExitSession is a session's own teardown: it reverts to Dispatch only
// when sess is still the active session. A displaced session is a no-op
// here even when its successor runs the same mode.
func (m *ModeController) ExitSession(sess context.Context) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.sess != sess {
		return
	}
	m.reset()
}

func (m *ModeController) reset() {
	if m.cancel != nil {
		m.cancel()
		m.cancel = nil
	}
	m.mode = ModeDispatch
	m.sess = nil
}
