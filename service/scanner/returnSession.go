package scannersvc

import (
	"context"
	"time"

	lendingsvc "github.com/Moinuddin-Hasan/RFID-Library-Management-System/service/lending"
)

type ReturnStatus string

const (
	ReturnIdle         ReturnStatus = "idle"
	ReturnWaiting      ReturnStatus = "waiting"
	ReturnDone         ReturnStatus = "returned"
	ReturnNotBorrowed  ReturnStatus = "not_borrowed"
	ReturnUnregistered ReturnStatus = "unregistered"
	ReturnCancelled    ReturnStatus = "cancelled"
)

// ReturnState is what the index page polls while the card-driven return
// flow runs. Authorization here is physical possession of the book's
// card; no logged-in principal is consulted.
type ReturnState struct {
	Active bool         `json:"active"`
	Status ReturnStatus `json:"status"`
	BookID string       `json:"bookId,omitempty"`
	Title  string       `json:"title,omitempty"`
	At     time.Time    `json:"at"`
}

// StartReturnSession enters ReturnOnly mode and begins polling for a book
// card. The session outlives the request that started it, so its parent
// is detached from the caller's cancellation; teardown happens through
// CancelReturnSession or displacement by a newer mode request. A session
// already running is displaced, same as any other mode.
func (a *Arbitrator) StartReturnSession(ctx context.Context) {
	sctx := a.modes.Enter(context.WithoutCancel(ctx), ModeReturnOnly)

	a.mu.Lock()
	a.retGen++
	gen := a.retGen
	a.ret = ReturnState{Active: true, Status: ReturnWaiting, At: time.Now()}
	a.mu.Unlock()

	go a.runReturnSession(sctx, gen)
}

// CancelReturnSession ends the session explicitly. The state reads
// cancelled, never timed out: the two outcomes stay distinguishable.
func (a *Arbitrator) CancelReturnSession() {
	a.modes.Exit(ModeReturnOnly)
}

func (a *Arbitrator) ReturnSessionState() ReturnState {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.ret.Status == "" {
		return ReturnState{Status: ReturnIdle}
	}
	return a.ret
}

// setReturnState publishes st unless the writing session has been
// displaced. A stale goroutine still unwinding after a newer session
// started must not clobber its successor's state.
func (a *Arbitrator) setReturnState(gen uint64, st ReturnState) {
	a.mu.Lock()
	if gen == a.retGen {
		a.ret = st
	}
	a.mu.Unlock()
}

func (a *Arbitrator) runReturnSession(sctx context.Context, gen uint64) {
	t := time.NewTicker(a.opts.CaptureInterval)
	defer t.Stop()

	for {
		select {
		case <-sctx.Done():
			a.setReturnState(gen, ReturnState{Status: ReturnCancelled, At: time.Now()})
			return
		case <-t.C:
		}

		obs, err := a.reader.Scan(sctx)
		if err != nil {
			a.log.Warn("return session: reader poll failed", "err", err)
			continue
		}
		if !a.consume(obs) {
			continue
		}

		now := time.Now()
		book, err := a.lending.ReturnByCard(sctx, obs.UID, now)
		if err == nil {
			if cerr := a.reader.Clear(sctx); cerr != nil {
				a.log.Warn("return session: clear slot failed", "err", cerr)
			}
			a.setReturnState(gen, ReturnState{Active: true, Status: ReturnDone, BookID: book.ID, Title: book.Title, At: now})
			// Hold the success message visible before leaving
			// suppression; exiting immediately would blank it.
			select {
			case <-sctx.Done():
			case <-time.After(a.opts.HoldDelay):
			}
			a.setReturnState(gen, ReturnState{Status: ReturnDone, BookID: book.ID, Title: book.Title, At: now})
			a.modes.ExitSession(sctx)
			return
		}

		switch lendingsvc.Code(err) {
		case lendingsvc.ErrNotBorrowed:
			a.setReturnState(gen, ReturnState{Active: true, Status: ReturnNotBorrowed, At: now})
		case lendingsvc.ErrUnregistered:
			a.setReturnState(gen, ReturnState{Active: true, Status: ReturnUnregistered, At: now})
		default:
			// Transient store failure: keep the session alive and let
			// the next tick retry.
			a.log.Warn("return session: return failed", "uid", obs.UID, "err", err)
			continue
		}

		// Domain rejection: show it for the display delay, then re-arm
		// rather than ending the session.
		select {
		case <-sctx.Done():
			a.setReturnState(gen, ReturnState{Status: ReturnCancelled, At: time.Now()})
			return
		case <-time.After(a.opts.HoldDelay):
		}
		a.setReturnState(gen, ReturnState{Active: true, Status: ReturnWaiting, At: time.Now()})
	}
}
