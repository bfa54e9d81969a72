package scannersvc

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/Moinuddin-Hasan/RFID-Library-Management-System/model"
	readerrepo "github.com/Moinuddin-Hasan/RFID-Library-Management-System/repository/reader"
	lendingsvc "github.com/Moinuddin-Hasan/RFID-Library-Management-System/service/lending"
	registrysvc "github.com/Moinuddin-Hasan/RFID-Library-Management-System/service/registry"
)

// errors used by controllers

type ErrCode string

const (
	ErrScanTimeout ErrCode = "SCAN_TIMEOUT"
	ErrCancelled   ErrCode = "CAPTURE_CANCELLED"
	ErrBadMode     ErrCode = "NOT_A_CAPTURE_MODE"
)

type codedError struct{ code ErrCode }

func (e codedError) Error() string { return string(e.code) }
func (e codedError) Code() ErrCode { return e.code }
func makeErr(c ErrCode) error      { return codedError{code: c} }

// Code extracts error code
func Code(err error) ErrCode {
	var ce interface{ Code() ErrCode }
	if errors.As(err, &ce) {
		return ce.Code()
	}
	return ""
}

type OutcomeKind string

const (
	OutcomeUser         OutcomeKind = "user"
	OutcomeBook         OutcomeKind = "book"
	OutcomeUnregistered OutcomeKind = "unregistered"
)

// Outcome is the result of dispatching one fresh observation. The UI
// polls for it; nothing is pushed.
type Outcome struct {
	Kind      OutcomeKind      `json:"kind"`
	UID       string           `json:"uid"`
	Token     string           `json:"token,omitempty"`
	Principal *model.Principal `json:"principal,omitempty"`
	BookID    string           `json:"bookId,omitempty"`
	At        time.Time        `json:"at"`
}

// TokenIssuer mints a session token for a user authenticated by card.
type TokenIssuer interface {
	IssueFor(user model.User) (string, error)
}

// Options bound the capture flows and the return-session display delay.
type Options struct {
	CaptureAttempts int
	CaptureInterval time.Duration
	HoldDelay       time.Duration
}

// Arbitrator owns the reader's single scan slot on the engine side. All
// pollers funnel through one consumed-timestamp watermark so a distinct
// physical scan is acted on exactly once, by exactly one flow.
type Arbitrator struct {
	reader  readerrepo.Repo
	reg     registrysvc.Service
	lending lendingsvc.Service
	tokens  TokenIssuer
	modes   *ModeController
	log     *slog.Logger
	opts    Options

	mu       sync.Mutex
	lastSeen int64
	outcome  *Outcome
	ret      ReturnState
	retGen   uint64
}

func NewArbitrator(reader readerrepo.Repo, reg registrysvc.Service, lending lendingsvc.Service,
	tokens TokenIssuer, modes *ModeController, log *slog.Logger, opts Options) *Arbitrator {
	if opts.CaptureAttempts <= 0 {
		opts.CaptureAttempts = 15
	}
	if opts.CaptureInterval <= 0 {
		opts.CaptureInterval = time.Second
	}
	if opts.HoldDelay <= 0 {
		opts.HoldDelay = 5 * time.Second
	}
	return &Arbitrator{
		reader:  reader,
		reg:     reg,
		lending: lending,
		tokens:  tokens,
		modes:   modes,
		log:     log,
		opts:    opts,
	}
}

// PollLoop is the steady-state heartbeat. It never times out and never
// stops on device errors; a failed poll is logged and the next tick
// proceeds at the same interval.
func (a *Arbitrator) PollLoop(ctx context.Context, interval time.Duration) {
	t := time.NewTicker(interval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			a.tick(ctx)
		}
	}
}

func (a *Arbitrator) tick(ctx context.Context) {
	if a.modes.Current() != ModeDispatch {
		// An active capture or return session owns interpretation of the
		// next observation; it consumes the timestamp through the shared
		// watermark, so general dispatch neither steals it nor
		// re-processes it later.
		return
	}
	obs, err := a.reader.Scan(ctx)
	if err != nil {
		a.log.Warn("scan poll failed", "err", err)
		return
	}
	if !a.consume(obs) {
		return
	}
	a.dispatch(ctx, obs)
}

// consume advances the shared watermark. Stale or empty observations are
// never consumed; a timestamp consumed by one flow is dead to the rest.
func (a *Arbitrator) consume(obs model.ScanObservation) bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	if !obs.FreshAfter(a.lastSeen) {
		return false
	}
	a.lastSeen = obs.Timestamp
	return true
}

func (a *Arbitrator) dispatch(ctx context.Context, obs model.ScanObservation) {
	res, err := a.reg.Resolve(ctx, obs.UID)
	if err != nil {
		a.log.Warn("dispatch: resolve failed", "uid", obs.UID, "err", err)
		return
	}

	out := Outcome{UID: obs.UID, At: time.Now()}
	switch {
	case res.User != nil:
		if res.Conflict {
			a.log.Error("card assigned to both a user and a book", "uid", obs.UID)
		}
		token, err := a.tokens.IssueFor(*res.User)
		if err != nil {
			a.log.Error("dispatch: issue token failed", "err", err)
			return
		}
		out.Kind = OutcomeUser
		out.Token = token
		out.Principal = &model.Principal{ID: res.User.LoginID(), Role: res.User.Role}
	case res.Book != nil:
		out.Kind = OutcomeBook
		out.BookID = res.Book.ID
	default:
		out.Kind = OutcomeUnregistered
	}
	a.setOutcome(out)
}

func (a *Arbitrator) setOutcome(out Outcome) {
	a.mu.Lock()
	a.outcome = &out
	a.mu.Unlock()
}

// LastOutcome returns the most recent dispatch outcome, or nil when
// nothing has been dispatched yet.
func (a *Arbitrator) LastOutcome() *Outcome {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.outcome == nil {
		return nil
	}
	out := *a.outcome
	return &out
}

// CaptureCard runs one bounded capture session for a registration flow:
// bias the reader, poll up to CaptureAttempts times, validate the UID for
// assignment, clear the slot, and hand the UID back. Exhaustion is a
// timeout; displacement by a newer mode request is a cancellation.
func (a *Arbitrator) CaptureCard(ctx context.Context, mode EngineMode) (string, error) {
	var rmode readerrepo.Mode
	switch mode {
	case ModeCaptureUser:
		rmode = readerrepo.ModeUser
	case ModeCaptureBook:
		rmode = readerrepo.ModeBook
	default:
		return "", makeErr(ErrBadMode)
	}

	sctx := a.modes.Enter(ctx, mode)
	defer a.modes.ExitSession(sctx)

	if err := a.reader.SetMode(sctx, rmode); err != nil {
		return "", err
	}
	defer func() {
		// Best effort: the bias register must not stay armed after the
		// session ends, whatever ended it.
		if err := a.reader.SetMode(context.Background(), readerrepo.ModeNormal); err != nil {
			a.log.Warn("capture: reset reader mode failed", "err", err)
		}
	}()

	for attempt := 0; attempt < a.opts.CaptureAttempts; attempt++ {
		obs, err := a.reader.Scan(sctx)
		if err != nil {
			a.log.Warn("capture: reader poll failed", "err", err)
		} else if a.consume(obs) {
			if err := a.reg.ValidateForAssignment(sctx, obs.UID); err != nil {
				return "", err
			}
			if err := a.reader.Clear(sctx); err != nil {
				a.log.Warn("capture: clear slot failed", "err", err)
			}
			return obs.UID, nil
		}

		select {
		case <-sctx.Done():
			return "", makeErr(ErrCancelled)
		case <-time.After(a.opts.CaptureInterval):
		}
	}
	return "", makeErr(ErrScanTimeout)
}
