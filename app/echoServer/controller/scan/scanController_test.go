package scan_test

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"

	scanctrl "github.com/Moinuddin-Hasan/RFID-Library-Management-System/app/echoServer/controller/scan"
	"github.com/Moinuddin-Hasan/RFID-Library-Management-System/model"
	readerrepo "github.com/Moinuddin-Hasan/RFID-Library-Management-System/repository/reader"
	lendingsvc "github.com/Moinuddin-Hasan/RFID-Library-Management-System/service/lending"
	registrysvc "github.com/Moinuddin-Hasan/RFID-Library-Management-System/service/registry"
	scannersvc "github.com/Moinuddin-Hasan/RFID-Library-Management-System/service/scanner"
)

type readerStub struct {
	mu  sync.Mutex
	obs model.ScanObservation
}

func (r *readerStub) set(uid string, ts int64) {
	r.mu.Lock()
	r.obs = model.ScanObservation{UID: uid, Timestamp: ts}
	r.mu.Unlock()
}

func (r *readerStub) Scan(ctx context.Context) (model.ScanObservation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.obs, nil
}

func (r *readerStub) SetMode(ctx context.Context, m readerrepo.Mode) error { return nil }

func (r *readerStub) Clear(ctx context.Context) error {
	r.mu.Lock()
	r.obs = model.ScanObservation{}
	r.mu.Unlock()
	return nil
}

type storeStub struct {
	mu    sync.Mutex
	books []model.Book
}

func (s *storeStub) GetUsers(ctx context.Context) ([]model.User, error) { return nil, nil }

func (s *storeStub) GetBooks(ctx context.Context) ([]model.Book, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]model.Book(nil), s.books...), nil
}

func (s *storeStub) ReplaceBooks(ctx context.Context, books []model.Book) error {
	s.mu.Lock()
	s.books = books
	s.mu.Unlock()
	return nil
}

type tokenStub struct{}

func (tokenStub) IssueFor(u model.User) (string, error) { return "tok", nil }

func newController(reader *readerStub, store *storeStub) *scanctrl.Controller {
	log := slog.New(slog.DiscardHandler)
	arb := scannersvc.NewArbitrator(reader, registrysvc.New(store), lendingsvc.New(store),
		tokenStub{}, scannersvc.NewModeController(), log, scannersvc.Options{
			CaptureAttempts: 3,
			CaptureInterval: 5 * time.Millisecond,
			HoldDelay:       10 * time.Millisecond,
		})
	return &scanctrl.Controller{Arb: arb, Log: log}
}

func TestStartReturn_SessionOutlivesRequest(t *testing.T) {
	reader := &readerStub{}
	now := time.Now()
	store := &storeStub{books: []model.Book{{
		ID: "b1", Title: "t", CardUID: "BC1",
		State: model.LendBorrowed, BorrowedBy: "alice", BorrowDate: &now,
		History: []model.HistoryEntry{{BorrowerID: "alice", BorrowDate: now}},
	}}}
	h := newController(reader, store)

	e := echo.New()
	reqCtx, cancelReq := context.WithCancel(context.Background())
	req := httptest.NewRequest(http.MethodPost, "/v1/returns/session", nil).WithContext(reqCtx)
	rec := httptest.NewRecorder()

	require.NoError(t, h.StartReturn(e.NewContext(req, rec)))
	require.Equal(t, http.StatusAccepted, rec.Code)

	// the handler has returned; the server cancels the request context
	cancelReq()

	// a card presented after that must still be processed
	reader.set("BC1", 100)
	require.Eventually(t, func() bool {
		return h.Arb.ReturnSessionState().Status == scannersvc.ReturnDone
	}, 2*time.Second, time.Millisecond)

	books, err := store.GetBooks(context.Background())
	require.NoError(t, err)
	require.Equal(t, model.LendAvailable, books[0].State)
	require.NotNil(t, books[0].History[0].ReturnDate)
}

func TestCancelReturn_EndsSession(t *testing.T) {
	h := newController(&readerStub{}, &storeStub{})
	e := echo.New()

	req := httptest.NewRequest(http.MethodPost, "/v1/returns/session", nil)
	require.NoError(t, h.StartReturn(e.NewContext(req, httptest.NewRecorder())))

	req = httptest.NewRequest(http.MethodDelete, "/v1/returns/session", nil)
	rec := httptest.NewRecorder()
	require.NoError(t, h.CancelReturn(e.NewContext(req, rec)))
	require.Equal(t, http.StatusOK, rec.Code)

	require.Eventually(t, func() bool {
		return h.Arb.ReturnSessionState().Status == scannersvc.ReturnCancelled
	}, 2*time.Second, time.Millisecond)
}
