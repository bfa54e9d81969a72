package scannersvc

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/Moinuddin-Hasan/RFID-Library-Management-System/model"
)

func borrowedBook(id, uid, borrower string) model.Book {
	now := time.Now()
	return model.Book{
		ID: id, Title: "T-" + id, CardUID: uid,
		State: model.LendBorrowed, BorrowedBy: borrower,
		BorrowDate: &now,
		History:    []model.HistoryEntry{{BorrowerID: borrower, BorrowDate: now}},
	}
}

func waitStatus(t *testing.T, a *Arbitrator, want ReturnStatus) ReturnState {
	t.Helper()
	var st ReturnState
	require.Eventually(t, func() bool {
		st = a.ReturnSessionState()
		return st.Status == want
	}, 2*time.Second, time.Millisecond, "waiting for status %q, last %+v", want, st)
	return st
}

func TestReturnSession_Idle(t *testing.T) {
	a := newTestArb(&readerMock{}, &docStore{})
	require.Equal(t, ReturnState{Status: ReturnIdle}, a.ReturnSessionState())
}

func TestReturnSession_Success(t *testing.T) {
	reader := &readerMock{}
	store := &docStore{books: []model.Book{borrowedBook("b1", "BC1", "alice")}}
	a := newTestArb(reader, store)

	a.StartReturnSession(context.Background())
	require.Equal(t, ReturnWaiting, a.ReturnSessionState().Status)
	require.Equal(t, ModeReturnOnly, a.modes.Current())

	reader.set("BC1", 100)
	st := waitStatus(t, a, ReturnDone)
	require.Equal(t, "b1", st.BookID)
	require.Equal(t, "T-b1", st.Title)

	books, _ := store.GetBooks(context.Background())
	require.Equal(t, model.LendAvailable, books[0].State)
	require.NotNil(t, books[0].History[0].ReturnDate)

	// after the hold delay the session ends and dispatch resumes
	require.Eventually(t, func() bool { return a.modes.Current() == ModeDispatch }, 2*time.Second, time.Millisecond)
	require.False(t, a.ReturnSessionState().Active)
}

func TestReturnSession_OutlivesStartContext(t *testing.T) {
	reader := &readerMock{}
	store := &docStore{books: []model.Book{borrowedBook("b1", "BC1", "alice")}}
	a := newTestArb(reader, store)

	// the caller's context ends as soon as its request is served; the
	// session must keep running regardless
	ctx, cancel := context.WithCancel(context.Background())
	a.StartReturnSession(ctx)
	cancel()

	reader.set("BC1", 100)
	waitStatus(t, a, ReturnDone)

	books, _ := store.GetBooks(context.Background())
	require.Equal(t, model.LendAvailable, books[0].State)
}

func TestReturnSession_NotBorrowedRearms(t *testing.T) {
	reader := &readerMock{}
	store := &docStore{books: []model.Book{{ID: "b1", CardUID: "BC1", State: model.LendAvailable}}}
	a := newTestArb(reader, store)

	a.StartReturnSession(context.Background())
	reader.set("BC1", 100)

	st := waitStatus(t, a, ReturnNotBorrowed)
	require.True(t, st.Active)

	// the session survives a rejection and waits for the next card
	waitStatus(t, a, ReturnWaiting)
	require.Equal(t, ModeReturnOnly, a.modes.Current())

	a.CancelReturnSession()
}

func TestReturnSession_UnknownCard(t *testing.T) {
	reader := &readerMock{}
	a := newTestArb(reader, &docStore{})

	a.StartReturnSession(context.Background())
	reader.set("STRANGER", 100)

	waitStatus(t, a, ReturnUnregistered)
	a.CancelReturnSession()
}

func TestReturnSession_Cancel(t *testing.T) {
	a := newTestArb(&readerMock{}, &docStore{})

	a.StartReturnSession(context.Background())
	require.Equal(t, ModeReturnOnly, a.modes.Current())

	a.CancelReturnSession()
	st := waitStatus(t, a, ReturnCancelled)
	require.False(t, st.Active)
	require.Equal(t, ModeDispatch, a.modes.Current())
}

func TestReturnSession_DisplacedWriteDoesNotClobber(t *testing.T) {
	a := newTestArb(&readerMock{}, &docStore{})

	a.StartReturnSession(context.Background())
	// the second session displaces the first; the first goroutine is
	// still unwinding and will try to publish its cancelled state
	a.StartReturnSession(context.Background())

	require.Never(t, func() bool {
		return a.ReturnSessionState().Status == ReturnCancelled
	}, 100*time.Millisecond, 5*time.Millisecond)
	require.Equal(t, ReturnWaiting, a.ReturnSessionState().Status)
	require.Equal(t, ModeReturnOnly, a.modes.Current())

	a.CancelReturnSession()
	waitStatus(t, a, ReturnCancelled)
}
