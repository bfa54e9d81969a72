package lendingsvc

import (
	"context"
	"errors"
	"time"

	"github.com/Moinuddin-Hasan/RFID-Library-Management-System/model"
)

// LoanDays is the loan period in calendar days.
const LoanDays = 14

// errors used by controllers

type ErrCode string

const (
	ErrNotFound        ErrCode = "BOOK_NOT_FOUND"
	ErrAlreadyBorrowed ErrCode = "ALREADY_BORROWED"
	ErrNotBorrowed     ErrCode = "NOT_BORROWED"
	ErrNotAuthorized   ErrCode = "NOT_AUTHORIZED"
	ErrUnregistered    ErrCode = "CARD_NOT_REGISTERED"
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

// LoanRow is one row of a borrower's current-loans view, with the due
// math already applied so every page shows the same numbers.
type LoanRow struct {
	BookID     string    `json:"bookId"`
	Title      string    `json:"title"`
	BorrowDate time.Time `json:"borrowDate"`
	DueDate    time.Time `json:"dueDate"`
	DaysLeft   int       `json:"daysLeft"`
	Penalty    int       `json:"penalty"`
}

type Store interface {
	GetBooks(ctx context.Context) ([]model.Book, error)
	ReplaceBooks(ctx context.Context, books []model.Book) error
}

type Service interface {
	// Borrow moves an Available book to Borrowed for borrowerID, due in
	// LoanDays calendar days, and appends an open history entry.
	Borrow(ctx context.Context, bookID, borrowerID string, now time.Time) (*model.Book, error)

	// Return moves a Borrowed book back to Available and closes its open
	// history entry. Only the current borrower may return it.
	Return(ctx context.Context, bookID, requesterID string, now time.Time) (*model.Book, error)

	// ReturnByCard returns whichever borrowed book carries the scanned
	// card. Physical possession of the card is the authorization; no
	// requester identity is checked.
	ReturnByCard(ctx context.Context, uid string, now time.Time) (*model.Book, error)

	// BorrowedBy lists a borrower's current loans with due-date math.
	BorrowedBy(ctx context.Context, borrowerID string, now time.Time) ([]LoanRow, error)
}

type service struct{ s Store }

func New(s Store) Service { return &service{s: s} }

// Borrow re-reads the collection and re-checks the state immediately
// before the write. The store offers no locking, so this narrows the
// lost-update window; it cannot close it.
func (sv *service) Borrow(ctx context.Context, bookID, borrowerID string, now time.Time) (*model.Book, error) {
	books, err := sv.s.GetBooks(ctx)
	if err != nil {
		return nil, err
	}

	i := indexByID(books, bookID)
	if i < 0 {
		return nil, makeErr(ErrNotFound)
	}
	if books[i].Borrowed() {
		return nil, makeErr(ErrAlreadyBorrowed)
	}

	due := now.AddDate(0, 0, LoanDays)
	books[i].State = model.LendBorrowed
	books[i].BorrowedBy = borrowerID
	books[i].BorrowDate = &now
	books[i].DueDate = &due
	books[i].History = append(books[i].History, model.HistoryEntry{
		BorrowerID: borrowerID,
		BorrowDate: now,
	})

	if err := sv.s.ReplaceBooks(ctx, books); err != nil {
		return nil, err
	}
	b := books[i]
	return &b, nil
}

func (sv *service) Return(ctx context.Context, bookID, requesterID string, now time.Time) (*model.Book, error) {
	books, err := sv.s.GetBooks(ctx)
	if err != nil {
		return nil, err
	}
	i := indexByID(books, bookID)
	if i < 0 {
		return nil, makeErr(ErrNotFound)
	}
	if !books[i].Borrowed() {
		return nil, makeErr(ErrNotBorrowed)
	}
	if books[i].BorrowedBy != requesterID {
		return nil, makeErr(ErrNotAuthorized)
	}
	return sv.commitReturn(ctx, books, i, now)
}

func (sv *service) ReturnByCard(ctx context.Context, uid string, now time.Time) (*model.Book, error) {
	books, err := sv.s.GetBooks(ctx)
	if err != nil {
		return nil, err
	}
	i := -1
	for j := range books {
		if uid != "" && books[j].CardUID == uid {
			i = j
			break
		}
	}
	if i < 0 {
		return nil, makeErr(ErrUnregistered)
	}
	if !books[i].Borrowed() {
		return nil, makeErr(ErrNotBorrowed)
	}
	return sv.commitReturn(ctx, books, i, now)
}

// commitReturn clears the loan fields and closes the most recent open
// history entry, searched from the end. History is append-only; a return
// never deletes or reorders entries.
func (sv *service) commitReturn(ctx context.Context, books []model.Book, i int, now time.Time) (*model.Book, error) {
	books[i].State = model.LendAvailable
	books[i].BorrowedBy = ""
	books[i].BorrowDate = nil
	books[i].DueDate = nil

	if j := books[i].OpenHistory(); j >= 0 {
		t := now
		books[i].History[j].ReturnDate = &t
	}

	if err := sv.s.ReplaceBooks(ctx, books); err != nil {
		return nil, err
	}
	b := books[i]
	return &b, nil
}

func (sv *service) BorrowedBy(ctx context.Context, borrowerID string, now time.Time) ([]LoanRow, error) {
	books, err := sv.s.GetBooks(ctx)
	if err != nil {
		return nil, err
	}
	var out []LoanRow
	for _, b := range books {
		if !b.Borrowed() || b.BorrowedBy != borrowerID || b.DueDate == nil || b.BorrowDate == nil {
			continue
		}
		out = append(out, LoanRow{
			BookID:     b.ID,
			Title:      b.Title,
			BorrowDate: *b.BorrowDate,
			DueDate:    *b.DueDate,
			DaysLeft:   DaysRemaining(*b.DueDate, now),
			Penalty:    OverdueDays(*b.DueDate, now),
		})
	}
	return out, nil
}

func indexByID(books []model.Book, id string) int {
	for i := range books {
		if books[i].ID == id {
			return i
		}
	}
	return -1
}
