// model/bookModel.go
package model

import "time"

type LendState string

const (
	LendAvailable LendState = "AVAILABLE"
	LendBorrowed  LendState = "BORROWED"
)

// HistoryEntry is one loan in a book's append-only history. ReturnDate
// nil means the loan is still open; a book carries at most one open entry.
type HistoryEntry struct {
	BorrowerID string     `json:"borrowerId"`
	BorrowDate time.Time  `json:"borrowDate"`
	ReturnDate *time.Time `json:"returnDate,omitempty"`
}

func (h HistoryEntry) Open() bool { return h.ReturnDate == nil }

// Book is one record of the books collection. BorrowedBy, BorrowDate and
// DueDate are set only while State is LendBorrowed.
type Book struct {
	ID         string         `json:"id"`
	Title      string         `json:"title"`
	Author     string         `json:"author"`
	Shelf      string         `json:"shelf"`
	Floor      string         `json:"floor"`
	CardUID    string         `json:"cardUid,omitempty"`
	State      LendState      `json:"state"`
	BorrowedBy string         `json:"borrowedBy,omitempty"`
	BorrowDate *time.Time     `json:"borrowDate,omitempty"`
	DueDate    *time.Time     `json:"dueDate,omitempty"`
	History    []HistoryEntry `json:"history"`
}

func (b Book) Borrowed() bool { return b.State == LendBorrowed }

// OpenHistory returns the most recent open entry, searched from the end,
// or -1 when every loan is closed.
func (b Book) OpenHistory() int {
	for i := len(b.History) - 1; i >= 0; i-- {
		if b.History[i].Open() {
			return i
		}
	}
	return -1
}

// AddBookReq is the book registration payload.
// swagger:model AddBookReq
type AddBookReq struct {
	ID      string `json:"id" validate:"required"`
	Title   string `json:"title" validate:"required"`
	Author  string `json:"author" validate:"required"`
	Shelf   string `json:"shelf" validate:"required"`
	Floor   string `json:"floor" validate:"required"`
	CardUID string `json:"cardUid"`
}
