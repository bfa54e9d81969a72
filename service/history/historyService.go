package historysvc

import (
	"context"
	"sort"
	"time"

	"github.com/Moinuddin-Hasan/RFID-Library-Management-System/model"
)

// Row is one ledger line across all books for a single borrower.
type Row struct {
	BookID     string     `json:"bookId"`
	Title      string     `json:"title"`
	BorrowDate time.Time  `json:"borrowDate"`
	ReturnDate *time.Time `json:"returnDate,omitempty"`
	Status     string     `json:"status"` // BORROWED | RETURNED
}

type Store interface {
	GetBooks(ctx context.Context) ([]model.Book, error)
}

type Service interface {
	// ForBorrower collects every history entry for a borrower with a
	// borrow date at or after since, newest first. Open entries are
	// reported as still borrowed.
	ForBorrower(ctx context.Context, borrowerID string, since time.Time) ([]Row, error)
}

type service struct{ s Store }

func New(s Store) Service { return &service{s: s} }

func (sv *service) ForBorrower(ctx context.Context, borrowerID string, since time.Time) ([]Row, error) {
	books, err := sv.s.GetBooks(ctx)
	if err != nil {
		return nil, err
	}

	var out []Row
	for _, b := range books {
		for _, h := range b.History {
			if h.BorrowerID != borrowerID || h.BorrowDate.Before(since) {
				continue
			}
			status := "RETURNED"
			if h.Open() {
				status = "BORROWED"
			}
			out = append(out, Row{
				BookID:     b.ID,
				Title:      b.Title,
				BorrowDate: h.BorrowDate,
				ReturnDate: h.ReturnDate,
				Status:     status,
			})
		}
	}

	sort.Slice(out, func(i, j int) bool { return out[i].BorrowDate.After(out[j].BorrowDate) })
	return out, nil
}
