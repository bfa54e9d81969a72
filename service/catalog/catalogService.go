package catalogsvc

import (
	"context"
	"errors"

	"github.com/Moinuddin-Hasan/RFID-Library-Management-System/model"
	registrysvc "github.com/Moinuddin-Hasan/RFID-Library-Management-System/service/registry"
)

// errors used by controllers

type ErrCode string

const (
	ErrDuplicateID ErrCode = "DUPLICATE_BOOK_ID"
	ErrNotFound    ErrCode = "BOOK_NOT_FOUND"
	ErrBorrowed    ErrCode = "BOOK_BORROWED"
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

type Store interface {
	GetBooks(ctx context.Context) ([]model.Book, error)
	ReplaceBooks(ctx context.Context, books []model.Book) error
}

type Service interface {
	// Add registers a book. The card UID, when present, is validated
	// against both collections at write time; duplicate ids are
	// rejected. Card-uniqueness violations surface as registry errors.
	Add(ctx context.Context, req model.AddBookReq) (*model.Book, error)

	// Delete removes a book; rejected while the book is Borrowed.
	Delete(ctx context.Context, bookID string) error

	List(ctx context.Context) ([]model.Book, error)
	Detail(ctx context.Context, bookID string) (*model.Book, error)
}

type service struct {
	s   Store
	reg registrysvc.Service
}

func New(s Store, reg registrysvc.Service) Service { return &service{s: s, reg: reg} }

func (sv *service) Add(ctx context.Context, req model.AddBookReq) (*model.Book, error) {
	// Uniqueness is re-checked here, against fresh reads, because the
	// store cannot enforce it; a capture-time check alone would race.
	if err := sv.reg.ValidateForAssignment(ctx, req.CardUID); err != nil {
		return nil, err
	}

	books, err := sv.s.GetBooks(ctx)
	if err != nil {
		return nil, err
	}
	for i := range books {
		if books[i].ID == req.ID {
			return nil, makeErr(ErrDuplicateID)
		}
	}

	b := model.Book{
		ID:      req.ID,
		Title:   req.Title,
		Author:  req.Author,
		Shelf:   req.Shelf,
		Floor:   req.Floor,
		CardUID: req.CardUID,
		State:   model.LendAvailable,
		History: []model.HistoryEntry{},
	}
	books = append(books, b)

	if err := sv.s.ReplaceBooks(ctx, books); err != nil {
		return nil, err
	}
	return &b, nil
}

func (sv *service) Delete(ctx context.Context, bookID string) error {
	books, err := sv.s.GetBooks(ctx)
	if err != nil {
		return err
	}
	i := -1
	for j := range books {
		if books[j].ID == bookID {
			i = j
			break
		}
	}
	if i < 0 {
		return makeErr(ErrNotFound)
	}
	if books[i].Borrowed() {
		return makeErr(ErrBorrowed)
	}

	books = append(books[:i], books[i+1:]...)
	return sv.s.ReplaceBooks(ctx, books)
}

func (sv *service) List(ctx context.Context) ([]model.Book, error) {
	return sv.s.GetBooks(ctx)
}

func (sv *service) Detail(ctx context.Context, bookID string) (*model.Book, error) {
	books, err := sv.s.GetBooks(ctx)
	if err != nil {
		return nil, err
	}
	for i := range books {
		if books[i].ID == bookID {
			b := books[i]
			return &b, nil
		}
	}
	return nil, makeErr(ErrNotFound)
}
