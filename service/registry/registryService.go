package registrysvc

import (
	"context"
	"errors"

	"github.com/Moinuddin-Hasan/RFID-Library-Management-System/model"
)

// errors used by controllers and capture flows

type ErrCode string

const (
	ErrCardAssignedToUser ErrCode = "CARD_ASSIGNED_TO_USER"
	ErrCardAssignedToBook ErrCode = "CARD_ASSIGNED_TO_BOOK"
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

// Resolution is the outcome of matching a scanned UID against the two
// collections. Users win over books; Conflict records that the same UID
// appeared on both, which is an invariant violation worth logging but
// never a tie to break differently.
type Resolution struct {
	User     *model.User
	Book     *model.Book
	Conflict bool
}

func (r Resolution) Unregistered() bool { return r.User == nil && r.Book == nil }

type Store interface {
	GetUsers(ctx context.Context) ([]model.User, error)
	GetBooks(ctx context.Context) ([]model.Book, error)
}

type Service interface {
	// Resolve maps a UID to at most one domain entity.
	Resolve(ctx context.Context, uid string) (Resolution, error)

	// ValidateForAssignment rejects a UID that any user or book already
	// carries. It is the sole gate for the global uniqueness invariant
	// and must run again inside every persisting flow, because the store
	// has no uniqueness constraint of its own.
	ValidateForAssignment(ctx context.Context, uid string) error
}

type service struct{ s Store }

func New(s Store) Service { return &service{s: s} }

func (sv *service) Resolve(ctx context.Context, uid string) (Resolution, error) {
	var res Resolution
	if uid == "" {
		return res, nil
	}

	users, err := sv.s.GetUsers(ctx)
	if err != nil {
		return res, err
	}
	for i := range users {
		if users[i].CardUID == uid {
			res.User = &users[i]
			break
		}
	}

	books, err := sv.s.GetBooks(ctx)
	if err != nil {
		return res, err
	}
	for i := range books {
		if books[i].CardUID == uid {
			if res.User != nil {
				res.Conflict = true
			} else {
				res.Book = &books[i]
			}
			break
		}
	}
	return res, nil
}

func (sv *service) ValidateForAssignment(ctx context.Context, uid string) error {
	// Records without a card are legal; only non-empty UIDs are unique.
	if uid == "" {
		return nil
	}

	users, err := sv.s.GetUsers(ctx)
	if err != nil {
		return err
	}
	for i := range users {
		if users[i].CardUID == uid {
			return makeErr(ErrCardAssignedToUser)
		}
	}

	books, err := sv.s.GetBooks(ctx)
	if err != nil {
		return err
	}
	for i := range books {
		if books[i].CardUID == uid {
			return makeErr(ErrCardAssignedToBook)
		}
	}
	return nil
}
