package storerepo

import (
	"context"

	"github.com/Moinuddin-Hasan/RFID-Library-Management-System/model"
)

// UsersDoc and BooksDoc are the whole-collection documents the kiosk
// store speaks. There is no partial update: every write replaces the
// full document (last writer wins).
type UsersDoc struct {
	Users []model.User `json:"users"`
}

type BooksDoc struct {
	Books []model.Book `json:"books"`
}

type Repo interface {
	GetUsers(ctx context.Context) ([]model.User, error)
	ReplaceUsers(ctx context.Context, users []model.User) error
	GetBooks(ctx context.Context) ([]model.Book, error)
	ReplaceBooks(ctx context.Context, books []model.Book) error
}
