package registrysvc_test

import (
	"context"
	"errors"
	"testing"

	"github.com/Moinuddin-Hasan/RFID-Library-Management-System/model"
	registrysvc "github.com/Moinuddin-Hasan/RFID-Library-Management-System/service/registry"
)

type storeMock struct {
	users    []model.User
	books    []model.Book
	usersErr error
	booksErr error
}

func (m *storeMock) GetUsers(ctx context.Context) ([]model.User, error) {
	return m.users, m.usersErr
}
func (m *storeMock) GetBooks(ctx context.Context) ([]model.Book, error) {
	return m.books, m.booksErr
}

func TestResolve_UserWinsOverBook(t *testing.T) {
	m := &storeMock{
		users: []model.User{{Role: model.RoleStudent, StudentID: "s1", CardUID: "SHARED"}},
		books: []model.Book{{ID: "b1", CardUID: "SHARED"}},
	}
	res, err := registrysvc.New(m).Resolve(context.Background(), "SHARED")
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if res.User == nil || res.Book != nil {
		t.Fatalf("want user match only, got user=%v book=%v", res.User, res.Book)
	}
	if !res.Conflict {
		t.Fatal("expected conflict flag when both collections carry the uid")
	}
}

func TestResolve_Book(t *testing.T) {
	m := &storeMock{books: []model.Book{{ID: "b1", CardUID: "C1"}}}
	res, err := registrysvc.New(m).Resolve(context.Background(), "C1")
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if res.Book == nil || res.Book.ID != "b1" || res.Conflict {
		t.Fatalf("want book b1, got %+v", res)
	}
}

func TestResolve_Unregistered(t *testing.T) {
	res, err := registrysvc.New(&storeMock{}).Resolve(context.Background(), "NOBODY")
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if !res.Unregistered() {
		t.Fatalf("want unregistered, got %+v", res)
	}
}

func TestResolve_EmptyUID(t *testing.T) {
	m := &storeMock{usersErr: errors.New("must not be called")}
	res, err := registrysvc.New(m).Resolve(context.Background(), "")
	if err != nil || !res.Unregistered() {
		t.Fatalf("empty uid should short-circuit, got res=%+v err=%v", res, err)
	}
}

func TestValidateForAssignment(t *testing.T) {
	m := &storeMock{
		users: []model.User{{Role: model.RoleStaff, Username: "admin", CardUID: "UCARD"}},
		books: []model.Book{{ID: "b1", CardUID: "BCARD"}},
	}
	svc := registrysvc.New(m)
	ctx := context.Background()

	if err := svc.ValidateForAssignment(ctx, ""); err != nil {
		t.Fatalf("empty uid is always assignable: %v", err)
	}
	if err := svc.ValidateForAssignment(ctx, "FRESH"); err != nil {
		t.Fatalf("fresh uid: %v", err)
	}
	if got := registrysvc.Code(svc.ValidateForAssignment(ctx, "UCARD")); got != registrysvc.ErrCardAssignedToUser {
		t.Fatalf("user card: got code %q", got)
	}
	if got := registrysvc.Code(svc.ValidateForAssignment(ctx, "BCARD")); got != registrysvc.ErrCardAssignedToBook {
		t.Fatalf("book card: got code %q", got)
	}
}

func TestValidate_StoreError(t *testing.T) {
	m := &storeMock{usersErr: errors.New("offline")}
	err := registrysvc.New(m).ValidateForAssignment(context.Background(), "X")
	if err == nil || registrysvc.Code(err) != "" {
		t.Fatalf("store errors pass through uncoded, got %v", err)
	}
}
