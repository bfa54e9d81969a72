package authsvc

import (
	"context"
	"errors"

	"github.com/Moinuddin-Hasan/RFID-Library-Management-System/model"
	registrysvc "github.com/Moinuddin-Hasan/RFID-Library-Management-System/service/registry"
	"github.com/Moinuddin-Hasan/RFID-Library-Management-System/util/hash"
	jwtutil "github.com/Moinuddin-Hasan/RFID-Library-Management-System/util/jwt"
)

// errors used by controllers

type ErrCode string

const (
	ErrDuplicateID  ErrCode = "DUPLICATE_ACCOUNT_ID"
	ErrInvalidCreds ErrCode = "INVALID_CREDENTIALS"
	ErrBadInput     ErrCode = "BAD_INPUT"
	ErrNotFound     ErrCode = "ACCOUNT_NOT_FOUND"
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

const tokenTTLHours = 24

type Store interface {
	GetUsers(ctx context.Context) ([]model.User, error)
	ReplaceUsers(ctx context.Context, users []model.User) error
}

type Service interface {
	// Register creates a student or staff account. The login id must be
	// unique within its role; an attached card UID must be unique across
	// the whole system (re-validated at write time).
	Register(ctx context.Context, req model.RegisterAccountReq) (*model.User, error)

	// Login verifies the password and issues a session token.
	Login(ctx context.Context, req model.LoginReq) (*model.User, string, error)

	// Delete removes an account. Accounts have no update path; deletion
	// is the only mutation after creation.
	Delete(ctx context.Context, role model.Role, loginID string) error

	List(ctx context.Context) ([]model.User, error)

	// IssueFor mints a session token for a user already authenticated by
	// physical card possession (the dispatch flow).
	IssueFor(user model.User) (string, error)
}

type service struct {
	s      Store
	reg    registrysvc.Service
	secret string
}

func New(s Store, reg registrysvc.Service, secret string) Service {
	return &service{s: s, reg: reg, secret: secret}
}

func (sv *service) Register(ctx context.Context, req model.RegisterAccountReq) (*model.User, error) {
	u := model.User{
		Role:      req.Role,
		StudentID: req.StudentID,
		Username:  req.Username,
		Name:      req.Name,
		Email:     req.Email,
		CardUID:   req.CardUID,
	}
	if req.Role == model.RoleStaff {
		u.StudentID = ""
		u.Email = ""
	} else {
		u.Username = ""
	}
	if u.LoginID() == "" || req.Password == "" {
		return nil, makeErr(ErrBadInput)
	}

	if err := sv.reg.ValidateForAssignment(ctx, req.CardUID); err != nil {
		return nil, err
	}

	hashed, err := hash.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}
	u.PasswordHash = hashed

	users, err := sv.s.GetUsers(ctx)
	if err != nil {
		return nil, err
	}
	for i := range users {
		if users[i].Role == u.Role && users[i].LoginID() == u.LoginID() {
			return nil, makeErr(ErrDuplicateID)
		}
	}

	users = append(users, u)
	if err := sv.s.ReplaceUsers(ctx, users); err != nil {
		return nil, err
	}
	return &u, nil
}

func (sv *service) Login(ctx context.Context, req model.LoginReq) (*model.User, string, error) {
	users, err := sv.s.GetUsers(ctx)
	if err != nil {
		return nil, "", err
	}
	for i := range users {
		if users[i].Role != req.Role || users[i].LoginID() != req.ID {
			continue
		}
		if !hash.Check(users[i].PasswordHash, req.Password) {
			return nil, "", makeErr(ErrInvalidCreds)
		}
		token, err := sv.IssueFor(users[i])
		if err != nil {
			return nil, "", err
		}
		u := users[i]
		return &u, token, nil
	}
	return nil, "", makeErr(ErrInvalidCreds)
}

func (sv *service) Delete(ctx context.Context, role model.Role, loginID string) error {
	users, err := sv.s.GetUsers(ctx)
	if err != nil {
		return err
	}
	for i := range users {
		if users[i].Role == role && users[i].LoginID() == loginID {
			users = append(users[:i], users[i+1:]...)
			return sv.s.ReplaceUsers(ctx, users)
		}
	}
	return makeErr(ErrNotFound)
}

func (sv *service) List(ctx context.Context) ([]model.User, error) {
	return sv.s.GetUsers(ctx)
}

func (sv *service) IssueFor(user model.User) (string, error) {
	return jwtutil.Issue(sv.secret, user.LoginID(), string(user.Role), tokenTTLHours)
}
