package storerepo

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	jsoniter "github.com/json-iterator/go"

	"github.com/Moinuddin-Hasan/RFID-Library-Management-System/model"
	"github.com/Moinuddin-Hasan/RFID-Library-Management-System/util/httpx"
)

type httpRepo struct {
	baseURL string
	client  *http.Client
}

func NewHTTP(baseURL string) Repo {
	return &httpRepo{baseURL: strings.TrimRight(baseURL, "/"), client: httpx.Client()}
}

func (r *httpRepo) GetUsers(ctx context.Context) ([]model.User, error) {
	var doc UsersDoc
	if err := r.getDoc(ctx, "/api/users", &doc); err != nil {
		return nil, fmt.Errorf("store: get users: %w", err)
	}
	return doc.Users, nil
}

func (r *httpRepo) ReplaceUsers(ctx context.Context, users []model.User) error {
	if err := r.postDoc(ctx, "/api/users", UsersDoc{Users: users}); err != nil {
		return fmt.Errorf("store: replace users: %w", err)
	}
	return nil
}

func (r *httpRepo) GetBooks(ctx context.Context) ([]model.Book, error) {
	var doc BooksDoc
	if err := r.getDoc(ctx, "/api/books", &doc); err != nil {
		return nil, fmt.Errorf("store: get books: %w", err)
	}
	return doc.Books, nil
}

func (r *httpRepo) ReplaceBooks(ctx context.Context, books []model.Book) error {
	if err := r.postDoc(ctx, "/api/books", BooksDoc{Books: books}); err != nil {
		return fmt.Errorf("store: replace books: %w", err)
	}
	return nil
}

func (r *httpRepo) getDoc(ctx context.Context, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, r.baseURL+path, nil)
	if err != nil {
		return err
	}
	resp, err := r.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		return fmt.Errorf("unexpected status %s", resp.Status)
	}
	return jsoniter.ConfigFastest.NewDecoder(resp.Body).Decode(out)
}

// postDoc sends the whole document as a form-encoded "data" field, which
// is the only write contract the kiosk firmware accepts.
func (r *httpRepo) postDoc(ctx context.Context, path string, doc any) error {
	b, err := jsoniter.ConfigFastest.Marshal(doc)
	if err != nil {
		return err
	}
	form := url.Values{"data": {string(b)}}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.baseURL+path, strings.NewReader(form.Encode()))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := r.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		return fmt.Errorf("unexpected status %s", resp.Status)
	}
	return nil
}
