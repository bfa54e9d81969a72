package readerrepo

import (
	"context"
	"fmt"
	"net/http"
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

func (r *httpRepo) Scan(ctx context.Context) (model.ScanObservation, error) {
	var obs model.ScanObservation
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, r.baseURL+"/api/scan", nil)
	if err != nil {
		return obs, err
	}
	resp, err := r.client.Do(req)
	if err != nil {
		return obs, fmt.Errorf("reader: scan: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		return obs, fmt.Errorf("reader: scan: unexpected status %s", resp.Status)
	}
	if err := jsoniter.ConfigFastest.NewDecoder(resp.Body).Decode(&obs); err != nil {
		return obs, fmt.Errorf("reader: scan: %w", err)
	}
	return obs, nil
}

func (r *httpRepo) SetMode(ctx context.Context, m Mode) error {
	return r.get(ctx, "/api/mode?mode="+string(m), "set mode")
}

func (r *httpRepo) Clear(ctx context.Context) error {
	return r.get(ctx, "/api/clear-card", "clear")
}

func (r *httpRepo) get(ctx context.Context, path, op string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, r.baseURL+path, nil)
	if err != nil {
		return err
	}
	resp, err := r.client.Do(req)
	if err != nil {
		return fmt.Errorf("reader: %s: %w", op, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		return fmt.Errorf("reader: %s: unexpected status %s", op, resp.Status)
	}
	return nil
}
