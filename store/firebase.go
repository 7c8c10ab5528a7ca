package store

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// FirebaseStore persists account records in a Firebase Realtime Database via
// its REST API. Records live under users/{id}. PATCH merges only the named
// children, which gives the partial-update semantics the syncer relies on.
type FirebaseStore struct {
	BaseURL string // e.g. https://my-project.firebaseio.com
	Auth    string // optional database auth token
	HTTP    *http.Client
}

func NewFirebase(baseURL string) *FirebaseStore {
	return &FirebaseStore{
		BaseURL: baseURL,
		HTTP:    &http.Client{Timeout: 10 * time.Second},
	}
}

func (f *FirebaseStore) Create(ctx context.Context, id string, rec AccountRecord) error {
	return f.write(ctx, http.MethodPut, id, rec)
}

func (f *FirebaseStore) Load(ctx context.Context, id string) (AccountRecord, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, f.userURL(id), nil)
	if err != nil {
		return AccountRecord{}, fmt.Errorf("firebase: create request: %w", err)
	}

	resp, err := f.client().Do(req)
	if err != nil {
		return AccountRecord{}, fmt.Errorf("firebase: execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return AccountRecord{}, httpError(resp)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return AccountRecord{}, err
	}

	// The RTDB returns the literal "null" for a missing path.
	if strings.TrimSpace(string(body)) == "null" {
		return AccountRecord{}, ErrNotFound
	}

	var rec AccountRecord
	if err := json.Unmarshal(body, &rec); err != nil {
		return AccountRecord{}, fmt.Errorf("firebase: decode record: %w", err)
	}
	return rec, nil
}

func (f *FirebaseStore) UpdateLedger(ctx context.Context, id string, patch LedgerPatch) error {
	return f.write(ctx, http.MethodPatch, id, patch)
}

func (f *FirebaseStore) write(ctx context.Context, method, id string, body any) error {
	buf, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("firebase: marshal: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, method, f.userURL(id), bytes.NewReader(buf))
	if err != nil {
		return fmt.Errorf("firebase: create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := f.client().Do(req)
	if err != nil {
		return fmt.Errorf("firebase: execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return httpError(resp)
	}
	return nil
}

func (f *FirebaseStore) userURL(id string) string {
	u := strings.TrimRight(f.BaseURL, "/") + "/users/" + id + ".json"
	if f.Auth != "" {
		u += "?auth=" + f.Auth
	}
	return u
}

func (f *FirebaseStore) client() *http.Client {
	if f.HTTP != nil {
		return f.HTTP
	}
	return http.DefaultClient
}

func (f *FirebaseStore) Close() error { return nil }

func httpError(resp *http.Response) error {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, 4*1024))
	return fmt.Errorf("firebase: http %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
}
