package store

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFirebaseLoad(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/users/acct-1.json", r.URL.Path)
		w.Write([]byte(`{
			"name": "Tester",
			"investmentAmount": 1000,
			"cash": 800,
			"coins": [{"name":"Bitcoin","short":"btc","image":"btc.png","amt":0.004}]
		}`))
	}))
	defer server.Close()

	f := NewFirebase(server.URL)

	rec, err := f.Load(context.Background(), "acct-1")
	require.NoError(t, err)
	assert.Equal(t, "Tester", rec.Name)
	assert.Equal(t, 1000.0, rec.InvestmentAmount)
	assert.Equal(t, 800.0, rec.Cash)
	require.Len(t, rec.Coins, 1)
	assert.Equal(t, Coin{Name: "Bitcoin", Short: "btc", Image: "btc.png", Amt: 0.004}, rec.Coins[0])
}

func TestFirebaseLoadMissingAccount(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// The RTDB answers "null" for a missing path.
		w.Write([]byte("null"))
	}))
	defer server.Close()

	f := NewFirebase(server.URL)

	_, err := f.Load(context.Background(), "nope")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestFirebaseUpdateLedgerUsesPatch(t *testing.T) {
	var method, path string
	var body []byte

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		method = r.Method
		path = r.URL.Path
		body, _ = io.ReadAll(r.Body)
		w.Write([]byte(`{}`))
	}))
	defer server.Close()

	f := NewFirebase(server.URL)

	err := f.UpdateLedger(context.Background(), "acct-1", LedgerPatch{
		InvestmentAmount: 1500,
		Cash:             700,
		Coins:            []Coin{{Name: "Ethereum", Short: "eth", Amt: 2}},
	})
	require.NoError(t, err)

	// PATCH merges only the named children; unrelated record fields survive.
	assert.Equal(t, http.MethodPatch, method)
	assert.Equal(t, "/users/acct-1.json", path)

	var sent map[string]any
	require.NoError(t, json.Unmarshal(body, &sent))
	assert.Equal(t, 700.0, sent["cash"])
	assert.Equal(t, 1500.0, sent["investmentAmount"])
	assert.NotContains(t, sent, "name")
}

func TestFirebaseCreateUsesPut(t *testing.T) {
	var method string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		method = r.Method
		w.Write([]byte(`{}`))
	}))
	defer server.Close()

	f := NewFirebase(server.URL)

	err := f.Create(context.Background(), "acct-1", AccountRecord{Name: "Tester", Cash: 1000})
	require.NoError(t, err)
	assert.Equal(t, http.MethodPut, method)
}

func TestFirebaseHTTPError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"permission denied"}`, http.StatusUnauthorized)
	}))
	defer server.Close()

	f := NewFirebase(server.URL)

	_, err := f.Load(context.Background(), "acct-1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "401")
}

func TestFirebaseAuthToken(t *testing.T) {
	var query string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		query = r.URL.RawQuery
		w.Write([]byte("null"))
	}))
	defer server.Close()

	f := NewFirebase(server.URL)
	f.Auth = "secret"

	f.Load(context.Background(), "acct-1")
	assert.Equal(t, "auth=secret", query)
}
