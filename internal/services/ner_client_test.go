package services

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNERClientRecognize(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/parse", r.URL.Path)

		var req nerRequest
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "Jane worked at Acme", req.Text)

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"entities":[{"text":"Jane","label":"PERSON"},{"text":"Acme","label":"ORG"}]}`))
	}))
	defer server.Close()

	entities, err := NewNERClient(server.URL, time.Second).Recognize(context.Background(), "Jane worked at Acme")

	require.NoError(t, err)
	assert.Equal(t, []Entity{{Text: "Jane", Label: "PERSON"}, {Text: "Acme", Label: "ORG"}}, entities)
}

func TestNERClientErrorStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	_, err := NewNERClient(server.URL, time.Second).Recognize(context.Background(), "text")

	assert.ErrorContains(t, err, "502")
}

func TestNERClientTimeout(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		time.Sleep(200 * time.Millisecond)
		w.Write([]byte(`{"entities":[]}`))
	}))
	defer server.Close()

	_, err := NewNERClient(server.URL, 20*time.Millisecond).Recognize(context.Background(), "text")

	assert.Error(t, err)
}
