package provider

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

type nopLogger struct{}

func (nopLogger) Info(string, map[string]interface{})  {}
func (nopLogger) Error(string, map[string]interface{}) {}
func (nopLogger) Debug(string, map[string]interface{}) {}
func (nopLogger) Warn(string, map[string]interface{})  {}

func TestIsProvider(t *testing.T) {
	t.Run("true from upstream", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/providers/check/42", r.URL.Path)
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`{"isProvider":true}`))
		}))
		defer server.Close()

		client := NewClient(server.URL, nopLogger{})
		assert.True(t, client.IsProvider(context.Background(), 42))
	})

	t.Run("false from upstream", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"isProvider":false}`))
		}))
		defer server.Close()

		client := NewClient(server.URL, nopLogger{})
		assert.False(t, client.IsProvider(context.Background(), 42))
	})

	t.Run("non-200 degrades to false", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		}))
		defer server.Close()

		client := NewClient(server.URL, nopLogger{})
		assert.False(t, client.IsProvider(context.Background(), 42))
	})

	t.Run("malformed body degrades to false", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{`))
		}))
		defer server.Close()

		client := NewClient(server.URL, nopLogger{})
		assert.False(t, client.IsProvider(context.Background(), 42))
	})

	t.Run("unreachable upstream degrades to false", func(t *testing.T) {
		client := NewClient("http://127.0.0.1:1", nopLogger{})
		assert.False(t, client.IsProvider(context.Background(), 42))
	})

	t.Run("unconfigured base url means false", func(t *testing.T) {
		client := NewClient("", nopLogger{})
		assert.False(t, client.IsProvider(context.Background(), 42))
	})
}
