package whatsapp

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChatID(t *testing.T) {
	assert.Equal(t, "923152967579@c.us", ChatID("+92 315-2967579"))
	assert.Equal(t, "923152967579@c.us", ChatID("923152967579"))
	assert.Equal(t, "@c.us", ChatID("no digits"))
}

func TestSendText(t *testing.T) {
	var got struct {
		To   string `json:"to"`
		Body string `json:"body"`
	}
	var auth string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/messages/text", r.URL.Path)
		auth = r.Header.Get("Authorization")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	client := NewClient(server.URL, "token-123")
	err := client.SendText(context.Background(), "923152967579@c.us", "*NEW ORDER*")
	require.NoError(t, err)

	assert.Equal(t, "Bearer token-123", auth)
	assert.Equal(t, "923152967579@c.us", got.To)
	assert.Equal(t, "*NEW ORDER*", got.Body)
}

func TestSendTextGatewayError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	client := NewClient(server.URL, "token-123")
	err := client.SendText(context.Background(), "1@c.us", "hi")
	assert.Error(t, err)
}
