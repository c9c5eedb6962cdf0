package zapi

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSendTextSuccess(t *testing.T) {
	var gotPath, gotClientToken string
	var gotBody SendTextRequest

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotClientToken = r.Header.Get("Client-Token")
		json.NewDecoder(r.Body).Decode(&gotBody)
		json.NewEncoder(w).Encode(SendTextResponse{ZaapID: "z-1", MessageID: "m-1"})
	}))
	defer server.Close()

	client := NewClient(server.URL, "inst-1", "tok-1", "client-tok")
	err := client.SendText(context.Background(), "5511988887777", "Olá!")

	assert.NoError(t, err)
	assert.Equal(t, "/instances/inst-1/token/tok-1/send-text", gotPath)
	assert.Equal(t, "client-tok", gotClientToken)
	assert.Equal(t, "5511988887777", gotBody.Phone)
	assert.Equal(t, "Olá!", gotBody.Message)
}

// O provedor pode devolver HTTP 200 com erro no corpo.
func TestSendTextErrorInBodyDespite200(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(SendTextResponse{Error: "instance disconnected"})
	}))
	defer server.Close()

	client := NewClient(server.URL, "inst-1", "tok-1", "client-tok")
	err := client.SendText(context.Background(), "5511988887777", "Olá!")

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "instance disconnected")
}

func TestSendTextHTTPError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer server.Close()

	client := NewClient(server.URL, "inst-1", "tok-1", "client-tok")
	err := client.SendText(context.Background(), "5511988887777", "Olá!")

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "429")
}
