package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"duckmail/internal/common"
)

func TestRequestOTP_SendsIdentifier(t *testing.T) {
	var gotPath, gotIdentifier, gotRequestID string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotRequestID = r.Header.Get(common.RequestIDHeaderName)
		var body struct {
			Identifier string `json:"identifier"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		gotIdentifier = body.Identifier
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	c := NewHTTPClient(srv.URL, 5*time.Second, nil)
	require.NoError(t, c.RequestOTP(context.Background(), "alice1"))
	require.Equal(t, "/auth/otp", gotPath)
	require.Equal(t, "alice1", gotIdentifier)
	require.NotEmpty(t, gotRequestID)
}

func TestLogin_DecodesUser(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/auth/login", r.URL.Path)
		var body struct {
			Identifier string `json:"identifier"`
			OTP        string `json:"otp"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		require.Equal(t, "alice1", body.Identifier)
		require.Equal(t, "123456", body.OTP)

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"user":{"access_token":"tok","cohort":"c1","email":"alice1@duck.com","username":"alice1"}}`))
	}))
	defer srv.Close()

	c := NewHTTPClient(srv.URL, 5*time.Second, nil)
	user, err := c.Login(context.Background(), "alice1", "123456")
	require.NoError(t, err)
	require.Equal(t, "tok", user.AccessToken)
	require.Equal(t, "c1", user.Cohort)
	require.Equal(t, "alice1@duck.com", user.Email)
	require.Equal(t, "alice1", user.Username)
}

func TestLogin_Unauthorized(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	c := NewHTTPClient(srv.URL, 5*time.Second, nil)
	_, err := c.Login(context.Background(), "alice1", "000000")
	require.Error(t, err)
	require.ErrorIs(t, err, common.ErrorUnauthorized)

	se := AsStatusError(err)
	require.NotNil(t, se)
	require.Equal(t, 401, se.Code)
}

func TestDoJSON_StatusErrorFormatting(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := NewHTTPClient(srv.URL, 5*time.Second, nil)
	err := c.Ping(context.Background())
	require.Error(t, err)

	se := AsStatusError(err)
	require.NotNil(t, se)
	require.Equal(t, 500, se.Code)
	require.Equal(t, "Internal Server Error", se.Text)
	require.Equal(t, "500 - Internal Server Error", se.Error())
	require.False(t, errors.Is(err, common.ErrorUnauthorized))
}

func TestDoJSON_TransportError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // connection refused from here on

	c := NewHTTPClient(srv.URL, time.Second, nil)
	err := c.Ping(context.Background())
	require.Error(t, err)
	require.ErrorIs(t, err, common.ErrorUnavailable)
	require.Nil(t, AsStatusError(err))
}

func TestGenerateAlias_SendsBearerToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/addresses", r.URL.Path)
		require.Equal(t, "Bearer tok", r.Header.Get(common.AuthHeaderName))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"address":"xyz123@duck.com"}`))
	}))
	defer srv.Close()

	c := NewHTTPClient(srv.URL, 5*time.Second, nil)
	addr, err := c.GenerateAlias(context.Background(), "tok")
	require.NoError(t, err)
	require.Equal(t, "xyz123@duck.com", addr)
}

func TestClose_Idempotent(t *testing.T) {
	c := NewHTTPClient("http://127.0.0.1:0", 0, nil)
	require.NoError(t, c.Close())
	require.NoError(t, c.Close())
}
