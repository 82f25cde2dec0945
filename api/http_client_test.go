package api

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestHTTPClient_Download_Success(t *testing.T) {
	// Mock server setup
	mockServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/export" {
			t.Errorf("Expected endpoint '/export', got '%s'", r.URL.Path)
		}
		if r.Header.Get("User-Agent") != "schedule-server" {
			t.Errorf("Expected User-Agent header, got '%s'", r.Header.Get("User-Agent"))
		}

		w.WriteHeader(http.StatusOK)
		w.Write([]byte("workbook-bytes"))
	}))
	defer mockServer.Close()

	// Test setup
	client := NewHTTPClient(mockServer.URL, 5*time.Second)

	// Act
	body, err := client.Download(context.Background(), "/export", map[string]string{"User-Agent": "schedule-server"})

	// Assert
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if string(body) != "workbook-bytes" {
		t.Errorf("Expected body 'workbook-bytes', got '%s'", body)
	}
}

func TestHTTPClient_Download_Failure(t *testing.T) {
	// Mock server setup
	mockServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`not found`))
	}))
	defer mockServer.Close()

	// Test setup
	client := NewHTTPClient(mockServer.URL, 5*time.Second)

	// Act
	_, err := client.Download(context.Background(), "/export", nil)

	// Assert
	if err == nil {
		t.Fatalf("Expected an error, got nil")
	}

	expectedError := "unexpected status code: 404 Not Found"
	if err.Error() != expectedError {
		t.Errorf("Expected error '%s', got '%s'", expectedError, err.Error())
	}

	var statusErr *StatusError
	if !errors.As(err, &statusErr) || statusErr.StatusCode != http.StatusNotFound {
		t.Errorf("Expected StatusError with 404, got %v", err)
	}
}

func TestHTTPClient_Download_BodyLimit(t *testing.T) {
	mockServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("0123456789"))
	}))
	defer mockServer.Close()

	client := NewHTTPClient(mockServer.URL, 5*time.Second)
	client.MaxBodyBytes = 4

	if _, err := client.Download(context.Background(), "", nil); err == nil {
		t.Fatalf("Expected an error for oversized body, got nil")
	}
}

func TestHTTPClient_Download_Cancelled(t *testing.T) {
	mockServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("late"))
	}))
	defer mockServer.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	client := NewHTTPClient(mockServer.URL, 5*time.Second)
	if _, err := client.Download(ctx, "", nil); !errors.Is(err, context.Canceled) {
		t.Errorf("Expected context.Canceled, got %v", err)
	}
}
