package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestRespondWithError(t *testing.T) {
	tests := []struct {
		name           string
		code           int
		message        string
		expectedStatus int
	}{
		{
			name:           "bad request error",
			code:           http.StatusBadRequest,
			message:        "Invalid report name",
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "not found error",
			code:           http.StatusNotFound,
			message:        "Report not found",
			expectedStatus: http.StatusNotFound,
		},
		{
			name:           "internal server error",
			code:           http.StatusInternalServerError,
			message:        "Internal server error",
			expectedStatus: http.StatusInternalServerError,
		},
		{
			name:           "empty error message",
			code:           http.StatusBadRequest,
			message:        "",
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := httptest.NewRecorder()

			RespondWithError(rr, tt.code, tt.message)

			if rr.Code != tt.expectedStatus {
				t.Errorf("Expected status %d, got %d", tt.expectedStatus, rr.Code)
			}

			if ct := rr.Header().Get("Content-Type"); ct != "application/json; charset=utf-8" {
				t.Errorf("Expected Content-Type application/json; charset=utf-8, got %s", ct)
			}

			var response map[string]string
			if err := json.Unmarshal(rr.Body.Bytes(), &response); err != nil {
				t.Errorf("Failed to unmarshal JSON: %v", err)
			}

			if errorMsg, ok := response["error"]; !ok || errorMsg != tt.message {
				t.Errorf("Expected error message %q, got %q", tt.message, errorMsg)
			}
		})
	}
}

func TestRespondWithJSON(t *testing.T) {
	rr := httptest.NewRecorder()

	RespondWithJSON(rr, http.StatusOK, map[string]any{"count": 3})

	if rr.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", rr.Code)
	}
	if ct := rr.Header().Get("Content-Type"); ct != "application/json; charset=utf-8" {
		t.Errorf("Expected JSON content type, got %s", ct)
	}
	if lm := rr.Header().Get("Last-Modified"); lm == "" {
		t.Error("Expected Last-Modified header to be set")
	}

	var response map[string]float64
	if err := json.Unmarshal(rr.Body.Bytes(), &response); err != nil {
		t.Fatalf("Failed to unmarshal JSON: %v", err)
	}
	if response["count"] != 3 {
		t.Errorf("Expected count 3, got %v", response["count"])
	}
}

func TestRespondWithJSONMarshalFailure(t *testing.T) {
	rr := httptest.NewRecorder()

	// Channels cannot be marshalled, the handler must fail with a 500.
	RespondWithJSON(rr, http.StatusOK, map[string]any{"bad": make(chan int)})

	if rr.Code != http.StatusInternalServerError {
		t.Errorf("Expected status 500 on marshal failure, got %d", rr.Code)
	}
}
