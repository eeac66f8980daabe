package middleware

import (
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestUploadLimit(t *testing.T) {
	var readErr error
	h := UploadLimit(8)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, readErr = io.ReadAll(r.Body)
		w.WriteHeader(http.StatusOK)
	}))

	tests := []struct {
		name       string
		body       string
		chunked    bool
		wantStatus int
		wantMaxErr bool
	}{
		{"under limit", "small", false, http.StatusOK, false},
		{"declared too large", "way too large body", false, http.StatusRequestEntityTooLarge, false},
		{"streamed too large", "way too large body", true, http.StatusOK, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			readErr = nil
			req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(tt.body))
			if tt.chunked {
				req.ContentLength = -1
			}
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)

			if rec.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
			var maxErr *http.MaxBytesError
			if got := errors.As(readErr, &maxErr); got != tt.wantMaxErr {
				t.Errorf("MaxBytesError = %v, want %v (err %v)", got, tt.wantMaxErr, readErr)
			}
		})
	}
}
