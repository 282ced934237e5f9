package handlers

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func postJSON(t *testing.T, handler gin.HandlerFunc, body string) *httptest.ResponseRecorder {
	t.Helper()
	r := gin.New()
	r.POST("/x", handler)
	req := httptest.NewRequest(http.MethodPost, "/x", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func postMultipart(t *testing.T, handler gin.HandlerFunc, fields map[string]string, fileField string) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for k, v := range fields {
		if err := mw.WriteField(k, v); err != nil {
			t.Fatalf("WriteField(%s): %v", k, err)
		}
	}
	if fileField != "" {
		fw, err := mw.CreateFormFile(fileField, "payload.bin")
		if err != nil {
			t.Fatalf("CreateFormFile: %v", err)
		}
		if _, err := fw.Write([]byte("data")); err != nil {
			t.Fatalf("Write: %v", err)
		}
	}
	mw.Close()

	r := gin.New()
	r.POST("/x", handler)
	req := httptest.NewRequest(http.MethodPost, "/x", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("Failed to decode response body: %v", err)
	}
	return body
}

func TestStartSessionRejectsMissingUserID(t *testing.T) {
	h := &SignHandler{}
	w := postJSON(t, h.StartSession, `{"session_type":"practice"}`)
	if w.Code != http.StatusBadRequest {
		t.Errorf("Expected 400, got %d", w.Code)
	}
}

func TestProcessFrameRequiresSessionID(t *testing.T) {
	h := &SignHandler{}
	w := postMultipart(t, h.ProcessFrame, nil, "frame")
	if w.Code != http.StatusBadRequest {
		t.Errorf("Expected 400, got %d", w.Code)
	}
	body := decodeBody(t, w)
	if body["error"] != "session_id is required" {
		t.Errorf("Unexpected error message: %v", body["error"])
	}
}

func TestProcessFrameRequiresFrame(t *testing.T) {
	h := &SignHandler{}
	w := postMultipart(t, h.ProcessFrame, map[string]string{"session_id": "session_u1_1"}, "")
	if w.Code != http.StatusBadRequest {
		t.Errorf("Expected 400, got %d", w.Code)
	}
	body := decodeBody(t, w)
	if body["error"] != "Frame image is required" {
		t.Errorf("Unexpected error message: %v", body["error"])
	}
}

func TestEndSessionRejectsMissingSessionID(t *testing.T) {
	h := &SignHandler{}
	w := postJSON(t, h.EndSession, `{}`)
	if w.Code != http.StatusBadRequest {
		t.Errorf("Expected 400, got %d", w.Code)
	}
}

func TestAnalyzeSessionRejectsMissingFields(t *testing.T) {
	h := &LearningHandler{}

	tests := []struct {
		name string
		body string
	}{
		{"missing user_id", `{"lesson_id":"l1","start_time":"2026-08-20T10:00:00Z"}`},
		{"missing lesson_id", `{"user_id":"u1","start_time":"2026-08-20T10:00:00Z"}`},
		{"missing start_time", `{"user_id":"u1","lesson_id":"l1"}`},
		{"invalid json", `{`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := postJSON(t, h.AnalyzeSession, tt.body)
			if w.Code != http.StatusBadRequest {
				t.Errorf("Expected 400, got %d", w.Code)
			}
		})
	}
}

func TestAdaptDifficultyBadRequestStillOK(t *testing.T) {
	h := &LearningHandler{}
	w := postJSON(t, h.AdaptDifficulty, `{"accuracy":0.5}`)
	if w.Code != http.StatusOK {
		t.Errorf("Expected 200, got %d", w.Code)
	}
	body := decodeBody(t, w)
	if body["adapted"] != false {
		t.Errorf("Expected adapted=false, got %v", body["adapted"])
	}
	if body["error"] != "Invalid request format" {
		t.Errorf("Unexpected error message: %v", body["error"])
	}
}

func TestTranscribeRequiresAudio(t *testing.T) {
	h := &SpeechHandler{}
	w := postMultipart(t, h.Transcribe, map[string]string{"language": "en"}, "")
	if w.Code != http.StatusBadRequest {
		t.Errorf("Expected 400, got %d", w.Code)
	}
}

func TestRealTimeTranscribeRequiresSessionID(t *testing.T) {
	h := &SpeechHandler{}
	w := postMultipart(t, h.RealTimeTranscribe, nil, "audio_chunk")
	if w.Code != http.StatusBadRequest {
		t.Errorf("Expected 400, got %d", w.Code)
	}
	body := decodeBody(t, w)
	if body["error"] != "session_id is required" {
		t.Errorf("Unexpected error message: %v", body["error"])
	}
}

func TestDetectLanguageRequiresAudio(t *testing.T) {
	h := &SpeechHandler{}
	w := postMultipart(t, h.DetectLanguage, nil, "")
	if w.Code != http.StatusBadRequest {
		t.Errorf("Expected 400, got %d", w.Code)
	}
}

func TestSplitLanguages(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want []string
	}{
		{"empty", "", nil},
		{"single", "es", []string{"es"}},
		{"multiple", "es,fr,de", []string{"es", "fr", "de"}},
		{"spaces and empties", " es , ,fr,", []string{"es", "fr"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := splitLanguages(tt.raw)
			if len(got) != len(tt.want) {
				t.Fatalf("Expected %d languages, got %d", len(tt.want), len(got))
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("Language %d: expected %q, got %q", i, tt.want[i], got[i])
				}
			}
		})
	}
}
