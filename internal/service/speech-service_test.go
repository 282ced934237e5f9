package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/MIJINYAWA664/ComUnity/internal/models"
)

func TestTranscriptionConfidenceFromSegments(t *testing.T) {
	transcription := &models.Transcription{
		Text: "hello there",
		Segments: []models.SpeechSegment{
			{Text: "hello", Confidence: 0.9},
			{Text: "there", Confidence: 0.7},
		},
	}

	if got := transcriptionConfidence(transcription); got != 0.8 {
		t.Errorf("Expected segment mean 0.8, got %.2f", got)
	}
}

func TestTranscriptionConfidenceTextFallback(t *testing.T) {
	testCases := []struct {
		name string
		text string
		want float64
	}{
		{"long clean text", "the weather is lovely today", 0.85},
		{"long text with artifacts", "the weather [music] today", 0.70},
		{"short text", "hello!", 0.70},
		{"very short text", "hi", 0.50},
		{"empty", "", 0.50},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := transcriptionConfidence(&models.Transcription{Text: tc.text})
			if got != tc.want {
				t.Errorf("Expected %.2f, got %.2f", tc.want, got)
			}
		})
	}
}

type fakeTranslator struct {
	failFor map[string]bool
}

func (f *fakeTranslator) Translate(_ context.Context, text, _, target string) (string, error) {
	if f.failFor[target] {
		return "", errors.New("model unavailable")
	}
	return "[" + target + "] " + text, nil
}

func TestTranslateAll(t *testing.T) {
	s := &SpeechService{Translator: &fakeTranslator{failFor: map[string]bool{"fr": true}}}

	translations := s.translateAll(context.Background(), "hello", "en", []string{"es", "fr", "en", "klingon"})

	// Spanish translates, French falls back to the original transcript,
	// the source language and unsupported codes are skipped entirely.
	if got := translations["es"]; got != "[es] hello" {
		t.Errorf("Expected Spanish translation, got %q", got)
	}
	if got := translations["fr"]; got != "hello" {
		t.Errorf("Expected French fallback to the original text, got %q", got)
	}
	if _, ok := translations["en"]; ok {
		t.Error("Expected the source language to be skipped")
	}
	if _, ok := translations["klingon"]; ok {
		t.Error("Expected unsupported languages to be skipped")
	}
	if len(translations) != 2 {
		t.Errorf("Expected 2 entries, got %d", len(translations))
	}
}

type fakeTranscriber struct {
	language   string
	confidence float64
	err        error
}

func (f *fakeTranscriber) Transcribe(context.Context, []byte, string) (*models.Transcription, error) {
	return nil, errors.New("not used")
}

func (f *fakeTranscriber) DetectLanguage(context.Context, []byte) (string, float64, error) {
	if f.err != nil {
		return "", 0, f.err
	}
	return f.language, f.confidence, nil
}

func TestDetectLanguage(t *testing.T) {
	testCases := []struct {
		name           string
		transcriber    *fakeTranscriber
		wantLanguage   string
		wantConfidence float64
	}{
		{"model answer", &fakeTranscriber{language: "de", confidence: 0.93}, "de", 0.93},
		{"missing confidence defaults", &fakeTranscriber{language: "es"}, "es", 0.8},
		{"failure falls back to english", &fakeTranscriber{err: errors.New("down")}, "en", 0.5},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			s := &SpeechService{Speech: tc.transcriber}
			language, confidence := s.DetectLanguage(context.Background(), []byte("audio"))
			if language != tc.wantLanguage {
				t.Errorf("Expected language %s, got %s", tc.wantLanguage, language)
			}
			if confidence != tc.wantConfidence {
				t.Errorf("Expected confidence %.2f, got %.2f", tc.wantConfidence, confidence)
			}
		})
	}
}

func TestSupportedLanguagesCover(t *testing.T) {
	expected := []string{"en", "es", "fr", "de", "it", "pt", "ru", "ja", "ko", "zh", "ar", "hi"}
	if len(models.SupportedLanguages) != len(expected) {
		t.Fatalf("Expected %d supported languages, got %d", len(expected), len(models.SupportedLanguages))
	}
	for _, code := range expected {
		name, ok := models.SupportedLanguages[code]
		if !ok {
			t.Errorf("Expected %s to be supported", code)
		}
		if strings.TrimSpace(name) == "" {
			t.Errorf("Expected %s to have a display name", code)
		}
	}
}
