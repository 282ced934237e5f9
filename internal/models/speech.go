package models

import "time"

// SupportedLanguages maps language codes accepted for transcription and
// translation to display names.
var SupportedLanguages = map[string]string{
	"en": "English",
	"es": "Spanish",
	"fr": "French",
	"de": "German",
	"it": "Italian",
	"pt": "Portuguese",
	"ru": "Russian",
	"ja": "Japanese",
	"ko": "Korean",
	"zh": "Chinese",
	"ar": "Arabic",
	"hi": "Hindi",
}

type TranscriptionResult struct {
	Transcript       string            `json:"transcript"`
	Confidence       float64           `json:"confidence"`
	Language         string            `json:"language"`
	Timestamp        time.Time         `json:"timestamp"`
	ProcessingTimeMs float64           `json:"processing_time_ms"`
	Translations     map[string]string `json:"translations,omitempty"`
	SpeakerID        string            `json:"speaker_id,omitempty"`
}

// SpeechSegment is one scored span of a provider transcription; segment
// confidences feed the overall confidence estimate.
type SpeechSegment struct {
	Text       string  `json:"text"`
	Start      float64 `json:"start"`
	End        float64 `json:"end"`
	Confidence float64 `json:"confidence"`
}

// Transcription is the raw provider output before history bookkeeping.
type Transcription struct {
	Text     string          `json:"text"`
	Language string          `json:"language"`
	Segments []SpeechSegment `json:"segments"`
}
