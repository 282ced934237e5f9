package inference

import (
	"context"
	"encoding/base64"
	"net/http"

	"github.com/MIJINYAWA664/ComUnity/internal/config"
	"github.com/MIJINYAWA664/ComUnity/internal/models"
)

// SpeechClient talks to the speech-to-text model server.
type SpeechClient struct {
	Client  *http.Client
	BaseURL string
	APIKey  string
}

func NewSpeechClient(cfg *config.InferenceConfig) *SpeechClient {
	return &SpeechClient{
		Client:  &http.Client{Timeout: cfg.Timeout},
		BaseURL: cfg.SpeechURL,
		APIKey:  cfg.APIKey,
	}
}

type transcribeRequest struct {
	AudioData string `json:"audio_data"`
	Language  string `json:"language"`
}

type detectRequest struct {
	AudioData string `json:"audio_data"`
}

type detectResponse struct {
	Language   string  `json:"language"`
	Confidence float64 `json:"confidence"`
}

// Transcribe sends raw audio bytes for transcription. language "auto"
// lets the model decide.
func (s *SpeechClient) Transcribe(ctx context.Context, audio []byte, language string) (*models.Transcription, error) {
	payload := transcribeRequest{
		AudioData: base64.StdEncoding.EncodeToString(audio),
		Language:  language,
	}

	var transcription models.Transcription
	if err := postJSON(ctx, s.Client, s.BaseURL+"/transcribe", s.APIKey, payload, &transcription); err != nil {
		return nil, err
	}
	return &transcription, nil
}

func (s *SpeechClient) DetectLanguage(ctx context.Context, audio []byte) (string, float64, error) {
	payload := detectRequest{AudioData: base64.StdEncoding.EncodeToString(audio)}

	var detected detectResponse
	if err := postJSON(ctx, s.Client, s.BaseURL+"/detect-language", s.APIKey, payload, &detected); err != nil {
		return "", 0, err
	}
	return detected.Language, detected.Confidence, nil
}

func (s *SpeechClient) IsConnected() bool {
	resp, err := s.Client.Get(s.BaseURL + "/health")
	if err != nil {
		return false
	}
	defer resp.Body.Close()
	return resp.StatusCode == http.StatusOK
}
