package inference

import (
	"context"
	"net/http"

	"github.com/MIJINYAWA664/ComUnity/internal/config"
)

// TranslateClient talks to the text translation model server.
type TranslateClient struct {
	Client  *http.Client
	BaseURL string
	APIKey  string
}

func NewTranslateClient(cfg *config.InferenceConfig) *TranslateClient {
	return &TranslateClient{
		Client:  &http.Client{Timeout: cfg.Timeout},
		BaseURL: cfg.TranslateURL,
		APIKey:  cfg.APIKey,
	}
}

type translateRequest struct {
	Text           string `json:"text"`
	SourceLanguage string `json:"source_language"`
	TargetLanguage string `json:"target_language"`
}

type translateResponse struct {
	TranslatedText string `json:"translated_text"`
}

func (t *TranslateClient) Translate(ctx context.Context, text, sourceLanguage, targetLanguage string) (string, error) {
	payload := translateRequest{
		Text:           text,
		SourceLanguage: sourceLanguage,
		TargetLanguage: targetLanguage,
	}

	var translated translateResponse
	if err := postJSON(ctx, t.Client, t.BaseURL+"/translate", t.APIKey, payload, &translated); err != nil {
		return "", err
	}
	return translated.TranslatedText, nil
}
