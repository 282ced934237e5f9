package inference

import (
	"context"
	"net/http"

	"github.com/MIJINYAWA664/ComUnity/internal/config"
	"github.com/MIJINYAWA664/ComUnity/internal/models"
)

// GestureClient talks to the hand-gesture model server. Frames travel as
// base64 because they arrive that way from browsers and leave unchanged.
type GestureClient struct {
	Client  *http.Client
	BaseURL string
	APIKey  string
}

func NewGestureClient(cfg *config.InferenceConfig) *GestureClient {
	return &GestureClient{
		Client:  &http.Client{Timeout: cfg.Timeout},
		BaseURL: cfg.GestureURL,
		APIKey:  cfg.APIKey,
	}
}

type predictRequest struct {
	FrameData string `json:"frame_data"`
}

func (g *GestureClient) Predict(ctx context.Context, frameData string) (*models.GesturePrediction, error) {
	var prediction models.GesturePrediction
	err := postJSON(ctx, g.Client, g.BaseURL+"/predict", g.APIKey, predictRequest{FrameData: frameData}, &prediction)
	if err != nil {
		return nil, err
	}
	return &prediction, nil
}

func (g *GestureClient) IsConnected() bool {
	resp, err := g.Client.Get(g.BaseURL + "/health")
	if err != nil {
		return false
	}
	defer resp.Body.Close()
	return resp.StatusCode == http.StatusOK
}
