package predictor

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log"
	"math"
	"net/http"
	"time"

	"mastery-service/internal/models"
)

// Model is the trained interval regressor. It takes the feature vector
// [latest_score, avg_score, attempts_count, days_since_last_attempt] and
// returns a predicted number of days until the next review.
type Model interface {
	Predict(ctx context.Context, features [4]float64) (float64, error)
}

// HTTPModel consumes the model artifact through a small inference endpoint.
type HTTPModel struct {
	url    string
	client *http.Client
}

func NewHTTPModel(url string, timeout time.Duration) *HTTPModel {
	return &HTTPModel{
		url:    url,
		client: &http.Client{Timeout: timeout},
	}
}

type predictRequest struct {
	Features [4]float64 `json:"features"`
}

type predictResponse struct {
	PredictedDays float64 `json:"predicted_days"`
}

func (m *HTTPModel) Predict(ctx context.Context, features [4]float64) (float64, error) {
	body, err := json.Marshal(predictRequest{Features: features})
	if err != nil {
		return 0, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, m.url, bytes.NewReader(body))
	if err != nil {
		return 0, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := m.client.Do(req)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return 0, fmt.Errorf("predictor returned status %d", resp.StatusCode)
	}

	var out predictResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return 0, err
	}
	return out.PredictedDays, nil
}

// Predictor computes the next review date for a profile. A nil model means no
// artifact was configured; the fallback heuristic applies then and on every
// model failure, so prediction can never abort the submission flow.
type Predictor struct {
	model Model
	now   func() time.Time
}

func NewPredictor(model Model) *Predictor {
	return &Predictor{model: model, now: time.Now}
}

// PredictNextReviewDate returns today plus the predicted interval. Model
// output is rounded to the nearest whole day and clamped at zero.
func (p *Predictor) PredictNextReviewDate(ctx context.Context, profile *models.MasteryProfile) time.Time {
	days := p.predictDays(ctx, profile)
	today := p.now().UTC().Truncate(24 * time.Hour)
	return today.AddDate(0, 0, days)
}

func (p *Predictor) predictDays(ctx context.Context, profile *models.MasteryProfile) int {
	if p.model == nil {
		return FallbackDays(profile.LatestScore)
	}

	features := [4]float64{
		profile.LatestScore,
		profile.AvgScore,
		float64(profile.AttemptsCount),
		profile.DaysSinceLastAttempt(p.now().UTC()),
	}
	predicted, err := p.model.Predict(ctx, features)
	if err != nil {
		log.Printf("[PREDICTOR] warning: model predict failed, using fallback: %v", err)
		return FallbackDays(profile.LatestScore)
	}

	days := int(math.Round(predicted))
	if days < 0 {
		days = 0
	}
	return days
}
