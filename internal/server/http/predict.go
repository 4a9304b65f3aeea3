package http

import (
	"context"
	"errors"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/doda2025-team8/model-service/internal/service"
)

// Predictor classifies a single message.
type Predictor interface {
	Classify(ctx context.Context, sms string) (*service.Prediction, error)
}

type (
	PredictRequestDTO struct {
		SMS string `json:"sms,omitempty" doc:"Message to be classified" example:"This is an example of an SMS."`
	}

	PredictResponseDTO struct {
		Confidence *float64 `json:"confidence,omitempty" doc:"Probability of the predicted class, when the model reports one"`
		Result     string   `json:"result" doc:"The result of the classification: 'spam' or 'ham'"`
		Classifier string   `json:"classifier"`
		SMS        string   `json:"sms"`
	}
)

type (
	PredictInput struct {
		Body PredictRequestDTO `required:"false"`
	}

	PredictOutput struct {
		Body PredictResponseDTO
	}
)

// PredictHandler handles HTTP requests for classification.
type PredictHandler struct {
	predictor Predictor
}

// NewPredictHandler creates a new PredictHandler instance.
func NewPredictHandler(api huma.API, predictor Predictor) *PredictHandler {
	h := &PredictHandler{predictor: predictor}

	huma.Register(api, huma.Operation{
		OperationID:   "predict",
		Method:        http.MethodPost,
		Path:          "/predict",
		Summary:       "Predict whether an SMS is spam",
		Tags:          []string{"classifier"},
		DefaultStatus: http.StatusOK,
	}, h.handlePredict)

	return h
}

// handlePredict handles the predict operation.
func (h *PredictHandler) handlePredict(ctx context.Context, input *PredictInput) (*PredictOutput, error) {
	p, err := h.predictor.Classify(ctx, input.Body.SMS)
	if err != nil {
		if errors.Is(err, service.ErrEmptyMessage) {
			return nil, huma.Error400BadRequest("Missing required field: sms")
		}
		return nil, huma.Error500InternalServerError("Prediction failed", err)
	}

	return &PredictOutput{
		Body: PredictResponseDTO{
			Confidence: p.Confidence,
			Result:     p.Label,
			Classifier: p.Classifier,
			SMS:        p.SMS,
		},
	}, nil
}
