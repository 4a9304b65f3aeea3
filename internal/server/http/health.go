package http

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
)

// ServiceName identifies this service in health responses.
const ServiceName = "sms-spam-classifier"

type (
	HealthResponseDTO struct {
		Status  string `json:"status" example:"healthy"`
		Service string `json:"service" example:"sms-spam-classifier"`
		Port    int    `json:"port" example:"8081"`
	}

	InfoResponseDTO struct {
		Endpoints map[string]string `json:"endpoints"`
		Service   string            `json:"service"`
		Version   string            `json:"version"`
	}
)

type (
	HealthOutput struct {
		Body HealthResponseDTO
	}

	InfoOutput struct {
		Body InfoResponseDTO
	}
)

// HealthHandler serves liveness and service information.
type HealthHandler struct {
	port    int
	version string
}

// NewHealthHandler creates a new HealthHandler instance.
func NewHealthHandler(api huma.API, port int, version string) *HealthHandler {
	h := &HealthHandler{port: port, version: version}

	huma.Register(api, huma.Operation{
		OperationID: "health",
		Method:      http.MethodGet,
		Path:        "/health",
		Summary:     "Health check",
		Tags:        []string{"service"},
	}, h.handleHealth)

	huma.Register(api, huma.Operation{
		OperationID: "info",
		Method:      http.MethodGet,
		Path:        "/",
		Summary:     "Service information",
		Tags:        []string{"service"},
	}, h.handleInfo)

	return h
}

func (h *HealthHandler) handleHealth(_ context.Context, _ *struct{}) (*HealthOutput, error) {
	return &HealthOutput{
		Body: HealthResponseDTO{
			Status:  "healthy",
			Service: ServiceName,
			Port:    h.port,
		},
	}, nil
}

func (h *HealthHandler) handleInfo(_ context.Context, _ *struct{}) (*InfoOutput, error) {
	return &InfoOutput{
		Body: InfoResponseDTO{
			Service: "SMS Spam Detection Model Service",
			Version: h.version,
			Endpoints: map[string]string{
				"health":  "/health",
				"predict": "/predict (POST)",
				"models":  "/models",
				"docs":    "/docs",
			},
		},
	}, nil
}
