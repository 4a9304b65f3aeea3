package http

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/doda2025-team8/model-service/internal/model"
)

// ArtifactLister reports the acquisition state of artifacts.
type ArtifactLister interface {
	List() []model.ArtifactInstance
}

type ModelsOutput struct {
	Body struct {
		Artifacts []model.ArtifactInstance `json:"artifacts"`
	}
}

// ModelsHandler exposes the artifact registry.
type ModelsHandler struct {
	artifacts ArtifactLister
}

// NewModelsHandler creates a new ModelsHandler instance.
func NewModelsHandler(api huma.API, artifacts ArtifactLister) *ModelsHandler {
	h := &ModelsHandler{artifacts: artifacts}

	huma.Register(api, huma.Operation{
		OperationID: "list-models",
		Method:      http.MethodGet,
		Path:        "/models",
		Summary:     "List loaded model artifacts",
		Tags:        []string{"models"},
	}, h.handleList)

	return h
}

func (h *ModelsHandler) handleList(_ context.Context, _ *struct{}) (*ModelsOutput, error) {
	out := &ModelsOutput{}
	out.Body.Artifacts = h.artifacts.List()
	if out.Body.Artifacts == nil {
		out.Body.Artifacts = []model.ArtifactInstance{}
	}

	return out, nil
}
