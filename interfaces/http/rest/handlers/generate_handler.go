// Package handlers provides the HTTP handlers for generation and saved maps.
package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"mindmap-backend/application/services"
	"mindmap-backend/pkg/common"
	"mindmap-backend/pkg/errors"

	"go.uber.org/zap"
)

// GenerateHandler handles mind map generation requests
type GenerateHandler struct {
	generation *services.GenerationService
	errHandler *errors.ErrorHandler
	logger     *zap.Logger
}

// NewGenerateHandler creates a new generate handler
func NewGenerateHandler(generation *services.GenerationService, errHandler *errors.ErrorHandler, logger *zap.Logger) *GenerateHandler {
	return &GenerateHandler{
		generation: generation,
		errHandler: errHandler,
		logger:     logger,
	}
}

// GenerateRequest represents the request body for generating a mind map
type GenerateRequest struct {
	Text     string `json:"text"`
	Language string `json:"language"`
}

// Generate handles POST /mindmaps/generate. The response body is the result
// itself, {"title": ..., "keywords": [...]}, matching what the web client
// renders; errors are {"error": ...} with the status carrying the kind.
func (h *GenerateHandler) Generate(w http.ResponseWriter, r *http.Request) {
	var req GenerateRequest
	if err := common.ParseJSONBody(r, &req, 1<<20); err != nil {
		common.RespondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	// Checked here so an empty request never reaches the gateway.
	if strings.TrimSpace(req.Text) == "" {
		common.RespondError(w, http.StatusBadRequest, "Text is required")
		return
	}

	result, err := h.generation.Generate(r.Context(), services.GenerationRequest{
		Text:     req.Text,
		Language: req.Language,
	})
	if err != nil {
		h.errHandler.Handle(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(result)
}
