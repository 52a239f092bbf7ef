package handlers

import (
	"net/http"

	"mindmap-backend/application/services"
	"mindmap-backend/domain/mindmap"
	"mindmap-backend/pkg/auth"
	"mindmap-backend/pkg/common"
	"mindmap-backend/pkg/errors"
	"mindmap-backend/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// MindMapHandler handles saved mind map HTTP requests
type MindMapHandler struct {
	mindmaps   *services.MindMapService
	errHandler *errors.ErrorHandler
	logger     *zap.Logger
}

// NewMindMapHandler creates a new mind map handler
func NewMindMapHandler(mindmaps *services.MindMapService, errHandler *errors.ErrorHandler, logger *zap.Logger) *MindMapHandler {
	return &MindMapHandler{
		mindmaps:   mindmaps,
		errHandler: errHandler,
		logger:     logger,
	}
}

// SaveMindMapRequest represents the request body for saving a mind map
type SaveMindMapRequest struct {
	Title      string                `json:"title" validate:"required,min=1,max=200"`
	SourceText string                `json:"sourceText" validate:"required"`
	Language   string                `json:"language,omitempty"`
	Keywords   []mindmap.ConceptNode `json:"keywords"`
}

// Save handles POST /mindmaps
func (h *MindMapHandler) Save(w http.ResponseWriter, r *http.Request) {
	user, err := auth.GetUserFromContext(r.Context())
	if err != nil {
		common.RespondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var req SaveMindMapRequest
	if err := common.ParseJSONBody(r, &req, 1<<20); err != nil {
		common.RespondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := utils.ValidateStruct(req); err != nil {
		common.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}

	saved, err := h.mindmaps.Save(r.Context(), user.UserID, services.SaveMindMapRequest{
		Title:      req.Title,
		SourceText: req.SourceText,
		Language:   req.Language,
		Keywords:   req.Keywords,
	})
	if err != nil {
		h.errHandler.Handle(w, r, err)
		return
	}

	common.RespondJSON(w, http.StatusCreated, saved)
}

// List handles GET /mindmaps
func (h *MindMapHandler) List(w http.ResponseWriter, r *http.Request) {
	user, err := auth.GetUserFromContext(r.Context())
	if err != nil {
		common.RespondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	maps, err := h.mindmaps.List(r.Context(), user.UserID)
	if err != nil {
		h.errHandler.Handle(w, r, err)
		return
	}

	common.RespondJSON(w, http.StatusOK, maps)
}

// Get handles GET /mindmaps/{mindmapID}
func (h *MindMapHandler) Get(w http.ResponseWriter, r *http.Request) {
	user, err := auth.GetUserFromContext(r.Context())
	if err != nil {
		common.RespondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	id := chi.URLParam(r, "mindmapID")
	m, err := h.mindmaps.Get(r.Context(), user.UserID, id)
	if err != nil {
		h.errHandler.Handle(w, r, err)
		return
	}

	common.RespondJSON(w, http.StatusOK, m)
}

// Delete handles DELETE /mindmaps/{mindmapID}
func (h *MindMapHandler) Delete(w http.ResponseWriter, r *http.Request) {
	user, err := auth.GetUserFromContext(r.Context())
	if err != nil {
		common.RespondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	id := chi.URLParam(r, "mindmapID")
	if err := h.mindmaps.Delete(r.Context(), user.UserID, id); err != nil {
		h.errHandler.Handle(w, r, err)
		return
	}

	h.logger.Debug("Mind map deleted", zap.String("mindmapID", id))
	w.WriteHeader(http.StatusNoContent)
}
