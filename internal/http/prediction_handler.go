package http

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"admitpath/internal/service"
)

// Predictor es lo que el handler necesita del orquestador.
type Predictor interface {
	Predict(ctx context.Context, req service.PredictRequest) (service.PredictResponse, error)
	InvalidateProfile(ctx context.Context, profileID string) error
}

// PredictionHandler expone el motor de predicción al resto de la plataforma.
type PredictionHandler struct {
	logger    *zap.Logger
	predictor Predictor
}

func NewPredictionHandler(logger *zap.Logger, predictor Predictor) *PredictionHandler {
	return &PredictionHandler{logger: logger, predictor: predictor}
}

// Predict maneja POST /v1/predictions. La validación de forma ocurre acá,
// una sola vez: el core recibe un request ya tipado.
func (h *PredictionHandler) Predict(c *gin.Context) {
	var req struct {
		ProfileID    string   `json:"profile_id" binding:"required,uuid"`
		SchoolIDs    []string `json:"school_ids" binding:"required,min=1,max=10,dive,uuid"`
		ForceRefresh bool     `json:"force_refresh"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("request de predicción inválido", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	if claims, ok := GetAuthClaims(c); ok {
		h.logger.Info("predicción solicitada",
			zap.String("user_id", claims.UserID),
			zap.String("profile_id", req.ProfileID),
			zap.Int("schools", len(req.SchoolIDs)),
		)
	}

	resp, err := h.predictor.Predict(c.Request.Context(), service.PredictRequest{
		ProfileID:    req.ProfileID,
		SchoolIDs:    req.SchoolIDs,
		ForceRefresh: req.ForceRefresh,
	})
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// InvalidateProfile maneja DELETE /v1/predictions/:profileID, el hook que
// usa el servicio de perfiles al editar un perfil.
func (h *PredictionHandler) InvalidateProfile(c *gin.Context) {
	profileID := c.Param("profileID")
	if _, err := uuid.Parse(profileID); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}
	if claims, ok := GetAuthClaims(c); ok {
		h.logger.Info("invalidación solicitada",
			zap.String("user_id", claims.UserID),
			zap.String("profile_id", profileID),
		)
	}
	if err := h.predictor.InvalidateProfile(c.Request.Context(), profileID); err != nil {
		h.logger.Error("invalidación de cache falló", zap.String("profile_id", profileID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "invalidated"})
}

func (h *PredictionHandler) respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrNoSchools), errors.Is(err, service.ErrTooManySchools):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrProfileNotFound), errors.Is(err, service.ErrSchoolNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	default:
		h.logger.Error("predicción falló", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}
