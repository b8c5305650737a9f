package api

import (
	"net/http"

	"github.com/JocaCola1972/Treinos-LevelUP/internal/service"
	"github.com/gin-gonic/gin"
)

type CoachingHandler struct {
	coachingService service.CoachingService
}

func NewCoachingHandler(coachingService service.CoachingService) *CoachingHandler {
	return &CoachingHandler{coachingService: coachingService}
}

type TipsResponse struct {
	Tips string `json:"tips"`
}

// Tips returns motivational tips for the viewer, tuned to their level.
// The optional "focus" query parameter defaults to padel in general.
func (h *CoachingHandler) Tips(c *gin.Context) {
	userID, ok := viewerID(c)
	if !ok {
		return
	}
	tips, err := h.coachingService.Tips(c.Request.Context(), userID, c.Query("focus"))
	if err != nil {
		respondWithServiceError(c, err, "Failed to load tips.")
		return
	}
	c.JSON(http.StatusOK, TipsResponse{Tips: tips})
}
