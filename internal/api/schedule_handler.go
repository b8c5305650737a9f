package api

import (
	"net/http"

	"github.com/JocaCola1972/Treinos-LevelUP/internal/domain"
	"github.com/JocaCola1972/Treinos-LevelUP/internal/service"
	"github.com/gin-gonic/gin"
)

type ScheduleHandler struct {
	scheduleService service.ScheduleService
}

func NewScheduleHandler(scheduleService service.ScheduleService) *ScheduleHandler {
	return &ScheduleHandler{scheduleService: scheduleService}
}

// CreateShiftRequest carries the "schedule a training" form. Recurrence and
// startDate default to SEMANAL and today.
type CreateShiftRequest struct {
	DayOfWeek       string                `json:"dayOfWeek" binding:"required"`
	StartTime       string                `json:"startTime" binding:"required"`
	DurationMinutes int                   `json:"durationMinutes" binding:"required"`
	StudentIDs      []string              `json:"studentIds"`
	Recurrence      domain.RecurrenceType `json:"recurrence"`
	StartDate       string                `json:"startDate"`
	Level           domain.SkillLevel     `json:"level"`
}

// ListShifts godoc
// @Summary List the viewer's shifts
// @Description Students only receive the shifts they are enrolled in.
// @Tags Shifts
// @Produce json
// @Security BearerAuth
// @Success 200 {array} service.ShiftView
// @Router /shifts [get]
func (h *ScheduleHandler) ListShifts(c *gin.Context) {
	userID, ok := viewerID(c)
	if !ok {
		return
	}
	shifts, err := h.scheduleService.ListShifts(c.Request.Context(), userID)
	if err != nil {
		respondWithServiceError(c, err, "Failed to retrieve shifts.")
		return
	}
	c.JSON(http.StatusOK, shifts)
}

// CreateShift godoc
// @Summary Schedule a new training shift
// @Tags Shifts
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param shift body CreateShiftRequest true "Shift details"
// @Success 201 {object} domain.Shift
// @Failure 400 {object} gin.H "Invalid day, time, duration, recurrence or date"
// @Failure 403 {object} gin.H "Students cannot schedule"
// @Router /shifts [post]
func (h *ScheduleHandler) CreateShift(c *gin.Context) {
	userID, ok := viewerID(c)
	if !ok {
		return
	}
	var req CreateShiftRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	shift, err := h.scheduleService.CreateShift(c.Request.Context(), userID, service.ShiftInput{
		DayOfWeek:       req.DayOfWeek,
		StartTime:       req.StartTime,
		DurationMinutes: req.DurationMinutes,
		StudentIDs:      req.StudentIDs,
		Recurrence:      req.Recurrence,
		StartDate:       req.StartDate,
		Level:           req.Level,
	})
	if err != nil {
		respondWithServiceError(c, err, "Failed to create shift.")
		return
	}
	c.JSON(http.StatusCreated, shift)
}

func (h *ScheduleHandler) DeleteShift(c *gin.Context) {
	userID, ok := viewerID(c)
	if !ok {
		return
	}
	if err := h.scheduleService.DeleteShift(c.Request.Context(), userID, c.Param("id")); err != nil {
		respondWithServiceError(c, err, "Failed to delete shift.")
		return
	}
	c.Status(http.StatusNoContent)
}
