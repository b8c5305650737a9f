package api

import (
	"net/http"

	"github.com/JocaCola1972/Treinos-LevelUP/internal/service"
	"github.com/gin-gonic/gin"
)

type SessionHandler struct {
	sessionService service.SessionService
}

func NewSessionHandler(sessionService service.SessionService) *SessionHandler {
	return &SessionHandler{sessionService: sessionService}
}

// CompleteSessionRequest closes an active session. VideoURL takes a YouTube
// link or the videoRef returned by the upload endpoint.
type CompleteSessionRequest struct {
	VideoURL string `json:"youtubeUrl"`
	Notes    string `json:"notes"`
}

type VideoUploadRequest struct {
	ContentType string `json:"contentType" binding:"required"`
}

// Dashboard godoc
// @Summary Home screen data
// @Description The viewer's shifts, live sessions and completed sessions.
// @Tags Sessions
// @Produce json
// @Security BearerAuth
// @Success 200 {object} service.Dashboard
// @Router /dashboard [get]
func (h *SessionHandler) Dashboard(c *gin.Context) {
	userID, ok := viewerID(c)
	if !ok {
		return
	}
	dash, err := h.sessionService.Dashboard(c.Request.Context(), userID)
	if err != nil {
		respondWithServiceError(c, err, "Failed to load dashboard.")
		return
	}
	c.JSON(http.StatusOK, dash)
}

func (h *SessionHandler) ActiveSessions(c *gin.Context) {
	userID, ok := viewerID(c)
	if !ok {
		return
	}
	sessions, err := h.sessionService.ActiveSessions(c.Request.Context(), userID)
	if err != nil {
		respondWithServiceError(c, err, "Failed to retrieve sessions.")
		return
	}
	c.JSON(http.StatusOK, sessions)
}

func (h *SessionHandler) History(c *gin.Context) {
	userID, ok := viewerID(c)
	if !ok {
		return
	}
	sessions, err := h.sessionService.History(c.Request.Context(), userID)
	if err != nil {
		respondWithServiceError(c, err, "Failed to retrieve sessions.")
		return
	}
	c.JSON(http.StatusOK, sessions)
}

// Activate godoc
// @Summary Start a live session for a shift
// @Tags Sessions
// @Produce json
// @Security BearerAuth
// @Param id path string true "Shift ID"
// @Success 201 {object} domain.TrainingSession
// @Failure 404 {object} gin.H "Shift not found"
// @Router /shifts/{id}/sessions [post]
func (h *SessionHandler) Activate(c *gin.Context) {
	userID, ok := viewerID(c)
	if !ok {
		return
	}
	session, err := h.sessionService.Activate(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		respondWithServiceError(c, err, "Failed to start session.")
		return
	}
	c.JSON(http.StatusCreated, session)
}

func (h *SessionHandler) ConfirmAttendance(c *gin.Context) {
	userID, ok := viewerID(c)
	if !ok {
		return
	}
	session, err := h.sessionService.ConfirmAttendance(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		respondWithServiceError(c, err, "Failed to confirm attendance.")
		return
	}
	c.JSON(http.StatusOK, session)
}

// Complete godoc
// @Summary Close a live session
// @Description Stores notes, the optional video and an insight generated from the notes.
// @Tags Sessions
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Session ID"
// @Param body body CompleteSessionRequest true "Notes and video"
// @Success 200 {object} domain.TrainingSession
// @Failure 400 {object} gin.H "Notes missing"
// @Failure 409 {object} gin.H "Session is not active"
// @Router /sessions/{id}/complete [post]
func (h *SessionHandler) Complete(c *gin.Context) {
	userID, ok := viewerID(c)
	if !ok {
		return
	}
	var req CompleteSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	session, err := h.sessionService.Complete(c.Request.Context(), userID, c.Param("id"), service.CompleteInput{
		VideoURL: req.VideoURL,
		Notes:    req.Notes,
	})
	if err != nil {
		respondWithServiceError(c, err, "Failed to complete session.")
		return
	}
	c.JSON(http.StatusOK, session)
}

// RequestVideoUpload godoc
// @Summary Get a presigned URL to upload a session video
// @Tags Sessions
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Session ID"
// @Param body body VideoUploadRequest true "Content type (video/mp4, video/quicktime, video/webm)"
// @Success 200 {object} service.VideoUpload
// @Failure 503 {object} gin.H "Video storage not configured"
// @Router /sessions/{id}/video-upload [post]
func (h *SessionHandler) RequestVideoUpload(c *gin.Context) {
	userID, ok := viewerID(c)
	if !ok {
		return
	}
	var req VideoUploadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	upload, err := h.sessionService.RequestVideoUpload(c.Request.Context(), userID, c.Param("id"), req.ContentType)
	if err != nil {
		respondWithServiceError(c, err, "Failed to prepare upload.")
		return
	}
	c.JSON(http.StatusOK, upload)
}

func (h *SessionHandler) DeleteSession(c *gin.Context) {
	userID, ok := viewerID(c)
	if !ok {
		return
	}
	if err := h.sessionService.DeleteSession(c.Request.Context(), userID, c.Param("id")); err != nil {
		respondWithServiceError(c, err, "Failed to delete session.")
		return
	}
	c.Status(http.StatusNoContent)
}
