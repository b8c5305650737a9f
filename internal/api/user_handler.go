package api

import (
	"net/http"

	"github.com/JocaCola1972/Treinos-LevelUP/internal/domain"
	"github.com/JocaCola1972/Treinos-LevelUP/internal/service"
	"github.com/gin-gonic/gin"
)

type UserHandler struct {
	userService service.UserService
}

func NewUserHandler(userService service.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// UpdateProfileRequest only changes the fields present in the body.
type UpdateProfileRequest struct {
	Name     *string            `json:"name"`
	Avatar   *string            `json:"avatar"`
	Level    *domain.SkillLevel `json:"level"`
	Password *string            `json:"password"`
}

type CreateUserRequest struct {
	Name     string            `json:"name" binding:"required"`
	Phone    string            `json:"phone" binding:"required"`
	Role     domain.Role       `json:"role"`
	Level    domain.SkillLevel `json:"level"`
	Avatar   string            `json:"avatar"`
	Password string            `json:"password"`
}

// GetMe returns the authenticated user's profile.
func (h *UserHandler) GetMe(c *gin.Context) {
	userID, ok := viewerID(c)
	if !ok {
		return
	}
	user, err := h.userService.Me(c.Request.Context(), userID)
	if err != nil {
		respondWithServiceError(c, err, "Failed to load profile.")
		return
	}
	c.JSON(http.StatusOK, MapUserToResponse(user))
}

// UpdateMe godoc
// @Summary Update the authenticated user's profile
// @Tags Users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param profile body UpdateProfileRequest true "Fields to change"
// @Success 200 {object} UserResponse
// @Failure 400 {object} gin.H "Empty name or password too short"
// @Router /me [put]
func (h *UserHandler) UpdateMe(c *gin.Context) {
	userID, ok := viewerID(c)
	if !ok {
		return
	}
	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	user, err := h.userService.UpdateProfile(c.Request.Context(), userID, service.ProfileUpdate{
		Name:     req.Name,
		Avatar:   req.Avatar,
		Level:    req.Level,
		Password: req.Password,
	})
	if err != nil {
		respondWithServiceError(c, err, "Failed to update profile.")
		return
	}
	c.JSON(http.StatusOK, MapUserToResponse(user))
}

func (h *UserHandler) ListUsers(c *gin.Context) {
	userID, ok := viewerID(c)
	if !ok {
		return
	}
	users, err := h.userService.ListUsers(c.Request.Context(), userID)
	if err != nil {
		respondWithServiceError(c, err, "Failed to retrieve users.")
		return
	}
	c.JSON(http.StatusOK, MapUsersToResponse(users))
}

// CreateUser godoc
// @Summary Register an athlete, coach or administrator
// @Description Users created without a password choose one on first login.
// @Tags Users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param user body CreateUserRequest true "User details"
// @Success 201 {object} UserResponse
// @Failure 400 {object} gin.H "Invalid input"
// @Failure 403 {object} gin.H "Not an administrator"
// @Failure 409 {object} gin.H "Phone already registered"
// @Router /users [post]
func (h *UserHandler) CreateUser(c *gin.Context) {
	userID, ok := viewerID(c)
	if !ok {
		return
	}
	var req CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	user, err := h.userService.CreateUser(c.Request.Context(), userID, service.NewUserInput{
		Name:     req.Name,
		Phone:    req.Phone,
		Role:     req.Role,
		Level:    req.Level,
		Avatar:   req.Avatar,
		Password: req.Password,
	})
	if err != nil {
		respondWithServiceError(c, err, "Failed to create user.")
		return
	}
	c.JSON(http.StatusCreated, MapUserToResponse(user))
}

func (h *UserHandler) DeleteUser(c *gin.Context) {
	userID, ok := viewerID(c)
	if !ok {
		return
	}
	if err := h.userService.DeleteUser(c.Request.Context(), userID, c.Param("id")); err != nil {
		respondWithServiceError(c, err, "Failed to delete user.")
		return
	}
	c.Status(http.StatusNoContent)
}
