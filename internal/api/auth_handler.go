package api

import (
	"net/http"
	"strings"

	"github.com/JocaCola1972/Treinos-LevelUP/internal/domain"
	"github.com/JocaCola1972/Treinos-LevelUP/internal/service"
	"github.com/gin-gonic/gin"
)

// AuthHandler holds the authentication service dependency.
type AuthHandler struct {
	authService service.AuthService
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(authService service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// --- Request/Response Structs ---

type LookupRequest struct {
	Phone string `json:"phone" binding:"required"`
}

type LoginRequest struct {
	Phone    string `json:"phone" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// FirstPasswordRequest is sent by users created without a password.
// Confirm is optional.
type FirstPasswordRequest struct {
	Phone    string `json:"phone" binding:"required"`
	Password string `json:"password"`
	Confirm  string `json:"confirm"`
}

// UserResponse excludes the stored password.
type UserResponse struct {
	ID          string            `json:"id"`
	Name        string            `json:"name"`
	Role        domain.Role       `json:"role"`
	Level       domain.SkillLevel `json:"level,omitempty"`
	Avatar      string            `json:"avatar"`
	Phone       string            `json:"phone"`
	HasPassword bool              `json:"hasPassword"`
}

type LoginResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}

// --- Handler Methods ---

// Lookup godoc
// @Summary Start the login flow with a phone number
// @Description Tells the client whether to ask for the password or to create one.
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body LookupRequest true "Phone number"
// @Success 200 {object} service.LookupResult
// @Failure 404 {object} gin.H "Phone not registered"
// @Router /auth/lookup [post]
func (h *AuthHandler) Lookup(c *gin.Context) {
	var req LookupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	res, err := h.authService.Lookup(c.Request.Context(), strings.TrimSpace(req.Phone))
	if err != nil {
		respondWithServiceError(c, err, "An unexpected error occurred during login")
		return
	}
	c.JSON(http.StatusOK, res)
}

// Login godoc
// @Summary Log in with phone and password
// @Tags Auth
// @Accept json
// @Produce json
// @Param credentials body LoginRequest true "Login credentials"
// @Success 200 {object} LoginResponse "Login successful"
// @Failure 401 {object} gin.H "Wrong password"
// @Failure 404 {object} gin.H "Phone not registered"
// @Failure 409 {object} gin.H "No password set yet"
// @Router /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	token, user, err := h.authService.Login(c.Request.Context(), strings.TrimSpace(req.Phone), req.Password)
	if err != nil {
		respondWithServiceError(c, err, "Could not process login")
		return
	}
	c.JSON(http.StatusOK, LoginResponse{Token: token, User: MapUserToResponse(user)})
}

// FirstPassword godoc
// @Summary Create the password of a first-time user and log in
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body FirstPasswordRequest true "Phone and new password"
// @Success 200 {object} LoginResponse
// @Failure 400 {object} gin.H "Password too short or confirmation mismatch"
// @Failure 409 {object} gin.H "Password already set"
// @Router /auth/first-password [post]
func (h *AuthHandler) FirstPassword(c *gin.Context) {
	var req FirstPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	token, user, err := h.authService.CreateFirstPassword(c.Request.Context(), strings.TrimSpace(req.Phone), req.Password, req.Confirm)
	if err != nil {
		respondWithServiceError(c, err, "Could not process login")
		return
	}
	c.JSON(http.StatusOK, LoginResponse{Token: token, User: MapUserToResponse(user)})
}

// MapUserToResponse converts a domain User to a UserResponse DTO.
func MapUserToResponse(user *domain.User) UserResponse {
	if user == nil {
		return UserResponse{}
	}
	return UserResponse{
		ID:          user.ID,
		Name:        user.Name,
		Role:        user.Role,
		Level:       user.Level,
		Avatar:      user.Avatar,
		Phone:       user.Phone,
		HasPassword: user.HasPassword(),
	}
}

// MapUsersToResponse converts a slice of domain.User to UserResponse DTOs.
func MapUsersToResponse(users []domain.User) []UserResponse {
	out := make([]UserResponse, len(users))
	for i := range users {
		out[i] = MapUserToResponse(&users[i])
	}
	return out
}
