package api

import (
	"errors"
	"log"
	"net/http"

	"github.com/JocaCola1972/Treinos-LevelUP/internal/domain"
	"github.com/JocaCola1972/Treinos-LevelUP/internal/service"
	"github.com/JocaCola1972/Treinos-LevelUP/internal/storage"
	"github.com/gin-gonic/gin"
)

// Messages the login screen shows verbatim.
const (
	msgPhoneNotRegistered = "Número não registado na plataforma."
	msgBadCredentials     = "Credenciais incorretas."
	msgPasswordTooShort   = "A password deve ter pelo menos 4 caracteres."
)

// statusFor maps service and domain errors to HTTP status codes.
func statusFor(err error) int {
	switch {
	case service.IsValidationError(err):
		return http.StatusBadRequest
	case errors.Is(err, service.ErrAuthenticationFailed):
		return http.StatusUnauthorized
	case errors.Is(err, service.ErrForbidden),
		errors.Is(err, service.ErrNotEnrolled):
		return http.StatusForbidden
	case errors.Is(err, service.ErrPhoneNotRegistered),
		errors.Is(err, service.ErrUserNotFound),
		errors.Is(err, service.ErrShiftNotFound),
		errors.Is(err, service.ErrSessionNotFound):
		return http.StatusNotFound
	case errors.Is(err, service.ErrPasswordNotSet),
		errors.Is(err, service.ErrPasswordAlreadySet),
		errors.Is(err, service.ErrPhoneTaken),
		errors.Is(err, service.ErrCannotDeleteSelf),
		errors.Is(err, domain.ErrSessionCompleted),
		errors.Is(err, domain.ErrSessionNotActive):
		return http.StatusConflict
	case errors.Is(err, storage.ErrStorageDisabled):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// messageFor returns the text sent to the client for err.
func messageFor(err error) string {
	switch {
	case errors.Is(err, service.ErrPhoneNotRegistered):
		return msgPhoneNotRegistered
	case errors.Is(err, service.ErrAuthenticationFailed):
		return msgBadCredentials
	case errors.Is(err, domain.ErrPasswordTooShort):
		return msgPasswordTooShort
	}
	return err.Error()
}

// respondWithServiceError aborts with the status matching err. Unexpected
// errors are logged and replaced by fallback.
func respondWithServiceError(c *gin.Context, err error, fallback string) {
	code := statusFor(err)
	if code == http.StatusInternalServerError {
		log.Printf("ERROR: %s %s: %v", c.Request.Method, c.FullPath(), err)
		abortWithError(c, code, fallback)
		return
	}
	abortWithError(c, code, messageFor(err))
}
