package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/lshigami/schooltest/internal/apperr"
	"github.com/lshigami/schooltest/internal/auth"
	"github.com/lshigami/schooltest/internal/dto"
	"github.com/rs/zerolog/log"
)

// RespondError writes err as a dto.ErrorResponse with the status of its kind.
func RespondError(ctx *gin.Context, handler string, err error) {
	kind := apperr.KindOf(err)
	status := apperr.HTTPStatus(kind)
	switch {
	case kind == apperr.KindIntegrityFault:
		log.Error().Err(err).Bool("defect", true).Str("handler", handler).Msg("Integrity fault")
	case status >= http.StatusInternalServerError:
		log.Error().Err(err).Str("handler", handler).Msg("Service error")
	default:
		log.Warn().Err(err).Str("handler", handler).Str("code", string(kind)).Msg("Request rejected")
	}
	message := err.Error()
	if status >= http.StatusInternalServerError {
		message = "Internal server error"
	}
	ctx.JSON(status, dto.ErrorResponse{Message: message, Code: string(kind)})
}

func BadRequest(ctx *gin.Context, handler string, err error) {
	log.Warn().Err(err).Str("handler", handler).Msg("Failed to bind request")
	ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
		Message: "Invalid request body",
		Code:    string(apperr.KindInvalidArgument),
		Details: []string{err.Error()},
	})
}

// Principal returns the caller set by auth.RequireAuth, writing 401 if absent.
func Principal(ctx *gin.Context) (auth.Principal, bool) {
	p, ok := auth.FromGin(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{Message: "missing principal", Code: "unauthenticated"})
	}
	return p, ok
}
