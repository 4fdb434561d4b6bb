// internal/handlers/common.go
package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/mercadocesar/storefront/internal/i18n"
	"github.com/mercadocesar/storefront/internal/services"
	"github.com/mercadocesar/storefront/internal/utils"
)

// currentUserID reads the authenticated user from the context set by
// middleware.AuthRequired.
func currentUserID(c *gin.Context) (uuid.UUID, bool) {
	idStr, ok := utils.GetUserIDFromContext(c)
	if !ok {
		return uuid.Nil, false
	}
	id, err := uuid.Parse(idStr)
	if err != nil {
		return uuid.Nil, false
	}
	return id, true
}

// pathUUID parses a UUID path parameter, answering 400 on failure.
func pathUUID(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		lang := utils.GetLangFromContext(c)
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, name), nil)
		return uuid.Nil, false
	}
	return id, true
}

// serviceError translates service-layer errors into HTTP responses. The
// resource prefix of wrapped ErrNotFound ("produto: not found") selects the
// localized message.
func serviceError(c *gin.Context, err error) {
	lang := utils.GetLangFromContext(c)

	var stockErr *services.StockValidationError
	var shortErr *services.InsufficientStockError
	var fieldErrs validator.ValidationErrors

	switch {
	case errors.As(err, &stockErr):
		utils.ErrorResponse(c, http.StatusConflict, "INSUFFICIENT_STOCK",
			i18n.T(lang, i18n.KeyCheckoutEstoqueFaltando), stockErr.Faltas)

	case errors.As(err, &shortErr):
		utils.ErrorResponse(c, http.StatusConflict, "INSUFFICIENT_STOCK",
			i18n.T(lang, i18n.KeyCheckoutEstoqueFaltando), []services.InsufficientStockError{*shortErr})

	case errors.Is(err, services.ErrNotFound):
		utils.NotFoundResponse(c, notFoundResource(err))

	case errors.Is(err, services.ErrCarrinhoVazio):
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyCarrinhoVazio), nil)

	case errors.Is(err, services.ErrCEPForaAreaEntrega):
		utils.ErrorResponse(c, http.StatusUnprocessableEntity, "CEP_FORA_AREA",
			i18n.T(lang, i18n.KeyCheckoutCEPForaArea), nil)

	case errors.Is(err, services.ErrCheckoutNaoPreparado):
		utils.ConflictResponse(c, i18n.T(lang, i18n.KeyCheckoutNaoPreparado))

	case errors.Is(err, services.ErrCartaoDuplicado):
		utils.ConflictResponse(c, i18n.T(lang, i18n.KeyCartaoDuplicado))

	case errors.Is(err, services.ErrUsuarioExistente):
		utils.ConflictResponse(c, i18n.T(lang, i18n.KeyAuthUserExists))

	case errors.Is(err, services.ErrCredenciaisInvalidas):
		utils.UnauthorizedResponse(c, i18n.T(lang, i18n.KeyAuthInvalidCredentials))

	case errors.Is(err, services.ErrContaInativa):
		utils.ForbiddenResponse(c, i18n.T(lang, i18n.KeyAuthAccountInactive))

	case errors.As(err, &fieldErrs):
		utils.ValidationErrorResponse(c, utils.GetValidationErrors(fieldErrs))

	case errors.Is(err, services.ErrValidation):
		utils.BadRequestResponse(c, err.Error(), nil)

	default:
		utils.InternalErrorResponse(c, "")
	}
}

func notFoundResource(err error) string {
	msg := err.Error()
	if idx := strings.Index(msg, ":"); idx > 0 {
		return strings.TrimSpace(msg[:idx])
	}
	return "recurso"
}
