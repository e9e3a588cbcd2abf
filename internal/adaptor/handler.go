package adaptor

import (
	"net/http"

	"store-ratings/internal/usecase"
	"store-ratings/pkg/apperr"
	"store-ratings/pkg/utils"

	"go.uber.org/zap"
)

type Handler struct {
	Auth   *AuthHandler
	User   *UserHandler
	Store  *StoreHandler
	Rating *RatingHandler
	Admin  *AdminHandler
}

func NewHandler(service *usecase.Service, log *zap.Logger) *Handler {
	return &Handler{
		Auth:   NewAuthHandler(service.Auth, log),
		User:   NewUserHandler(service.User, log),
		Store:  NewStoreHandler(service.Store, log),
		Rating: NewRatingHandler(service.Rating, log),
		Admin:  NewAdminHandler(service.Admin, log),
	}
}

// respondError translates a service error into the uniform envelope. Typed
// errors carry their HTTP status through the kind; anything else degrades to
// a generic server error so internals never leak to the caller.
func respondError(w http.ResponseWriter, log *zap.Logger, err error, operation string) {
	kind, ok := apperr.KindOf(err)
	if !ok {
		log.Error("Failed to "+operation,
			zap.Error(err),
			zap.String("operation", operation))
		utils.ResponseInternalError(w, "Internal server error")
		return
	}

	log.Warn(operation+" failed",
		zap.Error(err),
		zap.String("operation", operation),
		zap.String("kind", kind.String()))

	switch kind {
	case apperr.KindValidation:
		utils.ResponseBadRequest(w, err.Error(), err.Error())
	case apperr.KindNotFound:
		utils.ResponseNotFound(w, err.Error())
	case apperr.KindAuthentication:
		utils.ResponseUnauthorized(w, err.Error())
	case apperr.KindAuthorization:
		utils.ResponseForbidden(w, err.Error())
	case apperr.KindConflict:
		utils.ResponseConflict(w, err.Error())
	default:
		utils.ResponseInternalError(w, "Internal server error")
	}
}
