package adaptor

import (
	"errors"
	"net/http"

	"cinema-reservation/internal/usecase"
	"cinema-reservation/pkg/utils"

	"go.uber.org/zap"
)

// writeServiceError maps use case errors to responses. Anything that is not
// a known domain error is logged and answered as 500.
func writeServiceError(w http.ResponseWriter, log *zap.Logger, err error, operation string) {
	var vErr *usecase.ValidationError

	switch {
	case errors.As(err, &vErr):
		log.Warn(operation+" rejected",
			zap.String("kind", string(vErr.Kind)),
			zap.String("reason", vErr.Error()),
		)
		if vErr.Kind == usecase.KindTaken {
			utils.ResponseConflict(w, vErr.Error(), vErr.Details())
			return
		}
		utils.ResponseBadRequest(w, vErr.Error(), vErr.Details())

	case errors.Is(err, usecase.ErrNotFound):
		log.Warn(operation+" failed - not found", zap.Error(err))
		utils.ResponseNotFound(w, "Movie session not found")

	case errors.Is(err, usecase.ErrInvalidInput):
		log.Warn("Invalid input for "+operation, zap.Error(err))
		utils.ResponseBadRequest(w, err.Error(), nil)

	default:
		log.Error(operation+" failed",
			zap.Error(err),
			zap.String("operation", operation),
		)
		utils.ResponseInternalError(w, "Internal server error")
	}
}
