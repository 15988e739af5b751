package spycatagency

import (
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/4oBuko/spycats/internal/myerrors"
)

var errInternal = gin.H{"error": "internal server error"}

// handleError writes the response for err. Request errors map to their
// status; everything else is logged and reported as a 500.
func (s *Server) handleError(ctx *gin.Context, err error) {
	var reqErr *myerrors.RequestError
	if !errors.As(err, &reqErr) {
		_ = ctx.Error(err)
		ctx.JSON(http.StatusInternalServerError, errInternal)
		return
	}

	switch reqErr.Kind {
	case myerrors.KindValidation, myerrors.KindBadRequest:
		ctx.JSON(http.StatusBadRequest, gin.H{"error": reqErr.Error()})
	case myerrors.KindNotFound:
		ctx.JSON(http.StatusNotFound, gin.H{"error": reqErr.Error()})
	case myerrors.KindForbidden:
		ctx.Status(http.StatusForbidden)
	case myerrors.KindPermissionDenied:
		ctx.JSON(http.StatusForbidden, gin.H{"detail": reqErr.Error()})
	default:
		_ = ctx.Error(err)
		ctx.JSON(http.StatusInternalServerError, errInternal)
	}
}

func (s *Server) bindJSON(ctx *gin.Context, obj any) bool {
	if err := ctx.ShouldBindJSON(obj); err != nil {
		s.handleError(ctx, myerrors.Wrap(myerrors.KindValidation, err.Error(), err))
		return false
	}
	return true
}

// bindOptionalJSON is bindJSON for actions whose body may be empty.
func (s *Server) bindOptionalJSON(ctx *gin.Context, obj any) bool {
	err := ctx.ShouldBindJSON(obj)
	if err != nil && !errors.Is(err, io.EOF) {
		s.handleError(ctx, myerrors.Wrap(myerrors.KindValidation, err.Error(), err))
		return false
	}
	return true
}

func idParam(ctx *gin.Context, name, entity string) (int64, bool) {
	id, err := strconv.ParseInt(ctx.Param(name), 10, 64)
	if err != nil {
		ctx.JSON(http.StatusNotFound, gin.H{
			"error": entity + " not found. Use number as id!",
		})
		return 0, false
	}
	return id, true
}
