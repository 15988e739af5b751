package spycatagency

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/4oBuko/spycats/internal/models"
)

func (s *Server) handleAddCat(ctx *gin.Context) {
	var cat models.CatCreate
	if !s.bindJSON(ctx, &cat) {
		return
	}

	newCat, err := s.catService.Add(ctx.Request.Context(), cat)
	if err != nil {
		s.handleError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, newCat)
}

func (s *Server) handleGetCat(ctx *gin.Context) {
	id, ok := idParam(ctx, "id", "Cat")
	if !ok {
		return
	}

	cat, err := s.catService.GetById(ctx.Request.Context(), id)
	if err != nil {
		s.handleError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, cat)
}

func (s *Server) handleGetAllCats(ctx *gin.Context) {
	cats, err := s.catService.GetAll(ctx.Request.Context())
	if err != nil {
		s.handleError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, cats)
}

// handleReplaceCat is the PUT form: name and breed must be sent again.
func (s *Server) handleReplaceCat(ctx *gin.Context) {
	id, ok := idParam(ctx, "id", "Cat")
	if !ok {
		return
	}
	var cat models.CatCreate
	if !s.bindJSON(ctx, &cat) {
		return
	}
	s.updateCat(ctx, id, cat.ToUpdate())
}

func (s *Server) handleUpdateCat(ctx *gin.Context) {
	id, ok := idParam(ctx, "id", "Cat")
	if !ok {
		return
	}
	var update models.CatUpdate
	if !s.bindOptionalJSON(ctx, &update) {
		return
	}
	s.updateCat(ctx, id, update)
}

func (s *Server) updateCat(ctx *gin.Context, id int64, update models.CatUpdate) {
	updatedCat, err := s.catService.Update(ctx.Request.Context(), id, update)
	if err != nil {
		s.handleError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, updatedCat)
}

func (s *Server) handleDeleteCat(ctx *gin.Context) {
	id, ok := idParam(ctx, "id", "Cat")
	if !ok {
		return
	}

	if err := s.catService.DeleteById(ctx.Request.Context(), id); err != nil {
		s.handleError(ctx, err)
		return
	}
	ctx.Status(http.StatusNoContent)
}
