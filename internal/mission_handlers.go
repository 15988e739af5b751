package spycatagency

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/4oBuko/spycats/internal/models"
)

func (s *Server) handleAddMission(ctx *gin.Context) {
	var mission models.MissionCreate
	if !s.bindJSON(ctx, &mission) {
		return
	}

	savedMission, err := s.missionService.Add(ctx.Request.Context(), mission)
	if err != nil {
		s.handleError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, savedMission)
}

func (s *Server) handleGetMission(ctx *gin.Context) {
	id, ok := idParam(ctx, "id", "Mission")
	if !ok {
		return
	}

	mission, err := s.missionService.GetById(ctx.Request.Context(), id)
	if err != nil {
		s.handleError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, mission)
}

func (s *Server) handleGetAllMissions(ctx *gin.Context) {
	missions, err := s.missionService.GetAll(ctx.Request.Context())
	if err != nil {
		s.handleError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, missions)
}

// handleUpdateMission serves both PUT and PATCH. Targets in the body are
// ignored, they are edited through the target endpoints.
func (s *Server) handleUpdateMission(ctx *gin.Context) {
	id, ok := idParam(ctx, "id", "Mission")
	if !ok {
		return
	}
	var update models.MissionUpdate
	if !s.bindOptionalJSON(ctx, &update) {
		return
	}

	mission, err := s.missionService.Update(ctx.Request.Context(), id, update)
	if err != nil {
		s.handleError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, mission)
}

func (s *Server) handleDeleteMission(ctx *gin.Context) {
	id, ok := idParam(ctx, "id", "Mission")
	if !ok {
		return
	}

	if err := s.missionService.Delete(ctx.Request.Context(), id); err != nil {
		s.handleError(ctx, err)
		return
	}
	ctx.Status(http.StatusNoContent)
}

func (s *Server) handleAssignCat(ctx *gin.Context) {
	id, ok := idParam(ctx, "id", "Mission")
	if !ok {
		return
	}
	var assignment models.CatAssignment
	if !s.bindOptionalJSON(ctx, &assignment) {
		return
	}

	mission, err := s.missionService.Assign(ctx.Request.Context(), id, assignment.Cat)
	if err != nil {
		s.handleError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, mission)
}

func (s *Server) handleCompleteMission(ctx *gin.Context) {
	id, ok := idParam(ctx, "id", "Mission")
	if !ok {
		return
	}

	mission, err := s.missionService.Complete(ctx.Request.Context(), id)
	if err != nil {
		s.handleError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, mission)
}

func (s *Server) handleGetTarget(ctx *gin.Context) {
	missionId, targetId, ok := targetParams(ctx)
	if !ok {
		return
	}

	target, err := s.missionService.GetTarget(ctx.Request.Context(), missionId, targetId)
	if err != nil {
		s.handleError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, target)
}

func (s *Server) handleUpdateTarget(ctx *gin.Context) {
	missionId, targetId, ok := targetParams(ctx)
	if !ok {
		return
	}
	var update models.TargetUpdate
	if !s.bindOptionalJSON(ctx, &update) {
		return
	}

	target, err := s.missionService.UpdateTarget(ctx.Request.Context(), missionId, targetId, update)
	if err != nil {
		s.handleError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, target)
}

func (s *Server) handleCompleteTarget(ctx *gin.Context) {
	missionId, targetId, ok := targetParams(ctx)
	if !ok {
		return
	}

	target, err := s.missionService.CompleteTarget(ctx.Request.Context(), missionId, targetId)
	if err != nil {
		s.handleError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, target)
}

func targetParams(ctx *gin.Context) (missionId, targetId int64, ok bool) {
	if missionId, ok = idParam(ctx, "id", "Mission"); !ok {
		return 0, 0, false
	}
	if targetId, ok = idParam(ctx, "targetId", "Target"); !ok {
		return 0, 0, false
	}
	return missionId, targetId, true
}
