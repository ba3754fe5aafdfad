package http

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	profileUC "github.com/khoahotran/skillsync/internal/application/usecase/profile"
	"github.com/khoahotran/skillsync/pkg/apperror"
	"github.com/khoahotran/skillsync/pkg/logger"
)

type ProfileHandler struct {
	profileUseCase *profileUC.ProfileUseCase
	logger         logger.Logger
}

func NewProfileHandler(uc *profileUC.ProfileUseCase, log logger.Logger) *ProfileHandler {
	return &ProfileHandler{
		profileUseCase: uc,
		logger:         log,
	}
}

func (h *ProfileHandler) respond(c *gin.Context, out *profileUC.DashboardOutput, err error) {
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, ToDashboardDTO(out))
}

func sessionID(c *gin.Context) (uuid.UUID, bool) {
	id, ok := GetSessionIDFromGinContext(c)
	if !ok {
		c.Error(apperror.NewUnauthorized("session not found in context", nil))
	}
	return id, ok
}

func indexParam(c *gin.Context) (int, bool) {
	index, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		c.Error(apperror.NewInvalidInput("index must be an integer", err))
		return 0, false
	}
	return index, true
}

func (h *ProfileHandler) GetProfile(c *gin.Context) {
	id, ok := sessionID(c)
	if !ok {
		return
	}
	out, err := h.profileUseCase.ExecuteGetDashboard(c.Request.Context(), profileUC.GetDashboardInput{SessionID: id})
	h.respond(c, out, err)
}

func (h *ProfileHandler) SaveBasicInfo(c *gin.Context) {
	id, ok := sessionID(c)
	if !ok {
		return
	}

	var req BasicInfoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.NewInvalidInput("invalid JSON body for basic info", err))
		return
	}

	out, err := h.profileUseCase.ExecuteSaveBasicInfo(c.Request.Context(), profileUC.SaveBasicInfoInput{
		SessionID:  id,
		FullName:   req.FullName,
		Email:      req.Email,
		Phone:      req.Phone,
		Location:   req.Location,
		CareerGoal: req.CareerGoal,
		Education:  req.Education,
	})
	h.respond(c, out, err)
}

func (h *ProfileHandler) UploadPhoto(c *gin.Context) {
	id, ok := sessionID(c)
	if !ok {
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.Error(apperror.NewInvalidInput("'file' field is required", err))
		return
	}
	file, err := fileHeader.Open()
	if err != nil {
		c.Error(apperror.NewInternal("failed to open uploaded file", err))
		return
	}
	defer file.Close()

	out, err := h.profileUseCase.ExecuteUploadPhoto(c.Request.Context(), profileUC.UploadPhotoInput{
		SessionID: id,
		File:      file,
		Filename:  fileHeader.Filename,
	})
	h.respond(c, out, err)
}

func (h *ProfileHandler) AddSkill(c *gin.Context) {
	id, ok := sessionID(c)
	if !ok {
		return
	}

	var req AddSkillRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.NewInvalidInput("invalid JSON body for skill", err))
		return
	}

	out, err := h.profileUseCase.ExecuteAddSkill(c.Request.Context(), profileUC.AddSkillInput{SessionID: id, Name: req.Name})
	h.respond(c, out, err)
}

// RemoveSkill takes the rest of the path as the name, so names such as
// "UI/UX Design" survive.
func (h *ProfileHandler) RemoveSkill(c *gin.Context) {
	id, ok := sessionID(c)
	if !ok {
		return
	}

	name := strings.TrimPrefix(c.Param("name"), "/")
	out, err := h.profileUseCase.ExecuteRemoveSkill(c.Request.Context(), profileUC.RemoveSkillInput{SessionID: id, Name: name})
	h.respond(c, out, err)
}

func (h *ProfileHandler) AddCertificate(c *gin.Context) {
	id, ok := sessionID(c)
	if !ok {
		return
	}

	var req AddCertificateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.NewInvalidInput("invalid JSON body for certificate", err))
		return
	}

	out, err := h.profileUseCase.ExecuteAddCertificate(c.Request.Context(), profileUC.AddCertificateInput{
		SessionID: id,
		Name:      req.Name,
		Issuer:    req.Issuer,
		Date:      req.Date,
	})
	h.respond(c, out, err)
}

func (h *ProfileHandler) RemoveCertificate(c *gin.Context) {
	id, ok := sessionID(c)
	if !ok {
		return
	}
	index, ok := indexParam(c)
	if !ok {
		return
	}

	out, err := h.profileUseCase.ExecuteRemoveCertificate(c.Request.Context(), profileUC.RemoveCertificateInput{SessionID: id, Index: index})
	h.respond(c, out, err)
}

func (h *ProfileHandler) AddProject(c *gin.Context) {
	id, ok := sessionID(c)
	if !ok {
		return
	}

	var req AddProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.NewInvalidInput("invalid JSON body for project", err))
		return
	}

	out, err := h.profileUseCase.ExecuteAddProject(c.Request.Context(), profileUC.AddProjectInput{
		SessionID: id,
		Name:      req.Name,
		Tech:      req.Tech,
		Desc:      req.Desc,
		URL:       req.URL,
	})
	h.respond(c, out, err)
}

func (h *ProfileHandler) RemoveProject(c *gin.Context) {
	id, ok := sessionID(c)
	if !ok {
		return
	}
	index, ok := indexParam(c)
	if !ok {
		return
	}

	out, err := h.profileUseCase.ExecuteRemoveProject(c.Request.Context(), profileUC.RemoveProjectInput{SessionID: id, Index: index})
	h.respond(c, out, err)
}

func (h *ProfileHandler) ResetProfile(c *gin.Context) {
	id, ok := sessionID(c)
	if !ok {
		return
	}
	out, err := h.profileUseCase.ExecuteReset(c.Request.Context(), profileUC.ResetInput{SessionID: id})
	h.respond(c, out, err)
}
