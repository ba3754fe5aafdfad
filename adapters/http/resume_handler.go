package http

import (
	"mime"
	"net/http"

	"github.com/gin-gonic/gin"

	resumeUC "github.com/khoahotran/skillsync/internal/application/usecase/resume"
	"github.com/khoahotran/skillsync/pkg/logger"
)

type ResumeHandler struct {
	resumeUseCase *resumeUC.ResumeUseCase
	logger        logger.Logger
}

func NewResumeHandler(uc *resumeUC.ResumeUseCase, log logger.Logger) *ResumeHandler {
	return &ResumeHandler{
		resumeUseCase: uc,
		logger:        log,
	}
}

type ResumeDTO struct {
	Filename string             `json:"filename"`
	Document *resumeUC.Document `json:"document"`
}

// PreviewResume returns the resume content without rendering a PDF.
func (h *ResumeHandler) PreviewResume(c *gin.Context) {
	id, ok := sessionID(c)
	if !ok {
		return
	}
	doc, _, err := h.resumeUseCase.ExecuteBuildDocument(c.Request.Context(), id)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, ResumeDTO{Filename: resumeUC.Filename(doc.Name), Document: doc})
}

func (h *ResumeHandler) DownloadResume(c *gin.Context) {
	id, ok := sessionID(c)
	if !ok {
		return
	}
	out, err := h.resumeUseCase.ExecuteExport(c.Request.Context(), id)
	if err != nil {
		c.Error(err)
		return
	}

	c.Header("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": out.Filename}))
	c.Data(http.StatusOK, "application/pdf", out.PDF)
}
