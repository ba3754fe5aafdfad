package http

import (
	"html/template"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	portfolioUC "github.com/khoahotran/skillsync/internal/application/usecase/portfolio"
	"github.com/khoahotran/skillsync/pkg/logger"
)

const portfolioTemplate = "portfolio.html"

type PortfolioHandler struct {
	portfolioUseCase *portfolioUC.PortfolioUseCase
	logger           logger.Logger
}

func NewPortfolioHandler(uc *portfolioUC.PortfolioUseCase, log logger.Logger) *PortfolioHandler {
	return &PortfolioHandler{
		portfolioUseCase: uc,
		logger:           log,
	}
}

func (h *PortfolioHandler) GetPortfolio(c *gin.Context) {
	id, ok := sessionID(c)
	if !ok {
		return
	}
	view, err := h.portfolioUseCase.ExecuteGetPortfolio(c.Request.Context(), id)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, view)
}

func (h *PortfolioHandler) RenderPortfolio(c *gin.Context) {
	id, ok := sessionID(c)
	if !ok {
		return
	}
	view, err := h.portfolioUseCase.ExecuteGetPortfolio(c.Request.Context(), id)
	if err != nil {
		c.Error(err)
		return
	}
	c.HTML(http.StatusOK, portfolioTemplate, newPortfolioPage(view))
}

// portfolioPage adds the template-only photo source to the view.
type portfolioPage struct {
	*portfolioUC.View
	PhotoSrc any
}

// html/template rewrites data: URLs to #ZgotmplZ. Inline photos come from
// our own upload flow, so only data:image/ sources are trusted as-is.
func newPortfolioPage(view *portfolioUC.View) portfolioPage {
	page := portfolioPage{View: view, PhotoSrc: view.PhotoURL}
	if strings.HasPrefix(view.PhotoURL, "data:image/") {
		page.PhotoSrc = template.URL(view.PhotoURL)
	}
	return page
}

// GetFeed serves RSS by default and Atom for ?format=atom.
func (h *PortfolioHandler) GetFeed(c *gin.Context) {
	id, ok := sessionID(c)
	if !ok {
		return
	}
	feed, err := h.portfolioUseCase.ExecuteFeed(c.Request.Context(), id)
	if err != nil {
		c.Error(err)
		return
	}

	if c.Query("format") == "atom" {
		c.Header("Content-Type", "application/atom+xml; charset=utf-8")
		if err := feed.WriteAtom(c.Writer); err != nil {
			h.logger.Error("Failed to write Atom feed to response", err)
		}
		return
	}

	c.Header("Content-Type", "application/xml; charset=utf-8")
	if err := feed.WriteRss(c.Writer); err != nil {
		h.logger.Error("Failed to write RSS feed to response", err)
	}
}
