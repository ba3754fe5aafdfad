package http

import (
	"embed"
	"html/template"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"github.com/khoahotran/skillsync/pkg/auth"
	"github.com/khoahotran/skillsync/pkg/logger"
)

//go:embed templates/*.html
var templatesFS embed.FS

var templates = template.Must(template.ParseFS(templatesFS, "templates/*.html"))

type RouterDeps struct {
	Profile   *ProfileHandler
	Portfolio *PortfolioHandler
	Resume    *ResumeHandler
	Backup    *BackupHandler
	JWT       *auth.JWTService
	Cookie    SessionCookie
	Logger    logger.Logger
}

func NewRouter(deps RouterDeps) *gin.Engine {
	router := gin.New()
	router.SetHTMLTemplate(templates)
	router.Use(gin.Recovery(), tracingMiddleware(), RequestLogger(deps.Logger), ErrorMiddleware(deps.Logger))

	router.GET("/api/health", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"status": "UP"}) })

	session := router.Group("/")
	session.Use(SessionMiddleware(deps.JWT, deps.Cookie, deps.Logger))

	api := session.Group("/api")
	{
		profile := api.Group("/profile")
		{
			profile.GET("", deps.Profile.GetProfile)
			profile.DELETE("", deps.Profile.ResetProfile)
			profile.PUT("/basic-info", deps.Profile.SaveBasicInfo)
			profile.POST("/photo", deps.Profile.UploadPhoto)
			profile.POST("/skills", deps.Profile.AddSkill)
			profile.DELETE("/skills/*name", deps.Profile.RemoveSkill)
			profile.POST("/certificates", deps.Profile.AddCertificate)
			profile.DELETE("/certificates/:index", deps.Profile.RemoveCertificate)
			profile.POST("/projects", deps.Profile.AddProject)
			profile.DELETE("/projects/:index", deps.Profile.RemoveProject)
			profile.GET("/backup", deps.Backup.DownloadBackup)
			profile.POST("/backup", deps.Backup.RestoreBackup)
		}

		api.GET("/portfolio", deps.Portfolio.GetPortfolio)
		api.GET("/resume", deps.Resume.PreviewResume)
		api.GET("/resume.pdf", deps.Resume.DownloadResume)
	}

	session.GET("/portfolio", deps.Portfolio.RenderPortfolio)
	session.GET("/portfolio/feed.xml", deps.Portfolio.GetFeed)

	return router
}

// tracingMiddleware opens a server span per request so use case spans nest
// under it.
func tracingMiddleware() gin.HandlerFunc {
	tracer := otel.Tracer("skillsync/http")
	return func(c *gin.Context) {
		ctx, span := tracer.Start(c.Request.Context(), c.Request.Method+" "+c.FullPath())
		defer span.End()

		c.Request = c.Request.WithContext(ctx)
		c.Next()
		span.SetAttributes(attribute.Int("http.status_code", c.Writer.Status()))
	}
}
