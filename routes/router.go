package routes

import (
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/Geeky-har/My-Blog/config"
	"github.com/Geeky-har/My-Blog/controllers"
	"github.com/Geeky-har/My-Blog/middleware"
	"github.com/Geeky-har/My-Blog/utils"
)

// SetupRouter wires routes, middlewares, and controllers.
func SetupRouter(db *gorm.DB) *gin.Engine {
	cfg := config.Get()
	switch strings.ToLower(cfg.GinMode) {
	case "debug":
		gin.SetMode(gin.DebugMode)
	case "test":
		gin.SetMode(gin.TestMode)
	default:
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Access log goes to its own rolling file so request noise stays out of
	// the application log.
	gl, err := utils.NewRollingFileLogger(cfg.GinPath, cfg.LogLevel, cfg.LogMaxSizeMB, cfg.LogMaxBackups, cfg.LogMaxAgeDays, cfg.LogCompress)
	if err == nil {
		r.Use(utils.Ginzap(gl, time.RFC3339, true))
		r.Use(utils.RecoveryWithZap(gl, false))
	} else {
		r.Use(gin.Recovery())
	}

	r.Use(middleware.RequestID())

	corsCfg := cors.Config{
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	if len(cfg.AllowedOrigins) == 1 && cfg.AllowedOrigins[0] == "*" {
		corsCfg.AllowAllOrigins = true
	} else {
		corsCfg.AllowOrigins = cfg.AllowedOrigins
	}
	r.Use(cors.New(corsCfg))

	r.Use(middleware.PageViewRecorder(db))

	r.LoadHTMLGlob("templates/*.html")
	r.Static("/static", "./static")

	r.GET("/health", func(ctx *gin.Context) {
		ctx.JSON(200, gin.H{"status": "ok"})
	})

	blog := controllers.NewBlogController(db, cfg)
	dashboard := controllers.NewDashboardController(db, cfg)

	r.GET("/", blog.Home)
	r.GET("/about", blog.About)
	r.GET("/post/:slug", blog.ShowPost)
	r.GET("/contact", blog.ContactForm)
	r.POST("/contact", middleware.RateLimit(cfg), blog.ContactSubmit)

	r.GET("/dashboard", dashboard.Dashboard)
	r.POST("/dashboard", middleware.RateLimit(cfg), dashboard.Login)
	r.GET("/logout", dashboard.Logout)

	admin := r.Group("")
	admin.Use(middleware.AdminRequired(cfg))
	admin.GET("/edit/:id", dashboard.EditForm)
	admin.POST("/edit/:id", dashboard.SavePost)
	admin.GET("/delete/:id", dashboard.DeletePost)
	admin.POST("/delete/:id", dashboard.DeletePost)

	return r
}
