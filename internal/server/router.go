package server

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"portfolio-gif/internal/admin"
	"portfolio-gif/internal/config"
	"portfolio-gif/internal/portfolio"
	"portfolio-gif/internal/store"
)

const serviceName = "portfolio-gif"

type RouterDeps struct {
	Config *config.Config
	Store  store.Store
}

// BuildRouter serves the public portfolio page and health checks. It has
// no admin routes.
func BuildRouter(dep RouterDeps) *gin.Engine {
	cfg := dep.Config
	r := gin.Default()

	corsCfg := cors.DefaultConfig()
	if len(cfg.Server.CORSOrigins) == 1 && cfg.Server.CORSOrigins[0] == "*" {
		corsCfg.AllowAllOrigins = true
	} else {
		corsCfg.AllowOrigins = cfg.Server.CORSOrigins
		corsCfg.AllowCredentials = true
	}
	r.Use(cors.New(corsCfg))

	NewHealthHandler(serviceName, dep.Store, cfg.Store.Collection).RegisterRoutes(r)

	site := portfolio.NewSite(cfg.Assets.SiteDir, cfg.Assets.StaticDir, cfg.Secrets.GeminiAPIKey, cfg.Secrets.DeepgramAPIKey)
	portfolio.NewHandler(site, cfg.Assets.StaticDir).RegisterRoutes(r)

	return r
}

// BuildAdminRouter serves the admin API under /admin/api for its own
// listener. It sends no CORS headers, and requires basic auth when an
// admin password is configured.
func BuildAdminRouter(dep RouterDeps) *gin.Engine {
	cfg := dep.Config
	r := gin.Default()

	api := r.Group("/admin/api")
	if cfg.Secrets.AdminPassword != "" {
		api.Use(gin.BasicAuth(gin.Accounts{cfg.Secrets.AdminUser: cfg.Secrets.AdminPassword}))
	}

	editor := admin.NewEditor(dep.Store, cfg.Store.Collection, admin.Media{Dir: cfg.Assets.StaticDir})
	admin.NewHandler(editor, admin.NewSessions(admin.SessionTTL, admin.MaxSessions)).RegisterRoutes(api)

	return r
}
