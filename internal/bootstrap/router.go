package bootstrap

import (
	"database/sql"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"golang.org/x/time/rate"

	httpapi "github.com/zkCaleb-dev/Sirius-Funding-Repository/internal/api/http"
	"github.com/zkCaleb-dev/Sirius-Funding-Repository/internal/api/http/middleware"
	"github.com/zkCaleb-dev/Sirius-Funding-Repository/internal/auth"
	projhttp "github.com/zkCaleb-dev/Sirius-Funding-Repository/internal/projects/http"
	"github.com/zkCaleb-dev/Sirius-Funding-Repository/internal/projects/service"
	"github.com/zkCaleb-dev/Sirius-Funding-Repository/internal/stellar"
)

type RouterDeps struct {
	ServiceName    string
	Version        string
	AllowedOrigins []string
	Projects       *service.ProjectService
	Horizon        *stellar.Client
	DB             *sql.DB       // nil when history is disabled
	Redis          *redis.Client // nil when caching is disabled
}

func BuildRouter(dep RouterDeps) *gin.Engine {
	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     dep.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", auth.HeaderWalletAddress, "X-Request-Id"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	r.Use(middleware.RequestIDMiddleware())

	healthHandler := httpapi.NewHealthHandler(dep.ServiceName, dep.Version, dep.DB, dep.Redis)
	healthHandler.RegisterRoutes(r)

	api := r.Group("/api/v1")
	api.Use(auth.WithWallet())

	projectsGroup := api.Group("/projects")
	projhttp.Register(projectsGroup, projhttp.New(dep.Projects),
		middleware.RateLimitMiddleware(rate.Limit(2), 5))

	stellar.Register(api, dep.Horizon)

	return r
}
