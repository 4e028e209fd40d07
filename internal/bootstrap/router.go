package bootstrap

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"github.com/savageut/scheduler-backend/internal/analytics"
	httpapi "github.com/savageut/scheduler-backend/internal/api/http"
	apimw "github.com/savageut/scheduler-backend/internal/api/http/middleware"
	authhttp "github.com/savageut/scheduler-backend/internal/auth/http"
	authmw "github.com/savageut/scheduler-backend/internal/auth/middleware"
	authservice "github.com/savageut/scheduler-backend/internal/auth/service"
	"github.com/savageut/scheduler-backend/internal/customers"
	schedhttp "github.com/savageut/scheduler-backend/internal/scheduling/http"
	"github.com/savageut/scheduler-backend/internal/scheduling/service"
)

type RouterDeps struct {
	ServiceName string
	Version     string
	DB          *pgxpool.Pool
	Redis       *redis.Client

	Projects  *service.ProjectService
	Auth      *authservice.AuthService
	Search    *customers.SearchService
	Analytics *analytics.Service

	LoginPerMin int
	LoginBurst  int
}

func BuildRouter(dep RouterDeps) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(apimw.RequestID())
	r.Use(cors.Default())

	healthHandler := httpapi.NewHealthHandler(dep.ServiceName, dep.Version, dep.DB, dep.Redis)
	healthHandler.RegisterRoutes(r)

	api := r.Group("/api/v1")

	authHandler := authhttp.New(dep.Auth)
	limiter := apimw.NewLoginRateLimiter(dep.LoginPerMin, dep.LoginBurst)
	authHandler.RegisterPublic(api.Group("/auth"), limiter.Middleware())

	protected := api.Group("")
	protected.Use(authmw.JWTAuthMiddleware(dep.Auth))

	authHandler.Register(protected.Group("/auth"))
	schedhttp.New(dep.Projects).Register(protected)
	customers.NewHandler(dep.Search).Register(protected)
	analytics.NewHandler(dep.Analytics).Register(protected)

	return r
}
