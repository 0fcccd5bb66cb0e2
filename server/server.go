package server

import (
	"context"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/grupo-estuda/study-backend/config"
	"github.com/grupo-estuda/study-backend/docs"
	goalHandler "github.com/grupo-estuda/study-backend/internal/handler/goal"
	groupHandler "github.com/grupo-estuda/study-backend/internal/handler/group"
	leaderboardHandler "github.com/grupo-estuda/study-backend/internal/handler/leaderboard"
	planHandler "github.com/grupo-estuda/study-backend/internal/handler/plan"
	progressHandler "github.com/grupo-estuda/study-backend/internal/handler/progress"
	sessionHandler "github.com/grupo-estuda/study-backend/internal/handler/session"
	userHandler "github.com/grupo-estuda/study-backend/internal/handler/user"
	"github.com/grupo-estuda/study-backend/internal/repository"
	"github.com/grupo-estuda/study-backend/internal/service/cache"
	goalService "github.com/grupo-estuda/study-backend/internal/service/goal"
	groupService "github.com/grupo-estuda/study-backend/internal/service/group"
	leaderboardService "github.com/grupo-estuda/study-backend/internal/service/leaderboard"
	"github.com/grupo-estuda/study-backend/internal/service/progress"
	sessionService "github.com/grupo-estuda/study-backend/internal/service/session"
	"github.com/grupo-estuda/study-backend/internal/service/user"
	"github.com/grupo-estuda/study-backend/middleware"
	"github.com/grupo-estuda/study-backend/pkg/utils"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

type RouterHandler struct {
	userHandler        *userHandler.UserHandler
	sessionHandler     *sessionHandler.SessionHandler
	goalHandler        *goalHandler.GoalHandler
	groupHandler       *groupHandler.GroupHandler
	leaderboardHandler *leaderboardHandler.LeaderboardHandler
	progressHandler    *progressHandler.ProgressHandler
	planHandler        *planHandler.PlanHandler
}

func RunServer(config *config.Config) {
	env := config.Env
	switch env {
	case "prod", "production":
		gin.SetMode(gin.ReleaseMode)
		log.Println("🚀 Starting server in PRODUCTION mode")
	case "dev", "development":
		gin.SetMode(gin.DebugMode)
		log.Println("🔧 Starting server in DEVELOPMENT mode")
	default:
		gin.SetMode(gin.DebugMode)
		log.Println("🔧 Starting server in DEVELOPMENT mode (default)")
	}

	db, err := repository.NewRepository(config.DB)
	if err != nil {
		log.Fatal("❌ Failed to connect to database:", err)
	}
	defer db.Close()

	listener, err := repository.NewChangeListener(repository.ConnString(config.DB))
	if err != nil {
		log.Fatal("❌ Failed to start change listener:", err)
	}
	defer listener.Close()

	cacheService := cache.NewService(config.Redis)
	if cacheService != nil {
		defer cacheService.Close()
	}

	userRepo := repository.NewUserRepository(db)
	sessionRepo := repository.NewStudySessionRepository(db)
	goalRepo := repository.NewGoalRepository(db)
	groupRepo := repository.NewGroupRepository(db)
	subjectRepo := repository.NewSubjectRepository(db)
	pointsRepo := repository.NewPointsRepository(db)

	loc := utils.LoadAppLocation(config.Timezone)

	userSrv := user.NewUserService(userRepo)
	sessionSrv := sessionService.NewSessionService(sessionRepo, subjectRepo, goalRepo, pointsRepo, groupRepo)
	goalSrv := goalService.NewGoalService(goalRepo, subjectRepo, groupRepo)
	groupSrv := groupService.NewGroupService(groupRepo, subjectRepo, userRepo)
	progressSrv := progress.NewService(repository.NewProgressStore(sessionRepo, goalRepo), nil, loc)

	var leaderboardSrv *leaderboardService.LeaderboardService
	if cacheService != nil {
		leaderboardSrv = leaderboardService.NewLeaderboardService(pointsRepo, groupRepo, cacheService)
	} else {
		leaderboardSrv = leaderboardService.NewLeaderboardService(pointsRepo, groupRepo, nil)
	}

	routerHandler := &RouterHandler{
		userHandler:        userHandler.NewUserHandler(userSrv),
		sessionHandler:     sessionHandler.NewSessionHandler(sessionSrv),
		goalHandler:        goalHandler.NewGoalHandler(goalSrv),
		groupHandler:       groupHandler.NewGroupHandler(groupSrv),
		leaderboardHandler: leaderboardHandler.NewLeaderboardHandler(leaderboardSrv),
		progressHandler:    progressHandler.NewProgressHandler(progressSrv, listener, slog.Default()),
		planHandler:        planHandler.NewPlanHandler(userSrv),
	}

	r := setupRouter(routerHandler)

	srv := &http.Server{
		Addr:    ":" + config.Server.Port,
		Handler: r,
	}

	go func() {
		log.Printf("✅ Server starting on port %s", config.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("❌ Failed to start server: %v", err)
		}
	}()

	gracefulShutdown(srv)
}

func gracefulShutdown(srv *http.Server) {
	quit := make(chan os.Signal, 1)

	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	<-quit
	log.Println("🔄 Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("❌ Server forced to shutdown: %v", err)
		return
	}

	select {
	case <-ctx.Done():
		log.Println("⚠️ Server shutdown timeout exceeded")
	default:
		log.Println("✅ Server gracefully stopped")
	}
}

func setupRouter(routerHandler *RouterHandler) *gin.Engine {
	r := gin.Default()
	r.SetTrustedProxies([]string{"127.0.0.1", "::1"})

	r.Use(func(c *gin.Context) {
		origin := c.Request.Header.Get("Origin")

		if origin != "" && (strings.HasPrefix(origin, "http://localhost:") ||
			strings.HasPrefix(origin, "http://127.0.0.1:")) {
			c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
		} else if origin == "https://grupoestuda.com.br" {
			c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
		} else {
			c.Writer.Header().Set("Access-Control-Allow-Origin", "")
		}

		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	})

	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":    "healthy",
			"timestamp": time.Now().Unix(),
			"service":   "grupo-estuda-backend",
		})
	})

	docs.SwaggerInfo.Host = "127.0.0.1:8080"
	docs.SwaggerInfo.Schemes = []string{"http", "https"}
	docs.SwaggerInfo.Title = "Grupo Estuda API"
	docs.SwaggerInfo.Description = "Study group tracking API"
	docs.SwaggerInfo.Version = "1.0"
	docs.SwaggerInfo.BasePath = "/api/v1"

	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	publicRoutes := r.Group("/api/v1")
	{
		publicRoutes.POST("/users/auth", routerHandler.userHandler.CreateOrAuthUserWithPassword)
		publicRoutes.GET("/plans", routerHandler.planHandler.GetPlans)
	}

	privateRoutes := r.Group("/api/v1")
	privateRoutes.Use(middleware.AuthenticationMiddleware())
	{
		privateRoutes.GET("/users/profile", routerHandler.userHandler.GetUserById)
		privateRoutes.POST("/users/logout", routerHandler.userHandler.Logout)
		privateRoutes.GET("/plans/me", routerHandler.planHandler.GetMyPlan)

		privateRoutes.POST("/sessions", routerHandler.sessionHandler.CreateSession)
		privateRoutes.GET("/sessions", routerHandler.sessionHandler.GetSessions)
		privateRoutes.DELETE("/sessions/:id", routerHandler.sessionHandler.DeleteSession)

		privateRoutes.GET("/progress", routerHandler.progressHandler.GetProgress)
		privateRoutes.GET("/progress/watch", routerHandler.progressHandler.WatchProgress)

		privateRoutes.POST("/groups", routerHandler.groupHandler.CreateGroup)
		privateRoutes.GET("/groups", routerHandler.groupHandler.GetGroups)
		privateRoutes.GET("/groups/:id", routerHandler.groupHandler.GetGroup)
		privateRoutes.POST("/groups/:id/members", routerHandler.groupHandler.AddMember)
		privateRoutes.POST("/groups/:id/subjects", routerHandler.groupHandler.CreateSubject)
		privateRoutes.GET("/groups/:id/subjects", routerHandler.groupHandler.GetSubjects)
		privateRoutes.GET("/subjects", routerHandler.groupHandler.GetUserSubjects)

		privateRoutes.POST("/groups/:id/goals", routerHandler.goalHandler.CreateGoal)
		privateRoutes.GET("/groups/:id/goals", routerHandler.goalHandler.GetGoals)
		privateRoutes.POST("/goals/:id/progress", routerHandler.goalHandler.RecordProgress)
		privateRoutes.DELETE("/goals/:id", routerHandler.goalHandler.DeleteGoal)

		privateRoutes.GET("/leaderboard", routerHandler.leaderboardHandler.GetGlobalLeaderboard)
		privateRoutes.GET("/leaderboard/groups", routerHandler.leaderboardHandler.GetGroupLeaderboards)
	}

	return r
}
