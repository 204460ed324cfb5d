package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/hotfcs/mes-server/internal/config"
	"github.com/hotfcs/mes-server/internal/mes/entity"
	"github.com/hotfcs/mes-server/internal/mes/handler"
	"github.com/hotfcs/mes-server/internal/mes/repository"
	"github.com/hotfcs/mes-server/internal/mes/service"
	"github.com/hotfcs/mes-server/internal/mes/store"
	"github.com/hotfcs/mes-server/internal/middleware"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var (
	Version   = "dev"
	BuildTime = "unknown"
)

func main() {
	// 설정 로드
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// 로거 초기화
	zapLogger, err := initLogger(cfg.Log)
	if err != nil {
		log.Fatalf("Failed to init logger: %v", err)
	}
	defer zapLogger.Sync()

	zapLogger.Info("Starting mes-server",
		zap.String("version", Version),
		zap.String("build_time", BuildTime),
	)

	// 데이터베이스 초기화 (영속 BOM 헤더 전용)
	db, err := initDatabase(cfg.Database)
	if err != nil {
		zapLogger.Fatal("Failed to connect to database", zap.Error(err))
	}
	if err := entity.AutoMigrate(db); err != nil {
		zapLogger.Fatal("Failed to migrate database", zap.Error(err))
	}

	// Redis 초기화 (코드 채번 순번용, 선택)
	var rdb *redis.Client
	if cfg.Redis.Enabled {
		rdb = initRedis(cfg.Redis)
	}

	// 인메모리 스토어 + 마스터 시드
	st := store.NewStore(zapLogger)
	store.SeedDemo(st)

	// 의존성 초기화
	repos := repository.NewRepositories(db)
	services := service.NewServices(st, rdb)
	handlers := handler.NewHandlers(services, repos)

	// Gin 모드 설정
	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	// 라우터 생성
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.Logger(zapLogger))
	router.Use(middleware.CORS())
	router.Use(middleware.RequestID())

	registerRoutes(router, handlers)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	// 서버 기동
	go func() {
		zapLogger.Info("Server starting", zap.Int("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			zapLogger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// 정상 종료
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	zapLogger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		zapLogger.Error("Server forced to shutdown", zap.Error(err))
	}

	zapLogger.Info("Server exited")
}

func initLogger(cfg config.LogConfig) (*zap.Logger, error) {
	var zapCfg zap.Config

	if cfg.Format == "json" {
		zapCfg = zap.NewProductionConfig()
	} else {
		zapCfg = zap.NewDevelopmentConfig()
	}

	switch cfg.Level {
	case "debug":
		zapCfg.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
	case "info":
		zapCfg.Level = zap.NewAtomicLevelAt(zap.InfoLevel)
	case "warn":
		zapCfg.Level = zap.NewAtomicLevelAt(zap.WarnLevel)
	case "error":
		zapCfg.Level = zap.NewAtomicLevelAt(zap.ErrorLevel)
	}

	return zapCfg.Build()
}

func initDatabase(cfg config.DatabaseConfig) (*gorm.DB, error) {
	dsn := fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		cfg.Host, cfg.Port, cfg.User, cfg.Password, cfg.DBName, cfg.SSLMode,
	)

	gormConfig := &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	}

	db, err := gorm.Open(postgres.Open(dsn), gormConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database instance: %w", err)
	}

	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	sqlDB.SetConnMaxIdleTime(cfg.ConnMaxIdleTime)

	return db, nil
}

func initRedis(cfg config.RedisConfig) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Password: cfg.Password,
		DB:       cfg.DB,
		PoolSize: cfg.PoolSize,
	})
}

func registerRoutes(r *gin.Engine, h *handler.Handlers) {
	// 헬스체크
	r.GET("/health/live", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/health/ready", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// 버전 정보
	r.GET("/version", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"version":    Version,
			"build_time": BuildTime,
		})
	})

	// API v1
	v1 := r.Group("/api/v1")
	{
		// 마스터 디렉터리 (조회 전용)
		v1.GET("/products", h.Master.ListProducts)
		v1.GET("/materials", h.Master.ListMaterials)
		v1.GET("/lines", h.Master.ListLines)
		v1.GET("/processes", h.Master.ListProcesses)
		v1.GET("/equipments", h.Master.ListEquipments)

		// 라우팅 / 스텝
		routings := v1.Group("/routings")
		{
			routings.GET("", h.Routing.List)
			routings.POST("", h.Routing.Create)
			routings.GET("/:id", h.Routing.Get)
			routings.DELETE("/:id", h.Routing.Delete)

			routings.GET("/:id/steps", h.Routing.ListSteps)
			routings.POST("/:id/steps", h.Routing.AppendStep)
			routings.PUT("/:id/steps", h.Routing.SaveSteps)
			routings.PUT("/:id/steps/:stepId", h.Routing.UpdateStep)
			routings.DELETE("/:id/steps/:stepId", h.Routing.DeleteStep)
			routings.POST("/:id/steps/:stepId/move", h.Routing.MoveStep)
		}

		// BOM / 자재 행
		boms := v1.Group("/boms")
		{
			boms.GET("", h.BOM.List)
			boms.POST("", h.BOM.Create)
			boms.GET("/:id", h.BOM.Get)
			boms.DELETE("/:id", h.BOM.Delete)

			boms.GET("/:id/items", h.BOM.ListItems)
			boms.POST("/:id/items", h.BOM.AddItem)
			boms.PUT("/:id/items", h.BOM.SaveItems)
			boms.PUT("/:id/items/:itemId", h.BOM.UpdateItem)
			boms.DELETE("/:id/items/:itemId", h.BOM.DeleteItem)
		}

		// 생산계획
		plans := v1.Group("/plans")
		{
			plans.GET("", h.Plan.ListPlans)
			plans.POST("", h.Plan.CreatePlan)
			plans.GET("/:id", h.Plan.GetPlan)
			plans.PUT("/:id", h.Plan.UpdatePlan)
			plans.DELETE("/:id", h.Plan.DeletePlan)
		}

		// 작업지시 / 생산실적
		orders := v1.Group("/work-orders")
		{
			orders.GET("", h.Plan.ListWorkOrders)
			orders.POST("", h.Plan.CreateWorkOrder)
			orders.GET("/:id", h.Plan.GetWorkOrder)
			orders.PUT("/:id", h.Plan.UpdateWorkOrder)
			orders.DELETE("/:id", h.Plan.DeleteWorkOrder)
			orders.POST("/:id/results", h.Plan.RecordResult)
		}
		v1.GET("/results", h.Plan.ListResults)
	}

	// 영속 BOM 헤더 (레거시 계약 유지)
	mes := r.Group("/api/mes")
	{
		mes.GET("/boms", h.MESBOM.List)
		mes.POST("/boms", h.MESBOM.Create)
		mes.DELETE("/boms", h.MESBOM.Delete)
	}
}
