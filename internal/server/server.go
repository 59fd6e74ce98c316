package server

import (
	"context"
	"net/http"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/vendaflow/vendaflow/internal/commission"
	commissiondomain "github.com/vendaflow/vendaflow/internal/commission/domain"
	"github.com/vendaflow/vendaflow/internal/config"
	"github.com/vendaflow/vendaflow/internal/goal"
	goaldomain "github.com/vendaflow/vendaflow/internal/goal/domain"
	"github.com/vendaflow/vendaflow/internal/lead"
	"github.com/vendaflow/vendaflow/internal/meeting"
	meetingdomain "github.com/vendaflow/vendaflow/internal/meeting/domain"
	"github.com/vendaflow/vendaflow/internal/observability"
	obsmiddleware "github.com/vendaflow/vendaflow/internal/observability/logger"
	obsmetrics "github.com/vendaflow/vendaflow/internal/observability/metrics"
	obstracing "github.com/vendaflow/vendaflow/internal/observability/tracing"
	"github.com/vendaflow/vendaflow/internal/performance"
	perfdomain "github.com/vendaflow/vendaflow/internal/performance/domain"
	"github.com/vendaflow/vendaflow/internal/sale"
	saledomain "github.com/vendaflow/vendaflow/internal/sale/domain"
	"go.uber.org/fx"
	"gorm.io/gorm"
)

var Module = fx.Module("http.server",
	fx.Provide(registerGin),
	lead.Module,
	meeting.Module,
	sale.Module,
	goal.Module,
	performance.Module,
	commission.Module,
	fx.Invoke(NewServer),
	fx.Invoke(run),
)

func NewEngine(obsCfg observability.Config, httpMetrics *obsmetrics.HTTPMetrics) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(obsmiddleware.GinMiddleware(obsmiddleware.MiddlewareConfig{
		Debug:           obsCfg.Debug(),
		ErrorClassifier: classifyErrorForLog,
	}))
	r.Use(obstracing.GinMiddleware())
	r.Use(obsmetrics.GinMiddleware(httpMetrics))
	r.Use(ErrorHandlingMiddleware())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	return r
}

func registerGin(obsCfg observability.Config, httpMetrics *obsmetrics.HTTPMetrics) *gin.Engine {
	return NewEngine(obsCfg, httpMetrics)
}

func run(lc fx.Lifecycle, r *gin.Engine, cfg config.Config) {
	srv := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: r,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					panic(err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		},
	})
}

type Server struct {
	engine         *gin.Engine
	cfg            config.Config
	db             *gorm.DB
	genID          *snowflake.Node
	meetingSvc     meetingdomain.Service
	saleSvc        saledomain.Service
	goalSvc        goaldomain.Service
	performanceSvc perfdomain.Service
	commissionSvc  commissiondomain.Service
	obsMetrics     *obsmetrics.Metrics
}

type ServerParams struct {
	fx.In

	Gin            *gin.Engine
	Cfg            config.Config
	DB             *gorm.DB
	GenID          *snowflake.Node
	MeetingSvc     meetingdomain.Service
	SaleSvc        saledomain.Service
	GoalSvc        goaldomain.Service
	PerformanceSvc perfdomain.Service
	CommissionSvc  commissiondomain.Service
	ObsMetrics     *obsmetrics.Metrics `optional:"true"`
}

func NewServer(p ServerParams) *Server {
	svc := &Server{
		engine:         p.Gin,
		cfg:            p.Cfg,
		db:             p.DB,
		genID:          p.GenID,
		meetingSvc:     p.MeetingSvc,
		saleSvc:        p.SaleSvc,
		goalSvc:        p.GoalSvc,
		performanceSvc: p.PerformanceSvc,
		commissionSvc:  p.CommissionSvc,
		obsMetrics:     p.ObsMetrics,
	}

	svc.registerAgendamentosRoutes()
	svc.registerAdminRoutes()

	return svc
}

func (s *Server) Engine() *gin.Engine {
	return s.engine
}

func (s *Server) registerAgendamentosRoutes() {
	api := s.engine.Group("/agendamentos-api", s.APIKeyRequired())

	api.GET("", s.ListAgendamentos)
	api.POST("", s.CreateAgendamento)
	api.GET("/:id", s.GetAgendamento)
	api.POST("/:id/resultado", s.RecordAgendamentoResultado)
	api.POST("/:id/cancelar", s.CancelAgendamento)
}

func (s *Server) registerAdminRoutes() {
	admin := s.engine.Group("/admin", s.APIKeyRequired())

	// -------- Vendas --------
	admin.POST("/vendas", s.CreateVenda)
	admin.GET("/vendas/:id", s.GetVenda)
	admin.POST("/vendas/:id/aprovar", s.ApproveVenda)
	admin.POST("/vendas/:id/rejeitar", s.RejectVenda)

	// -------- Performance --------
	admin.GET("/performance", s.GetPerformanceStats)

	// -------- Metas --------
	admin.GET("/goals/semanais", s.ListWeeklyGoals)
	admin.PUT("/goals/semanais", s.UpsertWeeklyGoal)
	admin.PUT("/goals/mensais", s.UpsertMonthlyGoal)

	// -------- Comissao --------
	admin.GET("/commission/tiers", s.ListCommissionTiers)
	admin.POST("/commission/tiers", s.CreateCommissionTier)
	admin.PATCH("/commission/tiers/:id", s.UpdateCommissionTier)
	admin.POST("/commission/compute", s.ComputeCommission)
}
