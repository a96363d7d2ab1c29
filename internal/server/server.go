package server

import (
	"context"
	"net/http"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/ascendly/ascendly/internal/analytics"
	analyticsdomain "github.com/ascendly/ascendly/internal/analytics/domain"
	"github.com/ascendly/ascendly/internal/auth"
	authdomain "github.com/ascendly/ascendly/internal/auth/domain"
	"github.com/ascendly/ascendly/internal/clock"
	"github.com/ascendly/ascendly/internal/commission"
	commissiondomain "github.com/ascendly/ascendly/internal/commission/domain"
	"github.com/ascendly/ascendly/internal/config"
	"github.com/ascendly/ascendly/internal/course"
	coursedomain "github.com/ascendly/ascendly/internal/course/domain"
	"github.com/ascendly/ascendly/internal/currency"
	"github.com/ascendly/ascendly/internal/membership"
	"github.com/ascendly/ascendly/internal/migration"
	"github.com/ascendly/ascendly/internal/observability"
	obslogger "github.com/ascendly/ascendly/internal/observability/logger"
	obsmetrics "github.com/ascendly/ascendly/internal/observability/metrics"
	obstracing "github.com/ascendly/ascendly/internal/observability/tracing"
	"github.com/ascendly/ascendly/internal/payment"
	"github.com/ascendly/ascendly/internal/providers/pdf"
	"github.com/ascendly/ascendly/internal/ratelimit"
	"github.com/ascendly/ascendly/internal/referral"
	referraldomain "github.com/ascendly/ascendly/internal/referral/domain"
	"github.com/ascendly/ascendly/internal/user"
	userdomain "github.com/ascendly/ascendly/internal/user/domain"
	"github.com/ascendly/ascendly/pkg/db"
)

var Module = fx.Module("http.server",
	config.Module,
	observability.Module,
	clock.Module,
	db.Module,
	migration.Module,
	currency.Module,
	user.Module,
	payment.Module,
	membership.Module,
	commission.Module,
	course.Module,
	referral.Module,
	analytics.Module,
	auth.Module,
	ratelimit.Module,
	pdf.Module,
	fx.Provide(registerGin),
	fx.Invoke(NewServer),
	fx.Invoke(run),
)

func NewEngine(obsCfg observability.Config, log *zap.Logger, httpMetrics *obsmetrics.HTTPMetrics) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(obslogger.GinMiddleware(log, obslogger.MiddlewareConfig{
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

func registerGin(obsCfg observability.Config, log *zap.Logger, httpMetrics *obsmetrics.HTTPMetrics) *gin.Engine {
	return NewEngine(obsCfg, log, httpMetrics)
}

func run(lc fx.Lifecycle, r *gin.Engine, cfg config.Config, log *zap.Logger) {
	srv := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: r,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			log.Info("http server listening", zap.String("addr", cfg.HTTPAddr))
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
	engine           *gin.Engine
	cfg              config.Config
	db               *gorm.DB
	log              *zap.Logger
	genID            *snowflake.Node
	clock            clock.Clock
	authSvc          authdomain.Service
	analyticsSvc     analyticsdomain.Service
	courseSvc        coursedomain.Service
	referralSvc      referraldomain.Service
	users            userdomain.Repository
	commissions      commissiondomain.Repository
	pdfProvider      pdf.Provider
	dashboardLimiter *ratelimit.DashboardLimiter
}

type ServerParams struct {
	fx.In

	Gin              *gin.Engine
	Cfg              config.Config
	DB               *gorm.DB
	Log              *zap.Logger
	GenID            *snowflake.Node
	Clock            clock.Clock
	AuthSvc          authdomain.Service
	AnalyticsSvc     analyticsdomain.Service
	CourseSvc        coursedomain.Service
	ReferralSvc      referraldomain.Service
	Users            userdomain.Repository
	Commissions      commissiondomain.Repository
	PDFProvider      pdf.Provider
	DashboardLimiter *ratelimit.DashboardLimiter `optional:"true"`
}

func NewServer(p ServerParams) *Server {
	svc := &Server{
		engine:           p.Gin,
		cfg:              p.Cfg,
		db:               p.DB,
		log:              p.Log.Named("http"),
		genID:            p.GenID,
		clock:            p.Clock,
		authSvc:          p.AuthSvc,
		analyticsSvc:     p.AnalyticsSvc,
		courseSvc:        p.CourseSvc,
		referralSvc:      p.ReferralSvc,
		users:            p.Users,
		commissions:      p.Commissions,
		pdfProvider:      p.PDFProvider,
		dashboardLimiter: p.DashboardLimiter,
	}

	svc.registerPublicRoutes()
	svc.registerAffiliateRoutes()
	svc.registerAdminRoutes()

	return svc
}

func (s *Server) registerPublicRoutes() {
	s.engine.GET("/courses", s.listPublishedCourses)
}

func (s *Server) registerAffiliateRoutes() {
	grp := s.engine.Group("/affiliate", s.AuthRequired(), s.RequireRole(userdomain.RoleAffiliate))
	grp.POST("/referrals", s.createReferralCode)
	grp.GET("/commissions", s.listMyCommissions)
}

func (s *Server) registerAdminRoutes() {
	grp := s.engine.Group("/admin", s.AuthRequired(), s.RequireRole(userdomain.RoleAdmin))
	grp.GET("/analytics/dashboard", s.analyticsDashboard)
	grp.GET("/analytics/export", s.analyticsExport)
	grp.GET("/users", s.listUsers)
	grp.POST("/courses", s.createCourse)
	grp.POST("/courses/:slug/publish", s.publishCourse)
}
