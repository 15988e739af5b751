package spycatagency

import (
	"context"
	"net"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/4oBuko/spycats/internal/metrics"
	"github.com/4oBuko/spycats/internal/services"
)

var Endpoints = struct {
	CatCreate string
	CatGet    string
	CatGetAll string
	CatUpdate string
	CatDelete string

	MissionCreate   string
	MissionGet      string
	MissionGetAll   string
	MissionUpdate   string
	MissionDelete   string
	MissionAssign   string
	MissionComplete string

	TargetGet      string
	TargetUpdate   string
	TargetComplete string

	Metrics string
	Health  string
}{
	CatCreate: "/cats/",
	CatGet:    "/cats/:id/",
	CatUpdate: "/cats/:id/",
	CatDelete: "/cats/:id/",
	CatGetAll: "/cats/",

	MissionCreate:   "/missions/",
	MissionGet:      "/missions/:id/",
	MissionGetAll:   "/missions/",
	MissionUpdate:   "/missions/:id/",
	MissionDelete:   "/missions/:id/",
	MissionAssign:   "/missions/:id/assign_cat/",
	MissionComplete: "/missions/:id/complete/",

	TargetGet:      "/missions/:id/targets/:targetId/",
	TargetUpdate:   "/missions/:id/targets/:targetId/",
	TargetComplete: "/missions/:id/targets/:targetId/complete/",

	Metrics: "/metrics",
	Health:  "/healthz",
}

type Options struct {
	Addr          string
	CorsOrigins   []string
	EnableMetrics bool
	Logger        *zap.SugaredLogger
	// HealthCheck is called by the health endpoint, usually a database ping.
	HealthCheck func(ctx context.Context) error
}

type Server struct {
	router         *gin.Engine
	httpServer     *http.Server
	catService     services.CatService
	missionService services.MissionService
	logger         *zap.SugaredLogger
	healthCheck    func(ctx context.Context) error
}

func NewServer(catService services.CatService, missionService services.MissionService, opts Options) *Server {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	router := gin.New()

	server := &Server{
		router:         router,
		catService:     catService,
		missionService: missionService,
		logger:         logger,
		healthCheck:    opts.HealthCheck,
	}
	server.httpServer = &http.Server{
		Addr:              opts.Addr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	router.Use(recovery(logger), requestId(), accessLog(logger))
	if opts.EnableMetrics {
		router.Use(metrics.NewMetricHandler())
		router.GET(Endpoints.Metrics, gin.WrapH(promhttp.Handler()))
	}
	if len(opts.CorsOrigins) > 0 {
		router.Use(cors.New(cors.Config{
			AllowOrigins:  opts.CorsOrigins,
			AllowMethods:  []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
			AllowHeaders:  []string{"Origin", "Content-Type", requestIdHeader},
			ExposeHeaders: []string{"Content-Length", requestIdHeader},
			MaxAge:        12 * time.Hour,
		}))
	}

	router.GET(Endpoints.Health, server.handleHealth)

	router.POST(Endpoints.CatCreate, server.handleAddCat)
	router.GET(Endpoints.CatGet, server.handleGetCat)
	router.GET(Endpoints.CatGetAll, server.handleGetAllCats)
	router.PUT(Endpoints.CatUpdate, server.handleReplaceCat)
	router.PATCH(Endpoints.CatUpdate, server.handleUpdateCat)
	router.DELETE(Endpoints.CatDelete, server.handleDeleteCat)

	router.POST(Endpoints.MissionCreate, server.handleAddMission)
	router.GET(Endpoints.MissionGet, server.handleGetMission)
	router.GET(Endpoints.MissionGetAll, server.handleGetAllMissions)
	router.PUT(Endpoints.MissionUpdate, server.handleUpdateMission)
	router.PATCH(Endpoints.MissionUpdate, server.handleUpdateMission)
	router.DELETE(Endpoints.MissionDelete, server.handleDeleteMission)
	router.PATCH(Endpoints.MissionAssign, server.handleAssignCat)
	router.PATCH(Endpoints.MissionComplete, server.handleCompleteMission)

	router.GET(Endpoints.TargetGet, server.handleGetTarget)
	router.PATCH(Endpoints.TargetUpdate, server.handleUpdateTarget)
	router.PATCH(Endpoints.TargetComplete, server.handleCompleteTarget)
	return server
}

func (s *Server) handleHealth(ctx *gin.Context) {
	if s.healthCheck != nil {
		if err := s.healthCheck(ctx.Request.Context()); err != nil {
			s.logger.Warnw("health check failed", "error", err)
			ctx.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
			return
		}
	}
	ctx.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *Server) Run() error {
	s.logger.Infow("listening", "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Serve accepts connections on l until Shutdown is called.
func (s *Server) Serve(l net.Listener) error {
	return s.httpServer.Serve(l)
}

// Shutdown stops accepting connections and waits for active requests.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

func (s *Server) Handler() http.Handler {
	return s.router
}
