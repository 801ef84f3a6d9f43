// internal/web/server.go
package web

import (
    "context"
    "net/http"
    "sync"
    "time"

    "github.com/gin-gonic/gin"
    "github.com/prometheus/client_golang/prometheus/promhttp"
    "github.com/sirupsen/logrus"
    "netwarden/internal/config"
    "netwarden/internal/control"
)

const Version = "1.0.0"

type Server struct {
    config     *config.Config
    controller *control.Controller
    router     *gin.Engine
    server     *http.Server

    wsMu      sync.Mutex
    wsClients map[*WSClient]bool
}

func NewServer(cfg *config.Config, controller *control.Controller) *Server {
    if cfg.Logging.Level != "debug" {
        gin.SetMode(gin.ReleaseMode)
    }

    router := gin.New()
    router.Use(gin.Logger())
    router.Use(gin.Recovery())
    router.Use(corsMiddleware())

    server := &Server{
        config:     cfg,
        controller: controller,
        router:     router,
        wsClients:  make(map[*WSClient]bool),
    }

    server.setupRoutes()
    return server
}

func (s *Server) Start(ctx context.Context) error {
    s.server = &http.Server{
        Addr:         s.config.Server.Port,
        Handler:      s.router,
        ReadTimeout:  s.config.Server.ReadTimeout,
        WriteTimeout: s.config.Server.WriteTimeout,
    }

    logrus.WithField("port", s.config.Server.Port).Info("Starting web server")

    go func() {
        if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
            logrus.WithError(err).Fatal("Failed to start server")
        }
    }()

    return nil
}

func (s *Server) Stop(ctx context.Context) error {
    if s.server != nil {
        return s.server.Shutdown(ctx)
    }
    return nil
}

func (s *Server) setupRoutes() {
    s.router.GET("/api/health", s.healthCheck)

    api := s.router.Group("/api")
    {
        api.POST("/monitoring/start", s.startMonitoring)
        api.POST("/monitoring/stop", s.stopMonitoring)
        api.GET("/monitoring/status", s.getStatus)

        api.GET("/devices", s.getDevices)
        api.POST("/devices/scan", s.scanDevices)
        api.PUT("/devices/:id/monitoring", s.setDeviceMonitoring)

        api.GET("/traffic", s.getTraffic)
        api.GET("/traffic/search", s.searchTraffic)
        api.GET("/traffic/:id", s.getTrafficDetails)

        api.GET("/alerts", s.getAlerts)
        api.POST("/alerts/read-all", s.markAllAlertsRead)
        api.POST("/alerts/:id/read", s.markAlertRead)
        api.POST("/alerts/:id/resolve", s.resolveAlert)
        api.DELETE("/alerts/:id", s.deleteAlert)

        api.GET("/stats", s.getStats)

        api.POST("/blocking/rules", s.addBlockRule)
        api.DELETE("/blocking/rules", s.removeBlockRule)
        api.PUT("/blocking/categories/:id", s.toggleCategory)
        api.GET("/blocking/config", s.getBlockConfig)
        api.GET("/blocking/check", s.checkDomain)

        api.GET("/settings", s.getSettings)
        api.PUT("/settings", s.updateSettings)

        api.POST("/stealth/profile", s.changeStealthProfile)
        api.GET("/stealth/profiles", s.getStealthProfiles)

        api.POST("/certificates/generate", s.generateCertificate)
        api.POST("/certificates/server", s.startCertServer)
        api.GET("/certificates/url", s.getCertURL)

        api.POST("/export", s.exportData)
        api.GET("/interfaces", s.getNetworkInterfaces)
        api.GET("/privileges", s.checkPrivileges)
        api.POST("/database/cleanup", s.cleanupDatabase)

        api.GET("/events", s.getEvents)
    }

    s.router.GET("/ws", s.handleWebSocket)

    if s.config.Prometheus.Enabled {
        s.router.GET(s.config.Prometheus.MetricsPath, gin.WrapH(promhttp.Handler()))
    }
}

func (s *Server) healthCheck(c *gin.Context) {
    c.JSON(http.StatusOK, gin.H{
        "status":    "healthy",
        "timestamp": time.Now(),
        "version":   Version,
    })
}

func corsMiddleware() gin.HandlerFunc {
    return func(c *gin.Context) {
        c.Header("Access-Control-Allow-Origin", "*")
        c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
        c.Header("Access-Control-Allow-Headers", "Content-Type, Authorization")

        if c.Request.Method == http.MethodOptions {
            c.AbortWithStatus(http.StatusNoContent)
            return
        }
        c.Next()
    }
}
