// internal/web/handlers.go
package web

import (
    "errors"
    "net/http"
    "strconv"

    "github.com/gin-gonic/gin"
    "github.com/sirupsen/logrus"
    "netwarden/internal/config"
    "netwarden/internal/control"
    "netwarden/internal/monitor"
    "netwarden/internal/worker"
)

// fail maps the control-plane error taxonomy onto HTTP status codes. The
// message text surfaces to the caller verbatim.
func fail(c *gin.Context, err error) {
    status := http.StatusInternalServerError

    var ruleErr *control.UnsupportedRuleTypeError
    var domainErr *worker.DomainError
    switch {
    case errors.Is(err, control.ErrNotFound):
        status = http.StatusNotFound
    case errors.Is(err, monitor.ErrAlreadyRunning):
        status = http.StatusConflict
    case errors.As(err, &ruleErr):
        status = http.StatusBadRequest
    case errors.As(err, &domainErr):
        status = http.StatusUnprocessableEntity
    }

    c.JSON(status, gin.H{"error": err.Error()})
}

// POST /api/monitoring/start
func (s *Server) startMonitoring(c *gin.Context) {
    if err := s.controller.StartMonitoring(); err != nil {
        logrus.WithError(err).Error("Failed to start monitoring")
        fail(c, err)
        return
    }
    s.broadcastStatus()
    c.JSON(http.StatusOK, gin.H{"status": "started"})
}

// POST /api/monitoring/stop
func (s *Server) stopMonitoring(c *gin.Context) {
    s.controller.StopMonitoring()
    s.broadcastStatus()
    c.JSON(http.StatusOK, gin.H{"status": "stopped"})
}

// GET /api/monitoring/status
func (s *Server) getStatus(c *gin.Context) {
    c.JSON(http.StatusOK, s.controller.Status())
}

// GET /api/devices
func (s *Server) getDevices(c *gin.Context) {
    devices, err := s.controller.ListDevices(c.Request.Context())
    if err != nil {
        fail(c, err)
        return
    }
    c.JSON(http.StatusOK, devices)
}

// POST /api/devices/scan
func (s *Server) scanDevices(c *gin.Context) {
    devices, err := s.controller.ScanDevices(c.Request.Context())
    if err != nil {
        fail(c, err)
        return
    }
    c.JSON(http.StatusOK, devices)
}

type deviceMonitoringRequest struct {
    Enabled bool `json:"enabled"`
}

// PUT /api/devices/:id/monitoring
func (s *Server) setDeviceMonitoring(c *gin.Context) {
    var req deviceMonitoringRequest
    if err := c.ShouldBindJSON(&req); err != nil {
        c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
        return
    }

    if err := s.controller.SetDeviceMonitoring(c.Request.Context(), c.Param("id"), req.Enabled); err != nil {
        fail(c, err)
        return
    }
    c.JSON(http.StatusOK, gin.H{"status": "updated"})
}

// GET /api/traffic?limit=&offset=&device_id=
func (s *Server) getTraffic(c *gin.Context) {
    limit, _ := strconv.Atoi(c.DefaultQuery("limit", "100"))
    offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

    entries, err := s.controller.ListTraffic(c.Request.Context(), limit, offset, c.Query("device_id"))
    if err != nil {
        fail(c, err)
        return
    }
    c.JSON(http.StatusOK, entries)
}

// GET /api/traffic/search?q=
func (s *Server) searchTraffic(c *gin.Context) {
    query := c.Query("q")
    if query == "" {
        c.JSON(http.StatusBadRequest, gin.H{"error": "missing query parameter q"})
        return
    }

    entries, err := s.controller.SearchTraffic(c.Request.Context(), query)
    if err != nil {
        fail(c, err)
        return
    }
    c.JSON(http.StatusOK, entries)
}

// GET /api/traffic/:id
func (s *Server) getTrafficDetails(c *gin.Context) {
    entry, err := s.controller.TrafficDetails(c.Request.Context(), c.Param("id"))
    if err != nil {
        fail(c, err)
        return
    }
    c.JSON(http.StatusOK, entry)
}

// GET /api/alerts?unread=true
func (s *Server) getAlerts(c *gin.Context) {
    unreadOnly := c.Query("unread") == "true"

    alerts, err := s.controller.ListAlerts(c.Request.Context(), unreadOnly)
    if err != nil {
        fail(c, err)
        return
    }
    c.JSON(http.StatusOK, alerts)
}

// POST /api/alerts/:id/read
func (s *Server) markAlertRead(c *gin.Context) {
    if err := s.controller.MarkAlertRead(c.Request.Context(), c.Param("id")); err != nil {
        fail(c, err)
        return
    }
    c.JSON(http.StatusOK, gin.H{"status": "read"})
}

// POST /api/alerts/:id/resolve
func (s *Server) resolveAlert(c *gin.Context) {
    if err := s.controller.ResolveAlert(c.Request.Context(), c.Param("id")); err != nil {
        fail(c, err)
        return
    }
    c.JSON(http.StatusOK, gin.H{"status": "resolved"})
}

// DELETE /api/alerts/:id
func (s *Server) deleteAlert(c *gin.Context) {
    if err := s.controller.DeleteAlert(c.Request.Context(), c.Param("id")); err != nil {
        fail(c, err)
        return
    }
    c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}

// POST /api/alerts/read-all
func (s *Server) markAllAlertsRead(c *gin.Context) {
    if err := s.controller.MarkAllAlertsRead(c.Request.Context()); err != nil {
        fail(c, err)
        return
    }
    c.JSON(http.StatusOK, gin.H{"status": "read"})
}

// GET /api/stats
func (s *Server) getStats(c *gin.Context) {
    stats, err := s.controller.Stats(c.Request.Context())
    if err != nil {
        fail(c, err)
        return
    }
    c.JSON(http.StatusOK, stats)
}

type blockRuleRequest struct {
    Type  string `json:"type" binding:"required"`
    Value string `json:"value" binding:"required"`
}

// POST /api/blocking/rules
func (s *Server) addBlockRule(c *gin.Context) {
    var req blockRuleRequest
    if err := c.ShouldBindJSON(&req); err != nil {
        c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
        return
    }

    if err := s.controller.AddBlockRule(c.Request.Context(), req.Type, req.Value); err != nil {
        fail(c, err)
        return
    }
    c.JSON(http.StatusOK, gin.H{"status": "added"})
}

// DELETE /api/blocking/rules
func (s *Server) removeBlockRule(c *gin.Context) {
    var req blockRuleRequest
    if err := c.ShouldBindJSON(&req); err != nil {
        c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
        return
    }

    if err := s.controller.RemoveBlockRule(c.Request.Context(), req.Type, req.Value); err != nil {
        fail(c, err)
        return
    }
    c.JSON(http.StatusOK, gin.H{"status": "removed"})
}

type toggleCategoryRequest struct {
    Enabled bool `json:"enabled"`
}

// PUT /api/blocking/categories/:id
func (s *Server) toggleCategory(c *gin.Context) {
    var req toggleCategoryRequest
    if err := c.ShouldBindJSON(&req); err != nil {
        c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
        return
    }

    if err := s.controller.ToggleCategory(c.Request.Context(), c.Param("id"), req.Enabled); err != nil {
        fail(c, err)
        return
    }
    c.JSON(http.StatusOK, gin.H{"status": "updated"})
}

// GET /api/blocking/config
func (s *Server) getBlockConfig(c *gin.Context) {
    result, err := s.controller.BlockConfig(c.Request.Context())
    if err != nil {
        fail(c, err)
        return
    }
    c.JSON(http.StatusOK, result)
}

// GET /api/blocking/check?domain=
func (s *Server) checkDomain(c *gin.Context) {
    domain := c.Query("domain")
    if domain == "" {
        c.JSON(http.StatusBadRequest, gin.H{"error": "missing query parameter domain"})
        return
    }

    result, err := s.controller.CheckDomain(c.Request.Context(), domain)
    if err != nil {
        fail(c, err)
        return
    }
    c.JSON(http.StatusOK, result)
}

// GET /api/settings
func (s *Server) getSettings(c *gin.Context) {
    settings, err := s.controller.GetSettings()
    if err != nil {
        fail(c, err)
        return
    }
    c.JSON(http.StatusOK, settings)
}

// PUT /api/settings
func (s *Server) updateSettings(c *gin.Context) {
    var settings config.Settings
    if err := c.ShouldBindJSON(&settings); err != nil {
        c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
        return
    }

    if err := s.controller.UpdateSettings(settings); err != nil {
        fail(c, err)
        return
    }
    c.JSON(http.StatusOK, gin.H{"status": "saved"})
}

type stealthProfileRequest struct {
    ProfileID string `json:"profile_id" binding:"required"`
}

// POST /api/stealth/profile
func (s *Server) changeStealthProfile(c *gin.Context) {
    var req stealthProfileRequest
    if err := c.ShouldBindJSON(&req); err != nil {
        c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
        return
    }

    if err := s.controller.ChangeStealthProfile(c.Request.Context(), req.ProfileID); err != nil {
        fail(c, err)
        return
    }
    s.broadcastStatus()
    c.JSON(http.StatusOK, gin.H{"status": "applied"})
}

// GET /api/stealth/profiles
func (s *Server) getStealthProfiles(c *gin.Context) {
    result, err := s.controller.ListStealthProfiles(c.Request.Context())
    if err != nil {
        fail(c, err)
        return
    }
    c.JSON(http.StatusOK, result)
}

type certificateRequest struct {
    Profile string `json:"profile" binding:"required"`
}

// POST /api/certificates/generate
func (s *Server) generateCertificate(c *gin.Context) {
    var req certificateRequest
    if err := c.ShouldBindJSON(&req); err != nil {
        c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
        return
    }

    message, err := s.controller.GenerateCertificate(c.Request.Context(), req.Profile)
    if err != nil {
        fail(c, err)
        return
    }
    c.JSON(http.StatusOK, gin.H{"message": message})
}

// POST /api/certificates/server
func (s *Server) startCertServer(c *gin.Context) {
    message, err := s.controller.StartCertServer()
    if err != nil {
        fail(c, err)
        return
    }
    c.JSON(http.StatusOK, gin.H{"message": message})
}

// GET /api/certificates/url
func (s *Server) getCertURL(c *gin.Context) {
    url, err := s.controller.CertURL(c.Request.Context())
    if err != nil {
        fail(c, err)
        return
    }
    c.JSON(http.StatusOK, gin.H{"url": url})
}

type exportRequest struct {
    Format string `json:"format" binding:"required"`
    Path   string `json:"path" binding:"required"`
}

// POST /api/export
func (s *Server) exportData(c *gin.Context) {
    var req exportRequest
    if err := c.ShouldBindJSON(&req); err != nil {
        c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
        return
    }

    if err := s.controller.ExportData(c.Request.Context(), req.Format, req.Path); err != nil {
        fail(c, err)
        return
    }
    c.JSON(http.StatusOK, gin.H{"status": "exported"})
}

// GET /api/interfaces
func (s *Server) getNetworkInterfaces(c *gin.Context) {
    result, err := s.controller.ListNetworkInterfaces(c.Request.Context())
    if err != nil {
        fail(c, err)
        return
    }
    c.JSON(http.StatusOK, result)
}

// GET /api/privileges
func (s *Server) checkPrivileges(c *gin.Context) {
    c.JSON(http.StatusOK, gin.H{"elevated": s.controller.IsElevated()})
}

type cleanupRequest struct {
    Days int `json:"days"`
}

// POST /api/database/cleanup
func (s *Server) cleanupDatabase(c *gin.Context) {
    var req cleanupRequest
    if err := c.ShouldBindJSON(&req); err != nil {
        c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
        return
    }
    if req.Days <= 0 {
        req.Days = 30
    }

    result, err := s.controller.CleanupDatabase(c.Request.Context(), req.Days)
    if err != nil {
        fail(c, err)
        return
    }
    c.JSON(http.StatusOK, result)
}

// GET /api/events?limit=
func (s *Server) getEvents(c *gin.Context) {
    limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))

    events, err := s.controller.RecentEvents(limit)
    if err != nil {
        fail(c, err)
        return
    }
    c.JSON(http.StatusOK, events)
}
