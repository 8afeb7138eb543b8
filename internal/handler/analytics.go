package handler

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"sellerhub/internal/apierror"
	"sellerhub/internal/middleware"
	"sellerhub/internal/service"
	"sellerhub/internal/worker"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

// AnalyticsHandler exposes the read-only analytics surface. KPI and dashboard
// responses for the default window are cached in Redis for a short TTL since
// they are recomputed from full sale history on every call.
type AnalyticsHandler struct {
	analytics  service.AnalyticsService
	dispatcher *worker.Dispatcher
	rdb        *redis.Client
	cacheTTL   time.Duration
}

func NewAnalyticsHandler(analytics service.AnalyticsService, dispatcher *worker.Dispatcher, rdb *redis.Client, cacheTTL time.Duration) *AnalyticsHandler {
	return &AnalyticsHandler{analytics: analytics, dispatcher: dispatcher, rdb: rdb, cacheTTL: cacheTTL}
}

// serveCached writes a cached JSON payload if present. Cache failures are
// logged and ignored: the cache is an optimization, never a dependency.
func (h *AnalyticsHandler) serveCached(c *gin.Context, key string) bool {
	cached, err := h.rdb.Get(c.Request.Context(), key).Bytes()
	if err != nil {
		return false
	}
	c.Data(http.StatusOK, "application/json; charset=utf-8", cached)
	return true
}

func (h *AnalyticsHandler) storeCached(c *gin.Context, key string, payload interface{}) {
	data, err := json.Marshal(payload)
	if err != nil {
		return
	}
	if err := h.rdb.Set(c.Request.Context(), key, data, h.cacheTTL).Err(); err != nil {
		log.Warn().Err(err).Str("key", key).Msg("analytics cache write failed")
	}
}

// parseWindow reads the optional from/to query params (YYYY-MM-DD, inclusive).
func parseWindow(c *gin.Context) (from, to *time.Time, ok bool) {
	if raw := c.Query("from"); raw != "" {
		d, err := time.Parse("2006-01-02", raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, apierror.New("invalid from date, expected YYYY-MM-DD"))
			return nil, nil, false
		}
		from = &d
	}
	if raw := c.Query("to"); raw != "" {
		d, err := time.Parse("2006-01-02", raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, apierror.New("invalid to date, expected YYYY-MM-DD"))
			return nil, nil, false
		}
		to = &d
	}
	return from, to, true
}

// Metrics godoc
// @Summary  Scalar KPIs for the caller's store
// @Tags     analytics
// @Produce  json
// @Param    from query string false "window start (YYYY-MM-DD, inclusive)"
// @Param    to   query string false "window end (YYYY-MM-DD, inclusive)"
// @Success  200 {object} dto.SellerMetrics
// @Router   /v1/analytics/metrics [get]
func (h *AnalyticsHandler) Metrics(c *gin.Context) {
	storeID, ok := tenant(c)
	if !ok {
		return
	}
	from, to, ok := parseWindow(c)
	if !ok {
		return
	}

	// Only the default window is cached; explicit windows are ad hoc.
	cacheKey := ""
	if from == nil && to == nil {
		cacheKey = fmt.Sprintf("analytics:metrics:%s", storeID)
		if h.serveCached(c, cacheKey) {
			return
		}
	}

	resp, err := h.analytics.Metrics(c.Request.Context(), storeID, from, to)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	if cacheKey != "" {
		h.storeCached(c, cacheKey, resp)
	}
	c.JSON(http.StatusOK, resp)
}

// Trend godoc
// @Summary  Daily sales trend buckets
// @Tags     analytics
// @Produce  json
// @Param    days query int false "trailing window in days (default 30)"
// @Success  200 {array} dto.TrendPoint
// @Router   /v1/analytics/trend [get]
func (h *AnalyticsHandler) Trend(c *gin.Context) {
	storeID, ok := tenant(c)
	if !ok {
		return
	}
	days, _ := strconv.Atoi(c.DefaultQuery("days", "30"))
	resp, err := h.analytics.SalesTrend(c.Request.Context(), storeID, days)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *AnalyticsHandler) HourlyTrend(c *gin.Context) {
	storeID, ok := tenant(c)
	if !ok {
		return
	}
	resp, err := h.analytics.HourlySalesTrend(c.Request.Context(), storeID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Rankings godoc
// @Summary  Best-selling and most-profitable rankings plus category breakdown
// @Tags     analytics
// @Produce  json
// @Success  200 {object} dto.SalesRankings
// @Router   /v1/analytics/rankings [get]
func (h *AnalyticsHandler) Rankings(c *gin.Context) {
	storeID, ok := tenant(c)
	if !ok {
		return
	}
	resp, err := h.analytics.Rankings(c.Request.Context(), storeID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *AnalyticsHandler) Inventory(c *gin.Context) {
	storeID, ok := tenant(c)
	if !ok {
		return
	}
	resp, err := h.analytics.InventoryReport(c.Request.Context(), storeID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *AnalyticsHandler) Profitability(c *gin.Context) {
	storeID, ok := tenant(c)
	if !ok {
		return
	}
	resp, err := h.analytics.Profitability(c.Request.Context(), storeID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Forecast godoc
// @Summary  Trailing-average demand forecast with restock recommendations
// @Tags     analytics
// @Produce  json
// @Param    days query int false "forecast horizon in days (default 30)"
// @Success  200 {object} dto.DemandForecast
// @Router   /v1/analytics/forecast [get]
func (h *AnalyticsHandler) Forecast(c *gin.Context) {
	storeID, ok := tenant(c)
	if !ok {
		return
	}
	days, _ := strconv.Atoi(c.DefaultQuery("days", "30"))
	resp, err := h.analytics.Forecast(c.Request.Context(), storeID, days)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *AnalyticsHandler) Alerts(c *gin.Context) {
	storeID, ok := tenant(c)
	if !ok {
		return
	}
	resp, err := h.analytics.Alerts(c.Request.Context(), storeID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *AnalyticsHandler) ActivityFeed(c *gin.Context) {
	storeID, ok := tenant(c)
	if !ok {
		return
	}
	resp, err := h.analytics.ActivityFeed(c.Request.Context(), storeID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Dashboard godoc
// @Summary  Combined dashboard payload (KPIs, weekly trend, alerts, feed)
// @Tags     analytics
// @Produce  json
// @Success  200 {object} dto.DashboardSummary
// @Router   /v1/analytics/dashboard [get]
func (h *AnalyticsHandler) Dashboard(c *gin.Context) {
	storeID, ok := tenant(c)
	if !ok {
		return
	}
	cacheKey := fmt.Sprintf("analytics:dashboard:%s", storeID)
	if h.serveCached(c, cacheKey) {
		return
	}
	resp, err := h.analytics.Dashboard(c.Request.Context(), storeID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	h.storeCached(c, cacheKey, resp)
	c.JSON(http.StatusOK, resp)
}

// RequestReport enqueues async generation of a PDF sales report, emailed to
// the caller (or an explicit recipient).
func (h *AnalyticsHandler) RequestReport(c *gin.Context) {
	storeID, ok := tenant(c)
	if !ok {
		return
	}

	var req struct {
		ToEmail string `json:"to_email" validate:"omitempty,email"`
	}
	if c.Request.ContentLength > 0 {
		if !bindAndValidate(c, &req) {
			return
		}
	}
	if req.ToEmail == "" {
		claims := middleware.GetClaims(c)
		if claims == nil || claims.Email == "" {
			c.JSON(http.StatusBadRequest, apierror.New("no recipient email available"))
			return
		}
		req.ToEmail = claims.Email
	}

	payload := worker.ReportJobPayload{StoreID: storeID.String(), ToEmail: req.ToEmail}
	if err := h.dispatcher.EnqueueReport(c.Request.Context(), payload); err != nil {
		log.Error().Err(err).Msg("failed to enqueue report job")
		c.JSON(http.StatusServiceUnavailable, apierror.New("report queue unavailable"))
		return
	}
	c.JSON(http.StatusAccepted, gin.H{"status": "queued", "to_email": req.ToEmail})
}
