package httpapi

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"coop_renewal_service/internal/app"

	"github.com/goccy/go-json"
	"github.com/sirupsen/logrus"
	"github.com/valyala/fasthttp"
)

// Server exposes the engine's web actions: renewal overviews, mark-as-renewed,
// bulk reminders, compliance grids, and in-app notification endpoints.
type Server struct {
	renewals      *app.RenewalService
	compliance    *app.ComplianceService
	reminders     *app.ReminderService
	notifications *app.NotificationService
	logger        *logrus.Logger

	srv *fasthttp.Server
}

func NewServer(
	renewals *app.RenewalService,
	compliance *app.ComplianceService,
	reminders *app.ReminderService,
	notifications *app.NotificationService,
	logger *logrus.Logger,
) *Server {
	s := &Server{
		renewals:      renewals,
		compliance:    compliance,
		reminders:     reminders,
		notifications: notifications,
		logger:        logger,
	}
	s.srv = &fasthttp.Server{
		Handler:      s.route,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}
	return s
}

func (s *Server) ListenAndServe(addr string) error {
	s.logger.Infof("HTTP API listening on %s", addr)
	return s.srv.ListenAndServe(addr)
}

func (s *Server) Shutdown() error {
	return s.srv.Shutdown()
}

func (s *Server) route(ctx *fasthttp.RequestCtx) {
	path := string(ctx.Path())
	method := string(ctx.Method())
	parts := splitPath(path)

	switch {
	case method == fasthttp.MethodGet && path == "/api/renewals":
		s.handleRenewalsOverview(ctx)
	case method == fasthttp.MethodGet && path == "/api/dashboard":
		s.handleDashboard(ctx)
	case method == fasthttp.MethodGet && len(parts) == 4 && parts[0] == "api" && parts[1] == "batches" && parts[3] == "renewals":
		s.handleBatchRenewals(ctx, parts[2])
	case method == fasthttp.MethodGet && len(parts) == 4 && parts[0] == "api" && parts[1] == "vehicles" && parts[3] == "expiry":
		s.handleVehicleExpiry(ctx, parts[2])
	case method == fasthttp.MethodPost && len(parts) == 4 && parts[0] == "api" && parts[1] == "vehicles" && parts[3] == "renew":
		s.handleMarkRenewed(ctx, parts[2])
	case method == fasthttp.MethodPost && path == "/api/reminders/bulk":
		s.handleBulkReminders(ctx)
	case method == fasthttp.MethodGet && len(parts) == 3 && parts[0] == "api" && parts[1] == "compliance":
		s.handleComplianceYear(ctx, parts[2])
	case method == fasthttp.MethodGet && len(parts) == 4 && parts[0] == "api" && parts[1] == "compliance" && parts[3] == "services":
		s.handleServiceBreakdown(ctx, parts[2])
	case method == fasthttp.MethodGet && len(parts) == 5 && parts[0] == "api" && parts[1] == "compliance" && parts[3] == "members":
		s.handleMemberCompliance(ctx, parts[2], parts[4])
	case method == fasthttp.MethodGet && path == "/api/notifications/unread-count":
		s.handleUnreadCount(ctx)
	case method == fasthttp.MethodPost && path == "/api/notifications/mark-all-read":
		s.handleMarkAllRead(ctx)
	case method == fasthttp.MethodGet && path == "/api/notifications/recent":
		s.handleRecentNotifications(ctx)
	default:
		writeError(ctx, fasthttp.StatusNotFound, "not found")
	}
}

func splitPath(path string) []string {
	return strings.Split(strings.Trim(path, "/"), "/")
}

type errorResponse struct {
	Status  int    `json:"status"`
	Message string `json:"message"`
}

func writeJSON(ctx *fasthttp.RequestCtx, status int, v any) {
	body, err := json.Marshal(v)
	if err != nil {
		ctx.SetStatusCode(fasthttp.StatusInternalServerError)
		return
	}
	ctx.SetContentType("application/json")
	ctx.SetStatusCode(status)
	ctx.SetBody(body)
}

func writeError(ctx *fasthttp.RequestCtx, status int, message string) {
	writeJSON(ctx, status, errorResponse{Status: status, Message: message})
}

func unmarshalBody(body []byte, v any) error {
	return json.Unmarshal(body, v)
}

// today resolves the reference date of a request: an explicit as_of override
// for deterministic inspection, otherwise the server's current day.
func today(ctx *fasthttp.RequestCtx) (time.Time, error) {
	raw := string(ctx.QueryArgs().Peek("as_of"))
	if raw == "" {
		return time.Now(), nil
	}
	t, err := time.Parse("2006-01-02", raw)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid as_of date %q", raw)
	}
	return t, nil
}

func pathID(raw string) (int64, error) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid id %q", raw)
	}
	return id, nil
}
