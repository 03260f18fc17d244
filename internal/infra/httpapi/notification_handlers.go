package httpapi

import (
	"time"

	"coop_renewal_service/internal/domain/notify"

	"github.com/valyala/fasthttp"
)

func recipientID(ctx *fasthttp.RequestCtx) (int64, error) {
	return pathID(string(ctx.QueryArgs().Peek("recipient_id")))
}

func (s *Server) handleUnreadCount(ctx *fasthttp.RequestCtx) {
	id, err := recipientID(ctx)
	if err != nil {
		writeError(ctx, fasthttp.StatusBadRequest, "invalid recipient_id")
		return
	}

	n, err := s.notifications.UnreadCount(ctx, id, time.Now())
	if err != nil {
		s.logger.Errorf("Unread count failed for user %d: %v", id, err)
		writeError(ctx, fasthttp.StatusInternalServerError, "failed to count unread notifications")
		return
	}
	writeJSON(ctx, fasthttp.StatusOK, struct {
		RecipientID int64 `json:"recipient_id"`
		Unread      int   `json:"unread"`
	}{id, n})
}

func (s *Server) handleMarkAllRead(ctx *fasthttp.RequestCtx) {
	id, err := recipientID(ctx)
	if err != nil {
		writeError(ctx, fasthttp.StatusBadRequest, "invalid recipient_id")
		return
	}

	n, err := s.notifications.MarkAllRead(ctx, id, time.Now())
	if err != nil {
		s.logger.Errorf("Mark-all-read failed for user %d: %v", id, err)
		writeError(ctx, fasthttp.StatusInternalServerError, "failed to mark notifications read")
		return
	}
	writeJSON(ctx, fasthttp.StatusOK, struct {
		RecipientID int64 `json:"recipient_id"`
		Marked      int64 `json:"marked"`
	}{id, n})
}

type notificationView struct {
	ID        int64  `json:"id"`
	Title     string `json:"title"`
	Message   string `json:"message"`
	Category  string `json:"category"`
	Priority  string `json:"priority"`
	ActionURL string `json:"action_url,omitempty"`
	IsRead    bool   `json:"is_read"`
	CreatedAt string `json:"created_at"`
}

func (s *Server) handleRecentNotifications(ctx *fasthttp.RequestCtx) {
	id, err := recipientID(ctx)
	if err != nil {
		writeError(ctx, fasthttp.StatusBadRequest, "invalid recipient_id")
		return
	}
	limit := ctx.QueryArgs().GetUintOrZero("limit")

	list, err := s.notifications.Recent(ctx, id, limit)
	if err != nil {
		s.logger.Errorf("Recent notifications failed for user %d: %v", id, err)
		writeError(ctx, fasthttp.StatusInternalServerError, "failed to list notifications")
		return
	}

	views := make([]notificationView, 0, len(list))
	for _, n := range list {
		views = append(views, toNotificationView(n))
	}
	writeJSON(ctx, fasthttp.StatusOK, struct {
		RecipientID   int64              `json:"recipient_id"`
		Notifications []notificationView `json:"notifications"`
	}{id, views})
}

func toNotificationView(n *notify.Notification) notificationView {
	v := notificationView{
		ID:        n.ID,
		Title:     n.Title,
		Message:   n.Message,
		Category:  string(n.Category),
		Priority:  string(n.Priority),
		IsRead:    n.IsRead,
		CreatedAt: n.CreatedAt.Format(time.RFC3339),
	}
	if n.ActionURL.Valid {
		v.ActionURL = n.ActionURL.String
	}
	return v
}
