package httpapi

import (
	"strconv"
	"time"

	"coop_renewal_service/internal/app"
	"coop_renewal_service/internal/domain/renewal"

	"github.com/valyala/fasthttp"
)

type classificationView struct {
	ExpiryDate string `json:"expiry_date"`
	DaysLeft   int    `json:"days_left"`
	Status     string `json:"status"`
}

type renewalRowView struct {
	MemberID    int64               `json:"member_id"`
	MemberName  string              `json:"member_name"`
	BatchID     int64               `json:"batch_id"`
	VehicleID   int64               `json:"vehicle_id"`
	PlateNumber string              `json:"plate_number"`
	Expiry      *classificationView `json:"expiry"` // null rendered as N/A by the front end
	Status      string              `json:"status"`
}

type bucketCountsView struct {
	Overdue  int `json:"overdue"`
	Urgent   int `json:"urgent"`
	Upcoming int `json:"upcoming"`
	Normal   int `json:"normal"`
	None     int `json:"none"`
}

type memberBucketView struct {
	MemberID   int64  `json:"member_id"`
	MemberName string `json:"member_name"`
	Status     string `json:"status"`
}

type overviewResponse struct {
	AsOf          string             `json:"as_of"`
	Rows          []renewalRowView   `json:"rows"`
	VehicleCounts bucketCountsView   `json:"vehicle_counts"`
	MemberCounts  bucketCountsView   `json:"member_counts"`
	Members       []memberBucketView `json:"members"`
}

func toClassificationView(cls *renewal.Classification) *classificationView {
	if cls == nil {
		return nil
	}
	return &classificationView{
		ExpiryDate: cls.ExpiryDate.Format("2006-01-02"),
		DaysLeft:   cls.DaysLeft,
		Status:     string(cls.Status),
	}
}

func toOverviewResponse(res *renewal.Result, asOf time.Time) overviewResponse {
	out := overviewResponse{
		AsOf: renewal.DateOnly(asOf).Format("2006-01-02"),
		Rows: make([]renewalRowView, 0, len(res.Rows)),
		VehicleCounts: bucketCountsView{
			Overdue: res.VehicleCounts.Overdue, Urgent: res.VehicleCounts.Urgent,
			Upcoming: res.VehicleCounts.Upcoming, Normal: res.VehicleCounts.Normal,
			None: res.VehicleCounts.None,
		},
		MemberCounts: bucketCountsView{
			Overdue: res.MemberCounts.Overdue, Urgent: res.MemberCounts.Urgent,
			Upcoming: res.MemberCounts.Upcoming, Normal: res.MemberCounts.Normal,
			None: res.MemberCounts.None,
		},
		Members: make([]memberBucketView, 0, len(res.Members)),
	}
	for _, r := range res.Rows {
		out.Rows = append(out.Rows, renewalRowView{
			MemberID:    r.MemberID,
			MemberName:  r.MemberName,
			BatchID:     r.BatchID,
			VehicleID:   r.VehicleID,
			PlateNumber: r.PlateNumber,
			Expiry:      toClassificationView(r.Classification),
			Status:      string(r.Status()),
		})
	}
	for _, m := range res.Members {
		out.Members = append(out.Members, memberBucketView{
			MemberID: m.MemberID, MemberName: m.MemberName, Status: string(m.Status),
		})
	}
	return out
}

func sortOrderFromQuery(ctx *fasthttp.RequestCtx) renewal.SortOrder {
	if string(ctx.QueryArgs().Peek("sort")) == "priority" {
		return renewal.SortByPriorityThenName
	}
	return renewal.SortByDaysLeft
}

func (s *Server) handleRenewalsOverview(ctx *fasthttp.RequestCtx) {
	asOf, err := today(ctx)
	if err != nil {
		writeError(ctx, fasthttp.StatusBadRequest, err.Error())
		return
	}
	scope := app.Scope{}
	if raw := string(ctx.QueryArgs().Peek("batch_id")); raw != "" {
		id, err := pathID(raw)
		if err != nil {
			writeError(ctx, fasthttp.StatusBadRequest, err.Error())
			return
		}
		scope.BatchID = id
	}
	search := string(ctx.QueryArgs().Peek("q"))

	res, err := s.renewals.Overview(ctx, scope, asOf, search, sortOrderFromQuery(ctx))
	if err != nil {
		s.logger.Errorf("Renewals overview failed: %v", err)
		writeError(ctx, fasthttp.StatusInternalServerError, "failed to build renewals overview")
		return
	}
	writeJSON(ctx, fasthttp.StatusOK, toOverviewResponse(res, asOf))
}

func (s *Server) handleBatchRenewals(ctx *fasthttp.RequestCtx, rawBatchID string) {
	batchID, err := pathID(rawBatchID)
	if err != nil {
		writeError(ctx, fasthttp.StatusBadRequest, err.Error())
		return
	}
	asOf, err := today(ctx)
	if err != nil {
		writeError(ctx, fasthttp.StatusBadRequest, err.Error())
		return
	}

	// Batch tables historically sort by urgency then member name.
	res, err := s.renewals.Overview(ctx, app.Scope{BatchID: batchID},
		asOf, string(ctx.QueryArgs().Peek("q")), renewal.SortByPriorityThenName)
	if err != nil {
		s.logger.Errorf("Batch %d renewals failed: %v", batchID, err)
		writeError(ctx, fasthttp.StatusInternalServerError, "failed to build batch renewals")
		return
	}
	writeJSON(ctx, fasthttp.StatusOK, toOverviewResponse(res, asOf))
}

type dashboardResponse struct {
	AsOf          string           `json:"as_of"`
	VehicleCounts bucketCountsView `json:"vehicle_counts"`
	MemberCounts  bucketCountsView `json:"member_counts"`
	PendingCount  int              `json:"pending_count"`
}

func (s *Server) handleDashboard(ctx *fasthttp.RequestCtx) {
	asOf, err := today(ctx)
	if err != nil {
		writeError(ctx, fasthttp.StatusBadRequest, err.Error())
		return
	}

	res, err := s.renewals.Overview(ctx, app.Scope{}, asOf, "", renewal.SortByDaysLeft)
	if err != nil {
		s.logger.Errorf("Dashboard aggregation failed: %v", err)
		writeError(ctx, fasthttp.StatusInternalServerError, "failed to build dashboard counts")
		return
	}
	pending, err := s.renewals.PendingCount(ctx)
	if err != nil {
		s.logger.Errorf("Pending count failed: %v", err)
		writeError(ctx, fasthttp.StatusInternalServerError, "failed to count pending records")
		return
	}

	view := toOverviewResponse(res, asOf)
	writeJSON(ctx, fasthttp.StatusOK, dashboardResponse{
		AsOf:          view.AsOf,
		VehicleCounts: view.VehicleCounts,
		MemberCounts:  view.MemberCounts,
		PendingCount:  pending,
	})
}

func (s *Server) handleVehicleExpiry(ctx *fasthttp.RequestCtx, rawVehicleID string) {
	vehicleID, err := pathID(rawVehicleID)
	if err != nil {
		writeError(ctx, fasthttp.StatusBadRequest, err.Error())
		return
	}
	asOf, err := today(ctx)
	if err != nil {
		writeError(ctx, fasthttp.StatusBadRequest, err.Error())
		return
	}

	cls, err := s.renewals.ResolveVehicle(ctx, vehicleID, asOf)
	if err != nil {
		s.logger.Errorf("Vehicle %d expiry resolution failed: %v", vehicleID, err)
		writeError(ctx, fasthttp.StatusInternalServerError, "failed to resolve vehicle expiry")
		return
	}

	status := renewal.StatusNone
	if cls != nil {
		status = cls.Status
	}
	writeJSON(ctx, fasthttp.StatusOK, struct {
		VehicleID int64               `json:"vehicle_id"`
		Expiry    *classificationView `json:"expiry"`
		Status    string              `json:"status"`
	}{vehicleID, toClassificationView(cls), string(status)})
}

func (s *Server) handleMarkRenewed(ctx *fasthttp.RequestCtx, rawVehicleID string) {
	vehicleID, err := pathID(rawVehicleID)
	if err != nil {
		writeError(ctx, fasthttp.StatusBadRequest, err.Error())
		return
	}
	asOf, err := today(ctx)
	if err != nil {
		writeError(ctx, fasthttp.StatusBadRequest, err.Error())
		return
	}

	rec, err := s.renewals.MarkRenewed(ctx, vehicleID, asOf)
	if err != nil {
		s.logger.Errorf("Mark renewed failed for vehicle %d: %v", vehicleID, err)
		writeError(ctx, fasthttp.StatusInternalServerError, "failed to mark vehicle renewed")
		return
	}
	writeJSON(ctx, fasthttp.StatusCreated, struct {
		RecordID    int64  `json:"record_id"`
		VehicleID   int64  `json:"vehicle_id"`
		RenewalDate string `json:"renewal_date"`
	}{rec.ID, rec.VehicleID, rec.RenewalDate.Time.Format("2006-01-02")})
}

type bulkReminderRequest struct {
	FilterType string `json:"filter_type"`
	BatchID    int64  `json:"batch_id"`
}

func (s *Server) handleBulkReminders(ctx *fasthttp.RequestCtx) {
	var req bulkReminderRequest
	if body := ctx.PostBody(); len(body) > 0 {
		if err := unmarshalBody(body, &req); err != nil {
			writeError(ctx, fasthttp.StatusBadRequest, "invalid request body: "+err.Error())
			return
		}
	}
	// Form-encoded fallback for plain HTML form posts.
	if req.FilterType == "" {
		req.FilterType = string(ctx.PostArgs().Peek("filter_type"))
	}
	if req.BatchID == 0 {
		if raw := string(ctx.PostArgs().Peek("batch_id")); raw != "" {
			id, err := strconv.ParseInt(raw, 10, 64)
			if err != nil {
				writeError(ctx, fasthttp.StatusBadRequest, "invalid batch_id")
				return
			}
			req.BatchID = id
		}
	}

	ft, err := app.ParseFilterType(req.FilterType)
	if err != nil {
		writeError(ctx, fasthttp.StatusBadRequest, err.Error())
		return
	}
	asOf, err := today(ctx)
	if err != nil {
		writeError(ctx, fasthttp.StatusBadRequest, err.Error())
		return
	}

	report, err := s.reminders.SendBulk(ctx, app.BulkFilter{Type: ft, BatchID: req.BatchID}, asOf)
	if err != nil {
		s.logger.Errorf("Bulk reminder dispatch failed: %v", err)
		writeError(ctx, fasthttp.StatusInternalServerError, "failed to dispatch reminders")
		return
	}

	// Always a count summary, even when nothing matched.
	writeJSON(ctx, fasthttp.StatusOK, struct {
		RunID  string `json:"run_id"`
		Sent   int    `json:"sent"`
		Failed int    `json:"failed"`
	}{report.RunID, report.Sent, report.Failed})
}
