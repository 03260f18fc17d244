package httpapi

import (
	"errors"
	"fmt"
	"strconv"

	"coop_renewal_service/internal/domain/carwash"
	idb "coop_renewal_service/internal/infra/database"

	"github.com/valyala/fasthttp"
)

type complianceCellView struct {
	Month      int  `json:"month"`
	EventCount int  `json:"event_count"`
	Threshold  int  `json:"threshold"`
	Compliant  bool `json:"compliant"`
}

type memberComplianceView struct {
	MemberID           int64                `json:"member_id"`
	Year               int                  `json:"year"`
	Months             []complianceCellView `json:"months"`
	Compliant          bool                 `json:"compliant"`
	NonCompliantMonths int                  `json:"non_compliant_months"`
}

func toMemberComplianceView(mc carwash.MemberCompliance) memberComplianceView {
	view := memberComplianceView{
		MemberID:           mc.MemberID,
		Year:               mc.Year,
		Months:             make([]complianceCellView, 0, 12),
		Compliant:          mc.Compliant,
		NonCompliantMonths: mc.NonCompliantMonths,
	}
	for _, c := range mc.Cells {
		view.Months = append(view.Months, complianceCellView{
			Month: c.Month, EventCount: c.EventCount, Threshold: c.Threshold, Compliant: c.Compliant,
		})
	}
	return view
}

func parseYear(raw string) (int, error) {
	year, err := strconv.Atoi(raw)
	if err != nil || year < 2000 || year > 2200 {
		return 0, fmt.Errorf("invalid year %q", raw)
	}
	return year, nil
}

func (s *Server) handleComplianceYear(ctx *fasthttp.RequestCtx, rawYear string) {
	year, err := parseYear(rawYear)
	if err != nil {
		writeError(ctx, fasthttp.StatusBadRequest, err.Error())
		return
	}

	grids, err := s.compliance.YearOverview(ctx, year)
	if err != nil {
		s.logger.Errorf("Compliance overview for %d failed: %v", year, err)
		writeError(ctx, fasthttp.StatusInternalServerError, "failed to build compliance overview")
		return
	}

	views := make([]memberComplianceView, 0, len(grids))
	compliant := 0
	for _, g := range grids {
		if g.Compliant {
			compliant++
		}
		views = append(views, toMemberComplianceView(g))
	}
	writeJSON(ctx, fasthttp.StatusOK, struct {
		Year         int                    `json:"year"`
		Compliant    int                    `json:"compliant_members"`
		NonCompliant int                    `json:"non_compliant_members"`
		Members      []memberComplianceView `json:"members"`
	}{year, compliant, len(grids) - compliant, views})
}

func (s *Server) handleMemberCompliance(ctx *fasthttp.RequestCtx, rawYear, rawMemberID string) {
	year, err := parseYear(rawYear)
	if err != nil {
		writeError(ctx, fasthttp.StatusBadRequest, err.Error())
		return
	}
	memberID, err := pathID(rawMemberID)
	if err != nil {
		writeError(ctx, fasthttp.StatusBadRequest, err.Error())
		return
	}

	mc, err := s.compliance.MemberCompliance(ctx, memberID, year)
	if err != nil {
		if errors.Is(err, idb.ErrMemberNotFound) {
			writeError(ctx, fasthttp.StatusNotFound, "member not found")
			return
		}
		s.logger.Errorf("Member %d compliance for %d failed: %v", memberID, year, err)
		writeError(ctx, fasthttp.StatusInternalServerError, "failed to build member compliance")
		return
	}
	writeJSON(ctx, fasthttp.StatusOK, toMemberComplianceView(*mc))
}

func (s *Server) handleServiceBreakdown(ctx *fasthttp.RequestCtx, rawYear string) {
	year, err := parseYear(rawYear)
	if err != nil {
		writeError(ctx, fasthttp.StatusBadRequest, err.Error())
		return
	}

	usage, err := s.compliance.ServiceTypeBreakdown(ctx, year)
	if err != nil {
		s.logger.Errorf("Service breakdown for %d failed: %v", year, err)
		writeError(ctx, fasthttp.StatusInternalServerError, "failed to build service breakdown")
		return
	}

	type usageView struct {
		ServiceType string `json:"service_type"`
		MemberCount int    `json:"member_count"`
		PublicCount int    `json:"public_count"`
	}
	views := make([]usageView, 0, len(usage))
	for _, u := range usage {
		views = append(views, usageView{u.ServiceType, u.MemberCount, u.PublicCount})
	}
	writeJSON(ctx, fasthttp.StatusOK, struct {
		Year     int         `json:"year"`
		Services []usageView `json:"services"`
	}{year, views})
}
