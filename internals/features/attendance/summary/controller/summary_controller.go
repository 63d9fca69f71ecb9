// internals/features/attendance/summary/controller/summary_controller.go
package controller

import (
	"log"
	"strings"

	"github.com/gofiber/fiber/v2"

	"absensiwajah_backend/internals/features/attendance/domain"
	"absensiwajah_backend/internals/features/attendance/shared"
	sumService "absensiwajah_backend/internals/features/attendance/summary/service"
	helper "absensiwajah_backend/internals/helpers"
)

type SummaryController struct {
	Aggregator *sumService.Aggregator
}

func NewSummaryController(agg *sumService.Aggregator) *SummaryController {
	return &SummaryController{Aggregator: agg}
}

type summaryResponse struct {
	Subject string               `json:"subject"`
	Rows    []summaryRowResponse `json:"rows"`
}

type summaryRowResponse struct {
	domain.SummaryRow
	Attendance string `json:"attendance"`
}

func toSummaryResponse(subject string, rows []domain.SummaryRow) summaryResponse {
	out := summaryResponse{Subject: strings.TrimSpace(subject), Rows: make([]summaryRowResponse, 0, len(rows))}
	for _, r := range rows {
		out.Rows = append(out.Rows, summaryRowResponse{SummaryRow: r, Attendance: r.AttendanceLabel()})
	}
	return out
}

// GET /subjects/:name/summary
func (h *SummaryController) Get(c *fiber.Ctx) error {
	name := c.Params("name")
	rows, err := h.Aggregator.Summary(name)
	if err != nil {
		return shared.FromDomainError(c, err)
	}
	return helper.JsonOK(c, "Rekap absensi", toSummaryResponse(name, rows))
}

// POST /subjects/:name/recompute
func (h *SummaryController) Recompute(c *fiber.Ctx) error {
	name := c.Params("name")
	rows, err := h.Aggregator.Recompute(name)
	if err != nil {
		log.Printf("[SUMMARY] recompute %q gagal: %v", name, err)
		return shared.FromDomainError(c, err)
	}
	return helper.JsonOK(c, "Rekap absensi dihitung ulang", toSummaryResponse(name, rows))
}

// POST /summary/refresh
func (h *SummaryController) RefreshAll(c *fiber.Ctx) error {
	rep, err := h.Aggregator.RefreshAll()
	if err != nil {
		return shared.FromDomainError(c, err)
	}
	return helper.JsonOK(c, "Rekap semua subject dihitung ulang", rep)
}
