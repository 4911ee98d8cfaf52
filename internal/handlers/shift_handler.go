package handlers

import (
	"github.com/gin-gonic/gin"

	domain "github.com/BruksfildServices01/shift-scheduler/internal/domain/shift"
	"github.com/BruksfildServices01/shift-scheduler/internal/httperr"
	"github.com/BruksfildServices01/shift-scheduler/internal/httpresp"
	"github.com/BruksfildServices01/shift-scheduler/internal/middleware"
	"github.com/BruksfildServices01/shift-scheduler/internal/timezone"
	ucShift "github.com/BruksfildServices01/shift-scheduler/internal/usecase/shift"
)

// ======================================================
// HANDLER
// ======================================================

type ShiftHandler struct {
	create       *ucShift.CreateShift
	update       *ucShift.UpdateShift
	updateStatus *ucShift.UpdateShiftStatus
	destroy      *ucShift.DestroyShift
	list         *ucShift.ListShifts
	report       *ucShift.MonthlyReport
}

func NewShiftHandler(
	create *ucShift.CreateShift,
	update *ucShift.UpdateShift,
	updateStatus *ucShift.UpdateShiftStatus,
	destroy *ucShift.DestroyShift,
	list *ucShift.ListShifts,
	report *ucShift.MonthlyReport,
) *ShiftHandler {
	return &ShiftHandler{
		create:       create,
		update:       update,
		updateStatus: updateStatus,
		destroy:      destroy,
		list:         list,
		report:       report,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type CreateShiftRequest struct {
	ServiceID   uint     `json:"service_id" binding:"required"`
	ClientID    uint     `json:"client_id" binding:"required"`
	UserID      uint     `json:"user_id" binding:"required"`
	DateShift   string   `json:"date_shift" binding:"required"`
	Description *string  `json:"description"`
	Price       *float64 `json:"price" binding:"required"`
	Status      *int     `json:"status"`
}

type UpdateShiftRequest struct {
	ID          uint     `json:"id" binding:"required"`
	ServiceID   uint     `json:"service_id" binding:"required"`
	ClientID    uint     `json:"client_id" binding:"required"`
	UserID      uint     `json:"user_id" binding:"required"`
	DateShift   string   `json:"date_shift" binding:"required"`
	Description *string  `json:"description"`
	Price       *float64 `json:"price" binding:"required"`
	Status      *int     `json:"status" binding:"required"`
}

type UpdateShiftStatusRequest struct {
	ID          uint     `json:"id" binding:"required"`
	Status      *int     `json:"status" binding:"required"`
	Price       *float64 `json:"price" binding:"required"`
	Description *string  `json:"description"`
}

type DeleteRequest struct {
	ID uint `json:"id" binding:"required"`
}

// ======================================================
// LIST
// ======================================================

func (h *ShiftHandler) Index(c *gin.Context) {
	var (
		f   domain.ListFilter
		err error
	)

	if f.ID, err = queryUint(c, "id"); err != nil {
		httperr.Respond(c, err)
		return
	}
	if f.ClientID, err = queryUint(c, "client_id"); err != nil {
		httperr.Respond(c, err)
		return
	}
	if f.UserID, err = queryUint(c, "user_id"); err != nil {
		httperr.Respond(c, err)
		return
	}
	if f.ServiceID, err = queryUint(c, "service_id"); err != nil {
		httperr.Respond(c, err)
		return
	}
	if f.Status, err = queryInt(c, "status"); err != nil {
		httperr.Respond(c, err)
		return
	}

	start, end := c.Query("start_date"), c.Query("end_date")
	if start != "" && end != "" {
		if f.From, f.To, err = dateRange(start, end); err != nil {
			httperr.Respond(c, err)
			return
		}
	}

	// a single day wins over the range
	if day := c.Query("date_shift"); day != "" {
		if f.From, f.To, err = dayRange(day); err != nil {
			httperr.Respond(c, err)
			return
		}
	}

	shifts, err := h.list.Execute(c.Request.Context(), f)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.OK(c, gin.H{"shifts": shifts})
}

// ======================================================
// CREATE
// ======================================================

func (h *ShiftHandler) Create(c *gin.Context) {
	var req CreateShiftRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BindError(c, err)
		return
	}

	at, err := timezone.ParseDateTime(req.DateShift)
	if err != nil {
		httperr.Respond(c, httperr.Validation("date_shift", "La fecha del turno es inválida."))
		return
	}

	s, service, err := h.create.Execute(c.Request.Context(), ucShift.CreateShiftInput{
		ActorID:     middleware.ActorID(c),
		ServiceID:   req.ServiceID,
		ClientID:    req.ClientID,
		UserID:      req.UserID,
		DateShift:   at,
		Description: req.Description,
		Price:       *req.Price,
		Status:      req.Status,
	})
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.OK(c, gin.H{
		"shift":       s,
		"serviceName": service.Name,
	})
}

// ======================================================
// UPDATE
// ======================================================

func (h *ShiftHandler) Update(c *gin.Context) {
	var req UpdateShiftRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BindError(c, err)
		return
	}

	at, err := timezone.ParseDateTime(req.DateShift)
	if err != nil {
		httperr.Respond(c, httperr.Validation("date_shift", "La fecha del turno es inválida."))
		return
	}

	s, err := h.update.Execute(c.Request.Context(), ucShift.UpdateShiftInput{
		ActorID:     middleware.ActorID(c),
		ID:          req.ID,
		ServiceID:   req.ServiceID,
		ClientID:    req.ClientID,
		UserID:      req.UserID,
		DateShift:   at,
		Description: req.Description,
		Price:       *req.Price,
		Status:      *req.Status,
	})
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.OK(c, gin.H{"shift": s})
}

func (h *ShiftHandler) UpdateStatus(c *gin.Context) {
	var req UpdateShiftStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BindError(c, err)
		return
	}

	s, err := h.updateStatus.Execute(c.Request.Context(), ucShift.UpdateStatusInput{
		ActorID:     middleware.ActorID(c),
		ID:          req.ID,
		Status:      *req.Status,
		Price:       *req.Price,
		Description: req.Description,
	})
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.OKMessage(c, s, "Status actualizado correctamente")
}

// ======================================================
// DELETE
// ======================================================

func (h *ShiftHandler) Destroy(c *gin.Context) {
	var req DeleteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BindError(c, err)
		return
	}

	if err := h.destroy.Execute(c.Request.Context(), middleware.ActorID(c), req.ID); err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.OKMessage(c, nil, "Turno eliminado con éxito")
}

// ======================================================
// REPORT
// ======================================================

func (h *ShiftHandler) Reports(c *gin.Context) {
	year := timezone.Now().Year()

	y, err := queryInt(c, "year")
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	if y != nil {
		if *y < 2000 || *y > 2100 {
			httperr.Respond(c, httperr.Validation("year", "Año inválido."))
			return
		}
		year = *y
	}

	report, err := h.report.Execute(c.Request.Context(), year)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.OK(c, report)
}
