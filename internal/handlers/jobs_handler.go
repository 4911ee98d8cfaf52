package handlers

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/shift-scheduler/internal/httperr"
	"github.com/BruksfildServices01/shift-scheduler/internal/httpresp"
	"github.com/BruksfildServices01/shift-scheduler/internal/jobs"
	"github.com/BruksfildServices01/shift-scheduler/internal/timezone"
)

// JobsHandler exposes the periodic scans so they can be triggered on demand.
type JobsHandler struct {
	scans jobs.Scans
}

func NewJobsHandler(scans jobs.Scans) *JobsHandler {
	return &JobsHandler{scans: scans}
}

func (h *JobsHandler) Birthday(c *gin.Context) {
	h.run(c, h.scans.SendBirthdayGreetings, "Saludos de cumpleaños enviados")
}

func (h *JobsHandler) Reminders(c *gin.Context) {
	h.run(c, h.scans.SendReminders, "Recordatorios enviados")
}

func (h *JobsHandler) NotifyNew(c *gin.Context) {
	h.run(c, h.scans.NotifyNewShifts, "Notificaciones de turnos nuevos enviadas")
}

func (h *JobsHandler) run(c *gin.Context, scan func(context.Context, time.Time) (int, error), message string) {
	sent, err := scan(c.Request.Context(), timezone.Now())
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.OKMessage(c, gin.H{"countEmails": sent}, message)
}
