package handlers

import (
	"context"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/shift-scheduler/internal/audit"
	domain "github.com/BruksfildServices01/shift-scheduler/internal/domain/client"
	"github.com/BruksfildServices01/shift-scheduler/internal/httperr"
	"github.com/BruksfildServices01/shift-scheduler/internal/httpresp"
	"github.com/BruksfildServices01/shift-scheduler/internal/middleware"
	"github.com/BruksfildServices01/shift-scheduler/internal/models"
	"github.com/BruksfildServices01/shift-scheduler/internal/timezone"
	"github.com/BruksfildServices01/shift-scheduler/internal/validators"
)

type ClientHandler struct {
	repo              domain.Repository
	audit             *audit.Dispatcher
	verifyEmailDomain bool
}

func NewClientHandler(
	repo domain.Repository,
	audit *audit.Dispatcher,
	verifyEmailDomain bool,
) *ClientHandler {
	return &ClientHandler{
		repo:              repo,
		audit:             audit,
		verifyEmailDomain: verifyEmailDomain,
	}
}

// --------- Requests ---------

type ClientRequest struct {
	Name         string `json:"name" binding:"required,max=255"`
	Email        string `json:"email"`
	CodArea      string `json:"cod_area" binding:"required"`
	Phone        string `json:"phone" binding:"required"`
	DateBirthday string `json:"date_birthday"`
}

type UpdateClientRequest struct {
	ID uint `json:"id" binding:"required"`
	ClientRequest
}

// --------- Handlers ---------

// Index lists active clients. date_birthday matches on month and day only.
func (h *ClientHandler) Index(c *gin.Context) {
	var (
		f   domain.ListFilter
		err error
	)

	if f.ID, err = queryUint(c, "id"); err != nil {
		httperr.Respond(c, err)
		return
	}

	if raw := c.Query("date_birthday"); raw != "" {
		day, err := timezone.ParseDate(raw)
		if err != nil {
			httperr.Respond(c, httperr.Validation("date_birthday", "Fecha de cumpleaños inválida."))
			return
		}
		f.Birthday = &day
	}

	clients, err := h.repo.List(c.Request.Context(), f)
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	if clients == nil {
		clients = []models.Client{}
	}

	httpresp.OK(c, gin.H{"clients": clients})
}

// Create is public: clients register themselves.
func (h *ClientHandler) Create(c *gin.Context) {
	var req ClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BindError(c, err)
		return
	}

	var client models.Client
	if err := h.apply(c.Request.Context(), &client, req); err != nil {
		httperr.Respond(c, err)
		return
	}
	client.Status = models.ClientActive

	if err := h.repo.Create(c.Request.Context(), &client); err != nil {
		httperr.Respond(c, clientDBError(err))
		return
	}

	httpresp.OK(c, gin.H{"client": client})
}

// Update works on deleted clients too, so a soft-deleted record can still be
// corrected.
func (h *ClientHandler) Update(c *gin.Context) {
	var req UpdateClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BindError(c, err)
		return
	}

	client, err := h.repo.Get(c.Request.Context(), req.ID)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	if err := h.apply(c.Request.Context(), client, req.ClientRequest); err != nil {
		httperr.Respond(c, err)
		return
	}

	if err := h.repo.Update(c.Request.Context(), client); err != nil {
		httperr.Respond(c, clientDBError(err))
		return
	}

	httpresp.OK(c, gin.H{"client": client})
}

// Destroy soft-deletes the client. Its shifts are left untouched.
func (h *ClientHandler) Destroy(c *gin.Context) {
	var req DeleteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BindError(c, err)
		return
	}

	client, err := h.repo.Get(c.Request.Context(), req.ID)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	if domain.SoftDelete(client) {
		if err := h.repo.Update(c.Request.Context(), client); err != nil {
			httperr.Respond(c, err)
			return
		}

		h.audit.Dispatch(audit.Event{
			UserID:   middleware.ActorID(c),
			Action:   "client_deleted",
			Entity:   "client",
			EntityID: &client.ID,
		})
	}

	httpresp.OKMessage(c, nil, "Cliente eliminado con éxito")
}

// apply validates req and copies it onto client.
func (h *ClientHandler) apply(ctx context.Context, client *models.Client, req ClientRequest) error {
	area, phone, ok := validators.NormalizePhone(req.CodArea, req.Phone)
	if !ok {
		return httperr.Validation("phone", "El teléfono es inválido.")
	}

	email, ok := validators.NormalizeEmail(req.Email)
	if !ok {
		return httperr.Validation("email", "El correo electrónico es inválido.")
	}

	var birthday *time.Time
	if raw := strings.TrimSpace(req.DateBirthday); raw != "" {
		d, err := time.Parse("2006-01-02", raw)
		if err != nil {
			return httperr.Validation("date_birthday", "La fecha de nacimiento es inválida.")
		}
		birthday = &d
	}

	client.Name = strings.TrimSpace(req.Name)
	client.CodArea = area
	client.Phone = phone
	client.DateBirthday = birthday
	client.Email = nil

	if email == "" {
		return nil
	}

	if h.verifyEmailDomain && !validators.IsEmailDomainValid(email) {
		return httperr.Validation("email", "El dominio del correo electrónico no parece ser válido.")
	}

	taken, err := h.repo.EmailTaken(ctx, email, client.ID)
	if err != nil {
		return err
	}
	if taken {
		return errEmailTaken()
	}

	client.Email = &email
	return nil
}

func errEmailTaken() error {
	return httperr.Conflict("client_email_duplicated", "Este correo electrónico ya está registrado")
}

// clientDBError covers the race where the unique index fires after the
// EmailTaken check passed.
func clientDBError(err error) error {
	if httperr.IsDuplicateKey(err) {
		return errEmailTaken()
	}
	return err
}
