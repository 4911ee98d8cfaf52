package handlers

import (
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/shift-scheduler/internal/audit"
	"github.com/BruksfildServices01/shift-scheduler/internal/httperr"
	"github.com/BruksfildServices01/shift-scheduler/internal/httpresp"
	"github.com/BruksfildServices01/shift-scheduler/internal/middleware"
	"github.com/BruksfildServices01/shift-scheduler/internal/models"
)

type ServiceHandler struct {
	db    *gorm.DB
	audit *audit.Dispatcher
}

func NewServiceHandler(db *gorm.DB, audit *audit.Dispatcher) *ServiceHandler {
	return &ServiceHandler{db: db, audit: audit}
}

// --------- Requests ---------

type CreateServiceRequest struct {
	Name        string   `json:"name" binding:"required,max=100"`
	Description string   `json:"description" binding:"max=255"`
	Amount      *float64 `json:"amount" binding:"omitempty,min=0"`
	Currency    string   `json:"currency" binding:"omitempty,len=3"`
}

type UpdateServiceRequest struct {
	ID          uint    `json:"id" binding:"required"`
	Name        *string `json:"name,omitempty" binding:"omitempty,max=100"`
	Description *string `json:"description,omitempty" binding:"omitempty,max=255"`
}

// --------- Handlers ---------

func (h *ServiceHandler) Index(c *gin.Context) {
	q := h.db.WithContext(c.Request.Context()).Preload("Price")

	if query := strings.ToLower(strings.TrimSpace(c.Query("query"))); query != "" {
		like := "%" + query + "%"
		q = q.Where("LOWER(name) LIKE ? OR LOWER(description) LIKE ?", like, like)
	}

	var services []models.Service
	if err := q.Order("name ASC").Find(&services).Error; err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.OK(c, gin.H{"services": services})
}

// Create stores the service and, when an amount is given, its price.
func (h *ServiceHandler) Create(c *gin.Context) {
	var req CreateServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BindError(c, err)
		return
	}

	service := models.Service{
		Name:        strings.TrimSpace(req.Name),
		Description: strings.TrimSpace(req.Description),
	}
	if req.Amount != nil {
		service.Price = &models.Price{
			Amount:   *req.Amount,
			Currency: currencyOrDefault(req.Currency),
		}
	}

	if err := h.db.WithContext(c.Request.Context()).Create(&service).Error; err != nil {
		httperr.Respond(c, httperr.FromDB(err, "service"))
		return
	}

	httpresp.OK(c, gin.H{"service": service})
}

func (h *ServiceHandler) Update(c *gin.Context) {
	var req UpdateServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BindError(c, err)
		return
	}

	db := h.db.WithContext(c.Request.Context())

	var service models.Service
	if err := db.Preload("Price").First(&service, req.ID).Error; err != nil {
		httperr.Respond(c, httperr.FromDB(err, "service"))
		return
	}

	if req.Name != nil {
		service.Name = strings.TrimSpace(*req.Name)
	}
	if req.Description != nil {
		service.Description = strings.TrimSpace(*req.Description)
	}

	if err := db.Omit("Price").Save(&service).Error; err != nil {
		httperr.Respond(c, httperr.FromDB(err, "service"))
		return
	}

	httpresp.OK(c, gin.H{"service": service})
}

// Destroy hard-deletes a service. Services referenced by shifts are kept.
func (h *ServiceHandler) Destroy(c *gin.Context) {
	var req DeleteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BindError(c, err)
		return
	}

	err := h.db.WithContext(c.Request.Context()).Transaction(func(tx *gorm.DB) error {
		var service models.Service
		if err := tx.First(&service, req.ID).Error; err != nil {
			return err
		}

		var dependents int64
		if err := tx.Model(&models.Shift{}).
			Where("service_id = ?", req.ID).
			Count(&dependents).Error; err != nil {
			return err
		}
		if dependents > 0 {
			return httperr.Integrity(
				"service_has_shifts",
				"El servicio tiene turnos asociados y no puede eliminarse.",
			)
		}

		if err := tx.Where("service_id = ?", req.ID).Delete(&models.Price{}).Error; err != nil {
			return err
		}
		return tx.Delete(&service).Error
	})
	if err != nil {
		httperr.Respond(c, httperr.FromDB(err, "service"))
		return
	}

	h.audit.Dispatch(audit.Event{
		UserID:   middleware.ActorID(c),
		Action:   "service_deleted",
		Entity:   "service",
		EntityID: &req.ID,
	})

	httpresp.OKMessage(c, nil, "Servicio eliminado con éxito")
}

func currencyOrDefault(currency string) string {
	currency = strings.ToUpper(strings.TrimSpace(currency))
	if currency == "" {
		return models.DefaultCurrency
	}
	return currency
}
