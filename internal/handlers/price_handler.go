package handlers

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/shift-scheduler/internal/httperr"
	"github.com/BruksfildServices01/shift-scheduler/internal/httpresp"
	"github.com/BruksfildServices01/shift-scheduler/internal/models"
)

type PriceHandler struct {
	db *gorm.DB
}

func NewPriceHandler(db *gorm.DB) *PriceHandler {
	return &PriceHandler{db: db}
}

type CreatePriceRequest struct {
	ServiceID uint     `json:"service_id" binding:"required"`
	Amount    *float64 `json:"amount" binding:"required,min=0"`
	Currency  string   `json:"currency" binding:"omitempty,len=3"`
}

type UpdatePriceRequest struct {
	ID       uint     `json:"id" binding:"required"`
	Amount   *float64 `json:"amount" binding:"required,min=0"`
	Currency string   `json:"currency" binding:"omitempty,len=3"`
}

func (h *PriceHandler) Index(c *gin.Context) {
	serviceID, err := queryUint(c, "service_id")
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	q := h.db.WithContext(c.Request.Context())
	if serviceID != nil {
		q = q.Where("service_id = ?", *serviceID)
	}

	var prices []models.Price
	if err := q.Order("id ASC").Find(&prices).Error; err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.OK(c, gin.H{"prices": prices})
}

func (h *PriceHandler) Create(c *gin.Context) {
	var req CreatePriceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BindError(c, err)
		return
	}

	db := h.db.WithContext(c.Request.Context())

	var service models.Service
	if err := db.Preload("Price").First(&service, req.ServiceID).Error; err != nil {
		if httperr.IsKind(httperr.FromDB(err, "service"), httperr.KindNotFound) {
			httperr.Respond(c, httperr.Validation("service_id", "El servicio seleccionado no existe."))
			return
		}
		httperr.Respond(c, err)
		return
	}
	if service.Price != nil {
		httperr.Respond(c, httperr.Conflict("price_duplicated", "El servicio ya tiene un precio, actualizalo."))
		return
	}

	price := models.Price{
		ServiceID: req.ServiceID,
		Amount:    *req.Amount,
		Currency:  currencyOrDefault(req.Currency),
	}
	if err := db.Create(&price).Error; err != nil {
		httperr.Respond(c, httperr.FromDB(err, "price"))
		return
	}

	httpresp.OK(c, gin.H{"price": price})
}

func (h *PriceHandler) Update(c *gin.Context) {
	var req UpdatePriceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BindError(c, err)
		return
	}

	db := h.db.WithContext(c.Request.Context())

	var price models.Price
	if err := db.First(&price, req.ID).Error; err != nil {
		httperr.Respond(c, httperr.FromDB(err, "price"))
		return
	}

	price.Amount = *req.Amount
	if req.Currency != "" {
		price.Currency = currencyOrDefault(req.Currency)
	}

	if err := db.Save(&price).Error; err != nil {
		httperr.Respond(c, httperr.FromDB(err, "price"))
		return
	}

	httpresp.OK(c, gin.H{"price": price})
}
