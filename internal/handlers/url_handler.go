package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/shift-scheduler/internal/httperr"
	"github.com/BruksfildServices01/shift-scheduler/internal/httpresp"
	"github.com/BruksfildServices01/shift-scheduler/internal/media"
	"github.com/BruksfildServices01/shift-scheduler/internal/models"
)

const maxUploadSize = 10 << 20

type UrlHandler struct {
	db      *gorm.DB
	storage media.Storage
}

// NewUrlHandler builds the handler. storage may be nil, which disables uploads.
func NewUrlHandler(db *gorm.DB, storage media.Storage) *UrlHandler {
	return &UrlHandler{db: db, storage: storage}
}

type CreateUrlRequest struct {
	Name      string `json:"name" binding:"required,max=100"`
	URL       string `json:"url" binding:"required,url,max=500"`
	ServiceID *uint  `json:"service_id"`
}

type UpdateUrlRequest struct {
	ID        uint    `json:"id" binding:"required"`
	Name      *string `json:"name" binding:"omitempty,max=100"`
	URL       *string `json:"url" binding:"omitempty,url,max=500"`
	ServiceID *uint   `json:"service_id"`
}

func (h *UrlHandler) Index(c *gin.Context) {
	serviceID, err := queryUint(c, "service_id")
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	q := h.db.WithContext(c.Request.Context())
	if serviceID != nil {
		q = q.Where("service_id = ?", *serviceID)
	}

	var urls []models.Url
	if err := q.Order("id ASC").Find(&urls).Error; err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.OK(c, gin.H{"urls": urls})
}

func (h *UrlHandler) Create(c *gin.Context) {
	var req CreateUrlRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BindError(c, err)
		return
	}

	if err := h.assertService(c, req.ServiceID); err != nil {
		httperr.Respond(c, err)
		return
	}

	url := models.Url{
		Name:      strings.TrimSpace(req.Name),
		URL:       strings.TrimSpace(req.URL),
		ServiceID: req.ServiceID,
	}
	if err := h.db.WithContext(c.Request.Context()).Create(&url).Error; err != nil {
		httperr.Respond(c, httperr.FromDB(err, "url"))
		return
	}

	httpresp.OK(c, gin.H{"url": url})
}

func (h *UrlHandler) Update(c *gin.Context) {
	var req UpdateUrlRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BindError(c, err)
		return
	}

	db := h.db.WithContext(c.Request.Context())

	var url models.Url
	if err := db.First(&url, req.ID).Error; err != nil {
		httperr.Respond(c, httperr.FromDB(err, "url"))
		return
	}

	if req.Name != nil {
		url.Name = strings.TrimSpace(*req.Name)
	}
	if req.URL != nil {
		url.URL = strings.TrimSpace(*req.URL)
	}
	if req.ServiceID != nil {
		if err := h.assertService(c, req.ServiceID); err != nil {
			httperr.Respond(c, err)
			return
		}
		url.ServiceID = req.ServiceID
	}

	if err := db.Save(&url).Error; err != nil {
		httperr.Respond(c, httperr.FromDB(err, "url"))
		return
	}

	httpresp.OK(c, gin.H{"url": url})
}

// Upload takes a multipart "image", stores it as WebP and records its URL.
func (h *UrlHandler) Upload(c *gin.Context) {
	if h.storage == nil {
		httperr.Write(c, http.StatusServiceUnavailable, "storage_disabled", "El almacenamiento de imágenes no está configurado.")
		return
	}

	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxUploadSize)

	fh, err := c.FormFile("image")
	if err != nil {
		httperr.Respond(c, httperr.Validation("image", "Debe adjuntar una imagen."))
		return
	}

	serviceID, err := formUint(c, "service_id")
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	if err := h.assertService(c, serviceID); err != nil {
		httperr.Respond(c, err)
		return
	}

	f, err := fh.Open()
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	defer f.Close()

	body, err := media.ToWebP(f)
	if errors.Is(err, media.ErrImageTooLarge) {
		httperr.Respond(c, httperr.Validation("image", "La imagen supera el tamaño máximo permitido."))
		return
	}
	if err != nil {
		httperr.Respond(c, httperr.Validation("image", "La imagen no es un JPEG o PNG válido."))
		return
	}

	ctx := c.Request.Context()

	publicURL, err := h.storage.Put(ctx, media.ObjectKey("urls"), "image/webp", body)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	name := strings.TrimSpace(c.PostForm("name"))
	if name == "" {
		name = fh.Filename
	}

	url := models.Url{Name: name, URL: publicURL, ServiceID: serviceID}
	if err := h.db.WithContext(ctx).Create(&url).Error; err != nil {
		httperr.Respond(c, httperr.FromDB(err, "url"))
		return
	}

	httpresp.OK(c, gin.H{"url": url})
}

func (h *UrlHandler) assertService(c *gin.Context, serviceID *uint) error {
	if serviceID == nil {
		return nil
	}
	var count int64
	if err := h.db.WithContext(c.Request.Context()).
		Model(&models.Service{}).
		Where("id = ?", *serviceID).
		Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return httperr.Validation("service_id", "El servicio seleccionado no existe.")
	}
	return nil
}
