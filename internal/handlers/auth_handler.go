package handlers

import (
	"context"
	"errors"
	"strings"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/shift-scheduler/internal/config"
	"github.com/BruksfildServices01/shift-scheduler/internal/httperr"
	"github.com/BruksfildServices01/shift-scheduler/internal/httpresp"
	"github.com/BruksfildServices01/shift-scheduler/internal/middleware"
	"github.com/BruksfildServices01/shift-scheduler/internal/models"
	"github.com/BruksfildServices01/shift-scheduler/internal/validators"
)

type AuthHandler struct {
	db     *gorm.DB
	config *config.Config
}

func NewAuthHandler(db *gorm.DB, cfg *config.Config) *AuthHandler {
	return &AuthHandler{db: db, config: cfg}
}

// --------- Requests ---------

type RegisterRequest struct {
	Name     string `json:"name" binding:"required,max=255"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// --------- Handlers ---------

func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BindError(c, err)
		return
	}

	user, err := createUser(c.Request.Context(), h.db, h.config.VerifyEmailDomain, req.Name, req.Email, req.Password)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	token, err := middleware.IssueToken(h.config, user.ID)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.OK(c, gin.H{"user": user, "token": token})
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BindError(c, err)
		return
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))

	var user models.User
	if err := h.db.WithContext(c.Request.Context()).
		Where("email = ?", email).
		First(&user).Error; err != nil {

		if errors.Is(err, gorm.ErrRecordNotFound) {
			httperr.Unauthorized(c, "invalid_credentials", "Credenciales inválidas.")
			return
		}
		httperr.Respond(c, err)
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		httperr.Unauthorized(c, "invalid_credentials", "Credenciales inválidas.")
		return
	}

	token, err := middleware.IssueToken(h.config, user.ID)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.OK(c, gin.H{"user": user, "token": token})
}

// Account returns the authenticated user.
func (h *AuthHandler) Account(c *gin.Context) {
	userID := middleware.ActorID(c)
	if userID == nil {
		httperr.Unauthorized(c, "user_not_in_context", "No autorizado.")
		return
	}

	var user models.User
	if err := h.db.WithContext(c.Request.Context()).First(&user, *userID).Error; err != nil {
		httperr.Respond(c, httperr.FromDB(err, "user"))
		return
	}

	httpresp.OK(c, gin.H{"user": user})
}

// --------- Shared ---------

// createUser validates and stores a staff user with a bcrypt password hash.
func createUser(ctx context.Context, db *gorm.DB, verifyDomain bool, name, rawEmail, password string) (*models.User, error) {
	email, ok := validators.NormalizeEmail(rawEmail)
	if !ok || email == "" {
		return nil, httperr.Validation("email", "El correo electrónico no es válido.")
	}
	if verifyDomain && !validators.IsEmailDomainValid(email) {
		return nil, httperr.Validation("email", "El dominio del correo electrónico no parece válido.")
	}

	db = db.WithContext(ctx)

	var count int64
	if err := db.Model(&models.User{}).Where("email = ?", email).Count(&count).Error; err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, httperr.Conflict("user_email_duplicated", "Este correo electrónico ya está registrado")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := models.User{
		Name:         strings.TrimSpace(name),
		Email:        email,
		PasswordHash: string(hashed),
	}
	if err := db.Create(&user).Error; err != nil {
		return nil, httperr.FromDB(err, "user")
	}
	return &user, nil
}
