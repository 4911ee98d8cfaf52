package handlers

import (
	"sort"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/shift-scheduler/internal/dto"
	"github.com/BruksfildServices01/shift-scheduler/internal/httperr"
	"github.com/BruksfildServices01/shift-scheduler/internal/httpresp"
	"github.com/BruksfildServices01/shift-scheduler/internal/models"
)

type UserHandler struct {
	db                *gorm.DB
	verifyEmailDomain bool
}

func NewUserHandler(db *gorm.DB, verifyEmailDomain bool) *UserHandler {
	return &UserHandler{db: db, verifyEmailDomain: verifyEmailDomain}
}

type CreateUserRequest struct {
	Name     string `json:"name" binding:"required,max=255"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
}

func (h *UserHandler) Index(c *gin.Context) {
	id, err := queryUint(c, "id")
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	q := h.db.WithContext(c.Request.Context())
	if id != nil {
		q = q.Where("id = ?", *id)
	}

	var users []models.User
	if err := q.Order("name ASC").Find(&users).Error; err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.OK(c, gin.H{"users": users})
}

func (h *UserHandler) Create(c *gin.Context) {
	var req CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BindError(c, err)
		return
	}

	user, err := createUser(c.Request.Context(), h.db, h.verifyEmailDomain, req.Name, req.Email, req.Password)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.OK(c, gin.H{"user": user})
}

// ShiftSummary reports, per staff user, how many shifts and distinct clients
// they have in the optional start_date/end_date range, plus how often each
// service is booked.
func (h *UserHandler) ShiftSummary(c *gin.Context) {
	id, err := queryUint(c, "id")
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	db := h.db.WithContext(c.Request.Context())

	shiftScope := func(q *gorm.DB) *gorm.DB { return q.Order("date_shift ASC") }
	if startRaw, endRaw := c.Query("start_date"), c.Query("end_date"); startRaw != "" && endRaw != "" {
		from, to, err := dateRange(startRaw, endRaw)
		if err != nil {
			httperr.Respond(c, err)
			return
		}
		shiftScope = func(q *gorm.DB) *gorm.DB {
			return q.Where("date_shift >= ? AND date_shift < ?", from.UTC(), to.UTC()).Order("date_shift ASC")
		}
	}

	q := db.Preload("Shifts", shiftScope).
		Preload("Shifts.Client").
		Preload("Shifts.Service.Price")
	if id != nil {
		q = q.Where("id = ?", *id)
	}

	var users []models.User
	if err := q.Order("name ASC").Find(&users).Error; err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.OK(c, summarizeStaff(users))
}

func summarizeStaff(users []models.User) dto.StaffSummaryDTO {
	summary := dto.StaffSummaryDTO{
		Users:        make([]dto.StaffUserDTO, 0, len(users)),
		TodayService: []dto.ServiceUsageDTO{},
	}

	allClients := map[uint]struct{}{}
	usage := map[uint]*dto.ServiceUsageDTO{}

	for _, u := range users {
		clients := map[uint]struct{}{}
		for _, s := range u.Shifts {
			clients[s.ClientID] = struct{}{}
			allClients[s.ClientID] = struct{}{}

			su, ok := usage[s.ServiceID]
			if !ok {
				su = &dto.ServiceUsageDTO{Service: s.Service}
				usage[s.ServiceID] = su
			}
			su.Count++
		}

		summary.AllShiftsCount += len(u.Shifts)
		summary.Users = append(summary.Users, dto.StaffUserDTO{
			User:         u,
			ShiftsCount:  len(u.Shifts),
			ClientsCount: len(clients),
		})
	}

	for _, su := range usage {
		summary.TodayService = append(summary.TodayService, *su)
	}
	sort.Slice(summary.TodayService, func(i, j int) bool {
		return summary.TodayService[i].ID < summary.TodayService[j].ID
	})

	summary.AllClientsCount = len(allClients)
	summary.AllServicesCount = len(usage)
	return summary
}
