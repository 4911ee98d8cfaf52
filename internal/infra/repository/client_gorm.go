package repository

import (
	"context"

	"gorm.io/gorm"

	domain "github.com/BruksfildServices01/shift-scheduler/internal/domain/client"
	"github.com/BruksfildServices01/shift-scheduler/internal/models"
)

type ClientGormRepository struct {
	db *gorm.DB
}

func NewClientGormRepository(db *gorm.DB) *ClientGormRepository {
	return &ClientGormRepository{db: db}
}

func (r *ClientGormRepository) List(
	ctx context.Context,
	f domain.ListFilter,
) ([]models.Client, error) {

	q := r.db.WithContext(ctx).Where("status = ?", models.ClientActive)

	if f.ID != nil {
		q = q.Where("id = ?", *f.ID)
	}
	if f.Birthday != nil {
		q = q.Where("date_birthday IS NOT NULL")
	}

	var clients []models.Client
	if err := q.Order("name ASC").Find(&clients).Error; err != nil {
		return nil, err
	}

	if f.Birthday == nil {
		return clients, nil
	}

	// month/day extraction differs per dialect, so the match happens here
	out := clients[:0]
	for _, c := range clients {
		if domain.SameBirthday(*c.DateBirthday, *f.Birthday) {
			out = append(out, c)
		}
	}
	return out, nil
}

func (r *ClientGormRepository) Get(
	ctx context.Context,
	id uint,
) (*models.Client, error) {

	var client models.Client
	if err := r.db.WithContext(ctx).First(&client, id).Error; err != nil {
		return nil, notFound(err, "client_not_found", "El cliente no fue encontrado.")
	}
	return &client, nil
}

func (r *ClientGormRepository) Create(
	ctx context.Context,
	c *models.Client,
) error {
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *ClientGormRepository) Update(
	ctx context.Context,
	c *models.Client,
) error {
	return r.db.WithContext(ctx).Save(c).Error
}

func (r *ClientGormRepository) EmailTaken(
	ctx context.Context,
	email string,
	exceptID uint,
) (bool, error) {

	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Client{}).
		Where("email = ? AND id <> ?", email, exceptID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// Compile-time check
var _ domain.Repository = (*ClientGormRepository)(nil)
