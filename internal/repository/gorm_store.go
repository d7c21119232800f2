package repository

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/hotelsoft/guest-api/internal/models"
	"gorm.io/gorm"
)

// publicColumns excludes the password hash from projections.
const publicColumns = "id, name, cpf, email, phone, address, created_at, updated_at"

// GormStore is the PostgreSQL-backed GuestStore.
type GormStore struct {
	db *gorm.DB
}

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

func (s *GormStore) Create(guest *models.Guest) error {
	if err := s.db.Create(guest).Error; err != nil {
		return mapDuplicateErr("create guest", err)
	}
	return nil
}

func (s *GormStore) FindByID(id uint) (*models.Guest, error) {
	var guest models.Guest
	err := s.db.Select(publicColumns).First(&guest, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find guest by id: %w", err)
	}
	return &guest, nil
}

func (s *GormStore) FindByEmail(email string) (*models.Guest, error) {
	var guest models.Guest
	err := s.db.First(&guest, "email = ?", email).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find guest by email: %w", err)
	}
	return &guest, nil
}

func (s *GormStore) FindByCPF(cpf string) (*models.Guest, error) {
	var guest models.Guest
	err := s.db.Select(publicColumns).First(&guest, "cpf = ?", cpf).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find guest by cpf: %w", err)
	}
	return &guest, nil
}

func (s *GormStore) ListActive(page, pageSize int) ([]models.Guest, int64, error) {
	var total int64
	if err := s.db.Model(&models.Guest{}).Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("count guests: %w", err)
	}

	guests := make([]models.Guest, 0, pageSize)
	err := s.db.Select(publicColumns).
		Order("created_at DESC").
		Limit(pageSize).
		Offset((page - 1) * pageSize).
		Find(&guests).Error
	if err != nil {
		return nil, 0, fmt.Errorf("list guests: %w", err)
	}
	return guests, total, nil
}

func (s *GormStore) Update(id uint, fields map[string]any) (*models.Guest, error) {
	if len(fields) == 0 {
		return s.FindByID(id)
	}

	res := s.db.Model(&models.Guest{}).Where("id = ?", id).Updates(fields)
	if res.Error != nil {
		return nil, mapDuplicateErr("update guest", res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, nil
	}
	return s.FindByID(id)
}

func (s *GormStore) SoftDelete(id uint) (bool, error) {
	now := time.Now()
	res := s.db.Model(&models.Guest{}).Where("id = ?", id).
		Updates(map[string]any{"deleted_at": now, "updated_at": now})
	if res.Error != nil {
		return false, fmt.Errorf("soft delete guest: %w", res.Error)
	}
	return res.RowsAffected > 0, nil
}

func (s *GormStore) Restore(id uint) (bool, error) {
	res := s.db.Unscoped().Model(&models.Guest{}).
		Where("id = ? AND deleted_at IS NOT NULL", id).
		Updates(map[string]any{"deleted_at": nil, "updated_at": time.Now()})
	if res.Error != nil {
		return false, fmt.Errorf("restore guest: %w", res.Error)
	}
	return res.RowsAffected > 0, nil
}

func (s *GormStore) HardDelete(id uint) (bool, error) {
	res := s.db.Unscoped().Delete(&models.Guest{}, id)
	if res.Error != nil {
		return false, fmt.Errorf("hard delete guest: %w", res.Error)
	}
	return res.RowsAffected > 0, nil
}

func (s *GormStore) ListDeleted() ([]models.Guest, error) {
	var guests []models.Guest
	err := s.db.Unscoped().
		Select(publicColumns + ", deleted_at").
		Where("deleted_at IS NOT NULL").
		Order("deleted_at DESC").
		Find(&guests).Error
	if err != nil {
		return nil, fmt.Errorf("list deleted guests: %w", err)
	}
	return guests, nil
}

func mapDuplicateErr(op string, err error) error {
	msg := err.Error()
	switch {
	case strings.Contains(msg, "idx_guests_email"):
		return ErrDuplicateEmail
	case strings.Contains(msg, "idx_guests_cpf"):
		return ErrDuplicateCPF
	}
	return fmt.Errorf("%s: %w", op, err)
}
