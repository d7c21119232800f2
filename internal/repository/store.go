package repository

import (
	"errors"

	"github.com/hotelsoft/guest-api/internal/models"
)

// Duplicate errors raised when the store's unique indexes reject a write.
// The service performs its own pre-checks; these are the backstop for the
// race two concurrent creates can win simultaneously.
var (
	ErrDuplicateEmail = errors.New("email already in use")
	ErrDuplicateCPF   = errors.New("cpf already in use")
)

// GuestStore is the persistence contract for guest records. It applies no
// business validation. Find operations are scoped to active (non-deleted)
// rows and return (nil, nil) when nothing matches. FindByEmail is the only
// lookup that includes the password hash, since it backs authentication.
type GuestStore interface {
	Create(guest *models.Guest) error
	FindByID(id uint) (*models.Guest, error)
	FindByEmail(email string) (*models.Guest, error)
	FindByCPF(cpf string) (*models.Guest, error)
	ListActive(page, pageSize int) ([]models.Guest, int64, error)
	// Update applies only the given columns to an active row and refreshes
	// updated_at. An empty field map behaves as a plain read.
	Update(id uint, fields map[string]any) (*models.Guest, error)
	SoftDelete(id uint) (bool, error)
	Restore(id uint) (bool, error)
	HardDelete(id uint) (bool, error)
	ListDeleted() ([]models.Guest, error)
}
