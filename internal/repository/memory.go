package repository

import (
	"sort"
	"sync"
	"time"

	"github.com/hotelsoft/guest-api/internal/models"
	"gorm.io/gorm"
)

// MemoryStore is an in-memory GuestStore with the same semantics as the
// PostgreSQL store, including the unique-index backstop. Used by tests.
type MemoryStore struct {
	mu     sync.RWMutex
	nextID uint
	guests map[uint]*models.Guest
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{guests: make(map[uint]*models.Guest)}
}

func (s *MemoryStore) Create(guest *models.Guest) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, g := range s.guests {
		if g.DeletedAt.Valid {
			continue
		}
		if g.Email == guest.Email {
			return ErrDuplicateEmail
		}
		if g.CPF == guest.CPF {
			return ErrDuplicateCPF
		}
	}

	s.nextID++
	guest.ID = s.nextID
	now := time.Now()
	guest.CreatedAt = now
	guest.UpdatedAt = now

	stored := *guest
	s.guests[guest.ID] = &stored
	return nil
}

func (s *MemoryStore) FindByID(id uint) (*models.Guest, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	g, ok := s.guests[id]
	if !ok || g.DeletedAt.Valid {
		return nil, nil
	}
	return publicCopy(g), nil
}

func (s *MemoryStore) FindByEmail(email string) (*models.Guest, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, g := range s.guests {
		if !g.DeletedAt.Valid && g.Email == email {
			copied := *g
			return &copied, nil
		}
	}
	return nil, nil
}

func (s *MemoryStore) FindByCPF(cpf string) (*models.Guest, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, g := range s.guests {
		if !g.DeletedAt.Valid && g.CPF == cpf {
			return publicCopy(g), nil
		}
	}
	return nil, nil
}

func (s *MemoryStore) ListActive(page, pageSize int) ([]models.Guest, int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	active := make([]*models.Guest, 0, len(s.guests))
	for _, g := range s.guests {
		if !g.DeletedAt.Valid {
			active = append(active, g)
		}
	}
	sort.Slice(active, func(i, j int) bool {
		if active[i].CreatedAt.Equal(active[j].CreatedAt) {
			return active[i].ID > active[j].ID
		}
		return active[i].CreatedAt.After(active[j].CreatedAt)
	})

	total := int64(len(active))
	start := (page - 1) * pageSize
	if start > len(active) {
		start = len(active)
	}
	end := start + pageSize
	if end > len(active) {
		end = len(active)
	}

	out := make([]models.Guest, 0, end-start)
	for _, g := range active[start:end] {
		out = append(out, *publicCopy(g))
	}
	return out, total, nil
}

func (s *MemoryStore) Update(id uint, fields map[string]any) (*models.Guest, error) {
	if len(fields) == 0 {
		return s.FindByID(id)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	g, ok := s.guests[id]
	if !ok || g.DeletedAt.Valid {
		return nil, nil
	}

	if email, ok := fields["email"].(string); ok {
		for _, other := range s.guests {
			if other.ID != id && !other.DeletedAt.Valid && other.Email == email {
				return nil, ErrDuplicateEmail
			}
		}
	}
	if cpf, ok := fields["cpf"].(string); ok {
		for _, other := range s.guests {
			if other.ID != id && !other.DeletedAt.Valid && other.CPF == cpf {
				return nil, ErrDuplicateCPF
			}
		}
	}

	for key, val := range fields {
		switch key {
		case "name":
			g.Name = val.(string)
		case "cpf":
			g.CPF = val.(string)
		case "email":
			g.Email = val.(string)
		case "password":
			g.Password = val.(string)
		case "phone":
			g.Phone = val.(*string)
		case "address":
			g.Address = val.(*string)
		}
	}
	g.UpdatedAt = time.Now()
	return publicCopy(g), nil
}

func (s *MemoryStore) SoftDelete(id uint) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	g, ok := s.guests[id]
	if !ok || g.DeletedAt.Valid {
		return false, nil
	}
	now := time.Now()
	g.DeletedAt = gorm.DeletedAt{Time: now, Valid: true}
	g.UpdatedAt = now
	return true, nil
}

func (s *MemoryStore) Restore(id uint) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	g, ok := s.guests[id]
	if !ok || !g.DeletedAt.Valid {
		return false, nil
	}
	g.DeletedAt = gorm.DeletedAt{}
	g.UpdatedAt = time.Now()
	return true, nil
}

func (s *MemoryStore) HardDelete(id uint) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.guests[id]; !ok {
		return false, nil
	}
	delete(s.guests, id)
	return true, nil
}

func (s *MemoryStore) ListDeleted() ([]models.Guest, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	deleted := make([]*models.Guest, 0)
	for _, g := range s.guests {
		if g.DeletedAt.Valid {
			deleted = append(deleted, g)
		}
	}
	sort.Slice(deleted, func(i, j int) bool {
		return deleted[i].DeletedAt.Time.After(deleted[j].DeletedAt.Time)
	})

	out := make([]models.Guest, 0, len(deleted))
	for _, g := range deleted {
		copied := *publicCopy(g)
		copied.DeletedAt = g.DeletedAt
		out = append(out, copied)
	}
	return out, nil
}

func publicCopy(g *models.Guest) *models.Guest {
	copied := *g
	copied.Password = ""
	copied.DeletedAt = gorm.DeletedAt{}
	return &copied
}
