package services

import (
	"errors"
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/hotelsoft/guest-api/internal/config"
	"github.com/hotelsoft/guest-api/internal/dto"
	"github.com/hotelsoft/guest-api/internal/mirror"
	"github.com/hotelsoft/guest-api/internal/models"
	"github.com/hotelsoft/guest-api/internal/repository"
)

var (
	ErrEmailTaken         = errors.New("email already in use")
	ErrCPFTaken           = errors.New("cpf already in use")
	ErrInvalidCPF         = errors.New("invalid cpf")
	ErrInvalidEmail       = errors.New("invalid email")
	ErrGuestNotFound      = errors.New("guest not found")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrJWTSecretMissing   = errors.New("JWT_SECRET is not configured")
)

const passwordCost = 12

// GuestService owns every business rule over guest records: uniqueness,
// CPF and email validation, password hashing, delete-state guards and
// token issuance. The store beneath it applies none of these.
type GuestService struct {
	store  repository.GuestStore
	mirror *mirror.Client
	cfg    *config.Config
}

func NewGuestService(store repository.GuestStore, m *mirror.Client, cfg *config.Config) *GuestService {
	return &GuestService{store: store, mirror: m, cfg: cfg}
}

// Create validates and persists a new guest. Check order is fixed:
// email uniqueness, CPF uniqueness, CPF checksum, email format.
func (s *GuestService) Create(req *dto.CreateGuestRequest) (*dto.GuestResponse, error) {
	byEmail, err := s.store.FindByEmail(req.Email)
	if err != nil {
		return nil, err
	}
	if byEmail != nil {
		return nil, ErrEmailTaken
	}

	byCPF, err := s.store.FindByCPF(req.CPF)
	if err != nil {
		return nil, err
	}
	if byCPF != nil {
		return nil, ErrCPFTaken
	}

	if !isValidCPF(req.CPF) {
		return nil, ErrInvalidCPF
	}
	if !isValidEmail(req.Email) {
		return nil, ErrInvalidEmail
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), passwordCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	guest := models.Guest{
		Name:     req.Name,
		CPF:      req.CPF,
		Email:    req.Email,
		Phone:    req.Phone,
		Address:  req.Address,
		Password: string(hash),
	}
	if err := s.store.Create(&guest); err != nil {
		return nil, mapStoreErr(err)
	}

	// Best effort: a mirror failure never fails the create.
	if err := s.mirror.Insert(&guest); err != nil {
		slog.Error("supabase mirror insert failed", "guest_id", guest.ID, "error", err)
	}

	return guestResponse(&guest), nil
}

func (s *GuestService) FindByID(id uint) (*dto.GuestResponse, error) {
	guest, err := s.store.FindByID(id)
	if err != nil {
		return nil, err
	}
	if guest == nil {
		return nil, ErrGuestNotFound
	}
	return guestResponse(guest), nil
}

func (s *GuestService) List(page, pageSize int) (*dto.GuestListResponse, error) {
	guests, total, err := s.store.ListActive(page, pageSize)
	if err != nil {
		return nil, err
	}

	items := make([]dto.GuestResponse, 0, len(guests))
	for i := range guests {
		items = append(items, *guestResponse(&guests[i]))
	}
	return &dto.GuestListResponse{
		Items:      items,
		Total:      total,
		Page:       page,
		TotalPages: int(math.Ceil(float64(total) / float64(pageSize))),
	}, nil
}

// Update applies a partial update. Email and CPF are re-checked only when
// they actually change; a new password is hashed before it reaches the store.
func (s *GuestService) Update(id uint, req *dto.UpdateGuestRequest) (*dto.GuestResponse, error) {
	existing, err := s.store.FindByID(id)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, ErrGuestNotFound
	}

	fields := make(map[string]any)
	if req.Name != nil {
		fields["name"] = *req.Name
	}
	if req.Email != nil {
		if *req.Email != existing.Email {
			inUse, err := s.store.FindByEmail(*req.Email)
			if err != nil {
				return nil, err
			}
			if inUse != nil {
				return nil, ErrEmailTaken
			}
			if !isValidEmail(*req.Email) {
				return nil, ErrInvalidEmail
			}
		}
		fields["email"] = *req.Email
	}
	if req.CPF != nil {
		if *req.CPF != existing.CPF {
			inUse, err := s.store.FindByCPF(*req.CPF)
			if err != nil {
				return nil, err
			}
			if inUse != nil {
				return nil, ErrCPFTaken
			}
			if !isValidCPF(*req.CPF) {
				return nil, ErrInvalidCPF
			}
		}
		fields["cpf"] = *req.CPF
	}
	if req.Phone != nil {
		fields["phone"] = req.Phone
	}
	if req.Address != nil {
		fields["address"] = req.Address
	}
	if req.Password != nil {
		hash, err := bcrypt.GenerateFromPassword([]byte(*req.Password), passwordCost)
		if err != nil {
			return nil, fmt.Errorf("hash password: %w", err)
		}
		fields["password"] = string(hash)
	}

	updated, err := s.store.Update(id, fields)
	if err != nil {
		return nil, mapStoreErr(err)
	}
	if updated == nil {
		return nil, ErrGuestNotFound
	}
	return guestResponse(updated), nil
}

func (s *GuestService) SoftDelete(id uint) error {
	existing, err := s.store.FindByID(id)
	if err != nil {
		return err
	}
	if existing == nil {
		return ErrGuestNotFound
	}

	ok, err := s.store.SoftDelete(id)
	if err != nil {
		return err
	}
	if !ok {
		return ErrGuestNotFound
	}
	return nil
}

// Restore clears a soft delete. Not-found covers both a missing row and a
// row that was never deleted.
func (s *GuestService) Restore(id uint) error {
	ok, err := s.store.Restore(id)
	if err != nil {
		return err
	}
	if !ok {
		return ErrGuestNotFound
	}
	return nil
}

func (s *GuestService) HardDelete(id uint) error {
	ok, err := s.store.HardDelete(id)
	if err != nil {
		return err
	}
	if !ok {
		return ErrGuestNotFound
	}
	return nil
}

func (s *GuestService) ListDeleted() ([]dto.DeletedGuestResponse, error) {
	guests, err := s.store.ListDeleted()
	if err != nil {
		return nil, err
	}

	items := make([]dto.DeletedGuestResponse, 0, len(guests))
	for i := range guests {
		items = append(items, dto.DeletedGuestResponse{
			GuestResponse: *guestResponse(&guests[i]),
			DeletedAt:     guests[i].DeletedAt.Time,
		})
	}
	return items, nil
}

// Login authenticates against active guests only; soft-deleted guests
// cannot sign in until restored. Unknown email and wrong password return
// the same error so accounts cannot be enumerated.
func (s *GuestService) Login(req *dto.LoginRequest) (*dto.AuthResponse, error) {
	guest, err := s.store.FindByEmail(req.Email)
	if err != nil {
		return nil, err
	}
	if guest == nil {
		return nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(guest.Password), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	if s.cfg.JWTSecret == "" {
		return nil, ErrJWTSecretMissing
	}

	now := time.Now()
	claims := jwt.MapClaims{
		"id":    guest.ID,
		"email": guest.Email,
		"iat":   now.Unix(),
		"exp":   now.Add(s.cfg.JWTExpiry).Unix(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(s.cfg.JWTSecret))
	if err != nil {
		return nil, fmt.Errorf("sign token: %w", err)
	}

	return &dto.AuthResponse{Guest: *guestResponse(guest), Token: token}, nil
}

func guestResponse(g *models.Guest) *dto.GuestResponse {
	resp := &dto.GuestResponse{
		ID:        g.ID,
		Name:      g.Name,
		CPF:       g.CPF,
		Email:     g.Email,
		Phone:     g.Phone,
		Address:   g.Address,
		CreatedAt: g.CreatedAt,
		UpdatedAt: g.UpdatedAt,
	}
	if resp.CreatedAt.IsZero() {
		resp.CreatedAt = time.Now()
	}
	if resp.UpdatedAt.IsZero() {
		resp.UpdatedAt = time.Now()
	}
	return resp
}

func mapStoreErr(err error) error {
	switch {
	case errors.Is(err, repository.ErrDuplicateEmail):
		return ErrEmailTaken
	case errors.Is(err, repository.ErrDuplicateCPF):
		return ErrCPFTaken
	}
	return err
}
