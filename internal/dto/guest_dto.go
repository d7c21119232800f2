package dto

import (
	"errors"
	"time"
	"unicode/utf8"
)

type CreateGuestRequest struct {
	Name     string  `json:"name"`
	CPF      string  `json:"cpf"`
	Email    string  `json:"email"`
	Phone    *string `json:"phone"`
	Address  *string `json:"address"`
	Password string  `json:"password"`
}

// Validate checks field shape only. Business rules (uniqueness, CPF
// checksum, email syntax) belong to the service.
func (r *CreateGuestRequest) Validate() error {
	if err := validateName(r.Name); err != nil {
		return err
	}
	if err := validateCPFShape(r.CPF); err != nil {
		return err
	}
	if r.Email == "" {
		return errors.New("email is required")
	}
	if utf8.RuneCountInString(r.Email) > 100 {
		return errors.New("email must be at most 100 characters")
	}
	if err := validatePassword(r.Password); err != nil {
		return err
	}
	return validateOptional(r.Phone, r.Address)
}

type UpdateGuestRequest struct {
	Name     *string `json:"name"`
	CPF      *string `json:"cpf"`
	Email    *string `json:"email"`
	Phone    *string `json:"phone"`
	Address  *string `json:"address"`
	Password *string `json:"password"`
}

func (r *UpdateGuestRequest) Validate() error {
	if r.Name != nil {
		if err := validateName(*r.Name); err != nil {
			return err
		}
	}
	if r.CPF != nil {
		if err := validateCPFShape(*r.CPF); err != nil {
			return err
		}
	}
	if r.Email != nil && utf8.RuneCountInString(*r.Email) > 100 {
		return errors.New("email must be at most 100 characters")
	}
	if r.Password != nil {
		if err := validatePassword(*r.Password); err != nil {
			return err
		}
	}
	return validateOptional(r.Phone, r.Address)
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type GuestResponse struct {
	ID        uint      `json:"id"`
	Name      string    `json:"name"`
	CPF       string    `json:"cpf"`
	Email     string    `json:"email"`
	Phone     *string   `json:"phone,omitempty"`
	Address   *string   `json:"address,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type DeletedGuestResponse struct {
	GuestResponse
	DeletedAt time.Time `json:"deleted_at"`
}

type GuestListResponse struct {
	Items      []GuestResponse `json:"items"`
	Total      int64           `json:"total"`
	Page       int             `json:"page"`
	TotalPages int             `json:"total_pages"`
}

type AuthResponse struct {
	Guest GuestResponse `json:"guest"`
	Token string        `json:"token"`
}

type ErrorResponse struct {
	Error   bool   `json:"error"`
	Message string `json:"message"`
}

type HealthResponse struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
	DB        string `json:"db"`
}

func validateName(name string) error {
	n := utf8.RuneCountInString(name)
	if n < 2 {
		return errors.New("name must have at least 2 characters")
	}
	if n > 100 {
		return errors.New("name must be at most 100 characters")
	}
	return nil
}

func validateCPFShape(cpf string) error {
	if len(cpf) != 11 {
		return errors.New("cpf must have exactly 11 digits")
	}
	for _, r := range cpf {
		if r < '0' || r > '9' {
			return errors.New("cpf must contain only digits")
		}
	}
	return nil
}

// validatePassword measures bytes, not runes: bcrypt rejects inputs over
// 72 bytes, so the cap has to be enforced in the same unit here.
func validatePassword(password string) error {
	if len(password) < 6 {
		return errors.New("password must have at least 6 characters")
	}
	if len(password) > 72 {
		return errors.New("password must be at most 72 bytes")
	}
	return nil
}

func validateOptional(phone, address *string) error {
	if phone != nil && utf8.RuneCountInString(*phone) > 15 {
		return errors.New("phone must be at most 15 characters")
	}
	if address != nil && utf8.RuneCountInString(*address) > 200 {
		return errors.New("address must be at most 200 characters")
	}
	return nil
}
