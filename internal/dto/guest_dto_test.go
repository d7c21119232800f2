package dto

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validCreate() *CreateGuestRequest {
	return &CreateGuestRequest{
		Name:     "Maria Souza",
		CPF:      "11144477735",
		Email:    "maria@example.com",
		Password: "secret123",
	}
}

func TestCreateGuestRequestPasswordBounds(t *testing.T) {
	req := validCreate()
	req.Password = "12345"
	assert.Error(t, req.Validate())

	req.Password = "123456"
	assert.NoError(t, req.Validate())

	// bcrypt accepts at most 72 bytes; 73 must fail here, not at hash time.
	req.Password = strings.Repeat("a", 72)
	assert.NoError(t, req.Validate())

	req.Password = strings.Repeat("a", 73)
	require.Error(t, req.Validate())
	assert.Contains(t, req.Validate().Error(), "72 bytes")

	// Multi-byte runes count in bytes: 37 two-byte runes exceed the cap.
	req.Password = strings.Repeat("é", 37)
	assert.Error(t, req.Validate())
	req.Password = strings.Repeat("é", 36)
	assert.NoError(t, req.Validate())
}

func TestUpdateGuestRequestPasswordBounds(t *testing.T) {
	long := strings.Repeat("a", 73)
	req := &UpdateGuestRequest{Password: &long}
	assert.Error(t, req.Validate())

	ok := strings.Repeat("a", 72)
	req = &UpdateGuestRequest{Password: &ok}
	assert.NoError(t, req.Validate())
}

func TestCreateGuestRequestFieldBounds(t *testing.T) {
	req := validCreate()
	req.Name = "A"
	assert.Error(t, req.Validate())

	req = validCreate()
	req.CPF = "111444777"
	assert.Error(t, req.Validate())

	req = validCreate()
	req.CPF = "111444777ab"
	assert.Error(t, req.Validate())

	req = validCreate()
	req.Email = strings.Repeat("a", 95) + "@b.com"
	assert.Error(t, req.Validate())

	req = validCreate()
	phone := strings.Repeat("9", 16)
	req.Phone = &phone
	assert.Error(t, req.Validate())
}
