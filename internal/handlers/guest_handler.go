package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/hotelsoft/guest-api/internal/dto"
	"github.com/hotelsoft/guest-api/internal/services"
)

type GuestHandler struct {
	service *services.GuestService
}

func NewGuestHandler(service *services.GuestService) *GuestHandler {
	return &GuestHandler{service: service}
}

func (h *GuestHandler) Create(c *fiber.Ctx) error {
	var req dto.CreateGuestRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	if err := req.Validate(); err != nil {
		return badRequest(c, err.Error())
	}

	resp, err := h.service.Create(&req)
	if err != nil {
		if isValidationErr(err) {
			return badRequest(c, err.Error())
		}
		return internalError(c)
	}

	return c.Status(fiber.StatusCreated).JSON(resp)
}

func (h *GuestHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	resp, err := h.service.Login(&req)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Error: true, Message: err.Error(),
			})
		}
		return internalError(c)
	}

	return c.JSON(resp)
}

func (h *GuestHandler) GetByID(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return badRequest(c, "Invalid guest id")
	}

	resp, err := h.service.FindByID(uint(id))
	if err != nil {
		if errors.Is(err, services.ErrGuestNotFound) {
			return notFound(c, "Guest not found")
		}
		return internalError(c)
	}

	return c.JSON(resp)
}

func (h *GuestHandler) List(c *fiber.Ctx) error {
	page := c.QueryInt("page", 1)
	if page < 1 {
		page = 1
	}
	pageSize := c.QueryInt("limit", 10)
	if pageSize < 1 {
		pageSize = 10
	}

	resp, err := h.service.List(page, pageSize)
	if err != nil {
		return internalError(c)
	}
	return c.JSON(resp)
}

func (h *GuestHandler) Update(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return badRequest(c, "Invalid guest id")
	}

	var req dto.UpdateGuestRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	if err := req.Validate(); err != nil {
		return badRequest(c, err.Error())
	}

	resp, err := h.service.Update(uint(id), &req)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrGuestNotFound):
			return notFound(c, "Guest not found")
		case isValidationErr(err):
			return badRequest(c, err.Error())
		}
		return internalError(c)
	}

	return c.JSON(resp)
}

func (h *GuestHandler) SoftDelete(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return badRequest(c, "Invalid guest id")
	}

	if err := h.service.SoftDelete(uint(id)); err != nil {
		if errors.Is(err, services.ErrGuestNotFound) {
			return notFound(c, "Guest not found")
		}
		return internalError(c)
	}

	return c.JSON(fiber.Map{"message": "Guest deleted successfully"})
}

func (h *GuestHandler) Restore(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return badRequest(c, "Invalid guest id")
	}

	if err := h.service.Restore(uint(id)); err != nil {
		if errors.Is(err, services.ErrGuestNotFound) {
			return notFound(c, "Guest not found or not deleted")
		}
		return internalError(c)
	}

	return c.JSON(fiber.Map{"message": "Guest restored successfully"})
}

func (h *GuestHandler) HardDelete(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return badRequest(c, "Invalid guest id")
	}

	if err := h.service.HardDelete(uint(id)); err != nil {
		if errors.Is(err, services.ErrGuestNotFound) {
			return notFound(c, "Guest not found")
		}
		return internalError(c)
	}

	return c.JSON(fiber.Map{"message": "Guest permanently deleted"})
}

func (h *GuestHandler) ListDeleted(c *fiber.Ctx) error {
	items, err := h.service.ListDeleted()
	if err != nil {
		return internalError(c)
	}
	return c.JSON(fiber.Map{"items": items})
}

func isValidationErr(err error) bool {
	return errors.Is(err, services.ErrEmailTaken) ||
		errors.Is(err, services.ErrCPFTaken) ||
		errors.Is(err, services.ErrInvalidCPF) ||
		errors.Is(err, services.ErrInvalidEmail)
}

func badRequest(c *fiber.Ctx, msg string) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: true, Message: msg})
}

func notFound(c *fiber.Ctx, msg string) error {
	return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Error: true, Message: msg})
}

func internalError(c *fiber.Ctx) error {
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
		Error: true, Message: "Internal server error",
	})
}
