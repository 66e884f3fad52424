package handler

import (
	"github.com/fadilmartias/resume-matcher/internal/dto"
	"github.com/fadilmartias/resume-matcher/internal/usecase"
	"github.com/fadilmartias/resume-matcher/internal/util"
	"github.com/gofiber/fiber/v2"
)

type AuthHandler struct {
	uc *usecase.AuthUsecase
}

func NewAuthHandler(uc *usecase.AuthUsecase) *AuthHandler {
	return &AuthHandler{uc: uc}
}

func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req dto.CredentialsRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid request body", err)
	}

	user, err := h.uc.Register(c.UserContext(), req.Email, req.Password)
	if err != nil {
		return failWith(c, "failed to register", err)
	}

	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Code:    fiber.StatusCreated,
		Message: "Success register",
		Data:    fiber.Map{"email": user.Email, "role": user.Role},
	})
}

func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req dto.CredentialsRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid request body", err)
	}

	token, err := h.uc.Login(c.UserContext(), req.Email, req.Password)
	if err != nil {
		return failWith(c, "failed to login", err)
	}

	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message: "Success login",
		Data:    dto.TokenDTO{AccessToken: token, TokenType: "bearer"},
	})
}
