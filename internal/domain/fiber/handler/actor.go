package handler

import (
	"github.com/fadilmartias/resume-matcher/internal/middleware"
	"github.com/fadilmartias/resume-matcher/internal/usecase"
	"github.com/gofiber/fiber/v2"
)

func actorFrom(c *fiber.Ctx) usecase.Actor {
	email, _ := c.Locals(middleware.LocalEmail).(string)
	role, _ := c.Locals(middleware.LocalRole).(string)
	return usecase.Actor{Email: email, Role: role}
}
