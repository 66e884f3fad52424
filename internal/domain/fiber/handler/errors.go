package handler

import (
	"errors"

	"github.com/fadilmartias/resume-matcher/internal/matcher"
	"github.com/fadilmartias/resume-matcher/internal/usecase"
	"github.com/fadilmartias/resume-matcher/internal/util"
	"github.com/gofiber/fiber/v2"
)

// statusFor maps domain errors onto HTTP status codes and a stable kind.
func statusFor(err error) (int, string) {
	switch {
	case errors.Is(err, matcher.ErrEmptyInput), errors.Is(err, usecase.ErrInvalidInput):
		return fiber.StatusBadRequest, "invalid_input"
	case errors.Is(err, usecase.ErrInvalidCredentials):
		return fiber.StatusUnauthorized, "invalid_credentials"
	case errors.Is(err, usecase.ErrForbidden):
		return fiber.StatusForbidden, "forbidden"
	case errors.Is(err, usecase.ErrResumeNotFound):
		return fiber.StatusNotFound, "resume_not_found"
	case errors.Is(err, matcher.ErrNoJobsAvailable):
		return fiber.StatusNotFound, "no_jobs_available"
	case errors.Is(err, usecase.ErrEmailTaken):
		return fiber.StatusConflict, "email_taken"
	case errors.Is(err, matcher.ErrUnreadableDocument):
		return fiber.StatusUnprocessableEntity, "unreadable_document"
	case errors.Is(err, matcher.ErrJobSourceUnavailable):
		return fiber.StatusBadGateway, "job_source_unavailable"
	case errors.Is(err, matcher.ErrScoringUnavailable):
		return fiber.StatusServiceUnavailable, "scoring_unavailable"
	case errors.Is(err, matcher.ErrTaggerUnavailable):
		return fiber.StatusServiceUnavailable, "tagger_unavailable"
	default:
		return fiber.StatusInternalServerError, "internal"
	}
}

func failWith(c *fiber.Ctx, message string, err error) error {
	code, kind := statusFor(err)
	if code != fiber.StatusInternalServerError {
		message = err.Error()
	}
	return util.ErrorResponse(c, util.ErrorResponseFormat{
		Code:    code,
		Message: message,
		Kind:    kind,
	}, err)
}

func badRequest(c *fiber.Ctx, message string, err error) error {
	return util.ErrorResponse(c, util.ErrorResponseFormat{
		Code:    fiber.StatusBadRequest,
		Message: message,
		Kind:    "invalid_input",
	}, err)
}
