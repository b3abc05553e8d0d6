package server

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/tonypottakkal/verba-resume-journal/internal/conversation"
	"github.com/tonypottakkal/verba-resume-journal/internal/export"
	"github.com/tonypottakkal/verba-resume-journal/internal/extraction"
	"github.com/tonypottakkal/verba-resume-journal/internal/ranking"
	"github.com/tonypottakkal/verba-resume-journal/internal/resume"
	"github.com/tonypottakkal/verba-resume-journal/internal/skills"
	"github.com/tonypottakkal/verba-resume-journal/internal/store"
)

// ErrMalformedBody indicates a request body that is not valid JSON.
type ErrMalformedBody struct {
	Cause error
}

func (e *ErrMalformedBody) Error() string {
	return fmt.Sprintf("malformed request body: %v", e.Cause)
}

func (e *ErrMalformedBody) Unwrap() error {
	return e.Cause
}

// HTTPStatus returns the appropriate HTTP status code for an error
func HTTPStatus(err error) int {
	var (
		notFound      *store.NotFoundError
		noSession     *conversation.NotFoundError
		insufficient  *ranking.InsufficientDataError
		noEvidence    *resume.NoEvidenceError
		rankConfig    *ranking.ConfigurationError
		skillConfig   *skills.ConfigurationError
		parseErr      *extraction.ParseError
		badFormat     *export.UnsupportedFormatError
		malformed     *ErrMalformedBody
		fieldFailures validator.ValidationErrors
	)

	switch {
	case errors.As(err, &notFound), errors.As(err, &noSession):
		return http.StatusNotFound
	case errors.As(err, &insufficient), errors.As(err, &noEvidence):
		return http.StatusUnprocessableEntity
	case errors.As(err, &rankConfig), errors.As(err, &skillConfig),
		errors.As(err, &badFormat), errors.As(err, &malformed),
		errors.As(err, &fieldFailures):
		return http.StatusBadRequest
	case errors.As(err, &parseErr):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
