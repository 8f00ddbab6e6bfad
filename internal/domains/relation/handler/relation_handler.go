package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"

	"bookshelf-backend/internal/domains/relation"
	"bookshelf-backend/internal/shared/response"
)

type RelationHandler struct {
	service relation.Service
}

func NewRelationHandler(svc relation.Service) *RelationHandler {
	return &RelationHandler{
		service: svc,
	}
}

func respondServiceError(c *gin.Context, err error) {
	var vErrs validation.Errors
	if errors.As(err, &vErrs) {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_FAILED", "validation failed", vErrs)
		return
	}

	switch relation.ToHTTPStatus(err) {
	case http.StatusConflict:
		response.Conflict(c, err.Error())
	case http.StatusNotFound:
		response.NotFound(c, err.Error())
	default:
		response.InternalServerError(c, err.Error())
	}
}

func parseAuthorID(c *gin.Context, raw string) (uuid.UUID, bool) {
	id, err := uuid.Parse(raw)
	if err != nil {
		response.BadRequest(c, "Invalid UUID format")
		return uuid.Nil, false
	}
	return id, true
}

// ════════════════════════════════════════════════════════════════
// BOOK SIDE: /v1/books/:isbn/authors
// ════════════════════════════════════════════════════════════════

func (h *RelationHandler) ListBookAuthors(c *gin.Context) {
	authors, err := h.service.GetBookAuthors(c.Request.Context(), c.Param("isbn"))
	if err != nil {
		respondServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, authors)
}

func (h *RelationHandler) AttachAuthor(c *gin.Context) {
	var req relation.AttachAuthorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	if err := req.Validate(); err != nil {
		respondServiceError(c, err)
		return
	}

	authorID, ok := parseAuthorID(c, req.AuthorID)
	if !ok {
		return
	}

	result, err := h.service.AddAuthorToBook(c.Request.Context(), c.Param("isbn"), authorID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, result)
}

func (h *RelationHandler) DetachAuthor(c *gin.Context) {
	authorID, ok := parseAuthorID(c, c.Param("authorId"))
	if !ok {
		return
	}

	result, err := h.service.RemoveAuthorFromBook(c.Request.Context(), c.Param("isbn"), authorID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, result)
}

// ════════════════════════════════════════════════════════════════
// AUTHOR SIDE: /v1/authors/:id/books
// ════════════════════════════════════════════════════════════════

func (h *RelationHandler) ListAuthorBooks(c *gin.Context) {
	authorID, ok := parseAuthorID(c, c.Param("id"))
	if !ok {
		return
	}

	books, err := h.service.GetAuthorBooks(c.Request.Context(), authorID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, books)
}

func (h *RelationHandler) AttachBook(c *gin.Context) {
	authorID, ok := parseAuthorID(c, c.Param("id"))
	if !ok {
		return
	}

	var req relation.AttachBookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	if err := req.Validate(); err != nil {
		respondServiceError(c, err)
		return
	}

	result, err := h.service.AddAuthorToBook(c.Request.Context(), req.ISBN, authorID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, result)
}

func (h *RelationHandler) DetachBook(c *gin.Context) {
	authorID, ok := parseAuthorID(c, c.Param("id"))
	if !ok {
		return
	}

	result, err := h.service.RemoveAuthorFromBook(c.Request.Context(), c.Param("isbn"), authorID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, result)
}
