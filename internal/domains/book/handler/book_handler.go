package handler

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	validation "github.com/go-ozzo/ozzo-validation/v4"

	"bookshelf-backend/internal/domains/book"
	"bookshelf-backend/internal/shared/response"
	"bookshelf-backend/internal/shared/upload"
)

type BookHandler struct {
	service book.Service
}

func NewBookHandler(svc book.Service) *BookHandler {
	return &BookHandler{
		service: svc,
	}
}

func imageFromRequest(c *gin.Context) (*upload.Image, error) {
	fileHeader, err := c.FormFile("image")
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
			return nil, nil
		}
		return nil, err
	}

	file, err := fileHeader.Open()
	if err != nil {
		return nil, err
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, upload.MaxImageSize+1))
	if err != nil {
		return nil, err
	}

	return &upload.Image{
		Filename:    fileHeader.Filename,
		ContentType: fileHeader.Header.Get("Content-Type"),
		Data:        data,
	}, nil
}

func respondServiceError(c *gin.Context, err error) {
	var vErrs validation.Errors
	if errors.As(err, &vErrs) {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_FAILED", "validation failed", vErrs)
		return
	}
	if errors.Is(err, upload.ErrInvalidImage) {
		response.BadRequest(c, err.Error())
		return
	}

	switch book.ToHTTPStatus(err) {
	case http.StatusNotFound:
		response.NotFound(c, err.Error())
	case http.StatusConflict:
		response.Conflict(c, err.Error())
	default:
		response.InternalServerError(c, err.Error())
	}
}

// ════════════════════════════════════════════════════════════════
// READ: GET /v1/books
// ════════════════════════════════════════════════════════════════

func (h *BookHandler) List(c *gin.Context) {
	books, err := h.service.List(c.Request.Context())
	if err != nil {
		response.InternalServerError(c, err.Error())
		return
	}

	response.Success(c, http.StatusOK, books)
}

// ════════════════════════════════════════════════════════════════
// CREATE: POST /v1/books (multipart, optional image)
// ════════════════════════════════════════════════════════════════

func (h *BookHandler) Create(c *gin.Context) {
	var req book.CreateBookRequest
	if err := c.ShouldBind(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	image, err := imageFromRequest(c)
	if err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	created, err := h.service.Create(c.Request.Context(), &req, image)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, created)
}

// ════════════════════════════════════════════════════════════════
// READ: GET /v1/books/:isbn
// ════════════════════════════════════════════════════════════════

func (h *BookHandler) GetByISBN(c *gin.Context) {
	b, err := h.service.GetByISBN(c.Request.Context(), c.Param("isbn"))
	if err != nil {
		respondServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, b)
}

// ════════════════════════════════════════════════════════════════
// UPDATE: PUT /v1/books/:isbn (multipart, optional image)
// ════════════════════════════════════════════════════════════════

func (h *BookHandler) Update(c *gin.Context) {
	var req book.UpdateBookRequest
	if err := c.ShouldBind(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	image, err := imageFromRequest(c)
	if err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	updated, err := h.service.Update(c.Request.Context(), c.Param("isbn"), &req, image)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, updated)
}

// ════════════════════════════════════════════════════════════════
// DELETE: DELETE /v1/books/:isbn
// ════════════════════════════════════════════════════════════════

func (h *BookHandler) Delete(c *gin.Context) {
	message, err := h.service.Delete(c.Request.Context(), c.Param("isbn"))
	if err != nil {
		respondServiceError(c, err)
		return
	}

	response.Message(c, http.StatusOK, message)
}
