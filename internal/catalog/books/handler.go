package books

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

type Handler struct{ svc *Service }

func RegisterRoutes(r gin.IRoutes, svc *Service) {
	h := &Handler{svc: svc}

	r.POST("/books", h.Create)
	r.GET("/books", h.List)
	r.GET("/books/:book_id", h.Get)
	r.PATCH("/books/:book_id", h.Update)
	r.DELETE("/books/:book_id", h.Delete)
	r.POST("/books/import", h.Import)
}

// Create godoc
// @Summary  Create a book
// @Tags     books
// @Accept   json
// @Produce  json
// @Param    body body CreateBookRequest true "book to create"
// @Success  201 {object} BookResponse
// @Failure  400 {object} errDTO
// @Failure  409 {object} errDTO "duplicate isbn"
// @Security BearerAuth
// @Router   /books [post]
func (h *Handler) Create(c *gin.Context) {
	var req CreateBookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, apiErr(CodeInvalidArgument, "invalid json"))
		return
	}
	res, err := h.svc.Create(c.Request.Context(), req)
	if err != nil {
		c.JSON(toHTTPStatus(err), apiErrFrom(err))
		return
	}
	c.Header("Location", "/api/v1/books/"+strconv.FormatInt(res.ID, 10))
	c.JSON(http.StatusCreated, res)
}

// List godoc
// @Summary  List books, optionally filtered
// @Tags     books
// @Produce  json
// @Param    title     query string false "title substring"
// @Param    author_id query int    false "filter by author"
// @Param    available query bool   false "filter by availability"
// @Param    skip      query int    false "rows to skip" default(0)
// @Param    limit     query int    false "max rows to return" default(10)
// @Success  200 {array} BookResponse
// @Security BearerAuth
// @Router   /books [get]
func (h *Handler) List(c *gin.Context) {
	var f BookSearchQuery
	if v := c.Query("title"); v != "" {
		f.Title = &v
	}
	if v := c.Query("author_id"); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			f.AuthorID = &n
		}
	}
	if v := c.Query("available"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			f.Available = &b
		}
	}
	skip := atoiDef(c.Query("skip"), 0)
	limit := atoiDef(c.Query("limit"), 10)

	res, err := h.svc.List(c.Request.Context(), f, skip, limit)
	if err != nil {
		c.JSON(toHTTPStatus(err), apiErrFrom(err))
		return
	}
	c.JSON(http.StatusOK, res)
}

// Get godoc
// @Summary  Fetch a book with its author
// @Tags     books
// @Produce  json
// @Param    book_id path int true "book id"
// @Success  200 {object} BookDetailResponse
// @Failure  404 {object} errDTO
// @Security BearerAuth
// @Router   /books/{book_id} [get]
func (h *Handler) Get(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("book_id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, apiErr(CodeInvalidArgument, "book_id must be a number"))
		return
	}
	res, err := h.svc.Get(c.Request.Context(), id)
	if err != nil {
		c.JSON(toHTTPStatus(err), apiErrFrom(err))
		return
	}
	c.JSON(http.StatusOK, res)
}

// Update godoc
// @Summary  Partially update a book
// @Tags     books
// @Accept   json
// @Produce  json
// @Param    book_id path int true "book id"
// @Param    body body UpdateBookRequest true "fields to change"
// @Success  200 {object} BookResponse
// @Failure  404 {object} errDTO
// @Security BearerAuth
// @Router   /books/{book_id} [patch]
func (h *Handler) Update(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("book_id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, apiErr(CodeInvalidArgument, "book_id must be a number"))
		return
	}
	var req UpdateBookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, apiErr(CodeInvalidArgument, "invalid json"))
		return
	}
	res, err := h.svc.Update(c.Request.Context(), id, req)
	if err != nil {
		c.JSON(toHTTPStatus(err), apiErrFrom(err))
		return
	}
	c.JSON(http.StatusOK, res)
}

// Delete godoc
// @Summary  Delete a book
// @Tags     books
// @Param    book_id path int true "book id"
// @Success  204
// @Failure  404 {object} errDTO
// @Failure  409 {object} errDTO "book has borrow records"
// @Security BearerAuth
// @Router   /books/{book_id} [delete]
func (h *Handler) Delete(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("book_id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, apiErr(CodeInvalidArgument, "book_id must be a number"))
		return
	}
	if err := h.svc.Delete(c.Request.Context(), id); err != nil {
		c.JSON(toHTTPStatus(err), apiErrFrom(err))
		return
	}
	c.Status(http.StatusNoContent)
}

// Import godoc
// @Summary  Bulk-import books from a CSV upload
// @Tags     books
// @Accept   multipart/form-data
// @Produce  json
// @Param    file     formData file   true  "csv with header title,isbn,author_id,published_date,description"
// @Param    encoding query    string false "utf-8 (default) or sjis"
// @Success  200 {object} ImportBooksResponse
// @Failure  400 {object} errDTO
// @Security BearerAuth
// @Router   /books/import [post]
func (h *Handler) Import(c *gin.Context) {
	file, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, apiErr(CodeInvalidArgument, "file is required"))
		return
	}
	f, err := file.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, apiErr(CodeInvalidArgument, "failed to open upload"))
		return
	}
	defer f.Close()

	res, err := h.svc.ImportCSV(c.Request.Context(), f, c.DefaultQuery("encoding", "utf-8"))
	if err != nil {
		c.JSON(toHTTPStatus(err), apiErrFrom(err))
		return
	}
	c.JSON(http.StatusOK, res)
}

// ===== helpers =====

func atoiDef(s string, d int) int {
	if s == "" {
		return d
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return d
	}
	return n
}

type errDTO struct {
	Error struct {
		Code    Code   `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func apiErr(code Code, msg string) errDTO {
	var e errDTO
	e.Error.Code = code
	e.Error.Message = msg
	return e
}

func apiErrFrom(err error) errDTO {
	if api, ok := err.(*APIError); ok {
		return apiErr(api.Code, api.Message)
	}
	return apiErr(CodeInternal, err.Error())
}
