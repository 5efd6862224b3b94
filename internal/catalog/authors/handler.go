package authors

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

type Handler struct{ svc *Service }

func RegisterRoutes(r gin.IRoutes, svc *Service) {
	h := &Handler{svc: svc}

	r.POST("/authors", h.Create)
	r.GET("/authors", h.List)
	r.GET("/authors/:author_id", h.Get)
}

// Create godoc
// @Summary  Create an author
// @Tags     authors
// @Accept   json
// @Produce  json
// @Param    body body CreateAuthorRequest true "author to create"
// @Success  201 {object} AuthorResponse
// @Failure  400 {object} errDTO
// @Security BearerAuth
// @Router   /authors [post]
func (h *Handler) Create(c *gin.Context) {
	var req CreateAuthorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, apiErr(CodeInvalidArgument, "invalid json"))
		return
	}
	res, err := h.svc.Create(c.Request.Context(), req)
	if err != nil {
		c.JSON(toHTTPStatus(err), apiErrFrom(err))
		return
	}
	c.Header("Location", "/api/v1/authors/"+strconv.FormatInt(res.ID, 10))
	c.JSON(http.StatusCreated, res)
}

// List godoc
// @Summary  List authors
// @Tags     authors
// @Produce  json
// @Param    skip  query int false "rows to skip"    default(0)
// @Param    limit query int false "max rows to return" default(10)
// @Success  200 {array} AuthorResponse
// @Security BearerAuth
// @Router   /authors [get]
func (h *Handler) List(c *gin.Context) {
	skip := atoiDef(c.Query("skip"), 0)
	limit := atoiDef(c.Query("limit"), 10)

	res, err := h.svc.List(c.Request.Context(), skip, limit)
	if err != nil {
		c.JSON(toHTTPStatus(err), apiErrFrom(err))
		return
	}
	c.JSON(http.StatusOK, res)
}

// Get godoc
// @Summary  Fetch an author with their books
// @Tags     authors
// @Produce  json
// @Param    author_id path int true "author id"
// @Success  200 {object} AuthorWithBooksResponse
// @Failure  404 {object} errDTO
// @Security BearerAuth
// @Router   /authors/{author_id} [get]
func (h *Handler) Get(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("author_id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, apiErr(CodeInvalidArgument, "author_id must be a number"))
		return
	}
	res, err := h.svc.GetWithBooks(c.Request.Context(), id)
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
