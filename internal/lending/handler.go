package lending

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"libris-backend/internal/platform/auth"
)

type Handler struct{ svc *Service }

func RegisterRoutes(r gin.IRoutes, svc *Service) {
	h := &Handler{svc: svc}

	r.POST("/borrow", h.Borrow)
	r.POST("/return/:record_id", h.ReturnBook)
	r.GET("/borrow/history", h.History)
	r.GET("/borrow/records/:key", h.GetRecord)
}

// Borrow godoc
// @Summary  Borrow an available book
// @Tags     borrowing
// @Accept   json
// @Produce  json
// @Param    body body BorrowRequest true "book to borrow"
// @Success  201 {object} BorrowRecordResponse
// @Failure  404 {object} errorDTO "book not found"
// @Failure  409 {object} errorDTO "book not available"
// @Security BearerAuth
// @Router   /borrow [post]
func (h *Handler) Borrow(c *gin.Context) {
	userID, ok := auth.CurrentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, errorBody(CodeUnauthenticated, "not authenticated"))
		return
	}

	var req BorrowRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorBody(CodeInvalidArgument, "invalid json or missing book_id"))
		return
	}

	res, err := h.svc.Borrow(c.Request.Context(), userID, req.BookID)
	if err != nil {
		c.JSON(ToHTTPStatus(err), errorFromErr(err))
		return
	}

	c.Header("Location", "/api/v1/borrow/records/"+res.RecordULID)
	c.JSON(http.StatusCreated, res)
}

// ReturnBook godoc
// @Summary  Return a borrowed book
// @Tags     borrowing
// @Produce  json
// @Param    record_id path int true "borrow record id"
// @Success  200 {object} BorrowRecordResponse
// @Failure  403 {object} errorDTO "not the record owner"
// @Failure  404 {object} errorDTO "record not found"
// @Failure  409 {object} errorDTO "already returned"
// @Security BearerAuth
// @Router   /return/{record_id} [post]
func (h *Handler) ReturnBook(c *gin.Context) {
	userID, ok := auth.CurrentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, errorBody(CodeUnauthenticated, "not authenticated"))
		return
	}

	recordID, err := strconv.ParseInt(c.Param("record_id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, errorBody(CodeInvalidArgument, "record_id must be a number"))
		return
	}

	res, err := h.svc.ReturnBook(c.Request.Context(), recordID, userID)
	if err != nil {
		c.JSON(ToHTTPStatus(err), errorFromErr(err))
		return
	}

	c.JSON(http.StatusOK, res)
}

// History godoc
// @Summary  Borrow history of the authenticated user
// @Tags     borrowing
// @Produce  json
// @Success  200 {array} BorrowRecordResponse
// @Security BearerAuth
// @Router   /borrow/history [get]
func (h *Handler) History(c *gin.Context) {
	userID, ok := auth.CurrentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, errorBody(CodeUnauthenticated, "not authenticated"))
		return
	}

	res, err := h.svc.History(c.Request.Context(), userID)
	if err != nil {
		c.JSON(ToHTTPStatus(err), errorFromErr(err))
		return
	}

	c.JSON(http.StatusOK, res)
}

// GetRecord godoc
// @Summary  Fetch one borrow record by id or ULID
// @Tags     borrowing
// @Produce  json
// @Param    key path string true "record id or record_ulid"
// @Success  200 {object} BorrowRecordResponse
// @Failure  404 {object} errorDTO
// @Security BearerAuth
// @Router   /borrow/records/{key} [get]
func (h *Handler) GetRecord(c *gin.Context) {
	userID, ok := auth.CurrentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, errorBody(CodeUnauthenticated, "not authenticated"))
		return
	}

	res, err := h.svc.GetRecord(c.Request.Context(), c.Param("key"), userID)
	if err != nil {
		c.JSON(ToHTTPStatus(err), errorFromErr(err))
		return
	}

	c.JSON(http.StatusOK, res)
}

// ---------- helpers ----------

type errorDTO struct {
	Error struct {
		Code    Code   `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func errorBody(code Code, msg string) errorDTO {
	var e errorDTO
	e.Error.Code = code
	e.Error.Message = msg
	return e
}

func errorFromErr(err error) errorDTO {
	if api, ok := err.(*APIError); ok {
		return errorBody(api.Code, api.Message)
	}
	return errorBody(CodeInternal, err.Error())
}
