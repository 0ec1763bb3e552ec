package rest

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// POST /requests
func (h *Handler) CreateRequest(c *gin.Context) {
	var req createRequestRequest
	if !h.bindJSON(c, &req) {
		return
	}

	request, err := h.requests.Create(c.Request.Context(), userID(c), req.Description)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, request)
}

// GET /requests
func (h *Handler) ListOwnRequests(c *gin.Context) {
	requests, err := h.requests.ListOwn(c.Request.Context(), userID(c))
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, requests)
}

// GET /requests/all?from=&size=
func (h *Handler) ListOtherRequests(c *gin.Context) {
	var q pageQuery
	if !h.bindQuery(c, &q) {
		return
	}
	from, size := q.resolve(10)

	requests, err := h.requests.ListOthers(c.Request.Context(), userID(c), from, size)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, requests)
}

// GET /requests/:id
func (h *Handler) GetRequest(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	request, err := h.requests.Get(c.Request.Context(), userID(c), id)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, request)
}

// DELETE /requests/:id
func (h *Handler) DeleteRequest(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	if err := h.requests.Delete(c.Request.Context(), userID(c), id); err != nil {
		h.respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
