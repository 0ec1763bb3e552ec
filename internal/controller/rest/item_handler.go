package rest

import (
	"net/http"

	"github.com/Freeeeeet/shareit/internal/service"
	"github.com/gin-gonic/gin"
)

// POST /items
func (h *Handler) CreateItem(c *gin.Context) {
	var req createItemRequest
	if !h.bindJSON(c, &req) {
		return
	}

	item, err := h.items.Create(c.Request.Context(), userID(c), service.ItemInput{
		Name:        req.Name,
		Description: req.Description,
		Available:   req.Available,
		RequestID:   req.RequestID,
	})
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, item)
}

// PATCH /items/:id
func (h *Handler) UpdateItem(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req updateItemRequest
	if !h.bindJSON(c, &req) {
		return
	}

	item, err := h.items.Update(c.Request.Context(), userID(c), id, service.ItemPatch{
		Name:        req.Name,
		Description: req.Description,
		Available:   req.Available,
	})
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, item)
}

// GET /items/:id
func (h *Handler) GetItem(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	item, err := h.items.Get(c.Request.Context(), userID(c), id)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, item)
}

// GET /items?from=&size=
func (h *Handler) ListOwnItems(c *gin.Context) {
	var q pageQuery
	if !h.bindQuery(c, &q) {
		return
	}
	from, size := q.resolve(10)

	items, err := h.items.ListByOwner(c.Request.Context(), userID(c), from, size)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, items)
}

type searchQuery struct {
	pageQuery
	Text string `form:"text"`
}

// GET /items/search?text=&from=&size=
func (h *Handler) SearchItems(c *gin.Context) {
	var q searchQuery
	if !h.bindQuery(c, &q) {
		return
	}
	from, size := q.resolve(10)

	items, err := h.items.Search(c.Request.Context(), q.Text, from, size)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, items)
}

// POST /items/:id/comment
func (h *Handler) AddComment(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req commentRequest
	if !h.bindJSON(c, &req) {
		return
	}

	comment, err := h.items.AddComment(c.Request.Context(), userID(c), id, req.Text)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, comment)
}
