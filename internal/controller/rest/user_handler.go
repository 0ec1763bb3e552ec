package rest

import (
	"net/http"

	"github.com/Freeeeeet/shareit/internal/service"
	"github.com/gin-gonic/gin"
)

// POST /users
func (h *Handler) CreateUser(c *gin.Context) {
	var req createUserRequest
	if !h.bindJSON(c, &req) {
		return
	}

	user, err := h.users.Create(c.Request.Context(), req.Name, req.Email, req.TelegramID)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, user)
}

// PATCH /users/:id
func (h *Handler) UpdateUser(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req updateUserRequest
	if !h.bindJSON(c, &req) {
		return
	}

	user, err := h.users.Update(c.Request.Context(), id, service.UserPatch{
		Name:       req.Name,
		Email:      req.Email,
		TelegramID: req.TelegramID,
	})
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, user)
}

// GET /users/:id
func (h *Handler) GetUser(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	user, err := h.users.GetByID(c.Request.Context(), id)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, user)
}

// GET /users
func (h *Handler) ListUsers(c *gin.Context) {
	users, err := h.users.List(c.Request.Context())
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, users)
}

// DELETE /users/:id
func (h *Handler) DeleteUser(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	if err := h.users.Delete(c.Request.Context(), id); err != nil {
		h.respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
