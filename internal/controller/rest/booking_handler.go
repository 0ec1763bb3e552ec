package rest

import (
	"context"
	"net/http"
	"strconv"

	"github.com/Freeeeeet/shareit/internal/model"
	"github.com/Freeeeeet/shareit/internal/service"
	"github.com/gin-gonic/gin"
)

// POST /bookings
func (h *Handler) CreateBooking(c *gin.Context) {
	var req createBookingRequest
	if !h.bindJSON(c, &req) {
		return
	}

	booking, err := h.bookings.Create(c.Request.Context(), userID(c), service.BookingInput{
		ItemID: req.ItemID,
		Start:  *req.Start,
		End:    *req.End,
	})
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, toBookingResponse(booking))
}

// PATCH /bookings/:id?approved=true|false
func (h *Handler) DecideBooking(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var approved *bool
	if raw, set := c.GetQuery("approved"); set {
		v, err := strconv.ParseBool(raw)
		if err != nil {
			badRequest(c, "approved must be true or false")
			return
		}
		approved = &v
	}

	booking, err := h.bookings.Decide(c.Request.Context(), userID(c), id, approved)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, toBookingResponse(booking))
}

// GET /bookings/:id
func (h *Handler) GetBooking(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	booking, err := h.bookings.FindByID(c.Request.Context(), userID(c), id)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, toBookingResponse(booking))
}

// DELETE /bookings/:id
func (h *Handler) DeleteBooking(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	if err := h.bookings.Delete(c.Request.Context(), id); err != nil {
		h.respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// GET /bookings?state=&from=&size=
func (h *Handler) ListBookerBookings(c *gin.Context) {
	h.listBookings(c, 10, h.bookings.ListByBooker)
}

// GET /bookings/owner?state=&from=&size=
func (h *Handler) ListOwnerBookings(c *gin.Context) {
	h.listBookings(c, 20, h.bookings.ListByOwner)
}

type bookingLister func(ctx context.Context, actorID int64, state string, from, size int) ([]*model.Booking, error)

func (h *Handler) listBookings(c *gin.Context, defaultSize int, list bookingLister) {
	var q bookingListQuery
	if !h.bindQuery(c, &q) {
		return
	}

	state := q.State
	if state == "" {
		state = string(model.StateAll)
	}
	from, size := q.resolve(defaultSize)

	bookings, err := list(c.Request.Context(), userID(c), state, from, size)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, toBookingResponses(bookings))
}
