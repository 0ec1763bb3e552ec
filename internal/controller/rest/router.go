package rest

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// NewRouter собирает gin-движок со всеми маршрутами API
func NewRouter(h *Handler, logger *zap.Logger, production bool) *gin.Engine {
	if production {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(RequestID(), AccessLog(logger), gin.Recovery())

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	users := r.Group("/users")
	{
		users.POST("", h.CreateUser)
		users.GET("", h.ListUsers)
		users.GET("/:id", h.GetUser)
		users.PATCH("/:id", h.UpdateUser)
		users.DELETE("/:id", h.DeleteUser)
	}

	secured := r.Group("")
	secured.Use(RequireUser())

	bookings := secured.Group("/bookings")
	{
		bookings.POST("", h.CreateBooking)
		bookings.GET("", h.ListBookerBookings)
		bookings.GET("/owner", h.ListOwnerBookings)
		bookings.GET("/:id", h.GetBooking)
		bookings.PATCH("/:id", h.DecideBooking)
		bookings.DELETE("/:id", h.DeleteBooking)
	}

	items := secured.Group("/items")
	{
		items.POST("", h.CreateItem)
		items.GET("", h.ListOwnItems)
		items.GET("/search", h.SearchItems)
		items.GET("/:id", h.GetItem)
		items.PATCH("/:id", h.UpdateItem)
		items.POST("/:id/comment", h.AddComment)
	}

	requests := secured.Group("/requests")
	{
		requests.POST("", h.CreateRequest)
		requests.GET("", h.ListOwnRequests)
		requests.GET("/all", h.ListOtherRequests)
		requests.GET("/:id", h.GetRequest)
		requests.DELETE("/:id", h.DeleteRequest)
	}

	return r
}
