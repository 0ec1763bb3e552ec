package rest

import (
	"context"
	"strings"

	"github.com/Freeeeeet/shareit/internal/model"
	"github.com/Freeeeeet/shareit/internal/service"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

type BookingService interface {
	Create(ctx context.Context, bookerID int64, input service.BookingInput) (*model.Booking, error)
	Decide(ctx context.Context, ownerID, bookingID int64, approved *bool) (*model.Booking, error)
	FindByID(ctx context.Context, callerID, bookingID int64) (*model.Booking, error)
	Delete(ctx context.Context, bookingID int64) error
	ListByBooker(ctx context.Context, bookerID int64, state string, from, size int) ([]*model.Booking, error)
	ListByOwner(ctx context.Context, ownerID int64, state string, from, size int) ([]*model.Booking, error)
}

type ItemService interface {
	Create(ctx context.Context, ownerID int64, input service.ItemInput) (*model.Item, error)
	Update(ctx context.Context, ownerID, itemID int64, patch service.ItemPatch) (*model.Item, error)
	Get(ctx context.Context, viewerID, itemID int64) (*model.Item, error)
	ListByOwner(ctx context.Context, ownerID int64, from, size int) ([]*model.Item, error)
	Search(ctx context.Context, text string, from, size int) ([]*model.Item, error)
	AddComment(ctx context.Context, authorID, itemID int64, text string) (*model.Comment, error)
}

type RequestService interface {
	Create(ctx context.Context, userID int64, description string) (*model.Request, error)
	Get(ctx context.Context, userID, requestID int64) (*model.Request, error)
	ListOwn(ctx context.Context, userID int64) ([]*model.Request, error)
	ListOthers(ctx context.Context, userID int64, from, size int) ([]*model.Request, error)
	Delete(ctx context.Context, userID, requestID int64) error
}

type UserService interface {
	Create(ctx context.Context, name, email string, telegramID *int64) (*model.User, error)
	Update(ctx context.Context, userID int64, patch service.UserPatch) (*model.User, error)
	GetByID(ctx context.Context, id int64) (*model.User, error)
	List(ctx context.Context) ([]*model.User, error)
	Delete(ctx context.Context, id int64) error
}

// Handler обслуживает REST API поверх сервисов
type Handler struct {
	bookings BookingService
	items    ItemService
	requests RequestService
	users    UserService
	v        *validator.Validate
	logger   *zap.Logger
}

func NewHandler(
	bookings BookingService,
	items ItemService,
	requests RequestService,
	users UserService,
	logger *zap.Logger,
) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{
		bookings: bookings,
		items:    items,
		requests: requests,
		users:    users,
		v:        newValidator(),
		logger:   logger,
	}
}

func newValidator() *validator.Validate {
	v := validator.New()
	// notblank: строка не пустая и не из одних пробелов
	_ = v.RegisterValidation("notblank", func(fl validator.FieldLevel) bool {
		return strings.TrimSpace(fl.Field().String()) != ""
	})
	return v
}
