package rest

import (
	"context"

	"github.com/Freeeeeet/shareit/internal/model"
	"github.com/Freeeeeet/shareit/internal/service"
)

type mockBookings struct {
	CreateFn       func(ctx context.Context, bookerID int64, input service.BookingInput) (*model.Booking, error)
	DecideFn       func(ctx context.Context, ownerID, bookingID int64, approved *bool) (*model.Booking, error)
	FindByIDFn     func(ctx context.Context, callerID, bookingID int64) (*model.Booking, error)
	DeleteFn       func(ctx context.Context, bookingID int64) error
	ListByBookerFn func(ctx context.Context, bookerID int64, state string, from, size int) ([]*model.Booking, error)
	ListByOwnerFn  func(ctx context.Context, ownerID int64, state string, from, size int) ([]*model.Booking, error)
}

func (m *mockBookings) Create(ctx context.Context, bookerID int64, input service.BookingInput) (*model.Booking, error) {
	return m.CreateFn(ctx, bookerID, input)
}

func (m *mockBookings) Decide(ctx context.Context, ownerID, bookingID int64, approved *bool) (*model.Booking, error) {
	return m.DecideFn(ctx, ownerID, bookingID, approved)
}

func (m *mockBookings) FindByID(ctx context.Context, callerID, bookingID int64) (*model.Booking, error) {
	return m.FindByIDFn(ctx, callerID, bookingID)
}

func (m *mockBookings) Delete(ctx context.Context, bookingID int64) error {
	return m.DeleteFn(ctx, bookingID)
}

func (m *mockBookings) ListByBooker(ctx context.Context, bookerID int64, state string, from, size int) ([]*model.Booking, error) {
	return m.ListByBookerFn(ctx, bookerID, state, from, size)
}

func (m *mockBookings) ListByOwner(ctx context.Context, ownerID int64, state string, from, size int) ([]*model.Booking, error) {
	return m.ListByOwnerFn(ctx, ownerID, state, from, size)
}

type mockItems struct {
	CreateFn      func(ctx context.Context, ownerID int64, input service.ItemInput) (*model.Item, error)
	UpdateFn      func(ctx context.Context, ownerID, itemID int64, patch service.ItemPatch) (*model.Item, error)
	GetFn         func(ctx context.Context, viewerID, itemID int64) (*model.Item, error)
	ListByOwnerFn func(ctx context.Context, ownerID int64, from, size int) ([]*model.Item, error)
	SearchFn      func(ctx context.Context, text string, from, size int) ([]*model.Item, error)
	AddCommentFn  func(ctx context.Context, authorID, itemID int64, text string) (*model.Comment, error)
}

func (m *mockItems) Create(ctx context.Context, ownerID int64, input service.ItemInput) (*model.Item, error) {
	return m.CreateFn(ctx, ownerID, input)
}

func (m *mockItems) Update(ctx context.Context, ownerID, itemID int64, patch service.ItemPatch) (*model.Item, error) {
	return m.UpdateFn(ctx, ownerID, itemID, patch)
}

func (m *mockItems) Get(ctx context.Context, viewerID, itemID int64) (*model.Item, error) {
	return m.GetFn(ctx, viewerID, itemID)
}

func (m *mockItems) ListByOwner(ctx context.Context, ownerID int64, from, size int) ([]*model.Item, error) {
	return m.ListByOwnerFn(ctx, ownerID, from, size)
}

func (m *mockItems) Search(ctx context.Context, text string, from, size int) ([]*model.Item, error) {
	return m.SearchFn(ctx, text, from, size)
}

func (m *mockItems) AddComment(ctx context.Context, authorID, itemID int64, text string) (*model.Comment, error) {
	return m.AddCommentFn(ctx, authorID, itemID, text)
}

type mockRequests struct {
	CreateFn     func(ctx context.Context, userID int64, description string) (*model.Request, error)
	GetFn        func(ctx context.Context, userID, requestID int64) (*model.Request, error)
	ListOwnFn    func(ctx context.Context, userID int64) ([]*model.Request, error)
	ListOthersFn func(ctx context.Context, userID int64, from, size int) ([]*model.Request, error)
	DeleteFn     func(ctx context.Context, userID, requestID int64) error
}

func (m *mockRequests) Create(ctx context.Context, userID int64, description string) (*model.Request, error) {
	return m.CreateFn(ctx, userID, description)
}

func (m *mockRequests) Get(ctx context.Context, userID, requestID int64) (*model.Request, error) {
	return m.GetFn(ctx, userID, requestID)
}

func (m *mockRequests) ListOwn(ctx context.Context, userID int64) ([]*model.Request, error) {
	return m.ListOwnFn(ctx, userID)
}

func (m *mockRequests) ListOthers(ctx context.Context, userID int64, from, size int) ([]*model.Request, error) {
	return m.ListOthersFn(ctx, userID, from, size)
}

func (m *mockRequests) Delete(ctx context.Context, userID, requestID int64) error {
	return m.DeleteFn(ctx, userID, requestID)
}

type mockUsers struct {
	CreateFn  func(ctx context.Context, name, email string, telegramID *int64) (*model.User, error)
	UpdateFn  func(ctx context.Context, userID int64, patch service.UserPatch) (*model.User, error)
	GetByIDFn func(ctx context.Context, id int64) (*model.User, error)
	ListFn    func(ctx context.Context) ([]*model.User, error)
	DeleteFn  func(ctx context.Context, id int64) error
}

func (m *mockUsers) Create(ctx context.Context, name, email string, telegramID *int64) (*model.User, error) {
	return m.CreateFn(ctx, name, email, telegramID)
}

func (m *mockUsers) Update(ctx context.Context, userID int64, patch service.UserPatch) (*model.User, error) {
	return m.UpdateFn(ctx, userID, patch)
}

func (m *mockUsers) GetByID(ctx context.Context, id int64) (*model.User, error) {
	return m.GetByIDFn(ctx, id)
}

func (m *mockUsers) List(ctx context.Context) ([]*model.User, error) {
	return m.ListFn(ctx)
}

func (m *mockUsers) Delete(ctx context.Context, id int64) error {
	return m.DeleteFn(ctx, id)
}
