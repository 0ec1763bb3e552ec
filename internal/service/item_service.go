package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Freeeeeet/shareit/internal/model"
	"github.com/Freeeeeet/shareit/internal/repository"
	"go.uber.org/zap"
)

// ItemStore is the item persistence used by ItemService.
type ItemStore interface {
	ItemDirectory
	Create(ctx context.Context, item *model.Item) error
	Update(ctx context.Context, item *model.Item) error
	ListByOwner(ctx context.Context, ownerID int64, offset, limit int) ([]*model.Item, error)
	Search(ctx context.Context, text string, offset, limit int) ([]*model.Item, error)
}

// RequestDirectory отдаёт запрос по ID (nil, nil - не найден)
type RequestDirectory interface {
	GetByID(ctx context.Context, id int64) (*model.Request, error)
}

// CommentStore хранит отзывы о вещах
type CommentStore interface {
	Create(ctx context.Context, comment *model.Comment) error
	ListByItemIDs(ctx context.Context, itemIDs []int64) ([]*model.Comment, error)
}

// ItemInput - данные новой вещи
type ItemInput struct {
	Name        string
	Description string
	Available   *bool
	RequestID   *int64
}

// ItemPatch - частичное обновление; nil поля не меняются
type ItemPatch struct {
	Name        *string
	Description *string
	Available   *bool
}

type ItemService struct {
	users    UserDirectory
	items    ItemStore
	requests RequestDirectory
	bookings BookingLister
	comments CommentStore
	logger   *zap.Logger
	now      func() time.Time
}

func NewItemService(
	users UserDirectory,
	items ItemStore,
	requests RequestDirectory,
	bookings BookingLister,
	comments CommentStore,
	logger *zap.Logger,
	now func() time.Time,
) *ItemService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if now == nil {
		now = time.Now
	}
	return &ItemService{
		users:    users,
		items:    items,
		requests: requests,
		bookings: bookings,
		comments: comments,
		logger:   logger,
		now:      now,
	}
}

// Create добавляет вещь владельца, опционально в ответ на запрос
func (s *ItemService) Create(ctx context.Context, ownerID int64, input ItemInput) (*model.Item, error) {
	if _, err := s.requireUser(ctx, ownerID); err != nil {
		return nil, err
	}

	if strings.TrimSpace(input.Name) == "" {
		return nil, invalid("item name must not be blank")
	}
	if strings.TrimSpace(input.Description) == "" {
		return nil, invalid("item description must not be blank")
	}
	if input.Available == nil {
		return nil, invalid("item availability must be set")
	}

	if input.RequestID != nil {
		request, err := s.requests.GetByID(ctx, *input.RequestID)
		if err != nil {
			return nil, fmt.Errorf("get request: %w", err)
		}
		if request == nil {
			return nil, notFound("request with id = %d not found", *input.RequestID)
		}
	}

	item := &model.Item{
		Name:        input.Name,
		Description: input.Description,
		Available:   *input.Available,
		OwnerID:     ownerID,
		RequestID:   input.RequestID,
	}

	err := s.items.Create(ctx, item)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, notFound("user with id = %d not found", ownerID)
		}
		return nil, fmt.Errorf("create item: %w", err)
	}

	s.logger.Info("Item created",
		zap.Int64("item_id", item.ID),
		zap.Int64("owner_id", ownerID),
	)

	return item, nil
}

// Update меняет вещь; чужую вещь редактировать нельзя
func (s *ItemService) Update(ctx context.Context, ownerID, itemID int64, patch ItemPatch) (*model.Item, error) {
	item, err := s.requireItem(ctx, itemID)
	if err != nil {
		return nil, err
	}

	if _, err := s.requireUser(ctx, ownerID); err != nil {
		return nil, err
	}

	if !item.IsOwnedBy(ownerID) {
		return nil, notFound("user with id = %d is not the owner of the item", ownerID)
	}

	if patch.Name != nil {
		if strings.TrimSpace(*patch.Name) == "" {
			return nil, invalid("item name must not be blank")
		}
		item.Name = *patch.Name
	}
	if patch.Description != nil {
		if strings.TrimSpace(*patch.Description) == "" {
			return nil, invalid("item description must not be blank")
		}
		item.Description = *patch.Description
	}
	if patch.Available != nil {
		item.Available = *patch.Available
	}

	err = s.items.Update(ctx, item)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, notFound("item with id = %d not found", itemID)
		}
		return nil, fmt.Errorf("update item: %w", err)
	}

	s.logger.Info("Item updated",
		zap.Int64("item_id", itemID),
		zap.Bool("available", item.Available),
	)

	return item, nil
}

// Get отдаёт вещь с отзывами; владелец дополнительно видит прошлое и следующее бронирование
func (s *ItemService) Get(ctx context.Context, viewerID, itemID int64) (*model.Item, error) {
	item, err := s.requireItem(ctx, itemID)
	if err != nil {
		return nil, err
	}

	items := []*model.Item{item}
	if err := s.attachComments(ctx, items); err != nil {
		return nil, err
	}
	if err := s.AttachBookingSnapshots(ctx, viewerID, items); err != nil {
		return nil, err
	}

	return item, nil
}

// ListByOwner отдаёт вещи владельца со снимками бронирований
func (s *ItemService) ListByOwner(ctx context.Context, ownerID int64, from, size int) ([]*model.Item, error) {
	if err := validatePage(from, size); err != nil {
		return nil, err
	}

	if _, err := s.requireUser(ctx, ownerID); err != nil {
		return nil, err
	}

	items, err := s.items.ListByOwner(ctx, ownerID, from, size)
	if err != nil {
		return nil, fmt.Errorf("list owner items: %w", err)
	}

	if err := s.attachComments(ctx, items); err != nil {
		return nil, err
	}
	if err := s.AttachBookingSnapshots(ctx, ownerID, items); err != nil {
		return nil, err
	}

	return items, nil
}

// Search ищет доступные вещи; пустой текст даёт пустой результат
func (s *ItemService) Search(ctx context.Context, text string, from, size int) ([]*model.Item, error) {
	if err := validatePage(from, size); err != nil {
		return nil, err
	}

	if strings.TrimSpace(text) == "" {
		return []*model.Item{}, nil
	}

	items, err := s.items.Search(ctx, text, from, size)
	if err != nil {
		return nil, fmt.Errorf("search items: %w", err)
	}

	return items, nil
}

// AttachBookingSnapshots заполняет LastBooking/NextBooking у вещей, которыми владеет viewer.
// Кандидаты берутся двумя запросами по всему набору: подтверждённые с началом после now
// (ближайшее начало - следующее) и с окончанием до now (последнее окончание - прошлое).
func (s *ItemService) AttachBookingSnapshots(ctx context.Context, viewerID int64, items []*model.Item) error {
	now := s.now()

	ids := make([]int64, 0, len(items))
	for _, item := range items {
		item.LastBooking = nil
		item.NextBooking = nil
		if item.IsOwnedBy(viewerID) {
			ids = append(ids, item.ID)
		}
	}

	if len(ids) == 0 {
		return nil
	}

	next, err := s.bookings.List(ctx, repository.BookingFilter{
		ItemIDs:    ids,
		Status:     model.BookingStatusApproved,
		StartAfter: &now,
	})
	if err != nil {
		return fmt.Errorf("list next bookings: %w", err)
	}

	last, err := s.bookings.List(ctx, repository.BookingFilter{
		ItemIDs:   ids,
		Status:    model.BookingStatusApproved,
		EndBefore: &now,
	})
	if err != nil {
		return fmt.Errorf("list last bookings: %w", err)
	}

	nextByItem := make(map[int64]*model.Booking)
	for _, b := range next {
		if cur, ok := nextByItem[b.ItemID]; !ok || b.Start.Before(cur.Start) {
			nextByItem[b.ItemID] = b
		}
	}

	lastByItem := make(map[int64]*model.Booking)
	for _, b := range last {
		if cur, ok := lastByItem[b.ItemID]; !ok || b.End.After(cur.End) {
			lastByItem[b.ItemID] = b
		}
	}

	for _, item := range items {
		if !item.IsOwnedBy(viewerID) {
			continue
		}
		if b, ok := nextByItem[item.ID]; ok {
			item.NextBooking = b.Short()
		}
		if b, ok := lastByItem[item.ID]; ok {
			item.LastBooking = b.Short()
		}
	}

	return nil
}

// AddComment оставляет отзыв; нужен завершённый подтверждённый заказ этой вещи автором
func (s *ItemService) AddComment(ctx context.Context, authorID, itemID int64, text string) (*model.Comment, error) {
	item, err := s.requireItem(ctx, itemID)
	if err != nil {
		return nil, err
	}

	author, err := s.requireUser(ctx, authorID)
	if err != nil {
		return nil, err
	}

	if strings.TrimSpace(text) == "" {
		return nil, invalid("comment text must not be blank")
	}

	now := s.now()

	finished, err := s.bookings.List(ctx, repository.BookingFilter{
		BookerID:  authorID,
		ItemIDs:   []int64{item.ID},
		Status:    model.BookingStatusApproved,
		EndBefore: &now,
		Limit:     1,
	})
	if err != nil {
		return nil, fmt.Errorf("list finished bookings: %w", err)
	}
	if len(finished) == 0 {
		return nil, invalid("user with id = %d has no finished booking of item with id = %d", authorID, itemID)
	}

	comment := &model.Comment{
		Text:       text,
		ItemID:     item.ID,
		AuthorID:   author.ID,
		AuthorName: author.Name,
		Created:    now,
	}

	if err := s.comments.Create(ctx, comment); err != nil {
		return nil, fmt.Errorf("create comment: %w", err)
	}

	s.logger.Info("Comment added",
		zap.Int64("comment_id", comment.ID),
		zap.Int64("item_id", itemID),
		zap.Int64("author_id", authorID),
	)

	return comment, nil
}

func (s *ItemService) attachComments(ctx context.Context, items []*model.Item) error {
	if len(items) == 0 {
		return nil
	}

	ids := make([]int64, 0, len(items))
	for _, item := range items {
		ids = append(ids, item.ID)
	}

	comments, err := s.comments.ListByItemIDs(ctx, ids)
	if err != nil {
		return fmt.Errorf("list comments: %w", err)
	}

	byItem := make(map[int64][]*model.Comment, len(items))
	for _, c := range comments {
		byItem[c.ItemID] = append(byItem[c.ItemID], c)
	}

	for _, item := range items {
		item.Comments = byItem[item.ID]
		if item.Comments == nil {
			item.Comments = []*model.Comment{}
		}
	}

	return nil
}

func (s *ItemService) requireUser(ctx context.Context, userID int64) (*model.User, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}
	if user == nil {
		return nil, notFound("user with id = %d not found", userID)
	}
	return user, nil
}

func (s *ItemService) requireItem(ctx context.Context, itemID int64) (*model.Item, error) {
	item, err := s.items.GetByID(ctx, itemID)
	if err != nil {
		return nil, fmt.Errorf("get item: %w", err)
	}
	if item == nil {
		return nil, notFound("item with id = %d not found", itemID)
	}
	return item, nil
}
