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

// RequestStore is the rental request persistence.
type RequestStore interface {
	RequestDirectory
	Create(ctx context.Context, request *model.Request) error
	ListByRequestor(ctx context.Context, requestorID int64) ([]*model.Request, error)
	ListOthers(ctx context.Context, userID int64, offset, limit int) ([]*model.Request, error)
	Delete(ctx context.Context, id int64) error
}

// RequestItemFinder ищет вещи, добавленные по запросам
type RequestItemFinder interface {
	ListByRequestIDs(ctx context.Context, requestIDs []int64) ([]*model.Item, error)
}

type RequestService struct {
	users    UserDirectory
	requests RequestStore
	items    RequestItemFinder
	logger   *zap.Logger
	now      func() time.Time
}

func NewRequestService(
	users UserDirectory,
	requests RequestStore,
	items RequestItemFinder,
	logger *zap.Logger,
	now func() time.Time,
) *RequestService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if now == nil {
		now = time.Now
	}
	return &RequestService{
		users:    users,
		requests: requests,
		items:    items,
		logger:   logger,
		now:      now,
	}
}

// Create публикует запрос на вещь, которой пока никто не выложил
func (s *RequestService) Create(ctx context.Context, userID int64, description string) (*model.Request, error) {
	if err := s.requireUser(ctx, userID); err != nil {
		return nil, err
	}

	if strings.TrimSpace(description) == "" {
		return nil, invalid("request description must not be blank")
	}

	request := &model.Request{
		Description: description,
		RequestorID: userID,
		Created:     s.now(),
		Items:       []*model.Item{},
	}

	if err := s.requests.Create(ctx, request); err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	s.logger.Info("Request created",
		zap.Int64("request_id", request.ID),
		zap.Int64("requestor_id", userID),
	)

	return request, nil
}

// Get отдаёт запрос с вещами, добавленными по нему
func (s *RequestService) Get(ctx context.Context, userID, requestID int64) (*model.Request, error) {
	if err := s.requireUser(ctx, userID); err != nil {
		return nil, err
	}

	request, err := s.requests.GetByID(ctx, requestID)
	if err != nil {
		return nil, fmt.Errorf("get request: %w", err)
	}
	if request == nil {
		return nil, notFound("request with id = %d not found", requestID)
	}

	if err := s.AttachRequestItems(ctx, []*model.Request{request}); err != nil {
		return nil, err
	}

	return request, nil
}

// ListOwn отдаёт запросы пользователя, новые первыми
func (s *RequestService) ListOwn(ctx context.Context, userID int64) ([]*model.Request, error) {
	if err := s.requireUser(ctx, userID); err != nil {
		return nil, err
	}

	requests, err := s.requests.ListByRequestor(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list own requests: %w", err)
	}

	if err := s.AttachRequestItems(ctx, requests); err != nil {
		return nil, err
	}

	return requests, nil
}

// ListOthers отдаёт запросы остальных пользователей постранично
func (s *RequestService) ListOthers(ctx context.Context, userID int64, from, size int) ([]*model.Request, error) {
	if err := validatePage(from, size); err != nil {
		return nil, err
	}

	if err := s.requireUser(ctx, userID); err != nil {
		return nil, err
	}

	requests, err := s.requests.ListOthers(ctx, userID, from, size)
	if err != nil {
		return nil, fmt.Errorf("list other requests: %w", err)
	}

	if err := s.AttachRequestItems(ctx, requests); err != nil {
		return nil, err
	}

	return requests, nil
}

// Delete удаляет запрос
func (s *RequestService) Delete(ctx context.Context, userID, requestID int64) error {
	if err := s.requireUser(ctx, userID); err != nil {
		return err
	}

	err := s.requests.Delete(ctx, requestID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return notFound("request with id = %d not found", requestID)
		}
		return fmt.Errorf("delete request: %w", err)
	}

	s.logger.Info("Request deleted",
		zap.Int64("request_id", requestID),
		zap.Int64("user_id", userID),
	)

	return nil
}

// AttachRequestItems одним запросом находит вещи по всем запросам и раскладывает их по ID
func (s *RequestService) AttachRequestItems(ctx context.Context, requests []*model.Request) error {
	ids := make([]int64, 0, len(requests))
	byID := make(map[int64]*model.Request, len(requests))
	for _, request := range requests {
		request.Items = []*model.Item{}
		ids = append(ids, request.ID)
		byID[request.ID] = request
	}

	if len(ids) == 0 {
		return nil
	}

	items, err := s.items.ListByRequestIDs(ctx, ids)
	if err != nil {
		return fmt.Errorf("list items by requests: %w", err)
	}

	for _, item := range items {
		if item.RequestID == nil {
			continue
		}
		if request, ok := byID[*item.RequestID]; ok {
			request.Items = append(request.Items, item)
		}
	}

	return nil
}

func (s *RequestService) requireUser(ctx context.Context, userID int64) error {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return fmt.Errorf("get user: %w", err)
	}
	if user == nil {
		return notFound("user with id = %d not found", userID)
	}
	return nil
}
