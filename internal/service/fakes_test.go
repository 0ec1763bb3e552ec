package service

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/Freeeeeet/shareit/internal/model"
	"github.com/Freeeeeet/shareit/internal/repository"
)

var refNow = time.Date(2026, 10, 19, 12, 0, 0, 0, time.UTC)

type testClock struct {
	mu  sync.Mutex
	now time.Time
}

func newTestClock() *testClock { return &testClock{now: refNow} }

func (c *testClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *testClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()
}

// --- users ---

type fakeUsers struct {
	byID   map[int64]*model.User
	nextID int64
}

func newFakeUsers() *fakeUsers { return &fakeUsers{byID: map[int64]*model.User{}} }

func (f *fakeUsers) add(name string) *model.User {
	f.nextID++
	u := &model.User{ID: f.nextID, Name: name, Email: strings.ToLower(name) + "@example.com"}
	f.byID[u.ID] = u
	return u
}

func (f *fakeUsers) GetByID(_ context.Context, id int64) (*model.User, error) {
	u, ok := f.byID[id]
	if !ok {
		return nil, nil
	}
	cp := *u
	return &cp, nil
}

func (f *fakeUsers) GetByTelegramID(_ context.Context, telegramID int64) (*model.User, error) {
	for _, u := range f.byID {
		if u.TelegramID != nil && *u.TelegramID == telegramID {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *fakeUsers) Create(_ context.Context, user *model.User) error {
	for _, u := range f.byID {
		if u.Email == user.Email {
			return repository.ErrDuplicate
		}
	}
	f.nextID++
	user.ID = f.nextID
	cp := *user
	f.byID[user.ID] = &cp
	return nil
}

func (f *fakeUsers) Update(_ context.Context, user *model.User) error {
	if _, ok := f.byID[user.ID]; !ok {
		return repository.ErrNotFound
	}
	for _, u := range f.byID {
		if u.ID != user.ID && u.Email == user.Email {
			return repository.ErrDuplicate
		}
	}
	cp := *user
	f.byID[user.ID] = &cp
	return nil
}

func (f *fakeUsers) List(context.Context) ([]*model.User, error) {
	users := make([]*model.User, 0, len(f.byID))
	for _, u := range f.byID {
		cp := *u
		users = append(users, &cp)
	}
	sort.Slice(users, func(i, j int) bool { return users[i].ID < users[j].ID })
	return users, nil
}

func (f *fakeUsers) Delete(_ context.Context, id int64) error {
	if _, ok := f.byID[id]; !ok {
		return repository.ErrNotFound
	}
	delete(f.byID, id)
	return nil
}

// --- items ---

type fakeItems struct {
	byID   map[int64]*model.Item
	nextID int64
}

func newFakeItems() *fakeItems { return &fakeItems{byID: map[int64]*model.Item{}} }

func (f *fakeItems) add(owner *model.User, name string, available bool) *model.Item {
	f.nextID++
	it := &model.Item{ID: f.nextID, Name: name, Description: name + " for rent", Available: available, OwnerID: owner.ID}
	f.byID[it.ID] = it
	return it
}

func (f *fakeItems) GetByID(_ context.Context, id int64) (*model.Item, error) {
	it, ok := f.byID[id]
	if !ok {
		return nil, nil
	}
	cp := *it
	return &cp, nil
}

func (f *fakeItems) Create(_ context.Context, item *model.Item) error {
	f.nextID++
	item.ID = f.nextID
	cp := *item
	f.byID[item.ID] = &cp
	return nil
}

func (f *fakeItems) Update(_ context.Context, item *model.Item) error {
	if _, ok := f.byID[item.ID]; !ok {
		return repository.ErrNotFound
	}
	cp := *item
	f.byID[item.ID] = &cp
	return nil
}

func (f *fakeItems) sorted(keep func(*model.Item) bool) []*model.Item {
	items := make([]*model.Item, 0)
	for _, it := range f.byID {
		if keep(it) {
			cp := *it
			items = append(items, &cp)
		}
	}
	sort.Slice(items, func(i, j int) bool { return items[i].ID < items[j].ID })
	return items
}

func page[T any](all []T, offset, limit int) []T {
	if offset >= len(all) {
		return []T{}
	}
	all = all[offset:]
	if limit > 0 && limit < len(all) {
		all = all[:limit]
	}
	return all
}

func (f *fakeItems) ListByOwner(_ context.Context, ownerID int64, offset, limit int) ([]*model.Item, error) {
	return page(f.sorted(func(it *model.Item) bool { return it.OwnerID == ownerID }), offset, limit), nil
}

func (f *fakeItems) Search(_ context.Context, text string, offset, limit int) ([]*model.Item, error) {
	text = strings.ToLower(text)
	return page(f.sorted(func(it *model.Item) bool {
		return it.Available && (strings.Contains(strings.ToLower(it.Name), text) ||
			strings.Contains(strings.ToLower(it.Description), text))
	}), offset, limit), nil
}

func (f *fakeItems) ListByRequestIDs(_ context.Context, requestIDs []int64) ([]*model.Item, error) {
	return f.sorted(func(it *model.Item) bool {
		if it.RequestID == nil {
			return false
		}
		for _, id := range requestIDs {
			if id == *it.RequestID {
				return true
			}
		}
		return false
	}), nil
}

// --- bookings ---

type fakeBookings struct {
	users   *fakeUsers
	items   *fakeItems
	byID    map[int64]*model.Booking
	nextID  int64
	filters []repository.BookingFilter
}

func newFakeBookings(users *fakeUsers, items *fakeItems) *fakeBookings {
	return &fakeBookings{users: users, items: items, byID: map[int64]*model.Booking{}}
}

// put stores a booking directly, bypassing the service rules.
func (f *fakeBookings) put(item *model.Item, booker *model.User, start, end time.Time, status model.BookingStatus) *model.Booking {
	f.nextID++
	b := &model.Booking{ID: f.nextID, Start: start, End: end, Status: status, ItemID: item.ID, BookerID: booker.ID}
	f.byID[b.ID] = b
	return b
}

func (f *fakeBookings) joined(b *model.Booking) *model.Booking {
	cp := *b
	cp.Item, _ = f.items.GetByID(context.Background(), b.ItemID)
	cp.Booker, _ = f.users.GetByID(context.Background(), b.BookerID)
	return &cp
}

func (f *fakeBookings) Create(_ context.Context, booking *model.Booking) error {
	if _, ok := f.items.byID[booking.ItemID]; !ok {
		return repository.ErrNotFound
	}
	f.nextID++
	booking.ID = f.nextID
	booking.CreatedAt = refNow
	cp := *booking
	cp.Item, cp.Booker = nil, nil
	f.byID[booking.ID] = &cp
	return nil
}

func (f *fakeBookings) GetByID(_ context.Context, id int64) (*model.Booking, error) {
	b, ok := f.byID[id]
	if !ok {
		return nil, nil
	}
	return f.joined(b), nil
}

func (f *fakeBookings) List(_ context.Context, filter repository.BookingFilter) ([]*model.Booking, error) {
	f.filters = append(f.filters, filter)

	matched := make([]*model.Booking, 0)
	for _, b := range f.byID {
		j := f.joined(b)
		if matchesFilter(filter, j) {
			matched = append(matched, j)
		}
	}
	sort.Slice(matched, func(i, k int) bool {
		if !matched[i].Start.Equal(matched[k].Start) {
			return matched[i].Start.After(matched[k].Start)
		}
		return matched[i].ID > matched[k].ID
	})
	return page(matched, filter.Offset, filter.Limit), nil
}

func matchesFilter(f repository.BookingFilter, b *model.Booking) bool {
	if f.BookerID != 0 && b.BookerID != f.BookerID {
		return false
	}
	if f.OwnerID != 0 && b.Item.OwnerID != f.OwnerID {
		return false
	}
	if f.ItemIDs != nil {
		found := false
		for _, id := range f.ItemIDs {
			found = found || id == b.ItemID
		}
		if !found {
			return false
		}
	}
	if f.Status != "" && b.Status != f.Status {
		return false
	}
	if f.StartBefore != nil && !b.Start.Before(*f.StartBefore) {
		return false
	}
	if f.StartAfter != nil && !b.Start.After(*f.StartAfter) {
		return false
	}
	if f.EndBefore != nil && !b.End.Before(*f.EndBefore) {
		return false
	}
	if f.EndAfter != nil && !b.End.After(*f.EndAfter) {
		return false
	}
	return true
}

func (f *fakeBookings) UpdateStatusUnlessApproved(_ context.Context, id int64, status model.BookingStatus) (bool, error) {
	b, ok := f.byID[id]
	if !ok || b.Status == model.BookingStatusApproved {
		return false, nil
	}
	b.Status = status
	return true, nil
}

func (f *fakeBookings) Delete(_ context.Context, id int64) error {
	if _, ok := f.byID[id]; !ok {
		return repository.ErrNotFound
	}
	delete(f.byID, id)
	return nil
}

// --- requests ---

type fakeRequests struct {
	byID   map[int64]*model.Request
	nextID int64
}

func newFakeRequests() *fakeRequests { return &fakeRequests{byID: map[int64]*model.Request{}} }

func (f *fakeRequests) GetByID(_ context.Context, id int64) (*model.Request, error) {
	r, ok := f.byID[id]
	if !ok {
		return nil, nil
	}
	cp := *r
	return &cp, nil
}

func (f *fakeRequests) Create(_ context.Context, request *model.Request) error {
	f.nextID++
	request.ID = f.nextID
	cp := *request
	f.byID[request.ID] = &cp
	return nil
}

func (f *fakeRequests) sorted(keep func(*model.Request) bool) []*model.Request {
	requests := make([]*model.Request, 0)
	for _, r := range f.byID {
		if keep(r) {
			cp := *r
			requests = append(requests, &cp)
		}
	}
	sort.Slice(requests, func(i, j int) bool {
		if !requests[i].Created.Equal(requests[j].Created) {
			return requests[i].Created.After(requests[j].Created)
		}
		return requests[i].ID > requests[j].ID
	})
	return requests
}

func (f *fakeRequests) ListByRequestor(_ context.Context, requestorID int64) ([]*model.Request, error) {
	return f.sorted(func(r *model.Request) bool { return r.RequestorID == requestorID }), nil
}

func (f *fakeRequests) ListOthers(_ context.Context, userID int64, offset, limit int) ([]*model.Request, error) {
	return page(f.sorted(func(r *model.Request) bool { return r.RequestorID != userID }), offset, limit), nil
}

func (f *fakeRequests) Delete(_ context.Context, id int64) error {
	if _, ok := f.byID[id]; !ok {
		return repository.ErrNotFound
	}
	delete(f.byID, id)
	return nil
}

// --- comments ---

type fakeComments struct {
	all    []*model.Comment
	nextID int64
}

func (f *fakeComments) Create(_ context.Context, comment *model.Comment) error {
	f.nextID++
	comment.ID = f.nextID
	cp := *comment
	f.all = append(f.all, &cp)
	return nil
}

func (f *fakeComments) ListByItemIDs(_ context.Context, itemIDs []int64) ([]*model.Comment, error) {
	out := make([]*model.Comment, 0)
	for _, c := range f.all {
		for _, id := range itemIDs {
			if c.ItemID == id {
				cp := *c
				out = append(out, &cp)
			}
		}
	}
	return out, nil
}

// --- events ---

type publishedEvent struct {
	key     string
	payload BookingEvent
}

type recordingPublisher struct {
	events []publishedEvent
	err    error
}

func (p *recordingPublisher) PublishJSON(_ context.Context, key string, v any) error {
	if e, ok := v.(BookingEvent); ok {
		p.events = append(p.events, publishedEvent{key: key, payload: e})
	}
	return p.err
}

// --- fixture ---

type fixture struct {
	clock     *testClock
	users     *fakeUsers
	items     *fakeItems
	bookings  *fakeBookings
	requests  *fakeRequests
	comments  *fakeComments
	publisher *recordingPublisher

	bookingSvc *BookingService
	itemSvc    *ItemService
	requestSvc *RequestService
	userSvc    *UserService
}

func newFixture() *fixture {
	f := &fixture{
		clock:     newTestClock(),
		users:     newFakeUsers(),
		items:     newFakeItems(),
		requests:  newFakeRequests(),
		comments:  &fakeComments{},
		publisher: &recordingPublisher{},
	}
	f.bookings = newFakeBookings(f.users, f.items)
	f.bookingSvc = NewBookingService(f.users, f.items, f.bookings, f.publisher, nil, f.clock.Now)
	f.itemSvc = NewItemService(f.users, f.items, f.requests, f.bookings, f.comments, nil, f.clock.Now)
	f.requestSvc = NewRequestService(f.users, f.requests, f.items, nil, f.clock.Now)
	f.userSvc = NewUserService(f.users, nil)
	return f
}

func ptr[T any](v T) *T { return &v }
