package alert

import (
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/mas-patas/patitas/internal/domain"
)

type MockSearchStore struct {
	mock.Mock
}

func (m *MockSearchStore) ListEnabled(ctx context.Context) ([]domain.SavedSearch, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.SavedSearch), args.Error(1)
}

func (m *MockSearchStore) TouchNotified(ctx context.Context, id uuid.UUID, at time.Time) error {
	args := m.Called(ctx, id, at)
	return args.Error(0)
}

type MockNotificationStore struct {
	mock.Mock
}

func (m *MockNotificationStore) Create(ctx context.Context, n *domain.Notification) error {
	args := m.Called(ctx, n)
	return args.Error(0)
}

func discardLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

func TestService_Scan_NotifiesMatchingOwners(t *testing.T) {
	searches := new(MockSearchStore)
	notifications := new(MockNotificationStore)

	dogOwner := uuid.New()
	catOwner := uuid.New()
	searches.On("ListEnabled", mock.Anything).Return([]domain.SavedSearch{
		{ID: uuid.New(), UserID: dogOwner, Species: domain.SpeciesDog, Enabled: true},
		{ID: uuid.New(), UserID: catOwner, Species: domain.SpeciesCat, Enabled: true},
	}, nil)
	searches.On("TouchNotified", mock.Anything, mock.Anything, mock.Anything).Return(nil)

	notifications.On("Create", mock.Anything, mock.MatchedBy(func(n *domain.Notification) bool {
		return n.UserID == dogOwner && n.Type == domain.NotificationSavedSearchHit
	})).Return(nil).Once()

	notifier := NewNotifier(notifications, searches, discardLogger())
	service := NewService(searches, NewEngine(), notifier, discardLogger())

	report := publishedReport()
	require.NoError(t, service.Scan(context.Background(), report))

	notifications.AssertExpectations(t)
	searches.AssertExpectations(t)
}

func TestService_Scan_ListFailure(t *testing.T) {
	searches := new(MockSearchStore)
	searches.On("ListEnabled", mock.Anything).Return(nil, errors.New("connection reset"))

	notifier := NewNotifier(new(MockNotificationStore), searches, discardLogger())
	service := NewService(searches, NewEngine(), notifier, discardLogger())

	err := service.Scan(context.Background(), publishedReport())
	require.Error(t, err)
}

func TestService_Scan_NotifierFailureDoesNotStopScan(t *testing.T) {
	searches := new(MockSearchStore)
	notifications := new(MockNotificationStore)

	first := uuid.New()
	second := uuid.New()
	searches.On("ListEnabled", mock.Anything).Return([]domain.SavedSearch{
		{ID: first, UserID: uuid.New(), Enabled: true},
		{ID: second, UserID: uuid.New(), Enabled: true},
	}, nil)
	searches.On("TouchNotified", mock.Anything, second, mock.Anything).Return(nil)

	notifications.On("Create", mock.Anything, mock.Anything).Return(errors.New("insert failed")).Once()
	notifications.On("Create", mock.Anything, mock.Anything).Return(nil).Once()

	notifier := NewNotifier(notifications, searches, discardLogger())
	service := NewService(searches, NewEngine(), notifier, discardLogger())

	err := service.Scan(context.Background(), publishedReport())

	// one of two notifications failed, the scan reports it but completed
	require.Error(t, err)
	notifications.AssertNumberOfCalls(t, "Create", 2)
}

func TestNotifier_TouchFailureIsTolerated(t *testing.T) {
	searches := new(MockSearchStore)
	notifications := new(MockNotificationStore)

	search := &domain.SavedSearch{ID: uuid.New(), UserID: uuid.New(), Enabled: true}
	notifications.On("Create", mock.Anything, mock.Anything).Return(nil)
	searches.On("TouchNotified", mock.Anything, search.ID, mock.Anything).Return(errors.New("deadlock"))

	notifier := NewNotifier(notifications, searches, discardLogger())

	assert.NoError(t, notifier.Notify(context.Background(), search, publishedReport()))
}
