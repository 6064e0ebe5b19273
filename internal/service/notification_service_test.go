package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/lessongate/lessongate/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeFeed struct {
	byUser map[string][]model.Notification
	read   map[string]int // id -> times marked
}

func newFakeFeed() *fakeFeed {
	return &fakeFeed{
		byUser: make(map[string][]model.Notification),
		read:   make(map[string]int),
	}
}

func (f *fakeFeed) GetByUser(_ context.Context, userID string) ([]model.Notification, error) {
	return f.byUser[userID], nil
}

func (f *fakeFeed) MarkRead(_ context.Context, id string) error {
	found := false
	for userID, list := range f.byUser {
		for i := range list {
			if list[i].ID == id {
				list[i].Read = true
				found = true
			}
		}
		f.byUser[userID] = list
	}
	if !found {
		return errors.New("notification not found")
	}
	f.read[id]++
	return nil
}

func TestListForUser(t *testing.T) {
	feed := newFakeFeed()
	feed.byUser["u1"] = []model.Notification{
		{ID: "n2", UserID: "u1", CreatedAt: time.Now()},
		{ID: "n1", UserID: "u1", CreatedAt: time.Now().Add(-time.Hour)},
	}
	svc := NewNotificationService(feed, zap.NewNop())

	got, err := svc.ListForUser(context.Background(), "u1")
	require.NoError(t, err)
	assert.Len(t, got, 2)

	empty, err := svc.ListForUser(context.Background(), "nobody")
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestMarkReadIdempotent(t *testing.T) {
	feed := newFakeFeed()
	feed.byUser["u1"] = []model.Notification{{ID: "n1", UserID: "u1"}}
	svc := NewNotificationService(feed, zap.NewNop())

	require.NoError(t, svc.MarkRead(context.Background(), "n1"))
	require.NoError(t, svc.MarkRead(context.Background(), "n1"))

	list, err := svc.ListForUser(context.Background(), "u1")
	require.NoError(t, err)
	assert.True(t, list[0].Read)
	assert.Equal(t, 0, UnreadCount(list))
}

func TestMarkReadUnknownID(t *testing.T) {
	svc := NewNotificationService(newFakeFeed(), zap.NewNop())
	assert.Error(t, svc.MarkRead(context.Background(), "missing"))
}

func TestNotificationHelpers(t *testing.T) {
	list := []model.Notification{
		{ID: "n1", UserID: "u1", Read: true},
		{ID: "n2", UserID: "u1"},
		{ID: "n3", UserID: "u2"},
	}

	mine := FilterUser(list, "u1")
	assert.Len(t, mine, 2)

	unread := Unread(list)
	assert.Len(t, unread, 2)
	assert.Equal(t, 2, UnreadCount(list))
	assert.Equal(t, 1, UnreadCount(mine))

	assert.Empty(t, FilterUser(nil, "u1"))
	assert.Equal(t, 0, UnreadCount(nil))
}
