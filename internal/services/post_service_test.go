package services

import (
	"context"
	"fmt"
	"testing"

	"github.com/anonto42/nano-link/backend/internal/models"
	"github.com/anonto42/nano-link/backend/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPostCreateAndGet(t *testing.T) {
	ctx := context.Background()
	store, db := newTestStore(t)
	svc := NewPostService(store)
	alice := testutil.CreateUser(t, db, "alice")

	_, err := svc.Create(ctx, alice.ID, " \n ")
	requireKind(t, err, KindValidation)

	post, err := svc.Create(ctx, alice.ID, "  hello  ")
	require.NoError(t, err)
	assert.Equal(t, "hello", post.Content)
	assert.Equal(t, "alice", post.UserName)
	assert.Zero(t, post.LikeCount)
	assert.Zero(t, post.CommentCount)
	assert.False(t, post.IsLikedByCurrentUser)

	_, err = svc.Get(ctx, "missing", alice.ID)
	requireKind(t, err, KindNotFound)
	assert.Equal(t, "Post not found", err.Error())
}

func TestPostOwnership(t *testing.T) {
	ctx := context.Background()
	store, db := newTestStore(t)
	svc := NewPostService(store)
	svc.now = tickingClock(100)
	alice := testutil.CreateUser(t, db, "alice")
	bob := testutil.CreateUser(t, db, "bob")

	post, err := svc.Create(ctx, alice.ID, "draft")
	require.NoError(t, err)

	_, err = svc.Update(ctx, post.ID, bob.ID, "hijacked")
	requireKind(t, err, KindForbidden)
	requireKind(t, svc.Delete(ctx, post.ID, bob.ID), KindForbidden)

	_, err = svc.Update(ctx, "missing", alice.ID, "x")
	requireKind(t, err, KindNotFound)

	updated, err := svc.Update(ctx, post.ID, alice.ID, "final")
	require.NoError(t, err)
	assert.Equal(t, "final", updated.Content)
	assert.Greater(t, updated.UpdatedAt, post.UpdatedAt)
	assert.Equal(t, post.CreatedAt, updated.CreatedAt)

	require.NoError(t, svc.Delete(ctx, post.ID, alice.ID))
	_, err = svc.Get(ctx, post.ID, alice.ID)
	requireKind(t, err, KindNotFound)
}

func TestPostDeleteCascades(t *testing.T) {
	ctx := context.Background()
	store, db := newTestStore(t)
	posts := NewPostService(store)
	comments := NewCommentService(store)
	alice := testutil.CreateUser(t, db, "alice")
	bob := testutil.CreateUser(t, db, "bob")

	post, err := posts.Create(ctx, alice.ID, "hello")
	require.NoError(t, err)
	require.NoError(t, posts.Like(ctx, post.ID, bob.ID))
	_, err = comments.Create(ctx, post.ID, bob.ID, "nice")
	require.NoError(t, err)

	require.NoError(t, posts.Delete(ctx, post.ID, alice.ID))

	var likes, cmts int64
	require.NoError(t, db.Model(&models.PostLike{}).Count(&likes).Error)
	require.NoError(t, db.Model(&models.Comment{}).Count(&cmts).Error)
	assert.Zero(t, likes)
	assert.Zero(t, cmts)
}

func TestPostLike(t *testing.T) {
	ctx := context.Background()
	store, db := newTestStore(t)
	svc := NewPostService(store)
	alice := testutil.CreateUser(t, db, "alice")
	bob := testutil.CreateUser(t, db, "bob")

	post, err := svc.Create(ctx, alice.ID, "hello")
	require.NoError(t, err)

	requireKind(t, svc.Like(ctx, "missing", bob.ID), KindNotFound)

	require.NoError(t, svc.Like(ctx, post.ID, bob.ID))
	err = svc.Like(ctx, post.ID, bob.ID)
	requireKind(t, err, KindConflict)
	assert.Equal(t, "Post already liked", err.Error())

	ns := notificationsFor(t, db, alice.ID)
	require.Len(t, ns, 1)
	assert.Equal(t, models.NotificationPostLike, ns[0].Type)
	assert.Equal(t, bob.ID, ns[0].ActorID)
	assert.Equal(t, post.ID, *ns[0].EntityID)

	seenByBob, err := svc.Get(ctx, post.ID, bob.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 1, seenByBob.LikeCount)
	assert.True(t, seenByBob.IsLikedByCurrentUser)

	seenByAlice, err := svc.Get(ctx, post.ID, alice.ID)
	require.NoError(t, err)
	assert.False(t, seenByAlice.IsLikedByCurrentUser)

	require.NoError(t, svc.Unlike(ctx, post.ID, bob.ID))
	require.NoError(t, svc.Unlike(ctx, post.ID, bob.ID))
	require.NoError(t, svc.Unlike(ctx, "never-liked", bob.ID))

	afterUnlike, err := svc.Get(ctx, post.ID, bob.ID)
	require.NoError(t, err)
	assert.Zero(t, afterUnlike.LikeCount)
}

func TestPostSelfLikeDoesNotNotify(t *testing.T) {
	ctx := context.Background()
	store, db := newTestStore(t)
	svc := NewPostService(store)
	alice := testutil.CreateUser(t, db, "alice")

	post, err := svc.Create(ctx, alice.ID, "hello")
	require.NoError(t, err)
	require.NoError(t, svc.Like(ctx, post.ID, alice.ID))

	assert.Empty(t, notificationsFor(t, db, alice.ID))
}

func TestFeedPagination(t *testing.T) {
	ctx := context.Background()
	store, db := newTestStore(t)
	svc := NewPostService(store)
	svc.now = tickingClock(1000)
	alice := testutil.CreateUser(t, db, "alice")

	for i := 0; i < 25; i++ {
		_, err := svc.Create(ctx, alice.ID, fmt.Sprintf("post %02d", i))
		require.NoError(t, err)
	}

	page1, err := svc.Feed(ctx, alice.ID, 1, 10)
	require.NoError(t, err)
	page2, err := svc.Feed(ctx, alice.ID, 2, 10)
	require.NoError(t, err)
	page3, err := svc.Feed(ctx, alice.ID, 3, 10)
	require.NoError(t, err)

	require.Len(t, page1, 10)
	require.Len(t, page2, 10)
	require.Len(t, page3, 5)
	assert.Equal(t, "post 24", page1[0].Content)
	assert.Equal(t, "post 14", page2[0].Content)
	assert.Greater(t, page1[9].CreatedAt, page2[0].CreatedAt)
	for i := 1; i < len(page2); i++ {
		assert.Greater(t, page2[i-1].CreatedAt, page2[i].CreatedAt)
	}

	tests := []struct {
		name        string
		page, limit int
		wantLen     int
		wantFirst   string
	}{
		{"defaults", 0, 0, 10, "post 24"},
		{"negative page", -3, 5, 5, "post 24"},
		{"limit capped", 1, 1000, 25, "post 24"},
		{"past the end", 9, 10, 0, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := svc.Feed(ctx, alice.ID, tt.page, tt.limit)
			require.NoError(t, err)
			require.Len(t, got, tt.wantLen)
			if tt.wantLen > 0 {
				assert.Equal(t, tt.wantFirst, got[0].Content)
			}
		})
	}
}

func TestFeedCounts(t *testing.T) {
	ctx := context.Background()
	store, db := newTestStore(t)
	posts := NewPostService(store)
	comments := NewCommentService(store)
	alice := testutil.CreateUser(t, db, "alice")
	bob := testutil.CreateUser(t, db, "bob")
	carol := testutil.CreateUser(t, db, "carol")

	post, err := posts.Create(ctx, alice.ID, "hello")
	require.NoError(t, err)
	require.NoError(t, posts.Like(ctx, post.ID, bob.ID))
	require.NoError(t, posts.Like(ctx, post.ID, carol.ID))
	_, err = comments.Create(ctx, post.ID, bob.ID, "one")
	require.NoError(t, err)
	_, err = comments.Create(ctx, post.ID, carol.ID, "two")
	require.NoError(t, err)
	_, err = comments.Create(ctx, post.ID, carol.ID, "three")
	require.NoError(t, err)

	feed, err := posts.Feed(ctx, carol.ID, 1, 10)
	require.NoError(t, err)
	require.Len(t, feed, 1)
	assert.EqualValues(t, 2, feed[0].LikeCount)
	assert.EqualValues(t, 3, feed[0].CommentCount)
	assert.True(t, feed[0].IsLikedByCurrentUser)
}
