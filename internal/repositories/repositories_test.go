package repositories

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/anonto42/nano-link/backend/internal/models"
	"github.com/anonto42/nano-link/backend/internal/testutil"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestTranslateError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want error
	}{
		{"nil", nil, nil},
		{"gorm duplicated key", gorm.ErrDuplicatedKey, ErrDuplicate},
		{"postgres unique violation", &pgconn.PgError{Code: "23505"}, ErrDuplicate},
		{"wrapped postgres", fmt.Errorf("insert: %w", &pgconn.PgError{Code: "23505"}), ErrDuplicate},
		{"sqlite", errors.New("UNIQUE constraint failed: post_likes.post_id, post_likes.user_id"), ErrDuplicate},
		{"mysql", errors.New("Error 1062 (23000): Duplicate entry 'a-b' for key 'idx_post_user_like'"), ErrDuplicate},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, translateError(tt.err))
		})
	}

	other := &pgconn.PgError{Code: "23503"}
	assert.Equal(t, error(other), translateError(other))
}

func TestUniqueIndexesReportDuplicates(t *testing.T) {
	ctx := context.Background()
	db := testutil.NewDB(t)
	store := NewStore(db)
	alice := testutil.CreateUser(t, db, "alice")
	bob := testutil.CreateUser(t, db, "bob")

	post := &models.Post{UserID: alice.ID, Content: "hi"}
	require.NoError(t, store.Posts.CreatePost(ctx, post))

	require.NoError(t, store.Likes.CreateLike(ctx, &models.PostLike{PostID: post.ID, UserID: bob.ID}))
	err := store.Likes.CreateLike(ctx, &models.PostLike{PostID: post.ID, UserID: bob.ID})
	assert.ErrorIs(t, err, ErrDuplicate)

	require.NoError(t, store.Connections.CreateConnection(ctx, &models.Connection{RequesterID: alice.ID, AddresseeID: bob.ID}))
	err = store.Connections.CreateConnection(ctx, &models.Connection{RequesterID: bob.ID, AddresseeID: alice.ID})
	assert.ErrorIs(t, err, ErrDuplicate)

	err = store.Users.CreateUser(ctx, &models.User{Name: "dup", Email: alice.Email})
	assert.ErrorIs(t, err, ErrDuplicate)
}

func TestTransactionRollsBack(t *testing.T) {
	ctx := context.Background()
	db := testutil.NewDB(t)
	store := NewStore(db)
	alice := testutil.CreateUser(t, db, "alice")

	boom := errors.New("boom")
	err := store.Transaction(ctx, func(tx *Store) error {
		if err := tx.Posts.CreatePost(ctx, &models.Post{UserID: alice.ID, Content: "never"}); err != nil {
			return err
		}
		return boom
	})
	assert.ErrorIs(t, err, boom)

	var count int64
	require.NoError(t, db.Model(&models.Post{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestUserCascadeDelete(t *testing.T) {
	ctx := context.Background()
	db := testutil.NewDB(t)
	store := NewStore(db)
	alice := testutil.CreateUser(t, db, "alice")
	bob := testutil.CreateUser(t, db, "bob")

	post := &models.Post{UserID: alice.ID, Content: "hi"}
	require.NoError(t, store.Posts.CreatePost(ctx, post))
	require.NoError(t, store.Comments.CreateComment(ctx, &models.Comment{PostID: post.ID, UserID: bob.ID, Content: "yo"}))
	conv := &models.Conversation{}
	require.NoError(t, store.Conversations.CreateConversation(ctx, conv, alice.ID, bob.ID))
	require.NoError(t, store.Messages.CreateMessage(ctx, &models.Message{ConversationID: conv.ID, SenderID: alice.ID, Content: "hey"}))

	require.NoError(t, store.Users.DeleteUser(ctx, alice.ID))

	for _, model := range []interface{}{&models.Post{}, &models.Comment{}, &models.Message{}} {
		var count int64
		require.NoError(t, db.Model(model).Count(&count).Error)
		assert.Zero(t, count, "%T rows should cascade", model)
	}
	var participants int64
	require.NoError(t, db.Model(&models.ConversationParticipant{}).Count(&participants).Error)
	assert.EqualValues(t, 1, participants)
}

func TestNewStoreUsesGormRepositories(t *testing.T) {
	store := NewStore(testutil.NewDB(t))

	assert.IsType(t, &PostgresUserRepository{}, store.Users)
	assert.IsType(t, &PostgresProfileRepository{}, store.Profiles)
	assert.IsType(t, &PostgresPostRepository{}, store.Posts)
	assert.IsType(t, &PostgresLikeRepository{}, store.Likes)
	assert.IsType(t, &PostgresCommentRepository{}, store.Comments)
	assert.IsType(t, &PostgresCommentLikeRepository{}, store.CommentLikes)
	assert.IsType(t, &PostgresConnectionRepository{}, store.Connections)
	assert.IsType(t, &PostgresConversationRepository{}, store.Conversations)
	assert.IsType(t, &PostgresMessageRepository{}, store.Messages)
	assert.IsType(t, &PostgresNotificationRepository{}, store.Notifications)
}
