package services

import (
	"context"
	"testing"

	"github.com/anonto42/nano-link/backend/internal/models"
	"github.com/anonto42/nano-link/backend/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateConversationValidation(t *testing.T) {
	store, db := newTestStore(t)
	svc := NewMessagingService(store)
	alice := testutil.CreateUser(t, db, "alice")

	tests := []struct {
		name        string
		participant string
		kind        Kind
		message     string
	}{
		{"missing participant", "", KindValidation, "Participant ID is required"},
		{"self", alice.ID, KindValidation, "Cannot create conversation with yourself"},
		{"unknown user", "nobody", KindNotFound, "Participant not found"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := svc.CreateConversation(context.Background(), alice.ID, tt.participant)
			requireKind(t, err, tt.kind)
			assert.Equal(t, tt.message, err.Error())
		})
	}
}

func TestCreateConversationDeduplicates(t *testing.T) {
	ctx := context.Background()
	store, db := newTestStore(t)
	svc := NewMessagingService(store)
	alice := testutil.CreateUser(t, db, "alice")
	bob := testutil.CreateUser(t, db, "bob")

	id, exists, err := svc.CreateConversation(ctx, alice.ID, bob.ID)
	require.NoError(t, err)
	assert.False(t, exists)
	assert.NotEmpty(t, id)

	again, exists, err := svc.CreateConversation(ctx, alice.ID, bob.ID)
	require.NoError(t, err)
	assert.True(t, exists)
	assert.Equal(t, id, again)

	reversed, exists, err := svc.CreateConversation(ctx, bob.ID, alice.ID)
	require.NoError(t, err)
	assert.True(t, exists)
	assert.Equal(t, id, reversed)

	var participants int64
	require.NoError(t, db.Model(&models.ConversationParticipant{}).Where("conversation_id = ?", id).Count(&participants).Error)
	assert.EqualValues(t, 2, participants)
}

func TestSendMessage(t *testing.T) {
	ctx := context.Background()
	store, db := newTestStore(t)
	svc := NewMessagingService(store)
	svc.now = tickingClock(5000)
	alice := testutil.CreateUser(t, db, "alice")
	bob := testutil.CreateUser(t, db, "bob")
	carol := testutil.CreateUser(t, db, "carol")

	convID, _, err := svc.CreateConversation(ctx, alice.ID, bob.ID)
	require.NoError(t, err)

	_, err = svc.SendMessage(ctx, convID, alice.ID, "   ")
	requireKind(t, err, KindValidation)
	assert.Equal(t, "Content is required", err.Error())

	_, err = svc.SendMessage(ctx, convID, carol.ID, "hi")
	requireKind(t, err, KindForbidden)

	msg, err := svc.SendMessage(ctx, convID, alice.ID, "  hello bob  ")
	require.NoError(t, err)
	assert.Equal(t, "hello bob", msg.Content)
	assert.Equal(t, alice.ID, msg.SenderID)
	assert.Equal(t, "alice", msg.SenderName)
	assert.False(t, msg.IsRead)

	var conv models.Conversation
	require.NoError(t, db.Where("id = ?", convID).First(&conv).Error)
	assert.Equal(t, msg.CreatedAt, conv.UpdatedAt)
}

func TestMarkReadOnlyFlipsIncoming(t *testing.T) {
	ctx := context.Background()
	store, db := newTestStore(t)
	svc := NewMessagingService(store)
	svc.now = tickingClock(5000)
	alice := testutil.CreateUser(t, db, "alice")
	bob := testutil.CreateUser(t, db, "bob")
	carol := testutil.CreateUser(t, db, "carol")

	convID, _, err := svc.CreateConversation(ctx, alice.ID, bob.ID)
	require.NoError(t, err)
	_, err = svc.SendMessage(ctx, convID, alice.ID, "from alice")
	require.NoError(t, err)
	_, err = svc.SendMessage(ctx, convID, bob.ID, "from bob 1")
	require.NoError(t, err)
	_, err = svc.SendMessage(ctx, convID, bob.ID, "from bob 2")
	require.NoError(t, err)

	_, err = svc.MarkRead(ctx, convID, carol.ID)
	requireKind(t, err, KindForbidden)

	changed, err := svc.MarkRead(ctx, convID, alice.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 2, changed)

	msgs, err := svc.ListMessages(ctx, convID, alice.ID)
	require.NoError(t, err)
	require.Len(t, msgs, 3)
	for _, m := range msgs {
		if m.SenderID == alice.ID {
			assert.False(t, m.IsRead, "own message must stay unread")
		} else {
			assert.True(t, m.IsRead)
		}
	}

	changed, err = svc.MarkRead(ctx, convID, alice.ID)
	require.NoError(t, err)
	assert.Zero(t, changed)
}

func TestListMessagesNewestFirst(t *testing.T) {
	ctx := context.Background()
	store, db := newTestStore(t)
	svc := NewMessagingService(store)
	svc.now = tickingClock(5000)
	alice := testutil.CreateUser(t, db, "alice")
	bob := testutil.CreateUser(t, db, "bob")
	carol := testutil.CreateUser(t, db, "carol")

	convID, _, err := svc.CreateConversation(ctx, alice.ID, bob.ID)
	require.NoError(t, err)
	for _, content := range []string{"one", "two", "three"} {
		_, err := svc.SendMessage(ctx, convID, bob.ID, content)
		require.NoError(t, err)
	}

	msgs, err := svc.ListMessages(ctx, convID, alice.ID)
	require.NoError(t, err)
	require.Len(t, msgs, 3)
	assert.Equal(t, "three", msgs[0].Content)
	assert.Equal(t, "one", msgs[2].Content)

	_, err = svc.ListMessages(ctx, convID, carol.ID)
	requireKind(t, err, KindForbidden)
}

func TestListConversations(t *testing.T) {
	ctx := context.Background()
	store, db := newTestStore(t)
	svc := NewMessagingService(store)
	svc.now = tickingClock(5000)
	alice := testutil.CreateUser(t, db, "alice")
	bob := testutil.CreateUser(t, db, "bob")
	carol := testutil.CreateUser(t, db, "carol")

	withBob, _, err := svc.CreateConversation(ctx, alice.ID, bob.ID)
	require.NoError(t, err)
	withCarol, _, err := svc.CreateConversation(ctx, carol.ID, alice.ID)
	require.NoError(t, err)

	_, err = svc.SendMessage(ctx, withCarol, carol.ID, "hey alice")
	require.NoError(t, err)
	_, err = svc.SendMessage(ctx, withBob, bob.ID, "first")
	require.NoError(t, err)
	_, err = svc.SendMessage(ctx, withBob, bob.ID, "second")
	require.NoError(t, err)
	_, err = svc.SendMessage(ctx, withBob, alice.ID, "reply")
	require.NoError(t, err)

	convs, err := svc.ListConversations(ctx, alice.ID)
	require.NoError(t, err)
	require.Len(t, convs, 2)

	// most recently active first
	assert.Equal(t, withBob, convs[0].ConversationID)
	require.NotNil(t, convs[0].LastMessage)
	assert.Equal(t, "reply", *convs[0].LastMessage)
	assert.EqualValues(t, 2, convs[0].UnreadCount)
	require.Len(t, convs[0].Participants, 1)
	assert.Equal(t, bob.ID, convs[0].Participants[0].UserID)

	assert.Equal(t, withCarol, convs[1].ConversationID)
	assert.EqualValues(t, 1, convs[1].UnreadCount)
	require.Len(t, convs[1].Participants, 1)
	assert.Equal(t, "carol", convs[1].Participants[0].UserName)

	// bob's own messages do not count as unread for him
	bobConvs, err := svc.ListConversations(ctx, bob.ID)
	require.NoError(t, err)
	require.Len(t, bobConvs, 1)
	assert.EqualValues(t, 1, bobConvs[0].UnreadCount)

	empty, err := svc.ListConversations(ctx, testutil.CreateUser(t, db, "dave").ID)
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestListConversationsWithoutMessages(t *testing.T) {
	ctx := context.Background()
	store, db := newTestStore(t)
	svc := NewMessagingService(store)
	alice := testutil.CreateUser(t, db, "alice")
	bob := testutil.CreateUser(t, db, "bob")

	_, _, err := svc.CreateConversation(ctx, alice.ID, bob.ID)
	require.NoError(t, err)

	convs, err := svc.ListConversations(ctx, alice.ID)
	require.NoError(t, err)
	require.Len(t, convs, 1)
	assert.Nil(t, convs[0].LastMessage)
	assert.Nil(t, convs[0].LastMessageAt)
	assert.Zero(t, convs[0].UnreadCount)
}
