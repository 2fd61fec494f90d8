package services

import (
	"context"
	"testing"

	"github.com/anonto42/nano-link/backend/internal/models"
	"github.com/anonto42/nano-link/backend/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConnectionRequestValidation(t *testing.T) {
	store, db := newTestStore(t)
	svc := NewConnectionService(store)
	alice := testutil.CreateUser(t, db, "alice")

	tests := []struct {
		name      string
		addressee string
		kind      Kind
		message   string
	}{
		{"missing addressee", "  ", KindValidation, "Addressee ID is required"},
		{"self", alice.ID, KindValidation, "Cannot connect with yourself"},
		{"unknown user", "does-not-exist", KindNotFound, "User not found"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Request(context.Background(), alice.ID, tt.addressee)
			requireKind(t, err, tt.kind)
			assert.Equal(t, tt.message, err.Error())
		})
	}
}

func TestConnectionLifecycle(t *testing.T) {
	ctx := context.Background()
	store, db := newTestStore(t)
	svc := NewConnectionService(store)
	svc.now = tickingClock(1000)
	alice := testutil.CreateUser(t, db, "alice")
	bob := testutil.CreateUser(t, db, "bob")

	conn, err := svc.Request(ctx, alice.ID, bob.ID)
	require.NoError(t, err)
	assert.Equal(t, models.ConnectionStatusPending, conn.Status)

	var count int64
	require.NoError(t, db.Model(&models.Connection{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)

	ns := notificationsFor(t, db, bob.ID)
	require.Len(t, ns, 1)
	assert.Equal(t, models.NotificationConnectionRequest, ns[0].Type)
	assert.Equal(t, alice.ID, ns[0].ActorID)
	assert.Equal(t, conn.ID, *ns[0].EntityID)
	assert.Equal(t, models.EntityTypeConnection, *ns[0].EntityType)

	// duplicates are rejected in both directions
	_, err = svc.Request(ctx, alice.ID, bob.ID)
	requireKind(t, err, KindConflict)
	assert.Equal(t, "Connection request already exists", err.Error())
	_, err = svc.Request(ctx, bob.ID, alice.ID)
	requireKind(t, err, KindConflict)

	// only the addressee may respond
	err = svc.Respond(ctx, conn.ID, alice.ID, "accepted")
	requireKind(t, err, KindForbidden)

	require.NoError(t, svc.Respond(ctx, conn.ID, bob.ID, "accepted"))

	var stored models.Connection
	require.NoError(t, db.Where("id = ?", conn.ID).First(&stored).Error)
	assert.Equal(t, models.ConnectionStatusAccepted, stored.Status)
	assert.Greater(t, stored.UpdatedAt, conn.UpdatedAt)

	ns = notificationsFor(t, db, alice.ID)
	require.Len(t, ns, 1)
	assert.Equal(t, models.NotificationConnectionAccepted, ns[0].Type)
	assert.Equal(t, bob.ID, ns[0].ActorID)

	for _, status := range []string{"accepted", "rejected"} {
		err = svc.Respond(ctx, conn.ID, bob.ID, status)
		requireKind(t, err, KindConflict)
		assert.Equal(t, "Connection request already processed", err.Error())
	}
}

func TestConnectionRespondValidation(t *testing.T) {
	ctx := context.Background()
	store, db := newTestStore(t)
	svc := NewConnectionService(store)
	alice := testutil.CreateUser(t, db, "alice")
	bob := testutil.CreateUser(t, db, "bob")
	conn, err := svc.Request(ctx, alice.ID, bob.ID)
	require.NoError(t, err)

	err = svc.Respond(ctx, conn.ID, bob.ID, "pending")
	requireKind(t, err, KindValidation)

	err = svc.Respond(ctx, "missing", bob.ID, "accepted")
	requireKind(t, err, KindNotFound)
	assert.Equal(t, "Connection not found", err.Error())
}

func TestConnectionRejectDoesNotNotify(t *testing.T) {
	ctx := context.Background()
	store, db := newTestStore(t)
	svc := NewConnectionService(store)
	alice := testutil.CreateUser(t, db, "alice")
	bob := testutil.CreateUser(t, db, "bob")

	conn, err := svc.Request(ctx, alice.ID, bob.ID)
	require.NoError(t, err)
	require.NoError(t, svc.Respond(ctx, conn.ID, bob.ID, "rejected"))

	assert.Empty(t, notificationsFor(t, db, alice.ID))

	rejected, err := svc.List(ctx, alice.ID, "rejected")
	require.NoError(t, err)
	require.Len(t, rejected, 1)
	assert.Equal(t, models.ConnectionStatusRejected, rejected[0].Status)
}

func TestConnectionDelete(t *testing.T) {
	ctx := context.Background()
	store, db := newTestStore(t)
	svc := NewConnectionService(store)
	alice := testutil.CreateUser(t, db, "alice")
	bob := testutil.CreateUser(t, db, "bob")
	carol := testutil.CreateUser(t, db, "carol")

	pending, err := svc.Request(ctx, alice.ID, bob.ID)
	require.NoError(t, err)

	requireKind(t, svc.Delete(ctx, pending.ID, carol.ID), KindForbidden)
	requireKind(t, svc.Delete(ctx, "missing", alice.ID), KindNotFound)

	// the addressee may delete a pending request
	require.NoError(t, svc.Delete(ctx, pending.ID, bob.ID))

	accepted, err := svc.Request(ctx, carol.ID, alice.ID)
	require.NoError(t, err)
	require.NoError(t, svc.Respond(ctx, accepted.ID, alice.ID, "accepted"))
	require.NoError(t, svc.Delete(ctx, accepted.ID, carol.ID))

	var count int64
	require.NoError(t, db.Model(&models.Connection{}).Count(&count).Error)
	assert.Zero(t, count)

	// deleting frees the pair for a new request
	_, err = svc.Request(ctx, bob.ID, alice.ID)
	require.NoError(t, err)
}

func TestConnectionList(t *testing.T) {
	ctx := context.Background()
	store, db := newTestStore(t)
	svc := NewConnectionService(store)
	alice := testutil.CreateUser(t, db, "alice")
	bob := testutil.CreateUser(t, db, "bob")
	carol := testutil.CreateUser(t, db, "carol")

	c1, err := svc.Request(ctx, alice.ID, bob.ID)
	require.NoError(t, err)
	require.NoError(t, svc.Respond(ctx, c1.ID, bob.ID, "accepted"))
	_, err = svc.Request(ctx, carol.ID, alice.ID)
	require.NoError(t, err)

	accepted, err := svc.List(ctx, alice.ID, "")
	require.NoError(t, err)
	require.Len(t, accepted, 1)
	assert.Equal(t, bob.ID, accepted[0].UserID)
	assert.Equal(t, "bob", accepted[0].UserName)
	assert.True(t, accepted[0].IsRequester)

	fromBobSide, err := svc.List(ctx, bob.ID, "accepted")
	require.NoError(t, err)
	require.Len(t, fromBobSide, 1)
	assert.Equal(t, alice.ID, fromBobSide[0].UserID)
	assert.False(t, fromBobSide[0].IsRequester)

	pending, err := svc.List(ctx, alice.ID, "pending")
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, carol.ID, pending[0].UserID)

	unknown, err := svc.List(ctx, alice.ID, "blocked")
	require.NoError(t, err)
	assert.Empty(t, unknown)
}

func TestConnectionSuggestions(t *testing.T) {
	ctx := context.Background()
	store, db := newTestStore(t)
	svc := NewConnectionService(store)
	alice := testutil.CreateUser(t, db, "alice")
	bob := testutil.CreateUser(t, db, "bob")
	carol := testutil.CreateUser(t, db, "carol")
	dave := testutil.CreateUser(t, db, "dave")
	erin := testutil.CreateUser(t, db, "erin")

	c, err := svc.Request(ctx, alice.ID, bob.ID)
	require.NoError(t, err)
	require.NoError(t, svc.Respond(ctx, c.ID, bob.ID, "accepted"))
	_, err = svc.Request(ctx, carol.ID, alice.ID)
	require.NoError(t, err)
	c, err = svc.Request(ctx, alice.ID, dave.ID)
	require.NoError(t, err)
	require.NoError(t, svc.Respond(ctx, c.ID, dave.ID, "rejected"))

	suggestions, err := svc.Suggestions(ctx, alice.ID)
	require.NoError(t, err)
	require.Len(t, suggestions, 1)
	assert.Equal(t, erin.ID, suggestions[0].ID)
	assert.Equal(t, models.SuggestionStatusNone, suggestions[0].ConnectionStatus)

	for i := 0; i < 12; i++ {
		testutil.CreateUser(t, db, "user"+string(rune('a'+i)))
	}
	suggestions, err = svc.Suggestions(ctx, alice.ID)
	require.NoError(t, err)
	assert.Len(t, suggestions, 10)
	for _, s := range suggestions {
		assert.NotEqual(t, alice.ID, s.ID)
	}
}
