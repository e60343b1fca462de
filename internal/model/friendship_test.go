package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCanonicalPair(t *testing.T) {
	t.Run("already ordered", func(t *testing.T) {
		one, two := CanonicalPair(3, 7)
		assert.Equal(t, uint(3), one)
		assert.Equal(t, uint(7), two)
	})

	t.Run("swaps reversed input", func(t *testing.T) {
		one, two := CanonicalPair(7, 3)
		assert.Equal(t, uint(3), one)
		assert.Equal(t, uint(7), two)
	})

	t.Run("both orders map to the same pair", func(t *testing.T) {
		a1, b1 := CanonicalPair(12, 44)
		a2, b2 := CanonicalPair(44, 12)
		assert.Equal(t, a1, a2)
		assert.Equal(t, b1, b2)
	})
}

func TestFriendshipOtherUser(t *testing.T) {
	f := &Friendship{UserOneID: 3, UserTwoID: 7}
	assert.Equal(t, uint(7), f.OtherUser(3))
	assert.Equal(t, uint(3), f.OtherUser(7))
}

func TestFriendshipInvolves(t *testing.T) {
	f := &Friendship{UserOneID: 3, UserTwoID: 7}
	assert.True(t, f.Involves(3))
	assert.True(t, f.Involves(7))
	assert.False(t, f.Involves(5))
}

func TestFriendRequestIsTerminal(t *testing.T) {
	assert.False(t, (&FriendRequest{Status: RequestStatusPending}).IsTerminal())
	assert.True(t, (&FriendRequest{Status: RequestStatusAccepted}).IsTerminal())
	assert.True(t, (&FriendRequest{Status: RequestStatusDeclined}).IsTerminal())
}
