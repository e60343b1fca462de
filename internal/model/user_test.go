package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUserDisplayName(t *testing.T) {
	tests := []struct {
		name string
		user User
		want string
	}{
		{
			name: "full name by default",
			user: User{Username: "alice", FirstName: "Alice", LastName: "Anderson"},
			want: "Alice Anderson",
		},
		{
			name: "nickname when preferred",
			user: User{Username: "alice", FirstName: "Alice", LastName: "Anderson",
				Nickname: "Ally", DisplayPreference: DisplayPreferenceNickname},
			want: "Ally",
		},
		{
			name: "empty nickname falls back to full name",
			user: User{Username: "alice", FirstName: "Alice", LastName: "Anderson",
				DisplayPreference: DisplayPreferenceNickname},
			want: "Alice Anderson",
		},
		{
			name: "first name only",
			user: User{Username: "alice", FirstName: "Alice"},
			want: "Alice",
		},
		{
			name: "last name only",
			user: User{Username: "alice", LastName: "Anderson"},
			want: "Anderson",
		},
		{
			name: "username when no name set",
			user: User{Username: "alice"},
			want: "alice",
		},
		{
			name: "nickname ignored under first_name preference",
			user: User{Username: "alice", FirstName: "Alice", Nickname: "Ally",
				DisplayPreference: DisplayPreferenceFirstName},
			want: "Alice",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.user.DisplayName())
		})
	}
}
