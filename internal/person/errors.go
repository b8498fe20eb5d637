package person

import "errors"

var (
	ErrNegativeAge   = errors.New("age cannot be negative")
	ErrInvalidFriend = errors.New("friend must be a person")
	ErrSelfFriend    = errors.New("cannot add yourself as a friend")
	ErrEmptyHobby    = errors.New("hobby must be a non-empty string")
	ErrNotFound      = errors.New("person not found")
)
