package util

import "errors"

var (
	ErrUserNotFound         = errors.New("user not found")
	ErrUsernameTaken        = errors.New("username already taken")
	ErrEmailRegistered      = errors.New("email already registered")
	ErrNoUsersFound         = errors.New("no users found")
	ErrSelfTarget           = errors.New("cannot target yourself")
	ErrAlreadyFriends       = errors.New("already friends")
	ErrRequestNotFound      = errors.New("friend request not found")
	ErrNotFriends           = errors.New("friendship does not exist")
	ErrPostNotFound         = errors.New("post not found")
	ErrPermissionDenied     = errors.New("permission denied")
	ErrAlreadyLiked         = errors.New("post already liked")
	ErrNotLiked             = errors.New("post not liked")
	ErrConversationNotFound = errors.New("conversation does not exist")
	ErrEmptyContent         = errors.New("content must not be empty")
	ErrInvalidCredentials   = errors.New("invalid credentials")
)
