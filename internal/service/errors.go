package service

import (
	"errors"
	"fmt"
)

type Kind int

const (
	KindInternal Kind = iota
	KindNotFound
	KindForbidden
	KindConflict
	KindBadRequest
)

// Error types, reported to clients as error_type.
const (
	TypeNoUser          = "NoUser"
	TypeNoTweet         = "NoTweet"
	TypeNoAccess        = "NoAccess"
	TypeBadFollow       = "BadFollow"
	TypeBadLike         = "BadLike"
	TypeBadLikeDelete   = "BadLikeDelete"
	TypeBadFollowDelete = "BadFollowDelete"
	TypeBadFile         = "BadFile"
	TypeBadUser         = "BadUser"
	TypeBadRequest      = "BadRequest"
	TypeInternal        = "InternalError"
)

// Error is a domain failure. Two errors match under errors.Is when they
// share a Type, so callers can compare against the sentinels below even
// when the message or kind differ.
type Error struct {
	Type    string
	Message string
	Kind    Kind
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Type == e.Type
}

var (
	ErrNoUser          = &Error{Type: TypeNoUser, Message: "No user with such api-key", Kind: KindNotFound}
	ErrNoTweet         = &Error{Type: TypeNoTweet, Message: "No tweet with such id", Kind: KindNotFound}
	ErrNoAccess        = &Error{Type: TypeNoAccess, Message: "Tweet belongs to other user", Kind: KindForbidden}
	ErrBadFollow       = &Error{Type: TypeBadFollow, Message: "Such follow already exists", Kind: KindConflict}
	ErrBadLike         = &Error{Type: TypeBadLike, Message: "Such like already exists", Kind: KindConflict}
	ErrBadLikeDelete   = &Error{Type: TypeBadLikeDelete, Message: "No like for tweet from user", Kind: KindNotFound}
	ErrBadFollowDelete = &Error{Type: TypeBadFollowDelete, Message: "No such follow", Kind: KindNotFound}
	ErrBadFile         = &Error{Type: TypeBadFile, Message: "Bad file type", Kind: KindBadRequest}
	ErrBadUser         = &Error{Type: TypeBadUser, Message: "User with such api-key already exists", Kind: KindConflict}
	ErrBadRequest      = &Error{Type: TypeBadRequest, Message: "Bad request", Kind: KindBadRequest}
	ErrInternal        = &Error{Type: TypeInternal, Message: "An error occurred.", Kind: KindInternal}
)

var (
	errNoUserByID     = &Error{Type: TypeNoUser, Message: "No user with such id", Kind: KindNotFound}
	errNoFollowTarget = &Error{Type: TypeNoUser, Message: "No user with user_id to follow", Kind: KindNotFound}
	errSelfFollow     = &Error{Type: TypeBadFollow, Message: "User can't follow themselves", Kind: KindBadRequest}
)

// BadRequest builds a validation failure with a specific message.
func BadRequest(message string) *Error {
	return &Error{Type: TypeBadRequest, Message: message, Kind: KindBadRequest}
}

// AsError extracts the domain error from err. Anything that is not a
// domain error is reported as an internal failure.
func AsError(err error) *Error {
	var e *Error
	if errors.As(err, &e) {
		return e
	}
	return ErrInternal
}
