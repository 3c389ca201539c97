package services

import (
	"errors"

	"reviewio/internal/apperr"
	"reviewio/internal/repository"
)

var (
	ErrUserNotFound     = apperr.NotFound("No user found")
	ErrPostNotFound     = apperr.NotFound("No post found")
	ErrCommentNotFound  = apperr.NotFound("No comment found")
	ErrCategoryNotFound = apperr.NotFound("No category found")
	ErrNotiNotFound     = apperr.NotFound("No notification found")
	ErrReportNotFound   = apperr.NotFound("No report found")

	ErrAlreadyLiked     = apperr.Precondition("Post already liked")
	ErrNotLiked         = apperr.Precondition("Post has not been liked yet")
	ErrCommentLiked     = apperr.Precondition("Comment already liked")
	ErrCommentNotLiked  = apperr.Precondition("Comment has not been liked yet")
	ErrAlreadySaved     = apperr.Precondition("Post already saved")
	ErrNotSaved         = apperr.Precondition("Post has not been saved yet")
	ErrSelfFollow       = apperr.Precondition("You cannot follow yourself")
	ErrSelfBlock        = apperr.Precondition("You cannot block yourself")
	ErrAlreadyFollowing = apperr.Precondition("You are already following this user")
	ErrNotFollowing     = apperr.Precondition("You are not following this user")
	ErrBlocked          = apperr.Precondition("This action is not available because of a block")
	ErrAlreadyBlocked   = apperr.Precondition("You have already blocked this user")
	ErrNotBlocked       = apperr.Precondition("You have not blocked this user")
	ErrNotGenre         = apperr.Precondition("This category cannot be followed")
	ErrAlreadyFollowCat = apperr.Precondition("You are already following this category")
	ErrNotFollowCat     = apperr.Precondition("You are not following this category")
	ErrEmailTaken       = apperr.Precondition("Email or username already in use")
	ErrBanned           = apperr.Precondition("Your account is banned")
	ErrBadCredentials   = apperr.Unauthorized("Incorrect email or password")
	ErrAccountGone      = apperr.Unauthorized("The user belonging to this token no longer exists")
	ErrNotOwner         = apperr.Forbidden("You do not have permission to perform this action")
)

// notFound maps repository.ErrNotFound to the given sentinel.
func notFound(err error, sentinel *apperr.Error) error {
	if errors.Is(err, repository.ErrNotFound) {
		return sentinel
	}
	return err
}
