package access

import "errors"

// Доменные ошибки модели доступа. HTTP-слой отображает их в статусы:
// ErrNotFound -> 404, ErrForbidden -> 403, остальные -> 400.
var (
	ErrNotFound         = errors.New("resource not found")
	ErrForbidden        = errors.New("forbidden")
	ErrAlreadySubscribed = errors.New("already subscribed to this plan")
	ErrNotSubscribed    = errors.New("not subscribed to this plan")
	ErrNotTrainer       = errors.New("target is not a trainer")
	ErrSelfFollow       = errors.New("cannot follow yourself")
	ErrAlreadyFollowing = errors.New("already following this trainer")
	ErrNotFollowing     = errors.New("not following this trainer")
)
