// Package backend selects and constructs the configured task source.
package backend

import (
	"context"
	"errors"
	"fmt"
	"os"

	"taskbox/internal/backend/fixture"
	"taskbox/internal/backend/googletasks"
	"taskbox/internal/backend/jsonfile"
	"taskbox/internal/config"
	"taskbox/internal/source"
	"taskbox/internal/task"
)

var (
	// ErrUnknownSource is returned for an unrecognised source kind.
	ErrUnknownSource = errors.New("unknown source")

	// ErrNotLoggedIn is returned when the google source has no credentials.
	ErrNotLoggedIn = errors.New("not logged in (run: taskbox login)")
)

// Open builds the source selected by cfg.Settings.
func Open(ctx context.Context, cfg *config.Config) (source.Source, error) {
	s := cfg.Settings
	switch s.Source {
	case "", source.KindFixture:
		src, err := fixture.New(s.Story)
		if err != nil {
			return nil, err
		}
		return src, nil
	case source.KindFile:
		src, err := jsonfile.New(s.File)
		if err != nil {
			return nil, err
		}
		return src, nil
	case source.KindGoogle:
		if !cfg.HasOAuthClient() {
			return nil, fmt.Errorf("%w: oauth_client.json not found in %s", ErrNotLoggedIn, cfg.Dir)
		}
		if !cfg.HasToken() {
			return nil, ErrNotLoggedIn
		}
		src, err := googletasks.New(ctx, cfg)
		if err != nil {
			return nil, err
		}
		return src, nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownSource, s.Source)
	}
}

// IsUserError reports whether err is caused by the user's settings or task data.
func IsUserError(err error) bool {
	return errors.Is(err, ErrUnknownSource) ||
		errors.Is(err, fixture.ErrStoryNotFound) ||
		errors.Is(err, jsonfile.ErrPathRequired) ||
		errors.Is(err, jsonfile.ErrInvalidFile) ||
		errors.Is(err, os.ErrNotExist) ||
		errors.Is(err, task.ErrMissingID) ||
		errors.Is(err, task.ErrMissingTitle) ||
		errors.Is(err, task.ErrDuplicateID) ||
		errors.Is(err, task.ErrUnknownState) ||
		errors.Is(err, googletasks.ErrListNotFound) ||
		errors.Is(err, googletasks.ErrAmbiguousList)
}

// IsAuthError reports whether err is fixed by logging in again.
func IsAuthError(err error) bool {
	return errors.Is(err, ErrNotLoggedIn) ||
		errors.Is(err, googletasks.ErrCredentials) ||
		errors.Is(err, googletasks.ErrTokenRevoked)
}
