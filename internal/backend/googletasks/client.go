// Package googletasks implements source.Source on top of the Google Tasks API.
//
// The source is read-only: it loads one task list and never writes pin or
// archive actions back.
package googletasks

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
	tasks "google.golang.org/api/tasks/v1"

	"taskbox/internal/config"
	"taskbox/internal/source"
	"taskbox/internal/task"
)

const (
	// DefaultListID is the special ID for the default list.
	DefaultListID = "@default"

	// PageSize is the number of tasks requested per API page.
	PageSize = 100

	// APITimeout is the timeout for a full load.
	APITimeout = 10 * time.Second

	// StatusCompleted is the Google Tasks status of a finished task.
	StatusCompleted = "completed"
)

var (
	// ErrCredentials is returned when oauth_client.json or token.json cannot be used.
	ErrCredentials = errors.New("unusable credentials")

	// ErrTokenRevoked is returned when the API rejects the stored token.
	ErrTokenRevoked = errors.New("token expired or revoked (run: taskbox login)")

	// ErrTimeout is returned when a load exceeds APITimeout.
	ErrTimeout = errors.New("request timed out")

	// ErrNotFound is returned when the API reports a missing list.
	ErrNotFound = errors.New("not found")

	// ErrListNotFound is returned when no list has the requested name.
	ErrListNotFound = errors.New("list not found")

	// ErrAmbiguousList is returned when several lists share the requested name.
	ErrAmbiguousList = errors.New("ambiguous list name")
)

// Client loads one task list from Google Tasks.
type Client struct {
	svc      *tasks.Service
	listName string
}

// New creates a client from the credentials in the config directory.
// Requires oauth_client.json and token.json to exist.
func New(ctx context.Context, cfg *config.Config) (*Client, error) {
	clientJSON, err := os.ReadFile(cfg.OAuthClientPath())
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read oauth_client.json: %v", ErrCredentials, err)
	}

	oauthConfig, err := google.ConfigFromJSON(clientJSON, config.TasksScope)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid oauth_client.json: %v", ErrCredentials, err)
	}

	tokenData, err := os.ReadFile(cfg.TokenPath())
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read token.json: %v", ErrCredentials, err)
	}

	var token oauth2.Token
	if err := json.Unmarshal(tokenData, &token); err != nil {
		return nil, fmt.Errorf("%w: invalid token.json: %v", ErrCredentials, err)
	}

	httpClient := oauth2.NewClient(ctx, oauthConfig.TokenSource(ctx, &token))
	return NewWithHTTPClient(ctx, httpClient, cfg.Settings.GoogleList)
}

// NewWithHTTPClient creates a client with a custom HTTP client.
// An empty listName selects the user's default list.
func NewWithHTTPClient(ctx context.Context, httpClient *http.Client, listName string, opts ...option.ClientOption) (*Client, error) {
	opts = append([]option.ClientOption{option.WithHTTPClient(httpClient)}, opts...)
	svc, err := tasks.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create tasks service: %w", err)
	}
	return &Client{svc: svc, listName: strings.TrimSpace(listName)}, nil
}

// Name implements source.Source.
func (c *Client) Name() string {
	if c.listName == "" {
		return source.KindGoogle + ":" + DefaultListID
	}
	return source.KindGoogle + ":" + c.listName
}

// Load implements source.Source.
// Tasks are numbered 1..n in API order. Completed tasks become archived.
func (c *Client) Load(ctx context.Context) (source.Snapshot, error) {
	ctx, cancel := context.WithTimeout(ctx, APITimeout)
	defer cancel()

	listID := DefaultListID
	if c.listName != "" {
		id, err := c.resolveList(ctx, c.listName)
		if err != nil {
			return source.Snapshot{}, err
		}
		listID = id
	}

	var items []*tasks.Task
	err := c.svc.Tasks.List(listID).
		MaxResults(PageSize).
		ShowCompleted(true).
		ShowHidden(true).
		ShowDeleted(false).
		Pages(ctx, func(resp *tasks.Tasks) error {
			items = append(items, resp.Items...)
			return nil
		})
	if err != nil {
		return source.Snapshot{}, wrapError(err)
	}

	result := make([]task.Task, 0, len(items))
	for _, item := range items {
		if item.Deleted {
			continue
		}
		result = append(result, convertTask(len(result)+1, item))
	}

	return source.Snapshot{Tasks: result}, nil
}

// resolveList finds a list ID by name (case-insensitive, trimmed).
func (c *Client) resolveList(ctx context.Context, name string) (string, error) {
	nameLower := strings.ToLower(name)

	var matches []string
	err := c.svc.Tasklists.List().MaxResults(100).Pages(ctx, func(resp *tasks.TaskLists) error {
		for _, list := range resp.Items {
			if strings.ToLower(strings.TrimSpace(list.Title)) == nameLower {
				matches = append(matches, list.Id)
			}
		}
		return nil
	})
	if err != nil {
		return "", wrapError(err)
	}

	switch len(matches) {
	case 0:
		return "", fmt.Errorf("%w: %s", ErrListNotFound, name)
	case 1:
		return matches[0], nil
	default:
		return "", fmt.Errorf("%w: %s", ErrAmbiguousList, name)
	}
}

func convertTask(id int, item *tasks.Task) task.Task {
	t := task.Task{
		ID:    id,
		Title: flattenTitle(item.Title),
		State: task.StateInbox,
	}
	if item.Status == StatusCompleted {
		t.State = task.StateArchived
	}
	if updated, err := time.Parse(time.RFC3339, item.Updated); err == nil {
		t.UpdatedAt = &updated
	}
	return t
}

// flattenTitle keeps titles valid for the task model.
func flattenTitle(title string) string {
	if strings.TrimSpace(title) == "" {
		return "(untitled)"
	}
	return title
}

// wrapError maps API failures onto the package sentinels.
func wrapError(err error) error {
	if err == nil {
		return nil
	}

	var retrieveErr *oauth2.RetrieveError
	if errors.As(err, &retrieveErr) {
		return ErrTokenRevoked
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return ErrTimeout
	}

	var apiErr *googleapi.Error
	if errors.As(err, &apiErr) {
		switch apiErr.Code {
		case http.StatusUnauthorized, http.StatusForbidden:
			return ErrTokenRevoked
		case http.StatusNotFound:
			return ErrNotFound
		}
	}

	return err
}
