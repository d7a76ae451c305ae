package gateway

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/google/go-github/v62/github"
)

var (
	ErrRepositoryNotFound = errors.New("repository not found")
	ErrBadCredentials     = errors.New("bad credentials")
	ErrRateLimitExceeded  = errors.New("API rate limit exceeded")
)

// classifyRESTError tags go-github errors with one of the sentinel errors
// while keeping the original error in the chain.
func classifyRESTError(err error) error {
	var rateErr *github.RateLimitError
	var abuseErr *github.AbuseRateLimitError
	var respErr *github.ErrorResponse

	switch {
	case errors.As(err, &rateErr), errors.As(err, &abuseErr):
		return fmt.Errorf("%w: %w", ErrRateLimitExceeded, err)
	case errors.As(err, &respErr) && respErr.Response != nil:
		switch respErr.Response.StatusCode {
		case http.StatusUnauthorized:
			return fmt.Errorf("%w: %w", ErrBadCredentials, err)
		case http.StatusNotFound:
			return fmt.Errorf("%w: %w", ErrRepositoryNotFound, err)
		}
	}
	return err
}

// classifyGraphQLError does the same for githubv4, which only exposes messages.
func classifyGraphQLError(err error) error {
	msg := err.Error()
	switch {
	case strings.Contains(msg, "Could not resolve to a Repository"):
		return fmt.Errorf("%w: %w", ErrRepositoryNotFound, err)
	case strings.Contains(msg, "401"), strings.Contains(msg, "Bad credentials"):
		return fmt.Errorf("%w: %w", ErrBadCredentials, err)
	case strings.Contains(msg, "rate limit"), strings.Contains(msg, "RATE_LIMITED"):
		return fmt.Errorf("%w: %w", ErrRateLimitExceeded, err)
	}
	return err
}
