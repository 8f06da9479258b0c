// Package ident derives the effective batch identifier from the two sources a
// router exposes: a path segment (/batch/{id}) and a query value (?batch_id=).
package ident

import (
	"errors"
	"net/url"
	"strings"
)

// ErrMissingIdentifier reports that neither source carried an identifier.
var ErrMissingIdentifier = errors.New("no batch id provided")

const (
	pathPrefix = "batch"
	queryKey   = "batch_id"
)

// Resolve returns the effective identifier. The path value takes precedence
// over the query value; blank values count as absent.
func Resolve(pathValue, queryValue string) (string, error) {
	if id := strings.TrimSpace(pathValue); id != "" {
		return id, nil
	}
	if id := strings.TrimSpace(queryValue); id != "" {
		return id, nil
	}
	return "", ErrMissingIdentifier
}

// FromLocation splits a location such as "/batch/abc", "/?batch_id=abc" or a
// full URL into its path-sourced and query-sourced values. A bare token with
// no slash or query is treated as a path value.
func FromLocation(loc string) (pathValue, queryValue string) {
	trimmed := strings.TrimSpace(loc)
	if trimmed == "" {
		return "", ""
	}
	if !strings.ContainsAny(trimmed, "/?") {
		return trimmed, ""
	}
	u, err := url.Parse(trimmed)
	if err != nil {
		return "", ""
	}
	queryValue = u.Query().Get(queryKey)

	segments := strings.Split(strings.Trim(u.Path, "/"), "/")
	for i := 0; i+1 < len(segments); i++ {
		if segments[i] == pathPrefix {
			pathValue = segments[i+1]
			break
		}
	}
	return pathValue, queryValue
}

// FromInput resolves free-form user input (a bare id or a location).
func FromInput(input string) (string, error) {
	return Resolve(FromLocation(input))
}
