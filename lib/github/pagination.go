// Copyright 2026 The Tissuebox Authors
// SPDX-License-Identifier: Apache-2.0

package github

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
)

// PageIterator walks a paginated list endpoint one page at a time,
// following the rel="next" URL from each response's Link header.
// Not safe for concurrent use.
type PageIterator[T any] struct {
	client  *Client
	nextURL string
	done    bool
}

// pages starts an iterator at a path relative to the client's base
// URL.
func pages[T any](client *Client, path string) *PageIterator[T] {
	return &PageIterator[T]{
		client:  client,
		nextURL: client.baseURL + path,
	}
}

// Next fetches one page and returns its items, or nil, nil once
// every page has been consumed. Each fetch is an ordinary API call:
// authenticated and subject to the rate gate.
func (iterator *PageIterator[T]) Next(ctx context.Context) ([]T, error) {
	if iterator.done || iterator.nextURL == "" {
		return nil, nil
	}

	response, err := iterator.client.roundTrip(ctx, http.MethodGet, iterator.nextURL, nil)
	if err != nil {
		return nil, err
	}
	defer response.Body.Close()

	if response.StatusCode != http.StatusOK {
		return nil, responseError(response)
	}

	var items []T
	if err := json.NewDecoder(response.Body).Decode(&items); err != nil {
		return nil, err
	}

	next := nextPageURL(response.Header.Get("Link"))
	iterator.nextURL = next
	iterator.done = next == ""
	return items, nil
}

// Collect drains the iterator and returns every remaining item.
// EnsureLabels uses this to compare tags against the complete label
// set of a repository.
func (iterator *PageIterator[T]) Collect(ctx context.Context) ([]T, error) {
	var all []T
	for {
		items, err := iterator.Next(ctx)
		if items == nil || err != nil {
			return all, err
		}
		all = append(all, items...)
	}
}

// nextPageURL pulls the rel="next" target out of an RFC 5988 Link
// header, for example:
//
//	<https://api.github.com/...?page=2>; rel="next", <...>; rel="last"
//
// Returns "" when the header names no next page.
func nextPageURL(header string) string {
	for _, field := range strings.Split(header, ",") {
		target, attributes, ok := strings.Cut(field, ";")
		if !ok || !strings.Contains(attributes, `rel="next"`) {
			continue
		}
		target = strings.TrimSpace(target)
		if strings.HasPrefix(target, "<") && strings.HasSuffix(target, ">") {
			return target[1 : len(target)-1]
		}
	}
	return ""
}
