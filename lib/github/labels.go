// Copyright 2026 The Tissuebox Authors
// SPDX-License-Identifier: Apache-2.0

package github

import (
	"context"
	"errors"
	"fmt"
)

// defaultLabelColor is GitHub's neutral gray, applied to labels that
// EnsureLabels has to create. Promotion only cares that the label
// exists; recoloring is a web UI matter.
const defaultLabelColor = "ededed"

// Label is a GitHub issue label. Promotion creates one per tag.
type Label struct {
	Name        string `json:"name"`
	Color       string `json:"color"`
	Description string `json:"description"`
}

// CreateLabelRequest contains the fields for creating a new label.
type CreateLabelRequest struct {
	Name        string `json:"name"`
	Color       string `json:"color,omitempty"`
	Description string `json:"description,omitempty"`
}

// ListLabels iterates over a repository's labels. perPage caps each
// page (GitHub allows up to 100); zero means GitHub's default of 30.
func (client *Client) ListLabels(ctx context.Context, owner, repo string, perPage int) *PageIterator[Label] {
	path := fmt.Sprintf("/repos/%s/%s/labels", owner, repo)
	if perPage > 0 {
		path = fmt.Sprintf("%s?per_page=%d", path, perPage)
	}
	return pages[Label](client, path)
}

// CreateLabel creates a new label in a repository.
func (client *Client) CreateLabel(ctx context.Context, owner, repo string, request CreateLabelRequest) (*Label, error) {
	var label Label
	path := fmt.Sprintf("/repos/%s/%s/labels", owner, repo)
	if err := client.post(ctx, path, request, &label); err != nil {
		return nil, fmt.Errorf("creating label %q in %s/%s: %w", request.Name, owner, repo, err)
	}
	return &label, nil
}

// EnsureLabels creates any of the named labels missing from the
// repository. The existing set is fetched once, so a tissue with
// several tags costs one list plus one create per missing label. A
// label created concurrently between the list and the create is
// tolerated.
func (client *Client) EnsureLabels(ctx context.Context, owner, repo string, names []string) error {
	if len(names) == 0 {
		return nil
	}

	existing, err := client.ListLabels(ctx, owner, repo, 100).Collect(ctx)
	if err != nil {
		return fmt.Errorf("listing labels in %s/%s: %w", owner, repo, err)
	}
	have := make(map[string]bool, len(existing))
	for _, label := range existing {
		have[label.Name] = true
	}

	for _, name := range names {
		if have[name] {
			continue
		}
		_, err := client.CreateLabel(ctx, owner, repo, CreateLabelRequest{
			Name:  name,
			Color: defaultLabelColor,
		})
		if err != nil && !isAlreadyExists(err) {
			return err
		}
	}
	return nil
}

// isAlreadyExists reports whether err is a 422 whose validation
// errors say the resource already exists.
func isAlreadyExists(err error) bool {
	var apiError *APIError
	if !errors.As(err, &apiError) || apiError.StatusCode != 422 {
		return false
	}
	for _, detail := range apiError.Errors {
		if detail.Code == "already_exists" {
			return true
		}
	}
	return false
}
