// Copyright 2026 The Tissuebox Authors
// SPDX-License-Identifier: Apache-2.0

package github

import (
	"context"
	"fmt"
)

// Repository is a GitHub repository.
type Repository struct {
	Name      string `json:"name"`
	FullName  string `json:"full_name"`
	Owner     User   `json:"owner"`
	Private   bool   `json:"private"`
	HTMLURL   string `json:"html_url"`
	HasIssues bool   `json:"has_issues"`
}

// GetRepository retrieves a repository. Promotion calls this before
// touching labels or issues: a bad owner/repo pair fails here with a
// clear not-found error instead of partway through label creation.
func (client *Client) GetRepository(ctx context.Context, owner, repo string) (*Repository, error) {
	var repository Repository
	path := fmt.Sprintf("/repos/%s/%s", owner, repo)
	if err := client.get(ctx, path, &repository); err != nil {
		return nil, fmt.Errorf("getting repository %s/%s: %w", owner, repo, err)
	}
	return &repository, nil
}
