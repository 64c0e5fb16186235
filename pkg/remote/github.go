// Copyright 2025 walteh LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package remote

import (
	"context"
	"fmt"
	"os"
	"path"
	"strings"

	"github.com/google/go-github/v60/github"
	"github.com/rs/zerolog"
	"github.com/walteh/matchrc/pkg/match"
	"gitlab.com/tozd/go/errors"
)

func init() {
	Register("github", NewGitHub())
}

// 🎯 GitHub lists choice names from a GitHub repository tree
type GitHub struct {
	client     *github.Client
	archiveURL func(owner, repo, ref string) string
}

// 🏭 NewGitHub creates a GitHub lister, authenticated when GITHUB_TOKEN is set
func NewGitHub() *GitHub {
	client := github.NewClient(nil)
	if token := os.Getenv("GITHUB_TOKEN"); token != "" {
		client = client.WithAuthToken(token)
	}
	return &GitHub{
		client: client,
		archiveURL: func(owner, repo, ref string) string {
			return fmt.Sprintf("https://github.com/%s/%s/archive/%s.tar.gz", owner, repo, ref)
		},
	}
}

// 🔍 parseRepo parses a GitHub repository URL
func parseRepo(repo string) (owner, name string, err error) {
	parts := strings.Split(strings.TrimSuffix(repo, "/"), "/")
	if len(parts) < 2 {
		return "", "", errors.Errorf("invalid repository format: %s", repo)
	}

	owner, name = parts[len(parts)-2], parts[len(parts)-1]
	if owner == "" || name == "" {
		return "", "", errors.Errorf("invalid repository format: %s", repo)
	}

	return owner, name, nil
}

// 📂 List returns the names of all blobs under args.Path at args.Ref.
// Entry paths carry the blob's web permalink rather than a local path.
func (g *GitHub) List(ctx context.Context, args RepoArgs) ([]match.Entry, error) {
	owner, name, err := parseRepo(args.Repo)
	if err != nil {
		return nil, errors.Errorf("parsing repo: %w", err)
	}

	ref := args.Ref
	if ref == "" {
		repo, _, err := g.client.Repositories.Get(ctx, owner, name)
		if err != nil {
			return nil, errors.Errorf("getting repository: %w", err)
		}
		ref = repo.GetDefaultBranch()
	}

	// Get repository tree
	tree, _, err := g.client.Git.GetTree(ctx, owner, name, ref, true)
	if err != nil {
		return nil, errors.Errorf("getting repository tree: %w", err)
	}

	prefix := strings.Trim(args.Path, "/")
	var entries []match.Entry
	if tree.GetTruncated() {
		// The trees API stops listing very large repositories partway.
		// The release archive always carries the full file list.
		entries, err = g.listFromArchive(ctx, owner, name, ref, prefix)
		if err != nil {
			return nil, errors.Errorf("listing from archive: %w", err)
		}
	} else {
		for _, item := range tree.Entries {
			if item.GetType() != "blob" {
				continue
			}
			if !underPath(item.GetPath(), prefix) {
				continue
			}
			entries = append(entries, entry(owner, name, ref, item.GetPath()))
		}
	}

	zerolog.Ctx(ctx).Debug().
		Str("repo", args.Repo).
		Str("ref", ref).
		Int("entries", len(entries)).
		Msg("listed remote choices")

	return entries, nil
}

// underPath reports whether treePath sits at or below prefix.
func underPath(treePath, prefix string) bool {
	return prefix == "" || treePath == prefix || strings.HasPrefix(treePath, prefix+"/")
}

// entry builds a choice whose path is the blob's web permalink.
func entry(owner, repo, ref, treePath string) match.Entry {
	return match.Entry{
		Name: path.Base(treePath),
		Path: fmt.Sprintf("https://github.com/%s/%s/blob/%s/%s", owner, repo, ref, treePath),
	}
}
