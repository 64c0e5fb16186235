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
	"archive/tar"
	"bytes"
	"compress/gzip"
	"context"
	"io"
	"net/http"
	"os"
	"strings"

	"github.com/walteh/matchrc/pkg/match"
	"gitlab.com/tozd/go/errors"
)

// 📦 listFromArchive downloads the repository archive for ref and lists the
// regular files inside it, filtered the same way as the tree listing.
func (g *GitHub) listFromArchive(ctx context.Context, owner, repo, ref, prefix string) ([]match.Entry, error) {
	data, err := g.fetchArchive(ctx, g.archiveURL(owner, repo, ref))
	if err != nil {
		return nil, err
	}

	gz, err := gzip.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, errors.Errorf("opening archive: %w", err)
	}
	defer gz.Close()

	var entries []match.Entry
	archive := tar.NewReader(gz)
	for {
		header, err := archive.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errors.Errorf("reading archive: %w", err)
		}
		if header.Typeflag != tar.TypeReg {
			continue
		}

		// Archives nest everything under a top-level "{repo}-{ref}/" directory
		_, treePath, found := strings.Cut(header.Name, "/")
		if !found || treePath == "" {
			continue
		}
		if !underPath(treePath, prefix) {
			continue
		}

		entries = append(entries, entry(owner, repo, ref, treePath))
	}

	return entries, nil
}

// 📥 fetchArchive reads the archive behind url. file:// URLs read straight
// from disk, which the tests use in place of a download.
func (g *GitHub) fetchArchive(ctx context.Context, url string) ([]byte, error) {
	var data []byte
	switch {
	case strings.HasPrefix(url, "file://"):
		local, err := os.ReadFile(strings.TrimPrefix(url, "file://"))
		if err != nil {
			return nil, errors.Errorf("reading local archive: %w", err)
		}
		data = local
	case strings.HasPrefix(url, "https://"), strings.HasPrefix(url, "http://"):
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return nil, errors.Errorf("building archive request: %w", err)
		}
		resp, err := http.DefaultClient.Do(req)
		if err != nil {
			return nil, errors.Errorf("downloading archive: %w", err)
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			return nil, errors.Errorf("downloading archive: %s", resp.Status)
		}
		body, err := io.ReadAll(resp.Body)
		if err != nil {
			return nil, errors.Errorf("reading archive response: %w", err)
		}
		data = body
	default:
		return nil, errors.Errorf("unsupported archive URL scheme: %s", url)
	}

	// Bad refs can come back as a small text page, so check the gzip
	// magic number before handing the data to the decompressor.
	if len(data) < 2 || data[0] != 0x1f || data[1] != 0x8b {
		return nil, errors.Errorf("archive is not gzip data")
	}

	return data, nil
}
