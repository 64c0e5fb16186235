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
	"strings"

	"github.com/walteh/matchrc/pkg/match"
	"gitlab.com/tozd/go/errors"
)

// 🔌 Lister lists choice names from a remote repository
type Lister interface {
	// 📂 List returns the file entries under args.Path at args.Ref
	List(ctx context.Context, args RepoArgs) ([]match.Entry, error)
}

// 📦 RepoArgs identifies a repository subtree to list
type RepoArgs struct {
	Repo string // owner/name, optionally prefixed with a host
	Ref  string // branch, tag, or commit; empty means the default branch
	Path string // subtree to list, empty means the whole tree
}

var (
	// 🗺️ listers is a map of provider names to listers
	listers = make(map[string]Lister)
)

// 📝 Register registers a lister under a provider name
func Register(name string, lister Lister) {
	listers[name] = lister
}

// 🎯 Get returns a lister by provider name
func Get(name string) (Lister, error) {
	lister, ok := listers[name]
	if !ok {
		options := []string{}
		for k := range listers {
			options = append(options, k)
		}
		return nil, errors.Errorf("lister %s not found, options: %s", name, strings.Join(options, ", "))
	}
	return lister, nil
}
