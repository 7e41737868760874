package actor

import (
	"context"
	"strings"
)

// Search wraps the directory scan with the caller-facing rules:
// blank queries yield an empty result and the caller never sees itself.
type Search struct {
	dir Directory
}

// NewSearch returns a Search service over the given directory.
func NewSearch(dir Directory) *Search {
	return &Search{dir: dir}
}

// Run performs a case-insensitive substring search across both actor kinds.
// An empty or whitespace-only query returns an empty result, not an error.
func (s *Search) Run(ctx context.Context, caller Ref, query string) ([]Summary, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return []Summary{}, nil
	}

	matches, err := s.dir.Search(ctx, query)
	if err != nil {
		return nil, err
	}

	result := make([]Summary, 0, len(matches))
	for _, m := range matches {
		if m.ID == caller.ID {
			continue
		}
		result = append(result, m)
	}
	return result, nil
}
