// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package workspace provides the file index and incremental search engine
// that powers @ file mentions in the side panel.
package workspace

import (
	"sort"
	"strings"
)

// =============================================================================
// RANKED SUBSTRING SEARCH
// =============================================================================

// searchSnapshot finds entries under scope that contain the query as a
// case-insensitive substring. Files match on their relative path, which
// subsumes name and path-segment matches since both are contiguous
// substrings of it. Folder candidates are the distinct immediate
// subdirectories of the scope, derived from path prefixes exactly like
// browse mode, so a matching candidate is always a real directory and
// never a filename fragment.
//
// Each entry is included at most once, keyed by relative path. Results
// are ranked before truncation: truncating an arbitrary scan-order prefix
// would bias toward walk order over quality.
func searchSnapshot(snap *snapshot, query, scope string, maxResults int) []FileEntry {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return nil
	}

	var matches []FileEntry
	seen := make(map[string]struct{})

	for _, name := range snap.subdirsOf(scope) {
		if !strings.Contains(strings.ToLower(name), q) {
			continue
		}
		rel := joinRel(scope, name)
		if _, dup := seen[rel]; dup {
			continue
		}
		seen[rel] = struct{}{}
		matches = append(matches, snap.folderEntry(scope, name))
	}

	for _, f := range snap.files {
		if !inScope(f.RelativePath, scope) {
			continue
		}
		if !strings.Contains(strings.ToLower(f.RelativePath), q) {
			continue
		}
		if _, dup := seen[f.RelativePath]; dup {
			continue
		}
		seen[f.RelativePath] = struct{}{}
		matches = append(matches, f)
	}

	rankMatches(matches, q)

	if maxResults > 0 && len(matches) > maxResults {
		matches = matches[:maxResults]
	}
	return matches
}

// rankMatches orders matches by: exact case-insensitive name match first,
// then folders before files, then ascending name. The sort is stable and
// ties fall through to the relative path so output is deterministic.
func rankMatches(matches []FileEntry, q string) {
	sort.SliceStable(matches, func(i, j int) bool {
		a, b := matches[i], matches[j]

		aExact := strings.ToLower(a.Name) == q
		bExact := strings.ToLower(b.Name) == q
		if aExact != bExact {
			return aExact
		}

		if a.Kind != b.Kind {
			return a.Kind == KindFolder
		}

		al, bl := strings.ToLower(a.Name), strings.ToLower(b.Name)
		if al != bl {
			return al < bl
		}
		return a.RelativePath < b.RelativePath
	})
}
