// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package workspace provides the file index and incremental search engine
// that powers @ file mentions in the side panel.
package workspace

import (
	"path"
	"strings"
)

// =============================================================================
// ICONS
// =============================================================================

// FolderIcon is the display hint for folder entries.
const FolderIcon = "folder"

// DefaultFileIcon is the display hint for unrecognized extensions.
const DefaultFileIcon = "file"

// IconForFile returns a display hint for a file name, keyed on its
// extension (case-insensitive). Pure lookup, no filesystem access.
func IconForFile(name string) string {
	ext := strings.ToLower(path.Ext(name))
	switch ext {
	case ".go":
		return "go"
	case ".js", ".mjs", ".cjs":
		return "javascript"
	case ".ts", ".mts":
		return "typescript"
	case ".jsx", ".tsx":
		return "react"
	case ".py":
		return "python"
	case ".rs":
		return "rust"
	case ".rb":
		return "ruby"
	case ".java":
		return "java"
	case ".c", ".h":
		return "c"
	case ".cpp", ".cc", ".hpp":
		return "cpp"
	case ".cs":
		return "csharp"
	case ".sh", ".bash", ".zsh":
		return "shell"
	case ".md", ".markdown":
		return "markdown"
	case ".json":
		return "json"
	case ".yaml", ".yml":
		return "yaml"
	case ".toml":
		return "toml"
	case ".html", ".htm":
		return "html"
	case ".css", ".scss", ".less":
		return "css"
	case ".sql":
		return "database"
	case ".png", ".jpg", ".jpeg", ".gif", ".svg", ".ico", ".webp":
		return "image"
	case ".lock":
		return "lock"
	default:
		return DefaultFileIcon
	}
}
