package service

import (
	"fmt"
	"path/filepath"
	"sort"

	"github.com/alexanderramin/taskrange/internal/importer"
	"github.com/bmatcuk/doublestar/v4"
)

// expandPatterns resolves doublestar globs into a sorted, de-duplicated list
// of absolute paths. A pattern that matches nothing is an error.
func expandPatterns(patterns []string) ([]string, error) {
	if len(patterns) == 0 {
		return nil, fmt.Errorf("no input files given")
	}

	seen := make(map[string]bool)
	var paths []string
	for _, pattern := range patterns {
		matches, err := doublestar.FilepathGlob(pattern)
		if err != nil {
			return nil, fmt.Errorf("expanding %q: %w", pattern, err)
		}
		if len(matches) == 0 {
			return nil, fmt.Errorf("no files match %q", pattern)
		}
		for _, m := range matches {
			abs, err := filepath.Abs(m)
			if err != nil {
				return nil, fmt.Errorf("resolving %s: %w", m, err)
			}
			if !seen[abs] {
				seen[abs] = true
				paths = append(paths, abs)
			}
		}
	}
	sort.Strings(paths)
	return paths, nil
}

func reportLines(path string, reports []importer.ComponentReport) []string {
	var lines []string
	for _, r := range reports {
		label := fmt.Sprintf("%s: todo[%d]", path, r.Index)
		if r.UID != "" {
			label += " (UID " + r.UID + ")"
		}
		for _, v := range r.Violations {
			lines = append(lines, label+": "+v.Error())
		}
		for _, issue := range r.Issues {
			lines = append(lines, label+": "+issue.Message)
		}
	}
	return lines
}

func formatValidationErrors(errs []error) error {
	msg := fmt.Sprintf("import validation failed (%d errors):", len(errs))
	for _, e := range errs {
		msg += "\n  - " + e.Error()
	}
	return fmt.Errorf("%s", msg)
}
