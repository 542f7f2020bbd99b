package service

import (
	"context"

	"github.com/alexanderramin/taskrange/internal/domain"
	"github.com/alexanderramin/taskrange/internal/importer"
)

// ImportOptions controls an import run.
type ImportOptions struct {
	// Strict aborts the import when any VTODO violates the cardinality rules.
	Strict bool
}

// FileImport is the per-file outcome of an import.
type FileImport struct {
	Path     string
	Imported int
	Replaced int
	Reports  []importer.ComponentReport
}

// ImportResult holds the outcome of an import run.
type ImportResult struct {
	Files     []FileImport
	TaskCount int
}

// Warnings returns one line per violation or consistency issue across all
// imported files. Non-strict imports store tasks despite these.
func (r *ImportResult) Warnings() []string {
	var out []string
	for _, f := range r.Files {
		out = append(out, reportLines(f.Path, f.Reports)...)
	}
	return out
}

type ImportService interface {
	Import(ctx context.Context, patterns []string, opts ImportOptions) (*ImportResult, error)
}

// QueryOptions controls which stored tasks are considered by Query.
type QueryOptions struct {
	// ExcludeUndated drops tasks with no temporal properties. Those tasks
	// match every range otherwise.
	ExcludeUndated bool
}

// CheckResult pairs a task decoded from a file with its classification.
type CheckResult struct {
	Task    *domain.Task
	InRange bool
}

type QueryService interface {
	Query(ctx context.Context, r domain.QueryRange, opts QueryOptions) ([]*domain.Task, error)
	CheckFile(ctx context.Context, path string, r domain.QueryRange) ([]CheckResult, error)
	// Get loads one stored task. A missing id wraps repository.ErrNotFound.
	Get(ctx context.Context, id string) (*domain.Task, error)
}

// FileReport is the validation outcome for one file.
type FileReport struct {
	Path    string
	Reports []importer.ComponentReport
}

// OK reports whether every component in the file passed the cardinality rules.
func (f FileReport) OK() bool {
	for _, r := range f.Reports {
		if !r.OK() {
			return false
		}
	}
	return true
}

type ValidationService interface {
	Rules() domain.RuleTable
	ValidateFiles(ctx context.Context, patterns []string) ([]FileReport, error)
}
