package service

import (
	"context"
	"time"

	"github.com/alexanderramin/taskrange/internal/domain"
	"github.com/alexanderramin/taskrange/internal/importer"
)

type validationService struct {
	rules    domain.RuleTable
	observer UseCaseObserver
}

func NewValidationService(observers ...UseCaseObserver) ValidationService {
	return &validationService{
		rules:    domain.TaskValidationRules(),
		observer: useCaseObserverOrNoop(observers),
	}
}

func (s *validationService) Rules() domain.RuleTable {
	return domain.TaskValidationRules()
}

// ValidateFiles checks every VTODO in the matched files. A file that cannot be
// decoded fails the whole call; rule violations are reported, not returned
// as errors.
func (s *validationService) ValidateFiles(ctx context.Context, patterns []string) (reports []FileReport, err error) {
	startedAt := time.Now()
	fields := map[string]any{}
	defer observe(ctx, s.observer, "validate", startedAt, fields, &err)

	paths, err := expandPatterns(patterns)
	if err != nil {
		return nil, err
	}

	violations := 0
	for _, path := range paths {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		cals, err := importer.LoadFile(path)
		if err != nil {
			return nil, err
		}
		fr := FileReport{Path: path, Reports: importer.ValidateTodos(cals, s.rules)}
		for _, r := range fr.Reports {
			violations += len(r.Violations)
		}
		reports = append(reports, fr)
	}
	fields["files"] = len(paths)
	fields["violations"] = violations
	return reports, nil
}
