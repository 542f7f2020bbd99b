package service

import (
	"context"
	"fmt"
	"time"

	"github.com/alexanderramin/taskrange/internal/db"
	"github.com/alexanderramin/taskrange/internal/domain"
	"github.com/alexanderramin/taskrange/internal/importer"
	"github.com/alexanderramin/taskrange/internal/repository"
)

type importService struct {
	uow      db.UnitOfWork
	loc      *time.Location
	rules    domain.RuleTable
	observer UseCaseObserver
}

// NewImportService builds an ImportService. loc resolves floating date-times
// in imported files; nil means UTC.
func NewImportService(uow db.UnitOfWork, loc *time.Location, observers ...UseCaseObserver) ImportService {
	if loc == nil {
		loc = time.UTC
	}
	return &importService{
		uow:      uow,
		loc:      loc,
		rules:    domain.TaskValidationRules(),
		observer: useCaseObserverOrNoop(observers),
	}
}

type pendingFile struct {
	FileImport
	tasks []*domain.Task
}

// Import decodes every file matched by patterns and replaces the stored
// tasks of each file in a single transaction. Nothing is written when any
// file fails to decode or convert.
func (s *importService) Import(ctx context.Context, patterns []string, opts ImportOptions) (result *ImportResult, err error) {
	startedAt := time.Now()
	fields := map[string]any{"strict": opts.Strict}
	defer observe(ctx, s.observer, "import", startedAt, fields, &err)

	paths, err := expandPatterns(patterns)
	if err != nil {
		return nil, err
	}
	fields["files"] = len(paths)

	var pending []pendingFile
	var errs []error
	for _, path := range paths {
		cals, err := importer.LoadFile(path)
		if err != nil {
			errs = append(errs, err)
			continue
		}

		reports := importer.ValidateTodos(cals, s.rules)
		if opts.Strict {
			for _, r := range reports {
				for _, v := range r.Violations {
					errs = append(errs, fmt.Errorf("%s: todo[%d]: %w", path, r.Index, v))
				}
			}
		}

		tasks, convErrs := importer.ConvertAll(cals, s.loc, path)
		errs = append(errs, convErrs...)

		pending = append(pending, pendingFile{
			FileImport: FileImport{Path: path, Imported: len(tasks), Reports: reports},
			tasks:      tasks,
		})
	}
	if len(errs) > 0 {
		return nil, formatValidationErrors(errs)
	}

	result = &ImportResult{}
	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		tasks := repository.NewSQLiteTaskRepo(tx)
		for i := range pending {
			f := &pending[i]
			replaced, err := tasks.DeleteBySource(ctx, f.Path)
			if err != nil {
				return fmt.Errorf("replacing tasks from %s: %w", f.Path, err)
			}
			f.Replaced = replaced

			for _, t := range f.tasks {
				if err := tasks.Create(ctx, t); err != nil {
					return fmt.Errorf("storing task %q from %s: %w", t.UID, f.Path, err)
				}
			}
			result.Files = append(result.Files, f.FileImport)
			result.TaskCount += len(f.tasks)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	fields["tasks"] = result.TaskCount
	return result, nil
}
