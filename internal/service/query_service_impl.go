package service

import (
	"context"
	"fmt"
	"time"

	"github.com/alexanderramin/taskrange/internal/domain"
	"github.com/alexanderramin/taskrange/internal/filter"
	"github.com/alexanderramin/taskrange/internal/importer"
	"github.com/alexanderramin/taskrange/internal/repository"
)

type queryService struct {
	tasks    repository.TaskRepo
	loc      *time.Location
	observer UseCaseObserver
}

func NewQueryService(tasks repository.TaskRepo, loc *time.Location, observers ...UseCaseObserver) QueryService {
	if loc == nil {
		loc = time.UTC
	}
	return &queryService{
		tasks:    tasks,
		loc:      loc,
		observer: useCaseObserverOrNoop(observers),
	}
}

func (s *queryService) Query(ctx context.Context, r domain.QueryRange, opts QueryOptions) (matched []*domain.Task, err error) {
	startedAt := time.Now()
	fields := map[string]any{
		"start": r.Start.Format(time.RFC3339),
		"end":   r.End.Format(time.RFC3339),
	}
	defer observe(ctx, s.observer, "query", startedAt, fields, &err)

	all, err := s.tasks.List(ctx, !opts.ExcludeUndated)
	if err != nil {
		return nil, fmt.Errorf("loading tasks: %w", err)
	}
	matched = filter.Tasks(all, r)
	fields["scanned"] = len(all)
	fields["matched"] = len(matched)
	return matched, nil
}

func (s *queryService) Get(ctx context.Context, id string) (task *domain.Task, err error) {
	startedAt := time.Now()
	fields := map[string]any{"id": id}
	defer observe(ctx, s.observer, "get_task", startedAt, fields, &err)

	task, err = s.tasks.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("loading task: %w", err)
	}
	return task, nil
}

// CheckFile classifies every VTODO in path against r without storing it.
func (s *queryService) CheckFile(ctx context.Context, path string, r domain.QueryRange) (results []CheckResult, err error) {
	startedAt := time.Now()
	fields := map[string]any{"path": path}
	defer observe(ctx, s.observer, "check", startedAt, fields, &err)

	cals, err := importer.LoadFile(path)
	if err != nil {
		return nil, err
	}
	tasks, errs := importer.ConvertAll(cals, s.loc, path)
	if len(errs) > 0 {
		return nil, formatValidationErrors(errs)
	}

	results = make([]CheckResult, 0, len(tasks))
	for _, t := range tasks {
		results = append(results, CheckResult{
			Task:    t,
			InRange: filter.TaskInTimeRange(t.Profile, r),
		})
	}
	fields["tasks"] = len(results)
	return results, nil
}
