package service

import (
	"sort"
	"strings"

	"golang.org/x/text/cases"

	"mtodo/internal/domain/entity"
	"mtodo/internal/domain/valueobject"
)

// AllCategories is the category filter value that matches every task
const AllCategories = "All"

// ViewCriteria holds the active filters. Zero values disable each filter.
type ViewCriteria struct {
	Search   string
	Category string
	Priority *valueobject.Priority
}

// Stats summarises the whole collection
type Stats struct {
	Total     int
	Completed int
	Pending   int
	Overdue   int
}

// ViewService derives the filtered, sorted view and summary data from tasks
type ViewService struct{}

// NewViewService creates a new ViewService
func NewViewService() *ViewService {
	return &ViewService{}
}

// FilteredSortedView applies search, category and priority filters in that
// order, then sorts open tasks first, higher priority first, earlier due date
// first. Ties keep collection order.
func (s *ViewService) FilteredSortedView(tasks []*entity.Task, criteria ViewCriteria) []*entity.Task {
	view := make([]*entity.Task, 0, len(tasks))

	matchSearch := s.searchMatcher(criteria.Search)
	for _, t := range tasks {
		if !matchSearch(t) {
			continue
		}
		if criteria.Category != "" && criteria.Category != AllCategories && t.Category() != criteria.Category {
			continue
		}
		if criteria.Priority != nil && t.Priority() != *criteria.Priority {
			continue
		}
		view = append(view, t)
	}

	sort.SliceStable(view, func(i, j int) bool {
		a, b := view[i], view[j]
		if a.IsCompleted() != b.IsCompleted() {
			return !a.IsCompleted()
		}
		if a.Priority() != b.Priority() {
			return a.Priority().Rank() > b.Priority().Rank()
		}
		return a.DueDate().Before(b.DueDate())
	})

	return view
}

func (s *ViewService) searchMatcher(search string) func(*entity.Task) bool {
	if strings.TrimSpace(search) == "" {
		return func(*entity.Task) bool { return true }
	}
	fold := cases.Fold()
	needle := fold.String(search)
	return func(t *entity.Task) bool {
		return strings.Contains(fold.String(t.Title()), needle) ||
			strings.Contains(fold.String(t.Description()), needle)
	}
}

// Stats counts total, completed, pending and overdue tasks
func (s *ViewService) Stats(tasks []*entity.Task, today valueobject.Date) Stats {
	stats := Stats{Total: len(tasks)}
	for _, t := range tasks {
		if t.IsCompleted() {
			stats.Completed++
		}
		if t.IsOverdue(today) {
			stats.Overdue++
		}
	}
	stats.Pending = stats.Total - stats.Completed
	return stats
}

// Categories returns "All" followed by the distinct non-blank categories in
// lexicographic order
func (s *ViewService) Categories(tasks []*entity.Task) []string {
	seen := make(map[string]struct{})
	var names []string
	for _, t := range tasks {
		c := t.Category()
		if strings.TrimSpace(c) == "" {
			continue
		}
		if _, ok := seen[c]; ok {
			continue
		}
		seen[c] = struct{}{}
		names = append(names, c)
	}
	sort.Strings(names)
	return append([]string{AllCategories}, names...)
}
