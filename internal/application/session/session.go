// Package session holds the single interactive session: the owned task
// collection, the view criteria, the selection and the mutating commands.
package session

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"mtodo/internal/application/dto"
	"mtodo/internal/domain/entity"
	"mtodo/internal/domain/repository"
	"mtodo/internal/domain/service"
	"mtodo/internal/domain/valueobject"
)

// MinRefLength is the shortest id prefix Resolve accepts
const MinRefLength = 4

var (
	// ErrAmbiguousTaskID is returned when an id prefix matches more than one task
	ErrAmbiguousTaskID = errors.New("task id prefix is ambiguous")
	// ErrTaskRefTooShort is returned for id prefixes shorter than MinRefLength
	ErrTaskRefTooShort = fmt.Errorf("task id prefix must be at least %d characters", MinRefLength)
	// ErrStoreNotBackedUp is returned when an unreadable store could not be
	// backed up, so saving over it is refused
	ErrStoreNotBackedUp = errors.New("unreadable store was not backed up")
)

// LoadError reports a failed load. BackupPath names the copy of the
// unreadable store taken before anything could overwrite it.
type LoadError struct {
	Err        error
	BackupPath string
}

// Error implements error
func (e *LoadError) Error() string {
	if e.BackupPath == "" {
		return e.Err.Error()
	}
	return fmt.Sprintf("%v (previous store saved to %s)", e.Err, e.BackupPath)
}

// Unwrap returns the load failure
func (e *LoadError) Unwrap() error {
	return e.Err
}

// Op names a command
type Op string

const (
	OpAdd            Op = "add"
	OpEdit           Op = "edit"
	OpDelete         Op = "delete"
	OpToggle         Op = "toggle"
	OpClearCompleted Op = "clear-completed"
)

// Change describes the outcome of a command. Warning carries a save
// failure; the in-memory mutation is kept regardless.
type Change struct {
	Op      Op
	IDs     []valueobject.TaskID
	Applied bool
	Warning error
	Version uint64
}

// Snapshot is a freshly derived, read-only view of the session
type Snapshot struct {
	Version           uint64
	Todos             []dto.TodoDTO
	Stats             dto.StatsDTO
	Categories        []string
	Criteria          service.ViewCriteria
	SelectedID        string
	CanModifySelected bool
	CanClearCompleted bool
}

// Option configures a Session
type Option func(*Session)

// WithClock replaces time.Now
func WithClock(now func() time.Time) Option {
	return func(s *Session) {
		s.now = now
	}
}

// WithDateFormat sets the layout used for display dates in DTOs
func WithDateFormat(layout string) Option {
	return func(s *Session) {
		if layout != "" {
			s.dateFormat = layout
		}
	}
}

// Session is the only writer of the task collection. It is not safe for
// concurrent use; drivers must call it from a single goroutine.
type Session struct {
	repo       repository.TodoRepository
	validation *service.ValidationService
	view       *service.ViewService
	reminders  *service.ReminderService
	logger     *log.Logger

	now        func() time.Time
	dateFormat string

	tasks    *entity.TaskList
	criteria service.ViewCriteria
	selected *valueobject.TaskID
	version  uint64

	// set while an unreadable store still needs a backup
	backupPending bool
}

// New creates a Session with an empty collection. Call Load to read the store.
func New(
	repo repository.TodoRepository,
	validation *service.ValidationService,
	view *service.ViewService,
	reminders *service.ReminderService,
	logger *log.Logger,
	opts ...Option,
) *Session {
	s := &Session{
		repo:       repo,
		validation: validation,
		view:       view,
		reminders:  reminders,
		logger:     logger,
		now:        time.Now,
		dateFormat: valueobject.DisplayLayout,
		tasks:      entity.NewTaskList(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Load replaces the collection with the stored one. On failure the store
// is backed up and the collection is left empty; the returned *LoadError
// names the backup.
func (s *Session) Load(ctx context.Context) error {
	s.tasks = entity.NewTaskList()
	s.selected = nil
	s.backupPending = false
	s.version++

	tasks, err := s.repo.Load(ctx)
	if err != nil {
		return s.loadFailed(ctx, err)
	}

	list := entity.NewTaskList()
	for _, t := range tasks {
		if err := list.Add(t); err != nil {
			return s.loadFailed(ctx, repository.NewPersistenceError("load", s.repo.Location(), err))
		}
	}
	s.tasks = list
	s.logger.Debug("loaded todos", "count", list.Len(), "location", s.repo.Location())
	return nil
}

// loadFailed backs up the store that could not be read. When the backup
// fails too, saves are withheld until a later backup succeeds.
func (s *Session) loadFailed(ctx context.Context, err error) error {
	s.logger.Warn("could not load todos, starting empty", "location", s.repo.Location(), "err", err)

	lerr := &LoadError{Err: err}
	path, berr := s.repo.Backup(ctx)
	if berr != nil {
		s.backupPending = true
		s.logger.Warn("could not back up unreadable store, saves withheld", "location", s.repo.Location(), "err", berr)
		return lerr
	}
	if path != "" {
		s.logger.Warn("backed up unreadable store", "path", path)
	}
	lerr.BackupPath = path
	return lerr
}

// Today returns the current calendar date
func (s *Session) Today() valueobject.Date {
	return valueobject.Today(s.now)
}

// Version increases on every state change
func (s *Session) Version() uint64 {
	return s.version
}

// Location describes the backing store
func (s *Session) Location() string {
	return s.repo.Location()
}

// Tasks returns the collection in insertion order
func (s *Session) Tasks() []*entity.Task {
	return s.tasks.Tasks()
}

// AddTodo appends a new task built from req
func (s *Session) AddTodo(ctx context.Context, req dto.CreateTodoRequest) (Change, error) {
	today := s.Today()
	draft := service.TaskDraft{
		Title:       req.Title,
		Description: req.Description,
		Category:    req.Category,
		DueDate:     today.AddDays(1),
		Priority:    valueobject.DefaultPriority,
		Urgent:      req.Urgent,
	}

	var parseErrs []service.FieldError
	if strings.TrimSpace(req.DueDate) != "" {
		due, err := valueobject.ParseDate(strings.TrimSpace(req.DueDate))
		if err != nil {
			parseErrs = append(parseErrs, service.FieldError{Field: "dueDate", Err: err})
		} else {
			draft.DueDate = due
		}
	}
	if req.Priority != "" {
		p, err := valueobject.ParsePriority(req.Priority)
		if err != nil {
			parseErrs = append(parseErrs, service.FieldError{Field: "priority", Err: err})
		} else {
			draft.Priority = p
		}
	}

	if err := s.validate(draft, service.ModeCreate, today, parseErrs); err != nil {
		return Change{Op: OpAdd, Version: s.version}, err
	}

	task, err := entity.NewTask(
		valueobject.NewTaskID(),
		draft.Title,
		draft.Description,
		draft.Category,
		draft.DueDate,
		draft.EffectivePriority(),
		s.now(),
	)
	if err != nil {
		return Change{Op: OpAdd, Version: s.version}, err
	}
	if err := s.tasks.Add(task); err != nil {
		return Change{Op: OpAdd, Version: s.version}, err
	}

	s.logger.Debug("added todo", "id", task.ID().Short(), "title", task.Title())
	return s.commit(ctx, OpAdd, task.ID()), nil
}

// EditTodo applies req to an existing task, keeping its id and created date.
// Past due dates are accepted.
func (s *Session) EditTodo(ctx context.Context, id valueobject.TaskID, req dto.UpdateTodoRequest) (Change, error) {
	task, err := s.tasks.Find(id)
	if err != nil {
		return Change{Op: OpEdit, Version: s.version}, err
	}

	draft := service.TaskDraft{
		Title:       task.Title(),
		Description: task.Description(),
		Category:    task.Category(),
		DueDate:     task.DueDate(),
		Priority:    task.Priority(),
		Urgent:      req.Urgent,
	}
	if req.Title != nil {
		draft.Title = *req.Title
	}
	if req.Description != nil {
		draft.Description = *req.Description
	}
	if req.Category != nil {
		draft.Category = *req.Category
	}

	var parseErrs []service.FieldError
	if req.DueDate != nil {
		raw := strings.TrimSpace(*req.DueDate)
		if raw == "" {
			draft.DueDate = valueobject.Date{}
		} else if due, err := valueobject.ParseDate(raw); err != nil {
			parseErrs = append(parseErrs, service.FieldError{Field: "dueDate", Err: err})
		} else {
			draft.DueDate = due
		}
	}
	if req.Priority != nil {
		p, err := valueobject.ParsePriority(*req.Priority)
		if err != nil {
			parseErrs = append(parseErrs, service.FieldError{Field: "priority", Err: err})
		} else {
			draft.Priority = p
		}
	}

	if err := s.validate(draft, service.ModeEdit, s.Today(), parseErrs); err != nil {
		return Change{Op: OpEdit, Version: s.version}, err
	}

	// The draft is valid, so none of these can fail.
	_ = task.UpdateTitle(draft.Title)
	_ = task.UpdateDescription(draft.Description)
	task.UpdateCategory(draft.Category)
	_ = task.UpdateDueDate(draft.DueDate)
	_ = task.UpdatePriority(draft.EffectivePriority())

	s.logger.Debug("edited todo", "id", task.ID().Short())
	return s.commit(ctx, OpEdit, task.ID()), nil
}

// DeleteTodo removes a task. An absent id is a no-op.
func (s *Session) DeleteTodo(ctx context.Context, id valueobject.TaskID) (Change, error) {
	if !s.tasks.Remove(id) {
		return Change{Op: OpDelete, Version: s.version}, nil
	}
	s.dropSelection(id)
	s.logger.Debug("deleted todo", "id", id.Short())
	return s.commit(ctx, OpDelete, id), nil
}

// ToggleComplete flips the completed flag of a task
func (s *Session) ToggleComplete(ctx context.Context, id valueobject.TaskID) (Change, error) {
	task, err := s.tasks.Find(id)
	if err != nil {
		return Change{Op: OpToggle, Version: s.version}, err
	}
	task.ToggleCompleted()
	s.logger.Debug("toggled todo", "id", id.Short(), "completed", task.IsCompleted())
	return s.commit(ctx, OpToggle, id), nil
}

// ClearCompleted removes every completed task at once. Nothing is saved
// when no task is completed.
func (s *Session) ClearCompleted(ctx context.Context) (Change, error) {
	removed := s.tasks.RemoveCompleted()
	if len(removed) == 0 {
		return Change{Op: OpClearCompleted, Version: s.version}, nil
	}

	ids := make([]valueobject.TaskID, len(removed))
	for i, t := range removed {
		ids[i] = t.ID()
		s.dropSelection(t.ID())
	}
	s.logger.Debug("cleared completed todos", "count", len(removed))
	return s.commit(ctx, OpClearCompleted, ids...), nil
}

// Backup copies the store to a timestamped sibling
func (s *Session) Backup(ctx context.Context) (string, error) {
	path, err := s.repo.Backup(ctx)
	if err != nil {
		s.logger.Warn("backup failed", "location", s.repo.Location(), "err", err)
		return "", asPersistenceError("backup", s.repo.Location(), err)
	}
	if path == "" {
		s.logger.Debug("nothing to back up", "location", s.repo.Location())
		return "", nil
	}
	s.logger.Debug("created backup", "path", path)
	return path, nil
}

// Get returns a single task as a DTO
func (s *Session) Get(id valueobject.TaskID) (dto.TodoDTO, error) {
	task, err := s.tasks.Find(id)
	if err != nil {
		return dto.TodoDTO{}, err
	}
	return dto.TodoToDTO(task, s.Today(), s.dateFormat), nil
}

// Resolve turns a full id or a unique prefix of at least MinRefLength
// characters into a task id.
func (s *Session) Resolve(ref string) (valueobject.TaskID, error) {
	ref = strings.TrimSpace(ref)
	if id, err := valueobject.ParseTaskID(ref); err == nil {
		if _, err := s.tasks.Find(id); err != nil {
			return valueobject.TaskID{}, err
		}
		return id, nil
	}
	if len(ref) < MinRefLength {
		return valueobject.TaskID{}, ErrTaskRefTooShort
	}

	var matches []valueobject.TaskID
	for _, t := range s.tasks.Tasks() {
		if t.ID().HasPrefix(ref) {
			matches = append(matches, t.ID())
		}
	}
	switch len(matches) {
	case 0:
		return valueobject.TaskID{}, fmt.Errorf("%w: %s", entity.ErrTaskNotFound, ref)
	case 1:
		return matches[0], nil
	default:
		return valueobject.TaskID{}, fmt.Errorf("%w: %s matches %d tasks", ErrAmbiguousTaskID, ref, len(matches))
	}
}

// Select marks a task as the current selection
func (s *Session) Select(id valueobject.TaskID) error {
	if _, err := s.tasks.Find(id); err != nil {
		return err
	}
	s.selected = &id
	s.version++
	return nil
}

// ClearSelection drops the current selection
func (s *Session) ClearSelection() {
	if s.selected != nil {
		s.selected = nil
		s.version++
	}
}

// SelectedID returns the selected id, if any
func (s *Session) SelectedID() (valueobject.TaskID, bool) {
	if s.selected == nil {
		return valueobject.TaskID{}, false
	}
	return *s.selected, true
}

// Selected looks up the selected task in the collection
func (s *Session) Selected() (*entity.Task, bool) {
	if s.selected == nil {
		return nil, false
	}
	task, err := s.tasks.Find(*s.selected)
	if err != nil {
		return nil, false
	}
	return task, true
}

// CanModifySelected reports whether edit, delete and toggle apply
func (s *Session) CanModifySelected() bool {
	_, ok := s.Selected()
	return ok
}

// CanClearCompleted reports whether any task is completed
func (s *Session) CanClearCompleted() bool {
	return s.tasks.CompletedCount() > 0
}

// SetSearch sets the search text
func (s *Session) SetSearch(search string) {
	if s.criteria.Search != search {
		s.criteria.Search = search
		s.version++
	}
}

// SetCategory sets the category filter. "" and "All" disable it.
func (s *Session) SetCategory(category string) {
	if s.criteria.Category != category {
		s.criteria.Category = category
		s.version++
	}
}

// SetPriorityFilter sets the priority filter. nil disables it.
func (s *Session) SetPriorityFilter(p *valueobject.Priority) {
	if p != nil {
		v := *p
		p = &v
	}
	s.criteria.Priority = p
	s.version++
}

// Criteria returns a copy of the active view criteria
func (s *Session) Criteria() service.ViewCriteria {
	c := s.criteria
	if c.Priority != nil {
		p := *c.Priority
		c.Priority = &p
	}
	return c
}

// View returns the filtered, sorted tasks for the active criteria
func (s *Session) View() []*entity.Task {
	return s.view.FilteredSortedView(s.tasks.Tasks(), s.criteria)
}

// Stats computes the collection summary
func (s *Session) Stats() service.Stats {
	return s.view.Stats(s.tasks.Tasks(), s.Today())
}

// Categories returns "All" followed by the sorted distinct categories
func (s *Session) Categories() []string {
	return s.view.Categories(s.tasks.Tasks())
}

// Snapshot derives the current view, stats and categories
func (s *Session) Snapshot() Snapshot {
	snap := Snapshot{
		Version:           s.version,
		Todos:             dto.TodosToDTOs(s.View(), s.Today(), s.dateFormat),
		Stats:             dto.StatsToDTO(s.Stats()),
		Categories:        s.Categories(),
		Criteria:          s.Criteria(),
		CanClearCompleted: s.CanClearCompleted(),
	}
	if task, ok := s.Selected(); ok {
		snap.SelectedID = task.ID().String()
		snap.CanModifySelected = true
	}
	return snap
}

// EvaluateReminders returns the reminder report for today, or nil
func (s *Session) EvaluateReminders() *service.ReminderReport {
	return s.reminders.Evaluate(s.tasks.Tasks(), s.Today())
}

func (s *Session) commit(ctx context.Context, op Op, ids ...valueobject.TaskID) Change {
	s.version++
	change := Change{Op: op, IDs: ids, Applied: true, Version: s.version}
	if s.backupPending {
		path, err := s.repo.Backup(ctx)
		if err != nil {
			change.Warning = repository.NewPersistenceError("save", s.repo.Location(), fmt.Errorf("%w: %v", ErrStoreNotBackedUp, err))
			s.logger.Warn("not saving over unreadable store, changes kept in memory", "op", op, "err", err)
			return change
		}
		s.backupPending = false
		s.logger.Warn("backed up unreadable store", "path", path)
	}
	if err := s.repo.Save(ctx, s.tasks.Tasks()); err != nil {
		change.Warning = asPersistenceError("save", s.repo.Location(), err)
		s.logger.Warn("could not save todos, changes kept in memory", "op", op, "err", err)
	}
	return change
}

func (s *Session) dropSelection(id valueobject.TaskID) {
	if s.selected != nil && s.selected.Equal(id) {
		s.selected = nil
	}
}

var fieldOrder = map[string]int{"title": 0, "dueDate": 1, "description": 2, "priority": 3}

// validate merges input parse failures with rule violations. A field that
// failed to parse is not reported again by the rules.
func (s *Session) validate(draft service.TaskDraft, mode service.ValidationMode, today valueobject.Date, parseErrs []service.FieldError) error {
	fields := append([]service.FieldError(nil), parseErrs...)

	if err := s.validation.ValidateDraft(draft, mode, today); err != nil {
		var verr *service.ValidationError
		if !errors.As(err, &verr) {
			return err
		}
		for _, f := range verr.Fields {
			if !hasField(parseErrs, f.Field) {
				fields = append(fields, f)
			}
		}
	}
	if len(fields) == 0 {
		return nil
	}
	sort.SliceStable(fields, func(i, j int) bool {
		return fieldOrder[fields[i].Field] < fieldOrder[fields[j].Field]
	})
	return &service.ValidationError{Fields: fields}
}

func hasField(fields []service.FieldError, name string) bool {
	for _, f := range fields {
		if f.Field == name {
			return true
		}
	}
	return false
}

func asPersistenceError(op, path string, err error) error {
	var perr *repository.PersistenceError
	if errors.As(err, &perr) {
		return perr
	}
	return repository.NewPersistenceError(op, path, err)
}
