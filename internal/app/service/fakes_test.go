package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/Ganderlu/taskmate/internal/core/domain"
	"github.com/Ganderlu/taskmate/internal/core/ports"
)

// In-memory repositories with per-call failure injection. They keep the
// store-side invariants (soft delete, id assignment) so service tests
// exercise real state transitions instead of canned returns.

type fakeTaskRepo struct {
	mu     sync.Mutex
	seq    int
	tasks  map[string]domain.Task
	failOn map[string]error
}

var _ ports.TaskRepository = (*fakeTaskRepo)(nil)

func newFakeTaskRepo() *fakeTaskRepo {
	return &fakeTaskRepo{tasks: make(map[string]domain.Task), failOn: make(map[string]error)}
}

func (r *fakeTaskRepo) fail(op string, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.failOn[op] = err
}

func (r *fakeTaskRepo) failure(op string) error {
	if err, ok := r.failOn[op]; ok {
		return err
	}
	return nil
}

func (r *fakeTaskRepo) Create(_ context.Context, ownerID string, input domain.CreateTaskInput) (domain.Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.failure("create"); err != nil {
		return domain.Task{}, err
	}

	r.seq++
	now := time.Now().UTC().Truncate(time.Second)
	task := domain.Task{
		ID:          fmt.Sprintf("task-%d", r.seq),
		OwnerID:     ownerID,
		Title:       input.Title,
		Description: input.Description,
		Date:        input.Date,
		StartTime:   input.StartTime,
		EndTime:     input.EndTime,
		Category:    input.Category,
		Status:      domain.TaskStatusPending,
		Priority:    input.Priority,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	r.tasks[task.ID] = task
	return task, nil
}

func (r *fakeTaskRepo) Update(_ context.Context, id string, input domain.UpdateTaskInput) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.failure("update"); err != nil {
		return err
	}

	task, ok := r.tasks[id]
	if !ok || task.Deleted {
		return domain.ErrTaskNotFound
	}
	if input.Title != nil {
		task.Title = *input.Title
	}
	if input.DescriptionSet {
		task.Description = input.Description
	}
	if input.Date != nil {
		task.Date = *input.Date
	}
	if input.StartTimeSet {
		task.StartTime = input.StartTime
	}
	if input.EndTimeSet {
		task.EndTime = input.EndTime
	}
	if input.CategorySet {
		task.Category = input.Category
	}
	if input.Status != nil {
		task.Status = *input.Status
	}
	if input.PrioritySet {
		task.Priority = input.Priority
	}
	task.UpdatedAt = time.Now().UTC().Truncate(time.Second)
	r.tasks[id] = task
	return nil
}

func (r *fakeTaskRepo) SoftDelete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.failure("softDelete"); err != nil {
		return err
	}

	task, ok := r.tasks[id]
	if !ok || task.Deleted {
		return domain.ErrTaskNotFound
	}
	task.Deleted = true
	r.tasks[id] = task
	return nil
}

func (r *fakeTaskRepo) GetByID(_ context.Context, id string) (domain.Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	task, ok := r.tasks[id]
	if !ok || task.Deleted {
		return domain.Task{}, domain.ErrTaskNotFound
	}
	return task, nil
}

func (r *fakeTaskRepo) ListForDate(_ context.Context, ownerID, date string) ([]domain.Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.failure("listForDate"); err != nil {
		return nil, err
	}

	out := make([]domain.Task, 0)
	for i := 1; i <= r.seq; i++ {
		task, ok := r.tasks[fmt.Sprintf("task-%d", i)]
		if ok && !task.Deleted && task.OwnerID == ownerID && task.Date == date {
			out = append(out, task)
		}
	}
	return out, nil
}

func (r *fakeTaskRepo) ListActive(_ context.Context, ownerID string) ([]domain.Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]domain.Task, 0)
	for i := 1; i <= r.seq; i++ {
		task, ok := r.tasks[fmt.Sprintf("task-%d", i)]
		if ok && !task.Deleted && task.OwnerID == ownerID {
			out = append(out, task)
		}
	}
	return out, nil
}

func (r *fakeTaskRepo) ListRecent(ctx context.Context, ownerID string, since time.Time, limit int) ([]domain.Task, error) {
	all, err := r.ListActive(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	out := make([]domain.Task, 0, limit)
	for i := len(all) - 1; i >= 0 && len(out) < limit; i-- {
		if all[i].CreatedAt.Before(since) {
			continue
		}
		out = append(out, all[i])
	}
	return out, nil
}

func (r *fakeTaskRepo) CountDeleted(_ context.Context, ownerID string) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	count := 0
	for _, task := range r.tasks {
		if task.Deleted && task.OwnerID == ownerID {
			count++
		}
	}
	return count, nil
}

type fakeTeamRepo struct {
	mu    sync.Mutex
	seq   int
	teams map[string]domain.Team
}

var _ ports.TeamRepository = (*fakeTeamRepo)(nil)

func newFakeTeamRepo() *fakeTeamRepo {
	return &fakeTeamRepo{teams: make(map[string]domain.Team)}
}

func (r *fakeTeamRepo) Create(_ context.Context, ownerID string, input domain.CreateTeamInput) (domain.Team, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.seq++
	team := domain.Team{
		ID:          fmt.Sprintf("team-%d", r.seq),
		OwnerID:     ownerID,
		Name:        input.Name,
		Description: input.Description,
		CreatedAt:   time.Now().UTC().Truncate(time.Second),
	}
	r.teams[team.ID] = team
	return team, nil
}

func (r *fakeTeamRepo) GetByID(_ context.Context, id string) (domain.Team, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	team, ok := r.teams[id]
	if !ok {
		return domain.Team{}, domain.ErrTeamNotFound
	}
	return team, nil
}

func (r *fakeTeamRepo) ListByOwner(_ context.Context, ownerID string) ([]domain.Team, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]domain.Team, 0)
	for i := 1; i <= r.seq; i++ {
		team, ok := r.teams[fmt.Sprintf("team-%d", i)]
		if ok && team.OwnerID == ownerID {
			out = append(out, team)
		}
	}
	return out, nil
}

type fakeMemberRepo struct {
	mu      sync.Mutex
	seq     int
	members map[string]domain.TeamMember
}

var _ ports.MemberRepository = (*fakeMemberRepo)(nil)

func newFakeMemberRepo() *fakeMemberRepo {
	return &fakeMemberRepo{members: make(map[string]domain.TeamMember)}
}

func (r *fakeMemberRepo) Create(_ context.Context, member domain.TeamMember) (domain.TeamMember, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.seq++
	member.ID = fmt.Sprintf("member-%d", r.seq)
	r.members[member.ID] = member
	return member, nil
}

func (r *fakeMemberRepo) Activate(_ context.Context, id, userID string, joinedAt time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	member, ok := r.members[id]
	if !ok {
		return domain.ErrMemberNotFound
	}
	member.Status = domain.MemberStatusActive
	member.UserID = &userID
	member.JoinedAt = &joinedAt
	r.members[id] = member
	return nil
}

func (r *fakeMemberRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.members[id]; !ok {
		return domain.ErrMemberNotFound
	}
	delete(r.members, id)
	return nil
}

func (r *fakeMemberRepo) GetByID(_ context.Context, id string) (domain.TeamMember, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	member, ok := r.members[id]
	if !ok {
		return domain.TeamMember{}, domain.ErrMemberNotFound
	}
	return member, nil
}

func (r *fakeMemberRepo) ListByTeam(_ context.Context, teamID string) ([]domain.TeamMember, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]domain.TeamMember, 0)
	for i := 1; i <= r.seq; i++ {
		member, ok := r.members[fmt.Sprintf("member-%d", i)]
		if ok && member.TeamID == teamID {
			out = append(out, member)
		}
	}
	return out, nil
}

func (r *fakeMemberRepo) CountByTeam(ctx context.Context, teamID string) (int, error) {
	members, err := r.ListByTeam(ctx, teamID)
	if err != nil {
		return 0, err
	}
	return len(members), nil
}

func (r *fakeMemberRepo) FindByTeamAndEmail(_ context.Context, teamID, email string) (domain.TeamMember, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := 1; i <= r.seq; i++ {
		member, ok := r.members[fmt.Sprintf("member-%d", i)]
		if ok && member.TeamID == teamID && member.Email == email {
			return member, nil
		}
	}
	return domain.TeamMember{}, domain.ErrMemberNotFound
}

func (r *fakeMemberRepo) ListPendingByEmail(_ context.Context, email string) ([]domain.TeamMember, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]domain.TeamMember, 0)
	for i := 1; i <= r.seq; i++ {
		member, ok := r.members[fmt.Sprintf("member-%d", i)]
		if ok && member.Email == email && member.Status == domain.MemberStatusPending {
			out = append(out, member)
		}
	}
	return out, nil
}

type fakeCategoryRepo struct {
	mu    sync.Mutex
	seq   int
	names map[string][]string
}

var _ ports.CategoryRepository = (*fakeCategoryRepo)(nil)

func newFakeCategoryRepo() *fakeCategoryRepo {
	return &fakeCategoryRepo{names: make(map[string][]string)}
}

func (r *fakeCategoryRepo) Create(_ context.Context, ownerID, name string) (domain.Category, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.seq++
	r.names[ownerID] = append(r.names[ownerID], name)
	return domain.Category{
		ID:        fmt.Sprintf("category-%d", r.seq),
		OwnerID:   ownerID,
		Name:      name,
		CreatedAt: time.Now().UTC().Truncate(time.Second),
	}, nil
}

func (r *fakeCategoryRepo) ListNames(_ context.Context, ownerID string) ([]string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, len(r.names[ownerID]))
	copy(out, r.names[ownerID])
	return out, nil
}
