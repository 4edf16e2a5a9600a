package tests

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/Ganderlu/taskmate/internal/adapter/feed"
	httpadapter "github.com/Ganderlu/taskmate/internal/adapter/http"
	"github.com/Ganderlu/taskmate/internal/adapter/http/handlers"
	"github.com/Ganderlu/taskmate/internal/app/service"
	"github.com/Ganderlu/taskmate/internal/core/domain"
	"github.com/Ganderlu/taskmate/internal/core/ports"
	"github.com/Ganderlu/taskmate/pkg/authtoken"
	"github.com/Ganderlu/taskmate/pkg/translator"
)

// fixture wires the real router, services and token manager over
// in-memory repositories so handler tests exercise the same paths as a
// running server, minus mysql and redis.
type fixture struct {
	router  *gin.Engine
	tokens  *authtoken.Manager
	tasks   *memTaskRepo
	teams   *memTeamRepo
	members *memMemberRepo
	bus     *feed.MemoryBus
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	tasks := newMemTaskRepo()
	teams := newMemTeamRepo()
	members := newMemMemberRepo()
	categories := newMemCategoryRepo()
	bus := feed.NewMemoryBus()

	registry := service.NewRegistry(tasks, teams, members, categories, bus)
	tokens := authtoken.NewManager("handler-test-secret", time.Hour)

	router := gin.New()
	httpadapter.RegisterRoutes(router, tokens, httpadapter.Handlers{
		Health:     handlers.NewHealthHandler(nil, nil),
		Auth:       handlers.NewAuthHandler(tokens),
		Tasks:      handlers.NewTaskHandler(registry),
		Teams:      handlers.NewTeamHandler(registry),
		Categories: handlers.NewCategoryHandler(registry),
		Stats:      handlers.NewStatsHandler(registry),
	})

	return &fixture{router: router, tokens: tokens, tasks: tasks, teams: teams, members: members, bus: bus}
}

func (f *fixture) token(t *testing.T, session domain.Session) string {
	t.Helper()
	token, err := f.tokens.Generate(session.UserID, session.Email, session.DisplayName)
	require.NoError(t, err)
	return token
}

func (f *fixture) do(t *testing.T, session domain.Session, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Accept-Language", translator.LanguageEn)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if session.UserID != "" {
		req.Header.Set("Authorization", "Bearer "+f.token(t, session))
	}

	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	return out
}

func userSession() domain.Session {
	return domain.Session{UserID: "user-1", Email: "ada@example.com", DisplayName: "Ada"}
}

func guestSession() domain.Session {
	return domain.Session{UserID: "guest-1", Email: "guest@example.com", DisplayName: "Guest"}
}

// In-memory repositories. Ordering mirrors the SQL adapters: insertion
// order for lists, soft delete for tasks.

type memTaskRepo struct {
	mu    sync.Mutex
	seq   int
	order []string
	tasks map[string]domain.Task
}

var _ ports.TaskRepository = (*memTaskRepo)(nil)

func newMemTaskRepo() *memTaskRepo {
	return &memTaskRepo{tasks: make(map[string]domain.Task)}
}

func (r *memTaskRepo) Create(_ context.Context, ownerID string, input domain.CreateTaskInput) (domain.Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
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
	r.order = append(r.order, task.ID)
	r.tasks[task.ID] = task
	return task, nil
}

func (r *memTaskRepo) Update(_ context.Context, id string, input domain.UpdateTaskInput) error {
	r.mu.Lock()
	defer r.mu.Unlock()
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
	r.tasks[id] = task
	return nil
}

func (r *memTaskRepo) SoftDelete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	task, ok := r.tasks[id]
	if !ok || task.Deleted {
		return domain.ErrTaskNotFound
	}
	task.Deleted = true
	r.tasks[id] = task
	return nil
}

func (r *memTaskRepo) GetByID(_ context.Context, id string) (domain.Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	task, ok := r.tasks[id]
	if !ok || task.Deleted {
		return domain.Task{}, domain.ErrTaskNotFound
	}
	return task, nil
}

func (r *memTaskRepo) ListForDate(_ context.Context, ownerID, date string) ([]domain.Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]domain.Task, 0)
	for _, id := range r.order {
		task := r.tasks[id]
		if !task.Deleted && task.OwnerID == ownerID && task.Date == date {
			out = append(out, task)
		}
	}
	return out, nil
}

func (r *memTaskRepo) ListActive(_ context.Context, ownerID string) ([]domain.Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]domain.Task, 0)
	for _, id := range r.order {
		task := r.tasks[id]
		if !task.Deleted && task.OwnerID == ownerID {
			out = append(out, task)
		}
	}
	return out, nil
}

func (r *memTaskRepo) ListRecent(ctx context.Context, ownerID string, since time.Time, limit int) ([]domain.Task, error) {
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

func (r *memTaskRepo) CountDeleted(_ context.Context, ownerID string) (int, error) {
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

type memTeamRepo struct {
	mu    sync.Mutex
	seq   int
	order []string
	teams map[string]domain.Team
}

var _ ports.TeamRepository = (*memTeamRepo)(nil)

func newMemTeamRepo() *memTeamRepo {
	return &memTeamRepo{teams: make(map[string]domain.Team)}
}

func (r *memTeamRepo) Create(_ context.Context, ownerID string, input domain.CreateTeamInput) (domain.Team, error) {
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
	r.order = append(r.order, team.ID)
	r.teams[team.ID] = team
	return team, nil
}

func (r *memTeamRepo) GetByID(_ context.Context, id string) (domain.Team, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	team, ok := r.teams[id]
	if !ok {
		return domain.Team{}, domain.ErrTeamNotFound
	}
	return team, nil
}

func (r *memTeamRepo) ListByOwner(_ context.Context, ownerID string) ([]domain.Team, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]domain.Team, 0)
	for _, id := range r.order {
		if r.teams[id].OwnerID == ownerID {
			out = append(out, r.teams[id])
		}
	}
	return out, nil
}

type memMemberRepo struct {
	mu      sync.Mutex
	seq     int
	order   []string
	members map[string]domain.TeamMember
}

var _ ports.MemberRepository = (*memMemberRepo)(nil)

func newMemMemberRepo() *memMemberRepo {
	return &memMemberRepo{members: make(map[string]domain.TeamMember)}
}

func (r *memMemberRepo) Create(_ context.Context, member domain.TeamMember) (domain.TeamMember, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.seq++
	member.ID = fmt.Sprintf("member-%d", r.seq)
	r.order = append(r.order, member.ID)
	r.members[member.ID] = member
	return member, nil
}

func (r *memMemberRepo) Activate(_ context.Context, id, userID string, joinedAt time.Time) error {
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

func (r *memMemberRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.members[id]; !ok {
		return domain.ErrMemberNotFound
	}
	delete(r.members, id)
	return nil
}

func (r *memMemberRepo) GetByID(_ context.Context, id string) (domain.TeamMember, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	member, ok := r.members[id]
	if !ok {
		return domain.TeamMember{}, domain.ErrMemberNotFound
	}
	return member, nil
}

func (r *memMemberRepo) ListByTeam(_ context.Context, teamID string) ([]domain.TeamMember, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]domain.TeamMember, 0)
	for _, id := range r.order {
		member, ok := r.members[id]
		if ok && member.TeamID == teamID {
			out = append(out, member)
		}
	}
	return out, nil
}

func (r *memMemberRepo) CountByTeam(ctx context.Context, teamID string) (int, error) {
	members, err := r.ListByTeam(ctx, teamID)
	if err != nil {
		return 0, err
	}
	return len(members), nil
}

func (r *memMemberRepo) FindByTeamAndEmail(_ context.Context, teamID, email string) (domain.TeamMember, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, id := range r.order {
		member, ok := r.members[id]
		if ok && member.TeamID == teamID && member.Email == email {
			return member, nil
		}
	}
	return domain.TeamMember{}, domain.ErrMemberNotFound
}

func (r *memMemberRepo) ListPendingByEmail(_ context.Context, email string) ([]domain.TeamMember, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]domain.TeamMember, 0)
	for _, id := range r.order {
		member, ok := r.members[id]
		if ok && member.Email == email && member.Status == domain.MemberStatusPending {
			out = append(out, member)
		}
	}
	return out, nil
}

type memCategoryRepo struct {
	mu    sync.Mutex
	seq   int
	names map[string][]string
}

var _ ports.CategoryRepository = (*memCategoryRepo)(nil)

func newMemCategoryRepo() *memCategoryRepo {
	return &memCategoryRepo{names: make(map[string][]string)}
}

func (r *memCategoryRepo) Create(_ context.Context, ownerID, name string) (domain.Category, error) {
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

func (r *memCategoryRepo) ListNames(_ context.Context, ownerID string) ([]string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, len(r.names[ownerID]))
	copy(out, r.names[ownerID])
	return out, nil
}
