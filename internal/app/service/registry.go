package service

import (
	"sync"

	"github.com/Ganderlu/taskmate/internal/core/domain"
	"github.com/Ganderlu/taskmate/internal/core/ports"
)

// Sessions is the per-principal service set. Task and team services
// hold view state (caches, live subscriptions), so there is exactly one
// of each per principal for the life of the process.
type Sessions struct {
	Tasks      *TaskService
	Teams      *TeamService
	Categories *CategoryService
	Stats      *StatsService
}

// Registry hands out the service set for a session, constructing it on
// first sight of the principal. Repositories and the change bus are
// shared; view state is not.
type Registry struct {
	tasks      ports.TaskRepository
	teams      ports.TeamRepository
	members    ports.MemberRepository
	categories ports.CategoryRepository
	bus        ports.ChangeBus

	mu       sync.Mutex
	sessions map[string]*Sessions
}

func NewRegistry(
	tasks ports.TaskRepository,
	teams ports.TeamRepository,
	members ports.MemberRepository,
	categories ports.CategoryRepository,
	bus ports.ChangeBus,
) *Registry {
	return &Registry{
		tasks:      tasks,
		teams:      teams,
		members:    members,
		categories: categories,
		bus:        bus,
		sessions:   make(map[string]*Sessions),
	}
}

func (r *Registry) ForSession(session domain.Session) *Sessions {
	r.mu.Lock()
	defer r.mu.Unlock()

	if existing, ok := r.sessions[session.UserID]; ok {
		return existing
	}

	categories := NewCategoryService(session, r.categories)
	set := &Sessions{
		Tasks:      NewTaskService(session, r.tasks),
		Teams:      NewTeamService(session, r.teams, r.members, r.bus),
		Categories: categories,
		Stats:      NewStatsService(session, r.tasks, categories),
	}
	r.sessions[session.UserID] = set
	return set
}
