package http

import (
	"github.com/gin-gonic/gin"

	"github.com/Ganderlu/taskmate/internal/adapter/http/handlers"
	"github.com/Ganderlu/taskmate/internal/adapter/http/middleware"
	"github.com/Ganderlu/taskmate/pkg/authtoken"
)

// Handlers bundles every HTTP handler wired by RegisterRoutes. Draft
// may be nil, in which case the draft endpoint is not registered.
type Handlers struct {
	Health     *handlers.HealthHandler
	Auth       *handlers.AuthHandler
	Tasks      *handlers.TaskHandler
	Teams      *handlers.TeamHandler
	Categories *handlers.CategoryHandler
	Stats      *handlers.StatsHandler
	Draft      *handlers.DraftHandler
}

func RegisterRoutes(r *gin.Engine, tokens *authtoken.Manager, h Handlers) {
	api := r.Group("/api")
	api.Use(middleware.LanguageMiddleware())
	{
		api.GET("/health", h.Health.CheckHealth)
		api.GET("/health/report", h.Health.CheckHealthReport)
		api.POST("/auth/token", h.Auth.Token)
	}

	authed := api.Group("")
	authed.Use(middleware.SessionMiddleware(tokens))
	{
		authed.GET("/tasks", h.Tasks.ListForDate)
		authed.POST("/tasks", h.Tasks.Create)
		authed.GET("/tasks/:id", h.Tasks.Get)
		authed.PATCH("/tasks/:id", h.Tasks.Update)
		authed.POST("/tasks/:id/toggle", h.Tasks.Toggle)
		authed.POST("/tasks/:id/duplicate", h.Tasks.Duplicate)
		authed.DELETE("/tasks/:id", h.Tasks.Delete)

		authed.GET("/categories", h.Categories.List)
		authed.POST("/categories", h.Categories.Add)

		authed.POST("/teams", h.Teams.Create)
		authed.GET("/teams", h.Teams.List)
		authed.GET("/teams/:id/members", h.Teams.Members)
		authed.GET("/teams/:id/members/feed", h.Teams.MembersFeed)
		authed.POST("/teams/:id/invites", h.Teams.Invite)
		authed.GET("/invites", h.Teams.PendingInvites)
		authed.GET("/invites/feed", h.Teams.InvitesFeed)
		authed.POST("/invites/:id/accept", h.Teams.Accept)
		authed.POST("/invites/:id/decline", h.Teams.Decline)
		authed.DELETE("/members/:id", h.Teams.Remove)

		authed.GET("/stats/dashboard", h.Stats.Dashboard)
		authed.GET("/stats/projects", h.Stats.Projects)

		if h.Draft != nil {
			authed.POST("/ai/task-draft", h.Draft.Extract)
		}
	}
}
