package http

import "github.com/gin-gonic/gin"

// Register mounts the terminal REST routes on r
func (h *Handlers) Register(r gin.IRouter) {
	r.GET("/", h.Root)
	r.GET("/health", h.Health)
	r.GET("/stats", h.Stats)
	r.GET("/profile", h.Profile)

	sessions := r.Group("/terminal/sessions")
	sessions.POST("", h.CreateSession)
	sessions.GET("", h.ListSessions)
	sessions.GET("/:id", h.GetSession)
	sessions.DELETE("/:id", h.DeleteSession)
	sessions.POST("/:id/exec", h.Exec)
	sessions.POST("/:id/history/:direction", h.History)
	sessions.GET("/:id/output", h.Output)
	sessions.GET("/:id/fs", h.Entries)
}
