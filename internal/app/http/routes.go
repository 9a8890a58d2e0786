package routes

import (
	authapi "roteiro-backend/internal/api/auth"
	calendarioapi "roteiro-backend/internal/api/calendario"
	checklistsapi "roteiro-backend/internal/api/checklists"
	equipamentosapi "roteiro-backend/internal/api/equipamentos"
	"roteiro-backend/internal/api/gcal"
	roteirosapi "roteiro-backend/internal/api/roteiros"
	tagsapi "roteiro-backend/internal/api/tags"
	"roteiro-backend/internal/api/uploads"
	"roteiro-backend/internal/api/users"
	"roteiro-backend/internal/app/http/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	public := r.Group("/")
	public.Use(middleware.SanitizeInputMiddleware())

	public.POST("/register", authapi.Register)
	public.POST("/login", authapi.Login)

	// Authenticated
	auth := r.Group("/")
	auth.Use(middleware.AuthMiddleware(), middleware.SanitizeInputMiddleware())

	auth.GET("/users/me", users.GetCurrentUser)
	auth.PUT("/users/me", users.UpdateProfile)
	auth.GET("/users", users.ListUsers)
	auth.GET("/users/:id", users.GetUserByID)
	auth.POST("/users", users.CreateUser)
	auth.PUT("/users/:id", users.UpdateUserByID)

	auth.POST("/upload/logo", uploads.UploadLogo)

	auth.POST("/tags", tagsapi.CreateTag)
	auth.GET("/tags", tagsapi.GetAllTags)
	auth.GET("/tags/:id", tagsapi.GetTagByID)
	auth.PUT("/tags/:id", tagsapi.UpdateTag)
	auth.DELETE("/tags/:id", tagsapi.DeleteTag)

	auth.POST("/roteiros", roteirosapi.CreateRoteiro)
	auth.GET("/roteiros", roteirosapi.GetAllRoteiros)
	auth.GET("/roteiros/:id", roteirosapi.GetRoteiroByID)
	auth.PUT("/roteiros/:id", roteirosapi.UpdateRoteiro)
	auth.DELETE("/roteiros/:id", roteirosapi.DeleteRoteiro)
	auth.GET("/roteiros/:id/export-pdf", roteirosapi.ExportRoteiroPDF)

	auth.POST("/roteiros/:id/cenas", roteirosapi.AddCena)
	auth.GET("/roteiros/:id/cenas", roteirosapi.GetCenas)
	auth.GET("/roteiros/:id/cenas/:cenaId", roteirosapi.GetCenaByID)
	auth.PUT("/roteiros/:id/cenas/sync", roteirosapi.SyncCenas)
	auth.PUT("/roteiros/:id/cenas/reorder", roteirosapi.ReorderCenas)
	auth.PUT("/roteiros/:id/cenas/:cenaId", roteirosapi.UpdateCena)
	auth.DELETE("/roteiros/:id/cenas/:cenaId", roteirosapi.DeleteCena)

	auth.POST("/eventos", calendarioapi.CreateEvento)
	auth.GET("/eventos", calendarioapi.GetAllEventos)
	auth.GET("/eventos/dropdown", calendarioapi.GetEventosDropdown)
	auth.GET("/eventos/:id", calendarioapi.GetEventoByID)
	auth.PUT("/eventos/:id", calendarioapi.UpdateEvento)
	auth.DELETE("/eventos/:id", calendarioapi.DeleteEvento)

	auth.POST("/equipamentos", equipamentosapi.CreateEquipamento)
	auth.GET("/equipamentos", equipamentosapi.GetAllEquipamentos)
	auth.GET("/equipamentos/:id", equipamentosapi.GetEquipamentoByID)
	auth.PUT("/equipamentos/:id", equipamentosapi.UpdateEquipamento)
	auth.DELETE("/equipamentos/:id", equipamentosapi.DeleteEquipamento)

	auth.POST("/checklists", checklistsapi.CreateChecklist)
	auth.GET("/checklists", checklistsapi.GetAllChecklists)
	auth.GET("/checklists/:id", checklistsapi.GetChecklistByID)
	auth.PUT("/checklists/:id", checklistsapi.UpdateChecklist)
	auth.DELETE("/checklists/:id", checklistsapi.DeleteChecklist)

	auth.GET("/google-calendar/events", gcal.GetGoogleCalendarEvents)
}
