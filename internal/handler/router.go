package handler

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"roomboard/internal/domain/user"
	"roomboard/internal/handler/api"
	"roomboard/internal/handler/middleware"
	"roomboard/internal/pkg/config"
)

type route struct {
	Method  string
	Path    string
	Handler gin.HandlerFunc
	Mw      []gin.HandlerFunc
}

type Handlers struct {
	Calendar  *api.CalendarHandler
	Room      *api.RoomHandler
	RoomStore *api.RoomStoreHandler
}

func NewHandlers(calendar *api.CalendarHandler, rooms *api.RoomHandler, store *api.RoomStoreHandler) Handlers {
	return Handlers{Calendar: calendar, Room: rooms, RoomStore: store}
}

func NewRouter(engine *gin.Engine, cfg config.Config, logger *slog.Logger, h Handlers, authMiddleware *middleware.AuthMiddleware, limiter *middleware.RateLimiter) error {
	if err := setupMiddleware(engine, cfg, logger, limiter); err != nil {
		return err
	}
	setupRoutes(engine, h, authMiddleware)
	return nil
}

func setupMiddleware(engine *gin.Engine, cfg config.Config, logger *slog.Logger, limiter *middleware.RateLimiter) error {
	corsMiddleware, err := middleware.NewCORSMiddleware(cfg.CORS, logger)
	if err != nil {
		return err
	}

	// Recovery must be first (outermost) to catch panics from all other middleware
	engine.Use(middleware.CustomRecovery(logger))
	engine.Use(corsMiddleware)
	engine.Use(middleware.RequestLogger(logger))
	engine.Use(middleware.ErrorHandler(logger))
	if limiter != nil {
		engine.Use(limiter.Middleware())
	}
	return nil
}

func setupRoutes(engine *gin.Engine, h Handlers, authMiddleware *middleware.AuthMiddleware) {
	engine.GET("/health", healthCheck)

	if gin.Mode() == gin.DebugMode {
		engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	admins := authMiddleware.RequireRole(user.RoleOrgAdmin, user.RoleSystemAdmin)

	apiGroup := engine.Group("/api")
	{
		public := apiGroup.Group("")
		public.Use(authMiddleware.OptionalAuth())
		addRoutes(public, []route{
			{Method: http.MethodGet, Path: "/calendar", Handler: h.Calendar.Get},
		})

		authRequired := apiGroup.Group("")
		authRequired.Use(authMiddleware.RequireAuth())
		addRoutes(authRequired, []route{
			{Method: http.MethodGet, Path: "/rooms", Handler: h.Room.List},
			{Method: http.MethodGet, Path: "/organizations", Handler: h.Room.Organizations},
		})

		store := apiGroup.Group("/room")
		store.Use(authMiddleware.RequireAuth())
		{
			addRoutes(store, []route{
				{Method: http.MethodGet, Path: "/availability", Handler: h.RoomStore.Availability},
				{Method: http.MethodGet, Path: "/available", Handler: h.RoomStore.AvailableInRange, Mw: []gin.HandlerFunc{admins}},
				{Method: http.MethodGet, Path: "/all", Handler: h.RoomStore.All,
					Mw: []gin.HandlerFunc{authMiddleware.RequireRole(user.RoleSystemAdmin)}},
				{Method: http.MethodGet, Path: "/organization", Handler: h.RoomStore.Organization,
					Mw: []gin.HandlerFunc{authMiddleware.RequireRole(user.RoleOrgAdmin)}},
				{Method: http.MethodPost, Path: "", Handler: h.RoomStore.Create, Mw: []gin.HandlerFunc{admins}},
				{Method: http.MethodPut, Path: "/:id", Handler: h.RoomStore.Update, Mw: []gin.HandlerFunc{admins}},
				{Method: http.MethodDelete, Path: "/:id", Handler: h.RoomStore.Delete, Mw: []gin.HandlerFunc{admins}},
			})
		}
	}
}

// @Summary Health check
// @Description Check if the service is healthy
// @Tags health
// @Produce json
// @Success 200 {object} map[string]string
// @Router /health [get]
func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"message": "Service is healthy",
	})
}

func addRoutes(g *gin.RouterGroup, rs []route) {
	for _, r := range rs {
		h := r.Handler
		if len(r.Mw) > 0 {
			h = chainHandlers(append(r.Mw, r.Handler)...)
		}
		switch r.Method {
		case http.MethodGet:
			g.GET(r.Path, h)
		case http.MethodPost:
			g.POST(r.Path, h)
		case http.MethodPut:
			g.PUT(r.Path, h)
		case http.MethodPatch:
			g.PATCH(r.Path, h)
		case http.MethodDelete:
			g.DELETE(r.Path, h)
		default:
			g.Any(r.Path, h)
		}
	}
}

func chainHandlers(hs ...gin.HandlerFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		for _, h := range hs {
			h(c)
			if c.IsAborted() {
				return
			}
		}
	}
}
