package server

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/favicon"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/pprof"

	"booknotes/internal/config"
	"booknotes/internal/database"
	"booknotes/internal/database/repositories"
	"booknotes/internal/logger"
	"booknotes/internal/partner"
)

const maxPageSize = 100

type FiberServer struct {
	*fiber.App

	db       database.Service
	users    repositories.UserRepository
	notes    repositories.NoteRepository
	partners *partner.Registry
	auth     config.AuthConfig
	log      logger.Logger
}

// Deps are the collaborators the HTTP layer delegates to.
type Deps struct {
	DB       database.Service
	Users    repositories.UserRepository
	Notes    repositories.NoteRepository
	Partners *partner.Registry
	Logger   logger.Logger
}

func New(cfg *config.Config, deps Deps) *FiberServer {
	server := &FiberServer{
		db:       deps.DB,
		users:    deps.Users,
		notes:    deps.Notes,
		partners: deps.Partners,
		auth:     cfg.Auth,
		log:      deps.Logger,
	}
	server.App = fiber.New(fiber.Config{
		ServerHeader: "booknotes",
		AppName:      "booknotes",
		ErrorHandler: server.errorHandler,
	})

	server.App.Use(favicon.New())
	server.App.Use(cors.New(cors.Config{
		AllowOrigins: strings.Join(cfg.Server.CORSOrigins, ", "),
		AllowHeaders: "Origin, Content-Type, Accept, Authorization,X-Requested-With",
		AllowMethods: "GET,POST,DELETE,OPTIONS",
		MaxAge:       3600,
	}))
	server.App.Use(fiberlogger.New())
	if cfg.Debug {
		server.App.Use(pprof.New())
	}

	server.RegisterFiberRoutes()
	return server
}
