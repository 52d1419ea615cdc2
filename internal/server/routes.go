package server

import (
	"errors"
	"strings"
	"time"

	jwtware "github.com/gofiber/contrib/jwt"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"

	"booknotes/internal/database/dto"
	"booknotes/internal/database/models"
	"booknotes/internal/database/repositories"
	"booknotes/internal/logger"
	"booknotes/internal/utils"
)

func (s *FiberServer) RegisterFiberRoutes() {
	s.App.Post("/login", s.login)
	s.App.Post("/register", s.registerUser)
	s.App.Get("/health", s.healthHandler)

	api := s.App.Group("/api/v1", jwtware.New(jwtware.Config{
		SigningKey: jwtware.SigningKey{Key: []byte(s.auth.JWTSecret)},
	}))

	api.Post("/notes", s.createNote)
	api.Get("/notes", s.getAllNotes)
	api.Get("/notes/:id", s.getSingleNote)
	api.Delete("/notes/:id", s.deleteNote)

	api.Get("/utility/books", s.getUtilityBooks)
	api.Get("/utility/notes", s.getUtilityNotes)
}

func (s *FiberServer) healthHandler(c *fiber.Ctx) error {
	return c.JSON(s.db.Health())
}

func (s *FiberServer) login(c *fiber.Ctx) error {
	credentials := dto.LoginCredentials{}
	if err := c.BodyParser(&credentials); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	user, err := s.users.GetByEmail(c.UserContext(), credentials.Email)
	if errors.Is(err, repositories.ErrNotFound) {
		return fiber.NewError(fiber.StatusUnauthorized, "invalid credentials")
	}
	if err != nil {
		return err
	}
	if !utils.CheckPasswordHash(credentials.Password, user.Password) {
		return fiber.NewError(fiber.StatusUnauthorized, "invalid credentials")
	}

	claims := jwt.MapClaims{
		"email":   user.Email,
		"utility": user.Utility,
		"exp":     time.Now().Add(s.auth.TokenTTL).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	t, err := token.SignedString([]byte(s.auth.JWTSecret))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"token": t})
}

func (s *FiberServer) registerUser(c *fiber.Ctx) error {
	req := dto.RegisterRequest{}
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	var problems []string
	if strings.TrimSpace(req.Email) == "" {
		problems = append(problems, "email can't be blank")
	}
	if req.Password == "" {
		problems = append(problems, "password can't be blank")
	}
	if !req.Utility.Valid() {
		problems = append(problems, "utility must be north or south")
	}
	if len(problems) > 0 {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{"errors": problems})
	}

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		return err
	}
	user := models.User{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     strings.TrimSpace(req.Email),
		Password:  hash,
		Utility:   req.Utility,
	}
	err = s.users.Create(c.UserContext(), &user)
	if errors.Is(err, repositories.ErrDuplicateEmail) {
		return fiber.NewError(fiber.StatusConflict, err.Error())
	}
	if err != nil {
		return err
	}

	s.log.Info("user registered", logger.String("user_id", user.ID.String()), logger.String("utility", user.Utility.String()))
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"message": "created user successfully"})
}

// currentUser loads the account named by the request's token.
func (s *FiberServer) currentUser(c *fiber.Ctx) (*models.User, error) {
	token, ok := c.Locals("user").(*jwt.Token)
	if !ok {
		return nil, fiber.ErrUnauthorized
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, fiber.ErrUnauthorized
	}
	email, ok := claims["email"].(string)
	if !ok || email == "" {
		return nil, fiber.ErrUnauthorized
	}

	user, err := s.users.GetByEmail(c.UserContext(), email)
	if errors.Is(err, repositories.ErrNotFound) {
		return nil, fiber.ErrUnauthorized
	}
	return user, err
}
