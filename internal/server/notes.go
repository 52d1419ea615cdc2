package server

import (
	"errors"
	"fmt"
	"math"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"booknotes/internal/database/dto"
	"booknotes/internal/database/models"
	"booknotes/internal/logger"
	"booknotes/internal/notepolicy"
)

const defaultPageSize = 25

func (s *FiberServer) createNote(c *fiber.Ctx) error {
	currentUser, err := s.currentUser(c)
	if err != nil {
		return err
	}
	req := dto.CreateNoteRequest{}
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	note := models.Note{
		Title:   req.Title,
		Content: req.Content,
		Type:    req.Type,
		UserID:  currentUser.ID,
	}
	if err := notepolicy.Validate(note.Draft(), currentUser.Utility); err != nil {
		var exceeded *notepolicy.WordCountExceededError
		var invalid *notepolicy.InvalidNoteError
		if errors.As(err, &exceeded) || errors.As(err, &invalid) {
			return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{"errors": []string{err.Error()}})
		}
		return err
	}

	if err := s.notes.Create(c.UserContext(), &note); err != nil {
		return err
	}
	s.log.Debug("note created",
		logger.String("note_id", note.ID.String()),
		logger.String("type", string(note.Type)),
		logger.String("utility", currentUser.Utility.String()),
	)
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"message": "Nota creada con éxito."})
}

func (s *FiberServer) getAllNotes(c *fiber.Ctx) error {
	currentUser, err := s.currentUser(c)
	if err != nil {
		return err
	}
	filter, err := parseNoteFilter(c)
	if err != nil {
		return err
	}
	thresholds, err := notepolicy.ThresholdsFor(currentUser.Utility)
	if err != nil {
		return err
	}

	notes, err := s.notes.List(c.UserContext(), currentUser.ID, filter)
	if err != nil {
		return err
	}
	out := make([]dto.IndexNote, len(notes))
	for i, n := range notes {
		out[i] = dto.NewIndexNote(n, thresholds)
	}
	return c.JSON(fiber.Map{"notes": out, "page": filter.Page, "page_size": filter.PageSize})
}

func (s *FiberServer) getSingleNote(c *fiber.Ctx) error {
	currentUser, err := s.currentUser(c)
	if err != nil {
		return err
	}
	uid, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid uid")
	}
	thresholds, err := notepolicy.ThresholdsFor(currentUser.Utility)
	if err != nil {
		return err
	}

	note, err := s.notes.GetByID(c.UserContext(), uid, currentUser.ID)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"note": dto.NewShowNote(*note, thresholds)})
}

func (s *FiberServer) deleteNote(c *fiber.Ctx) error {
	currentUser, err := s.currentUser(c)
	if err != nil {
		return err
	}
	uid, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid uid")
	}
	if err := s.notes.Delete(c.UserContext(), uid, currentUser.ID); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"message": "note deleted successfully"})
}

func parseNoteFilter(c *fiber.Ctx) (models.NoteFilter, error) {
	filter := models.NoteFilter{Page: 1, PageSize: defaultPageSize}

	if raw := c.Query("page_size"); raw != "" {
		size, err := strconv.Atoi(raw)
		if err != nil || size < 1 {
			return filter, fiber.NewError(fiber.StatusBadRequest, "invalid page_size "+raw)
		}
		if size > maxPageSize {
			return filter, fiber.NewError(fiber.StatusBadRequest,
				fmt.Sprintf("page_size is too long, max allowed is %d", maxPageSize))
		}
		filter.PageSize = size
	}

	if raw := c.Query("page"); raw != "" {
		page, err := strconv.Atoi(raw)
		if err != nil || page < 1 {
			return filter, fiber.NewError(fiber.StatusBadRequest, "invalid page "+raw)
		}
		// the row offset has to stay within a 32-bit integer
		if page-1 > math.MaxInt32/filter.PageSize {
			return filter, fiber.NewError(fiber.StatusBadRequest, "page is too large "+raw)
		}
		filter.Page = page
	}

	if raw := c.Query("type"); raw != "" {
		t := notepolicy.NoteType(raw)
		if !t.Valid() {
			return filter, fiber.NewError(fiber.StatusUnprocessableEntity, "invalid type "+raw)
		}
		filter.Type = t
	}

	switch c.Query("order", "desc") {
	case "desc":
	case "asc":
		filter.Ascending = true
	default:
		return filter, fiber.NewError(fiber.StatusBadRequest, "invalid order "+c.Query("order"))
	}
	return filter, nil
}
