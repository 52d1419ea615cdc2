package server

import (
	"github.com/gofiber/fiber/v2"

	"booknotes/internal/logger"
	"booknotes/internal/notepolicy"
	"booknotes/internal/partner"
)

// getUtilityBooks returns the caller's partner catalogue in canonical form.
// Records the mapper rejects are logged and left out.
func (s *FiberServer) getUtilityBooks(c *fiber.Ctx) error {
	feed, utility, err := s.currentFeed(c)
	if err != nil {
		return err
	}
	resp, err := feed.Books(c.UserContext())
	if resp == nil {
		return err
	}
	if err != nil {
		s.logPartialFeed("books", utility, err)
	}
	return c.JSON(resp)
}

func (s *FiberServer) getUtilityNotes(c *fiber.Ctx) error {
	feed, utility, err := s.currentFeed(c)
	if err != nil {
		return err
	}
	resp, err := feed.Notes(c.UserContext())
	if resp == nil {
		return err
	}
	if err != nil {
		s.logPartialFeed("notes", utility, err)
	}
	return c.JSON(resp)
}

func (s *FiberServer) currentFeed(c *fiber.Ctx) (*partner.Feed, notepolicy.Utility, error) {
	currentUser, err := s.currentUser(c)
	if err != nil {
		return nil, "", err
	}
	feed, err := s.partners.Feed(currentUser.Utility)
	if err != nil {
		return nil, currentUser.Utility, err
	}
	return feed, currentUser.Utility, nil
}

func (s *FiberServer) logPartialFeed(kind string, u notepolicy.Utility, err error) {
	s.log.Warn("partner feed contained malformed records",
		logger.String("feed", kind),
		logger.String("utility", u.String()),
		logger.Error(err),
	)
}
