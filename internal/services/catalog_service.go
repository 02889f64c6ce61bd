package services

import (
	"errors"
	"fmt"
	"log"

	"kino/internal/models"
	"kino/internal/repositories"

	"github.com/google/uuid"
)

// ErrCommentRequired is returned when a comment submission has no text.
var ErrCommentRequired = errors.New("comment is required")

// ValidationError reports a required movie field that is missing after an
// update merge.
type ValidationError struct {
	Field string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("field '%s' is required", e.Field)
}

// EventPublisher publishes catalog events to a message broker. A nil
// publisher disables eventing.
type EventPublisher interface {
	PublishCatalogEvent(event string, payload map[string]interface{}) error
}

// MovieUpdate carries the fields of a partial movie update. Nil pointers mean
// "leave unchanged".
type MovieUpdate struct {
	Title       *string `json:"title"`
	Director    *string `json:"director"`
	Year        *int    `json:"year"`
	Description *string `json:"description"`
	Genre       *string `json:"genre"`
}

// CatalogService handles business logic for the movie catalog and its
// embedded comments.
type CatalogService struct {
	movieRepo repositories.MovieRepository
	events    EventPublisher
}

// NewCatalogService creates a new CatalogService.
func NewCatalogService(movieRepo repositories.MovieRepository, events EventPublisher) *CatalogService {
	return &CatalogService{
		movieRepo: movieRepo,
		events:    events,
	}
}

// GetAllMovies retrieves all movies with their embedded comments.
func (s *CatalogService) GetAllMovies() ([]models.Movie, error) {
	return s.movieRepo.GetAll()
}

// GetMovieByID retrieves a single movie by its ID.
func (s *CatalogService) GetMovieByID(id string) (*models.Movie, error) {
	return s.movieRepo.GetByID(id)
}

// CreateMovie stores a new movie. Comments supplied at creation get fresh IDs;
// an absent comment list defaults to empty. Field presence is validated at the
// handler; admin gating happens there too, via the authz policy.
func (s *CatalogService) CreateMovie(movie *models.Movie) error {
	for i := range movie.Comments {
		if movie.Comments[i].ID == "" {
			movie.Comments[i].ID = uuid.New().String()
		}
	}

	if err := s.movieRepo.Create(movie); err != nil {
		return err
	}

	s.publish("movie.created", map[string]interface{}{
		"movieID": movie.ID,
		"title":   movie.Title,
	})
	return nil
}

// UpdateMovie applies a partial or full replacement of the movie's scalar
// fields and re-runs the same required-field validation as create against the
// merged state.
func (s *CatalogService) UpdateMovie(id string, update MovieUpdate) (*models.Movie, error) {
	movie, err := s.movieRepo.GetByID(id)
	if err != nil {
		return nil, err
	}

	if update.Title != nil {
		movie.Title = *update.Title
	}
	if update.Director != nil {
		movie.Director = *update.Director
	}
	if update.Year != nil {
		movie.Year = *update.Year
	}
	if update.Description != nil {
		movie.Description = *update.Description
	}
	if update.Genre != nil {
		movie.Genre = *update.Genre
	}

	if err := validateMovieFields(movie); err != nil {
		return nil, err
	}

	if err := s.movieRepo.Update(movie); err != nil {
		return nil, err
	}
	return movie, nil
}

// DeleteMovie removes a movie and its embedded comments as one operation.
func (s *CatalogService) DeleteMovie(id string) error {
	if err := s.movieRepo.Delete(id); err != nil {
		return err
	}

	s.publish("movie.deleted", map[string]interface{}{
		"movieID": id,
	})
	return nil
}

// AddComment appends a comment with a freshly generated ID to the end of the
// movie's comment list and returns the updated movie.
func (s *CatalogService) AddComment(movieID, userID, commentText string) (*models.Movie, error) {
	if commentText == "" {
		return nil, ErrCommentRequired
	}

	comment := models.Comment{
		ID:      uuid.New().String(),
		UserID:  userID,
		Comment: commentText,
	}
	movie, err := s.movieRepo.AppendComment(movieID, comment)
	if err != nil {
		return nil, err
	}

	s.publish("movie.comment_added", map[string]interface{}{
		"movieID":   movieID,
		"commentID": comment.ID,
		"userID":    userID,
	})
	return movie, nil
}

// GetComments returns the movie's comments in insertion order.
func (s *CatalogService) GetComments(movieID string) ([]models.Comment, error) {
	movie, err := s.movieRepo.GetByID(movieID)
	if err != nil {
		return nil, err
	}
	return movie.Comments, nil
}

// publish sends a catalog event if a publisher is configured. Event delivery
// is best-effort; a failed publish never fails the request.
func (s *CatalogService) publish(event string, payload map[string]interface{}) {
	if s.events == nil {
		return
	}
	if err := s.events.PublishCatalogEvent(event, payload); err != nil {
		log.Printf("Warning: Failed to publish %s event: %v", event, err)
	}
}

// validateMovieFields re-runs create's required-field checks against a merged
// movie state.
func validateMovieFields(movie *models.Movie) error {
	switch {
	case movie.Title == "":
		return &ValidationError{Field: "title"}
	case movie.Director == "":
		return &ValidationError{Field: "director"}
	case movie.Year == 0:
		return &ValidationError{Field: "year"}
	case movie.Description == "":
		return &ValidationError{Field: "description"}
	case movie.Genre == "":
		return &ValidationError{Field: "genre"}
	}
	return nil
}
