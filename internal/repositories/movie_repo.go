package repositories

import (
	"errors"

	"kino/internal/models"
)

// ErrMovieNotFound is returned when no movie matches the given ID.
var ErrMovieNotFound = errors.New("movie not found")

// MovieRepository defines the interface for movie data access. Comments are
// embedded in the movie, so comment operations go through this repository too.
type MovieRepository interface {
	GetAll() ([]models.Movie, error)
	GetByID(id string) (*models.Movie, error)
	Create(movie *models.Movie) error
	// Update writes the movie's scalar fields only. The embedded comment
	// list and the version counter belong to AppendComment; an update must
	// not overwrite a comment appended after the caller read the movie.
	Update(movie *models.Movie) error
	Delete(id string) error
	// AppendComment atomically appends a comment to the end of the movie's
	// comment list and bumps the movie version. Concurrent appends to the
	// same movie must both survive.
	AppendComment(movieID string, comment models.Comment) (*models.Movie, error)
}
