package repositories

import (
	"errors"
	"fmt"

	"kino/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GORMMovieRepository is a GORM implementation of MovieRepository.
type GORMMovieRepository struct {
	db *gorm.DB
}

// NewGORMMovieRepository creates a new instance of GORMMovieRepository.
func NewGORMMovieRepository(db *gorm.DB) *GORMMovieRepository {
	return &GORMMovieRepository{
		db: db,
	}
}

// GetAll retrieves all movies, each with its embedded comments.
func (r *GORMMovieRepository) GetAll() ([]models.Movie, error) {
	var movies []models.Movie
	if err := r.db.Find(&movies).Error; err != nil {
		return nil, fmt.Errorf("failed to get all movies: %w", err)
	}
	return movies, nil
}

// GetByID retrieves a single movie by its ID.
func (r *GORMMovieRepository) GetByID(id string) (*models.Movie, error) {
	var movie models.Movie
	if err := r.db.First(&movie, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("movie with ID %s: %w", id, ErrMovieNotFound)
		}
		return nil, fmt.Errorf("failed to get movie by ID %s: %w", id, err)
	}
	return &movie, nil
}

// Create creates a new movie in the database.
func (r *GORMMovieRepository) Create(movie *models.Movie) error {
	if movie.ID == "" {
		movie.ID = uuid.New().String()
	}
	if movie.Comments == nil {
		movie.Comments = []models.Comment{}
	}
	if err := r.db.Create(movie).Error; err != nil {
		return fmt.Errorf("failed to create movie: %w", err)
	}
	return nil
}

// Update writes the movie's scalar fields. The comment list and version
// column are never written here: the caller's copy of them may be stale, and
// writing them back would wipe out a comment appended since the caller read
// the movie. Appends own those columns.
func (r *GORMMovieRepository) Update(movie *models.Movie) error {
	res := r.db.Model(movie).
		Select("Title", "Director", "Year", "Description", "Genre").
		Updates(movie)
	if res.Error != nil {
		return fmt.Errorf("failed to update movie: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		// GORM's Updates doesn't return ErrRecordNotFound when nothing
		// matched, so we check RowsAffected.
		return fmt.Errorf("movie with ID %s: %w", movie.ID, ErrMovieNotFound)
	}
	return nil
}

// Delete deletes a movie by its ID. The embedded comments live in the movie
// row, so they go with it.
func (r *GORMMovieRepository) Delete(id string) error {
	res := r.db.Delete(&models.Movie{}, "id = ?", id)
	if res.Error != nil {
		return fmt.Errorf("failed to delete movie: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("movie with ID %s: %w", id, ErrMovieNotFound)
	}
	return nil
}

// AppendComment appends a comment to the movie's comment list inside a
// transaction holding a row lock, so two concurrent appends cannot read the
// same list and overwrite each other. The movie version is bumped with every
// append.
func (r *GORMMovieRepository) AppendComment(movieID string, comment models.Comment) (*models.Movie, error) {
	var movie models.Movie
	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&movie, "id = ?", movieID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("movie with ID %s: %w", movieID, ErrMovieNotFound)
			}
			return fmt.Errorf("failed to get movie by ID %s: %w", movieID, err)
		}
		movie.Comments = append(movie.Comments, comment)
		movie.Version++
		if err := tx.Save(&movie).Error; err != nil {
			return fmt.Errorf("failed to append comment to movie %s: %w", movieID, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &movie, nil
}
