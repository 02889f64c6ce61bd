package repositories

import (
	"fmt"
	"sync"

	"kino/internal/models"

	"github.com/google/uuid"
)

// MockMovieRepository is an in-memory implementation of MovieRepository.
type MockMovieRepository struct {
	movies map[string]models.Movie
	order  []string // insertion order for GetAll
	mu     sync.RWMutex
}

// NewMockMovieRepository creates a new instance of MockMovieRepository.
func NewMockMovieRepository() *MockMovieRepository {
	return &MockMovieRepository{
		movies: make(map[string]models.Movie),
	}
}

// GetAll returns all movies in insertion order.
func (r *MockMovieRepository) GetAll() ([]models.Movie, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	movieList := make([]models.Movie, 0, len(r.order))
	for _, id := range r.order {
		movieList = append(movieList, r.movies[id])
	}
	return movieList, nil
}

// GetByID returns a movie by its ID.
func (r *MockMovieRepository) GetByID(id string) (*models.Movie, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	movie, ok := r.movies[id]
	if !ok {
		return nil, fmt.Errorf("movie with ID %s: %w", id, ErrMovieNotFound)
	}
	return &movie, nil
}

// Create adds a new movie.
func (r *MockMovieRepository) Create(movie *models.Movie) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if movie.ID == "" {
		movie.ID = uuid.New().String()
	}
	if movie.Comments == nil {
		movie.Comments = []models.Comment{}
	}
	r.movies[movie.ID] = *movie
	r.order = append(r.order, movie.ID)
	return nil
}

// Update modifies an existing movie's scalar fields. The stored comment list
// and version are kept, matching the GORM implementation.
func (r *MockMovieRepository) Update(movie *models.Movie) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.movies[movie.ID]
	if !ok {
		return fmt.Errorf("movie with ID %s: %w", movie.ID, ErrMovieNotFound)
	}
	stored.Title = movie.Title
	stored.Director = movie.Director
	stored.Year = movie.Year
	stored.Description = movie.Description
	stored.Genre = movie.Genre
	r.movies[movie.ID] = stored
	return nil
}

// Delete removes a movie and its embedded comments.
func (r *MockMovieRepository) Delete(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.movies[id]; !ok {
		return fmt.Errorf("movie with ID %s: %w", id, ErrMovieNotFound)
	}
	delete(r.movies, id)
	for i, mid := range r.order {
		if mid == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return nil
}

// AppendComment appends a comment under the write lock, so concurrent appends
// are serialized and none are lost.
func (r *MockMovieRepository) AppendComment(movieID string, comment models.Comment) (*models.Movie, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	movie, ok := r.movies[movieID]
	if !ok {
		return nil, fmt.Errorf("movie with ID %s: %w", movieID, ErrMovieNotFound)
	}
	movie.Comments = append(movie.Comments, comment)
	movie.Version++
	r.movies[movieID] = movie
	return &movie, nil
}
