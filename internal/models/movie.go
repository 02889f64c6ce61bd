package models

import "gorm.io/gorm"

// Comment is a viewer comment embedded in its movie. It references the
// authoring user but does not own it; comments live and die with the movie.
type Comment struct {
	ID      string `json:"id"`
	UserID  string `json:"userId"`
	Comment string `json:"comment"`
}

// Movie represents a catalog entry. Comments are stored inside the movie row
// as a JSON column so a movie and its comments form a single document:
// deleting the movie removes them inherently, and appending a comment is a
// single-row write.
type Movie struct {
	ID          string    `json:"id" gorm:"primaryKey;type:varchar(36)" validate:"omitempty,uuid"`
	Title       string    `json:"title" validate:"required"`
	Director    string    `json:"director" validate:"required"`
	Year        int       `json:"year" validate:"required"`
	Description string    `json:"description" validate:"required"`
	Genre       string    `json:"genre" validate:"required"`
	Comments    []Comment `json:"comments" gorm:"serializer:json"`
	Version     int       `json:"-" gorm:"not null;default:0"` // bumped on each comment append
	gorm.Model            // Embed gorm.Model for CreatedAt, UpdatedAt, DeletedAt
}
