package handlers

import (
	"fmt"

	"kino/internal/authz"
	"kino/internal/models"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// errorResponse writes the unified error envelope: {message} for client
// errors, {message, error} for server errors.
func errorResponse(c *fiber.Ctx, status int, message string, err error) error {
	body := fiber.Map{"message": message}
	if status >= fiber.StatusInternalServerError && err != nil {
		body["error"] = err.Error()
	}
	return c.Status(status).JSON(body)
}

// validationErrorResponse writes a 400 listing the failed fields.
func validationErrorResponse(c *fiber.Ctx, err error) error {
	validationErrors := err.(validator.ValidationErrors)
	errorMessages := make(map[string]string)
	for _, e := range validationErrors {
		errorMessages[e.Field()] = fmt.Sprintf("Field '%s' failed on the '%s' tag", e.Field(), e.Tag())
	}
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"message": "Validation failed",
		"errors":  errorMessages,
	})
}

// actorFromCtx reads the identity the auth middleware stored in context
// locals. Unauthenticated requests yield a zero (anonymous) actor.
func actorFromCtx(c *fiber.Ctx) authz.Actor {
	var actor authz.Actor
	if id, ok := c.Locals("user_id").(string); ok {
		actor.UserID = id
	}
	if isAdmin, ok := c.Locals("is_admin").(bool); ok {
		actor.IsAdmin = isAdmin
	}
	return actor
}

type commentResponse struct {
	UserID  string `json:"userId"`
	Comment string `json:"comment"`
	ID      string `json:"_id"`
}

type movieResponse struct {
	ID          string            `json:"id"`
	Title       string            `json:"title"`
	Director    string            `json:"director"`
	Year        int               `json:"year"`
	Description string            `json:"description"`
	Genre       string            `json:"genre"`
	Comments    []commentResponse `json:"comments"`
}

// createdMovieResponse reproduces the creation payload with its historical
// key order: scalar fields, then _id, comments and __v. Struct field order is
// what keeps the JSON keys in that order.
type createdMovieResponse struct {
	Title       string            `json:"title"`
	Director    string            `json:"director"`
	Year        int               `json:"year"`
	Description string            `json:"description"`
	Genre       string            `json:"genre"`
	ID          string            `json:"_id"`
	Comments    []commentResponse `json:"comments"`
	V           int               `json:"__v"`
}

func formatComments(comments []models.Comment) []commentResponse {
	formatted := make([]commentResponse, 0, len(comments))
	for _, comment := range comments {
		formatted = append(formatted, commentResponse{
			UserID:  comment.UserID,
			Comment: comment.Comment,
			ID:      comment.ID,
		})
	}
	return formatted
}

func formatMovie(movie *models.Movie) movieResponse {
	return movieResponse{
		ID:          movie.ID,
		Title:       movie.Title,
		Director:    movie.Director,
		Year:        movie.Year,
		Description: movie.Description,
		Genre:       movie.Genre,
		Comments:    formatComments(movie.Comments),
	}
}
