package handlers

import (
	"errors"
	"log"

	"kino/internal/authz"
	"kino/internal/models"
	"kino/internal/repositories"
	"kino/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// MovieHandler handles HTTP requests for the movie catalog.
type MovieHandler struct {
	service  *services.CatalogService
	policy   authz.Policy
	validate *validator.Validate
}

// NewMovieHandler creates a new MovieHandler.
func NewMovieHandler(service *services.CatalogService, policy authz.Policy) *MovieHandler {
	return &MovieHandler{
		service:  service,
		policy:   policy,
		validate: validator.New(),
	}
}

// RegisterRoutes registers the movie routes with the Fiber app. The auth
// middleware gates movie creation and comment submission; everything else is
// public.
func (h *MovieHandler) RegisterRoutes(router fiber.Router, auth fiber.Handler) {
	movies := router.Group("/movies")
	movies.Get("/", h.HandleGetMovies)
	movies.Post("/", auth, h.HandleAddMovie)
	movies.Get("/:id", h.HandleGetMovieByID)
	movies.Put("/:id", h.HandleUpdateMovie)
	movies.Delete("/:id", h.HandleDeleteMovie)
	movies.Post("/:id/comments", auth, h.HandleAddComment)
	movies.Get("/:id/comments", h.HandleGetComments)
}

// commentPayload is a comment supplied inline on movie creation.
type commentPayload struct {
	UserID  string `json:"userId"`
	Comment string `json:"comment"`
}

// createMovieRequest is the body of POST /movies. All scalar fields are
// required; comments default to an empty list.
type createMovieRequest struct {
	Title       string           `json:"title" validate:"required"`
	Director    string           `json:"director" validate:"required"`
	Year        int              `json:"year" validate:"required"`
	Description string           `json:"description" validate:"required"`
	Genre       string           `json:"genre" validate:"required"`
	Comments    []commentPayload `json:"comments"`
}

// HandleAddMovie creates a movie. The authz policy is consulted before
// anything else, so a non-admin gets Forbidden regardless of body validity.
func (h *MovieHandler) HandleAddMovie(c *fiber.Ctx) error {
	if !h.policy.Allow(authz.ManageCatalog, actorFromCtx(c)) {
		return errorResponse(c, fiber.StatusForbidden, "Only admins can add movies.", nil)
	}

	var req createMovieRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing movie request body: %v", err)
		return errorResponse(c, fiber.StatusBadRequest, "Invalid request body", nil)
	}

	if err := h.validate.Struct(req); err != nil {
		return validationErrorResponse(c, err)
	}

	movie := &models.Movie{
		Title:       req.Title,
		Director:    req.Director,
		Year:        req.Year,
		Description: req.Description,
		Genre:       req.Genre,
		Comments:    make([]models.Comment, 0, len(req.Comments)),
	}
	for _, comment := range req.Comments {
		movie.Comments = append(movie.Comments, models.Comment{
			UserID:  comment.UserID,
			Comment: comment.Comment,
		})
	}

	if err := h.service.CreateMovie(movie); err != nil {
		log.Printf("Error creating movie: %v", err)
		return errorResponse(c, fiber.StatusInternalServerError, "Server error while creating movie.", err)
	}

	return c.Status(fiber.StatusCreated).JSON(createdMovieResponse{
		Title:       movie.Title,
		Director:    movie.Director,
		Year:        movie.Year,
		Description: movie.Description,
		Genre:       movie.Genre,
		ID:          movie.ID,
		Comments:    formatComments(movie.Comments),
		V:           movie.Version,
	})
}

// HandleGetMovies retrieves all movies with their embedded comments.
func (h *MovieHandler) HandleGetMovies(c *fiber.Ctx) error {
	movies, err := h.service.GetAllMovies()
	if err != nil {
		log.Printf("Error fetching movies: %v", err)
		return errorResponse(c, fiber.StatusInternalServerError, "Server error while retrieving movies.", err)
	}

	formatted := make([]movieResponse, 0, len(movies))
	for i := range movies {
		formatted = append(formatted, formatMovie(&movies[i]))
	}
	return c.JSON(fiber.Map{
		"movies": formatted,
	})
}

// HandleGetMovieByID retrieves a single movie by its ID.
func (h *MovieHandler) HandleGetMovieByID(c *fiber.Ctx) error {
	movieID := c.Params("id")
	movie, err := h.service.GetMovieByID(movieID)
	if err != nil {
		if errors.Is(err, repositories.ErrMovieNotFound) {
			return errorResponse(c, fiber.StatusNotFound, "Movie not found.", nil)
		}
		log.Printf("Error retrieving movie %s: %v", movieID, err)
		return errorResponse(c, fiber.StatusInternalServerError, "Server error while retrieving movie.", err)
	}

	return c.JSON(formatMovie(movie))
}

// HandleUpdateMovie applies a partial or full update of the movie's scalar
// fields. The updated movie is returned wrapped in a one-element list; that
// shape is part of the external contract.
func (h *MovieHandler) HandleUpdateMovie(c *fiber.Ctx) error {
	movieID := c.Params("id")

	var update services.MovieUpdate
	if err := c.BodyParser(&update); err != nil {
		log.Printf("Error parsing movie update body: %v", err)
		return errorResponse(c, fiber.StatusBadRequest, "Invalid request body", nil)
	}

	movie, err := h.service.UpdateMovie(movieID, update)
	if err != nil {
		var validationErr *services.ValidationError
		switch {
		case errors.Is(err, repositories.ErrMovieNotFound):
			return errorResponse(c, fiber.StatusNotFound, "Movie not found.", nil)
		case errors.As(err, &validationErr):
			return errorResponse(c, fiber.StatusBadRequest, "Validation failed: "+validationErr.Error(), nil)
		}
		log.Printf("Error updating movie %s: %v", movieID, err)
		return errorResponse(c, fiber.StatusInternalServerError, "Server error while updating movie.", err)
	}

	return c.JSON(fiber.Map{
		"message":     "Movie updated successfully",
		"updateMovie": []movieResponse{formatMovie(movie)},
	})
}

// HandleDeleteMovie deletes a movie and its embedded comments.
func (h *MovieHandler) HandleDeleteMovie(c *fiber.Ctx) error {
	movieID := c.Params("id")
	if err := h.service.DeleteMovie(movieID); err != nil {
		if errors.Is(err, repositories.ErrMovieNotFound) {
			return errorResponse(c, fiber.StatusNotFound, "Movie not found.", nil)
		}
		log.Printf("Error deleting movie %s: %v", movieID, err)
		return errorResponse(c, fiber.StatusInternalServerError, "Server error while deleting movie.", err)
	}

	return c.JSON(fiber.Map{
		"message": "Movie deleted successfully",
	})
}

// HandleAddComment appends a comment to a movie on behalf of the
// authenticated user.
func (h *MovieHandler) HandleAddComment(c *fiber.Ctx) error {
	actor := actorFromCtx(c)
	if !h.policy.Allow(authz.CommentOnMovie, actor) {
		return errorResponse(c, fiber.StatusUnauthorized, "Authentication required", nil)
	}

	movieID := c.Params("id")
	var body struct {
		Comment string `json:"comment"`
	}
	if err := c.BodyParser(&body); err != nil {
		return errorResponse(c, fiber.StatusBadRequest, "Comment is required.", nil)
	}

	movie, err := h.service.AddComment(movieID, actor.UserID, body.Comment)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrCommentRequired):
			return errorResponse(c, fiber.StatusBadRequest, "Comment is required.", nil)
		case errors.Is(err, repositories.ErrMovieNotFound):
			return errorResponse(c, fiber.StatusNotFound, "Movie not found.", nil)
		}
		log.Printf("Error adding comment to movie %s: %v", movieID, err)
		return errorResponse(c, fiber.StatusInternalServerError, "Server error while adding comment.", err)
	}

	return c.JSON(fiber.Map{
		"message":      "comment added successfully",
		"updatedMovie": formatMovie(movie),
		"__v":          movie.Version,
	})
}

// HandleGetComments returns a movie's comments in insertion order.
func (h *MovieHandler) HandleGetComments(c *fiber.Ctx) error {
	movieID := c.Params("id")
	comments, err := h.service.GetComments(movieID)
	if err != nil {
		if errors.Is(err, repositories.ErrMovieNotFound) {
			return errorResponse(c, fiber.StatusNotFound, "Movie not found", nil)
		}
		log.Printf("Error retrieving comments for movie %s: %v", movieID, err)
		return errorResponse(c, fiber.StatusInternalServerError, "Server error", err)
	}

	return c.JSON(fiber.Map{
		"comments": formatComments(comments),
	})
}
