package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/anonto42/blogcms/internal/middleware"
	"github.com/anonto42/blogcms/internal/models"
	"github.com/anonto42/blogcms/internal/repositories"
	"github.com/anonto42/blogcms/validators"
	"github.com/labstack/echo/v4"
)

// PostHandler handles HTTP requests related to posts
type PostHandler struct {
	postRepository repositories.PostRepository
	formTokens     *middleware.FormTokenSigner
	now            func() time.Time
}

// NewPostHandler creates a new PostHandler
func NewPostHandler(postRepo repositories.PostRepository, formTokens *middleware.FormTokenSigner) *PostHandler {
	return &PostHandler{
		postRepository: postRepo,
		formTokens:     formTokens,
		now:            time.Now,
	}
}

// RegisterPostRoutes registers post-related routes
func (h *PostHandler) RegisterPostRoutes(e *echo.Echo) {
	e.GET("/", h.GetAllPosts)
	e.GET("/post/:id", h.ShowPost)
	e.GET("/delete/:id", h.DeletePost)

	formMethods := []string{http.MethodGet, http.MethodPost}
	e.Match(formMethods, "/new-post", h.NewPost)
	e.Match(formMethods, "/edit-post/:id", h.EditPost)
}

// GetAllPosts renders the list of every post
func (h *PostHandler) GetAllPosts(c echo.Context) error {
	posts, err := h.postRepository.GetAllPosts(c.Request().Context())
	if err != nil {
		return err
	}
	return c.Render(http.StatusOK, "index.html", echo.Map{"posts": posts})
}

// ShowPost renders a single post
func (h *PostHandler) ShowPost(c echo.Context) error {
	post, err := h.findPost(c)
	if err != nil {
		return err
	}
	return c.Render(http.StatusOK, "post.html", echo.Map{"post": post})
}

// NewPost renders the empty form on GET and creates a post on POST
func (h *PostHandler) NewPost(c echo.Context) error {
	var form models.PostForm
	if c.Request().Method != http.MethodPost {
		return h.renderForm(c, form, validators.FieldErrors{}, 0)
	}

	fields, fieldErrors, err := h.bindForm(c, &form)
	if err != nil {
		return err
	}
	if fieldErrors != nil {
		return h.renderForm(c, form, fieldErrors, 0)
	}

	post := models.NewPost(fields, h.now())
	if err := h.postRepository.CreatePost(c.Request().Context(), post); err != nil {
		if errors.Is(err, repositories.ErrDuplicateTitle) {
			return h.renderForm(c, form, duplicateTitle(), 0)
		}
		return err
	}

	return c.Redirect(http.StatusFound, "/")
}

// EditPost renders the pre-populated form on GET and updates the post on POST
func (h *PostHandler) EditPost(c echo.Context) error {
	post, err := h.findPost(c)
	if err != nil {
		return err
	}
	if c.Request().Method != http.MethodPost {
		return h.renderForm(c, models.PostFormFrom(post), validators.FieldErrors{}, post.ID)
	}

	var form models.PostForm
	fields, fieldErrors, err := h.bindForm(c, &form)
	if err != nil {
		return err
	}
	if fieldErrors != nil {
		return h.renderForm(c, form, fieldErrors, post.ID)
	}

	if err := h.postRepository.UpdatePost(c.Request().Context(), post.ID, fields); err != nil {
		switch {
		case errors.Is(err, repositories.ErrDuplicateTitle):
			return h.renderForm(c, form, duplicateTitle(), post.ID)
		case errors.Is(err, repositories.ErrPostNotFound):
			return echo.NewHTTPError(http.StatusNotFound, "Post not found")
		}
		return err
	}

	return c.Redirect(http.StatusFound, "/post/"+strconv.FormatUint(uint64(post.ID), 10))
}

// DeletePost deletes a post and returns to the list
func (h *PostHandler) DeletePost(c echo.Context) error {
	id, err := postID(c)
	if err != nil {
		return err
	}

	if err := h.postRepository.DeletePost(c.Request().Context(), id); err != nil {
		if errors.Is(err, repositories.ErrPostNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Post not found")
		}
		return err
	}

	return c.Redirect(http.StatusFound, "/")
}

func (h *PostHandler) findPost(c echo.Context) (*models.Post, error) {
	id, err := postID(c)
	if err != nil {
		return nil, err
	}

	post, err := h.postRepository.GetPostByID(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, repositories.ErrPostNotFound) {
			return nil, echo.NewHTTPError(http.StatusNotFound, "Post not found")
		}
		return nil, err
	}
	return post, nil
}

// bindForm binds and validates the submitted form, including its token.
// Field errors are returned separately from failures that should end the request.
func (h *PostHandler) bindForm(c echo.Context, form *models.PostForm) (models.PostFields, validators.FieldErrors, error) {
	if err := c.Bind(form); err != nil {
		return models.PostFields{}, nil, echo.NewHTTPError(http.StatusBadRequest, "Invalid form submission")
	}
	form.Normalize()

	fieldErrors := validators.FieldErrors{}
	if err := c.Validate(form); err != nil {
		if !errors.As(err, &fieldErrors) {
			return models.PostFields{}, nil, err
		}
	}

	// A bad token fails the form like any other field.
	token := c.FormValue(middleware.FormTokenField)
	switch {
	case token == "":
		fieldErrors.Add(middleware.FormTokenField, "The CSRF token is missing.")
	case h.formTokens.Verify(token, c.Request().URL.Path) != nil:
		fieldErrors.Add(middleware.FormTokenField, "The CSRF token is invalid.")
	}

	if len(fieldErrors) > 0 {
		return models.PostFields{}, fieldErrors, nil
	}
	return form.Fields(), nil, nil
}

func (h *PostHandler) renderForm(c echo.Context, form models.PostForm, fieldErrors validators.FieldErrors, id uint) error {
	action := c.Request().URL.Path
	token, err := h.formTokens.Issue(action)
	if err != nil {
		return err
	}

	data := echo.Map{
		"form":       form,
		"errors":     fieldErrors,
		"action":     action,
		"csrf_token": token,
	}
	if id != 0 {
		data["id"] = id
	}
	return c.Render(http.StatusOK, "make-post.html", data)
}

func duplicateTitle() validators.FieldErrors {
	fieldErrors := validators.FieldErrors{}
	fieldErrors.Add("title", repositories.ErrDuplicateTitle.Error())
	return fieldErrors
}

// postID parses the :id path parameter. Anything that is not a
// positive integer cannot name a post, so it is reported as not found.
func postID(c echo.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil || id == 0 {
		return 0, echo.NewHTTPError(http.StatusNotFound, "Post not found")
	}
	return uint(id), nil
}
