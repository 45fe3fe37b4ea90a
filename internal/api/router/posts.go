package router

import (
	"net/http"
	"net/url"
	"strconv"

	"github.com/DjordjeVuckovic/posts-feed/internal/apperr"
	"github.com/DjordjeVuckovic/posts-feed/internal/domain"
	"github.com/DjordjeVuckovic/posts-feed/internal/posts"
	"github.com/labstack/echo/v4"
)

type PostsRouter struct {
	e       *echo.Echo
	service *posts.Service

	publicBase *url.URL
}

type PostsRouterOption func(*PostsRouter)

// WithPublicBaseURL makes next links point at base instead of the request's own origin.
func WithPublicBaseURL(base *url.URL) PostsRouterOption {
	return func(r *PostsRouter) {
		r.publicBase = base
	}
}

func NewPostsRouter(e *echo.Echo, service *posts.Service, opts ...PostsRouterOption) *PostsRouter {
	r := &PostsRouter{
		e:       e,
		service: service,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func (r *PostsRouter) Bind() {
	g := r.e.Group("/posts")
	g.GET("", r.listHandler)
	g.POST("", r.createHandler)
	g.POST("/random", r.generateHandler)
	g.GET("/:id", r.getHandler)
	g.PATCH("/:id", r.updateHandler)
	g.DELETE("/:id", r.deleteHandler)
}

type GenerateResponse struct {
	Created int `json:"created"`
}

// listHandler godoc
// @Summary List posts
// @Description Returns a page of posts bounded by an exclusive id cursor
// @Tags posts
// @Produce json
// @Param where__id_less_than query int false "Only posts with id less than this value"
// @Param where__id_more_than query int false "Only posts with id greater than this value"
// @Param order__createdAt query string false "Sort direction on createdAt" Enums(ASC, DESC)
// @Param take query int false "Page size"
// @Success 200 {object} pagination.CursorResult[domain.Post]
// @Failure 400 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /posts [get]
func (r *PostsRouter) listHandler(c echo.Context) error {
	result, err := r.service.Paginate(c.Request().Context(), r.listingURL(c), c.QueryParams())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, result)
}

// getHandler godoc
// @Summary Get a post
// @Tags posts
// @Produce json
// @Param id path int true "Post id"
// @Success 200 {object} domain.Post
// @Failure 404 {object} map[string]string
// @Router /posts/{id} [get]
func (r *PostsRouter) getHandler(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	post, err := r.service.Get(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, post)
}

// createHandler godoc
// @Summary Create a post
// @Tags posts
// @Accept json
// @Produce json
// @Param post body domain.NewPost true "Post to create"
// @Success 201 {object} domain.Post
// @Failure 400 {object} map[string]string
// @Router /posts [post]
func (r *PostsRouter) createHandler(c echo.Context) error {
	var body domain.NewPost
	if err := c.Bind(&body); err != nil {
		return apperr.NewValidationWrap("invalid request body", err)
	}

	post, err := r.service.Create(c.Request().Context(), body)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, post)
}

// updateHandler godoc
// @Summary Update a post
// @Tags posts
// @Accept json
// @Produce json
// @Param id path int true "Post id"
// @Param patch body domain.PostPatch true "Fields to change"
// @Success 200 {object} domain.Post
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /posts/{id} [patch]
func (r *PostsRouter) updateHandler(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	var patch domain.PostPatch
	if err := (&echo.DefaultBinder{}).BindBody(c, &patch); err != nil {
		return apperr.NewValidationWrap("invalid request body", err)
	}

	post, err := r.service.Update(c.Request().Context(), id, patch)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, post)
}

// deleteHandler godoc
// @Summary Delete a post
// @Tags posts
// @Produce json
// @Param id path int true "Post id"
// @Success 200 {integer} int
// @Failure 404 {object} map[string]string
// @Router /posts/{id} [delete]
func (r *PostsRouter) deleteHandler(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	if err := r.service.Delete(c.Request().Context(), id); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, id)
}

// generateHandler godoc
// @Summary Generate random posts
// @Tags posts
// @Produce json
// @Param author query string false "Author of the generated posts"
// @Param count query int false "Number of posts to generate"
// @Success 201 {object} GenerateResponse
// @Failure 400 {object} map[string]string
// @Router /posts/random [post]
func (r *PostsRouter) generateHandler(c echo.Context) error {
	author := c.QueryParam("author")
	if author == "" {
		author = "random"
	}

	count := 0
	if raw := c.QueryParam("count"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			return apperr.NewValidation("count must be a positive integer")
		}
		count = n
	}

	created, err := r.service.GenerateRandom(c.Request().Context(), author, count)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, GenerateResponse{Created: created})
}

// listingURL is the absolute URL of the listing endpoint without its query.
func (r *PostsRouter) listingURL(c echo.Context) *url.URL {
	req := c.Request()
	if r.publicBase != nil {
		return r.publicBase.JoinPath(req.URL.Path)
	}
	return &url.URL{
		Scheme: c.Scheme(),
		Host:   req.Host,
		Path:   req.URL.Path,
	}
}

func pathID(c echo.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return 0, apperr.NewValidationWrap("id must be an integer", err)
	}
	return id, nil
}
