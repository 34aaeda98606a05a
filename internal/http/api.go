package http

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"microblog/internal/repository"
	"microblog/internal/service"
	"microblog/internal/session"
)

// Handler wires HTTP routes to domain services.
type Handler struct {
	auth     service.AuthService
	posts    service.PostService
	sessions *session.Manager
	logger   *logrus.Logger
}

func NewHandler(auth service.AuthService, posts service.PostService, sessions *session.Manager, logger *logrus.Logger) *Handler {
	return &Handler{
		auth:     auth,
		posts:    posts,
		sessions: sessions,
		logger:   logger,
	}
}

func (h *Handler) RegisterRoutes(router *gin.Engine) {
	router.SetHTMLTemplate(loadTemplates())
	router.Use(h.resolveUser)

	auth := router.Group("/auth")
	{
		auth.GET("/register", h.registerForm)
		auth.POST("/register", h.register)
		auth.GET("/login", h.loginForm)
		auth.POST("/login", h.login)
		auth.GET("/logout", h.logout)
	}

	router.GET("/", h.index)
	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	router.GET("/create", h.requireAuth, h.createForm)
	router.POST("/create", h.requireAuth, h.create)
	router.GET("/:id", h.show)
	router.GET("/:id/update", h.requireAuth, h.updateForm)
	router.POST("/:id/update", h.requireAuth, h.update)
	router.POST("/:id/delete", h.requireAuth, h.delete)
}

func (h *Handler) registerForm(c *gin.Context) {
	c.HTML(http.StatusOK, "register.html", gin.H{"User": currentUser(c)})
}

func (h *Handler) register(c *gin.Context) {
	username := c.PostForm("username")
	password := c.PostForm("password")

	_, err := h.auth.Register(c.Request.Context(), username, password)
	if err != nil {
		var ve *service.ValidationError
		switch {
		case errors.As(err, &ve):
			h.flash(c, "register.html", requiredMessage(ve.Field))
		case errors.Is(err, service.ErrUserAlreadyExists):
			h.flash(c, "register.html", fmt.Sprintf("User %s is already registered.", username))
		default:
			h.internalError(c, err)
		}
		return
	}

	c.Redirect(http.StatusFound, "/auth/login")
}

func (h *Handler) loginForm(c *gin.Context) {
	c.HTML(http.StatusOK, "login.html", gin.H{"User": currentUser(c)})
}

func (h *Handler) login(c *gin.Context) {
	username := c.PostForm("username")
	password := c.PostForm("password")

	user, err := h.auth.Authenticate(c.Request.Context(), username, password)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrUnknownUsername):
			h.flash(c, "login.html", "Incorrect username.")
		case errors.Is(err, service.ErrWrongPassword):
			h.flash(c, "login.html", "Incorrect password.")
		default:
			h.internalError(c, err)
		}
		return
	}

	token, err := h.sessions.Issue(user.ID)
	if err != nil {
		h.internalError(c, err)
		return
	}

	// drop whatever session state the client carried before binding the new one
	h.sessions.ClearCookie(c.Writer)
	h.sessions.SetCookie(c.Writer, token)
	c.Redirect(http.StatusFound, "/")
}

func (h *Handler) logout(c *gin.Context) {
	h.sessions.ClearCookie(c.Writer)
	c.Redirect(http.StatusFound, "/")
}

func (h *Handler) index(c *gin.Context) {
	posts, err := h.posts.List(c.Request.Context())
	if err != nil {
		h.internalError(c, err)
		return
	}
	c.HTML(http.StatusOK, "index.html", gin.H{
		"Posts": posts,
		"User":  currentUser(c),
	})
}

func (h *Handler) createForm(c *gin.Context) {
	c.HTML(http.StatusOK, "create.html", gin.H{"User": currentUser(c)})
}

func (h *Handler) create(c *gin.Context) {
	title := c.PostForm("title")
	body := c.PostForm("body")

	if _, err := h.posts.Create(c.Request.Context(), currentUser(c), title, body); err != nil {
		var ve *service.ValidationError
		if errors.As(err, &ve) {
			h.flash(c, "create.html", requiredMessage(ve.Field))
			return
		}
		h.internalError(c, err)
		return
	}

	c.Redirect(http.StatusFound, "/")
}

// show renders a single post. Any viewer may read it, no authorship check.
func (h *Handler) show(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	post, err := h.posts.Get(c.Request.Context(), id, currentUser(c), false)
	if err != nil {
		h.postError(c, err)
		return
	}
	c.HTML(http.StatusOK, "post.html", gin.H{
		"Post": post,
		"User": currentUser(c),
	})
}

func (h *Handler) updateForm(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	post, err := h.posts.Get(c.Request.Context(), id, currentUser(c), true)
	if err != nil {
		h.postError(c, err)
		return
	}
	c.HTML(http.StatusOK, "update.html", gin.H{
		"Post": post,
		"User": currentUser(c),
	})
}

func (h *Handler) update(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	title := c.PostForm("title")
	body := c.PostForm("body")

	if err := h.posts.Update(c.Request.Context(), id, currentUser(c), title, body); err != nil {
		var ve *service.ValidationError
		if errors.As(err, &ve) {
			post, getErr := h.posts.Get(c.Request.Context(), id, currentUser(c), true)
			if getErr != nil {
				h.postError(c, getErr)
				return
			}
			c.HTML(http.StatusOK, "update.html", gin.H{
				"Post":  post,
				"User":  currentUser(c),
				"Error": requiredMessage(ve.Field),
			})
			return
		}
		h.postError(c, err)
		return
	}

	c.Redirect(http.StatusFound, "/")
}

func (h *Handler) delete(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	if err := h.posts.Delete(c.Request.Context(), id, currentUser(c)); err != nil {
		h.postError(c, err)
		return
	}

	c.Redirect(http.StatusFound, "/")
}

// flash re-renders the submitted form with a one-shot error message.
func (h *Handler) flash(c *gin.Context, page, message string) {
	c.HTML(http.StatusOK, page, gin.H{
		"User":  currentUser(c),
		"Error": message,
	})
}

// postError maps post lookup failures to their distinct response classes:
// a missing post is 404, an authenticated non-owner gets a hard 403.
func (h *Handler) postError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		c.String(http.StatusNotFound, "404 Not Found")
	case errors.Is(err, service.ErrNotOwner):
		c.String(http.StatusForbidden, "403 Forbidden")
	default:
		h.internalError(c, err)
	}
}

func (h *Handler) internalError(c *gin.Context, err error) {
	h.logger.Errorf("%s %s: %v", c.Request.Method, c.Request.URL.Path, err)
	c.String(http.StatusInternalServerError, "internal server error")
}

func parseID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		c.String(http.StatusNotFound, "404 Not Found")
		return 0, false
	}
	return id, true
}

func requiredMessage(field string) string {
	if field == "" {
		return "Field is required."
	}
	return strings.ToUpper(field[:1]) + field[1:] + " is required."
}
