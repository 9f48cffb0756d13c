package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"eventcal/internal/auth"
	"eventcal/internal/config"
	"eventcal/internal/ics"
	"eventcal/internal/models"
	"eventcal/internal/repository"
)

// Handler contains the route handlers and their dependencies.
type Handler struct {
	users  repository.Users
	events repository.Events
	cfg    *config.Config
}

// NewHandler creates a new handler set.
func NewHandler(users repository.Users, events repository.Events, cfg *config.Config) *Handler {
	return &Handler{
		users:  users,
		events: events,
		cfg:    cfg,
	}
}

// eventForm holds the raw form fields of the add/edit pages so that a failed
// validation can redisplay what the user typed.
type eventForm struct {
	Title       string
	Description string
	Date        string
	Time        string
	Location    string
}

func bindEventForm(c *gin.Context) eventForm {
	return eventForm{
		Title:       c.PostForm("title"),
		Description: c.PostForm("description"),
		Date:        c.PostForm("date"),
		Time:        c.PostForm("time"),
		Location:    c.PostForm("location"),
	}
}

// validate checks the date and time fields against their expected layouts.
// Malformed input is a validation failure, not a server error.
func (f eventForm) validate() error {
	if f.Title == "" {
		return errors.New("Title is required.")
	}
	if _, err := time.Parse(models.DateLayout, f.Date); err != nil {
		return errors.New("Date must be in YYYY-MM-DD format.")
	}
	if _, err := time.Parse(models.TimeLayout, f.Time); err != nil {
		return errors.New("Time must be in HH:MM format.")
	}
	return nil
}

// ShowRegister renders the registration form.
func (h *Handler) ShowRegister(c *gin.Context) {
	c.HTML(http.StatusOK, "register.html", gin.H{"Flash": popFlash(c), "Username": ""})
}

// Register creates a new account. A taken username redisplays the form with
// a duplicate-username message and leaves the user table unchanged.
func (h *Handler) Register(c *gin.Context) {
	username := c.PostForm("username")
	password := c.PostForm("password")

	if username == "" || password == "" {
		c.HTML(http.StatusOK, "register.html", gin.H{
			"Flash":    &Flash{Category: "danger", Message: "Username and password are required."},
			"Username": username,
		})
		return
	}

	if _, err := h.users.FindByUsername(c.Request.Context(), username); err == nil {
		c.HTML(http.StatusOK, "register.html", gin.H{
			"Flash":    &Flash{Category: "danger", Message: "Username already exists."},
			"Username": username,
		})
		return
	}

	user := &models.User{
		ID:       uuid.New().String(),
		Username: username,
	}
	if err := user.SetPassword(password); err != nil {
		c.String(http.StatusInternalServerError, "internal error")
		return
	}

	if err := h.users.Create(c.Request.Context(), user); err != nil {
		// The username check above is not atomic; a lost race lands on the
		// unique index and is reported like any other duplicate.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			c.HTML(http.StatusOK, "register.html", gin.H{
				"Flash":    &Flash{Category: "danger", Message: "Username already exists."},
				"Username": username,
			})
			return
		}
		c.String(http.StatusInternalServerError, "internal error")
		return
	}

	setFlash(c, "success", "Registration successful. Please log in.")
	c.Redirect(http.StatusFound, "/login")
}

// ShowLogin renders the login form.
func (h *Handler) ShowLogin(c *gin.Context) {
	c.HTML(http.StatusOK, "login.html", gin.H{"Flash": popFlash(c), "Username": ""})
}

// Login verifies credentials and establishes a session. Invalid credentials
// leave the request anonymous.
func (h *Handler) Login(c *gin.Context) {
	username := c.PostForm("username")
	password := c.PostForm("password")

	user, err := h.users.FindByUsername(c.Request.Context(), username)
	if err != nil || !user.CheckPassword(password) {
		c.HTML(http.StatusOK, "login.html", gin.H{
			"Flash":    &Flash{Category: "danger", Message: "Invalid credentials."},
			"Username": username,
		})
		return
	}

	ttl := h.cfg.Session.TTL()
	token, err := auth.GenerateToken(user.ID, []byte(h.cfg.Session.Secret), ttl)
	if err != nil {
		c.String(http.StatusInternalServerError, "internal error")
		return
	}

	setSession(c, token, int(ttl.Seconds()))
	c.Redirect(http.StatusFound, "/")
}

// Logout clears the session unconditionally.
func (h *Handler) Logout(c *gin.Context) {
	clearSession(c)
	c.Redirect(http.StatusFound, "/login")
}

// Index lists the current user's events ordered by (date, time).
func (h *Handler) Index(c *gin.Context) {
	user := currentUser(c)

	events, err := h.events.ListForUser(c.Request.Context(), user.ID)
	if err != nil {
		c.String(http.StatusInternalServerError, "internal error")
		return
	}

	c.HTML(http.StatusOK, "index.html", gin.H{
		"Flash":    popFlash(c),
		"Username": user.Username,
		"Events":   events,
	})
}

// ShowAdd renders the new-event form.
func (h *Handler) ShowAdd(c *gin.Context) {
	c.HTML(http.StatusOK, "add_event.html", gin.H{"Flash": popFlash(c), "Form": eventForm{}})
}

// AddEvent creates an event owned by the current user.
func (h *Handler) AddEvent(c *gin.Context) {
	user := currentUser(c)
	form := bindEventForm(c)

	if err := form.validate(); err != nil {
		c.HTML(http.StatusOK, "add_event.html", gin.H{
			"Flash": &Flash{Category: "danger", Message: err.Error()},
			"Form":  form,
		})
		return
	}

	event := &models.Event{
		ID:          uuid.New().String(),
		Title:       form.Title,
		Description: form.Description,
		Date:        form.Date,
		Time:        form.Time,
		Location:    form.Location,
		UserID:      user.ID,
	}
	if err := h.events.Create(c.Request.Context(), event); err != nil {
		c.String(http.StatusInternalServerError, "internal error")
		return
	}

	setFlash(c, "success", "Event added.")
	c.Redirect(http.StatusFound, "/")
}

// loadOwnedEvent fetches the event and enforces ownership. On failure it has
// already written the response and returns nil. Ownership violations flash
// the same authorization message for every mutation.
func (h *Handler) loadOwnedEvent(c *gin.Context) *models.Event {
	user := currentUser(c)

	event, err := h.events.FindByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.String(http.StatusNotFound, "event not found")
		} else {
			c.String(http.StatusInternalServerError, "internal error")
		}
		return nil
	}

	if event.UserID != user.ID {
		setFlash(c, "danger", "Unauthorized.")
		c.Redirect(http.StatusFound, "/")
		return nil
	}

	return event
}

// ShowEdit renders the edit form populated with the event's current values.
func (h *Handler) ShowEdit(c *gin.Context) {
	event := h.loadOwnedEvent(c)
	if event == nil {
		return
	}

	c.HTML(http.StatusOK, "edit_event.html", gin.H{
		"Flash":   popFlash(c),
		"EventID": event.ID,
		"Form": eventForm{
			Title:       event.Title,
			Description: event.Description,
			Date:        event.Date,
			Time:        event.Time,
			Location:    event.Location,
		},
	})
}

// UpdateEvent overwrites all fields of an owned event.
func (h *Handler) UpdateEvent(c *gin.Context) {
	event := h.loadOwnedEvent(c)
	if event == nil {
		return
	}

	form := bindEventForm(c)
	if err := form.validate(); err != nil {
		c.HTML(http.StatusOK, "edit_event.html", gin.H{
			"Flash":   &Flash{Category: "danger", Message: err.Error()},
			"EventID": event.ID,
			"Form":    form,
		})
		return
	}

	event.Title = form.Title
	event.Description = form.Description
	event.Date = form.Date
	event.Time = form.Time
	event.Location = form.Location

	if err := h.events.Update(c.Request.Context(), event); err != nil {
		c.String(http.StatusInternalServerError, "internal error")
		return
	}

	setFlash(c, "success", "Event updated.")
	c.Redirect(http.StatusFound, "/")
}

// DeleteEvent removes an owned event.
func (h *Handler) DeleteEvent(c *gin.Context) {
	event := h.loadOwnedEvent(c)
	if event == nil {
		return
	}

	if err := h.events.Delete(c.Request.Context(), event); err != nil {
		c.String(http.StatusInternalServerError, "internal error")
		return
	}

	setFlash(c, "info", "Event deleted.")
	c.Redirect(http.StatusFound, "/")
}

// ExportICS serves the current user's events as an iCalendar feed.
func (h *Handler) ExportICS(c *gin.Context) {
	user := currentUser(c)

	events, err := h.events.ListForUser(c.Request.Context(), user.ID)
	if err != nil {
		c.String(http.StatusInternalServerError, "internal error")
		return
	}

	payload, err := ics.Export(events, time.Local)
	if err != nil {
		c.String(http.StatusInternalServerError, "internal error")
		return
	}

	c.Header("Content-Disposition", `attachment; filename="calendar.ics"`)
	c.Data(http.StatusOK, "text/calendar; charset=utf-8", []byte(payload))
}
