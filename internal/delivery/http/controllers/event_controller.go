package controllers

import (
	"cmp"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"eventregistration/internal/delivery/http/helpers"
	"eventregistration/internal/domain"
)

// CreateEventRequest is the request body for POST /events.
type CreateEventRequest struct {
	Year int `json:"year"`
}

// Validate implements Validator. The year may not be in the past.
func (c CreateEventRequest) Validate() []string {
	if c.Year == 0 {
		return []string{"year is required"}
	}
	if current := time.Now().Year(); c.Year < current {
		return []string{fmt.Sprintf("year must be greater than or equal to %d", current)}
	}
	return nil
}

type EventController struct {
	Logger *slog.Logger
	Events domain.EventRepository
}

func NewEventController(logger *slog.Logger, events domain.EventRepository) *EventController {
	return &EventController{Logger: defaultLogger(logger), Events: events}
}

// ListEvents godoc
// @Summary List events
// @Tags events
// @Produce json
// @Param sort query string false "Sort field" Enums(year, createdAt) default(createdAt)
// @Param direction query string false "Sort direction" Enums(asc, desc) default(desc)
// @Success 200 {array} domain.Event
// @Failure 400 {object} helpers.ErrorBody "name: ValidationError"
// @Failure 500 {object} helpers.ErrorBody "name: InternalServerError"
// @Router /events [get]
func (c *EventController) ListEvents(w http.ResponseWriter, r *http.Request) {
	events, err := c.Events.GetMany(r.Context())
	if err != nil {
		helpers.WriteDomainError(w, r, c.Logger, err)
		return
	}
	writeList(w, r, events, []string{"year", "createdAt"}, "createdAt", helpers.SortDesc,
		func(sort string) func(a, b *domain.Event) int {
			if sort == "year" {
				return func(a, b *domain.Event) int { return cmp.Compare(a.Year, b.Year) }
			}
			return func(a, b *domain.Event) int { return a.CreatedAt.Compare(b.CreatedAt) }
		})
}

// GetEvent godoc
// @Summary Get an event by ID
// @Tags events
// @Produce json
// @Param eventID path string true "Event ID"
// @Success 200 {object} domain.Event
// @Failure 404 {object} helpers.ErrorBody "name: EventNotFoundError"
// @Failure 500 {object} helpers.ErrorBody "name: InternalServerError"
// @Router /events/{eventID} [get]
func (c *EventController) GetEvent(w http.ResponseWriter, r *http.Request) {
	event, err := c.Events.GetByID(r.Context(), r.PathValue("eventID"))
	if err != nil {
		helpers.WriteDomainError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSON(w, http.StatusOK, event)
}

// CreateEvent godoc
// @Summary Create an event
// @Description Creates the event for a year. Only one event may exist per year; the most recently created event receives new registrations.
// @Tags events
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param event body CreateEventRequest true "Event year"
// @Success 200 {object} domain.Event
// @Failure 400 {object} helpers.ErrorBody "name: ValidationError"
// @Failure 401 {object} helpers.ErrorBody "name: UnauthorizedError"
// @Failure 409 {object} helpers.ErrorBody "name: EventAlreadyExistsError"
// @Failure 500 {object} helpers.ErrorBody "name: InternalServerError"
// @Router /events [post]
func (c *EventController) CreateEvent(w http.ResponseWriter, r *http.Request) {
	var req CreateEventRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	event := domain.NewEvent(req.Year)
	if err := c.Events.Create(r.Context(), event); err != nil {
		helpers.WriteDomainError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSON(w, http.StatusOK, event)
}
