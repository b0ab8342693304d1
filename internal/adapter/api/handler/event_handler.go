package handler

import (
	"time"

	"github.com/labstack/echo/v4"

	"mingle/internal/usecase"
	"mingle/pkg/response"
	"mingle/pkg/utils"
)

type EventHandler struct {
	eventUseCase         *usecase.EventUseCase
	participationUseCase *usecase.ParticipationUseCase
	favoriteUseCase      *usecase.FavoriteUseCase
}

func NewEventHandler(
	eventUseCase *usecase.EventUseCase,
	participationUseCase *usecase.ParticipationUseCase,
	favoriteUseCase *usecase.FavoriteUseCase,
) *EventHandler {
	return &EventHandler{
		eventUseCase:         eventUseCase,
		participationUseCase: participationUseCase,
		favoriteUseCase:      favoriteUseCase,
	}
}

type eventRequest struct {
	Title       string    `json:"title" validate:"required,min=2"`
	Type        string    `json:"type" validate:"required"`
	Date        time.Time `json:"date" validate:"required"`
	Location    string    `json:"location"`
	City        string    `json:"city"`
	Country     string    `json:"country"`
	Lat         float64   `json:"lat"`
	Lng         float64   `json:"lng"`
	PlaceID     string    `json:"place_id"`
	Price       string    `json:"price"`
	Description string    `json:"description" validate:"omitempty,max=2000"`
	ImageURL    string    `json:"image_url" validate:"omitempty,url"`
}

func (r eventRequest) toInput() usecase.CreateEventInput {
	return usecase.CreateEventInput{
		Title:       r.Title,
		Type:        r.Type,
		Date:        r.Date,
		Location:    r.Location,
		City:        r.City,
		Country:     r.Country,
		Lat:         r.Lat,
		Lng:         r.Lng,
		PlaceID:     r.PlaceID,
		Price:       r.Price,
		Description: r.Description,
		ImageURL:    r.ImageURL,
	}
}

func (h *EventHandler) CreateEvent(c echo.Context) error {
	var req eventRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}

	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	userID := c.Get("uid").(string)

	event, err := h.eventUseCase.CreateEvent(c.Request().Context(), userID, req.toInput())
	if err != nil {
		return response.Error(c, err)
	}

	return response.Created(c, event)
}

func (h *EventHandler) GetEvent(c echo.Context) error {
	event, err := h.eventUseCase.GetEvent(c.Request().Context(), c.Param("id"))
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, event)
}

func (h *EventHandler) ListEvents(c echo.Context) error {
	params := utils.GetPaginationParams(c)

	events, total, err := h.eventUseCase.ListEvents(c.Request().Context(), params.PageSize, params.Offset)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Paginated(c, events, total, params.Page, params.PageSize)
}

func (h *EventHandler) UpdateEvent(c echo.Context) error {
	var req eventRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}

	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	userID := c.Get("uid").(string)
	in := req.toInput()

	event, err := h.eventUseCase.UpdateEvent(c.Request().Context(), userID, c.Param("id"), usecase.UpdateEventInput(in))
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, event)
}

func (h *EventHandler) DeleteEvent(c echo.Context) error {
	userID := c.Get("uid").(string)

	if err := h.eventUseCase.DeleteEvent(c.Request().Context(), userID, c.Param("id")); err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, map[string]string{
		"message": "Event deleted",
	})
}

// ToggleParticipation flips the caller's membership on an event. Joining also
// provisions the event chat and delivers the one-time welcome message.
func (h *EventHandler) ToggleParticipation(c echo.Context) error {
	userID := c.Get("uid").(string)

	joined, err := h.participationUseCase.ToggleParticipation(c.Request().Context(), userID, c.Param("id"))
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, map[string]bool{
		"participating": joined,
	})
}

func (h *EventHandler) ToggleFavorite(c echo.Context) error {
	userID := c.Get("uid").(string)

	favorited, err := h.favoriteUseCase.ToggleFavorite(c.Request().Context(), userID, c.Param("id"))
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, map[string]bool{
		"favorited": favorited,
	})
}

func (h *EventHandler) ListFavorites(c echo.Context) error {
	userID := c.Get("uid").(string)

	events, err := h.favoriteUseCase.ListFavoriteEvents(c.Request().Context(), userID)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, events)
}

func (h *EventHandler) ListParticipants(c echo.Context) error {
	users, err := h.eventUseCase.ListParticipants(c.Request().Context(), c.Param("id"))
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, users)
}

func (h *EventHandler) ListFavoritedBy(c echo.Context) error {
	users, err := h.eventUseCase.ListFavoritedBy(c.Request().Context(), c.Param("id"))
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, users)
}
