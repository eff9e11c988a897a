package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"WAYGO_BACK-END/internal/dto"
	"WAYGO_BACK-END/internal/models"
	"WAYGO_BACK-END/internal/service"
	"WAYGO_BACK-END/internal/utils"
)

// ItineraryHandler manages itinerary generation and retrieval
type ItineraryHandler struct {
	service *service.GenerationService
}

// NewItineraryHandler creates a new ItineraryHandler
func NewItineraryHandler(svc *service.GenerationService) *ItineraryHandler {
	return &ItineraryHandler{service: svc}
}

// Generate handles POST /api/itinerary/generate/{id}
// @Summary Generate an itinerary from a completed input
// @Tags itinerary
// @Produce json
// @Param id path int true "Input ID"
// @Success 201 {object} dto.GenerateResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse
// @Router /api/itinerary/generate/{id} [post]
func (h *ItineraryHandler) Generate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	inputID, err := pathID(r.URL.Path, "/api/itinerary/generate/")
	if err != nil {
		utils.WriteErrorResponse(w, http.StatusBadRequest, "Validation error", "input id must be an integer")
		return
	}

	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.WriteErrorResponse(w, http.StatusUnauthorized, "Unauthorized", "Authentication required")
		return
	}

	itineraryID, err := h.service.Generate(r.Context(), userID, inputID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	utils.WriteJSONResponse(w, http.StatusCreated, dto.GenerateResponse{ItineraryID: itineraryID})
}

// GetItinerary handles GET /api/itinerary/{id}
// @Summary Get a generated itinerary with its days and activities
// @Tags itinerary
// @Produce json
// @Param id path int true "Itinerary ID"
// @Success 200 {object} dto.ItineraryResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/itinerary/{id} [get]
func (h *ItineraryHandler) GetItinerary(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	itineraryID, err := pathID(r.URL.Path, "/api/itinerary/")
	if err != nil {
		utils.WriteErrorResponse(w, http.StatusBadRequest, "Validation error", "itinerary id must be an integer")
		return
	}

	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.WriteErrorResponse(w, http.StatusUnauthorized, "Unauthorized", "Authentication required")
		return
	}

	itinerary, err := h.service.Get(r.Context(), userID, itineraryID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	utils.WriteJSONResponse(w, http.StatusOK, toItineraryResponse(itinerary))
}

func pathID(path, prefix string) (int64, error) {
	rest := strings.Trim(strings.TrimPrefix(path, prefix), "/")
	return strconv.ParseInt(rest, 10, 64)
}

func toItineraryResponse(it *models.Itinerary) dto.ItineraryResponse {
	resp := dto.ItineraryResponse{
		ItineraryID: it.ID,
		UserID:      it.UserID.String(),
		Title:       it.Title,
		TotalBudget: it.TotalBudget,
		TotalSpent:  it.TotalSpent,
		Status:      string(it.Status),
		Days:        make([]dto.DayResponse, 0, len(it.Days)),
		CreatedAt:   utils.FormatTimestamp(it.CreatedAt),
		UpdatedAt:   utils.FormatTimestamp(it.UpdatedAt),
	}

	for _, day := range it.Days {
		dayResp := dto.DayResponse{
			DayID:            day.ID,
			DayNumber:        day.DayNumber,
			Date:             utils.FormatDate(day.Date),
			WeatherCondition: day.WeatherCondition,
			Temperature:      day.Temperature,
			WeatherAdvice:    day.WeatherAdvice,
			DailyBudget:      day.DailyBudget,
			DailySpent:       day.DailySpent,
			Activities:       make([]dto.ActivityResponse, 0, len(day.Activities)),
		}

		for _, act := range day.Activities {
			actResp := dto.ActivityResponse{
				ActivityID:      act.ID,
				Sequence:        act.Sequence,
				ActivityType:    string(act.ActivityType),
				PlaceName:       act.PlaceName,
				PlaceID:         act.PlaceID,
				Address:         act.Address,
				Rating:          act.Rating,
				StartTime:       utils.FormatClock(act.StartTime),
				EndTime:         utils.FormatClock(act.EndTime),
				DurationMinutes: act.DurationMinutes,
				EntranceFee:     act.EntranceFee,
				MealCost:        act.MealCost,
				Tips:            act.Tips,
			}
			if act.TransportToNext != nil {
				actResp.TransportToNext = string(*act.TransportToNext)
				actResp.TransportDuration = act.TransportDuration
				actResp.TransportCost = act.TransportCost
			}
			dayResp.Activities = append(dayResp.Activities, actResp)
		}

		resp.Days = append(resp.Days, dayResp)
	}

	return resp
}
