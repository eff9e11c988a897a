package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"WAYGO_BACK-END/internal/dto"
	"WAYGO_BACK-END/internal/models"
	"WAYGO_BACK-END/internal/service"
	"WAYGO_BACK-END/internal/utils"
)

// ItineraryInputHandler manages the 8-step itinerary input wizard
type ItineraryInputHandler struct {
	service *service.InputService
}

// NewItineraryInputHandler creates a new ItineraryInputHandler
func NewItineraryInputHandler(svc *service.InputService) *ItineraryInputHandler {
	return &ItineraryInputHandler{service: svc}
}

// writeServiceError maps service errors to HTTP responses
func writeServiceError(w http.ResponseWriter, err error) {
	var verr service.ValidationError
	switch {
	case errors.As(err, &verr):
		utils.WriteErrorResponse(w, http.StatusBadRequest, "Validation error", verr.Error())
	case errors.Is(err, service.ErrDateRangeInvalid):
		utils.WriteErrorResponse(w, http.StatusBadRequest, "Validation error", err.Error())
	case errors.Is(err, service.ErrDateOverlap):
		utils.WriteErrorResponse(w, http.StatusConflict, "Date conflict", err.Error())
	case errors.Is(err, service.ErrInputNotFound), errors.Is(err, service.ErrItineraryNotFound):
		utils.WriteErrorResponse(w, http.StatusNotFound, "Not found", err.Error())
	case errors.Is(err, service.ErrInputReadOnly),
		errors.Is(err, service.ErrInputNotCompleted),
		errors.Is(err, service.ErrInputIncomplete):
		utils.WriteErrorResponse(w, http.StatusConflict, "Invalid state", err.Error())
	default:
		utils.WriteErrorResponse(w, http.StatusInternalServerError, "Internal server error", err.Error())
	}
}

// SearchCity handles POST /api/itinerary/input/step1/search-city
// @Summary Search destination cities by name
// @Tags itinerary-input
// @Accept json
// @Produce json
// @Param payload body dto.SearchCityRequest true "City search payload"
// @Success 200 {array} dto.CityCandidate
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /api/itinerary/input/step1/search-city [post]
func (h *ItineraryInputHandler) SearchCity(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req dto.SearchCityRequest
	if err := utils.DecodeJSONRequest(w, r, &req); err != nil {
		return // Error already handled by DecodeJSONRequest
	}

	candidates, err := h.service.SearchCity(r.Context(), strings.TrimSpace(req.CityName))
	if err != nil {
		writeServiceError(w, err)
		return
	}

	resp := make([]dto.CityCandidate, 0, len(candidates))
	for _, c := range candidates {
		resp = append(resp, dto.CityCandidate{
			PlaceID:          c.PlaceID,
			CityName:         c.Name,
			FormattedAddress: c.FormattedAddress,
		})
	}
	utils.WriteJSONResponse(w, http.StatusOK, resp)
}

// SelectCity handles POST /api/itinerary/input/step1/select
// @Summary Select a destination city and start a new itinerary input
// @Tags itinerary-input
// @Accept json
// @Produce json
// @Param payload body dto.SelectCityRequest true "Selected city payload"
// @Success 201 {object} dto.SelectCityResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /api/itinerary/input/step1/select [post]
func (h *ItineraryInputHandler) SelectCity(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.WriteErrorResponse(w, http.StatusUnauthorized, "Unauthorized", "Invalid user context")
		return
	}

	var req dto.SelectCityRequest
	if err := utils.DecodeJSONRequest(w, r, &req); err != nil {
		return
	}

	inputID, err := h.service.SelectCity(r.Context(), userID, strings.TrimSpace(req.CityName), strings.TrimSpace(req.PlaceID))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	utils.WriteJSONResponse(w, http.StatusCreated, dto.SelectCityResponse{InputID: inputID})
}

// InputSteps dispatches /api/itinerary/input/{id} and its step routes
func (h *ItineraryInputHandler) InputSteps(w http.ResponseWriter, r *http.Request) {
	rest := strings.Trim(strings.TrimPrefix(r.URL.Path, "/api/itinerary/input/"), "/")
	parts := strings.Split(rest, "/")

	inputID, err := strconv.ParseInt(parts[0], 10, 64)
	if err != nil {
		utils.WriteErrorResponse(w, http.StatusBadRequest, "Validation error", "input id must be an integer")
		return
	}

	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.WriteErrorResponse(w, http.StatusUnauthorized, "Unauthorized", "Authentication required")
		return
	}

	if len(parts) == 1 {
		if r.Method != http.MethodGet {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}
		h.getInput(w, r, userID, inputID)
		return
	}

	if len(parts) != 2 || (r.Method != http.MethodPut && r.Method != http.MethodPost) {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	switch parts[1] {
	case "step2":
		h.saveStep2(w, r, userID, inputID)
	case "step3":
		h.saveStep3(w, r, userID, inputID)
	case "step4":
		h.saveStep4(w, r, userID, inputID)
	case "step5":
		h.saveStep5(w, r, userID, inputID)
	case "step6":
		h.saveStep6(w, r, userID, inputID)
	case "step7":
		h.saveStep7(w, r, userID, inputID)
	case "step8":
		h.saveStep8(w, r, userID, inputID)
	default:
		utils.WriteErrorResponse(w, http.StatusNotFound, "Not found", "unknown step")
	}
}

// saveStep2 handles PUT /api/itinerary/input/{id}/step2
// @Summary Save trip dates
// @Tags itinerary-input
// @Accept json
// @Produce json
// @Param id path int true "Input ID"
// @Param payload body dto.Step2Request true "Trip dates payload"
// @Success 200 {object} dto.MessageResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse
// @Router /api/itinerary/input/{id}/step2 [put]
func (h *ItineraryInputHandler) saveStep2(w http.ResponseWriter, r *http.Request, userID uuid.UUID, inputID int64) {
	var req dto.Step2Request
	if err := utils.DecodeJSONRequest(w, r, &req); err != nil {
		return
	}

	start, err := utils.ParseDate(req.StartDate)
	if err != nil {
		utils.WriteErrorResponse(w, http.StatusBadRequest, "Validation error", "start_date must be ISO 8601 format (YYYY-MM-DD)")
		return
	}
	end, err := utils.ParseDate(req.EndDate)
	if err != nil {
		utils.WriteErrorResponse(w, http.StatusBadRequest, "Validation error", "end_date must be ISO 8601 format (YYYY-MM-DD)")
		return
	}

	if err := h.service.SaveStep2(r.Context(), userID, inputID, start, end); err != nil {
		writeServiceError(w, err)
		return
	}
	utils.WriteJSONResponse(w, http.StatusOK, dto.MessageResponse{Message: "dates saved"})
}

// saveStep3 handles PUT /api/itinerary/input/{id}/step3
// @Summary Save transport ticket status, with flight recommendations when unbooked
// @Tags itinerary-input
// @Accept json
// @Produce json
// @Param id path int true "Input ID"
// @Param payload body dto.Step3Request true "Transport ticket payload"
// @Success 200 {object} dto.Step3Response
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse
// @Router /api/itinerary/input/{id}/step3 [put]
func (h *ItineraryInputHandler) saveStep3(w http.ResponseWriter, r *http.Request, userID uuid.UUID, inputID int64) {
	var req dto.Step3Request
	if err := utils.DecodeJSONRequest(w, r, &req); err != nil {
		return
	}

	var arrival, departure *int
	if req.ArrivalTime != nil {
		minutes, err := utils.ParseClock(*req.ArrivalTime)
		if err != nil {
			utils.WriteErrorResponse(w, http.StatusBadRequest, "Validation error", "arrival_time must be HH:MM")
			return
		}
		arrival = &minutes
	}
	if req.DepartureTime != nil {
		minutes, err := utils.ParseClock(*req.DepartureTime)
		if err != nil {
			utils.WriteErrorResponse(w, http.StatusBadRequest, "Validation error", "departure_time must be HH:MM")
			return
		}
		departure = &minutes
	}

	flights, err := h.service.SaveStep3(r.Context(), userID, inputID, req.HasTicket, arrival, departure)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	resp := dto.Step3Response{Message: "transport saved"}
	if !req.HasTicket {
		resp.Message = "transport saved, recommendations attached"
		resp.Flights = make([]dto.FlightOffer, 0, len(flights))
		for _, f := range flights {
			resp.Flights = append(resp.Flights, dto.FlightOffer{
				FlightNumber: f.FlightNumber,
				Airline:      f.Airline,
				Price:        f.Price,
				Currency:     f.Currency,
			})
		}
	}
	utils.WriteJSONResponse(w, http.StatusOK, resp)
}

// saveStep4 handles PUT /api/itinerary/input/{id}/step4
// @Summary Save the party size
// @Tags itinerary-input
// @Accept json
// @Produce json
// @Param id path int true "Input ID"
// @Param payload body dto.Step4Request true "Party size payload"
// @Success 200 {object} dto.MessageResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse
// @Router /api/itinerary/input/{id}/step4 [put]
func (h *ItineraryInputHandler) saveStep4(w http.ResponseWriter, r *http.Request, userID uuid.UUID, inputID int64) {
	var req dto.Step4Request
	if err := utils.DecodeJSONRequest(w, r, &req); err != nil {
		return
	}
	if err := h.service.SaveStep4(r.Context(), userID, inputID, req.NumberOfPeople); err != nil {
		writeServiceError(w, err)
		return
	}
	utils.WriteJSONResponse(w, http.StatusOK, dto.MessageResponse{Message: "party size saved"})
}

// saveStep5 handles PUT /api/itinerary/input/{id}/step5
// @Summary Save preferred transport modes
// @Tags itinerary-input
// @Accept json
// @Produce json
// @Param id path int true "Input ID"
// @Param payload body dto.Step5Request true "Transport modes payload"
// @Success 200 {object} dto.MessageResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse
// @Router /api/itinerary/input/{id}/step5 [put]
func (h *ItineraryInputHandler) saveStep5(w http.ResponseWriter, r *http.Request, userID uuid.UUID, inputID int64) {
	var req dto.Step5Request
	if err := utils.DecodeJSONRequest(w, r, &req); err != nil {
		return
	}
	if err := h.service.SaveStep5(r.Context(), userID, inputID, req.TransportModes); err != nil {
		writeServiceError(w, err)
		return
	}
	utils.WriteJSONResponse(w, http.StatusOK, dto.MessageResponse{Message: "transport modes saved"})
}

// saveStep6 handles PUT /api/itinerary/input/{id}/step6
// @Summary Save travel styles and schedule density
// @Tags itinerary-input
// @Accept json
// @Produce json
// @Param id path int true "Input ID"
// @Param payload body dto.Step6Request true "Travel style payload"
// @Success 200 {object} dto.MessageResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse
// @Router /api/itinerary/input/{id}/step6 [put]
func (h *ItineraryInputHandler) saveStep6(w http.ResponseWriter, r *http.Request, userID uuid.UUID, inputID int64) {
	var req dto.Step6Request
	if err := utils.DecodeJSONRequest(w, r, &req); err != nil {
		return
	}
	if err := h.service.SaveStep6(r.Context(), userID, inputID, req.TravelStyles, req.ScheduleDensity); err != nil {
		writeServiceError(w, err)
		return
	}
	utils.WriteJSONResponse(w, http.StatusOK, dto.MessageResponse{Message: "travel style saved"})
}

// saveStep7 handles PUT /api/itinerary/input/{id}/step7
// @Summary Save the total budget
// @Tags itinerary-input
// @Accept json
// @Produce json
// @Param id path int true "Input ID"
// @Param payload body dto.Step7Request true "Budget payload"
// @Success 200 {object} dto.MessageResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse
// @Router /api/itinerary/input/{id}/step7 [put]
func (h *ItineraryInputHandler) saveStep7(w http.ResponseWriter, r *http.Request, userID uuid.UUID, inputID int64) {
	var req dto.Step7Request
	if err := utils.DecodeJSONRequest(w, r, &req); err != nil {
		return
	}
	if err := h.service.SaveStep7(r.Context(), userID, inputID, req.Budget); err != nil {
		writeServiceError(w, err)
		return
	}
	utils.WriteJSONResponse(w, http.StatusOK, dto.MessageResponse{Message: "budget saved"})
}

// saveStep8 handles PUT /api/itinerary/input/{id}/step8
// @Summary Save accommodation preference and complete the input
// @Tags itinerary-input
// @Accept json
// @Produce json
// @Param id path int true "Input ID"
// @Param payload body dto.Step8Request true "Accommodation payload"
// @Success 200 {object} dto.MessageResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse
// @Router /api/itinerary/input/{id}/step8 [put]
func (h *ItineraryInputHandler) saveStep8(w http.ResponseWriter, r *http.Request, userID uuid.UUID, inputID int64) {
	var req dto.Step8Request
	if err := utils.DecodeJSONRequest(w, r, &req); err != nil {
		return
	}
	if err := h.service.SaveStep8(r.Context(), userID, inputID, req.NeedsAccommodation, req.AccommodationBudget); err != nil {
		writeServiceError(w, err)
		return
	}
	utils.WriteJSONResponse(w, http.StatusOK, dto.MessageResponse{Message: "input completed"})
}

// getInput handles GET /api/itinerary/input/{id}
// @Summary Get the current state of an itinerary input
// @Tags itinerary-input
// @Produce json
// @Param id path int true "Input ID"
// @Success 200 {object} dto.InputResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/itinerary/input/{id} [get]
func (h *ItineraryInputHandler) getInput(w http.ResponseWriter, r *http.Request, userID uuid.UUID, inputID int64) {
	rec, err := h.service.Get(r.Context(), userID, inputID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	utils.WriteJSONResponse(w, http.StatusOK, toInputResponse(rec))
}

func toInputResponse(rec *models.InputRecord) dto.InputResponse {
	resp := dto.InputResponse{
		InputID:             rec.ID,
		UserID:              rec.UserID.String(),
		Status:              string(rec.Status),
		DestinationCity:     rec.DestinationCity,
		DestinationPlaceID:  rec.DestinationPlaceID,
		TotalDays:           rec.TotalDays,
		HasTransportTicket:  rec.HasTransportTicket,
		NumberOfPeople:      rec.NumberOfPeople,
		ScheduleDensity:     string(rec.ScheduleDensity),
		Budget:              rec.Budget,
		NeedsAccommodation:  rec.NeedsAccommodation,
		AccommodationBudget: rec.AccommodationBudget,
		CreatedAt:           utils.FormatTimestamp(rec.CreatedAt),
		UpdatedAt:           utils.FormatTimestamp(rec.UpdatedAt),
	}
	if rec.StartDate != nil {
		resp.StartDate = utils.FormatDate(*rec.StartDate)
	}
	if rec.EndDate != nil {
		resp.EndDate = utils.FormatDate(*rec.EndDate)
	}
	if rec.ArrivalTime != nil {
		resp.ArrivalTime = utils.FormatClock(*rec.ArrivalTime)
	}
	if rec.DepartureTime != nil {
		resp.DepartureTime = utils.FormatClock(*rec.DepartureTime)
	}
	for _, m := range rec.TransportModes {
		resp.TransportModes = append(resp.TransportModes, string(m))
	}
	for _, s := range rec.TravelStyles {
		resp.TravelStyles = append(resp.TravelStyles, string(s))
	}
	return resp
}
