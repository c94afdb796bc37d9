package collection

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
	"github.com/wilw-arch/WeeklyPlanWeb/internal/rest"
	"github.com/wilw-arch/WeeklyPlanWeb/pkg/week"
)

const maxImportSize = 10 << 20

type WeekSummaryDTO struct {
	Id         string `json:"id"`
	Title      string `json:"title"`
	StartDate  string `json:"startDate"`
	EndDate    string `json:"endDate"`
	WeekNumber string `json:"weekNumber"`
}

type WeekListDTO struct {
	Weeks      []WeekSummaryDTO `json:"weeks"`
	SelectedId string           `json:"selectedId,omitempty"`
}

type CreateWeekResponseDTO struct {
	Week    week.Record `json:"week"`
	Created bool        `json:"created"`
	Notice  string      `json:"notice,omitempty"`
}

type MetricCellDTO struct {
	Value week.MetricValue `json:"value"`
}

type ImportResponseDTO struct {
	Count int `json:"count"`
}

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

// ListWeeks godoc
// @Summary List weeks
// @Description All weeks, newest first, with the id of the selected week
// @Tags Weeks
// @Produce json
// @Success 200 {object} WeekListDTO
// @Router /api/weeks [get]
func (h *Handler) ListWeeks(w http.ResponseWriter, r *http.Request) {
	weeks := h.service.Weeks()
	response := WeekListDTO{Weeks: make([]WeekSummaryDTO, 0, len(weeks))}
	for _, record := range weeks {
		response.Weeks = append(response.Weeks, toSummaryDTO(record))
	}
	if selected, ok := h.service.Selected(); ok {
		response.SelectedId = selected.Id
	}
	writeJSON(w, http.StatusOK, response)
}

// CreateWeek godoc
// @Summary Create a week
// @Description Creates the week after the latest one, or the week containing date when given.
// @Description An existing week is selected instead and returned with created=false.
// @Tags Weeks
// @Produce json
// @Param date query string false "Any date of the week, YYYY-MM-DD"
// @Success 201 {object} CreateWeekResponseDTO
// @Success 200 {object} CreateWeekResponseDTO "Week already exists"
// @Failure 400 {object} rest.ErrorResponse "Invalid date format"
// @Router /api/weeks [post]
func (h *Handler) CreateWeek(w http.ResponseWriter, r *http.Request) {
	var (
		record  week.Record
		created bool
		err     error
	)
	if dateParam := r.URL.Query().Get("date"); dateParam != "" {
		date, parseErr := week.ParseISO(dateParam)
		if parseErr != nil {
			rest.WriteError(w, http.StatusBadRequest, "Incorrect date format", "Date must be in YYYY-MM-DD format")
			return
		}
		record, created, err = h.service.Create(r.Context(), date)
	} else {
		record, created, err = h.service.CreateNext(r.Context())
	}
	if err != nil {
		log.Errorf("failed to create week: %v", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	if !created {
		writeJSON(w, http.StatusOK, CreateWeekResponseDTO{
			Week:    record,
			Created: false,
			Notice:  "Week " + record.Id + " already exists",
		})
		return
	}
	writeJSON(w, http.StatusCreated, CreateWeekResponseDTO{Week: record, Created: true})
}

// GetSelectedWeek godoc
// @Summary Get the selected week
// @Tags Weeks
// @Produce json
// @Success 200 {object} week.Record
// @Failure 404 {object} rest.ErrorResponse "No week selected"
// @Router /api/weeks/selected [get]
func (h *Handler) GetSelectedWeek(w http.ResponseWriter, r *http.Request) {
	selected, ok := h.service.Selected()
	if !ok {
		rest.WriteError(w, http.StatusNotFound, "No week selected", "")
		return
	}
	writeJSON(w, http.StatusOK, selected)
}

// GetWeek godoc
// @Summary Get a week
// @Tags Weeks
// @Produce json
// @Param weekId path string true "Week id (ISO date of its Monday)"
// @Success 200 {object} week.Record
// @Failure 404 {object} rest.ErrorResponse "Week not found"
// @Router /api/weeks/{weekId} [get]
func (h *Handler) GetWeek(w http.ResponseWriter, r *http.Request) {
	weekId := mux.Vars(r)["weekId"]
	record, err := h.service.Get(weekId)
	if err != nil {
		h.writeServiceError(w, err, weekId)
		return
	}
	writeJSON(w, http.StatusOK, record)
}

// UpdateWeek godoc
// @Summary Update a week
// @Description Replaces the week. Its id, startDate and endDate cannot change.
// @Tags Weeks
// @Accept json
// @Produce json
// @Param weekId path string true "Week id"
// @Param week body week.Record true "Week"
// @Success 200 {object} week.Record
// @Failure 400 {object} rest.ErrorResponse "Invalid request"
// @Failure 404 {object} rest.ErrorResponse "Week not found"
// @Router /api/weeks/{weekId} [put]
func (h *Handler) UpdateWeek(w http.ResponseWriter, r *http.Request) {
	weekId := mux.Vars(r)["weekId"]
	var record week.Record
	if err := json.NewDecoder(r.Body).Decode(&record); err != nil {
		rest.WriteError(w, http.StatusBadRequest, "Invalid request body", err.Error())
		return
	}
	if record.Id != "" && record.Id != weekId {
		rest.WriteError(w, http.StatusBadRequest, "Week id mismatch", "Body id must match the path")
		return
	}
	record.Id = weekId

	updated, err := h.service.Update(r.Context(), record)
	if err != nil {
		h.writeServiceError(w, err, weekId)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

// DeleteWeek godoc
// @Summary Delete a week
// @Description Requires confirm=true. The first remaining week becomes selected.
// @Tags Weeks
// @Param weekId path string true "Week id"
// @Param confirm query bool true "Must be true"
// @Success 204
// @Failure 400 {object} rest.ErrorResponse "Missing confirmation"
// @Failure 404 {object} rest.ErrorResponse "Week not found"
// @Router /api/weeks/{weekId} [delete]
func (h *Handler) DeleteWeek(w http.ResponseWriter, r *http.Request) {
	weekId := mux.Vars(r)["weekId"]
	if confirmed, _ := strconv.ParseBool(r.URL.Query().Get("confirm")); !confirmed {
		rest.WriteError(w, http.StatusBadRequest, "Deletion not confirmed", "Repeat the request with confirm=true")
		return
	}
	if err := h.service.Delete(r.Context(), weekId); err != nil {
		h.writeServiceError(w, err, weekId)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// SelectWeek godoc
// @Summary Select a week
// @Tags Weeks
// @Param weekId path string true "Week id"
// @Success 204
// @Failure 404 {object} rest.ErrorResponse "Week not found"
// @Router /api/weeks/{weekId}/selection [put]
func (h *Handler) SelectWeek(w http.ResponseWriter, r *http.Request) {
	weekId := mux.Vars(r)["weekId"]
	if err := h.service.Select(weekId); err != nil {
		h.writeServiceError(w, err, weekId)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ToggleHabitDay godoc
// @Summary Toggle a habit check mark
// @Tags Weeks
// @Produce json
// @Param weekId path string true "Week id"
// @Param itemId path string true "Habit id"
// @Param day path int true "Day index, 0 is Monday"
// @Success 200 {object} week.Record
// @Failure 400 {object} rest.ErrorResponse "Invalid day"
// @Failure 404 {object} rest.ErrorResponse "Week or habit not found"
// @Router /api/weeks/{weekId}/habits/{itemId}/days/{day} [patch]
func (h *Handler) ToggleHabitDay(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	weekId, itemId := vars["weekId"], vars["itemId"]
	day, err := strconv.Atoi(vars["day"])
	if err != nil {
		rest.WriteError(w, http.StatusBadRequest, "Invalid day", "Day must be a number between 0 and 6")
		return
	}

	updated, err := h.service.Edit(r.Context(), weekId, func(record week.Record) (week.Record, error) {
		return record.ToggleHabitDay(itemId, day)
	})
	if err != nil {
		h.writeServiceError(w, err, weekId)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

// SetMetricDay godoc
// @Summary Set a metric cell
// @Description value is a number, or an empty string to clear the cell
// @Tags Weeks
// @Accept json
// @Produce json
// @Param weekId path string true "Week id"
// @Param itemId path string true "Metric id"
// @Param day path int true "Day index, 0 is Monday"
// @Param cell body MetricCellDTO true "Cell value"
// @Success 200 {object} week.Record
// @Failure 400 {object} rest.ErrorResponse "Invalid request"
// @Failure 404 {object} rest.ErrorResponse "Week or metric not found"
// @Router /api/weeks/{weekId}/metrics/{itemId}/days/{day} [put]
func (h *Handler) SetMetricDay(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	weekId, itemId := vars["weekId"], vars["itemId"]
	day, err := strconv.Atoi(vars["day"])
	if err != nil {
		rest.WriteError(w, http.StatusBadRequest, "Invalid day", "Day must be a number between 0 and 6")
		return
	}
	var cell MetricCellDTO
	if err := json.NewDecoder(r.Body).Decode(&cell); err != nil {
		rest.WriteError(w, http.StatusBadRequest, "Invalid request body", err.Error())
		return
	}

	updated, err := h.service.Edit(r.Context(), weekId, func(record week.Record) (week.Record, error) {
		return record.WithMetricDay(itemId, day, cell.Value)
	})
	if err != nil {
		h.writeServiceError(w, err, weekId)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

// ExportWeeks godoc
// @Summary Export all weeks
// @Tags Backup
// @Produce json
// @Success 200 {array} week.Record
// @Router /api/export [get]
func (h *Handler) ExportWeeks(w http.ResponseWriter, r *http.Request) {
	document, err := h.service.Export()
	if err != nil {
		log.Errorf("failed to export weeks: %v", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Disposition", `attachment; filename="`+document.Filename+`"`)
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(document.Data); err != nil {
		log.Errorf("failed to write export: %v", err)
	}
}

// ImportWeeks godoc
// @Summary Import weeks
// @Description Replaces the whole collection. The body must be a JSON array of weeks.
// @Tags Backup
// @Accept json
// @Produce json
// @Param weeks body []week.Record true "Weeks"
// @Success 200 {object} ImportResponseDTO
// @Failure 400 {object} rest.ErrorResponse "Invalid document"
// @Router /api/import [post]
func (h *Handler) ImportWeeks(w http.ResponseWriter, r *http.Request) {
	data, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxImportSize))
	if err != nil {
		rest.WriteError(w, http.StatusBadRequest, "Failed to read request body", err.Error())
		return
	}
	count, err := h.service.Import(r.Context(), data)
	if err != nil {
		if errors.Is(err, ErrInvalidDocument) {
			rest.WriteError(w, http.StatusBadRequest, "Invalid document", err.Error())
			return
		}
		log.Errorf("failed to import weeks: %v", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, ImportResponseDTO{Count: count})
}

func (h *Handler) writeServiceError(w http.ResponseWriter, err error, weekId string) {
	switch {
	case errors.Is(err, ErrWeekNotFound):
		rest.WriteError(w, http.StatusNotFound, "Week not found", weekId)
	case errors.Is(err, week.ErrItemNotFound):
		rest.WriteError(w, http.StatusNotFound, "Item not found", err.Error())
	case errors.Is(err, week.ErrDayOutOfRange):
		rest.WriteError(w, http.StatusBadRequest, "Invalid day", err.Error())
	default:
		log.Errorf("request for week %s failed: %v", weekId, err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func toSummaryDTO(record week.Record) WeekSummaryDTO {
	dto := WeekSummaryDTO{
		Id:        record.Id,
		Title:     record.Title,
		StartDate: record.StartDate,
		EndDate:   record.EndDate,
	}
	if start, err := week.ParseISO(record.StartDate); err == nil {
		dto.WeekNumber = week.WeekNumberFromDate(start).String()
	}
	return dto
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.Errorf("failed to encode response: %v", err)
	}
}
