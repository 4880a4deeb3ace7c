package housekeeping

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"bunkhouse/infras/otel"
	"bunkhouse/internal/domains/housekeeping/model"
	"bunkhouse/internal/domains/housekeeping/model/dto"
	"bunkhouse/internal/domains/housekeeping/service"
	"bunkhouse/shared/constant"
	"bunkhouse/shared/validator"
	"bunkhouse/transport/http/response"
)

type Handler struct {
	service service.Housekeeping
	otel    otel.Otel
}

func New(service service.Housekeeping, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/housekeeping/tasks", func(routerGroup chi.Router) {
		routerGroup.Post("/", handler.CreateTasks)
		routerGroup.Get("/{staff_id}", handler.GetTasks)
		routerGroup.Patch("/{id}", handler.UpdateTask)
	})
}

// CreateTasks assigns housekeeping tasks to a staff member.
// @Summary Create housekeeping tasks
// @Description Assign one or more housekeeping tasks to a staff member, registering the housekeeper on first assignment.
// @Tags Housekeeping
// @Accept json
// @Produce json
// @Param request body dto.CreateTasksRequest true "Create Tasks Request"
// @Success 201 {object} response.Message "Tasks created successfully"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/housekeeping/tasks [post]
// @Security BearerAuth
func (handler *Handler) CreateTasks(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateTasks")
	defer scope.End()

	req := dto.CreateTasksRequest{}

	if err := validator.Validate(request.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(writer, err)

		return
	}

	if err := handler.service.CreateTasks(ctx, req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create housekeeping tasks")

		response.WithError(writer, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Housekeeping tasks created successfully by user " + user)

	response.WithMessage(writer, http.StatusCreated, "Tasks created successfully")
}

// GetTasks retrieves the tasks assigned to a staff member.
// @Summary Get housekeeping tasks
// @Description Retrieve the housekeeping tasks assigned to a staff member, optionally filtered by task status.
// @Tags Housekeeping
// @Accept json
// @Produce json
// @Param staff_id path string true "Staff ID"
// @Param task_status query string false "Filter by task status (pending, in-progress, completed)"
// @Success 200 {object} response.Data[dto.GetTasksResponse] "List of tasks"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/housekeeping/tasks/{staff_id} [get]
// @Security BearerAuth
func (handler *Handler) GetTasks(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetTasks")
	defer scope.End()

	staffID := chi.URLParam(r, constant.RequestParamStaffID)
	taskStatus := r.URL.Query().Get(model.FieldTaskStatus)

	tasks, err := handler.service.GetTasks(ctx, staffID, taskStatus)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get housekeeping tasks")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Housekeeping tasks retrieved successfully for staff " + staffID)

	response.WithJSON(w, http.StatusOK, tasks)
}

// UpdateTask updates a housekeeping task.
// @Summary Update a housekeeping task
// @Description Update the description or status of a housekeeping task. Completing a task stamps its completion date.
// @Tags Housekeeping
// @Accept json
// @Produce json
// @Param id path string true "Task ID"
// @Param request body dto.UpdateTaskRequest true "Update Task Request"
// @Success 200 {object} response.Message "Task updated successfully"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/housekeeping/tasks/{id} [patch]
// @Security BearerAuth
func (handler *Handler) UpdateTask(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdateTask")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	req := dto.UpdateTaskRequest{}
	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	if err := handler.service.UpdateTask(ctx, req, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to update housekeeping task")

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Housekeeping task updated successfully by user " + user)

	response.WithMessage(w, http.StatusOK, "Task updated successfully")
}
