package document

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"bunkhouse/infras/otel"
	"bunkhouse/internal/domains/document/model"
	"bunkhouse/internal/domains/document/model/dto"
	"bunkhouse/internal/domains/document/service"
	"bunkhouse/shared/constant"
	gDto "bunkhouse/shared/dto"
	"bunkhouse/shared/failure"
	"bunkhouse/shared/validator"
	"bunkhouse/transport/http/response"
)

type Handler struct {
	service service.Document
	otel    otel.Otel
}

func New(service service.Document, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/documents", func(routerGroup chi.Router) {
		routerGroup.Post("/", handler.UploadDocument)
		routerGroup.Get("/", handler.GetDocuments)
		routerGroup.Get("/mine", handler.GetMyDocuments)
		routerGroup.Get("/{id}", handler.GetDocumentByID)
		routerGroup.Patch("/{id}/review", handler.ReviewDocument)
		routerGroup.Delete("/{id}", handler.DeleteDocument)
	})
}

// UploadDocument uploads an identity document for the authenticated user.
// @Summary Upload a document
// @Description Upload an identity document (image or PDF) for the authenticated user. The file is stored in object storage.
// @Tags Document
// @Accept multipart/form-data
// @Produce json
// @Param type formData string true "Document type (passport, id_card, visa, other)"
// @Param file formData file true "Document file (png, jpg, jpeg, pdf; max 10 MB)"
// @Success 201 {object} response.Data[dto.DocumentResponse] "Document uploaded successfully"
// @Failure 400 {object} response.Error
// @Failure 401 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/documents [post]
// @Security BearerAuth
func (handler *Handler) UploadDocument(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UploadDocument")
	defer scope.End()

	if err := request.ParseMultipartForm(constant.RequestMaxMemory); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to parse multipart form")

		response.WithError(writer, failure.BadRequestFromString("invalid multipart form"))

		return
	}

	file, fileHeader, err := request.FormFile(constant.FormFile)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to read file from form")

		response.WithError(writer, failure.BadRequestFromString("file is required"))

		return
	}
	defer file.Close()

	req := dto.UploadDocumentRequest{
		Type:     request.FormValue(model.FieldType),
		File:     fileHeader,
		FileData: file,
	}

	if err := validator.ValidateStruct(&req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate upload request")

		response.WithError(writer, err)

		return
	}

	res, err := handler.service.Upload(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to upload document")

		response.WithError(writer, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Document uploaded successfully by user " + user)

	response.WithJSON(writer, http.StatusCreated, res)
}

// GetDocuments retrieves all documents based on query parameters.
// @Summary Get all documents
// @Description Retrieve all uploaded documents with optional filtering and pagination.
// @Tags Document
// @Accept json
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Param status query string false "Filter by review status (pending, approved, rejected)"
// @Param type query string false "Filter by document type"
// @Success 200 {object} response.Data[dto.GetDocumentsResponse] "List of documents"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/documents [get]
// @Security BearerAuth
func (handler *Handler) GetDocuments(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetDocuments")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)

	status := r.URL.Query().Get(model.FieldStatus)
	documentType := r.URL.Query().Get(model.FieldType)

	filterGroup := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters:  []any{},
	}

	if status != "" {
		filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
			Field:    model.FieldStatus,
			Operator: gDto.FilterOperatorEq,
			Value:    status,
			Table:    model.TableName,
		})
	}

	if documentType != "" {
		filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
			Field:    model.FieldType,
			Operator: gDto.FilterOperatorEq,
			Value:    documentType,
			Table:    model.TableName,
		})
	}

	documents, err := handler.service.GetAll(ctx, queryParams, filterGroup)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get documents")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Documents retrieved successfully")

	response.WithJSON(w, http.StatusOK, documents)
}

// GetMyDocuments retrieves the documents of the authenticated user.
// @Summary Get my documents
// @Description Retrieve the documents uploaded by the currently authenticated user.
// @Tags Document
// @Accept json
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Success 200 {object} response.Data[dto.GetDocumentsResponse] "List of documents"
// @Failure 401 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/documents/mine [get]
// @Security BearerAuth
func (handler *Handler) GetMyDocuments(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetMyDocuments")
	defer scope.End()

	userID, ok := ctx.Value(constant.ContextKeyUserID).(string)
	if !ok || userID == "" {
		err := failure.Unauthorized("unauthorized")
		scope.TraceError(err)

		response.WithError(w, err)

		return
	}

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)

	documents, err := handler.service.GetMine(ctx, queryParams)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get my documents")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Documents retrieved successfully for user " + userID)

	response.WithJSON(w, http.StatusOK, documents)
}

// GetDocumentByID retrieves a document by its ID.
// @Summary Get a document by ID
// @Description Retrieve a document by its unique identifier.
// @Tags Document
// @Accept json
// @Produce json
// @Param id path string true "Document ID"
// @Success 200 {object} response.Data[dto.DocumentResponse] "Document details"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/documents/{id} [get]
// @Security BearerAuth
func (handler *Handler) GetDocumentByID(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetDocumentByID")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	document, err := handler.service.Get(ctx, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get document by ID")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Document retrieved successfully")

	response.WithJSON(w, http.StatusOK, document)
}

// ReviewDocument approves or rejects a document.
// @Summary Review a document
// @Description Approve or reject an uploaded document.
// @Tags Document
// @Accept json
// @Produce json
// @Param id path string true "Document ID"
// @Param request body dto.ReviewDocumentRequest true "Review Document Request"
// @Success 200 {object} response.Message "Document reviewed successfully"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/documents/{id}/review [patch]
// @Security BearerAuth
func (handler *Handler) ReviewDocument(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".ReviewDocument")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	req := dto.ReviewDocumentRequest{}
	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	if err := handler.service.Review(ctx, req, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to review document")

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Document reviewed successfully by user " + user)

	response.WithMessage(w, http.StatusOK, "Document reviewed successfully")
}

// DeleteDocument deletes a document by its ID.
// @Summary Delete a document by ID
// @Description Delete a document and remove its file from object storage.
// @Tags Document
// @Accept json
// @Produce json
// @Param id path string true "Document ID"
// @Success 200 {object} response.Message "Document deleted successfully"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/documents/{id} [delete]
// @Security BearerAuth
func (handler *Handler) DeleteDocument(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".DeleteDocument")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	if err := handler.service.Delete(ctx, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to delete document")

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Document deleted successfully by user " + user)

	response.WithMessage(w, http.StatusOK, "Document deleted successfully")
}
