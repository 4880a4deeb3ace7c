package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"bunkhouse/config"
	"bunkhouse/infras/otel"
	"bunkhouse/infras/s3"
	"bunkhouse/internal/domains/document/model"
	"bunkhouse/internal/domains/document/model/dto"
	"bunkhouse/internal/domains/document/repository"
	"bunkhouse/shared"
	"bunkhouse/shared/cache"
	"bunkhouse/shared/constant"
	gDto "bunkhouse/shared/dto"
	"bunkhouse/shared/failure"
	"bunkhouse/shared/timezone"
)

const (
	cacheGetDocument    = "document:get"
	cacheGetAllDocument = "document:gets"
	cacheCountDocument  = "document:count"
)

type Document interface {
	Upload(ctx context.Context, req dto.UploadDocumentRequest) (dto.DocumentResponse, error)
	GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (dto.GetDocumentsResponse, error)
	Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (int, error)
	Get(ctx context.Context, id string) (dto.DocumentResponse, error)
	GetMine(ctx context.Context, req gDto.QueryParams) (dto.GetDocumentsResponse, error)
	Review(ctx context.Context, req dto.ReviewDocumentRequest, id string) error
	Delete(ctx context.Context, id string) error
}

type serviceImpl struct {
	repo  repository.Document
	cfg   *config.Config
	cache cache.RedisCache
	otel  otel.Otel
	s3    s3.S3
}

func New(repo repository.Document, cfg *config.Config, cache cache.RedisCache, otel otel.Otel, s3 s3.S3) Document {
	return &serviceImpl{
		repo:  repo,
		cfg:   cfg,
		cache: cache,
		otel:  otel,
		s3:    s3,
	}
}

func (s *serviceImpl) Upload(ctx context.Context, req dto.UploadDocumentRequest) (res dto.DocumentResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Upload")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	bucketName := s.cfg.External.S3.BucketName

	// Prefix with a fresh id so two guests uploading "passport.pdf" never
	// overwrite each other.
	fileName := uuid.NewString() + "_" + req.File.Filename

	url, err := s.s3.UploadFile(ctx, bucketName, model.EntityName, req.FileData, req.File, fileName)
	if err != nil {
		log.Error().Err(err).Msg("failed to upload file to S3")

		return res, fmt.Errorf("failed to upload file to S3: %w", err)
	}

	document := req.ToModel(user, url)

	if err = s.repo.Insert(ctx, document); err != nil {
		log.Error().Err(err).Msg("failed to create document")

		return res, fmt.Errorf("failed to create document: %w", err)
	}

	res.FromModel(document)

	go func() {
		c := context.WithoutCancel(ctx)

		shared.InvalidateCaches(c, s.cache, cacheGetAllDocument)
		shared.InvalidateCaches(c, s.cache, cacheCountDocument)
	}()

	return res, nil
}

func (s *serviceImpl) GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetDocumentsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAll")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKeyWithQuery(cacheGetAllDocument, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for documents")

		return res, nil
	}

	total, err := s.Count(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count documents")

		return res, fmt.Errorf("failed to count documents: %w", err)
	}

	documents, err := s.repo.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get documents")

		return res, fmt.Errorf("failed to get documents: %w", err)
	}

	res.FromModels(documents, total, req.Limit)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save documents to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res int, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Count")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKeyWithQuery(cacheCountDocument, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for document count")

		return res, nil
	}

	res, err = s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count documents")

		return res, fmt.Errorf("failed to count documents: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save document count to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.DocumentResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKey(cacheGetDocument, id)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for document")

		return res, nil
	}

	document, err := s.getDocument(ctx, id)
	if err != nil {
		return res, err
	}

	res.FromModel(document)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save document to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) GetMine(ctx context.Context, req gDto.QueryParams) (dto.GetDocumentsResponse, error) {
	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	return s.GetAll(ctx, req, shared.FilterByID(user, model.FieldUserID, model.TableName))
}

func (s *serviceImpl) Review(ctx context.Context, req dto.ReviewDocumentRequest, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Review")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	exist, err := s.repo.Exist(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to check if document exists")

		return fmt.Errorf("failed to check if document exists: %w", err)
	}

	if !exist {
		return failure.NotFound("document not found") // nolint:wrapcheck
	}

	update := map[string]any{
		model.FieldStatus:        req.Status,
		constant.FieldModifiedAt: timezone.Now(),
		constant.FieldModifiedBy: user,
	}

	if err = s.repo.Update(ctx, update, filter); err != nil {
		log.Error().Err(err).Msg("failed to review document")

		return fmt.Errorf("failed to review document: %w", err)
	}

	s.invalidateDocumentCaches(ctx, id)

	return nil
}

func (s *serviceImpl) Delete(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Delete")
	defer scope.End()
	defer scope.TraceIfError(err)

	document, err := s.getDocument(ctx, id)
	if err != nil {
		return err
	}

	if err = s.repo.Delete(ctx, shared.FilterByID(id, model.FieldID, model.TableName)); err != nil {
		log.Error().Err(err).Msg("failed to delete document")

		return fmt.Errorf("failed to delete document: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		bucketName := s.cfg.External.S3.BucketName

		objectName := s.s3.GetObjectNameFromURL(bucketName, document.FileURL)
		if objectName == constant.Empty {
			log.Warn().Str("url", document.FileURL).Msg("failed to extract object name from URL")

			return
		}

		if err := s.s3.DeleteFile(c, bucketName, model.EntityName, objectName); err != nil {
			log.Error().Err(err).Str("objectName", objectName).Msg("failed to delete file from S3")
		}
	}()

	s.invalidateDocumentCaches(ctx, id)

	return nil
}

func (s *serviceImpl) getDocument(ctx context.Context, id string) (model.Document, error) {
	document, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get document")

		return document, fmt.Errorf("failed to get document: %w", err)
	}

	if document.ID == constant.Empty {
		return document, failure.NotFound("document not found") // nolint:wrapcheck
	}

	return document, nil
}

func (s *serviceImpl) invalidateDocumentCaches(ctx context.Context, id string) {
	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Delete(c, shared.BuildCacheKey(cacheGetDocument, id)); err != nil {
			log.Error().Err(err).Msg("failed to delete document from cache")
		}

		shared.InvalidateCaches(c, s.cache, cacheGetAllDocument)
		shared.InvalidateCaches(c, s.cache, cacheCountDocument)
	}()
}
