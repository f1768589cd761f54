package service

import (
	"context"
	"fmt"

	"hotelos/config"
	"hotelos/infras/otel"
	"hotelos/internal/domains/invoice/delivery"
	"hotelos/internal/domains/invoice/document"
	"hotelos/internal/domains/invoice/model"
	"hotelos/internal/domains/invoice/model/dto"
	"hotelos/internal/domains/invoice/repository"
	"hotelos/shared"
	"hotelos/shared/cache"
	"hotelos/shared/constant"
	gDto "hotelos/shared/dto"
	"hotelos/shared/failure"

	"github.com/rs/zerolog/log"
)

type Invoice interface {
	GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (dto.GetInvoicesResponse, error)
	Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (int, error)
	Get(ctx context.Context, id string) (dto.InvoiceResponse, error)
	Document(ctx context.Context, id string) (body []byte, fileName string, err error)
	Redeliver(ctx context.Context, id string) (dto.DeliveryResponse, error)
	HandleDeliveryRequest(ctx context.Context, event dto.DeliveryRequested) error
}

type serviceImpl struct {
	repo       repository.Invoice
	itemRepo   repository.Item
	dispatcher delivery.Dispatcher
	publisher  delivery.Publisher
	cfg        *config.Config
	cache      cache.RedisCache
	otel       otel.Otel
}

func New(
	repo repository.Invoice,
	itemRepo repository.Item,
	dispatcher delivery.Dispatcher,
	publisher delivery.Publisher,
	cfg *config.Config,
	cache cache.RedisCache,
	otel otel.Otel,
) Invoice {
	return &serviceImpl{
		repo:       repo,
		itemRepo:   itemRepo,
		dispatcher: dispatcher,
		publisher:  publisher,
		cfg:        cfg,
		cache:      cache,
		otel:       otel,
	}
}

// InvalidateCaches drops cached reads of the given invoices and every invoice list.
func InvalidateCaches(ctx context.Context, redisCache cache.RedisCache, ids ...string) {
	go func() {
		c := context.WithoutCancel(ctx)

		for _, id := range ids {
			if err := redisCache.Delete(c, shared.BuildCacheKey(model.CacheGet, id)); err != nil {
				log.Error().Err(err).Msg("failed to delete invoice cache")
			}
		}

		shared.InvalidateCaches(c, redisCache, model.CacheGetAll)
		shared.InvalidateCaches(c, redisCache, model.CacheCount)
	}()
}

func (s *serviceImpl) GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetInvoicesResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAll")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKeyWithQuery(model.CacheGetAll, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for invoices")

		return res, nil
	}

	total, err := s.Count(ctx, req, filter)
	if err != nil {
		return res, fmt.Errorf("failed to count invoices: %w", err)
	}

	models, err := s.repo.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get invoices")

		return res, fmt.Errorf("failed to get invoices: %w", err)
	}

	res.FromModels(models, total, req.Limit)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save invoices to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res int, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Count")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKeyWithQuery(model.CacheCount, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		return res, nil
	}

	res, err = s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count invoices")

		return res, fmt.Errorf("failed to count invoices: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save invoice count to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.InvoiceResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKey(model.CacheGet, id)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		return res, nil
	}

	invoice, items, err := s.load(ctx, id)
	if err != nil {
		return res, err
	}

	res.FromModel(invoice)
	res.WithItems(items)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save invoice to cache")
		}
	}()

	return res, nil
}

// Document rebuilds the invoice page from the stored rows.
func (s *serviceImpl) Document(ctx context.Context, id string) (body []byte, fileName string, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Document")
	defer scope.End()
	defer scope.TraceIfError(err)

	invoice, items, err := s.load(ctx, id)
	if err != nil {
		return nil, constant.Empty, err
	}

	body, err = document.Render(invoice, items)
	if err != nil {
		log.Error().Err(err).Str("invoice_id", id).Msg("failed to render invoice")

		return nil, constant.Empty, fmt.Errorf("failed to render invoice: %w", err)
	}

	return body, document.FileName(invoice), nil
}

func (s *serviceImpl) Redeliver(ctx context.Context, id string) (res dto.DeliveryResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Redeliver")
	defer scope.End()
	defer scope.TraceIfError(err)

	invoice, items, err := s.load(ctx, id)
	if err != nil {
		return res, err
	}

	result := s.dispatcher.Deliver(ctx, invoice, items)

	InvalidateCaches(ctx, s.cache, invoice.ID)

	return result.Response(invoice.ID), nil
}

// HandleDeliveryRequest runs one queued delivery. An incomplete delivery is
// queued again until the configured attempts are used up, then dropped with
// an error log.
func (s *serviceImpl) HandleDeliveryRequest(ctx context.Context, event dto.DeliveryRequested) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelEventScopeName, constant.OtelEventScopeName+".HandleDeliveryRequest")
	defer scope.End()
	defer scope.TraceIfError(err)

	res, err := s.Redeliver(ctx, event.InvoiceID)
	if failure.IsNotFound(err) {
		log.Error().Str("invoice_id", event.InvoiceID).Msg("dropping delivery request for unknown invoice")

		return nil
	}

	if err != nil {
		return err
	}

	if res.Status == dto.DeliveryDelivered {
		log.Info().Str("invoice_id", event.InvoiceID).Int("attempt", event.Attempt).Msg("invoice delivered")

		return nil
	}

	if event.Attempt >= s.cfg.Hotel.Delivery.MaxAttempts {
		log.Error().
			Str("invoice_id", event.InvoiceID).
			Int("attempt", event.Attempt).
			Strs("warnings", res.Warnings).
			Msg("giving up on invoice delivery")

		return nil
	}

	event.Attempt++

	if err = s.publisher.RequestDelivery(ctx, event); err != nil {
		log.Error().Err(err).Str("invoice_id", event.InvoiceID).Msg("failed to requeue invoice delivery")

		return fmt.Errorf("failed to requeue invoice delivery: %w", err)
	}

	return nil
}

func (s *serviceImpl) load(ctx context.Context, id string) (model.Invoice, []model.Item, error) {
	invoice, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get invoice")

		return invoice, nil, fmt.Errorf("failed to get invoice: %w", err)
	}

	if invoice.ID == constant.Empty {
		return invoice, nil, failure.NotFound("invoice not found")
	}

	items, err := s.itemRepo.GetAll(ctx,
		gDto.QueryParams{SortBy: model.FieldPosition, SortDir: gDto.SortDirAsc},
		shared.FilterByID(invoice.ID, model.FieldInvoiceID, model.ItemTableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get invoice items")

		return invoice, nil, fmt.Errorf("failed to get invoice items: %w", err)
	}

	return invoice, items, nil
}
