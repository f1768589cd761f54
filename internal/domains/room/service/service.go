package service

import (
	"context"
	"fmt"

	"hotelos/config"
	"hotelos/infras/otel"
	"hotelos/internal/domains/room/model"
	"hotelos/internal/domains/room/model/dto"
	"hotelos/internal/domains/room/repository"
	"hotelos/shared"
	"hotelos/shared/cache"
	"hotelos/shared/constant"
	gDto "hotelos/shared/dto"
	"hotelos/shared/failure"
	gRepo "hotelos/shared/repository"

	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog/log"
)

type Room interface {
	Create(ctx context.Context, req dto.CreateRoomRequest) (dto.RoomResponse, error)
	GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (dto.GetRoomsResponse, error)
	Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (int, error)
	Get(ctx context.Context, id string) (dto.RoomResponse, error)
	Update(ctx context.Context, req dto.UpdateRoomRequest, id string) error
	UpdateStatus(ctx context.Context, req dto.UpdateRoomStatusRequest, id string) (dto.RoomResponse, error)
	GetServiceLogs(ctx context.Context, id string) (dto.GetServiceLogsResponse, error)
}

type serviceImpl struct {
	repo           repository.Room
	serviceLogRepo repository.ServiceLog
	tx             gRepo.Transactor
	cfg            *config.Config
	cache          cache.RedisCache
	otel           otel.Otel
}

func New(repo repository.Room, serviceLogRepo repository.ServiceLog, tx gRepo.Transactor, cfg *config.Config, cache cache.RedisCache, otel otel.Otel) Room {
	return &serviceImpl{
		repo:           repo,
		serviceLogRepo: serviceLogRepo,
		tx:             tx,
		cfg:            cfg,
		cache:          cache,
		otel:           otel,
	}
}

// InvalidateCaches drops cached reads of the given rooms and every room list.
// Other domains call it after changing room status.
func InvalidateCaches(ctx context.Context, redisCache cache.RedisCache, ids ...string) {
	go func() {
		c := context.WithoutCancel(ctx)

		for _, id := range ids {
			if err := redisCache.Delete(c, shared.BuildCacheKey(model.CacheGet, id)); err != nil {
				log.Error().Err(err).Msg("failed to delete room cache")
			}
		}

		shared.InvalidateCaches(c, redisCache, model.CacheGetAll)
		shared.InvalidateCaches(c, redisCache, model.CacheCount)
	}()
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreateRoomRequest) (res dto.RoomResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Create")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	room := req.ToModel(user)

	if err = s.repo.Insert(ctx, room); err != nil {
		log.Error().Err(err).Msg("failed to create room")

		return res, failure.FromDatabase(err, fmt.Sprintf("room number %s already exists", req.RoomNumber))
	}

	InvalidateCaches(ctx, s.cache)

	res.FromModel(room)

	return res, nil
}

func (s *serviceImpl) GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetRoomsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAll")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKeyWithQuery(model.CacheGetAll, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for rooms")

		return res, nil
	}

	total, err := s.Count(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count rooms")

		return res, fmt.Errorf("failed to count rooms: %w", err)
	}

	models, err := s.repo.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get rooms")

		return res, fmt.Errorf("failed to get rooms: %w", err)
	}

	res.FromModels(models, total, req.Limit)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save rooms to cache")
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
		log.Error().Err(err).Msg("failed to count rooms")

		return res, fmt.Errorf("failed to count rooms: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save room count to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.RoomResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKey(model.CacheGet, id)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for room")

		return res, nil
	}

	room, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get room")

		return res, fmt.Errorf("failed to get room: %w", err)
	}

	if room.ID == constant.Empty {
		return res, failure.NotFound("room not found")
	}

	res.FromModel(room)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save room to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Update(ctx context.Context, req dto.UpdateRoomRequest, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Update")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	currentRoom, err := s.repo.Get(ctx, filter, model.FieldID)
	if err != nil {
		log.Error().Err(err).Msg("failed to check room existence")

		return fmt.Errorf("failed to check room existence: %w", err)
	}

	if currentRoom.ID == constant.Empty {
		return failure.NotFound("room not found")
	}

	if err = s.repo.Update(ctx, shared.TransformFields(req, user), filter); err != nil {
		log.Error().Err(err).Msg("failed to update room")

		return fmt.Errorf("failed to update room: %w", err)
	}

	InvalidateCaches(ctx, s.cache, id)

	return nil
}

// UpdateStatus applies a housekeeping transition and logs it. The room row is
// locked so the change cannot interleave with a check-in or checkout.
func (s *serviceImpl) UpdateStatus(ctx context.Context, req dto.UpdateRoomStatusRequest, id string) (res dto.RoomResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".UpdateStatus")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	var room model.Room

	err = s.tx.WithTx(ctx, func(tx *sqlx.Tx) error {
		room, err = s.repo.GetTx(ctx, tx, filter, gRepo.LockForUpdate)
		if err != nil {
			return fmt.Errorf("failed to get room: %w", err)
		}

		if room.ID == constant.Empty {
			return failure.NotFound("room not found")
		}

		if !model.CanTransition(room.Status, req.Status) {
			return failure.Conflict(fmt.Sprintf("room %s cannot move from %s to %s", room.RoomNumber, room.Status, req.Status))
		}

		updated := shared.TransformFields(dto.StatusUpdate{Status: req.Status}, user)
		if err = s.repo.UpdateTx(ctx, tx, updated, filter); err != nil {
			return fmt.Errorf("failed to update room status: %w", err)
		}

		description := fmt.Sprintf("%s -> %s", room.Status, req.Status)
		if req.Note != constant.Empty {
			description += ": " + req.Note
		}

		return s.serviceLogRepo.InsertTx(ctx, tx, dto.NewServiceLog(room.ID, constant.Empty, model.ServiceTypeStatusChange, description, user))
	})
	if err != nil {
		log.Error().Err(err).Str("room_id", id).Msg("failed to update room status")

		return res, err
	}

	room.Status = req.Status
	res.FromModel(room)

	InvalidateCaches(ctx, s.cache, id)

	return res, nil
}

func (s *serviceImpl) GetServiceLogs(ctx context.Context, id string) (res dto.GetServiceLogsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetServiceLogs")
	defer scope.End()
	defer scope.TraceIfError(err)

	if _, err = s.Get(ctx, id); err != nil {
		return res, err
	}

	params := gDto.QueryParams{SortBy: model.FieldServiceLogCreatedAt, SortDir: gDto.SortDirDesc}

	logs, err := s.serviceLogRepo.GetAll(ctx, params, shared.FilterByID(id, model.FieldServiceLogRoomID, model.ServiceLogTableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get service logs")

		return res, fmt.Errorf("failed to get service logs: %w", err)
	}

	res.FromModels(logs)

	return res, nil
}
