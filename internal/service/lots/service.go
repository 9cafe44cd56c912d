package lots

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
	lotRepo "github.com/m04kA/SMC-ParkingService/internal/infra/storage/lot"
	operatorRepo "github.com/m04kA/SMC-ParkingService/internal/infra/storage/operator"
	profileRepo "github.com/m04kA/SMC-ParkingService/internal/infra/storage/profile"
	"github.com/m04kA/SMC-ParkingService/internal/service/lots/models"
)

// Service сервис каталога парковок
type Service struct {
	lotRepo      LotRepository
	bookingRepo  BookingRepository
	operatorRepo OperatorRepository
	profileRepo  ProfileRepository
	cache        ListCache
	txManager    TransactionManager
	timeProvider TimeProvider
	logger       Logger
}

// NewService создает новый экземпляр сервиса парковок
func NewService(
	lotRepo LotRepository,
	bookingRepo BookingRepository,
	operatorRepo OperatorRepository,
	profileRepo ProfileRepository,
	cache ListCache,
	txManager TransactionManager,
	logger Logger,
) *Service {
	return &Service{
		lotRepo:      lotRepo,
		bookingRepo:  bookingRepo,
		operatorRepo: operatorRepo,
		profileRepo:  profileRepo,
		cache:        cache,
		txManager:    txManager,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// AddLot создает парковку со статической картой мест, все места свободны.
// Доступно администраторам
func (s *Service) AddLot(ctx context.Context, actor *domain.Actor, req *models.AddLotRequest) (*models.LotResponse, error) {
	if err := s.requireAdmin("AddLot", actor); err != nil {
		return nil, err
	}

	s.logger.Info("AddLot: creating lot name=%q, totalSlots=%d by user=%s", req.Name, req.TotalSlots, actor.ID)

	if err := validateLot(req); err != nil {
		s.logger.Warn("AddLot: validation failed: %v", err)
		return nil, err
	}

	created, err := s.lotRepo.Create(ctx, req.ToDomainLot())
	if err != nil {
		s.logger.Error("AddLot: repository error: %v", err)
		return nil, fmt.Errorf("%w: AddLot - repository error: %v", ErrInternal, err)
	}

	s.invalidate(ctx, "AddLot")

	s.logger.Info("AddLot: successfully created lot id=%s", created.ID)
	return models.FromDomainLot(created), nil
}

// InitializeSlots строит статическую карту мест парковки. Существующие ключи сохраняются,
// места, занятые незавершёнными бронями в текущий момент, помечаются occupied,
// счётчик свободных мест пересчитывается. Доступно администраторам
func (s *Service) InitializeSlots(ctx context.Context, actor *domain.Actor, lotID uuid.UUID) (*models.LotResponse, error) {
	if err := s.requireAdmin("InitializeSlots", actor); err != nil {
		return nil, err
	}

	s.logger.Info("InitializeSlots: initializing slots for lot=%s by user=%s", lotID, actor.ID)

	var result *domain.ParkingLot
	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		lot, err := s.lotRepo.GetByIDForUpdate(txCtx, lotID)
		if err != nil {
			if errors.Is(err, lotRepo.ErrLotNotFound) {
				s.logger.Warn("InitializeSlots: lot id=%s not found", lotID)
				return ErrLotNotFound
			}
			s.logger.Error("InitializeSlots: failed to lock lot id=%s: %v", lotID, err)
			return fmt.Errorf("%w: InitializeSlots - get lot: %v", ErrInternal, err)
		}

		occupied, err := s.bookingRepo.ListOccupiedSlotsAt(txCtx, lotID, s.timeProvider.Now())
		if err != nil {
			s.logger.Error("InitializeSlots: failed to list occupied slots for lot=%s: %v", lotID, err)
			return fmt.Errorf("%w: InitializeSlots - occupied slots: %v", ErrInternal, err)
		}

		slots := buildSlotMap(lot, occupied)
		for _, key := range occupied {
			if _, ok := slots[key]; !ok {
				s.logger.Warn("InitializeSlots: occupied slot=%s is outside the generated map of lot=%s", key, lotID)
			}
		}
		available := domain.RecountAvailable(lot.TotalSlots, slots)

		if err := s.lotRepo.UpdateCache(txCtx, lotID, slots, available, lot.AvailableSlots); err != nil {
			if errors.Is(err, lotRepo.ErrConcurrentModification) {
				s.logger.Warn("InitializeSlots: cache of lot=%s changed concurrently", lotID)
				return ErrConcurrentModification
			}
			s.logger.Error("InitializeSlots: failed to write slots for lot=%s: %v", lotID, err)
			return fmt.Errorf("%w: InitializeSlots - update cache: %v", ErrInternal, err)
		}

		lot.Slots = slots
		lot.AvailableSlots = available
		result = lot
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.invalidate(ctx, "InitializeSlots")

	s.logger.Info("InitializeSlots: lot=%s has %d slots, %d available", lotID, len(result.Slots), result.AvailableSlots)
	return models.FromDomainLot(result), nil
}

// List возвращает все парковки. Публичный метод, ответ кэшируется в Redis
func (s *Service) List(ctx context.Context) (*models.LotListResponse, error) {
	lots, hit, err := s.cache.GetList(ctx)
	if err != nil {
		s.logger.Warn("List: cache read failed, falling back to database: %v", err)
	}
	if hit {
		return models.FromDomainLotList(lots), nil
	}

	lots, err = s.lotRepo.List(ctx)
	if err != nil {
		s.logger.Error("List: repository error: %v", err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	if err := s.cache.SetList(ctx, lots); err != nil {
		s.logger.Warn("List: failed to cache lot list: %v", err)
	}

	return models.FromDomainLotList(lots), nil
}

// Get получает парковку по ID. Публичный метод
func (s *Service) Get(ctx context.Context, id uuid.UUID) (*models.LotResponse, error) {
	lot, err := s.lotRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, lotRepo.ErrLotNotFound) {
			s.logger.Warn("Get: lot id=%s not found", id)
			return nil, ErrLotNotFound
		}
		s.logger.Error("Get: repository error for lot id=%s: %v", id, err)
		return nil, fmt.Errorf("%w: Get - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainLot(lot), nil
}

// AssignOperator назначает оператора на парковку. Доступно администраторам
func (s *Service) AssignOperator(ctx context.Context, actor *domain.Actor, lotID uuid.UUID, req *models.AssignOperatorRequest) error {
	if err := s.requireAdmin("AssignOperator", actor); err != nil {
		return err
	}

	s.logger.Info("AssignOperator: assigning operator=%s to lot=%s by user=%s", req.OperatorID, lotID, actor.ID)

	if _, err := s.Get(ctx, lotID); err != nil {
		return err
	}

	profile, err := s.profileRepo.GetByID(ctx, req.OperatorID)
	if err != nil {
		if errors.Is(err, profileRepo.ErrProfileNotFound) {
			s.logger.Warn("AssignOperator: profile id=%s not found", req.OperatorID)
			return ErrOperatorNotFound
		}
		s.logger.Error("AssignOperator: failed to get profile id=%s: %v", req.OperatorID, err)
		return fmt.Errorf("%w: AssignOperator - get profile: %v", ErrInternal, err)
	}
	if profile.Role != domain.RoleOperator {
		s.logger.Warn("AssignOperator: profile id=%s has role=%s", req.OperatorID, profile.Role)
		return fmt.Errorf("%w: profile %s is not an operator", ErrOperatorNotFound, req.OperatorID)
	}

	if err := s.operatorRepo.Assign(ctx, req.OperatorID, lotID); err != nil {
		if errors.Is(err, operatorRepo.ErrAlreadyAssigned) {
			s.logger.Warn("AssignOperator: operator=%s already assigned to lot=%s", req.OperatorID, lotID)
			return ErrAlreadyAssigned
		}
		s.logger.Error("AssignOperator: repository error: %v", err)
		return fmt.Errorf("%w: AssignOperator - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("AssignOperator: operator=%s assigned to lot=%s", req.OperatorID, lotID)
	return nil
}

// Вспомогательные методы

func (s *Service) requireAdmin(op string, actor *domain.Actor) error {
	if err := domain.RequireRole(actor, domain.AdminRoles...); err != nil {
		if errors.Is(err, domain.ErrUnauthorized) {
			return ErrUnauthorized
		}
		s.logger.Warn("%s: %v", op, err)
		return ErrAccessDenied
	}
	return nil
}

func (s *Service) invalidate(ctx context.Context, op string) {
	if err := s.cache.Invalidate(ctx); err != nil {
		s.logger.Warn("%s: failed to invalidate lot list cache: %v", op, err)
	}
}

// buildSlotMap объединяет существующие ключи со сгенерированными и выставляет
// состояние каждого места по фактической занятости
func buildSlotMap(lot *domain.ParkingLot, occupied []string) map[string]domain.SlotState {
	busy := make(map[string]struct{}, len(occupied))
	for _, key := range occupied {
		busy[key] = struct{}{}
	}

	slots := lot.CloneSlots()
	for _, key := range domain.GenerateSlotKeys(lot.TotalSlots, lot.SlotPrefix) {
		if _, ok := slots[key]; !ok {
			slots[key] = domain.SlotAvailable
		}
	}

	for key := range slots {
		if _, ok := busy[key]; ok {
			slots[key] = domain.SlotOccupied
		} else {
			slots[key] = domain.SlotAvailable
		}
	}
	return slots
}

func validateLot(req *models.AddLotRequest) error {
	switch {
	case strings.TrimSpace(req.Name) == "":
		return fmt.Errorf("%w: name is required", ErrInvalidInput)
	case strings.TrimSpace(req.Address) == "":
		return fmt.Errorf("%w: address is required", ErrInvalidInput)
	case req.TotalSlots <= 0:
		return fmt.Errorf("%w: totalSlots must be positive", ErrInvalidInput)
	case req.HourlyRate < 0:
		return fmt.Errorf("%w: pricePerHour must not be negative", ErrInvalidInput)
	case req.Latitude < -90 || req.Latitude > 90 || req.Longitude < -180 || req.Longitude > 180:
		return fmt.Errorf("%w: coordinates out of range", ErrInvalidInput)
	}
	return nil
}
