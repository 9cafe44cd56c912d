package profiles

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
	profileRepo "github.com/m04kA/SMC-ParkingService/internal/infra/storage/profile"
	"github.com/m04kA/SMC-ParkingService/internal/service/profiles/models"
)

// Service сервис профилей пользователей и административной сводки
type Service struct {
	profileRepo ProfileRepository
	lotRepo     LotRepository
	bookingRepo BookingRepository
	logger      Logger
}

// NewService создает новый экземпляр сервиса профилей
func NewService(
	profileRepo ProfileRepository,
	lotRepo LotRepository,
	bookingRepo BookingRepository,
	logger Logger,
) *Service {
	return &Service{
		profileRepo: profileRepo,
		lotRepo:     lotRepo,
		bookingRepo: bookingRepo,
		logger:      logger,
	}
}

// Authenticate превращает подтверждённую identity в Actor. Профиль создаётся
// при первом входе с ролью по умолчанию, роль читается из профиля
func (s *Service) Authenticate(ctx context.Context, id uuid.UUID, email string) (*domain.Actor, error) {
	profile, err := s.profileRepo.Ensure(ctx, id, email)
	if err != nil {
		s.logger.Error("Authenticate: failed to ensure profile id=%s: %v", id, err)
		return nil, fmt.Errorf("%w: Authenticate - ensure profile: %v", ErrInternal, err)
	}

	return &domain.Actor{ID: profile.ID, Email: profile.Email, Role: profile.Role}, nil
}

// Me возвращает профиль текущего пользователя
func (s *Service) Me(ctx context.Context, actor *domain.Actor) (*models.ProfileResponse, error) {
	if actor == nil {
		return nil, ErrUnauthorized
	}

	profile, err := s.profileRepo.Ensure(ctx, actor.ID, actor.Email)
	if err != nil {
		s.logger.Error("Me: failed to get profile id=%s: %v", actor.ID, err)
		return nil, fmt.Errorf("%w: Me - ensure profile: %v", ErrInternal, err)
	}

	return models.FromDomainProfile(profile), nil
}

// SetupProfile сохраняет имя и данные транспортного средства
func (s *Service) SetupProfile(ctx context.Context, actor *domain.Actor, req *models.SetupProfileRequest) (*models.ProfileResponse, error) {
	if actor == nil {
		return nil, ErrUnauthorized
	}

	s.logger.Info("SetupProfile: updating profile id=%s", actor.ID)

	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: name is required", ErrInvalidInput)
	}

	profile, err := s.profileRepo.Ensure(ctx, actor.ID, actor.Email)
	if err != nil {
		s.logger.Error("SetupProfile: failed to get profile id=%s: %v", actor.ID, err)
		return nil, fmt.Errorf("%w: SetupProfile - ensure profile: %v", ErrInternal, err)
	}

	profile.FullName = &name
	if req.Vehicle != nil {
		vehicleType, err := domain.ParseVehicleType(req.Vehicle.Type)
		if err != nil {
			s.logger.Warn("SetupProfile: %v", err)
			return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
		plate := strings.ToUpper(strings.TrimSpace(req.Vehicle.RegistrationNumber))
		if plate == "" {
			return nil, fmt.Errorf("%w: vehicle registration number is required", ErrInvalidInput)
		}
		profile.VehiclePlate = &plate
		profile.VehicleType = &vehicleType
	}

	if err := s.profileRepo.UpdateDetails(ctx, profile); err != nil {
		if errors.Is(err, profileRepo.ErrProfileNotFound) {
			return nil, ErrProfileNotFound
		}
		s.logger.Error("SetupProfile: repository error for id=%s: %v", actor.ID, err)
		return nil, fmt.Errorf("%w: SetupProfile - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("SetupProfile: profile id=%s updated", actor.ID)
	return models.FromDomainProfile(profile), nil
}

// ListUsers список всех пользователей. Доступно администраторам
func (s *Service) ListUsers(ctx context.Context, actor *domain.Actor) (*models.ProfileListResponse, error) {
	if err := s.requireAdmin("ListUsers", actor); err != nil {
		return nil, err
	}

	profiles, err := s.profileRepo.List(ctx)
	if err != nil {
		s.logger.Error("ListUsers: repository error: %v", err)
		return nil, fmt.Errorf("%w: ListUsers - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainProfileList(profiles), nil
}

// AdminStats сводка: пользователи, парковки, незавершённые и завершённые брони
func (s *Service) AdminStats(ctx context.Context, actor *domain.Actor) (*models.AdminStatsResponse, error) {
	if err := s.requireAdmin("AdminStats", actor); err != nil {
		return nil, err
	}

	var (
		stats domain.AdminStats
		err   error
	)

	if stats.TotalUsers, err = s.profileRepo.Count(ctx); err != nil {
		return nil, s.statsError("count users", err)
	}
	if stats.TotalLots, err = s.lotRepo.Count(ctx); err != nil {
		return nil, s.statsError("count lots", err)
	}
	if stats.ActiveBookings, err = s.bookingRepo.CountByStatus(ctx, domain.NonTerminalStatuses...); err != nil {
		return nil, s.statsError("count active bookings", err)
	}
	if stats.CompletedBookings, err = s.bookingRepo.CountByStatus(ctx, domain.StatusCompleted); err != nil {
		return nil, s.statsError("count completed bookings", err)
	}

	return models.FromDomainStats(&stats), nil
}

// AssignRole меняет роль пользователя по email. Используется из CLI
func (s *Service) AssignRole(ctx context.Context, email, role string) error {
	parsed, err := domain.ParseRole(strings.TrimSpace(role))
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	email = strings.TrimSpace(email)
	if email == "" {
		return fmt.Errorf("%w: email is required", ErrInvalidInput)
	}

	s.logger.Info("AssignRole: assigning role=%s to %s", parsed, email)

	if err := s.profileRepo.SetRole(ctx, email, parsed); err != nil {
		if errors.Is(err, profileRepo.ErrProfileNotFound) {
			s.logger.Warn("AssignRole: no profile with email=%s, the user must sign in first", email)
			return ErrProfileNotFound
		}
		s.logger.Error("AssignRole: repository error: %v", err)
		return fmt.Errorf("%w: AssignRole - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("AssignRole: %s is now %s", email, parsed)
	return nil
}

// SeedSuperadmin назначает пользователю роль superadmin
func (s *Service) SeedSuperadmin(ctx context.Context, email string) error {
	return s.AssignRole(ctx, email, string(domain.RoleSuperadmin))
}

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

func (s *Service) statsError(step string, err error) error {
	s.logger.Error("AdminStats: failed to %s: %v", step, err)
	return fmt.Errorf("%w: AdminStats - %s: %v", ErrInternal, step, err)
}
