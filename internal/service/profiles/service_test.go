package profiles

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
	profileRepo "github.com/m04kA/SMC-ParkingService/internal/infra/storage/profile"
	"github.com/m04kA/SMC-ParkingService/internal/service/profiles/models"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type memProfiles map[uuid.UUID]*domain.Profile

func (m memProfiles) GetByID(_ context.Context, id uuid.UUID) (*domain.Profile, error) {
	if p, ok := m[id]; ok {
		cp := *p
		return &cp, nil
	}
	return nil, profileRepo.ErrProfileNotFound
}

func (m memProfiles) Ensure(ctx context.Context, id uuid.UUID, email string) (*domain.Profile, error) {
	if _, ok := m[id]; !ok {
		m[id] = &domain.Profile{ID: id, Email: email, Role: domain.DefaultRole}
	}
	return m.GetByID(ctx, id)
}

func (m memProfiles) UpdateDetails(_ context.Context, p *domain.Profile) error {
	stored, ok := m[p.ID]
	if !ok {
		return profileRepo.ErrProfileNotFound
	}
	stored.FullName, stored.VehiclePlate, stored.VehicleType = p.FullName, p.VehiclePlate, p.VehicleType
	return nil
}

func (m memProfiles) SetRole(_ context.Context, email string, role domain.Role) error {
	for _, p := range m {
		if p.Email == email {
			p.Role = role
			return nil
		}
	}
	return profileRepo.ErrProfileNotFound
}

func (m memProfiles) List(context.Context) ([]*domain.Profile, error) {
	out := make([]*domain.Profile, 0, len(m))
	for _, p := range m {
		out = append(out, p)
	}
	return out, nil
}

func (m memProfiles) Count(context.Context) (int, error) { return len(m), nil }

type lotCount int

func (c lotCount) Count(context.Context) (int, error) { return int(c), nil }

type statusCounts map[domain.BookingStatus]int

func (c statusCounts) CountByStatus(_ context.Context, statuses ...domain.BookingStatus) (int, error) {
	total := 0
	for _, s := range statuses {
		total += c[s]
	}
	return total, nil
}

func TestAuthenticateCreatesProfileWithDefaultRole(t *testing.T) {
	profiles := memProfiles{}
	svc := NewService(profiles, lotCount(0), statusCounts{}, nopLogger{})
	id := uuid.New()

	actor, err := svc.Authenticate(context.Background(), id, "driver@example.com")
	require.NoError(t, err)
	assert.Equal(t, domain.RoleUser, actor.Role)
	assert.Equal(t, id, actor.ID)

	profiles[id].Role = domain.RoleOperator
	actor, err = svc.Authenticate(context.Background(), id, "driver@example.com")
	require.NoError(t, err)
	assert.Equal(t, domain.RoleOperator, actor.Role)
}

func TestSetupProfile(t *testing.T) {
	profiles := memProfiles{}
	svc := NewService(profiles, lotCount(0), statusCounts{}, nopLogger{})
	actor := &domain.Actor{ID: uuid.New(), Email: "a@example.com", Role: domain.RoleUser}

	resp, err := svc.SetupProfile(context.Background(), actor, &models.SetupProfileRequest{
		Name:    " Ivan ",
		Vehicle: &models.VehicleRequest{RegistrationNumber: "ka01ab1234", Type: "FOUR_WHEELER"},
	})
	require.NoError(t, err)
	require.NotNil(t, resp.Vehicle)
	assert.Equal(t, "Ivan", *resp.FullName)
	assert.Equal(t, "KA01AB1234", *resp.Vehicle.RegistrationNumber)
	assert.Equal(t, "FOUR_WHEELER", *resp.Vehicle.Type)
	assert.Equal(t, "Ivan", *profiles[actor.ID].FullName)

	_, err = svc.SetupProfile(context.Background(), actor, &models.SetupProfileRequest{
		Name:    "Ivan",
		Vehicle: &models.VehicleRequest{RegistrationNumber: "X", Type: "TRUCK"},
	})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestAdminStats(t *testing.T) {
	profiles := memProfiles{uuid.New(): {Role: domain.RoleUser}, uuid.New(): {Role: domain.RoleAdmin}}
	counts := statusCounts{
		domain.StatusPending:   1,
		domain.StatusConfirmed: 2,
		domain.StatusActive:    3,
		domain.StatusCompleted: 4,
		domain.StatusCancelled: 5,
	}
	svc := NewService(profiles, lotCount(7), counts, nopLogger{})

	stats, err := svc.AdminStats(context.Background(), &domain.Actor{ID: uuid.New(), Role: domain.RoleSuperadmin})
	require.NoError(t, err)
	assert.Equal(t, &models.AdminStatsResponse{TotalUsers: 2, TotalLots: 7, ActiveBookings: 6, CompletedBookings: 4}, stats)

	_, err = svc.AdminStats(context.Background(), &domain.Actor{ID: uuid.New(), Role: domain.RoleOperator})
	assert.ErrorIs(t, err, ErrAccessDenied)

	_, err = svc.ListUsers(context.Background(), nil)
	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestAssignRole(t *testing.T) {
	id := uuid.New()
	profiles := memProfiles{id: {ID: id, Email: "boss@example.com", Role: domain.RoleUser}}
	svc := NewService(profiles, lotCount(0), statusCounts{}, nopLogger{})

	require.NoError(t, svc.AssignRole(context.Background(), "boss@example.com", "operator"))
	assert.Equal(t, domain.RoleOperator, profiles[id].Role)

	require.NoError(t, svc.SeedSuperadmin(context.Background(), "boss@example.com"))
	assert.Equal(t, domain.RoleSuperadmin, profiles[id].Role)

	assert.ErrorIs(t, svc.AssignRole(context.Background(), "boss@example.com", "root"), ErrInvalidInput)
	assert.ErrorIs(t, svc.AssignRole(context.Background(), "nobody@example.com", "admin"), ErrProfileNotFound)
}
