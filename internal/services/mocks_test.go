package services

import (
	"context"
	"io"
	"time"

	"tianguis/internal/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// Mock repositories and services shared by the service test suites.

type MockEstadoRepository struct {
	mock.Mock
}

func (m *MockEstadoRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Estado, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Estado), args.Error(1)
}

func (m *MockEstadoRepository) List(ctx context.Context) ([]*models.Estado, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Estado), args.Error(1)
}

type MockMunicipioRepository struct {
	mock.Mock
}

func (m *MockMunicipioRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Municipio, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Municipio), args.Error(1)
}

func (m *MockMunicipioRepository) FindByIDAndEstado(ctx context.Context, id, estadoID uuid.UUID) (*models.Municipio, error) {
	args := m.Called(ctx, id, estadoID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Municipio), args.Error(1)
}

func (m *MockMunicipioRepository) ListByEstado(ctx context.Context, estadoID uuid.UUID) ([]*models.Municipio, error) {
	args := m.Called(ctx, estadoID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Municipio), args.Error(1)
}

type MockColoniaRepository struct {
	mock.Mock
}

func (m *MockColoniaRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Colonia, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Colonia), args.Error(1)
}

func (m *MockColoniaRepository) FindByCodigoPostal(ctx context.Context, codigoPostal string) ([]*models.Colonia, error) {
	args := m.Called(ctx, codigoPostal)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Colonia), args.Error(1)
}

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *models.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) Update(ctx context.Context, user *models.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) Deactivate(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockListingRepository struct {
	mock.Mock
}

func (m *MockListingRepository) Create(ctx context.Context, listing *models.Listing) error {
	args := m.Called(ctx, listing)
	return args.Error(0)
}

func (m *MockListingRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Listing, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Listing), args.Error(1)
}

func (m *MockListingRepository) Update(ctx context.Context, listing *models.Listing) error {
	args := m.Called(ctx, listing)
	return args.Error(0)
}

func (m *MockListingRepository) Deactivate(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockListingRepository) List(ctx context.Context, filter *models.ListingFilter, limit, offset int) ([]*models.Listing, error) {
	args := m.Called(ctx, filter, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Listing), args.Error(1)
}

func (m *MockListingRepository) Count(ctx context.Context, filter *models.ListingFilter) (int, error) {
	args := m.Called(ctx, filter)
	return args.Int(0), args.Error(1)
}

func (m *MockListingRepository) ListByUsuario(ctx context.Context, usuarioID uuid.UUID, includeInactive bool, limit, offset int) ([]*models.Listing, error) {
	args := m.Called(ctx, usuarioID, includeInactive, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Listing), args.Error(1)
}

func (m *MockListingRepository) CountByUsuario(ctx context.Context, usuarioID uuid.UUID, includeInactive bool) (int, error) {
	args := m.Called(ctx, usuarioID, includeInactive)
	return args.Int(0), args.Error(1)
}

func (m *MockListingRepository) IncrementVistas(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockInterestRepository struct {
	mock.Mock
}

func (m *MockInterestRepository) Create(ctx context.Context, interest *models.Interest) error {
	args := m.Called(ctx, interest)
	return args.Error(0)
}

func (m *MockInterestRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Interest, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Interest), args.Error(1)
}

func (m *MockInterestRepository) ListByVendedor(ctx context.Context, vendedorID uuid.UUID) ([]*models.Interest, error) {
	args := m.Called(ctx, vendedorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Interest), args.Error(1)
}

func (m *MockInterestRepository) ListByInteresado(ctx context.Context, usuarioID uuid.UUID) ([]*models.Interest, error) {
	args := m.Called(ctx, usuarioID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Interest), args.Error(1)
}

func (m *MockInterestRepository) MarkLeido(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockCacheService struct {
	mock.Mock
}

func (m *MockCacheService) GetEstados(ctx context.Context) ([]*models.Estado, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Estado), args.Error(1)
}

func (m *MockCacheService) SetEstados(ctx context.Context, estados []*models.Estado, ttl time.Duration) error {
	args := m.Called(ctx, estados, ttl)
	return args.Error(0)
}

func (m *MockCacheService) GetMunicipios(ctx context.Context, estadoID uuid.UUID) ([]*models.Municipio, error) {
	args := m.Called(ctx, estadoID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Municipio), args.Error(1)
}

func (m *MockCacheService) SetMunicipios(ctx context.Context, estadoID uuid.UUID, municipios []*models.Municipio, ttl time.Duration) error {
	args := m.Called(ctx, estadoID, municipios, ttl)
	return args.Error(0)
}

func (m *MockCacheService) GetColoniasByCodigoPostal(ctx context.Context, codigoPostal string) ([]*models.Colonia, error) {
	args := m.Called(ctx, codigoPostal)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Colonia), args.Error(1)
}

func (m *MockCacheService) SetColoniasByCodigoPostal(ctx context.Context, codigoPostal string, colonias []*models.Colonia, ttl time.Duration) error {
	args := m.Called(ctx, codigoPostal, colonias, ttl)
	return args.Error(0)
}

func (m *MockCacheService) Ping(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

type MockMinioService struct {
	mock.Mock
}

func (m *MockMinioService) UploadImage(ctx context.Context, bucket, key, contentType string, reader io.Reader, size int64) error {
	args := m.Called(ctx, bucket, key, contentType, reader, size)
	return args.Error(0)
}

func (m *MockMinioService) GetPresignedURL(bucket, key string, expiry time.Duration) (string, error) {
	args := m.Called(bucket, key, expiry)
	return args.String(0), args.Error(1)
}

func (m *MockMinioService) DeleteImage(ctx context.Context, bucket, key string) error {
	args := m.Called(ctx, bucket, key)
	return args.Error(0)
}

func (m *MockMinioService) EnsureBucketExists(ctx context.Context, bucketName string) error {
	args := m.Called(ctx, bucketName)
	return args.Error(0)
}

type MockGeographyService struct {
	mock.Mock
}

func (m *MockGeographyService) ValidateLocation(ctx context.Context, input LocationInput, requireColonia bool) (*ResolvedLocation, error) {
	args := m.Called(ctx, input, requireColonia)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ResolvedLocation), args.Error(1)
}

func (m *MockGeographyService) ListEstados(ctx context.Context) ([]*models.Estado, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Estado), args.Error(1)
}

func (m *MockGeographyService) ListMunicipiosByEstado(ctx context.Context, estadoID uuid.UUID) ([]*models.Municipio, error) {
	args := m.Called(ctx, estadoID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Municipio), args.Error(1)
}

func (m *MockGeographyService) GetMunicipio(ctx context.Context, id uuid.UUID) (*models.Municipio, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Municipio), args.Error(1)
}

func (m *MockGeographyService) FindColoniasByCodigoPostal(ctx context.Context, codigoPostal string) ([]*models.Colonia, error) {
	args := m.Called(ctx, codigoPostal)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Colonia), args.Error(1)
}

type MockNotificationService struct {
	mock.Mock
	sent chan *InterestNotification
}

func NewMockNotificationService() *MockNotificationService {
	return &MockNotificationService{sent: make(chan *InterestNotification, 1)}
}

func (m *MockNotificationService) SendInterestNotification(ctx context.Context, n *InterestNotification) error {
	args := m.Called(ctx, n)
	if m.sent != nil {
		m.sent <- n
	}
	return args.Error(0)
}
