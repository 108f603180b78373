package services

import (
	"context"
	"testing"

	"tianguis/internal/common"
	"tianguis/internal/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	"golang.org/x/crypto/bcrypt"
)

type UserServiceTestSuite struct {
	suite.Suite
	mockUserRepo *MockUserRepository
	mockGeo      *MockGeographyService
	service      UserService

	resolved *ResolvedLocation
}

func (suite *UserServiceTestSuite) SetupTest() {
	suite.mockUserRepo = &MockUserRepository{}
	suite.mockGeo = &MockGeographyService{}
	suite.service = NewUserService(suite.mockUserRepo, suite.mockGeo, "test-secret")

	estado := &models.Estado{ID: uuid.New(), Nombre: "Jalisco", Codigo: "JAL"}
	municipio := &models.Municipio{ID: uuid.New(), Nombre: "Guadalajara", EstadoID: estado.ID}
	colonia := &models.Colonia{ID: uuid.New(), Nombre: "Americana", CodigoPostal: "44160", MunicipioID: municipio.ID, EstadoID: estado.ID}
	suite.resolved = &ResolvedLocation{Estado: estado, Municipio: municipio, Colonia: colonia}
}

func (suite *UserServiceTestSuite) TearDownTest() {
	suite.mockUserRepo.AssertExpectations(suite.T())
	suite.mockGeo.AssertExpectations(suite.T())
}

func TestUserServiceTestSuite(t *testing.T) {
	suite.Run(t, new(UserServiceTestSuite))
}

func (suite *UserServiceTestSuite) registerInput() RegisterInput {
	return RegisterInput{
		Email:        "Ana@Example.com",
		Password:     "supersecret",
		CodigoPostal: "44160",
		EstadoID:     &suite.resolved.Estado.ID,
		MunicipioID:  &suite.resolved.Municipio.ID,
		ColoniaID:    &suite.resolved.Colonia.ID,
	}
}

func (suite *UserServiceTestSuite) TestRegister_HashesPasswordAndNormalizesEmail() {
	suite.mockGeo.On("ValidateLocation", context.Background(), mock.Anything, true).Return(suite.resolved, nil)

	var created *models.User
	suite.mockUserRepo.On("Create", context.Background(), mock.AnythingOfType("*models.User")).
		Run(func(args mock.Arguments) { created = args.Get(1).(*models.User) }).
		Return(nil)

	user, token, err := suite.service.Register(context.Background(), suite.registerInput())

	suite.NoError(err)
	suite.NotEmpty(token)
	suite.Equal("ana@example.com", user.Email)
	suite.True(user.Activo)
	suite.NotEqual("supersecret", created.PasswordHash)
	suite.NoError(bcrypt.CompareHashAndPassword([]byte(created.PasswordHash), []byte("supersecret")))
}

func (suite *UserServiceTestSuite) TestRegister_RequiresColonia() {
	suite.mockGeo.On("ValidateLocation", context.Background(), mock.Anything, true).Return(nil, common.ErrMissingColonia)

	input := suite.registerInput()
	input.ColoniaID = nil

	_, _, err := suite.service.Register(context.Background(), input)

	suite.ErrorIs(err, common.ErrMissingColonia)
	suite.mockUserRepo.AssertNotCalled(suite.T(), "Create")
}

func (suite *UserServiceTestSuite) TestRegister_ShortPassword() {
	input := suite.registerInput()
	input.Password = "corta"

	_, _, err := suite.service.Register(context.Background(), input)

	var domainErr *common.DomainError
	suite.ErrorAs(err, &domainErr)
	suite.Equal("VALIDATION_ERROR", domainErr.Code)
	suite.Equal("password", domainErr.Field)
}

func (suite *UserServiceTestSuite) TestRegister_InvalidEmail() {
	input := suite.registerInput()
	input.Email = "not-an-email"

	_, _, err := suite.service.Register(context.Background(), input)

	var domainErr *common.DomainError
	suite.ErrorAs(err, &domainErr)
	suite.Equal("email", domainErr.Field)
}

func (suite *UserServiceTestSuite) TestRegister_DuplicateEmail() {
	suite.mockGeo.On("ValidateLocation", context.Background(), mock.Anything, true).Return(suite.resolved, nil)
	suite.mockUserRepo.On("Create", context.Background(), mock.AnythingOfType("*models.User")).
		Return(&pgconn.PgError{Code: "23505", ConstraintName: "users_email_key"})

	_, _, err := suite.service.Register(context.Background(), suite.registerInput())

	suite.ErrorIs(err, common.ErrEmailExists)
}

func (suite *UserServiceTestSuite) TestLogin_Success() {
	hash, _ := bcrypt.GenerateFromPassword([]byte("supersecret"), bcrypt.DefaultCost)
	user := &models.User{ID: uuid.New(), Email: "ana@example.com", PasswordHash: string(hash), Activo: true}
	suite.mockUserRepo.On("GetByEmail", context.Background(), "ana@example.com").Return(user, nil)

	got, token, err := suite.service.Login(context.Background(), " Ana@Example.com ", "supersecret")

	suite.NoError(err)
	suite.NotEmpty(token)
	suite.Equal(user.ID, got.ID)
}

func (suite *UserServiceTestSuite) TestLogin_WrongPassword() {
	hash, _ := bcrypt.GenerateFromPassword([]byte("supersecret"), bcrypt.DefaultCost)
	user := &models.User{ID: uuid.New(), Email: "ana@example.com", PasswordHash: string(hash), Activo: true}
	suite.mockUserRepo.On("GetByEmail", context.Background(), "ana@example.com").Return(user, nil)

	_, _, err := suite.service.Login(context.Background(), "ana@example.com", "wrong")

	suite.ErrorIs(err, common.ErrInvalidCredentials)
}

func (suite *UserServiceTestSuite) TestLogin_UnknownEmail() {
	suite.mockUserRepo.On("GetByEmail", context.Background(), "nadie@example.com").Return(nil, pgx.ErrNoRows)

	_, _, err := suite.service.Login(context.Background(), "nadie@example.com", "supersecret")

	suite.ErrorIs(err, common.ErrInvalidCredentials)
}

func (suite *UserServiceTestSuite) TestLogin_InactiveAccount() {
	hash, _ := bcrypt.GenerateFromPassword([]byte("supersecret"), bcrypt.DefaultCost)
	user := &models.User{ID: uuid.New(), Email: "ana@example.com", PasswordHash: string(hash), Activo: false}
	suite.mockUserRepo.On("GetByEmail", context.Background(), "ana@example.com").Return(user, nil)

	_, _, err := suite.service.Login(context.Background(), "ana@example.com", "supersecret")

	suite.ErrorIs(err, common.ErrAccountInactive)
}

func (suite *UserServiceTestSuite) storedUser() *models.User {
	coloniaID := suite.resolved.Colonia.ID
	return &models.User{
		ID:           uuid.New(),
		Email:        "ana@example.com",
		PasswordHash: "$2a$10$stored",
		CodigoPostal: "44160",
		ColoniaID:    &coloniaID,
		EstadoID:     suite.resolved.Estado.ID,
		MunicipioID:  suite.resolved.Municipio.ID,
		Activo:       true,
	}
}

func (suite *UserServiceTestSuite) TestUpdateProfile_PartialLocationRevalidatesMergedTuple() {
	user := suite.storedUser()
	suite.mockUserRepo.On("GetByID", context.Background(), user.ID).Return(user, nil)

	newEstadoID := uuid.New()
	var seen LocationInput
	suite.mockGeo.On("ValidateLocation", context.Background(), mock.Anything, false).
		Run(func(args mock.Arguments) { seen = args.Get(1).(LocationInput) }).
		Return(suite.resolved, nil)
	suite.mockUserRepo.On("Update", context.Background(), user).Return(nil)

	_, err := suite.service.UpdateProfile(context.Background(), user.ID, UpdateProfileInput{EstadoID: &newEstadoID})

	suite.NoError(err)
	// The submitted estado merges with the stored municipio, colonia and CP.
	suite.Equal(newEstadoID, *seen.EstadoID)
	suite.Equal(user.MunicipioID, *seen.MunicipioID)
	suite.NotNil(seen.ColoniaID)
	suite.Equal("44160", *seen.CodigoPostal)
}

func (suite *UserServiceTestSuite) TestUpdateProfile_NoLocationFieldsSkipsValidation() {
	user := suite.storedUser()
	suite.mockUserRepo.On("GetByID", context.Background(), user.ID).Return(user, nil)
	suite.mockUserRepo.On("Update", context.Background(), user).Return(nil)

	nombre := "Ana López"
	updated, err := suite.service.UpdateProfile(context.Background(), user.ID, UpdateProfileInput{Nombre: &nombre})

	suite.NoError(err)
	suite.Equal("Ana López", *updated.Nombre)
	suite.mockGeo.AssertNotCalled(suite.T(), "ValidateLocation")
}

func (suite *UserServiceTestSuite) TestUpdateProfile_NewPasswordIsRehashed() {
	user := suite.storedUser()
	suite.mockUserRepo.On("GetByID", context.Background(), user.ID).Return(user, nil)
	suite.mockUserRepo.On("Update", context.Background(), user).Return(nil)

	password := "nuevacontraseña"
	updated, err := suite.service.UpdateProfile(context.Background(), user.ID, UpdateProfileInput{Password: &password})

	suite.NoError(err)
	suite.NoError(bcrypt.CompareHashAndPassword([]byte(updated.PasswordHash), []byte(password)))
}

func (suite *UserServiceTestSuite) TestDeactivate_UnknownUser() {
	id := uuid.New()
	suite.mockUserRepo.On("GetByID", context.Background(), id).Return(nil, pgx.ErrNoRows)

	err := suite.service.Deactivate(context.Background(), id)

	var domainErr *common.DomainError
	suite.ErrorAs(err, &domainErr)
	suite.Equal("NOT_FOUND", domainErr.Code)
}

func (suite *UserServiceTestSuite) TestDeactivate_Success() {
	user := suite.storedUser()
	suite.mockUserRepo.On("GetByID", context.Background(), user.ID).Return(user, nil)
	suite.mockUserRepo.On("Deactivate", context.Background(), user.ID).Return(nil)

	suite.NoError(suite.service.Deactivate(context.Background(), user.ID))
}
