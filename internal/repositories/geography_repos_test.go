package repositories

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	pgx "github.com/jackc/pgx/v5"
	pgxmock "github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
)

type GeographyReposTestSuite struct {
	suite.Suite
	mock          pgxmock.PgxPoolIface
	estadoRepo    EstadoRepository
	municipioRepo MunicipioRepository
	coloniaRepo   ColoniaRepository
	context       context.Context
}

func (suite *GeographyReposTestSuite) SetupTest() {
	mock, err := pgxmock.NewPool()
	assert.NoError(suite.T(), err)
	suite.mock = mock

	suite.estadoRepo = NewEstadoRepo(mock)
	suite.municipioRepo = NewMunicipioRepo(mock)
	suite.coloniaRepo = NewColoniaRepo(mock)
	suite.context = context.Background()
}

func (suite *GeographyReposTestSuite) TearDownTest() {
	assert.NoError(suite.T(), suite.mock.ExpectationsWereMet())
	suite.mock.Close()
}

func TestGeographyReposTestSuite(t *testing.T) {
	suite.Run(t, new(GeographyReposTestSuite))
}

func (suite *GeographyReposTestSuite) TestEstadoList_OrderedByNombre() {
	now := time.Now()
	rows := pgxmock.NewRows([]string{"id", "nombre", "codigo", "created_at", "updated_at"}).
		AddRow(uuid.New(), "Aguascalientes", "AGS", now, now).
		AddRow(uuid.New(), "Jalisco", "JAL", now, now)

	suite.mock.ExpectQuery(`SELECT .+ FROM estados\s+ORDER BY nombre ASC`).
		WillReturnRows(rows)

	estados, err := suite.estadoRepo.List(suite.context)
	assert.NoError(suite.T(), err)
	assert.Len(suite.T(), estados, 2)
	assert.Equal(suite.T(), "Aguascalientes", estados[0].Nombre)
}

func (suite *GeographyReposTestSuite) TestMunicipioFindByIDAndEstado_ScopedToEstado() {
	id := uuid.New()
	estadoID := uuid.New()
	now := time.Now()

	rows := pgxmock.NewRows([]string{"id", "nombre", "estado_id", "created_at", "updated_at"}).
		AddRow(id, "Guadalajara", estadoID, now, now)

	suite.mock.ExpectQuery(`SELECT .+ FROM municipios\s+WHERE id = \$1 AND estado_id = \$2`).
		WithArgs(id, estadoID).
		WillReturnRows(rows)

	municipio, err := suite.municipioRepo.FindByIDAndEstado(suite.context, id, estadoID)
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), estadoID, municipio.EstadoID)
}

func (suite *GeographyReposTestSuite) TestMunicipioFindByIDAndEstado_WrongEstadoIsNotFound() {
	id := uuid.New()
	estadoID := uuid.New()

	suite.mock.ExpectQuery(`SELECT .+ FROM municipios\s+WHERE id = \$1 AND estado_id = \$2`).
		WithArgs(id, estadoID).
		WillReturnError(pgx.ErrNoRows)

	_, err := suite.municipioRepo.FindByIDAndEstado(suite.context, id, estadoID)
	assert.True(suite.T(), IsNotFound(err))
}

func (suite *GeographyReposTestSuite) TestColoniaFindByCodigoPostal_ManyPerCode() {
	municipioID := uuid.New()
	estadoID := uuid.New()
	now := time.Now()

	rows := pgxmock.NewRows([]string{"id", "nombre", "codigo_postal", "municipio_id", "estado_id", "created_at", "updated_at"}).
		AddRow(uuid.New(), "Americana", "44160", municipioID, estadoID, now, now).
		AddRow(uuid.New(), "Lafayette", "44160", municipioID, estadoID, now, now)

	suite.mock.ExpectQuery(`SELECT .+ FROM colonias\s+WHERE codigo_postal = \$1\s+ORDER BY nombre ASC`).
		WithArgs("44160").
		WillReturnRows(rows)

	colonias, err := suite.coloniaRepo.FindByCodigoPostal(suite.context, "44160")
	assert.NoError(suite.T(), err)
	assert.Len(suite.T(), colonias, 2)
}
