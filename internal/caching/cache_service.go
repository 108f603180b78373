package caching

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"tianguis/internal/models"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// CacheService fronts the read-mostly geography reference data. A cache error
// is never fatal; callers fall back to the database.
type CacheService interface {
	GetEstados(ctx context.Context) ([]*models.Estado, error)
	SetEstados(ctx context.Context, estados []*models.Estado, ttl time.Duration) error

	GetMunicipios(ctx context.Context, estadoID uuid.UUID) ([]*models.Municipio, error)
	SetMunicipios(ctx context.Context, estadoID uuid.UUID, municipios []*models.Municipio, ttl time.Duration) error

	GetColoniasByCodigoPostal(ctx context.Context, codigoPostal string) ([]*models.Colonia, error)
	SetColoniasByCodigoPostal(ctx context.Context, codigoPostal string, colonias []*models.Colonia, ttl time.Duration) error

	Ping(ctx context.Context) error
}

type redisCacheService struct {
	client *redis.Client
}

func NewRedisCacheService(addr, password string, db int) CacheService {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	return &redisCacheService{client: client}
}

func (r *redisCacheService) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

// getJSON unmarshals the value at key into dest, reporting a miss as
// (false, nil).
func (r *redisCacheService) getJSON(ctx context.Context, key string, dest interface{}) (bool, error) {
	data, err := r.client.Get(ctx, key).Bytes()
	if err != nil {
		if err == redis.Nil {
			return false, nil
		}
		return false, err
	}
	if err := json.Unmarshal(data, dest); err != nil {
		return false, err
	}
	return true, nil
}

func (r *redisCacheService) setJSON(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return r.client.Set(ctx, key, data, ttl).Err()
}

func (r *redisCacheService) GetEstados(ctx context.Context) ([]*models.Estado, error) {
	var estados []*models.Estado
	found, err := r.getJSON(ctx, "tianguis:estados", &estados)
	if err != nil || !found {
		return nil, err
	}
	return estados, nil
}

func (r *redisCacheService) SetEstados(ctx context.Context, estados []*models.Estado, ttl time.Duration) error {
	return r.setJSON(ctx, "tianguis:estados", estados, ttl)
}

func (r *redisCacheService) GetMunicipios(ctx context.Context, estadoID uuid.UUID) ([]*models.Municipio, error) {
	var municipios []*models.Municipio
	key := fmt.Sprintf("tianguis:municipios:%s", estadoID.String())
	found, err := r.getJSON(ctx, key, &municipios)
	if err != nil || !found {
		return nil, err
	}
	return municipios, nil
}

func (r *redisCacheService) SetMunicipios(ctx context.Context, estadoID uuid.UUID, municipios []*models.Municipio, ttl time.Duration) error {
	key := fmt.Sprintf("tianguis:municipios:%s", estadoID.String())
	return r.setJSON(ctx, key, municipios, ttl)
}

func (r *redisCacheService) GetColoniasByCodigoPostal(ctx context.Context, codigoPostal string) ([]*models.Colonia, error) {
	var colonias []*models.Colonia
	key := fmt.Sprintf("tianguis:colonias:cp:%s", codigoPostal)
	found, err := r.getJSON(ctx, key, &colonias)
	if err != nil || !found {
		return nil, err
	}
	return colonias, nil
}

func (r *redisCacheService) SetColoniasByCodigoPostal(ctx context.Context, codigoPostal string, colonias []*models.Colonia, ttl time.Duration) error {
	key := fmt.Sprintf("tianguis:colonias:cp:%s", codigoPostal)
	return r.setJSON(ctx, key, colonias, ttl)
}
