package auth

import (
	"clinicroom-service/internal/app/contracts"
	"clinicroom-service/internal/app/models"
	"clinicroom-service/internal/pkg/constvars"
	"clinicroom-service/internal/pkg/exceptions"
	"context"
	"errors"
	"sync"
	"time"

	"go.uber.org/zap"
)

var errStateStoreClosed = errors.New("auth state store is not open")

// stateStore keeps sessions in redis. Init must succeed before any other
// call.
type stateStore struct {
	RedisRepository contracts.RedisRepository
	Log             *zap.Logger

	mu   sync.RWMutex
	open bool
}

func NewStateStore(redisRepository contracts.RedisRepository, logger *zap.Logger) contracts.AuthStateStore {
	return &stateStore{
		RedisRepository: redisRepository,
		Log:             logger,
	}
}

func sessionKey(sessionID string) string {
	return constvars.RedisKeySessionPrefix + sessionID
}

func (s *stateStore) Init(ctx context.Context) error {
	if err := s.RedisRepository.Ping(ctx); err != nil {
		s.Log.Error("stateStore.Init error pinging redis", zap.Error(err))
		return err
	}
	s.mu.Lock()
	s.open = true
	s.mu.Unlock()
	s.Log.Info("stateStore.Init succeeded")
	return nil
}

func (s *stateStore) Close(ctx context.Context) error {
	s.mu.Lock()
	s.open = false
	s.mu.Unlock()
	s.Log.Info("stateStore.Close succeeded")
	return nil
}

func (s *stateStore) ensureOpen() error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.open {
		return exceptions.ErrServerProcess(errStateStoreClosed)
	}
	return nil
}

func (s *stateStore) Save(ctx context.Context, session *models.Session, ttl time.Duration) error {
	if err := s.ensureOpen(); err != nil {
		return err
	}
	return s.RedisRepository.Set(ctx, sessionKey(session.SessionID), session, ttl)
}

func (s *stateStore) Get(ctx context.Context, sessionID string) (*models.Session, error) {
	if err := s.ensureOpen(); err != nil {
		return nil, err
	}

	session := new(models.Session)
	found, err := s.RedisRepository.GetInto(ctx, sessionKey(sessionID), session)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, exceptions.ErrInvalidSession(errors.New("session not found"))
	}
	return session, nil
}

func (s *stateStore) Delete(ctx context.Context, sessionID string) error {
	if err := s.ensureOpen(); err != nil {
		return err
	}
	return s.RedisRepository.Delete(ctx, sessionKey(sessionID))
}
