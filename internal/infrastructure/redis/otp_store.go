package redis

import (
	"context"
	"crypto/rand"
	"crypto/subtle"
	"errors"
	"fmt"
	"math/big"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/jhoicas/restaurant-admin-api/internal/application/ordering"
)

var _ ordering.Verifier = (*OTPStore)(nil)

const (
	otpPrefix         = "otp:"
	otpAttemptsPrefix = "otp:attempts:"
	otpDigits         = 6
	otpMaxAttempts    = 5
)

// OTPStore códigos de un solo uso por (restaurante, teléfono).
type OTPStore struct {
	c   *redis.Client
	ttl time.Duration
}

// NewOTPStore construye el store. ttl por defecto 5 minutos.
func NewOTPStore(c *redis.Client, ttl time.Duration) *OTPStore {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &OTPStore{c: c, ttl: ttl}
}

func otpKey(tenantID, phone string) string {
	return otpPrefix + tenantID + ":" + phone
}

func attemptsKey(tenantID, phone string) string {
	return otpAttemptsPrefix + tenantID + ":" + phone
}

// Issue genera un código nuevo y reinicia los intentos. Un código previo queda invalidado.
func (s *OTPStore) Issue(ctx context.Context, tenantID, phone string) (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1_000_000))
	if err != nil {
		return "", fmt.Errorf("generate otp: %w", err)
	}
	code := fmt.Sprintf("%0*d", otpDigits, n.Int64())

	pipe := s.c.TxPipeline()
	pipe.Set(ctx, otpKey(tenantID, phone), code, s.ttl)
	pipe.Del(ctx, attemptsKey(tenantID, phone))
	if _, err := pipe.Exec(ctx); err != nil {
		return "", fmt.Errorf("save otp: %w", err)
	}
	return code, nil
}

// Verify compara el código y lo consume si coincide. Tras otpMaxAttempts fallos el código se invalida.
func (s *OTPStore) Verify(ctx context.Context, tenantID, phone, code string) (bool, error) {
	key := otpKey(tenantID, phone)
	stored, err := s.c.Get(ctx, key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return false, nil
		}
		return false, fmt.Errorf("get otp: %w", err)
	}

	if subtle.ConstantTimeCompare([]byte(stored), []byte(code)) == 1 {
		if err := s.c.Del(ctx, key, attemptsKey(tenantID, phone)).Err(); err != nil {
			return false, fmt.Errorf("consume otp: %w", err)
		}
		return true, nil
	}

	pipe := s.c.TxPipeline()
	attempts := pipe.Incr(ctx, attemptsKey(tenantID, phone))
	pipe.Expire(ctx, attemptsKey(tenantID, phone), s.ttl)
	if _, err := pipe.Exec(ctx); err != nil {
		return false, fmt.Errorf("count otp attempts: %w", err)
	}
	if attempts.Val() >= otpMaxAttempts {
		if err := s.c.Del(ctx, key).Err(); err != nil {
			return false, fmt.Errorf("invalidate otp: %w", err)
		}
	}
	return false, nil
}
