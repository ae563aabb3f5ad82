package redis

import (
	"context"
	"testing"
	"time"

	"github.com/Alijeyrad/health_companion/config"
)

func TestFromCentralConfig_Defaults(t *testing.T) {
	got := FromCentralConfig(config.RedisConfig{Addr: "cache:6379", DB: 2})

	if got.Addr != "cache:6379" || got.DB != 2 {
		t.Errorf("addr/db not copied: %+v", got)
	}
	if got.PoolSize != 10 || got.MinIdleConns != 2 {
		t.Errorf("pool defaults = %d/%d, want 10/2", got.PoolSize, got.MinIdleConns)
	}
	if got.DialTimeout != 5*time.Second || got.ReadTimeout != 3*time.Second {
		t.Errorf("timeout defaults = %v/%v", got.DialTimeout, got.ReadTimeout)
	}
}

func TestFromCentralConfig_Overrides(t *testing.T) {
	got := FromCentralConfig(config.RedisConfig{PoolSize: 50, WriteTimeoutSeconds: 9})

	if got.PoolSize != 50 {
		t.Errorf("PoolSize = %d, want 50", got.PoolSize)
	}
	if got.WriteTimeout != 9*time.Second {
		t.Errorf("WriteTimeout = %v, want 9s", got.WriteTimeout)
	}

	opts := Options(got)
	if opts.PoolSize != 50 || opts.WriteTimeout != 9*time.Second {
		t.Errorf("Options() = %+v", opts)
	}
}

func TestNewRedisFromCentral_Disabled(t *testing.T) {
	rdb, err := NewRedisFromCentral(context.Background(), config.RedisConfig{})
	if err != nil || rdb != nil {
		t.Errorf("NewRedisFromCentral(empty) = %v, %v; want nil, nil", rdb, err)
	}
}
