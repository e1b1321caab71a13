package config

import (
	"errors"
	"fmt"
	"reflect"
	"sync"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// structCache stores parsed tuning structs keyed by their type name.
type structCache struct {
	mu     sync.RWMutex
	values map[string]any
	onces  map[string]*sync.Once
}

func newStructCache() *structCache {
	return &structCache{
		values: make(map[string]any),
		onces:  make(map[string]*sync.Once),
	}
}

func (c *structCache) get(key string) (any, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	v, ok := c.values[key]
	return v, ok
}

func (c *structCache) set(key string, v any) {
	c.mu.Lock()
	c.values[key] = v
	c.mu.Unlock()
}

func (c *structCache) once(key string) *sync.Once {
	c.mu.Lock()
	defer c.mu.Unlock()
	once, ok := c.onces[key]
	if !ok {
		once = new(sync.Once)
		c.onces[key] = once
	}
	return once
}

func (c *structCache) forget(key string) {
	c.mu.Lock()
	delete(c.values, key)
	delete(c.onces, key)
	c.mu.Unlock()
}

var (
	cache = newStructCache()

	defaultEnvLoaded sync.Once
)

// Load parses environment variables into an env-tagged struct. Each struct
// type is parsed once per process; later calls copy the cached value.
//
// Integrations use it for tuning knobs that are not part of the application
// config document:
//
//	type PoolConfig struct {
//		MaxConns int32         `env:"PG_MAX_CONNS" envDefault:"10"`
//		Timeout  time.Duration `env:"PG_CONNECT_TIMEOUT" envDefault:"10s"`
//	}
//
//	var pool PoolConfig
//	if err := config.Load(&pool); err != nil {
//		return err
//	}
//
// The default .env file in the working directory is applied before the
// first parse if it exists.
func Load[T any](v *T) error {
	defaultEnvLoaded.Do(func() {
		_ = godotenv.Load()
	})
	if v == nil {
		return ErrNilPointer
	}

	key := typeKey[T]()
	if cached, ok := cache.get(key); ok {
		*v = cached.(T)
		return nil
	}

	var err error
	cache.once(key).Do(func() {
		var parsed T
		if parseErr := env.Parse(&parsed); parseErr != nil {
			err = errors.Join(ErrParsingConfig, parseErr)
			return
		}
		cache.set(key, parsed)
	})
	if err != nil {
		// allow a retry once the environment is fixed
		cache.forget(key)
		return err
	}

	if cached, ok := cache.get(key); ok {
		*v = cached.(T)
		return nil
	}
	return ErrConfigNotLoaded
}

// MustLoad works like Load but panics if configuration loading fails.
func MustLoad[T any](v *T) {
	if err := Load(v); err != nil {
		panic(fmt.Sprintf("Failed to load required configuration: %v", err))
	}
}

// ForceReloadConfig drops the cached value of T and parses the environment again.
func ForceReloadConfig[T any](v *T) error {
	cache.forget(typeKey[T]())
	return Load(v)
}

// ResetCache drops every cached struct. Intended for tests.
func ResetCache() {
	cache.mu.Lock()
	cache.values = make(map[string]any)
	cache.onces = make(map[string]*sync.Once)
	cache.mu.Unlock()
}

// LoadEnv applies .env files to the process environment. Variables that are
// already set win, and earlier files win over later ones.
func LoadEnv(paths ...string) error {
	if err := godotenv.Load(paths...); err != nil {
		return errors.Join(ErrLoadEnvFile, err)
	}
	return nil
}

// MustLoadEnv works like LoadEnv but panics on failure.
func MustLoadEnv(paths ...string) {
	if err := LoadEnv(paths...); err != nil {
		panic(fmt.Sprintf("Failed to load env files: %v", err))
	}
}

func typeKey[T any]() string {
	t := reflect.TypeFor[T]()
	return t.PkgPath() + "." + t.String()
}
