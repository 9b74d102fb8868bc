package cache

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/valkey-io/valkey-go"

	"promptlane.ai/prompt-gateway/config/environment_variables"
)

// ValkeyCacheService provides shared-tier caching using Valkey
type ValkeyCacheService struct {
	client valkey.Client
}

// parseValkeyURL parses a Valkey URL and returns address, password, database, and error
func parseValkeyURL(valkeyURL string) (address, password string, database int, err error) {
	// Default values
	database = -1 // -1 means no database specified

	// Handle plain address without protocol
	if !strings.Contains(valkeyURL, "://") {
		return valkeyURL, "", -1, nil
	}

	u, err := url.Parse(valkeyURL)
	if err != nil {
		return "", "", -1, fmt.Errorf("invalid URL format: %w", err)
	}

	address = u.Host
	if address == "" {
		return "", "", -1, fmt.Errorf("no host specified in URL")
	}

	if u.User != nil {
		password, _ = u.User.Password()
	}

	// Extract database from path
	if u.Path != "" && u.Path != "/" {
		dbStr := strings.TrimPrefix(u.Path, "/")
		if dbStr != "" {
			if db, parseErr := strconv.Atoi(dbStr); parseErr == nil {
				database = db
			}
		}
	}

	return address, password, database, nil
}

// NewValkeyCacheService creates a new Valkey cache service
func NewValkeyCacheService() CacheService {
	valkeyURL := environment_variables.EnvironmentVariables.CACHE_URL
	if valkeyURL == "" {
		valkeyURL = "valkey://localhost:6379"
	}

	address, password, db, err := parseValkeyURL(valkeyURL)
	if err != nil {
		// Return a no-op implementation for graceful degradation
		return &NoOpCacheService{}
	}

	opts := valkey.ClientOption{
		InitAddress: []string{address},
	}
	if password != "" {
		opts.Password = password
	}
	if db != -1 {
		opts.SelectDB = db
	}

	// Override with environment variables if provided
	if environment_variables.EnvironmentVariables.CACHE_PASSWORD != "" {
		opts.Password = environment_variables.EnvironmentVariables.CACHE_PASSWORD
	}
	if environment_variables.EnvironmentVariables.CACHE_DB != "" {
		if db, err := strconv.Atoi(environment_variables.EnvironmentVariables.CACHE_DB); err == nil {
			opts.SelectDB = db
		}
	}

	client, err := valkey.NewClient(opts)
	if err != nil {
		// Return a no-op implementation for graceful degradation
		return &NoOpCacheService{}
	}

	// Test connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Do(ctx, client.B().Ping().Build()).Error(); err != nil {
		// Return a no-op implementation for graceful degradation
		return &NoOpCacheService{}
	}

	return &ValkeyCacheService{
		client: client,
	}
}

// Set stores a value in Valkey with an expiration time; zero means no expiry
func (v *ValkeyCacheService) Set(ctx context.Context, key string, value string, expiration time.Duration) error {
	if expiration <= 0 {
		return v.client.Do(ctx, v.client.B().Set().Key(key).Value(value).Build()).Error()
	}
	return v.client.Do(ctx, v.client.B().Set().Key(key).Value(value).Px(expiration).Build()).Error()
}

// Get retrieves a value from Valkey
func (v *ValkeyCacheService) Get(ctx context.Context, key string) (string, error) {
	result := v.client.Do(ctx, v.client.B().Get().Key(key).Build())
	if err := result.Error(); err != nil {
		if valkey.IsValkeyNil(err) {
			return "", ErrCacheMiss
		}
		return "", fmt.Errorf("failed to get value: %w", err)
	}
	val, err := result.ToString()
	if err != nil {
		return "", fmt.Errorf("failed to convert result to string: %w", err)
	}
	return val, nil
}

// Exists checks if a key exists in Valkey
func (v *ValkeyCacheService) Exists(ctx context.Context, key string) (bool, error) {
	result := v.client.Do(ctx, v.client.B().Exists().Key(key).Build())
	if err := result.Error(); err != nil {
		return false, fmt.Errorf("failed to check key existence: %w", err)
	}
	count, err := result.AsInt64()
	if err != nil {
		return false, fmt.Errorf("failed to parse exists result: %w", err)
	}
	return count > 0, nil
}

// Delete removes a key from Valkey
func (v *ValkeyCacheService) Delete(ctx context.Context, key string) error {
	return v.client.Do(ctx, v.client.B().Unlink().Key(key).Build()).Error()
}

// Close closes the Valkey connection
func (v *ValkeyCacheService) Close() error {
	v.client.Close()
	return nil
}

// HealthCheck verifies Valkey connectivity
func (v *ValkeyCacheService) HealthCheck(ctx context.Context) error {
	return v.client.Do(ctx, v.client.B().Ping().Build()).Error()
}

// NewMutex returns a SET NX based lock. Valkey has no redsync pool adapter,
// so the lock is a single-instance acquire with a fencing token.
func (v *ValkeyCacheService) NewMutex(name string, expiry time.Duration) Mutex {
	return &valkeyMutex{
		client: v.client,
		name:   name,
		expiry: expiry,
		token:  uuid.New().String(),
	}
}

type valkeyMutex struct {
	client valkey.Client
	name   string
	expiry time.Duration
	token  string
}

func (m *valkeyMutex) LockContext(ctx context.Context) error {
	result := m.client.Do(ctx, m.client.B().Set().Key(m.name).Value(m.token).Nx().Px(m.expiry).Build())
	if err := result.Error(); err != nil {
		if valkey.IsValkeyNil(err) {
			return fmt.Errorf("lock %s already held", m.name)
		}
		return err
	}
	return nil
}

func (m *valkeyMutex) UnlockContext(ctx context.Context) (bool, error) {
	// Release only if we still hold the lock.
	const script = `if redis.call("get", KEYS[1]) == ARGV[1] then return redis.call("del", KEYS[1]) else return 0 end`
	result := m.client.Do(ctx, m.client.B().Eval().Script(script).Numkeys(1).Key(m.name).Arg(m.token).Build())
	if err := result.Error(); err != nil {
		return false, err
	}
	n, err := result.AsInt64()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
