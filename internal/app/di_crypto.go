package app

import (
	"fmt"

	cryptoHTTP "github.com/agentvault/agentvault/internal/crypto/http"
	cryptoRepository "github.com/agentvault/agentvault/internal/crypto/repository"
	cryptoService "github.com/agentvault/agentvault/internal/crypto/service"
	"github.com/agentvault/agentvault/internal/oracle"
)

// SigningOracle returns the signing oracle used for key derivation.
// A remote HTTP oracle is used when an endpoint is configured; otherwise, in
// local and test environments only, a deterministic in-process oracle keyed
// by the local seed is used.
func (c *Container) SigningOracle() (oracle.Oracle, error) {
	var err error
	c.signingOracleInit.Do(func() {
		c.signingOracle, err = c.initSigningOracle()
		if err != nil {
			c.initErrors["signingOracle"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["signingOracle"]; exists {
		return nil, storedErr
	}
	return c.signingOracle, nil
}

// KeyDeriver returns the per-identity key derivation service.
func (c *Container) KeyDeriver() (cryptoService.KeyDeriver, error) {
	var err error
	c.keyDeriverInit.Do(func() {
		c.keyDeriver, err = c.initKeyDeriver()
		if err != nil {
			c.initErrors["keyDeriver"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["keyDeriver"]; exists {
		return nil, storedErr
	}
	return c.keyDeriver, nil
}

// KeyCache returns the in-memory per-identity key cache.
func (c *Container) KeyCache() (*cryptoService.KeyCache, error) {
	var err error
	c.keyCacheInit.Do(func() {
		c.keyCache, err = c.initKeyCache()
		if err != nil {
			c.initErrors["keyCache"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["keyCache"]; exists {
		return nil, storedErr
	}
	return c.keyCache, nil
}

// NonceSource returns the shared nonce source for envelope encryption.
func (c *Container) NonceSource() *cryptoService.NonceSource {
	c.nonceSourceInit.Do(func() {
		c.nonceSource = cryptoService.NewNonceSource()
	})
	return c.nonceSource
}

// CacheStateRepository returns the key cache state repository based on database driver.
func (c *Container) CacheStateRepository() (cryptoService.CacheStateRepository, error) {
	var err error
	c.cacheStateRepositoryInit.Do(func() {
		c.cacheStateRepository, err = c.initCacheStateRepository()
		if err != nil {
			c.initErrors["cacheStateRepository"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["cacheStateRepository"]; exists {
		return nil, storedErr
	}
	return c.cacheStateRepository, nil
}

// CacheJanitor returns the periodic key cache clearing worker.
func (c *Container) CacheJanitor() (*cryptoService.CacheJanitor, error) {
	var err error
	c.cacheJanitorInit.Do(func() {
		c.cacheJanitor, err = c.initCacheJanitor()
		if err != nil {
			c.initErrors["cacheJanitor"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["cacheJanitor"]; exists {
		return nil, storedErr
	}
	return c.cacheJanitor, nil
}

// KeyCacheHandler returns the HTTP handler for key cache administration.
func (c *Container) KeyCacheHandler() (*cryptoHTTP.KeyCacheHandler, error) {
	var err error
	c.keyCacheHandlerInit.Do(func() {
		c.keyCacheHandler, err = c.initKeyCacheHandler()
		if err != nil {
			c.initErrors["keyCacheHandler"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["keyCacheHandler"]; exists {
		return nil, storedErr
	}
	return c.keyCacheHandler, nil
}

// initSigningOracle creates the signing oracle based on configuration.
func (c *Container) initSigningOracle() (oracle.Oracle, error) {
	if c.config.OracleEndpoint != "" {
		httpOracle, err := oracle.NewHTTPOracle(
			c.config.OracleEndpoint,
			c.config.OracleToken,
			c.config.OracleTimeout,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to create http oracle: %w", err)
		}
		return httpOracle, nil
	}

	// The local oracle holds its seed in process memory, so staging and
	// production must always configure a remote endpoint.
	env, err := oracle.ParseEnvironment(c.config.OracleEnvironment)
	if err != nil {
		return nil, fmt.Errorf("failed to parse oracle environment: %w", err)
	}
	if env == oracle.EnvStaging || env == oracle.EnvProduction {
		return nil, fmt.Errorf("oracle endpoint is required in %s environment", env)
	}

	localOracle, err := oracle.NewLocalOracle([]byte(c.config.OracleLocalSeed))
	if err != nil {
		return nil, fmt.Errorf("failed to create local oracle: %w", err)
	}
	return localOracle, nil
}

// initKeyDeriver creates the key derivation service with the configured oracle.
func (c *Container) initKeyDeriver() (cryptoService.KeyDeriver, error) {
	signingOracle, err := c.SigningOracle()
	if err != nil {
		return nil, fmt.Errorf("failed to get signing oracle for key deriver: %w", err)
	}

	env, err := oracle.ParseEnvironment(c.config.OracleEnvironment)
	if err != nil {
		return nil, fmt.Errorf("failed to parse oracle environment: %w", err)
	}

	return cryptoService.NewKeyDerivationService(signingOracle, env), nil
}

// initKeyCache creates the key cache backed by the key derivation service.
func (c *Container) initKeyCache() (*cryptoService.KeyCache, error) {
	keyDeriver, err := c.KeyDeriver()
	if err != nil {
		return nil, fmt.Errorf("failed to get key deriver for key cache: %w", err)
	}
	return cryptoService.NewKeyCache(keyDeriver), nil
}

// initCacheStateRepository creates the cache state repository based on the database driver.
func (c *Container) initCacheStateRepository() (cryptoService.CacheStateRepository, error) {
	db, err := c.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database for cache state repository: %w", err)
	}

	switch c.config.DBDriver {
	case "postgres":
		return cryptoRepository.NewPostgreSQLCacheStateRepository(db), nil
	case "mysql":
		return cryptoRepository.NewMySQLCacheStateRepository(db), nil
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", c.config.DBDriver)
	}
}

// initCacheJanitor creates the cache janitor with all its dependencies.
func (c *Container) initCacheJanitor() (*cryptoService.CacheJanitor, error) {
	keyCache, err := c.KeyCache()
	if err != nil {
		return nil, fmt.Errorf("failed to get key cache for cache janitor: %w", err)
	}

	cacheStateRepository, err := c.CacheStateRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get cache state repository for cache janitor: %w", err)
	}

	return cryptoService.NewCacheJanitor(keyCache, cacheStateRepository), nil
}

// initKeyCacheHandler creates the key cache HTTP handler.
func (c *Container) initKeyCacheHandler() (*cryptoHTTP.KeyCacheHandler, error) {
	keyCache, err := c.KeyCache()
	if err != nil {
		return nil, fmt.Errorf("failed to get key cache for key cache handler: %w", err)
	}
	return cryptoHTTP.NewKeyCacheHandler(keyCache, c.Logger()), nil
}
