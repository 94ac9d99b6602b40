package fileinfo

import (
	"sync"

	"sfm/internal/secret"
)

// Credentials represents SMB authentication parameters.
type Credentials struct {
	Domain   string
	Username string
	Password string
	Persist  bool // store in the keyring once a mount succeeds
}

func (c Credentials) empty() bool {
	return c.Username == "" && c.Password == "" && c.Domain == ""
}

// CredentialsProvider can interactively or programmatically provide credentials.
type CredentialsProvider interface {
	Get(host, share, relPath string) (Credentials, error)
}

var (
	credProvider   CredentialsProvider
	secretStore    secret.Store
	rememberLogins bool
)

// SetCredentialsProvider sets the credentials provider consulted last.
func SetCredentialsProvider(p CredentialsProvider) { credProvider = p }

// SetSecretStore sets the secret store (OS keyring). If nil, only memory cache will be used.
func SetSecretStore(s secret.Store) { secretStore = s }

// SetRememberCredentials makes every credential set that leads to a
// successful mount persist in the secret store.
func SetRememberCredentials(v bool) { rememberLogins = v }

// getCredentials resolves credentials in order: memory cache, keyring,
// provider. A keyring hit seeds the memory cache.
func getCredentials(host, share, rel string) Credentials {
	if c, ok := GetCachedCredentials(host, share); ok {
		return withRemember(c)
	}
	if secretStore != nil {
		if d, u, p, found, _ := secretStore.Get(host, share); found {
			c := Credentials{Domain: d, Username: u, Password: p}
			PutCachedCredentials(host, share, c)
			return c
		}
	}
	if credProvider == nil {
		return Credentials{}
	}
	c, err := credProvider.Get(host, share, rel)
	if err != nil {
		return Credentials{}
	}
	return withRemember(c)
}

func withRemember(c Credentials) Credentials {
	if rememberLogins && !c.empty() {
		c.Persist = true
	}
	return c
}

// CachedCredentialsProvider caches credentials per host/share in memory.
type CachedCredentialsProvider struct {
	fallback CredentialsProvider
	cache    map[string]Credentials
	mu       sync.RWMutex
}

// NewCachedCredentialsProvider creates a new caching provider wrapping fallback.
func NewCachedCredentialsProvider(fallback CredentialsProvider) *CachedCredentialsProvider {
	return &CachedCredentialsProvider{fallback: fallback, cache: make(map[string]Credentials)}
}

func cacheKey(host, share string) string { return host + "\x00" + share }

func (p *CachedCredentialsProvider) Get(host, share, relPath string) (Credentials, error) {
	key := cacheKey(host, share)
	p.mu.RLock()
	if c, ok := p.cache[key]; ok && !c.empty() {
		p.mu.RUnlock()
		return c, nil
	}
	p.mu.RUnlock()
	if p.fallback == nil {
		return Credentials{}, nil
	}
	c, err := p.fallback.Get(host, share, relPath)
	if err != nil {
		return c, err
	}
	p.Put(host, share, c)
	return c, nil
}

// Put allows programmatic seeding of cached credentials (e.g., from URL).
func (p *CachedCredentialsProvider) Put(host, share string, c Credentials) {
	p.mu.Lock()
	if p.cache == nil {
		p.cache = make(map[string]Credentials)
	}
	p.cache[cacheKey(host, share)] = c
	p.mu.Unlock()
}

// PutCachedCredentials seeds cached credentials if the provider supports it.
func PutCachedCredentials(host, share string, c Credentials) {
	if cp, ok := credProvider.(*CachedCredentialsProvider); ok {
		cp.Put(host, share, c)
	}
}

// GetCachedCredentials returns cached credentials if present in memory.
// It does not consult keyring or interactive providers.
func GetCachedCredentials(host, share string) (Credentials, bool) {
	if cp, ok := credProvider.(*CachedCredentialsProvider); ok {
		cp.mu.RLock()
		defer cp.mu.RUnlock()
		if c, ok := cp.cache[cacheKey(host, share)]; ok && !c.empty() {
			return c, true
		}
	}
	return Credentials{}, false
}

// ClearCachedCredentials removes cached credentials for host/share.
func ClearCachedCredentials(host, share string) {
	if cp, ok := credProvider.(*CachedCredentialsProvider); ok {
		cp.mu.Lock()
		delete(cp.cache, cacheKey(host, share))
		cp.mu.Unlock()
	}
}
