package secret

// Store abstracts a credentials store for SMB shares keyed by host and share.
// Implementations should be safe to call from multiple goroutines.
type Store interface {
	Get(host, share string) (domain, user, pass string, found bool, err error)
	Set(host, share, domain, user, pass string) error
	Delete(host, share string) error
}
