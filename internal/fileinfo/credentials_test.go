package fileinfo

import (
	"testing"

	"sfm/internal/secret"
)

// stub secret store for tests
type stubSecret struct {
	d, u, p string
	found   bool
}

func (s stubSecret) Get(host, share string) (string, string, string, bool, error) {
	return s.d, s.u, s.p, s.found, nil
}
func (s stubSecret) Set(host, share, d, u, p string) error { return nil }
func (s stubSecret) Delete(host, share string) error       { return nil }

// stub provider counting calls
type countingProv struct {
	calls int
	ret   Credentials
}

func (c *countingProv) Get(host, share, rel string) (Credentials, error) {
	c.calls++
	return c.ret, nil
}

func resetCredentialState(t *testing.T) {
	t.Cleanup(func() {
		SetCredentialsProvider(nil)
		SetSecretStore(nil)
		SetRememberCredentials(false)
	})
}

func TestCredentialsPrecedence_MemoryFirst(t *testing.T) {
	resetCredentialState(t)
	// provider with a known return, but we expect memory to win and provider not called
	base := &countingProv{ret: Credentials{Domain: "pd", Username: "pu", Password: "pp"}}
	SetCredentialsProvider(NewCachedCredentialsProvider(base))
	// keyring with different creds (should be ignored due to memory hit)
	SetSecretStore(stubSecret{d: "kd", u: "ku", p: "kp", found: true})

	// seed memory (e.g., from URL)
	PutCachedCredentials("host", "share", Credentials{Domain: "md", Username: "mu", Password: "mp"})

	got := getCredentials("host", "share", "")
	if got.Username != "mu" || got.Password != "mp" || got.Domain != "md" {
		t.Fatalf("memory creds not preferred: %+v", got)
	}
	if base.calls != 0 {
		t.Fatalf("provider called despite memory hit")
	}
}

func TestCredentialsPrecedence_KeyringSecond(t *testing.T) {
	resetCredentialState(t)
	base := &countingProv{ret: Credentials{Domain: "pd", Username: "pu", Password: "pp"}}
	SetCredentialsProvider(NewCachedCredentialsProvider(base))
	SetSecretStore(stubSecret{d: "kd", u: "ku", p: "kp", found: true})

	got := getCredentials("h", "s", "")
	if got.Username != "ku" || got.Password != "kp" || got.Domain != "kd" {
		t.Fatalf("keyring creds not preferred: %+v", got)
	}
	// keyring hit should seed memory
	if _, ok := GetCachedCredentials("h", "s"); !ok {
		t.Fatalf("keyring result not seeded to memory cache")
	}
	if base.calls != 0 {
		t.Fatalf("provider called despite keyring hit")
	}
}

func TestCredentialsPrecedence_ProviderLast(t *testing.T) {
	resetCredentialState(t)
	base := &countingProv{ret: Credentials{Domain: "pd", Username: "pu", Password: "pp"}}
	SetCredentialsProvider(NewCachedCredentialsProvider(base))
	SetSecretStore(stubSecret{found: false})
	got := getCredentials("h2", "s2", "rel")
	if got.Username != "pu" || got.Password != "pp" || got.Domain != "pd" {
		t.Fatalf("provider creds not returned: %+v", got)
	}
	if base.calls != 1 {
		t.Fatalf("provider should be called exactly once, got %d", base.calls)
	}
	if got.Persist {
		t.Fatalf("credentials should not persist unless remembering is enabled")
	}
}

func TestCredentialsRememberMarksPersist(t *testing.T) {
	resetCredentialState(t)
	SetCredentialsProvider(NewCachedCredentialsProvider(&countingProv{ret: Credentials{Username: "u", Password: "p"}}))
	SetRememberCredentials(true)
	if got := getCredentials("h3", "s3", ""); !got.Persist {
		t.Fatalf("expected Persist with remembering enabled: %+v", got)
	}

	// empty answers never persist
	SetCredentialsProvider(NewCachedCredentialsProvider(&countingProv{}))
	if got := getCredentials("h4", "s4", ""); got.Persist {
		t.Fatalf("empty credentials must not persist: %+v", got)
	}
}

func TestClearCachedCredentials(t *testing.T) {
	resetCredentialState(t)
	SetCredentialsProvider(NewCachedCredentialsProvider(nil))
	PutCachedCredentials("h", "s", Credentials{Username: "u"})
	ClearCachedCredentials("h", "s")
	if _, ok := GetCachedCredentials("h", "s"); ok {
		t.Fatalf("cache entry survived clear")
	}
}

func TestCredentialsFromMemorySecretStore(t *testing.T) {
	resetCredentialState(t)
	store := secret.NewMemoryStore("sfm.test")
	if err := store.Set("nas", "media", "", "eve", "pw"); err != nil {
		t.Fatalf("seed store: %v", err)
	}
	SetCredentialsProvider(NewCachedCredentialsProvider(nil))
	SetSecretStore(store)
	got := getCredentials("nas", "media", "")
	if got.Username != "eve" || got.Password != "pw" {
		t.Fatalf("store creds not returned: %+v", got)
	}
}
