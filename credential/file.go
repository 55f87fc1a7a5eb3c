package credential

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/pkg/errors"
)

const credentialFileName = "credentials.json"

// persisted is the on-disk shape: the two token entries the client keeps
// in local storage, plus their expiries from the login response.
type persisted struct {
	AccessToken        string     `json:"accessToken,omitempty"`
	RefreshToken       string     `json:"refreshToken,omitempty"`
	AccessTokenExpiry  *time.Time `json:"accessTokenExpiry,omitempty"`
	RefreshTokenExpiry *time.Time `json:"refreshTokenExpiry,omitempty"`
}

var _ Store = (*FileStore)(nil)

// FileStore persists the credential as a single JSON document under a data
// directory, the client-local equivalent of browser local storage.
type FileStore struct {
	notifier
	lock sync.RWMutex
	path string
	cred Credential
}

func NewFileStore(dataDir string) (*FileStore, error) {
	if err := os.MkdirAll(dataDir, 0o700); err != nil {
		return nil, errors.Wrap(err, "[NewFileStore] mkdir data dir")
	}
	fs := &FileStore{path: filepath.Join(dataDir, credentialFileName)}
	if err := fs.load(); err != nil {
		return nil, err
	}
	return fs, nil
}

func (fs *FileStore) load() error {
	b, err := os.ReadFile(fs.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return errors.Wrap(err, "[FileStore.load] read")
	}
	var p persisted
	if err := json.Unmarshal(b, &p); err != nil {
		return errors.Wrap(err, "[FileStore.load] unmarshal")
	}
	fs.cred = Credential{
		AccessToken:  p.AccessToken,
		RefreshToken: p.RefreshToken,
	}
	if p.AccessTokenExpiry != nil {
		fs.cred.AccessTokenExpiry = *p.AccessTokenExpiry
	}
	if p.RefreshTokenExpiry != nil {
		fs.cred.RefreshTokenExpiry = *p.RefreshTokenExpiry
	}
	return nil
}

func (fs *FileStore) save(cred Credential) error {
	p := persisted{
		AccessToken:  cred.AccessToken,
		RefreshToken: cred.RefreshToken,
	}
	if !cred.AccessTokenExpiry.IsZero() {
		p.AccessTokenExpiry = &cred.AccessTokenExpiry
	}
	if !cred.RefreshTokenExpiry.IsZero() {
		p.RefreshTokenExpiry = &cred.RefreshTokenExpiry
	}
	b, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		return errors.Wrap(err, "[FileStore.save] marshal")
	}
	if err := os.WriteFile(fs.path, b, 0o600); err != nil {
		return errors.Wrap(err, "[FileStore.save] write")
	}
	return nil
}

func (fs *FileStore) Get() (Credential, bool) {
	fs.lock.RLock()
	defer fs.lock.RUnlock()
	if fs.cred.IsZero() {
		return Credential{}, false
	}
	return fs.cred, true
}

func (fs *FileStore) Set(cred Credential) error {
	fs.lock.Lock()
	if err := fs.save(cred); err != nil {
		fs.lock.Unlock()
		return err
	}
	fs.cred = cred
	fs.lock.Unlock()

	fs.notify(cred)
	return nil
}

func (fs *FileStore) Clear() error {
	fs.lock.Lock()
	if err := os.Remove(fs.path); err != nil && !os.IsNotExist(err) {
		fs.lock.Unlock()
		return errors.Wrap(err, "[FileStore.Clear] remove")
	}
	fs.cred = Credential{}
	fs.lock.Unlock()

	fs.notify(Credential{})
	return nil
}
