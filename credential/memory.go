package credential

import "sync"

var _ Store = (*MemoryStore)(nil)

// MemoryStore keeps the credential in process memory. Used in tests and
// by callers that do not want tokens on disk.
type MemoryStore struct {
	notifier
	lock sync.RWMutex
	cred Credential
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (ms *MemoryStore) Get() (Credential, bool) {
	ms.lock.RLock()
	defer ms.lock.RUnlock()
	if ms.cred.IsZero() {
		return Credential{}, false
	}
	return ms.cred, true
}

func (ms *MemoryStore) Set(cred Credential) error {
	ms.lock.Lock()
	ms.cred = cred
	ms.lock.Unlock()

	ms.notify(cred)
	return nil
}

func (ms *MemoryStore) Clear() error {
	ms.lock.Lock()
	ms.cred = Credential{}
	ms.lock.Unlock()

	ms.notify(Credential{})
	return nil
}
