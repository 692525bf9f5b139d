package vault

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/jmcleod/keystash/storage"
)

// Store reads and writes a whole vault through a storage.Backend. The master
// password is passed to every call and never retained.
type Store struct {
	backend storage.Backend
	logger  *slog.Logger
	now     func() time.Time
}

// NewStore returns a Store over backend. It performs no I/O.
func NewStore(backend storage.Backend, opts ...StoreOption) *Store {
	s := &Store{
		backend: backend,
		logger:  slog.Default(),
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Read loads and decrypts the vault. A vault that was never written reads as
// empty. A wrong password fails with ErrIntegrity.
func (s *Store) Read(password []byte) (Vault, error) {
	data, err := s.backend.Load()
	if errors.Is(err, storage.ErrNotFound) {
		s.logger.Debug("no vault yet, starting empty")
		return Vault{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("loading vault: %w", err)
	}
	if isPlaintext(string(data)) {
		s.logger.Warn("vault is stored unencrypted, it will be encrypted on the next write")
	}
	v, err := Decode(string(data), password)
	if err != nil {
		return nil, err
	}
	s.logger.Debug("vault read", "credentials", len(v))
	return v, nil
}

// Write encrypts v under password and replaces the stored vault. Encoding
// finishes in memory before the backend is touched.
func (s *Store) Write(v Vault, password []byte) error {
	encoded, err := Encode(v, password)
	if err != nil {
		return err
	}
	if err := s.backend.Save([]byte(encoded)); err != nil {
		return fmt.Errorf("saving vault: %w", err)
	}
	s.logger.Debug("vault written", "credentials", len(v))
	return nil
}

// Insert adds candidate to the vault, resolving duplicates with ResolveInsert.
// The vault is written once if the outcome is Accepted and not at all otherwise.
// A new credential without an ID or date is given one.
func (s *Store) Insert(candidate Credential, password []byte, c Confirmer) (Outcome, error) {
	existing, err := s.Read(password)
	if err != nil {
		return Outcome{}, err
	}
	out, err := ResolveInsert(candidate, existing, c)
	if err != nil {
		return Outcome{}, err
	}
	if out.Status != Accepted {
		s.logger.Debug("insert aborted", "reason", out.Reason)
		return out, nil
	}

	rec := &out.Records[out.Index]
	if rec.ID == 0 {
		if rec.ID, err = NextID(out.Records); err != nil {
			return Outcome{}, err
		}
	}
	if rec.Date.IsZero() {
		rec.Date = s.now().UTC().Truncate(time.Second)
	}

	if err := s.Write(out.Records, password); err != nil {
		return Outcome{}, err
	}
	return out, nil
}

// Remove deletes the credential with the given id after the user confirms.
func (s *Store) Remove(id int, password []byte, c Confirmer) (Outcome, error) {
	existing, err := s.Read(password)
	if err != nil {
		return Outcome{}, err
	}
	out, err := ResolveRemove(id, existing, c)
	if err != nil {
		return Outcome{}, err
	}
	if out.Status != Accepted {
		return out, nil
	}
	if err := s.Write(out.Records, password); err != nil {
		return Outcome{}, err
	}
	return out, nil
}

// Get returns the credential with the given id.
func (s *Store) Get(id int, password []byte) (Credential, error) {
	v, err := s.Read(password)
	if err != nil {
		return Credential{}, err
	}
	i := indexOfID(v, id)
	if i < 0 {
		return Credential{}, fmt.Errorf("id %d: %w", id, ErrCredentialNotFound)
	}
	return v[i], nil
}

// Search returns every credential matching cr.
func (s *Store) Search(cr Criteria, password []byte) (Vault, error) {
	v, err := s.Read(password)
	if err != nil {
		return nil, err
	}
	return Filter(v, cr), nil
}

// Rekey re-encrypts the vault under newPassword. A vault that was never
// written is left alone.
func (s *Store) Rekey(oldPassword, newPassword []byte) error {
	if len(newPassword) == 0 {
		return ErrMissingKey
	}
	if _, err := s.backend.Load(); errors.Is(err, storage.ErrNotFound) {
		return nil
	}
	v, err := s.Read(oldPassword)
	if err != nil {
		return err
	}
	return s.Write(v, newPassword)
}
