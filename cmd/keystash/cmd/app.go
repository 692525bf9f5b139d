package cmd

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	bolt "go.etcd.io/bbolt"

	"github.com/jmcleod/keystash/auth"
	"github.com/jmcleod/keystash/internal/config"
	"github.com/jmcleod/keystash/internal/platform"
	"github.com/jmcleod/keystash/storage"
	boltstorage "github.com/jmcleod/keystash/storage/bbolt"
	"github.com/jmcleod/keystash/storage/file"
	"github.com/jmcleod/keystash/vault"
)

const maxPasswordAttempts = 3

var errTooManyTries = errors.New("too many incorrect master password attempts")

// app carries what a single command invocation needs. It is populated by the
// root command's PersistentPreRunE.
type app struct {
	cfg       *config.Config
	logger    *slog.Logger
	prompt    *prompter
	clipboard platform.Clipboard
	hashCost  int
}

func (a *app) hashFile() *auth.HashFile {
	var opts []auth.HashFileOption
	if a.hashCost != 0 {
		opts = append(opts, auth.WithCost(a.hashCost))
	}
	return auth.NewHashFile(a.cfg.HashPath(), opts...)
}

// openStore opens the configured backend. The returned close func must be called.
func (a *app) openStore() (*vault.Store, func(), error) {
	var (
		backend storage.Backend
		closeFn = func() {}
	)
	switch a.cfg.Backend {
	case config.BackendBolt:
		b, err := boltstorage.Open(a.cfg.VaultPath(), &bolt.Options{Timeout: time.Second})
		if err != nil {
			return nil, nil, err
		}
		backend = b
		closeFn = func() {
			if err := b.Close(); err != nil {
				a.logger.Error("error closing vault database", "error", err)
			}
		}
	default:
		backend = file.New(a.cfg.VaultPath())
	}
	return vault.NewStore(backend, vault.WithLogger(a.logger)), closeFn, nil
}

// withStore runs fn against an open store with the master password unlocked.
func (a *app) withStore(master *auth.MasterPassword, fn func(s *vault.Store, password []byte) error) error {
	s, closeFn, err := a.openStore()
	if err != nil {
		return err
	}
	defer closeFn()
	return master.Use(func(password []byte) error {
		return explain(fn(s, password))
	})
}

// unlock asks for the master password, at most maxPasswordAttempts times,
// and checks it against the hash file.
func (a *app) unlock() (*auth.MasterPassword, error) {
	hash := a.hashFile()
	exists, err := hash.Exists()
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, fmt.Errorf("%w, use 'keystash passwd' to set it", auth.ErrHashNotSet)
	}

	for range maxPasswordAttempts {
		input, err := a.prompt.Secret("Enter master password: ")
		if err != nil {
			return nil, err
		}
		password := auth.NormalizePassword(input)
		err = hash.Verify(password)
		if errors.Is(err, auth.ErrIncorrectPassword) {
			fmt.Fprintln(a.prompt.out, "Incorrect master password!")
			continue
		}
		if err != nil {
			return nil, err
		}
		return auth.NewMasterPassword(password)
	}
	return nil, errTooManyTries
}

// explain turns storage failures into messages a user can act on while
// keeping the sentinel errors matchable.
func explain(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, vault.ErrIntegrity):
		return fmt.Errorf("cannot open vault, wrong master password or tampered vault: %w", err)
	case errors.Is(err, vault.ErrFormat):
		return fmt.Errorf("vault file is corrupted or not a keystash vault: %w", err)
	case errors.Is(err, vault.ErrConsistency):
		return fmt.Errorf("vault holds conflicting credentials, remove one with 'keystash remove': %w", err)
	default:
		return err
	}
}
