package cmd

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jmcleod/keystash/auth"
	"github.com/jmcleod/keystash/vault"
)

var errPasswordNotSaved = errors.New("new master password not saved")

func newPasswdCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "passwd",
		Short: "Set or change the master password",
		Long: `Set the master password, or change it after confirming the current one.
Changing the password re-encrypts the vault under the new one.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			hash := a.hashFile()
			exists, err := hash.Exists()
			if err != nil {
				return err
			}

			var current *auth.MasterPassword
			if exists {
				if current, err = a.unlock(); err != nil {
					return err
				}
				defer current.Destroy()
			}

			next, err := a.readNewPassword()
			if err != nil {
				return err
			}
			defer next.Destroy()

			err = a.withStore(next, func(s *vault.Store, newPw []byte) error {
				if current == nil {
					return changeMaster(s, hash, nil, newPw)
				}
				return current.Use(func(oldPw []byte) error {
					return changeMaster(s, hash, oldPw, newPw)
				})
			})
			if err != nil {
				return err
			}
			a.logger.Debug("master password hash written", "path", hash.Path())
			fmt.Fprintln(cmd.OutOrStdout(), "Master password saved.")
			return nil
		},
	}
}

// changeMaster moves the vault and the hash file from oldPw to newPw. The
// digest is computed before the vault is touched, and a failed hash write
// re-encrypts the vault under oldPw again. With no previous password the hash
// is written first, since only a missing or plaintext vault can be read
// without one.
func changeMaster(s *vault.Store, hash *auth.HashFile, oldPw, newPw []byte) error {
	digest, err := hash.Digest(newPw)
	if err != nil {
		return err
	}

	if oldPw == nil {
		if _, err := s.Read(nil); err != nil {
			return fmt.Errorf("vault exists but no master password is set: %w", err)
		}
		if err := hash.Write(digest); err != nil {
			return err
		}
		if err := s.Rekey(nil, newPw); err != nil {
			return fmt.Errorf("encrypting vault: %w", err)
		}
		return nil
	}

	if err := s.Rekey(oldPw, newPw); err != nil {
		return fmt.Errorf("re-encrypting vault: %w", err)
	}
	if err := hash.Write(digest); err != nil {
		if rbErr := s.Rekey(newPw, oldPw); rbErr != nil {
			return fmt.Errorf("%w; restoring the vault under the old password failed: %v", err, rbErr)
		}
		return err
	}
	return nil
}

// readNewPassword asks for the new master password twice, at most
// maxPasswordAttempts times, until both entries agree.
func (a *app) readNewPassword() (*auth.MasterPassword, error) {
	for range maxPasswordAttempts {
		first, err := a.prompt.Secret("Enter new master password: ")
		if err != nil {
			return nil, err
		}
		second, err := a.prompt.Secret("Confirm new master password: ")
		if err != nil {
			return nil, err
		}
		p1, p2 := auth.NormalizePassword(first), auth.NormalizePassword(second)
		if len(p1) == 0 {
			fmt.Fprintln(a.prompt.out, "Master password cannot be empty.")
			continue
		}
		if !bytes.Equal(p1, p2) {
			fmt.Fprintln(a.prompt.out, "Passwords don't match.")
			continue
		}
		return auth.NewMasterPassword(p1)
	}
	return nil, errPasswordNotSaved
}
