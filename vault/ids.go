package vault

import (
	"fmt"

	"github.com/jmcleod/keystash/internal/util"
)

// NextID picks a random credential ID in [MinCredentialID, MaxCredentialID]
// not used by any record in v.
func NextID(v Vault) (int, error) {
	used := make(map[int]bool, len(v))
	for _, c := range v {
		used[c.ID] = true
	}
	var free []int
	for id := MinCredentialID; id <= MaxCredentialID; id++ {
		if !used[id] {
			free = append(free, id)
		}
	}
	if len(free) == 0 {
		return 0, ErrVaultFull
	}
	n, err := util.RandomIntn(len(free))
	if err != nil {
		return 0, fmt.Errorf("choosing credential id: %w", err)
	}
	return free[n], nil
}
