package vault

import (
	"fmt"
	"strings"
)

// MaxConfirmAttempts bounds how often an unrecognized answer is re-asked.
const MaxConfirmAttempts = 3

const (
	ReasonExactDuplicate     = "exact duplicate"
	ReasonDeclined           = "user declined overwrite"
	ReasonConfirmationFailed = "confirmation failed"
	ReasonRemoveDeclined     = "user declined removal"
)

const overwritePrompt = "A credential for this service, username and email already exists. Overwrite existing password? (y/n): "

// Status is the terminal state of a vault change decision.
type Status int

const (
	Accepted Status = iota + 1
	Aborted
)

func (s Status) String() string {
	switch s {
	case Accepted:
		return "accepted"
	case Aborted:
		return "aborted"
	default:
		return fmt.Sprintf("Status(%d)", int(s))
	}
}

// Outcome is the result of a vault change decision. When Accepted, Records
// holds the full updated record set to persist and Index the position of the
// affected credential; Replaced is set when an existing credential was
// overwritten. When Aborted, Reason says why and nothing is written.
type Outcome struct {
	Status   Status
	Reason   string
	Records  Vault
	Index    int
	Replaced bool
}

func accepted(records Vault, index int) Outcome {
	return Outcome{Status: Accepted, Records: records, Index: index}
}

func aborted(reason string) Outcome {
	return Outcome{Status: Aborted, Reason: reason, Index: -1}
}

// Confirmer asks the user a question and returns the raw answer.
type Confirmer interface {
	Ask(prompt string) (string, error)
}

// ConfirmerFunc adapts a function to a Confirmer.
type ConfirmerFunc func(prompt string) (string, error)

func (f ConfirmerFunc) Ask(prompt string) (string, error) { return f(prompt) }

// confirm asks prompt until it gets y or n, at most MaxConfirmAttempts times.
// ok is false when every answer was unrecognized.
func confirm(c Confirmer, prompt string) (yes, ok bool, err error) {
	if c == nil {
		return false, false, ErrConfirmationRequired
	}
	for range MaxConfirmAttempts {
		answer, err := c.Ask(prompt)
		if err != nil {
			return false, false, fmt.Errorf("reading confirmation: %w", err)
		}
		switch strings.ToLower(strings.TrimSpace(answer)) {
		case "y":
			return true, true, nil
		case "n":
			return false, true, nil
		}
	}
	return false, false, nil
}

// ResolveInsert decides how candidate enters existing. An exact duplicate
// aborts without prompting. A credential with the same identity but another
// password is overwritten only after the user confirms. Otherwise the
// candidate is appended. existing is never modified.
func ResolveInsert(candidate Credential, existing Vault, c Confirmer) (Outcome, error) {
	if err := validateCredential(candidate); err != nil {
		return Outcome{}, err
	}

	if len(matchIndexes(existing, ExactCriteria(candidate))) > 0 {
		return aborted(ReasonExactDuplicate), nil
	}

	same := matchIndexes(existing, IdentityCriteria(candidate))
	if len(same) > 1 {
		return Outcome{}, fmt.Errorf("%d credentials for service %q: %w", len(same), candidate.Service, ErrConsistency)
	}
	if len(same) == 0 {
		if err := checkIDFree(candidate.ID, existing, -1); err != nil {
			return Outcome{}, err
		}
		records := append(existing.Clone(), candidate.Clone())
		return accepted(records, len(records)-1), nil
	}

	if err := checkIDFree(candidate.ID, existing, same[0]); err != nil {
		return Outcome{}, err
	}

	yes, ok, err := confirm(c, overwritePrompt)
	if err != nil {
		return Outcome{}, err
	}
	if !ok {
		return aborted(ReasonConfirmationFailed), nil
	}
	if !yes {
		return aborted(ReasonDeclined), nil
	}

	i := same[0]
	records := existing.Clone()
	replacement := candidate.Clone()
	if replacement.ID == 0 {
		replacement.ID = records[i].ID
	}
	if replacement.Date.IsZero() {
		replacement.Date = records[i].Date
	}
	records[i] = replacement
	out := accepted(records, i)
	out.Replaced = true
	return out, nil
}

// ResolveRemove decides whether the credential with the given id leaves
// existing, after the user confirms.
func ResolveRemove(id int, existing Vault, c Confirmer) (Outcome, error) {
	i := indexOfID(existing, id)
	if i < 0 {
		return Outcome{}, fmt.Errorf("id %d: %w", id, ErrCredentialNotFound)
	}

	yes, ok, err := confirm(c, removePrompt(existing[i]))
	if err != nil {
		return Outcome{}, err
	}
	if !ok {
		return aborted(ReasonConfirmationFailed), nil
	}
	if !yes {
		return aborted(ReasonRemoveDeclined), nil
	}

	records := make(Vault, 0, len(existing)-1)
	for j, cred := range existing {
		if j != i {
			records = append(records, cred.Clone())
		}
	}
	return accepted(records, i), nil
}

func removePrompt(c Credential) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Remove credential %d (service %q", c.ID, c.Service)
	if c.Username != nil {
		fmt.Fprintf(&sb, ", username %q", *c.Username)
	}
	if c.Email != nil {
		fmt.Fprintf(&sb, ", email %q", *c.Email)
	}
	sb.WriteString(")? (y/n): ")
	return sb.String()
}

// checkIDFree rejects a preset id already held by a record other than skip.
func checkIDFree(id int, existing Vault, skip int) error {
	if id == 0 {
		return nil
	}
	for i, c := range existing {
		if i != skip && c.ID == id {
			return validationErrorf("id %d already in use by service %q", id, c.Service)
		}
	}
	return nil
}

func indexOfID(v Vault, id int) int {
	for i, c := range v {
		if c.ID == id {
			return i
		}
	}
	return -1
}
