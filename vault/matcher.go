package vault

type matchKind uint8

const (
	matchAny matchKind = iota
	matchAbsent
	matchEquals
)

// Match is a per-field criterion: Any ignores the field, Absent requires the
// field to be absent, Equals requires an exact value. The zero Match is Any.
type Match struct {
	kind  matchKind
	value string
}

// Any matches every value, including absence.
func Any() Match { return Match{} }

// Absent matches only a field with no value.
func Absent() Match { return Match{kind: matchAbsent} }

// Equals matches only the exact value v.
func Equals(v string) Match { return Match{kind: matchEquals, value: v} }

// MatchOf returns Equals(*p), or Absent when p is nil.
func MatchOf(p *string) Match {
	if p == nil {
		return Absent()
	}
	return Equals(*p)
}

// IsAny reports whether m ignores its field.
func (m Match) IsAny() bool { return m.kind == matchAny }

func (m Match) String() string {
	switch m.kind {
	case matchAbsent:
		return "<absent>"
	case matchEquals:
		return m.value
	default:
		return "<any>"
	}
}

func (m Match) matchOptional(p *string) bool {
	switch m.kind {
	case matchAbsent:
		return p == nil
	case matchEquals:
		return p != nil && *p == m.value
	default:
		return true
	}
}

// service and password are always present, so Absent never matches them.
func (m Match) matchRequired(s string) bool {
	switch m.kind {
	case matchAbsent:
		return false
	case matchEquals:
		return s == m.value
	default:
		return true
	}
}

// Criteria selects credentials field by field. Omitted fields are Any.
type Criteria struct {
	Service  Match
	Password Match
	Username Match
	Email    Match
}

// Matches reports whether c satisfies every field criterion.
func (cr Criteria) Matches(c Credential) bool {
	return cr.Service.matchRequired(c.Service) &&
		cr.Password.matchRequired(c.Password) &&
		cr.Username.matchOptional(c.Username) &&
		cr.Email.matchOptional(c.Email)
}

// ExactCriteria matches credentials equal to c on all four fields.
func ExactCriteria(c Credential) Criteria {
	cr := IdentityCriteria(c)
	cr.Password = Equals(c.Password)
	return cr
}

// IdentityCriteria matches credentials sharing c's service, username and
// email, whatever their password.
func IdentityCriteria(c Credential) Criteria {
	return Criteria{
		Service:  Equals(c.Service),
		Username: MatchOf(c.Username),
		Email:    MatchOf(c.Email),
	}
}

// Filter returns copies of the credentials in v that satisfy cr, in order.
// v is never modified.
func Filter(v Vault, cr Criteria) Vault {
	idx := matchIndexes(v, cr)
	out := make(Vault, 0, len(idx))
	for _, i := range idx {
		out = append(out, v[i].Clone())
	}
	return out
}

func matchIndexes(v Vault, cr Criteria) []int {
	var idx []int
	for i, c := range v {
		if cr.Matches(c) {
			idx = append(idx, i)
		}
	}
	return idx
}
