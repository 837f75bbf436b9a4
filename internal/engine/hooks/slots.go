package hooks

import "strings"

// AlongsideSuffix is appended to a standard hook name to form its alongside slot.
const AlongsideSuffix = "-guet"

// Kind identifies one of the commit hooks guet manages.
type Kind string

const (
	PreCommit  Kind = "pre-commit"
	PostCommit Kind = "post-commit"
	CommitMsg  Kind = "commit-msg"
)

// slot pairs a hook kind with its standard and alongside file names.
type slot struct {
	kind      Kind
	standard  string
	alongside string
}

var slots = []slot{
	{PreCommit, "pre-commit", "pre-commit" + AlongsideSuffix},
	{PostCommit, "post-commit", "post-commit" + AlongsideSuffix},
	{CommitMsg, "commit-msg", "commit-msg" + AlongsideSuffix},
}

func (s slot) name(alongside bool) string {
	if alongside {
		return s.alongside
	}
	return s.standard
}

// slotNames returns the file names of one variant in slot order.
func slotNames(alongside bool) []string {
	names := make([]string, 0, len(slots))
	for _, s := range slots {
		names = append(names, s.name(alongside))
	}
	return names
}

// allSlotNames returns the standard names followed by the alongside names.
func allSlotNames() []string {
	return append(slotNames(false), slotNames(true)...)
}

// KindOf resolves a hook file name, standard or alongside, to its kind.
func KindOf(name string) (Kind, bool) {
	base := strings.TrimSuffix(name, AlongsideSuffix)
	for _, s := range slots {
		if s.standard == base {
			return s.kind, true
		}
	}
	return "", false
}

// IsAlongside reports whether name is an alongside slot name.
func IsAlongside(name string) bool {
	for _, s := range slots {
		if s.alongside == name {
			return true
		}
	}
	return false
}
