// Package formatter renders hook status reports for CLI and JSON output.
package formatter

import (
	"github.com/guet-cli/guet/internal/engine/hooks"
)

// SlotReport describes one hook slot.
type SlotReport struct {
	Name      string      `json:"name"`
	Kind      hooks.Kind  `json:"kind"`
	Alongside bool        `json:"alongside"`
	State     hooks.State `json:"state"`
}

// StatusReport holds the state of every slot guet manages in one repository.
type StatusReport struct {
	GitDir       string       `json:"git_dir"`
	Started      bool         `json:"started"`
	ForeignHooks bool         `json:"foreign_hooks"`
	Slots        []SlotReport `json:"slots"`
}

// Formatter formats a StatusReport into a human-readable or machine-readable string.
type Formatter interface {
	Format(report StatusReport) string
}

// NewStatusReport summarizes a loaded hook set.
func NewStatusReport(set *hooks.Set) StatusReport {
	report := StatusReport{
		GitDir:       set.GitDir(),
		Started:      set.HooksPresent(),
		ForeignHooks: set.NonGuetHooksPresent(),
	}
	for _, st := range set.Status() {
		report.Slots = append(report.Slots, SlotReport{
			Name:      st.Name,
			Kind:      st.Kind,
			Alongside: st.Alongside,
			State:     st.State,
		})
	}
	return report
}
