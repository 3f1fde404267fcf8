package components

import (
	"strings"

	"github.com/abhisek/dropwatch/internal/ui/theme"
)

// Tabs is a horizontal tab strip.
type Tabs struct {
	Labels []string
	Active int
}

// Next selects the following tab, wrapping around.
func (t *Tabs) Next() {
	if len(t.Labels) > 0 {
		t.Active = (t.Active + 1) % len(t.Labels)
	}
}

// Prev selects the preceding tab, wrapping around.
func (t *Tabs) Prev() {
	if len(t.Labels) > 0 {
		t.Active = (t.Active - 1 + len(t.Labels)) % len(t.Labels)
	}
}

// View renders the strip.
func (t Tabs) View() string {
	parts := make([]string, len(t.Labels))
	for i, l := range t.Labels {
		if i == t.Active {
			parts[i] = theme.TabActive.Render(l)
		} else {
			parts[i] = theme.TabInactive.Render(l)
		}
	}
	return strings.Join(parts, " ")
}
