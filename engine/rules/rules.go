package rules

import (
	"sort"

	"github.com/nathoo/adventcore/types"
)

// Rank returns a copy of events ordered by descending priority. Events of
// equal priority keep their authoring order.
func Rank(events []types.Event) []types.Event {
	ranked := make([]types.Event, len(events))
	copy(ranked, events)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Priority > ranked[j].Priority
	})
	return ranked
}
