// Package aggregate computes read-model folds over filtered event slices.
// Both folds are pure functions of the log: nothing is precomputed or stored,
// so results are always consistent with the log at read time, at the cost of
// rescanning on every call.
package aggregate

import "jobpulse/internal/interaction"

// CountByTarget counts events of the given type per target id. Repeated
// events from the same actor all count: this mirrors raw event volume and
// intentionally diverges from the deduplicated application view produced by
// reconciliation. Keep the two operations distinct; unifying them would
// silently change observable counts.
func CountByTarget(events []interaction.Event, typ interaction.EventType) map[string]int {
	counts := make(map[string]int)
	for _, e := range events {
		if e.Type != typ || e.TargetID == "" {
			continue
		}
		counts[e.TargetID]++
	}
	return counts
}

// State is the toggle read model for a single target key.
type State struct {
	IsFavorite bool
	Memo       string
}

// ToggleState folds the toggle events for one target. Favorite presence is
// binary: any favorite row means on. Correct toggle discipline keeps at most
// one memo row per key; if stray duplicates exist anyway, the first one in
// the slice wins, and slices come from the store newest-first.
func ToggleState(events []interaction.Event, targetID string) State {
	var state State
	memoSeen := false
	for _, e := range events {
		if e.TargetID != targetID {
			continue
		}
		switch e.Type {
		case interaction.TypeCompanyFavoriteApp:
			state.IsFavorite = true
		case interaction.TypeCompanyMemoApp:
			if !memoSeen {
				state.Memo = e.MemoContent()
				memoSeen = true
			}
		}
	}
	return state
}
