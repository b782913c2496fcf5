package domain

import (
	"regexp"
	"strings"
)

// nonWordRe strips everything that is not a word character or whitespace
// during title normalization, so "Flood Warning!!" and "flood warning"
// compare equal.
var nonWordRe = regexp.MustCompile(`[^\w\s]`)

func normalizeTitle(title string) string {
	return nonWordRe.ReplaceAllString(strings.TrimSpace(strings.ToLower(title)), "")
}

// Dedupe collapses warnings that share a normalized title, keeping the
// first occurrence. Order is preserved.
func Dedupe(warnings []Warning) []Warning {
	seen := make(map[string]struct{}, len(warnings))
	unique := make([]Warning, 0, len(warnings))

	for _, w := range warnings {
		key := normalizeTitle(w.Title)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		unique = append(unique, w)
	}

	return unique
}

// triggerKeywords gate notifications: a warning only notifies when its
// title contains at least one of these, case-insensitively.
var triggerKeywords = []string{
	"severe",
	"destructive",
	"hail",
	"damaging",
	"dangerous",
	"flash flood",
}

// ShouldNotify reports whether a warning's title carries a trigger keyword.
func ShouldNotify(w Warning) bool {
	lower := strings.ToLower(w.Title)
	for _, kw := range triggerKeywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}

// DecideNotifications returns the warnings eligible for notification this
// cycle: those not already in the previously-notified ID set whose titles
// carry a trigger keyword. The caller must afterwards replace the notified
// set with IDSet of the full current warning list, so warnings that persist
// without re-triggering stay tracked and a warning that disappears and
// returns counts as new.
func DecideNotifications(current []Warning, previousNotified map[string]struct{}) []Warning {
	var eligible []Warning
	for _, w := range current {
		if _, ok := previousNotified[w.ID]; ok {
			continue
		}
		if ShouldNotify(w) {
			eligible = append(eligible, w)
		}
	}
	return eligible
}

// IDSet collects the IDs of the given warnings.
func IDSet(warnings []Warning) map[string]struct{} {
	ids := make(map[string]struct{}, len(warnings))
	for _, w := range warnings {
		ids[w.ID] = struct{}{}
	}
	return ids
}
