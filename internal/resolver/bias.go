package resolver

import "strings"

// pastCues mark text that talks about the past.
var pastCues = []string{"ago", "last", "previous", "yesterday"}

// ResolveBias returns Past when normalized text contains any past cue and
// Future otherwise. Matching is by substring on already lower-cased text.
func ResolveBias(normalized string) Direction {
	for _, cue := range pastCues {
		if strings.Contains(normalized, cue) {
			return Past
		}
	}
	return Future
}
