package domain

import (
	"sort"
	"strings"
)

// RankEvents orders events for a topic query, in place: more matching query
// topics first, ties broken by ascending event name, then by ascending
// promoter name. The order is total, so equal keys cannot occur for distinct
// events and the result is deterministic.
func RankEvents(events []*Event, query []string) {
	sort.SliceStable(events, func(i, j int) bool {
		a, b := events[i], events[j]
		am, bm := a.MatchingTopicCount(query), b.MatchingTopicCount(query)
		if am != bm {
			return am > bm
		}
		if c := strings.Compare(a.Name(), b.Name()); c != 0 {
			return c < 0
		}
		return a.Promoter() < b.Promoter()
	})
}
