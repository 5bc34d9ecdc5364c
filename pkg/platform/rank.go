package platform

import "sort"

// SortForDisplay re-derives display order for the read path. Three
// platforms re-sort on a raw formatted field every read; the rest keep
// the order the adapter wrote. The switch is exhaustive over the
// Platform set so a new platform is a compile-visible change here.
func SortForDisplay(p Platform, trends []TrendRecord) {
	switch p {
	case YouTube:
		sort.SliceStable(trends, func(i, j int) bool {
			return ParseViews(trends[i].Views) > ParseViews(trends[j].Views)
		})
	case Reddit:
		sort.SliceStable(trends, func(i, j int) bool {
			return ParseScore(trends[i].Score) > ParseScore(trends[j].Score)
		})
	case Spotify:
		sort.SliceStable(trends, func(i, j int) bool {
			return trends[i].Popularity > trends[j].Popularity
		})
	case Twitter, Google, News:
		// Already rank-ordered at write time.
	}
}
