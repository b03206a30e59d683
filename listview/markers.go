package listview

// Gap marks an elided range in a page-marker sequence. Gap entries are
// never clickable.
const Gap = -1

// PageMarkers produces the compact page-link sequence for a paginator:
// every page when there are five or fewer, otherwise the first and last
// page plus a three-page window around the current one, with Gap standing
// in for elided ranges. Near either boundary the window widens to a fixed
// four-page block so the sequence length stays steady.
func PageMarkers(current, total int) []int {
	if total <= 0 {
		return nil
	}
	if total <= 5 {
		markers := make([]int, 0, total)
		for p := 1; p <= total; p++ {
			markers = append(markers, p)
		}
		return markers
	}

	switch {
	case current <= 3:
		return []int{1, 2, 3, 4, Gap, total}
	case current >= total-2:
		return []int{1, Gap, total - 3, total - 2, total - 1, total}
	default:
		return []int{1, Gap, current - 1, current, current + 1, Gap, total}
	}
}
