package utils

import "strconv"

// DisabledLink marks a pagination link that goes nowhere.
const DisabledLink = "#"

// Window describes one page of an ordered collection plus its neighbor links.
type Window struct {
	Page    int
	Last    int
	Offset  int
	Limit   int
	PrevURL string
	NextURL string
}

// Paginate computes the window for a raw page parameter taken straight from
// the request. Anything that does not parse as a positive integer falls back
// to page 1. Pages past the end are accepted and simply yield an empty slice.
// An empty collection treats page 1 as both first and last, so neither link
// is live.
func Paginate(total int64, pageParam string, pageSize int) Window {
	page, err := strconv.Atoi(pageParam)
	if err != nil || page < 1 {
		page = 1
	}

	last := int((total + int64(pageSize) - 1) / int64(pageSize))
	if last < 1 {
		last = 1
	}

	w := Window{
		Page:    page,
		Last:    last,
		Offset:  (page - 1) * pageSize,
		Limit:   pageSize,
		PrevURL: DisabledLink,
		NextURL: DisabledLink,
	}

	if page > 1 {
		w.PrevURL = "/?page=" + strconv.Itoa(page-1)
	}
	if page != last {
		w.NextURL = "/?page=" + strconv.Itoa(page+1)
	}
	return w
}
