// Package pagination parses limit/page query parameters.
package pagination

import (
	"errors"
	"math"
	"strconv"
)

// DefaultLimit is used when the request has no limit.
const DefaultLimit = 20

// MaxPage keeps Offset from overflowing for every allowed limit.
const MaxPage = math.MaxInt / 100

// ErrInvalid is returned for a limit outside AllowedLimits or a page outside [1, MaxPage].
var ErrInvalid = errors.New("limit must be one of 10, 20, 50, 100 and page must be >= 1")

// AllowedLimits lists the page sizes a client may request.
var AllowedLimits = []int{10, 20, 50, 100}

// Page is a validated window into an ordered listing.
type Page struct {
	Limit  int
	Number int
}

// Offset returns the number of rows to skip.
func (p Page) Offset() int {
	return (p.Number - 1) * p.Limit
}

// Parse validates raw query values. Empty values select the defaults.
func Parse(limit, page string) (Page, error) {
	p := Page{Limit: DefaultLimit, Number: 1}

	if limit != "" {
		n, err := strconv.Atoi(limit)
		if err != nil || !allowed(n) {
			return Page{}, ErrInvalid
		}
		p.Limit = n
	}
	if page != "" {
		n, err := strconv.Atoi(page)
		if err != nil || n < 1 || n > MaxPage {
			return Page{}, ErrInvalid
		}
		p.Number = n
	}
	return p, nil
}

func allowed(n int) bool {
	for _, l := range AllowedLimits {
		if n == l {
			return true
		}
	}
	return false
}
