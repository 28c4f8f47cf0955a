package queries

const (
	DefaultBookingLimit      = 10
	DefaultNotificationLimit = 20
	MaxListLimit             = 100
)

type Page struct {
	Page  int
	Limit int
}

// NormalizePage clamps page to >= 1 and limit to [1, MaxListLimit], using def when limit is unset.
func NormalizePage(page, limit, def int) Page {
	if page < 1 {
		page = 1
	}
	if limit <= 0 {
		limit = def
	}
	if limit > MaxListLimit {
		limit = MaxListLimit
	}
	return Page{Page: page, Limit: limit}
}

func (p Page) Offset() int {
	return (p.Page - 1) * p.Limit
}

func TotalPages(total int64, limit int) int {
	if total <= 0 || limit <= 0 {
		return 0
	}
	return int((total + int64(limit) - 1) / int64(limit))
}
