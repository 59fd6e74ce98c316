package pagination

const (
	defaultLimit = 50
	maxLimit     = 200
)

// Page normalizes limit/offset query values.
type Page struct {
	Limit  int
	Offset int
}

func Normalize(limit, offset int) Page {
	if limit <= 0 {
		limit = defaultLimit
	}
	if limit > maxLimit {
		limit = maxLimit
	}
	if offset < 0 {
		offset = 0
	}
	return Page{Limit: limit, Offset: offset}
}
