package entity

const (
	defaultListLimit = 20
	maxListLimit     = 100
)

// ListFilter drives admin listings of payouts and topups.
type ListFilter struct {
	Status string
	UserID string
	Limit  int
	Offset int
}

func (f *ListFilter) Normalize() {
	if f.Limit <= 0 {
		f.Limit = defaultListLimit
	}
	if f.Limit > maxListLimit {
		f.Limit = maxListLimit
	}
	if f.Offset < 0 {
		f.Offset = 0
	}
}
