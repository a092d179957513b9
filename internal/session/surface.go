package session

// ContentBox is the rendered bounding rectangle of the proof surface in
// device pixels. All stored annotation coordinates are percentages of this
// box, so responsive rescaling moves the box without invalidating them.
type ContentBox struct {
	Left   float64
	Top    float64
	Width  float64
	Height float64
}

// Point is a position in percent of the content box, top-left origin.
type Point struct {
	X float64
	Y float64
}

// Relative converts a raw pointer position to box-relative percentages.
// Values are clamped into [0,100], never rejected.
func (b ContentBox) Relative(px, py float64) Point {
	return Point{
		X: clamp((px-b.Left)/b.Width*100, 0, 100),
		Y: clamp((py-b.Top)/b.Height*100, 0, 100),
	}
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Surface tracks what the renderer exposes: the content box (nil until the
// asset renders, nil again on render failure) and the page window for
// paginated documents.
type Surface struct {
	box         *ContentBox
	currentPage int
	totalPages  int
}

func newSurface(totalPages int) *Surface {
	if totalPages < 1 {
		totalPages = 1
	}
	return &Surface{currentPage: 1, totalPages: totalPages}
}

// SetContentBox records a successful render. Gestures are no-ops until
// this is called.
func (s *Surface) SetContentBox(b ContentBox) {
	if b.Width <= 0 || b.Height <= 0 {
		return
	}
	s.box = &b
}

// ClearContentBox marks a render failure; annotation tools go inert and
// the caller falls back to opening the asset externally.
func (s *Surface) ClearContentBox() { s.box = nil }

func (s *Surface) Ready() bool { return s.box != nil }

func (s *Surface) CurrentPage() int { return s.currentPage }
func (s *Surface) TotalPages() int  { return s.totalPages }

// GoToPage clamps into [1, totalPages]; out-of-range requests land on the
// nearest valid page rather than failing.
func (s *Surface) GoToPage(page int) {
	if page < 1 {
		page = 1
	}
	if page > s.totalPages {
		page = s.totalPages
	}
	s.currentPage = page
}

func (s *Surface) NextPage() { s.GoToPage(s.currentPage + 1) }
func (s *Surface) PrevPage() { s.GoToPage(s.currentPage - 1) }
