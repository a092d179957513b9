package annotation

// CreateInput is a committed annotation draft. Coordinates are percentages
// of the content box, already relative; the engine did the pixel math.
type CreateInput struct {
	Token       string
	Type        string
	X           float64
	Y           float64
	Width       float64
	Height      float64
	Page        int
	Comment     string
	AuthorName  string
	AuthorEmail string
}
