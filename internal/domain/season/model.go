package season

// Season groups the weeks of one competition run.
type Season struct {
	ID          string
	Name        string
	CurrentWeek int
	IsActive    bool
}
