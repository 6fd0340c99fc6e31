package domain

// RepoStats holds the metrics fetched for a single repository.
// Fields are nil when the metric was not selected.
type RepoStats struct {
	Name     string `json:"name"`
	Stars    *int   `json:"stars,omitempty"`
	Forks    *int   `json:"forks,omitempty"`
	Branches *int   `json:"branches,omitempty"`
	Commits  *int   `json:"commits,omitempty"`
}

// Summary aggregates stars and forks across all fetched repositories.
type Summary struct {
	TotalStars  int     `json:"total_stars"`
	TotalForks  int     `json:"total_forks"`
	MeanStars   float64 `json:"mean_stars"`
	MedianStars float64 `json:"median_stars"`
	MeanForks   float64 `json:"mean_forks"`
	MedianForks float64 `json:"median_forks"`
}

// Report is the result of a fetch run for one user.
type Report struct {
	User         string       `json:"user"`
	Repositories []*RepoStats `json:"repositories"`
	Summary      Summary      `json:"summary"`
}
