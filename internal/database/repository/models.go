package repository

import "time"

// Import represents one loaded source file.
type Import struct {
	ID          string
	FileName    string
	Format      string
	Sheet       string
	RowsLoaded  int
	RowsDropped int
	ImportedAt  time.Time
}

// Export represents one generated report.
type Export struct {
	ID        string
	ImportID  *string
	Kind      string
	FileName  string
	Rows      int
	Filters   string
	CreatedAt time.Time
}
