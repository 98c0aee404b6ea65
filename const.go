package musicguru

import "time"

// Constants.
const (
	DefaultPort = 8008

	DefaultDatabaseFile = "top10.txt"

	// NotFoundLine is sent in place of a song when the requested year has no
	// complete block in the database.
	NotFoundLine = "NOT_FOUND"

	DefaultDialRetries = 3

	DefaultDialBackoff = 500 * time.Millisecond
)
