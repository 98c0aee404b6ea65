package musicguru

import (
	"fmt"

	"github.com/skycoin/musicguru/songdb"
)

// NoRankOutput is produced when a song line carries no rank.
const NoRankOutput = "Error: no song rank found in server response"

// FormatSongOutput renders a song line received from the server for year.
func FormatSongOutput(songLine string, year int) string {
	rank, ok := songdb.LeadingRank(songLine)
	if !ok {
		return NoRankOutput
	}
	return fmt.Sprintf("In %d the number %s song was %s", year, rank, songdb.StripRank(songLine))
}
