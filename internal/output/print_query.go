package output

import (
	"fmt"
	"io"

	"github.com/aurceive/vtm-dice-mapping/internal/domain"
)

// PrintQuery writes the single-roll conversion block.
func PrintQuery(w io.Writer, res domain.QueryResult) error {
	_, err := fmt.Fprintf(w,
		"v20\n"+
			"\tparameters:\n"+
			"\t\tdice: %d\n"+
			"\t\trequired successes: %d\n"+
			"\t\tdifficulty: %d\n"+
			"\tsuccess chance: %s%%\n"+
			"v5\n"+
			"\tdifficulty: %d\n"+
			"\tsuccess chance: %s%%\n",
		res.Query.Dice,
		res.Query.Successes,
		res.Query.Difficulty,
		FormatPercent(res.LegacyProbability),
		res.MappedDifficulty,
		FormatPercent(res.SimplifiedProbability),
	)
	return err
}
