package movine

import (
	"fmt"
	"io"

	"github.com/pseudomuto/movine/pkg/migrator"
)

func printStatus(w io.Writer, set *migrator.MatchSet) {
	if len(set.Matches) == 0 {
		fmt.Fprintln(w, "No migrations found.")
		return
	}

	for _, match := range set.Matches {
		fmt.Fprintf(w, "%-10s %s\n", match.Status, match.Key)
	}
}

func printPlan(w io.Writer, plan *migrator.Plan) {
	if plan.Empty() {
		fmt.Fprintln(w, "Nothing to do.")
		return
	}

	for _, step := range plan.Steps {
		fmt.Fprintf(w, "%-5s %s\n", step.Step, step.Migration.Key())
	}
}
