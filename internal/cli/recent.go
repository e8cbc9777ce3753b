package cli

import (
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/llehouerou/uap/internal/errmsg"
	"github.com/llehouerou/uap/internal/state"
	"github.com/llehouerou/uap/internal/ui/render"
)

var now = time.Now

func listRecent(w io.Writer, st state.Interface, limit int) error {
	entries, err := st.Recent(limit)
	if err != nil {
		return fmt.Errorf("%s: %w", errmsg.OpReadHistory, err)
	}
	if len(entries) == 0 {
		_, err := fmt.Fprintln(w, "No listening history.")
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	t := now()
	for _, e := range entries {
		title := e.Title
		if e.Artist != "" {
			title += " by " + e.Artist
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n",
			humanize.RelTime(e.UpdatedAt, t, "ago", "from now"),
			render.Clock(e.Position),
			title,
			e.Path,
		)
	}
	return tw.Flush()
}
