package reporter

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/yaklabco/adoclint/internal/ui/pretty"
	"github.com/yaklabco/adoclint/pkg/fix"
	"github.com/yaklabco/adoclint/pkg/runner"
)

// DiffReporter renders the pending fixes of a dry run as git-style unified
// diffs, one block per changed file. Files without a diff produce no output.
type DiffReporter struct {
	styles      *pretty.Styles
	out         io.Writer
	showSummary bool
}

// NewDiffReporter builds a reporter that prints unified diffs to opts.Writer.
func NewDiffReporter(opts Options) *DiffReporter {
	return &DiffReporter{
		styles:      pretty.NewStyles(pretty.IsColorEnabled(opts.Color, opts.Writer)),
		out:         opts.Writer,
		showSummary: opts.ShowSummary,
	}
}

// diffTally accumulates change counts across files for the closing summary.
type diffTally struct {
	files     int
	additions int
	deletions int
}

// Report implements Reporter. The returned count is the number of files
// with pending changes.
func (dr *DiffReporter) Report(_ context.Context, res *runner.Result) (int, error) {
	if res == nil {
		return 0, nil
	}

	var tally diffTally
	for _, fr := range res.Files {
		if fr.Error != nil {
			fmt.Fprintf(dr.out, "%s: %s\n",
				dr.styles.FilePath.Render(fr.Path),
				dr.styles.Error.Render(fmt.Sprintf("error: %v", fr.Error)))
			continue
		}
		if fr.Result == nil || !fr.Result.Diff.HasChanges() {
			continue
		}

		tally.files++
		tally.additions += fr.Result.Diff.Additions
		tally.deletions += fr.Result.Diff.Deletions
		dr.emit(fr.Result.Diff)
	}

	if tally.files > 0 && dr.showSummary {
		dr.emitTally(tally)
	}
	return tally.files, nil
}

// emit renders one file's diff from its structured hunks.
func (dr *DiffReporter) emit(diff *fix.Diff) {
	path := displayPath(diff.Path)

	fmt.Fprintln(dr.out, dr.styles.DiffFileHeader.Render(
		fmt.Sprintf("diff --git a/%s b/%s", path, path)))
	fmt.Fprintln(dr.out, dr.styles.DiffRemove.Render("--- a/"+path))
	fmt.Fprintln(dr.out, dr.styles.DiffAdd.Render("+++ b/"+path))

	for _, hunk := range diff.Hunks {
		dr.emitHunk(hunk)
	}
	fmt.Fprintln(dr.out)
}

// emitHunk renders the @@ header and the prefixed lines of one hunk.
func (dr *DiffReporter) emitHunk(hunk fix.DiffHunk) {
	fmt.Fprintln(dr.out, dr.styles.DiffHunk.Render(
		fmt.Sprintf("@@ -%d,%d +%d,%d @@",
			hunk.OriginalStart, hunk.OriginalCount,
			hunk.ModifiedStart, hunk.ModifiedCount)))

	for _, line := range hunk.Lines {
		switch line.Kind {
		case fix.DiffLineAdd:
			fmt.Fprintln(dr.out, dr.styles.DiffAdd.Render("+"+line.Content))
		case fix.DiffLineRemove:
			fmt.Fprintln(dr.out, dr.styles.DiffRemove.Render("-"+line.Content))
		default:
			fmt.Fprintln(dr.out, dr.styles.DiffContext.Render(" "+line.Content))
		}
	}
}

// emitTally writes the git-style closing line, e.g.
// "2 files changed, 3 insertions(+), 1 deletion(-)".
func (dr *DiffReporter) emitTally(tally diffTally) {
	parts := []string{
		fmt.Sprintf("%d %s changed", tally.files, plural(tally.files, "file", "files")),
	}
	if tally.additions > 0 {
		parts = append(parts, dr.styles.DiffAdd.Render(fmt.Sprintf("%d %s(+)",
			tally.additions, plural(tally.additions, "insertion", "insertions"))))
	}
	if tally.deletions > 0 {
		parts = append(parts, dr.styles.DiffRemove.Render(fmt.Sprintf("%d %s(-)",
			tally.deletions, plural(tally.deletions, "deletion", "deletions"))))
	}
	fmt.Fprintln(dr.out, strings.Join(parts, ", "))
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}

// displayPath shortens an absolute path for the diff header. Paths that sit
// near the working directory render relative; anything needing more than two
// parent hops falls back to the bare filename.
func displayPath(path string) string {
	if filepath.IsAbs(path) {
		if cwd, err := os.Getwd(); err == nil {
			rel, rerr := filepath.Rel(cwd, path)
			if rerr == nil && strings.Count(rel, "..") <= 2 {
				return rel
			}
		}
		return filepath.Base(path)
	}
	return path
}
