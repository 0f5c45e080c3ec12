package cmd

import (
	"errors"
	"fmt"
	"io"

	"portfolio-gif/internal/gifmeta"
	"portfolio-gif/internal/metasync"
)

func printInspect(w io.Writer, p string, info *gifmeta.Info, err error) {
	if errors.Is(err, gifmeta.ErrFileNotFound) {
		fmt.Fprintf(w, "File not found: %s\n", p)
		return
	}
	if err != nil {
		fmt.Fprintf(w, "❌ Error reading %s: %s\n", p, err.Error())
		return
	}

	fmt.Fprintf(w, "Checking %s...\n", p)
	fmt.Fprintf(w, "Format: %s\n", info.Format)
	fmt.Fprintf(w, "Animated: %t\n", info.Animated)
	fmt.Fprintf(w, "Frames: %d\n", info.Frames)
	if info.LoopCount == gifmeta.LoopNotPresent {
		fmt.Fprintf(w, "Loop: not present\n")
	} else {
		fmt.Fprintf(w, "Loop: %d\n", info.LoopCount)
	}
	if info.HasDelay {
		fmt.Fprintf(w, "Duration: %d\n", info.FirstDelay.Milliseconds())
	} else {
		fmt.Fprintf(w, "Duration: N/A\n")
	}
}

func printMissingDir(w io.Writer, dir string) {
	fmt.Fprintf(w, "Directory %s does not exist.\n", dir)
}

func printFix(w io.Writer, dir string, batch *gifmeta.BatchResult, err error) {
	fmt.Fprintf(w, "Scanning %s for GIFs...\n", dir)
	if errors.Is(err, gifmeta.ErrDirectoryNotFound) {
		printMissingDir(w, dir)
		return
	}
	if err != nil {
		fmt.Fprintf(w, "❌ Failed reading '%s': %s\n", dir, err.Error())
		return
	}

	for _, f := range batch.Files {
		switch f.Status {
		case gifmeta.StatusFixed:
			fmt.Fprintf(w, "🟢 Fixed looping for: %s\n", f.Name)
		case gifmeta.StatusSkipped:
			fmt.Fprintf(w, "ℹ️ %s is %s.\n", f.Name, f.Reason)
		default:
			fmt.Fprintf(w, "❌ Error processing %s: %s\n", f.Name, errors.Unwrap(f.Err))
		}
	}
	fmt.Fprintf(w, "Done! Fixed %d GIFs.\n", batch.Fixed())
}

func printSync(w io.Writer, report *metasync.Report) {
	if report == nil {
		return
	}

	fmt.Fprintf(w, "--- Processing GIFs in %s ---\n", report.Batch.Dir)
	for _, f := range report.Batch.Files {
		switch f.Status {
		case gifmeta.StatusFixed:
			fmt.Fprintf(w, "🟢 processed %s: Duration=%dms, Loop=%d\n",
				f.Name, f.Duration.Milliseconds(), gifmeta.LoopOnceMarker)
		case gifmeta.StatusSkipped:
			fmt.Fprintf(w, "ℹ️ %s is %s.\n", f.Name, f.Reason)
		default:
			fmt.Fprintf(w, "❌ Error processing %s: %s\n", f.Name, errors.Unwrap(f.Err))
		}
	}

	fmt.Fprintf(w, "\n--- Updating project records ---\n")
	for _, u := range report.Updated {
		fmt.Fprintf(w, "🟢 Updated Project '%s' with duration %dms\n", u.Title, u.Duration.Milliseconds())
	}
	for _, u := range report.Unmatched {
		fmt.Fprintf(w, "⚠️ Project '%s': GIF %s not found or calculated.\n", u.Title, u.Filename)
	}
	for _, err := range report.Invalid {
		fmt.Fprintf(w, "⚠️ Skipping %s\n", err.Error())
	}
	fmt.Fprintf(w, "Done! Updated %d projects, %d unmatched.\n", len(report.Updated), len(report.Unmatched))
}
