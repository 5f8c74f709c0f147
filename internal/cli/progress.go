package cli

import (
	"fmt"
	"os"
	"time"

	"lumidex/internal/parser"
	"lumidex/internal/textutil"

	"github.com/schollz/progressbar/v3"
)

// loadProgress draws a progress bar on stderr while records are stored.
type loadProgress struct {
	bar *progressbar.ProgressBar
}

func newLoadProgress(total int, quiet bool) *loadProgress {
	if quiet {
		return &loadProgress{}
	}
	return &loadProgress{
		bar: progressbar.NewOptions(total,
			progressbar.OptionSetWriter(os.Stderr),
			progressbar.OptionSetDescription("Loading records"),
			progressbar.OptionSetWidth(40),
			progressbar.OptionShowCount(),
			progressbar.OptionShowIts(),
			progressbar.OptionSetItsString("records/s"),
			progressbar.OptionThrottle(65*time.Millisecond),
			progressbar.OptionShowElapsedTimeOnFinish(),
			progressbar.OptionOnCompletion(func() {
				fmt.Fprintln(os.Stderr)
			}),
		),
	}
}

// OnRecord matches store.Loader.OnProgress.
func (p *loadProgress) OnRecord(rec parser.Record, inserted bool) {
	if p.bar == nil {
		return
	}
	p.bar.Describe(fmt.Sprintf("%03d %-16s", rec.DexNum, textutil.Truncate(rec.Species, 13)))
	p.bar.Add(1)
}

func (p *loadProgress) Finish() {
	if p.bar != nil {
		p.bar.Finish()
	}
}
