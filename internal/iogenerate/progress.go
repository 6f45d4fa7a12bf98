package iogenerate

import (
	"github.com/cheggaaa/pb/v3"
)

// progressBar abstracts the CLI progress bar so non-interactive runs
// (and tests) can use a no-op.
type progressBar interface {
	Increment() *pb.ProgressBar
	Finish() *pb.ProgressBar
}

type noProgress struct{}

func (noProgress) Increment() *pb.ProgressBar { return nil }
func (noProgress) Finish() *pb.ProgressBar    { return nil }

// newProgressBar creates a new progress bar with consistent settings.
func newProgressBar(total int, prefix string) *pb.ProgressBar {
	bar := pb.Full.Start(total)
	bar.Set("prefix", prefix)
	bar.Set(pb.CleanOnFinish, true)
	return bar
}
