package model

import "fmt"

const (
	FilePrefix    = "qr_code_"
	FileExtension = ".png"
)

// FileName is the deterministic artifact name for a booking code.
func FileName(uniqueCode string) string {
	return fmt.Sprintf("%s%s%s", FilePrefix, uniqueCode, FileExtension)
}

// Artifact is the stored credential image of a booking.
type Artifact struct {
	Key         string
	URL         string
	Regenerated bool
}

// SweepResult summarizes a regeneration pass.
type SweepResult struct {
	Scanned     int
	Regenerated int
	Failed      int
}
