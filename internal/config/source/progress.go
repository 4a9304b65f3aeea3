package source

import (
	"io"
	"log/slog"
)

// Progress reports the state of a transfer.
type Progress struct {
	Artifact   string
	BytesDone  int64
	BytesTotal int64 // -1 when the remote did not report a size
}

// Percent returns the completed percentage, or -1 if the total is unknown.
func (p Progress) Percent() float64 {
	if p.BytesTotal <= 0 {
		return -1
	}

	return float64(p.BytesDone) / float64(p.BytesTotal) * 100
}

// LogProgress returns a progress callback that logs every tenth of a
// known-size transfer. Transfers of unknown size are not logged.
func LogProgress() func(Progress) {
	lastStep := -1

	return func(p Progress) {
		pct := p.Percent()
		if pct < 0 {
			return
		}

		step := int(pct / 10)
		if step <= lastStep {
			return
		}
		lastStep = step

		slog.Info("Download progress",
			"artifact", p.Artifact,
			"percent", step*10,
			"bytes", p.BytesDone,
			"total", p.BytesTotal)
	}
}

// progressReader wraps an io.Reader and reports cumulative progress as bytes are read.
type progressReader struct {
	reader     io.Reader
	progress   Progress
	onProgress func(Progress)
}

func (pr *progressReader) Read(p []byte) (n int, err error) {
	n, err = pr.reader.Read(p)
	if n > 0 && pr.onProgress != nil {
		pr.progress.BytesDone += int64(n)
		pr.onProgress(pr.progress)
	}
	return
}
