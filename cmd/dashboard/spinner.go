package main

import (
	"io"
	"time"

	"github.com/schollz/progressbar/v3"
)

// withSpinner shows an indeterminate spinner on w while fn runs.
func withSpinner[T any](w io.Writer, description string, fn func() (T, error)) (T, error) {
	bar := progressbar.NewOptions(-1,
		progressbar.OptionSetWriter(w),
		progressbar.OptionSetDescription(description),
		progressbar.OptionSpinnerType(14),
		progressbar.OptionClearOnFinish(),
	)

	done := make(chan struct{})
	ticker := time.NewTicker(100 * time.Millisecond)

	go func() {
		defer ticker.Stop()

		for {
			select {
			case <-done:
				return
			case <-ticker.C:
				_ = bar.Add(1)
			}
		}
	}()

	result, err := fn()

	close(done)
	_ = bar.Finish()

	return result, err
}
