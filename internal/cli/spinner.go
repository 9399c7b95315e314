package cli

import (
	"io"
	"time"

	"github.com/briandowns/spinner"
)

// startSpinner shows message with a spinner on w unless log output is
// enabled, in which case the log lines already report progress. The returned
// cleanup stops the spinner and prints its final message.
func startSpinner(w io.Writer, message string) (*spinner.Spinner, func()) {
	s := spinner.New(spinner.CharSets[14], 100*time.Millisecond, spinner.WithWriter(w))
	s.Suffix = " " + message
	// Continue without color if the terminal does not support it.
	_ = s.Color("cyan")

	quiet := !verbose && !debug
	if quiet {
		s.Start()
	}

	cleanup := func() {
		if quiet {
			s.Stop()
			return
		}
		if s.FinalMSG != "" {
			io.WriteString(w, s.FinalMSG)
		}
	}
	return s, cleanup
}
