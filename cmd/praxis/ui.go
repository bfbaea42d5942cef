package main

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/briandowns/spinner"
	"github.com/fatih/color"
	"github.com/poiesic/praxis"
	"github.com/poiesic/praxis/recommend"
	"github.com/schollz/progressbar/v3"
)

var (
	headingColor = color.New(color.FgCyan, color.Bold)
	successColor = color.New(color.FgGreen)
	warnColor    = color.New(color.FgYellow)
	alertColor   = color.New(color.FgRed, color.Bold)
	dimColor     = color.New(color.Faint)
)

func newSpinner(w io.Writer, message string) *spinner.Spinner {
	s := spinner.New(spinner.CharSets[14], 100*time.Millisecond, spinner.WithWriter(w))
	s.Suffix = " " + message
	return s
}

func newProgressBar(w io.Writer, total int, description string) *progressbar.ProgressBar {
	return progressbar.NewOptions(total,
		progressbar.OptionSetWriter(w),
		progressbar.OptionSetDescription(description),
		progressbar.OptionSetWidth(40),
		progressbar.OptionShowCount(),
		progressbar.OptionSetItsString("sources"),
		progressbar.OptionOnCompletion(func() { fmt.Fprintln(w) }),
		progressbar.OptionSetRenderBlankState(true),
	)
}

// printOutcome renders an outcome for a terminal. breakdowns may be nil.
func printOutcome(w io.Writer, o *praxis.Outcome, breakdowns *recommend.Recorder) {
	dimColor.Fprintf(w, "session %s\n", o.SessionID)

	switch o.Status {
	case praxis.StatusEmergency:
		alertColor.Fprintf(w, "✗ %s\n", o.Message)
		return
	case praxis.StatusInsufficient:
		warnColor.Fprintf(w, "⚠ %s\n", o.Message)
		if o.ClarifyingQuestion != "" {
			fmt.Fprintf(w, "  %s\n", o.ClarifyingQuestion)
		}
		return
	case praxis.StatusNoMatch:
		warnColor.Fprintf(w, "⚠ %s\n", o.Message)
		return
	}

	headingColor.Fprintln(w, "Recommandations")
	for i, r := range o.Recommendations {
		successColor.Fprintf(w, "%d. %s", i+1, r.PracticeName)
		fmt.Fprintf(w, "  score %.3f", r.Score)
		if len(r.MatchedSymptoms) > 0 {
			fmt.Fprintf(w, "  [%s]", strings.Join(r.MatchedSymptoms, ", "))
		}
		fmt.Fprintln(w)
		if breakdowns == nil {
			continue
		}
		if b, ok := breakdowns.Breakdown(r.PracticeName); ok {
			dimColor.Fprintf(w, "   similarity %.3f, matches %d+%d, raw %.3f, urgency x%.2f, feedback x%.2f\n",
				b.Similarity, b.ExactMatches, b.FuzzyMatches, b.Raw, b.UrgencyFactor, b.FeedbackWeight)
		}
	}

	if o.Practice != nil && o.Practice.Description.Short != "" {
		fmt.Fprintf(w, "\n%s\n", o.Practice.Description.Short)
	}
	if o.Advice != "" {
		fmt.Fprintf(w, "\n%s\n", o.Advice)
	}
	if len(o.Sources) > 0 {
		headingColor.Fprintln(w, "\nSources")
		for _, s := range o.Sources {
			fmt.Fprintf(w, "- %s\n", s)
		}
	}
}
