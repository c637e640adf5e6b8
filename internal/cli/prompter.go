package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/schollz/progressbar/v3"

	"github.com/mazerunner70/housef3/internal/model"
)

// Prompter implements the interactive review surface: it presents each
// transfer candidate and collects a confirm/ignore decision. With autoMode
// set, every candidate is confirmed without prompting.
type Prompter struct {
	reader      *NonBlockingReader
	writer      io.Writer
	progressBar *progressbar.ProgressBar
	lastPercent int
	autoMode    bool
}

// NewPrompter creates a CLI prompter reading decisions from reader.
func NewPrompter(reader io.Reader, writer io.Writer) *Prompter {
	if reader == nil {
		reader = os.Stdin
	}
	if writer == nil {
		writer = os.Stdout
	}

	return &Prompter{
		reader:      NewNonBlockingReader(reader),
		writer:      writer,
		lastPercent: -1,
	}
}

// NewAutoPrompter creates a prompter that confirms every candidate without
// user interaction, for batch sweeps.
func NewAutoPrompter(writer io.Writer) *Prompter {
	if writer == nil {
		writer = os.Stdout
	}
	return &Prompter{
		writer:      writer,
		lastPercent: -1,
		autoMode:    true,
	}
}

// ReviewCandidate presents a candidate and returns the user's decision.
func (p *Prompter) ReviewCandidate(ctx context.Context, pending model.PendingReview) (model.ReviewDecision, error) {
	select {
	case <-ctx.Done():
		return model.DecisionIgnore, ctx.Err()
	default:
	}

	p.updateProgress(pending.CoveragePercent)

	if p.autoMode {
		fmt.Fprintln(p.writer, FormatSuccess(fmt.Sprintf("Auto-confirming %s", pending.Candidate)))
		return model.DecisionConfirm, nil
	}

	content := p.formatCandidate(pending)
	fmt.Fprintln(p.writer, RenderBox(
		fmt.Sprintf("Possible Transfer %d of %d in %s", pending.Index, pending.Total, pending.Window),
		content))

	fmt.Fprintln(p.writer, "  [C] Confirm as transfer")
	fmt.Fprintln(p.writer, "  [I] Ignore (not a transfer)")
	fmt.Fprintln(p.writer)

	for {
		fmt.Fprint(p.writer, FormatPrompt("Choice"))

		line, err := p.reader.ReadLine(ctx)
		if err != nil {
			return model.DecisionIgnore, err
		}

		switch strings.ToLower(strings.TrimSpace(line)) {
		case "c":
			fmt.Fprintln(p.writer, FormatSuccess("Confirmed"))
			return model.DecisionConfirm, nil
		case "i":
			fmt.Fprintln(p.writer, SubtleStyle.Render("Ignored"))
			return model.DecisionIgnore, nil
		default:
			fmt.Fprintln(p.writer, FormatWarning("Please enter C or I"))
		}
	}
}

// formatCandidate renders the two legs of a candidate side by side.
func (p *Prompter) formatCandidate(pending model.PendingReview) string {
	c := pending.Candidate

	var b strings.Builder
	fmt.Fprintf(&b, "Out:  %s  %-24s  %s  -%.2f %s\n",
		c.Outgoing.Date.Format("2006-01-02"),
		displayName(c.Outgoing),
		c.Outgoing.AccountID,
		c.Amount,
		c.Outgoing.Currency)
	fmt.Fprintf(&b, "In:   %s  %-24s  %s  +%.2f %s\n",
		c.Incoming.Date.Format("2006-01-02"),
		displayName(c.Incoming),
		c.Incoming.AccountID,
		c.Amount,
		c.Incoming.Currency)
	fmt.Fprintf(&b, "\n%s days apart, confidence %s",
		fmt.Sprintf("%d", c.DateDifferenceDays),
		confidenceLabel(c.Confidence))

	return b.String()
}

func displayName(txn model.Transaction) string {
	name := txn.MerchantName
	if name == "" {
		name = txn.Name
	}
	if len(name) > 24 {
		name = name[:21] + "..."
	}
	return name
}

func confidenceLabel(score int) string {
	label := fmt.Sprintf("%d/100", score)
	switch {
	case score >= 90:
		return SuccessStyle.Render(label)
	case score >= 75:
		return WarningStyle.Render(label)
	default:
		return ErrorStyle.Render(label)
	}
}

// updateProgress redraws the coverage bar when the percentage moves.
func (p *Prompter) updateProgress(percent int) {
	if percent == p.lastPercent {
		return
	}
	p.lastPercent = percent

	if p.progressBar == nil {
		p.progressBar = progressbar.NewOptions(100,
			progressbar.OptionSetWriter(p.writer),
			progressbar.OptionSetDescription("History checked"),
			progressbar.OptionSetPredictTime(false),
			progressbar.OptionClearOnFinish(),
		)
	}
	_ = p.progressBar.Set(percent)
	fmt.Fprintln(p.writer)
}
