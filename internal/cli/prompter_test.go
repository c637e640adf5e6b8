package cli

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mazerunner70/housef3/internal/model"
)

func samplePending() model.PendingReview {
	return model.PendingReview{
		Candidate: model.TransferCandidate{
			Outgoing: model.Transaction{
				ID:        "out-1",
				AccountID: "checking",
				Date:      time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC),
				Name:      "ONLINE TRANSFER TO SAVINGS",
				Currency:  "USD",
				Amount:    -500.00,
			},
			Incoming: model.Transaction{
				ID:        "in-1",
				AccountID: "savings",
				Date:      time.Date(2024, 1, 11, 0, 0, 0, 0, time.UTC),
				Name:      "TRANSFER FROM CHECKING",
				Currency:  "USD",
				Amount:    500.00,
			},
			Amount:             500.00,
			DateDifferenceDays: 1,
			Confidence:         95,
		},
		Window: model.NewDateRange(
			time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
			time.Date(2024, 1, 30, 0, 0, 0, 0, time.UTC),
		),
		Index:           1,
		Total:           2,
		CoveragePercent: 25,
	}
}

func TestReviewCandidateConfirm(t *testing.T) {
	var out bytes.Buffer
	prompter := NewPrompter(strings.NewReader("c\n"), &out)

	decision, err := prompter.ReviewCandidate(context.Background(), samplePending())
	require.NoError(t, err)
	assert.Equal(t, model.DecisionConfirm, decision)

	assert.Contains(t, out.String(), "Possible Transfer 1 of 2")
	assert.Contains(t, out.String(), "checking")
	assert.Contains(t, out.String(), "savings")
}

func TestReviewCandidateConfirmUppercase(t *testing.T) {
	var out bytes.Buffer
	prompter := NewPrompter(strings.NewReader("C\n"), &out)

	decision, err := prompter.ReviewCandidate(context.Background(), samplePending())
	require.NoError(t, err)
	assert.Equal(t, model.DecisionConfirm, decision)
}

func TestReviewCandidateIgnore(t *testing.T) {
	var out bytes.Buffer
	prompter := NewPrompter(strings.NewReader("i\n"), &out)

	decision, err := prompter.ReviewCandidate(context.Background(), samplePending())
	require.NoError(t, err)
	assert.Equal(t, model.DecisionIgnore, decision)
}

func TestReviewCandidateRepromptsOnInvalidInput(t *testing.T) {
	var out bytes.Buffer
	prompter := NewPrompter(strings.NewReader("x\nc\n"), &out)

	decision, err := prompter.ReviewCandidate(context.Background(), samplePending())
	require.NoError(t, err)
	assert.Equal(t, model.DecisionConfirm, decision)
	assert.Contains(t, out.String(), "Please enter C or I")
}

func TestReviewCandidateCanceledContext(t *testing.T) {
	var out bytes.Buffer
	prompter := NewPrompter(strings.NewReader(""), &out)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := prompter.ReviewCandidate(ctx, samplePending())
	require.Error(t, err)
}

func TestAutoPrompterConfirmsWithoutInput(t *testing.T) {
	var out bytes.Buffer
	prompter := NewAutoPrompter(&out)

	decision, err := prompter.ReviewCandidate(context.Background(), samplePending())
	require.NoError(t, err)
	assert.Equal(t, model.DecisionConfirm, decision)
	assert.Contains(t, out.String(), "Auto-confirming")
}

func TestDisplayNameTruncation(t *testing.T) {
	long := model.Transaction{Name: "A VERY LONG TRANSACTION DESCRIPTION THAT KEEPS GOING"}
	got := displayName(long)
	assert.Len(t, got, 24)
	assert.True(t, strings.HasSuffix(got, "..."))

	short := model.Transaction{Name: "COFFEE", MerchantName: "Corner Cafe"}
	assert.Equal(t, "Corner Cafe", displayName(short), "merchant name wins when set")
}

func TestNonBlockingReaderReadsLine(t *testing.T) {
	reader := NewNonBlockingReader(strings.NewReader("  hello  \n"))

	line, err := reader.ReadLine(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "hello", line)
}

func TestNonBlockingReaderCancel(t *testing.T) {
	// A reader that never delivers: cancellation must unblock the caller.
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	reader := NewNonBlockingReader(blockingReader{})
	_, err := reader.ReadLine(ctx)
	require.ErrorIs(t, err, ErrInputCancelled)
}

// blockingReader never returns from Read.
type blockingReader struct{}

func (blockingReader) Read([]byte) (int, error) {
	select {}
}
