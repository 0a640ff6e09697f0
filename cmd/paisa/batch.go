package main

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/nmehta6/paisatrail/internal/cli"
	"github.com/nmehta6/paisatrail/internal/model"
)

// batchMessage is the JSON-lines input format of the batch command.
type batchMessage struct {
	Sender     string    `json:"sender"`
	Body       string    `json:"body"`
	ReceivedAt time.Time `json:"received_at"`
}

func batchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "batch <file>",
		Short: "Process a file of SMS messages",
		Long: `Process a JSON-lines file of messages through the extraction
pipeline with bounded concurrency and deduplication.

Each line is an object: {"sender": "...", "body": "...", "received_at": "..."}.

With --stream, results print as they complete instead of in input order.`,
		Args: cobra.ExactArgs(1),
		RunE: runBatch,
	}

	cmd.Flags().Bool("verbose", false, "print every result, not just the summary")
	cmd.Flags().Bool("stream", false, "process as a stream, emitting results as they complete")

	return cmd
}

func readMessages(path string) ([]model.RawMessage, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open message file: %w", err)
	}
	defer func() { _ = f.Close() }()

	var messages []model.RawMessage
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	line := 0
	for scanner.Scan() {
		line++
		raw := scanner.Bytes()
		if len(raw) == 0 {
			continue
		}
		var bm batchMessage
		if err := json.Unmarshal(raw, &bm); err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		if bm.ReceivedAt.IsZero() {
			bm.ReceivedAt = time.Now()
		}
		messages = append(messages, model.RawMessage{
			Sender:     bm.Sender,
			Body:       bm.Body,
			ReceivedAt: bm.ReceivedAt,
			Direction:  model.DirectionReceived,
		})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read message file: %w", err)
	}
	return messages, nil
}

func runBatch(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	verbose, _ := cmd.Flags().GetBool("verbose")
	stream, _ := cmd.Flags().GetBool("stream")
	threshold := viper.GetFloat64("confidence.auto_accept")

	messages, err := readMessages(args[0])
	if err != nil {
		return err
	}
	if len(messages) == 0 {
		fmt.Println("no messages to process")
		return nil
	}

	a, err := newApp(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = a.Close() }()

	processor := a.processor()

	var results []model.ExtractionResult
	if stream {
		in := make(chan model.RawMessage)
		go func() {
			defer close(in)
			for _, msg := range messages {
				select {
				case in <- msg:
				case <-ctx.Done():
					return
				}
			}
		}()
		for res := range processor.ProcessStream(ctx, in) {
			renderResult(res, threshold)
			results = append(results, res)
		}
	} else {
		bar := progressbar.Default(int64(len(messages)), "extracting")
		chunk := viper.GetInt("engine.chunk_size")
		if chunk <= 0 {
			chunk = 50
		}
		for start := 0; start < len(messages); start += chunk {
			end := min(start+chunk, len(messages))
			results = append(results, processor.ProcessBatch(ctx, messages[start:end])...)
			_ = bar.Add(end - start)
		}
		_ = bar.Finish()

		if verbose {
			for _, res := range results {
				renderResult(res, threshold)
			}
		}
	}

	printSummary(results, threshold)
	return nil
}

func printSummary(results []model.ExtractionResult, threshold float64) {
	var accepted, review int
	failures := make(map[model.FailureReason]int)
	for _, res := range results {
		switch {
		case res.Success && res.Confidence >= threshold:
			accepted++
		case res.Success:
			review++
		default:
			failures[res.Reason]++
		}
	}

	fmt.Println(cli.TitleStyle.Render("Batch summary"))
	fmt.Printf("  %s auto-accepted\n", cli.SuccessStyle.Render(fmt.Sprintf("%d", accepted)))
	fmt.Printf("  %s queued for review\n", cli.WarningStyle.Render(fmt.Sprintf("%d", review)))
	for reason, count := range failures {
		fmt.Printf("  %s %s\n", cli.ErrorStyle.Render(fmt.Sprintf("%d", count)),
			cli.SubtleStyle.Render(string(reason)))
	}
}
