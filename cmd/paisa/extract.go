package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/nmehta6/paisatrail/internal/model"
)

func extractCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "extract",
		Short: "Extract a transaction from a single SMS message",
		Long: `Run one message through the extraction pipeline and print the
provisional transaction with its confidence score.

Examples:
  paisa extract --sender VK-HDFCBK --body "Rs.1500.00 debited from A/c no XXXX1234 at AMAZON on 15-01-2024 14:30:25"`,
		RunE: runExtract,
	}

	cmd.Flags().String("sender", "", "sender identity of the message (required)")
	cmd.Flags().String("body", "", "message body text (required)")
	cmd.Flags().String("received", "", "arrival time, RFC3339 (default: now)")
	_ = cmd.MarkFlagRequired("sender")
	_ = cmd.MarkFlagRequired("body")

	return cmd
}

func runExtract(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	sender, _ := cmd.Flags().GetString("sender")
	body, _ := cmd.Flags().GetString("body")
	receivedFlag, _ := cmd.Flags().GetString("received")

	receivedAt := time.Now()
	if receivedFlag != "" {
		parsed, err := time.Parse(time.RFC3339, receivedFlag)
		if err != nil {
			return fmt.Errorf("invalid --received value: %w", err)
		}
		receivedAt = parsed
	}

	a, err := newApp(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = a.Close() }()

	result := a.pipeline.Process(ctx, model.RawMessage{
		Sender:     sender,
		Body:       body,
		ReceivedAt: receivedAt,
		Direction:  model.DirectionReceived,
	})

	renderResult(result, viper.GetFloat64("confidence.auto_accept"))
	return nil
}
