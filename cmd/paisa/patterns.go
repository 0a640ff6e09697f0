package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/nmehta6/paisatrail/internal/model"
	"github.com/nmehta6/paisatrail/internal/registry"
)

func patternsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "patterns",
		Short: "Manage institution pattern bundles",
		Long: `List, register, enable, disable and remove the per-institution
patterns used to recognize financial SMS messages.

Built-in institutions are always present; custom bundles registered
here are persisted and loaded on every run. When several sender
patterns match the same message, the bundle registered first wins.`,
	}

	cmd.AddCommand(patternsListCmd())
	cmd.AddCommand(patternsAddCmd())
	cmd.AddCommand(patternsEnableCmd())
	cmd.AddCommand(patternsDisableCmd())
	cmd.AddCommand(patternsRemoveCmd())

	return cmd
}

func patternsListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List registered pattern bundles",
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := newApp(cmd.Context())
			if err != nil {
				return err
			}
			defer func() { _ = a.Close() }()

			w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tINSTITUTION\tSENDER PATTERN\tACTIVE")
			for _, b := range a.registry.All() {
				fmt.Fprintf(w, "%s\t%s\t%s\t%v\n", b.ID, b.Institution, b.SenderPattern, b.Active)
			}
			return w.Flush()
		},
	}
}

func patternsAddCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Register a custom pattern bundle",
		Long: `Register a custom institution pattern bundle. Patterns are
case-insensitive regular expressions; the first capturing group (or the
whole match) becomes the field value. A bundle with a malformed field
pattern still registers, but that field degrades to the generic
fallbacks.`,
		RunE: runPatternsAdd,
	}

	cmd.Flags().String("institution", "", "institution name (required)")
	cmd.Flags().String("sender", "", "sender-match pattern (required)")
	cmd.Flags().String("amount", "", "amount pattern (required)")
	cmd.Flags().String("merchant", "", "merchant pattern")
	cmd.Flags().String("date", "", "date pattern")
	cmd.Flags().String("type", "", "type pattern")
	cmd.Flags().String("account", "", "account identifier pattern")
	_ = cmd.MarkFlagRequired("institution")
	_ = cmd.MarkFlagRequired("sender")
	_ = cmd.MarkFlagRequired("amount")

	return cmd
}

func runPatternsAdd(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	a, err := newApp(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = a.Close() }()

	institution, _ := cmd.Flags().GetString("institution")
	sender, _ := cmd.Flags().GetString("sender")
	amount, _ := cmd.Flags().GetString("amount")
	merchant, _ := cmd.Flags().GetString("merchant")
	date, _ := cmd.Flags().GetString("date")
	typePattern, _ := cmd.Flags().GetString("type")
	account, _ := cmd.Flags().GetString("account")

	bundle := &model.PatternBundle{
		Institution:     institution,
		SenderPattern:   sender,
		AmountPattern:   amount,
		MerchantPattern: merchant,
		DatePattern:     date,
		TypePattern:     typePattern,
		AccountPattern:  account,
		Active:          true,
	}

	if err := a.registry.Register(bundle); err != nil {
		return err
	}
	if err := a.store.SavePatternBundle(ctx, bundle.CloneDefinition()); err != nil {
		return err
	}

	fmt.Printf("registered pattern bundle %s for %s\n", bundle.ID, bundle.Institution)
	return nil
}

func patternsEnableCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "enable <id>",
		Short: "Activate a pattern bundle",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return setPatternActive(cmd, args[0], true)
		},
	}
}

func patternsDisableCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "disable <id>",
		Short: "Deactivate a pattern bundle without deleting it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return setPatternActive(cmd, args[0], false)
		},
	}
}

func setPatternActive(cmd *cobra.Command, id string, active bool) error {
	ctx := cmd.Context()

	a, err := newApp(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = a.Close() }()

	var regErr error
	if active {
		regErr = a.registry.Activate(id)
	} else {
		regErr = a.registry.Deactivate(id)
	}
	if regErr != nil {
		return regErr
	}

	// Persist the flag for custom bundles and as an override row for
	// built-ins; stored rows are re-registered over the defaults at
	// startup, so the flag survives restarts either way.
	bundle, err := a.registry.Get(id)
	if err != nil {
		return err
	}
	if err := a.store.SavePatternBundle(ctx, bundle.CloneDefinition()); err != nil {
		return err
	}

	fmt.Printf("pattern bundle %s active=%v\n", id, active)
	return nil
}

func patternsRemoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "remove <id>",
		Short: "Delete a pattern bundle",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			a, err := newApp(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = a.Close() }()

			if err := a.registry.Delete(args[0]); err != nil {
				return err
			}
			if _, err := a.store.GetPatternBundle(ctx, args[0]); err == nil {
				if err := a.store.DeletePatternBundle(ctx, args[0]); err != nil {
					return err
				}
			}

			if registry.IsBuiltin(args[0]) {
				fmt.Printf("removed pattern bundle %s for this session; built-in bundles are re-seeded on the next run, use 'patterns disable' to turn one off permanently\n", args[0])
				return nil
			}
			fmt.Printf("removed pattern bundle %s\n", args[0])
			return nil
		},
	}
}
