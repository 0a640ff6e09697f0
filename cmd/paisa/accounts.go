package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

func accountsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "accounts",
		Short: "Manage account mappings",
		Long: `Link the masked account identifiers that appear in SMS text
(e.g. "XXXX1234") to internal account ids, so extracted transactions
arrive pre-linked to the right account.`,
	}

	cmd.AddCommand(accountsLinkCmd())
	cmd.AddCommand(accountsListCmd())
	cmd.AddCommand(accountsUnlinkCmd())

	return cmd
}

func accountsLinkCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "link",
		Short: "Link a masked identifier to an account",
		RunE:  runAccountsLink,
	}

	cmd.Flags().String("account", "", "internal account id (required)")
	cmd.Flags().String("institution", "", "institution name (required)")
	cmd.Flags().String("identifier", "", "masked identifier as seen in SMS, e.g. XXXX1234 (required)")
	_ = cmd.MarkFlagRequired("account")
	_ = cmd.MarkFlagRequired("institution")
	_ = cmd.MarkFlagRequired("identifier")

	return cmd
}

func runAccountsLink(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	a, err := newApp(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = a.Close() }()

	account, _ := cmd.Flags().GetString("account")
	institution, _ := cmd.Flags().GetString("institution")
	identifier, _ := cmd.Flags().GetString("identifier")

	mapping, superseded, err := a.accounts.CreateMapping(account, institution, identifier)
	if err != nil {
		return err
	}
	if err := a.store.SaveAccountMapping(ctx, mapping); err != nil {
		return err
	}
	// A relink deactivates the previous mapping for the pair; persist
	// that too, or the next run restores both as active.
	for _, old := range superseded {
		if err := a.store.SaveAccountMapping(ctx, old); err != nil {
			return err
		}
	}

	fmt.Printf("linked %s/%s -> %s (mapping %s)\n",
		mapping.Institution, mapping.Identifier, mapping.AccountID, mapping.ID)
	return nil
}

func accountsListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List account mappings",
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := newApp(cmd.Context())
			if err != nil {
				return err
			}
			defer func() { _ = a.Close() }()

			w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tINSTITUTION\tIDENTIFIER\tACCOUNT\tACTIVE")
			for _, m := range a.accounts.All() {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%v\n", m.ID, m.Institution, m.Identifier, m.AccountID, m.Active)
			}
			return w.Flush()
		},
	}
}

func accountsUnlinkCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "unlink <mapping-id>",
		Short: "Deactivate an account mapping",
		Long: `Deactivate a mapping so it no longer resolves. The record is kept
for audit rather than deleted.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			a, err := newApp(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = a.Close() }()

			if err := a.accounts.Deactivate(args[0]); err != nil {
				return err
			}
			for _, m := range a.accounts.All() {
				if m.ID == args[0] {
					if err := a.store.SaveAccountMapping(ctx, m); err != nil {
						return err
					}
					break
				}
			}

			fmt.Printf("deactivated mapping %s\n", args[0])
			return nil
		},
	}
}
