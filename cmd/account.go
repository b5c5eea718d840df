package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"decalls-stats/decalls"

	"github.com/davecgh/go-spew/spew"
	"github.com/gagliardetto/solana-go"
	"github.com/spf13/cobra"
)

var (
	accountDump  bool
	accountJSON  bool
	accountOwner string
	accountAsset string
)

var accountCmd = &cobra.Command{
	Use:   "account [ADDRESS...]",
	Short: "Fetch and decode UserStats accounts by address, or by owner and asset.",
	RunE: func(cmd *cobra.Command, args []string) error {
		byOwner := accountOwner != "" || accountAsset != ""
		switch {
		case byOwner && len(args) > 0:
			return errors.New("use either addresses or --owner/--asset, not both")
		case byOwner && (accountOwner == "" || accountAsset == ""):
			return errors.New("--owner and --asset must be given together")
		case !byOwner && len(args) == 0:
			return errors.New("at least one address, or --owner and --asset, is required")
		}

		client, err := newClient(appConfig)
		if err != nil {
			return err
		}
		printer := &accountPrinter{out: cmd.OutOrStdout()}

		if byOwner {
			return showAccountByOwner(cmd, client, printer)
		}

		addresses := make([]solana.PublicKey, len(args))
		for i, arg := range args {
			key, err := solana.PublicKeyFromBase58(arg)
			if err != nil {
				return fmt.Errorf("invalid address %q: %w", arg, err)
			}
			addresses[i] = key
		}

		records, fetchErr := client.FetchMultipleUserStats(cmd.Context(), addresses)
		failures := accountErrors(fetchErr)
		for i, address := range addresses {
			switch {
			case failures[address] != nil:
				printer.problem(address, failures[address].Error())
			case records[i] == nil:
				printer.problem(address, "not found")
			default:
				printer.record(address, records[i])
			}
		}
		if err := printer.flush(); err != nil {
			return err
		}

		if len(failures) > 0 {
			return fmt.Errorf("%d of %d accounts could not be read", len(failures), len(addresses))
		}
		return fetchErr
	},
}

// showAccountByOwner derives the UserStats address of an owner and asset and reads it.
func showAccountByOwner(cmd *cobra.Command, client *decalls.Client, printer *accountPrinter) error {
	owner, err := solana.PublicKeyFromBase58(accountOwner)
	if err != nil {
		return fmt.Errorf("invalid owner %q: %w", accountOwner, err)
	}
	asset, err := solana.PublicKeyFromBase58(accountAsset)
	if err != nil {
		return fmt.Errorf("invalid asset %q: %w", accountAsset, err)
	}

	address, _, err := client.GetUserStatsPDA(owner, asset)
	if err != nil {
		return fmt.Errorf("failed to derive user stats address: %w", err)
	}
	stats, err := client.FetchUserStats(cmd.Context(), address)
	if err != nil {
		return err
	}
	if stats == nil {
		printer.problem(address, "not found")
	} else {
		printer.record(address, stats)
	}
	return printer.flush()
}

// accountErrors indexes the errors joined by FetchMultipleUserStats by address.
func accountErrors(err error) map[solana.PublicKey]error {
	out := make(map[solana.PublicKey]error)
	var walk func(error)
	walk = func(err error) {
		switch e := err.(type) {
		case *decalls.ValidationError:
			out[e.Address] = e
		case *decalls.FetchError:
			for _, address := range e.Addresses {
				out[address] = e
			}
		case interface{ Unwrap() []error }:
			for _, inner := range e.Unwrap() {
				walk(inner)
			}
		}
	}
	if err != nil {
		walk(err)
	}
	return out
}

// accountPrinter writes records as tables, spew dumps or one JSON array.
type accountPrinter struct {
	out      io.Writer
	portable []decalls.PortableRecord
}

func (p *accountPrinter) problem(address solana.PublicKey, reason string) {
	fmt.Fprintln(p.out, warningStyle.Render(fmt.Sprintf("%s: %s", address, reason)))
}

func (p *accountPrinter) record(address solana.PublicKey, stats *decalls.UserStats) {
	switch {
	case accountJSON:
		p.portable = append(p.portable, stats.ToPortable())
	case accountDump:
		fmt.Fprintln(p.out, headerStyle.Render(address.String()))
		fmt.Fprintln(p.out, spew.Sdump(stats))
	default:
		fmt.Fprintln(p.out, renderUserStats(address, stats))
	}
}

func (p *accountPrinter) flush() error {
	if !accountJSON {
		return nil
	}
	enc := json.NewEncoder(p.out)
	enc.SetIndent("", "  ")
	if err := enc.Encode(p.portable); err != nil {
		return fmt.Errorf("failed to encode records: %w", err)
	}
	return nil
}

func init() {
	accountCmd.Flags().BoolVar(&accountDump, "dump", false, "print the decoded record with all fields")
	accountCmd.Flags().BoolVar(&accountJSON, "json", false, "print records in their portable JSON form")
	accountCmd.Flags().StringVar(&accountOwner, "owner", "", "look up the account of this owner (requires --asset)")
	accountCmd.Flags().StringVar(&accountAsset, "asset", "", "asset of the account to look up (requires --owner)")

	rootCmd.AddCommand(accountCmd)
}
