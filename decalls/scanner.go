package decalls

import (
	"context"
	"fmt"

	"decalls-stats/logger"

	"github.com/gagliardetto/solana-go"
)

// ScanReport counts what a program scan saw.
type ScanReport struct {
	Total    int
	Decoded  int
	Unknown  int
	Rejected int
}

// Scanner enumerates the accounts of a program and decodes the UserStats among them.
type Scanner struct {
	transport Transport
}

func NewScanner(transport Transport) *Scanner {
	return &Scanner{transport: transport}
}

// Scan returns every valid UserStats account owned by programID.
func (s *Scanner) Scan(ctx context.Context, programID solana.PublicKey) ([]*UserStats, error) {
	records, _, err := s.ScanWithReport(ctx, programID)
	return records, err
}

// ScanWithReport is Scan plus the per-kind counts. Accounts of other kinds are
// skipped, and a UserStats account that fails validation is logged and skipped
// so one bad account never hides the rest.
func (s *Scanner) ScanWithReport(ctx context.Context, programID solana.PublicKey) ([]*UserStats, ScanReport, error) {
	var report ScanReport

	accounts, err := s.transport.GetProgramAccounts(ctx, programID)
	if err != nil {
		return nil, report, fmt.Errorf("failed to scan program %s: %w", programID, err)
	}
	report.Total = len(accounts)

	records := make([]*UserStats, 0, len(accounts))
	for _, item := range accounts {
		if KindOf(item.Account.Data) == KindUnknown {
			logger.Log.Debugw("skipping account of unknown kind",
				"address", item.Address.String(),
				"size", len(item.Account.Data),
			)
			report.Unknown++
			continue
		}

		decoded, err := validateAccount(item.Address, item.Account, programID)
		if err != nil {
			logger.Log.Warnw("skipping invalid account",
				"address", item.Address.String(),
				"error", err,
			)
			report.Rejected++
			continue
		}

		switch account := decoded.(type) {
		case *UserStats:
			records = append(records, account)
			report.Decoded++
		default:
			logger.Log.Debugw("skipping account of another kind",
				"address", item.Address.String(),
				"kind", account.Kind().String(),
			)
			report.Unknown++
		}
	}

	logger.Log.Infow("program scan finished",
		"program", programID.String(),
		"accounts", report.Total,
		"user_stats", report.Decoded,
		"unknown", report.Unknown,
		"rejected", report.Rejected,
	)
	return records, report, nil
}
