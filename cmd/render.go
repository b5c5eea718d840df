package cmd

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"decalls-stats/decalls"
	"decalls-stats/stats"

	"github.com/charmbracelet/lipgloss"
	"github.com/gagliardetto/solana-go"
)

const histogramBarWidth = 40

type column struct {
	title string
	width int
}

func renderTable(columns []column, rows [][]string) string {
	var b strings.Builder

	cells := make([]string, len(columns))
	for i, col := range columns {
		cells[i] = headerStyle.Width(col.width).Render(col.title)
	}
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, cells...))
	b.WriteString("\n")

	for _, row := range rows {
		for i, col := range columns {
			cells[i] = cellStyle.Width(col.width).Render(row[i])
		}
		b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, cells...))
		b.WriteString("\n")
	}
	return b.String()
}

// shortKey renders a public key as its first and last four characters.
func shortKey(key solana.PublicKey) string {
	s := key.String()
	if len(s) <= 11 {
		return s
	}
	return s[:4] + "…" + s[len(s)-4:]
}

func renderLeaderboard(lb stats.Leaderboard, top int) string {
	columns := []column{
		{"#", 6},
		{"Owner", 14},
		{"Games", 8},
		{"Ratio", 8},
		{"Result (SOL)", 15},
		{"Volume (SOL)", 15},
	}

	rows := make([][]string, 0, len(lb.Rows))
	for i, row := range lb.Top(top) {
		result := row.Result.StringFixed(2)
		if row.Result.IsPositive() {
			result = positiveStyle.Render("+" + result)
		}
		rows = append(rows, []string{
			strconv.Itoa(i + 1),
			shortKey(row.Owner),
			strconv.FormatUint(row.Games, 10),
			row.RatioString(),
			result,
			row.Volume.StringFixed(2),
		})
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("🏆 Leaderboard"))
	b.WriteString("\n")
	b.WriteString(renderTable(columns, rows))
	b.WriteString(fmt.Sprintf("\nPlayers: %d   Total volume: %s SOL   Fee (%s%%): %s SOL\n",
		len(lb.Rows),
		lb.TotalVolume.StringFixed(2),
		stats.FeeRate.Shift(2).String(),
		lb.Fee.StringFixed(2),
	))
	return b.String()
}

func renderGrowth(g stats.Growth, bucket time.Duration) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("📈 Unique users over time"))
	b.WriteString("\n")
	if len(g.Points) == 0 {
		b.WriteString(promptStyle.Render("Not enough users to plot growth."))
		b.WriteString("\n")
		return b.String()
	}

	b.WriteString(promptStyle.Render(fmt.Sprintf("Counting from %s",
		time.Unix(int64(g.Start), 0).UTC().Format(time.RFC3339))))
	b.WriteString("\n\n")

	if bucket > 0 {
		var rows [][]string
		for _, bk := range g.Buckets(bucket) {
			rows = append(rows, []string{
				strconv.FormatFloat(bk.Hours, 'f', 2, 64),
				strconv.Itoa(bk.Joined),
				strconv.Itoa(bk.Users),
			})
		}
		b.WriteString(renderTable([]column{{"Hours", 12}, {"Joined", 10}, {"Users", 10}}, rows))
		return b.String()
	}

	rows := make([][]string, 0, len(g.Points))
	for _, p := range g.Points {
		rows = append(rows, []string{
			strconv.FormatFloat(p.Hours, 'f', 3, 64),
			strconv.Itoa(p.Users),
		})
	}
	b.WriteString(renderTable([]column{{"Hours", 12}, {"Users", 10}}, rows))
	return b.String()
}

func renderHistogram(h stats.Histogram) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(fmt.Sprintf("🎲 Games per user (cut at %d games)", h.Ceiling)))
	b.WriteString("\n")
	if len(h.Buckets) == 0 {
		b.WriteString(promptStyle.Render("No users to show."))
		b.WriteString("\n")
		return b.String()
	}

	maxPercent := h.MaxPercent()
	for _, bk := range h.Buckets {
		width := 0
		if maxPercent > 0 {
			width = int(bk.Percent / maxPercent * histogramBarWidth)
		}
		b.WriteString(fmt.Sprintf("%4d │ %s %6.2f%%\n",
			bk.Games,
			barStyle.Render(strings.Repeat("█", max(width, 1))),
			bk.Percent,
		))
	}
	b.WriteString(fmt.Sprintf("\nPercent of %d players\n", h.TotalUsers))
	return b.String()
}

func renderSummary(s stats.Summary) string {
	rows := [][]string{
		{"Players", strconv.Itoa(s.Users)},
		{"Active in last 24h", strconv.Itoa(s.ActiveLastDay)},
		{"Games played", strconv.FormatUint(s.Games, 10)},
		{"Moon calls", fmt.Sprintf("%d (%d correct)", s.MoonCalls, s.CorrectMoon)},
		{"Doom calls", fmt.Sprintf("%d (%d correct)", s.DoomCalls, s.CorrectDoom)},
		{"Accuracy", fmt.Sprintf("%.2f%%", s.Accuracy())},
		{"Prediction funds", s.Funds.StringFixed(2) + " SOL"},
		{"Winnings paid", s.Winnings.StringFixed(2) + " SOL"},
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("📊 Summary"))
	b.WriteString("\n")
	b.WriteString(renderTable([]column{{"", 22}, {"", 30}}, rows))
	return b.String()
}

func renderUserStats(address solana.PublicKey, us *decalls.UserStats) string {
	rows := [][]string{
		{"Owner", us.Owner.String()},
		{"Asset", us.Asset.String()},
		{"Level", strconv.Itoa(int(us.Level))},
		{"Created", time.Unix(int64(us.CreatedAt), 0).UTC().Format(time.RFC3339)},
		{"Last active", time.Unix(int64(us.LastActive), 0).UTC().Format(time.RFC3339)},
		{"Games", strconv.FormatUint(us.TotalGames, 10)},
		{"Moon / Doom", fmt.Sprintf("%d / %d", us.TotalMoon, us.TotalDoom)},
		{"Correct Moon / Doom", fmt.Sprintf("%d / %d", us.TotalCorrectMoon, us.TotalCorrectDoom)},
		{"Prediction funds", stats.LamportsToSOL(us.TotalPredictionFunds).StringFixed(2) + " SOL"},
		{"Winnings", stats.LamportsToSOL(us.TotalWinnings).StringFixed(2) + " SOL"},
	}

	var b strings.Builder
	b.WriteString(headerStyle.Render(address.String()))
	b.WriteString("\n")
	b.WriteString(renderTable([]column{{"", 22}, {"", 48}}, rows))
	return b.String()
}
