// Command rankview prints the stored leaderboard without going through the
// server. It opens the database read-only so it can run alongside a live
// coordinator.
package main

import (
	"fmt"
	"log"
	"os"
	"sort"

	"github.com/Netflix/go-env"
	"github.com/dgraph-io/badger/v4"
	"github.com/gookit/color"
	"github.com/joho/godotenv"
	"github.com/olekukonko/tablewriter"

	"debate-arena/internal"
	"debate-arena/repositories"
)

func main() {
	// 1. Load config
	_ = godotenv.Load()
	var config internal.Config
	if _, err := env.UnmarshalFromEnviron(&config); err != nil {
		log.Fatalf("Config error: %v", err)
	}

	// 2. Open Badger in read-only mode
	// BypassLockGuard allows opening while the server holds the lock
	opts := badger.DefaultOptions(config.BadgerFilepath).
		WithReadOnly(true).
		WithBypassLockGuard(true).
		WithLoggingLevel(badger.WARNING)

	db, err := badger.Open(opts)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer db.Close()

	// 3. Read and sort the leaderboard
	entries, err := repositories.NewRankingRepository(db).ListRankings()
	if err != nil {
		log.Fatalf("Failed to read rankings: %v", err)
	}
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Score > entries[j].Score
	})

	header := color.New(color.BgBlack, color.FgGreen).Render("Debate Arena Leaderboard")
	fmt.Println(header)

	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"#", "User", "Score", "Rating"})
	table.SetAutoWrapText(false)
	table.SetAutoFormatHeaders(true)
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetCenterSeparator("")
	table.SetColumnSeparator("")
	table.SetRowSeparator("")
	table.SetHeaderLine(false)
	table.SetBorder(false)
	table.SetTablePadding("\t")

	for i, entry := range entries {
		table.Append([]string{
			fmt.Sprintf("%d", i+1),
			string(entry.UserID),
			fmt.Sprintf("%.1f", entry.Score),
			fmt.Sprintf("%d", entry.Rating),
		})
	}
	table.Render()

	if len(entries) == 0 {
		fmt.Println("No rated debaters yet.")
	}
}
