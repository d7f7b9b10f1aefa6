package cmd

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/baiyu/pjexam/internal/stats"
	"github.com/baiyu/pjexam/internal/store"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Print answer statistics and exam records",
	RunE: func(cmd *cobra.Command, args []string) error {
		dbPath, err := resolveDBPath(cmd)
		if err != nil {
			return fmt.Errorf("resolve DB path: %w", err)
		}
		st, err := store.Open(dbPath)
		if err != nil {
			return fmt.Errorf("open store: %w", err)
		}
		defer st.Close()

		s := stats.New(st)

		records := s.Records()
		fmt.Println("考试记录:")
		if len(records) == 0 {
			fmt.Println("  (无)")
		}
		for _, rec := range records {
			when := time.UnixMilli(rec.TimestampMillis).Format("2006-01-02 15:04")
			fmt.Printf("  %s  %d/%d  用时 %ds\n", when, rec.Score, rec.Total, rec.DurationSeconds)
		}

		counters := s.Load()
		fmt.Println("\n错题统计:")
		if len(counters) == 0 {
			fmt.Println("  (无)")
			return nil
		}

		type row struct {
			text string
			rec  stats.Record
		}
		rows := make([]row, 0, len(counters))
		for key, rec := range counters {
			text := key
			if i := strings.Index(key, "||"); i >= 0 {
				text = key[:i]
			}
			rows = append(rows, row{text: text, rec: rec})
		}
		sort.Slice(rows, func(a, b int) bool {
			if rows[a].rec.Wrong != rows[b].rec.Wrong {
				return rows[a].rec.Wrong > rows[b].rec.Wrong
			}
			return rows[a].text < rows[b].text
		})
		for _, r := range rows {
			fmt.Printf("  答 %d 错 %d  %s\n", r.rec.Total, r.rec.Wrong, r.text)
		}
		return nil
	},
}
