package formatter

import (
	"time"

	"github.com/alexanderramin/repsheet/internal/repository"
)

// FormatLibraryList renders library entries grouped by kind.
func FormatLibraryList(records []*repository.SnapshotRecord, now time.Time) string {
	if len(records) == 0 {
		return Dim("The library is empty. Save with `repsheet library save`.") + "\n"
	}
	headers := []string{"KIND", "NAME", "CONTENTS", "SAVED"}
	rows := make([][]string, 0, len(records))
	for _, r := range records {
		rows = append(rows, []string{
			KindBadge(r.Kind),
			Bold(r.Name),
			OrDim(r.Summary, "--"),
			HumanTimestamp(r.UpdatedAt, now),
		})
	}
	return RenderBox("Library", RenderTable(headers, rows))
}
