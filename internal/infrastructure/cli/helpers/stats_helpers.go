package helpers

import (
	"sort"
	"time"

	"github.com/doeshing/textpolish/internal/domain"
)

// ActionStatistic represents usage statistics for an action
type ActionStatistic struct {
	Action domain.Action
	Count  int
	Share  float64
}

// HistoryStatistics summarizes a history collection
type HistoryStatistics struct {
	Total       int
	Actions     []ActionStatistic
	InputChars  int
	OutputChars int
	Oldest      time.Time
	Newest      time.Time
}

// AnalyzeHistory counts records per action and tracks the time span.
func AnalyzeHistory(records []domain.HistoryRecord) HistoryStatistics {
	stats := HistoryStatistics{Total: len(records)}
	frequency := make(map[domain.Action]int)

	for _, record := range records {
		frequency[record.Action]++
		stats.InputChars += len([]rune(record.InputText))
		stats.OutputChars += len([]rune(record.OutputText))

		created := record.CreatedAt()
		if created.IsZero() {
			continue
		}
		if stats.Oldest.IsZero() || created.Before(stats.Oldest) {
			stats.Oldest = created
		}
		if created.After(stats.Newest) {
			stats.Newest = created
		}
	}

	stats.Actions = convertFrequencyMapToStatistics(frequency, len(records))
	sortStatisticsByFrequency(stats.Actions)
	return stats
}

// convertFrequencyMapToStatistics converts a map to a slice of ActionStatistic
func convertFrequencyMapToStatistics(frequency map[domain.Action]int, total int) []ActionStatistic {
	stats := make([]ActionStatistic, 0, len(frequency))
	for action, count := range frequency {
		stats = append(stats, ActionStatistic{
			Action: action,
			Count:  count,
			Share:  CalculateShare(count, total),
		})
	}
	return stats
}

// sortStatisticsByFrequency sorts statistics by count (descending) then by action id (ascending)
func sortStatisticsByFrequency(stats []ActionStatistic) {
	sort.Slice(stats, func(i, j int) bool {
		if stats[i].Count == stats[j].Count {
			return stats[i].Action < stats[j].Action
		}
		return stats[i].Count > stats[j].Count
	})
}

// CalculateShare returns part as a percentage of total
func CalculateShare(part int, total int) float64 {
	if total == 0 {
		return 0.0
	}
	return float64(part) / float64(total) * 100.0
}
