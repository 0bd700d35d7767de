package commands

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/balkashynov/gauge/internal/models"
)

// Match ranks, best first
const (
	matchNone = iota
	matchContains
	matchSuffix
	matchPrefix
	matchExact
)

var searchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Search tasks across all fields",
	Long: `Search tasks with comprehensive matching:
- Exact match (highest priority)
- Prefix match
- Suffix match
- Fuzzy match (contains, lowest priority)

Search is case insensitive and looks at title, description, tag and priority.`,
	Args: cobra.MinimumNArgs(1),
	Run: withApp(func(app *App, cmd *cobra.Command, args []string) error {
		query := strings.Join(args, " ")
		limit, _ := cmd.Flags().GetInt("limit")
		jsonOutput, _ := cmd.Flags().GetBool("json")

		tasks := searchTasks(app.Ctrl.Snapshot().Tasks, query)
		if limit > 0 && len(tasks) > limit {
			tasks = tasks[:limit]
		}

		if jsonOutput {
			return renderSearchJSON(tasks, query)
		}
		fmt.Printf("Search results for '%s' (%d found):\n", query, len(tasks))
		if len(tasks) == 0 {
			fmt.Println("No tasks found matching your search.")
			return nil
		}
		fmt.Println()
		renderTaskTable(tasks, app.Ctrl.Now())
		return nil
	}),
}

// matchRank scores one field against a lowercased query
func matchRank(field, query string) int {
	field = strings.ToLower(field)
	switch {
	case field == "" || query == "":
		return matchNone
	case field == query:
		return matchExact
	case strings.HasPrefix(field, query):
		return matchPrefix
	case strings.HasSuffix(field, query):
		return matchSuffix
	case strings.Contains(field, query):
		return matchContains
	default:
		return matchNone
	}
}

// searchTasks returns matching tasks ordered by their best field rank.
// Equal ranks keep store order.
func searchTasks(tasks []models.Task, query string) []models.Task {
	query = strings.ToLower(strings.TrimSpace(query))

	type hit struct {
		task models.Task
		rank int
	}
	var hits []hit
	for _, t := range tasks {
		best := matchNone
		for _, field := range []string{t.Title, t.Description, t.Tag, string(t.Priority)} {
			if r := matchRank(field, query); r > best {
				best = r
			}
		}
		if best > matchNone {
			hits = append(hits, hit{task: t, rank: best})
		}
	}

	sort.SliceStable(hits, func(i, j int) bool {
		return hits[i].rank > hits[j].rank
	})

	out := make([]models.Task, 0, len(hits))
	for _, h := range hits {
		out = append(out, h.task)
	}
	return out
}

// renderSearchJSON outputs search results as JSON
func renderSearchJSON(tasks []models.Task, query string) error {
	type SearchResult struct {
		Query string        `json:"query"`
		Count int           `json:"count"`
		Tasks []models.Task `json:"tasks"`
	}

	jsonBytes, err := json.MarshalIndent(SearchResult{
		Query: query,
		Count: len(tasks),
		Tasks: tasks,
	}, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}

	fmt.Println(string(jsonBytes))
	return nil
}

func init() {
	searchCmd.Flags().IntP("limit", "l", 0, "Limit number of results")
	searchCmd.Flags().Bool("json", false, "Output as JSON")
}
