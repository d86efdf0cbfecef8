package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"hookhunter/internal/clix"
	"hookhunter/internal/models"
	"hookhunter/internal/tweettable"
)

var (
	searchList     string
	searchMinLikes string
	searchSince    string
	searchUntil    string
	searchPeriod   string
	searchResult   string
	searchReplies  bool
	searchJSON     bool
)

var searchCmd = &cobra.Command{
	Use:   "search [keywords...]",
	Short: "Search a list or keywords for high-engagement posts",
	Long: `Pages through X search results until enough posts are collected, keeps
those with at least --min-likes likes, and prints them as a table.
With neither --list nor keywords the default curated list is searched.`,
	Example: `  hookhunter search --list https://x.com/i/lists/1585430245762441216 --min-likes 500
  hookhunter search saas pricing --period "7 Days" --sort likes`,
	RunE: func(cmd *cobra.Command, args []string) error {
		appInstance, err := GetAppFromContext(cmd.Context())
		if err != nil {
			return err
		}

		filter, err := clix.SearchInput{
			ListID:     searchList,
			Words:      args,
			MinLikes:   searchMinLikes,
			StartDate:  searchSince,
			EndDate:    searchUntil,
			TimePeriod: searchPeriod,
			ResultType: searchResult,
			Replies:    searchReplies,
		}.Filter(time.Now())
		if err != nil {
			return err
		}
		key, order, err := clix.ParseSort(cmd.Flags())
		if err != nil {
			return err
		}

		res, err := appInstance.SearchService.Execute(cmd.Context(), filter)
		if err != nil {
			return fmt.Errorf("search failed: %w", err)
		}

		return printSearchResult(os.Stdout, os.Stderr, res, key, order, searchJSON)
	},
}

// printSearchResult writes posts to out and the partial-result warning to
// errOut, in both table and JSON form.
func printSearchResult(out, errOut io.Writer, res *models.SearchResult, key tweettable.SortKey, order tweettable.Order, asJSON bool) error {
	if res.Partial() {
		fmt.Fprintf(errOut, "%s results are partial: %v\n", color.YellowString("WARN"), res.Cause)
	}

	if asJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(res.Posts)
	}

	if len(res.Posts) == 0 {
		fmt.Fprintln(out, "No posts matched.")
		return nil
	}

	tweettable.Sort(res.Posts, key, order)
	tweettable.Render(out, res.Posts)
	fmt.Fprintf(out, "\n%s posts from %d fetched over %d page(s)\n",
		color.GreenString("%d", len(res.Posts)), res.RawCount, res.Pages)
	return nil
}

func init() {
	rootCmd.AddCommand(searchCmd)

	searchCmd.Flags().StringVarP(&searchList, "list", "l", "", "List id or list URL to search")
	searchCmd.Flags().StringVarP(&searchMinLikes, "min-likes", "m", "", "Only keep posts with at least this many likes")
	searchCmd.Flags().StringVar(&searchSince, "since", "", "Start date (YYYY-MM-DD or RFC 3339)")
	searchCmd.Flags().StringVar(&searchUntil, "until", "", "End date (YYYY-MM-DD or RFC 3339)")
	searchCmd.Flags().StringVarP(&searchPeriod, "period", "p", "", `Preset range when no dates are given: "1 Day", "7 Days" or "21 Days"`)
	searchCmd.Flags().StringVarP(&searchResult, "result-type", "r", "", "Ranking: top or latest (default from search.result_type)")
	searchCmd.Flags().String("sort", string(tweettable.SortCreatedAt), "Sort column: text, author, createdAt, likes, retweets, views, replies")
	searchCmd.Flags().String("order", string(tweettable.Desc), "Sort order: asc or desc")
	searchCmd.Flags().BoolVar(&searchReplies, "replies", false, "Keep replies (excluded by default)")
	searchCmd.Flags().BoolVar(&searchJSON, "json", false, "Print posts as JSON in upstream order")
}
