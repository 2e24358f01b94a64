package main

import (
	"context"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/Trippy3/pr-comments-fetcher/internal/aggregator"
	"github.com/Trippy3/pr-comments-fetcher/internal/config"
	"github.com/Trippy3/pr-comments-fetcher/internal/domain"
	"github.com/Trippy3/pr-comments-fetcher/internal/export"
	"github.com/Trippy3/pr-comments-fetcher/internal/fetcher"
	"github.com/Trippy3/pr-comments-fetcher/internal/storage"
	"github.com/Trippy3/pr-comments-fetcher/internal/storage/postgres"
	"github.com/Trippy3/pr-comments-fetcher/internal/storage/sqlite"
)

var (
	token string

	fetchOutput string

	bulkOutputJSON string
	bulkOutputCSV  string
	bulkOutputMD   string
	bulkDelay      float64
	bulkSummary    bool
	bulkSave       bool
)

var rootCmd = &cobra.Command{
	Use:   "pr-comments",
	Short: "GitHub pull request review comment fetcher",
	Long: `A CLI tool for fetching review metadata from GitHub pull requests.

This tool retrieves reviews, inline review comments and PR-level comments
for one or many pull requests and exports them as JSON, CSV or Markdown.`,
}

var fetchCmd = &cobra.Command{
	Use:   "fetch [owner] [repo] [number]",
	Short: "Fetch review data for a single pull request",
	Long:  `Fetch reviews, review comments and PR comments for one pull request and save them as JSON.`,
	Args:  cobra.ExactArgs(3),
	RunE:  runFetch,
}

var bulkCmd = &cobra.Command{
	Use:   "bulk [owner] [repo] [numbers]",
	Short: "Fetch review comments for multiple pull requests",
	Long: `Fetch reviews and review comments for a set of pull requests.

Numbers accept commas and ranges, e.g. "1,3-5,7". Failed pull requests
are skipped and the batch continues.`,
	Args: cobra.ExactArgs(3),
	RunE: runBulk,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&token, "token", "", "GitHub token (default is GITHUB_TOKEN)")

	fetchCmd.Flags().StringVar(&fetchOutput, "output", "review_comments.json", "output JSON file")

	bulkCmd.Flags().StringVar(&bulkOutputJSON, "output-json", "bulk_review_comments.json", "output JSON file")
	bulkCmd.Flags().StringVar(&bulkOutputCSV, "output-csv", "", "output CSV file")
	bulkCmd.Flags().StringVar(&bulkOutputMD, "output-md", "", "output Markdown file")
	bulkCmd.Flags().Float64Var(&bulkDelay, "delay", 1.0, "delay in seconds between pull requests")
	bulkCmd.Flags().BoolVar(&bulkSummary, "summary", false, "print an aggregate summary report")
	bulkCmd.Flags().BoolVar(&bulkSave, "save", false, "save the run to storage")

	rootCmd.AddCommand(fetchCmd)
	rootCmd.AddCommand(bulkCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func getStorage(cfg *config.Config) (storage.Storage, error) {
	switch cfg.StorageType {
	case "postgres":
		return postgres.NewPostgresStorage(cfg.PostgresURL)
	default:
		return sqlite.NewSQLiteStorage(cfg.SQLitePath)
	}
}

func getToken(cfg *config.Config) (string, error) {
	if token != "" {
		return token, nil
	}
	if cfg.GitHubToken == "" {
		return "", fmt.Errorf("GitHub token is required (set GITHUB_TOKEN or use --token)")
	}
	return cfg.GitHubToken, nil
}

func runFetch(cmd *cobra.Command, args []string) error {
	owner, repo := args[0], args[1]

	number, err := fetcher.ParsePRNumber(args[2])
	if err != nil {
		return err
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	tok, err := getToken(cfg)
	if err != nil {
		return err
	}

	pipeline := fetcher.NewPipeline(fetcher.NewGitHubFetcher(tok))
	ctx := context.Background()

	fmt.Printf("Fetching PR #%d from %s/%s...\n", number, owner, repo)

	result, err := pipeline.FetchPullRequest(ctx, owner, repo, number)
	if err != nil {
		return fmt.Errorf("failed to fetch PR #%d: %w", number, err)
	}

	printFetchResult(result)

	if err := export.SaveJSON(fetchOutput, result); err != nil {
		return fmt.Errorf("failed to save JSON: %w", err)
	}
	fmt.Printf("\nSaved to %s\n", fetchOutput)

	return nil
}

func printFetchResult(result *domain.FetchResult) {
	pr := result.PullRequest
	fmt.Printf("\nPR #%d: %s\n", pr.Number, pr.Title)
	fmt.Printf("State: %s | Author: %s | %s <- %s\n\n", pr.State, pr.Author, pr.BaseBranch, pr.HeadBranch)

	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"Metric", "Value"})
	table.Append([]string{"Reviews", fmt.Sprintf("%d", result.Summary.TotalReviews)})
	table.Append([]string{"Review Comments", fmt.Sprintf("%d", result.Summary.TotalReviewComments)})
	table.Append([]string{"PR Comments", fmt.Sprintf("%d", result.Summary.TotalIssueComments)})
	table.Append([]string{"All Comments", fmt.Sprintf("%d", result.Summary.TotalAllComments)})
	table.Append([]string{"Target Comments", fmt.Sprintf("%d", result.Summary.TotalTargetComments)})
	table.Render()

	if len(result.Summary.ReviewStates) > 0 {
		fmt.Println("\nReview States:")
		states := tablewriter.NewWriter(os.Stdout)
		states.SetHeader([]string{"State", "Count"})
		for _, state := range sortedKeys(result.Summary.ReviewStates) {
			states.Append([]string{state, fmt.Sprintf("%d", result.Summary.ReviewStates[state])})
		}
		states.Render()
	}

	if len(result.TargetComments) > 0 {
		fmt.Println("\nSample comments:")
		for i, comment := range result.TargetComments {
			if i >= 3 {
				break
			}
			fmt.Printf("  [%s] %s: %s\n", comment.Type, comment.Author, truncate(comment.Body, 100))
		}
	}
}

func runBulk(cmd *cobra.Command, args []string) error {
	owner, repo := args[0], args[1]

	numbers, err := fetcher.ParsePRNumbers(args[2])
	if err != nil {
		return err
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	tok, err := getToken(cfg)
	if err != nil {
		return err
	}

	pipeline := fetcher.NewPipeline(fetcher.NewGitHubFetcher(tok))
	ctx := context.Background()

	fmt.Printf("Fetching %d pull requests from %s/%s...\n", len(numbers), owner, repo)

	batch := pipeline.FetchPullRequests(ctx, owner, repo, numbers, fetcher.NewSleepPacer(bulkDelay))
	fmt.Printf("\nFetched %d of %d pull requests\n", batch.Len(), len(numbers))

	if err := export.SaveJSON(bulkOutputJSON, batch); err != nil {
		return fmt.Errorf("failed to save JSON: %w", err)
	}
	fmt.Printf("Saved to %s\n", bulkOutputJSON)

	if bulkOutputCSV != "" {
		if err := export.SaveCSV(bulkOutputCSV, export.Rows(batch)); err != nil {
			return fmt.Errorf("failed to save CSV: %w", err)
		}
		fmt.Printf("Saved to %s\n", bulkOutputCSV)
	}

	if bulkOutputMD != "" {
		if err := export.SaveMarkdown(bulkOutputMD, export.MarkupRows(batch)); err != nil {
			return fmt.Errorf("failed to save Markdown: %w", err)
		}
		fmt.Printf("Saved to %s\n", bulkOutputMD)
	}

	if bulkSave {
		store, err := getStorage(cfg)
		if err != nil {
			return fmt.Errorf("failed to initialize storage: %w", err)
		}
		defer store.Close()

		run := domain.NewBatchRun(owner, repo, batch)
		if err := store.SaveRun(ctx, run); err != nil {
			return fmt.Errorf("failed to save run: %w", err)
		}
		fmt.Printf("Saved run %s\n", run.ID)
	}

	if bulkSummary {
		printSummaryReport(aggregator.Summarize(batch))
	}

	return nil
}

func printSummaryReport(report *domain.SummaryReport) {
	fmt.Println("\nSummary Report")

	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"Metric", "Value"})
	table.Append([]string{"Pull Requests", fmt.Sprintf("%d", report.TotalPRs)})
	table.Append([]string{"Reviews", fmt.Sprintf("%d", report.TotalReviews)})
	table.Append([]string{"Review Comments", fmt.Sprintf("%d", report.TotalComments)})
	table.Render()

	printCountTable("PR States", report.PRStates)
	printCountTable("Review States", report.ReviewStates)
	printRanking("Top Reviewers", "Reviewer", report.TopReviewers)
	printRanking("Top Commenters", "Commenter", report.TopCommenters)
	printRanking("Files With Most Comments", "File", report.TopFiles)
}

func printCountTable(title string, counts map[string]int) {
	if len(counts) == 0 {
		return
	}
	fmt.Printf("\n%s:\n", title)
	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"State", "Count"})
	for _, key := range sortedKeys(counts) {
		table.Append([]string{key, fmt.Sprintf("%d", counts[key])})
	}
	table.Render()
}

func printRanking(title, label string, entries []domain.RankedEntry) {
	if len(entries) == 0 {
		return
	}
	fmt.Printf("\n%s:\n", title)
	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"#", label, "Count"})
	for i, entry := range entries {
		table.Append([]string{fmt.Sprintf("%d", i+1), entry.Name, fmt.Sprintf("%d", entry.Count)})
	}
	table.Render()
}

func sortedKeys(m map[string]int) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func truncate(s string, max int) string {
	s = strings.ReplaceAll(s, "\n", " ")
	if len(s) <= max {
		return s
	}
	return s[:max] + "..."
}
