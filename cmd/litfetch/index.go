package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/pdiddy/litfetch/internal/index"
	"github.com/pdiddy/litfetch/pkg/types"
)

var defaultDBPath = filepath.Join("index", "litfetch.db")

var indexCmd = &cobra.Command{
	Use:   "index",
	Short: "Build or refresh the local full-text index over fetched articles",
	Long: `Index scans the output directory for article documents and loads them
into a local SQLite full-text index. Unchanged documents are skipped, so
repeated runs are incremental.`,
	RunE: runIndex,
}

var queryCmd = &cobra.Command{
	Use:   "query <terms>",
	Short: "Search the local article index",
	Args:  cobra.ExactArgs(1),
	RunE:  runQuery,
}

func init() {
	indexCmd.Flags().String("db", defaultDBPath, "index database file")
	indexCmd.Flags().String("articles-dir", defaultOutputDir, "directory of fetched article documents")

	queryCmd.Flags().String("db", defaultDBPath, "index database file")
	queryCmd.Flags().IntP("max", "m", defaultMaxResults, "maximum number of results")

	rootCmd.AddCommand(indexCmd)
	rootCmd.AddCommand(queryCmd)
}

func runIndex(cmd *cobra.Command, args []string) error {
	dbPath, _ := cmd.Flags().GetString("db")
	articlesDir, _ := cmd.Flags().GetString("articles-dir")

	store, err := index.NewStore(types.IndexConfig{
		DBPath:      dbPath,
		ArticlesDir: articlesDir,
	})
	if err != nil {
		return err
	}
	defer store.Close()

	_, err = store.Ingest(cmd.Context(), os.Stdout)
	return err
}

func runQuery(cmd *cobra.Command, args []string) error {
	dbPath, _ := cmd.Flags().GetString("db")
	maxResults, _ := cmd.Flags().GetInt("max")

	store, err := index.NewStore(types.IndexConfig{
		DBPath:     dbPath,
		MaxResults: maxResults,
	})
	if err != nil {
		return err
	}
	defer store.Close()

	results, err := store.Query(cmd.Context(), args[0], maxResults)
	if err != nil {
		return err
	}
	if len(results) == 0 {
		fmt.Fprintln(os.Stderr, "no matches")
		return nil
	}

	for _, r := range results {
		fmt.Fprintf(os.Stdout, "%s  %s\n", r.PMID, r.Title)
		if r.Snippet != "" {
			fmt.Fprintf(os.Stdout, "    %s\n", r.Snippet)
		}
	}
	return nil
}
