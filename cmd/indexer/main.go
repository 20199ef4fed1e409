// Command indexer loads a documentation directory, builds the search index
// and reports what the classifier found. An optional query is run against the
// fresh index, which makes it handy for checking a docs checkout before
// shipping it with the server.
package main

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/lightprotocol/light-mcp/internal/indexing"
	"github.com/lightprotocol/light-mcp/internal/logger"
	"github.com/lightprotocol/light-mcp/internal/search"
)

func main() {
	if len(os.Args) < 2 || len(os.Args) > 3 {
		fmt.Fprintf(os.Stderr, "Usage: %s <docs-dir> [query]\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "\nExample:\n")
		fmt.Fprintf(os.Stderr, "  %s tools/data/docs \"getCompressedAccount\"\n", os.Args[0])
		os.Exit(1)
	}

	docsDir := os.Args[1]

	log, err := logger.New(logger.Config{Level: "info", Pretty: true})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create logger: %v\n", err)
		os.Exit(1)
	}

	log.Info().Msg("Light documentation indexer")
	log.Info().Msg("━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━")

	// Step 1: Load and classify documentation
	log.Info().Str("dir", docsDir).Msg("Loading documentation")
	result, err := indexing.NewLoader(log).LoadFS(os.DirFS(docsDir), ".")
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load documentation")
	}

	// Step 2: Build the index
	engine, err := search.Build(result.Entries)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to build index")
	}
	defer engine.Close()

	stats := summarize(engine.Entries())
	log.Info().Int("documents", engine.DocCount()).Msg("✓ Index built")

	log.Info().Msg("━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━")
	log.Info().Msgf("  Documents:      %d", len(result.Entries))
	log.Info().Msgf("  RPC methods:    %d", stats.rpcMethods)
	log.Info().Msgf("  Comprehensive:  %d", stats.comprehensive)
	log.Info().Msgf("  Skipped:        %d", len(result.Skipped))
	log.Info().Msgf("  Sections:       %s", strings.Join(stats.sectionLines(), ", "))

	// Step 3: Optional query
	if len(os.Args) == 3 {
		resp, err := engine.Search(search.NewRequest(os.Args[2]))
		if err != nil {
			log.Fatal().Err(err).Msg("Search failed")
		}
		fmt.Println(resp.Text())
	}
}

type corpusStats struct {
	rpcMethods    int
	comprehensive int
	sections      map[string]int
}

func summarize(entries []indexing.DocEntry) corpusStats {
	stats := corpusStats{sections: map[string]int{}}
	for _, e := range entries {
		if e.IsRPCMethod {
			stats.rpcMethods++
		}
		if e.IsComprehensiveDoc {
			stats.comprehensive++
		}
		stats.sections[e.Section]++
	}
	return stats
}

func (s corpusStats) sectionLines() []string {
	names := make([]string, 0, len(s.sections))
	for name := range s.sections {
		names = append(names, name)
	}
	sort.Strings(names)

	lines := make([]string, 0, len(names))
	for _, name := range names {
		lines = append(lines, fmt.Sprintf("%s=%d", name, s.sections[name]))
	}
	return lines
}
