package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"rankbench/internal/logging"
	"rankbench/internal/relevance"
	"rankbench/internal/store"
)

var prioritizeFlags struct {
	testsFile    string
	expectedFile string
	dbPath       string
	noHistory    bool
	keywordRules string
}

var prioritizeCmd = &cobra.Command{
	Use:   "prioritize",
	Short: "Rank test files by relevance using the configured heuristics",
	Long: `Prioritize reads a test list (one identifier per line), runs the keyword
and history heuristics over it, and prints the merged three-tier ranking
plus conflict and unexpected-test diagnostics.`,
	RunE: runPrioritize,
}

func init() {
	f := prioritizeCmd.Flags()
	f.StringVar(&prioritizeFlags.testsFile, "tests", "", "File with one test identifier per line (required)")
	f.StringVar(&prioritizeFlags.expectedFile, "expected", "", "File with the expected test universe (default: the --tests list)")
	f.StringVar(&prioritizeFlags.dbPath, "db", store.DefaultDBPath, "Run-history SQLite database path")
	f.BoolVar(&prioritizeFlags.noHistory, "no-history", false, "Skip the history heuristic (no database required)")
	f.StringVar(&prioritizeFlags.keywordRules, "keyword-rules", "", "Custom keyword rules YAML (default: built-in rules)")
	_ = prioritizeCmd.MarkFlagRequired("tests")
}

func runPrioritize(cmd *cobra.Command, _ []string) error {
	logger := logging.New("prioritize")

	tests, err := readTestList(prioritizeFlags.testsFile)
	if err != nil {
		return err
	}
	if len(tests) == 0 {
		return fmt.Errorf("%s: test list is empty", prioritizeFlags.testsFile)
	}

	heuristics, cleanup, err := buildHeuristics()
	if err != nil {
		return err
	}
	defer cleanup()

	for _, h := range heuristics {
		logger.Info("heuristic enabled", "heuristic", h.Name())
	}

	combined, err := relevance.Aggregate(tests, heuristics...)
	if err != nil {
		return err
	}

	expected := tests
	if prioritizeFlags.expectedFile != "" {
		expected, err = readTestList(prioritizeFlags.expectedFile)
		if err != nil {
			return err
		}
	}

	combined.WriteInfo(cmd.OutOrStdout(), expected)
	return nil
}

// buildHeuristics assembles the heuristic chain. The keyword heuristic runs
// first; history runs last so recent failures win promotion conflicts.
func buildHeuristics() ([]relevance.Heuristic, func(), error) {
	var hs []relevance.Heuristic
	cleanup := func() {}

	var kw *relevance.KeywordHeuristic
	var err error
	if prioritizeFlags.keywordRules != "" {
		data, rerr := os.ReadFile(prioritizeFlags.keywordRules)
		if rerr != nil {
			return nil, cleanup, fmt.Errorf("read keyword rules: %w", rerr)
		}
		kw, err = relevance.NewKeywordHeuristicFromYAML(data)
	} else {
		kw, err = relevance.NewKeywordHeuristic()
	}
	if err != nil {
		return nil, cleanup, err
	}
	hs = append(hs, kw)

	if !prioritizeFlags.noHistory {
		st, err := store.Open(prioritizeFlags.dbPath)
		if err != nil {
			return nil, cleanup, fmt.Errorf("open history db: %w", err)
		}
		cleanup = func() { _ = st.Close() }
		hs = append(hs, relevance.NewHistoryHeuristic(st))
	}

	return hs, cleanup, nil
}

// readTestList reads one test identifier per line, skipping blanks and
// #-comments.
func readTestList(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("read test list: %w", err)
	}
	defer f.Close()

	var tests []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		tests = append(tests, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read test list: %w", err)
	}
	return tests, nil
}
