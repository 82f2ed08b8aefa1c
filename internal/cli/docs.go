package cli

import (
	"bufio"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	builtindocs "github.com/aidanlsb/hdate/docs"
	"github.com/aidanlsb/hdate/internal/slugs"
	"github.com/aidanlsb/hdate/internal/ui"
)

const docsRoot = "guide"

var (
	docsSearchLimit int

	docsDisplayContext = ui.NewDisplayContext
)

type docsTopic struct {
	ID     string `json:"id"`
	Title  string `json:"title"`
	Path   string `json:"path"`
	fsPath string
}

type docsSearchMatch struct {
	Topic   string `json:"topic"`
	Title   string `json:"title"`
	Line    int    `json:"line"`
	Snippet string `json:"snippet"`
}

var docsCmd = &cobra.Command{
	Use:   "docs [topic]",
	Short: "Read the bundled guides",
	Long: `Read the guides bundled into the hdate binary.

Examples:
  hdate docs
  hdate docs holidays
  hdate docs search anchor`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		topics, err := listDocsTopicsFS(builtindocs.FS, docsRoot)
		if err != nil {
			return handleError(ErrFileReadError, err, "")
		}

		if len(args) == 0 {
			return outputDocsTopics(topics)
		}

		topic, ok := findDocsTopic(topics, args[0])
		if !ok {
			ids := make([]string, len(topics))
			for i, t := range topics {
				ids[i] = t.ID
			}
			return handleErrorMsg(ErrInvalidInput,
				fmt.Sprintf("unknown docs topic %q", args[0]),
				"Available topics: "+strings.Join(ids, ", "))
		}
		return outputDocsTopicContent(topic)
	},
}

var docsSearchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Search the bundled guides",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		query := strings.TrimSpace(strings.Join(args, " "))
		if query == "" {
			return handleErrorMsg(ErrInvalidInput, "specify a search query", "Usage: hdate docs search <query>")
		}
		if docsSearchLimit < 1 {
			return handleErrorMsg(ErrInvalidInput, "--limit must be >= 1", "")
		}

		matches, err := searchDocsFS(builtindocs.FS, docsRoot, query, docsSearchLimit)
		if err != nil {
			return handleError(ErrFileReadError, err, "")
		}

		if isJSONOutput() {
			outputSuccess(map[string]interface{}{
				"query":   query,
				"matches": matches,
			}, &Meta{Count: len(matches)})
			return nil
		}

		if len(matches) == 0 {
			fmt.Printf("No docs matched %q.\n", query)
			return nil
		}
		fmt.Printf("Matches for %q (%d):\n", query, len(matches))
		for _, m := range matches {
			fmt.Printf("- %s:%d %s\n", m.Topic, m.Line, m.Snippet)
		}
		return nil
	},
}

func outputDocsTopics(topics []docsTopic) error {
	if isJSONOutput() {
		outputSuccess(map[string]interface{}{
			"topics": topics,
		}, &Meta{Count: len(topics)})
		return nil
	}

	fmt.Println("Guides:")
	for _, t := range topics {
		fmt.Printf("  %-28s %s\n", "hdate docs "+t.ID, t.Title)
	}
	fmt.Println()
	fmt.Printf("  %-28s %s\n", "hdate docs search <query>", "Search the guides")
	return nil
}

func outputDocsTopicContent(topic docsTopic) error {
	content, err := fs.ReadFile(builtindocs.FS, topic.fsPath)
	if err != nil {
		return handleError(ErrFileReadError, err, "")
	}

	if isJSONOutput() {
		outputSuccess(map[string]interface{}{
			"topic":   topic.ID,
			"title":   topic.Title,
			"path":    topic.Path,
			"content": string(content),
		}, nil)
		return nil
	}

	rendered := string(content)
	if out, renderErr := docsDisplayContext().RenderMarkdown(rendered, false); renderErr == nil {
		rendered = out
	}
	fmt.Print(rendered)
	if !strings.HasSuffix(rendered, "\n") {
		fmt.Println()
	}
	return nil
}

// listDocsTopicsFS returns the Markdown files under root sorted by ID. The
// title is the first "# " heading, or the ID when there is none.
func listDocsTopicsFS(fsys fs.FS, root string) ([]docsTopic, error) {
	entries, err := fs.ReadDir(fsys, root)
	if err != nil {
		return nil, err
	}

	var topics []docsTopic
	for _, e := range entries {
		if e.IsDir() || path.Ext(e.Name()) != ".md" {
			continue
		}
		fsPath := path.Join(root, e.Name())
		content, err := fs.ReadFile(fsys, fsPath)
		if err != nil {
			return nil, err
		}
		id := slugs.Slug(strings.TrimSuffix(e.Name(), ".md"))
		title := markdownTitle(string(content))
		if title == "" {
			title = id
		}
		topics = append(topics, docsTopic{ID: id, Title: title, Path: fsPath, fsPath: fsPath})
	}

	sort.Slice(topics, func(i, j int) bool { return topics[i].ID < topics[j].ID })
	return topics, nil
}

func findDocsTopic(topics []docsTopic, arg string) (docsTopic, bool) {
	want := slugs.Slug(strings.TrimSuffix(strings.TrimSpace(arg), ".md"))
	for _, t := range topics {
		if t.ID == want {
			return t, true
		}
	}
	return docsTopic{}, false
}

func markdownTitle(content string) string {
	scanner := bufio.NewScanner(strings.NewReader(content))
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if strings.HasPrefix(line, "# ") {
			return strings.TrimSpace(strings.TrimPrefix(line, "# "))
		}
	}
	return ""
}

// searchDocsFS finds lines containing query, case-insensitively, in topic
// order. At most limit matches are returned.
func searchDocsFS(fsys fs.FS, root, query string, limit int) ([]docsSearchMatch, error) {
	topics, err := listDocsTopicsFS(fsys, root)
	if err != nil {
		return nil, err
	}

	needle := strings.ToLower(query)
	matches := []docsSearchMatch{}
	for _, t := range topics {
		content, err := fs.ReadFile(fsys, t.fsPath)
		if err != nil {
			return nil, err
		}
		for i, line := range strings.Split(string(content), "\n") {
			if !strings.Contains(strings.ToLower(line), needle) {
				continue
			}
			matches = append(matches, docsSearchMatch{
				Topic:   t.ID,
				Title:   t.Title,
				Line:    i + 1,
				Snippet: ui.TruncateWithEllipsis(strings.TrimSpace(line), 80),
			})
			if len(matches) >= limit {
				return matches, nil
			}
		}
	}
	return matches, nil
}

func init() {
	docsSearchCmd.Flags().IntVar(&docsSearchLimit, "limit", 20, "Maximum matches to return")
	docsCmd.AddCommand(docsSearchCmd)
	rootCmd.AddCommand(docsCmd)
}
