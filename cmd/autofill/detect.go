package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/net/html"

	"github.com/oks-citadel/Apply-sub014/internal/config"
	"github.com/oks-citadel/Apply-sub014/internal/detect"
	"github.com/oks-citadel/Apply-sub014/internal/dom"
	"github.com/oks-citadel/Apply-sub014/internal/fetch"
	"github.com/oks-citadel/Apply-sub014/internal/observability"
	"github.com/oks-citadel/Apply-sub014/internal/platform"
	"github.com/oks-citadel/Apply-sub014/internal/questions"
	"github.com/oks-citadel/Apply-sub014/internal/types"
)

var detectCommand = &cobra.Command{
	Use:   "detect",
	Short: "Detect the platform and form fields of an application page",
	Long:  "Fetches or reads an application page and prints the detected ATS platform, form fields and screening questions without filling anything.",
	RunE:  runDetectCmd,
}

var (
	detectPage       string
	detectPageURL    string
	detectUseBrowser bool
	detectVerbose    bool
	detectJSON       bool
)

func init() {
	detectCommand.Flags().StringVarP(&detectPage, "page", "p", "", "Path to a saved application page HTML file (mutually exclusive with --page-url)")
	detectCommand.Flags().StringVar(&detectPageURL, "page-url", "", "URL of the application page (mutually exclusive with --page)")
	detectCommand.Flags().BoolVar(&detectUseBrowser, "use-browser", false, "Use headless browser for SPA sites (requires Chrome)")
	detectCommand.Flags().BoolVarP(&detectVerbose, "verbose", "v", false, "Print detailed debug information")
	detectCommand.Flags().BoolVar(&detectJSON, "json", false, "Print the detection report as JSON")

	rootCmd.AddCommand(detectCommand)
}

// detectReport is the JSON shape of a detection run.
type detectReport struct {
	Platform  string                 `json:"platform"`
	URL       string                 `json:"url,omitempty"`
	Fields    []types.FormField      `json:"fields"`
	Questions []types.CustomQuestion `json:"questions,omitempty"`
}

func runDetectCmd(_ *cobra.Command, _ []string) error {
	ctx := context.Background()

	if detectPage == "" && detectPageURL == "" {
		return fmt.Errorf("either --page or --page-url must be provided")
	}
	if detectPage != "" && detectPageURL != "" {
		return fmt.Errorf("--page and --page-url are mutually exclusive; provide only one")
	}

	cfg := config.Config{
		Page:       detectPage,
		PageURL:    detectPageURL,
		UseBrowser: detectUseBrowser,
		Verbose:    detectVerbose,
	}

	var pageHTML string
	var err error
	if cfg.Page != "" {
		var data []byte
		data, err = os.ReadFile(cfg.Page)
		pageHTML = string(data)
	} else {
		opts := fetch.DefaultOptions()
		opts.UseBrowser = cfg.UseBrowser
		opts.Verbose = cfg.Verbose
		var result *fetch.Result
		result, err = fetch.ApplicationPage(ctx, cfg.PageURL, opts)
		if result != nil {
			pageHTML = result.HTML
		}
	}
	if err != nil {
		return fmt.Errorf("failed to load application page: %w", err)
	}

	doc, err := dom.Parse(pageHTML)
	if err != nil {
		return fmt.Errorf("failed to parse application page: %w", err)
	}
	doc.SetURL(cfg.PageURL)

	detected := platform.Detect(cfg.PageURL, doc)
	spec := platform.For(detected)

	seen := map[*html.Node]bool{}
	fields := []types.FormField{}
	for _, selector := range spec.FormSelectors {
		for _, container := range doc.Find(selector) {
			for _, field := range detect.DetectAllFields(container) {
				node := field.Element.Node()
				if seen[node] {
					continue
				}
				seen[node] = true
				fields = append(fields, field)
			}
		}
	}
	if len(fields) == 0 {
		fields = detect.DetectDocument(doc)
	}

	qs := questions.NewHandler(nil).DetectQuestions(doc)

	if detectJSON {
		out, err := json.MarshalIndent(detectReport{
			Platform:  string(detected),
			URL:       cfg.PageURL,
			Fields:    fields,
			Questions: qs,
		}, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to encode report: %w", err)
		}
		fmt.Println(string(out))
		return nil
	}

	printer := observability.NewPrinter(os.Stdout)
	printer.PrintPlatform(spec.Metadata.Name, cfg.PageURL)
	printer.PrintDetectedFields(fields)
	if len(qs) > 0 {
		printer.PrintCustomQuestions(qs)
	}

	return nil
}
