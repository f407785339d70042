package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/oks-citadel/Apply-sub014/internal/config"
	"github.com/oks-citadel/Apply-sub014/internal/dom"
	"github.com/oks-citadel/Apply-sub014/internal/engine"
	"github.com/oks-citadel/Apply-sub014/internal/fetch"
	"github.com/oks-citadel/Apply-sub014/internal/llm"
	"github.com/oks-citadel/Apply-sub014/internal/observability"
	"github.com/oks-citadel/Apply-sub014/internal/platform"
	"github.com/oks-citadel/Apply-sub014/internal/questions"
	"github.com/oks-citadel/Apply-sub014/internal/schemas"
	"github.com/oks-citadel/Apply-sub014/internal/types"
)

var runCommand = &cobra.Command{
	Use:   "run",
	Short: "Fill a job application form from a structured resume",
	Long: `Fetches the application page, detects the ATS platform, maps form fields to resume data, fills them, answers screening questions and validates required fields. With --auto-submit it also submits.

Configuration can be loaded from a JSON file using --config. Command-line arguments override config file values.`,
	RunE: runAutofillCmd,
}

var (
	runConfigPath    string
	runResume        string
	runResumeFile    string
	runPage          string
	runPageURL       string
	runPlatform      string
	runAnswers       string
	runFillDelayMs   int
	runTypingDelayMs int
	runMaxWaitMs     int
	runSkipQuestions bool
	runAutoSubmit    bool
	runNoUploads     bool
	runAPIKey        string
	runUseBrowser    bool
	runVerbose       bool
	runJSON          bool
)

func init() {
	// Config file flag (processed first)
	runCommand.Flags().StringVar(&runConfigPath, "config", "", "Path to config.json file (values can be overridden by other flags)")

	runCommand.Flags().StringVarP(&runResume, "resume", "r", "", "Path to resume JSON file")
	runCommand.Flags().StringVar(&runResumeFile, "resume-file", "", "Path to resume document to upload (pdf/docx)")
	runCommand.Flags().StringVarP(&runPage, "page", "p", "", "Path to a saved application page HTML file (mutually exclusive with --page-url)")
	runCommand.Flags().StringVar(&runPageURL, "page-url", "", "URL of the application page (mutually exclusive with --page)")
	runCommand.Flags().StringVar(&runPlatform, "platform", "", "Force a platform instead of auto-detecting (greenhouse, lever, workday, generic)")
	runCommand.Flags().StringVar(&runAnswers, "answers", "", "Path to a JSON file of prepared screening question answers")
	runCommand.Flags().IntVar(&runFillDelayMs, "fill-delay", 0, "Delay between fields in milliseconds")
	runCommand.Flags().IntVar(&runTypingDelayMs, "typing-delay", 0, "Per-character typing delay in milliseconds")
	runCommand.Flags().IntVar(&runMaxWaitMs, "max-wait", 0, "Maximum time to wait for form containers in milliseconds")
	runCommand.Flags().BoolVar(&runSkipQuestions, "skip-questions", false, "Skip screening question detection and answering")
	runCommand.Flags().BoolVar(&runAutoSubmit, "auto-submit", false, "Submit the application when validation passes")
	runCommand.Flags().BoolVar(&runNoUploads, "no-uploads", false, "Skip resume file upload")
	runCommand.Flags().BoolVar(&runUseBrowser, "use-browser", false, "Drive a live headless browser (requires Chrome)")
	runCommand.Flags().BoolVarP(&runVerbose, "verbose", "v", false, "Print detailed debug information")
	runCommand.Flags().BoolVar(&runJSON, "json", false, "Print the run result as JSON instead of the summary box")

	// API key can be passed as a flag, or read from env var GEMINI_API_KEY
	runCommand.Flags().StringVar(&runAPIKey, "api-key", "", "Gemini API Key for generated answers (optional, defaults to GEMINI_API_KEY env var)")

	rootCmd.AddCommand(runCommand)
}

func runAutofillCmd(cmd *cobra.Command, _ []string) error {
	ctx := context.Background()

	// Step 1: Load config file if provided
	var cfg config.Config
	if runConfigPath != "" {
		loadedCfg, err := config.LoadConfig(runConfigPath)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		if err := loadedCfg.Validate(); err != nil {
			return err
		}

		cfg = *loadedCfg
		if runVerbose {
			_, _ = fmt.Fprintf(os.Stdout, "Loaded config from: %s\n", runConfigPath)
		}
	}

	// Step 2: Apply CLI overrides (command-line args take priority)
	// Only override if the flag was explicitly set
	if cmd.Flags().Changed("resume") {
		cfg.Resume = runResume
	}
	if cmd.Flags().Changed("resume-file") {
		cfg.ResumeFile = runResumeFile
	}
	if cmd.Flags().Changed("page") {
		cfg.Page = runPage
	}
	if cmd.Flags().Changed("page-url") {
		cfg.PageURL = runPageURL
	}
	if cmd.Flags().Changed("platform") {
		cfg.Platform = runPlatform
	}
	if cmd.Flags().Changed("fill-delay") {
		cfg.FillDelayMs = runFillDelayMs
	}
	if cmd.Flags().Changed("typing-delay") {
		cfg.TypingDelayMs = runTypingDelayMs
	}
	if cmd.Flags().Changed("max-wait") {
		cfg.MaxWaitMs = runMaxWaitMs
	}
	if cmd.Flags().Changed("skip-questions") {
		cfg.SkipCustomQuestions = runSkipQuestions
	}
	if cmd.Flags().Changed("auto-submit") {
		cfg.AutoSubmit = runAutoSubmit
	}
	if cmd.Flags().Changed("no-uploads") {
		cfg.NoUploads = runNoUploads
	}
	if cmd.Flags().Changed("api-key") {
		cfg.APIKey = runAPIKey
	}
	if cmd.Flags().Changed("use-browser") {
		cfg.UseBrowser = runUseBrowser
	}
	if cmd.Flags().Changed("verbose") {
		cfg.Verbose = runVerbose
	}

	// Step 3: Validate required fields
	if cfg.Resume == "" {
		return fmt.Errorf("--resume is required (via flag or config)")
	}
	if cfg.Page == "" && cfg.PageURL == "" {
		return fmt.Errorf("either --page or --page-url must be provided (via flag or config)")
	}
	if cfg.Page != "" && cfg.PageURL != "" {
		return fmt.Errorf("--page and --page-url are mutually exclusive; provide only one")
	}
	if cfg.Platform != "" {
		if _, ok := platform.Parse(cfg.Platform); !ok {
			return fmt.Errorf("unknown platform %q (expected greenhouse, lever, workday or generic)", cfg.Platform)
		}
	}

	// Step 4: API Key handling (optional; enables generated answers)
	if cfg.APIKey == "" {
		cfg.APIKey = os.Getenv("GEMINI_API_KEY")
	}

	autofillCfg := cfg.ToAutofillConfig()
	if runJSON {
		// Progress lines would corrupt the JSON stream.
		autofillCfg.ShowProgress = false
	}

	// Step 5: Pick the field writer. A live run opens the browser up
	// front so the page can be rendered and filled in the same tab.
	var writer engine.FieldWriter
	if cfg.UseBrowser {
		browserCtx, cancelBrowser := engine.NewBrowserContext(ctx, 5*time.Minute)
		defer cancelBrowser()
		ctx = browserCtx
		writer = engine.NewChromeWriter(autofillCfg.TypingDelay, cfg.Verbose)
	} else {
		writer = engine.NewSyntheticWriter(autofillCfg.TypingDelay)
	}

	// Step 6: Load the resume and the application page concurrently
	g, gCtx := errgroup.WithContext(ctx)

	var resume *types.ResumeData
	var pageHTML string

	g.Go(func() error {
		loaded, err := loadResume(cfg.Resume, cfg.ResumeFile)
		if err != nil {
			return fmt.Errorf("failed to load resume: %w", err)
		}
		resume = loaded
		return nil
	})

	g.Go(func() error {
		html, err := loadPage(gCtx, &cfg)
		if err != nil {
			return fmt.Errorf("failed to load application page: %w", err)
		}
		pageHTML = html
		return nil
	})

	if err := g.Wait(); err != nil {
		return err
	}

	doc, err := dom.Parse(pageHTML)
	if err != nil {
		return fmt.Errorf("failed to parse application page: %w", err)
	}
	doc.SetURL(cfg.PageURL)

	// Step 7: Resolve the platform
	detected := resolvePlatform(&cfg, doc)
	spec := platform.For(detected)

	printer := observability.NewPrinter(os.Stdout)
	if !runJSON {
		printer.PrintPlatform(spec.Metadata.Name, cfg.PageURL)
	}

	// Step 8: Build and run the engine
	if cfg.Page != "" {
		// A saved page is static; polling for containers would only burn
		// the wait budget.
		autofillCfg.WaitForElements = false
	}

	eng := engine.New(spec, autofillCfg, writer)
	eng.SetVerbose(cfg.Verbose)

	if runAnswers != "" {
		if err := seedAnswers(eng.Questions(), runAnswers); err != nil {
			return fmt.Errorf("failed to load prepared answers: %w", err)
		}
	}

	if cfg.APIKey != "" {
		client, err := llm.NewClient(ctx, llm.DefaultGeminiConfig(), cfg.APIKey)
		if err != nil {
			return fmt.Errorf("failed to create LLM client: %w", err)
		}
		defer func() { _ = client.Close() }()
		eng.Questions().SetGenerator(llm.NewAnswerGenerator(client))
	}

	if autofillCfg.ShowProgress {
		eng.OnProgress(func(ev engine.ProgressEvent) {
			if ev.Total > 0 && ev.Status == engine.StatusFilling {
				fmt.Printf("  [%d/%d] %s\n", ev.Current, ev.Total, ev.Message)
				return
			}
			fmt.Printf("%s\n", ev.Message)
		})
	}

	result := eng.Autofill(ctx, doc, resume)

	if runJSON {
		out, err := json.MarshalIndent(result, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to encode result: %w", err)
		}
		fmt.Println(string(out))
	} else {
		if len(result.CustomQuestions) > 0 {
			printer.PrintCustomQuestions(result.CustomQuestions)
		}
		printer.PrintResult(result)
	}

	if !result.Success {
		return fmt.Errorf("autofill incomplete: %d required fields missing", len(result.MissingRequired))
	}
	return nil
}

// loadResume reads and validates the resume JSON, then attaches the
// upload document if one was configured and the resume does not already
// name one.
func loadResume(resumePath, uploadPath string) (*types.ResumeData, error) {
	if err := schemas.ValidateResume(resumePath); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(resumePath)
	if err != nil {
		return nil, err
	}

	var resume types.ResumeData
	if err := json.Unmarshal(data, &resume); err != nil {
		return nil, fmt.Errorf("invalid resume JSON: %w", err)
	}
	if err := resume.Validate(); err != nil {
		return nil, err
	}

	if uploadPath != "" && resume.ResumeFile == nil {
		resume.ResumeFile = &types.ResumeFile{
			Name: filepath.Base(uploadPath),
			Path: uploadPath,
		}
	}

	return &resume, nil
}

// loadPage returns the application page HTML from the configured local
// file or URL. Live runs render in the already-open browser so the fill
// happens on the same tab.
func loadPage(ctx context.Context, cfg *config.Config) (string, error) {
	if cfg.Page != "" {
		data, err := os.ReadFile(cfg.Page)
		if err != nil {
			return "", err
		}
		return string(data), nil
	}

	if cfg.UseBrowser {
		return fetch.RenderInBrowser(ctx, cfg.PageURL, cfg.Verbose)
	}

	opts := fetch.DefaultOptions()
	opts.Verbose = cfg.Verbose
	result, err := fetch.ApplicationPage(ctx, cfg.PageURL, opts)
	if err != nil {
		return "", err
	}
	return result.HTML, nil
}

// resolvePlatform honors an explicit platform override, otherwise
// detects from URL and DOM.
func resolvePlatform(cfg *config.Config, doc *dom.Document) platform.Platform {
	if cfg.Platform != "" {
		if p, ok := platform.Parse(cfg.Platform); ok {
			return p
		}
	}
	return platform.Detect(cfg.PageURL, doc)
}

// seedAnswers pre-seeds the question cache from a JSON object mapping
// question text to answers.
func seedAnswers(handler *questions.Handler, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	answers := map[string]string{}
	if err := json.Unmarshal(data, &answers); err != nil {
		return fmt.Errorf("invalid answers JSON: %w", err)
	}

	for question, answer := range answers {
		handler.SeedAnswer(question, answer)
	}
	return nil
}
