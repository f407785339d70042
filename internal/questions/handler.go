package questions

import (
	"context"
	"log"
	"regexp"
	"strings"
	"time"

	"golang.org/x/net/html"

	"github.com/oks-citadel/Apply-sub014/internal/detect"
	"github.com/oks-citadel/Apply-sub014/internal/dom"
	"github.com/oks-citadel/Apply-sub014/internal/types"
)

// Confidence levels for generated answers. Only answers above
// WriteThreshold are written to the page; lower-confidence answers are
// still returned for caller review.
const (
	MatchedConfidence   = 0.9
	UnmatchedConfidence = 0.5
	WriteThreshold      = 0.7
)

// AnswerWriter writes an answer into the question's element. The engine's
// field writer satisfies this.
type AnswerWriter interface {
	WriteAnswer(ctx context.Context, question *types.CustomQuestion) error
}

// Generator produces a fallback answer when no pattern matches. Generated
// answers keep the unmatched confidence, so they are returned for review
// but never auto-written.
type Generator interface {
	GenerateAnswer(ctx context.Context, resume *types.ResumeData, question string) (string, error)
}

// questionContainerSelectors locate explicitly marked-up screening
// question blocks.
var questionContainerSelectors = []string{
	".custom-question",
	".application-question",
	"[class*='question']",
	"[data-qa*='question']",
}

// standardFieldKeywords identify labels the standard mapping pipeline
// already covers; labels matching any of these are not screening
// questions.
var standardFieldKeywords = []string{
	"first name", "last name", "full name", "name",
	"email", "phone", "mobile", "telephone",
	"address", "street", "city", "state", "zip", "postal", "country", "location",
	"linkedin", "github", "website", "portfolio",
	"resume", "cv", "upload", "attach",
}

var normalizeRe = regexp.MustCompile(`[^a-z0-9 ]+`)

// Handler detects and answers custom screening questions.
type Handler struct {
	patterns  []Pattern
	cache     map[string]string
	writer    AnswerWriter
	generator Generator
	now       func() time.Time
	verbose   bool
}

// NewHandler creates a Handler with the default pattern library.
func NewHandler(writer AnswerWriter) *Handler {
	return &Handler{
		patterns: DefaultPatterns(),
		cache:    make(map[string]string),
		writer:   writer,
		now:      time.Now,
	}
}

// SetGenerator installs an optional fallback answer generator.
func (h *Handler) SetGenerator(gen Generator) { h.generator = gen }

// SetVerbose enables debug logging.
func (h *Handler) SetVerbose(verbose bool) { h.verbose = verbose }

// SetClock overrides the time source. Used by tests and forecastable
// runs.
func (h *Handler) SetClock(now func() time.Time) { h.now = now }

// SeedAnswer pre-seeds the session answer cache. Seeded answers are
// treated like pattern matches.
func (h *Handler) SeedAnswer(question, answer string) {
	h.cache[NormalizeQuestion(question)] = answer
}

// CachedAnswer returns a previously generated or seeded answer.
func (h *Handler) CachedAnswer(question string) (string, bool) {
	answer, ok := h.cache[NormalizeQuestion(question)]
	return answer, ok
}

// NormalizeQuestion lowercases a question and strips punctuation so
// trivially different phrasings share one cache key.
func NormalizeQuestion(question string) string {
	normalized := strings.ToLower(strings.TrimSpace(question))
	normalized = normalizeRe.ReplaceAllString(normalized, "")
	return strings.Join(strings.Fields(normalized), " ")
}

// DetectAndAnswerQuestions runs both detection passes over the page,
// answers every detected question and writes answers whose confidence
// exceeds the write threshold. Per-question write failures are logged and
// skipped; detection itself never fails.
func (h *Handler) DetectAndAnswerQuestions(ctx context.Context, doc *dom.Document, resume *types.ResumeData) []types.CustomQuestion {
	detected := h.DetectQuestions(doc)

	for i := range detected {
		h.answer(ctx, &detected[i], resume)

		if detected[i].Answer == "" || detected[i].Confidence <= WriteThreshold {
			continue
		}
		if h.writer == nil {
			continue
		}
		if err := h.writer.WriteAnswer(ctx, &detected[i]); err != nil && h.verbose {
			log.Printf("[questions] failed to write answer for %q: %v", detected[i].Question, err)
		}
	}

	return detected
}

// DetectQuestions finds screening questions via two passes: explicitly
// marked question containers, then any label whose text is not a standard
// field but has an associated input. The second pass catches questions
// the vendor didn't mark up distinctly.
func (h *Handler) DetectQuestions(doc *dom.Document) []types.CustomQuestion {
	if doc == nil {
		return nil
	}

	seenNodes := make(map[*html.Node]bool)
	questions := make([]types.CustomQuestion, 0)

	record := func(text string, input *dom.Element) {
		text = detect.CleanLabel(text)
		if text == "" || isStandardFieldLabel(text) {
			return
		}
		if input == nil || !input.Visible() {
			return
		}
		if seenNodes[input.Node()] {
			return
		}
		seenNodes[input.Node()] = true

		q := types.CustomQuestion{
			Question: text,
			Element:  input,
			Type:     detect.ClassifyField(input, text),
		}
		switch q.Type {
		case types.FieldSelect:
			for _, opt := range input.SelectOptions() {
				if opt.Text != "" {
					q.Options = append(q.Options, opt.Text)
				}
			}
		case types.FieldRadio:
			q.Options = detect.RadioOptions(input)
		}
		questions = append(questions, q)
	}

	// Pass 1: explicit question containers.
	for _, selector := range questionContainerSelectors {
		for _, container := range doc.Find(selector) {
			input := firstFillable(container)
			if input == nil {
				continue
			}
			text := containerQuestionText(container, input)
			record(text, input)
		}
	}

	// Pass 2: labels that do not look like standard fields.
	for _, label := range doc.Find("label") {
		text := strings.TrimSpace(label.Text())
		if text == "" || isStandardFieldLabel(text) {
			continue
		}
		input := labelTarget(label)
		record(text, input)
	}

	return questions
}

// answer resolves one question: seeded cache first, then the pattern
// library (first match wins), then the optional generator.
func (h *Handler) answer(ctx context.Context, q *types.CustomQuestion, resume *types.ResumeData) {
	if cached, ok := h.CachedAnswer(q.Question); ok {
		q.Answer = cached
		q.Confidence = MatchedConfidence
		return
	}

	for _, pattern := range h.patterns {
		if pattern.Regex.MatchString(q.Question) {
			q.Answer = pattern.Answer(resume, q.Question, h.now())
			q.Category = pattern.Category
			q.Confidence = MatchedConfidence
			h.cache[NormalizeQuestion(q.Question)] = q.Answer
			return
		}
	}

	q.Confidence = UnmatchedConfidence
	if h.generator != nil {
		generated, err := h.generator.GenerateAnswer(ctx, resume, q.Question)
		if err != nil {
			if h.verbose {
				log.Printf("[questions] generator failed for %q: %v", q.Question, err)
			}
			return
		}
		q.Answer = generated
	}
}

func firstFillable(container *dom.Element) *dom.Element {
	for _, el := range container.Find("input, textarea, select") {
		if el.Tag() == "input" {
			switch el.InputType() {
			case "hidden", "submit", "button", "reset", "image":
				continue
			}
		}
		if el.Visible() {
			return el
		}
	}
	return nil
}

// containerQuestionText extracts the question prompt from a container:
// legend or label when present, otherwise the container's text with the
// input subtree excluded.
func containerQuestionText(container, input *dom.Element) string {
	for _, selector := range []string{"legend", "label", ".question-text", "p"} {
		for _, el := range container.Find(selector) {
			if text := strings.TrimSpace(el.TextExcluding(input)); text != "" {
				return text
			}
		}
	}
	return container.TextExcluding(input)
}

func labelTarget(label *dom.Element) *dom.Element {
	if forID := label.Attr("for"); forID != "" {
		return label.Document().First("#" + forID)
	}
	return firstFillable(label)
}

func isStandardFieldLabel(text string) bool {
	lower := strings.ToLower(strings.TrimSpace(text))
	// Question-phrased or long labels are screening questions even when
	// they mention a standard term, such as "Are you authorized to work
	// in the United States?" containing "state".
	if strings.HasSuffix(lower, "?") || len(lower) > 40 {
		return false
	}
	for _, keyword := range standardFieldKeywords {
		if strings.Contains(lower, keyword) {
			return true
		}
	}
	return false
}
