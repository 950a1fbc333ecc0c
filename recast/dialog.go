package recast

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"regexp"
	"strings"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

const summarizePrompt = `Please summarize the following podcast description as a JSON. Only include information about the content of the episode. For example, ignore links to the podcast's website and social media accounts.

Description: %s

`

const rewritePrompt = `Please write dialog for a talk show where the host, "JeremyBot," discusses and summarizes a podcast. There are no guests on this show. Respond with JSON and make sure to end with the tagline: "That's all for today. Join us next time for another exciting summary."

For example, consider the following summary.

Summary: This week on the Slate Gabfest, David Plotz, Emily Bazelon, and John Dickerson discuss the House GOP's "Weaponization of Government" subcommittee, the insurrection in Brazil, Prince Harry's book "Spare", and the status of "return to office". They also provide references and chatters from John, Emily, David, and a listener.

For that summary, you could write the following:

{"dialog": "Welcome! Today we are summarizing The Slate Political Gabfest. On this episode, David Plotz, Emily Bazelon, and John Dickerson discuss the House GOP's 'Weaponization of Government' subcommittee, the insurrection in Brazil, Prince Harry's book 'Spare', and the status of 'return to office'. They also provide references and chatters from John, Emily, David, and a listener. That's all for today. Join us next time for another exciting summary."}

In this case, summarize %s:

Summary: %s

`

const firstLine = `Welcome back. I'm JeremyBot, an artificial intelligence that summarizes podcasts. Today we are summarizing %s: %s.`

// ClosingTagline ends every generated dialog; TaglineSalvager rewrites
// truncated output back onto it.
const ClosingTagline = "That's all for today. Join us next time for another exciting summary."

const (
	dialogRetryAttempts = 5
	dialogRetryDelay    = 2 * time.Second

	summaryMaxTokens = 512
	dialogMaxTokens  = 600
)

// DialogWriter is the single-shot pipeline for episodes that only have a
// description: one structured call for the summary, one for the styled
// dialog.
type DialogWriter struct {
	Client *StructuredClient

	// Retry overrides the per-call retry budget. The zero value means
	// 5 attempts with a 2s fixed delay.
	Retry RetryPolicy

	Logger *slog.Logger
}

func (w *DialogWriter) policy() RetryPolicy {
	policy := w.Retry
	if policy.Attempts == 0 {
		policy.Attempts = dialogRetryAttempts
		policy.Delay = dialogRetryDelay
	}
	if policy.Logger == nil {
		policy.Logger = w.logger()
	}
	return policy
}

// NewDialog creates a new dialog transcript from an episode description.
func (w *DialogWriter) NewDialog(ctx context.Context, podcastTitle, episodeTitle, description string) (string, error) {
	if w.Client == nil {
		return "", errors.New("recast: DialogWriter.Client is nil")
	}
	log := w.logger()
	log.Info("writing dialog", "podcast", podcastTitle, "episode", episodeTitle)

	summary, err := w.Summarize(ctx, description)
	if err != nil {
		return "", err
	}
	log.Debug("summary ready", "summary", summary)

	dialog, err := w.Rewrite(ctx, summary, podcastTitle, episodeTitle)
	if err != nil {
		return "", err
	}
	log.Debug("dialog ready", "dialog", dialog)

	return dialog, nil
}

// Summarize condenses an episode description into a content-only summary.
func (w *DialogWriter) Summarize(ctx context.Context, description string) (string, error) {
	description = collapseWhitespace(description)
	summary, err := Retry(ctx, w.policy(), func() (string, error) {
		return w.Client.Complete(ctx, StructuredRequest{
			Prompt:    fmt.Sprintf(summarizePrompt, description),
			Key:       "summary",
			MaxTokens: summaryMaxTokens,
		})
	})
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(summary), nil
}

// Rewrite turns a summary into styled talk-show dialog. The opening line is
// forced so every show starts the same way, and truncated output is
// salvageable as long as the closing tagline already began.
func (w *DialogWriter) Rewrite(ctx context.Context, summary, podcastTitle, episodeTitle string) (string, error) {
	summary = collapseWhitespace(summary)
	title := NormalizeTitle(podcastTitle)
	opening := fmt.Sprintf(firstLine, title, titleCase(episodeTitle))

	dialog, err := Retry(ctx, w.policy(), func() (string, error) {
		return w.Client.Complete(ctx, StructuredRequest{
			Prompt:       fmt.Sprintf(rewritePrompt, title, summary),
			Key:          "dialog",
			MaxTokens:    dialogMaxTokens,
			OutputPrefix: opening,
			Salvage:      TaglineSalvager{},
		})
	})
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(dialog), nil
}

func (w *DialogWriter) logger() *slog.Logger {
	if w.Logger != nil {
		return w.Logger
	}
	return slog.Default()
}

// NormalizeTitle prepares a podcast title for prompt use: an article is
// prepended unless the lowercased title already starts with "a" or "the",
// and the result is English title-cased.
func NormalizeTitle(title string) string {
	lower := strings.ToLower(title)
	if !strings.HasPrefix(lower, "the") && !strings.HasPrefix(lower, "a") {
		title = "the " + title
	}
	return titleCase(title)
}

func titleCase(s string) string {
	return cases.Title(language.English).String(s)
}

var whitespaceRun = regexp.MustCompile(`\s+`)

func collapseWhitespace(s string) string {
	return strings.TrimSpace(whitespaceRun.ReplaceAllString(s, " "))
}

// taglinePattern matches from the first occurrence of the closing tagline to
// the end of the candidate output.
var taglinePattern = regexp.MustCompile(`(?is)that'?s all for today.*$`)

// TaglineSalvager repairs dialog output that the token budget cut off after
// the closing tagline had already begun: everything from the tagline match
// onward is replaced with the canonical tagline plus the envelope's closing
// quote and brace. Output without the tagline is unrepairable.
type TaglineSalvager struct{}

func (TaglineSalvager) Salvage(candidate string) (string, error) {
	if !taglinePattern.MatchString(candidate) {
		return "", fmt.Errorf("%w: closing tagline not found", ErrSalvageImpossible)
	}
	return taglinePattern.ReplaceAllString(candidate, ClosingTagline+`"}`), nil
}
