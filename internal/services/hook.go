package services

import (
	"regexp"
	"strings"

	"github.com/neurosnap/sentences"
	"github.com/neurosnap/sentences/english"
	log "github.com/sirupsen/logrus"
)

var urlPattern = regexp.MustCompile(`https?://\S+`)

// HookExtractor pulls the opening sentence ("hook") out of a post.
type HookExtractor struct {
	tokenizer *sentences.DefaultSentenceTokenizer
}

// NewHookExtractor loads the English punkt model. If it cannot be loaded the
// extractor still works and falls back to the first line of text.
func NewHookExtractor() *HookExtractor {
	tokenizer, err := english.NewSentenceTokenizer(nil)
	if err != nil {
		log.WithError(err).Warn("sentence tokenizer unavailable, hooks fall back to first line")
		return &HookExtractor{}
	}
	return &HookExtractor{tokenizer: tokenizer}
}

// Extract returns the first sentence of the first non-empty line, with links removed.
func (h *HookExtractor) Extract(text string) string {
	line := firstLine(urlPattern.ReplaceAllString(text, ""))
	if line == "" || h == nil || h.tokenizer == nil {
		return line
	}
	for _, s := range h.tokenizer.Tokenize(line) {
		if t := strings.TrimSpace(s.Text); t != "" {
			return t
		}
	}
	return line
}

func firstLine(text string) string {
	for _, l := range strings.Split(text, "\n") {
		if l = strings.Join(strings.Fields(l), " "); l != "" {
			return l
		}
	}
	return ""
}
