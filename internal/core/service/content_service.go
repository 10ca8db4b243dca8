package service

import (
	"strings"

	"github.com/brianvoe/gofakeit/v7"
)

const DefaultParagraphMaxChars = 500

// ContentService produces practice text.
type ContentService struct {
	faker    *gofakeit.Faker
	maxChars int
}

// NewContentService returns a generator for paragraphs of at most maxChars
// characters. A seed of 0 picks a random seed.
func NewContentService(seed uint64, maxChars int) *ContentService {
	if maxChars <= 0 {
		maxChars = DefaultParagraphMaxChars
	}
	return &ContentService{
		faker:    gofakeit.New(seed),
		maxChars: maxChars,
	}
}

// GenerateParagraph returns random prose on a single line.
func (s *ContentService) GenerateParagraph() string {
	var b strings.Builder
	for {
		sentence := collapseWhitespace(s.faker.Sentence(s.faker.IntRange(6, 14)))
		if sentence == "" {
			continue
		}

		if b.Len() == 0 {
			if len(sentence) > s.maxChars {
				return truncateWords(sentence, s.maxChars)
			}
			b.WriteString(sentence)
			continue
		}

		if b.Len()+1+len(sentence) > s.maxChars {
			return b.String()
		}
		b.WriteByte(' ')
		b.WriteString(sentence)
	}
}

// collapseWhitespace replaces every run of whitespace, line breaks
// included, with a single space.
func collapseWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// truncateWords cuts s to at most max bytes without splitting a word.
func truncateWords(s string, max int) string {
	if len(s) <= max {
		return s
	}
	cut := strings.LastIndexByte(s[:max+1], ' ')
	if cut <= 0 {
		return s[:max]
	}
	return s[:cut]
}
