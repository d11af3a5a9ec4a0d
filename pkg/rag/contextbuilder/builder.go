package contextbuilder

import (
	"fmt"
	"sort"
	"strings"

	"edu-assistant-be/pkg/rag/retriever"

	"github.com/google/uuid"
)

const (
	DefaultMaxDocs  = 3
	DefaultMaxChars = 1000

	partSeparator      = "\n\n---\n\n"
	truncationSuffix   = "..."
	unknownSourceLabel = "Unknown Document"
)

// ContextPart is one source block of the assembled context.
type ContextPart struct {
	DocumentId uuid.UUID
	Label      string
	Score      float64
	Content    string
}

// Builder assembles retrieved passages into a bounded prompt context.
// Assembly is deterministic: building twice from the same passages
// yields the same string.
type Builder struct {
	maxDocs  int
	maxChars int
}

func NewBuilder(maxDocs, maxChars int) *Builder {
	if maxDocs <= 0 {
		maxDocs = DefaultMaxDocs
	}
	if maxChars <= 0 {
		maxChars = DefaultMaxChars
	}
	return &Builder{maxDocs: maxDocs, maxChars: maxChars}
}

// BuildStructured orders passages by descending score, keeps the top
// maxDocs, and truncates each content to maxChars runes. titles maps a
// document id to its display label.
func (b *Builder) BuildStructured(passages []*retriever.RetrievedPassage, titles map[uuid.UUID]string) []ContextPart {
	sorted := make([]*retriever.RetrievedPassage, len(passages))
	copy(sorted, passages)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Score > sorted[j].Score
	})

	if len(sorted) > b.maxDocs {
		sorted = sorted[:b.maxDocs]
	}

	parts := make([]ContextPart, 0, len(sorted))
	for _, p := range sorted {
		label := unknownSourceLabel
		if t, ok := titles[p.Chunk.DocumentId]; ok && t != "" {
			label = t
		}
		parts = append(parts, ContextPart{
			DocumentId: p.Chunk.DocumentId,
			Label:      label,
			Score:      p.Score,
			Content:    truncate(p.Chunk.Content, b.maxChars),
		})
	}
	return parts
}

// Build renders the structured parts into a single prompt context string.
func (b *Builder) Build(passages []*retriever.RetrievedPassage, titles map[uuid.UUID]string) string {
	parts := b.BuildStructured(passages, titles)
	rendered := make([]string, 0, len(parts))
	for _, part := range parts {
		rendered = append(rendered, fmt.Sprintf("Source: %s (Similarity: %.3f)\nContent: %s", part.Label, part.Score, part.Content))
	}
	return strings.Join(rendered, partSeparator)
}

// truncate limits s to max runes, appending a marker when cut.
// Rune-based so multi-byte scripts are never split mid-character.
func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max]) + truncationSuffix
}
