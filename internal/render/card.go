package render

import (
	"fmt"
	"strconv"
	"strings"

	"gdict/internal/domain"
)

// Card renders a resolvable entry as Markdown. Optional sections follow the
// show flags of settings. Entries without meanings have no card.
func Card(entry *domain.DictionaryEntry, settings domain.AppSettings) (string, error) {
	if !entry.Found() {
		return "", fmt.Errorf("no card for %q: %w", entryWord(entry), domain.ErrNotFound)
	}

	var b strings.Builder
	frontMatter(&b,
		"title", entry.Word,
		"kind", "entry",
		"level", entry.Level,
		"part_of_speech", entry.PartOfSpeech(),
		"frequency_score", strconv.Itoa(entry.FrequencyScore),
	)

	fmt.Fprintf(&b, "# %s\n\n", escape(entry.Word))

	header := []string{}
	if entry.Pronunciation != "" {
		header = append(header, "`"+strings.ReplaceAll(entry.Pronunciation, "`", "'")+"`")
	}
	if entry.Level != "" {
		header = append(header, "**"+escape(entry.Level)+"**")
	}
	header = append(header, "*"+escape(entry.PartOfSpeech())+"*")
	b.WriteString(strings.Join(header, " · "))
	b.WriteString("\n\n")

	if settings.ShowFrequency {
		fmt.Fprintf(&b, "**Frequency:** %d/100", entry.FrequencyScore)
		if entry.FrequencyLabel != "" {
			fmt.Fprintf(&b, " (%s)", escape(entry.FrequencyLabel))
		}
		b.WriteString("\n\n")
	}

	b.WriteString("## Meanings\n\n")
	for i, m := range entry.Meanings {
		fmt.Fprintf(&b, "%d. *%s* %s\n", i+1, escape(m.Type), escape(m.DefinitionTR))
		if m.ExampleEN != "" {
			fmt.Fprintf(&b, "   - %s\n", escape(strings.Trim(m.ExampleEN, `"`)))
		}
		if m.ExampleTR != "" {
			fmt.Fprintf(&b, "   - %s\n", escape(m.ExampleTR))
		}
	}
	b.WriteString("\n")

	if settings.ShowIdioms && len(entry.IdiomsSlang) > 0 {
		b.WriteString("## Street Smart\n\n")
		for _, idiom := range entry.IdiomsSlang {
			fmt.Fprintf(&b, "- **%s** %s\n", escape(idiom.Phrase), escape(idiom.MeaningTR))
		}
		b.WriteString("\n")
	}

	if settings.ShowMorphology && hasWordFamily(entry.WordFamily) {
		f := entry.WordFamily
		b.WriteString("## Word Family\n\n")
		b.WriteString("| Noun | Verb | Adjective | Adverb |\n|---|---|---|---|\n")
		fmt.Fprintf(&b, "| %s | %s | %s | %s |\n\n", cell(f.Noun), cell(f.Verb), cell(f.Adjective), cell(f.Adverb))
	}

	if len(entry.Collocations) > 0 {
		b.WriteString("## Collocations\n\n")
		for _, c := range entry.Collocations {
			fmt.Fprintf(&b, "- %s\n", escape(c))
		}
		b.WriteString("\n")
	}

	if len(entry.Synonyms) > 0 {
		b.WriteString("## Synonyms\n\n")
		words := make([]string, len(entry.Synonyms))
		for i, s := range entry.Synonyms {
			words[i] = escape(s)
		}
		b.WriteString(strings.Join(words, ", "))
		b.WriteString("\n")
	}

	return b.String(), nil
}

func entryWord(entry *domain.DictionaryEntry) string {
	if entry == nil {
		return ""
	}
	return entry.Word
}

func hasWordFamily(f *domain.WordFamily) bool {
	if f == nil {
		return false
	}
	for _, v := range []*string{f.Noun, f.Verb, f.Adjective, f.Adverb} {
		if v != nil && *v != "" {
			return true
		}
	}
	return false
}

func cell(v *string) string {
	if v == nil || *v == "" {
		return "-"
	}
	return escape(*v)
}

// DailyWord renders the word of the day as Markdown
func DailyWord(w domain.WordOfTheDay) string {
	var b strings.Builder
	frontMatter(&b, "title", w.Word, "kind", "daily")
	fmt.Fprintf(&b, "# %s\n\n%s\n\n", escape(w.Word), escape(w.DefinitionTR))
	if w.Context != "" {
		fmt.Fprintf(&b, "*%s*\n", escape(w.Context))
	}
	return b.String()
}
