package service

import (
	"fmt"

	"gdict/internal/schema"
)

func lookupPrompt(word string) string {
	return fmt.Sprintf(`Analyze the English word "%s".

Step 1: Check for spelling errors.
- If the word is misspelled (e.g., "eliphant"), identify the correct word (e.g., "elephant").
- If the word is correct, the correction is null.

Step 2: Generate the dictionary entry.
- IF A CORRECTION EXISTS: Generate the data for the CORRECTED word (not the misspelled one).
- IF NO CORRECTION: Generate data for the original word.

Output Requirements:
- 'correction': The corrected word if misspelled, otherwise null.
- 'word': The actual word you are defining (the corrected one if applicable).
- 'pronunciation': IPA format.
- 'level': CEFR level (A1-C2).
- 'frequency_score': 0-100.
- 'frequency_label': e.g., "Common", "Rare".
- 'word_family': The morphological variations based on the root (Noun, Verb, Adjective, Adverb). Pick the most common form for each. Return null if a form doesn't exist.
- 'idioms_slang': Identify up to 3 common idioms, phrasal verbs, or slang usages where this word is a key component. Return the phrase and its Turkish meaning. Return empty array if none.
- 'collocations': 4-5 common word combinations.
- 'synonyms': List of synonyms.
- 'meanings': Turkish definitions with English/Turkish examples.

If the word is completely unrecognizable/gibberish and no reasonable correction exists, return empty arrays for lists, but try to find a correction if possible.`, word)
}

const dailyWordPrompt = `Generate 1 interesting, sophisticated English word (CEFR Level C1 or C2) suitable for "Word of the Day".

It should be a word that is useful in academic or professional contexts but might not be known by everyone.

Return JSON with:
- word: The word itself.
- definition_tr: A short, punchy Turkish definition (max 10 words).
- context: A very short English sentence showing usage.`

func grammarPrompt(text string) string {
	return fmt.Sprintf(`Rol: Sen kıdemli bir ELT (English Language Teaching) Profesörüsün ve akademik düzeyde bir editörsün. Analizlerin detaylı, açıklayıcı ve pedagojik olmalı.

Görev: Kullanıcının girdiği metni analiz et, hataları bul ve daha iyi bir versiyon öner.

Kullanıcı Metni:
"%s"

Kurallar:
1. Analiz sonuçlarını, kullanıcının kolayca anlayabileceği bir Türkçe ile yaz.
2. Hata bulunamazsa "errors" dizisi boş olmalıdır.
3. Olabildiğince çok hata türünü tespit et ve "type" alanını kullan.`, text)
}

// LookupSchema is the output shape of a dictionary lookup
func LookupSchema() *schema.Schema {
	return schema.Obj(map[string]*schema.Schema{
		"word":            schema.Str(),
		"correction":      schema.Str().OrNull(),
		"pronunciation":   schema.Str(),
		"level":           schema.Str(),
		"frequency_score": schema.Int(),
		"frequency_label": schema.Str(),
		"word_family": schema.Obj(map[string]*schema.Schema{
			"noun":      schema.Str().OrNull(),
			"verb":      schema.Str().OrNull(),
			"adjective": schema.Str().OrNull(),
			"adverb":    schema.Str().OrNull(),
		}).OrNull(),
		"idioms_slang": schema.Arr(schema.Obj(map[string]*schema.Schema{
			"phrase":     schema.Str(),
			"meaning_tr": schema.Str(),
		}, "phrase", "meaning_tr")).OrNull(),
		"collocations": schema.Arr(schema.Str()),
		"synonyms":     schema.Arr(schema.Str()),
		"meanings": schema.Arr(schema.Obj(map[string]*schema.Schema{
			"type":          schema.Str(),
			"definition_tr": schema.Str(),
			"example_en":    schema.Str(),
			"example_tr":    schema.Str(),
		}, "type", "definition_tr", "example_en", "example_tr")),
	}, "word", "pronunciation", "level", "frequency_score", "frequency_label", "collocations", "synonyms", "meanings")
}

// DailyWordSchema is the output shape of the word of the day
func DailyWordSchema() *schema.Schema {
	return schema.Obj(map[string]*schema.Schema{
		"word":          schema.Str(),
		"definition_tr": schema.Str(),
		"context":       schema.Str(),
	}, "word", "definition_tr", "context")
}

// GrammarSchema is the output shape of a writing analysis
func GrammarSchema() *schema.Schema {
	return schema.Obj(map[string]*schema.Schema{
		"analysis_status": schema.Str().Describe("Durum (Örn: Mükemmel / Minor Hata / Kritik Hata)"),
		"overall_summary": schema.Str().Describe("Metnin genel akıcılığı, grameri ve tonu hakkında kısa, yapıcı bir özet."),
		"tone":            schema.Str().Describe("Metnin Tonu (Örn: Formal / Informal / Akademik / Conversational)"),
		"errors": schema.Arr(schema.Obj(map[string]*schema.Schema{
			"type":        schema.Str().Describe("Hata Tipi (Örn: Grammar / Tense / Spelling / Punctuation)"),
			"error_text":  schema.Str().Describe("Hata içeren kelime veya kelime grubu"),
			"explanation": schema.Str().Describe("Hatanın dilbilgisel açıklaması ve kuralı"),
			"suggestion":  schema.Str().Describe("Doğru kullanım şekli"),
		}, "type", "error_text", "explanation", "suggestion")),
		"suggested_revision": schema.Str().Describe("Tüm hatalar giderildikten sonra metnin tamamının düzeltilmiş, en akıcı hali."),
	}, "analysis_status", "overall_summary", "tone", "errors", "suggested_revision")
}
