package ingestion

import "strings"

// splitFragments splits document text into spans of at most maxSize
// characters, preferring sentence boundaries. A single sentence longer
// than maxSize is hard-split at word boundaries. Output spans are
// whitespace-trimmed and never empty.
func splitFragments(text string, maxSize int) []string {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}
	if maxSize <= 0 || len(text) <= maxSize {
		return []string{text}
	}

	var fragments []string
	var current strings.Builder

	flush := func() {
		fragment := strings.TrimSpace(current.String())
		if fragment != "" {
			fragments = append(fragments, fragment)
		}
		current.Reset()
	}

	for _, sentence := range splitSentences(text) {
		if len(sentence) > maxSize {
			flush()
			fragments = append(fragments, splitWords(sentence, maxSize)...)
			continue
		}
		if current.Len() > 0 && current.Len()+1+len(sentence) > maxSize {
			flush()
		}
		if current.Len() > 0 {
			current.WriteByte(' ')
		}
		current.WriteString(sentence)
	}
	flush()

	return fragments
}

// splitSentences cuts text on sentence-ending punctuation followed by
// whitespace. The punctuation stays with its sentence.
func splitSentences(text string) []string {
	var sentences []string
	start := 0

	for i := 0; i < len(text); i++ {
		c := text[i]
		if c != '.' && c != '!' && c != '?' {
			continue
		}
		if i+1 < len(text) && text[i+1] != ' ' && text[i+1] != '\n' && text[i+1] != '\t' {
			continue
		}
		sentence := strings.TrimSpace(text[start : i+1])
		if sentence != "" {
			sentences = append(sentences, sentence)
		}
		start = i + 1
	}

	if trailing := strings.TrimSpace(text[start:]); trailing != "" {
		sentences = append(sentences, trailing)
	}
	return sentences
}

// splitWords hard-splits an overlong sentence at word boundaries. A
// single word longer than maxSize is cut mid-word as a last resort.
func splitWords(sentence string, maxSize int) []string {
	var chunks []string
	var current strings.Builder

	for _, word := range strings.Fields(sentence) {
		for len(word) > maxSize {
			if current.Len() > 0 {
				chunks = append(chunks, current.String())
				current.Reset()
			}
			chunks = append(chunks, word[:maxSize])
			word = word[maxSize:]
		}
		if word == "" {
			continue
		}
		if current.Len() > 0 && current.Len()+1+len(word) > maxSize {
			chunks = append(chunks, current.String())
			current.Reset()
		}
		if current.Len() > 0 {
			current.WriteByte(' ')
		}
		current.WriteString(word)
	}
	if current.Len() > 0 {
		chunks = append(chunks, current.String())
	}
	return chunks
}
