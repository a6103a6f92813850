package openai

import "fmt"

const keywordResponseSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "properties": {
    "keywords": {
      "type": "array",
      "items": {
        "type": "object",
        "properties": {
          "keyword": {
            "type": "string",
            "pattern": "^[a-z0-9]+([ -][a-z0-9]+)*$"
          },
          "score": {
            "type": "number",
            "minimum": 0,
            "maximum": 1
          }
        },
        "required": ["keyword", "score"],
        "additionalProperties": false
      }
    }
  },
  "required": ["keywords"],
  "additionalProperties": false
}`

const keywordPromptTemplate = `Extract the most important medical keywords from the given text and return them as JSON.

Output ONLY valid JSON which complies with the schema given below. Do not include any preamble, explanation,
greeting, or acknowledgment. Start your response directly with the opening brace { and end with the closing
brace }. Your output must exactly follow this schema:

%s

Rules:
- Keywords must be lowercase, 1-3 words each.
- Return at most %d keywords.
- Score is a number from 0.0 (marginally relevant) to 1.0 (central to the text).
- Prefer clinical terms: conditions, symptoms, anatomy, medications, procedures, findings.
- Include only keywords that are explicitly mentioned or clearly implied by the text. Do not hallucinate.
- If no keywords can be identified, return "keywords": [].
- The JSON must parse without errors; no trailing commas, no extra keys, and no extraneous text outside the object.

Example:
Input: "Patient presents with acute chest pain radiating to the left arm. ECG shows ST elevation."
Output:
{
  "keywords": [
    {"keyword":"chest pain","score":0.95},
    {"keyword":"st elevation","score":0.9},
    {"keyword":"ecg","score":0.7},
    {"keyword":"left arm","score":0.5}
  ]
}`

const summaryPromptTemplate = `Summarize the given medical text in at most %d characters.

Rules:
- Preserve clinical meaning: diagnoses, findings, medications and dosages take priority.
- Use plain declarative sentences. No preamble, no bullet points, no headings.
- Do not add information that is not in the text.
- Output the summary text only.`

// buildKeywordPrompt creates the keyword extraction system prompt.
func buildKeywordPrompt(maxKeywords int) string {
	return fmt.Sprintf(keywordPromptTemplate, keywordResponseSchema, maxKeywords)
}

// buildSummaryPrompt creates the summarization system prompt.
func buildSummaryPrompt(maxLength int) string {
	return fmt.Sprintf(summaryPromptTemplate, maxLength)
}
