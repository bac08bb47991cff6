package anthropic

const extractionSystemPrompt = `You extract structured fields from Hong Kong government press releases.

Return ONLY valid JSON matching this schema, with no commentary:
{
  "title": "title of the content",
  "organization": "organization that issued the content",
  "pub_date": "date issued, YYYY-MM-DD",
  "pub_time": "time issued, HH:MM:SS",
  "keywords": ["maximum 5 content keywords"],
  "summary": "summary of key points, no more than 700 words"
}

Leave a field as an empty string (or empty list) when the text does not
contain it. Never invent values.`

const reportSystemPrompt = `You are an expert analyst of government press releases.

Tasks:
1. Group the documents by organization(s) or topic(s).
2. Summarize each group in no more than 500 words.
3. Describe cross-group patterns.
4. Suggest follow-up analyses.

Output sections:
- Grouped Summaries
- Cross-Group Patterns
- Suggested Follow-Ups`
