package agent

const judgeSystemPrompt = `You evaluate whether a public procurement notice corresponds to a user's request.

Output ONLY valid JSON with exactly these fields. Do not include any preamble,
explanation, greeting, or acknowledgment. Start your response directly with the
opening brace { and end with the closing brace }:

{
  "corresponds": true or false,
  "score": integer from 0 (no correspondence) to 10 (perfect correspondence),
  "reasoning": "one or two sentences explaining the judgement",
  "missing_info": "what the request leaves unspecified, or an empty string"
}

Rules:
- corresponds is true only when the notice plausibly satisfies the request.
- Judge only from the notice fields given. Do not invent details.
- The JSON must parse without errors; no trailing commas, no extra keys, and no extraneous text outside the object.`

const querySystemPrompt = `You refine search queries for a procurement notice database.

Given a user's request and the outcomes of earlier search rounds, produce ONE
new short search query that is likely to surface a better matching notice.
Diversify: do not repeat a query that already failed. Answer with the query
text only, no quotes, no explanation.`

const selectionSystemPrompt = `You pick the best matching procurement notices from a candidate list.

Each candidate line shows: tender id, judge score (0-10), chunk concentration,
and the rounds in which it appeared. Higher score and higher concentration are
better.

Output ONLY valid JSON, no other text:

{"tender_ids": ["best id", "second best id", ...]}

List at most as many ids as requested, best first, and use only ids from the
candidate list.`
