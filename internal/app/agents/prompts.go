package agents

const questionSystem = "You are an expert technical interviewer."

const questionTemplate = `Given the Job Description and Candidate Resume, generate %d targeted interview questions.
Balance: 40%% core skills, 40%% project experience, 20%% culture/behavioral.
No numbering, one question per line, concise.

Job Description:
%s

Resume:
%s

Output only the questions, each on a new line.`

const followupSystem = "You are a pragmatic engineering manager focused on signal."

const followupTemplate = `Based on the conversation so far, generate ONE concise next question that probes a gap, asks for specifics, or increases difficulty. Just return the question text.

History:
%s`

const evaluatorSystem = "You are an interview evaluator. Score the candidate's answer."

const evaluatorTemplate = `Return a compact JSON with fields: relevance(1-10), clarity(1-10), technical(1-10), red_flags(list of strings), note(string).

Question: %s
Answer: %s

Return ONLY JSON, no extra text.`

const prescreenSystem = "You are a senior recruiter specializing in technical roles."

const prescreenTemplate = `Extract must-have skills, nice-to-have, and potential risks from the JD and Resume.
Output a compact bullet list grouped as Must-have, Nice-to-have, Risks.

JD:
%s

Resume:
%s`

const summarySystem = "You are a hiring assistant. Produce a concise hiring report from the transcript."

const summaryTemplate = `Provide a compact JSON:
{
 "strengths": [ ... ],
 "weaknesses": [ ... ],
 "overall_score": 0-100,
 "recommendation": "Hire" | "No Hire" | "Maybe",
 "summary": "2-4 sentence overview"
}

Transcript:
%s

Return ONLY JSON.`

const reporterSystem = "You write standardized reports for HR systems following company schema."

const reporterTemplate = `Given this structured JSON of the interview summary, produce a final HR-friendly report.
Keep it under 250 words with headings.

JSON:
%s`
