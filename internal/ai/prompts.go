package ai

import (
	"fmt"
	"strings"
)

const promptRules = `IMPORTANT: Do not include the phrase 'Master this concept.' in any descriptions or content.
IMPORTANT: Return ONLY the JSON object. Do not wrap it in markdown block quotes.`

// StructurePrompt asks for a ten-module course outline.
func StructurePrompt(topic, language string) string {
	return fmt.Sprintf(`Create a comprehensive 10-module course on %q using %s.
Target Audience: Beginner

The output must be a valid JSON object with the following structure:
{
  "course_title": "Title of the course",
  "course_description": "Brief description",
  "modules": [
    {
      "module_number": 1,
      "title": "Module Title",
      "description": "Module Description",
      "learning_objectives": ["Objective 1", "Objective 2"],
      "difficulty": "Beginner/Intermediate/Advanced"
    }
  ]
}
Ensure there are exactly 10 modules.
%s`, topic, language, promptRules)
}

// ModulePrompt asks for the body of one module, including a quiz with a
// fixed question mix.
func ModulePrompt(topic, language, moduleTitle string, moduleNumber int) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Generate detailed course content for Module %d: %q of the course %q (%s).\n\n", moduleNumber, moduleTitle, topic, language)
	fmt.Fprintf(&b, `The output must be a valid JSON object with the following structure:
{
  "content": "Detailed explanatory text for the module...",
  "code_examples": [
    {"title": "Example Title", "code": "code snippet...", "explanation": "Explanation of the code...", "language": %q}
  ],
  "mini_labs": [
    {"title": "Lab Title", "description": "Lab instructions...", "tasks": ["Task 1", "Task 2"], "expected_outcome": "Outcome description"}
  ],
  "quizzes": [
    {
      "question": "Question text?",
      "options": ["Option A", "Option B", "Option C", "Option D"],
      "correct_answer": "Option A",
      "explanation": "Why this is correct...",
      "difficulty": "easy/medium/hard",
      "type": "code_prediction/reasoning/debugging/syntax/real_world"
    }
  ],
  "real_world_examples": [
    {"title": "Real World Use Case", "description": "Description...", "solution": "How it solves a problem...", "learning_outcome": "What is learned..."}
  ]
}

CRITICAL QUIZ GENERATION RULES:
1. Generate EXACTLY 10 quiz questions.
2. Follow this STRICT distribution:
   - 3 Output prediction (code-based)
   - 2 Conceptual reasoning (with code)
   - 2 Debugging / error identification
   - 2 Syntax & best-practice evaluation
   - 1 Real-world scenario / use-case
3. Difficulty Distribution: 3 Easy, 4 Medium, 3 Hard.
4. Ensure all code snippets are valid %s and relevant to the module.
5. Provide AT LEAST 2 code examples and 1 mini lab.
`, language, language)
	b.WriteString(promptRules)
	return b.String()
}
