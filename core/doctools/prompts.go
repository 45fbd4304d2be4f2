package doctools

import (
	"fmt"
	"strings"
	"unicode"
)

const fetchDocsSystem = `You are a documentation expert. Fetch and summarize official documentation.

Format your response as:
## [Topic Name]

### Overview
Brief description of what this is.

### Syntax/Usage
` + "```language\ncode example\n```" + `

### Parameters/Properties
- param1: description
- param2: description

### Examples
Practical examples with explanations.

### Common Pitfalls
Things to watch out for.

### See Also
- Related concepts
`

const searchCodeExamplesSystem = `You are a senior %[1]s developer. Provide practical code examples.

Format each example as:
### Example [N]: [Title]
**Use case:** Brief description

` + "```%[1]s\n// Complete, runnable code\n```" + `

**Explanation:** Step-by-step breakdown
**Best Practices:** Key things to note
`

const searchCodeExamplesUser = `Provide %d practical %s code examples for: "%s"

Make examples:
1. Production-ready and well-commented
2. Follow best practices
3. Handle edge cases
4. Be runnable as-is`

const explainConceptSystem = `You are an expert CS educator. Explain concepts clearly and memorably.

%s

Format your explanation as:
## [Concept Name]

### 🎯 What is it?
One-line definition.

### 💡 Simple Analogy
Real-world analogy to understand the concept.

### 🔍 How it Works
Step-by-step explanation.

### ✅ When to Use
- Use case 1
- Use case 2

### ❌ When NOT to Use
- Anti-pattern 1

### 📝 Code Example (if applicable)
` + "```language\n// Practical example\n```" + `

### 🏋️ Practice Question
A question to test understanding.
`

const interviewQuestionsSystem = `You are a senior tech interviewer at a %s company.

Generate interview questions with this format for each:

### Question [N]: [Title]
**Difficulty:** Easy/Medium/Hard
**Company Tags:** Google, Amazon, etc.

**Question:**
The actual interview question.

**Key Points to Cover:**
- Point 1
- Point 2

**Sample Answer:**
A concise, strong answer.

**Follow-up Questions:**
- Follow-up 1
- Follow-up 2
`

const interviewQuestionsUser = `Generate %d interview questions about '%s' for %s level interviews.

%s

Mix difficulty levels and include both conceptual and practical questions.`

const learningResourcesSystem = `You are a learning curator. Recommend the best resources.

Format your response as:

## 📚 Books
- **[Title]** by Author - Brief description

## 🎥 Video Courses
- **[Course Name]** on Platform - Description, level

## 📝 Tutorials & Articles
- **[Title]** - Platform/Author - Brief description

## 🛠️ Practice Platforms
- **[Platform]** - What it offers

## 💡 Tips
Best practices for learning this topic.
`

// unknown keys fall back to the default level
var (
	difficultyContext = map[string]string{
		"beginner":     "Explain like I'm new to programming. Use simple analogies.",
		"intermediate": "Assume familiarity with basic programming concepts.",
		"advanced":     "Dive deep into internals, optimizations, and edge cases.",
	}
	levelContext = map[string]string{
		"FAANG":   "Focus on system design, scalability, and edge cases. Include follow-up questions.",
		"startup": "Balance between practical coding and system thinking. Include real-world scenarios.",
		"general": "Cover fundamentals with moderate complexity.",
	}
)

func contextFor(m map[string]string, key, def string) string {
	if text, ok := m[key]; ok {
		return text
	}
	return m[def]
}

func codeInstruction(includeCode bool) string {
	if includeCode {
		return "Include practical code examples."
	}
	return "Focus on conceptual explanation without code."
}

func typeFilter(resourceType string) string {
	if resourceType == "all" {
		return ""
	}
	return fmt.Sprintf("Focus on %ss.", resourceType)
}

// titleWords upper-cases the first letter of every word of `s` and lowers the others.
func titleWords(s string) string {
	var b strings.Builder
	prevLetter := false
	for _, r := range s {
		switch {
		case unicode.IsLetter(r) && !prevLetter:
			b.WriteRune(unicode.ToUpper(r))
		case unicode.IsLetter(r):
			b.WriteRune(unicode.ToLower(r))
		default:
			b.WriteRune(r)
		}
		prevLetter = unicode.IsLetter(r)
	}
	return b.String()
}
