// Package doctools implements the tools of the documentation assistant:
// a fixed catalog of five typed operations and the Dispatcher running them.
package doctools

import (
	"encoding/json"
	"fmt"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

// Tool names
const (
	FetchDocsTool          = "fetch_docs"
	SearchCodeExamplesTool = "search_code_examples"
	ExplainConceptTool     = "explain_concept"
	InterviewQuestionsTool = "get_interview_questions"
	LearningResourcesTool  = "get_learning_resources"
)

// Param types
const (
	TypeString  = "string"
	TypeInteger = "integer"
	TypeBoolean = "boolean"
)

type Param struct {
	Name        string
	Type        string
	Description string
	Enum        []string    // advertised only
	Default     interface{} // nil when the param has no default
	Required    bool
}

type Tool struct {
	Name        string
	Description string
	Params      []Param

	decode   func(args Args) (operation, error)
	argTypes *jsonschema.Schema
}

var catalog = []Tool{
	{
		Name:        FetchDocsTool,
		Description: "Fetch official documentation for a programming concept, function, or library. Returns formatted documentation with examples.",
		Params: []Param{
			{
				Name: "topic", Type: TypeString, Required: true,
				Description: "The concept, function, or library to look up (e.g., 'Python asyncio', 'React useState', 'SQL JOIN')",
			},
			{
				Name: "language", Type: TypeString, Default: "general",
				Description: "Programming language context",
				Enum:        []string{"python", "javascript", "typescript", "java", "cpp", "sql", "general"},
			},
		},
		decode: decodeFetchDocs,
	},
	{
		Name:        SearchCodeExamplesTool,
		Description: "Search for real-world code examples from GitHub and Stack Overflow. Returns practical code snippets with explanations.",
		Params: []Param{
			{
				Name: "query", Type: TypeString, Required: true,
				Description: "What to search for (e.g., 'binary search implementation', 'REST API with authentication')",
			},
			{
				Name: "language", Type: TypeString, Required: true,
				Description: "Programming language",
				Enum:        []string{"python", "javascript", "typescript", "java", "cpp", "go", "rust"},
			},
			{Name: "max_results", Type: TypeInteger, Default: 3, Description: "Number of examples to return (1-5)"},
		},
		decode: decodeSearchCodeExamples,
	},
	{
		Name:        ExplainConceptTool,
		Description: "Get an AI-powered explanation of a programming concept with analogies, examples, and best practices.",
		Params: []Param{
			{
				Name: "concept", Type: TypeString, Required: true,
				Description: "The concept to explain (e.g., 'recursion', 'dependency injection', 'CAP theorem')",
			},
			{
				Name: "difficulty", Type: TypeString, Default: "intermediate",
				Description: "Target difficulty level",
				Enum:        []string{"beginner", "intermediate", "advanced"},
			},
			{Name: "include_code", Type: TypeBoolean, Default: true, Description: "Include code examples in explanation"},
		},
		decode: decodeExplainConcept,
	},
	{
		Name:        InterviewQuestionsTool,
		Description: "Generate interview questions for a given topic, tailored for different company levels.",
		Params: []Param{
			{
				Name: "topic", Type: TypeString, Required: true,
				Description: "Topic to generate questions for (e.g., 'binary trees', 'system design', 'React hooks')",
			},
			{
				Name: "company_level", Type: TypeString, Default: "general",
				Description: "Target company level",
				Enum:        []string{"FAANG", "startup", "general"},
			},
			{Name: "count", Type: TypeInteger, Default: 5, Description: "Number of questions to generate (1-10)"},
		},
		decode: decodeInterviewQuestions,
	},
	{
		Name:        LearningResourcesTool,
		Description: "Find curated learning resources including tutorials, videos, courses, and books for a topic.",
		Params: []Param{
			{Name: "topic", Type: TypeString, Required: true, Description: "Topic to find resources for"},
			{
				Name: "resource_type", Type: TypeString, Default: "all",
				Description: "Type of resource",
				Enum:        []string{"all", "tutorial", "video", "course", "book"},
			},
		},
		decode: decodeLearningResources,
	},
}

func init() {
	for i := range catalog {
		tool := &catalog[i]
		if _, err := compileSchema(tool.Name, tool.InputSchema()); err != nil {
			panic(fmt.Sprintf("doctools: invalid input schema for %s: %v", tool.Name, err))
		}
		argTypes, err := compileSchema(tool.Name+".types", tool.typesSchema())
		if err != nil {
			panic(fmt.Sprintf("doctools: invalid argument types for %s: %v", tool.Name, err))
		}
		tool.argTypes = argTypes
	}
}

// Catalog returns the tools in their listing order.
func Catalog() []Tool {
	tools := make([]Tool, len(catalog))
	copy(tools, catalog)
	return tools
}

func Lookup(name string) (Tool, bool) {
	for _, tool := range catalog {
		if tool.Name == name {
			return tool, true
		}
	}
	return Tool{}, false
}

// InputSchema is the advertised JSON schema of the tool arguments.
func (t Tool) InputSchema() map[string]interface{} {
	props := make(map[string]interface{}, len(t.Params))
	required := make([]string, 0, len(t.Params))
	for _, p := range t.Params {
		prop := map[string]interface{}{
			"type":        p.Type,
			"description": p.Description,
		}
		if len(p.Enum) > 0 {
			prop["enum"] = p.Enum
		}
		if p.Default != nil {
			prop["default"] = p.Default
		}
		props[p.Name] = prop
		if p.Required {
			required = append(required, p.Name)
		}
	}
	return map[string]interface{}{
		"type":       "object",
		"properties": props,
		"required":   required,
	}
}

// typesSchema only checks the JSON type of the known arguments: enums are advertised, not enforced,
// and required arguments are reported by each operation.
func (t Tool) typesSchema() map[string]interface{} {
	props := make(map[string]interface{}, len(t.Params))
	for _, p := range t.Params {
		props[p.Name] = map[string]interface{}{"type": p.Type}
	}
	return map[string]interface{}{
		"type":       "object",
		"properties": props,
	}
}

func (t Tool) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Name        string                 `json:"name"`
		Description string                 `json:"description"`
		InputSchema map[string]interface{} `json:"inputSchema"`
	}{t.Name, t.Description, t.InputSchema()})
}

// RawInputSchema returns the JSON encoded InputSchema.
func (t Tool) RawInputSchema() json.RawMessage {
	data, err := json.Marshal(t.InputSchema())
	if err != nil {
		panic(err) // only plain values in schemas
	}
	return data
}

func compileSchema(name string, def map[string]interface{}) (*jsonschema.Schema, error) {
	// the compiler expects values as decoded by encoding/json
	raw, err := json.Marshal(def)
	if err != nil {
		return nil, err
	}
	var doc interface{}
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, err
	}

	url := "schema://doctools/" + name + ".json"
	c := jsonschema.NewCompiler()
	if err := c.AddResource(url, doc); err != nil {
		return nil, err
	}
	return c.Compile(url)
}
