package doctools

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCatalog(t *testing.T) {
	tools := Catalog()
	names := make([]string, 0, len(tools))
	for _, tool := range tools {
		names = append(names, tool.Name)
	}
	assert.Equal(t, []string{
		FetchDocsTool, SearchCodeExamplesTool, ExplainConceptTool, InterviewQuestionsTool, LearningResourcesTool,
	}, names)

	tools[0].Name = "changed"
	assert.Equal(t, FetchDocsTool, Catalog()[0].Name, "the catalog cannot be mutated through Catalog()")
}

func TestTool_InputSchema(t *testing.T) {
	tests := []struct {
		tool         string
		wantRequired []interface{}
		wantDefaults map[string]interface{}
	}{
		{tool: FetchDocsTool, wantRequired: []interface{}{"topic"}, wantDefaults: map[string]interface{}{"language": "general"}},
		{tool: SearchCodeExamplesTool, wantRequired: []interface{}{"query", "language"}, wantDefaults: map[string]interface{}{"max_results": 3.0}},
		{
			tool: ExplainConceptTool, wantRequired: []interface{}{"concept"},
			wantDefaults: map[string]interface{}{"difficulty": "intermediate", "include_code": true},
		},
		{
			tool: InterviewQuestionsTool, wantRequired: []interface{}{"topic"},
			wantDefaults: map[string]interface{}{"company_level": "general", "count": 5.0},
		},
		{tool: LearningResourcesTool, wantRequired: []interface{}{"topic"}, wantDefaults: map[string]interface{}{"resource_type": "all"}},
	}
	for _, tt := range tests {
		t.Run(tt.tool, func(t *testing.T) {
			tool, ok := Lookup(tt.tool)
			require.True(t, ok)

			var schema map[string]interface{}
			require.NoError(t, json.Unmarshal(tool.RawInputSchema(), &schema))
			assert.Equal(t, "object", schema["type"])
			assert.Equal(t, tt.wantRequired, schema["required"])

			props := schema["properties"].(map[string]interface{})
			for name, def := range tt.wantDefaults {
				assert.Equal(t, def, props[name].(map[string]interface{})["default"], name)
			}
		})
	}
}

func TestTool_MarshalJSON(t *testing.T) {
	tool, _ := Lookup(LearningResourcesTool)
	data, err := json.Marshal(tool)
	require.NoError(t, err)

	var got map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &got))
	assert.Equal(t, LearningResourcesTool, got["name"])
	assert.Equal(t, tool.Description, got["description"])

	enum := got["inputSchema"].(map[string]interface{})["properties"].(map[string]interface{})["resource_type"].(map[string]interface{})["enum"]
	assert.Equal(t, []interface{}{"all", "tutorial", "video", "course", "book"}, enum)
}

func TestLookup_unknown(t *testing.T) {
	_, ok := Lookup("foo")
	assert.False(t, ok)
}

func TestTool_checkTypes(t *testing.T) {
	tool, _ := Lookup(SearchCodeExamplesTool)
	tests := []struct {
		name    string
		args    Args
		wantErr string
	}{
		{name: "valid", args: Args{"query": "q", "language": "go", "max_results": 2}},
		{name: "json number", args: Args{"query": "q", "language": "go", "max_results": json.Number("2")}},
		{name: "enum not enforced", args: Args{"query": "q", "language": "cobol"}},
		{name: "missing args are not type errors", args: Args{}},
		{name: "null is missing", args: Args{"query": nil}},
		{name: "unknown args are ignored", args: Args{"query": "q", "extra": []interface{}{1}}},
		{name: "bad integer", args: Args{"query": "q", "max_results": "five"}, wantErr: `argument "max_results" must be integer, got string`},
		{name: "bad string", args: Args{"query": 42.0}, wantErr: `argument "query" must be string, got number`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tool.checkTypes(tt.args)
			if tt.wantErr == "" {
				assert.NoError(t, err)
			} else {
				assert.EqualError(t, err, tt.wantErr)
			}
		})
	}
}

func TestTitleWords(t *testing.T) {
	tests := map[string]string{
		"intermediate": "Intermediate",
		"ADVANCED":     "Advanced",
		"very hard":    "Very Hard",
		"level-2x":     "Level-2X",
		"":             "",
	}
	for in, want := range tests {
		if got := titleWords(in); got != want {
			t.Errorf("titleWords(%q) = %q, want %q", in, got, want)
		}
	}
}
