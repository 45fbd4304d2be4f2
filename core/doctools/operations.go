package doctools

import (
	"context"
	"fmt"
	"strings"
)

const (
	referencesHeader = "\n\n---\n📎 **GitHub References:**\n"
	maxReferences    = 3
)

// operation is one of the typed tool variants below.
type operation interface {
	run(ctx context.Context, d *Dispatcher) (string, error)
}

type FetchDocs struct {
	Topic    string
	Language string
}

func decodeFetchDocs(args Args) (operation, error) {
	var op FetchDocs
	var err error
	if op.Topic, err = args.requiredString("topic"); err != nil {
		return nil, err
	}
	if op.Language, err = args.optionalString("language", "general"); err != nil {
		return nil, err
	}
	return op, nil
}

func (op FetchDocs) run(ctx context.Context, d *Dispatcher) (string, error) {
	prompt := fmt.Sprintf("Fetch documentation for '%s' in %s. Include syntax, examples, and common use cases.", op.Topic, op.Language)
	reply, err := d.complete(ctx, fetchDocsSystem, prompt)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("📚 **Documentation: %s**\n\n%s", op.Topic, reply), nil
}

type SearchCodeExamples struct {
	Query      string
	Language   string
	MaxResults int
}

func decodeSearchCodeExamples(args Args) (operation, error) {
	var op SearchCodeExamples
	var err error
	if op.Query, err = args.requiredString("query"); err != nil {
		return nil, err
	}
	if op.Language, err = args.requiredString("language"); err != nil {
		return nil, err
	}
	if op.MaxResults, err = args.optionalInt("max_results", 3); err != nil {
		return nil, err
	}
	return op, nil
}

// run searches code first; references are only appended when the search succeeded.
func (op SearchCodeExamples) run(ctx context.Context, d *Dispatcher) (string, error) {
	refs := d.searchCode(ctx, op.Query, op.Language, op.MaxResults)

	system := fmt.Sprintf(searchCodeExamplesSystem, op.Language)
	prompt := fmt.Sprintf(searchCodeExamplesUser, op.MaxResults, op.Language, op.Query)
	reply, err := d.complete(ctx, system, prompt)
	if err != nil {
		return "", err
	}

	var sources strings.Builder
	if len(refs) > 0 {
		sources.WriteString(referencesHeader)
		if len(refs) > maxReferences {
			refs = refs[:maxReferences]
		}
		for _, ref := range refs {
			repo, url := ref.Repository, ref.URL
			if repo == "" {
				repo = "Unknown"
			}
			if url == "" {
				url = "#"
			}
			fmt.Fprintf(&sources, "- [%s/%s](%s)\n", repo, ref.Path, url)
		}
	}
	return fmt.Sprintf("💻 **Code Examples: %s**\n\n%s%s", op.Query, reply, sources.String()), nil
}

type ExplainConcept struct {
	Concept     string
	Difficulty  string
	IncludeCode bool
}

func decodeExplainConcept(args Args) (operation, error) {
	var op ExplainConcept
	var err error
	if op.Concept, err = args.requiredString("concept"); err != nil {
		return nil, err
	}
	if op.Difficulty, err = args.optionalString("difficulty", "intermediate"); err != nil {
		return nil, err
	}
	if op.IncludeCode, err = args.optionalBool("include_code", true); err != nil {
		return nil, err
	}
	return op, nil
}

func (op ExplainConcept) run(ctx context.Context, d *Dispatcher) (string, error) {
	system := fmt.Sprintf(explainConceptSystem, contextFor(difficultyContext, op.Difficulty, "intermediate"))
	prompt := fmt.Sprintf("Explain '%s' for a %s level learner. %s", op.Concept, op.Difficulty, codeInstruction(op.IncludeCode))
	reply, err := d.complete(ctx, system, prompt)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("🧠 **Concept Explanation: %s** (Level: %s)\n\n%s", op.Concept, titleWords(op.Difficulty), reply), nil
}

type InterviewQuestions struct {
	Topic        string
	CompanyLevel string
	Count        int
}

func decodeInterviewQuestions(args Args) (operation, error) {
	var op InterviewQuestions
	var err error
	if op.Topic, err = args.requiredString("topic"); err != nil {
		return nil, err
	}
	if op.CompanyLevel, err = args.optionalString("company_level", "general"); err != nil {
		return nil, err
	}
	if op.Count, err = args.optionalInt("count", 5); err != nil {
		return nil, err
	}
	return op, nil
}

func (op InterviewQuestions) run(ctx context.Context, d *Dispatcher) (string, error) {
	system := fmt.Sprintf(interviewQuestionsSystem, op.CompanyLevel)
	prompt := fmt.Sprintf(interviewQuestionsUser, op.Count, op.Topic, op.CompanyLevel, contextFor(levelContext, op.CompanyLevel, "general"))
	reply, err := d.complete(ctx, system, prompt)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("🎯 **Interview Questions: %s** (%s Level)\n\n%s", op.Topic, strings.ToUpper(op.CompanyLevel), reply), nil
}

type LearningResources struct {
	Topic        string
	ResourceType string
}

func decodeLearningResources(args Args) (operation, error) {
	var op LearningResources
	var err error
	if op.Topic, err = args.requiredString("topic"); err != nil {
		return nil, err
	}
	if op.ResourceType, err = args.optionalString("resource_type", "all"); err != nil {
		return nil, err
	}
	return op, nil
}

func (op LearningResources) run(ctx context.Context, d *Dispatcher) (string, error) {
	prompt := fmt.Sprintf("Recommend the best learning resources for '%s'. %s Include free and paid options.", op.Topic, typeFilter(op.ResourceType))
	reply, err := d.complete(ctx, learningResourcesSystem, prompt)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("📖 **Learning Resources: %s**\n\n%s", op.Topic, reply), nil
}
