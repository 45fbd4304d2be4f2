package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/trezcool/codedaily/core"
	"github.com/trezcool/codedaily/core/course"
	"github.com/trezcool/codedaily/core/quiz"
)

// seed file layout: {"subjects": [{..., "topics": [{..., "lessons": [{..., "examples": [...], "quiz": {...}}]}]}]}
type (
	seedFile struct {
		Subjects []seedSubject `json:"subjects"`
	}

	seedSubject struct {
		course.NewSubject
		Topics []seedTopic `json:"topics"`
	}

	seedTopic struct {
		course.NewTopic
		Lessons []seedLesson `json:"lessons"`
	}

	seedLesson struct {
		course.NewLesson
		Quiz *quiz.NewQuiz `json:"quiz"`
	}
)

type seedStats struct {
	subjects, skipped, topics, lessons, quizzes int
}

func (cli *commandLine) seedCmd() *cobra.Command {
	var file string
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Load subjects, topics, lessons and quizzes from a JSON file",
		RunE: func(cmd *cobra.Command, args []string) error {
			if file == "" {
				_ = cmd.Usage()
				return errHelp
			}
			f, err := os.Open(file)
			if err != nil {
				return err
			}
			//goland:noinspection GoUnhandledErrorResult
			defer f.Close()

			stats, err := cli.seed(cmd.Context(), f)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "subjects: %d (skipped %d), topics: %d, lessons: %d, quizzes: %d\n",
				stats.subjects, stats.skipped, stats.topics, stats.lessons, stats.quizzes)
			return nil
		},
	}
	cmd.Flags().StringVar(&file, "file", "", "Path to the JSON course tree")
	return cmd
}

// seed creates the course tree read from `r`. Subjects whose slug already exists are skipped with all their content.
func (cli *commandLine) seed(ctx context.Context, r io.Reader) (seedStats, error) {
	var stats seedStats
	var data seedFile
	if err := json.NewDecoder(r).Decode(&data); err != nil {
		return stats, errors.Wrap(err, "decoding seed file")
	}

	for _, ss := range data.Subjects {
		if err := ss.NewSubject.Validate(ctx, cli.validate, cli.courseSvc); err != nil {
			if isSlugTaken(err) {
				cli.logger.Info(fmt.Sprintf("subject %q exists, skipping", ss.Slug))
				stats.skipped++
				continue
			}
			return stats, errors.Wrapf(err, "subject %q", ss.Slug)
		}
		subj, err := cli.courseSvc.CreateSubject(ctx, ss.NewSubject)
		if err != nil {
			return stats, errors.Wrapf(err, "creating subject %q", ss.Slug)
		}
		stats.subjects++

		for _, st := range ss.Topics {
			st.SubjectID = subj.ID
			if err = st.NewTopic.Validate(cli.validate); err != nil {
				return stats, errors.Wrapf(err, "topic %q", st.Title)
			}
			topic, err := cli.courseSvc.CreateTopic(ctx, st.NewTopic)
			if err != nil {
				return stats, errors.Wrapf(err, "creating topic %q", st.Title)
			}
			stats.topics++

			for _, sl := range st.Lessons {
				sl.TopicID = topic.ID
				if err = sl.NewLesson.Validate(cli.validate); err != nil {
					return stats, errors.Wrapf(err, "lesson %q", sl.Title)
				}
				lesson, err := cli.courseSvc.CreateLesson(ctx, sl.NewLesson)
				if err != nil {
					return stats, errors.Wrapf(err, "creating lesson %q", sl.Title)
				}
				stats.lessons++

				if sl.Quiz == nil {
					continue
				}
				nq := *sl.Quiz
				nq.LessonID = lesson.ID
				if err = nq.Validate(ctx, cli.validate, cli.quizSvc); err != nil {
					return stats, errors.Wrapf(err, "quiz of lesson %q", sl.Title)
				}
				if _, err = cli.quizSvc.Create(ctx, nq); err != nil {
					return stats, errors.Wrapf(err, "creating quiz of lesson %q", sl.Title)
				}
				stats.quizzes++
			}
		}
	}
	return stats, nil
}

func isSlugTaken(err error) bool {
	vErr, ok := errors.Cause(err).(*core.ValidationError)
	return ok && vErr.Err == course.ErrSlugExists
}
