package dig_container

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
	"go.uber.org/dig"

	echoapi "github.com/trezcool/codedaily/apps/api/echo"
	"github.com/trezcool/codedaily/core"
	"github.com/trezcool/codedaily/core/course"
	"github.com/trezcool/codedaily/core/progress"
	"github.com/trezcool/codedaily/core/quiz"
	"github.com/trezcool/codedaily/core/tutor"
	"github.com/trezcool/codedaily/core/user"
	"github.com/trezcool/codedaily/services/llm"
	logsvc "github.com/trezcool/codedaily/services/logger"
	"github.com/trezcool/codedaily/storage/database"
	dummydb "github.com/trezcool/codedaily/storage/database/dummy"
	sqlxrepos "github.com/trezcool/codedaily/storage/database/sqlx"
)

// MemoryEngine keeps every table in process memory, nothing survives a restart.
const MemoryEngine = "memory"

type DBLoggerParam struct {
	dig.In
	Logger core.Logger `name:"dbLogger"`
}

// DBParam is empty when running on the memory engine.
type DBParam struct {
	dig.In
	DB *sqlx.DB `optional:"true"`
}

func newLogger(conf *core.Config) core.Logger {
	stdLogger := log.New(os.Stdout, "API : ", log.LstdFlags|log.Lmicroseconds|log.Lshortfile)
	return logsvc.NewRollbarLogger(stdLogger, conf)
}

func newDBLogger(conf *core.Config) core.Logger {
	stdLogger := log.New(os.Stdout, "DB : ", log.LstdFlags|log.Lmicroseconds|log.Lshortfile)
	return logsvc.NewRollbarLogger(stdLogger, conf)
}

func newDB(conf *core.Config, loggerParam DBLoggerParam) *sqlx.DB {
	setUp := func() (*sqlx.DB, error) {
		if err := database.CreateIfNotExist(conf); err != nil {
			return nil, err
		}

		db, err := database.Open(conf)
		if err != nil {
			return nil, err
		}

		if err = database.Migrate(context.Background(), db.DB, conf.Database.Engine); err != nil {
			_ = db.Close()
			return nil, err
		}
		return db, nil
	}

	db, err := setUp()
	if err != nil {
		loggerParam.Logger.Fatal(fmt.Sprintf("setting up database: %v", err), err)
	}
	return db
}

func newTranslator() ut.Translator {
	_en := en.New()
	uni := ut.New(_en, _en)
	translator, _ := uni.GetTranslator("en")
	return translator
}

func newCompleter(conf *core.Config, logger core.Logger) core.Completer {
	provider, err := llm.NewProvider(context.Background(), conf.LLM)
	if err != nil {
		logger.Fatal(fmt.Sprintf("setting up LLM provider: %v", err), err)
	}
	return llm.NewCompleter(provider, conf.LLM)
}

// New returns a new dependency injection dig.Container
func New() *dig.Container {
	c := dig.New()
	conf := core.NewConfig()

	must(c.Provide(func() *core.Config { return conf }))
	must(c.Provide(newLogger))
	must(c.Provide(newDBLogger, dig.Name("dbLogger")))

	// storage
	if conf.Database.Engine == MemoryEngine {
		must(c.Provide(dummydb.Open))
		must(c.Provide(dummydb.NewUserRepository))
		must(c.Provide(dummydb.NewCourseRepository))
		must(c.Provide(dummydb.NewQuizRepository))
		must(c.Provide(dummydb.NewProgressRepository))
	} else {
		must(c.Provide(newDB))
		must(c.Provide(sqlxrepos.NewUserRepository, dig.As(new(user.Repository))))
		must(c.Provide(sqlxrepos.NewCourseRepository, dig.As(new(course.Repository))))
		must(c.Provide(sqlxrepos.NewQuizRepository, dig.As(new(quiz.Repository))))
		must(c.Provide(sqlxrepos.NewProgressRepository, dig.As(new(progress.Repository))))
	}

	must(c.Provide(validator.New))
	must(c.Provide(newTranslator))
	must(c.Provide(newCompleter))

	// services
	must(c.Provide(user.NewService))
	must(c.Provide(course.NewService))
	must(c.Provide(func(svc *course.Service) quiz.LessonGetter { return svc }))
	must(c.Provide(func(svc *course.Service) progress.CourseGetter { return svc }))
	must(c.Provide(quiz.NewService))
	must(c.Provide(progress.NewService))
	must(c.Provide(tutor.NewService))

	must(c.Provide(func(
		conf *core.Config,
		logger core.Logger,
		validate *validator.Validate,
		translator ut.Translator,
		usrSvc *user.Service,
		courseSvc *course.Service,
		quizSvc *quiz.Service,
		progressSvc *progress.Service,
		tutorSvc *tutor.Service,
	) *echoapi.Server {
		return echoapi.NewServer(echoapi.ServerDeps{
			Conf:        conf,
			Logger:      logger,
			Validate:    validate,
			Translator:  translator,
			UserSvc:     usrSvc,
			CourseSvc:   courseSvc,
			QuizSvc:     quizSvc,
			ProgressSvc: progressSvc,
			TutorSvc:    tutorSvc,
		})
	}))

	return c
}

// must exits program if err happened
func must(err error) {
	if err != nil {
		log.Fatal(errors.Wrap(err, "failed to provide dependency").Error())
	}
}
