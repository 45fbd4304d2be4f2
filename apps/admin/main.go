package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"

	"github.com/trezcool/codedaily/core"
	"github.com/trezcool/codedaily/core/course"
	"github.com/trezcool/codedaily/core/quiz"
	"github.com/trezcool/codedaily/core/user"
	logsvc "github.com/trezcool/codedaily/services/logger"
	"github.com/trezcool/codedaily/storage/database"
	sqlxrepos "github.com/trezcool/codedaily/storage/database/sqlx"
)

func main() {
	conf := core.NewConfig()
	logger := logsvc.NewRollbarLogger(log.New(os.Stdout, "ADMIN : ", log.LstdFlags|log.Lmicroseconds|log.Lshortfile), conf)
	defer logger.Close()

	if conf.Database.Engine != database.Postgres && conf.Database.Engine != database.SQLite {
		logger.Fatal(fmt.Sprintf("admin commands need a persistent database, got engine %q", conf.Database.Engine))
	}

	// set up DB
	if err := database.CreateIfNotExist(conf); err != nil {
		logger.Fatal(fmt.Sprintf("creating database: %v", err), err)
	}
	db, err := database.Open(conf)
	if err != nil {
		logger.Fatal(fmt.Sprintf("opening database: %v", err), err)
	}

	// set up validators
	_en := en.New()
	translator, _ := ut.New(_en, _en).GetTranslator("en")
	validate := validator.New()
	core.InitValidators(validate, translator)
	user.InitValidators(validate, translator)
	user.LoadCommonPasswords(logger)

	// start CLI
	courseSvc := course.NewService(sqlxrepos.NewCourseRepository(db))
	cli := commandLine{
		db:        db.DB,
		engine:    conf.Database.Engine,
		logger:    logger,
		validate:  validate,
		usrSvc:    user.NewService(sqlxrepos.NewUserRepository(db)),
		courseSvc: courseSvc,
		quizSvc:   quiz.NewService(sqlxrepos.NewQuizRepository(db), courseSvc),
	}
	err = cli.run(context.Background(), os.Args[1:])
	_ = db.Close()
	if err != nil {
		if err != errHelp {
			logger.Error(fmt.Sprintf("error: %v", err), err)
		}
		logger.Close()
		os.Exit(1)
	}
}
