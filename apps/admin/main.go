package main

import (
	"database/sql"
	"log"
	"os"

	"github.com/go-playground/validator/v10"

	"github.com/trezcool/orientation/core"
	"github.com/trezcool/orientation/core/analysis"
	"github.com/trezcool/orientation/core/assessment"
	"github.com/trezcool/orientation/core/profile"
	emailsvc "github.com/trezcool/orientation/services/email"
	logsvc "github.com/trezcool/orientation/services/logger"
	"github.com/trezcool/orientation/storage/database"
	inmemdb "github.com/trezcool/orientation/storage/database/inmem"
	sqlxrepos "github.com/trezcool/orientation/storage/database/sqlx"
)

var logger core.Logger

func main() {
	conf := core.Conf
	logger = logsvc.NewRollbarLogger(log.New(os.Stdout, "ADMIN : ", log.LstdFlags|log.Lmicroseconds|log.Lshortfile), conf)

	var (
		db       *sql.DB
		profiles profile.Repository
		results  assessment.Repository
	)
	if conf.Storage.Backend == core.StorageMemory {
		memDB := inmemdb.Open()
		profiles = inmemdb.NewProfileRepository(memDB)
		results = inmemdb.NewTestResultRepository(memDB)
	} else {
		xdb, err := database.Open(conf)
		errAndDie(err)
		defer xdb.Close()
		errAndDie(database.Ping(xdb.DB, 5))
		db = xdb.DB
		profiles = sqlxrepos.NewProfileRepository(xdb)
		results = sqlxrepos.NewTestResultRepository(xdb)
	}

	validate := validator.New()
	translator := core.NewTranslator()
	core.InitValidators(validate, translator)
	profile.InitValidators(validate, translator)

	// start CLI
	cli := commandLine{
		db:          db,
		profileSvc:  profile.NewService(profiles),
		analysisSvc: analysis.NewService(results, profiles, emailsvc.NewConsoleService(conf, logger), conf.Analysis.RetakeAfterMonths),
		validate:    validate,
		translator:  translator,
		out:         os.Stdout,
	}
	if err := cli.run(os.Args); err != nil {
		if err != errHelp {
			logger.Info("error: " + err.Error())
		}
		if db != nil {
			_ = db.Close()
		}
		os.Exit(1)
	}
}

func errAndDie(err error) {
	if err != nil {
		logger.Fatal(err.Error(), err)
	}
}
