package dig_container

import (
	"fmt"
	"log"
	"os"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
	"go.uber.org/dig"

	echoapi "github.com/trezcool/orientation/apps/api/echo"
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

type (
	DBLoggerParam struct {
		dig.In
		Logger core.Logger `name:"dbLogger"`
	}

	// Closer releases the storage backend.
	Closer func() error

	repositories struct {
		dig.Out
		Profiles    profile.Repository
		TestResults assessment.Repository
		Closer      Closer
	}

	analysisRepos struct {
		dig.In
		Results  assessment.Repository
		Profiles profile.Repository
	}
)

func newLogger(conf *core.Config) core.Logger {
	stdLogger := log.New(os.Stdout, "API : ", log.LstdFlags)
	logger := logsvc.NewRollbarLogger(stdLogger, conf)
	logger.Enable(!conf.Debug && conf.RollbarToken != "")
	return logger
}

func newDBLogger(conf *core.Config) core.Logger {
	stdLogger := log.New(os.Stdout, "DB : ", log.LstdFlags|log.Lmicroseconds|log.Lshortfile)
	logger := logsvc.NewRollbarLogger(stdLogger, conf)
	logger.Enable(!conf.Debug && conf.RollbarToken != "")
	return logger
}

func openDB(conf *core.Config) (*sqlx.DB, error) {
	if err := database.CreateIfNotExist(conf); err != nil {
		return nil, err
	}
	db, err := database.Open(conf)
	if err != nil {
		return nil, err
	}
	if err = database.Migrate(db.DB); err != nil {
		return nil, err
	}
	return db, nil
}

// newRepositories provides the repositories of the configured storage backend.
func newRepositories(conf *core.Config, loggerParam DBLoggerParam) repositories {
	if conf.Storage.Backend == core.StorageMemory {
		loggerParam.Logger.Warn("using the in-memory storage: data will be lost on shutdown")
		db := inmemdb.Open()
		return repositories{
			Profiles:    inmemdb.NewProfileRepository(db),
			TestResults: inmemdb.NewTestResultRepository(db),
			Closer:      func() error { return nil },
		}
	}

	db, err := openDB(conf)
	if err != nil {
		loggerParam.Logger.Fatal(fmt.Sprintf("setting up database: %v", err), err)
	}
	return repositories{
		Profiles:    sqlxrepos.NewProfileRepository(db),
		TestResults: sqlxrepos.NewTestResultRepository(db),
		Closer:      db.Close,
	}
}

func newEmailService(conf *core.Config, logger core.Logger) core.EmailService {
	if conf.Debug || conf.SendgridApiKey == "" {
		return emailsvc.NewConsoleService(conf, logger)
	}
	return emailsvc.NewSendgridService(conf, logger)
}

func newAnalysisService(conf *core.Config, repos analysisRepos, mailSvc core.EmailService) *analysis.Service {
	return analysis.NewService(repos.Results, repos.Profiles, mailSvc, conf.Analysis.RetakeAfterMonths)
}

func newMetrics() (*echoapi.Metrics, error) {
	return echoapi.NewMetrics("", nil)
}

func newServer(
	conf *core.Config,
	logger core.Logger,
	validate *validator.Validate,
	translator ut.Translator,
	profileSvc *profile.Service,
	assessmentSvc *assessment.Service,
	analysisSvc *analysis.Service,
	metrics *echoapi.Metrics,
) *echoapi.Server {
	return echoapi.NewServer(echoapi.ServerDeps{
		Conf:          conf,
		Logger:        logger,
		Validate:      validate,
		Translator:    translator,
		ProfileSvc:    profileSvc,
		AssessmentSvc: assessmentSvc,
		AnalysisSvc:   analysisSvc,
		Metrics:       metrics,
	})
}

// New returns a new dependency injection dig.Container
func New() *dig.Container {
	c := dig.New()

	must(c.Provide(core.NewConfig))
	must(c.Provide(newLogger))
	must(c.Provide(newDBLogger, dig.Name("dbLogger")))
	must(c.Provide(newRepositories))
	must(c.Provide(newEmailService))
	must(c.Provide(validator.New))
	must(c.Provide(core.NewTranslator))
	must(c.Provide(profile.NewService))
	must(c.Provide(assessment.NewService))
	must(c.Provide(newAnalysisService))
	must(c.Provide(newMetrics))
	must(c.Provide(newServer))

	return c
}

// must exits program if err happened
func must(err error) {
	if err != nil {
		log.Fatal(errors.Wrap(err, "failed to provide dependency").Error())
	}
}
