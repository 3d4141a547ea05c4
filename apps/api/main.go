package main

import (
	"context"
	"expvar"
	"fmt"
	"log"
	"math/rand"
	"net/http"
	_ "net/http/pprof" // registers the /debug/pprof handlers
	"time"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	dig_container "github.com/trezcool/orientation/apps/api/di/dig"
	echoapi "github.com/trezcool/orientation/apps/api/echo"
	"github.com/trezcool/orientation/core"
	"github.com/trezcool/orientation/core/assessment"
	"github.com/trezcool/orientation/core/profile"
)

func main() {
	rand.Seed(time.Now().UnixNano())

	c := dig_container.New()

	must(c.Invoke(func(
		conf *core.Config,
		apiLogger core.Logger,
		closer dig_container.Closer,
		validate *validator.Validate,
		translator ut.Translator,
		server *echoapi.Server,
	) {
		apiLogger.Info(fmt.Sprintf("Application initializing : version %q, storage %q", conf.Build, conf.Storage.Backend))

		core.InitValidators(validate, translator)
		profile.InitValidators(validate, translator)
		assessment.InitValidators(validate, translator)

		core.ParseEmailTemplates(apiLogger)

		defer func() {
			if err := closer(); err != nil {
				apiLogger.Error(fmt.Sprintf("closing storage: %v", err), err)
			}
		}()
		defer apiLogger.Info("Application stopped")

		go serveDebug(conf, apiLogger)
		go server.Start()
		waitForShutdown(server, conf, apiLogger)
	}))
}

// serveDebug exposes /debug/pprof, /debug/vars (build & env) and the Prometheus /metrics on the debug host.
func serveDebug(conf *core.Config, logger core.Logger) {
	expvar.NewString("build").Set(conf.Build)
	expvar.NewString("env").Set(conf.Env)
	http.Handle("/metrics", promhttp.Handler())

	if err := http.ListenAndServe(conf.Server.DebugHost, http.DefaultServeMux); err != nil {
		logger.Error(fmt.Sprintf("debug server closed: %v", err), err)
	}
}

// waitForShutdown blocks until the server fails or a shutdown signal is received,
// then drains outstanding requests within the configured timeout.
func waitForShutdown(server *echoapi.Server, conf *core.Config, logger core.Logger) {
	select {
	case err := <-server.Errors():
		logger.Fatal(fmt.Sprintf("server error: %v", err), err)

	case sig := <-server.ShutdownSignal():
		logger.Info(fmt.Sprintf("%v: shutting down", sig))

		ctx, cancel := context.WithTimeout(context.Background(), conf.Server.ShutdownTimeout)
		defer cancel()

		err := server.Shutdown(ctx)
		if err == nil {
			return
		}
		logger.Error(fmt.Sprintf("graceful shutdown failed: %v", err), err)
		if err = server.Close(); err != nil {
			logger.Fatal(fmt.Sprintf("forcing shutdown: %v", err), err)
		}
	}
}

func must(err error) {
	if err != nil {
		log.Fatal(err)
	}
}
