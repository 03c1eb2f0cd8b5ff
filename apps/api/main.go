package main

import (
	"context"
	"expvar"
	"fmt"
	"log"
	"net/http"
	"os"

	"github.com/go-playground/validator/v10"

	echoapi "github.com/rpeck07/StudentoS/apps/api/echo"
	"github.com/rpeck07/StudentoS/core"
	"github.com/rpeck07/StudentoS/core/assignment"
	"github.com/rpeck07/StudentoS/core/user"
	logsvc "github.com/rpeck07/StudentoS/services/logger"
	"github.com/rpeck07/StudentoS/storage"
)

func main() {
	// =========================================================================
	// Set up Dependencies

	conf := core.NewConfig()

	logger := logsvc.NewRollbarLogger(
		log.New(os.Stdout, "API : ", log.LstdFlags|log.Lmicroseconds|log.Lshortfile),
		conf,
	)
	logger.Enable(!conf.Debug)

	if err := conf.Validate(); err != nil {
		logger.Fatal(fmt.Sprintf("invalid configuration: %v", err), err)
	}

	// set up storage
	backend, err := storage.Open(conf, true /* migrate */)
	if err != nil {
		logger.Fatal(fmt.Sprintf("setting up %s storage: %v", conf.Storage.Backend, err), err)
	}
	defer func() {
		if err = backend.Close(); err != nil {
			logger.Error(fmt.Sprintf("closing storage: %v", err), err)
		}
	}()

	// =========================================================================
	// Initialize App

	logger.Info(fmt.Sprintf("Application initializing : version %q", conf.Build))
	defer logger.Info("Application stopped")

	validate := validator.New()
	translator := core.NewTranslator()
	core.InitValidators(validate, translator)
	user.InitValidators(validate, translator)

	usrSvc := user.NewService(backend.Users, validate)
	asgSvc := assignment.NewService(backend.Assignments, validate)

	// =========================================================================
	// Start Debug Service
	//
	// /debug/vars - Added to the default mux by importing the expvar package.

	// Expose important info under /debug/vars.
	expvar.NewString("build").Set(conf.Build)
	expvar.NewString("env").Set(conf.Env)
	expvar.NewString("storage").Set(conf.Storage.Backend)

	go func() {
		if err := http.ListenAndServe(conf.Server.DebugHost, http.DefaultServeMux); err != nil {
			logger.Error(fmt.Sprintf("debug server closed: %v", err), err)
		}
	}()

	// =========================================================================
	// Start API Service

	server := echoapi.NewServer(
		echoapi.ServerDeps{
			Conf:          conf,
			Logger:        logger,
			UserSvc:       usrSvc,
			AssignmentSvc: asgSvc,
			Validate:      validate,
			Translator:    translator,
		},
	)

	go func() {
		logger.Info(fmt.Sprintf("API listening on %s", conf.Server.Address))
		server.Start()
	}()

	// =========================================================================
	// Shutdown

	select {
	case err = <-server.Errors():
		logger.Error(fmt.Sprintf("server error: %v", err), err)

	case sig := <-server.ShutdownSignal():
		logger.Info(fmt.Sprintf("%v: Start shutdown...", sig))

		// give outstanding requests a deadline for completion
		ctx, cancel := context.WithTimeout(context.Background(), conf.Server.ShutdownTimeout)
		defer cancel()

		// asking listener to shutdown and shed load
		if err = server.Shutdown(ctx); err != nil {
			logger.Error(fmt.Sprintf("could not stop server gracefully: %v", err), err)

			if err = server.Close(); err != nil {
				logger.Error(fmt.Sprintf("could not force stop server: %v", err), err)
			}
		}
	}
}
