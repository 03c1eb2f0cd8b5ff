package main

import (
	"log"
	"os"

	"github.com/go-playground/validator/v10"

	"github.com/rpeck07/StudentoS/core"
	"github.com/rpeck07/StudentoS/core/assignment"
	"github.com/rpeck07/StudentoS/core/user"
	"github.com/rpeck07/StudentoS/storage"
)

var logger *log.Logger

func main() {
	logger = log.New(os.Stdout, "ADMIN : ", log.LstdFlags|log.Lmicroseconds|log.Lshortfile)

	conf := core.NewConfig()
	errAndDie(conf.Validate())

	// set up storage
	backend, err := storage.Open(conf, false /* migrate */)
	errAndDie(err)

	validate := validator.New()
	translator := core.NewTranslator()
	core.InitValidators(validate, translator)
	user.InitValidators(validate, translator)

	// start CLI
	cli := commandLine{
		conf:    conf,
		backend: backend,
		usrSvc:  user.NewService(backend.Users, validate),
		asgSvc:  assignment.NewService(backend.Assignments, validate),
		out:     os.Stdout,
	}
	err = cli.run(os.Args)
	if cErr := backend.Close(); cErr != nil {
		logger.Printf("closing storage: %s", cErr)
	}
	if err != nil {
		if err != errHelp {
			logger.Printf("\nerror: %s\n", err)
		}
		os.Exit(1)
	}
}

func errAndDie(err error) {
	if err != nil {
		logger.Fatal(err)
	}
}
