package main

import (
	"fmt"
	"os"
	"runtime/debug"

	"github.com/common-nighthawk/go-figure"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/voyago-app/voyago-cli/internal/config"
	clierrors "github.com/voyago-app/voyago-cli/internal/errors"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		log.Error().Msg(err.Error())
		if clierrors.IsAuthFailure(err) {
			fmt.Fprintln(os.Stderr, "Your session may have ended. Sign in again with: voyago login --email <email>")
		}
		os.Exit(1)
	}
}

func run(args []string) (returnError error) {
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "Recovered from panic: %v\n", r)
			debug.PrintStack()
			returnError = errors.New("panic recovered")
		}
	}()

	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	c := config.New()
	if len(args) == 0 || args[0] == "help" {
		displayAppname(c.GetAppName())
		printUsage()
		return nil
	}

	app, err := newApp(c)
	if err != nil {
		return errors.Wrap(err, "newApp")
	}
	return app.dispatch(args)
}

func displayAppname(appname string) {
	myFigure := figure.NewFigure(appname, "cybermedium", true)
	myFigure.Print()
	fmt.Println()
}

func printUsage() {
	fmt.Print(`Usage: voyago <command> [flags]

Account:
  login               Sign in (prompts for password)
  register            Create an account
  logout              Sign out everywhere this machine is concerned
  whoami              Show the cached session summary
  forgot-password     Request password reset instructions
  reset-password      Set a new password with a reset token

Client:
  flights             Browse available flights
  hotels              Browse available hotels
  reservations        List my reservations (--csv FILE to export)
  reserve-flight      Book seats on a flight
  reserve-hotel       Book rooms in a hotel
  cancel              Cancel one of my reservations
  pay                 Pay a pending reservation

Admin:
  admin reservations  All reservations (--csv FILE to export)
  admin flights       Manage the flight catalog
  admin hotels        Manage the hotel catalog
  admin users         Manage accounts
  admin stats         Reservation statistics for a date range
`)
}
