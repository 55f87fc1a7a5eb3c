// Command accountcli is a smoke client for the user-account API: it
// resolves the stored session, optionally logs in or out, and prints the
// profile and login history the way the dashboard shell would.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"runtime/debug"

	"github.com/common-nighthawk/go-figure"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"

	"github.com/jrsteele09/go-account-client/account"
	"github.com/jrsteele09/go-account-client/api"
	"github.com/jrsteele09/go-account-client/credential"
	"github.com/jrsteele09/go-account-client/forms"
	"github.com/jrsteele09/go-account-client/internal/config"
	"github.com/jrsteele09/go-account-client/routes"
	"github.com/jrsteele09/go-account-client/session"
	"github.com/jrsteele09/go-account-client/workflow"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}
}

func run() (returnError error) {
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "Recovered from panic: %v\n", r)
			debug.PrintStack()
			returnError = errors.New("panic recovered")
		}
	}()

	email := flag.String("email", "", "login email")
	password := flag.String("password", "", "login password")
	captcha := flag.String("captcha", "", "solved captcha challenge token")
	path := flag.String("path", routes.PathDashboard, "path to evaluate against the redirect policy")
	doLogout := flag.Bool("logout", false, "log out and clear the stored credential")
	verbose := flag.Bool("v", false, "debug logging")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	displayAppname(cfg.SiteName)

	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()
	if !*verbose {
		logger = logger.Level(zerolog.InfoLevel)
	}

	store, err := credential.NewFileStore(cfg.DataDir)
	if err != nil {
		return err
	}
	client, err := api.NewClient(cfg.APIBaseURL, api.WithLogger(logger))
	if err != nil {
		return err
	}
	resolver, err := session.NewResolver(client, store, session.WithResolverLogger(logger))
	if err != nil {
		return err
	}
	defer resolver.Close()

	svc, err := account.NewService(client, store, resolver, account.WithServiceLogger(logger))
	if err != nil {
		return err
	}

	ctx := context.Background()

	if *doLogout {
		return logout(ctx, svc, logger)
	}

	if *email != "" {
		if err := login(ctx, svc, logger, *email, *password, *captcha); err != nil {
			return err
		}
	}

	sess := waitForSession(resolver)
	logger.Info().Stringer("status", sess.Status).Msg("session resolved")

	if target, redirect := routes.Decide(*path, sess.Status); redirect {
		logger.Info().Str("path", *path).Str("target", target).Msg("redirect")
	}

	if sess.Status != session.StatusAuthenticated {
		return nil
	}

	fmt.Printf("\nProfile\n  name:  %s\n  email: %s\n", sess.Profile.Name, sess.Profile.Email)
	return printLoginHistory(ctx, client, store)
}

func login(ctx context.Context, svc *account.Service, logger zerolog.Logger, email, password, captcha string) error {
	values := map[string]string{
		forms.FieldEmail:    email,
		forms.FieldPassword: password,
		forms.FieldCaptcha:  captcha,
	}
	if violations := forms.LoginSchema().Validate(values); len(violations) > 0 {
		for _, v := range violations {
			logger.Error().Str("field", v.Field).Msg(v.Message)
		}
		return errors.New("login form is not valid")
	}

	var failed bool
	runner := svc.Login(workflow.Hooks[*api.LoginResponse]{
		OnSuccess: func(resp *api.LoginResponse) {
			logger.Info().Msg(resp.Message)
		},
		OnError: func(f workflow.Failure) {
			failed = true
			logger.Error().Msg(f.Message)
		},
	})
	runner.Run(ctx, account.LoginInput{Email: email, Password: password, CaptchaToken: captcha})
	if failed {
		return errors.New("login failed")
	}
	return nil
}

func logout(ctx context.Context, svc *account.Service, logger zerolog.Logger) error {
	var failed bool
	runner := svc.Logout(workflow.Hooks[*api.MessageResponse]{
		OnSuccess: func(resp *api.MessageResponse) {
			logger.Info().Msg(resp.Message)
		},
		OnError: func(f workflow.Failure) {
			failed = true
			logger.Error().Msg(f.Message)
		},
	})
	runner.Run(ctx, struct{}{})
	if failed {
		return errors.New("logout failed")
	}
	return nil
}

// waitForSession blocks until the resolver leaves the pending state.
func waitForSession(r *session.Resolver) session.Session {
	ch := make(chan session.Session, 1)
	unsubscribe := r.Subscribe(func(s session.Session) {
		if s.Status != session.StatusPending {
			select {
			case ch <- s:
			default:
			}
		}
	})
	defer unsubscribe()
	return <-ch
}

func printLoginHistory(ctx context.Context, client *api.Client, store credential.Store) error {
	tok, err := credential.TokenSource(store).Token()
	if err != nil {
		return err
	}
	history, err := client.LoginHistory(ctx, tok.AccessToken)
	if err != nil {
		return err
	}
	fmt.Printf("\nLogin history (%d records)\n", len(history.Data))
	for _, rec := range history.Data {
		fmt.Printf("  %-20s %-16s %-12s %s\n", rec.Timestamp, rec.IP, rec.Platform, rec.Browser)
	}
	return nil
}

func displayAppname(appname string) {
	myFigure := figure.NewFigure(appname, "cybermedium", true)
	myFigure.Print()
	fmt.Println()
}
