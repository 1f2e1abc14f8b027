package main

import (
	"context"
	"fmt"
	"os"
	"syscall"

	"github.com/pkg/errors"
	"github.com/spf13/pflag"
	"golang.org/x/term"

	"github.com/voyago-app/voyago-cli/auth"
)

func (a *app) loginScreen(ctx context.Context, args []string) error {
	flags := pflag.NewFlagSet("login", pflag.ContinueOnError)
	email := flags.String("email", "", "account email")
	if err := flags.Parse(args); err != nil {
		return err
	}
	if *email == "" {
		return errors.New("login requires --email")
	}

	password, err := promptPassword("Password: ")
	if err != nil {
		return errors.Wrap(err, "promptPassword")
	}

	resp, err := a.auth.Login(ctx, auth.LoginRequest{Email: *email, Password: password})
	if err != nil {
		return errors.Wrap(err, "login failed")
	}
	fmt.Printf("Welcome back, %s. Signed in as %s.\n", resp.FullName, resp.Role)
	return nil
}

func (a *app) registerScreen(ctx context.Context, args []string) error {
	flags := pflag.NewFlagSet("register", pflag.ContinueOnError)
	fullName := flags.String("name", "", "full name")
	email := flags.String("email", "", "account email")
	if err := flags.Parse(args); err != nil {
		return err
	}
	if *fullName == "" || *email == "" {
		return errors.New("register requires --name and --email")
	}

	password, err := promptPassword("Choose a password: ")
	if err != nil {
		return errors.Wrap(err, "promptPassword")
	}

	resp, err := a.auth.Register(ctx, auth.RegisterRequest{FullName: *fullName, Email: *email, Password: password})
	if err != nil {
		return errors.Wrap(err, "registration failed")
	}
	fmt.Printf("Account created for %s. Signed in as %s.\n", resp.Email, resp.Role)
	return nil
}

func (a *app) forgotPasswordScreen(ctx context.Context, args []string) error {
	flags := pflag.NewFlagSet("forgot-password", pflag.ContinueOnError)
	email := flags.String("email", "", "account email")
	if err := flags.Parse(args); err != nil {
		return err
	}
	if *email == "" {
		return errors.New("forgot-password requires --email")
	}

	message, err := a.auth.ForgotPassword(ctx, *email)
	if err != nil {
		return errors.Wrap(err, "forgot-password failed")
	}
	fmt.Println(message)
	return nil
}

func (a *app) resetPasswordScreen(ctx context.Context, args []string) error {
	flags := pflag.NewFlagSet("reset-password", pflag.ContinueOnError)
	resetToken := flags.String("token", "", "reset token from the email")
	if err := flags.Parse(args); err != nil {
		return err
	}
	if *resetToken == "" {
		return errors.New("reset-password requires --token")
	}

	password, err := promptPassword("New password: ")
	if err != nil {
		return errors.Wrap(err, "promptPassword")
	}

	message, err := a.auth.ResetPassword(ctx, *resetToken, password)
	if err != nil {
		return errors.Wrap(err, "reset-password failed")
	}
	fmt.Println(message)
	return nil
}

func promptPassword(prompt string) (string, error) {
	fmt.Fprint(os.Stderr, prompt)
	password, err := term.ReadPassword(int(syscall.Stdin))
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return "", err
	}
	return string(password), nil
}
