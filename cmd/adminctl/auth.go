package main

import (
	"bufio"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	domainauth "github.com/mocksmith/adminctl/internal/domain/auth"
	"github.com/mocksmith/adminctl/internal/token"
	"github.com/mocksmith/adminctl/internal/util"
)

type loginOptions struct {
	Name     string
	Password string
}

func parseLoginFlags(cmdName string, args []string) (loginOptions, error) {
	fs := flag.NewFlagSet(cmdName, flag.ContinueOnError)
	fs.SetOutput(os.Stderr)

	var opts loginOptions
	fs.StringVar(&opts.Name, "name", "", "Account name")
	fs.StringVar(&opts.Password, "password", "", "Password (omit to be prompted)")

	if err := fs.Parse(args); err != nil {
		return loginOptions{}, err
	}
	if opts.Name == "" {
		return loginOptions{}, errors.New("-name is required")
	}
	if opts.Password == "" {
		password, err := promptPassword(os.Stdin, os.Stderr)
		if err != nil {
			return loginOptions{}, err
		}
		opts.Password = password
	}
	return opts, nil
}

// promptPassword reads a password from the reader. Terminal echo suppression
// is deliberately not attempted; scripted use passes -password instead.
func promptPassword(r io.Reader, w io.Writer) (string, error) {
	if err := writef(w, "Password: "); err != nil {
		return "", err
	}
	scanner := bufio.NewScanner(r)
	if !scanner.Scan() {
		if err := scanner.Err(); err != nil {
			return "", fmt.Errorf("read password: %w", err)
		}
		return "", errors.New("no password provided")
	}
	return strings.TrimSpace(scanner.Text()), nil
}

func runLogin(cmdCtx *commandContext, args []string) error {
	opts, err := parseLoginFlags("login", args)
	if err != nil {
		return err
	}

	user, err := cmdCtx.App.Controller.Login(cmdCtx.Ctx, domainauth.Credentials{
		Name:     opts.Name,
		Password: opts.Password,
	})
	if err != nil {
		return err
	}

	return writef(os.Stdout, "Logged in as %s (%s)\n", user.Name, user.Role)
}

func runRegister(cmdCtx *commandContext, args []string) error {
	opts, err := parseLoginFlags("register", args)
	if err != nil {
		return err
	}

	user, err := cmdCtx.App.Controller.Register(cmdCtx.Ctx, domainauth.Registration{
		Name:     opts.Name,
		Password: opts.Password,
	})
	if err != nil {
		return err
	}

	return writef(os.Stdout, "Registered and logged in as %s\n", user.Name)
}

func runLogout(cmdCtx *commandContext, _ []string) error {
	if err := cmdCtx.App.Controller.Logout(cmdCtx.Ctx); err != nil {
		return err
	}
	return writeln(os.Stdout, "Logged out")
}

func runWhoami(cmdCtx *commandContext, args []string) error {
	fs := flag.NewFlagSet("whoami", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	var opts outputOptions
	addOutputFlags(fs, &opts)
	if err := fs.Parse(args); err != nil {
		return err
	}

	user := cmdCtx.App.Controller.User()
	if user == nil {
		return errors.New("not logged in")
	}

	return renderResult(user, opts, func(w io.Writer) error {
		tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
		if err := writef(tw, "ID\t%s\nName\t%s\nEmail\t%s\nStatus\t%s\nRole\t%s\n",
			user.ID, user.Name, user.Email, user.Status, user.Role); err != nil {
			return err
		}
		return tw.Flush()
	})
}

// sessionStatus is the status command's output shape.
type sessionStatus struct {
	Status            domainauth.Status `json:"status"`
	User              *domainauth.User  `json:"user,omitempty"`
	AccessTokenExpiry *time.Time        `json:"accessTokenExpiry,omitempty"`
	RefreshScheduled  bool              `json:"refreshScheduled"`
}

func runStatus(cmdCtx *commandContext, args []string) error {
	fs := flag.NewFlagSet("status", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	var opts outputOptions
	addOutputFlags(fs, &opts)
	if err := fs.Parse(args); err != nil {
		return err
	}

	status := sessionStatus{
		Status:           cmdCtx.App.Controller.Status(),
		User:             cmdCtx.App.Controller.User(),
		RefreshScheduled: cmdCtx.App.Scheduler.Armed(),
	}
	if access, ok := cmdCtx.App.Store.AccessToken(cmdCtx.Ctx); ok {
		claims := token.Decode(access)
		if claims.HasExpiry() {
			expiry := claims.ExpiresAt
			status.AccessTokenExpiry = &expiry
		}
	}

	return renderResult(status, opts, func(w io.Writer) error {
		tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
		if err := writef(tw, "Status\t%s\n", status.Status); err != nil {
			return err
		}
		if status.User != nil {
			if err := writef(tw, "User\t%s\n", status.User.Name); err != nil {
				return err
			}
		}
		if status.AccessTokenExpiry != nil {
			if err := writef(tw, "Token expires\t%s (%s)\n",
				status.AccessTokenExpiry.Format(time.RFC3339),
				util.FormatTTL(time.Until(*status.AccessTokenExpiry))); err != nil {
				return err
			}
		}
		if err := writef(tw, "Refresh scheduled\t%v\n", status.RefreshScheduled); err != nil {
			return err
		}
		return tw.Flush()
	})
}
