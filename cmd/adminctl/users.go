package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	domainauth "github.com/mocksmith/adminctl/internal/domain/auth"
	"github.com/mocksmith/adminctl/internal/domain/model"
)

func runUsers(cmdCtx *commandContext, args []string) error {
	if len(args) == 0 {
		return errors.New("usage: adminctl users <list|get|create|update|delete> [flags]")
	}

	switch args[0] {
	case "list":
		return runUsersList(cmdCtx, args[1:])
	case "get":
		return runUsersGet(cmdCtx, args[1:])
	case "create":
		return runUsersCreate(cmdCtx, args[1:])
	case "update":
		return runUsersUpdate(cmdCtx, args[1:])
	case "delete":
		return runUsersDelete(cmdCtx, args[1:])
	default:
		return fmt.Errorf("unknown users subcommand %q", args[0])
	}
}

func runUsersList(cmdCtx *commandContext, args []string) error {
	fs := flag.NewFlagSet("users list", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	var opts outputOptions
	addOutputFlags(fs, &opts)
	if err := fs.Parse(args); err != nil {
		return err
	}

	users, err := cmdCtx.App.Client.ListUsers(cmdCtx.Ctx)
	if err != nil {
		return err
	}

	return renderResult(users, opts, func(w io.Writer) error {
		return renderUserTable(w, users)
	})
}

func renderUserTable(w io.Writer, users []domainauth.User) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	if err := writef(tw, "ID\tNAME\tEMAIL\tSTATUS\tROLE\n"); err != nil {
		return err
	}
	for _, u := range users {
		if err := writef(tw, "%s\t%s\t%s\t%s\t%s\n", u.ID, u.Name, u.Email, u.Status, u.Role); err != nil {
			return err
		}
	}
	return tw.Flush()
}

func runUsersGet(cmdCtx *commandContext, args []string) error {
	fs := flag.NewFlagSet("users get", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	var opts outputOptions
	addOutputFlags(fs, &opts)
	id := fs.String("id", "", "User ID (required)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *id == "" {
		return errors.New("-id is required")
	}

	user, err := cmdCtx.App.Client.GetUser(cmdCtx.Ctx, *id)
	if err != nil {
		return err
	}
	return renderResult(user, opts, nil)
}

func runUsersCreate(cmdCtx *commandContext, args []string) error {
	fs := flag.NewFlagSet("users create", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	var opts outputOptions
	addOutputFlags(fs, &opts)

	var req model.CreateUserRequest
	var status, role string
	fs.StringVar(&req.Name, "name", "", "Account name, 3 to 50 characters (required)")
	fs.StringVar(&req.Password, "password", "", "Password, 6 to 100 characters (required)")
	fs.StringVar(&req.Email, "email", "", "Email address")
	fs.StringVar(&status, "status", "", "Account status: enabled or blocked (default enabled)")
	fs.StringVar(&role, "role", "", "Account role: admin or user (default user)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	req.Status = domainauth.UserStatus(status)
	req.Role = domainauth.Role(role)

	user, err := cmdCtx.App.Client.CreateUser(cmdCtx.Ctx, req)
	if err != nil {
		return err
	}
	return renderResult(user, opts, nil)
}

func runUsersUpdate(cmdCtx *commandContext, args []string) error {
	fs := flag.NewFlagSet("users update", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	var opts outputOptions
	addOutputFlags(fs, &opts)

	id := fs.String("id", "", "User ID (required)")
	name := fs.String("name", "", "New account name")
	password := fs.String("password", "", "New password (blank keeps the old one)")
	email := fs.String("email", "", "New email address")
	status := fs.String("status", "", "New account status: enabled or blocked")
	role := fs.String("role", "", "New account role: admin or user")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *id == "" {
		return errors.New("-id is required")
	}

	var req model.UpdateUserRequest
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "name":
			req.Name = name
		case "password":
			req.Password = password
		case "email":
			req.Email = email
		case "status":
			s := domainauth.UserStatus(*status)
			req.Status = &s
		case "role":
			r := domainauth.Role(*role)
			req.Role = &r
		}
	})

	user, err := cmdCtx.App.Client.UpdateUser(cmdCtx.Ctx, *id, req)
	if err != nil {
		return err
	}
	return renderResult(user, opts, nil)
}

func runUsersDelete(cmdCtx *commandContext, args []string) error {
	fs := flag.NewFlagSet("users delete", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	id := fs.String("id", "", "User ID (required)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *id == "" {
		return errors.New("-id is required")
	}

	if err := cmdCtx.App.Client.DeleteUser(cmdCtx.Ctx, *id); err != nil {
		return err
	}
	return writef(os.Stdout, "Deleted user %s\n", *id)
}
