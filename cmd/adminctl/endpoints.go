package main

import (
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/mocksmith/adminctl/internal/domain/model"
)

func runEndpoints(cmdCtx *commandContext, args []string) error {
	if len(args) == 0 {
		return errors.New("usage: adminctl endpoints <list|get|create|update|delete|stats> [flags]")
	}

	switch args[0] {
	case "list":
		return runEndpointsList(cmdCtx, args[1:])
	case "get":
		return runEndpointsGet(cmdCtx, args[1:])
	case "create":
		return runEndpointsCreate(cmdCtx, args[1:])
	case "update":
		return runEndpointsUpdate(cmdCtx, args[1:])
	case "delete":
		return runEndpointsDelete(cmdCtx, args[1:])
	case "stats":
		return runEndpointsStats(cmdCtx, args[1:])
	default:
		return fmt.Errorf("unknown endpoints subcommand %q", args[0])
	}
}

func runEndpointsList(cmdCtx *commandContext, args []string) error {
	fs := flag.NewFlagSet("endpoints list", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	var opts outputOptions
	addOutputFlags(fs, &opts)
	if err := fs.Parse(args); err != nil {
		return err
	}

	endpoints, err := cmdCtx.App.Client.ListMockEndpoints(cmdCtx.Ctx)
	if err != nil {
		return err
	}

	return renderResult(endpoints, opts, func(w io.Writer) error {
		return renderMockEndpointTable(w, endpoints)
	})
}

func renderMockEndpointTable(w io.Writer, endpoints []model.MockEndpoint) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	if err := writef(tw, "ID\tNAME\tPATH\tSTATUS\tTYPE\tENABLED\tDELAY\n"); err != nil {
		return err
	}
	for _, e := range endpoints {
		if err := writef(tw, "%s\t%s\t%s\t%d\t%s\t%v\t%dms\n",
			e.ID, e.Name, e.Path, e.StatusCode, e.ContentType, e.Enabled, e.DelayMs); err != nil {
			return err
		}
	}
	return tw.Flush()
}

func runEndpointsGet(cmdCtx *commandContext, args []string) error {
	fs := flag.NewFlagSet("endpoints get", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	var opts outputOptions
	addOutputFlags(fs, &opts)
	id := fs.String("id", "", "Endpoint ID (required)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *id == "" {
		return errors.New("-id is required")
	}

	endpoint, err := cmdCtx.App.Client.GetMockEndpoint(cmdCtx.Ctx, *id)
	if err != nil {
		return err
	}
	return renderResult(endpoint, opts, nil)
}

func runEndpointsCreate(cmdCtx *commandContext, args []string) error {
	fs := flag.NewFlagSet("endpoints create", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	var opts outputOptions
	addOutputFlags(fs, &opts)

	var req model.CreateMockEndpointRequest
	var contentType, response, responseFile, groupID string
	var statusCode, delayMs int
	var disabled bool
	fs.StringVar(&req.Name, "name", "", "Endpoint name (required)")
	fs.StringVar(&req.Path, "path", "", "Endpoint path, must start with / (required)")
	fs.StringVar(&response, "response", "", "Response body")
	fs.StringVar(&responseFile, "response-file", "", "Read the response body from a file ('-' for stdin)")
	fs.StringVar(&contentType, "content-type", "", "Response content type (default application/json)")
	fs.StringVar(&groupID, "group", "", "Group ID")
	fs.IntVar(&statusCode, "status", 200, "Response status code")
	fs.IntVar(&delayMs, "delay", 0, "Artificial response delay in milliseconds")
	fs.BoolVar(&disabled, "disabled", false, "Create the endpoint disabled")
	if err := fs.Parse(args); err != nil {
		return err
	}

	body, err := resolveResponseBody(response, responseFile)
	if err != nil {
		return err
	}
	req.ResponseData = body
	req.ContentType = model.ContentType(contentType)
	req.StatusCode = &statusCode
	req.DelayMs = &delayMs
	if groupID != "" {
		req.GroupID = &groupID
	}
	enabled := !disabled
	req.Enabled = &enabled

	endpoint, err := cmdCtx.App.Client.CreateMockEndpoint(cmdCtx.Ctx, req)
	if err != nil {
		return err
	}
	return renderResult(endpoint, opts, nil)
}

func runEndpointsUpdate(cmdCtx *commandContext, args []string) error {
	fs := flag.NewFlagSet("endpoints update", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	var opts outputOptions
	addOutputFlags(fs, &opts)

	id := fs.String("id", "", "Endpoint ID (required)")
	name := fs.String("name", "", "New endpoint name")
	path := fs.String("path", "", "New endpoint path")
	response := fs.String("response", "", "New response body")
	responseFile := fs.String("response-file", "", "Read the new response body from a file ('-' for stdin)")
	contentType := fs.String("content-type", "", "New response content type")
	groupID := fs.String("group", "", "New group ID")
	statusCode := fs.Int("status", 0, "New response status code")
	delayMs := fs.Int("delay", 0, "New response delay in milliseconds")
	enabled := fs.Bool("enabled", false, "Enable or disable the endpoint")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *id == "" {
		return errors.New("-id is required")
	}

	// Only flags the caller actually set go into the request; everything else
	// stays untouched server-side.
	var req model.UpdateMockEndpointRequest
	var visitErr error
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "name":
			req.Name = name
		case "path":
			req.Path = path
		case "response":
			req.ResponseData = json.RawMessage(*response)
		case "response-file":
			body, err := resolveResponseBody("", *responseFile)
			if err != nil {
				visitErr = err
				return
			}
			req.ResponseData = body
		case "content-type":
			ct := model.ContentType(*contentType)
			req.ContentType = &ct
		case "group":
			req.GroupID = groupID
		case "status":
			req.StatusCode = statusCode
		case "delay":
			req.DelayMs = delayMs
		case "enabled":
			req.Enabled = enabled
		}
	})
	if visitErr != nil {
		return visitErr
	}

	endpoint, err := cmdCtx.App.Client.UpdateMockEndpoint(cmdCtx.Ctx, *id, req)
	if err != nil {
		return err
	}
	return renderResult(endpoint, opts, nil)
}

func runEndpointsDelete(cmdCtx *commandContext, args []string) error {
	fs := flag.NewFlagSet("endpoints delete", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	id := fs.String("id", "", "Endpoint ID (required)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *id == "" {
		return errors.New("-id is required")
	}

	if err := cmdCtx.App.Client.DeleteMockEndpoint(cmdCtx.Ctx, *id); err != nil {
		return err
	}
	return writef(os.Stdout, "Deleted endpoint %s\n", *id)
}

func runEndpointsStats(cmdCtx *commandContext, args []string) error {
	fs := flag.NewFlagSet("endpoints stats", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	var opts outputOptions
	addOutputFlags(fs, &opts)
	if err := fs.Parse(args); err != nil {
		return err
	}

	stats, err := cmdCtx.App.Client.MockStats(cmdCtx.Ctx)
	if err != nil {
		return err
	}
	return renderResult(stats, opts, func(w io.Writer) error {
		return renderStatsTable(w, stats)
	})
}

func renderStatsTable(w io.Writer, stats *model.EndpointStats) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	if err := writef(tw, "Total\t%d\nEnabled\t%d\nDisabled\t%d\nMax\t%d\nRemaining\t%d\n",
		stats.Total, stats.Enabled, stats.Disabled, stats.MaxEndpoints, stats.RemainingSlots); err != nil {
		return err
	}
	if stats.AtCapacity() {
		if err := writeln(tw, "At capacity: further creates will be rejected"); err != nil {
			return err
		}
	}
	return tw.Flush()
}

// resolveResponseBody picks the response body from -response or
// -response-file. Exactly one source must be provided.
func resolveResponseBody(inline, file string) (json.RawMessage, error) {
	if inline != "" && file != "" {
		return nil, errors.New("-response and -response-file are mutually exclusive")
	}
	if inline != "" {
		return json.RawMessage(inline), nil
	}
	if file == "" {
		return nil, errors.New("one of -response or -response-file is required")
	}
	if file == "-" {
		body, err := io.ReadAll(os.Stdin)
		if err != nil {
			return nil, fmt.Errorf("read response body from stdin: %w", err)
		}
		return body, nil
	}
	body, err := os.ReadFile(file)
	if err != nil {
		return nil, fmt.Errorf("read response body from %s: %w", file, err)
	}
	return body, nil
}
