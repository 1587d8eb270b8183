package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/mocksmith/adminctl/internal/domain/model"
)

func runProxies(cmdCtx *commandContext, args []string) error {
	if len(args) == 0 {
		return errors.New("usage: adminctl proxies <list|get|create|update|delete|stats> [flags]")
	}

	switch args[0] {
	case "list":
		return runProxiesList(cmdCtx, args[1:])
	case "get":
		return runProxiesGet(cmdCtx, args[1:])
	case "create":
		return runProxiesCreate(cmdCtx, args[1:])
	case "update":
		return runProxiesUpdate(cmdCtx, args[1:])
	case "delete":
		return runProxiesDelete(cmdCtx, args[1:])
	case "stats":
		return runProxiesStats(cmdCtx, args[1:])
	default:
		return fmt.Errorf("unknown proxies subcommand %q", args[0])
	}
}

func runProxiesList(cmdCtx *commandContext, args []string) error {
	fs := flag.NewFlagSet("proxies list", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	var opts outputOptions
	addOutputFlags(fs, &opts)
	if err := fs.Parse(args); err != nil {
		return err
	}

	endpoints, err := cmdCtx.App.Client.ListProxyEndpoints(cmdCtx.Ctx)
	if err != nil {
		return err
	}

	return renderResult(endpoints, opts, func(w io.Writer) error {
		return renderProxyEndpointTable(w, endpoints)
	})
}

func renderProxyEndpointTable(w io.Writer, endpoints []model.ProxyEndpoint) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	if err := writef(tw, "ID\tNAME\tPATH\tUPSTREAM\tENABLED\tCACHE\tDELAY\n"); err != nil {
		return err
	}
	for _, e := range endpoints {
		upstream := "(default)"
		if e.BaseURL != nil && *e.BaseURL != "" {
			upstream = *e.BaseURL
		}
		if err := writef(tw, "%s\t%s\t%s\t%s\t%v\t%v\t%dms\n",
			e.ID, e.Name, e.Path, upstream, e.Enabled, e.UseCache, e.DelayMs); err != nil {
			return err
		}
	}
	return tw.Flush()
}

func runProxiesGet(cmdCtx *commandContext, args []string) error {
	fs := flag.NewFlagSet("proxies get", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	var opts outputOptions
	addOutputFlags(fs, &opts)
	id := fs.String("id", "", "Proxy endpoint ID (required)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *id == "" {
		return errors.New("-id is required")
	}

	endpoint, err := cmdCtx.App.Client.GetProxyEndpoint(cmdCtx.Ctx, *id)
	if err != nil {
		return err
	}
	return renderResult(endpoint, opts, nil)
}

func runProxiesCreate(cmdCtx *commandContext, args []string) error {
	fs := flag.NewFlagSet("proxies create", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	var opts outputOptions
	addOutputFlags(fs, &opts)

	var req model.CreateProxyEndpointRequest
	var baseURL, groupID string
	var statusOverride, delayMs int
	var disabled, useCache bool
	fs.StringVar(&req.Name, "name", "", "Proxy endpoint name (required)")
	fs.StringVar(&req.Path, "path", "", "Proxy path, must start with / (required)")
	fs.StringVar(&baseURL, "base-url", "", "Upstream base URL (http:// or https://)")
	fs.StringVar(&groupID, "group", "", "Group ID")
	fs.IntVar(&statusOverride, "status-override", 0, "Force this status code on proxied responses")
	fs.IntVar(&delayMs, "delay", 0, "Artificial response delay in milliseconds")
	fs.BoolVar(&useCache, "cache", false, "Cache upstream responses")
	fs.BoolVar(&disabled, "disabled", false, "Create the proxy endpoint disabled")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if baseURL != "" {
		req.BaseURL = &baseURL
	}
	if groupID != "" {
		req.GroupID = &groupID
	}
	if statusOverride != 0 {
		req.StatusCodeOverride = &statusOverride
	}
	req.DelayMs = &delayMs
	req.UseCache = &useCache
	enabled := !disabled
	req.Enabled = &enabled

	endpoint, err := cmdCtx.App.Client.CreateProxyEndpoint(cmdCtx.Ctx, req)
	if err != nil {
		return err
	}
	return renderResult(endpoint, opts, nil)
}

func runProxiesUpdate(cmdCtx *commandContext, args []string) error {
	fs := flag.NewFlagSet("proxies update", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	var opts outputOptions
	addOutputFlags(fs, &opts)

	id := fs.String("id", "", "Proxy endpoint ID (required)")
	name := fs.String("name", "", "New proxy endpoint name")
	path := fs.String("path", "", "New proxy path")
	baseURL := fs.String("base-url", "", "New upstream base URL")
	groupID := fs.String("group", "", "New group ID")
	statusOverride := fs.Int("status-override", 0, "New forced status code")
	delayMs := fs.Int("delay", 0, "New response delay in milliseconds")
	useCache := fs.Bool("cache", false, "Cache upstream responses")
	enabled := fs.Bool("enabled", false, "Enable or disable the proxy endpoint")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *id == "" {
		return errors.New("-id is required")
	}

	var req model.UpdateProxyEndpointRequest
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "name":
			req.Name = name
		case "path":
			req.Path = path
		case "base-url":
			req.BaseURL = baseURL
		case "group":
			req.GroupID = groupID
		case "status-override":
			req.StatusCodeOverride = statusOverride
		case "delay":
			req.DelayMs = delayMs
		case "cache":
			req.UseCache = useCache
		case "enabled":
			req.Enabled = enabled
		}
	})

	endpoint, err := cmdCtx.App.Client.UpdateProxyEndpoint(cmdCtx.Ctx, *id, req)
	if err != nil {
		return err
	}
	return renderResult(endpoint, opts, nil)
}

func runProxiesDelete(cmdCtx *commandContext, args []string) error {
	fs := flag.NewFlagSet("proxies delete", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	id := fs.String("id", "", "Proxy endpoint ID (required)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *id == "" {
		return errors.New("-id is required")
	}

	if err := cmdCtx.App.Client.DeleteProxyEndpoint(cmdCtx.Ctx, *id); err != nil {
		return err
	}
	return writef(os.Stdout, "Deleted proxy endpoint %s\n", *id)
}

func runProxiesStats(cmdCtx *commandContext, args []string) error {
	fs := flag.NewFlagSet("proxies stats", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	var opts outputOptions
	addOutputFlags(fs, &opts)
	if err := fs.Parse(args); err != nil {
		return err
	}

	stats, err := cmdCtx.App.Client.ProxyStats(cmdCtx.Ctx)
	if err != nil {
		return err
	}
	return renderResult(stats, opts, func(w io.Writer) error {
		return renderStatsTable(w, stats)
	})
}
