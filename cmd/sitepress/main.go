package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/alecthomas/kong"

	"github.com/eringen/sitepress"
)

// version is set at build time via ldflags.
var version = "dev"

var cli struct {
	Root    string `short:"r" help:"Site root directory" default:"." type:"path"`
	History string `help:"SQLite file recording build and deploy outcomes" env:"SITEPRESS_HISTORY"`
	Verbose bool   `short:"v" help:"Enable verbose logging"`

	New struct {
		Dir string `arg:"" help:"Directory to scaffold; must exist and be empty" type:"path"`
	} `cmd:"" help:"Scaffold a new site"`

	Build struct {
		Target string `arg:"" help:"Output directory (cleared first)" type:"path"`
	} `cmd:"" help:"Compile the site into a target directory"`

	Serve struct {
		Addr string `help:"Listen address (defaults to the site's configured address)" env:"SITEPRESS_ADDR"`
	} `cmd:"" help:"Serve a live preview of the site"`

	Deploy struct{} `cmd:"" help:"Build to a scratch directory and run the deploy script there"`

	Tree struct{} `cmd:"" help:"Print the site's source tree"`

	Version struct{} `cmd:"" help:"Print the sitepress version"`
}

func main() {
	ctx := kong.Parse(&cli)

	logLevel := slog.LevelInfo
	if cli.Verbose {
		logLevel = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: logLevel,
	})))

	if err := run(ctx.Command()); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(command string) error {
	switch command {
	case "new <dir>":
		site, err := sitepress.Create(cli.New.Dir)
		if err != nil {
			return err
		}
		defer site.Close()
		fmt.Printf("Created new site in %s\n", site.Root)
		return nil

	case "build <target>":
		site, err := openSite()
		if err != nil {
			return err
		}
		defer site.Close()
		if err := site.Build(cli.Build.Target); err != nil {
			return err
		}
		fmt.Printf("Site built into %s\n", cli.Build.Target)
		return nil

	case "serve":
		return runServe()

	case "deploy":
		return runDeploy()

	case "tree":
		return runTree()

	case "version":
		fmt.Printf("sitepress %s\n", version)
		return nil

	default:
		return fmt.Errorf("unknown command: %s", command)
	}
}

func openSite() (*sitepress.Site, error) {
	var opts []sitepress.Option
	if cli.History != "" {
		opts = append(opts, sitepress.WithHistory(cli.History))
	}
	return sitepress.Open(cli.Root, opts...)
}

func runServe() error {
	site, err := openSite()
	if err != nil {
		return err
	}
	defer site.Close()

	stopWatch, err := site.WatchTree()
	if err != nil {
		slog.Warn("tree watcher unavailable", "error", err)
	} else {
		defer stopWatch()
	}

	addr := cli.Serve.Addr
	if addr == "" {
		addr = site.Config().Addr
	}
	server := sitepress.NewPreviewServer(site)
	errCh := make(chan error, 1)
	go func() { errCh <- server.Start(addr) }()
	slog.Info("preview server listening", "addr", addr)

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
	select {
	case err := <-errCh:
		return err
	case <-sig:
		slog.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	}
}

func runDeploy() error {
	site, err := openSite()
	if err != nil {
		return err
	}
	defer site.Close()

	job := site.BuildAndDeploy()
	for {
		result, done := job.Poll()
		if !done {
			time.Sleep(100 * time.Millisecond)
			continue
		}
		if result.Err != nil {
			return result.Err
		}
		if out := strings.TrimSpace(result.Output); out != "" {
			fmt.Println(out)
		}
		fmt.Println("Deployed successfully")
		return nil
	}
}

func runTree() error {
	site, err := openSite()
	if err != nil {
		return err
	}
	defer site.Close()

	entries, err := site.Tree()
	if err != nil {
		return err
	}
	depth := 0
	for _, entry := range entries {
		switch entry.Kind {
		case sitepress.TreeDirOpen:
			fmt.Printf("%s%s/\n", strings.Repeat("  ", depth), baseName(entry.Path))
			depth++
		case sitepress.TreeDirClose:
			depth--
		default:
			fmt.Printf("%s%s\n", strings.Repeat("  ", depth), baseName(entry.Path))
		}
	}
	return nil
}

func baseName(p string) string {
	if idx := strings.LastIndex(p, "/"); idx >= 0 {
		return p[idx+1:]
	}
	return p
}
