package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	docite "github.com/alnah/go-docite"
	"github.com/alnah/go-docite/internal/assets"
	"github.com/alnah/go-docite/internal/config"
	"github.com/alnah/go-docite/internal/logging"
	"github.com/alnah/go-docite/internal/render"
)

// runConvert resolves configuration, finds pandoc, converts the document
// and writes the requested previews.
func runConvert(ctx context.Context, flags *cliFlags, env *Environment, hc *hintContext) error {
	envCfg, err := loadEnvConfig(env.Getenv)
	if err != nil {
		return err
	}
	warnUnknownEnvVars(env.Environ(), env.Stderr)

	cfg, err := loadConfig(flags.config, envCfg.ConfigPath)
	if err != nil {
		return err
	}
	applyEnvConfig(envCfg, cfg)
	if err := mergeFlags(flags, cfg); err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	hc.offline = cfg.Pandoc.NoInstall
	if err := flags.requireDocumentFlags(); err != nil {
		return err
	}

	logger := logging.New(flags.verbosity(), env.Stderr)

	styles, err := assets.NewAssetResolver(cfg.Assets.BasePath)
	if err != nil {
		return fmt.Errorf("assets.basePath: %w", err)
	}
	if names, err := styles.StyleNames(); err == nil {
		hc.styles = names
	}
	if styles.HasCustomLoader() {
		logger.Debug("custom styles", "dir", cfg.Assets.BasePath, "names", hc.styles)
	}

	engine, err := env.EnsureEngine(ctx, docite.EngineOptions{
		Binary:     cfg.Pandoc.Binary,
		InstallDir: cfg.Pandoc.InstallDir,
		NoInstall:  cfg.Pandoc.NoInstall,
		Runner:     env.Runner,
		Logger:     logger,
	})
	if err != nil {
		return err
	}
	logger.Info("using pandoc", "path", engine.Path, "version", engine.Version)

	opts := converterOptions(cfg, engine, styles, logger, env)

	res, err := docite.NewConverter(opts...).Convert(ctx, docite.Input{
		SourcePath:       flags.input,
		OutputPath:       flags.output,
		BibliographyPath: flags.bib,
		Style:            cfg.Style,
	})
	if err != nil {
		return err
	}
	printCreated(env, flags, res.OutputPath)

	return renderPreviews(ctx, cfg, res.OutputPath, logger, env, flags)
}

// loadConfig loads the config named by the flag, else by DOCITE_CONFIG,
// else returns defaults.
func loadConfig(flagValue, envValue string) (*config.Config, error) {
	name := flagValue
	if name == "" {
		name = envValue
	}
	if name == "" {
		return config.DefaultConfig(), nil
	}
	cfg, err := config.LoadConfig(name)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	return cfg, nil
}

// converterOptions translates the merged configuration into converter options.
func converterOptions(cfg *config.Config, engine *docite.Engine, styles docite.StyleLoader, logger *slog.Logger, env *Environment) []docite.Option {
	opts := []docite.Option{
		docite.WithEngine(engine),
		docite.WithLogger(logger),
		docite.WithTimeout(cfg.Pandoc.Timeout.Std()),
		docite.WithAssetLoader(styles),
	}
	if env.Runner != nil {
		opts = append(opts, docite.WithRunner(env.Runner))
	}
	if env.StyleCacheDir != "" {
		opts = append(opts, docite.WithStyleCacheDir(env.StyleCacheDir))
	}
	if ci := cfg.FrontMatter.ClosingIndex; ci != 0 {
		shape := docite.DefaultFrontMatterShape
		shape.ClosingIndex = ci
		opts = append(opts, docite.WithFrontMatterShape(shape))
	}
	return opts
}

// renderPreviews writes <output>.html and/or <output>.pdf. A PDF without
// --html is printed from an HTML file in a temporary directory.
func renderPreviews(ctx context.Context, cfg *config.Config, output string, logger *slog.Logger, env *Environment, flags *cliFlags) error {
	if !cfg.Output.HTML && !cfg.Output.PDF {
		return nil
	}

	htmlPath := render.PreviewPath(output, ".html")
	if !cfg.Output.HTML {
		tmp, err := os.MkdirTemp("", "docite-preview-*")
		if err != nil {
			return fmt.Errorf("%w: %w", render.ErrHTMLRender, err)
		}
		defer func() { _ = os.RemoveAll(tmp) }()
		htmlPath = filepath.Join(tmp, filepath.Base(htmlPath))
	}

	start := time.Now()
	if err := render.NewHTMLRenderer().RenderFile(ctx, output, htmlPath); err != nil {
		return err
	}
	logger.Debug("HTML preview rendered", "path", htmlPath, "duration", time.Since(start))
	if cfg.Output.HTML {
		printCreated(env, flags, htmlPath)
	}

	if !cfg.Output.PDF {
		return nil
	}

	pdf := env.newPDF(cfg.Pandoc.Timeout.Std(), logger)
	defer func() { _ = pdf.Close() }()

	pdfPath := render.PreviewPath(output, ".pdf")
	if err := pdf.Render(ctx, htmlPath, pdfPath); err != nil {
		return err
	}
	printCreated(env, flags, pdfPath)
	return nil
}

func (env *Environment) newPDF(timeout time.Duration, logger *slog.Logger) pdfRenderer {
	if env.NewPDF != nil {
		return env.NewPDF(timeout)
	}
	return render.NewPDFRenderer(timeout, logger)
}

func printCreated(env *Environment, flags *cliFlags, path string) {
	if !flags.quiet {
		fmt.Fprintf(env.Stdout, "Created %s\n", path)
	}
}
