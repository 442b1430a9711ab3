// Package logger provides a context-aware wrapper around Go's slog package
// adding functional options for configuration, helper attribute constructors,
// and transparent injection of values stored in context.Context.
//
// New builds a slog.Handler (text or JSON depending on the configured Format)
// and wraps it so every registered ContextExtractor runs on each record.
// Helper constructors such as Error, ClientKey and Template live in attr.go
// and keep attribute keys consistent across packages.
//
// # Usage
//
//	log := logger.New(
//	    logger.WithEnvironment(cfg.AppEnv, cfg.ServiceName),
//	    logger.WithContextExtractors(requestid.LoggerExtractor()),
//	    logger.WithRotatingFile(cfg.LogFile, 100),
//	)
//	logger.SetAsDefault(log)
//
//	log.InfoContext(ctx, "generation saved", logger.Template("blog"))
//
// # Configuration
//
//   - WithDevelopment / WithStaging / WithProduction / WithEnvironment: presets per environment.
//   - WithFormat / WithTextFormatter / WithJSONFormatter: override output format.
//   - WithAttr: attach static attributes.
//   - WithContextExtractors / WithContextValue: inject attributes from context.
//   - WithRotatingFile: duplicate output into a size-rotated file.
//
// Error produces an attribute only for a non-nil error, so
//
//	log.Info("operation finished", logger.Error(err))
//
// needs no nil check.
package logger
