// Package generation turns a prompt and a template into marketing copy.
//
// Validate checks a Request in a fixed order and reports only the first
// failure. Gateway makes a single call to an llms.Model with either the basic
// copywriter persona or, with enhanced prompts, the per-template system
// message, scaffold and temperature from the embedded prompts.yaml. Format
// cleans the answer and cuts search ad fields to their character limits.
//
// Service ties these together and saves each result to the store. A failed
// save is logged and does not fail the request.
//
//	model, err := generation.NewOpenAIModel(cfg)
//	catalog, err := generation.DefaultCatalog()
//	gw, err := generation.NewGateway(model, catalog,
//		generation.WithTimeout(cfg.Timeout),
//		generation.WithEnhancedPrompts(cfg.Enhanced),
//	)
//	svc := generation.NewService(gw, st, generation.WithLogger(log))
package generation
