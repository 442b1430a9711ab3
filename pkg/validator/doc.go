// Package validator provides small, composable validation rules.
//
// A Rule pairs a Check function with the ValidationError it reports.
// Apply evaluates every rule and aggregates failures into ValidationErrors,
// which implements error. First evaluates rules in order and returns only the
// first failure, for inputs where later checks depend on earlier ones.
//
//	err := validator.First(
//	    validator.Present("prompt", req.Prompt).WithMessage("prompt is required"),
//	    validator.MaxLenString("prompt", *req.Prompt, 1000),
//	)
//	if verrs := validator.ExtractValidationErrors(err); verrs != nil {
//	    msg := verrs.FirstMessage()
//	}
//
// Length rules count Unicode code points.
package validator
