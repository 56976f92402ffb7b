// Package advisor holds the domain of a small AI financial advisor.
//
// It defines what a user's profile and an uploaded portfolio look like, the
// derived figures shown next to a model's advice (profit and loss per holding,
// sector allocation), and the stock summary computed from a market data Provider.
//
// The sibling packages do the plumbing:
//   - prompt turns a Profile or a Portfolio into a Prompt,
//   - gemini sends a Prompt to a hosted model and returns its text,
//   - eodhd and alpaca implement Provider,
//   - renderer and server present the results.
//
// Failures are reported as *Error values tagged with a Kind, so that callers
// can tell an authentication problem from an outage or from bad input.
package advisor
