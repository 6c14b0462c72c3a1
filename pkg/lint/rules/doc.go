// Package rules provides the built-in lint rules for swiftlint-go.
//
// # Rule Kinds
//
// Rules are grouped by kind:
//
//   - Lint:
//
//   - no_constant_condition - Boolean literals should not be used as conditions
//
//   - force_cast - Force casts should be avoided
//
//   - todo - TODO and FIXME comments should be resolved
//
//   - superfluous_disable_command - Disable commands must suppress something
//
//   - Idiomatic:
//
//   - redundant_parameter - Arguments passing nil explicitly can be omitted
//
//   - syntactic_sugar - Shorthand syntax should be preferred over generic types
//
//   - legacy_constructor - Swift constructors are preferred over legacy functions
//
//   - Style:
//
//   - trailing_whitespace - Lines should not have trailing whitespace
//
//   - custom_rules - User-defined regular expression rules
//
//   - Metrics:
//
//   - line_length - Lines should not span too many characters
//
//   - function_body_length - Function bodies should not span too many lines
//
//   - Performance:
//
//   - empty_count - Prefer isEmpty over comparing count to zero (opt-in)
//
// # Renamed Identifiers
//
// Identifiers used by earlier releases still resolve in configuration and
// in swiftlint directives; RegisterRenamedIdentifiers lists them.
//
// # Rule Packs
//
// Packs are configuration presets written by "swiftlint init --pack":
//
//   - default: default rules with default options
//   - strict: opt-in rules on, tighter limits, warnings fail the build
//   - relaxed: longer limits, no whitespace or TODO findings
//
// # Registration
//
// Rules register with lint.DefaultRegistry in init. Each rule embeds
// lint.BaseRule and implements lint.VisitorRule or lint.TextRule;
// rules with corrections implement lint.CorrectableRule.
package rules
