// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
// These must be provided for the application to function:
//
//   - Parser: Turns one platform export into messages, eagerly or lazily
//   - MessageSource: Lazily yields messages from an open export
//   - ParserRegistry: Selects the parser for a platform
//   - Processor: One stage of the filter/merge pipeline
//   - ProcessorPipeline: Chains processors in order
//   - Writer: Serialises messages in one output format
//   - WriterRegistry: Selects the writer for a format
//
// # Optional Interfaces
//
// These can be nil - the application falls back to built-in defaults:
//
//   - ConfigStore: Persisted defaults for command-line flags
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter, parser, or writer package
package driven
