// Package core provides the business logic for email domain replacement.
//
// This package is the heart of mailmorph, containing all domain logic
// independent of any UI or transport layer. It can be used by web handlers,
// CLI tools, or tests without modification.
//
// # Architecture
//
// The package is organized around several key concepts:
//
//   - Store: Secure flat-directory storage for uploaded and generated files.
//     Identifiers are random UUIDs, never derived from user filenames.
//   - Tabular parsing: Delimited files are parsed into a TabularDocument with
//     structural validation (consistent columns, row ceiling, header checks)
//     and advisory email-column detection.
//   - Replacement: ReplaceDomains rewrites every cell matching
//     localpart@old-domain to localpart@new-domain, with exact trailing-domain
//     matching so that longer domains are never corrupted.
//   - Retention: The Janitor periodically deletes files older than the
//     configured age, running concurrently with request handling.
//   - Service: The main entry point combining the above into the upload,
//     download, and validation operations exposed to callers.
//
// # Processing Flow
//
// A typical upload runs through the Service as:
//
//  1. Caller invokes [Service.HandleUpload] with raw bytes and a domain pair
//  2. The pair is validated ([NewDomainPair]) and the input persisted
//  3. [Parse] builds a TabularDocument, enforcing structural rules
//  4. [ReplaceDomains] transforms all cells and counts changes
//  5. The output is serialized with the input's delimiter and stored
//  6. The caller receives a ReplacementResult with the output identifier
//
// # Error Handling
//
// Technical errors are mapped to user-friendly messages using [MapError].
// Each error category has a unique code for support reference:
//
//   - FILE001-FILE005: File errors (size, extension, structure, encoding)
//   - VAL001-VAL002: Tabular validation errors (header, row limit)
//   - DOM001-DOM002: Domain errors (invalid syntax, identical pair)
//   - ART001: Missing or expired artifacts
//   - STO001: Storage failures (details logged, never shown to users)
//   - UPL001-UPL003: Upload processing (busy, cancelled, timed out)
package core
