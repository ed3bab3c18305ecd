/*
Copyright © 2025 The batchadmit authors
SPDX-License-Identifier: Apache-2.0
*/

// Package grammar implements the low-level textual grammars consumed by the
// attribute verification engine: user@host lists, dependency chains, output
// paths, array ranges, name legality, stage-in/out specs, and the chunked
// resource-selection grammar.
//
// All parsers are stateless and allocation-light; they report malformed
// input without interpreting it against any definition table. Semantic
// validation of parsed values belongs to the verifier package.
package grammar
