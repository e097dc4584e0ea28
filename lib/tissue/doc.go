// Copyright 2026 The Tissuebox Authors
// SPDX-License-Identifier: Apache-2.0

// Package tissue implements the tissuebox data model: small short-lived
// task records ("tissues") stored in a TOML table-of-tables file kept
// alongside a code repository.
//
// A [Tissue] is the atomic unit: a unique title, ordered tags, an
// optional free-form description, and any unrecognized fields from the
// source file preserved verbatim in Extra. A [Box] owns an ordered
// collection of tissues keyed by title and enforces title uniqueness
// at insertion time.
//
// # Canonical order
//
// Box order is lexicographic (byte-wise) on title. This is a stated,
// stable invariant: serialization depends only on the box contents,
// never on insertion history, so repeated save cycles produce
// byte-identical files and version-control diffs stay minimal.
//
// # Codec
//
// [Parse] and [Serialize] convert between the on-disk text and a Box.
// The codec is format-preserving: keys it does not recognize are
// carried through Extra as tagged [Value] variants rather than
// dropped. Serialize emits a canonical shape (stable key order,
// omission of absent fields) so that parse-serialize round trips are
// structurally lossless; see the package tests for the round-trip law.
//
// A [FormatError] aborts the whole parse. The alternative, skipping
// the offending entry, would drop data on the next write-back.
//
// # Promotion
//
// [Tissue.Promotion] defines the mapping onto an external issue
// tracker: title to issue title, description to body, tags to labels.
// The caller removes the tissue and writes the box back after the
// remote side confirms creation.
package tissue
