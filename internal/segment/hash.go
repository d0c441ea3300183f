package segment

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
)

// clauseIDKey is a fixed, documented key - not a secret. Keying the id hash
// namespaces clause ids so they cannot collide with plain content hashes,
// while staying stable across deployments for idempotent re-analysis.
const clauseIDKey = "clausecheck/clause-id/v1"

// anchorWindow is how many bytes of surrounding context feed each anchor hash.
const anchorWindow = 64

// anchorHexLen truncates anchor hashes to 16 hex chars; enough to re-locate a
// clause, short enough to keep reports readable.
const anchorHexLen = 16

// clauseID derives a deterministic clause id from (start, length, sha256(text)).
// Fields are length-delimited by construction: start and length are fixed
// width, the content hash is fixed width.
func clauseID(span Span, text string) string {
	content := sha256.Sum256([]byte(text))

	mac := hmac.New(sha256.New, []byte(clauseIDKey))
	var buf [8]byte
	binary.BigEndian.PutUint32(buf[0:4], span.Start)
	binary.BigEndian.PutUint32(buf[4:8], span.Length)
	mac.Write(buf[:])
	mac.Write(content[:])

	return hex.EncodeToString(mac.Sum(nil))
}

// Digest is the plain content fingerprint used for clause content hashes and
// document-level audit records.
func Digest(text string) string {
	sum := sha256.Sum256([]byte(text))
	return hex.EncodeToString(sum[:])
}

// anchorHash hashes up to anchorWindow bytes of context and truncates.
// Empty context (document edge) yields an empty anchor.
func anchorHash(context string) string {
	if context == "" {
		return ""
	}
	sum := sha256.Sum256([]byte(context))
	return hex.EncodeToString(sum[:])[:anchorHexLen]
}

// anchorsFor computes the pre/post anchors for a span over doc.
func anchorsFor(doc string, span Span) Anchors {
	preStart := int(span.Start) - anchorWindow
	if preStart < 0 {
		preStart = 0
	}
	postEnd := int(span.End()) + anchorWindow
	if postEnd > len(doc) {
		postEnd = len(doc)
	}
	return Anchors{
		PreHash:  anchorHash(doc[preStart:span.Start]),
		PostHash: anchorHash(doc[span.End():postEnd]),
	}
}
