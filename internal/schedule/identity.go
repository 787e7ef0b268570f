// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

package schedule

import (
	"crypto/sha256"
	"encoding/hex"

	"github.com/ManuGH/xmltv-new/internal/epg"
)

// IdentityNamespace prefixes every occurrence identity.
const IdentityNamespace = "urn:xmltv-new:"

// Identity returns the deterministic identifier of o. Occurrences with equal
// channel, start, stop and title share an identity no matter which snapshot
// or run produced them; feed readers rely on this to suppress entries they
// have already seen. Start and stop are formatted in UTC, so the repeated
// wall-clock hour of a daylight saving fall-back still yields distinct
// identities and the value does not depend on the configured time zone.
func Identity(o Occurrence) string {
	sum := sha256.Sum256([]byte(o.Title))
	return IdentityNamespace + o.Channel +
		":" + epg.FormatTime(o.Start.UTC()) +
		":" + epg.FormatTime(o.Stop.UTC()) +
		":" + hex.EncodeToString(sum[:])
}
