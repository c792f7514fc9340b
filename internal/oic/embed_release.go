//go:build embed_oic

package oic

import "embed"

// Release builds carry a full Instant Client. Unpack instantclient_21_6 (or a
// compatible version) into internal/oic/instantclient before building.
//
//go:embed all:instantclient
var embedded embed.FS

const embeddedRoot = "instantclient"
