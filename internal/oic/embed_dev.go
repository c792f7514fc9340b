//go:build !embed_oic

package oic

import "embed"

// Development builds only carry a placeholder tree. The client libraries are
// expected to be installed locally in dev mode anyway.
//
//go:embed devclient
var embedded embed.FS

const embeddedRoot = "devclient"
