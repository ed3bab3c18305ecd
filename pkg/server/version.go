/*
Copyright © 2025 The batchadmit authors
SPDX-License-Identifier: Apache-2.0
*/

package server

import (
	"net/http"
	"strings"
)

// API versioning via vendor media type, e.g.
// "application/vnd.openbatch.admit.v1+json". Requests without a vendor
// Accept header get the default version.
const (
	DefaultAPIVersion = "v1"

	vendorMediaPrefix = "application/vnd.openbatch.admit."
	vendorMediaSuffix = "+json"
)

var supportedAPIVersions = map[string]bool{
	"v1": true,
}

func isValidAPIVersion(version string) bool {
	return supportedAPIVersions[version]
}

// negotiateAPIVersion extracts the requested API version from the Accept
// header, falling back to the default for absent, non-vendor, malformed,
// or unsupported versions.
func negotiateAPIVersion(r *http.Request) string {
	for _, accept := range strings.Split(r.Header.Get("Accept"), ",") {
		accept = strings.TrimSpace(accept)
		if !strings.HasPrefix(accept, vendorMediaPrefix) || !strings.HasSuffix(accept, vendorMediaSuffix) {
			continue
		}
		version := strings.TrimSuffix(strings.TrimPrefix(accept, vendorMediaPrefix), vendorMediaSuffix)
		if isValidAPIVersion(version) {
			return version
		}
	}
	return DefaultAPIVersion
}
