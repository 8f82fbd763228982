// Package guard is imported (blank) by tests that construct the HTTP stack.
// It flags the process as a test run so cmd binaries and helpers skip
// network side effects, and points the PDF client at an unroutable address.
package guard

import "os"

// EnvVar is read by app.InTestMode.
const EnvVar = "ACCOUNTING_TEST_MODE"

func init() {
	setDefault(EnvVar, "1")
	setDefault("GOTENBERG_URL", "http://127.0.0.1:0")
}

func setDefault(key, value string) {
	if _, ok := os.LookupEnv(key); !ok {
		_ = os.Setenv(key, value)
	}
}
