// Package prompt reads secrets from an interactive terminal without echoing
// them and runs them through a caller supplied check with a bounded number
// of retries. Every buffer that held a secret is zeroed before the functions
// in this package return.
package prompt
