/******************************************************************************\
* loxgo                                                                        *
\******************************************************************************/

// Package langtest runs loxgo's golden-file test suite: each fixture under
// pkg/langtest/testdata is a TOML file naming a source program and the
// output/exit-code/error-message it must produce. It's primarily meant for
// `loxgo dev test`, but running it from a Go test also gets it into code
// coverage reports:
//
//	go test -coverpkg=github.com/loxgo/loxgo/... -covermode=count -coverprofile=cover.out ./...
//	go tool cover -html=cover.out
package langtest
