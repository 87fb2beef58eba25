/******************************************************************************\
* loxgo                                                                        *
\******************************************************************************/

package langtest

import (
	"bytes"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/pelletier/go-toml/v2"

	"github.com/loxgo/loxgo/pkg/errs"
	"github.com/loxgo/loxgo/pkg/vm"
)

// config mirrors one golden-file test case's TOML fixture: a loxgo program,
// and what running it must produce.
type config struct {
	// Source is the loxgo program to run.
	Source string

	// Output is the expected `print`ed lines, in order. Ignored if ExitCode
	// is non-zero: once exit code and error messages match, the test
	// doesn't care what (if anything) printed before the failure.
	Output []string

	// ExitCode is the expected process exit code (see pkg/errs's
	// StatusCode* constants).
	ExitCode int `toml:"exit_code"`

	// ErrorMessages are regexps that must each match somewhere in the
	// error's formatted text.
	ErrorMessages []string `toml:"error_messages"`
}

// ExecuteSuite runs every *.toml fixture found recursively under suitePath.
func ExecuteSuite(suitePath string) errs.Error {
	var walkErr errs.Error
	filepath.WalkDir(suitePath, func(p string, d fs.DirEntry, err error) error {
		if walkErr != nil {
			return filepath.SkipAll
		}
		if err != nil {
			walkErr = errs.NewIOError("walking %v: %v", p, err)
			return filepath.SkipAll
		}
		if d.IsDir() || filepath.Ext(p) != ".toml" {
			return nil
		}
		walkErr = runCase(p)
		return nil
	})
	return walkErr
}

func runCase(fixturePath string) errs.Error {
	conf, err := readConfig(fixturePath)
	if err != nil {
		return err
	}

	var out bytes.Buffer
	runErr := vm.New(&out).Interpret(conf.Source)

	gotExitCode := errs.StatusCodeSuccess
	if runErr != nil {
		gotExitCode = runErr.ExitCode()
	}
	if gotExitCode != conf.ExitCode {
		return errs.NewTestSuite(fixturePath, "expected exit code %v, got %v", conf.ExitCode, gotExitCode)
	}

	msg := ""
	if runErr != nil {
		msg = runErr.Error()
	}
	for _, expected := range conf.ErrorMessages {
		re, reErr := regexp.Compile(expected)
		if reErr != nil {
			return errs.NewTestSuite(fixturePath, "compiling regexp %q: %v", expected, reErr)
		}
		if !re.MatchString(msg) {
			return errs.NewTestSuite(fixturePath, "expected error message matching %q, got %q", expected, msg)
		}
	}

	if runErr == nil {
		gotLines := splitLines(out.String())
		if len(gotLines) != len(conf.Output) {
			return errs.NewTestSuite(fixturePath, "got %v output lines %v, expected %v", len(gotLines), gotLines, conf.Output)
		}
		for i, line := range gotLines {
			if line != conf.Output[i] {
				return errs.NewTestSuite(fixturePath, "at line %v: expected output %q, got %q", i, conf.Output[i], line)
			}
		}
	}

	fmt.Printf("Test case passed: %v.\n", fixturePath)
	return nil
}

func readConfig(path string) (*config, errs.Error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, errs.NewTestSuite(path, "%v", err)
	}

	conf := &config{}
	if err := toml.Unmarshal(raw, conf); err != nil {
		return nil, errs.NewTestSuite(path, "%v", err)
	}
	return conf, nil
}

// splitLines splits s on '\n', dropping exactly one trailing newline (every
// `print` appends one) and reporting zero lines for an empty string rather
// than the one empty string strings.Split would give.
func splitLines(s string) []string {
	s = strings.TrimSuffix(s, "\n")
	if s == "" {
		return nil
	}
	return strings.Split(s, "\n")
}
