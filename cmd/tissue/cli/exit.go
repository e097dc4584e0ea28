// Copyright 2026 The Tissuebox Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import "fmt"

// ExitError requests a specific process exit code without any extra
// message being printed. A command returns one after it has already
// written its own explanation, when the non-zero exit is itself the
// intended result rather than a failure. Promote does this when the
// target repository has issues disabled: the guidance goes to the
// user, the exit code goes to scripts.
type ExitError struct {
	Code int
}

func (err *ExitError) Error() string {
	return fmt.Sprintf("exit code %d", err.Code)
}

// ExitCode reports the requested code. main unwraps returned errors
// to this type to tell a deliberate non-zero exit apart from an
// error that still needs printing.
func (err *ExitError) ExitCode() int {
	return err.Code
}
