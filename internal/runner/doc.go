// SPDX-License-Identifier: MPL-2.0

// Package runner executes catalog install commands through a shell.
//
// Two implementations exist. The native runner spawns the system shell
// as a subprocess, attaching a PTY when the output is a terminal so
// interactive installers behave normally. The virtual runner interprets
// the command in-process with mvdan.cc/sh, which keeps tests hermetic
// and works on hosts without a usable shell.
package runner
