// SPDX-License-Identifier: MPL-2.0

package main

import cmd "archmate-cli/cmd/archmate"

func main() {
	cmd.Execute()
}
