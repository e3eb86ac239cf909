// SPDX-License-Identifier: MPL-2.0

package main

import cmd "github.com/invowk/helpout/cmd/helpout"

func main() {
	cmd.Execute()
}
