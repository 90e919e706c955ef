// Command themetoggle switches applications between light and dark mode.
package main

import "github.com/themetoggle/themetoggle/internal/cli"

func main() {
	cli.Execute()
}
