package main

import "github.com/rawbytedev/xfrm/cmd/xfrmrec/cmd"

func main() {
	cmd.Execute()
}
