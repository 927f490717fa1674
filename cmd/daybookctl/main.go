package main

import (
	"context"
	"fmt"
	"os"

	"github.com/dmitrijs2005/daybook/internal/ctl"
)

func main() {
	if err := ctl.New().ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
