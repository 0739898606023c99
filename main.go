package main

import (
	"context"
	"fmt"
	"os"

	"github.com/deniskimskku/writing-hub/cmd/cli"
)

// @title           Writing Hub API
// @version         1.0
// @description     文章检索、标签和订阅源接口
// @BasePath        /api
func main() {
	if err := cli.Execute(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
