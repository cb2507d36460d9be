package main

import (
	"os"

	"github.com/postsportal/postsportal/app"
)

func main() {
	err := app.Execute()
	if err != nil {
		os.Exit(1)
	}
}
