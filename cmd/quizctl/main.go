package main

import (
	"github.com/quizlive/quizlive/internal/cli"
)

func main() {
	cli.Execute()
}
