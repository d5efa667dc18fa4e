package main

import (
	"fmt"
	"os"

	"github.com/baalimago/go_away_boilerplate/pkg/ancli"
	"github.com/baalimago/plai/internal/utils"
)

const usage = `plai - (p)atterns (l)everaging (a)rtificial (i)ntelligence

A collection of small, runnable Go programs for working with hosted language
model APIs. Each example is its own binary, kept deliberately independent so
it can be read, run and modified in isolation.

Prerequisites:
  - Set the GROQ_API_KEY environment variable, or put it in a .env file in
    your working directory. Free keys at https://console.groq.com
  - (Optional) Set GROQ_API_URL to target another OpenAI compatible endpoint
  - (Optional) Set the NO_COLOR environment variable to disable ansi color output
  - (Optional) Set the DEBUG environment variable to dump requests and responses

Usage: plai <command>

Commands:
  h|help    Display this help message
  l|list    List the example programs
  e|env     Check that the environment is ready to run the examples

Examples:
  - go run . env
  - go run ./building-blocks/basic
  - go run ./building-blocks/tools ethereum
  - go run ./workflows/prompt-chaining "Write a report on the state of Go"
  - go run ./agents/market-analyst "Is ethereum gaining on bitcoin?"
`

const catalog = `building-blocks:
  basic              one shot chat completion
  structured-output  json mode with a schema pasted into the system prompt
  tools              let the model call a crypto exchange rate api
workflows:
  prompt-chaining    rewrite, gate, plan and write a document
  call-router        classify a query and hand it to a specialist prompt
  parallelization    fan out perspectives concurrently, then synthesize
agents:
  market-analyst     tool loop where the model decides the next step
`

func main() {
	ancli.SetupSlog()
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	if len(args) == 0 {
		fmt.Print(usage)
		return 0
	}
	switch args[0] {
	case "h", "help":
		fmt.Print(usage)
		return 0
	case "l", "list":
		fmt.Print(catalog)
		return 0
	case "e", "env":
		return checkEnv()
	default:
		ancli.PrintErr(fmt.Sprintf("unknown command: '%v'\n", args[0]))
		fmt.Print(usage)
		return 1
	}
}

// checkEnv is a doctor for the one piece of setup every example needs. It
// never calls the api, a key that looks set is good enough here.
func checkEnv() int {
	utils.LoadDotEnv()
	if os.Getenv("GROQ_API_KEY") == "" {
		ancli.PrintErr("environment variable 'GROQ_API_KEY' not set\n")
		ancli.Noticef("get a key at https://console.groq.com and export it, or put it in a .env file\n")
		return 1
	}
	ancli.Okf("GROQ_API_KEY is set, the examples are good to go\n")
	return 0
}
