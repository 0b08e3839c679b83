package main

import (
	"github.com/joho/godotenv"

	"evaluation-backend/cmd"
)

func main() {
	godotenv.Load()

	cmd.Execute()
}
