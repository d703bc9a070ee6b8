package main

import (
	"log"

	"github.com/joho/godotenv"

	"Guardias/FiberConfig"
	"Guardias/Models"
)

func main() {
	if err := godotenv.Load(".env"); err != nil {
		log.Println("no .env file, using process environment")
	}

	if err := Models.Connect(); err != nil {
		log.Fatal("database setup failed: ", err)
	}

	FiberConfig.FiberConfig()
}
